package main

import (
	"github.com/gin-gonic/gin"

	"f1-bets.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	driverHandler  *handlers.DriverHandler
	betHandler     *handlers.BetHandler
	authMiddleware gin.HandlerFunc
	idempotency    gin.HandlerFunc
}

// registerRoutes mounts the public paths the betting front-end calls
func registerRoutes(r *gin.Engine, d routeDeps) {
	r.POST("/register", d.authHandler.Register)
	r.POST("/login", d.authHandler.Login)
	r.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)

	r.GET("/api/pilotos", d.driverHandler.ListDrivers)

	bets := r.Group("/apuestas/top3")
	bets.Use(d.authMiddleware)
	{
		bets.POST("", d.idempotency, d.betHandler.CreateBet)
		bets.GET("", d.betHandler.ListBets)
		bets.GET("/detalle", d.betHandler.GetBet)
		bets.POST("/status", d.betHandler.UpdateStatus)
		bets.DELETE("", d.betHandler.DeleteBet)
	}
}
