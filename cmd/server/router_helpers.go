package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"f1-bets.backend/internal/interfaces/http/middleware"
	"f1-bets.backend/pkg/logger"
)

const (
	serviceName    = "f1-bets-backend"
	serviceVersion = "1.0.0"

	healthPingTimeout = 2 * time.Second
)

// applyCORSMiddleware echoes allowed origins and answers preflight requests.
// "*" in allowedOrigins allows any origin.
func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := allowed[origin]; ok && origin != "*" {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Vary", "Origin")
			} else if allowAll {
				// credentials are never granted to a wildcard
				c.Header("Access-Control-Allow-Origin", "*")
			}
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.IdempotencyHeader+", "+middleware.RequestIDHeader)
		c.Header("Access-Control-Expose-Headers", middleware.RequestIDHeader+", "+middleware.IdempotencyReplayHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

// registerHealthRoute reports liveness plus whether the store answers a ping
func registerHealthRoute(r *gin.Engine, db *gorm.DB) {
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()

		status, database, code := "ok", "up", http.StatusOK
		if err := pingDB(ctx, db); err != nil {
			logger.Warn(c.Request.Context(), "Health check database ping failed", zap.Error(err))
			status, database, code = "degraded", "down", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"service":  serviceName,
			"version":  serviceVersion,
			"database": database,
		})
	})
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database not configured")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// registerMetricsRoute exposes the registry in the Prometheus text format
func registerMetricsRoute(r *gin.Engine, registry *prometheus.Registry) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))
}
