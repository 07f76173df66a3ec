package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"f1-bets.backend/internal/domain/entities"
	"f1-bets.backend/internal/interfaces/http/response"
)

// DriverService lists the driver choices
type DriverService interface {
	List(ctx context.Context) ([]entities.DriverOption, error)
}

// DriverHandler serves the driver catalog
type DriverHandler struct {
	driverUsecase DriverService
}

// NewDriverHandler creates a new driver handler
func NewDriverHandler(driverUsecase DriverService) *DriverHandler {
	return &DriverHandler{driverUsecase: driverUsecase}
}

// ListDrivers returns the distinct driver names
// GET /api/pilotos
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	options, err := h.driverUsecase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"pilotos": options})
}
