package handler

import (
	rentalapp "github.com/alquileres/backend/internal/application/rental"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard API endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *rentalapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *rentalapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetStats handles GET /dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}
