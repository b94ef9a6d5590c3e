package handler

import (
	"runtime"
	"time"

	"github.com/alquileres/backend/internal/domain/rental"
	"github.com/gin-gonic/gin"
)

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	startTime     time.Time
	keepAliveRepo rental.KeepAliveRepository
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(keepAliveRepo rental.KeepAliveRepository) *SystemHandler {
	return &SystemHandler{
		startTime:     time.Now(),
		keepAliveRepo: keepAliveRepo,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo handles GET /system/info
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "Alquileres Backend API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	h.Success(c, info)
}

// KeepAliveResponse reports the last recorded keep-alive ping
type KeepAliveResponse struct {
	LastPing *time.Time `json:"last_ping"`
}

// GetKeepAlive handles GET /system/keepalive
func (h *SystemHandler) GetKeepAlive(c *gin.Context) {
	lastPing, err := h.keepAliveRepo.LastPing(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, KeepAliveResponse{LastPing: lastPing})
}

// TriggerKeepAlive handles POST /system/keepalive. It records a ping
// immediately, independent of the scheduler interval.
func (h *SystemHandler) TriggerKeepAlive(c *gin.Context) {
	now := time.Now().UTC()
	if err := h.keepAliveRepo.Ping(c.Request.Context(), now); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, KeepAliveResponse{LastPing: &now})
}
