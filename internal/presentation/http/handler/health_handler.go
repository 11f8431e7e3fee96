package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aiqso/odoo-bridge/internal/application/service"
	"github.com/aiqso/odoo-bridge/internal/presentation/http/dto/response"
)

// HealthHandler handles the liveness probe
type HealthHandler struct {
	health *service.HealthService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(health *service.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

// Check handles GET /health. An unreachable ERP makes the probe unhealthy but
// still answers 200: orchestrators watch the body, uptime checks the status.
func (h *HealthHandler) Check(c *gin.Context) {
	body := response.HealthResponse{
		Status:    "healthy",
		Odoo:      "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.health.Probe(c.Request.Context()); err != nil {
		body.Status = "unhealthy"
		body.Odoo = "disconnected"
		body.Error = err.Error()
	}
	c.JSON(http.StatusOK, body)
}
