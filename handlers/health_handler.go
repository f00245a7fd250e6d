package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventpulse/feedback-backend/logger"
	"github.com/eventpulse/feedback-backend/services"
	"github.com/eventpulse/feedback-backend/types"
)

// HealthHandler serves the probe endpoints. Liveness only says the process is
// running; readiness gates on the database, the one dependency feedback
// collection cannot work without. Redis backs the submission rate limiter,
// which fails open, so a redis outage degrades readiness instead of failing it.
type HealthHandler struct {
	healthService *services.HealthService
	startTime     time.Time
}

func NewHealthHandler(healthService *services.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
		startTime:     time.Now(),
	}
}

// LivenessCheck godoc
// @Summary      Liveness probe
// @Description  Reports that the process is up without touching dependencies
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.MessageResponse
// @Router       /health/liveness [get]
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, types.MessageResponse{Message: "alive"})
}

// ReadinessCheck godoc
// @Summary      Readiness probe
// @Description  Reports whether the service can accept feedback traffic
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthCheck
// @Failure      503  {object}  types.HealthCheck
// @Router       /health/readiness [get]
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	health := h.healthService.CheckHealth(c.Request.Context())

	switch health.Status {
	case types.HealthStatusDown:
		c.JSON(http.StatusServiceUnavailable, health)
	case types.HealthStatusDegraded:
		// Still taking submissions, but without rate limiting
		logger.GetLogger().Warnw("Serving degraded",
			"components", health.Components,
			"request_id", c.GetString("request_id"))
		c.JSON(http.StatusOK, health)
	default:
		c.JSON(http.StatusOK, health)
	}
}

// DetailedHealth godoc
// @Summary      Detailed health report
// @Description  Per-component status plus version and uptime, for dashboards
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthCheck
// @Router       /health [get]
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	health := h.healthService.CheckHealth(c.Request.Context())
	health.Uptime = time.Since(h.startTime).Round(time.Second).String()
	c.JSON(http.StatusOK, health)
}
