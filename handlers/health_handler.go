package handlers

import (
	"net/http"

	"github.com/NomadCrew/feedback-portal/types"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthService HealthServiceInterface
}

func NewHealthHandler(healthService HealthServiceInterface) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// LivenessCheck godoc
// @Summary      Liveness
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.Liveness
// @Router       /health [get]
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, types.Liveness{Status: "ok"})
}

// ReadinessCheck godoc
// @Summary      Readiness
// @Description  Pings the database and, when enabled, Redis.
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthCheck
// @Failure      503  {object}  types.HealthCheck
// @Router       /health/readiness [get]
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	health := h.healthService.CheckHealth(c.Request.Context())

	if health.Status == types.HealthStatusDown {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	c.JSON(http.StatusOK, health)
}
