package handler

import (
	"net/http"

	"github.com/cleberrangel/edge-relay-api/internal/model"
	"github.com/gin-gonic/gin"
)

// HealthHandler handles liveness checks
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// LivenessCheck returns basic liveness status
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /v1/health [get]
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}
