package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/schoolhub/internal/app/models/dto"
)

// HealthController reports whether the API and its store are reachable
type HealthController struct {
	store  string
	ping   func(ctx context.Context) error
	logger zerolog.Logger
}

// NewHealthController creates a HealthController. ping may be nil for stores that cannot fail.
func NewHealthController(store string, ping func(ctx context.Context) error, logger zerolog.Logger) *HealthController {
	return &HealthController{store: store, ping: ping, logger: logger}
}

// Health checks the store
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthController) Health(ctx *gin.Context) {
	if h.ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(pingCtx); err != nil {
			h.logger.Error().Err(err).Str("store", h.store).Msg("Health check failed")
			ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Success: false, Status: "unavailable", Store: h.store})
			return
		}
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Success: true, Status: "ok", Store: h.store})
}
