package handler

import (
	"context"
	"net/http"
	"time"

	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// Pinger checks that the store answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeState exposes the last keep-alive result
type ProbeState interface {
	LastError() error
}

// HealthHandler reports liveness of the store
type HealthHandler struct {
	store   Pinger
	probe   ProbeState
	timeout time.Duration
	logger  coreport.Logger
}

// NewHealthHandler creates a health handler. probe may be nil when no keep-alive runs.
func NewHealthHandler(store Pinger, probe ProbeState, timeout time.Duration, logger coreport.Logger) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{store: store, probe: probe, timeout: timeout, logger: logger}
}

// Health handles GET /healthz
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Database: "up"}
	if h.probe != nil {
		resp.KeepAlive = "ok"
		if err := h.probe.LastError(); err != nil {
			resp.KeepAlive = "failing"
		}
	}

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("Health check failed", map[string]any{"error": err.Error()})
		resp.Status = "unavailable"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
