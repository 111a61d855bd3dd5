package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger is the slice of the recipe service the health checks need
type Pinger interface {
	Ping(ctx context.Context) error
	CachePing(ctx context.Context) error
}

// HealthHandler reports liveness and readiness
type HealthHandler struct {
	deps    Pinger
	log     *zap.Logger
	timeout time.Duration
}

func NewHealthHandler(deps Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{deps: deps, log: log, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	health := router.Group("/health")
	{
		health.GET("", h.Ready)
		health.GET("/live", h.Live)
		health.GET("/ready", h.Ready)
	}
}

// Live only reports that the process is serving requests
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready requires the database. A failing cache degrades the service but the
// catalog keeps answering from storage, so it does not fail the probe.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "ok", "database": "up", "cache": "up"}

	if err := h.deps.Ping(ctx); err != nil {
		h.log.Error("database health check failed", zap.Error(err))
		status = http.StatusServiceUnavailable
		body["status"] = "unavailable"
		body["database"] = "down"
	}
	if err := h.deps.CachePing(ctx); err != nil {
		h.log.Warn("cache health check failed", zap.Error(err))
		body["cache"] = "degraded"
		if status == http.StatusOK {
			body["status"] = "degraded"
		}
	}

	c.JSON(status, body)
}
