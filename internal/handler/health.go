package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/feedback-service/pkg/response"
)

// Pinger is the minimal contract I need from a repository to check readiness.
// I keep it local to the handler package to avoid coupling and simplify tests.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness and readiness endpoints.
type HealthHandler struct {
	repo Pinger
}

func NewHealthHandler(repo Pinger) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// Liveness responds OK if the process is up; it doesn't check dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	response.Write(c, response.Success(gin.H{"status": "alive"}))
}

// Readiness verifies the storage backend answers a ping.
// The cause is logged, not returned, so probes never see connection details.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.repo == nil {
		response.WriteErrorEnvelope(c, response.Error(
			response.WithCode(http.StatusServiceUnavailable),
			response.WithMessage("Storage not configured"),
		))
		return
	}
	if err := h.repo.Ping(c.Request.Context()); err != nil {
		_ = c.Error(err)
		response.WriteErrorEnvelope(c, response.Error(
			response.WithCode(http.StatusServiceUnavailable),
			response.WithMessage("Service unavailable"),
		))
		return
	}
	response.Write(c, response.Success(gin.H{"status": "ready"}))
}
