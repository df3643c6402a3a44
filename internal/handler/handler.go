package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/feedback-service/internal/service"
	"github.com/maxviazov/feedback-service/pkg/response"
)

// Options tunes the public routes.
type Options struct {
	// DefaultPerPage is used when a listing request has no perPage parameter.
	DefaultPerPage int
}

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, repo Pinger, feedbackSvc service.FeedbackService, opts Options) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewFeedbackHandler(feedbackSvc, opts.DefaultPerPage).Register(api)
	}

	r.NoRoute(func(c *gin.Context) {
		response.WriteErrorEnvelope(c, response.Error(
			response.WithCode(http.StatusNotFound),
			response.WithMessage("Route not found"),
		))
	})
}
