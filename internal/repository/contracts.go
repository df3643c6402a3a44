package repository

import (
	"context"

	"github.com/maxviazov/feedback-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// FeedbackRepository declares persistence operations for feedback entries.
// I return domain models and surface domain errors from errors.go rather than PG codes.
type FeedbackRepository interface {
	Create(ctx context.Context, f model.Feedback) (model.Feedback, error)
	// FindPage returns entries newest first, skipping p.Offset and returning at most p.Limit.
	FindPage(ctx context.Context, p Page) ([]model.Feedback, error)
	Count(ctx context.Context) (int64, error)
}
