// Package memory provides a thread-safe in-process FeedbackRepository for local runs and tests.
// Entries do not survive a restart.
package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/maxviazov/feedback-service/internal/model"
	"github.com/maxviazov/feedback-service/internal/repository"
)

type FeedbackRepository struct {
	mu      sync.RWMutex
	entries []model.Feedback
	ids     map[uuid.UUID]struct{}
}

func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{ids: make(map[uuid.UUID]struct{})}
}

func (r *FeedbackRepository) Create(ctx context.Context, f model.Feedback) (model.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return model.Feedback{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.ids[f.ID]; dup {
		return model.Feedback{}, repository.ErrAlreadyExists
	}
	r.ids[f.ID] = struct{}{}

	// keep entries newest first so FindPage is a plain slice window
	i := sort.Search(len(r.entries), func(i int) bool { return newer(f, r.entries[i]) })
	r.entries = append(r.entries, model.Feedback{})
	copy(r.entries[i+1:], r.entries[i:])
	r.entries[i] = f
	return f, nil
}

func (r *FeedbackRepository) FindPage(ctx context.Context, p repository.Page) ([]model.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p.Offset < 0 || p.Offset >= len(r.entries) || p.Limit <= 0 {
		return []model.Feedback{}, nil
	}
	end := len(r.entries)
	if p.Limit < end-p.Offset {
		end = p.Offset + p.Limit
	}
	out := make([]model.Feedback, end-p.Offset)
	copy(out, r.entries[p.Offset:end])
	return out, nil
}

func (r *FeedbackRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.entries)), nil
}

// Ping always succeeds; there is nothing to reach.
func (r *FeedbackRepository) Ping(ctx context.Context) error { return ctx.Err() }

// newer orders by created_at DESC, id DESC, the same order the postgres query uses.
func newer(a, b model.Feedback) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) > 0
}

var (
	_ repository.FeedbackRepository = (*FeedbackRepository)(nil)
	_ repository.Pinger             = (*FeedbackRepository)(nil)
)
