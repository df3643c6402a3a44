// Package contract holds behaviour suites every repository implementation must pass.
// Storage packages wire their own factories into these from their tests.
package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/maxviazov/feedback-service/internal/model"
	"github.com/maxviazov/feedback-service/internal/repository"
)

type FeedbackFactory func(t *testing.T) (repository.FeedbackRepository, func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func entry(i int) model.Feedback {
	return model.Feedback{
		ID:        uuid.New(),
		Name:      fmt.Sprintf("User %d", i),
		Email:     fmt.Sprintf("user%d@example.com", i),
		Feedback:  fmt.Sprintf("feedback #%d", i),
		CreatedAt: base.Add(time.Duration(i) * time.Minute),
	}
}

func seed(t *testing.T, repo repository.FeedbackRepository, n int) []model.Feedback {
	t.Helper()
	out := make([]model.Feedback, 0, n)
	for i := 0; i < n; i++ {
		f, err := repo.Create(context.Background(), entry(i))
		if err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
		out = append(out, f)
	}
	return out
}

func RunFeedbackRepositoryContract(t *testing.T, makeRepo FeedbackFactory) {
	t.Helper()

	t.Run("create_returns_stored_row", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		in := entry(1)
		got, err := repo.Create(context.Background(), in)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if got.ID != in.ID || got.Name != in.Name || got.Email != in.Email || got.Feedback != in.Feedback {
			t.Fatalf("mismatch: %+v", got)
		}
		if !got.CreatedAt.Equal(in.CreatedAt) {
			t.Fatalf("created_at mismatch: got %v want %v", got.CreatedAt, in.CreatedAt)
		}
	})

	t.Run("create_duplicate_id_conflict", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		in := entry(1)
		if _, err := repo.Create(ctx, in); err != nil {
			t.Fatalf("seed: %v", err)
		}
		_, err := repo.Create(ctx, in)
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("count", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		n, err := repo.Count(context.Background())
		if err != nil || n != 0 {
			t.Fatalf("empty count: n=%d err=%v", n, err)
		}
		seed(t, repo, 4)
		n, err = repo.Count(context.Background())
		if err != nil || n != 4 {
			t.Fatalf("count: n=%d err=%v", n, err)
		}
	})

	t.Run("find_page_newest_first", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seeded := seed(t, repo, 5)
		got, err := repo.FindPage(context.Background(), repository.Page{Limit: 10, Offset: 0})
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(got) != 5 {
			t.Fatalf("expected 5 items, got %d", len(got))
		}
		for i := range got {
			want := seeded[len(seeded)-1-i]
			if got[i].ID != want.ID {
				t.Fatalf("position %d: got %s want %s", i, got[i].Name, want.Name)
			}
		}
	})

	t.Run("find_page_windows", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seeded := seed(t, repo, 7)
		ctx := context.Background()

		wantLens := map[int]int{0: 3, 3: 3, 6: 1, 7: 0, 100: 0}
		for offset, wantLen := range wantLens {
			got, err := repo.FindPage(ctx, repository.Page{Limit: 3, Offset: offset})
			if err != nil {
				t.Fatalf("offset %d: %v", offset, err)
			}
			if len(got) != wantLen {
				t.Fatalf("offset %d: expected %d items, got %d", offset, wantLen, len(got))
			}
		}

		second, err := repo.FindPage(ctx, repository.Page{Limit: 3, Offset: 3})
		if err != nil {
			t.Fatalf("second page: %v", err)
		}
		// newest first: offset 3 starts at the fourth newest entry
		if second[0].ID != seeded[3].ID {
			t.Fatalf("second page starts at %s, want %s", second[0].Name, seeded[3].Name)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()

	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			t.Fatalf("ping failed: %v", err)
		}
	})
}
