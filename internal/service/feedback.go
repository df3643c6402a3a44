package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/feedback-service/internal/model"
	"github.com/maxviazov/feedback-service/internal/repository"
)

// feedbackService holds feedback use-case logic: validation + orchestration, no transport / SQL details.
type feedbackService struct {
	repo  repository.FeedbackRepository
	log   zerolog.Logger
	now   func() time.Time
	newID func() uuid.UUID
}

func NewFeedbackService(repo repository.FeedbackRepository, logger zerolog.Logger) FeedbackService {
	l := logger.With().Str("module", "service").Str("component", "feedback").Logger()
	return &feedbackService{repo: repo, log: l, now: time.Now, newID: uuid.New}
}

func (s *feedbackService) Submit(ctx context.Context, in SubmitInput) (model.Feedback, error) {
	start := time.Now()
	sub := normalizeSubmission(in)
	if err := validateSubmission(sub); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("feedback validation failed")
		return model.Feedback{}, err
	}

	out, err := s.repo.Create(ctx, model.Feedback{
		ID:        s.newID(),
		Name:      sub.Name,
		Email:     sub.Email,
		Feedback:  sub.Feedback,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Msg("create feedback failed")
		return model.Feedback{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("feedback_id", out.ID.String()).Msg("feedback created")
	return out, nil
}

func (s *feedbackService) List(ctx context.Context, page repository.Page) (repository.PageResult[model.Feedback], error) {
	p := normalizePage(page)

	var (
		items []model.Feedback
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.FindPage(gctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list feedback failed")
		return repository.PageResult[model.Feedback]{}, err
	}

	if items == nil {
		items = []model.Feedback{}
	}
	return repository.PageResult[model.Feedback]{Items: items, Total: total}, nil
}
