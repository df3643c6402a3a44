package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/feedback-service/internal/model"
	"github.com/maxviazov/feedback-service/internal/repository"
)

type feedbackRepository struct{ db q }

func NewFeedbackRepository(pool *pgxpool.Pool) repository.FeedbackRepository {
	if pool == nil {
		return &feedbackRepository{}
	}
	return &feedbackRepository{db: pool}
}

func (r *feedbackRepository) ready() error {
	if r.db == nil {
		return ensurePool(nil)
	}
	return nil
}

func (r *feedbackRepository) Create(ctx context.Context, f model.Feedback) (model.Feedback, error) {
	if err := r.ready(); err != nil {
		return model.Feedback{}, err
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO feedback (id, name, email, feedback, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, email, feedback, created_at`,
		f.ID, f.Name, f.Email, f.Feedback, f.CreatedAt,
	)
	out, err := scanFeedback(row)
	if err != nil {
		return model.Feedback{}, repository.MapPgError("create feedback", err)
	}
	return out, nil
}

func (r *feedbackRepository) FindPage(ctx context.Context, p repository.Page) ([]model.Feedback, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, feedback, created_at
		 FROM feedback
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		p.Limit, p.Offset,
	)
	if err != nil {
		return nil, repository.MapPgError("find feedback page", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Feedback, error) {
		return scanFeedback(row)
	})
	if err != nil {
		return nil, repository.MapPgError("scan feedback page", err)
	}
	return items, nil
}

func (r *feedbackRepository) Count(ctx context.Context) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&total); err != nil {
		return 0, repository.MapPgError("count feedback", err)
	}
	return total, nil
}

func scanFeedback(row pgx.Row) (model.Feedback, error) {
	var f model.Feedback
	err := row.Scan(&f.ID, &f.Name, &f.Email, &f.Feedback, &f.CreatedAt)
	return f, err
}

var _ repository.FeedbackRepository = (*feedbackRepository)(nil)
