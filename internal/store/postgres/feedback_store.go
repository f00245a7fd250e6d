// Package postgres implements the store interfaces over a pgx connection pool.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/eventpulse/feedback-backend/internal/store"
	"github.com/eventpulse/feedback-backend/types"
)

// PgxPool is the subset of pgxpool.Pool the stores use. Satisfied by both
// *pgxpool.Pool and pgxmock's pool interface.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// FeedbackStore implements store.FeedbackStore using PostgreSQL.
type FeedbackStore struct {
	pool PgxPool
}

var _ store.FeedbackStore = (*FeedbackStore)(nil)

// NewFeedbackStore creates a new FeedbackStore instance.
func NewFeedbackStore(pool PgxPool) *FeedbackStore {
	return &FeedbackStore{pool: pool}
}

const feedbackColumns = `id, name, email, event_name, division, rating, comment, suggestion, status, created_at`

// Create inserts a new feedback record. ID and created_at are assigned by the
// database; status is left NULL on creation.
func (s *FeedbackStore) Create(ctx context.Context, fb *types.Feedback) (*types.Feedback, error) {
	query := `
		INSERT INTO feedback (name, email, event_name, division, rating, comment, suggestion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + feedbackColumns

	row := s.pool.QueryRow(ctx, query,
		fb.Name,
		fb.Email,
		fb.EventName,
		fb.Division,
		fb.Rating,
		fb.Comment,
		fb.Suggestion,
	)

	return scanFeedback(row)
}

// List retrieves all feedback records, newest first. Records created at the
// same instant fall back to ID order so the ordering stays deterministic.
func (s *FeedbackStore) List(ctx context.Context) ([]*types.Feedback, error) {
	query := `
		SELECT ` + feedbackColumns + `
		FROM feedback
		ORDER BY created_at DESC, id DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feedbacks := []*types.Feedback{}
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, fb)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return feedbacks, nil
}

// GetByID retrieves a feedback record by its ID.
func (s *FeedbackStore) GetByID(ctx context.Context, id int64) (*types.Feedback, error) {
	query := `
		SELECT ` + feedbackColumns + `
		FROM feedback
		WHERE id = $1`

	fb, err := scanFeedback(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	return fb, nil
}

// Update replaces all mutable fields of an existing record. ID and created_at
// are immutable. There is no version check: concurrent updates to the same
// record are last-writer-wins.
func (s *FeedbackStore) Update(ctx context.Context, id int64, fb *types.Feedback) (*types.Feedback, error) {
	query := `
		UPDATE feedback
		SET name = $1,
			email = $2,
			event_name = $3,
			division = $4,
			rating = $5,
			comment = $6,
			suggestion = $7,
			status = $8
		WHERE id = $9
		RETURNING ` + feedbackColumns

	row := s.pool.QueryRow(ctx, query,
		fb.Name,
		fb.Email,
		fb.EventName,
		fb.Division,
		fb.Rating,
		fb.Comment,
		fb.Suggestion,
		fb.Status,
		id,
	)

	updated, err := scanFeedback(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	return updated, nil
}

// Delete permanently removes a feedback record.
func (s *FeedbackStore) Delete(ctx context.Context, id int64) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

func scanFeedback(row pgx.Row) (*types.Feedback, error) {
	fb := &types.Feedback{}
	err := row.Scan(
		&fb.ID,
		&fb.Name,
		&fb.Email,
		&fb.EventName,
		&fb.Division,
		&fb.Rating,
		&fb.Comment,
		&fb.Suggestion,
		&fb.Status,
		&fb.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return fb, nil
}
