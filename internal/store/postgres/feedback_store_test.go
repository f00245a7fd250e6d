package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventpulse/feedback-backend/internal/store"
	"github.com/eventpulse/feedback-backend/types"
)

var feedbackCols = []string{
	"id", "name", "email", "event_name", "division", "rating",
	"comment", "suggestion", "status", "created_at",
}

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *FeedbackStore) {
	t.Helper()
	mockPool, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return mockPool, NewFeedbackStore(mockPool)
}

func feedbackRow(mockPool pgxmock.PgxPoolIface, id int64, createdAt time.Time) *pgxmock.Rows {
	comment := "Great speakers"
	return mockPool.NewRows(feedbackCols).AddRow(
		id, "Alya Putri", "alya@example.com", "Go Workshop",
		types.DivisionLnT, 4, &comment, (*string)(nil),
		(*types.FeedbackStatus)(nil), createdAt,
	)
}

func TestFeedbackStore_Create(t *testing.T) {
	mockPool, s := newMockStore(t)

	comment := "Great speakers"
	input := &types.Feedback{
		Name:      "Alya Putri",
		Email:     "alya@example.com",
		EventName: "Go Workshop",
		Division:  types.DivisionLnT,
		Rating:    4,
		Comment:   &comment,
	}

	createdAt := time.Now()
	mockPool.ExpectQuery(`INSERT INTO feedback`).
		WithArgs(input.Name, input.Email, input.EventName, input.Division,
			input.Rating, input.Comment, input.Suggestion).
		WillReturnRows(feedbackRow(mockPool, 1, createdAt))

	created, err := s.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Alya Putri", created.Name)
	assert.Nil(t, created.Status)
	assert.Equal(t, createdAt, created.CreatedAt)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestFeedbackStore_List(t *testing.T) {
	t.Run("orders newest first", func(t *testing.T) {
		mockPool, s := newMockStore(t)

		now := time.Now()
		rows := feedbackRow(mockPool, 2, now)
		comment := "Good venue"
		rows.AddRow(int64(1), "Budi Santoso", "budi@example.com", "PR Summit",
			types.DivisionPR, 5, &comment, (*string)(nil),
			(*types.FeedbackStatus)(nil), now.Add(-time.Hour))

		mockPool.ExpectQuery(`ORDER BY created_at DESC, id DESC`).
			WillReturnRows(rows)

		feedbacks, err := s.List(context.Background())
		require.NoError(t, err)
		require.Len(t, feedbacks, 2)
		assert.Equal(t, int64(2), feedbacks[0].ID)
		assert.Equal(t, int64(1), feedbacks[1].ID)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("empty table yields empty non-nil slice", func(t *testing.T) {
		mockPool, s := newMockStore(t)
		mockPool.ExpectQuery(`(?s)SELECT .+ FROM feedback`).
			WillReturnRows(mockPool.NewRows(feedbackCols))

		feedbacks, err := s.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, feedbacks)
		assert.Empty(t, feedbacks)
	})

	t.Run("query error propagates", func(t *testing.T) {
		mockPool, s := newMockStore(t)
		mockPool.ExpectQuery(`(?s)SELECT .+ FROM feedback`).
			WillReturnError(errors.New("pool closed"))

		_, err := s.List(context.Background())
		assert.Error(t, err)
	})
}

func TestFeedbackStore_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockPool, s := newMockStore(t)
		mockPool.ExpectQuery(`WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(feedbackRow(mockPool, 1, time.Now()))

		fb, err := s.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), fb.ID)
	})

	t.Run("missing row maps to ErrNotFound", func(t *testing.T) {
		mockPool, s := newMockStore(t)
		mockPool.ExpectQuery(`WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnRows(mockPool.NewRows(feedbackCols))

		_, err := s.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestFeedbackStore_Update(t *testing.T) {
	resolved := types.FeedbackStatusResolved
	input := &types.Feedback{
		Name:      "Alya Putri",
		Email:     "alya@example.com",
		EventName: "Go Workshop",
		Division:  types.DivisionLnT,
		Rating:    5,
		Status:    &resolved,
	}

	t.Run("replaces all mutable fields", func(t *testing.T) {
		mockPool, s := newMockStore(t)

		rows := mockPool.NewRows(feedbackCols).AddRow(
			int64(1), input.Name, input.Email, input.EventName,
			input.Division, input.Rating, (*string)(nil), (*string)(nil),
			&resolved, time.Now(),
		)

		mockPool.ExpectQuery(`UPDATE feedback`).
			WithArgs(input.Name, input.Email, input.EventName, input.Division,
				input.Rating, input.Comment, input.Suggestion, input.Status, int64(1)).
			WillReturnRows(rows)

		updated, err := s.Update(context.Background(), 1, input)
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Rating)
		require.NotNil(t, updated.Status)
		assert.Equal(t, types.FeedbackStatusResolved, *updated.Status)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("missing row maps to ErrNotFound", func(t *testing.T) {
		mockPool, s := newMockStore(t)
		mockPool.ExpectQuery(`UPDATE feedback`).
			WithArgs(input.Name, input.Email, input.EventName, input.Division,
				input.Rating, input.Comment, input.Suggestion, input.Status, int64(42)).
			WillReturnRows(mockPool.NewRows(feedbackCols))

		_, err := s.Update(context.Background(), 42, input)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestFeedbackStore_Delete(t *testing.T) {
	t.Run("deletes existing row", func(t *testing.T) {
		mockPool, s := newMockStore(t)
		mockPool.ExpectExec(`DELETE FROM feedback WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, s.Delete(context.Background(), 1))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("zero rows affected maps to ErrNotFound", func(t *testing.T) {
		mockPool, s := newMockStore(t)
		mockPool.ExpectExec(`DELETE FROM feedback WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, s.Delete(context.Background(), 7), store.ErrNotFound)
	})
}
