// Package store defines the persistence interfaces the handlers depend on.
package store

import (
	"context"

	"github.com/eventpulse/feedback-backend/types"
)

// FeedbackStore is the persistence gateway for feedback records. Lookups on
// missing IDs return ErrNotFound; they never surface as driver errors.
type FeedbackStore interface {
	// Create inserts a new record and returns it with the store-assigned
	// ID and creation timestamp filled in.
	Create(ctx context.Context, fb *types.Feedback) (*types.Feedback, error)

	// List returns all records, most recently created first.
	List(ctx context.Context) ([]*types.Feedback, error)

	// GetByID returns the record with the given ID, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*types.Feedback, error)

	// Update replaces every mutable field of the record with the given ID
	// and returns the stored result, or ErrNotFound.
	Update(ctx context.Context, id int64, fb *types.Feedback) (*types.Feedback, error)

	// Delete permanently removes the record with the given ID, or returns
	// ErrNotFound. There is no soft delete.
	Delete(ctx context.Context, id int64) error
}
