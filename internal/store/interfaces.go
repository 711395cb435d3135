package store

import (
	"context"

	"github.com/NomadCrew/feedback-portal/types"
)

// FeedbackStore persists feedback records.
//
// Implementations return ErrNotFound (possibly wrapped) when the id does not
// exist. Every method is a single atomic statement.
type FeedbackStore interface {
	// CreateFeedback inserts a record and returns it with the id and
	// created_at assigned by the database.
	CreateFeedback(ctx context.Context, fb *types.FeedbackCreate) (*types.Feedback, error)
	// ListFeedback returns every record, newest first, ties broken by id descending.
	ListFeedback(ctx context.Context) ([]*types.Feedback, error)
	GetFeedback(ctx context.Context, id int64) (*types.Feedback, error)
	// RespondToFeedback sets the response text and stamps responded_at with the current time.
	RespondToFeedback(ctx context.Context, id int64, response string) (*types.Feedback, error)
	DeleteFeedback(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}
