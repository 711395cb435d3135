package handlers

import (
	"context"

	"github.com/NomadCrew/feedback-portal/types"
)

// FeedbackServiceInterface defines the feedback service methods needed by handlers
type FeedbackServiceInterface interface {
	Create(ctx context.Context, req types.FeedbackCreate) (*types.Feedback, error)
	ListAll(ctx context.Context) ([]*types.Feedback, error)
	GetByID(ctx context.Context, id int64) (*types.Feedback, error)
	Respond(ctx context.Context, id int64, responseText string) (*types.Feedback, error)
	Delete(ctx context.Context, id int64) error
}

// HealthServiceInterface defines the health service methods needed by handlers
type HealthServiceInterface interface {
	CheckHealth(ctx context.Context) types.HealthCheck
}
