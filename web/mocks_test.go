package web

import (
	"context"

	"github.com/NomadCrew/feedback-portal/types"
	"github.com/stretchr/testify/mock"
)

// MockFeedbackAPI implements FeedbackAPI for page tests.
type MockFeedbackAPI struct {
	mock.Mock
}

var _ FeedbackAPI = (*MockFeedbackAPI)(nil)

func (m *MockFeedbackAPI) CreateFeedback(ctx context.Context, req types.FeedbackCreate) (*types.Feedback, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Feedback), args.Error(1)
}

func (m *MockFeedbackAPI) ListFeedback(ctx context.Context) ([]*types.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Feedback), args.Error(1)
}

func (m *MockFeedbackAPI) RespondToFeedback(ctx context.Context, id int64, response string) (*types.Feedback, error) {
	args := m.Called(ctx, id, response)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Feedback), args.Error(1)
}

func (m *MockFeedbackAPI) DeleteFeedback(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
