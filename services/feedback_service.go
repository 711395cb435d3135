package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "github.com/NomadCrew/feedback-portal/errors"
	"github.com/NomadCrew/feedback-portal/internal/store"
	"github.com/NomadCrew/feedback-portal/logger"
	"github.com/NomadCrew/feedback-portal/types"
	"go.uber.org/zap"
)

const (
	MaxNameLength  = 100
	MaxEmailLength = 150
	MinRating      = 1
	MaxRating      = 5
)

// ResponseNotifier is told about every successful response. Failures are
// logged and never fail the response itself.
type ResponseNotifier interface {
	NotifyResponse(ctx context.Context, fb *types.Feedback) error
}

// FeedbackService validates and runs the feedback lifecycle operations.
// Every error it returns is an *errors.AppError.
type FeedbackService struct {
	store    store.FeedbackStore
	notifier ResponseNotifier
	metrics  *FeedbackMetrics
	log      *zap.SugaredLogger
}

// FeedbackServiceOption configures a FeedbackService.
type FeedbackServiceOption func(*FeedbackService)

// WithResponseNotifier sends a notification after each successful Respond.
func WithResponseNotifier(n ResponseNotifier) FeedbackServiceOption {
	return func(s *FeedbackService) {
		s.notifier = n
	}
}

// WithMetrics records operation outcomes.
func WithMetrics(m *FeedbackMetrics) FeedbackServiceOption {
	return func(s *FeedbackService) {
		s.metrics = m
	}
}

func NewFeedbackService(feedbackStore store.FeedbackStore, opts ...FeedbackServiceOption) *FeedbackService {
	s := &FeedbackService{
		store: feedbackStore,
		log:   logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateFeedbackCreate trims the input in place and checks every field rule.
func ValidateFeedbackCreate(req *types.FeedbackCreate) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	switch {
	case req.Name == "":
		return apperrors.ValidationFailed("Name is required.", "name")
	case hasNUL(req.Name):
		return apperrors.ValidationFailed("Name contains invalid characters.", "name")
	case utf8.RuneCountInString(req.Name) > MaxNameLength:
		return apperrors.ValidationFailed(fmt.Sprintf("Name must be at most %d characters.", MaxNameLength), "name")
	case req.Email == "":
		return apperrors.ValidationFailed("Email is required.", "email")
	case hasNUL(req.Email):
		return apperrors.ValidationFailed("Email contains invalid characters.", "email")
	case utf8.RuneCountInString(req.Email) > MaxEmailLength:
		return apperrors.ValidationFailed(fmt.Sprintf("Email must be at most %d characters.", MaxEmailLength), "email")
	case req.Message == "":
		return apperrors.ValidationFailed("Message is required.", "message")
	case hasNUL(req.Message):
		return apperrors.ValidationFailed("Message contains invalid characters.", "message")
	case req.Rating < MinRating || req.Rating > MaxRating:
		return apperrors.ValidationFailed(
			fmt.Sprintf("Rating must be between %d and %d.", MinRating, MaxRating),
			fmt.Sprintf("rating=%d", req.Rating))
	}
	return nil
}

// PostgreSQL text columns cannot store NUL.
func hasNUL(s string) bool {
	return strings.ContainsRune(s, 0)
}

// Create validates and persists a new feedback record.
func (s *FeedbackService) Create(ctx context.Context, req types.FeedbackCreate) (*types.Feedback, error) {
	if err := ValidateFeedbackCreate(&req); err != nil {
		s.metrics.observe("create", OutcomeValidationError)
		return nil, err
	}

	fb, err := s.store.CreateFeedback(ctx, &req)
	if err != nil {
		return nil, s.storeError("create", 0, err)
	}

	s.metrics.observe("create", OutcomeSuccess)
	s.log.Infow("Feedback submitted",
		"feedbackID", fb.ID,
		"email", logger.MaskEmail(fb.Email),
		"rating", fb.Rating)
	return fb, nil
}

// ListAll returns every record, newest first. An empty store yields an empty slice.
func (s *FeedbackService) ListAll(ctx context.Context) ([]*types.Feedback, error) {
	feedbacks, err := s.store.ListFeedback(ctx)
	if err != nil {
		return nil, s.storeError("list", 0, err)
	}
	if feedbacks == nil {
		feedbacks = []*types.Feedback{}
	}
	s.metrics.observe("list", OutcomeSuccess)
	return feedbacks, nil
}

func (s *FeedbackService) GetByID(ctx context.Context, id int64) (*types.Feedback, error) {
	fb, err := s.store.GetFeedback(ctx, id)
	if err != nil {
		return nil, s.storeError("get", id, err)
	}
	s.metrics.observe("get", OutcomeSuccess)
	return fb, nil
}

// Respond attaches a response to the record and stamps responded_at.
// Calling it again overwrites the text and advances the timestamp.
func (s *FeedbackService) Respond(ctx context.Context, id int64, responseText string) (*types.Feedback, error) {
	responseText = strings.TrimSpace(responseText)
	if responseText == "" {
		s.metrics.observe("respond", OutcomeValidationError)
		return nil, apperrors.ValidationFailed("Response cannot be empty.", "response")
	}
	if hasNUL(responseText) {
		s.metrics.observe("respond", OutcomeValidationError)
		return nil, apperrors.ValidationFailed("Response contains invalid characters.", "response")
	}

	fb, err := s.store.RespondToFeedback(ctx, id, responseText)
	if err != nil {
		return nil, s.storeError("respond", id, err)
	}
	s.metrics.observe("respond", OutcomeSuccess)
	s.log.Infow("Feedback answered", "feedbackID", id)

	if s.notifier != nil {
		if err := s.notifier.NotifyResponse(ctx, fb); err != nil {
			s.log.Warnw("Failed to notify submitter about response",
				"feedbackID", id,
				"email", logger.MaskEmail(fb.Email),
				"error", err)
		}
	}
	return fb, nil
}

// Delete removes the record permanently.
func (s *FeedbackService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteFeedback(ctx, id); err != nil {
		return s.storeError("delete", id, err)
	}
	s.metrics.observe("delete", OutcomeSuccess)
	s.log.Infow("Feedback deleted", "feedbackID", id)
	return nil
}

func (s *FeedbackService) storeError(operation string, id int64, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		s.metrics.observe(operation, OutcomeNotFound)
		return apperrors.NotFound("Feedback", id)
	}
	s.metrics.observe(operation, OutcomeError)
	return apperrors.NewDatabaseError(err)
}
