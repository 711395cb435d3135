package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/NomadCrew/feedback-portal/internal/store"
	"github.com/NomadCrew/feedback-portal/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool used by the store. pgxmock pools satisfy it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Ensure FeedbackStore implements store.FeedbackStore interface.
var _ store.FeedbackStore = (*FeedbackStore)(nil)

// FeedbackStore implements store.FeedbackStore on the feedbacks table.
type FeedbackStore struct {
	db DBTX
}

// NewFeedbackStore creates a new FeedbackStore
func NewFeedbackStore(db DBTX) *FeedbackStore {
	return &FeedbackStore{db: db}
}

const feedbackColumns = `id, name, email, message, rating, response, created_at, responded_at`

func scanFeedback(row pgx.Row) (*types.Feedback, error) {
	fb := &types.Feedback{}
	err := row.Scan(
		&fb.ID,
		&fb.Name,
		&fb.Email,
		&fb.Message,
		&fb.Rating,
		&fb.Response,
		&fb.CreatedAt,
		&fb.RespondedAt,
	)
	if err != nil {
		return nil, err
	}
	return fb, nil
}

// CreateFeedback inserts a new feedback row. id and created_at come from the database.
func (s *FeedbackStore) CreateFeedback(ctx context.Context, fb *types.FeedbackCreate) (*types.Feedback, error) {
	query := `
		INSERT INTO feedbacks (name, email, message, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + feedbackColumns

	created, err := scanFeedback(s.db.QueryRow(ctx, query, fb.Name, fb.Email, fb.Message, fb.Rating))
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return created, nil
}

// ListFeedback returns all rows, newest first.
func (s *FeedbackStore) ListFeedback(ctx context.Context) ([]*types.Feedback, error) {
	query := `
		SELECT ` + feedbackColumns + `
		FROM feedbacks
		ORDER BY created_at DESC, id DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	feedbacks := make([]*types.Feedback, 0)
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		feedbacks = append(feedbacks, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback rows: %w", err)
	}

	return feedbacks, nil
}

// GetFeedback retrieves a feedback row by id.
func (s *FeedbackStore) GetFeedback(ctx context.Context, id int64) (*types.Feedback, error) {
	query := `
		SELECT ` + feedbackColumns + `
		FROM feedbacks
		WHERE id = $1`

	fb, err := scanFeedback(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("feedback %d: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("error getting feedback by ID: %w", err)
	}
	return fb, nil
}

// RespondToFeedback overwrites the response and advances responded_at.
func (s *FeedbackStore) RespondToFeedback(ctx context.Context, id int64, response string) (*types.Feedback, error) {
	query := `
		UPDATE feedbacks
		SET response = $1, responded_at = NOW()
		WHERE id = $2
		RETURNING ` + feedbackColumns

	fb, err := scanFeedback(s.db.QueryRow(ctx, query, response, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("feedback %d: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to respond to feedback: %w", err)
	}
	return fb, nil
}

// DeleteFeedback hard-deletes a row.
func (s *FeedbackStore) DeleteFeedback(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM feedbacks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("feedback %d: %w", id, store.ErrNotFound)
	}
	return nil
}

// Ping checks database connectivity.
func (s *FeedbackStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
