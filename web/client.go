package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/NomadCrew/feedback-portal/errors"
	"github.com/NomadCrew/feedback-portal/types"
)

// FeedbackAPI is the part of the feedback REST API the frontend calls.
type FeedbackAPI interface {
	CreateFeedback(ctx context.Context, req types.FeedbackCreate) (*types.Feedback, error)
	ListFeedback(ctx context.Context) ([]*types.Feedback, error)
	RespondToFeedback(ctx context.Context, id int64, response string) (*types.Feedback, error)
	DeleteFeedback(ctx context.Context, id int64) error
}

var _ FeedbackAPI = (*Client)(nil)

// Client calls the feedback API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a client for the API at baseURL (no trailing slash).
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) CreateFeedback(ctx context.Context, req types.FeedbackCreate) (*types.Feedback, error) {
	var fb types.Feedback
	if err := c.do(ctx, http.MethodPost, "/feedback", req, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

func (c *Client) ListFeedback(ctx context.Context) ([]*types.Feedback, error) {
	feedbacks := make([]*types.Feedback, 0)
	if err := c.do(ctx, http.MethodGet, "/feedback", nil, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (c *Client) RespondToFeedback(ctx context.Context, id int64, response string) (*types.Feedback, error) {
	var fb types.Feedback
	path := fmt.Sprintf("/feedback/%d/respond", id)
	if err := c.do(ctx, http.MethodPost, path, types.FeedbackRespond{Response: response}, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

func (c *Client) DeleteFeedback(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/feedback/%d", id), nil, nil)
}

// do sends one request. A request that gets no response becomes a
// TRANSPORT_ERROR; a non-2xx response becomes the AppError the API reported.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return apperrors.Transport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) *apperrors.AppError {
	var errResp types.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Message == "" {
		return &apperrors.AppError{
			Type:       apperrors.ServerError,
			Message:    fmt.Sprintf("API request failed with status %d", resp.StatusCode),
			HTTPStatus: resp.StatusCode,
		}
	}
	return &apperrors.AppError{
		Type:       apperrors.ErrorType(errResp.Type),
		Code:       errResp.Code,
		Message:    errResp.Message,
		Detail:     errResp.Details,
		HTTPStatus: resp.StatusCode,
	}
}
