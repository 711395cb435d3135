package types

import "time"

// Feedback is one customer submission and its optional admin response.
// Response and RespondedAt are either both nil or both set.
type Feedback struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Message     string     `json:"message"`
	Rating      int        `json:"rating"`
	Response    *string    `json:"response"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at"`
}

// FeedbackState is derived from the presence of a response.
type FeedbackState string

const (
	FeedbackStateUnanswered FeedbackState = "unanswered"
	FeedbackStateAnswered   FeedbackState = "answered"
)

// State reports whether the record has been answered yet.
func (f *Feedback) State() FeedbackState {
	if f.Response != nil {
		return FeedbackStateAnswered
	}
	return FeedbackStateUnanswered
}

// IsAnswered is a template-friendly shortcut for State.
func (f *Feedback) IsAnswered() bool {
	return f.State() == FeedbackStateAnswered
}

// FeedbackCreate is the request body for submitting feedback.
// Field rules are enforced by the feedback service after trimming.
type FeedbackCreate struct {
	Name    string `json:"name" example:"Alice"`
	Email   string `json:"email" example:"alice@example.com"`
	Message string `json:"message" example:"Great service"`
	Rating  int    `json:"rating" example:"5"`
}

// FeedbackRespond is the request body for answering a feedback record.
type FeedbackRespond struct {
	Response string `json:"response" example:"Thank you!"`
}
