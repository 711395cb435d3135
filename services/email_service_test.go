package services

import (
	"context"
	"testing"

	"github.com/NomadCrew/feedback-portal/config"
	"github.com/NomadCrew/feedback-portal/types"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEmailSender struct {
	mock.Mock
}

func (m *mockEmailSender) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.SendEmailResponse), args.Error(1)
}

func testEmailConfig() *config.EmailConfig {
	return &config.EmailConfig{
		Enabled:      true,
		FromName:     "Customer Feedback",
		FromAddress:  "support@example.com",
		ResendAPIKey: "re_test_key",
	}
}

func counterTotal(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, c.Write(metric))
	return metric.GetCounter().GetValue()
}

func TestNewEmailService(t *testing.T) {
	cfg := testEmailConfig()
	service := NewEmailService(cfg, prometheus.NewRegistry())

	assert.NotNil(t, service)
	assert.Equal(t, cfg, service.config)
	assert.NotNil(t, service.sender)
	assert.NotNil(t, service.metrics)
}

func TestEmailService_NotifyResponse(t *testing.T) {
	answered := sampleFeedback(3)
	response := "Thanks <b>Alice</b>!"
	answered.Response = &response

	tests := []struct {
		name        string
		feedback    *types.Feedback
		setupMock   func(*mockEmailSender)
		expectError bool
		wantSent    float64
		wantErrors  float64
	}{
		{
			name:     "successful email send",
			feedback: answered,
			setupMock: func(m *mockEmailSender) {
				m.On("SendWithContext", mock.Anything, mock.MatchedBy(func(req *resend.SendEmailRequest) bool {
					return req.From == "Customer Feedback <support@example.com>" &&
						len(req.To) == 1 && req.To[0] == "a@x.com" &&
						req.Subject == "We responded to your feedback"
				})).Return(&resend.SendEmailResponse{Id: "email-1"}, nil)
			},
			wantSent: 1,
		},
		{
			name:     "failed email send",
			feedback: answered,
			setupMock: func(m *mockEmailSender) {
				m.On("SendWithContext", mock.Anything, mock.AnythingOfType("*resend.SendEmailRequest")).
					Return(nil, assert.AnError)
			},
			expectError: true,
			wantErrors:  1,
		},
		{
			name:        "unanswered feedback",
			feedback:    sampleFeedback(4),
			setupMock:   func(m *mockEmailSender) {},
			expectError: true,
			wantErrors:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mockEmailSender{}
			tt.setupMock(sender)
			service := newEmailService(testEmailConfig(), sender, prometheus.NewRegistry())

			err := service.NotifyResponse(context.Background(), tt.feedback)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			sender.AssertExpectations(t)
			assert.Equal(t, tt.wantSent, counterTotal(t, service.metrics.sentCount))
			assert.Equal(t, tt.wantErrors, counterTotal(t, service.metrics.errorCount))
		})
	}
}

func TestEmailService_NotifyResponse_EscapesContent(t *testing.T) {
	fb := sampleFeedback(5)
	fb.Message = "<script>alert(1)</script>"
	response := "Thanks"
	fb.Response = &response

	sender := &mockEmailSender{}
	var sent *resend.SendEmailRequest
	sender.On("SendWithContext", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*resend.SendEmailRequest) }).
		Return(&resend.SendEmailResponse{Id: "email-2"}, nil)

	service := newEmailService(testEmailConfig(), sender, prometheus.NewRegistry())
	require.NoError(t, service.NotifyResponse(context.Background(), fb))

	require.NotNil(t, sent)
	assert.NotContains(t, sent.Html, "<script>")
	assert.Contains(t, sent.Html, "&lt;script&gt;")
	assert.Contains(t, sent.Html, "Hi Alice")
}
