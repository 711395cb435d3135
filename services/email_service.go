package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/NomadCrew/feedback-portal/config"
	"github.com/NomadCrew/feedback-portal/logger"
	"github.com/NomadCrew/feedback-portal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/resend/resend-go/v2"
)

// emailSender is the part of resend.EmailsSvc the service uses.
type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type EmailMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// EmailService emails submitters when their feedback is answered.
type EmailService struct {
	config  *config.EmailConfig
	sender  emailSender
	tmpl    *template.Template
	metrics *EmailMetrics
}

var _ ResponseNotifier = (*EmailService)(nil)

func NewEmailService(cfg *config.EmailConfig, reg prometheus.Registerer) *EmailService {
	logger.GetLogger().Infow("Initializing email service",
		"from", cfg.FromAddress,
		"apikey", logger.MaskSensitiveString(cfg.ResendAPIKey, 3, 0))

	client := resend.NewClient(cfg.ResendAPIKey)
	return newEmailService(cfg, client.Emails, reg)
}

func newEmailService(cfg *config.EmailConfig, sender emailSender, reg prometheus.Registerer) *EmailService {
	metrics := &EmailMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feedback_email_send_duration_seconds",
			Help:    "Time taken to send response emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedback_email_errors_total",
			Help: "Total number of response email sending errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedback_emails_sent_total",
			Help: "Total number of response emails sent",
		}),
	}

	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.sentCount)

	return &EmailService{
		config:  cfg,
		sender:  sender,
		tmpl:    template.Must(template.New("response").Parse(responseEmailTemplate)),
		metrics: metrics,
	}
}

// NotifyResponse sends the submitter their original message and the response.
func (s *EmailService) NotifyResponse(ctx context.Context, fb *types.Feedback) error {
	startTime := time.Now()
	log := logger.GetLogger()
	defer func() {
		s.metrics.sendLatency.Observe(time.Since(startTime).Seconds())
	}()

	if fb.Response == nil {
		s.metrics.errorCount.Inc()
		return fmt.Errorf("feedback %d has no response to send", fb.ID)
	}

	var htmlContent bytes.Buffer
	err := s.tmpl.Execute(&htmlContent, map[string]interface{}{
		"Name":     fb.Name,
		"Message":  fb.Message,
		"Rating":   fb.Rating,
		"Response": *fb.Response,
	})
	if err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to execute email template", "error", err)
		return fmt.Errorf("failed to execute template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:      []string{fb.Email},
		Subject: "We responded to your feedback",
		Html:    htmlContent.String(),
	}

	if _, err := s.sender.SendWithContext(ctx, params); err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to send email",
			"error", err,
			"to", logger.MaskEmail(fb.Email),
			"feedbackID", fb.ID)
		return fmt.Errorf("email send failed: %w", err)
	}

	s.metrics.sentCount.Inc()
	log.Infow("Response email sent",
		"to", logger.MaskEmail(fb.Email),
		"feedbackID", fb.ID)
	return nil
}

const responseEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Your feedback has a response</title>
    <style>
        body { font-family: sans-serif; background-color: #f7f7f7; color: #333333; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 20px auto; background-color: #ffffff; padding: 30px; border-radius: 12px; }
        blockquote { border-left: 4px solid #dee2e6; margin: 0; padding: 8px 16px; color: #6c757d; }
        .response { background-color: #e8f4fd; padding: 16px; border-radius: 8px; }
    </style>
</head>
<body>
    <div class="container">
        <p>Hi {{.Name}},</p>
        <p>Thank you for your feedback ({{.Rating}}/5). You wrote:</p>
        <blockquote>{{.Message}}</blockquote>
        <p>Our team responded:</p>
        <div class="response">{{.Response}}</div>
    </div>
</body>
</html>`
