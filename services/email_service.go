package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/resend/resend-go/v2"

	"github.com/eventpulse/feedback-backend/config"
	"github.com/eventpulse/feedback-backend/logger"
	"github.com/eventpulse/feedback-backend/types"
)

type EmailMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// EmailService notifies the admin mailbox about new feedback submissions
// through Resend. A disabled service is a no-op so callers never need to
// branch on configuration.
type EmailService struct {
	config  *config.EmailConfig
	client  *resend.Client
	metrics *EmailMetrics
}

func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return NewEmailServiceWithRegistry(cfg, prometheus.DefaultRegisterer)
}

func NewEmailServiceWithRegistry(cfg *config.EmailConfig, reg prometheus.Registerer) *EmailService {
	metrics := &EmailMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feedback_email_send_duration_seconds",
			Help:    "Time taken to send notification emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedback_email_errors_total",
			Help: "Total number of notification email sending errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedback_emails_sent_total",
			Help: "Total number of notification emails sent",
		}),
	}

	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.sentCount)

	svc := &EmailService{
		config:  cfg,
		metrics: metrics,
	}
	if cfg.Enabled {
		logger.GetLogger().Infow("Initializing email notifications",
			"from", cfg.FromAddress,
			"admin", cfg.AdminAddress)
		svc.client = resend.NewClient(cfg.ResendAPIKey)
	}
	return svc
}

// Enabled reports whether notifications are configured to be sent.
func (s *EmailService) Enabled() bool {
	return s.config.Enabled && s.client != nil
}

// SendFeedbackNotification emails a summary of a new submission to the admin
// address. Callers run this in a goroutine; failures are logged and counted
// but never affect the submission itself.
func (s *EmailService) SendFeedbackNotification(ctx context.Context, fb *types.Feedback) error {
	if !s.Enabled() {
		return nil
	}

	startTime := time.Now()
	log := logger.GetLogger()
	defer func() {
		s.metrics.sendLatency.Observe(time.Since(startTime).Seconds())
	}()

	tmpl, err := template.New("feedback").Parse(feedbackEmailTemplate)
	if err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to parse email template", "error", err)
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var htmlContent bytes.Buffer
	if err := tmpl.Execute(&htmlContent, fb); err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to execute email template", "error", err)
		return fmt.Errorf("failed to execute template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:      []string{s.config.AdminAddress},
		Subject: fmt.Sprintf("New feedback for %s (%d/5)", fb.EventName, fb.Rating),
		Html:    htmlContent.String(),
	}

	_, err = s.client.Emails.Send(params)
	if err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to send feedback notification",
			"error", err,
			"feedback_id", fb.ID)
		return fmt.Errorf("email send failed: %w", err)
	}

	s.metrics.sentCount.Inc()
	log.Infow("Feedback notification sent",
		"feedback_id", fb.ID,
		"submitter", logger.MaskEmail(fb.Email))

	return nil
}

const feedbackEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Event Feedback</title>
</head>
<body style="font-family: sans-serif; color: #222;">
    <h2>New feedback submitted</h2>
    <table cellpadding="6">
        <tr><td><strong>Event</strong></td><td>{{.EventName}}</td></tr>
        <tr><td><strong>Division</strong></td><td>{{.Division}}</td></tr>
        <tr><td><strong>Rating</strong></td><td>{{.Rating}}/5</td></tr>
        <tr><td><strong>From</strong></td><td>{{.Name}} ({{.Email}})</td></tr>
        {{if .Comment}}<tr><td><strong>Comment</strong></td><td>{{.Comment}}</td></tr>{{end}}
        {{if .Suggestion}}<tr><td><strong>Suggestion</strong></td><td>{{.Suggestion}}</td></tr>{{end}}
    </table>
</body>
</html>`
