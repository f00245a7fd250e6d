package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/eventpulse/feedback-backend/config"
	"github.com/eventpulse/feedback-backend/types"
)

func TestEmailService_Disabled(t *testing.T) {
	svc := NewEmailServiceWithRegistry(&config.EmailConfig{Enabled: false}, prometheus.NewRegistry())

	assert.False(t, svc.Enabled())

	// Disabled service is a no-op, never an error
	err := svc.SendFeedbackNotification(context.Background(), &types.Feedback{
		EventName: "Go Workshop",
		Rating:    4,
	})
	assert.NoError(t, err)
}

func TestEmailService_EnabledBuildsClient(t *testing.T) {
	svc := NewEmailServiceWithRegistry(&config.EmailConfig{
		Enabled:      true,
		ResendAPIKey: "re_test_key",
		FromAddress:  "noreply@example.com",
		FromName:     "Event Feedback",
		AdminAddress: "admin@example.com",
	}, prometheus.NewRegistry())

	assert.True(t, svc.Enabled())
}
