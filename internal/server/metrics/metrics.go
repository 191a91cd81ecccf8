// Package metrics defines the Prometheus instrumentation for the delivery
// pipeline, exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WebhookEventsTotal counts processed payment webhooks by outcome
	// (accepted, rejected, replayed, misconfigured, error).
	WebhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "album_webhook_events_total",
		Help: "Processed payment webhook events by outcome.",
	}, []string{"outcome"})

	// DeliveriesTotal counts album bundle deliveries by outcome.
	DeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "album_deliveries_total",
		Help: "Album bundle deliveries by outcome.",
	}, []string{"outcome"})

	// UploadedBytesTotal accumulates bytes pushed to object storage.
	UploadedBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "album_uploaded_bytes_total",
		Help: "Total bytes uploaded to object storage.",
	})

	// EmailSendsTotal counts notification email attempts by outcome.
	EmailSendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "album_email_sends_total",
		Help: "Notification email attempts by outcome.",
	}, []string{"outcome"})
)

// Outcome label values.
const (
	OutcomeAccepted      = "accepted"
	OutcomeRejected      = "rejected"
	OutcomeReplayed      = "replayed"
	OutcomeMisconfigured = "misconfigured"
	OutcomeError         = "error"
	OutcomeSent          = "sent"
	OutcomeFailed        = "failed"
)
