// Package metrics holds the Prometheus collectors of the bridge.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Message outcomes recorded by RecordMessage.
const (
	OutcomeHandled        = "handled"
	OutcomeParseError     = "parse_error"
	OutcomeInvalidRequest = "invalid_request"
	OutcomeFieldTypeError = "field_type_error"
	OutcomeFailed         = "failed"
)

var (
	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "devtools_bridge_sessions_active",
			Help: "Number of debugger sessions currently connected",
		},
	)

	sessionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "devtools_bridge_sessions_total",
			Help: "Number of debugger sessions opened",
		},
	)

	messages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devtools_bridge_messages_total",
			Help: "Inbound frontend messages by outcome",
		},
		[]string{"outcome"},
	)

	errorReplies = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devtools_bridge_error_replies_total",
			Help: "Error replies synthesized by the session, by code",
		},
		[]string{"code"},
	)

	droppedSends = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "devtools_bridge_dropped_sends_total",
			Help: "Outbound messages discarded because the frontend connection was already released",
		},
	)
)

// Register registers all metrics with the provided registerer.
func Register(r prometheus.Registerer) {
	r.MustRegister(sessionsActive, sessionsTotal, messages, errorReplies, droppedSends)
}

// SessionOpened records a new session.
func SessionOpened() {
	sessionsTotal.Inc()
	sessionsActive.Inc()
}

// SessionClosed records a session teardown.
func SessionClosed() {
	sessionsActive.Dec()
}

// RecordMessage increments the inbound message counter for outcome.
func RecordMessage(outcome string) {
	messages.WithLabelValues(outcome).Inc()
}

// RecordErrorReply increments the synthesized error reply counter.
func RecordErrorReply(code string) {
	errorReplies.WithLabelValues(code).Inc()
}

// RecordDroppedSend increments the dropped outbound message counter.
func RecordDroppedSend() {
	droppedSends.Inc()
}
