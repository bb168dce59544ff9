package authcore

import (
	"io"

	"github.com/adminforge/authcore/internal/audit"
)

// AuditEvent is the write-only security event record handed to sinks.
type AuditEvent = audit.Event

// AuditSink receives audit events. The engine never reads them back;
// persistence is entirely the sink's concern.
type AuditSink = audit.Sink

// NoOpSink drops every audit event.
type NoOpSink = audit.NoOpSink

// ChannelSink hands audit events to a buffered channel.
type ChannelSink = audit.ChannelSink

// NewChannelSink creates a [ChannelSink] with the given buffer.
func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

// JSONWriterSink writes one JSON event per line.
type JSONWriterSink = audit.JSONWriterSink

// NewJSONWriterSink creates a [JSONWriterSink] over w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}

// Audit event types emitted by the engine.
const (
	EventLoginSuccess     = "login.success"
	EventLoginFailure     = "login.failure"
	EventLoginRateLimited = "login.rate_limited"
	EventLoginLocked      = "login.locked"
	EventRefresh          = "token.refresh"
	EventRefreshFailure   = "token.refresh_failure"
	EventLogout           = "logout"
)
