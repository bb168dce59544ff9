package authcore

import (
	"context"

	"github.com/adminforge/authcore/session"
)

// CredentialVerifier checks a username/password pair against whatever
// identity backend the host application owns. The core never hashes or
// compares passwords itself.
//
// A rejected credential must be reported as an error matching
// [ErrInvalidCredentials]; any other error is treated as an
// infrastructure failure and does not count as a password failure.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*session.Principal, error)
}

// ContextResolver enriches a session with device and region metadata
// derived from the client IP and user-agent. The derivation (GeoIP,
// user-agent parsing) is opaque to the core.
type ContextResolver interface {
	Resolve(ip, userAgent string) session.ClientContext
}

// passthroughResolver is the default: client context carries the raw IP
// and user-agent with no derived fields.
type passthroughResolver struct{}

func (passthroughResolver) Resolve(ip, userAgent string) session.ClientContext {
	return session.ClientContext{IP: ip, UserAgent: userAgent}
}
