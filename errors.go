package authcore

import (
	"errors"

	"github.com/adminforge/authcore/limiter"
	"github.com/adminforge/authcore/session"
	"github.com/adminforge/authcore/token"
)

var (
	// ErrInvalidCredentials is returned when the credential verifier
	// rejects a username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEngineNotReady is returned when the engine is used before its
	// dependencies were wired through Build.
	ErrEngineNotReady = errors.New("engine not initialized")
)

// The remaining conditions originate in their owning packages and are
// re-exported here so callers matching with errors.Is only need the
// root package.
var (
	ErrLoginRateLimited = limiter.ErrRateLimited
	ErrAccountLocked    = limiter.ErrAccountLocked
	ErrRefreshInvalid   = token.ErrRefreshInvalid
	ErrRedisUnavailable = session.ErrRedisUnavailable
)
