package limiter

import "errors"

var (
	// ErrRateLimited rejects a login once a success ceiling for the
	// current window is reached. The wrapped message carries a wait hint.
	ErrRateLimited = errors.New("login rate limited")
	// ErrAccountLocked rejects authentication while the retry lock
	// marker exists, regardless of credential correctness.
	ErrAccountLocked = errors.New("account locked")
)
