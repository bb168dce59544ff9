package authcore

import (
	"context"
	"errors"
	"time"

	"github.com/adminforge/authcore/internal/audit"
	"github.com/adminforge/authcore/limiter"
	"github.com/adminforge/authcore/session"
	"github.com/adminforge/authcore/token"
)

// Engine is the authentication facade: it sequences the retry lockout,
// credential verification, the login frequency ceiling and token
// issuance, and delegates token lifecycle calls to the token manager.
//
// All methods are safe for concurrent use; coordination happens entirely
// through Redis per-key atomicity.
type Engine struct {
	config    Config
	store     *session.Store
	tokens    *token.Manager
	frequency *limiter.Frequency
	retry     *limiter.Retry
	verifier  CredentialVerifier
	resolver  ContextResolver
	metrics   *metricsRegistry
	audit     *audit.Dispatcher
	warnf     func(string, ...any)
}

// Login runs the full authentication sequence for a username/password
// pair and issues a token pair on success.
//
// Order: lockout pre-check, credential verification (external), failure
// bookkeeping or counter clear, frequency ceiling check and record,
// issuance. Store failures propagate unchanged and the attempt fails
// closed.
func (e *Engine) Login(ctx context.Context, username, password string) (*token.Pair, error) {
	if e == nil || e.verifier == nil {
		return nil, ErrEngineNotReady
	}

	if err := e.retry.Allow(ctx, username); err != nil {
		if errors.Is(err, ErrAccountLocked) {
			e.metrics.inc(MetricLoginLocked)
			e.emit(ctx, EventLoginLocked, false, "", username, err)
		}
		return nil, err
	}

	principal, err := e.verifier.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			if recordErr := e.retry.RecordFailure(ctx, username); recordErr != nil {
				return nil, recordErr
			}
			e.metrics.inc(MetricLoginFailure)
			e.emit(ctx, EventLoginFailure, false, "", username, err)
			return nil, err
		}
		// Verifier infrastructure failure: fail closed without counting
		// it as a password failure.
		return nil, err
	}
	if principal == nil || principal.UserID == "" {
		return nil, ErrInvalidCredentials
	}

	if err := e.retry.Clear(ctx, username); err != nil {
		return nil, err
	}

	if err := e.frequency.Check(ctx, username); err != nil {
		if errors.Is(err, ErrLoginRateLimited) {
			e.metrics.inc(MetricLoginRateLimited)
			e.emit(ctx, EventLoginRateLimited, false, principal.UserID, username, err)
		}
		return nil, err
	}
	if err := e.frequency.RecordSuccess(ctx, username); err != nil {
		return nil, err
	}

	client := e.resolver.Resolve(clientIPFromContext(ctx), userAgentFromContext(ctx))
	pair, err := e.tokens.Issue(ctx, principal, client)
	if err != nil {
		e.metrics.inc(MetricStoreError)
		return nil, err
	}

	e.metrics.inc(MetricLoginSuccess)
	e.metrics.inc(MetricTokenIssued)
	e.emit(ctx, EventLoginSuccess, true, principal.UserID, username, nil)

	return pair, nil
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token itself stays valid until its own TTL or an explicit logout.
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (*token.Pair, error) {
	if e == nil || e.tokens == nil {
		return nil, ErrEngineNotReady
	}

	pair, err := e.tokens.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrRefreshInvalid) {
			e.metrics.inc(MetricRefreshFailure)
			e.emit(ctx, EventRefreshFailure, false, "", "", err)
		} else {
			e.metrics.inc(MetricStoreError)
		}
		return nil, err
	}

	e.metrics.inc(MetricRefreshSuccess)
	e.emit(ctx, EventRefresh, true, "", "", nil)
	return pair, nil
}

// Logout revokes the session behind an access token. Unknown tokens are
// a no-op, so calling it twice is safe.
func (e *Engine) Logout(ctx context.Context, accessToken string) error {
	if e == nil || e.tokens == nil {
		return ErrEngineNotReady
	}

	if err := e.tokens.Invalidate(ctx, accessToken); err != nil {
		e.metrics.inc(MetricStoreError)
		return err
	}

	e.metrics.inc(MetricLogout)
	e.emit(ctx, EventLogout, true, "", "", nil)
	return nil
}

// Parse resolves an access token to its principal; (nil, nil) when the
// token is unknown or expired. Absent is the normal unauthenticated
// signal, not an error.
func (e *Engine) Parse(ctx context.Context, accessToken string) (*session.Principal, error) {
	return e.tokens.Parse(ctx, accessToken)
}

// ValidateAccess reports whether an access token is live.
func (e *Engine) ValidateAccess(ctx context.Context, accessToken string) (bool, error) {
	return e.tokens.ValidateAccess(ctx, accessToken)
}

// ValidateRefresh reports whether a refresh token is live.
func (e *Engine) ValidateRefresh(ctx context.Context, refreshToken string) (bool, error) {
	return e.tokens.ValidateRefresh(ctx, refreshToken)
}

// HourlyLoginCount returns the user's success count in the current
// clock hour.
func (e *Engine) HourlyLoginCount(ctx context.Context, username string) (int, error) {
	return e.frequency.HourlyCount(ctx, username)
}

// TodayLoginCount returns the user's success count for the current day.
func (e *Engine) TodayLoginCount(ctx context.Context, username string) (int, error) {
	return e.frequency.DailyCount(ctx, username)
}

// LoginRetryCount returns the user's consecutive-failure count.
func (e *Engine) LoginRetryCount(ctx context.Context, username string) (int, error) {
	return e.retry.Count(ctx, username)
}

// IsLocked reports whether the user is currently locked out.
func (e *Engine) IsLocked(ctx context.Context, username string) (bool, error) {
	return e.retry.IsLocked(ctx, username)
}

// RemainingLockTime returns how long the user's lockout has left, zero
// when not locked.
func (e *Engine) RemainingLockTime(ctx context.Context, username string) (time.Duration, error) {
	return e.retry.RemainingLockTime(ctx, username)
}

// Ping checks Redis availability and reports the round-trip latency.
func (e *Engine) Ping(ctx context.Context) (time.Duration, error) {
	return e.store.Ping(ctx)
}

// MetricsSnapshot returns a copy of every engine counter.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.snapshot()
}

// AuditDropped reports audit events discarded under backpressure.
func (e *Engine) AuditDropped() uint64 {
	return e.audit.Dropped()
}

// Close stops the audit dispatcher, flushing buffered events.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.audit.Close()
}

func (e *Engine) emit(ctx context.Context, eventType string, success bool, userID, username string, cause error) {
	if e.audit == nil {
		return
	}

	event := audit.Event{
		Timestamp: time.Now(),
		EventType: eventType,
		UserID:    userID,
		Username:  username,
		IP:        clientIPFromContext(ctx),
		Success:   success,
	}
	if cause != nil {
		event.Error = cause.Error()
	}

	e.audit.Emit(ctx, event)
}
