package limiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adminforge/authcore/session"
)

// RetryConfig controls the consecutive-password-failure lockout.
// MaxRetries of -1 disables failure counting entirely. LockTime bounds
// both the failure counter and the lock marker, so counting and the
// penalty share one lifetime.
type RetryConfig struct {
	MaxRetries int
	LockTime   time.Duration
}

// Retry tracks consecutive failed password attempts per username and
// locks the account once the ceiling is crossed. Unlock happens only by
// marker TTL expiry or an explicit Clear; there is no manual unlock path
// in this core.
type Retry struct {
	redis  redis.UniversalClient
	config RetryConfig
	now    func() time.Time
}

// NewRetry creates a password retry limiter backed by the given Redis client.
func NewRetry(redisClient redis.UniversalClient, cfg RetryConfig) *Retry {
	return &Retry{redis: redisClient, config: cfg, now: time.Now}
}

func (l *Retry) counterKey(username string) string {
	return "apw:" + username
}

func (l *Retry) lockKey(username string) string {
	return "apl:" + username
}

// Allow rejects authentication with ErrAccountLocked while the lock
// marker exists. The rejection carries the remaining lock time when the
// TTL is readable, else a generic hint.
func (l *Retry) Allow(ctx context.Context, username string) error {
	locked, err := l.exists(ctx, l.lockKey(username))
	if err != nil {
		return err
	}
	if !locked {
		return nil
	}

	ttl, ttlErr := l.redis.TTL(ctx, l.lockKey(username)).Result()
	if ttlErr != nil || ttl <= 0 {
		return fmt.Errorf("%w: try again later", ErrAccountLocked)
	}
	return fmt.Errorf("%w: locked for another %ds",
		ErrAccountLocked, int64((ttl+time.Second-1)/time.Second))
}

// RecordFailure bumps the consecutive-failure counter and, on reaching
// the ceiling, replaces it with the lock marker. The marker value is the
// lock timestamp, informational only.
func (l *Retry) RecordFailure(ctx context.Context, username string) error {
	if l.config.MaxRetries < 0 {
		return nil
	}

	count, err := l.counter(ctx, username)
	if err != nil {
		return err
	}
	count++

	if count >= int64(l.config.MaxRetries) {
		if err := l.redis.Set(ctx, l.lockKey(username), l.now().Unix(), l.config.LockTime).Err(); err != nil {
			return fmt.Errorf("%w: %v", session.ErrRedisUnavailable, err)
		}
		// The marker alone now represents the penalty; counting restarts
		// from zero after unlock.
		return l.delete(ctx, l.counterKey(username))
	}

	if err := l.redis.Set(ctx, l.counterKey(username), count, l.config.LockTime).Err(); err != nil {
		return fmt.Errorf("%w: %v", session.ErrRedisUnavailable, err)
	}
	return nil
}

// Clear removes both the failure counter and the lock marker. Called on
// successful login; safe to repeat.
func (l *Retry) Clear(ctx context.Context, username string) error {
	if err := l.redis.Del(ctx, l.counterKey(username), l.lockKey(username)).Err(); err != nil {
		return fmt.Errorf("%w: %v", session.ErrRedisUnavailable, err)
	}
	return nil
}

// Count returns the current consecutive-failure count for the user.
func (l *Retry) Count(ctx context.Context, username string) (int, error) {
	count, err := l.counter(ctx, username)
	return int(count), err
}

// IsLocked reports whether the lock marker currently exists.
func (l *Retry) IsLocked(ctx context.Context, username string) (bool, error) {
	return l.exists(ctx, l.lockKey(username))
}

// RemainingLockTime returns how long the lock marker has left, zero when
// the account is not locked.
func (l *Retry) RemainingLockTime(ctx context.Context, username string) (time.Duration, error) {
	ttl, err := l.redis.TTL(ctx, l.lockKey(username)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", session.ErrRedisUnavailable, err)
	}
	if ttl <= 0 {
		return 0, nil
	}
	return ttl, nil
}

func (l *Retry) counter(ctx context.Context, username string) (int64, error) {
	count, err := l.redis.Get(ctx, l.counterKey(username)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", session.ErrRedisUnavailable, err)
	}
	if count < 0 {
		return 0, nil
	}
	return count, nil
}

func (l *Retry) exists(ctx context.Context, key string) (bool, error) {
	count, err := l.redis.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", session.ErrRedisUnavailable, err)
	}
	return count > 0, nil
}

func (l *Retry) delete(ctx context.Context, key string) error {
	if err := l.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", session.ErrRedisUnavailable, err)
	}
	return nil
}
