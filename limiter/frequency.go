package limiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adminforge/authcore/internal"
	"github.com/adminforge/authcore/session"
)

// FrequencyConfig caps successful logins per user. A ceiling of zero or
// less disables that particular check; recording is unconditional so the
// counts stay observable either way.
type FrequencyConfig struct {
	MaxPerHour int
	MaxPerDay  int
}

// Frequency tracks successful-login counts per username over windows
// anchored to wall-clock boundaries, not sliding windows: the hourly
// counter expires at the top of the next hour and the daily counter at
// local midnight, recomputed from the current instant on every write.
type Frequency struct {
	redis  redis.UniversalClient
	config FrequencyConfig
	now    func() time.Time
}

// NewFrequency creates a login frequency limiter backed by the given
// Redis client.
func NewFrequency(redisClient redis.UniversalClient, cfg FrequencyConfig) *Frequency {
	return &Frequency{redis: redisClient, config: cfg, now: time.Now}
}

func (l *Frequency) hourKey(username string) string {
	return "alh:" + username
}

func (l *Frequency) dayKey(username string) string {
	return "ald:" + username
}

// Check rejects the login when either window's ceiling has been reached.
// The hourly window is checked first; either can reject independently.
// Rejections carry a wait hint derived from the counter's TTL, rounded
// up to the next minute (hourly) or hour (daily).
func (l *Frequency) Check(ctx context.Context, username string) error {
	if l.config.MaxPerHour > 0 {
		count, err := l.counter(ctx, l.hourKey(username))
		if err != nil {
			return err
		}
		if count >= int64(l.config.MaxPerHour) {
			return fmt.Errorf("%w: hourly login ceiling reached, %s",
				ErrRateLimited, l.waitHint(ctx, l.hourKey(username), time.Minute))
		}
	}

	if l.config.MaxPerDay > 0 {
		count, err := l.counter(ctx, l.dayKey(username))
		if err != nil {
			return err
		}
		if count >= int64(l.config.MaxPerDay) {
			return fmt.Errorf("%w: daily login ceiling reached, %s",
				ErrRateLimited, l.waitHint(ctx, l.dayKey(username), time.Hour))
		}
	}

	return nil
}

// RecordSuccess bumps both window counters for the user. TTLs are
// recomputed from the current wall-clock instant on every call.
func (l *Frequency) RecordSuccess(ctx context.Context, username string) error {
	now := l.now()

	if err := l.bump(ctx, l.hourKey(username), internal.UntilNextHour(now)); err != nil {
		return err
	}
	return l.bump(ctx, l.dayKey(username), internal.UntilMidnight(now))
}

// HourlyCount returns the user's success count in the current clock hour.
func (l *Frequency) HourlyCount(ctx context.Context, username string) (int, error) {
	count, err := l.counter(ctx, l.hourKey(username))
	return int(count), err
}

// DailyCount returns the user's success count for the current day.
func (l *Frequency) DailyCount(ctx context.Context, username string) (int, error) {
	count, err := l.counter(ctx, l.dayKey(username))
	return int(count), err
}

// bump is a read-then-write increment. Two logins for the same user
// racing here can lose one count; the counters gate abuse, not billing,
// so Redis INCR plus a separate EXPIRE is deliberately not used and the
// TTL stays aligned to the window boundary on every write.
func (l *Frequency) bump(ctx context.Context, key string, ttl time.Duration) error {
	count, err := l.counter(ctx, key)
	if err != nil {
		return err
	}

	if err := l.redis.Set(ctx, key, count+1, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", session.ErrRedisUnavailable, err)
	}
	return nil
}

func (l *Frequency) counter(ctx context.Context, key string) (int64, error) {
	count, err := l.redis.Get(ctx, key).Int64()
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

// waitHint never fails the rejection path: when the TTL cannot be read a
// generic hint is used instead.
func (l *Frequency) waitHint(ctx context.Context, key string, unit time.Duration) string {
	ttl, err := l.redis.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		return "try again later"
	}

	remaining := int64((ttl + unit - 1) / unit)
	if unit == time.Minute {
		return fmt.Sprintf("try again in %dm", remaining)
	}
	return fmt.Sprintf("try again in %dh", remaining)
}
