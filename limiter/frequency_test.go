package limiter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestFrequency(t *testing.T, cfg FrequencyConfig) (*Frequency, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewFrequency(rdb, cfg), mr
}

func TestFrequencyDisabledCeilingsAlwaysPass(t *testing.T) {
	limiter, _ := newTestFrequency(t, FrequencyConfig{})
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		if err := limiter.Check(ctx, "alice"); err != nil {
			t.Fatalf("check %d: expected pass with ceilings disabled, got %v", i, err)
		}
		if err := limiter.RecordSuccess(ctx, "alice"); err != nil {
			t.Fatalf("record %d failed: %v", i, err)
		}
	}

	// Counts still accumulate even with no ceiling in force.
	count, err := limiter.HourlyCount(ctx, "alice")
	if err != nil || count != 50 {
		t.Fatalf("expected hourly count 50, got (%d, %v)", count, err)
	}
}

func TestFrequencyHourlyCeiling(t *testing.T) {
	limiter, _ := newTestFrequency(t, FrequencyConfig{MaxPerHour: 3})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := limiter.Check(ctx, "alice"); err != nil {
			t.Fatalf("login %d: expected pass, got %v", i+1, err)
		}
		if err := limiter.RecordSuccess(ctx, "alice"); err != nil {
			t.Fatalf("record %d failed: %v", i+1, err)
		}
	}

	err := limiter.Check(ctx, "alice")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited at ceiling, got %v", err)
	}
	if !strings.Contains(err.Error(), "try again") {
		t.Fatalf("expected wait hint in rejection, got %q", err.Error())
	}

	// Other users are unaffected.
	if err := limiter.Check(ctx, "bob"); err != nil {
		t.Fatalf("expected bob unaffected, got %v", err)
	}
}

func TestFrequencyDailyCeiling(t *testing.T) {
	limiter, _ := newTestFrequency(t, FrequencyConfig{MaxPerDay: 2})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := limiter.RecordSuccess(ctx, "alice"); err != nil {
			t.Fatalf("record %d failed: %v", i+1, err)
		}
	}

	err := limiter.Check(ctx, "alice")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited at daily ceiling, got %v", err)
	}

	count, err := limiter.DailyCount(ctx, "alice")
	if err != nil || count != 2 {
		t.Fatalf("expected daily count 2, got (%d, %v)", count, err)
	}
}

func TestFrequencyHourlyWindowResets(t *testing.T) {
	limiter, mr := newTestFrequency(t, FrequencyConfig{MaxPerHour: 1})
	ctx := context.Background()

	if err := limiter.RecordSuccess(ctx, "alice"); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := limiter.Check(ctx, "alice"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	// The counter TTL is anchored to the next hour boundary; jumping past
	// it must clear the window.
	mr.FastForward(time.Hour)

	if err := limiter.Check(ctx, "alice"); err != nil {
		t.Fatalf("expected pass after window reset, got %v", err)
	}
	count, err := limiter.HourlyCount(ctx, "alice")
	if err != nil || count != 0 {
		t.Fatalf("expected count reset to 0, got (%d, %v)", count, err)
	}
}

func TestFrequencyTTLAnchoredToClockBoundaries(t *testing.T) {
	limiter, mr := newTestFrequency(t, FrequencyConfig{MaxPerHour: 10, MaxPerDay: 10})
	ctx := context.Background()

	anchor := time.Date(2026, time.March, 5, 10, 15, 0, 0, time.UTC)
	limiter.now = func() time.Time { return anchor }

	if err := limiter.RecordSuccess(ctx, "alice"); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	if ttl := mr.TTL("alh:alice"); ttl != 45*time.Minute {
		t.Fatalf("expected hourly TTL 45m, got %v", ttl)
	}
	if ttl := mr.TTL("ald:alice"); ttl != 13*time.Hour+45*time.Minute {
		t.Fatalf("expected daily TTL until midnight, got %v", ttl)
	}
}

func TestFrequencyStoreFailureFailsClosed(t *testing.T) {
	limiter, mr := newTestFrequency(t, FrequencyConfig{MaxPerHour: 3})
	ctx := context.Background()

	mr.Close()

	if err := limiter.Check(ctx, "alice"); err == nil {
		t.Fatal("expected error when the store is down")
	}
	if err := limiter.RecordSuccess(ctx, "alice"); err == nil {
		t.Fatal("expected error when the store is down")
	}
}
