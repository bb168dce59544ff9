package internal

import (
	"testing"
	"time"
)

func TestUntilNextHour(t *testing.T) {
	cases := []struct {
		now  time.Time
		want time.Duration
	}{
		{time.Date(2026, time.March, 5, 10, 15, 0, 0, time.UTC), 45 * time.Minute},
		{time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC), time.Hour},
		{time.Date(2026, time.March, 5, 23, 59, 59, 0, time.UTC), time.Second},
	}

	for _, c := range cases {
		if got := UntilNextHour(c.now); got != c.want {
			t.Fatalf("UntilNextHour(%v): expected %v, got %v", c.now, c.want, got)
		}
	}
}

func TestUntilMidnight(t *testing.T) {
	cases := []struct {
		now  time.Time
		want time.Duration
	}{
		{time.Date(2026, time.March, 5, 10, 15, 0, 0, time.UTC), 13*time.Hour + 45*time.Minute},
		{time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), 24 * time.Hour},
		{time.Date(2026, time.March, 5, 23, 59, 0, 0, time.UTC), time.Minute},
	}

	for _, c := range cases {
		if got := UntilMidnight(c.now); got != c.want {
			t.Fatalf("UntilMidnight(%v): expected %v, got %v", c.now, c.want, got)
		}
	}
}

func TestBoundariesRespectLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, time.March, 5, 23, 30, 0, 0, loc)

	// Local midnight is 30 minutes away regardless of the UTC offset.
	if got := UntilMidnight(now); got != 30*time.Minute {
		t.Fatalf("expected 30m to local midnight, got %v", got)
	}
}
