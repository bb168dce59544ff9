package internal

import "time"

// UntilNextHour returns the time remaining until the top of the next
// wall-clock hour. Counter TTLs align to human-meaningful boundaries, so
// a counter created at 23:59 lives one minute, not a full window.
func UntilNextHour(now time.Time) time.Duration {
	year, month, day := now.Date()
	boundary := time.Date(year, month, day, now.Hour(), 0, 0, 0, now.Location()).Add(time.Hour)
	return boundary.Sub(now)
}

// UntilMidnight returns the time remaining until the next local midnight.
func UntilMidnight(now time.Time) time.Duration {
	year, month, day := now.Date()
	boundary := time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return boundary.Sub(now)
}
