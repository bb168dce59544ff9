package authcore

import "sync/atomic"

// MetricID identifies one engine counter.
type MetricID uint16

const (
	MetricLoginSuccess MetricID = iota
	MetricLoginFailure
	MetricLoginRateLimited
	MetricLoginLocked
	MetricTokenIssued
	MetricRefreshSuccess
	MetricRefreshFailure
	MetricLogout
	MetricStoreError

	metricCount
)

// MetricsSnapshot is a point-in-time copy of every counter.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// metricsRegistry is a fixed array of atomic counters; incrementing is
// lock-free and a snapshot copies, never exposes, the live values.
type metricsRegistry struct {
	enabled  bool
	counters [metricCount]atomic.Uint64
}

func newMetricsRegistry(enabled bool) *metricsRegistry {
	return &metricsRegistry{enabled: enabled}
}

func (r *metricsRegistry) inc(id MetricID) {
	if r == nil || !r.enabled || id >= metricCount {
		return
	}
	r.counters[id].Add(1)
}

func (r *metricsRegistry) snapshot() MetricsSnapshot {
	out := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricCount)}
	if r == nil {
		return out
	}
	for id := MetricID(0); id < metricCount; id++ {
		out.Counters[id] = r.counters[id].Load()
	}
	return out
}
