// Package prometheus serves the engine counters in Prometheus text
// exposition format. The format is simple enough that rendering it by
// hand beats pulling in a client library for nine counters.
package prometheus
