// Package otel exports engine counters as OpenTelemetry observable
// counters. Collection is pull-based: a registered callback snapshots
// the engine registry on every reader cycle.
package otel
