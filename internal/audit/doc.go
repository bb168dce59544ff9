// Package audit defines the write-only security event model and the
// asynchronous dispatcher that forwards events to a caller-owned sink.
// Persistence is the sink's problem; the core only emits.
package audit
