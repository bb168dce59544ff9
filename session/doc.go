// Package session holds the session record model, its compact binary
// wire format, and the Redis-backed store that keeps token-to-session
// records and per-user current-token pointers.
package session
