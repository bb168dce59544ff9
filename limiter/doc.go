// Package limiter implements the two abuse-control policies gating
// authentication: a successful-login frequency ceiling over wall-clock
// hour/day windows, and a consecutive-password-failure lockout.
//
// Both limiters keep all state in Redis so every process instance sees
// the same counters; nothing is cached in memory between requests.
package limiter
