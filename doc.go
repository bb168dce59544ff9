// Package authcore is the authentication session and abuse-control core
// of a multi-tenant admin backend. It issues, validates, refreshes and
// revokes opaque access/refresh token pairs backed by a shared Redis
// store, and gates authentication attempts with two independent
// policies: a successful-login frequency ceiling and a password-retry
// lockout.
//
// The package owns no transport: an HTTP authentication endpoint embeds
// the [Engine] and supplies credential verification and client-context
// resolution through the collaborator interfaces. All session and
// counter state lives in Redis, so any number of process instances can
// share it; no state survives a request in memory.
package authcore
