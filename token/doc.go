// Package token orchestrates issuance, validation, refresh and
// revocation of opaque access/refresh token pairs over the session
// store, including single-device-login eviction.
package token
