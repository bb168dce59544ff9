package authcore

import "time"

// Config is the top-level engine configuration.
//
// Config instances are set up during initialization and treated as
// immutable afterwards.
type Config struct {
	Session  SessionConfig
	Security SecurityConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

// SessionConfig controls Redis key layout.
type SessionConfig struct {
	RedisPrefix string
}

// SecurityConfig holds token lifetimes and the abuse-control ceilings.
type SecurityConfig struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	// SingleDeviceLogin evicts the previous access token whenever a new
	// pair is issued for the same user.
	SingleDeviceLogin bool

	// MaxLoginPerHour and MaxLoginPerDay cap successful logins per user
	// within the current wall-clock hour/day; zero or less disables the
	// respective check.
	MaxLoginPerHour int
	MaxLoginPerDay  int

	// PasswordMaxRetryCount locks the account after that many
	// consecutive failed password attempts; -1 disables the lockout.
	PasswordMaxRetryCount int
	PasswordLockTime      time.Duration
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig toggles the counter registry.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		Session: SessionConfig{RedisPrefix: "ac"},
		Security: SecurityConfig{
			AccessTokenTTL:        30 * time.Minute,
			RefreshTokenTTL:       7 * 24 * time.Hour,
			SingleDeviceLogin:     true,
			MaxLoginPerHour:       0,
			MaxLoginPerDay:        0,
			PasswordMaxRetryCount: 5,
			PasswordLockTime:      10 * time.Minute,
		},
		Audit:   AuditConfig{Enabled: true, BufferSize: 256, DropIfFull: true},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// normalize degrades broken sections to safe behavior instead of
// refusing to build: a malformed limiter section must never end up
// blocking all logins.
func (c *Config) normalize(warnf func(string, ...any)) {
	if c.Session.RedisPrefix == "" {
		c.Session.RedisPrefix = "ac"
	}

	if c.Security.AccessTokenTTL <= 0 {
		warnf("authcore: non-positive access token TTL, falling back to 30m")
		c.Security.AccessTokenTTL = 30 * time.Minute
	}
	if c.Security.RefreshTokenTTL <= 0 {
		warnf("authcore: non-positive refresh token TTL, falling back to 168h")
		c.Security.RefreshTokenTTL = 7 * 24 * time.Hour
	}

	if c.Security.MaxLoginPerHour < 0 {
		c.Security.MaxLoginPerHour = 0
	}
	if c.Security.MaxLoginPerDay < 0 {
		c.Security.MaxLoginPerDay = 0
	}

	if c.Security.PasswordMaxRetryCount < -1 {
		c.Security.PasswordMaxRetryCount = -1
	}
	if c.Security.PasswordMaxRetryCount >= 0 && c.Security.PasswordLockTime <= 0 {
		warnf("authcore: retry lockout configured without a lock time, disabling the lockout")
		c.Security.PasswordMaxRetryCount = -1
	}

	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		c.Audit.BufferSize = 256
	}
}
