package authcore

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func captureWarnings() (func(string, ...any), *[]string) {
	var warnings []string
	return func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}, &warnings
}

func TestNormalizeKeepsValidConfig(t *testing.T) {
	warnf, warnings := captureWarnings()

	cfg := defaultConfig()
	cfg.normalize(warnf)

	if len(*warnings) != 0 {
		t.Fatalf("expected no warnings for the default config, got %v", *warnings)
	}
	if cfg.Security.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("default access TTL changed: %v", cfg.Security.AccessTokenTTL)
	}
}

func TestNormalizeRepairsTokenTTLs(t *testing.T) {
	warnf, warnings := captureWarnings()

	cfg := defaultConfig()
	cfg.Security.AccessTokenTTL = 0
	cfg.Security.RefreshTokenTTL = -time.Hour
	cfg.normalize(warnf)

	if cfg.Security.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("expected access TTL fallback, got %v", cfg.Security.AccessTokenTTL)
	}
	if cfg.Security.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("expected refresh TTL fallback, got %v", cfg.Security.RefreshTokenTTL)
	}
	if len(*warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", *warnings)
	}
}

func TestNormalizeDisablesBrokenLockout(t *testing.T) {
	warnf, warnings := captureWarnings()

	cfg := defaultConfig()
	cfg.Security.PasswordMaxRetryCount = 5
	cfg.Security.PasswordLockTime = 0
	cfg.normalize(warnf)

	if cfg.Security.PasswordMaxRetryCount != -1 {
		t.Fatalf("expected lockout disabled, got %d", cfg.Security.PasswordMaxRetryCount)
	}
	found := false
	for _, w := range *warnings {
		if strings.Contains(w, "lock") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a lockout warning, got %v", *warnings)
	}
}

func TestNormalizeClampsNegativeCeilings(t *testing.T) {
	warnf, _ := captureWarnings()

	cfg := defaultConfig()
	cfg.Security.MaxLoginPerHour = -5
	cfg.Security.MaxLoginPerDay = -1
	cfg.Security.PasswordMaxRetryCount = -42
	cfg.normalize(warnf)

	if cfg.Security.MaxLoginPerHour != 0 || cfg.Security.MaxLoginPerDay != 0 {
		t.Fatalf("expected negative ceilings clamped to 0, got %d / %d",
			cfg.Security.MaxLoginPerHour, cfg.Security.MaxLoginPerDay)
	}
	if cfg.Security.PasswordMaxRetryCount != -1 {
		t.Fatalf("expected retry count clamped to -1, got %d", cfg.Security.PasswordMaxRetryCount)
	}
}

func TestNormalizeFillsPrefixAndBuffer(t *testing.T) {
	warnf, _ := captureWarnings()

	cfg := defaultConfig()
	cfg.Session.RedisPrefix = ""
	cfg.Audit.BufferSize = 0
	cfg.normalize(warnf)

	if cfg.Session.RedisPrefix != "ac" {
		t.Fatalf("expected default prefix, got %q", cfg.Session.RedisPrefix)
	}
	if cfg.Audit.BufferSize != 256 {
		t.Fatalf("expected default buffer size, got %d", cfg.Audit.BufferSize)
	}
}
