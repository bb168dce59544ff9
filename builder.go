package authcore

import (
	"errors"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/adminforge/authcore/internal/audit"
	"github.com/adminforge/authcore/limiter"
	"github.com/adminforge/authcore/session"
	"github.com/adminforge/authcore/token"
)

// Builder assembles an [Engine]. Redis client and credential verifier
// are mandatory; everything else has working defaults.
type Builder struct {
	config   Config
	redis    redis.UniversalClient
	verifier CredentialVerifier
	resolver ContextResolver
	sink     AuditSink
	warnf    func(string, ...any)
	built    bool
}

// New returns a Builder seeded with the default configuration.
func New() *Builder {
	return &Builder{config: defaultConfig()}
}

// WithConfig replaces the entire configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis sets the shared Redis client all state goes through.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithVerifier sets the external credential verifier.
func (b *Builder) WithVerifier(v CredentialVerifier) *Builder {
	b.verifier = v
	return b
}

// WithContextResolver sets the client-context enrichment step. Without
// one, sessions carry the raw IP and user-agent only.
func (b *Builder) WithContextResolver(r ContextResolver) *Builder {
	b.resolver = r
	return b
}

// WithAuditSink sets the sink audit events are dispatched to.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.sink = sink
	return b
}

// WithWarnLogger overrides where configuration warnings go. Defaults to
// the standard logger.
func (b *Builder) WithWarnLogger(warnf func(string, ...any)) *Builder {
	b.warnf = warnf
	return b
}

// Build wires and returns the engine. A Builder is single use.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if b.verifier == nil {
		return nil, errors.New("credential verifier required")
	}

	warnf := b.warnf
	if warnf == nil {
		warnf = log.Printf
	}

	cfg := b.config
	cfg.normalize(warnf)

	resolver := b.resolver
	if resolver == nil {
		resolver = passthroughResolver{}
	}

	store := session.NewStore(b.redis, cfg.Session.RedisPrefix)

	engine := &Engine{
		config: cfg,
		store:  store,
		tokens: token.NewManager(store, token.Config{
			AccessTTL:         cfg.Security.AccessTokenTTL,
			RefreshTTL:        cfg.Security.RefreshTokenTTL,
			SingleDeviceLogin: cfg.Security.SingleDeviceLogin,
		}),
		frequency: limiter.NewFrequency(b.redis, limiter.FrequencyConfig{
			MaxPerHour: cfg.Security.MaxLoginPerHour,
			MaxPerDay:  cfg.Security.MaxLoginPerDay,
		}),
		retry: limiter.NewRetry(b.redis, limiter.RetryConfig{
			MaxRetries: cfg.Security.PasswordMaxRetryCount,
			LockTime:   cfg.Security.PasswordLockTime,
		}),
		verifier: b.verifier,
		resolver: resolver,
		metrics:  newMetricsRegistry(cfg.Metrics.Enabled),
		audit: audit.NewDispatcher(audit.Config{
			Enabled:    cfg.Audit.Enabled,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		}, b.sink),
		warnf: warnf,
	}

	b.built = true
	return engine, nil
}
