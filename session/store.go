package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps every Redis connectivity failure surfaced by
// the store and the limiters. Callers must treat it as "authentication
// failed", never as "checks passed".
var ErrRedisUnavailable = errors.New("redis unavailable")

// Store keeps session records under their access- and refresh-token keys
// (duplicated, not referenced, so both lookups stay O(1)) plus the
// per-user current-token pointers used for eviction and logout.
//
// Redis per-key atomicity is the only synchronization primitive in play;
// there are no multi-key transactions and no compensating rollbacks.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a session [Store] backed by the given Redis client.
// prefix namespaces every key this module writes.
func NewStore(redisClient redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "ac"
	}
	return &Store{redis: redisClient, prefix: prefix}
}

func (s *Store) accessKey(token string) string {
	return s.prefix + ":at:" + token
}

func (s *Store) refreshKey(token string) string {
	return s.prefix + ":rt:" + token
}

func (s *Store) userAccessKey(userID string) string {
	return s.prefix + ":ua:" + userID
}

func (s *Store) userRefreshKey(userID string) string {
	return s.prefix + ":ur:" + userID
}

// SaveAccess stores a session record under the access-token key.
func (s *Store) SaveAccess(ctx context.Context, token string, sess *Session, ttl time.Duration) error {
	return s.saveRecord(ctx, s.accessKey(token), sess, ttl)
}

// SaveRefresh stores a session record under the refresh-token key.
func (s *Store) SaveRefresh(ctx context.Context, token string, sess *Session, ttl time.Duration) error {
	return s.saveRecord(ctx, s.refreshKey(token), sess, ttl)
}

// GetAccess resolves an access token to its session. A missing or
// expired token returns (nil, nil): absent is the expected outcome for
// revoked tokens, not an error.
func (s *Store) GetAccess(ctx context.Context, token string) (*Session, error) {
	return s.getRecord(ctx, s.accessKey(token))
}

// GetRefresh resolves a refresh token to its session, (nil, nil) when absent.
func (s *Store) GetRefresh(ctx context.Context, token string) (*Session, error) {
	return s.getRecord(ctx, s.refreshKey(token))
}

// HasAccess reports whether a live session exists for the access token.
func (s *Store) HasAccess(ctx context.Context, token string) (bool, error) {
	return s.exists(ctx, s.accessKey(token))
}

// HasRefresh reports whether a live session exists for the refresh token.
func (s *Store) HasRefresh(ctx context.Context, token string) (bool, error) {
	return s.exists(ctx, s.refreshKey(token))
}

// DeleteAccess removes the session record behind an access token.
// Deleting a token that is already gone is not an error.
func (s *Store) DeleteAccess(ctx context.Context, token string) error {
	return s.delete(ctx, s.accessKey(token))
}

// DeleteRefresh removes the session record behind a refresh token.
func (s *Store) DeleteRefresh(ctx context.Context, token string) error {
	return s.delete(ctx, s.refreshKey(token))
}

// SetUserAccess records the user's current access token.
func (s *Store) SetUserAccess(ctx context.Context, userID, token string, ttl time.Duration) error {
	return s.setPointer(ctx, s.userAccessKey(userID), token, ttl)
}

// UserAccess returns the user's current access token, "" when none.
func (s *Store) UserAccess(ctx context.Context, userID string) (string, error) {
	return s.getPointer(ctx, s.userAccessKey(userID))
}

// DeleteUserAccess clears the user's current-access-token pointer.
func (s *Store) DeleteUserAccess(ctx context.Context, userID string) error {
	return s.delete(ctx, s.userAccessKey(userID))
}

// SetUserRefresh records the user's current refresh token.
func (s *Store) SetUserRefresh(ctx context.Context, userID, token string, ttl time.Duration) error {
	return s.setPointer(ctx, s.userRefreshKey(userID), token, ttl)
}

// UserRefresh returns the user's current refresh token, "" when none.
func (s *Store) UserRefresh(ctx context.Context, userID string) (string, error) {
	return s.getPointer(ctx, s.userRefreshKey(userID))
}

// DeleteUserRefresh clears the user's current-refresh-token pointer.
func (s *Store) DeleteUserRefresh(ctx context.Context, userID string) error {
	return s.delete(ctx, s.userRefreshKey(userID))
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}

func (s *Store) saveRecord(ctx context.Context, key string, sess *Session, ttl time.Duration) error {
	data, err := Encode(sess)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (s *Store) getRecord(ctx context.Context, key string) (*Session, error) {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return Decode(data)
}

func (s *Store) exists(ctx context.Context, key string) (bool, error) {
	count, err := s.redis.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return count > 0, nil
}

func (s *Store) delete(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (s *Store) setPointer(ctx context.Context, key, token string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, key, token, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (s *Store) getPointer(ctx context.Context, key string) (string, error) {
	token, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return token, nil
}
