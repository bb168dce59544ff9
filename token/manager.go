package token

import (
	"context"
	"errors"
	"time"

	"github.com/adminforge/authcore/internal"
	"github.com/adminforge/authcore/session"
)

// ErrRefreshInvalid is returned when a refresh token has no live session
// behind it: expired, revoked, or forged. The caller must force a full
// re-authentication.
var ErrRefreshInvalid = errors.New("invalid refresh token")

// Pair is an access/refresh token pair issued together.
type Pair struct {
	AccessToken  string
	RefreshToken string
	// ExpiresIn is the access-token lifetime in seconds.
	ExpiresIn int64
}

// Config holds the token lifetimes and the single-device policy.
type Config struct {
	AccessTTL         time.Duration
	RefreshTTL        time.Duration
	SingleDeviceLogin bool
}

// Manager issues, parses, validates, refreshes and invalidates token
// pairs. All state lives in the session store; operations are best
// effort over single-key writes, and any partial failure surfaces as
// session.ErrRedisUnavailable without inventing a valid result.
type Manager struct {
	store  *session.Store
	config Config
	now    func() time.Time
}

// NewManager creates a token [Manager] over the given session store.
func NewManager(store *session.Store, cfg Config) *Manager {
	return &Manager{store: store, config: cfg, now: time.Now}
}

// Issue mints an independent access/refresh token pair for the
// principal, stores the session under both token keys, and records the
// user's current-token pointers. With single-device login enabled the
// previous access token is evicted first.
//
// Two same-user logins racing here can both read the old pointer; the
// last pointer writer wins and the loser's token lives until its TTL.
// Accepted: Redis offers no multi-key transaction to close the gap.
func (m *Manager) Issue(ctx context.Context, principal *session.Principal, client session.ClientContext) (*Pair, error) {
	access, err := internal.NewToken()
	if err != nil {
		return nil, err
	}
	refresh, err := internal.NewToken()
	if err != nil {
		return nil, err
	}

	sess := &session.Session{
		UserID:      principal.UserID,
		Username:    principal.Username,
		DeptID:      principal.DeptID,
		Authorities: append([]string(nil), principal.Authorities...),
		IP:          client.IP,
		Region:      client.Region,
		OS:          client.OS,
		Browser:     client.Browser,
		Device:      client.Device,
		UserAgent:   client.UserAgent,
		LoginAt:     m.now().UnixMilli(),
	}

	if err := m.store.SaveAccess(ctx, access, sess, m.config.AccessTTL); err != nil {
		return nil, err
	}
	if err := m.store.SaveRefresh(ctx, refresh, sess, m.config.RefreshTTL); err != nil {
		return nil, err
	}
	if err := m.store.SetUserRefresh(ctx, sess.UserID, refresh, m.config.RefreshTTL); err != nil {
		return nil, err
	}

	if m.config.SingleDeviceLogin {
		previous, err := m.store.UserAccess(ctx, sess.UserID)
		if err != nil {
			return nil, err
		}
		if previous != "" && previous != access {
			if err := m.store.DeleteAccess(ctx, previous); err != nil {
				return nil, err
			}
		}
	}
	if err := m.store.SetUserAccess(ctx, sess.UserID, access, m.config.AccessTTL); err != nil {
		return nil, err
	}

	return &Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.config.AccessTTL / time.Second),
	}, nil
}

// Parse resolves an access token to the principal it was issued for.
// A missing or expired token returns (nil, nil): unauthenticated is the
// expected outcome there, not an error.
func (m *Manager) Parse(ctx context.Context, accessToken string) (*session.Principal, error) {
	sess, err := m.store.GetAccess(ctx, accessToken)
	if err != nil || sess == nil {
		return nil, err
	}

	return &session.Principal{
		UserID:      sess.UserID,
		Username:    sess.Username,
		DeptID:      sess.DeptID,
		Authorities: append([]string(nil), sess.Authorities...),
	}, nil
}

// ValidateAccess reports whether a live session exists for the access
// token. Pure read, never mutates state.
func (m *Manager) ValidateAccess(ctx context.Context, accessToken string) (bool, error) {
	return m.store.HasAccess(ctx, accessToken)
}

// ValidateRefresh reports whether a live session exists for the refresh token.
func (m *Manager) ValidateRefresh(ctx context.Context, refreshToken string) (bool, error) {
	return m.store.HasRefresh(ctx, refreshToken)
}

// Refresh exchanges a refresh token for a new access token. The old
// access token is retired before the replacement is stored, so both are
// never valid at once. The refresh token itself is returned unchanged:
// it is never rotated or extended here.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (*Pair, error) {
	sess, err := m.store.GetRefresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrRefreshInvalid
	}

	previous, err := m.store.UserAccess(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if previous != "" {
		if err := m.store.DeleteAccess(ctx, previous); err != nil {
			return nil, err
		}
	}

	access, err := internal.NewToken()
	if err != nil {
		return nil, err
	}
	if err := m.store.SaveAccess(ctx, access, sess, m.config.AccessTTL); err != nil {
		return nil, err
	}
	if err := m.store.SetUserAccess(ctx, sess.UserID, access, m.config.AccessTTL); err != nil {
		return nil, err
	}

	return &Pair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(m.config.AccessTTL / time.Second),
	}, nil
}

// Invalidate revokes the session behind an access token along with the
// user's current refresh token. An unknown access token is a no-op, so
// repeated logout is safe.
//
// A failure after the access-token delete can orphan the refresh
// session; it stays reachable only through the still-valid refresh
// token, which authenticates a real, intended session.
func (m *Manager) Invalidate(ctx context.Context, accessToken string) error {
	sess, err := m.store.GetAccess(ctx, accessToken)
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}

	if err := m.store.DeleteAccess(ctx, accessToken); err != nil {
		return err
	}
	if err := m.store.DeleteUserAccess(ctx, sess.UserID); err != nil {
		return err
	}

	refresh, err := m.store.UserRefresh(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if refresh != "" {
		if err := m.store.DeleteRefresh(ctx, refresh); err != nil {
			return err
		}
	}
	return m.store.DeleteUserRefresh(ctx, sess.UserID)
}
