// Package session holds the in-memory authentication state: the single
// source of truth for "is the user authenticated, and as whom".
package session

import (
	"context"
	"sync"
	"time"

	"github.com/avoronin/otpgate/internal/client/api"
	"github.com/avoronin/otpgate/internal/client/models"
	"github.com/avoronin/otpgate/internal/client/storage"
	"github.com/avoronin/otpgate/internal/logging"
)

// profileCacheKey is where the hydrated profile sits in the tag cache.
const profileCacheKey = "auth/profile"

// Update is a partial session mutation. Nil fields are left untouched, so
// "token now, user later" (and the reverse) both work.
//
// Note: the store deliberately does not enforce user != nil => token != nil;
// observed flows set a user without a confirmed token and rely on the
// httpOnly cookie instead.
type Update struct {
	Token *string
	User  *models.UserProfile
}

// Store keeps the session in memory and mirrors it into durable storage.
type Store struct {
	mu      sync.RWMutex
	session models.Session

	adapter  storage.Adapter
	cache    *api.TagCache
	log      logging.Logger
	tokenTTL time.Duration
}

// SetTokenTTL overrides the lifetime used when persisting tokens. The
// default is storage.DefaultTokenTTL.
func (s *Store) SetTokenTTL(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenTTL = d
}

// New constructs a Store and hydrates it synchronously from the adapter, so
// a restarted client reconstructs "already authenticated" without a network
// round-trip. Storage read failures degrade to an anonymous session.
func New(ctx context.Context, adapter storage.Adapter, cache *api.TagCache, log logging.Logger) *Store {
	s := &Store{adapter: adapter, cache: cache, log: log}

	token, err := adapter.Token(ctx)
	if err != nil {
		log.Warn(ctx, "token hydration failed, starting anonymous", "err", err)
	}
	profile, err := adapter.CachedProfile(ctx)
	if err != nil {
		log.Warn(ctx, "profile hydration failed", "err", err)
	}

	s.session = models.Session{Token: token, User: profile}

	if cache != nil {
		if profile != nil {
			cache.Set(profileCacheKey, profile, api.TagAuth)
		}
		cache.OnInvalidate(api.TagAuth, func() {
			if err := adapter.ClearCachedProfile(context.Background()); err != nil {
				log.Warn(context.Background(), "cached profile invalidation failed", "err", err)
			}
		})
	}

	return s
}

// SetUser merges the provided fields into the session and persists each one
// that was provided: the token with its TTL, the profile into the profile
// cache. Partial updates commute.
func (s *Store) SetUser(ctx context.Context, u Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Token != nil {
		s.session.Token = *u.Token
		if err := s.adapter.SetToken(ctx, *u.Token, s.tokenTTL); err != nil {
			return err
		}
	}
	if u.User != nil {
		s.session.User = u.User
		if err := s.adapter.SetCachedProfile(ctx, u.User); err != nil {
			return err
		}
		if s.cache != nil {
			s.cache.Set(profileCacheKey, u.User, api.TagAuth)
		}
	}
	return nil
}

// Logout clears both fields in memory and issues a durable delete against
// every mechanism that might hold a token or cached profile. Idempotent:
// logging out twice leaves the same cleared state.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = models.Session{}
	if s.cache != nil {
		s.cache.Delete(profileCacheKey)
	}
	return s.adapter.Clear(ctx)
}

// Session returns a copy of the current session.
func (s *Store) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Token returns the current bearer token, "" when anonymous.
func (s *Store) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token, nil
}

// User returns the current profile, nil when anonymous.
func (s *Store) User() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.User
}

// IsAuthenticated reports whether a user is present. Route guarding keys
// off this, not the token.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAuthenticated()
}
