// Package storage abstracts over the two persistence mechanisms available
// to the client (a durable key-value store and a cookie jar shared with the
// HTTP transport) so session code does not need storage-specific logic.
package storage

import (
	"context"
	"time"

	"github.com/avoronin/otpgate/internal/client/models"
)

// DefaultTokenTTL is the lifetime of a persisted token. Matches the fixed
// 7-day cookie expiry used by the remote service.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Keys under which the adapter persists its values in the key-value store.
const (
	keyToken   = "token"
	keyPending = "pending_verification"
	keyProfile = "profile"
)

// Adapter is the single persistence contract for the session token, the
// pending-verification marker, and the cached user profile.
//
// Implementations must degrade gracefully: a read of an absent value returns
// the zero value and a nil error, and deletes are idempotent.
type Adapter interface {
	// Token returns the persisted session token, or "" when none is stored
	// or the stored one has expired.
	Token(ctx context.Context) (string, error)
	// SetToken persists the token with the given lifetime. A non-positive
	// ttl falls back to DefaultTokenTTL.
	SetToken(ctx context.Context, value string, ttl time.Duration) error
	ClearToken(ctx context.Context) error

	PendingVerification(ctx context.Context) (*models.PendingVerification, error)
	SetPendingVerification(ctx context.Context, pending models.PendingVerification) error
	ClearPendingVerification(ctx context.Context) error

	CachedProfile(ctx context.Context) (*models.UserProfile, error)
	SetCachedProfile(ctx context.Context, profile *models.UserProfile) error
	ClearCachedProfile(ctx context.Context) error

	// Clear removes everything the adapter might hold: token, pending
	// marker, and cached profile. Used by logout; idempotent.
	Clear(ctx context.Context) error

	Close() error
}
