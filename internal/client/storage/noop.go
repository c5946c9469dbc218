package storage

import (
	"context"
	"time"

	"github.com/avoronin/otpgate/internal/client/models"
)

// NoopAdapter is the graceful-degradation backend used when no storage
// mechanism is available (unwritable state directory, read-only host).
// Every call succeeds and nothing is persisted: the client still works,
// it just cannot survive a restart authenticated.
type NoopAdapter struct{}

func NewNoopAdapter() *NoopAdapter { return &NoopAdapter{} }

func (*NoopAdapter) Token(context.Context) (string, error)                  { return "", nil }
func (*NoopAdapter) SetToken(context.Context, string, time.Duration) error { return nil }
func (*NoopAdapter) ClearToken(context.Context) error                      { return nil }

func (*NoopAdapter) PendingVerification(context.Context) (*models.PendingVerification, error) {
	return nil, nil
}
func (*NoopAdapter) SetPendingVerification(context.Context, models.PendingVerification) error {
	return nil
}
func (*NoopAdapter) ClearPendingVerification(context.Context) error       { return nil }

func (*NoopAdapter) CachedProfile(context.Context) (*models.UserProfile, error) { return nil, nil }
func (*NoopAdapter) SetCachedProfile(context.Context, *models.UserProfile) error {
	return nil
}
func (*NoopAdapter) ClearCachedProfile(context.Context) error { return nil }

func (*NoopAdapter) Clear(context.Context) error { return nil }
func (*NoopAdapter) Close() error                { return nil }
