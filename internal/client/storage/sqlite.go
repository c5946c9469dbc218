package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avoronin/otpgate/internal/client/models"
	"github.com/avoronin/otpgate/internal/dbx"
)

// SQLiteAdapter keeps everything in a single-table key-value store, the
// durable equivalent of the browser's local storage.
type SQLiteAdapter struct {
	db *sql.DB
}

// tokenRecord is the stored form of the session token. The expiry is
// enforced on read: an expired record behaves as an absent one.
type tokenRecord struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewSQLiteAdapter(db *sql.DB) *SQLiteAdapter {
	return &SQLiteAdapter{db: db}
}

func (a *SQLiteAdapter) get(ctx context.Context, q dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get state[%s]: %w", key, err)
	}
	return value, nil
}

func (a *SQLiteAdapter) set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set state[%s]: %w", key, err)
	}
	return nil
}

func (a *SQLiteAdapter) delete(ctx context.Context, q dbx.DBTX, key string) error {
	_, err := q.ExecContext(ctx, `DELETE FROM state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete state[%s]: %w", key, err)
	}
	return nil
}

func (a *SQLiteAdapter) Token(ctx context.Context) (string, error) {
	raw, err := a.get(ctx, a.db, keyToken)
	if err != nil || raw == nil {
		return "", err
	}

	var rec tokenRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return "", fmt.Errorf("corrupt token record: %w", err)
	}
	if time.Now().After(rec.ExpiresAt) {
		_ = a.delete(ctx, a.db, keyToken)
		return "", nil
	}
	return rec.Value, nil
}

func (a *SQLiteAdapter) SetToken(ctx context.Context, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	raw, err := json.Marshal(tokenRecord{Value: value, ExpiresAt: time.Now().Add(ttl)})
	if err != nil {
		return err
	}
	return a.set(ctx, a.db, keyToken, raw)
}

func (a *SQLiteAdapter) ClearToken(ctx context.Context) error {
	return a.delete(ctx, a.db, keyToken)
}

func (a *SQLiteAdapter) PendingVerification(ctx context.Context) (*models.PendingVerification, error) {
	raw, err := a.get(ctx, a.db, keyPending)
	if err != nil || raw == nil {
		return nil, err
	}
	var pv models.PendingVerification
	if err := json.Unmarshal(raw, &pv); err != nil {
		return nil, fmt.Errorf("corrupt pending verification record: %w", err)
	}
	return &pv, nil
}

func (a *SQLiteAdapter) SetPendingVerification(ctx context.Context, pending models.PendingVerification) error {
	raw, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	return a.set(ctx, a.db, keyPending, raw)
}

func (a *SQLiteAdapter) ClearPendingVerification(ctx context.Context) error {
	return a.delete(ctx, a.db, keyPending)
}

func (a *SQLiteAdapter) CachedProfile(ctx context.Context) (*models.UserProfile, error) {
	raw, err := a.get(ctx, a.db, keyProfile)
	if err != nil || raw == nil {
		return nil, err
	}
	var p models.UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("corrupt profile record: %w", err)
	}
	return &p, nil
}

func (a *SQLiteAdapter) SetCachedProfile(ctx context.Context, profile *models.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return a.set(ctx, a.db, keyProfile, raw)
}

func (a *SQLiteAdapter) ClearCachedProfile(ctx context.Context) error {
	return a.delete(ctx, a.db, keyProfile)
}

// Clear removes token, pending marker, and cached profile in a single
// transaction so a logout never leaves a partially cleared store behind.
func (a *SQLiteAdapter) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, key := range []string{keyToken, keyPending, keyProfile} {
			if err := a.delete(ctx, tx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *SQLiteAdapter) Close() error {
	return a.db.Close()
}
