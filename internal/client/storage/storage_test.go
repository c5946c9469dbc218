package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/http/cookiejar"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avoronin/otpgate/internal/client/models"
)

var dbSeq int

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:storagetest%d?mode=memory&cache=shared", dbSeq)
	db, err := OpenDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteAdapter_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewSQLiteAdapter(setupDB(t))

	got, err := a.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, got, "empty store must yield empty token")

	require.NoError(t, a.SetToken(ctx, "tok-123", time.Hour))
	got, err = a.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-123", got)

	require.NoError(t, a.ClearToken(ctx))
	got, err = a.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSQLiteAdapter_TokenExpiry(t *testing.T) {
	ctx := context.Background()
	a := NewSQLiteAdapter(setupDB(t))

	require.NoError(t, a.SetToken(ctx, "short-lived", time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	got, err := a.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, got, "expired token must read as absent")
}

func TestSQLiteAdapter_PendingVerification_SurvivesReload(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	a := NewSQLiteAdapter(db)
	require.NoError(t, a.SetPendingVerification(ctx, models.PendingVerification{
		Email: "a@x.com",
		Flow:  models.FlowLogin,
	}))

	// a fresh adapter over the same store simulates a client restart
	b := NewSQLiteAdapter(db)
	pv, err := b.PendingVerification(ctx)
	require.NoError(t, err)
	require.NotNil(t, pv)
	require.Equal(t, "a@x.com", pv.Email)
	require.Equal(t, models.FlowLogin, pv.Flow, "flow must survive the reload")

	require.NoError(t, b.ClearPendingVerification(ctx))
	pv, err = a.PendingVerification(ctx)
	require.NoError(t, err)
	require.Nil(t, pv)
}

func TestSQLiteAdapter_ProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewSQLiteAdapter(setupDB(t))

	p, err := a.CachedProfile(ctx)
	require.NoError(t, err)
	require.Nil(t, p)

	want := &models.UserProfile{ID: "u1", Username: "alice", Email: "a@x.com"}
	require.NoError(t, a.SetCachedProfile(ctx, want))

	p, err = a.CachedProfile(ctx)
	require.NoError(t, err)
	require.Equal(t, want, p)
}

func TestSQLiteAdapter_Clear_Idempotent(t *testing.T) {
	ctx := context.Background()
	a := NewSQLiteAdapter(setupDB(t))

	require.NoError(t, a.SetToken(ctx, "tok", 0))
	require.NoError(t, a.SetPendingVerification(ctx, models.PendingVerification{Email: "a@x.com"}))
	require.NoError(t, a.SetCachedProfile(ctx, &models.UserProfile{ID: "u1"}))

	require.NoError(t, a.Clear(ctx))
	require.NoError(t, a.Clear(ctx), "clearing an empty store must not fail")

	tok, err := a.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
	pv, err := a.PendingVerification(ctx)
	require.NoError(t, err)
	require.Nil(t, pv)
	p, err := a.CachedProfile(ctx)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestCookieAdapter_TokenInJar(t *testing.T) {
	ctx := context.Background()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	a, err := NewCookieAdapter(NewSQLiteAdapter(setupDB(t)), jar, "http://auth.example.com")
	require.NoError(t, err)

	tok, err := a.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	require.NoError(t, a.SetToken(ctx, "cookie-tok", 0))
	tok, err = a.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "cookie-tok", tok)

	require.NoError(t, a.ClearToken(ctx))
	tok, err = a.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestCookieAdapter_NonTokenValuesGoToKV(t *testing.T) {
	ctx := context.Background()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	kv := NewSQLiteAdapter(setupDB(t))
	a, err := NewCookieAdapter(kv, jar, "http://auth.example.com")
	require.NoError(t, err)

	require.NoError(t, a.SetPendingVerification(ctx, models.PendingVerification{Email: "b@x.com"}))
	pv, err := kv.PendingVerification(ctx)
	require.NoError(t, err)
	require.NotNil(t, pv)
	require.Equal(t, "b@x.com", pv.Email)
}

func TestCookieAdapter_ClearWipesBothMechanisms(t *testing.T) {
	ctx := context.Background()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	kv := NewSQLiteAdapter(setupDB(t))
	a, err := NewCookieAdapter(kv, jar, "http://auth.example.com")
	require.NoError(t, err)

	require.NoError(t, a.SetToken(ctx, "tok", 0))
	require.NoError(t, a.SetCachedProfile(ctx, &models.UserProfile{ID: "u1"}))

	require.NoError(t, a.Clear(ctx))

	tok, err := a.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
	p, err := a.CachedProfile(ctx)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestNoopAdapter_NeverFails(t *testing.T) {
	ctx := context.Background()
	a := NewNoopAdapter()

	require.NoError(t, a.SetToken(ctx, "tok", 0))
	tok, err := a.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok, "noop adapter persists nothing")

	require.NoError(t, a.SetPendingVerification(ctx, models.PendingVerification{Email: "a@x.com"}))
	pv, err := a.PendingVerification(ctx)
	require.NoError(t, err)
	require.Nil(t, pv)

	require.NoError(t, a.Clear(ctx))
	require.NoError(t, a.Close())
}
