package storage

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// TokenCookieName is the cookie under which the session token travels.
const TokenCookieName = "token"

// CookieAdapter keeps the session token as a cookie in the jar shared with
// the HTTP client, scoped to the API origin, mirroring the browser variant
// of this flow where the token lived in a 7-day cookie. The pending marker
// and the cached profile stay in the wrapped key-value adapter: every
// observed variant kept those out of the cookie jar.
type CookieAdapter struct {
	Adapter // key-value fallback for non-cookie values

	jar    http.CookieJar
	origin *url.URL
}

// NewCookieAdapter wraps kv, redirecting token persistence into jar.
// baseURL is the remote service origin the cookie is scoped to.
func NewCookieAdapter(kv Adapter, jar http.CookieJar, baseURL string) (*CookieAdapter, error) {
	origin, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &CookieAdapter{Adapter: kv, jar: jar, origin: origin}, nil
}

func (a *CookieAdapter) Token(_ context.Context) (string, error) {
	for _, c := range a.jar.Cookies(a.origin) {
		if c.Name == TokenCookieName {
			return c.Value, nil
		}
	}
	return "", nil
}

func (a *CookieAdapter) SetToken(_ context.Context, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	a.jar.SetCookies(a.origin, []*http.Cookie{{
		Name:    TokenCookieName,
		Value:   value,
		Path:    "/",
		Expires: time.Now().Add(ttl),
	}})
	return nil
}

func (a *CookieAdapter) ClearToken(_ context.Context) error {
	a.jar.SetCookies(a.origin, []*http.Cookie{{
		Name:    TokenCookieName,
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	}})
	return nil
}

func (a *CookieAdapter) Clear(ctx context.Context) error {
	if err := a.ClearToken(ctx); err != nil {
		return err
	}
	return a.Adapter.Clear(ctx)
}
