package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/avoronin/otpgate/internal/client/models"
	"github.com/avoronin/otpgate/internal/common"
	"github.com/avoronin/otpgate/internal/logging"
)

// authBasePath is where the auth operations live on the remote service.
const authBasePath = "/api/auth"

// TokenSource yields the bearer credential attached to outgoing requests.
// Durable storage adapters satisfy it; an empty token means "send nothing".
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// HTTPClient talks JSON-over-HTTP to the remote auth service. Requests
// carry the shared cookie jar, so the server is free to maintain an
// httpOnly session cookie next to the bearer token.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	cache   *TagCache
	log     logging.Logger
}

// Option tweaks client construction.
type Option func(*HTTPClient)

// WithHTTPClient substitutes the underlying transport, typically to share
// a cookie jar with the persistence layer or to point at a test server.
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

// WithTokenSource wires the durable token store the bearer header reads from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// WithLogger replaces the default no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client for the service at baseURL (scheme://host,
// no trailing /api/auth). The default transport owns a fresh cookie jar and
// a 10 second timeout.
func NewHTTPClient(baseURL string, cache *TagCache, opts ...Option) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	c := &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar, Timeout: 10 * time.Second},
		cache:   cache,
		log:     logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Cache exposes the tag cache so the session layer can seed and subscribe.
func (c *HTTPClient) Cache() *TagCache { return c.cache }

// Jar exposes the transport's cookie jar for the cookie-backed token store.
func (c *HTTPClient) Jar() http.CookieJar { return c.http.Jar }

// post performs one envelope-wrapped POST. A successful mutation
// invalidates the declared tags before returning.
func post[T any](ctx context.Context, c *HTTPClient, path string, body any, invalidates ...Tag) (*T, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authBasePath+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			c.log.Warn(ctx, "token read failed, sending unauthenticated", "err", err)
		} else if token != "" {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env Envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "malformed response"}
	}

	if resp.StatusCode >= 400 || !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: failureMessage(&env)}
		c.log.Debug(ctx, "auth api failure", "path", path, "status", resp.StatusCode)
		return nil, apiErr
	}

	if len(invalidates) > 0 && c.cache != nil {
		c.cache.Invalidate(invalidates...)
	}

	return env.Data, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*OtpSent, error) {
	return post[OtpSent](ctx, c, "/register", req)
}

func (c *HTTPClient) VerifyRegisterOtp(ctx context.Context, req VerifyOtpRequest) (*models.UserProfile, error) {
	return post[models.UserProfile](ctx, c, "/verify-register-otp", req, TagAuth)
}

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*OtpSent, error) {
	return post[OtpSent](ctx, c, "/login", req)
}

func (c *HTTPClient) VerifyOtp(ctx context.Context, req VerifyOtpRequest) (*LoginVerify, error) {
	return post[LoginVerify](ctx, c, "/verify-otp", req, TagAuth)
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	_, err := post[struct{}](ctx, c, "/forgot-password", map[string]string{"email": email})
	return err
}

func (c *HTTPClient) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	_, err := post[struct{}](ctx, c, "/reset-password", req)
	return err
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := post[struct{}](ctx, c, "/logout", nil, TagAuth)
	return err
}

// Close releases client resources. The stdlib transport needs no explicit
// teardown; the method exists to satisfy the Client contract.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
