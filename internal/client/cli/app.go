package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"os"

	"github.com/avoronin/otpgate/internal/client/api"
	"github.com/avoronin/otpgate/internal/client/config"
	"github.com/avoronin/otpgate/internal/client/nav"
	"github.com/avoronin/otpgate/internal/client/session"
	"github.com/avoronin/otpgate/internal/client/storage"
	"github.com/avoronin/otpgate/internal/logging"
)

// App wires the interactive client together: config, durable storage, the
// remote auth client, the in-memory session, and guarded navigation.
type App struct {
	config  *config.Config
	api     api.Client
	session *session.Store
	store   storage.Adapter
	router  *nav.Router
	reader  *bufio.Reader
	log     logging.Logger
}

// NewApp builds the client. The sqlite state store failing to open is not
// fatal: the app degrades to the no-op adapter and simply cannot survive a
// restart authenticated.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Jar: jar, Timeout: cfg.RequestTimeout}

	var adapter storage.Adapter
	if db, err := storage.OpenDatabase(ctx, cfg.DatabaseDSN); err != nil {
		logger.Warn(ctx, "state store unavailable, continuing without persistence", "err", err)
		adapter = storage.NewNoopAdapter()
	} else {
		adapter = storage.NewSQLiteAdapter(db)
	}

	if cfg.TokenStore == config.TokenStoreCookie {
		cookieAdapter, err := storage.NewCookieAdapter(adapter, jar, cfg.BaseURL)
		if err != nil {
			_ = adapter.Close()
			return nil, err
		}
		adapter = cookieAdapter
	}

	cache := api.NewTagCache(api.CacheConfig{})
	apiClient, err := api.NewHTTPClient(cfg.BaseURL, cache,
		api.WithHTTPClient(httpClient),
		api.WithTokenSource(adapter),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	sess := session.New(ctx, adapter, cache, logger)
	sess.SetTokenTTL(cfg.TokenTTL)
	router := nav.NewRouter(nav.NewGuard(sess.IsAuthenticated), nav.RouteHome)

	return &App{
		config:  cfg,
		api:     apiClient,
		session: sess,
		store:   adapter,
		router:  router,
		reader:  bufio.NewReader(os.Stdin),
		log:     logger,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// getStatus renders the prompt prefix: who is logged in and where they are.
func (a *App) getStatus() string {
	who := "anonymous"
	if u := a.session.User(); u != nil {
		who = u.Username
	}
	return fmt.Sprintf("%s @ %s", who, a.router.Current())
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to otpgate (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases client resources.
func (a *App) Close() {
	if err := a.api.Close(); err != nil {
		a.log.Warn(context.Background(), "api client close failed", "err", err)
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn(context.Background(), "state store close failed", "err", err)
	}
}

// errMessage resolves the single user-facing message for a failed remote
// call: the structured message when the server answered, a fixed phrase
// when it did not.
func errMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, api.ErrUnavailable) {
		return "Server unavailable. Please try again."
	}
	return err.Error()
}
