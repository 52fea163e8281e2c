// Package app assembles the service: config, logger, store, token signing
// and the HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/kamelin22/user-api/internal/userapi/http"
	"github.com/kamelin22/user-api/internal/userapi/service"
	"github.com/kamelin22/user-api/internal/userapi/store"
	"github.com/kamelin22/user-api/internal/userapi/store/drivers/sqlite"
	"github.com/kamelin22/user-api/pkg/cryptox"
	"github.com/kamelin22/user-api/pkg/jwtx"
	"github.com/kamelin22/user-api/pkg/retryx"
	"github.com/kamelin22/user-api/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	tokens *jwtx.HS256

	userService       *service.UserService
	tokenService      *service.TokenService
	favouritesService *service.FavouritesService
	historyService    *service.HistoryService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized. Startup-only
// failures (empty signing secret, exhausted connection attempts) surface
// here; the process must not begin serving after any of them.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "user-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// An empty secret would mean issuing forgeable tokens, so this check
	// happens before anything else.
	tokens, err := jwtx.NewHS256([]byte(cfg.JWTSecret), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("token signer: %w", err)
	}
	app.tokens = tokens

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("user api starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully stops the HTTP server and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down user api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("user api stopped")
	return nil
}

// initDatabase opens the store and applies migrations, retrying the whole
// sequence with a fixed delay. The database may still be coming up when the
// process starts; we only give up once the attempt budget is spent.
func (app *Application) initDatabase() error {
	ctx := slogx.WithContext(context.Background(), app.logger)

	retryCfg := retryx.Config{
		Attempts: app.cfg.ConnectAttempts,
		Delay:    app.cfg.ConnectRetryDelay,
	}

	err := retryx.Do(ctx, retryCfg, func(ctx context.Context) error {
		db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
		if err != nil {
			return err
		}

		if err := db.Ping(ctx); err != nil {
			_ = db.Close()
			return err
		}

		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return err
		}

		app.db = db
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	app.logger.Info("database ready, migrations applied")
	return nil
}

func (app *Application) initServices() {
	app.userService = &service.UserService{
		Store:  app.db,
		Hasher: cryptox.Argon2id{},
	}
	app.tokenService = &service.TokenService{
		Signer: app.tokens,
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.TokenTTL,
	}
	app.favouritesService = &service.FavouritesService{Store: app.db}
	app.historyService = &service.HistoryService{Store: app.db}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.tokens, BuildVersion, app.db, app.logger)

	router.UserService = app.userService
	router.TokenService = app.tokenService
	router.FavouritesService = app.favouritesService
	router.HistoryService = app.historyService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
