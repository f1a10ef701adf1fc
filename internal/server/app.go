// Package server initializes and runs the authentication service: it
// selects the storage backend, applies migrations, wires the credential
// resolver picked by configuration, and serves the HTTP API until the
// process is told to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/dmitrijs2005/authgate/internal/server/config"
	"github.com/dmitrijs2005/authgate/internal/server/httpapi"
	"github.com/dmitrijs2005/authgate/internal/server/password"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authgate/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager repomanager.RepositoryManager
	api     *httpapi.API
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewDefault().With("module", "server")

	var manager repomanager.RepositoryManager
	var err error
	if cfg.DatabaseDSN == "" {
		logger.Warn(context.Background(), "no database DSN configured, using in-memory storage")
		manager = repomanager.NewInMemoryRepositoryManager()
	} else {
		manager, err = repomanager.NewPostgresRepositoryManager(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	svc := services.NewAuthService(manager.Users(), hasher)

	var resolver auth.Authenticator
	switch cfg.AuthType {
	case config.AuthTypeBasic:
		resolver = auth.NewBasicAuthenticator(manager.Users(), hasher)
	case config.AuthTypeSession:
		resolver = auth.NewSessionAuthenticator(svc, cfg.SessionCookieName)
	default:
		return nil, fmt.Errorf("unknown auth type: %s", cfg.AuthType)
	}

	api := httpapi.New(svc, resolver, cfg, logger)

	return &App{config: cfg, logger: logger, manager: manager, api: api}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr, "auth_type", app.config.AuthType)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.api.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	if conn := app.manager.Conn(); conn != nil {
		if err := conn.Close(); err != nil {
			app.logger.Error(ctx, "closing database connection", "error", err)
		}
	}

	return nil
}
