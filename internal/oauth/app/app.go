package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/oauthlib/internal/oauth/http"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/metrics"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/service"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/store"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/store/drivers/postgres"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/store/drivers/sqlite"
	"github.com/aussiebroadwan/oauthlib/pkg/cryptox"
	"github.com/aussiebroadwan/oauthlib/pkg/httpx"
	"github.com/aussiebroadwan/oauthlib/pkg/jwe"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/aussiebroadwan/oauthlib/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the oauth service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	codec    *jwe.Codec
	registry *scope.Registry
	metrics  *prometheus.Registry

	// Services
	directory     *service.ClientDirectory
	tokenService  *service.TokenService
	clientService *service.ClientService
	userService   *service.UserService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
// Configuration problems are returned wrapping service.ErrConfiguration.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "oauth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			LogPII:  cfg.LogPII,
		}),
		registry: scope.Default(),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the fully wired router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("oauth service starting",
		slog.Int("port", app.cfg.Port),
		slog.String("version", BuildVersion),
		slog.String("driver", app.cfg.DatabaseDriver),
		slog.Bool("root_client", app.directory.Root.Enabled()),
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down oauth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slog.Any("error", err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slog.Any("error", err))
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slog.Any("error", err))
		return err
	}

	app.logger.Info("oauth service stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", slog.String("driver", app.cfg.DatabaseDriver))
	return nil
}

// initServices builds the codec, metrics and business services
func (app *Application) initServices() error {
	codec, err := jwe.NewCodec([]byte(app.cfg.EncryptionKey))
	if err != nil {
		return fmt.Errorf("%w: %w", service.ErrConfiguration, err)
	}
	app.codec = codec

	root, err := app.cfg.RootClient(app.registry)
	if err != nil {
		return err
	}

	pepper, err := cryptox.LoadOrGeneratePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}

	app.metrics = prometheus.NewRegistry()
	app.metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rec := metrics.New(app.metrics)

	app.directory = &service.ClientDirectory{
		Store:   app.db,
		Root:    root,
		Metrics: rec,
	}
	app.tokenService = &service.TokenService{
		Codec:     codec,
		Directory: app.directory,
		Lifetime:  app.cfg.TokenLifetime(),
		Metrics:   rec,
	}
	app.clientService = &service.ClientService{
		Directory:    app.directory,
		Registry:     app.registry,
		IDLength:     app.cfg.ClientIDLengthBytes,
		SecretLength: app.cfg.ClientSecretLengthBytes,
	}
	app.userService = &service.UserService{
		Store:        app.db,
		Directory:    app.directory,
		Tokens:       app.tokenService,
		Registry:     app.registry,
		Hasher:       cryptox.PasswordHasher{Pepper: pepper},
		IDLength:     app.cfg.ClientIDLengthBytes,
		SecretLength: app.cfg.ClientSecretLengthBytes,
	}

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.codec,
		httpx.RateLimitProfilesFromEnv(),
		app.metrics,
		app.logger,
	)

	router.TokenService = app.tokenService
	router.ClientService = app.clientService
	router.UserService = app.userService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
