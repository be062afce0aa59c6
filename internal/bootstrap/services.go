package bootstrap

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

	"github.com/target/boxoffice/config"
	"github.com/target/boxoffice/internal/adapters/backend"
	"github.com/target/boxoffice/internal/observability/statsd"
	"github.com/target/boxoffice/internal/ports"
	"github.com/target/boxoffice/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Backend *backend.Client
	Auth    *service.AuthService
	Catalog *service.CatalogService
	Wizard  *service.EventWizard
	// Metrics is nil unless METRICS_ENABLED is set.
	Metrics *statsd.Client
}

// Close releases the metrics connection.
func (c ServiceContainer) Close() error {
	return c.Metrics.Close()
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	KV     ports.KeyValueStore
	// HTTPClient overrides the backend client; its Timeout is replaced by BACKEND_TIMEOUT when nil.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// BuildBackendClient creates the remote API client. sink may be nil.
func BuildBackendClient(cfg config.BackendConfig, hc *http.Client, sink *statsd.Client, logger *slog.Logger) *backend.Client {
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	opts := backend.Options{BaseURL: cfg.BaseURL(), HTTPClient: hc, Logger: logger}
	if sink != nil {
		opts.Metrics = sink
	}
	return backend.New(opts)
}

// BuildMetricsClient dials StatsD when metrics are enabled. A dial failure is logged
// and metrics stay off.
func BuildMetricsClient(cfg config.MetricsConfig, logger *slog.Logger) *statsd.Client {
	if !cfg.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	logger.Info("metrics enabled", "statsd_address", cfg.StatsdAddress, "prefix", cfg.Prefix)
	return client
}

// Backends exposes every resource client of c.
func Backends(c *backend.Client) service.Backends {
	return service.Backends{
		Events:   c.Events(),
		Venues:   c.Venues(),
		Sections: c.Sections(),
		Tickets:  c.Tickets(),
		Foods:    c.Foods(),
		Upload:   c.Upload(),
	}
}

// BuildServices wires services over the given storage.
func BuildServices(deps ServiceDeps) (ServiceContainer, error) {
	if deps.Config == nil {
		return ServiceContainer{}, errors.New("service config is required")
	}
	if deps.KV == nil {
		return ServiceContainer{}, errors.New("key/value store is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	sink := BuildMetricsClient(cfg.Metrics, logger)
	client := BuildBackendClient(cfg.Backend, deps.HTTPClient, sink, logger)
	auth, err := BuildAuthService(AuthConfig{
		Auth:      cfg.Auth,
		KV:        deps.KV,
		Backend:   client.Auth(),
		KeyPrefix: cfg.Storage.KeyPrefix,
		Logger:    logger,
	})
	if err != nil {
		return ServiceContainer{}, errors.Join(fmt.Errorf("build auth service: %w", err), sink.Close())
	}

	b := Backends(client)
	return ServiceContainer{
		Backend: client,
		Auth:    auth,
		Catalog: service.NewCatalogService(service.CatalogServiceOptions{
			Backends:    b,
			FanoutLimit: cfg.Backend.FanoutLimit,
			Logger:      logger,
		}),
		Wizard: service.NewEventWizard(service.EventWizardOptions{
			KV:     deps.KV,
			Events: b.Events,
			Config: service.WizardConfig{Prefix: cfg.Storage.KeyPrefix, Logger: logger},
		}),
		Metrics: sink,
	}, nil
}

// RunConfig contains everything Run needs to serve until shutdown.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Storage  Storage
	Logger   *slog.Logger
}

// Run starts the HTTP server and blocks until a signal arrives or the server fails.
func Run(ctx context.Context, cfg RunConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	errCh := make(chan error, 1)
	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Store:    cfg.Storage.Pinger,
		ErrCh:    errCh,
		Logger:   logger,
	})

	return waitForShutdown(ctx, shutdownConfig{
		errCh:      errCh,
		httpServer: server,
		timeout:    cfg.Config.HTTP.ShutdownTimeout,
		logger:     logger,
	})
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	errCh      <-chan error
	httpServer *http.Server
	timeout    time.Duration
	logger     *slog.Logger
}

// waitForShutdown waits for shutdown signal or server error.
func waitForShutdown(ctx context.Context, cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down...")
		return gracefulStop(cfg)
	case <-ctx.Done():
		cfg.logger.Info("context canceled, shutting down")
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("HTTP server error", "error", err)
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop drains in-flight requests. It uses a fresh context since the
// caller's is usually already canceled.
func gracefulStop(cfg shutdownConfig) error {
	if cfg.httpServer == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	defer cancel()
	return ShutdownHTTPServer(ShutdownConfig{
		Context: shutdownCtx,
		Server:  cfg.httpServer,
		Logger:  cfg.logger,
	})
}
