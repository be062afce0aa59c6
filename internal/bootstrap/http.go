package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/target/boxoffice/config"
	httpx "github.com/target/boxoffice/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	// Store is pinged by /readyz (optional).
	Store httpx.Pinger
	// ErrCh receives the listener error if the server stops unexpectedly (optional).
	ErrCh  chan<- error
	Logger *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := BuildHTTPHandler(appCfg, cfg.Services, cfg.Store, logger)
	return startServer(logger, handler, appCfg.HTTP.Addr, cfg.ErrCh)
}

// BuildHTTPHandler builds the router for the given services.
func BuildHTTPHandler(
	appCfg *config.AppConfig,
	svc ServiceContainer,
	store httpx.Pinger,
	logger *slog.Logger,
) http.Handler {
	services := httpx.RouterServices{
		Store: store,
		Cookie: httpx.ScopeCookie{
			Name:   appCfg.Auth.SessionCookie,
			Domain: appCfg.HTTP.CookieDomain,
		},
		LoginPath:      appCfg.Auth.LoginPath,
		LoadingAfter:   appCfg.Auth.LoadingAfter,
		MaxUploadBytes: appCfg.HTTP.MaxUploadBytes,
		IsDev:          appCfg.IsDev,
		Logger:         logger,
	}
	// Typed nils must not reach the router's interfaces.
	if svc.Auth != nil {
		services.Auth = svc.Auth
	}
	if svc.Catalog != nil {
		services.Catalog = svc.Catalog
	}
	if svc.Wizard != nil {
		services.Wizard = svc.Wizard
	}
	if svc.Metrics != nil {
		services.Metrics = svc.Metrics
	}
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		services.Compression = &httpx.CompressionConfig{Level: appCfg.HTTP.CompressionLevel, MinSize: 1024}
	}
	return httpx.NewRouter(services)
}

func startServer(logger *slog.Logger, handler http.Handler, addr string, errCh chan<- error) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			if errCh != nil {
				errCh <- err
			}
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}
	ctx := cfg.Context
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	if err := cfg.Server.Shutdown(ctx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
