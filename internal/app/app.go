// Package app assembles the HTTP application: configuration, logging, the
// analytics pipeline collaborators, the chi router and the server lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"retailpulse/internal/analytics"
	"retailpulse/internal/config"
	"retailpulse/internal/infrastructure"
	"retailpulse/internal/loader"
	customMiddleware "retailpulse/internal/middleware"
	"retailpulse/internal/pipeline"
	"retailpulse/internal/services"
	transport "retailpulse/internal/transport/http"
)

// Application holds the wired components of the server.
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Service *services.AnalyticsService
	Router  chi.Router
	Server  *http.Server
}

// NewApplication loads configuration and wires all components.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewApplicationWithConfig(cfg)
}

// NewApplicationWithConfig wires all components from an explicit config.
func NewApplicationWithConfig(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	source := loader.Source{File: cfg.Source.File, Sheet: cfg.Source.Sheet}
	cache := pipeline.NewDatasetCache(loader.Load, logger)
	engine := analytics.NewEngine(cfg.Analytics.DominantCountry, cfg.Analytics.TopN, logger)
	service := services.NewAnalyticsService(source, cache, engine, logger)

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Service: service,
	}
	app.setupRouter()

	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// setupRouter configures the HTTP router with all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	metrics := customMiddleware.NewHTTPMetrics()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(metrics.Handler)

	if a.Config.Server.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Server.RateLimit.RPS,
			a.Config.Server.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		transport.NewHealthHandler(a.Logger).RegisterRoutes(r)
		transport.NewDashboardHandler(a.Service, a.Logger).RegisterRoutes(r)
	})

	r.Method(http.MethodGet, "/metrics", metrics.Endpoint())

	a.Router = r
}

// Run starts the server and blocks until shutdown.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening",
			slog.String("addr", a.Server.Addr),
			slog.String("source", a.Config.Source.File),
		)
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	infrastructure.CloseLogger()
	return nil
}
