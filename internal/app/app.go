package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"nucdash/internal/charts"
	"nucdash/internal/config"
	"nucdash/internal/dataprocessing"
	apierrors "nucdash/internal/errors"
	"nucdash/internal/infrastructure"
	customMiddleware "nucdash/internal/middleware"
	"nucdash/internal/services"
	handlers "nucdash/internal/transport/http"
	"nucdash/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	Views         *dataprocessing.Views
	ChartCache    *charts.Cache
	Dashboard     *services.DashboardService
	Health        *services.HealthService
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.DashboardMetrics

	listener net.Listener
	serveErr chan error
}

// NewApplication prepares the views and wires services, handlers and the server.
// Pipeline errors are returned unchanged so callers can inspect them.
func NewApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.InfoContext(ctx, "Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version))

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, apierrors.NewStorageError("failed to ensure directories", err)
	}
	paths.LogPathResolution(logger)

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	metrics, err := infrastructure.CreateDashboardMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: providers,
		Metrics:       metrics,
	}

	if err := a.initializeServices(ctx); err != nil {
		_ = providers.Shutdown(ctx)
		return nil, err
	}
	if err := a.setupRouter(); err != nil {
		_ = providers.Shutdown(ctx)
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}
	a.createServer()
	return a, nil
}

// initializeServices prepares the views, optionally prerenders the charts and builds
// the services on top of them
func (a *Application) initializeServices(ctx context.Context) error {
	views, err := PrepareViews(ctx, a.Config.Data, a.Paths, a.Metrics, a.Logger)
	if err != nil {
		return apierrors.NewDataError("failed to prepare views", err).WithContext("source", a.Config.Data.SourceFile)
	}
	a.Views = views

	a.ChartCache = charts.NewCache()
	if a.Config.Charts.Prerender {
		cache, err := RenderCharts(ctx, a.Config.Charts, views, []string{a.Config.Charts.Format}, "", a.Metrics, a.Logger)
		if err != nil {
			return fmt.Errorf("failed to prerender charts: %w", err)
		}
		a.ChartCache = cache
	}

	renderer := charts.NewRenderer(a.Config.Charts.WidthInch, a.Config.Charts.HeightInch)
	a.Dashboard = services.NewDashboardService(views, renderer, a.ChartCache, a.Metrics, a.Logger)
	a.Health = services.NewHealthService(a.Dashboard, a.Paths, a.Logger)
	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() error {
	r := chi.NewRouter()
	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Level == "debug")

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders, a.Metrics)
	if err != nil {
		return err
	}

	r.Use(customMiddleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(otelMiddleware.Handler)
	r.Use(apierrors.NewErrorMiddleware(errorHandler, a.Logger).Handler)
	r.Use(customMiddleware.DefaultSecureHeaders().Handler)
	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			ExposedHeaders: []string{customMiddleware.RequestIDHeader},
			MaxAge:         300,
			Logger:         a.Logger,
		}))
	}
	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(a.Config.Security.RateLimit.RPS, a.Config.Security.RateLimit.Burst, a.Logger).Handler)
	}

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle(config.MetricsEndpoint, a.OTelProviders.PrometheusHTTP)
	}

	validator := customMiddleware.NewValidator()
	viewsHandler := handlers.NewViewsHandler(a.Dashboard, validator, a.Logger, errorHandler)
	chartsHandler := handlers.NewChartsHandler(a.Dashboard, validator, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(a.Health, a.Logger)
	pageHandler := handlers.NewPageHandler(a.Dashboard, a.Config.Charts.Format, a.Logger, errorHandler)

	r.With(middleware.Compress(5)).Get("/", pageHandler.ServeDashboard)

	r.Route(config.APIBasePath, func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Deadline(a.Config.Server.RequestTimeout))

		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)

		r.Mount("/views", viewsHandler.Routes())
		r.Get("/scaler", viewsHandler.GetScaler)
		r.Get("/dataset", viewsHandler.GetDataset)
		r.Mount("/charts", chartsHandler.Routes())
	})

	a.Router = r
	return nil
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Server.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start binds the listen address and serves in the background
func (a *Application) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	a.listener = ln
	a.serveErr = make(chan error, 1)

	go func() {
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.serveErr <- err
		}
		close(a.serveErr)
	}()

	a.Logger.InfoContext(ctx, "Application started",
		slog.String("address", ln.Addr().String()),
		slog.Int("global_rows", a.Views.Global().Len()),
		slog.Int("local_rows", a.Views.Local().Len()))
	return nil
}

// Addr returns the bound address once started
func (a *Application) Addr() string {
	if a.listener == nil {
		return a.Server.Addr
	}
	return a.listener.Addr().String()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			infrastructure.WithError(a.Logger, err).ErrorContext(ctx, "Error shutting down OpenTelemetry")
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return errors.Join(errs...)
}

// Run serves until ctx is cancelled or the server fails, then shuts down
func (a *Application) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	var serveErr error
	select {
	case <-ctx.Done():
		a.Logger.InfoContext(ctx, "Received shutdown signal")
	case err, ok := <-a.serveErr:
		if ok {
			serveErr = err
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
		}
	}

	return errors.Join(serveErr, a.Stop(ctx))
}
