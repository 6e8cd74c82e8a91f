package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/middleware"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/server"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
)

const csvLoadTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("application stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting application",
		"version", "1.0.0",
		"addr", cfg.Address(),
		"csv_file", cfg.Data.CSVFile,
		"page_size", cfg.Table.PageSize,
		"locale", cfg.Table.Locale,
	)

	analytics := newAnalytics(cfg, logger)
	if err := loadData(ctx, cfg, analytics); err != nil {
		return err
	}

	rateLimiter := middleware.NewRateLimiter(cfg.Security)
	limiterCtx, stopLimiter := context.WithCancel(ctx)
	defer stopLimiter()
	go rateLimiter.Run(limiterCtx)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      buildHandler(cfg, analytics, rateLimiter, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg.Server)
	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		stopLimiter()
		logger.Info("analytics service stopped", "stats", analytics.Stats())
		return nil
	})

	return gracefulServer.ListenAndServe(ctx)
}

func newAnalytics(cfg *config.Config, logger *slog.Logger) *services.Analytics {
	return services.NewAnalytics(
		services.WithLogger(logger),
		services.WithCacheSize(cfg.Cache.Size),
		services.WithLocale(cfg.LocaleTag()),
		services.WithPageSize(cfg.Table.PageSize),
	)
}

// loadData reads the configured CSV file, or generates sample records when
// no file is configured.
func loadData(ctx context.Context, cfg *config.Config, analytics *services.Analytics) error {
	if cfg.Data.CSVFile == "" {
		return analytics.LoadSample(cfg.Data.SampleSize, cfg.Data.SampleSeed, cfg.Data.SampleYear)
	}

	ctx, cancel := context.WithTimeout(ctx, csvLoadTimeout)
	defer cancel()
	return analytics.LoadFromCSV(ctx, cfg.Data.CSVFile)
}

func buildHandler(cfg *config.Config, analytics *services.Analytics, limiter *middleware.RateLimiter, logger *slog.Logger) http.Handler {
	srv := server.NewServer(analytics, logger, templates.DashboardView{
		Title:    "Sales Dashboard",
		PageSize: cfg.Table.PageSize,
	})

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(limiter, logger),
	)
	return chain(srv)
}
