package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/muzammilspiralsols/widget-booking/internal/api/router"
	"github.com/muzammilspiralsols/widget-booking/internal/app/bootstrap"
	appconfig "github.com/muzammilspiralsols/widget-booking/internal/config"
	"github.com/muzammilspiralsols/widget-booking/internal/hotels"
	"github.com/muzammilspiralsols/widget-booking/internal/http/handlers"
	"github.com/muzammilspiralsols/widget-booking/internal/inventory"
	"github.com/muzammilspiralsols/widget-booking/internal/observability/metrics"
	"github.com/muzammilspiralsols/widget-booking/internal/session"
	"github.com/muzammilspiralsols/widget-booking/internal/widget"
	"github.com/muzammilspiralsols/widget-booking/pkg/logging"
)

func main() {
	// A .env file is optional; real deployments use the environment.
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting widget-booking API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()
	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer redisClient.Close()
	}

	pool := bootstrap.ConnectPostgresPool(ctx, cfg.DatabaseURL, logger)
	if pool != nil {
		defer pool.Close()
	}
	sqlDB, err := bootstrap.OpenSQLDB(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open hotel directory database", "error", err)
		os.Exit(1)
	}
	if sqlDB != nil {
		defer sqlDB.Close()
	}

	store := bootstrap.BuildSessionStore(redisClient, cfg, logger)
	routerCfg := buildRouterConfig(cfg, logger, store, pool, sqlDB, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildRouterConfig wires the widget services. pool and sqlDB are optional;
// without them the availability endpoint is not served and the built-in
// hotel list is used.
func buildRouterConfig(cfg *appconfig.Config, logger *logging.Logger, store session.Store, pool *pgxpool.Pool, sqlDB *sql.DB, reg prometheus.Registerer, gatherer prometheus.Gatherer) *router.Config {
	widgetMetrics := metrics.NewWidgetMetrics(reg)
	gate := widget.NewGate(cfg.AvailabilityTimeout, logger.Component("availability"), widget.WithObserver(widgetMetrics))
	manager := session.NewManager(store, session.NewHub(logger), bootstrap.WidgetOptions(cfg), cfg.SessionTTL, logger.Component("session"))
	tokens := session.NewTokenIssuer(cfg.SessionSecret, cfg.SessionTTL)
	if !tokens.Enabled() {
		logger.Warn("SESSION_SECRET not set; widget session tokens are not enforced")
	}

	var directory hotels.Directory = hotels.NewStaticDirectory(nil)
	if sqlDB != nil {
		directory = hotels.NewSQLDirectory(sqlDB)
	}

	var availability *inventory.Handler
	if pool != nil {
		service := inventory.NewService(inventory.NewRepository(pool), logger)
		availability = inventory.NewHandler(service, logger)
	}

	return &router.Config{
		Logger: logger,
		Widget: handlers.NewWidgetHandler(handlers.WidgetHandlerConfig{
			Manager:   manager,
			Gate:      gate,
			Tokens:    tokens,
			Directory: directory,
			Metrics:   widgetMetrics,
			Logger:    logger,
		}),
		Hotels:             handlers.NewHotelsHandler(directory, logger),
		Availability:       availability,
		Tokens:             tokens,
		MetricsHandler:     promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		Gatherer:           gatherer,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	}
}
