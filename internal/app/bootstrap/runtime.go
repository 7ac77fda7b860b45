package bootstrap

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	appconfig "github.com/muzammilspiralsols/widget-booking/internal/config"
	"github.com/muzammilspiralsols/widget-booking/internal/session"
	"github.com/muzammilspiralsols/widget-booking/internal/widget"
	"github.com/muzammilspiralsols/widget-booking/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildSessionStore picks Redis when a client is available so sessions
// survive restarts and are shared across replicas, else an in-process store.
func BuildSessionStore(redisClient *redis.Client, cfg *appconfig.Config, logger *logging.Logger) session.Store {
	if logger == nil {
		logger = logging.Default()
	}
	if redisClient != nil {
		logger.Info("session store: redis", "ttl", cfg.SessionTTL)
		return session.NewRedisStore(redisClient, cfg.SessionTTL, otel.Tracer("widget-booking/session"))
	}
	logger.Info("session store: memory", "ttl", cfg.SessionTTL)
	return session.NewMemoryStore(cfg.SessionTTL)
}

// WidgetOptions maps the environment onto the widget runtime options.
func WidgetOptions(cfg *appconfig.Config) widget.Options {
	return widget.Options{
		Location:       cfg.Location(),
		DebounceWindow: cfg.DebounceWindow,
		BannerTTLs:     widget.DefaultBannerTTLs(cfg.ValidationBannerTTL, cfg.AvailabilityBannerTTL),
		FallbackDelay:  cfg.AvailabilityFallbackDelay,
		CheckTimeout:   cfg.AvailabilityTimeout,
	}
}

// ConnectPostgresPool opens the pgx pool used by the inventory service. An
// empty URL or an unreachable database yields nil.
func ConnectPostgresPool(ctx context.Context, url string, logger *logging.Logger) *pgxpool.Pool {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		logger.Error("failed to create postgres pool", "error", err)
		return nil
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to ping postgres", "error", err)
		pool.Close()
		return nil
	}
	return pool
}

// OpenSQLDB opens a database/sql handle on the lib/pq driver for the hotel
// directory.
func OpenSQLDB(url string) (*sql.DB, error) {
	if strings.TrimSpace(url) == "" {
		return nil, nil
	}
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: open sql db: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}
