package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	appconfig "github.com/muzammilspiralsols/widget-booking/internal/config"
	"github.com/muzammilspiralsols/widget-booking/internal/session"
	"github.com/muzammilspiralsols/widget-booking/pkg/logging"
)

func TestBuildRedisClientDisabled(t *testing.T) {
	if client := BuildRedisClient(context.Background(), &appconfig.Config{}, logging.New("error"), true); client != nil {
		t.Fatalf("expected nil client without REDIS_ADDR")
	}
}

func TestBuildRedisClientVerifies(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &appconfig.Config{RedisAddr: mr.Addr()}

	client := BuildRedisClient(context.Background(), cfg, logging.New("error"), true)
	if client == nil {
		t.Fatalf("expected client for reachable redis")
	}
	defer client.Close()

	mr.Close()
	if c := BuildRedisClient(context.Background(), cfg, logging.New("error"), true); c != nil {
		t.Fatalf("expected nil client when ping fails")
	}
}

func TestBuildSessionStore(t *testing.T) {
	cfg := &appconfig.Config{SessionTTL: time.Minute}
	if _, ok := BuildSessionStore(nil, cfg, logging.New("error")).(*session.MemoryStore); !ok {
		t.Fatalf("expected memory store without redis")
	}

	mr := miniredis.RunT(t)
	client := BuildRedisClient(context.Background(), &appconfig.Config{RedisAddr: mr.Addr()}, nil, false)
	defer client.Close()
	if _, ok := BuildSessionStore(client, cfg, logging.New("error")).(*session.RedisStore); !ok {
		t.Fatalf("expected redis store with a client")
	}
}

func TestWidgetOptions(t *testing.T) {
	cfg := &appconfig.Config{
		WidgetTimezone:            "Europe/Madrid",
		DebounceWindow:            150 * time.Millisecond,
		ValidationBannerTTL:       3 * time.Second,
		AvailabilityBannerTTL:     5 * time.Second,
		AvailabilityFallbackDelay: time.Second,
		AvailabilityTimeout:       4 * time.Second,
	}
	opts := WidgetOptions(cfg)
	if opts.Location.String() != "Europe/Madrid" {
		t.Fatalf("expected Europe/Madrid, got %s", opts.Location)
	}
	if opts.DebounceWindow != 150*time.Millisecond || opts.FallbackDelay != time.Second {
		t.Fatalf("unexpected options %+v", opts)
	}
	if len(opts.BannerTTLs) == 0 {
		t.Fatalf("expected banner ttls")
	}
	if opts.CheckTimeout != 4*time.Second {
		t.Fatalf("expected check timeout 4s, got %s", opts.CheckTimeout)
	}
}

func TestConnectPostgresPoolEmptyURLReturnsNil(t *testing.T) {
	if pool := ConnectPostgresPool(context.Background(), "", logging.New("error")); pool != nil {
		t.Fatalf("expected nil pool for empty URL")
	}
}

func TestOpenSQLDBEmptyURL(t *testing.T) {
	db, err := OpenSQLDB("")
	if err != nil || db != nil {
		t.Fatalf("expected nil db and no error, got %v %v", db, err)
	}
}
