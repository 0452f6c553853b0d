package app

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/menuboard/internal/health"
)

func TestRun_MemoryGracefulShutdown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GRPCAddr = "127.0.0.1:0"
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.MetricsAddr = "127.0.0.1:0"
	cfg.StorageDriver = StorageDriverMemory

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(150 * time.Millisecond)
		cancel()
	}()

	err := Run(ctx, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRun_InvalidStorageDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "invalid-driver"
	cfg.GRPCAddr = "127.0.0.1:0"
	cfg.MetricsAddr = "127.0.0.1:0"

	err := Run(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "unsupported storage driver") {
		t.Fatalf("expected unsupported storage driver error, got %v", err)
	}
}

func TestInitRuntimeDependencies_PostgresSuccess(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("MENU_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("postgres dsn is not available")
	}

	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverPostgres
	cfg.PostgresDSN = dsn
	cfg.PostgresAutoMigrate = true

	deps, err := initRuntimeDependencies(context.Background(), cfg, log.WithField("test", "postgres-init"))
	if err != nil {
		t.Skipf("postgres is not available for app integration test: %v", err)
	}
	defer deps.close(log.WithField("test", "postgres-close"))

	if deps.repo == nil {
		t.Fatal("postgres repository must be initialized")
	}
	check := deps.storageChecker.Check(context.Background())
	if check.Status != healthcheck.StatusHealthy {
		t.Fatalf("expected healthy storage checker, got %+v", check)
	}
	if _, err := deps.repo.Count(context.Background()); err != nil {
		t.Fatalf("count on migrated schema failed: %v", err)
	}
}

func TestInitRuntimeDependencies_RedisSuccess(t *testing.T) {
	addr := strings.TrimSpace(os.Getenv("MENU_REDIS_TEST_ADDR"))
	if addr == "" {
		t.Skip("redis addr is not available")
	}

	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverRedis
	cfg.RedisAddr = addr
	cfg.RedisPrefix = "menu-app-test-" + time.Now().UTC().Format("150405.000000")

	deps, err := initRuntimeDependencies(context.Background(), cfg, log.WithField("test", "redis-init"))
	if err != nil {
		t.Skipf("redis is not available for app integration test: %v", err)
	}
	defer deps.close(log.WithField("test", "redis-close"))

	item := domain.MenuItem{ID: "app-1", Name: "Soup", Price: 10, Course: domain.CourseStarter, CreatedAt: time.Now().UTC()}
	if err := deps.repo.Add(context.Background(), item); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := deps.repo.Remove(context.Background(), item.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
}
