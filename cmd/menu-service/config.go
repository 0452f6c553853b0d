package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/menuboard/internal/app"
)

const (
	envGRPCAddr            = "MENU_GRPC_ADDR"
	envHTTPAddr            = "MENU_HTTP_ADDR"
	envMetricsAddr         = "MENU_METRICS_ADDR"
	envStorageDriver       = "MENU_STORAGE_DRIVER"
	envPostgresDSN         = "MENU_POSTGRES_DSN"
	envPostgresAutoMigrate = "MENU_POSTGRES_AUTO_MIGRATE"
	envRedisAddr           = "MENU_REDIS_ADDR"
	envRedisPrefix         = "MENU_REDIS_PREFIX"
	envKafkaBrokers        = "MENU_KAFKA_BROKERS"
	envKafkaTopic          = "MENU_KAFKA_TOPIC"
	envOTLPEndpoint        = "MENU_OTLP_ENDPOINT"
	envTraceSampleRatio    = "MENU_TRACE_SAMPLE_RATIO"
	envShutdownTimeout     = "MENU_SHUTDOWN_TIMEOUT"
)

type envLookup func(key string) (string, bool)

// readConfigFromEnv накладывает переменные окружения на DefaultConfig.
// Некорректные значения не роняют запуск: остаётся значение по умолчанию, а в warnings попадает причина.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	warn := func(key, raw string, err error) {
		warnings = append(warnings, fmt.Sprintf("invalid %s=%q: %v, using default", key, raw, err))
	}

	stringVar := func(key string, target *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*target = strings.TrimSpace(v)
		}
	}

	stringVar(envGRPCAddr, &cfg.GRPCAddr)
	stringVar(envHTTPAddr, &cfg.HTTPAddr)
	stringVar(envMetricsAddr, &cfg.MetricsAddr)
	stringVar(envPostgresDSN, &cfg.PostgresDSN)
	stringVar(envRedisAddr, &cfg.RedisAddr)
	stringVar(envRedisPrefix, &cfg.RedisPrefix)
	stringVar(envKafkaBrokers, &cfg.KafkaBrokers)
	stringVar(envKafkaTopic, &cfg.KafkaTopic)
	stringVar(envOTLPEndpoint, &cfg.OTLPEndpoint)

	if v, ok := lookup(envStorageDriver); ok && strings.TrimSpace(v) != "" {
		cfg.StorageDriver = app.StorageDriver(strings.ToLower(strings.TrimSpace(v)))
	}

	if v, ok := lookup(envPostgresAutoMigrate); ok && strings.TrimSpace(v) != "" {
		parsed, err := parseBool(v)
		if err != nil {
			warn(envPostgresAutoMigrate, v, err)
		} else {
			cfg.PostgresAutoMigrate = parsed
		}
	}

	if v, ok := lookup(envTraceSampleRatio); ok && strings.TrimSpace(v) != "" {
		parsed, err := parseFloat(v, func(f float64) bool { return f >= 0 && f <= 1 }, "must be within [0,1]")
		if err != nil {
			warn(envTraceSampleRatio, v, err)
		} else {
			cfg.TraceSampleRatio = parsed
		}
	}

	if v, ok := lookup(envShutdownTimeout); ok && strings.TrimSpace(v) != "" {
		parsed, err := parseDuration(v, func(d time.Duration) bool { return d > 0 }, "must be > 0")
		if err != nil {
			warn(envShutdownTimeout, v, err)
		} else {
			cfg.ShutdownTimeout = parsed
		}
	}

	return cfg, warnings
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean")
	}
}

func parseFloat(raw string, valid func(float64) bool, msg string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if !valid(value) {
		return 0, fmt.Errorf("%s", msg)
	}
	return value, nil
}

func parseDuration(raw string, valid func(time.Duration) bool, msg string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if !valid(value) {
		return 0, fmt.Errorf("%s", msg)
	}
	return value, nil
}
