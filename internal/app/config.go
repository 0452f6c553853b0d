package app

import (
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/menuboard/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/menuboard/internal/storage/redis"
)

// StorageDriver выбирает реализацию хранилища меню.
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverPostgres StorageDriver = "postgres"
	StorageDriverRedis    StorageDriver = "redis"
)

// Config описывает настройки запуска сервиса.
type Config struct {
	GRPCAddr    string
	HTTPAddr    string
	MetricsAddr string

	StorageDriver       StorageDriver
	PostgresDSN         string
	PostgresAutoMigrate bool
	RedisAddr           string
	RedisPrefix         string

	// KafkaBrokers — список брокеров через запятую. Пустое значение отключает публикацию событий.
	KafkaBrokers string
	KafkaTopic   string

	OTLPEndpoint     string
	TraceSampleRatio float64

	ShutdownTimeout time.Duration
}

// DefaultConfig возвращает настройки для локального запуска без внешних зависимостей.
func DefaultConfig() Config {
	return Config{
		GRPCAddr:            ":50051",
		HTTPAddr:            ":8080",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		RedisAddr:           "localhost:6379",
		RedisPrefix:         redis.DefaultPrefix,
		KafkaTopic:          kafka.TopicMenuEvents,
		TraceSampleRatio:    1,
		ShutdownTimeout:     5 * time.Second,
	}
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory, StorageDriverRedis:
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres storage requires dsn")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.StorageDriver)
	}
	if c.TraceSampleRatio < 0 || c.TraceSampleRatio > 1 {
		return fmt.Errorf("trace sample ratio must be within [0,1], got %v", c.TraceSampleRatio)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be > 0")
	}
	return nil
}
