package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// SessionTTL bounds both the gateway session token and the TTL of
	// persisted session state.
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`
	// SealKey encrypts upstream credentials at rest: 32 bytes, hex-encoded.
	SealKey string `env:"SESSION_SEAL_KEY"`
	// StorageDriver selects the durable session store: redis, mongo, or memory.
	StorageDriver string `env:"STORAGE_DRIVER, default=redis"`
	// AuditWorkers sizes the audit dispatcher worker pool.
	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	Upstream UpstreamConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=http://localhost:3000"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=10s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=booking_gateway"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.StorageDriver {
	case "redis", "mongo", "memory":
	default:
		return nil, fmt.Errorf("config: unknown storage driver %q", cfg.StorageDriver)
	}

	return &cfg, nil
}
