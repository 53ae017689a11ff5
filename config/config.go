package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string `env:"SERVER_PORT" envDefault:"8081"`
	DatabaseURL   string `env:"DATABASE_URL,required,notEmpty"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8081"`

	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET,required,notEmpty"`
	AuthJWTSecret       string `env:"AUTH_JWT_SECRET,required,notEmpty"`

	// Optional infrastructure. Empty values fall back to in-process behaviour.
	RabbitURL    string        `env:"RABBITMQ_URL"`
	RedisURL     string        `env:"REDIS_URL"`
	ViewCacheTTL time.Duration `env:"VIEW_CACHE_TTL" envDefault:"5m"`

	UploadMaxBytes int64  `env:"UPLOAD_MAX_BYTES" envDefault:"4194304"`
	OTelEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads an optional .env file and then parses the environment.
// Variables already present in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return c.DatabaseURL
}
