package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig `envPrefix:"POSTGRES_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Logger   LoggerConfig
	Auth     AuthConfig  `envPrefix:"AUTH_"`
	Kafka    KafkaConfig `envPrefix:"KAFKA_"`
	Cache    CacheConfig `envPrefix:"CACHE_"`
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `env:"APP_NAME" envDefault:"pet-service"`
	Env                   string `env:"APP_ENV" envDefault:"development"`
	Host                  string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port                  string `env:"APP_PORT" envDefault:"8080"`
	Version               string `env:"APP_VERSION" envDefault:"dev"`
	RequestTimeoutSeconds int    `env:"HTTP_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string `env:"DSN"`
	MaxConns       int32  `env:"MAX_CONNS" envDefault:"10"`
	MinConns       int32  `env:"MIN_CONNS" envDefault:"2"`
	RunMigrations  bool   `env:"RUN_MIGRATIONS" envDefault:"true"`
	ConnMaxIdleSec int32  `env:"CONN_MAX_IDLE_SECONDS" envDefault:"30"`
	ConnMaxLifeSec int32  `env:"CONN_MAX_LIFE_SECONDS" envDefault:"300"`
	ConnectRetries int    `env:"CONNECT_RETRIES" envDefault:"5"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"127.0.0.1:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// AuthConfig defines authentication parameters. Token lifetimes are in milliseconds.
type AuthConfig struct {
	JWTSecret           string `env:"JWT_SECRET"`
	JWTExpirationMS     int64  `env:"JWT_EXPIRATION_MS" envDefault:"86400000"`
	JWTRefreshExpiresMS int64  `env:"JWT_REFRESH_EXPIRATION_MS" envDefault:"604800000"`
	BcryptCost          int    `env:"BCRYPT_COST" envDefault:"12"`
	AdminUsername       string `env:"ADMIN_USERNAME"`
	AdminPassword       string `env:"ADMIN_PASSWORD"`
	AdminEmail          string `env:"ADMIN_EMAIL" envDefault:"admin@example.com"`
}

// KafkaConfig configures the optional domain event relay.
type KafkaConfig struct {
	Brokers []string `env:"BROKERS" envSeparator:","`
	Topic   string   `env:"TOPIC" envDefault:"pet-service.events"`
}

// CacheConfig configures read-through caches.
type CacheConfig struct {
	StatsTTLSeconds int `env:"STATS_TTL_SECONDS" envDefault:"30"`
}

// devJWTSecret signs tokens only in development environments.
const devJWTSecret = "dev-secret-change-me-dev-secret-change-me"

const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Sanitize clamps values that would otherwise misconfigure the service.
func (c *Config) Sanitize() {
	if c.Auth.JWTExpirationMS <= 0 {
		c.Auth.JWTExpirationMS = 86400000
	}
	if c.Auth.BcryptCost < minBcryptCost || c.Auth.BcryptCost > maxBcryptCost {
		c.Auth.BcryptCost = 12
	}
	if c.Cache.StatsTTLSeconds < 0 {
		c.Cache.StatsTTLSeconds = 0
	}
	c.Kafka.Brokers = compact(c.Kafka.Brokers)
	c.Auth.AdminUsername = strings.TrimSpace(c.Auth.AdminUsername)
	if strings.TrimSpace(c.Auth.JWTSecret) == "" && c.App.IsDevelopment() {
		c.Auth.JWTSecret = devJWTSecret
	}
}

// Validate rejects configurations that are unsafe outside development.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("AUTH_JWT_SECRET must not be empty")
	}
	if !c.App.IsDevelopment() {
		if c.Auth.JWTSecret == devJWTSecret {
			return errors.New("AUTH_JWT_SECRET must be set outside development")
		}
		if len(c.Auth.JWTSecret) < 32 {
			return errors.New("AUTH_JWT_SECRET must be at least 32 bytes outside development")
		}
	}
	if c.Auth.AdminUsername != "" && c.Auth.AdminPassword == "" {
		return errors.New("AUTH_ADMIN_PASSWORD is required when AUTH_ADMIN_USERNAME is set")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsDevelopment reports whether the service runs in a development environment.
func (a AppConfig) IsDevelopment() bool {
	switch strings.ToLower(a.Env) {
	case "development", "dev", "local", "test":
		return true
	}
	return false
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the access token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.JWTExpirationMS) * time.Millisecond
}

// RefreshTTL returns the refresh lifetime. Informational only; no refresh flow uses it.
func (a AuthConfig) RefreshTTL() time.Duration {
	return time.Duration(a.JWTRefreshExpiresMS) * time.Millisecond
}

// StatsTTL returns how long a statistics snapshot may be served from cache.
func (c CacheConfig) StatsTTL() time.Duration {
	return time.Duration(c.StatsTTLSeconds) * time.Second
}

// Enabled reports whether the event relay has somewhere to publish.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

func compact(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
