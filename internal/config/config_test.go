package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pet-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTTL())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Cache.StatsTTL())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("AUTH_JWT_EXPIRATION_MS", "1500")
	t.Setenv("AUTH_BCRYPT_COST", "99")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, ,kafka-2:9092")
	t.Setenv("POSTGRES_DSN", "postgres://pets@localhost/pets")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 1500*time.Millisecond, cfg.Auth.TokenTTL())
	assert.Equal(t, 12, cfg.Auth.BcryptCost, "out of range cost falls back to default")
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, "postgres://pets@localhost/pets", cfg.Postgres.DSN)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_RejectsShortSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "short")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_SecretRequiredOutsideDevelopment(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{name: "unset"},
		{name: "blank", secret: "   "},
		{name: "development default", secret: devJWTSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", "production")
			t.Setenv("AUTH_JWT_SECRET", tt.secret)

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
		})
	}
}

func TestLoad_DevelopmentSecretFallback(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, devJWTSecret, cfg.Auth.JWTSecret)
}

func TestLoad_AdminRequiresPassword(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_ADMIN_USERNAME", "root")
	t.Setenv("AUTH_ADMIN_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, time.Duration(0), AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
	assert.Equal(t, 5*time.Second, AppConfig{RequestTimeoutSeconds: 5}.RequestTimeout())
}
