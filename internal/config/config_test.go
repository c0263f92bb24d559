package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_ENV", "PROD_ORIGINS", "HTTP_ADDR", "STORE_BACKEND", "DB_DSN", "JWT_SECRET",
	"JWT_ACCESS_TOKEN_TTL", "BCRYPT_COST", "REDIS_ADDR", "AMQP_URL", "AMQP_EXCHANGE",
	"UPLOAD_DIR", "BOOKING_WINDOW_DAYS", "SWEEP_INTERVAL", "TIMEZONE",
	"ADMIN_EMAIL", "ADMIN_PASSWORD",
}

// clearEnv blanks every key so the host environment cannot leak into a case.
// t.Setenv restores the previous values when the test ends.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "court.events", cfg.AMQPExchange)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.Equal(t, 7, cfg.BookingWindowDays)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PROD_ORIGINS", "https://courts.example.com")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DB_DSN", "postgres://localhost/courts")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "1h")
	t.Setenv("BOOKING_WINDOW_DAYS", "0")
	t.Setenv("SWEEP_INTERVAL", "30s")
	t.Setenv("TIMEZONE", "Asia/Taipei")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "changeme")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, StorePostgres, cfg.StoreBackend)
	assert.Equal(t, "postgres://localhost/courts", cfg.DBDSN)
	assert.Equal(t, time.Hour, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 0, cfg.BookingWindowDays)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.Equal(t, "Asia/Taipei", cfg.Location.String())
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{}},
		{name: "postgres without dsn", env: map[string]string{"JWT_SECRET": "s", "STORE_BACKEND": "postgres"}},
		{name: "unknown backend", env: map[string]string{"JWT_SECRET": "s", "STORE_BACKEND": "sqlite"}},
		{name: "prod without origins", env: map[string]string{"JWT_SECRET": "s", "APP_ENV": "prod"}},
		{name: "bad ttl", env: map[string]string{"JWT_SECRET": "s", "JWT_ACCESS_TOKEN_TTL": "soon"}},
		{name: "bad bcrypt cost", env: map[string]string{"JWT_SECRET": "s", "BCRYPT_COST": "high"}},
		{name: "negative window", env: map[string]string{"JWT_SECRET": "s", "BOOKING_WINDOW_DAYS": "-1"}},
		{name: "zero sweep interval", env: map[string]string{"JWT_SECRET": "s", "SWEEP_INTERVAL": "0s"}},
		{name: "unknown timezone", env: map[string]string{"JWT_SECRET": "s", "TIMEZONE": "Mars/Olympus"}},
		{name: "half admin", env: map[string]string{"JWT_SECRET": "s", "ADMIN_EMAIL": "admin@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
