package config_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/DanielPopoola/checkout-tokenization/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CHECKOUT_PRIMARY__ENV", "test")
	t.Setenv("CHECKOUT_SERVER__PORT", "8080")
	t.Setenv("CHECKOUT_SERVER__READ_TIMEOUT", "5s")
	t.Setenv("CHECKOUT_SERVER__WRITE_TIMEOUT", "10s")
	t.Setenv("CHECKOUT_SERVER__IDLE_TIMEOUT", "60s")
	t.Setenv("CHECKOUT_BACKEND__BASE_URL", "https://payment.example.com/api/v3")
	t.Setenv("CHECKOUT_BACKEND__CONN_TIMEOUT", "30s")
	t.Setenv("CHECKOUT_BACKEND__CLIENT_APPLICATION_KEY", "live_key")
}

func TestLoadConfig(t *testing.T) {
	t.Run("loads nested keys and applies defaults", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CHECKOUT_MERCHANT__ALLOWED_TYPES", "bank_card, yoo_money")
		t.Setenv("CHECKOUT_LOGGER__FORMAT", "json")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Backend.ConnTimeout)
		assert.Equal(t, []string{"bank_card", "yoo_money"}, cfg.Merchant.AllowedTypes)
		assert.Equal(t, "memory", cfg.Storage.Driver)
		assert.Equal(t, "user_selects", cfg.Merchant.SavePaymentMethod)
		assert.Equal(t, 15*time.Minute, cfg.Sessions.TTL)
		assert.Equal(t, cfg.Backend.BaseURL, cfg.Backend.WalletURL())
	})

	t.Run("fails without required backend key", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CHECKOUT_BACKEND__CLIENT_APPLICATION_KEY", "")

		_, err := config.LoadConfig()

		assert.Error(t, err)
	})

	t.Run("postgres driver requires database section", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CHECKOUT_STORAGE__DRIVER", "postgres")

		_, err := config.LoadConfig()

		assert.Error(t, err)
	})

	t.Run("redis driver requires address", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CHECKOUT_STORAGE__DRIVER", "redis")

		_, err := config.LoadConfig()
		assert.Error(t, err)

		t.Setenv("CHECKOUT_REDIS__ADDR", "localhost:6379")
		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", cfg.Redis.Options().Addr)
	})

	t.Run("enabled fingerprint requires org id", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CHECKOUT_FINGERPRINT__ENABLED", "true")

		_, err := config.LoadConfig()

		assert.Error(t, err)
	})
}

func TestLoggerConfig_NewLogger(t *testing.T) {
	logger := config.LoggerConfig{Level: "debug", Format: "json"}.NewLogger()
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))

	logger = config.LoggerConfig{Level: "warn"}.NewLogger()
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelError))
}

func TestDatabaseConfig_PgxConfig(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:            "db.internal",
		Port:            5433,
		User:            "checkout",
		Password:        "p@ss:word",
		Name:            "checkout",
		SSLMode:         "disable",
		MaxOpenConns:    8,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Minute,
	}

	assert.Contains(t, cfg.DSN(), "p%40ss%3Aword@db.internal:5433/checkout")

	pgxCfg, err := cfg.PgxConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p@ss:word", pgxCfg.ConnConfig.Password)
	assert.Equal(t, uint16(5433), pgxCfg.ConnConfig.Port)
	assert.Equal(t, int32(8), pgxCfg.MaxConns)
	assert.Equal(t, int32(2), pgxCfg.MinConns)
	assert.Equal(t, time.Hour, pgxCfg.MaxConnLifetime)
}
