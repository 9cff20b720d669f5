package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "CHECKOUT_"

type Config struct {
	Primary     Primary           `koanf:"primary"`
	Server      ServerConfig      `koanf:"server"`
	Backend     BackendConfig     `koanf:"backend"`
	Fingerprint FingerprintConfig `koanf:"fingerprint"`
	Merchant    MerchantConfig    `koanf:"merchant"`
	Storage     StorageConfig     `koanf:"storage"`
	Database    DatabaseConfig    `koanf:"database"`
	Redis       RedisConfig       `koanf:"redis"`
	Analytics   AnalyticsConfig   `koanf:"analytics"`
	Sessions    SessionsConfig    `koanf:"sessions"`
	Logger      LoggerConfig      `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// BackendConfig points at the payments API and the wallet login API.
type BackendConfig struct {
	BaseURL        string        `koanf:"base_url" validate:"required,url"`
	WalletBaseURL  string        `koanf:"wallet_base_url" validate:"omitempty,url"`
	ConnTimeout    time.Duration `koanf:"conn_timeout" validate:"required"`
	UserAgent      string        `koanf:"user_agent"`
	ReturnURL      string        `koanf:"return_url" validate:"omitempty,url"`
	ClientAppKey   string        `koanf:"client_application_key" validate:"required"`
	GatewayID      string        `koanf:"gateway_id"`
	PassportToken  string        `koanf:"passport_token"`
	WalletAuthType string        `koanf:"wallet_auth_type"`
}

// WalletURL falls back to BaseURL when no dedicated wallet host is set.
func (c BackendConfig) WalletURL() string {
	if c.WalletBaseURL != "" {
		return c.WalletBaseURL
	}
	return c.BaseURL
}

type FingerprintConfig struct {
	Enabled      bool          `koanf:"enabled"`
	OrgID        string        `koanf:"org_id"`
	ServerURL    string        `koanf:"server_url" validate:"omitempty,url"`
	Timeout      time.Duration `koanf:"timeout"`
	MaxPolls     int           `koanf:"max_polls"`
	PollInterval time.Duration `koanf:"poll_interval"`
}

// MerchantConfig is the default module input used by the demo surface.
type MerchantConfig struct {
	Amount             string   `koanf:"amount" validate:"omitempty,numeric"`
	Currency           string   `koanf:"currency" validate:"omitempty,len=3"`
	AllowedTypes       []string `koanf:"allowed_types"`
	SavePaymentMethod  string   `koanf:"save_payment_method" validate:"omitempty,oneof=on off user_selects"`
	CustomerID         string   `koanf:"customer_id"`
	ApplePayMerchantID string   `koanf:"apple_pay_merchant_id"`
	ApplePayAvailable  bool     `koanf:"apple_pay_available"`
}

type StorageConfig struct {
	Driver string `koanf:"driver" validate:"omitempty,oneof=memory postgres redis"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

type RedisConfig struct {
	Addr      string        `koanf:"addr"`
	Password  string        `koanf:"password"`
	DB        int           `koanf:"db"`
	KeyPrefix string        `koanf:"key_prefix"`
	Timeout   time.Duration `koanf:"timeout"`
}

type AnalyticsConfig struct {
	BufferSize int  `koanf:"buffer_size"`
	Persist    bool `koanf:"persist"`
	Metrics    bool `koanf:"metrics"`
}

// SessionsConfig bounds the lifetime of tokenization flows.
type SessionsConfig struct {
	TTL          time.Duration `koanf:"ttl"`
	ReapInterval time.Duration `koanf:"reap_interval"`
}

type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"omitempty,oneof=json text"`
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	// Comma separated lists arrive as a single env string.
	if raw := k.String("merchant.allowed_types"); raw != "" {
		mainConfig.Merchant.AllowedTypes = splitList(raw)
	}

	mainConfig.applyDefaults()

	if err := mainConfig.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks struct tags and the sections the selected storage driver needs.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.StructExcept(c, "Database"); err != nil {
		return err
	}

	if c.Fingerprint.Enabled && c.Fingerprint.OrgID == "" {
		return errors.New("fingerprint.org_id is required when fingerprint is enabled")
	}

	switch c.Storage.Driver {
	case "postgres":
		return validate.Struct(c.Database)
	case "redis":
		if err := validate.Var(c.Redis.Addr, "required"); err != nil {
			return fmt.Errorf("redis.addr: %w", err)
		}
	}

	if c.Analytics.Persist {
		return validate.Struct(c.Database)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if len(c.Merchant.AllowedTypes) == 0 {
		c.Merchant.AllowedTypes = []string{"bank_card", "yoo_money", "linked_bank_card", "sberbank", "apple_pay"}
	}
	if c.Merchant.Amount == "" {
		c.Merchant.Amount = "100.00"
	}
	if c.Merchant.Currency == "" {
		c.Merchant.Currency = "RUB"
	}
	if c.Merchant.SavePaymentMethod == "" {
		c.Merchant.SavePaymentMethod = "user_selects"
	}
	if c.Fingerprint.Timeout == 0 {
		c.Fingerprint.Timeout = 15 * time.Second
	}
	if c.Fingerprint.MaxPolls == 0 {
		c.Fingerprint.MaxPolls = 5
	}
	if c.Fingerprint.PollInterval == 0 {
		c.Fingerprint.PollInterval = 500 * time.Millisecond
	}
	if c.Analytics.BufferSize == 0 {
		c.Analytics.BufferSize = 256
	}
	if c.Sessions.TTL == 0 {
		c.Sessions.TTL = 15 * time.Minute
	}
	if c.Sessions.ReapInterval == 0 {
		c.Sessions.ReapInterval = time.Minute
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 30 * time.Second
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "checkout:kv:"
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
