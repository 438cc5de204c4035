package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

const (
	envPrefix     = "MARKETPLACE_"
	configFileEnv = "MARKETPLACE_CONFIG_FILE"
)

type Config struct {
	Primary   Primary         `koanf:"primary"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Gateway   GatewayConfig   `koanf:"gateway"`
	Capture   CaptureConfig   `koanf:"capture"`
	Notify    NotifyConfig    `koanf:"notify"`
	Redis     RedisConfig     `koanf:"redis"`
	Retry     RetryConfig     `koanf:"retry"`
	Logger    LoggerConfig    `koanf:"logger"`
	Worker    WorkerConfig    `koanf:"worker"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required"`
	TrustProxy     bool          `koanf:"trust_proxy"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

// GatewayConfig holds the payment gateway credentials. Secrets are optional
// at load time; operations that need them fail with a configuration error.
type GatewayConfig struct {
	KeyID           string        `koanf:"key_id"`
	KeySecret       string        `koanf:"key_secret"`
	WebhookSecret   string        `koanf:"webhook_secret"`
	BaseURL         string        `koanf:"base_url" validate:"required,url"`
	Timeout         time.Duration `koanf:"timeout" validate:"required"`
	DefaultCurrency string        `koanf:"default_currency" validate:"required,len=3"`
}

// SigningSecret is the secret webhooks are verified with.
func (g GatewayConfig) SigningSecret() string {
	if g.WebhookSecret != "" {
		return g.WebhookSecret
	}
	return g.KeySecret
}

type CaptureConfig struct {
	PriceTolerance string `koanf:"price_tolerance" validate:"required,numeric"`
}

type NotifyConfig struct {
	OperatorWebhookURL string        `koanf:"operator_webhook_url" validate:"omitempty,url"`
	EmailEndpointURL   string        `koanf:"email_endpoint_url" validate:"omitempty,url"`
	EmailAuthToken     string        `koanf:"email_auth_token"`
	Timeout            time.Duration `koanf:"timeout" validate:"required"`
	Workers            int           `koanf:"workers" validate:"required,min=1"`
	QueueSize          int           `koanf:"queue_size" validate:"required,min=1"`
}

type RedisConfig struct {
	URL string `koanf:"url"`
}

type RetryConfig struct {
	BaseDelay  int32 `koanf:"base_delay"`
	MaxRetries int32 `koanf:"max_retries"`
}

type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"omitempty,oneof=json text"`
}

type WorkerConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Interval   time.Duration `koanf:"interval" validate:"required"`
	BatchSize  int           `koanf:"batch_size" validate:"required"`
	StaleAfter time.Duration `koanf:"stale_after" validate:"required"`
}

type RateLimitConfig struct {
	RPS   float64 `koanf:"rps" validate:"required,gt=0"`
	Burst int     `koanf:"burst" validate:"required,min=1"`
}

func defaults() map[string]any {
	return map[string]any{
		"primary.env":                 "development",
		"server.port":                 "8080",
		"server.read_timeout":         "10s",
		"server.write_timeout":        "15s",
		"server.idle_timeout":         "60s",
		"server.request_timeout":      "30s",
		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     2,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "15m",
		"gateway.base_url":            "https://api.razorpay.com",
		"gateway.timeout":             "10s",
		"gateway.default_currency":    "INR",
		"capture.price_tolerance":     "0.01",
		"notify.timeout":              "10s",
		"notify.workers":              2,
		"notify.queue_size":           256,
		"retry.base_delay":            1,
		"retry.max_retries":           3,
		"logger.level":                "info",
		"logger.format":               "json",
		"worker.enabled":              true,
		"worker.interval":             "1m",
		"worker.batch_size":           50,
		"worker.stale_after":          "10m",
		"ratelimit.rps":               10.0,
		"ratelimit.burst":             20,
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load config defaults", "error", err)
		return nil, err
	}

	if path := os.Getenv(configFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			logger.Error("failed to load config file", "path", path, "error", err)
			return nil, err
		}
	}

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

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
