package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App      AppConfig
	Gemini   GeminiConfig
	Receipt  ReceiptConfig
	Terminal TerminalConfig
	Redis    RedisConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Receipt.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SMARTPOS_APP_ENV" required:"true"`
	Port         string `envconfig:"SMARTPOS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SMARTPOS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SMARTPOS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type GeminiConfig struct {
	APIKey   string        `envconfig:"SMARTPOS_GEMINI_API_KEY" required:"true"`
	Model    string        `envconfig:"SMARTPOS_GEMINI_MODEL" default:"gemini-2.5-flash"`
	Timeout  time.Duration `envconfig:"SMARTPOS_GEMINI_TIMEOUT" default:"20s"`
	Retailer string        `envconfig:"SMARTPOS_GEMINI_RETAILER" default:"Carrefour UAE"`
}

type ReceiptConfig struct {
	TaxRate  decimal.Decimal `envconfig:"SMARTPOS_RECEIPT_TAX_RATE" default:"0.05"`
	Currency string          `envconfig:"SMARTPOS_RECEIPT_CURRENCY" default:"AED"`
}

func (r ReceiptConfig) validate() error {
	if r.TaxRate.IsNegative() {
		return fmt.Errorf("%s must be non-negative", EnvReceiptTaxRate)
	}
	if r.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be below 1", EnvReceiptTaxRate)
	}
	if strings.TrimSpace(r.Currency) == "" {
		return fmt.Errorf("%s is required", EnvReceiptCurrency)
	}
	return nil
}

type TerminalConfig struct {
	SessionTTL      time.Duration `envconfig:"SMARTPOS_TERMINAL_SESSION_TTL" default:"2h"`
	JanitorInterval time.Duration `envconfig:"SMARTPOS_TERMINAL_JANITOR_INTERVAL" default:"5m"`
	MaxImageBytes   int           `envconfig:"SMARTPOS_TERMINAL_MAX_IMAGE_BYTES" default:"4194304"`
}

type RedisConfig struct {
	URL            string        `envconfig:"SMARTPOS_REDIS_URL"`
	Address        string        `envconfig:"SMARTPOS_REDIS_ADDR"`
	Password       string        `envconfig:"SMARTPOS_REDIS_PASSWORD"`
	DB             int           `envconfig:"SMARTPOS_REDIS_DB" default:"0"`
	PoolSize       int           `envconfig:"SMARTPOS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns   int           `envconfig:"SMARTPOS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout    time.Duration `envconfig:"SMARTPOS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout    time.Duration `envconfig:"SMARTPOS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout   time.Duration `envconfig:"SMARTPOS_REDIS_WRITE_TIMEOUT" default:"5s"`
	IdempotencyTTL time.Duration `envconfig:"SMARTPOS_REDIS_IDEMPOTENCY_TTL" default:"24h"`
}

// Enabled reports whether a Redis endpoint was configured at all. The replay
// guard is skipped when it is absent.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SMARTPOS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
