package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if !cfg.Receipt.TaxRate.Equal(decimal.RequireFromString("0.05")) {
		t.Fatalf("expected default tax rate 0.05, got %s", cfg.Receipt.TaxRate)
	}

	if cfg.Receipt.Currency != "AED" {
		t.Fatalf("expected default currency AED, got %q", cfg.Receipt.Currency)
	}

	if cfg.Gemini.Timeout != 20*time.Second {
		t.Fatalf("expected default gemini timeout 20s, got %v", cfg.Gemini.Timeout)
	}

	if cfg.Redis.Enabled() {
		t.Fatal("redis should be disabled when no endpoint is configured")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsBadTaxRate(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvReceiptTaxRate, "-0.05")
	if _, err := Load(); err == nil {
		t.Fatal("expected negative tax rate to be rejected")
	}

	t.Setenv(EnvReceiptTaxRate, "1.5")
	if _, err := Load(); err == nil {
		t.Fatal("expected tax rate >= 1 to be rejected")
	}
}

func TestRedisEnabled(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !cfg.Redis.Enabled() {
		t.Fatal("expected redis to be enabled with a URL")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvAppPort, "8081")
	t.Setenv(EnvGeminiAPIKey, "test-key")
	t.Setenv(EnvReceiptTaxRate, "0.05")
	t.Setenv(EnvReceiptCurrency, "AED")
	os.Unsetenv(EnvRedisURL)
}
