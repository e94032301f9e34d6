package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "PIX_GATEWAY_PROVIDER", "PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK", "PIX_API_BASE_URL", "PIX_API_TOKEN", "POLLING_INTERVAL", "POLLING_MAX_DURATION", "POLLING_FINISHED_RETENTION", "IDEMPOTENCY_STORE", ConfigFileEnv} {
		t.Setenv(key, "")
	}

	cfg := NewConfig()
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Gateway.Provider != ProviderPushinPay || cfg.Gateway.BaseURL != DefaultPixAPIBaseURL {
		t.Fatalf("unexpected gateway defaults: %+v", cfg.Gateway)
	}
	if cfg.Gateway.Mock {
		t.Fatalf("mock mode should be off by default")
	}
	if cfg.Gateway.Token != "" {
		t.Fatalf("expected empty token")
	}
	if cfg.Polling.Interval != 3*time.Second {
		t.Fatalf("expected 3s interval, got %s", cfg.Polling.Interval)
	}
	if cfg.Polling.MaxDuration != 15*time.Minute || cfg.Polling.FinishedRetention != time.Minute {
		t.Fatalf("unexpected polling defaults: %+v", cfg.Polling)
	}
	if cfg.Idempotency.Store != StoreMemory {
		t.Fatalf("expected memory store, got %s", cfg.Idempotency.Store)
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("PIX_GATEWAY_PROVIDER", "MercadoPago")
	t.Setenv("MERCADOPAGO_MOCK", "yes")
	t.Setenv("PIX_API_TOKEN", "  tok  ")
	t.Setenv("POLLING_INTERVAL", "5")
	t.Setenv("POLLING_MAX_DURATION", "0s")
	t.Setenv("POLLING_MAX_CONSECUTIVE_FAILURES", "nope")
	t.Setenv("IDEMPOTENCY_TTL", "1h")

	cfg := NewConfig()
	if cfg.Gateway.Provider != ProviderMercadoPago {
		t.Fatalf("expected mercadopago, got %s", cfg.Gateway.Provider)
	}
	if !cfg.Gateway.Mock {
		t.Fatalf("expected mock mode")
	}
	if cfg.Gateway.Token != "tok" {
		t.Fatalf("expected trimmed token, got %q", cfg.Gateway.Token)
	}
	if cfg.Polling.Interval != 5*time.Second {
		t.Fatalf("expected 5s, got %s", cfg.Polling.Interval)
	}
	if cfg.Polling.MaxDuration != 0 {
		t.Fatalf("expected unbounded polling, got %s", cfg.Polling.MaxDuration)
	}
	if cfg.Polling.MaxConsecutiveFailures != 5 {
		t.Fatalf("expected fallback to default, got %d", cfg.Polling.MaxConsecutiveFailures)
	}
	if cfg.Idempotency.TTL != time.Hour {
		t.Fatalf("expected 1h, got %s", cfg.Idempotency.TTL)
	}
}

func TestNewConfig_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pix.yaml")
	file := []byte(`port: "9090"
pix_gateway_provider: mercadopago
pix_api_token: file-token
polling_interval: 7s
polling_max_consecutive_failures: 9
idempotency_store: redis
cache_host: redis.internal
`)
	if err := os.WriteFile(path, file, 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range []string{"PORT", "PIX_GATEWAY_PROVIDER", "PIX_API_TOKEN", "POLLING_MAX_CONSECUTIVE_FAILURES", "IDEMPOTENCY_STORE", "CACHE_HOST"} {
		t.Setenv(key, "")
	}
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("POLLING_INTERVAL", "2s")

	cfg := NewConfig()
	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port from file, got %s", cfg.Server.Port)
	}
	if cfg.Gateway.Provider != ProviderMercadoPago || cfg.Gateway.Token != "file-token" {
		t.Fatalf("expected gateway settings from file, got %+v", cfg.Gateway)
	}
	if cfg.Polling.Interval != 2*time.Second {
		t.Fatalf("expected environment to win over file, got %s", cfg.Polling.Interval)
	}
	if cfg.Polling.MaxConsecutiveFailures != 9 {
		t.Fatalf("expected 9 from file, got %d", cfg.Polling.MaxConsecutiveFailures)
	}
	if cfg.Idempotency.Store != StoreRedis || cfg.Cache.Host != "redis.internal" {
		t.Fatalf("expected redis settings from file, got %+v %+v", cfg.Idempotency, cfg.Cache)
	}
}

func TestNewConfig_MissingConfigFileFallsBackToEnv(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("PORT", "7070")

	cfg := NewConfig()
	if cfg.Server.Port != "7070" {
		t.Fatalf("expected port from env, got %s", cfg.Server.Port)
	}
}
