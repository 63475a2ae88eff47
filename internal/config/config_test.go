package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

var configKeys = []string{
	"OPENMARKETS_CONFIG", "APP_ENV", "LOG_LEVEL",
	"MCP_TRANSPORT", "MCP_HTTP_ENABLED", "MCP_HTTP_BIND", "MCP_HTTP_PORT", "MCP_AUTH_TOKEN",
	"MCP_REQUEST_TIMEOUT_SECS", "MCP_RATE_LIMIT_PER_MIN", "MCP_CORS_ORIGINS",
	"HTTP_PORT", "REDIS_URL", "QUOTE_CACHE_TTL_SECS", "QUOTE_WARM_SYMBOLS", "QUOTE_WARM_INTERVAL_SECS",
	"YAHOO_TIMEOUT_SECS", "YAHOO_MAX_RETRIES", "YAHOO_REQUESTS_PER_MIN", "YAHOO_PROXY_URL",
	"OTEL_EXPORTER_OTLP_ENDPOINT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.AppEnv != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected env defaults: %+v", cfg)
	}
	if cfg.RedisURL != "" {
		t.Fatalf("expected empty redis url, got %s", cfg.RedisURL)
	}
	if cfg.MCPTransport != "stdio" {
		t.Fatalf("expected default MCP transport stdio, got %s", cfg.MCPTransport)
	}
	if cfg.MCPHTTPBind != "127.0.0.1" || cfg.MCPHTTPPort != 8090 {
		t.Fatalf("unexpected MCP http defaults: %s:%d", cfg.MCPHTTPBind, cfg.MCPHTTPPort)
	}
	if cfg.MCPRequestTimeout() != 30*time.Second || cfg.MCPRateLimitPerMin != 60 {
		t.Fatalf("unexpected MCP defaults: timeout=%d rate=%d", cfg.MCPRequestTimeoutSecs, cfg.MCPRateLimitPerMin)
	}
	if cfg.MCPCORSOrigins != nil {
		t.Fatalf("expected no CORS origins, got %v", cfg.MCPCORSOrigins)
	}
	if cfg.HTTPPort != "8080" || cfg.QuoteCacheTTL() != 15*time.Second {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.QuoteWarmSymbols != nil || cfg.QuoteWarmInterval() != time.Minute {
		t.Fatalf("unexpected warmer defaults: %+v", cfg)
	}
	if cfg.YahooTimeout() != 15*time.Second || cfg.YahooMaxRetries != 3 || cfg.YahooRequestsPerMin != 120 {
		t.Fatalf("unexpected provider defaults: %+v", cfg)
	}
}

func TestLoadWithEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "Production")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("MCP_TRANSPORT", "http")
	t.Setenv("MCP_HTTP_ENABLED", "true")
	t.Setenv("MCP_HTTP_BIND", "0.0.0.0")
	t.Setenv("MCP_HTTP_PORT", "9191")
	t.Setenv("MCP_AUTH_TOKEN", "secret")
	t.Setenv("MCP_REQUEST_TIMEOUT_SECS", "9")
	t.Setenv("MCP_RATE_LIMIT_PER_MIN", "75")
	t.Setenv("MCP_CORS_ORIGINS", "https://a.example.com, https://b.example.com,https://a.example.com")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("QUOTE_CACHE_TTL_SECS", "30")
	t.Setenv("QUOTE_WARM_SYMBOLS", "spy, ^gspc,btc-usd")
	t.Setenv("QUOTE_WARM_INTERVAL_SECS", "120")
	t.Setenv("YAHOO_TIMEOUT_SECS", "5")
	t.Setenv("YAHOO_MAX_RETRIES", "6")
	t.Setenv("YAHOO_REQUESTS_PER_MIN", "30")
	t.Setenv("YAHOO_PROXY_URL", "http://proxy:3128")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")

	cfg := Load()
	if cfg.AppEnv != "production" || cfg.LogLevel != "debug" || cfg.RedisURL != "redis://cache:6379/0" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.MCPTransport != "http" || !cfg.MCPHTTPEnabled || cfg.MCPHTTPBind != "0.0.0.0" || cfg.MCPHTTPPort != 9191 || cfg.MCPAuthToken != "secret" {
		t.Fatalf("unexpected MCP config: %+v", cfg)
	}
	if cfg.MCPRequestTimeoutSecs != 9 || cfg.MCPRateLimitPerMin != 75 {
		t.Fatalf("unexpected MCP timeout/rate: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.MCPCORSOrigins, []string{"https://a.example.com", "https://b.example.com"}) {
		t.Fatalf("unexpected CORS origins: %v", cfg.MCPCORSOrigins)
	}
	if cfg.HTTPPort != "9000" || cfg.QuoteCacheTTLSecs != 30 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.QuoteWarmSymbols, []string{"SPY", "^GSPC", "BTC-USD"}) || cfg.QuoteWarmIntervalSecs != 120 {
		t.Fatalf("unexpected warmer config: %v every %ds", cfg.QuoteWarmSymbols, cfg.QuoteWarmIntervalSecs)
	}
	if cfg.YahooTimeoutSecs != 5 || cfg.YahooMaxRetries != 6 || cfg.YahooRequestsPerMin != 30 || cfg.YahooProxyURL != "http://proxy:3128" {
		t.Fatalf("unexpected provider config: %+v", cfg)
	}
	if cfg.OTLPExporterEndpoint != "collector:4317" {
		t.Fatalf("unexpected otlp endpoint: %s", cfg.OTLPExporterEndpoint)
	}

	t.Setenv("MCP_TRANSPORT", "grpc")
	t.Setenv("MCP_HTTP_PORT", "bad")
	t.Setenv("MCP_REQUEST_TIMEOUT_SECS", "-1")
	t.Setenv("MCP_RATE_LIMIT_PER_MIN", "bad")
	t.Setenv("QUOTE_CACHE_TTL_SECS", "0")
	t.Setenv("YAHOO_MAX_RETRIES", "bad")
	cfg = Load()
	if cfg.MCPTransport != "stdio" {
		t.Fatalf("unsupported transport should fall back to stdio, got %s", cfg.MCPTransport)
	}
	if cfg.MCPHTTPPort != 8090 || cfg.MCPRequestTimeoutSecs != 30 || cfg.MCPRateLimitPerMin != 60 {
		t.Fatalf("invalid MCP numeric values should fall back to defaults: %+v", cfg)
	}
	if cfg.QuoteCacheTTLSecs != 15 || cfg.YahooMaxRetries != 3 {
		t.Fatalf("invalid numeric values should fall back to defaults: %+v", cfg)
	}
}

func TestLoadZeroRetriesDisablesRetry(t *testing.T) {
	clearEnv(t)
	t.Setenv("YAHOO_MAX_RETRIES", "0")
	if cfg := Load(); cfg.YahooMaxRetries != 0 {
		t.Fatalf("expected retries disabled, got %d", cfg.YahooMaxRetries)
	}

	t.Setenv("YAHOO_MAX_RETRIES", "-2")
	if cfg := Load(); cfg.YahooMaxRetries != 3 {
		t.Fatalf("negative retries should fall back to 3, got %d", cfg.YahooMaxRetries)
	}
}

func TestLoadConfigFileEnvWins(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "openmarkets.yaml")
	body := []byte(`
MCP_HTTP_PORT: 7000
MCP_AUTH_TOKEN: from-file
LOG_LEVEL: warn
MCP_CORS_ORIGINS:
  - https://a.example.com
  - https://b.example.com
yahoo_requests_per_min: 45
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OPENMARKETS_CONFIG", path)
	t.Setenv("MCP_AUTH_TOKEN", "from-env")

	cfg := Load()
	if cfg.MCPHTTPPort != 7000 || cfg.LogLevel != "warn" || cfg.YahooRequestsPerMin != 45 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.MCPAuthToken != "from-env" {
		t.Fatalf("env should win over file, got %s", cfg.MCPAuthToken)
	}
	if !reflect.DeepEqual(cfg.MCPCORSOrigins, []string{"https://a.example.com", "https://b.example.com"}) {
		t.Fatalf("unexpected CORS origins: %v", cfg.MCPCORSOrigins)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENMARKETS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()
	if cfg.MCPHTTPPort != 8090 {
		t.Fatalf("missing file should leave defaults, got %d", cfg.MCPHTTPPort)
	}
}
