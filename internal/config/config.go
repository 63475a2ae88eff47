package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv   string
	LogLevel string

	MCPTransport          string
	MCPHTTPEnabled        bool
	MCPHTTPBind           string
	MCPHTTPPort           int
	MCPAuthToken          string
	MCPRequestTimeoutSecs int
	MCPRateLimitPerMin    int
	MCPCORSOrigins        []string

	HTTPPort string

	RedisURL              string
	QuoteCacheTTLSecs     int
	QuoteWarmSymbols      []string
	QuoteWarmIntervalSecs int

	YahooTimeoutSecs     int
	YahooMaxRetries      int
	YahooRequestsPerMin  int
	YahooProxyURL        string
	OTLPExporterEndpoint string
}

// Load reads the configuration from the environment. When OPENMARKETS_CONFIG
// names a YAML file, its keys fill in any variable left unset.
func Load() *Config {
	src := source{}
	if path := strings.TrimSpace(os.Getenv("OPENMARKETS_CONFIG")); path != "" {
		file, err := readFile(path)
		if err != nil {
			log.Printf("Warning: ignoring config file %s: %v", path, err)
		} else {
			src.file = file
		}
	}

	cfg := &Config{
		AppEnv:               strings.ToLower(src.get("APP_ENV")),
		LogLevel:             strings.ToLower(src.get("LOG_LEVEL")),
		MCPAuthToken:         src.get("MCP_AUTH_TOKEN"),
		RedisURL:             src.get("REDIS_URL"),
		YahooProxyURL:        src.get("YAHOO_PROXY_URL"),
		OTLPExporterEndpoint: src.get("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, quote cache disabled")
	}

	cfg.MCPTransport = strings.ToLower(src.get("MCP_TRANSPORT"))
	if cfg.MCPTransport == "" {
		cfg.MCPTransport = "stdio"
	}
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Printf("Warning: unsupported MCP_TRANSPORT=%q, defaulting to stdio", cfg.MCPTransport)
		cfg.MCPTransport = "stdio"
	}

	cfg.MCPHTTPEnabled = strings.EqualFold(src.get("MCP_HTTP_ENABLED"), "true")

	cfg.MCPHTTPBind = src.get("MCP_HTTP_BIND")
	if cfg.MCPHTTPBind == "" {
		cfg.MCPHTTPBind = "127.0.0.1"
	}

	cfg.MCPHTTPPort = src.positiveInt("MCP_HTTP_PORT", 8090)
	cfg.MCPRequestTimeoutSecs = src.positiveInt("MCP_REQUEST_TIMEOUT_SECS", 30)
	cfg.MCPRateLimitPerMin = src.positiveInt("MCP_RATE_LIMIT_PER_MIN", 60)
	cfg.MCPCORSOrigins = parseList(src.get("MCP_CORS_ORIGINS"))

	cfg.HTTPPort = src.get("HTTP_PORT")
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}

	cfg.QuoteCacheTTLSecs = src.positiveInt("QUOTE_CACHE_TTL_SECS", 15)
	cfg.QuoteWarmSymbols = parseList(strings.ToUpper(src.get("QUOTE_WARM_SYMBOLS")))
	cfg.QuoteWarmIntervalSecs = src.positiveInt("QUOTE_WARM_INTERVAL_SECS", 60)
	cfg.YahooTimeoutSecs = src.positiveInt("YAHOO_TIMEOUT_SECS", 15)
	cfg.YahooMaxRetries = src.nonNegativeInt("YAHOO_MAX_RETRIES", 3)
	cfg.YahooRequestsPerMin = src.positiveInt("YAHOO_REQUESTS_PER_MIN", 120)

	return cfg
}

func (c *Config) MCPRequestTimeout() time.Duration {
	return time.Duration(c.MCPRequestTimeoutSecs) * time.Second
}

func (c *Config) QuoteCacheTTL() time.Duration {
	return time.Duration(c.QuoteCacheTTLSecs) * time.Second
}

func (c *Config) QuoteWarmInterval() time.Duration {
	return time.Duration(c.QuoteWarmIntervalSecs) * time.Second
}

func (c *Config) YahooTimeout() time.Duration {
	return time.Duration(c.YahooTimeoutSecs) * time.Second
}

// source resolves a key from the environment first, then the config file.
type source struct {
	file map[string]string
}

func (s source) get(key string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return strings.TrimSpace(s.file[key])
}

func (s source) positiveInt(key string, def int) int {
	v := s.get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

// nonNegativeInt is positiveInt for settings where zero switches a feature off.
func (s source) nonNegativeInt(key string, def int) int {
	v := s.get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

// readFile loads a flat YAML mapping of the same keys the environment uses.
func readFile(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	out := make(map[string]string, len(doc))
	for key, value := range doc {
		k := strings.ToUpper(strings.TrimSpace(key))
		switch v := value.(type) {
		case nil:
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}
			out[k] = strings.Join(parts, ",")
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out, nil
}

func parseList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
