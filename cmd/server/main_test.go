package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/cache"
	"openmarkets/internal/config"
	"openmarkets/internal/job"
)

func TestMainBootstrap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	restore := stubServerDeps()
	defer restore()

	var served *http.Server
	started := make(chan struct{})
	startHTTPServerFunc = func(srv *http.Server) error {
		served = srv
		close(started)
		return http.ErrServerClosed
	}
	waitForSignalFunc = func(<-chan os.Signal) { <-started }

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}

	if served == nil || served.Addr != ":9099" {
		t.Fatalf("unexpected server: %+v", served)
	}

	for _, path := range []string{"/health", "/metrics"} {
		w := httptest.NewRecorder()
		served.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	served.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/technical/not%20valid/indicators", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an invalid symbol, got %d", w.Code)
	}
}

func TestMainStartsQuoteWarmerWithCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	restore := stubServerDeps()
	defer restore()

	mr := miniredis.RunT(t)
	origClient := cache.Client
	cache.Client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() {
		_ = cache.Client.Close()
		cache.Client = origClient
	}()

	baseConfig := loadConfigFunc
	loadConfigFunc = func() *config.Config {
		cfg := baseConfig()
		cfg.QuoteWarmSymbols = []string{"SPY", "QQQ"}
		cfg.QuoteWarmIntervalSecs = 30
		return cfg
	}

	var warmer *job.QuoteWarmer
	origStartWarmer := startQuoteWarmerFunc
	startQuoteWarmerFunc = func(w *job.QuoteWarmer, ctx context.Context) { warmer = w }
	defer func() { startQuoteWarmerFunc = origStartWarmer }()

	main()

	if warmer == nil {
		t.Fatal("expected quote warmer to start when the cache is enabled")
	}
}

func TestHTTPAddr(t *testing.T) {
	if got := httpAddr(""); got != ":8080" {
		t.Fatalf("expected default :8080, got %s", got)
	}
	if got := httpAddr("9090"); got != ":9090" {
		t.Fatalf("expected :9090, got %s", got)
	}
	if got := httpAddr(":7070"); got != ":7070" {
		t.Fatalf("expected :7070, got %s", got)
	}
}

func stubServerDeps() func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitLogger := initLoggerFunc
	origInitRedis := initRedisFunc
	origInitTracer := initTracerFunc
	origNewRouter := newRouterFunc
	origNotify := setupSignalNotify
	origWait := waitForSignalFunc
	origStart := startHTTPServerFunc
	origShutdown := shutdownHTTPServerFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			AppEnv:              "development",
			LogLevel:            "error",
			HTTPPort:            "9099",
			MCPCORSOrigins:      []string{"https://app.example.com"},
			QuoteCacheTTLSecs:   1,
			YahooTimeoutSecs:    1,
			YahooMaxRetries:     1,
			YahooRequestsPerMin: 60,
		}
	}
	initLoggerFunc = func(string, string) error { return nil }
	initRedisFunc = func(context.Context, string) error { return nil }
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	newRouterFunc = gin.New
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}
	startHTTPServerFunc = func(*http.Server) error { return http.ErrServerClosed }
	shutdownHTTPServerFunc = func(*http.Server, context.Context) error { return nil }

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initLoggerFunc = origInitLogger
		initRedisFunc = origInitRedis
		initTracerFunc = origInitTracer
		newRouterFunc = origNewRouter
		setupSignalNotify = origNotify
		waitForSignalFunc = origWait
		startHTTPServerFunc = origStart
		shutdownHTTPServerFunc = origShutdown
	}
}
