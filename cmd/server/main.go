package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	ossignal "os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"openmarkets/internal/app"
	"openmarkets/internal/cache"
	"openmarkets/internal/config"
	"openmarkets/internal/handler"
	"openmarkets/internal/job"
	"openmarkets/internal/metrics"
	"openmarkets/pkg/logger"
	"openmarkets/pkg/tracing"

	_ "openmarkets/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initLoggerFunc         = logger.Init
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	newServicesFunc        = app.NewServices
	newHandlerFunc         = handler.New
	newQuoteWarmerFunc     = job.NewQuoteWarmer
	startQuoteWarmerFunc   = func(w *job.QuoteWarmer, ctx context.Context) { go w.Start(ctx) }
	newRouterFunc          = gin.Default
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           OpenMarkets API
// @version         1.0
// @description     Market data, technical indicators and options analytics over REST.

// @host      localhost:8080
// @BasePath  /
func main() {
	_ = loadEnvFunc()

	cfg := loadConfigFunc()

	if err := initLoggerFunc(cfg.LogLevel, cfg.AppEnv); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	metrics.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := initRedisFunc(ctx, cfg.RedisURL); err != nil {
		log.Warnw("redis unavailable, running without quote cache", "error", err)
	}

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Errorw("error shutting down tracer provider", "error", err)
		}
	}()

	quoteCache := app.NewQuoteCache(cfg.QuoteCacheTTL())
	services := newServicesFunc(tracer, app.NewYahooClient(tracer, cfg), quoteCache)

	// Warming only pays off when quotes land in a cache.
	if quoteCache != nil && len(cfg.QuoteWarmSymbols) > 0 {
		warmer := newQuoteWarmerFunc(tracer, services.Quotes, cfg.QuoteWarmSymbols, cfg.QuoteWarmInterval())
		startQuoteWarmerFunc(warmer, ctx)
	}

	h := newHandlerFunc(tracer, services.Technical, services.Options, services.Stock)

	r := newRouterFunc()
	r.Use(otelgin.Middleware(tracing.ServiceName))
	if len(cfg.MCPCORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.MCPCORSOrigins
		r.Use(cors.New(corsCfg))
	}

	h.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              httpAddr(cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("rest server listening", "addr", srv.Addr)
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exiting")
}

func httpAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
