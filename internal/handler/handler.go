package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"openmarkets/internal/analytics"
	"openmarkets/internal/domain"
	"openmarkets/internal/metrics"
	"openmarkets/internal/provider/yahoo"
	"openmarkets/internal/service"
)

type TechnicalService interface {
	GetTechnicalIndicators(ctx context.Context, symbol, period string) (*analytics.TechnicalIndicators, error)
	GetVolatilityMetrics(ctx context.Context, symbol, period string) (*analytics.VolatilityMetrics, error)
	GetSupportResistanceLevels(ctx context.Context, symbol, period string) (*analytics.SupportResistanceLevels, error)
}

type OptionsService interface {
	GetExpirationDates(ctx context.Context, symbol string) ([]string, error)
	GetOptionChain(ctx context.Context, symbol, expiration string) (*domain.OptionsChain, error)
	GetVolumeAnalysis(ctx context.Context, symbol, expiration string) (*analytics.VolumeAnalysis, error)
	GetByMoneyness(ctx context.Context, symbol, expiration string, moneynessRange float64) (*analytics.MoneynessResult, error)
	GetSkew(ctx context.Context, symbol, expiration string) (*analytics.SkewResult, error)
}

type StockService interface {
	GetQuote(ctx context.Context, symbol string) (*domain.Quote, error)
	GetHistory(ctx context.Context, symbol, period, interval string) (domain.PriceSeries, error)
	GetDividends(ctx context.Context, symbol string) ([]domain.Dividend, error)
}

type Handler struct {
	tracer    trace.Tracer
	technical TechnicalService
	options   OptionsService
	stock     StockService
}

func New(tracer trace.Tracer, technical TechnicalService, options OptionsService, stock StockService) *Handler {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("handler")
	}
	return &Handler{
		tracer:    tracer,
		technical: technical,
		options:   options,
		stock:     stock,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api", Zstd())

	technical := api.Group("/technical/:symbol")
	technical.GET("/indicators", h.GetTechnicalIndicators)
	technical.GET("/volatility", h.GetVolatilityMetrics)
	technical.GET("/levels", h.GetSupportResistanceLevels)

	options := api.Group("/options/:symbol")
	options.GET("/expirations", h.GetExpirationDates)
	options.GET("/chain", h.GetOptionChain)
	options.GET("/volume", h.GetVolumeAnalysis)
	options.GET("/moneyness", h.GetByMoneyness)
	options.GET("/skew", h.GetSkew)

	stocks := api.Group("/stocks/:symbol")
	stocks.GET("/quote", h.GetQuote)
	stocks.GET("/history", h.GetHistory)
	stocks.GET("/dividends", h.GetDividends)
}

// Health godoc
// @Summary      Liveness check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) start(c *gin.Context, name string) (context.Context, trace.Span) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler."+name)
	span.SetAttributes(attribute.String("symbol", c.Param("symbol")))
	return ctx, span
}

// respond writes v, or maps err to a status: analytics failures are a 200
// with {"error", "kind"}, bad input is a 400 and provider failures a 502.
func respond[T any](c *gin.Context, route string, started time.Time, v T, err error) {
	if err == nil {
		metrics.ObserveTool(route, "ok", started)
		c.JSON(http.StatusOK, v)
		return
	}

	if u, ok := analytics.AsUnavailable(err); ok {
		metrics.ObserveTool(route, "unavailable", started)
		c.JSON(http.StatusOK, u)
		return
	}

	metrics.ObserveTool(route, "error", started)
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, yahoo.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, yahoo.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

func unavailable(c *gin.Context, name string) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": name + " service unavailable"})
}
