package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/analytics"
	"openmarkets/internal/domain"
)

const (
	defaultIndicatorPeriod  = "6mo"
	defaultVolatilityPeriod = "1y"
	dailyInterval           = "1d"
)

type PriceHistoryRepository interface {
	GetHistory(ctx context.Context, symbol, period, interval string) (domain.PriceSeries, error)
}

// TechnicalService feeds daily price history into the technical indicator
// engine. Analytics errors are returned unwrapped so callers can render them
// as results.
type TechnicalService struct {
	tracer trace.Tracer
	prices PriceHistoryRepository
}

func NewTechnicalService(tracer trace.Tracer, prices PriceHistoryRepository) *TechnicalService {
	return &TechnicalService{tracer: tracer, prices: prices}
}

func (s *TechnicalService) history(ctx context.Context, symbol, period, def string) (domain.PriceSeries, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return domain.PriceSeries{}, err
	}
	period, err = NormalizePeriod(period, def)
	if err != nil {
		return domain.PriceSeries{}, err
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("symbol", symbol),
		attribute.String("period", period),
	)

	series, err := s.prices.GetHistory(ctx, symbol, period, dailyInterval)
	if err != nil {
		return domain.PriceSeries{}, fmt.Errorf("get history for %s: %w", symbol, err)
	}
	return series, nil
}

func (s *TechnicalService) GetTechnicalIndicators(ctx context.Context, symbol, period string) (*analytics.TechnicalIndicators, error) {
	ctx, span := s.tracer.Start(ctx, "technical-service.get-technical-indicators")
	defer span.End()

	series, err := s.history(ctx, symbol, period, defaultIndicatorPeriod)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeTechnicalIndicators(series)
}

func (s *TechnicalService) GetVolatilityMetrics(ctx context.Context, symbol, period string) (*analytics.VolatilityMetrics, error) {
	ctx, span := s.tracer.Start(ctx, "technical-service.get-volatility-metrics")
	defer span.End()

	series, err := s.history(ctx, symbol, period, defaultVolatilityPeriod)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeVolatilityMetrics(series)
}

func (s *TechnicalService) GetSupportResistanceLevels(ctx context.Context, symbol, period string) (*analytics.SupportResistanceLevels, error) {
	ctx, span := s.tracer.Start(ctx, "technical-service.get-support-resistance-levels")
	defer span.End()

	series, err := s.history(ctx, symbol, period, defaultIndicatorPeriod)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeSupportResistanceLevels(series)
}
