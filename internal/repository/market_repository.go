package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

type MarketRepository struct {
	source Source
	tracer trace.Tracer
}

func NewMarketRepository(source Source, tracer trace.Tracer) *MarketRepository {
	return &MarketRepository{source: source, tracer: tracer}
}

// GetSummary returns the headline quotes for market keyed by exchange code.
func (r *MarketRepository) GetSummary(ctx context.Context, market domain.MarketType) (*domain.MarketSummary, error) {
	ctx, span := r.tracer.Start(ctx, "market-repo.get-summary")
	defer span.End()
	span.SetAttributes(attribute.String("market", string(market)))

	results, err := r.source.MarketSummary(ctx, market.Region())
	if err != nil {
		return nil, err
	}
	out := &domain.MarketSummary{Market: market, Summary: make(map[string]domain.MarketSummaryEntry, len(results))}
	for _, q := range results {
		entry := domain.MarketSummaryEntry{
			Symbol:                     q.Get("symbol").String(),
			ShortName:                  str(q.Get("shortName")),
			Exchange:                   q.Get("exchange").String(),
			FullExchangeName:           q.Get("fullExchangeName").String(),
			QuoteType:                  q.Get("quoteType").String(),
			MarketState:                q.Get("marketState").String(),
			RegularMarketPrice:         raw(q.Get("regularMarketPrice")).Float(),
			RegularMarketChange:        raw(q.Get("regularMarketChange")).Float(),
			RegularMarketChangePercent: raw(q.Get("regularMarketChangePercent")).Float(),
			RegularMarketPreviousClose: raw(q.Get("regularMarketPreviousClose")).Float(),
			RegularMarketTime:          raw(q.Get("regularMarketTime")).Int(),
		}
		key := entry.Exchange
		if key == "" {
			key = entry.Symbol
		}
		out.Summary[key] = entry
	}
	return out, nil
}

func (r *MarketRepository) GetStatus(ctx context.Context, market domain.MarketType) (*domain.MarketStatus, error) {
	ctx, span := r.tracer.Start(ctx, "market-repo.get-status")
	defer span.End()
	span.SetAttributes(attribute.String("market", string(market)))

	mt, err := r.source.MarketTime(ctx, market.Region())
	if err != nil {
		return nil, err
	}
	status := &domain.MarketStatus{
		Market:   market,
		ID:       mt.Get("id").String(),
		Name:     mt.Get("name").String(),
		Status:   mt.Get("status").String(),
		Message:  mt.Get("message").String(),
		Timezone: mt.Get("timezone.0.short").String(),
	}
	if t, err := time.Parse(time.RFC3339, mt.Get("open").String()); err == nil {
		status.Open = &t
	}
	if t, err := time.Parse(time.RFC3339, mt.Get("close").String()); err == nil {
		status.Close = &t
	}
	return status, nil
}
