package repository

import (
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

type PriceRepository struct {
	source Source
	tracer trace.Tracer
}

func NewPriceRepository(source Source, tracer trace.Tracer) *PriceRepository {
	return &PriceRepository{source: source, tracer: tracer}
}

// GetHistory returns the bars for symbol. A symbol the provider knows but has
// no bars for yields an empty series, not an error.
func (r *PriceRepository) GetHistory(ctx context.Context, symbol, period, interval string) (domain.PriceSeries, error) {
	ctx, span := r.tracer.Start(ctx, "price-repo.get-history")
	defer span.End()
	span.SetAttributes(
		attribute.String("symbol", symbol),
		attribute.String("period", period),
		attribute.String("interval", interval),
	)

	series := domain.PriceSeries{Symbol: symbol, Period: period, Interval: interval}
	chart, err := r.source.Chart(ctx, symbol, period, interval)
	if noData(err) {
		return series, nil
	}
	if err != nil {
		return series, err
	}
	series.Bars = chart.Bars
	return series, nil
}

func (r *PriceRepository) GetDividends(ctx context.Context, symbol string) ([]domain.Dividend, error) {
	ctx, span := r.tracer.Start(ctx, "price-repo.get-dividends")
	defer span.End()

	chart, err := r.source.Chart(ctx, symbol, "max", "1d")
	if err != nil {
		return nil, err
	}
	return nonNil(chart.Dividends), nil
}

func (r *PriceRepository) GetSplits(ctx context.Context, symbol string) ([]domain.Split, error) {
	ctx, span := r.tracer.Start(ctx, "price-repo.get-splits")
	defer span.End()

	chart, err := r.source.Chart(ctx, symbol, "max", "1d")
	if err != nil {
		return nil, err
	}
	return nonNil(chart.Splits), nil
}

// GetCorporateActions merges dividends and splits by date, oldest first.
func (r *PriceRepository) GetCorporateActions(ctx context.Context, symbol string) ([]domain.CorporateAction, error) {
	ctx, span := r.tracer.Start(ctx, "price-repo.get-corporate-actions")
	defer span.End()

	chart, err := r.source.Chart(ctx, symbol, "max", "1d")
	if err != nil {
		return nil, err
	}

	byDate := make(map[int64]*domain.CorporateAction)
	at := func(t time.Time) *domain.CorporateAction {
		if a, ok := byDate[t.Unix()]; ok {
			return a
		}
		a := &domain.CorporateAction{Date: t}
		byDate[t.Unix()] = a
		return a
	}
	for _, d := range chart.Dividends {
		at(d.Date).Dividends = d.Amount
	}
	for _, s := range chart.Splits {
		at(s.Date).StockSplits = s.Ratio
	}

	out := make([]domain.CorporateAction, 0, len(byDate))
	for _, a := range byDate {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
