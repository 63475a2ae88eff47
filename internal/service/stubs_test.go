package service

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"openmarkets/internal/domain"
)

func testTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("test")
}

type stubPriceRepo struct {
	mu           sync.Mutex
	series       map[string]domain.PriceSeries
	err          error
	errFor       map[string]error
	lastSymbol   string
	lastPeriod   string
	lastInterval string
	dividends    []domain.Dividend
	splits       []domain.Split
	actions      []domain.CorporateAction
}

func (s *stubPriceRepo) GetHistory(_ context.Context, symbol, period, interval string) (domain.PriceSeries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSymbol, s.lastPeriod, s.lastInterval = symbol, period, interval
	if s.err != nil {
		return domain.PriceSeries{}, s.err
	}
	if err := s.errFor[symbol]; err != nil {
		return domain.PriceSeries{}, err
	}
	series := s.series[symbol]
	series.Symbol, series.Period, series.Interval = symbol, period, interval
	return series, nil
}

func (s *stubPriceRepo) GetDividends(context.Context, string) ([]domain.Dividend, error) {
	return s.dividends, s.err
}

func (s *stubPriceRepo) GetSplits(context.Context, string) ([]domain.Split, error) {
	return s.splits, s.err
}

func (s *stubPriceRepo) GetCorporateActions(context.Context, string) ([]domain.CorporateAction, error) {
	return s.actions, s.err
}

type stubQuoteRepo struct {
	quotes      map[string]domain.Quote
	err         error
	lastSymbols []string
}

func (s *stubQuoteRepo) GetQuote(_ context.Context, symbol string) (*domain.Quote, error) {
	if s.err != nil {
		return nil, s.err
	}
	q := s.quotes[symbol]
	q.Symbol = symbol
	return &q, nil
}

func (s *stubQuoteRepo) GetQuotes(_ context.Context, symbols []string) ([]domain.Quote, error) {
	s.lastSymbols = symbols
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Quote, 0, len(symbols))
	for _, sym := range symbols {
		q := s.quotes[sym]
		q.Symbol = sym
		out = append(out, q)
	}
	return out, nil
}

type stubChainRepo struct {
	chain          *domain.OptionsChain
	expirations    []time.Time
	err            error
	lastExpiration *time.Time
}

func (s *stubChainRepo) GetExpirations(context.Context, string) ([]time.Time, error) {
	return s.expirations, s.err
}

func (s *stubChainRepo) GetChain(_ context.Context, symbol string, expiration *time.Time) (*domain.OptionsChain, error) {
	s.lastExpiration = expiration
	if s.err != nil {
		return nil, s.err
	}
	if s.chain == nil {
		return &domain.OptionsChain{Symbol: symbol}, nil
	}
	c := *s.chain
	return &c, nil
}

type stubCurrentPrice struct {
	price *float64
	err   error
}

func (s *stubCurrentPrice) GetCurrentPrice(context.Context, string) (*float64, error) {
	return s.price, s.err
}

func seriesOf(closes ...float64) domain.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = domain.PriceBar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
		}
	}
	return domain.PriceSeries{Bars: bars}
}

func floatPtr(v float64) *float64 { return &v }
