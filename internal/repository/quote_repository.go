package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
	"openmarkets/internal/provider/yahoo"
)

// QuoteCache holds recent quotes. Misses and cache failures are
// indistinguishable to the repository.
type QuoteCache interface {
	GetQuote(ctx context.Context, symbol string) (*domain.Quote, bool)
	SetQuote(ctx context.Context, q *domain.Quote)
}

type QuoteRepository struct {
	source Source
	cache  QuoteCache
	tracer trace.Tracer
}

// NewQuoteRepository builds the repository; cache may be nil.
func NewQuoteRepository(source Source, cache QuoteCache, tracer trace.Tracer) *QuoteRepository {
	return &QuoteRepository{source: source, cache: cache, tracer: tracer}
}

func (r *QuoteRepository) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	ctx, span := r.tracer.Start(ctx, "quote-repo.get-quote")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	if r.cache != nil {
		if q, ok := r.cache.GetQuote(ctx, symbol); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return q, nil
		}
	}

	results, err := r.source.Quotes(ctx, symbol)
	if err != nil {
		return nil, err
	}
	q := quoteFromResult(results[0])
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	if r.cache != nil {
		r.cache.SetQuote(ctx, &q)
	}
	return &q, nil
}

// GetQuotes fetches several symbols in one upstream call, preserving the
// order the provider returns them in.
func (r *QuoteRepository) GetQuotes(ctx context.Context, symbols []string) ([]domain.Quote, error) {
	ctx, span := r.tracer.Start(ctx, "quote-repo.get-quotes")
	defer span.End()
	span.SetAttributes(attribute.Int("symbols", len(symbols)))

	results, err := r.source.Quotes(ctx, symbols...)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Quote, 0, len(results))
	for _, res := range results {
		q := quoteFromResult(res)
		if r.cache != nil {
			r.cache.SetQuote(ctx, &q)
		}
		out = append(out, q)
	}
	return out, nil
}

// GetCurrentPrice returns the last traded price, or nil when the provider has
// no usable price for symbol.
func (r *QuoteRepository) GetCurrentPrice(ctx context.Context, symbol string) (*float64, error) {
	q, err := r.GetQuote(ctx, symbol)
	if err != nil {
		if errors.Is(err, yahoo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if q.RegularMarketPrice <= 0 {
		return nil, nil
	}
	price := q.RegularMarketPrice
	return &price, nil
}

func quoteFromResult(r gjson.Result) domain.Quote {
	q := domain.Quote{
		Symbol:                            r.Get("symbol").String(),
		ShortName:                         r.Get("shortName").String(),
		LongName:                          r.Get("longName").String(),
		QuoteType:                         r.Get("quoteType").String(),
		Currency:                          r.Get("currency").String(),
		Exchange:                          r.Get("fullExchangeName").String(),
		MarketState:                       r.Get("marketState").String(),
		RegularMarketPrice:                r.Get("regularMarketPrice").Float(),
		RegularMarketChange:               r.Get("regularMarketChange").Float(),
		RegularMarketChangePercent:        r.Get("regularMarketChangePercent").Float(),
		RegularMarketPreviousClose:        r.Get("regularMarketPreviousClose").Float(),
		RegularMarketOpen:                 r.Get("regularMarketOpen").Float(),
		RegularMarketDayHigh:              r.Get("regularMarketDayHigh").Float(),
		RegularMarketDayLow:               r.Get("regularMarketDayLow").Float(),
		RegularMarketVolume:               r.Get("regularMarketVolume").Int(),
		Bid:                               r.Get("bid").Float(),
		Ask:                               r.Get("ask").Float(),
		MarketCap:                         r.Get("marketCap").Int(),
		SharesOutstanding:                 r.Get("sharesOutstanding").Int(),
		AverageDailyVolume3Month:          r.Get("averageDailyVolume3Month").Int(),
		AverageDailyVolume10Day:           r.Get("averageDailyVolume10Day").Int(),
		FiftyTwoWeekHigh:                  r.Get("fiftyTwoWeekHigh").Float(),
		FiftyTwoWeekLow:                   r.Get("fiftyTwoWeekLow").Float(),
		FiftyDayAverage:                   r.Get("fiftyDayAverage").Float(),
		FiftyDayAverageChange:             r.Get("fiftyDayAverageChange").Float(),
		FiftyDayAverageChangePercent:      r.Get("fiftyDayAverageChangePercent").Float(),
		TwoHundredDayAverage:              r.Get("twoHundredDayAverage").Float(),
		TwoHundredDayAverageChange:        r.Get("twoHundredDayAverageChange").Float(),
		TwoHundredDayAverageChangePercent: r.Get("twoHundredDayAverageChangePercent").Float(),
	}
	if q.Exchange == "" {
		q.Exchange = r.Get("exchange").String()
	}
	if ts := r.Get("regularMarketTime"); ts.Exists() {
		q.RegularMarketTime = time.Unix(ts.Int(), 0).UTC()
	}
	return q
}
