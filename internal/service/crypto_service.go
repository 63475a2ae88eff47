package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"openmarkets/internal/domain"
	"openmarkets/internal/provider/yahoo"
)

const (
	cryptoQuoteSuffix     = "-USD"
	defaultTopCryptoCount = 10
	maxTopCryptoCount     = 20
	sentimentPeriod       = "7d"
	sentimentConcurrency  = 4
	sentimentNote         = "This is a simplified sentiment proxy based on price movements, not the official Fear & Greed Index"
)

var TopCryptoTickers = []string{
	"BTC-USD", "ETH-USD", "USDT-USD", "BNB-USD", "SOL-USD",
	"XRP-USD", "USDC-USD", "ADA-USD", "DOGE-USD", "AVAX-USD",
	"TRX-USD", "DOT-USD", "LINK-USD", "MATIC-USD", "SHIB-USD",
	"LTC-USD", "BCH-USD", "XLM-USD", "ATOM-USD", "ETC-USD",
}

var DefaultSentimentTickers = []string{"BTC-USD", "ETH-USD", "BNB-USD", "XRP-USD", "ADA-USD"}

type CryptoService struct {
	tracer trace.Tracer
	quotes QuoteReader
	prices PriceHistoryRepository
}

func NewCryptoService(tracer trace.Tracer, quotes QuoteReader, prices PriceHistoryRepository) *CryptoService {
	return &CryptoService{tracer: tracer, quotes: quotes, prices: prices}
}

// cryptoSymbol appends the USD quote suffix when missing.
func cryptoSymbol(ticker string) (string, error) {
	symbol, err := NormalizeSymbol(ticker)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(symbol, cryptoQuoteSuffix) {
		symbol += cryptoQuoteSuffix
	}
	return symbol, nil
}

func (s *CryptoService) GetInfo(ctx context.Context, ticker string) (*domain.FastInfo, error) {
	ctx, span := s.tracer.Start(ctx, "crypto-service.get-info")
	defer span.End()

	symbol, err := cryptoSymbol(ticker)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	q, err := s.quotes.GetQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("get quote for %s: %w", symbol, err)
	}
	info := FastInfoFromQuote(*q)
	return &info, nil
}

func (s *CryptoService) GetHistory(ctx context.Context, ticker, period, interval string) (domain.PriceSeries, error) {
	ctx, span := s.tracer.Start(ctx, "crypto-service.get-history")
	defer span.End()

	symbol, err := cryptoSymbol(ticker)
	if err != nil {
		return domain.PriceSeries{}, err
	}
	if period, err = NormalizePeriod(period, defaultHistoryPeriod); err != nil {
		return domain.PriceSeries{}, err
	}
	if interval, err = NormalizeInterval(interval, dailyInterval); err != nil {
		return domain.PriceSeries{}, err
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	series, err := s.prices.GetHistory(ctx, symbol, period, interval)
	if err != nil {
		return domain.PriceSeries{}, fmt.Errorf("get history for %s: %w", symbol, err)
	}
	if series.Bars == nil {
		series.Bars = []domain.PriceBar{}
	}
	return series, nil
}

// ClampTopCount bounds the number of top cryptocurrencies to [1, 20].
func ClampTopCount(count int) int {
	if count <= 0 {
		return defaultTopCryptoCount
	}
	if count > maxTopCryptoCount {
		return maxTopCryptoCount
	}
	return count
}

func (s *CryptoService) GetTopCryptocurrencies(ctx context.Context, count int) ([]domain.FastInfo, error) {
	ctx, span := s.tracer.Start(ctx, "crypto-service.get-top-cryptocurrencies")
	defer span.End()

	count = ClampTopCount(count)
	span.SetAttributes(attribute.Int("count", count))

	quotes, err := s.quotes.GetQuotes(ctx, TopCryptoTickers[:count])
	if err != nil {
		return nil, fmt.Errorf("get top cryptocurrencies: %w", err)
	}
	out := make([]domain.FastInfo, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FastInfoFromQuote(q))
	}
	return out, nil
}

// GetFearGreedProxy classifies the average weekly price change of tickers.
// Tickers without at least two closes in the last week are left out.
func (s *CryptoService) GetFearGreedProxy(ctx context.Context, tickers []string) (*domain.CryptoSentiment, error) {
	ctx, span := s.tracer.Start(ctx, "crypto-service.get-fear-greed-proxy")
	defer span.End()

	if len(tickers) == 0 {
		tickers = DefaultSentimentTickers
	}
	symbols := make([]string, 0, len(tickers))
	for _, t := range tickers {
		symbol, err := cryptoSymbol(t)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}

	entries := make([]*domain.CryptoSentimentEntry, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sentimentConcurrency)
	for i, symbol := range symbols {
		g.Go(func() error {
			series, err := s.prices.GetHistory(gctx, symbol, sentimentPeriod, dailyInterval)
			if errors.Is(err, yahoo.ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("get history for %s: %w", symbol, err)
			}
			entries[i] = sentimentEntry(symbol, series.Closes())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &domain.CryptoSentiment{CryptoData: []domain.CryptoSentimentEntry{}, Note: sentimentNote}
	var total float64
	for _, e := range entries {
		if e == nil {
			continue
		}
		out.CryptoData = append(out.CryptoData, *e)
		total += e.WeeklyChangePercent
	}
	if n := len(out.CryptoData); n > 0 {
		out.AverageWeeklyChange = total / float64(n)
	}
	out.SentimentProxy = SentimentLabel(out.AverageWeeklyChange)
	return out, nil
}

func sentimentEntry(symbol string, closes []float64) *domain.CryptoSentimentEntry {
	n := len(closes)
	if n < 2 || closes[0] == 0 || closes[n-2] == 0 {
		return nil
	}
	return &domain.CryptoSentimentEntry{
		Symbol:              symbol,
		DailyChangePercent:  (closes[n-1] - closes[n-2]) / closes[n-2] * 100,
		WeeklyChangePercent: (closes[n-1] - closes[0]) / closes[0] * 100,
	}
}

// SentimentLabel maps an average weekly change in percent to a label.
func SentimentLabel(avg float64) string {
	switch {
	case avg > 10:
		return "Extreme Greed"
	case avg > 5:
		return "Greed"
	case avg > 0:
		return "Neutral-Positive"
	case avg > -5:
		return "Neutral-Negative"
	case avg > -10:
		return "Fear"
	default:
		return "Extreme Fear"
	}
}
