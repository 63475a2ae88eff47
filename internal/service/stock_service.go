package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

const (
	defaultHistoryPeriod = "1y"
	defaultNewsCount     = 10
	maxNewsCount         = 50
)

type QuoteReader interface {
	GetQuote(ctx context.Context, symbol string) (*domain.Quote, error)
	GetQuotes(ctx context.Context, symbols []string) ([]domain.Quote, error)
}

type CorporateActionRepository interface {
	PriceHistoryRepository
	GetDividends(ctx context.Context, symbol string) ([]domain.Dividend, error)
	GetSplits(ctx context.Context, symbol string) ([]domain.Split, error)
	GetCorporateActions(ctx context.Context, symbol string) ([]domain.CorporateAction, error)
}

type StockInfoRepository interface {
	GetInfo(ctx context.Context, symbol string) (*domain.StockInfo, error)
	GetNews(ctx context.Context, symbol string, count int) ([]domain.NewsItem, error)
}

type StockService struct {
	tracer trace.Tracer
	quotes QuoteReader
	prices CorporateActionRepository
	info   StockInfoRepository
}

func NewStockService(tracer trace.Tracer, quotes QuoteReader, prices CorporateActionRepository, info StockInfoRepository) *StockService {
	return &StockService{tracer: tracer, quotes: quotes, prices: prices, info: info}
}

func (s *StockService) symbol(ctx context.Context, symbol string) (string, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return "", err
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("symbol", symbol))
	return symbol, nil
}

func (s *StockService) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.get-quote")
	defer span.End()

	symbol, err := s.symbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	q, err := s.quotes.GetQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("get quote for %s: %w", symbol, err)
	}
	return q, nil
}

func (s *StockService) GetFastInfo(ctx context.Context, symbol string) (*domain.FastInfo, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.get-fast-info")
	defer span.End()

	q, err := s.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	info := FastInfoFromQuote(*q)
	return &info, nil
}

// FastInfoFromQuote projects a quote onto the fast info view.
func FastInfoFromQuote(q domain.Quote) domain.FastInfo {
	info := domain.FastInfo{
		Symbol:               q.Symbol,
		Currency:             q.Currency,
		Exchange:             q.Exchange,
		QuoteType:            q.QuoteType,
		LastPrice:            q.RegularMarketPrice,
		Open:                 q.RegularMarketOpen,
		DayHigh:              q.RegularMarketDayHigh,
		DayLow:               q.RegularMarketDayLow,
		PreviousClose:        q.RegularMarketPreviousClose,
		LastVolume:           q.RegularMarketVolume,
		YearHigh:             q.FiftyTwoWeekHigh,
		YearLow:              q.FiftyTwoWeekLow,
		FiftyDayAverage:      q.FiftyDayAverage,
		TwoHundredDayAverage: q.TwoHundredDayAverage,
	}
	if q.MarketCap > 0 {
		v := q.MarketCap
		info.MarketCap = &v
	}
	if q.SharesOutstanding > 0 {
		v := q.SharesOutstanding
		info.Shares = &v
	}
	if q.AverageDailyVolume10Day > 0 {
		v := q.AverageDailyVolume10Day
		info.TenDayAverageVolume = &v
	}
	if q.AverageDailyVolume3Month > 0 {
		v := q.AverageDailyVolume3Month
		info.ThreeMonthAverageVolume = &v
	}
	if q.RegularMarketPreviousClose != 0 {
		v := q.RegularMarketChangePercent
		info.RegularMarketChangePercent = &v
	}
	return info
}

func (s *StockService) GetInfo(ctx context.Context, symbol string) (*domain.StockInfo, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.get-info")
	defer span.End()

	symbol, err := s.symbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	info, err := s.info.GetInfo(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("get info for %s: %w", symbol, err)
	}
	return info, nil
}

func (s *StockService) GetHistory(ctx context.Context, symbol, period, interval string) (domain.PriceSeries, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.get-history")
	defer span.End()

	symbol, err := s.symbol(ctx, symbol)
	if err != nil {
		return domain.PriceSeries{}, err
	}
	if period, err = NormalizePeriod(period, defaultHistoryPeriod); err != nil {
		return domain.PriceSeries{}, err
	}
	if interval, err = NormalizeInterval(interval, dailyInterval); err != nil {
		return domain.PriceSeries{}, err
	}

	series, err := s.prices.GetHistory(ctx, symbol, period, interval)
	if err != nil {
		return domain.PriceSeries{}, fmt.Errorf("get history for %s: %w", symbol, err)
	}
	if series.Bars == nil {
		series.Bars = []domain.PriceBar{}
	}
	return series, nil
}

func (s *StockService) GetDividends(ctx context.Context, symbol string) ([]domain.Dividend, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.get-dividends")
	defer span.End()

	symbol, err := s.symbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	out, err := s.prices.GetDividends(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("get dividends for %s: %w", symbol, err)
	}
	return out, nil
}

func (s *StockService) GetSplits(ctx context.Context, symbol string) ([]domain.Split, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.get-splits")
	defer span.End()

	symbol, err := s.symbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	out, err := s.prices.GetSplits(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("get splits for %s: %w", symbol, err)
	}
	return out, nil
}

func (s *StockService) GetCorporateActions(ctx context.Context, symbol string) ([]domain.CorporateAction, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.get-corporate-actions")
	defer span.End()

	symbol, err := s.symbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	out, err := s.prices.GetCorporateActions(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("get corporate actions for %s: %w", symbol, err)
	}
	return out, nil
}

func (s *StockService) GetNews(ctx context.Context, symbol string, count int) ([]domain.NewsItem, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.get-news")
	defer span.End()

	symbol, err := s.symbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = defaultNewsCount
	}
	if count > maxNewsCount {
		count = maxNewsCount
	}
	out, err := s.info.GetNews(ctx, symbol, count)
	if err != nil {
		return nil, fmt.Errorf("get news for %s: %w", symbol, err)
	}
	return out, nil
}

func (s *StockService) GetFinancialSummary(ctx context.Context, symbol string) (*domain.FinancialOverview, error) {
	info, err := s.GetInfo(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return &domain.FinancialOverview{Valuation: info.Valuation, FinancialSummary: info.FinancialSummary}, nil
}

func (s *StockService) GetRiskMetrics(ctx context.Context, symbol string) (*domain.RiskMetrics, error) {
	info, err := s.GetInfo(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return &info.RiskMetrics, nil
}

func (s *StockService) GetDividendSummary(ctx context.Context, symbol string) (*domain.DividendSummary, error) {
	info, err := s.GetInfo(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return &info.DividendSummary, nil
}

func (s *StockService) GetPriceTarget(ctx context.Context, symbol string) (*domain.PriceTarget, error) {
	info, err := s.GetInfo(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return &info.PriceTarget, nil
}

func (s *StockService) GetQuickTechnicalIndicators(ctx context.Context, symbol string) (*domain.QuickTechnicalIndicators, error) {
	info, err := s.GetInfo(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return &info.QuickTechnicalIndicators, nil
}
