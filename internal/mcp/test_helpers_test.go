package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/trace/noop"

	"openmarkets/internal/analytics"
	"openmarkets/internal/domain"
	"openmarkets/internal/service"
)

type stubTechnical struct {
	indicators *analytics.TechnicalIndicators
	err        error
	lastSymbol string
	lastPeriod string
}

func (s *stubTechnical) GetTechnicalIndicators(_ context.Context, symbol, period string) (*analytics.TechnicalIndicators, error) {
	s.lastSymbol, s.lastPeriod = symbol, period
	return s.indicators, s.err
}

func (s *stubTechnical) GetVolatilityMetrics(context.Context, string, string) (*analytics.VolatilityMetrics, error) {
	return nil, analytics.ErrNoHistoricalData
}

func (s *stubTechnical) GetSupportResistanceLevels(context.Context, string, string) (*analytics.SupportResistanceLevels, error) {
	return &analytics.SupportResistanceLevels{CurrentPrice: 10, ResistanceLevels: []float64{11}, SupportLevels: []float64{9}}, nil
}

type stubOptions struct {
	lastExpiration string
	lastRange      float64
}

func (s *stubOptions) GetExpirationDates(context.Context, string) ([]string, error) {
	return []string{"2025-12-19"}, nil
}

func (s *stubOptions) GetOptionChain(_ context.Context, symbol, expiration string) (*domain.OptionsChain, error) {
	s.lastExpiration = expiration
	return &domain.OptionsChain{Symbol: symbol, Calls: []domain.OptionContract{{Strike: 100}}, Puts: []domain.OptionContract{}}, nil
}

func (s *stubOptions) GetCallOptions(context.Context, string, string) ([]domain.OptionContract, error) {
	return []domain.OptionContract{{Strike: 100, Type: domain.OptionCall}}, nil
}

func (s *stubOptions) GetPutOptions(context.Context, string, string) ([]domain.OptionContract, error) {
	return []domain.OptionContract{}, nil
}

func (s *stubOptions) GetVolumeAnalysis(context.Context, string, string) (*analytics.VolumeAnalysis, error) {
	return nil, analytics.ErrNoOptionsData
}

func (s *stubOptions) GetByMoneyness(_ context.Context, _, _ string, moneynessRange float64) (*analytics.MoneynessResult, error) {
	s.lastRange = moneynessRange
	return &analytics.MoneynessResult{CurrentPrice: 100, MoneynessRange: moneynessRange, Calls: []domain.OptionContract{}, Puts: []domain.OptionContract{}}, nil
}

func (s *stubOptions) GetSkew(context.Context, string, string) (*analytics.SkewResult, error) {
	return nil, analytics.ErrEmptyChain
}

type stubStock struct {
	quotes map[string]domain.Quote
}

func (s *stubStock) GetQuote(_ context.Context, symbol string) (*domain.Quote, error) {
	q := s.quotes[symbol]
	q.Symbol = symbol
	return &q, nil
}

func (s *stubStock) GetFastInfo(_ context.Context, symbol string) (*domain.FastInfo, error) {
	return &domain.FastInfo{Symbol: symbol, LastPrice: s.quotes[symbol].RegularMarketPrice}, nil
}

func (s *stubStock) GetInfo(_ context.Context, symbol string) (*domain.StockInfo, error) {
	return &domain.StockInfo{CompanyProfile: domain.CompanyProfile{Symbol: symbol, ShortName: "Apple Inc."}}, nil
}

func (s *stubStock) GetHistory(_ context.Context, symbol, period, interval string) (domain.PriceSeries, error) {
	return domain.PriceSeries{Symbol: symbol, Period: period, Interval: interval, Bars: []domain.PriceBar{{Timestamp: time.Unix(0, 0).UTC(), Close: 1}}}, nil
}

func (s *stubStock) GetDividends(context.Context, string) ([]domain.Dividend, error) {
	return []domain.Dividend{{Date: time.Unix(0, 0).UTC(), Amount: 0.24}}, nil
}

func (s *stubStock) GetSplits(context.Context, string) ([]domain.Split, error) {
	return []domain.Split{}, nil
}

func (s *stubStock) GetCorporateActions(context.Context, string) ([]domain.CorporateAction, error) {
	return []domain.CorporateAction{}, nil
}

func (s *stubStock) GetNews(context.Context, string, int) ([]domain.NewsItem, error) {
	return []domain.NewsItem{}, nil
}

func (s *stubStock) GetFinancialSummary(context.Context, string) (*domain.FinancialOverview, error) {
	return &domain.FinancialOverview{}, nil
}

func (s *stubStock) GetRiskMetrics(context.Context, string) (*domain.RiskMetrics, error) {
	return &domain.RiskMetrics{}, nil
}

func (s *stubStock) GetDividendSummary(context.Context, string) (*domain.DividendSummary, error) {
	return &domain.DividendSummary{}, nil
}

func (s *stubStock) GetPriceTarget(context.Context, string) (*domain.PriceTarget, error) {
	return &domain.PriceTarget{}, nil
}

func (s *stubStock) GetQuickTechnicalIndicators(context.Context, string) (*domain.QuickTechnicalIndicators, error) {
	return &domain.QuickTechnicalIndicators{}, nil
}

type stubMarkets struct{}

func (stubMarkets) GetSummary(_ context.Context, market string) (*domain.MarketSummary, error) {
	return &domain.MarketSummary{Market: domain.MarketType(market), Summary: map[string]domain.MarketSummaryEntry{}}, nil
}

func (stubMarkets) GetStatus(_ context.Context, market string) (*domain.MarketStatus, error) {
	return &domain.MarketStatus{Market: domain.MarketType(market), Status: "closed"}, nil
}

// stubSectorRepo backs a real sectors service so the tools exercise key
// normalization and ticker resolution.
type stubSectorRepo struct {
	lastKey string
}

func (s *stubSectorRepo) GetSectorKey(_ context.Context, symbol string) (string, error) {
	if symbol == "SPY" {
		return "", nil
	}
	return "technology", nil
}

func (s *stubSectorRepo) GetSectorOverview(_ context.Context, sector string) (*domain.SectorOverview, error) {
	s.lastKey = sector
	count := int64(815)
	return &domain.SectorOverview{Key: sector, Name: "Technology", CompaniesCount: &count}, nil
}

func (s *stubSectorRepo) GetSectorTopCompanies(_ context.Context, sector string) ([]domain.SectorCompany, error) {
	s.lastKey = sector
	return []domain.SectorCompany{{Symbol: "NVDA", Name: "NVIDIA Corporation"}}, nil
}

func (s *stubSectorRepo) GetSectorTopETFs(_ context.Context, sector string) (map[string]string, error) {
	s.lastKey = sector
	return map[string]string{"XLK": "Technology Select Sector SPDR"}, nil
}

func (s *stubSectorRepo) GetSectorTopMutualFunds(_ context.Context, sector string) (map[string]string, error) {
	s.lastKey = sector
	return map[string]string{}, nil
}

func (s *stubSectorRepo) GetSectorResearchReports(_ context.Context, sector string) ([]domain.ResearchReport, error) {
	s.lastKey = sector
	return []domain.ResearchReport{}, nil
}

func (s *stubSectorRepo) GetIndustryOverview(_ context.Context, industry string) (*domain.SectorOverview, error) {
	s.lastKey = industry
	return &domain.SectorOverview{Key: industry}, nil
}

func (s *stubSectorRepo) GetIndustryTopCompanies(_ context.Context, industry string) ([]domain.IndustryCompany, error) {
	s.lastKey = industry
	return []domain.IndustryCompany{}, nil
}

func (s *stubSectorRepo) GetIndustryTopGrowthCompanies(_ context.Context, industry string) ([]domain.IndustryCompany, error) {
	s.lastKey = industry
	return []domain.IndustryCompany{}, nil
}

func (s *stubSectorRepo) GetIndustryTopPerformingCompanies(_ context.Context, industry string) ([]domain.IndustryCompany, error) {
	s.lastKey = industry
	return []domain.IndustryCompany{}, nil
}

type testStubs struct {
	technical *stubTechnical
	options   *stubOptions
	stock     *stubStock
	sectors   *stubSectorRepo
}

func testServer() (*sdkmcp.Server, *testStubs) {
	stubs := &testStubs{
		technical: &stubTechnical{indicators: &analytics.TechnicalIndicators{CurrentPrice: 104}},
		options:   &stubOptions{},
		stock: &stubStock{quotes: map[string]domain.Quote{
			"AAPL":  {RegularMarketPrice: 190.5},
			"^GSPC": {RegularMarketPrice: 5000},
		}},
		sectors: &stubSectorRepo{},
	}

	srv := NewServer(nil, Services{
		Technical: stubs.technical,
		Options:   stubs.options,
		Stock:     stubs.stock,
		Markets:   stubMarkets{},
		Sectors:   service.NewSectorsService(noop.NewTracerProvider().Tracer("test"), stubs.sectors),
	}, ServerConfig{RequestTimeout: time.Second})
	return srv, stubs
}

func connectInMemory(ctx context.Context, srv *sdkmcp.Server) (*sdkmcp.ClientSession, context.CancelFunc, error) {
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = srv.Run(runCtx, serverTransport) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "mcp-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return session, cancel, nil
}

type authRoundTripper struct {
	token string
	base  http.RoundTripper
}

func (t *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.token != "" {
		clone.Header.Set("Authorization", "Bearer "+t.token)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

func decodeResourceJSON(result *sdkmcp.ReadResourceResult, out any) error {
	if len(result.Contents) == 0 {
		return nil
	}
	return json.Unmarshal([]byte(result.Contents[0].Text), out)
}

// decodeToolJSON reads the JSON text content of a tool result.
func decodeToolJSON(result *sdkmcp.CallToolResult, out any) error {
	for _, c := range result.Content {
		if text, ok := c.(*sdkmcp.TextContent); ok {
			return json.Unmarshal([]byte(text.Text), out)
		}
	}
	return nil
}
