package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"openmarkets/internal/domain"
)

type stubFundsRepo struct {
	top        *domain.FundTopHoldings
	lastSymbol string
}

func (s *stubFundsRepo) GetProfile(_ context.Context, symbol string) (*domain.FundProfile, error) {
	s.lastSymbol = symbol
	return &domain.FundProfile{}, nil
}

func (s *stubFundsRepo) GetTopHoldings(_ context.Context, symbol string) (*domain.FundTopHoldings, error) {
	s.lastSymbol = symbol
	return s.top, nil
}

func (s *stubFundsRepo) GetOverview(_ context.Context, symbol string) (*domain.FundOverview, error) {
	s.lastSymbol = symbol
	return &domain.FundOverview{Symbol: symbol, LegalType: "Exchange Traded Fund"}, nil
}

func (s *stubFundsRepo) GetOperations(_ context.Context, symbol string) (*domain.FundOperations, error) {
	s.lastSymbol = symbol
	return &domain.FundOperations{}, nil
}

func (s *stubFundsRepo) GetEquityHoldings(_ context.Context, symbol string) (*domain.FundEquityHoldings, error) {
	s.lastSymbol = symbol
	return &domain.FundEquityHoldings{}, nil
}

func (s *stubFundsRepo) GetBondHoldings(_ context.Context, symbol string) (*domain.FundBondHoldings, error) {
	s.lastSymbol = symbol
	return &domain.FundBondHoldings{}, nil
}

type stubMarketRepo struct {
	lastMarket domain.MarketType
	err        error
}

func (s *stubMarketRepo) GetSummary(_ context.Context, m domain.MarketType) (*domain.MarketSummary, error) {
	s.lastMarket = m
	if s.err != nil {
		return nil, s.err
	}
	return &domain.MarketSummary{Market: m, Summary: map[string]domain.MarketSummaryEntry{}}, nil
}

func (s *stubMarketRepo) GetStatus(_ context.Context, m domain.MarketType) (*domain.MarketStatus, error) {
	s.lastMarket = m
	if s.err != nil {
		return nil, s.err
	}
	return &domain.MarketStatus{Market: m, Status: "open"}, nil
}

type stubHoldingsRepo struct {
	err error
}

func (s *stubHoldingsRepo) GetMajorHolders(context.Context, string) (*domain.MajorHolders, error) {
	return &domain.MajorHolders{}, s.err
}

func (s *stubHoldingsRepo) GetInstitutionalHolders(context.Context, string) ([]domain.Holding, error) {
	return []domain.Holding{{Holder: "Vanguard"}}, s.err
}

func (s *stubHoldingsRepo) GetMutualFundHolders(context.Context, string) ([]domain.Holding, error) {
	return []domain.Holding{}, s.err
}

func (s *stubHoldingsRepo) GetInsiderTransactions(context.Context, string) ([]domain.InsiderTransaction, error) {
	return []domain.InsiderTransaction{}, s.err
}

func (s *stubHoldingsRepo) GetInsiderRoster(context.Context, string) ([]domain.InsiderRosterHolder, error) {
	return []domain.InsiderRosterHolder{}, s.err
}

func TestFundsServiceViews(t *testing.T) {
	repo := &stubFundsRepo{top: &domain.FundTopHoldings{
		SectorWeightings: map[string]float64{"technology": 0.31},
		AssetAllocation:  domain.FundAssetAllocation{Stock: floatPtr(0.99)},
	}}
	svc := NewFundsService(testTracer(), repo)

	sectors, err := svc.GetSectorWeightings(context.Background(), "spy")
	if err != nil || sectors["technology"] != 0.31 {
		t.Fatalf("sectors = %v, %v", sectors, err)
	}
	if repo.lastSymbol != "SPY" {
		t.Fatalf("symbol = %s", repo.lastSymbol)
	}
	alloc, err := svc.GetAssetAllocation(context.Background(), "SPY")
	if err != nil || alloc.Stock == nil || *alloc.Stock != 0.99 {
		t.Fatalf("allocation = %+v, %v", alloc, err)
	}

	repo.top = &domain.FundTopHoldings{}
	sectors, err = svc.GetSectorWeightings(context.Background(), "SPY")
	if err != nil || sectors == nil {
		t.Fatalf("expected empty non-nil map, got %v, %v", sectors, err)
	}

	overview, err := svc.GetOverview(context.Background(), " bnd ")
	if err != nil || overview.Symbol != "BND" || repo.lastSymbol != "BND" {
		t.Fatalf("overview = %+v, %v", overview, err)
	}
	if _, err := svc.GetBondHoldings(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestHoldingsServiceWrapsErrors(t *testing.T) {
	ok := NewHoldingsService(testTracer(), &stubHoldingsRepo{})
	got, err := ok.GetInstitutionalHolders(context.Background(), "AAPL")
	if err != nil || len(got) != 1 {
		t.Fatalf("holders = %v, %v", got, err)
	}

	upstream := errors.New("upstream")
	failing := NewHoldingsService(testTracer(), &stubHoldingsRepo{err: upstream})
	_, err = failing.GetMajorHolders(context.Background(), "AAPL")
	if !errors.Is(err, upstream) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if !strings.Contains(err.Error(), "AAPL") {
		t.Fatalf("error should name the symbol: %v", err)
	}

	if _, err := ok.GetInsiderRoster(context.Background(), "not a symbol"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestMarketsService(t *testing.T) {
	repo := &stubMarketRepo{}
	svc := NewMarketsService(testTracer(), repo)

	if _, err := svc.GetSummary(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastMarket != domain.MarketUS {
		t.Fatalf("default market = %s", repo.lastMarket)
	}

	status, err := svc.GetStatus(context.Background(), "asia")
	if err != nil || status.Market != domain.MarketAsia {
		t.Fatalf("status = %+v, %v", status, err)
	}

	if _, err := svc.GetStatus(context.Background(), "mars"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid market, got %v", err)
	}
}
