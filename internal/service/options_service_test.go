package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"openmarkets/internal/analytics"
	"openmarkets/internal/domain"
)

func testChain() *domain.OptionsChain {
	exp := time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC)
	vol := int64(10)
	return &domain.OptionsChain{
		Symbol:      "AAPL",
		Expiration:  exp,
		Expirations: []time.Time{exp},
		Calls: []domain.OptionContract{
			{Strike: 91, ImpliedVolatility: 0.30, Volume: &vol, OpenInterest: 100},
			{Strike: 100, ImpliedVolatility: 0.25, Volume: &vol, OpenInterest: 100},
			{Strike: 120, ImpliedVolatility: 0.28, OpenInterest: 50},
		},
		Puts: []domain.OptionContract{
			{Strike: 95, ImpliedVolatility: 0.32, Volume: &vol, OpenInterest: 80},
			{Strike: 100, ImpliedVolatility: 0.27, Volume: &vol, OpenInterest: 40},
		},
		UnderlyingLast: floatPtr(101),
	}
}

func TestOptionsServiceExpirationDates(t *testing.T) {
	chains := &stubChainRepo{expirations: []time.Time{
		time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC),
	}}
	svc := NewOptionsService(testTracer(), chains, nil)

	got, err := svc.GetExpirationDates(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "2025-12-19" || got[1] != "2026-01-16" {
		t.Fatalf("unexpected dates: %v", got)
	}
}

func TestOptionsServicePassesExpiration(t *testing.T) {
	chains := &stubChainRepo{chain: testChain()}
	svc := NewOptionsService(testTracer(), chains, nil)

	calls, err := svc.GetCallOptions(context.Background(), "AAPL", "2025-12-19")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 3 {
		t.Fatalf("calls = %d", len(calls))
	}
	if chains.lastExpiration == nil || domain.ExpirationDate(*chains.lastExpiration) != "2025-12-19" {
		t.Fatalf("expiration not forwarded: %v", chains.lastExpiration)
	}

	if _, err := svc.GetPutOptions(context.Background(), "AAPL", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chains.lastExpiration != nil {
		t.Fatal("empty expiration should select the nearest")
	}

	if _, err := svc.GetOptionChain(context.Background(), "AAPL", "19-12-2025"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid expiration, got %v", err)
	}
}

func TestOptionsServiceChainWithoutOptionsHasEmptyLists(t *testing.T) {
	svc := NewOptionsService(testTracer(), &stubChainRepo{}, nil)

	chain, err := svc.GetOptionChain(context.Background(), "NOOPT", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chain.Calls == nil || chain.Puts == nil {
		t.Fatal("expected non-nil contract lists")
	}
}

func TestOptionsServiceVolumeAnalysis(t *testing.T) {
	svc := NewOptionsService(testTracer(), &stubChainRepo{chain: testChain()}, nil)

	got, err := svc.GetVolumeAnalysis(context.Background(), "AAPL", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalCallVolume != 20 || got.TotalPutVolume != 20 {
		t.Fatalf("unexpected volumes: %+v", got)
	}
	if got.PutCallRatioVolume == nil || *got.PutCallRatioVolume != 1 {
		t.Fatalf("unexpected ratio: %v", got.PutCallRatioVolume)
	}

	empty := NewOptionsService(testTracer(), &stubChainRepo{}, nil)
	if _, err := empty.GetVolumeAnalysis(context.Background(), "NOOPT", ""); !errors.Is(err, analytics.ErrNoOptionsData) {
		t.Fatalf("expected no options data, got %v", err)
	}
}

func TestOptionsServiceMoneyness(t *testing.T) {
	prices := &stubCurrentPrice{price: floatPtr(100)}
	svc := NewOptionsService(testTracer(), &stubChainRepo{chain: testChain()}, prices)

	got, err := svc.GetByMoneyness(context.Background(), "AAPL", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CurrentPrice != 100 || got.MoneynessRange != analytics.DefaultMoneynessRange {
		t.Fatalf("unexpected result: %+v", got)
	}
	if len(got.Calls) != 2 || len(got.Puts) != 2 {
		t.Fatalf("calls=%d puts=%d", len(got.Calls), len(got.Puts))
	}
}

func TestOptionsServiceMoneynessFallsBackToUnderlying(t *testing.T) {
	svc := NewOptionsService(testTracer(), &stubChainRepo{chain: testChain()}, &stubCurrentPrice{})

	got, err := svc.GetByMoneyness(context.Background(), "AAPL", "", 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CurrentPrice != 101 {
		t.Fatalf("expected underlying fallback, got %v", got.CurrentPrice)
	}
}

func TestOptionsServiceMoneynessWithoutPrice(t *testing.T) {
	chain := testChain()
	chain.UnderlyingLast = nil
	svc := NewOptionsService(testTracer(), &stubChainRepo{chain: chain}, &stubCurrentPrice{})

	_, err := svc.GetByMoneyness(context.Background(), "AAPL", "", 0.1)
	if !errors.Is(err, analytics.ErrCurrentPriceMissing) {
		t.Fatalf("expected current price missing, got %v", err)
	}
}

func TestOptionsServiceMoneynessRange(t *testing.T) {
	svc := NewOptionsService(testTracer(), &stubChainRepo{chain: testChain()}, nil)

	for _, r := range []float64{-0.1, 1.5} {
		if _, err := svc.GetByMoneyness(context.Background(), "AAPL", "", r); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("range %v: expected invalid input, got %v", r, err)
		}
	}
}

func TestOptionsServiceSkew(t *testing.T) {
	svc := NewOptionsService(testTracer(), &stubChainRepo{chain: testChain()}, &stubCurrentPrice{price: floatPtr(99)})

	got, err := svc.GetSkew(context.Background(), "AAPL", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ReferencePrice != 99 {
		t.Fatalf("reference = %v", got.ReferencePrice)
	}
	if got.CallSkew.ATMStrike == nil || *got.CallSkew.ATMStrike != 100 {
		t.Fatalf("unexpected call atm: %v", got.CallSkew.ATMStrike)
	}
	if got.ExpirationDate != "2025-12-19" {
		t.Fatalf("expiration = %s", got.ExpirationDate)
	}
}

func TestOptionsServiceSkewFailureKinds(t *testing.T) {
	prices := &stubCurrentPrice{price: floatPtr(100)}

	noExp := NewOptionsService(testTracer(), &stubChainRepo{}, prices)
	if _, err := noExp.GetSkew(context.Background(), "AAPL", ""); !errors.Is(err, analytics.ErrNoExpirations) {
		t.Fatalf("expected no expirations, got %v", err)
	}

	chain := testChain()
	chain.Calls, chain.Puts = nil, nil
	empty := NewOptionsService(testTracer(), &stubChainRepo{chain: chain}, prices)
	if _, err := empty.GetSkew(context.Background(), "AAPL", ""); !errors.Is(err, analytics.ErrEmptyChain) {
		t.Fatalf("expected empty chain, got %v", err)
	}

	chain = testChain()
	chain.MissingColumns = []string{"impliedVolatility"}
	missing := NewOptionsService(testTracer(), &stubChainRepo{chain: chain}, prices)
	if _, err := missing.GetSkew(context.Background(), "AAPL", ""); !errors.Is(err, analytics.ErrMissingColumns) {
		t.Fatalf("expected missing columns, got %v", err)
	}
}

func TestOptionsServiceUpstreamError(t *testing.T) {
	upstream := errors.New("timeout")
	svc := NewOptionsService(testTracer(), &stubChainRepo{err: upstream}, nil)

	if _, err := svc.GetSkew(context.Background(), "AAPL", ""); !errors.Is(err, upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
