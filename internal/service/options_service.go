package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/analytics"
	"openmarkets/internal/domain"
)

type OptionsChainRepository interface {
	GetExpirations(ctx context.Context, symbol string) ([]time.Time, error)
	GetChain(ctx context.Context, symbol string, expiration *time.Time) (*domain.OptionsChain, error)
}

type CurrentPriceRepository interface {
	GetCurrentPrice(ctx context.Context, symbol string) (*float64, error)
}

type OptionsService struct {
	tracer trace.Tracer
	chains OptionsChainRepository
	prices CurrentPriceRepository
}

func NewOptionsService(tracer trace.Tracer, chains OptionsChainRepository, prices CurrentPriceRepository) *OptionsService {
	return &OptionsService{tracer: tracer, chains: chains, prices: prices}
}

func (s *OptionsService) GetExpirationDates(ctx context.Context, symbol string) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "options-service.get-expiration-dates")
	defer span.End()

	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	dates, err := s.chains.GetExpirations(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("get expirations for %s: %w", symbol, err)
	}
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, domain.ExpirationDate(d))
	}
	return out, nil
}

func (s *OptionsService) chain(ctx context.Context, symbol, expiration string) (string, *domain.OptionsChain, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return "", nil, err
	}
	exp, err := ParseExpiration(expiration)
	if err != nil {
		return "", nil, err
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("symbol", symbol))

	chain, err := s.chains.GetChain(ctx, symbol, exp)
	if err != nil {
		return "", nil, fmt.Errorf("get option chain for %s: %w", symbol, err)
	}
	if chain.Calls == nil {
		chain.Calls = []domain.OptionContract{}
	}
	if chain.Puts == nil {
		chain.Puts = []domain.OptionContract{}
	}
	return symbol, chain, nil
}

func (s *OptionsService) GetOptionChain(ctx context.Context, symbol, expiration string) (*domain.OptionsChain, error) {
	ctx, span := s.tracer.Start(ctx, "options-service.get-option-chain")
	defer span.End()

	_, chain, err := s.chain(ctx, symbol, expiration)
	return chain, err
}

func (s *OptionsService) GetCallOptions(ctx context.Context, symbol, expiration string) ([]domain.OptionContract, error) {
	ctx, span := s.tracer.Start(ctx, "options-service.get-call-options")
	defer span.End()

	_, chain, err := s.chain(ctx, symbol, expiration)
	if err != nil {
		return nil, err
	}
	return chain.Calls, nil
}

func (s *OptionsService) GetPutOptions(ctx context.Context, symbol, expiration string) ([]domain.OptionContract, error) {
	ctx, span := s.tracer.Start(ctx, "options-service.get-put-options")
	defer span.End()

	_, chain, err := s.chain(ctx, symbol, expiration)
	if err != nil {
		return nil, err
	}
	return chain.Puts, nil
}

func (s *OptionsService) GetVolumeAnalysis(ctx context.Context, symbol, expiration string) (*analytics.VolumeAnalysis, error) {
	ctx, span := s.tracer.Start(ctx, "options-service.get-volume-analysis")
	defer span.End()

	_, chain, err := s.chain(ctx, symbol, expiration)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeVolumeAnalysis(chain)
}

// currentPrice prefers the live quote and falls back to the underlying price
// carried by the chain payload.
func (s *OptionsService) currentPrice(ctx context.Context, symbol string, chain *domain.OptionsChain) (*float64, error) {
	if s.prices != nil {
		price, err := s.prices.GetCurrentPrice(ctx, symbol)
		if err != nil {
			return nil, fmt.Errorf("get current price for %s: %w", symbol, err)
		}
		if price != nil {
			return price, nil
		}
	}
	if chain.UnderlyingLast != nil && *chain.UnderlyingLast > 0 {
		return chain.UnderlyingLast, nil
	}
	return nil, nil
}

// GetByMoneyness keeps contracts whose strike lies within moneynessRange of
// the current price. A zero range uses the default band.
func (s *OptionsService) GetByMoneyness(ctx context.Context, symbol, expiration string, moneynessRange float64) (*analytics.MoneynessResult, error) {
	ctx, span := s.tracer.Start(ctx, "options-service.get-by-moneyness")
	defer span.End()

	if moneynessRange == 0 {
		moneynessRange = analytics.DefaultMoneynessRange
	}
	if moneynessRange < 0 || moneynessRange > 1 {
		return nil, invalid("moneyness_range must be in (0, 1]: %v", moneynessRange)
	}
	span.SetAttributes(attribute.Float64("moneyness_range", moneynessRange))

	symbol, chain, err := s.chain(ctx, symbol, expiration)
	if err != nil {
		return nil, err
	}
	price, err := s.currentPrice(ctx, symbol, chain)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeByMoneyness(chain, price, moneynessRange)
}

// GetSkew measures implied volatility across strikes relative to the strike
// nearest the current price.
func (s *OptionsService) GetSkew(ctx context.Context, symbol, expiration string) (*analytics.SkewResult, error) {
	ctx, span := s.tracer.Start(ctx, "options-service.get-skew")
	defer span.End()

	symbol, chain, err := s.chain(ctx, symbol, expiration)
	if err != nil {
		return nil, err
	}
	if !chain.HasExpirations() || chain.IsEmpty() {
		return analytics.ComputeSkew(chain, 0)
	}
	price, err := s.currentPrice(ctx, symbol, chain)
	if err != nil {
		return nil, err
	}
	var reference float64
	if price != nil {
		reference = *price
	}
	return analytics.ComputeSkew(chain, reference)
}
