package service

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

type FundsRepository interface {
	GetProfile(ctx context.Context, symbol string) (*domain.FundProfile, error)
	GetTopHoldings(ctx context.Context, symbol string) (*domain.FundTopHoldings, error)
	GetOverview(ctx context.Context, symbol string) (*domain.FundOverview, error)
	GetOperations(ctx context.Context, symbol string) (*domain.FundOperations, error)
	GetEquityHoldings(ctx context.Context, symbol string) (*domain.FundEquityHoldings, error)
	GetBondHoldings(ctx context.Context, symbol string) (*domain.FundBondHoldings, error)
}

type FundsService struct {
	tracer trace.Tracer
	repo   FundsRepository
}

func NewFundsService(tracer trace.Tracer, repo FundsRepository) *FundsService {
	return &FundsService{tracer: tracer, repo: repo}
}

func (s *FundsService) GetProfile(ctx context.Context, symbol string) (*domain.FundProfile, error) {
	return bySymbol(ctx, s.tracer, "funds-service.get-profile", symbol, s.repo.GetProfile)
}

func (s *FundsService) GetTopHoldings(ctx context.Context, symbol string) (*domain.FundTopHoldings, error) {
	return bySymbol(ctx, s.tracer, "funds-service.get-top-holdings", symbol, s.repo.GetTopHoldings)
}

func (s *FundsService) GetSectorWeightings(ctx context.Context, symbol string) (map[string]float64, error) {
	top, err := bySymbol(ctx, s.tracer, "funds-service.get-sector-weightings", symbol, s.repo.GetTopHoldings)
	if err != nil {
		return nil, err
	}
	if top.SectorWeightings == nil {
		return map[string]float64{}, nil
	}
	return top.SectorWeightings, nil
}

func (s *FundsService) GetAssetAllocation(ctx context.Context, symbol string) (*domain.FundAssetAllocation, error) {
	top, err := bySymbol(ctx, s.tracer, "funds-service.get-asset-allocation", symbol, s.repo.GetTopHoldings)
	if err != nil {
		return nil, err
	}
	return &top.AssetAllocation, nil
}

func (s *FundsService) GetOverview(ctx context.Context, symbol string) (*domain.FundOverview, error) {
	return bySymbol(ctx, s.tracer, "funds-service.get-overview", symbol, s.repo.GetOverview)
}

func (s *FundsService) GetOperations(ctx context.Context, symbol string) (*domain.FundOperations, error) {
	return bySymbol(ctx, s.tracer, "funds-service.get-operations", symbol, s.repo.GetOperations)
}

func (s *FundsService) GetEquityHoldings(ctx context.Context, symbol string) (*domain.FundEquityHoldings, error) {
	return bySymbol(ctx, s.tracer, "funds-service.get-equity-holdings", symbol, s.repo.GetEquityHoldings)
}

func (s *FundsService) GetBondHoldings(ctx context.Context, symbol string) (*domain.FundBondHoldings, error) {
	return bySymbol(ctx, s.tracer, "funds-service.get-bond-holdings", symbol, s.repo.GetBondHoldings)
}
