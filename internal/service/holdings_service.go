package service

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

type HoldingsRepository interface {
	GetMajorHolders(ctx context.Context, symbol string) (*domain.MajorHolders, error)
	GetInstitutionalHolders(ctx context.Context, symbol string) ([]domain.Holding, error)
	GetMutualFundHolders(ctx context.Context, symbol string) ([]domain.Holding, error)
	GetInsiderTransactions(ctx context.Context, symbol string) ([]domain.InsiderTransaction, error)
	GetInsiderRoster(ctx context.Context, symbol string) ([]domain.InsiderRosterHolder, error)
}

type HoldingsService struct {
	tracer trace.Tracer
	repo   HoldingsRepository
}

func NewHoldingsService(tracer trace.Tracer, repo HoldingsRepository) *HoldingsService {
	return &HoldingsService{tracer: tracer, repo: repo}
}

func (s *HoldingsService) GetMajorHolders(ctx context.Context, symbol string) (*domain.MajorHolders, error) {
	return bySymbol(ctx, s.tracer, "holdings-service.get-major-holders", symbol, s.repo.GetMajorHolders)
}

func (s *HoldingsService) GetInstitutionalHolders(ctx context.Context, symbol string) ([]domain.Holding, error) {
	return bySymbol(ctx, s.tracer, "holdings-service.get-institutional-holders", symbol, s.repo.GetInstitutionalHolders)
}

func (s *HoldingsService) GetMutualFundHolders(ctx context.Context, symbol string) ([]domain.Holding, error) {
	return bySymbol(ctx, s.tracer, "holdings-service.get-mutual-fund-holders", symbol, s.repo.GetMutualFundHolders)
}

func (s *HoldingsService) GetInsiderTransactions(ctx context.Context, symbol string) ([]domain.InsiderTransaction, error) {
	return bySymbol(ctx, s.tracer, "holdings-service.get-insider-transactions", symbol, s.repo.GetInsiderTransactions)
}

func (s *HoldingsService) GetInsiderRoster(ctx context.Context, symbol string) ([]domain.InsiderRosterHolder, error) {
	return bySymbol(ctx, s.tracer, "holdings-service.get-insider-roster", symbol, s.repo.GetInsiderRoster)
}
