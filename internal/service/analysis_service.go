package service

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

type AnalysisRepository interface {
	GetPriceTargets(ctx context.Context, symbol string) (*domain.AnalystPriceTargets, error)
	GetRecommendations(ctx context.Context, symbol string) ([]domain.AnalystRecommendation, error)
	GetUpgradesDowngrades(ctx context.Context, symbol string) ([]domain.RecommendationChange, error)
	GetEarningsEstimates(ctx context.Context, symbol string) ([]domain.EarningsEstimate, error)
	GetRevenueEstimates(ctx context.Context, symbol string) ([]domain.RevenueEstimate, error)
	GetEPSTrend(ctx context.Context, symbol string) ([]domain.EPSTrend, error)
	GetGrowthEstimates(ctx context.Context, symbol string) ([]domain.GrowthEstimate, error)
}

// AnalysisService serves analyst coverage: targets, ratings and estimates.
type AnalysisService struct {
	tracer trace.Tracer
	repo   AnalysisRepository
}

func NewAnalysisService(tracer trace.Tracer, repo AnalysisRepository) *AnalysisService {
	return &AnalysisService{tracer: tracer, repo: repo}
}

func (s *AnalysisService) GetPriceTargets(ctx context.Context, symbol string) (*domain.AnalystPriceTargets, error) {
	return bySymbol(ctx, s.tracer, "analysis-service.get-price-targets", symbol, s.repo.GetPriceTargets)
}

func (s *AnalysisService) GetRecommendations(ctx context.Context, symbol string) ([]domain.AnalystRecommendation, error) {
	return bySymbol(ctx, s.tracer, "analysis-service.get-recommendations", symbol, s.repo.GetRecommendations)
}

func (s *AnalysisService) GetUpgradesDowngrades(ctx context.Context, symbol string) ([]domain.RecommendationChange, error) {
	return bySymbol(ctx, s.tracer, "analysis-service.get-upgrades-downgrades", symbol, s.repo.GetUpgradesDowngrades)
}

func (s *AnalysisService) GetEarningsEstimates(ctx context.Context, symbol string) ([]domain.EarningsEstimate, error) {
	return bySymbol(ctx, s.tracer, "analysis-service.get-earnings-estimates", symbol, s.repo.GetEarningsEstimates)
}

func (s *AnalysisService) GetRevenueEstimates(ctx context.Context, symbol string) ([]domain.RevenueEstimate, error) {
	return bySymbol(ctx, s.tracer, "analysis-service.get-revenue-estimates", symbol, s.repo.GetRevenueEstimates)
}

func (s *AnalysisService) GetEPSTrend(ctx context.Context, symbol string) ([]domain.EPSTrend, error) {
	return bySymbol(ctx, s.tracer, "analysis-service.get-eps-trend", symbol, s.repo.GetEPSTrend)
}

func (s *AnalysisService) GetGrowthEstimates(ctx context.Context, symbol string) ([]domain.GrowthEstimate, error) {
	return bySymbol(ctx, s.tracer, "analysis-service.get-growth-estimates", symbol, s.repo.GetGrowthEstimates)
}
