package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

type MarketRepository interface {
	GetSummary(ctx context.Context, market domain.MarketType) (*domain.MarketSummary, error)
	GetStatus(ctx context.Context, market domain.MarketType) (*domain.MarketStatus, error)
}

type MarketsService struct {
	tracer trace.Tracer
	repo   MarketRepository
}

func NewMarketsService(tracer trace.Tracer, repo MarketRepository) *MarketsService {
	return &MarketsService{tracer: tracer, repo: repo}
}

// GetSummary defaults to the US market when market is empty.
func (s *MarketsService) GetSummary(ctx context.Context, market string) (*domain.MarketSummary, error) {
	ctx, span := s.tracer.Start(ctx, "markets-service.get-summary")
	defer span.End()

	m, err := NormalizeMarket(market)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("market", string(m)))

	out, err := s.repo.GetSummary(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("get market summary for %s: %w", m, err)
	}
	return out, nil
}

func (s *MarketsService) GetStatus(ctx context.Context, market string) (*domain.MarketStatus, error) {
	ctx, span := s.tracer.Start(ctx, "markets-service.get-status")
	defer span.End()

	m, err := NormalizeMarket(market)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("market", string(m)))

	out, err := s.repo.GetStatus(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("get market status for %s: %w", m, err)
	}
	return out, nil
}
