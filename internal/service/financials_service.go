package service

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

type FinancialsRepository interface {
	GetIncomeStatement(ctx context.Context, symbol string) ([]domain.StatementEntry, error)
	GetBalanceSheet(ctx context.Context, symbol string) ([]domain.StatementEntry, error)
	GetCashFlow(ctx context.Context, symbol string) ([]domain.StatementEntry, error)
	GetCalendar(ctx context.Context, symbol string) (*domain.FinancialCalendar, error)
	GetEarningsHistory(ctx context.Context, symbol string) ([]domain.EarningsHistoryEntry, error)
	GetSECFilings(ctx context.Context, symbol string) ([]domain.SECFiling, error)
	GetTTMIncomeStatement(ctx context.Context, symbol string) ([]domain.StatementEntry, error)
	GetTTMCashFlow(ctx context.Context, symbol string) ([]domain.StatementEntry, error)
}

// FinancialsService serves annual and trailing twelve month statements,
// newest period first.
type FinancialsService struct {
	tracer trace.Tracer
	repo   FinancialsRepository
}

func NewFinancialsService(tracer trace.Tracer, repo FinancialsRepository) *FinancialsService {
	return &FinancialsService{tracer: tracer, repo: repo}
}

func (s *FinancialsService) GetIncomeStatement(ctx context.Context, symbol string) ([]domain.StatementEntry, error) {
	return bySymbol(ctx, s.tracer, "financials-service.get-income-statement", symbol, s.repo.GetIncomeStatement)
}

func (s *FinancialsService) GetBalanceSheet(ctx context.Context, symbol string) ([]domain.StatementEntry, error) {
	return bySymbol(ctx, s.tracer, "financials-service.get-balance-sheet", symbol, s.repo.GetBalanceSheet)
}

func (s *FinancialsService) GetCashFlow(ctx context.Context, symbol string) ([]domain.StatementEntry, error) {
	return bySymbol(ctx, s.tracer, "financials-service.get-cash-flow", symbol, s.repo.GetCashFlow)
}

func (s *FinancialsService) GetCalendar(ctx context.Context, symbol string) (*domain.FinancialCalendar, error) {
	return bySymbol(ctx, s.tracer, "financials-service.get-calendar", symbol, s.repo.GetCalendar)
}

func (s *FinancialsService) GetEarningsHistory(ctx context.Context, symbol string) ([]domain.EarningsHistoryEntry, error) {
	return bySymbol(ctx, s.tracer, "financials-service.get-earnings-history", symbol, s.repo.GetEarningsHistory)
}

func (s *FinancialsService) GetSECFilings(ctx context.Context, symbol string) ([]domain.SECFiling, error) {
	return bySymbol(ctx, s.tracer, "financials-service.get-sec-filings", symbol, s.repo.GetSECFilings)
}

func (s *FinancialsService) GetTTMIncomeStatement(ctx context.Context, symbol string) ([]domain.StatementEntry, error) {
	return bySymbol(ctx, s.tracer, "financials-service.get-ttm-income-statement", symbol, s.repo.GetTTMIncomeStatement)
}

func (s *FinancialsService) GetTTMCashFlow(ctx context.Context, symbol string) ([]domain.StatementEntry, error) {
	return bySymbol(ctx, s.tracer, "financials-service.get-ttm-cash-flow", symbol, s.repo.GetTTMCashFlow)
}
