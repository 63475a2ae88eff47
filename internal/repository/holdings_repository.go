package repository

import (
	"context"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

type HoldingsRepository struct {
	source Source
	tracer trace.Tracer
}

func NewHoldingsRepository(source Source, tracer trace.Tracer) *HoldingsRepository {
	return &HoldingsRepository{source: source, tracer: tracer}
}

func (r *HoldingsRepository) GetMajorHolders(ctx context.Context, symbol string) (*domain.MajorHolders, error) {
	ctx, span := r.tracer.Start(ctx, "holdings-repo.get-major-holders")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, "majorHoldersBreakdown")
	if err != nil {
		return nil, err
	}
	m := res.Get("majorHoldersBreakdown")
	return &domain.MajorHolders{
		InsidersPercentHeld:          optFloat(m.Get("insidersPercentHeld")),
		InstitutionsPercentHeld:      optFloat(m.Get("institutionsPercentHeld")),
		InstitutionsFloatPercentHeld: optFloat(m.Get("institutionsFloatPercentHeld")),
		InstitutionsCount:            optInt(m.Get("institutionsCount")),
	}, nil
}

func (r *HoldingsRepository) GetInstitutionalHolders(ctx context.Context, symbol string) ([]domain.Holding, error) {
	ctx, span := r.tracer.Start(ctx, "holdings-repo.get-institutional-holders")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, "institutionOwnership")
	if err != nil {
		return nil, err
	}
	return holdings(res.Get("institutionOwnership.ownershipList")), nil
}

func (r *HoldingsRepository) GetMutualFundHolders(ctx context.Context, symbol string) ([]domain.Holding, error) {
	ctx, span := r.tracer.Start(ctx, "holdings-repo.get-mutual-fund-holders")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, "fundOwnership")
	if err != nil {
		return nil, err
	}
	return holdings(res.Get("fundOwnership.ownershipList")), nil
}

func (r *HoldingsRepository) GetInsiderTransactions(ctx context.Context, symbol string) ([]domain.InsiderTransaction, error) {
	ctx, span := r.tracer.Start(ctx, "holdings-repo.get-insider-transactions")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, "insiderTransactions")
	if err != nil {
		return nil, err
	}
	rows := res.Get("insiderTransactions.transactions").Array()
	out := make([]domain.InsiderTransaction, 0, len(rows))
	for _, t := range rows {
		out = append(out, domain.InsiderTransaction{
			Insider:     t.Get("filerName").String(),
			Position:    t.Get("filerRelation").String(),
			Transaction: t.Get("transactionText").String(),
			StartDate:   optTime(t.Get("startDate")),
			Shares:      optInt(t.Get("shares")),
			Value:       optFloat(t.Get("value")),
			Ownership:   t.Get("ownership").String(),
		})
	}
	return out, nil
}

func (r *HoldingsRepository) GetInsiderRoster(ctx context.Context, symbol string) ([]domain.InsiderRosterHolder, error) {
	ctx, span := r.tracer.Start(ctx, "holdings-repo.get-insider-roster")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, "insiderHolders")
	if err != nil {
		return nil, err
	}
	rows := res.Get("insiderHolders.holders").Array()
	out := make([]domain.InsiderRosterHolder, 0, len(rows))
	for _, h := range rows {
		out = append(out, domain.InsiderRosterHolder{
			Name:                  h.Get("name").String(),
			Position:              h.Get("relation").String(),
			URL:                   h.Get("url").String(),
			MostRecentTransaction: h.Get("transactionDescription").String(),
			LatestTransactionDate: optTime(h.Get("latestTransDate")),
			SharesOwnedDirectly:   optFloat(h.Get("positionDirect")),
			PositionDirectDate:    optTime(h.Get("positionDirectDate")),
			SharesOwnedIndirectly: optFloat(h.Get("positionIndirect")),
			PositionIndirectDate:  optTime(h.Get("positionIndirectDate")),
		})
	}
	return out, nil
}

func holdings(list gjson.Result) []domain.Holding {
	rows := list.Array()
	out := make([]domain.Holding, 0, len(rows))
	for _, h := range rows {
		out = append(out, domain.Holding{
			Holder:        h.Get("organization").String(),
			Shares:        optInt(h.Get("position")),
			DateReported:  optTime(h.Get("reportDate")),
			Value:         optFloat(h.Get("value")),
			PercentHeld:   optFloat(h.Get("pctHeld")),
			PercentChange: optFloat(h.Get("pctChange")),
		})
	}
	return out
}
