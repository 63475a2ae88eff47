package repository

import (
	"context"
	"sort"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

type AnalysisRepository struct {
	source Source
	tracer trace.Tracer
}

func NewAnalysisRepository(source Source, tracer trace.Tracer) *AnalysisRepository {
	return &AnalysisRepository{source: source, tracer: tracer}
}

func (r *AnalysisRepository) summary(ctx context.Context, span trace.Span, symbol string, modules ...string) (gjson.Result, error) {
	span.SetAttributes(attribute.String("symbol", symbol))
	return r.source.QuoteSummary(ctx, symbol, modules...)
}

func (r *AnalysisRepository) GetPriceTargets(ctx context.Context, symbol string) (*domain.AnalystPriceTargets, error) {
	ctx, span := r.tracer.Start(ctx, "analysis-repo.get-price-targets")
	defer span.End()

	res, err := r.summary(ctx, span, symbol, "financialData")
	if err != nil {
		return nil, err
	}
	fd := res.Get("financialData")
	return &domain.AnalystPriceTargets{
		Current: optFloat(fd.Get("currentPrice")),
		High:    optFloat(fd.Get("targetHighPrice")),
		Low:     optFloat(fd.Get("targetLowPrice")),
		Mean:    optFloat(fd.Get("targetMeanPrice")),
		Median:  optFloat(fd.Get("targetMedianPrice")),
	}, nil
}

func (r *AnalysisRepository) GetRecommendations(ctx context.Context, symbol string) ([]domain.AnalystRecommendation, error) {
	ctx, span := r.tracer.Start(ctx, "analysis-repo.get-recommendations")
	defer span.End()

	res, err := r.summary(ctx, span, symbol, "recommendationTrend")
	if err != nil {
		return nil, err
	}
	rows := res.Get("recommendationTrend.trend").Array()
	out := make([]domain.AnalystRecommendation, 0, len(rows))
	for _, t := range rows {
		out = append(out, domain.AnalystRecommendation{
			Period:     t.Get("period").String(),
			StrongBuy:  t.Get("strongBuy").Int(),
			Buy:        t.Get("buy").Int(),
			Hold:       t.Get("hold").Int(),
			Sell:       t.Get("sell").Int(),
			StrongSell: t.Get("strongSell").Int(),
		})
	}
	return out, nil
}

// GetUpgradesDowngrades returns rating changes, most recent first.
func (r *AnalysisRepository) GetUpgradesDowngrades(ctx context.Context, symbol string) ([]domain.RecommendationChange, error) {
	ctx, span := r.tracer.Start(ctx, "analysis-repo.get-upgrades-downgrades")
	defer span.End()

	res, err := r.summary(ctx, span, symbol, "upgradeDowngradeHistory")
	if err != nil {
		return nil, err
	}
	rows := res.Get("upgradeDowngradeHistory.history").Array()
	out := make([]domain.RecommendationChange, 0, len(rows))
	for _, h := range rows {
		c := domain.RecommendationChange{
			Firm:        h.Get("firm").String(),
			ToGrade:     h.Get("toGrade").String(),
			FromGrade:   h.Get("fromGrade").String(),
			Action:      h.Get("action").String(),
			PriceTarget: optFloat(h.Get("currentPriceTarget")),
		}
		if t := optTime(h.Get("epochGradeDate")); t != nil {
			c.Date = *t
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *AnalysisRepository) earningsTrend(ctx context.Context, span trace.Span, symbol string) ([]gjson.Result, error) {
	res, err := r.summary(ctx, span, symbol, "earningsTrend")
	if err != nil {
		return nil, err
	}
	return res.Get("earningsTrend.trend").Array(), nil
}

func (r *AnalysisRepository) GetEarningsEstimates(ctx context.Context, symbol string) ([]domain.EarningsEstimate, error) {
	ctx, span := r.tracer.Start(ctx, "analysis-repo.get-earnings-estimates")
	defer span.End()

	rows, err := r.earningsTrend(ctx, span, symbol)
	if err != nil {
		return nil, err
	}
	out := make([]domain.EarningsEstimate, 0, len(rows))
	for _, t := range rows {
		e := t.Get("earningsEstimate")
		out = append(out, domain.EarningsEstimate{
			Period:           t.Get("period").String(),
			Avg:              optFloat(e.Get("avg")),
			Low:              optFloat(e.Get("low")),
			High:             optFloat(e.Get("high")),
			NumberOfAnalysts: optInt(e.Get("numberOfAnalysts")),
			YearAgoEps:       optFloat(e.Get("yearAgoEps")),
			Growth:           optFloat(e.Get("growth")),
		})
	}
	return out, nil
}

func (r *AnalysisRepository) GetRevenueEstimates(ctx context.Context, symbol string) ([]domain.RevenueEstimate, error) {
	ctx, span := r.tracer.Start(ctx, "analysis-repo.get-revenue-estimates")
	defer span.End()

	rows, err := r.earningsTrend(ctx, span, symbol)
	if err != nil {
		return nil, err
	}
	out := make([]domain.RevenueEstimate, 0, len(rows))
	for _, t := range rows {
		e := t.Get("revenueEstimate")
		out = append(out, domain.RevenueEstimate{
			Period:           t.Get("period").String(),
			Avg:              optFloat(e.Get("avg")),
			Low:              optFloat(e.Get("low")),
			High:             optFloat(e.Get("high")),
			NumberOfAnalysts: optInt(e.Get("numberOfAnalysts")),
			YearAgoRevenue:   optFloat(e.Get("yearAgoRevenue")),
			Growth:           optFloat(e.Get("growth")),
		})
	}
	return out, nil
}

func (r *AnalysisRepository) GetEPSTrend(ctx context.Context, symbol string) ([]domain.EPSTrend, error) {
	ctx, span := r.tracer.Start(ctx, "analysis-repo.get-eps-trend")
	defer span.End()

	rows, err := r.earningsTrend(ctx, span, symbol)
	if err != nil {
		return nil, err
	}
	out := make([]domain.EPSTrend, 0, len(rows))
	for _, t := range rows {
		e := t.Get("epsTrend")
		out = append(out, domain.EPSTrend{
			Period:    t.Get("period").String(),
			Current:   optFloat(e.Get("current")),
			Days7Ago:  optFloat(e.Get("7daysAgo")),
			Days30Ago: optFloat(e.Get("30daysAgo")),
			Days60Ago: optFloat(e.Get("60daysAgo")),
			Days90Ago: optFloat(e.Get("90daysAgo")),
		})
	}
	return out, nil
}

// GetGrowthEstimates pairs the symbol's growth per period with the index
// trend for the same period.
func (r *AnalysisRepository) GetGrowthEstimates(ctx context.Context, symbol string) ([]domain.GrowthEstimate, error) {
	ctx, span := r.tracer.Start(ctx, "analysis-repo.get-growth-estimates")
	defer span.End()

	res, err := r.summary(ctx, span, symbol, "earningsTrend", "indexTrend")
	if err != nil {
		return nil, err
	}

	index := make(map[string]*float64)
	for _, e := range res.Get("indexTrend.estimates").Array() {
		index[e.Get("period").String()] = optFloat(e.Get("growth"))
	}

	rows := res.Get("earningsTrend.trend").Array()
	out := make([]domain.GrowthEstimate, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, t := range rows {
		period := t.Get("period").String()
		seen[period] = true
		out = append(out, domain.GrowthEstimate{
			Period:     period,
			StockTrend: optFloat(t.Get("growth")),
			IndexTrend: index[period],
		})
	}
	for _, e := range res.Get("indexTrend.estimates").Array() {
		period := e.Get("period").String()
		if seen[period] {
			continue
		}
		out = append(out, domain.GrowthEstimate{Period: period, IndexTrend: index[period]})
	}
	return out, nil
}
