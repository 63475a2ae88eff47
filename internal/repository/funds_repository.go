package repository

import (
	"context"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

type FundsRepository struct {
	source Source
	tracer trace.Tracer
}

func NewFundsRepository(source Source, tracer trace.Tracer) *FundsRepository {
	return &FundsRepository{source: source, tracer: tracer}
}

func (r *FundsRepository) GetProfile(ctx context.Context, symbol string) (*domain.FundProfile, error) {
	ctx, span := r.tracer.Start(ctx, "funds-repo.get-profile")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, "fundProfile", "defaultKeyStatistics", "summaryProfile")
	if err != nil {
		return nil, err
	}
	fp := res.Get("fundProfile")
	fees := fp.Get("feesExpensesInvestment")
	ks := res.Get("defaultKeyStatistics")

	p := &domain.FundProfile{
		Symbol:              symbol,
		Family:              str(fp.Get("family")),
		CategoryName:        str(fp.Get("categoryName")),
		LegalType:           str(fp.Get("legalType")),
		AnnualExpenseRatio:  optFloat(fees.Get("annualReportExpenseRatio")),
		AnnualTurnover:      optFloat(fees.Get("annualHoldingsTurnover")),
		TotalNetAssets:      optFloat(fees.Get("totalNetAssets")),
		YTDReturn:           optFloat(ks.Get("ytdReturn")),
		ThreeYearAvgReturn:  optFloat(ks.Get("threeYearAverageReturn")),
		FiveYearAvgReturn:   optFloat(ks.Get("fiveYearAverageReturn")),
		Beta3Year:           optFloat(ks.Get("beta3Year")),
		LongBusinessSummary: str(res.Get("summaryProfile.longBusinessSummary")),
	}
	if p.Family == "" {
		p.Family = str(ks.Get("fundFamily"))
	}
	if p.TotalNetAssets == nil {
		p.TotalNetAssets = optFloat(ks.Get("totalAssets"))
	}
	return p, nil
}

// GetTopHoldings returns holdings, sector weights and asset allocation from
// a single upstream call.
func (r *FundsRepository) GetTopHoldings(ctx context.Context, symbol string) (*domain.FundTopHoldings, error) {
	ctx, span := r.tracer.Start(ctx, "funds-repo.get-top-holdings")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, "topHoldings")
	if err != nil {
		return nil, err
	}
	th := res.Get("topHoldings")

	out := &domain.FundTopHoldings{
		Holdings:         []domain.FundHolding{},
		SectorWeightings: make(map[string]float64),
		AssetAllocation: domain.FundAssetAllocation{
			Cash:        optFloat(th.Get("cashPosition")),
			Stock:       optFloat(th.Get("stockPosition")),
			Bond:        optFloat(th.Get("bondPosition")),
			Preferred:   optFloat(th.Get("preferredPosition")),
			Convertible: optFloat(th.Get("convertiblePosition")),
			Other:       optFloat(th.Get("otherPosition")),
		},
	}
	for _, h := range th.Get("holdings").Array() {
		pct := optFloat(h.Get("holdingPercent"))
		if pct == nil {
			continue
		}
		out.Holdings = append(out.Holdings, domain.FundHolding{
			Symbol:  h.Get("symbol").String(),
			Name:    h.Get("holdingName").String(),
			Percent: *pct,
		})
	}
	// sectorWeightings is a list of single-key objects
	for _, w := range th.Get("sectorWeightings").Array() {
		for sector, v := range w.Map() {
			if f := optFloat(v); f != nil {
				out.SectorWeightings[sector] = *f
			}
		}
	}
	return out, nil
}

func (r *FundsRepository) GetOverview(ctx context.Context, symbol string) (*domain.FundOverview, error) {
	ctx, span := r.tracer.Start(ctx, "funds-repo.get-overview")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, "fundProfile")
	if err != nil {
		return nil, err
	}
	fp := res.Get("fundProfile")
	return &domain.FundOverview{
		Symbol:       symbol,
		CategoryName: str(fp.Get("categoryName")),
		Family:       str(fp.Get("family")),
		LegalType:    str(fp.Get("legalType")),
	}, nil
}

// GetOperations returns the fund's expense, turnover and size figures next
// to its category averages.
func (r *FundsRepository) GetOperations(ctx context.Context, symbol string) (*domain.FundOperations, error) {
	ctx, span := r.tracer.Start(ctx, "funds-repo.get-operations")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, "fundProfile")
	if err != nil {
		return nil, err
	}
	row := func(fees gjson.Result) domain.FundOperationsRow {
		return domain.FundOperationsRow{
			AnnualReportExpenseRatio: optFloat(fees.Get("annualReportExpenseRatio")),
			AnnualHoldingsTurnover:   optFloat(fees.Get("annualHoldingsTurnover")),
			TotalNetAssets:           optFloat(fees.Get("totalNetAssets")),
		}
	}
	fp := res.Get("fundProfile")
	return &domain.FundOperations{
		Fund:     row(fp.Get("feesExpensesInvestment")),
		Category: row(fp.Get("feesExpensesInvestmentCat")),
	}, nil
}

func (r *FundsRepository) GetEquityHoldings(ctx context.Context, symbol string) (*domain.FundEquityHoldings, error) {
	ctx, span := r.tracer.Start(ctx, "funds-repo.get-equity-holdings")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, "topHoldings")
	if err != nil {
		return nil, err
	}
	eq := res.Get("topHoldings.equityHoldings")
	row := func(suffix string) domain.FundEquityRow {
		return domain.FundEquityRow{
			PriceToEarnings:         optFloat(eq.Get("priceToEarnings" + suffix)),
			PriceToBook:             optFloat(eq.Get("priceToBook" + suffix)),
			PriceToSales:            optFloat(eq.Get("priceToSales" + suffix)),
			PriceToCashflow:         optFloat(eq.Get("priceToCashflow" + suffix)),
			MedianMarketCap:         optFloat(eq.Get("medianMarketCap" + suffix)),
			ThreeYearEarningsGrowth: optFloat(eq.Get("threeYearEarningsGrowth" + suffix)),
		}
	}
	return &domain.FundEquityHoldings{Fund: row(""), Category: row("Cat")}, nil
}

func (r *FundsRepository) GetBondHoldings(ctx context.Context, symbol string) (*domain.FundBondHoldings, error) {
	ctx, span := r.tracer.Start(ctx, "funds-repo.get-bond-holdings")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, "topHoldings")
	if err != nil {
		return nil, err
	}
	bh := res.Get("topHoldings.bondHoldings")
	row := func(suffix string) domain.FundBondRow {
		return domain.FundBondRow{
			Duration:      optFloat(bh.Get("duration" + suffix)),
			Maturity:      optFloat(bh.Get("maturity" + suffix)),
			CreditQuality: optFloat(bh.Get("creditQuality" + suffix)),
		}
	}
	return &domain.FundBondHoldings{Fund: row(""), Category: row("Cat")}, nil
}
