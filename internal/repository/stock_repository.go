package repository

import (
	"context"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/analytics"
	"openmarkets/internal/domain"
)

var stockInfoModules = []string{
	"price", "assetProfile", "summaryDetail", "defaultKeyStatistics", "financialData",
}

type StockRepository struct {
	source Source
	tracer trace.Tracer
}

func NewStockRepository(source Source, tracer trace.Tracer) *StockRepository {
	return &StockRepository{source: source, tracer: tracer}
}

func (r *StockRepository) GetInfo(ctx context.Context, symbol string) (*domain.StockInfo, error) {
	ctx, span := r.tracer.Start(ctx, "stock-repo.get-info")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, stockInfoModules...)
	if err != nil {
		return nil, err
	}
	info := stockInfo(flatten(res, stockInfoModules...))
	if info.Symbol == "" {
		info.Symbol = symbol
	}
	return info, nil
}

func (r *StockRepository) GetNews(ctx context.Context, symbol string, count int) ([]domain.NewsItem, error) {
	ctx, span := r.tracer.Start(ctx, "stock-repo.get-news")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.Search(ctx, symbol, count)
	if err != nil {
		return nil, err
	}
	items := res.Get("news").Array()
	out := make([]domain.NewsItem, 0, len(items))
	for _, n := range items {
		item := domain.NewsItem{
			UUID:        n.Get("uuid").String(),
			Title:       n.Get("title").String(),
			Publisher:   n.Get("publisher").String(),
			Link:        n.Get("link").String(),
			Type:        n.Get("type").String(),
			PublishedAt: time.Unix(n.Get("providerPublishTime").Int(), 0).UTC(),
		}
		for _, t := range n.Get("relatedTickers").Array() {
			item.RelatedTickers = append(item.RelatedTickers, t.String())
		}
		out = append(out, item)
	}
	return out, nil
}

func stockInfo(f map[string]gjson.Result) *domain.StockInfo {
	info := &domain.StockInfo{
		CompanyProfile: domain.CompanyProfile{
			Symbol:              str(f["symbol"]),
			ShortName:           str(f["shortName"]),
			LongName:            str(f["longName"]),
			Sector:              str(f["sector"]),
			Industry:            str(f["industry"]),
			Country:             str(f["country"]),
			Website:             str(f["website"]),
			LongBusinessSummary: str(f["longBusinessSummary"]),
			FullTimeEmployees:   optInt(f["fullTimeEmployees"]),
			Currency:            str(f["currency"]),
			Exchange:            str(f["exchangeName"]),
			QuoteType:           str(f["quoteType"]),
		},
		Valuation: domain.Valuation{
			MarketCap:         optFloat(f["marketCap"]),
			EnterpriseValue:   optFloat(f["enterpriseValue"]),
			FloatShares:       optFloat(f["floatShares"]),
			SharesOutstanding: optFloat(f["sharesOutstanding"]),
			SharesShort:       optFloat(f["sharesShort"]),
			BookValue:         optFloat(f["bookValue"]),
			PriceToBook:       optFloat(f["priceToBook"]),
			TrailingPE:        optFloat(f["trailingPE"]),
			ForwardPE:         optFloat(f["forwardPE"]),
			TrailingEps:       optFloat(f["trailingEps"]),
			ForwardEps:        optFloat(f["forwardEps"]),
			Beta:              optFloat(f["beta"]),
		},
		FinancialSummary: domain.FinancialSummary{
			TotalRevenue:      optFloat(f["totalRevenue"]),
			RevenueGrowth:     optFloat(f["revenueGrowth"]),
			GrossProfits:      optFloat(f["grossProfits"]),
			GrossMargins:      optFloat(f["grossMargins"]),
			OperatingMargins:  optFloat(f["operatingMargins"]),
			ProfitMargins:     optFloat(f["profitMargins"]),
			OperatingCashflow: optFloat(f["operatingCashflow"]),
			FreeCashflow:      optFloat(f["freeCashflow"]),
			TotalCash:         optFloat(f["totalCash"]),
			TotalDebt:         optFloat(f["totalDebt"]),
			TotalCashPerShare: optFloat(f["totalCashPerShare"]),
			EarningsGrowth:    optFloat(f["earningsGrowth"]),
			CurrentRatio:      optFloat(f["currentRatio"]),
			QuickRatio:        optFloat(f["quickRatio"]),
			ReturnOnAssets:    optFloat(f["returnOnAssets"]),
			ReturnOnEquity:    optFloat(f["returnOnEquity"]),
			DebtToEquity:      optFloat(f["debtToEquity"]),
		},
		RiskMetrics: domain.RiskMetrics{
			AuditRisk:             optInt(f["auditRisk"]),
			BoardRisk:             optInt(f["boardRisk"]),
			CompensationRisk:      optInt(f["compensationRisk"]),
			FinancialRisk:         optInt(f["financialRisk"]),
			GovernanceRisk:        optInt(f["governanceRisk"]),
			OverallRisk:           optInt(f["overallRisk"]),
			ShareHolderRightsRisk: optInt(f["shareHolderRightsRisk"]),
		},
		DividendSummary: domain.DividendSummary{
			DividendRate:                optFloat(f["dividendRate"]),
			DividendYield:               optFloat(f["dividendYield"]),
			PayoutRatio:                 optFloat(f["payoutRatio"]),
			FiveYearAvgDividendYield:    optFloat(f["fiveYearAvgDividendYield"]),
			TrailingAnnualDividendRate:  optFloat(f["trailingAnnualDividendRate"]),
			TrailingAnnualDividendYield: optFloat(f["trailingAnnualDividendYield"]),
			ExDividendDate:              optTime(f["exDividendDate"]),
			LastDividendDate:            optTime(f["lastDividendDate"]),
			LastDividendValue:           optFloat(f["lastDividendValue"]),
		},
		PriceTarget: domain.PriceTarget{
			TargetHighPrice:         optFloat(f["targetHighPrice"]),
			TargetLowPrice:          optFloat(f["targetLowPrice"]),
			TargetMeanPrice:         optFloat(f["targetMeanPrice"]),
			TargetMedianPrice:       optFloat(f["targetMedianPrice"]),
			RecommendationMean:      optFloat(f["recommendationMean"]),
			RecommendationKey:       str(f["recommendationKey"]),
			NumberOfAnalystOpinions: optInt(f["numberOfAnalystOpinions"]),
		},
	}

	current := optFloat(f["currentPrice"])
	if current == nil {
		current = optFloat(f["regularMarketPrice"])
	}
	info.QuickTechnicalIndicators = quickTechnicals(
		current,
		optFloat(f["fiftyDayAverage"]),
		optFloat(f["twoHundredDayAverage"]),
		optFloat(f["fiftyTwoWeekLow"]),
		optFloat(f["fiftyTwoWeekHigh"]),
	)
	return info
}

// quickTechnicals derives the moving-average deltas the summary modules do
// not carry. Percent changes are fractions, matching the quote endpoint.
func quickTechnicals(current, avg50, avg200, low52, high52 *float64) domain.QuickTechnicalIndicators {
	q := domain.QuickTechnicalIndicators{
		CurrentPrice:         current,
		FiftyDayAverage:      avg50,
		TwoHundredDayAverage: avg200,
		FiftyTwoWeekLow:      low52,
		FiftyTwoWeekHigh:     high52,
	}
	if current == nil {
		return q
	}
	if avg50 != nil {
		change := *current - *avg50
		q.FiftyDayAverageChange = &change
		q.FiftyDayAverageChangePercent = analytics.SafeRatio(change, *avg50)
	}
	if avg200 != nil {
		change := *current - *avg200
		q.TwoHundredDayAverageChange = &change
		q.TwoHundredDayAverageChangePercent = analytics.SafeRatio(change, *avg200)
	}
	return q
}
