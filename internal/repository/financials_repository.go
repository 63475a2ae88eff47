package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

type FinancialsRepository struct {
	source Source
	tracer trace.Tracer
}

func NewFinancialsRepository(source Source, tracer trace.Tracer) *FinancialsRepository {
	return &FinancialsRepository{source: source, tracer: tracer}
}

// Statement modules and the array each one keeps its periods under.
var statementPaths = map[string]string{
	"incomeStatementHistory":   "incomeStatementHistory.incomeStatementHistory",
	"balanceSheetHistory":      "balanceSheetHistory.balanceSheetStatements",
	"cashflowStatementHistory": "cashflowStatementHistory.cashflowStatements",
}

func (r *FinancialsRepository) GetIncomeStatement(ctx context.Context, symbol string) ([]domain.StatementEntry, error) {
	ctx, span := r.tracer.Start(ctx, "financials-repo.get-income-statement")
	defer span.End()
	return r.statement(ctx, span, symbol, "incomeStatementHistory")
}

func (r *FinancialsRepository) GetBalanceSheet(ctx context.Context, symbol string) ([]domain.StatementEntry, error) {
	ctx, span := r.tracer.Start(ctx, "financials-repo.get-balance-sheet")
	defer span.End()
	return r.statement(ctx, span, symbol, "balanceSheetHistory")
}

func (r *FinancialsRepository) GetCashFlow(ctx context.Context, symbol string) ([]domain.StatementEntry, error) {
	ctx, span := r.tracer.Start(ctx, "financials-repo.get-cash-flow")
	defer span.End()
	return r.statement(ctx, span, symbol, "cashflowStatementHistory")
}

// statement returns one entry per reporting period, newest first. Only
// numeric line items are kept.
func (r *FinancialsRepository) statement(ctx context.Context, span trace.Span, symbol, module string) ([]domain.StatementEntry, error) {
	span.SetAttributes(attribute.String("symbol", symbol), attribute.String("module", module))

	res, err := r.source.QuoteSummary(ctx, symbol, module)
	if err != nil {
		return nil, err
	}
	rows := res.Get(statementPaths[module]).Array()
	out := make([]domain.StatementEntry, 0, len(rows))
	for _, row := range rows {
		entry := domain.StatementEntry{Items: make(map[string]float64)}
		if t := optTime(row.Get("endDate")); t != nil {
			entry.EndDate = *t
		}
		row.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if k == "endDate" || k == "maxAge" {
				return true
			}
			if v := optFloat(value); v != nil {
				entry.Items[k] = *v
			}
			return true
		})
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EndDate.After(out[j].EndDate) })
	return out, nil
}

func (r *FinancialsRepository) GetCalendar(ctx context.Context, symbol string) (*domain.FinancialCalendar, error) {
	ctx, span := r.tracer.Start(ctx, "financials-repo.get-calendar")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, "calendarEvents")
	if err != nil {
		return nil, err
	}
	ce := res.Get("calendarEvents")
	e := ce.Get("earnings")
	cal := &domain.FinancialCalendar{
		EarningsAverage: optFloat(e.Get("earningsAverage")),
		EarningsLow:     optFloat(e.Get("earningsLow")),
		EarningsHigh:    optFloat(e.Get("earningsHigh")),
		RevenueAverage:  optFloat(e.Get("revenueAverage")),
		RevenueLow:      optFloat(e.Get("revenueLow")),
		RevenueHigh:     optFloat(e.Get("revenueHigh")),
		ExDividendDate:  optTime(ce.Get("exDividendDate")),
		DividendDate:    optTime(ce.Get("dividendDate")),
		EarningsDates:   []time.Time{},
	}
	for _, d := range e.Get("earningsDate").Array() {
		if t := optTime(d); t != nil {
			cal.EarningsDates = append(cal.EarningsDates, *t)
		}
	}
	return cal, nil
}

func (r *FinancialsRepository) GetEarningsHistory(ctx context.Context, symbol string) ([]domain.EarningsHistoryEntry, error) {
	ctx, span := r.tracer.Start(ctx, "financials-repo.get-earnings-history")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, "earningsHistory")
	if err != nil {
		return nil, err
	}
	rows := res.Get("earningsHistory.history").Array()
	out := make([]domain.EarningsHistoryEntry, 0, len(rows))
	for _, h := range rows {
		out = append(out, domain.EarningsHistoryEntry{
			Quarter:         optTime(h.Get("quarter")),
			Period:          h.Get("period").String(),
			EpsActual:       optFloat(h.Get("epsActual")),
			EpsEstimate:     optFloat(h.Get("epsEstimate")),
			EpsDifference:   optFloat(h.Get("epsDifference")),
			SurprisePercent: optFloat(h.Get("surprisePercent")),
		})
	}
	return out, nil
}

func (r *FinancialsRepository) GetSECFilings(ctx context.Context, symbol string) ([]domain.SECFiling, error) {
	ctx, span := r.tracer.Start(ctx, "financials-repo.get-sec-filings")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, "secFilings")
	if err != nil {
		return nil, err
	}
	rows := res.Get("secFilings.filings").Array()
	out := make([]domain.SECFiling, 0, len(rows))
	for _, f := range rows {
		filing := domain.SECFiling{
			Date:     optTime(f.Get("date")),
			Type:     str(f.Get("type")),
			Title:    str(f.Get("title")),
			EdgarURL: str(f.Get("edgarUrl")),
		}
		if filing.Date == nil {
			filing.Date = optTime(f.Get("epochDate"))
		}
		if ex := f.Get("exhibits").Array(); len(ex) > 0 {
			filing.Exhibits = make(map[string]string, len(ex))
			for _, e := range ex {
				filing.Exhibits[str(e.Get("type"))] = str(e.Get("url"))
			}
		}
		out = append(out, filing)
	}
	return out, nil
}

// Trailing twelve month line items served by the fundamentals timeseries.
var (
	ttmIncomeItems = []string{
		"TotalRevenue", "CostOfRevenue", "GrossProfit", "OperatingExpense",
		"OperatingIncome", "PretaxIncome", "TaxProvision", "NetIncome",
		"NetIncomeCommonStockholders", "EBIT", "EBITDA", "BasicEPS", "DilutedEPS",
		"ResearchAndDevelopment", "SellingGeneralAndAdministration", "InterestExpense",
	}
	ttmCashFlowItems = []string{
		"OperatingCashFlow", "InvestingCashFlow", "FinancingCashFlow", "FreeCashFlow",
		"CapitalExpenditure", "EndCashPosition", "BeginningCashPosition",
		"RepurchaseOfCapitalStock", "CashDividendsPaid", "StockBasedCompensation",
		"DepreciationAndAmortization", "ChangesInCash",
	}
)

// ttmWindow bounds the timeseries request. Yahoo keeps a handful of trailing
// periods, so a few years is enough.
const ttmWindow = 5 * 365 * 24 * time.Hour

func (r *FinancialsRepository) GetTTMIncomeStatement(ctx context.Context, symbol string) ([]domain.StatementEntry, error) {
	ctx, span := r.tracer.Start(ctx, "financials-repo.get-ttm-income-statement")
	defer span.End()
	return r.trailing(ctx, span, symbol, ttmIncomeItems)
}

func (r *FinancialsRepository) GetTTMCashFlow(ctx context.Context, symbol string) ([]domain.StatementEntry, error) {
	ctx, span := r.tracer.Start(ctx, "financials-repo.get-ttm-cash-flow")
	defer span.End()
	return r.trailing(ctx, span, symbol, ttmCashFlowItems)
}

// trailing groups timeseries values by their as-of date into one entry per
// period, newest first. A symbol without trailing data yields no entries.
func (r *FinancialsRepository) trailing(ctx context.Context, span trace.Span, symbol string, items []string) ([]domain.StatementEntry, error) {
	span.SetAttributes(attribute.String("symbol", symbol), attribute.Int("items", len(items)))

	types := make([]string, len(items))
	for i, item := range items {
		types[i] = "trailing" + item
	}
	now := time.Now().UTC()
	series, err := r.source.Timeseries(ctx, symbol, types, now.Add(-ttmWindow), now)
	if noData(err) {
		return []domain.StatementEntry{}, nil
	}
	if err != nil {
		return nil, err
	}

	byDate := make(map[time.Time]*domain.StatementEntry)
	for _, s := range series {
		typ := s.Get("meta.type.0").String()
		item := strings.TrimPrefix(typ, "trailing")
		for _, point := range s.Get(typ).Array() {
			day := optTime(point.Get("asOfDate"))
			v := optFloat(point.Get("reportedValue"))
			if day == nil || v == nil {
				continue
			}
			entry, ok := byDate[*day]
			if !ok {
				entry = &domain.StatementEntry{EndDate: *day, Items: make(map[string]float64)}
				byDate[*day] = entry
			}
			entry.Items[item] = *v
		}
	}
	out := make([]domain.StatementEntry, 0, len(byDate))
	for _, e := range byDate {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndDate.After(out[j].EndDate) })
	return out, nil
}
