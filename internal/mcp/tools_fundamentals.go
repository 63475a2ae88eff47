package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"openmarkets/internal/domain"
)

func registerAnalysisTools(server *mcp.Server, analysis AnalysisReader) {
	ok := analysis != nil

	symbolTool(server, "get_analyst_price_targets", "Current, high, low, mean and median analyst price targets", analysis, ok, AnalysisReader.GetPriceTargets)
	symbolTool(server, "get_recommendations", "Analyst rating counts by month", analysis, ok, AnalysisReader.GetRecommendations)
	symbolTool(server, "get_upgrades_downgrades", "Analyst rating changes, newest first", analysis, ok, AnalysisReader.GetUpgradesDowngrades)
	symbolTool(server, "get_earnings_estimates", "Consensus EPS estimates by period", analysis, ok, AnalysisReader.GetEarningsEstimates)
	symbolTool(server, "get_revenue_estimates", "Consensus revenue estimates by period", analysis, ok, AnalysisReader.GetRevenueEstimates)
	symbolTool(server, "get_eps_trend", "Revisions of the EPS estimate over the last 90 days", analysis, ok, AnalysisReader.GetEPSTrend)
	symbolTool(server, "get_growth_estimates", "Expected growth for the stock and its index", analysis, ok, AnalysisReader.GetGrowthEstimates)
}

func registerHoldingsTools(server *mcp.Server, holdings HoldingsReader) {
	ok := holdings != nil

	symbolTool(server, "get_major_holders", "Insider and institutional ownership breakdown", holdings, ok, HoldingsReader.GetMajorHolders)
	symbolTool(server, "get_institutional_holders", "Largest institutional holders", holdings, ok, HoldingsReader.GetInstitutionalHolders)
	symbolTool(server, "get_mutual_fund_holders", "Largest mutual fund holders", holdings, ok, HoldingsReader.GetMutualFundHolders)
	symbolTool(server, "get_insider_transactions", "Recent insider purchases and sales", holdings, ok, HoldingsReader.GetInsiderTransactions)
	symbolTool(server, "get_insider_roster", "Insiders and their current positions", holdings, ok, HoldingsReader.GetInsiderRoster)
}

func registerFinancialsTools(server *mcp.Server, financials FinancialsReader) {
	ok := financials != nil

	symbolTool(server, "get_income_statement", "Annual income statements, newest first", financials, ok, FinancialsReader.GetIncomeStatement)
	symbolTool(server, "get_balance_sheet", "Annual balance sheets, newest first", financials, ok, FinancialsReader.GetBalanceSheet)
	symbolTool(server, "get_cash_flow_statement", "Annual cash flow statements, newest first", financials, ok, FinancialsReader.GetCashFlow)
	symbolTool(server, "get_financial_calendar", "Upcoming earnings and dividend dates", financials, ok, FinancialsReader.GetCalendar)
	symbolTool(server, "get_earnings_history", "Reported against estimated EPS for recent quarters", financials, ok, FinancialsReader.GetEarningsHistory)
	symbolTool(server, "get_sec_filings", "Recent SEC filings with EDGAR links and exhibits", financials, ok, FinancialsReader.GetSECFilings)
	symbolTool(server, "get_ttm_income_statement", "Trailing twelve month income statement line items", financials, ok, FinancialsReader.GetTTMIncomeStatement)
	symbolTool(server, "get_ttm_cash_flow_statement", "Trailing twelve month cash flow line items", financials, ok, FinancialsReader.GetTTMCashFlow)
}

func registerFundsTools(server *mcp.Server, funds FundsReader) {
	ok := funds != nil

	symbolTool(server, "get_fund_profile", "Fund family, category, fees and returns", funds, ok, FundsReader.GetProfile)
	symbolTool(server, "get_fund_top_holdings", "Top holdings, sector weightings and asset allocation", funds, ok, FundsReader.GetTopHoldings)
	symbolTool(server, "get_fund_sector_weightings", "Fund weight per sector", funds, ok, FundsReader.GetSectorWeightings)
	symbolTool(server, "get_fund_asset_allocation", "Fund split across cash, stocks, bonds and other assets", funds, ok, FundsReader.GetAssetAllocation)
	symbolTool(server, "get_fund_overview", "Fund category, family and legal type", funds, ok, FundsReader.GetOverview)
	symbolTool(server, "get_fund_operations", "Expense ratio, turnover and net assets against the category average", funds, ok, FundsReader.GetOperations)
	symbolTool(server, "get_fund_equity_holdings", "Valuation ratios of the fund's equity book against the category average", funds, ok, FundsReader.GetEquityHoldings)
	symbolTool(server, "get_fund_bond_holdings", "Duration, maturity and credit quality against the category average", funds, ok, FundsReader.GetBondHoldings)
}

func registerMarketsTools(server *mcp.Server, markets MarketsReader) {
	ok := markets != nil

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_market_summary",
		Description: "Headline instruments for a market, keyed by exchange",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in marketInput) (*mcp.CallToolResult, domain.MarketSummary, error) {
		if !ok {
			return nil, domain.MarketSummary{}, unavailable("get_market_summary")
		}
		summary, err := markets.GetSummary(ctx, in.Market)
		if err != nil {
			return nil, domain.MarketSummary{}, err
		}
		return nil, *summary, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_market_status",
		Description: "Whether a market is open and its session times",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in marketInput) (*mcp.CallToolResult, domain.MarketStatus, error) {
		if !ok {
			return nil, domain.MarketStatus{}, unavailable("get_market_status")
		}
		status, err := markets.GetStatus(ctx, in.Market)
		if err != nil {
			return nil, domain.MarketStatus{}, err
		}
		return nil, *status, nil
	})
}
