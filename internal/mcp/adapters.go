package mcp

import (
	"context"

	"openmarkets/internal/analytics"
	"openmarkets/internal/domain"
)

// TechnicalReader exposes the price-history indicator engines.
type TechnicalReader interface {
	GetTechnicalIndicators(ctx context.Context, symbol, period string) (*analytics.TechnicalIndicators, error)
	GetVolatilityMetrics(ctx context.Context, symbol, period string) (*analytics.VolatilityMetrics, error)
	GetSupportResistanceLevels(ctx context.Context, symbol, period string) (*analytics.SupportResistanceLevels, error)
}

// OptionsReader exposes option chains and the options analytics engines.
type OptionsReader interface {
	GetExpirationDates(ctx context.Context, symbol string) ([]string, error)
	GetOptionChain(ctx context.Context, symbol, expiration string) (*domain.OptionsChain, error)
	GetCallOptions(ctx context.Context, symbol, expiration string) ([]domain.OptionContract, error)
	GetPutOptions(ctx context.Context, symbol, expiration string) ([]domain.OptionContract, error)
	GetVolumeAnalysis(ctx context.Context, symbol, expiration string) (*analytics.VolumeAnalysis, error)
	GetByMoneyness(ctx context.Context, symbol, expiration string, moneynessRange float64) (*analytics.MoneynessResult, error)
	GetSkew(ctx context.Context, symbol, expiration string) (*analytics.SkewResult, error)
}

type StockReader interface {
	GetQuote(ctx context.Context, symbol string) (*domain.Quote, error)
	GetFastInfo(ctx context.Context, symbol string) (*domain.FastInfo, error)
	GetInfo(ctx context.Context, symbol string) (*domain.StockInfo, error)
	GetHistory(ctx context.Context, symbol, period, interval string) (domain.PriceSeries, error)
	GetDividends(ctx context.Context, symbol string) ([]domain.Dividend, error)
	GetSplits(ctx context.Context, symbol string) ([]domain.Split, error)
	GetCorporateActions(ctx context.Context, symbol string) ([]domain.CorporateAction, error)
	GetNews(ctx context.Context, symbol string, count int) ([]domain.NewsItem, error)
	GetFinancialSummary(ctx context.Context, symbol string) (*domain.FinancialOverview, error)
	GetRiskMetrics(ctx context.Context, symbol string) (*domain.RiskMetrics, error)
	GetDividendSummary(ctx context.Context, symbol string) (*domain.DividendSummary, error)
	GetPriceTarget(ctx context.Context, symbol string) (*domain.PriceTarget, error)
	GetQuickTechnicalIndicators(ctx context.Context, symbol string) (*domain.QuickTechnicalIndicators, error)
}

type CryptoReader interface {
	GetInfo(ctx context.Context, ticker string) (*domain.FastInfo, error)
	GetHistory(ctx context.Context, ticker, period, interval string) (domain.PriceSeries, error)
	GetTopCryptocurrencies(ctx context.Context, count int) ([]domain.FastInfo, error)
	GetFearGreedProxy(ctx context.Context, tickers []string) (*domain.CryptoSentiment, error)
}

type AnalysisReader interface {
	GetPriceTargets(ctx context.Context, symbol string) (*domain.AnalystPriceTargets, error)
	GetRecommendations(ctx context.Context, symbol string) ([]domain.AnalystRecommendation, error)
	GetUpgradesDowngrades(ctx context.Context, symbol string) ([]domain.RecommendationChange, error)
	GetEarningsEstimates(ctx context.Context, symbol string) ([]domain.EarningsEstimate, error)
	GetRevenueEstimates(ctx context.Context, symbol string) ([]domain.RevenueEstimate, error)
	GetEPSTrend(ctx context.Context, symbol string) ([]domain.EPSTrend, error)
	GetGrowthEstimates(ctx context.Context, symbol string) ([]domain.GrowthEstimate, error)
}

type HoldingsReader interface {
	GetMajorHolders(ctx context.Context, symbol string) (*domain.MajorHolders, error)
	GetInstitutionalHolders(ctx context.Context, symbol string) ([]domain.Holding, error)
	GetMutualFundHolders(ctx context.Context, symbol string) ([]domain.Holding, error)
	GetInsiderTransactions(ctx context.Context, symbol string) ([]domain.InsiderTransaction, error)
	GetInsiderRoster(ctx context.Context, symbol string) ([]domain.InsiderRosterHolder, error)
}

type FinancialsReader interface {
	GetIncomeStatement(ctx context.Context, symbol string) ([]domain.StatementEntry, error)
	GetBalanceSheet(ctx context.Context, symbol string) ([]domain.StatementEntry, error)
	GetCashFlow(ctx context.Context, symbol string) ([]domain.StatementEntry, error)
	GetCalendar(ctx context.Context, symbol string) (*domain.FinancialCalendar, error)
	GetEarningsHistory(ctx context.Context, symbol string) ([]domain.EarningsHistoryEntry, error)
	GetSECFilings(ctx context.Context, symbol string) ([]domain.SECFiling, error)
	GetTTMIncomeStatement(ctx context.Context, symbol string) ([]domain.StatementEntry, error)
	GetTTMCashFlow(ctx context.Context, symbol string) ([]domain.StatementEntry, error)
}

type FundsReader interface {
	GetProfile(ctx context.Context, symbol string) (*domain.FundProfile, error)
	GetTopHoldings(ctx context.Context, symbol string) (*domain.FundTopHoldings, error)
	GetSectorWeightings(ctx context.Context, symbol string) (map[string]float64, error)
	GetAssetAllocation(ctx context.Context, symbol string) (*domain.FundAssetAllocation, error)
	GetOverview(ctx context.Context, symbol string) (*domain.FundOverview, error)
	GetOperations(ctx context.Context, symbol string) (*domain.FundOperations, error)
	GetEquityHoldings(ctx context.Context, symbol string) (*domain.FundEquityHoldings, error)
	GetBondHoldings(ctx context.Context, symbol string) (*domain.FundBondHoldings, error)
}

// SectorReader serves sector and industry pages. Keys reaching it have
// already been normalized.
type SectorReader interface {
	GetSectorOverview(ctx context.Context, sector string) (*domain.SectorOverview, error)
	GetSectorOverviewForTicker(ctx context.Context, symbol string) (*domain.SectorOverview, error)
	GetSectorTopCompanies(ctx context.Context, sector string) ([]domain.SectorCompany, error)
	GetSectorTopCompaniesForTicker(ctx context.Context, symbol string) ([]domain.SectorCompany, error)
	GetSectorTopETFs(ctx context.Context, sector string) (map[string]string, error)
	GetSectorTopMutualFunds(ctx context.Context, sector string) (map[string]string, error)
	GetSectorIndustries(ctx context.Context, sector string) ([]string, error)
	GetSectorResearchReports(ctx context.Context, sector string) ([]domain.ResearchReport, error)
	GetAllIndustries(ctx context.Context, sector string) ([]string, error)
	GetIndustryOverview(ctx context.Context, industry string) (*domain.SectorOverview, error)
	GetIndustryTopCompanies(ctx context.Context, industry string) ([]domain.IndustryCompany, error)
	GetIndustryTopGrowthCompanies(ctx context.Context, industry string) ([]domain.IndustryCompany, error)
	GetIndustryTopPerformingCompanies(ctx context.Context, industry string) ([]domain.IndustryCompany, error)
}

type MarketsReader interface {
	GetSummary(ctx context.Context, market string) (*domain.MarketSummary, error)
	GetStatus(ctx context.Context, market string) (*domain.MarketStatus, error)
}

// Services groups the readers the server registers tools for. A nil reader
// leaves its tools registered but failing with "service unavailable".
type Services struct {
	Technical  TechnicalReader
	Options    OptionsReader
	Stock      StockReader
	Crypto     CryptoReader
	Analysis   AnalysisReader
	Holdings   HoldingsReader
	Financials FinancialsReader
	Funds      FundsReader
	Markets    MarketsReader
	Sectors    SectorReader
}
