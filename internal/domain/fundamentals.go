package domain

import "time"

// FastInfo is the lightweight quote view used for stocks and crypto.
type FastInfo struct {
	Symbol                     string   `json:"symbol"`
	Currency                   string   `json:"currency,omitempty"`
	Exchange                   string   `json:"exchange,omitempty"`
	QuoteType                  string   `json:"quoteType,omitempty"`
	LastPrice                  float64  `json:"lastPrice"`
	Open                       float64  `json:"open"`
	DayHigh                    float64  `json:"dayHigh"`
	DayLow                     float64  `json:"dayLow"`
	PreviousClose              float64  `json:"previousClose"`
	LastVolume                 int64    `json:"lastVolume"`
	MarketCap                  *int64   `json:"marketCap"`
	Shares                     *int64   `json:"shares"`
	YearHigh                   float64  `json:"yearHigh"`
	YearLow                    float64  `json:"yearLow"`
	FiftyDayAverage            float64  `json:"fiftyDayAverage"`
	TwoHundredDayAverage       float64  `json:"twoHundredDayAverage"`
	TenDayAverageVolume        *int64   `json:"tenDayAverageVolume"`
	ThreeMonthAverageVolume    *int64   `json:"threeMonthAverageVolume"`
	RegularMarketChangePercent *float64 `json:"regularMarketChangePercent,omitempty"`
}

type CompanyProfile struct {
	Symbol              string `json:"symbol"`
	ShortName           string `json:"shortName,omitempty"`
	LongName            string `json:"longName,omitempty"`
	Sector              string `json:"sector,omitempty"`
	Industry            string `json:"industry,omitempty"`
	Country             string `json:"country,omitempty"`
	Website             string `json:"website,omitempty"`
	LongBusinessSummary string `json:"longBusinessSummary,omitempty"`
	FullTimeEmployees   *int64 `json:"fullTimeEmployees,omitempty"`
	Currency            string `json:"currency,omitempty"`
	Exchange            string `json:"exchange,omitempty"`
	QuoteType           string `json:"quoteType,omitempty"`
}

type Valuation struct {
	MarketCap         *float64 `json:"marketCap"`
	EnterpriseValue   *float64 `json:"enterpriseValue"`
	FloatShares       *float64 `json:"floatShares"`
	SharesOutstanding *float64 `json:"sharesOutstanding"`
	SharesShort       *float64 `json:"sharesShort"`
	BookValue         *float64 `json:"bookValue"`
	PriceToBook       *float64 `json:"priceToBook"`
	TrailingPE        *float64 `json:"trailingPE"`
	ForwardPE         *float64 `json:"forwardPE"`
	TrailingEps       *float64 `json:"trailingEps"`
	ForwardEps        *float64 `json:"forwardEps"`
	Beta              *float64 `json:"beta"`
}

type FinancialSummary struct {
	TotalRevenue      *float64 `json:"totalRevenue"`
	RevenueGrowth     *float64 `json:"revenueGrowth"`
	GrossProfits      *float64 `json:"grossProfits"`
	GrossMargins      *float64 `json:"grossMargins"`
	OperatingMargins  *float64 `json:"operatingMargins"`
	ProfitMargins     *float64 `json:"profitMargins"`
	OperatingCashflow *float64 `json:"operatingCashflow"`
	FreeCashflow      *float64 `json:"freeCashflow"`
	TotalCash         *float64 `json:"totalCash"`
	TotalDebt         *float64 `json:"totalDebt"`
	TotalCashPerShare *float64 `json:"totalCashPerShare"`
	EarningsGrowth    *float64 `json:"earningsGrowth"`
	CurrentRatio      *float64 `json:"currentRatio"`
	QuickRatio        *float64 `json:"quickRatio"`
	ReturnOnAssets    *float64 `json:"returnOnAssets"`
	ReturnOnEquity    *float64 `json:"returnOnEquity"`
	DebtToEquity      *float64 `json:"debtToEquity"`
}

type RiskMetrics struct {
	AuditRisk             *int64 `json:"auditRisk"`
	BoardRisk             *int64 `json:"boardRisk"`
	CompensationRisk      *int64 `json:"compensationRisk"`
	FinancialRisk         *int64 `json:"financialRisk,omitempty"`
	GovernanceRisk        *int64 `json:"governanceRisk,omitempty"`
	OverallRisk           *int64 `json:"overallRisk"`
	ShareHolderRightsRisk *int64 `json:"shareHolderRightsRisk"`
}

type DividendSummary struct {
	DividendRate                *float64   `json:"dividendRate"`
	DividendYield               *float64   `json:"dividendYield"`
	PayoutRatio                 *float64   `json:"payoutRatio"`
	FiveYearAvgDividendYield    *float64   `json:"fiveYearAvgDividendYield"`
	TrailingAnnualDividendRate  *float64   `json:"trailingAnnualDividendRate"`
	TrailingAnnualDividendYield *float64   `json:"trailingAnnualDividendYield"`
	ExDividendDate              *time.Time `json:"exDividendDate"`
	LastDividendDate            *time.Time `json:"lastDividendDate"`
	LastDividendValue           *float64   `json:"lastDividendValue"`
}

type PriceTarget struct {
	TargetHighPrice         *float64 `json:"targetHighPrice"`
	TargetLowPrice          *float64 `json:"targetLowPrice"`
	TargetMeanPrice         *float64 `json:"targetMeanPrice"`
	TargetMedianPrice       *float64 `json:"targetMedianPrice"`
	RecommendationMean      *float64 `json:"recommendationMean"`
	RecommendationKey       string   `json:"recommendationKey,omitempty"`
	NumberOfAnalystOpinions *int64   `json:"numberOfAnalystOpinions"`
}

type QuickTechnicalIndicators struct {
	CurrentPrice                      *float64 `json:"currentPrice"`
	FiftyDayAverage                   *float64 `json:"fiftyDayAverage"`
	TwoHundredDayAverage              *float64 `json:"twoHundredDayAverage"`
	FiftyDayAverageChange             *float64 `json:"fiftyDayAverageChange"`
	FiftyDayAverageChangePercent      *float64 `json:"fiftyDayAverageChangePercent"`
	TwoHundredDayAverageChange        *float64 `json:"twoHundredDayAverageChange"`
	TwoHundredDayAverageChangePercent *float64 `json:"twoHundredDayAverageChangePercent"`
	FiftyTwoWeekLow                   *float64 `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh                  *float64 `json:"fiftyTwoWeekHigh"`
}

// StockInfo is the merged company view. The embedded groups are also served
// on their own by the narrower stock tools.
type StockInfo struct {
	CompanyProfile
	Valuation
	FinancialSummary
	RiskMetrics
	DividendSummary
	PriceTarget
	QuickTechnicalIndicators
}

// FinancialOverview is the valuation block plus the financial summary.
type FinancialOverview struct {
	Valuation
	FinancialSummary
}

type AnalystPriceTargets struct {
	Current *float64 `json:"current"`
	High    *float64 `json:"high"`
	Low     *float64 `json:"low"`
	Mean    *float64 `json:"mean"`
	Median  *float64 `json:"median"`
}

type AnalystRecommendation struct {
	Period     string `json:"period"`
	StrongBuy  int64  `json:"strongBuy"`
	Buy        int64  `json:"buy"`
	Hold       int64  `json:"hold"`
	Sell       int64  `json:"sell"`
	StrongSell int64  `json:"strongSell"`
}

type RecommendationChange struct {
	Date        time.Time `json:"date"`
	Firm        string    `json:"firm"`
	ToGrade     string    `json:"toGrade,omitempty"`
	FromGrade   string    `json:"fromGrade,omitempty"`
	Action      string    `json:"action,omitempty"`
	PriceTarget *float64  `json:"currentPriceTarget,omitempty"`
}

type EarningsEstimate struct {
	Period           string   `json:"period"`
	Avg              *float64 `json:"avg"`
	Low              *float64 `json:"low"`
	High             *float64 `json:"high"`
	NumberOfAnalysts *int64   `json:"numberOfAnalysts"`
	YearAgoEps       *float64 `json:"yearAgoEps"`
	Growth           *float64 `json:"growth"`
}

type RevenueEstimate struct {
	Period           string   `json:"period"`
	Avg              *float64 `json:"avg"`
	Low              *float64 `json:"low"`
	High             *float64 `json:"high"`
	NumberOfAnalysts *int64   `json:"numberOfAnalysts"`
	YearAgoRevenue   *float64 `json:"yearAgoRevenue"`
	Growth           *float64 `json:"growth"`
}

type EPSTrend struct {
	Period    string   `json:"period"`
	Current   *float64 `json:"current"`
	Days7Ago  *float64 `json:"7daysAgo"`
	Days30Ago *float64 `json:"30daysAgo"`
	Days60Ago *float64 `json:"60daysAgo"`
	Days90Ago *float64 `json:"90daysAgo"`
}

type GrowthEstimate struct {
	Period     string   `json:"period"`
	StockTrend *float64 `json:"stockTrend"`
	IndexTrend *float64 `json:"indexTrend"`
}

type MajorHolders struct {
	InsidersPercentHeld          *float64 `json:"insidersPercentHeld"`
	InstitutionsPercentHeld      *float64 `json:"institutionsPercentHeld"`
	InstitutionsFloatPercentHeld *float64 `json:"institutionsFloatPercentHeld"`
	InstitutionsCount            *int64   `json:"institutionsCount"`
}

// Holding is one institutional or mutual fund position.
type Holding struct {
	Holder        string     `json:"holder"`
	Shares        *int64     `json:"shares"`
	DateReported  *time.Time `json:"dateReported"`
	Value         *float64   `json:"value"`
	PercentHeld   *float64   `json:"pctHeld"`
	PercentChange *float64   `json:"pctChange"`
}

type InsiderTransaction struct {
	Insider     string     `json:"insider"`
	Position    string     `json:"position,omitempty"`
	Transaction string     `json:"transaction,omitempty"`
	StartDate   *time.Time `json:"startDate"`
	Shares      *int64     `json:"shares"`
	Value       *float64   `json:"value"`
	Ownership   string     `json:"ownership,omitempty"`
}

type InsiderRosterHolder struct {
	Name                  string     `json:"name"`
	Position              string     `json:"position,omitempty"`
	URL                   string     `json:"url,omitempty"`
	MostRecentTransaction string     `json:"mostRecentTransaction,omitempty"`
	LatestTransactionDate *time.Time `json:"latestTransactionDate"`
	SharesOwnedDirectly   *float64   `json:"sharesOwnedDirectly"`
	PositionDirectDate    *time.Time `json:"positionDirectDate"`
	SharesOwnedIndirectly *float64   `json:"sharesOwnedIndirectly"`
	PositionIndirectDate  *time.Time `json:"positionIndirectDate"`
}

// StatementEntry is one reporting period of a financial statement. Line items
// vary by issuer, so they are keyed by their upstream names.
type StatementEntry struct {
	EndDate time.Time          `json:"endDate"`
	Items   map[string]float64 `json:"items"`
}

type SECFiling struct {
	Date     *time.Time        `json:"date"`
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	EdgarURL string            `json:"edgarUrl"`
	Exhibits map[string]string `json:"exhibits,omitempty"`
}

type FinancialCalendar struct {
	EarningsDates   []time.Time `json:"earningsDate"`
	EarningsAverage *float64    `json:"earningsAverage"`
	EarningsLow     *float64    `json:"earningsLow"`
	EarningsHigh    *float64    `json:"earningsHigh"`
	RevenueAverage  *float64    `json:"revenueAverage"`
	RevenueLow      *float64    `json:"revenueLow"`
	RevenueHigh     *float64    `json:"revenueHigh"`
	ExDividendDate  *time.Time  `json:"exDividendDate"`
	DividendDate    *time.Time  `json:"dividendDate"`
}

type EarningsHistoryEntry struct {
	Quarter         *time.Time `json:"quarter"`
	Period          string     `json:"period,omitempty"`
	EpsActual       *float64   `json:"epsActual"`
	EpsEstimate     *float64   `json:"epsEstimate"`
	EpsDifference   *float64   `json:"epsDifference"`
	SurprisePercent *float64   `json:"surprisePercent"`
}

type FundProfile struct {
	Symbol              string   `json:"symbol"`
	Family              string   `json:"family,omitempty"`
	CategoryName        string   `json:"categoryName,omitempty"`
	LegalType           string   `json:"legalType,omitempty"`
	AnnualExpenseRatio  *float64 `json:"annualReportExpenseRatio"`
	AnnualTurnover      *float64 `json:"annualHoldingsTurnover"`
	TotalNetAssets      *float64 `json:"totalNetAssets"`
	YTDReturn           *float64 `json:"ytdReturn"`
	ThreeYearAvgReturn  *float64 `json:"threeYearAverageReturn"`
	FiveYearAvgReturn   *float64 `json:"fiveYearAverageReturn"`
	Beta3Year           *float64 `json:"beta3Year"`
	LongBusinessSummary string   `json:"longBusinessSummary,omitempty"`
}

type FundHolding struct {
	Symbol  string  `json:"symbol"`
	Name    string  `json:"holdingName"`
	Percent float64 `json:"holdingPercent"`
}

type FundAssetAllocation struct {
	Cash        *float64 `json:"cashPosition"`
	Stock       *float64 `json:"stockPosition"`
	Bond        *float64 `json:"bondPosition"`
	Preferred   *float64 `json:"preferredPosition"`
	Convertible *float64 `json:"convertiblePosition"`
	Other       *float64 `json:"otherPosition"`
}

type FundTopHoldings struct {
	Holdings         []FundHolding       `json:"holdings"`
	SectorWeightings map[string]float64  `json:"sectorWeightings"`
	AssetAllocation  FundAssetAllocation `json:"assetAllocation"`
}

type FundOverview struct {
	Symbol       string `json:"symbol"`
	CategoryName string `json:"categoryName,omitempty"`
	Family       string `json:"family,omitempty"`
	LegalType    string `json:"legalType,omitempty"`
}

// FundOperations compares the fund's cost and size figures with its
// category average.
type FundOperations struct {
	Fund     FundOperationsRow `json:"fund"`
	Category FundOperationsRow `json:"categoryAverage"`
}

type FundOperationsRow struct {
	AnnualReportExpenseRatio *float64 `json:"annualReportExpenseRatio"`
	AnnualHoldingsTurnover   *float64 `json:"annualHoldingsTurnover"`
	TotalNetAssets           *float64 `json:"totalNetAssets"`
}

type FundEquityHoldings struct {
	Fund     FundEquityRow `json:"fund"`
	Category FundEquityRow `json:"categoryAverage"`
}

type FundEquityRow struct {
	PriceToEarnings         *float64 `json:"priceToEarnings"`
	PriceToBook             *float64 `json:"priceToBook"`
	PriceToSales            *float64 `json:"priceToSales"`
	PriceToCashflow         *float64 `json:"priceToCashflow"`
	MedianMarketCap         *float64 `json:"medianMarketCap"`
	ThreeYearEarningsGrowth *float64 `json:"threeYearEarningsGrowth"`
}

type FundBondHoldings struct {
	Fund     FundBondRow `json:"fund"`
	Category FundBondRow `json:"categoryAverage"`
}

type FundBondRow struct {
	Duration      *float64 `json:"duration"`
	Maturity      *float64 `json:"maturity"`
	CreditQuality *float64 `json:"creditQuality"`
}

// CryptoSentiment is a price-momentum proxy, not an official fear and greed
// index.
type CryptoSentiment struct {
	SentimentProxy      string                 `json:"sentiment_proxy"`
	AverageWeeklyChange float64                `json:"average_weekly_change"`
	CryptoData          []CryptoSentimentEntry `json:"crypto_data"`
	Note                string                 `json:"note"`
}

type CryptoSentimentEntry struct {
	Symbol              string  `json:"symbol"`
	DailyChangePercent  float64 `json:"daily_change_percent"`
	WeeklyChangePercent float64 `json:"weekly_change_percent"`
}
