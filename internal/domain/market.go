package domain

import "time"

var SupportedPeriods = []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"}

var SupportedIntervals = []string{"1m", "2m", "5m", "15m", "30m", "60m", "90m", "1h", "1d", "5d", "1wk", "1mo", "3mo"}

// PriceBar is one trading-period OHLCV observation.
type PriceBar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// PriceSeries is a time-ascending run of bars for one symbol and query window.
type PriceSeries struct {
	Symbol   string     `json:"symbol"`
	Period   string     `json:"period"`
	Interval string     `json:"interval"`
	Bars     []PriceBar `json:"bars"`
}

func (s PriceSeries) Len() int {
	return len(s.Bars)
}

func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i := range s.Bars {
		out[i] = s.Bars[i].Close
	}
	return out
}

func (s PriceSeries) Highs() []float64 {
	out := make([]float64, len(s.Bars))
	for i := range s.Bars {
		out[i] = s.Bars[i].High
	}
	return out
}

func (s PriceSeries) Lows() []float64 {
	out := make([]float64, len(s.Bars))
	for i := range s.Bars {
		out[i] = s.Bars[i].Low
	}
	return out
}

func (s PriceSeries) Volumes() []float64 {
	out := make([]float64, len(s.Bars))
	for i := range s.Bars {
		out[i] = float64(s.Bars[i].Volume)
	}
	return out
}

type Dividend struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"dividends"`
}

type Split struct {
	Date        time.Time `json:"date"`
	Numerator   float64   `json:"numerator"`
	Denominator float64   `json:"denominator"`
	Ratio       float64   `json:"stock_splits"`
}

// CorporateAction merges dividends and splits on the same date.
type CorporateAction struct {
	Date        time.Time `json:"date"`
	Dividends   float64   `json:"dividends"`
	StockSplits float64   `json:"stock_splits"`
}

// Quote is a point-in-time market snapshot for one symbol.
type Quote struct {
	Symbol                            string    `json:"symbol"`
	ShortName                         string    `json:"short_name,omitempty"`
	LongName                          string    `json:"long_name,omitempty"`
	QuoteType                         string    `json:"quote_type,omitempty"`
	Currency                          string    `json:"currency,omitempty"`
	Exchange                          string    `json:"exchange,omitempty"`
	MarketState                       string    `json:"market_state,omitempty"`
	RegularMarketPrice                float64   `json:"regular_market_price"`
	RegularMarketChange               float64   `json:"regular_market_change"`
	RegularMarketChangePercent        float64   `json:"regular_market_change_percent"`
	RegularMarketPreviousClose        float64   `json:"regular_market_previous_close"`
	RegularMarketOpen                 float64   `json:"regular_market_open"`
	RegularMarketDayHigh              float64   `json:"regular_market_day_high"`
	RegularMarketDayLow               float64   `json:"regular_market_day_low"`
	RegularMarketVolume               int64     `json:"regular_market_volume"`
	RegularMarketTime                 time.Time `json:"regular_market_time"`
	Bid                               float64   `json:"bid,omitempty"`
	Ask                               float64   `json:"ask,omitempty"`
	MarketCap                         int64     `json:"market_cap,omitempty"`
	SharesOutstanding                 int64     `json:"shares_outstanding,omitempty"`
	AverageDailyVolume3Month          int64     `json:"average_daily_volume_3_month,omitempty"`
	AverageDailyVolume10Day           int64     `json:"average_daily_volume_10_day,omitempty"`
	FiftyTwoWeekHigh                  float64   `json:"fifty_two_week_high"`
	FiftyTwoWeekLow                   float64   `json:"fifty_two_week_low"`
	FiftyDayAverage                   float64   `json:"fifty_day_average"`
	FiftyDayAverageChange             float64   `json:"fifty_day_average_change"`
	FiftyDayAverageChangePercent      float64   `json:"fifty_day_average_change_percent"`
	TwoHundredDayAverage              float64   `json:"two_hundred_day_average"`
	TwoHundredDayAverageChange        float64   `json:"two_hundred_day_average_change"`
	TwoHundredDayAverageChangePercent float64   `json:"two_hundred_day_average_change_percent"`
}

type NewsItem struct {
	UUID           string    `json:"uuid"`
	Title          string    `json:"title"`
	Publisher      string    `json:"publisher"`
	Link           string    `json:"link"`
	Type           string    `json:"type,omitempty"`
	PublishedAt    time.Time `json:"published_at"`
	RelatedTickers []string  `json:"related_tickers,omitempty"`
}

type MarketType string

const (
	MarketUS               MarketType = "US"
	MarketGB               MarketType = "GB"
	MarketAsia             MarketType = "ASIA"
	MarketEurope           MarketType = "EUROPE"
	MarketRates            MarketType = "RATES"
	MarketCommodities      MarketType = "COMMODITIES"
	MarketCurrencies       MarketType = "CURRENCIES"
	MarketCryptocurrencies MarketType = "CRYPTOCURRENCIES"
)

var SupportedMarkets = []MarketType{
	MarketUS, MarketGB, MarketAsia, MarketEurope,
	MarketRates, MarketCommodities, MarketCurrencies, MarketCryptocurrencies,
}

// Region returns the Yahoo region code used to query a market.
func (m MarketType) Region() string {
	switch m {
	case MarketGB:
		return "GB"
	case MarketAsia:
		return "JP"
	case MarketEurope:
		return "FR"
	default:
		return "US"
	}
}

func (m MarketType) IsValid() bool {
	for _, s := range SupportedMarkets {
		if m == s {
			return true
		}
	}
	return false
}

type MarketSummaryEntry struct {
	Symbol                     string  `json:"symbol"`
	ShortName                  string  `json:"short_name,omitempty"`
	Exchange                   string  `json:"exchange,omitempty"`
	FullExchangeName           string  `json:"full_exchange_name,omitempty"`
	QuoteType                  string  `json:"quote_type,omitempty"`
	MarketState                string  `json:"market_state,omitempty"`
	RegularMarketPrice         float64 `json:"regular_market_price"`
	RegularMarketChange        float64 `json:"regular_market_change"`
	RegularMarketChangePercent float64 `json:"regular_market_change_percent"`
	RegularMarketPreviousClose float64 `json:"regular_market_previous_close"`
	RegularMarketTime          int64   `json:"regular_market_time"`
}

type MarketSummary struct {
	Market  MarketType                    `json:"market"`
	Summary map[string]MarketSummaryEntry `json:"summary"`
}

type MarketStatus struct {
	Market   MarketType `json:"market"`
	ID       string     `json:"id,omitempty"`
	Name     string     `json:"name,omitempty"`
	Status   string     `json:"status,omitempty"`
	Message  string     `json:"message,omitempty"`
	Open     *time.Time `json:"open,omitempty"`
	Close    *time.Time `json:"close,omitempty"`
	Timezone string     `json:"timezone,omitempty"`
}
