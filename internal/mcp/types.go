package mcp

import (
	"errors"
	"fmt"

	"openmarkets/internal/analytics"
)

var errServiceUnavailable = errors.New("service unavailable")

type symbolInput struct {
	Symbol string `json:"symbol" jsonschema:"ticker symbol (e.g. AAPL, SPY, ^GSPC)"`
}

type periodInput struct {
	Symbol string `json:"symbol" jsonschema:"ticker symbol (e.g. AAPL)"`
	Period string `json:"period,omitempty" jsonschema:"lookback period: 1d,5d,1mo,3mo,6mo,1y,2y,5y,10y,ytd,max"`
}

type historyInput struct {
	Symbol   string `json:"symbol" jsonschema:"ticker symbol (e.g. AAPL)"`
	Period   string `json:"period,omitempty" jsonschema:"lookback period, default 1y"`
	Interval string `json:"interval,omitempty" jsonschema:"bar interval: 1m,2m,5m,15m,30m,60m,90m,1h,1d,5d,1wk,1mo,3mo; default 1d"`
}

type expirationInput struct {
	Symbol     string `json:"symbol" jsonschema:"underlying ticker symbol (e.g. AAPL)"`
	Expiration string `json:"expiration,omitempty" jsonschema:"expiration date YYYY-MM-DD; nearest expiration when omitted"`
}

type moneynessInput struct {
	Symbol         string  `json:"symbol" jsonschema:"underlying ticker symbol (e.g. AAPL)"`
	Expiration     string  `json:"expiration,omitempty" jsonschema:"expiration date YYYY-MM-DD; nearest expiration when omitted"`
	MoneynessRange float64 `json:"moneyness_range,omitempty" jsonschema:"half-width of the strike band around spot, in (0, 1], default 0.1"`
}

type newsInput struct {
	Symbol string `json:"symbol" jsonschema:"ticker symbol (e.g. AAPL)"`
	Count  int    `json:"count,omitempty" jsonschema:"number of news items, default 10, max 50"`
}

type cryptoInput struct {
	Ticker string `json:"ticker" jsonschema:"crypto symbol (e.g. BTC or BTC-USD)"`
}

type cryptoHistoryInput struct {
	Ticker   string `json:"ticker" jsonschema:"crypto symbol (e.g. BTC or BTC-USD)"`
	Period   string `json:"period,omitempty" jsonschema:"lookback period, default 1y"`
	Interval string `json:"interval,omitempty" jsonschema:"bar interval, default 1d"`
}

type topCryptoInput struct {
	Count int `json:"count,omitempty" jsonschema:"number of cryptocurrencies, 1-20, default 10"`
}

type fearGreedInput struct {
	Tickers []string `json:"tickers,omitempty" jsonschema:"crypto symbols to include; a default basket when omitted"`
}

type marketInput struct {
	Market string `json:"market,omitempty" jsonschema:"US, GB, ASIA, EUROPE, RATES, COMMODITIES, CURRENCIES or CRYPTOCURRENCIES; default US"`
}

type sectorInput struct {
	Sector string `json:"sector" jsonschema:"sector key or name (e.g. technology, financial-services)"`
}

type optionalSectorInput struct {
	Sector string `json:"sector,omitempty" jsonschema:"sector key or name; every sector when omitted"`
}

type industryInput struct {
	Industry string `json:"industry" jsonschema:"industry key or name (e.g. semiconductors, banks-regional)"`
}

type industriesOutput struct {
	Sector     string   `json:"sector,omitempty"`
	Industries []string `json:"industries"`
}

type expirationDatesOutput struct {
	Symbol      string   `json:"symbol"`
	Expirations []string `json:"expirations"`
}

// symbolResult wraps a per-symbol payload so every tool returns an object.
type symbolResult[T any] struct {
	Symbol string `json:"symbol"`
	Result T      `json:"result"`
}

type sectorResult[T any] struct {
	Sector string `json:"sector"`
	Result T      `json:"result"`
}

type industryResult[T any] struct {
	Industry string `json:"industry"`
	Result   T      `json:"result"`
}

// engineResult renders expected analytics failures as an error-shaped result
// instead of a tool error.
func engineResult[T any](v *T, err error) (any, error) {
	if err != nil {
		if u, ok := analytics.AsUnavailable(err); ok {
			return u, nil
		}
		return nil, err
	}
	return v, nil
}

func unavailable(name string) error {
	return fmt.Errorf("%s %w", name, errServiceUnavailable)
}
