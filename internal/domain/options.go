package domain

import "time"

type OptionType string

const (
	OptionCall OptionType = "call"
	OptionPut  OptionType = "put"
)

// OptionContract is one row of an options chain. Volume is nil when the
// provider omits it for illiquid strikes.
type OptionContract struct {
	ContractSymbol    string     `json:"contractSymbol"`
	Type              OptionType `json:"type"`
	Strike            float64    `json:"strike"`
	LastPrice         float64    `json:"lastPrice"`
	Bid               float64    `json:"bid"`
	Ask               float64    `json:"ask"`
	Change            float64    `json:"change"`
	PercentChange     float64    `json:"percentChange"`
	Volume            *int64     `json:"volume"`
	OpenInterest      int64      `json:"openInterest"`
	ImpliedVolatility float64    `json:"impliedVolatility"`
	InTheMoney        bool       `json:"inTheMoney"`
	ContractSize      string     `json:"contractSize,omitempty"`
	Currency          string     `json:"currency,omitempty"`
	Expiration        time.Time  `json:"expiration"`
	LastTradeDate     time.Time  `json:"lastTradeDate"`
}

// VolumeOrZero treats a missing volume as no trades.
func (c OptionContract) VolumeOrZero() int64 {
	if c.Volume == nil {
		return 0
	}
	return *c.Volume
}

// OptionsChain holds the calls and puts of one symbol for one expiration.
// Expirations lists every expiration the provider reported for the symbol;
// it is empty when the symbol has no listed options. MissingColumns names
// required contract fields that were absent from the upstream payload.
type OptionsChain struct {
	Symbol         string           `json:"symbol"`
	Expiration     time.Time        `json:"expiration"`
	Expirations    []time.Time      `json:"-"`
	Calls          []OptionContract `json:"calls"`
	Puts           []OptionContract `json:"puts"`
	UnderlyingLast *float64         `json:"underlying_price,omitempty"`
	MissingColumns []string         `json:"-"`
}

func (c *OptionsChain) HasExpirations() bool {
	return c != nil && len(c.Expirations) > 0
}

func (c *OptionsChain) IsEmpty() bool {
	return c == nil || (len(c.Calls) == 0 && len(c.Puts) == 0)
}

// ExpirationDate formats a contract expiration the way callers pass it in.
func ExpirationDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
