package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tidwall/gjson"

	"openmarkets/internal/provider/yahoo"
)

// Source is the market data provider surface the repositories read from.
type Source interface {
	Chart(ctx context.Context, symbol, rng, interval string) (*yahoo.Chart, error)
	Options(ctx context.Context, symbol string, expiration int64) (gjson.Result, error)
	Quotes(ctx context.Context, symbols ...string) ([]gjson.Result, error)
	QuoteSummary(ctx context.Context, symbol string, modules ...string) (gjson.Result, error)
	Search(ctx context.Context, query string, newsCount int) (gjson.Result, error)
	MarketSummary(ctx context.Context, region string) ([]gjson.Result, error)
	MarketTime(ctx context.Context, region string) (gjson.Result, error)
	Sector(ctx context.Context, key string) (gjson.Result, error)
	Industry(ctx context.Context, key string) (gjson.Result, error)
	Timeseries(ctx context.Context, symbol string, types []string, period1, period2 time.Time) ([]gjson.Result, error)
}

// noData reports whether err means the provider has nothing for the symbol:
// either an empty result or an unknown or delisted ticker.
func noData(err error) bool {
	return errors.Is(err, yahoo.ErrNoData) || errors.Is(err, yahoo.ErrNotFound)
}

// raw unwraps the {"raw": x, "fmt": "..."} pairs quoteSummary still emits
// for some modules.
func raw(r gjson.Result) gjson.Result {
	if r.IsObject() {
		return r.Get("raw")
	}
	return r
}

func optFloat(r gjson.Result) *float64 {
	r = raw(r)
	if r.Type != gjson.Number {
		return nil
	}
	v := r.Float()
	return &v
}

func optInt(r gjson.Result) *int64 {
	r = raw(r)
	if r.Type != gjson.Number {
		return nil
	}
	v := r.Int()
	return &v
}

// optTime reads epoch seconds, or a YYYY-MM-DD string.
func optTime(r gjson.Result) *time.Time {
	r = raw(r)
	switch r.Type {
	case gjson.Number:
		t := time.Unix(r.Int(), 0).UTC()
		return &t
	case gjson.String:
		if t, err := time.Parse("2006-01-02", r.String()); err == nil {
			return &t
		}
	}
	return nil
}

func str(r gjson.Result) string {
	r = raw(r)
	if r.Type != gjson.String {
		return ""
	}
	return r.String()
}

// flatten merges the fields of every module object in a quoteSummary result
// into one view. Earlier modules win on key collisions.
func flatten(result gjson.Result, modules ...string) map[string]gjson.Result {
	out := make(map[string]gjson.Result)
	for _, m := range modules {
		result.Get(m).ForEach(func(key, value gjson.Result) bool {
			if _, ok := out[key.String()]; !ok {
				out[key.String()] = value
			}
			return true
		})
	}
	return out
}
