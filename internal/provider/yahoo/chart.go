package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"time"

	"openmarkets/internal/domain"
)

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol               string  `json:"symbol"`
		Currency             string  `json:"currency"`
		ExchangeTimezoneName string  `json:"exchangeTimezoneName"`
		RegularMarketPrice   float64 `json:"regularMarketPrice"`
	} `json:"meta"`
	Timestamp []int64 `json:"timestamp"`
	Events    struct {
		Dividends map[string]struct {
			Amount float64 `json:"amount"`
			Date   int64   `json:"date"`
		} `json:"dividends"`
		Splits map[string]struct {
			Date        int64   `json:"date"`
			Numerator   float64 `json:"numerator"`
			Denominator float64 `json:"denominator"`
		} `json:"splits"`
	} `json:"events"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// Chart is a decoded chart payload: OHLCV bars plus corporate events.
type Chart struct {
	Symbol             string
	Currency           string
	Timezone           string
	RegularMarketPrice float64
	Bars               []domain.PriceBar
	Dividends          []domain.Dividend
	Splits             []domain.Split
}

// Chart fetches bars for symbol over rng at interval. Bars missing any of
// open, high, low or close are dropped and the rest sorted by time.
func (c *Client) Chart(ctx context.Context, symbol, rng, interval string) (*Chart, error) {
	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", interval)
	q.Set("events", "div,split")
	q.Set("includePrePost", "false")

	body, err := c.do(ctx, request{
		endpoint: "chart",
		path:     "/v8/finance/chart/" + url.PathEscape(symbol),
		query:    q,
	})
	if err != nil {
		return nil, err
	}

	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("yahoo chart decode: %w", err)
	}
	if resp.Chart.Error != nil {
		if resp.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, resp.Chart.Error.Description)
		}
		return nil, fmt.Errorf("yahoo chart api error: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, ErrNoData
	}

	result := resp.Chart.Result[0]
	out := &Chart{
		Symbol:             result.Meta.Symbol,
		Currency:           result.Meta.Currency,
		Timezone:           result.Meta.ExchangeTimezoneName,
		RegularMarketPrice: result.Meta.RegularMarketPrice,
	}
	if out.Symbol == "" {
		out.Symbol = symbol
	}

	if len(result.Indicators.Quote) > 0 {
		quote := result.Indicators.Quote[0]
		out.Bars = make([]domain.PriceBar, 0, len(result.Timestamp))
		for i, ts := range result.Timestamp {
			o, h, l, cl := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
			if o == nil || h == nil || l == nil || cl == nil {
				continue
			}
			bar := domain.PriceBar{
				Timestamp: time.Unix(ts, 0).UTC(),
				Open:      *o,
				High:      *h,
				Low:       *l,
				Close:     *cl,
			}
			if i < len(quote.Volume) && quote.Volume[i] != nil {
				bar.Volume = *quote.Volume[i]
			}
			out.Bars = append(out.Bars, bar)
		}
		sort.Slice(out.Bars, func(i, j int) bool { return out.Bars[i].Timestamp.Before(out.Bars[j].Timestamp) })
	}

	for _, d := range result.Events.Dividends {
		out.Dividends = append(out.Dividends, domain.Dividend{
			Date:   time.Unix(d.Date, 0).UTC(),
			Amount: d.Amount,
		})
	}
	sort.Slice(out.Dividends, func(i, j int) bool { return out.Dividends[i].Date.Before(out.Dividends[j].Date) })

	for _, s := range result.Events.Splits {
		split := domain.Split{
			Date:        time.Unix(s.Date, 0).UTC(),
			Numerator:   s.Numerator,
			Denominator: s.Denominator,
		}
		if s.Denominator != 0 {
			split.Ratio = s.Numerator / s.Denominator
		}
		out.Splits = append(out.Splits, split)
	}
	sort.Slice(out.Splits, func(i, j int) bool { return out.Splits[i].Date.Before(out.Splits[j].Date) })

	return out, nil
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}
