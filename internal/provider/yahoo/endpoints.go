package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Options returns the first optionChain result for symbol. A zero expiration
// asks for the nearest one.
func (c *Client) Options(ctx context.Context, symbol string, expiration int64) (gjson.Result, error) {
	q := url.Values{}
	if expiration > 0 {
		q.Set("date", strconv.FormatInt(expiration, 10))
	}
	body, err := c.do(ctx, request{
		endpoint: "options",
		path:     "/v7/finance/options/" + url.PathEscape(symbol),
		query:    q,
		crumb:    true,
	})
	if err != nil {
		return gjson.Result{}, err
	}
	return firstResult(body, "optionChain")
}

// Quotes returns one quote object per symbol the provider recognised.
func (c *Client) Quotes(ctx context.Context, symbols ...string) ([]gjson.Result, error) {
	q := url.Values{}
	q.Set("symbols", strings.Join(symbols, ","))
	body, err := c.do(ctx, request{
		endpoint: "quote",
		path:     "/v7/finance/quote",
		query:    q,
		crumb:    true,
	})
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("yahoo quote: invalid json")
	}
	results := gjson.GetBytes(body, "quoteResponse.result").Array()
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return results, nil
}

// QuoteSummary returns the requested modules for symbol, keyed by module
// name.
func (c *Client) QuoteSummary(ctx context.Context, symbol string, modules ...string) (gjson.Result, error) {
	q := url.Values{}
	q.Set("modules", strings.Join(modules, ","))
	q.Set("formatted", "false")
	body, err := c.do(ctx, request{
		endpoint: "quote_summary",
		path:     "/v10/finance/quoteSummary/" + url.PathEscape(symbol),
		query:    q,
		crumb:    true,
	})
	if err != nil {
		return gjson.Result{}, err
	}
	return firstResult(body, "quoteSummary")
}

// Search runs a free-text lookup and returns the raw response, which carries
// both quotes and news.
func (c *Client) Search(ctx context.Context, query string, newsCount int) (gjson.Result, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("quotesCount", "0")
	q.Set("newsCount", strconv.Itoa(newsCount))
	body, err := c.do(ctx, request{
		endpoint: "search",
		path:     "/v1/finance/search",
		query:    q,
	})
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("yahoo search: invalid json")
	}
	return gjson.ParseBytes(body), nil
}

func (c *Client) MarketSummary(ctx context.Context, region string) ([]gjson.Result, error) {
	q := url.Values{}
	q.Set("region", region)
	q.Set("lang", "en-US")
	q.Set("fields", "shortName,regularMarketPrice,regularMarketChange,regularMarketChangePercent")
	body, err := c.do(ctx, request{
		endpoint: "market_summary",
		path:     "/v6/finance/quote/marketSummary",
		query:    q,
		crumb:    true,
	})
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("yahoo market summary: invalid json")
	}
	results := gjson.GetBytes(body, "marketSummaryResponse.result").Array()
	if len(results) == 0 {
		return nil, ErrNoData
	}
	return results, nil
}

func (c *Client) MarketTime(ctx context.Context, region string) (gjson.Result, error) {
	q := url.Values{}
	q.Set("region", region)
	q.Set("lang", "en-US")
	q.Set("formatted", "true")
	q.Set("key", "finance")
	body, err := c.do(ctx, request{
		endpoint: "market_time",
		path:     "/v6/finance/markettime",
		query:    q,
		crumb:    true,
	})
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("yahoo market time: invalid json")
	}
	mt := gjson.GetBytes(body, "finance.marketTimes.0.marketTime.0")
	if !mt.Exists() {
		return gjson.Result{}, ErrNoData
	}
	return mt, nil
}

// Sector returns the data object of the sector page identified by key,
// such as "technology".
func (c *Client) Sector(ctx context.Context, key string) (gjson.Result, error) {
	return c.domainPage(ctx, "sector", "/v1/finance/sectors/"+url.PathEscape(key))
}

// Industry returns the data object of the industry page identified by key,
// such as "semiconductors".
func (c *Client) Industry(ctx context.Context, key string) (gjson.Result, error) {
	return c.domainPage(ctx, "industry", "/v1/finance/industries/"+url.PathEscape(key))
}

func (c *Client) domainPage(ctx context.Context, endpoint, path string) (gjson.Result, error) {
	q := url.Values{}
	q.Set("formatted", "true")
	q.Set("withReturns", "true")
	q.Set("lang", "en-US")
	q.Set("region", "US")
	body, err := c.do(ctx, request{
		endpoint: endpoint,
		path:     path,
		query:    q,
		crumb:    true,
	})
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("yahoo %s: invalid json", endpoint)
	}
	data := gjson.GetBytes(body, "data")
	if !data.Exists() || data.Type == gjson.Null {
		return gjson.Result{}, ErrNoData
	}
	return data, nil
}

// Timeseries returns one fundamentals-timeseries result per requested type
// that carries data between period1 and period2.
func (c *Client) Timeseries(ctx context.Context, symbol string, types []string, period1, period2 time.Time) ([]gjson.Result, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("type", strings.Join(types, ","))
	q.Set("period1", strconv.FormatInt(period1.Unix(), 10))
	q.Set("period2", strconv.FormatInt(period2.Unix(), 10))
	body, err := c.do(ctx, request{
		endpoint: "timeseries",
		path:     "/ws/fundamentals-timeseries/v1/finance/timeseries/" + url.PathEscape(symbol),
		query:    q,
		crumb:    true,
	})
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("yahoo timeseries: invalid json")
	}
	var out []gjson.Result
	for _, r := range gjson.GetBytes(body, "timeseries.result").Array() {
		typ := r.Get("meta.type.0").String()
		if typ != "" && r.Get(typ).Exists() {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	return out, nil
}

// firstResult unwraps the {"<root>": {"result": [...], "error": ...}}
// envelope shared by several endpoints.
func firstResult(body []byte, root string) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("yahoo %s: invalid json", root)
	}
	env := gjson.GetBytes(body, root)
	if e := env.Get("error"); e.Exists() && e.Type != gjson.Null {
		if e.Get("code").String() == "Not Found" {
			return gjson.Result{}, fmt.Errorf("%w: %s", ErrNotFound, e.Get("description").String())
		}
		return gjson.Result{}, fmt.Errorf("yahoo %s api error: %s", root, e.Get("description").String())
	}
	first := env.Get("result.0")
	if !first.Exists() {
		return gjson.Result{}, ErrNoData
	}
	return first, nil
}
