package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"openmarkets/internal/analytics"
)

func TestToolsListAndInvoke(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, _ := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	tools, err := session.ListTools(ctx, &sdkmcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("list tools failed: %v", err)
	}
	names := make(map[string]bool, len(tools.Tools))
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"get_technical_indicators", "get_volatility_metrics", "get_support_resistance_levels",
		"get_options_expiration_dates", "get_option_chain", "get_options_volume_analysis",
		"get_options_by_moneyness", "get_options_skew", "get_stock_fast_info",
		"get_crypto_fear_greed_proxy", "get_income_statement", "get_market_status",
		"get_sec_filings", "get_ttm_income_statement", "get_ttm_cash_flow_statement",
		"get_fund_overview", "get_fund_operations", "get_fund_equity_holdings", "get_fund_bond_holdings",
		"get_sector_overview", "get_sector_overview_for_ticker", "get_sector_top_companies",
		"get_sector_top_companies_for_ticker", "get_sector_top_etfs", "get_sector_top_mutual_funds",
		"get_sector_industries", "get_sector_research_reports", "get_all_industries",
		"get_industry_overview", "get_industry_top_companies", "get_industry_top_growth_companies",
		"get_industry_top_performing_companies",
	} {
		if !names[want] {
			t.Fatalf("tool %s not registered", want)
		}
	}

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "get_stock_fast_info", Arguments: map[string]any{"symbol": "aapl"}})
	if err != nil {
		t.Fatalf("call tool failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res.Content)
	}
	var fast struct {
		Symbol string `json:"symbol"`
		Result struct {
			LastPrice float64 `json:"lastPrice"`
		} `json:"result"`
	}
	if err := decodeToolJSON(res, &fast); err != nil {
		t.Fatalf("decode fast info: %v", err)
	}
	if fast.Symbol != "AAPL" || fast.Result.LastPrice != 190.5 {
		t.Fatalf("unexpected fast info: %+v", fast)
	}
}

func TestEngineToolsReturnMetricsOrUnavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, stubs := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_technical_indicators",
		Arguments: map[string]any{"symbol": "AAPL", "period": "3mo"},
	})
	if err != nil {
		t.Fatalf("call tool failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res.Content)
	}
	var indicators struct {
		CurrentPrice float64 `json:"current_price"`
	}
	if err := decodeToolJSON(res, &indicators); err != nil {
		t.Fatalf("decode indicators: %v", err)
	}
	if indicators.CurrentPrice != 104 {
		t.Fatalf("current_price = %v, want 104", indicators.CurrentPrice)
	}
	if stubs.technical.lastPeriod != "3mo" {
		t.Fatalf("period = %q, want 3mo", stubs.technical.lastPeriod)
	}

	cases := map[string]string{
		"get_volatility_metrics":      "no_data",
		"get_options_volume_analysis": "no_data",
		"get_options_skew":            "empty_chain",
	}
	for name, kind := range cases {
		res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: map[string]any{"symbol": "AAPL"}})
		if err != nil {
			t.Fatalf("%s: call failed: %v", name, err)
		}
		if res.IsError {
			t.Fatalf("%s: expected a result, got tool error %+v", name, res.Content)
		}
		var out struct {
			Error string `json:"error"`
			Kind  string `json:"kind"`
		}
		if err := decodeToolJSON(res, &out); err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if out.Kind != kind || out.Error == "" {
			t.Fatalf("%s: unexpected payload %+v", name, out)
		}
	}
}

func TestOptionsToolsPassArguments(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, stubs := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_options_by_moneyness",
		Arguments: map[string]any{"symbol": "AAPL", "expiration": "2025-12-19", "moneyness_range": 0.2},
	})
	if err != nil || res.IsError {
		t.Fatalf("moneyness call failed: %v %+v", err, res)
	}
	if stubs.options.lastRange != 0.2 {
		t.Fatalf("moneyness range = %v, want 0.2", stubs.options.lastRange)
	}

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_option_chain",
		Arguments: map[string]any{"symbol": "AAPL", "expiration": "2025-12-19"},
	})
	if err != nil || res.IsError {
		t.Fatalf("chain call failed: %v %+v", err, res)
	}
	if stubs.options.lastExpiration != "2025-12-19" {
		t.Fatalf("expiration = %q", stubs.options.lastExpiration)
	}

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_options_expiration_dates",
		Arguments: map[string]any{"symbol": "aapl"},
	})
	if err != nil || res.IsError {
		t.Fatalf("expirations call failed: %v %+v", err, res)
	}
	var dates expirationDatesOutput
	if err := decodeToolJSON(res, &dates); err != nil {
		t.Fatalf("decode expirations: %v", err)
	}
	if dates.Symbol != "AAPL" || len(dates.Expirations) != 1 {
		t.Fatalf("unexpected expirations: %+v", dates)
	}
}

func TestToolsValidationFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, _ := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_stock_fast_info",
		Arguments: map[string]any{"symbol": "not a symbol!"},
	})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool-level validation error")
	}
}

func TestToolsWithoutServiceFail(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, _ := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_crypto_info",
		Arguments: map[string]any{"ticker": "BTC"},
	})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool error for missing crypto service")
	}
	text, _ := res.Content[0].(*sdkmcp.TextContent)
	if text == nil || !strings.Contains(text.Text, "service unavailable") {
		t.Fatalf("unexpected error content: %+v", res.Content)
	}
}

func TestEngineResult(t *testing.T) {
	type metrics struct{ Value int }

	out, err := engineResult(&metrics{Value: 3}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m, ok := out.(*metrics); !ok || m.Value != 3 {
		t.Fatalf("unexpected output: %#v", out)
	}

	out, err = engineResult[metrics](nil, analytics.ErrInsufficientHistory)
	if err != nil {
		t.Fatalf("analytics error should become a result, got %v", err)
	}
	if u, ok := out.(analytics.Unavailable); !ok || u.Kind != "insufficient_history" {
		t.Fatalf("unexpected output: %#v", out)
	}

	_, err = engineResult[metrics](nil, context.DeadlineExceeded)
	if err != context.DeadlineExceeded {
		t.Fatalf("expected infrastructure error to pass through, got %v", err)
	}
}

func TestMCPSpanName(t *testing.T) {
	req := &sdkmcp.CallToolRequest{Params: &sdkmcp.CallToolParamsRaw{Name: "get_options_skew"}}
	if got := mcpSpanName("tools/call", req); got != "mcp.tool.get_options_skew" {
		t.Fatalf("span name = %q", got)
	}
	if got := mcpSpanName("resources/read", nil); got != "mcp.resource.read" {
		t.Fatalf("span name = %q", got)
	}
	if got := mcpSpanName("tools/list", nil); got != "mcp.tools.list" {
		t.Fatalf("span name = %q", got)
	}
}

func TestSectorToolsNormalizeKeys(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, stubs := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_sector_overview",
		Arguments: map[string]any{"sector": "Technology"},
	})
	if err != nil || res.IsError {
		t.Fatalf("call failed: %v %+v", err, res)
	}
	var overview struct {
		Sector string `json:"sector"`
		Result struct {
			CompaniesCount int `json:"companies_count"`
		} `json:"result"`
	}
	if err := decodeToolJSON(res, &overview); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if overview.Sector != "technology" || overview.Result.CompaniesCount != 815 || stubs.sectors.lastKey != "technology" {
		t.Fatalf("unexpected overview %+v (repo saw %q)", overview, stubs.sectors.lastKey)
	}

	stubs.sectors.lastKey = ""
	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_sector_top_companies_for_ticker",
		Arguments: map[string]any{"symbol": "msft"},
	})
	if err != nil || res.IsError {
		t.Fatalf("call failed: %v %+v", err, res)
	}
	if stubs.sectors.lastKey != "technology" {
		t.Fatalf("ticker should resolve to its sector, repo saw %q", stubs.sectors.lastKey)
	}

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_sector_overview_for_ticker",
		Arguments: map[string]any{"symbol": "SPY"},
	})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected an error for a ticker without a sector")
	}

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_industry_top_growth_companies",
		Arguments: map[string]any{"industry": "Banking"},
	})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected an error for an unknown industry")
	}

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_all_industries",
		Arguments: map[string]any{"sector": "energy"},
	})
	if err != nil || res.IsError {
		t.Fatalf("call failed: %v %+v", err, res)
	}
	var industries struct {
		Sector     string   `json:"sector"`
		Industries []string `json:"industries"`
	}
	if err := decodeToolJSON(res, &industries); err != nil {
		t.Fatalf("decode industries: %v", err)
	}
	if industries.Sector != "energy" || len(industries.Industries) != 8 || industries.Industries[0] != "oil-gas-drilling" {
		t.Fatalf("unexpected industries %+v", industries)
	}
}
