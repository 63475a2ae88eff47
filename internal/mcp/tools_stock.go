package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"openmarkets/internal/domain"
	"openmarkets/internal/service"
)

func registerStockTools(server *mcp.Server, stock StockReader) {
	ok := stock != nil

	symbolTool(server, "get_stock_fast_info", "Last price, day range, 52-week range and moving averages", stock, ok, StockReader.GetFastInfo)
	symbolTool(server, "get_stock_info", "Company profile, valuation, financial, risk and dividend data", stock, ok, StockReader.GetInfo)
	symbolTool(server, "get_stock_dividends", "Dividend history", stock, ok, StockReader.GetDividends)
	symbolTool(server, "get_stock_splits", "Stock split history", stock, ok, StockReader.GetSplits)
	symbolTool(server, "get_stock_corporate_actions", "Dividends and splits merged by date", stock, ok, StockReader.GetCorporateActions)
	symbolTool(server, "get_financial_summary", "Valuation and financial summary", stock, ok, StockReader.GetFinancialSummary)
	symbolTool(server, "get_risk_metrics", "Governance risk scores", stock, ok, StockReader.GetRiskMetrics)
	symbolTool(server, "get_dividend_summary", "Dividend rate, yield and payout", stock, ok, StockReader.GetDividendSummary)
	symbolTool(server, "get_price_target", "Analyst price target and recommendation", stock, ok, StockReader.GetPriceTarget)
	symbolTool(server, "get_quick_technical_indicators", "Price against the 50 and 200 day averages and the 52-week range", stock, ok, StockReader.GetQuickTechnicalIndicators)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stock_history",
		Description: "OHLCV bars for a symbol; period defaults to 1y and interval to 1d",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in historyInput) (*mcp.CallToolResult, domain.PriceSeries, error) {
		if !ok {
			return nil, domain.PriceSeries{}, unavailable("get_stock_history")
		}
		series, err := stock.GetHistory(ctx, in.Symbol, in.Period, in.Interval)
		if err != nil {
			return nil, domain.PriceSeries{}, err
		}
		return nil, series, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stock_news",
		Description: "Recent news items for a symbol",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in newsInput) (*mcp.CallToolResult, symbolResult[[]domain.NewsItem], error) {
		if !ok {
			return nil, symbolResult[[]domain.NewsItem]{}, unavailable("get_stock_news")
		}
		symbol, err := service.NormalizeSymbol(in.Symbol)
		if err != nil {
			return nil, symbolResult[[]domain.NewsItem]{}, err
		}
		news, err := stock.GetNews(ctx, symbol, in.Count)
		if err != nil {
			return nil, symbolResult[[]domain.NewsItem]{}, err
		}
		return nil, symbolResult[[]domain.NewsItem]{Symbol: symbol, Result: news}, nil
	})
}

type cryptoListOutput struct {
	Cryptocurrencies []domain.FastInfo `json:"cryptocurrencies"`
}

func registerCryptoTools(server *mcp.Server, crypto CryptoReader) {
	ok := crypto != nil

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_crypto_info",
		Description: "Fast info for a cryptocurrency quoted in USD",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in cryptoInput) (*mcp.CallToolResult, domain.FastInfo, error) {
		if !ok {
			return nil, domain.FastInfo{}, unavailable("get_crypto_info")
		}
		info, err := crypto.GetInfo(ctx, in.Ticker)
		if err != nil {
			return nil, domain.FastInfo{}, err
		}
		return nil, *info, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_crypto_history",
		Description: "OHLCV bars for a cryptocurrency quoted in USD",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in cryptoHistoryInput) (*mcp.CallToolResult, domain.PriceSeries, error) {
		if !ok {
			return nil, domain.PriceSeries{}, unavailable("get_crypto_history")
		}
		series, err := crypto.GetHistory(ctx, in.Ticker, in.Period, in.Interval)
		if err != nil {
			return nil, domain.PriceSeries{}, err
		}
		return nil, series, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_top_cryptocurrencies",
		Description: "Fast info for the largest cryptocurrencies, up to 20",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in topCryptoInput) (*mcp.CallToolResult, cryptoListOutput, error) {
		if !ok {
			return nil, cryptoListOutput{}, unavailable("get_top_cryptocurrencies")
		}
		list, err := crypto.GetTopCryptocurrencies(ctx, in.Count)
		if err != nil {
			return nil, cryptoListOutput{}, err
		}
		return nil, cryptoListOutput{Cryptocurrencies: list}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_crypto_fear_greed_proxy",
		Description: "Sentiment label derived from the average weekly price change of a crypto basket",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in fearGreedInput) (*mcp.CallToolResult, domain.CryptoSentiment, error) {
		if !ok {
			return nil, domain.CryptoSentiment{}, unavailable("get_crypto_fear_greed_proxy")
		}
		sentiment, err := crypto.GetFearGreedProxy(ctx, in.Tickers)
		if err != nil {
			return nil, domain.CryptoSentiment{}, err
		}
		return nil, *sentiment, nil
	})
}
