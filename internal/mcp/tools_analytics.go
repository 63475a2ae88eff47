package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"openmarkets/internal/domain"
	"openmarkets/internal/service"
)

func registerTechnicalTools(server *mcp.Server, technical TechnicalReader) {
	ok := technical != nil

	engineTool(server, "get_technical_indicators",
		"Current price, 52-week range position, average volume and SMA 20/50/200 with price deviation; period defaults to 6mo",
		ok, func(ctx context.Context, in periodInput) (any, error) {
			return engineResult(technical.GetTechnicalIndicators(ctx, in.Symbol, in.Period))
		})

	engineTool(server, "get_volatility_metrics",
		"Daily and annualized volatility, largest daily gain and loss, and up/down day counts; period defaults to 1y",
		ok, func(ctx context.Context, in periodInput) (any, error) {
			return engineResult(technical.GetVolatilityMetrics(ctx, in.Symbol, in.Period))
		})

	engineTool(server, "get_support_resistance_levels",
		"Up to five distinct highs above and lows below the last close, nearest first; period defaults to 6mo",
		ok, func(ctx context.Context, in periodInput) (any, error) {
			return engineResult(technical.GetSupportResistanceLevels(ctx, in.Symbol, in.Period))
		})
}

func registerOptionsTools(server *mcp.Server, options OptionsReader) {
	ok := options != nil

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_options_expiration_dates",
		Description: "List option expiration dates for a symbol, nearest first",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in symbolInput) (*mcp.CallToolResult, expirationDatesOutput, error) {
		if !ok {
			return nil, expirationDatesOutput{}, unavailable("get_options_expiration_dates")
		}
		symbol, err := service.NormalizeSymbol(in.Symbol)
		if err != nil {
			return nil, expirationDatesOutput{}, err
		}
		dates, err := options.GetExpirationDates(ctx, symbol)
		if err != nil {
			return nil, expirationDatesOutput{}, err
		}
		return nil, expirationDatesOutput{Symbol: symbol, Expirations: dates}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_option_chain",
		Description: "Calls and puts for one expiration (nearest when omitted)",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in expirationInput) (*mcp.CallToolResult, domain.OptionsChain, error) {
		if !ok {
			return nil, domain.OptionsChain{}, unavailable("get_option_chain")
		}
		chain, err := options.GetOptionChain(ctx, in.Symbol, in.Expiration)
		if err != nil {
			return nil, domain.OptionsChain{}, err
		}
		return nil, *chain, nil
	})

	contractsTool := func(name, description string, read func(context.Context, string, string) ([]domain.OptionContract, error)) {
		mcp.AddTool(server, &mcp.Tool{
			Name:        name,
			Description: description,
		}, func(ctx context.Context, _ *mcp.CallToolRequest, in expirationInput) (*mcp.CallToolResult, symbolResult[[]domain.OptionContract], error) {
			if !ok {
				return nil, symbolResult[[]domain.OptionContract]{}, unavailable(name)
			}
			symbol, err := service.NormalizeSymbol(in.Symbol)
			if err != nil {
				return nil, symbolResult[[]domain.OptionContract]{}, err
			}
			contracts, err := read(ctx, symbol, in.Expiration)
			if err != nil {
				return nil, symbolResult[[]domain.OptionContract]{}, err
			}
			return nil, symbolResult[[]domain.OptionContract]{Symbol: symbol, Result: contracts}, nil
		})
	}
	contractsTool("get_call_options", "Call contracts for one expiration (nearest when omitted)",
		func(ctx context.Context, symbol, expiration string) ([]domain.OptionContract, error) {
			return options.GetCallOptions(ctx, symbol, expiration)
		})
	contractsTool("get_put_options", "Put contracts for one expiration (nearest when omitted)",
		func(ctx context.Context, symbol, expiration string) ([]domain.OptionContract, error) {
			return options.GetPutOptions(ctx, symbol, expiration)
		})

	engineTool(server, "get_options_volume_analysis",
		"Total call and put volume and open interest with put/call ratios (null when the call side is zero)",
		ok, func(ctx context.Context, in expirationInput) (any, error) {
			return engineResult(options.GetVolumeAnalysis(ctx, in.Symbol, in.Expiration))
		})

	engineTool(server, "get_options_by_moneyness",
		"Calls and puts with strikes within current price * (1 ± moneyness_range)",
		ok, func(ctx context.Context, in moneynessInput) (any, error) {
			return engineResult(options.GetByMoneyness(ctx, in.Symbol, in.Expiration, in.MoneynessRange))
		})

	engineTool(server, "get_options_skew",
		"Implied volatility by strike minus at-the-money implied volatility, for calls and puts",
		ok, func(ctx context.Context, in expirationInput) (any, error) {
			return engineResult(options.GetSkew(ctx, in.Symbol, in.Expiration))
		})
}
