package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"openmarkets/internal/service"
)

func registerTools(server *mcp.Server, s Services) {
	registerTechnicalTools(server, s.Technical)
	registerOptionsTools(server, s.Options)
	registerStockTools(server, s.Stock)
	registerCryptoTools(server, s.Crypto)
	registerAnalysisTools(server, s.Analysis)
	registerHoldingsTools(server, s.Holdings)
	registerFinancialsTools(server, s.Financials)
	registerFundsTools(server, s.Funds)
	registerMarketsTools(server, s.Markets)
	registerSectorTools(server, s.Sectors)
}

// symbolTool registers a tool that reads one payload for a symbol through
// read, a method expression on the reader interface.
func symbolTool[S any, T any](server *mcp.Server, name, description string, svc S, available bool, read func(S, context.Context, string) (T, error)) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in symbolInput) (*mcp.CallToolResult, symbolResult[T], error) {
		if !available {
			return nil, symbolResult[T]{}, unavailable(name)
		}
		symbol, err := service.NormalizeSymbol(in.Symbol)
		if err != nil {
			return nil, symbolResult[T]{}, err
		}
		result, err := read(svc, ctx, symbol)
		if err != nil {
			return nil, symbolResult[T]{}, err
		}
		return nil, symbolResult[T]{Symbol: symbol, Result: result}, nil
	})
}

// engineTool registers a tool backed by an analytics engine. Its output is
// either the metrics or an {"error", "kind"} object, so it carries no
// output schema.
func engineTool[In any](server *mcp.Server, name, description string, available bool, run func(context.Context, In) (any, error)) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		if !available {
			return nil, nil, unavailable(name)
		}
		out, err := run(ctx, in)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}
