package mcp

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"openmarkets/internal/domain"
	"openmarkets/internal/service"
)

func registerResources(server *mcp.Server, stock StockReader) {
	server.AddResource(&mcp.Resource{
		URI:         "market://periods",
		Name:        "supported-periods",
		Description: "Lookback periods accepted by history and indicator tools",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return jsonResource(req.Params.URI, domain.SupportedPeriods)
	})

	server.AddResource(&mcp.Resource{
		URI:         "market://intervals",
		Name:        "supported-intervals",
		Description: "Bar intervals accepted by history tools",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return jsonResource(req.Params.URI, domain.SupportedIntervals)
	})

	server.AddResource(&mcp.Resource{
		URI:         "market://markets",
		Name:        "supported-markets",
		Description: "Markets accepted by the market summary and status tools",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return jsonResource(req.Params.URI, domain.SupportedMarkets)
	})

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "quote://{symbol}",
		Name:        "quote-by-symbol",
		Description: "Latest quote for a symbol",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if stock == nil {
			return nil, unavailable("quote")
		}

		// Index symbols such as ^GSPC are not valid URL hosts, so the
		// symbol is cut out of the URI rather than parsed as one.
		raw, found := strings.CutPrefix(req.Params.URI, "quote://")
		if !found {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		raw, err := url.PathUnescape(strings.TrimSuffix(raw, "/"))
		if err != nil {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		symbol, err := service.NormalizeSymbol(raw)
		if err != nil {
			return nil, err
		}

		quote, err := stock.GetQuote(ctx, symbol)
		if err != nil {
			return nil, err
		}
		return jsonResource(req.Params.URI, quote)
	})
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(body),
		}},
	}, nil
}
