package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"openmarkets/internal/service"
)

func registerSectorTools(server *mcp.Server, sectors SectorReader) {
	ok := sectors != nil

	sectorTool(server, "get_sector_overview", "Company count, market cap, weight and description of a sector", sectors, ok, SectorReader.GetSectorOverview)
	symbolTool(server, "get_sector_overview_for_ticker", "Overview of the sector a ticker belongs to", sectors, ok, SectorReader.GetSectorOverviewForTicker)
	sectorTool(server, "get_sector_top_companies", "Largest companies in a sector with rating and market weight", sectors, ok, SectorReader.GetSectorTopCompanies)
	symbolTool(server, "get_sector_top_companies_for_ticker", "Largest companies in the sector a ticker belongs to", sectors, ok, SectorReader.GetSectorTopCompaniesForTicker)
	sectorTool(server, "get_sector_top_etfs", "Top ETFs of a sector, symbol to name", sectors, ok, SectorReader.GetSectorTopETFs)
	sectorTool(server, "get_sector_top_mutual_funds", "Top mutual funds of a sector, symbol to name", sectors, ok, SectorReader.GetSectorTopMutualFunds)
	sectorTool(server, "get_sector_industries", "Industry keys within a sector", sectors, ok, SectorReader.GetSectorIndustries)
	sectorTool(server, "get_sector_research_reports", "Recent research reports covering a sector", sectors, ok, SectorReader.GetSectorResearchReports)
	industryTool(server, "get_industry_overview", "Company count, market cap, weight and description of an industry", sectors, ok, SectorReader.GetIndustryOverview)
	industryTool(server, "get_industry_top_companies", "Largest companies in an industry", sectors, ok, SectorReader.GetIndustryTopCompanies)
	industryTool(server, "get_industry_top_growth_companies", "Industry companies with the highest growth estimates", sectors, ok, SectorReader.GetIndustryTopGrowthCompanies)
	industryTool(server, "get_industry_top_performing_companies", "Industry companies with the best year to date return", sectors, ok, SectorReader.GetIndustryTopPerformingCompanies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_all_industries",
		Description: "Every known industry key, or those of one sector, sorted",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in optionalSectorInput) (*mcp.CallToolResult, industriesOutput, error) {
		if !ok {
			return nil, industriesOutput{}, unavailable("get_all_industries")
		}
		industries, err := sectors.GetAllIndustries(ctx, in.Sector)
		if err != nil {
			return nil, industriesOutput{}, err
		}
		out := industriesOutput{Industries: industries}
		if in.Sector != "" {
			out.Sector, _ = service.NormalizeSector(in.Sector)
		}
		return nil, out, nil
	})
}

func sectorTool[S any, T any](server *mcp.Server, name, description string, svc S, available bool, read func(S, context.Context, string) (T, error)) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in sectorInput) (*mcp.CallToolResult, sectorResult[T], error) {
		if !available {
			return nil, sectorResult[T]{}, unavailable(name)
		}
		key, err := service.NormalizeSector(in.Sector)
		if err != nil {
			return nil, sectorResult[T]{}, err
		}
		result, err := read(svc, ctx, key)
		if err != nil {
			return nil, sectorResult[T]{}, err
		}
		return nil, sectorResult[T]{Sector: key, Result: result}, nil
	})
}

func industryTool[S any, T any](server *mcp.Server, name, description string, svc S, available bool, read func(S, context.Context, string) (T, error)) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in industryInput) (*mcp.CallToolResult, industryResult[T], error) {
		if !available {
			return nil, industryResult[T]{}, unavailable(name)
		}
		key, err := service.NormalizeIndustry(in.Industry)
		if err != nil {
			return nil, industryResult[T]{}, err
		}
		result, err := read(svc, ctx, key)
		if err != nil {
			return nil, industryResult[T]{}, err
		}
		return nil, industryResult[T]{Industry: key, Result: result}, nil
	})
}
