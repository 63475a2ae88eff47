// Package app wires the provider, repositories and services shared by the
// MCP and REST binaries.
package app

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/cache"
	"openmarkets/internal/config"
	mcpserver "openmarkets/internal/mcp"
	"openmarkets/internal/provider/yahoo"
	"openmarkets/internal/repository"
	"openmarkets/internal/service"
)

type Services struct {
	// Quotes is the shared quote repository, exposed for the cache warmer.
	Quotes *repository.QuoteRepository

	Technical  *service.TechnicalService
	Options    *service.OptionsService
	Stock      *service.StockService
	Crypto     *service.CryptoService
	Analysis   *service.AnalysisService
	Holdings   *service.HoldingsService
	Financials *service.FinancialsService
	Funds      *service.FundsService
	Markets    *service.MarketsService
	Sectors    *service.SectorsService
}

// NewYahooClient builds the provider client from the loaded config.
func NewYahooClient(tracer trace.Tracer, cfg *config.Config) *yahoo.Client {
	return yahoo.NewClient(tracer, yahoo.Config{
		Timeout:           cfg.YahooTimeout(),
		MaxRetries:        cfg.YahooMaxRetries,
		RequestsPerMinute: cfg.YahooRequestsPerMin,
		ProxyURL:          cfg.YahooProxyURL,
	})
}

// NewQuoteCache returns nil when redis is not configured.
func NewQuoteCache(ttl time.Duration) repository.QuoteCache {
	if cache.Client == nil {
		return nil
	}
	return cache.NewQuoteCache(cache.Client, ttl)
}

// NewServices builds every service over source. quotes may be nil.
func NewServices(tracer trace.Tracer, source repository.Source, quotes repository.QuoteCache) *Services {
	quoteRepo := repository.NewQuoteRepository(source, quotes, tracer)
	priceRepo := repository.NewPriceRepository(source, tracer)
	stockRepo := repository.NewStockRepository(source, tracer)
	optionsRepo := repository.NewOptionsRepository(source, tracer)

	return &Services{
		Quotes:     quoteRepo,
		Technical:  service.NewTechnicalService(tracer, priceRepo),
		Options:    service.NewOptionsService(tracer, optionsRepo, quoteRepo),
		Stock:      service.NewStockService(tracer, quoteRepo, priceRepo, stockRepo),
		Crypto:     service.NewCryptoService(tracer, quoteRepo, priceRepo),
		Analysis:   service.NewAnalysisService(tracer, repository.NewAnalysisRepository(source, tracer)),
		Holdings:   service.NewHoldingsService(tracer, repository.NewHoldingsRepository(source, tracer)),
		Financials: service.NewFinancialsService(tracer, repository.NewFinancialsRepository(source, tracer)),
		Funds:      service.NewFundsService(tracer, repository.NewFundsRepository(source, tracer)),
		Markets:    service.NewMarketsService(tracer, repository.NewMarketRepository(source, tracer)),
		Sectors:    service.NewSectorsService(tracer, repository.NewSectorRepository(source, tracer)),
	}
}

// MCP exposes the services as the readers the MCP server registers.
func (s *Services) MCP() mcpserver.Services {
	return mcpserver.Services{
		Technical:  s.Technical,
		Options:    s.Options,
		Stock:      s.Stock,
		Crypto:     s.Crypto,
		Analysis:   s.Analysis,
		Holdings:   s.Holdings,
		Financials: s.Financials,
		Funds:      s.Funds,
		Markets:    s.Markets,
		Sectors:    s.Sectors,
	}
}
