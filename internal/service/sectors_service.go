package service

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

type SectorRepository interface {
	GetSectorKey(ctx context.Context, symbol string) (string, error)
	GetSectorOverview(ctx context.Context, sector string) (*domain.SectorOverview, error)
	GetSectorTopCompanies(ctx context.Context, sector string) ([]domain.SectorCompany, error)
	GetSectorTopETFs(ctx context.Context, sector string) (map[string]string, error)
	GetSectorTopMutualFunds(ctx context.Context, sector string) (map[string]string, error)
	GetSectorResearchReports(ctx context.Context, sector string) ([]domain.ResearchReport, error)
	GetIndustryOverview(ctx context.Context, industry string) (*domain.SectorOverview, error)
	GetIndustryTopCompanies(ctx context.Context, industry string) ([]domain.IndustryCompany, error)
	GetIndustryTopGrowthCompanies(ctx context.Context, industry string) ([]domain.IndustryCompany, error)
	GetIndustryTopPerformingCompanies(ctx context.Context, industry string) ([]domain.IndustryCompany, error)
}

// SectorsService serves sector and industry pages. Sector and industry keys
// are checked against the known taxonomy before any upstream call.
type SectorsService struct {
	tracer trace.Tracer
	repo   SectorRepository
}

func NewSectorsService(tracer trace.Tracer, repo SectorRepository) *SectorsService {
	return &SectorsService{tracer: tracer, repo: repo}
}

// NormalizeSector accepts display names such as "Financial Services" as well
// as slugs.
func NormalizeSector(sector string) (string, error) {
	key := slug(sector)
	if key == "" {
		return "", invalid("sector is required")
	}
	if !domain.IsSector(key) {
		return "", invalid("unknown sector: %s", sector)
	}
	return key, nil
}

func NormalizeIndustry(industry string) (string, error) {
	key := slug(industry)
	if key == "" {
		return "", invalid("industry is required")
	}
	if !domain.IsIndustry(key) {
		return "", invalid("unknown industry: %s", industry)
	}
	return key, nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}

func (s *SectorsService) GetSectorOverview(ctx context.Context, sector string) (*domain.SectorOverview, error) {
	return bySector(ctx, s.tracer, "sectors-service.get-overview", sector, s.repo.GetSectorOverview)
}

func (s *SectorsService) GetSectorTopCompanies(ctx context.Context, sector string) ([]domain.SectorCompany, error) {
	return bySector(ctx, s.tracer, "sectors-service.get-top-companies", sector, s.repo.GetSectorTopCompanies)
}

func (s *SectorsService) GetSectorTopETFs(ctx context.Context, sector string) (map[string]string, error) {
	return bySector(ctx, s.tracer, "sectors-service.get-top-etfs", sector, s.repo.GetSectorTopETFs)
}

func (s *SectorsService) GetSectorTopMutualFunds(ctx context.Context, sector string) (map[string]string, error) {
	return bySector(ctx, s.tracer, "sectors-service.get-top-mutual-funds", sector, s.repo.GetSectorTopMutualFunds)
}

func (s *SectorsService) GetSectorResearchReports(ctx context.Context, sector string) ([]domain.ResearchReport, error) {
	return bySector(ctx, s.tracer, "sectors-service.get-research-reports", sector, s.repo.GetSectorResearchReports)
}

func (s *SectorsService) GetSectorIndustries(ctx context.Context, sector string) ([]string, error) {
	key, err := NormalizeSector(sector)
	if err != nil {
		return nil, err
	}
	return domain.Industries(key), nil
}

// GetAllIndustries lists every industry, or only those of sector when one is
// given.
func (s *SectorsService) GetAllIndustries(ctx context.Context, sector string) ([]string, error) {
	if strings.TrimSpace(sector) == "" {
		return domain.Industries(""), nil
	}
	return s.GetSectorIndustries(ctx, sector)
}

func (s *SectorsService) GetSectorOverviewForTicker(ctx context.Context, symbol string) (*domain.SectorOverview, error) {
	return forTicker(ctx, s, "sectors-service.get-overview-for-ticker", symbol, s.repo.GetSectorOverview)
}

func (s *SectorsService) GetSectorTopCompaniesForTicker(ctx context.Context, symbol string) ([]domain.SectorCompany, error) {
	return forTicker(ctx, s, "sectors-service.get-top-companies-for-ticker", symbol, s.repo.GetSectorTopCompanies)
}

func (s *SectorsService) GetIndustryOverview(ctx context.Context, industry string) (*domain.SectorOverview, error) {
	return byIndustry(ctx, s.tracer, "sectors-service.get-industry-overview", industry, s.repo.GetIndustryOverview)
}

func (s *SectorsService) GetIndustryTopCompanies(ctx context.Context, industry string) ([]domain.IndustryCompany, error) {
	return byIndustry(ctx, s.tracer, "sectors-service.get-industry-top-companies", industry, s.repo.GetIndustryTopCompanies)
}

func (s *SectorsService) GetIndustryTopGrowthCompanies(ctx context.Context, industry string) ([]domain.IndustryCompany, error) {
	return byIndustry(ctx, s.tracer, "sectors-service.get-industry-top-growth-companies", industry, s.repo.GetIndustryTopGrowthCompanies)
}

func (s *SectorsService) GetIndustryTopPerformingCompanies(ctx context.Context, industry string) ([]domain.IndustryCompany, error) {
	return byIndustry(ctx, s.tracer, "sectors-service.get-industry-top-performing-companies", industry, s.repo.GetIndustryTopPerformingCompanies)
}

func bySector[T any](ctx context.Context, tracer trace.Tracer, name, sector string, read func(context.Context, string) (T, error)) (T, error) {
	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	var zero T
	key, err := NormalizeSector(sector)
	if err != nil {
		return zero, err
	}
	span.SetAttributes(attribute.String("sector", key))

	out, err := read(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", name, key, err)
	}
	return out, nil
}

func byIndustry[T any](ctx context.Context, tracer trace.Tracer, name, industry string, read func(context.Context, string) (T, error)) (T, error) {
	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	var zero T
	key, err := NormalizeIndustry(industry)
	if err != nil {
		return zero, err
	}
	span.SetAttributes(attribute.String("industry", key))

	out, err := read(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", name, key, err)
	}
	return out, nil
}

// forTicker resolves the sector of symbol and then reads that sector. A
// ticker the provider does not classify, such as an ETF, is a caller error.
func forTicker[T any](ctx context.Context, s *SectorsService, name, symbol string, read func(context.Context, string) (T, error)) (T, error) {
	var zero T
	key, err := bySymbol(ctx, s.tracer, name, symbol, s.repo.GetSectorKey)
	if err != nil {
		return zero, err
	}
	if key == "" {
		return zero, invalid("no sector found for %s", strings.ToUpper(strings.TrimSpace(symbol)))
	}
	return bySector(ctx, s.tracer, name, key, read)
}
