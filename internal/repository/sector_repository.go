package repository

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

// SectorRepository reads Yahoo's sector and industry pages. Keys are the
// lower-case slugs Yahoo uses in its URLs.
type SectorRepository struct {
	source Source
	tracer trace.Tracer
}

func NewSectorRepository(source Source, tracer trace.Tracer) *SectorRepository {
	return &SectorRepository{source: source, tracer: tracer}
}

// GetSectorKey returns the sector slug of symbol, or "" when the provider
// does not classify it.
func (r *SectorRepository) GetSectorKey(ctx context.Context, symbol string) (string, error) {
	ctx, span := r.tracer.Start(ctx, "sector-repo.get-sector-key")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.QuoteSummary(ctx, symbol, "assetProfile")
	if err != nil {
		return "", err
	}
	return str(res.Get("assetProfile.sectorKey")), nil
}

func (r *SectorRepository) GetSectorOverview(ctx context.Context, sector string) (*domain.SectorOverview, error) {
	data, err := r.sector(ctx, "sector-repo.get-overview", sector)
	if err != nil {
		return nil, err
	}
	return overview(sector, data), nil
}

func (r *SectorRepository) GetSectorTopCompanies(ctx context.Context, sector string) ([]domain.SectorCompany, error) {
	data, err := r.sector(ctx, "sector-repo.get-top-companies", sector)
	if noData(err) {
		return []domain.SectorCompany{}, nil
	}
	if err != nil {
		return nil, err
	}
	rows := data.Get("topCompanies").Array()
	out := make([]domain.SectorCompany, 0, len(rows))
	for _, c := range rows {
		out = append(out, domain.SectorCompany{
			Symbol:       str(c.Get("symbol")),
			Name:         str(c.Get("name")),
			Rating:       str(c.Get("rating")),
			MarketWeight: optFloat(c.Get("marketWeight")),
		})
	}
	return out, nil
}

// GetSectorTopETFs maps fund symbol to fund name.
func (r *SectorRepository) GetSectorTopETFs(ctx context.Context, sector string) (map[string]string, error) {
	return r.funds(ctx, "sector-repo.get-top-etfs", sector, "topETFs")
}

func (r *SectorRepository) GetSectorTopMutualFunds(ctx context.Context, sector string) (map[string]string, error) {
	return r.funds(ctx, "sector-repo.get-top-mutual-funds", sector, "topMutualFunds")
}

func (r *SectorRepository) GetSectorResearchReports(ctx context.Context, sector string) ([]domain.ResearchReport, error) {
	data, err := r.sector(ctx, "sector-repo.get-research-reports", sector)
	if noData(err) {
		return []domain.ResearchReport{}, nil
	}
	if err != nil {
		return nil, err
	}
	rows := data.Get("researchReports").Array()
	out := make([]domain.ResearchReport, 0, len(rows))
	for _, rr := range rows {
		out = append(out, domain.ResearchReport{
			ID:          str(rr.Get("id")),
			HeadHTML:    str(rr.Get("headHtml")),
			Provider:    str(rr.Get("provider")),
			ReportTitle: str(rr.Get("reportTitle")),
			ReportType:  str(rr.Get("reportType")),
			TargetPrice: targetPrice(rr.Get("targetPrice")),
		})
	}
	return out, nil
}

func (r *SectorRepository) GetIndustryOverview(ctx context.Context, industry string) (*domain.SectorOverview, error) {
	data, err := r.industry(ctx, "sector-repo.get-industry-overview", industry)
	if err != nil {
		return nil, err
	}
	return overview(industry, data), nil
}

func (r *SectorRepository) GetIndustryTopCompanies(ctx context.Context, industry string) ([]domain.IndustryCompany, error) {
	return r.companies(ctx, "sector-repo.get-industry-top-companies", industry, "topCompanies")
}

func (r *SectorRepository) GetIndustryTopGrowthCompanies(ctx context.Context, industry string) ([]domain.IndustryCompany, error) {
	return r.companies(ctx, "sector-repo.get-industry-top-growth-companies", industry, "topGrowthCompanies")
}

func (r *SectorRepository) GetIndustryTopPerformingCompanies(ctx context.Context, industry string) ([]domain.IndustryCompany, error) {
	return r.companies(ctx, "sector-repo.get-industry-top-performing-companies", industry, "topPerformingCompanies")
}

func (r *SectorRepository) sector(ctx context.Context, span, key string) (gjson.Result, error) {
	ctx, s := r.tracer.Start(ctx, span)
	defer s.End()
	s.SetAttributes(attribute.String("sector", key))
	return r.source.Sector(ctx, key)
}

func (r *SectorRepository) industry(ctx context.Context, span, key string) (gjson.Result, error) {
	ctx, s := r.tracer.Start(ctx, span)
	defer s.End()
	s.SetAttributes(attribute.String("industry", key))
	return r.source.Industry(ctx, key)
}

func (r *SectorRepository) funds(ctx context.Context, span, sector, field string) (map[string]string, error) {
	data, err := r.sector(ctx, span, sector)
	if noData(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make(map[string]string)
	for _, f := range data.Get(field).Array() {
		if sym := str(f.Get("symbol")); sym != "" {
			out[sym] = str(f.Get("name"))
		}
	}
	return out, nil
}

func (r *SectorRepository) companies(ctx context.Context, span, industry, field string) ([]domain.IndustryCompany, error) {
	data, err := r.industry(ctx, span, industry)
	if noData(err) {
		return []domain.IndustryCompany{}, nil
	}
	if err != nil {
		return nil, err
	}
	rows := data.Get(field).Array()
	out := make([]domain.IndustryCompany, 0, len(rows))
	for _, c := range rows {
		out = append(out, domain.IndustryCompany{
			Symbol:         str(c.Get("symbol")),
			Name:           str(c.Get("name")),
			Rating:         str(c.Get("rating")),
			MarketWeight:   optFloat(c.Get("marketWeight")),
			YTDReturn:      optFloat(c.Get("ytdReturn")),
			LastPrice:      optFloat(c.Get("lastPrice")),
			TargetPrice:    optFloat(c.Get("targetPrice")),
			GrowthEstimate: optFloat(c.Get("growthEstimate")),
		})
	}
	return out, nil
}

func overview(key string, data gjson.Result) *domain.SectorOverview {
	o := data.Get("overview")
	return &domain.SectorOverview{
		Key:             key,
		Name:            str(data.Get("name")),
		CompaniesCount:  optInt(o.Get("companiesCount")),
		MarketCap:       optFloat(o.Get("marketCap")),
		MessageBoardID:  str(o.Get("messageBoardId")),
		Description:     str(o.Get("description")),
		IndustriesCount: optInt(o.Get("industriesCount")),
		MarketWeight:    optFloat(o.Get("marketWeight")),
		EmployeeCount:   optInt(o.Get("employeeCount")),
	}
}

// targetPrice accepts a number, a numeric string such as "$215.00", or a
// placeholder like "N/A" which yields nil.
func targetPrice(r gjson.Result) *float64 {
	if v := optFloat(r); v != nil {
		return v
	}
	s := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(str(r)))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
