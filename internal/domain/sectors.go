package domain

import "slices"

// SectorOverview summarises a sector or an industry page.
type SectorOverview struct {
	Key             string   `json:"key"`
	Name            string   `json:"name,omitempty"`
	CompaniesCount  *int64   `json:"companies_count"`
	MarketCap       *float64 `json:"market_cap"`
	MessageBoardID  string   `json:"message_board_id,omitempty"`
	Description     string   `json:"description,omitempty"`
	IndustriesCount *int64   `json:"industries_count"`
	MarketWeight    *float64 `json:"market_weight"`
	EmployeeCount   *int64   `json:"employee_count"`
}

type SectorCompany struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	Rating       string   `json:"rating,omitempty"`
	MarketWeight *float64 `json:"market_weight"`
}

// SectorFund is a top ETF or mutual fund listed on a sector page.
type SectorFund struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// IndustryCompany is one row of an industry's top, top growth or top
// performing company lists. Each list fills a different subset of fields.
type IndustryCompany struct {
	Symbol         string   `json:"symbol"`
	Name           string   `json:"name"`
	Rating         string   `json:"rating,omitempty"`
	MarketWeight   *float64 `json:"market_weight,omitempty"`
	YTDReturn      *float64 `json:"ytd_return,omitempty"`
	LastPrice      *float64 `json:"last_price,omitempty"`
	TargetPrice    *float64 `json:"target_price,omitempty"`
	GrowthEstimate *float64 `json:"growth_estimate,omitempty"`
}

type ResearchReport struct {
	ID          string   `json:"id"`
	HeadHTML    string   `json:"headHtml,omitempty"`
	Provider    string   `json:"provider,omitempty"`
	ReportTitle string   `json:"reportTitle,omitempty"`
	ReportType  string   `json:"reportType,omitempty"`
	TargetPrice *float64 `json:"targetPrice"`
}

// SectorIndustries maps each Yahoo sector key to the industry keys it
// contains.
var SectorIndustries = map[string][]string{
	"basic-materials": {
		"agricultural-inputs", "aluminum", "building-materials", "chemicals",
		"coking-coal", "copper", "gold", "lumber-wood-production",
		"other-industrial-metals-mining", "other-precious-metals-mining",
		"paper-paper-products", "silver", "specialty-chemicals", "steel",
	},
	"communication-services": {
		"advertising-agencies", "broadcasting", "electronic-gaming-multimedia",
		"entertainment", "internet-content-information", "publishing",
		"telecom-services",
	},
	"consumer-cyclical": {
		"apparel-manufacturing", "apparel-retail", "auto-manufacturers",
		"auto-parts", "auto-truck-dealerships", "department-stores",
		"footwear-accessories", "furnishings-fixtures-appliances", "gambling",
		"home-improvement-retail", "internet-retail", "leisure", "lodging",
		"luxury-goods", "packaging-containers", "personal-services",
		"recreational-vehicles", "residential-construction", "resorts-casinos",
		"restaurants", "specialty-retail", "textile-manufacturing",
		"travel-services",
	},
	"consumer-defensive": {
		"beverages-brewers", "beverages-non-alcoholic",
		"beverages-wineries-distilleries", "confectioners", "discount-stores",
		"education-training-services", "farm-products", "food-distribution",
		"grocery-stores", "household-personal-products", "packaged-foods",
		"tobacco",
	},
	"energy": {
		"oil-gas-drilling", "oil-gas-e-p", "oil-gas-equipment-services",
		"oil-gas-integrated", "oil-gas-midstream", "oil-gas-refining-marketing",
		"thermal-coal", "uranium",
	},
	"financial-services": {
		"asset-management", "banks-diversified", "banks-regional",
		"capital-markets", "credit-services", "financial-conglomerates",
		"financial-data-stock-exchanges", "insurance-brokers",
		"insurance-diversified", "insurance-life", "insurance-property-casualty",
		"insurance-reinsurance", "insurance-specialty", "mortgage-finance",
		"shell-companies",
	},
	"healthcare": {
		"biotechnology", "diagnostics-research", "drug-manufacturers-general",
		"drug-manufacturers-specialty-generic", "health-information-services",
		"healthcare-plans", "medical-care-facilities", "medical-devices",
		"medical-distribution", "medical-instruments-supplies",
		"pharmaceutical-retailers",
	},
	"industrials": {
		"aerospace-defense", "airlines", "airports-air-services",
		"building-products-equipment", "business-equipment-supplies",
		"conglomerates", "consulting-services", "electrical-equipment-parts",
		"engineering-construction", "farm-heavy-construction-machinery",
		"industrial-distribution", "infrastructure-operations",
		"integrated-freight-logistics", "marine-shipping", "metal-fabrication",
		"pollution-treatment-controls", "railroads", "rental-leasing-services",
		"security-protection-services", "specialty-business-services",
		"specialty-industrial-machinery", "staffing-employment-services",
		"tools-accessories", "trucking", "waste-management",
	},
	"real-estate": {
		"real-estate-development", "real-estate-diversified",
		"real-estate-services", "reit-diversified", "reit-healthcare-facilities",
		"reit-hotel-motel", "reit-industrial", "reit-mortgage", "reit-office",
		"reit-residential", "reit-retail", "reit-specialty",
	},
	"technology": {
		"communication-equipment", "computer-hardware", "consumer-electronics",
		"electronic-components", "electronics-computer-distribution",
		"information-technology-services", "scientific-technical-instruments",
		"semiconductor-equipment-materials", "semiconductors",
		"software-application", "software-infrastructure", "solar",
	},
	"utilities": {
		"utilities-diversified", "utilities-independent-power-producers",
		"utilities-regulated-electric", "utilities-regulated-gas",
		"utilities-regulated-water", "utilities-renewable",
	},
}

func IsSector(key string) bool {
	_, ok := SectorIndustries[key]
	return ok
}

func IsIndustry(key string) bool {
	for _, industries := range SectorIndustries {
		if slices.Contains(industries, key) {
			return true
		}
	}
	return false
}

// Industries returns the sorted industry keys of sector, or of every sector
// when sector is empty.
func Industries(sector string) []string {
	out := []string{}
	if sector != "" {
		out = append(out, SectorIndustries[sector]...)
	} else {
		for _, industries := range SectorIndustries {
			out = append(out, industries...)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
