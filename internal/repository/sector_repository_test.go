package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const technologySectorFixture = `{
	"name":"Technology","symbol":"^YH311",
	"overview":{"companiesCount":815,"marketCap":{"raw":20345000000000,"fmt":"20.3T"},"messageBoardId":"INDEXYH311","description":"Companies in software, hardware and semiconductors.","industriesCount":12,"marketWeight":{"raw":0.2951,"fmt":"29.51%"},"employeeCount":{"raw":5406000,"fmt":"5.4M"}},
	"topCompanies":[
		{"symbol":"NVDA","name":"NVIDIA Corporation","rating":"Buy","marketWeight":{"raw":0.1654,"fmt":"16.54%"}},
		{"symbol":"AAPL","name":"Apple Inc.","rating":"Buy","marketWeight":{"raw":0.1613,"fmt":"16.13%"}}
	],
	"topETFs":[{"symbol":"XLK","name":"Technology Select Sector SPDR"},{"symbol":"VGT","name":"Vanguard Information Technology ETF"},{"name":"missing symbol"}],
	"topMutualFunds":[{"symbol":"FSPTX","name":"Fidelity Select Technology"}],
	"researchReports":[
		{"id":"MS_1","headHtml":"Semis lead","provider":"Morningstar","reportTitle":"Chip demand","reportType":"Analyst Report","targetPrice":"$215.00"},
		{"id":"AR_2","provider":"Argus","reportTitle":"Cloud","targetPrice":"N/A"},
		{"id":"AR_3","provider":"Argus","targetPrice":{"raw":180.5,"fmt":"180.50"}}
	]
}`

const semiconductorsIndustryFixture = `{
	"name":"Semiconductors","sectorKey":"technology",
	"overview":{"companiesCount":67,"marketCap":{"raw":6500000000000},"industriesCount":null,"marketWeight":{"raw":0.32}},
	"topCompanies":[{"symbol":"NVDA","name":"NVIDIA Corporation","rating":"Buy","marketWeight":{"raw":0.5}}],
	"topPerformingCompanies":[{"symbol":"AVGO","name":"Broadcom Inc.","ytdReturn":{"raw":0.62},"lastPrice":{"raw":178.1},"targetPrice":{"raw":195}}],
	"topGrowthCompanies":[{"symbol":"MU","name":"Micron Technology, Inc.","ytdReturn":{"raw":0.18},"growthEstimate":{"raw":5.07}}]
}`

func TestSectorRepositoryReadsSectorPage(t *testing.T) {
	src := &stubSource{sectors: map[string]string{"technology": technologySectorFixture}}
	repo := NewSectorRepository(src, testTracer())
	ctx := context.Background()

	overview, err := repo.GetSectorOverview(ctx, "technology")
	require.NoError(t, err)
	assert.Equal(t, "technology", src.lastPage)
	assert.Equal(t, "Technology", overview.Name)
	require.NotNil(t, overview.CompaniesCount)
	assert.Equal(t, int64(815), *overview.CompaniesCount)
	require.NotNil(t, overview.MarketWeight)
	assert.Equal(t, 0.2951, *overview.MarketWeight)
	require.NotNil(t, overview.EmployeeCount)
	assert.Equal(t, int64(5406000), *overview.EmployeeCount)
	assert.Equal(t, "INDEXYH311", overview.MessageBoardID)

	top, err := repo.GetSectorTopCompanies(ctx, "technology")
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "NVDA", top[0].Symbol)
	assert.Equal(t, "Buy", top[0].Rating)
	require.NotNil(t, top[1].MarketWeight)
	assert.Equal(t, 0.1613, *top[1].MarketWeight)

	etfs, err := repo.GetSectorTopETFs(ctx, "technology")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"XLK": "Technology Select Sector SPDR",
		"VGT": "Vanguard Information Technology ETF",
	}, etfs)

	funds, err := repo.GetSectorTopMutualFunds(ctx, "technology")
	require.NoError(t, err)
	assert.Equal(t, "Fidelity Select Technology", funds["FSPTX"])

	reports, err := repo.GetSectorResearchReports(ctx, "technology")
	require.NoError(t, err)
	require.Len(t, reports, 3)
	require.NotNil(t, reports[0].TargetPrice)
	assert.Equal(t, 215.0, *reports[0].TargetPrice)
	assert.Nil(t, reports[1].TargetPrice)
	require.NotNil(t, reports[2].TargetPrice)
	assert.Equal(t, 180.5, *reports[2].TargetPrice)
}

func TestSectorRepositoryReadsIndustryPage(t *testing.T) {
	src := &stubSource{industries: map[string]string{"semiconductors": semiconductorsIndustryFixture}}
	repo := NewSectorRepository(src, testTracer())
	ctx := context.Background()

	overview, err := repo.GetIndustryOverview(ctx, "semiconductors")
	require.NoError(t, err)
	assert.Equal(t, "semiconductors", overview.Key)
	assert.Nil(t, overview.IndustriesCount)
	require.NotNil(t, overview.MarketCap)
	assert.Equal(t, 6.5e12, *overview.MarketCap)

	performing, err := repo.GetIndustryTopPerformingCompanies(ctx, "semiconductors")
	require.NoError(t, err)
	require.Len(t, performing, 1)
	require.NotNil(t, performing[0].TargetPrice)
	assert.Equal(t, 195.0, *performing[0].TargetPrice)
	assert.Nil(t, performing[0].GrowthEstimate)

	growth, err := repo.GetIndustryTopGrowthCompanies(ctx, "semiconductors")
	require.NoError(t, err)
	require.Len(t, growth, 1)
	require.NotNil(t, growth[0].GrowthEstimate)
	assert.Equal(t, 5.07, *growth[0].GrowthEstimate)

	top, err := repo.GetIndustryTopCompanies(ctx, "semiconductors")
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Buy", top[0].Rating)
}

func TestSectorRepositoryMissingPages(t *testing.T) {
	src := &stubSource{}
	repo := NewSectorRepository(src, testTracer())
	ctx := context.Background()

	companies, err := repo.GetIndustryTopCompanies(ctx, "uranium")
	require.NoError(t, err)
	assert.NotNil(t, companies)
	assert.Empty(t, companies)

	etfs, err := repo.GetSectorTopETFs(ctx, "energy")
	require.NoError(t, err)
	assert.Empty(t, etfs)

	_, err = repo.GetSectorOverview(ctx, "energy")
	assert.Error(t, err)
}

func TestSectorRepositorySectorKey(t *testing.T) {
	src := &stubSource{summary: `{"assetProfile":{"sector":"Technology","sectorKey":"technology","industryKey":"software-infrastructure"}}`}
	repo := NewSectorRepository(src, testTracer())

	key, err := repo.GetSectorKey(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, "technology", key)
	assert.Equal(t, []string{"assetProfile"}, src.lastModules)

	src.summary = `{"assetProfile":{}}`
	key, err = repo.GetSectorKey(context.Background(), "SPY")
	require.NoError(t, err)
	assert.Empty(t, key)
}
