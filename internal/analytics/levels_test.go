package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openmarkets/internal/domain"
)

func barsHL(pairs [][2]float64, last float64) domain.PriceSeries {
	bars := make([]domain.PriceBar, 0, len(pairs)+1)
	for _, p := range pairs {
		bars = append(bars, domain.PriceBar{High: p[0], Low: p[1], Open: p[1], Close: p[1]})
	}
	bars = append(bars, domain.PriceBar{High: last, Low: last, Open: last, Close: last})
	return domain.PriceSeries{Symbol: "LVL", Bars: bars}
}

func TestSupportResistanceNearestFirst(t *testing.T) {
	series := barsHL([][2]float64{
		{120, 80}, {105, 95}, {110, 90}, {105, 95}, {130, 70},
		{101, 99}, {140, 60}, {115, 85},
	}, 100)

	got, err := ComputeSupportResistanceLevels(series)
	require.NoError(t, err)

	assert.Equal(t, 100.0, got.CurrentPrice)
	assert.Equal(t, []float64{101, 105, 110, 115, 120}, got.ResistanceLevels)
	assert.Equal(t, []float64{99, 95, 90, 85, 80}, got.SupportLevels)
	require.NotNil(t, got.NearestResistance)
	require.NotNil(t, got.NearestSupport)
	assert.Equal(t, 101.0, *got.NearestResistance)
	assert.Equal(t, 99.0, *got.NearestSupport)

	for _, r := range got.ResistanceLevels {
		assert.Greater(t, r, got.CurrentPrice)
	}
	for _, s := range got.SupportLevels {
		assert.Less(t, s, got.CurrentPrice)
	}
}

func TestSupportResistanceNoLevels(t *testing.T) {
	got, err := ComputeSupportResistanceLevels(barsHL(nil, 50))
	require.NoError(t, err)

	assert.Empty(t, got.ResistanceLevels)
	assert.Empty(t, got.SupportLevels)
	assert.Nil(t, got.NearestResistance)
	assert.Nil(t, got.NearestSupport)
}
