package analytics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolatilityConstantSeries(t *testing.T) {
	got, err := ComputeVolatilityMetrics(seriesFromCloses([]float64{50, 50, 50, 50, 50}))
	require.NoError(t, err)

	assert.Equal(t, 0.0, got.DailyVolatility)
	assert.Equal(t, 0.0, got.AnnualizedVolatility)
	assert.Equal(t, 4, got.TotalTradingDays)
	assert.Equal(t, 0, got.PositiveDays)
	assert.Equal(t, 0, got.NegativeDays)
	assert.Equal(t, 0.0, got.PositiveDaysPercentage)
}

func TestVolatilityMetrics(t *testing.T) {
	got, err := ComputeVolatilityMetrics(seriesFromCloses([]float64{100, 110, 99, 99, 108.9}))
	require.NoError(t, err)

	// returns: +10%, -10%, 0%, +10%
	assert.Equal(t, 4, got.TotalTradingDays)
	assert.Equal(t, 2, got.PositiveDays)
	assert.Equal(t, 1, got.NegativeDays)
	assert.InDelta(t, 50.0, got.PositiveDaysPercentage, 1e-9)
	assert.InDelta(t, 10.0, got.MaxDailyGainPercent, 1e-9)
	assert.InDelta(t, -10.0, got.MaxDailyLossPercent, 1e-9)

	// sample std of {0.1, -0.1, 0, 0.1}: mean 0.025, ss 0.0275, /3
	want := math.Sqrt(0.0275 / 3)
	assert.InDelta(t, want, got.DailyVolatility, 1e-9)
	assert.InDelta(t, want*math.Sqrt(252), got.AnnualizedVolatility, 1e-9)
}

func TestVolatilitySingleBar(t *testing.T) {
	got, err := ComputeVolatilityMetrics(seriesFromCloses([]float64{42}))
	require.NoError(t, err)

	assert.Equal(t, 0, got.TotalTradingDays)
	assert.Equal(t, 0.0, got.DailyVolatility)
	assert.Equal(t, 0.0, got.PositiveDaysPercentage)
}

func TestDailyReturnsSkipsZeroPrevious(t *testing.T) {
	got := DailyReturns([]float64{0, 10, 11})
	require.Len(t, got, 1)
	assert.InDelta(t, 0.1, got[0], 1e-12)
}

func TestPositiveDaysPercentage(t *testing.T) {
	assert.Equal(t, 0.0, PositiveDaysPercentage(0, 0))
	assert.Equal(t, 75.0, PositiveDaysPercentage(75, 100))
}

func TestVolatilityWireKeys(t *testing.T) {
	got, err := ComputeVolatilityMetrics(seriesFromCloses([]float64{100, 101, 99}))
	require.NoError(t, err)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	for _, key := range []string{
		"daily_volatility", "annualized_volatility", "max_daily_gain_percent", "max_daily_loss_percent",
		"positive_days", "negative_days", "total_trading_days", "positive_days_percentage",
	} {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, 2.0, fields["total_trading_days"])
}
