package analytics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"openmarkets/internal/domain"
)

// TradingDaysPerYear annualizes daily volatility.
const TradingDaysPerYear = 252

// VolatilityMetrics summarizes day-over-day returns. Volatilities are
// fractions (0.02 is 2%); gains, losses and day percentages are percents.
type VolatilityMetrics struct {
	DailyVolatility        float64 `json:"daily_volatility"`
	AnnualizedVolatility   float64 `json:"annualized_volatility"`
	MaxDailyGainPercent    float64 `json:"max_daily_gain_percent"`
	MaxDailyLossPercent    float64 `json:"max_daily_loss_percent"`
	PositiveDays           int     `json:"positive_days"`
	NegativeDays           int     `json:"negative_days"`
	TotalTradingDays       int     `json:"total_trading_days"`
	PositiveDaysPercentage float64 `json:"positive_days_percentage"`
}

// DailyReturns returns close[i]/close[i-1]-1, skipping periods whose previous
// close is zero.
func DailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 {
			continue
		}
		out = append(out, closes[i]/prev-1)
	}
	return out
}

func PositiveDaysPercentage(positive, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(positive) / float64(total) * 100
}

func ComputeVolatilityMetrics(series domain.PriceSeries) (*VolatilityMetrics, error) {
	if series.Len() == 0 {
		return nil, ErrNoHistoricalData
	}

	returns := DailyReturns(series.Closes())
	m := &VolatilityMetrics{TotalTradingDays: len(returns)}
	if len(returns) >= 2 {
		m.DailyVolatility = stat.StdDev(returns, nil)
		m.AnnualizedVolatility = m.DailyVolatility * math.Sqrt(TradingDaysPerYear)
	}

	if len(returns) > 0 {
		m.MaxDailyGainPercent = floats.Max(returns) * 100
		m.MaxDailyLossPercent = floats.Min(returns) * 100
	}
	for _, r := range returns {
		switch {
		case r > 0:
			m.PositiveDays++
		case r < 0:
			m.NegativeDays++
		}
	}
	m.PositiveDaysPercentage = PositiveDaysPercentage(m.PositiveDays, m.TotalTradingDays)
	return m, nil
}
