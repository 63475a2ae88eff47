package analytics

import (
	"math"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"openmarkets/internal/domain"
)

const (
	SMAShortWindow  = 20
	SMAMediumWindow = 50
	SMALongWindow   = 200
)

// TechnicalIndicators is the flat indicator set for one price series. Pointer
// fields are null when the series is too short or the input is degenerate.
type TechnicalIndicators struct {
	CurrentPrice         float64  `json:"current_price"`
	FiftyTwoWeekHigh     float64  `json:"fifty_two_week_high"`
	FiftyTwoWeekLow      float64  `json:"fifty_two_week_low"`
	PricePositionInRange *float64 `json:"price_position_in_52w_range_percent"`
	AverageVolume        float64  `json:"average_volume"`
	SMA20                *float64 `json:"sma_20"`
	SMA50                *float64 `json:"sma_50"`
	SMA200               *float64 `json:"sma_200"`
	PriceVsSMA20         *float64 `json:"price_vs_sma_20"`
	PriceVsSMA50         *float64 `json:"price_vs_sma_50"`
	PriceVsSMA200        *float64 `json:"price_vs_sma_200"`
}

// CalculateSMA returns the mean of the last window values, or nil when the
// series is shorter than window.
func CalculateSMA(values []float64, window int) *float64 {
	if window <= 0 || len(values) < window {
		return nil
	}
	out := talib.Sma(values[len(values)-window:], window)
	return ptr(out[len(out)-1])
}

// PricePositionInRange places current within [low, high] as a percentage.
func PricePositionInRange(current, low, high float64) *float64 {
	if high == low {
		return nil
	}
	return ptr((current - low) / (high - low) * 100)
}

// PriceVsSMA is the percentage deviation of price from its moving average.
func PriceVsSMA(current float64, sma *float64) *float64 {
	if sma == nil || *sma == 0 {
		return nil
	}
	return ptr((current - *sma) / *sma * 100)
}

func ComputeTechnicalIndicators(series domain.PriceSeries) (*TechnicalIndicators, error) {
	if series.Len() == 0 {
		return nil, ErrNoHistoricalData
	}

	closes := series.Closes()
	current := closes[len(closes)-1]
	high := floats.Max(series.Highs())
	low := floats.Min(series.Lows())

	sma20 := CalculateSMA(closes, SMAShortWindow)
	sma50 := CalculateSMA(closes, SMAMediumWindow)
	sma200 := CalculateSMA(closes, SMALongWindow)

	return &TechnicalIndicators{
		CurrentPrice:         current,
		FiftyTwoWeekHigh:     high,
		FiftyTwoWeekLow:      low,
		PricePositionInRange: PricePositionInRange(current, low, high),
		AverageVolume:        stat.Mean(series.Volumes(), nil),
		SMA20:                sma20,
		SMA50:                sma50,
		SMA200:               sma200,
		PriceVsSMA20:         PriceVsSMA(current, sma20),
		PriceVsSMA50:         PriceVsSMA(current, sma50),
		PriceVsSMA200:        PriceVsSMA(current, sma200),
	}, nil
}

func ptr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
