package analytics

import (
	"sort"

	"openmarkets/internal/domain"
)

// MaxLevels caps each side of the support and resistance lists.
const MaxLevels = 5

type SupportResistanceLevels struct {
	CurrentPrice      float64   `json:"current_price"`
	ResistanceLevels  []float64 `json:"resistance_levels"`
	SupportLevels     []float64 `json:"support_levels"`
	NearestResistance *float64  `json:"nearest_resistance"`
	NearestSupport    *float64  `json:"nearest_support"`
}

// ComputeSupportResistanceLevels collects distinct highs above and distinct
// lows below the last close, nearest first. Equal distances keep series order.
func ComputeSupportResistanceLevels(series domain.PriceSeries) (*SupportResistanceLevels, error) {
	if series.Len() == 0 {
		return nil, ErrNoHistoricalData
	}

	closes := series.Closes()
	current := closes[len(closes)-1]

	resistance := nearestLevels(series.Highs(), current, func(v float64) bool { return v > current })
	support := nearestLevels(series.Lows(), current, func(v float64) bool { return v < current })

	out := &SupportResistanceLevels{
		CurrentPrice:     current,
		ResistanceLevels: resistance,
		SupportLevels:    support,
	}
	if len(resistance) > 0 {
		out.NearestResistance = ptr(resistance[0])
	}
	if len(support) > 0 {
		out.NearestSupport = ptr(support[0])
	}
	return out, nil
}

func nearestLevels(values []float64, current float64, keep func(float64) bool) []float64 {
	seen := make(map[float64]struct{}, len(values))
	levels := make([]float64, 0, len(values))
	for _, v := range values {
		if !keep(v) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		levels = append(levels, v)
	}

	sort.SliceStable(levels, func(i, j int) bool {
		return distance(levels[i], current) < distance(levels[j], current)
	})
	if len(levels) > MaxLevels {
		levels = levels[:MaxLevels]
	}
	return levels
}

func distance(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
