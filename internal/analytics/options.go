package analytics

import (
	"sort"
	"strings"

	"openmarkets/internal/domain"
)

// DefaultMoneynessRange is the half-width of the strike band around spot.
const DefaultMoneynessRange = 0.1

// SafeRatio returns a/b, or nil when b is zero.
func SafeRatio(a, b float64) *float64 {
	if b == 0 {
		return nil
	}
	return ptr(a / b)
}

type VolumeAnalysis struct {
	ExpirationDate           string   `json:"expiration_date"`
	TotalCallVolume          int64    `json:"total_call_volume"`
	TotalPutVolume           int64    `json:"total_put_volume"`
	TotalCallOpenInterest    int64    `json:"total_call_open_interest"`
	TotalPutOpenInterest     int64    `json:"total_put_open_interest"`
	PutCallRatioVolume       *float64 `json:"put_call_ratio_volume"`
	PutCallRatioOpenInterest *float64 `json:"put_call_ratio_open_interest"`
}

// ComputeVolumeAnalysis totals volume and open interest per side. A chain
// with listed expirations but no contracts yields zero totals and null ratios.
func ComputeVolumeAnalysis(chain *domain.OptionsChain) (*VolumeAnalysis, error) {
	if !chain.HasExpirations() {
		return nil, ErrNoOptionsData
	}

	callVol, callOI := totals(chain.Calls)
	putVol, putOI := totals(chain.Puts)

	return &VolumeAnalysis{
		ExpirationDate:           domain.ExpirationDate(chain.Expiration),
		TotalCallVolume:          callVol,
		TotalPutVolume:           putVol,
		TotalCallOpenInterest:    callOI,
		TotalPutOpenInterest:     putOI,
		PutCallRatioVolume:       SafeRatio(float64(putVol), float64(callVol)),
		PutCallRatioOpenInterest: SafeRatio(float64(putOI), float64(callOI)),
	}, nil
}

func totals(contracts []domain.OptionContract) (volume, openInterest int64) {
	for _, c := range contracts {
		volume += c.VolumeOrZero()
		openInterest += c.OpenInterest
	}
	return volume, openInterest
}

type MoneynessResult struct {
	CurrentPrice   float64                 `json:"current_price"`
	MoneynessRange float64                 `json:"moneyness_range"`
	LowerStrike    float64                 `json:"lower_strike"`
	UpperStrike    float64                 `json:"upper_strike"`
	Calls          []domain.OptionContract `json:"calls"`
	Puts           []domain.OptionContract `json:"puts"`
}

// ComputeByMoneyness keeps contracts whose strike lies in
// currentPrice*(1±moneynessRange), bounds inclusive. A nil or non-positive
// currentPrice means the reference price could not be obtained.
func ComputeByMoneyness(chain *domain.OptionsChain, currentPrice *float64, moneynessRange float64) (*MoneynessResult, error) {
	if currentPrice == nil || *currentPrice <= 0 {
		return nil, ErrCurrentPriceMissing
	}
	if !chain.HasExpirations() {
		return nil, ErrNoOptionsData
	}

	price := *currentPrice
	lower := price * (1 - moneynessRange)
	upper := price * (1 + moneynessRange)

	return &MoneynessResult{
		CurrentPrice:   price,
		MoneynessRange: moneynessRange,
		LowerStrike:    lower,
		UpperStrike:    upper,
		Calls:          withinStrikes(chain.Calls, lower, upper),
		Puts:           withinStrikes(chain.Puts, lower, upper),
	}, nil
}

func withinStrikes(contracts []domain.OptionContract, lower, upper float64) []domain.OptionContract {
	out := make([]domain.OptionContract, 0, len(contracts))
	for _, c := range contracts {
		if c.Strike >= lower && c.Strike <= upper {
			out = append(out, c)
		}
	}
	return out
}

type SkewPoint struct {
	Strike            float64 `json:"strike"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	Skew              float64 `json:"skew"`
}

type SideSkew struct {
	ATMStrike            *float64    `json:"atm_strike"`
	ATMImpliedVolatility *float64    `json:"atm_implied_volatility"`
	Points               []SkewPoint `json:"points"`
}

type SkewResult struct {
	ExpirationDate string   `json:"expiration_date"`
	ReferencePrice float64  `json:"reference_price"`
	CallSkew       SideSkew `json:"call_skew"`
	PutSkew        SideSkew `json:"put_skew"`
}

// ComputeSkew reports, per side, the implied volatility at each strike minus
// the implied volatility at the strike nearest reference (ties go to the
// lower strike). Contracts without a positive implied volatility are
// ignored. When reference is not positive the median strike of the chain is
// used instead.
func ComputeSkew(chain *domain.OptionsChain, reference float64) (*SkewResult, error) {
	if !chain.HasExpirations() {
		return nil, ErrNoExpirations
	}
	if chain.IsEmpty() {
		return nil, ErrEmptyChain
	}
	if len(chain.MissingColumns) > 0 {
		return nil, &Error{
			Kind:    KindMissingFields,
			Message: ErrMissingColumns.Message + ": " + strings.Join(chain.MissingColumns, ", "),
		}
	}

	if reference <= 0 {
		reference = medianStrike(chain)
	}

	return &SkewResult{
		ExpirationDate: domain.ExpirationDate(chain.Expiration),
		ReferencePrice: reference,
		CallSkew:       sideSkew(chain.Calls, reference),
		PutSkew:        sideSkew(chain.Puts, reference),
	}, nil
}

func sideSkew(contracts []domain.OptionContract, reference float64) SideSkew {
	points := make([]SkewPoint, 0, len(contracts))
	for _, c := range contracts {
		if c.ImpliedVolatility <= 0 {
			continue
		}
		points = append(points, SkewPoint{Strike: c.Strike, ImpliedVolatility: c.ImpliedVolatility})
	}
	if len(points) == 0 {
		return SideSkew{Points: points}
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Strike < points[j].Strike })

	atm := 0
	for i := 1; i < len(points); i++ {
		if distance(points[i].Strike, reference) < distance(points[atm].Strike, reference) {
			atm = i
		}
	}
	atmIV := points[atm].ImpliedVolatility
	for i := range points {
		points[i].Skew = points[i].ImpliedVolatility - atmIV
	}

	return SideSkew{
		ATMStrike:            ptr(points[atm].Strike),
		ATMImpliedVolatility: ptr(atmIV),
		Points:               points,
	}
}

func medianStrike(chain *domain.OptionsChain) float64 {
	strikes := make([]float64, 0, len(chain.Calls)+len(chain.Puts))
	for _, c := range chain.Calls {
		strikes = append(strikes, c.Strike)
	}
	for _, c := range chain.Puts {
		strikes = append(strikes, c.Strike)
	}
	sort.Float64s(strikes)
	return strikes[len(strikes)/2]
}
