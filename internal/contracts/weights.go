package contracts

import "fmt"

// Horizon is a holding-period bucket with its own weight profile
type Horizon string

const (
	HorizonDaily   Horizon = "daily"
	HorizonWeekly  Horizon = "weekly"
	HorizonMonthly Horizon = "monthly"
	HorizonYearly  Horizon = "yearly"
)

// Horizons lists all supported horizons
func Horizons() []Horizon {
	return []Horizon{HorizonDaily, HorizonWeekly, HorizonMonthly, HorizonYearly}
}

// ParseHorizon validates a horizon string
func ParseHorizon(s string) (Horizon, error) {
	switch Horizon(s) {
	case HorizonDaily, HorizonWeekly, HorizonMonthly, HorizonYearly:
		return Horizon(s), nil
	case "":
		return HorizonWeekly, nil
	default:
		return "", fmt.Errorf("unknown horizon %q (want daily|weekly|monthly|yearly)", s)
	}
}

// WeightProfile blends the three analysis views for one horizon.
// Immutable configuration: weights are non-negative and sum to 1.0.
type WeightProfile struct {
	Technical   float64 `json:"technical"`
	Fundamental float64 `json:"fundamental"`
	Sentiment   float64 `json:"sentiment"`
}

// Sum returns the total of the three weights
func (w WeightProfile) Sum() float64 {
	return w.Technical + w.Fundamental + w.Sentiment
}

// Validate checks weight non-negativity and the sum invariant
func (w WeightProfile) Validate() error {
	if w.Technical < 0 || w.Fundamental < 0 || w.Sentiment < 0 {
		return fmt.Errorf("weights must be non-negative: %+v", w)
	}
	sum := w.Sum()
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// DefaultWeightProfiles returns the horizon weight table.
// Short horizons lean on technicals, long horizons on fundamentals.
func DefaultWeightProfiles() map[Horizon]WeightProfile {
	return map[Horizon]WeightProfile{
		HorizonDaily:   {Technical: 0.60, Fundamental: 0.10, Sentiment: 0.30},
		HorizonWeekly:  {Technical: 0.50, Fundamental: 0.25, Sentiment: 0.25},
		HorizonMonthly: {Technical: 0.30, Fundamental: 0.50, Sentiment: 0.20},
		HorizonYearly:  {Technical: 0.15, Fundamental: 0.75, Sentiment: 0.10},
	}
}
