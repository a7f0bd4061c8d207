package recommend

import "github.com/wonny/advisor/internal/contracts"

// TargetPolicy holds the heuristic price-target multipliers for one
// horizon. Target and stop multipliers scale linearly with distance
// from neutral confidence; the numbers are tunable policy, not derived
// from the analysis itself.
type TargetPolicy struct {
	TargetBase  float64 // multiplier at confidence 50
	TargetSlope float64 // per confidence point above 50
	StopBase    float64 // stop multiplier at confidence 50
	StopSlope   float64 // stop tightens as confidence rises

	// Entry snaps to a support level within this fraction below the
	// current price
	SupportSnapBand float64
}

// DefaultTargetPolicies returns the per-horizon multiplier table.
// Short horizons aim for small moves with tight stops, long horizons
// for large moves with wide stops.
func DefaultTargetPolicies() map[contracts.Horizon]TargetPolicy {
	return map[contracts.Horizon]TargetPolicy{
		contracts.HorizonDaily: {
			TargetBase: 1.02, TargetSlope: 0.0004,
			StopBase: 0.985, StopSlope: 0.0001,
			SupportSnapBand: 0.05,
		},
		contracts.HorizonWeekly: {
			TargetBase: 1.05, TargetSlope: 0.0008,
			StopBase: 0.97, StopSlope: 0.0002,
			SupportSnapBand: 0.05,
		},
		contracts.HorizonMonthly: {
			TargetBase: 1.10, TargetSlope: 0.002,
			StopBase: 0.95, StopSlope: 0.0004,
			SupportSnapBand: 0.05,
		},
		contracts.HorizonYearly: {
			TargetBase: 1.20, TargetSlope: 0.004,
			StopBase: 0.875, StopSlope: 0.0005,
			SupportSnapBand: 0.05,
		},
	}
}

// Targets computes target and stop-loss prices from the current price
// and composite confidence
func (p TargetPolicy) Targets(price, confidence float64) (target, stop float64) {
	delta := confidence - 50.0
	target = price * (p.TargetBase + delta*p.TargetSlope)
	stop = price * (p.StopBase + delta*p.StopSlope)
	if stop >= price {
		stop = price * p.StopBase
	}
	return target, stop
}

// EntryPoint defaults to the current price but snaps to the nearest
// technical support level sitting within the snap band below it.
// Supports arrive nearest-first.
func (p TargetPolicy) EntryPoint(price float64, supports []float64) float64 {
	floor := price * (1.0 - p.SupportSnapBand)
	for _, s := range supports {
		if s < price && s >= floor {
			return s
		}
	}
	return price
}
