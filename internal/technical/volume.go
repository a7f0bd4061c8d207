package technical

// VolumeTrend labels the direction of rolling volume
type VolumeTrend string

const (
	VolumeIncreasing VolumeTrend = "increasing"
	VolumeDecreasing VolumeTrend = "decreasing"
	VolumeFlat       VolumeTrend = "flat"
)

// VolumeAnalysis summarizes trading-volume behavior
type VolumeAnalysis struct {
	Average float64     // rolling average volume
	Ratio   float64     // current / average
	Trend   VolumeTrend // recent window vs prior window
	OBV     float64     // on-balance volume accumulator
	VPT     float64     // volume-price-trend accumulator
}

// AnalyzeVolume computes rolling average volume, the current/average
// ratio, a trend label, and the OBV/VPT accumulators.
func AnalyzeVolume(closes []float64, volumes []int64, period int) (*VolumeAnalysis, error) {
	if len(volumes) < period || len(closes) != len(volumes) {
		return nil, ErrInsufficientData
	}

	var sum float64
	start := len(volumes) - period
	for i := start; i < len(volumes); i++ {
		sum += float64(volumes[i])
	}
	avg := sum / float64(period)

	current := float64(volumes[len(volumes)-1])
	ratio := 0.0
	if avg > 0 {
		ratio = current / avg
	}

	trend := volumeTrend(volumes, period)

	var obv, vpt float64
	for i := 1; i < len(closes); i++ {
		vol := float64(volumes[i])
		switch {
		case closes[i] > closes[i-1]:
			obv += vol
		case closes[i] < closes[i-1]:
			obv -= vol
		}
		if closes[i-1] != 0 {
			vpt += vol * (closes[i] - closes[i-1]) / closes[i-1]
		}
	}

	return &VolumeAnalysis{
		Average: avg,
		Ratio:   ratio,
		Trend:   trend,
		OBV:     obv,
		VPT:     vpt,
	}, nil
}

// volumeTrend compares the most recent half-window average against the
// prior half-window average
func volumeTrend(volumes []int64, period int) VolumeTrend {
	half := period / 2
	if half == 0 || len(volumes) < period {
		return VolumeFlat
	}

	var recent, prior float64
	n := len(volumes)
	for i := n - half; i < n; i++ {
		recent += float64(volumes[i])
	}
	for i := n - period; i < n-half; i++ {
		prior += float64(volumes[i])
	}
	recent /= float64(half)
	prior /= float64(period - half)

	switch {
	case prior == 0:
		return VolumeFlat
	case recent > prior*1.1:
		return VolumeIncreasing
	case recent < prior*0.9:
		return VolumeDecreasing
	default:
		return VolumeFlat
	}
}
