package contracts

// Signal classifies the directional reading of a single indicator
type Signal string

const (
	SignalBullish          Signal = "bullish"
	SignalBearish          Signal = "bearish"
	SignalNeutral          Signal = "neutral"
	SignalOverbought       Signal = "overbought"
	SignalOversold         Signal = "oversold"
	SignalInsufficientData Signal = "insufficient_data"
)

// Trend classifies the aggregate price direction
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// VolumeLevel classifies current volume against its rolling average
type VolumeLevel string

const (
	VolumeHigh   VolumeLevel = "high"
	VolumeNormal VolumeLevel = "normal"
	VolumeLow    VolumeLevel = "low"
)

// MomentumSummary describes momentum across holding horizons
type MomentumSummary struct {
	Volume     VolumeLevel `json:"volume"`
	ShortTerm  Trend       `json:"short_term"`
	MediumTerm Trend       `json:"medium_term"`
	LongTerm   Trend       `json:"long_term"`
}

// TechnicalSnapshot is the full output of the technical indicator engine
// for one symbol. Derived fresh per request, never persisted.
//
// Indicator values are nil when the series is too short for that
// indicator; the matching signal is SignalInsufficientData.
type TechnicalSnapshot struct {
	Symbol     string              `json:"symbol"`
	Indicators map[string]*float64 `json:"indicators"`
	Signals    map[string]Signal   `json:"signals"`

	// Trend and Strength aggregate the individual signals.
	// Strength is 0-100; ties resolve to neutral.
	Trend    Trend   `json:"trend"`
	Strength float64 `json:"strength"`

	// Support levels nearest-first (descending from the current
	// price), resistance levels nearest-first (ascending above it).
	// Nearest-first, NOT ascending: Support[0] is always the level
	// closest below the price, which entry-point selection and API
	// consumers rely on.
	Support    []float64 `json:"support"`
	Resistance []float64 `json:"resistance"`

	Momentum MomentumSummary `json:"momentum"`
}

// Indicator returns a named indicator value, or (0, false) when missing
func (t *TechnicalSnapshot) Indicator(name string) (float64, bool) {
	v, ok := t.Indicators[name]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// SignalFor returns the signal for a named indicator, defaulting to
// insufficient_data when the indicator was never computed
func (t *TechnicalSnapshot) SignalFor(name string) Signal {
	if s, ok := t.Signals[name]; ok {
		return s
	}
	return SignalInsufficientData
}
