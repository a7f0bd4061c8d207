package technical

import (
	"fmt"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/pkg/logger"
)

// Indicator names used as keys in TechnicalSnapshot maps
const (
	IndRSI           = "rsi"
	IndMACD          = "macd"
	IndMACDSignal    = "macd_signal"
	IndMACDHistogram = "macd_histogram"
	IndSMA20         = "sma_20"
	IndSMA50         = "sma_50"
	IndEMA12         = "ema_12"
	IndEMA26         = "ema_26"
	IndBBUpper       = "bb_upper"
	IndBBMiddle      = "bb_middle"
	IndBBLower       = "bb_lower"
	IndROC           = "roc"
	IndStochK        = "stochastic_k"
	IndStochD        = "stochastic_d"
	IndWilliamsR     = "williams_r"
	IndCCI           = "cci"
	IndVolumeRatio   = "volume_ratio"
	IndOBV           = "obv"
	IndVPT           = "vpt"
)

// Params holds indicator parameter overrides
type Params struct {
	RSIPeriod       int
	MACDFast        int
	MACDSlow        int
	MACDSignal      int
	BollingerPeriod int
	BollingerK      float64
	StochPeriod     int
	WilliamsPeriod  int
	CCIPeriod       int
	ROCPeriod       int
	VolumePeriod    int
	MaxLevels       int
}

// DefaultParams returns the conventional indicator parameters
func DefaultParams() Params {
	return Params{
		RSIPeriod:       14,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		BollingerPeriod: 20,
		BollingerK:      2.0,
		StochPeriod:     14,
		WilliamsPeriod:  14,
		CCIPeriod:       20,
		ROCPeriod:       10,
		VolumePeriod:    20,
		MaxLevels:       5,
	}
}

// Engine computes a TechnicalSnapshot from an OHLCV series.
// Pure with respect to its input: no I/O, no shared state.
type Engine struct {
	params Params
	logger *logger.Logger
}

// NewEngine creates a technical engine with default parameters
func NewEngine(log *logger.Logger) *Engine {
	return NewEngineWithParams(DefaultParams(), log)
}

// NewEngineWithParams creates a technical engine with overrides
func NewEngineWithParams(params Params, log *logger.Logger) *Engine {
	return &Engine{
		params: params,
		logger: log,
	}
}

// Analyze computes the full technical snapshot for one symbol.
// Indicators with insufficient data yield nil values and the
// insufficient_data signal; they never fail the snapshot.
func (e *Engine) Analyze(series *contracts.OHLCVSeries) (*contracts.TechnicalSnapshot, error) {
	if series == nil || series.Len() == 0 {
		return nil, fmt.Errorf("empty price series")
	}

	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()
	volumes := series.Volumes()
	currentPrice := series.LastClose()

	snapshot := &contracts.TechnicalSnapshot{
		Symbol:     series.Symbol,
		Indicators: make(map[string]*float64),
		Signals:    make(map[string]contracts.Signal),
	}

	e.computeRSI(snapshot, closes)
	e.computeMACD(snapshot, closes)
	e.computeMovingAverages(snapshot, closes, currentPrice)
	e.computeBollinger(snapshot, closes, currentPrice)
	e.computeOscillators(snapshot, highs, lows, closes)
	e.computeVolume(snapshot, closes, volumes)

	levels := FindLevels(highs, lows, currentPrice, e.params.MaxLevels)
	snapshot.Support = levels.Support
	snapshot.Resistance = levels.Resistance

	snapshot.Momentum = e.momentumSummary(closes, volumes)

	trend, strength := aggregateSignals(snapshot.Signals)
	snapshot.Trend = trend
	snapshot.Strength = strength

	e.logger.WithFields(map[string]interface{}{
		"symbol":   series.Symbol,
		"bars":     series.Len(),
		"trend":    trend,
		"strength": strength,
	}).Debug("Computed technical snapshot")

	return snapshot, nil
}

// Score converts a snapshot into a 0-100 technical score for blending
func (e *Engine) Score(snapshot *contracts.TechnicalSnapshot) float64 {
	return snapshot.Strength
}

func (e *Engine) computeRSI(s *contracts.TechnicalSnapshot, closes []float64) {
	rsi, err := RSI(closes, e.params.RSIPeriod)
	if err != nil {
		markMissing(s, IndRSI)
		return
	}

	s.Indicators[IndRSI] = ptr(rsi)
	switch {
	case rsi > 70:
		s.Signals[IndRSI] = contracts.SignalOverbought
	case rsi < 30:
		s.Signals[IndRSI] = contracts.SignalOversold
	case rsi > 60:
		s.Signals[IndRSI] = contracts.SignalBullish
	case rsi < 40:
		s.Signals[IndRSI] = contracts.SignalBearish
	default:
		s.Signals[IndRSI] = contracts.SignalNeutral
	}
}

func (e *Engine) computeMACD(s *contracts.TechnicalSnapshot, closes []float64) {
	result, err := MACD(closes, e.params.MACDFast, e.params.MACDSlow, e.params.MACDSignal)
	if err != nil {
		markMissing(s, IndMACD)
		return
	}

	s.Indicators[IndMACD] = ptr(result.MACD)
	s.Indicators[IndMACDSignal] = ptr(result.Signal)
	s.Indicators[IndMACDHistogram] = ptr(result.Histogram)

	if result.MACD > result.Signal {
		s.Signals[IndMACD] = contracts.SignalBullish
	} else {
		s.Signals[IndMACD] = contracts.SignalBearish
	}
}

func (e *Engine) computeMovingAverages(s *contracts.TechnicalSnapshot, closes []float64, price float64) {
	if sma20, err := LastSMA(closes, 20); err == nil {
		s.Indicators[IndSMA20] = ptr(sma20)
		s.Signals[IndSMA20] = priceVsLevel(price, sma20)
	} else {
		markMissing(s, IndSMA20)
	}

	if sma50, err := LastSMA(closes, 50); err == nil {
		s.Indicators[IndSMA50] = ptr(sma50)
		s.Signals[IndSMA50] = priceVsLevel(price, sma50)
	} else {
		markMissing(s, IndSMA50)
	}

	if ema12, err := LastEMA(closes, e.params.MACDFast); err == nil {
		s.Indicators[IndEMA12] = ptr(ema12)
	}
	if ema26, err := LastEMA(closes, e.params.MACDSlow); err == nil {
		s.Indicators[IndEMA26] = ptr(ema26)
	}
}

func (e *Engine) computeBollinger(s *contracts.TechnicalSnapshot, closes []float64, price float64) {
	bb, err := Bollinger(closes, e.params.BollingerPeriod, e.params.BollingerK)
	if err != nil {
		markMissing(s, IndBBMiddle)
		return
	}

	s.Indicators[IndBBUpper] = ptr(bb.Upper)
	s.Indicators[IndBBMiddle] = ptr(bb.Middle)
	s.Indicators[IndBBLower] = ptr(bb.Lower)

	switch {
	case price > bb.Upper:
		s.Signals[IndBBMiddle] = contracts.SignalOverbought
	case price < bb.Lower:
		s.Signals[IndBBMiddle] = contracts.SignalOversold
	default:
		s.Signals[IndBBMiddle] = contracts.SignalNeutral
	}
}

func (e *Engine) computeOscillators(s *contracts.TechnicalSnapshot, highs, lows, closes []float64) {
	if roc, err := ROC(closes, e.params.ROCPeriod); err == nil {
		s.Indicators[IndROC] = ptr(roc)
		switch {
		case roc > 2:
			s.Signals[IndROC] = contracts.SignalBullish
		case roc < -2:
			s.Signals[IndROC] = contracts.SignalBearish
		default:
			s.Signals[IndROC] = contracts.SignalNeutral
		}
	} else {
		markMissing(s, IndROC)
	}

	if stoch, err := Stochastic(highs, lows, closes, e.params.StochPeriod); err == nil {
		s.Indicators[IndStochK] = ptr(stoch.K)
		s.Indicators[IndStochD] = ptr(stoch.D)
		switch {
		case stoch.K > 80:
			s.Signals[IndStochK] = contracts.SignalOverbought
		case stoch.K < 20:
			s.Signals[IndStochK] = contracts.SignalOversold
		default:
			s.Signals[IndStochK] = contracts.SignalNeutral
		}
	} else {
		markMissing(s, IndStochK)
	}

	if wr, err := WilliamsR(highs, lows, closes, e.params.WilliamsPeriod); err == nil {
		s.Indicators[IndWilliamsR] = ptr(wr)
		switch {
		case wr > -20:
			s.Signals[IndWilliamsR] = contracts.SignalOverbought
		case wr < -80:
			s.Signals[IndWilliamsR] = contracts.SignalOversold
		default:
			s.Signals[IndWilliamsR] = contracts.SignalNeutral
		}
	} else {
		markMissing(s, IndWilliamsR)
	}

	if cci, err := CCI(highs, lows, closes, e.params.CCIPeriod); err == nil {
		s.Indicators[IndCCI] = ptr(cci)
		switch {
		case cci > 100:
			s.Signals[IndCCI] = contracts.SignalOverbought
		case cci < -100:
			s.Signals[IndCCI] = contracts.SignalOversold
		default:
			s.Signals[IndCCI] = contracts.SignalNeutral
		}
	} else {
		markMissing(s, IndCCI)
	}
}

func (e *Engine) computeVolume(s *contracts.TechnicalSnapshot, closes []float64, volumes []int64) {
	va, err := AnalyzeVolume(closes, volumes, e.params.VolumePeriod)
	if err != nil {
		markMissing(s, IndVolumeRatio)
		return
	}

	s.Indicators[IndVolumeRatio] = ptr(va.Ratio)
	s.Indicators[IndOBV] = ptr(va.OBV)
	s.Indicators[IndVPT] = ptr(va.VPT)

	// Rising volume confirms the price direction; on its own it is
	// informational, so the signal stays neutral unless trend agrees.
	switch va.Trend {
	case VolumeIncreasing:
		if va.OBV > 0 {
			s.Signals[IndVolumeRatio] = contracts.SignalBullish
		} else {
			s.Signals[IndVolumeRatio] = contracts.SignalBearish
		}
	default:
		s.Signals[IndVolumeRatio] = contracts.SignalNeutral
	}
}

// momentumSummary classifies rate-of-change across three lookbacks
func (e *Engine) momentumSummary(closes []float64, volumes []int64) contracts.MomentumSummary {
	summary := contracts.MomentumSummary{
		Volume:     contracts.VolumeNormal,
		ShortTerm:  contracts.TrendNeutral,
		MediumTerm: contracts.TrendNeutral,
		LongTerm:   contracts.TrendNeutral,
	}

	if va, err := AnalyzeVolume(closes, volumes, e.params.VolumePeriod); err == nil {
		switch {
		case va.Ratio > 1.5:
			summary.Volume = contracts.VolumeHigh
		case va.Ratio < 0.5:
			summary.Volume = contracts.VolumeLow
		}
	}

	summary.ShortTerm = rocTrend(closes, 5, 1.0)
	summary.MediumTerm = rocTrend(closes, 20, 3.0)
	summary.LongTerm = rocTrend(closes, 60, 8.0)

	return summary
}

// rocTrend maps a rate-of-change reading to a trend with a symmetric
// percent threshold
func rocTrend(closes []float64, period int, threshold float64) contracts.Trend {
	roc, err := ROC(closes, period)
	if err != nil {
		return contracts.TrendNeutral
	}
	switch {
	case roc > threshold:
		return contracts.TrendBullish
	case roc < -threshold:
		return contracts.TrendBearish
	default:
		return contracts.TrendNeutral
	}
}

// priceVsLevel classifies price relative to a moving-average level
// with a 1% neutral band
func priceVsLevel(price, level float64) contracts.Signal {
	if level <= 0 {
		return contracts.SignalNeutral
	}

	switch ratio := price / level; {
	case ratio > 1.01:
		return contracts.SignalBullish
	case ratio < 0.99:
		return contracts.SignalBearish
	default:
		return contracts.SignalNeutral
	}
}

// Vote weights for aggregateSignals. Trend-following votes count
// double: in a sustained move every bounded oscillator saturates at
// overbought/oversold, and equal weighting would let those
// mean-reversion votes outvote the move itself.
const (
	trendVoteWeight     = 2.0
	reversionVoteWeight = 1.0
)

// aggregateSignals combines individual indicator signals into an
// overall trend and a 0-100 strength. Oversold reads as a bullish
// (mean reversion) vote, overbought as bearish, at half the weight of
// the trend-following signals. Missing indicators are skipped; ties
// resolve to neutral.
func aggregateSignals(signals map[string]contracts.Signal) (contracts.Trend, float64) {
	var bullish, bearish, total float64

	for _, sig := range signals {
		switch sig {
		case contracts.SignalBullish:
			bullish += trendVoteWeight
			total += trendVoteWeight
		case contracts.SignalBearish:
			bearish += trendVoteWeight
			total += trendVoteWeight
		case contracts.SignalOversold:
			bullish += reversionVoteWeight
			total += reversionVoteWeight
		case contracts.SignalOverbought:
			bearish += reversionVoteWeight
			total += reversionVoteWeight
		case contracts.SignalNeutral:
			total += reversionVoteWeight
		}
	}

	if total == 0 {
		return contracts.TrendNeutral, 50.0
	}

	strength := 50.0 + 50.0*(bullish-bearish)/total
	if strength > 100 {
		strength = 100
	} else if strength < 0 {
		strength = 0
	}

	switch {
	case bullish > bearish:
		return contracts.TrendBullish, strength
	case bearish > bullish:
		return contracts.TrendBearish, strength
	default:
		return contracts.TrendNeutral, strength
	}
}

func markMissing(s *contracts.TechnicalSnapshot, name string) {
	s.Indicators[name] = nil
	s.Signals[name] = contracts.SignalInsufficientData
}

func ptr(v float64) *float64 {
	return &v
}
