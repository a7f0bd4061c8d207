package contracts

import "time"

// Candle represents a single OHLCV bar
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// OHLCVSeries is an ordered price series, ascending by time.
// The series is owned by the caller and never mutated by the engines.
type OHLCVSeries struct {
	Symbol  string   `json:"symbol"`
	Candles []Candle `json:"candles"`
}

// Len returns the number of candles in the series
func (s *OHLCVSeries) Len() int {
	return len(s.Candles)
}

// Closes returns the close prices in chronological order
func (s *OHLCVSeries) Closes() []float64 {
	closes := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		closes[i] = c.Close
	}
	return closes
}

// Highs returns the high prices in chronological order
func (s *OHLCVSeries) Highs() []float64 {
	highs := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		highs[i] = c.High
	}
	return highs
}

// Lows returns the low prices in chronological order
func (s *OHLCVSeries) Lows() []float64 {
	lows := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		lows[i] = c.Low
	}
	return lows
}

// Volumes returns the volumes in chronological order
func (s *OHLCVSeries) Volumes() []int64 {
	vols := make([]int64, len(s.Candles))
	for i, c := range s.Candles {
		vols[i] = c.Volume
	}
	return vols
}

// LastClose returns the most recent close price, or 0 for an empty series
func (s *OHLCVSeries) LastClose() float64 {
	if len(s.Candles) == 0 {
		return 0
	}
	return s.Candles[len(s.Candles)-1].Close
}
