package technical

import "sort"

// pivotWindow is the number of bars on each side a local extremum must
// dominate to count as a pivot
const pivotWindow = 2

// Levels holds support and resistance price levels, nearest-first
type Levels struct {
	Support    []float64 // below current price, descending
	Resistance []float64 // above current price, ascending
}

// FindLevels derives support and resistance levels from local extrema
// of the highs and lows. Support levels sit below the current price
// ordered nearest-first (descending); resistance levels sit above it
// ordered nearest-first (ascending).
func FindLevels(highs, lows []float64, currentPrice float64, maxLevels int) *Levels {
	levels := &Levels{}

	if len(highs) != len(lows) || len(highs) < pivotWindow*2+1 {
		return levels
	}

	var support, resistance []float64

	for i := pivotWindow; i < len(lows)-pivotWindow; i++ {
		if isLocalMin(lows, i) && lows[i] < currentPrice {
			support = append(support, lows[i])
		}
		if isLocalMax(highs, i) && highs[i] > currentPrice {
			resistance = append(resistance, highs[i])
		}
	}

	support = dedupeLevels(support, currentPrice)
	resistance = dedupeLevels(resistance, currentPrice)

	// Nearest-first ordering
	sort.Sort(sort.Reverse(sort.Float64Slice(support)))
	sort.Float64s(resistance)

	if maxLevels > 0 {
		if len(support) > maxLevels {
			support = support[:maxLevels]
		}
		if len(resistance) > maxLevels {
			resistance = resistance[:maxLevels]
		}
	}

	levels.Support = support
	levels.Resistance = resistance
	return levels
}

func isLocalMin(values []float64, i int) bool {
	for j := i - pivotWindow; j <= i+pivotWindow; j++ {
		if j != i && values[j] < values[i] {
			return false
		}
	}
	return true
}

func isLocalMax(values []float64, i int) bool {
	for j := i - pivotWindow; j <= i+pivotWindow; j++ {
		if j != i && values[j] > values[i] {
			return false
		}
	}
	return true
}

// dedupeLevels merges levels within 0.5% of each other so clustered
// pivots collapse to one level
func dedupeLevels(levels []float64, reference float64) []float64 {
	if len(levels) == 0 {
		return levels
	}

	sorted := make([]float64, len(levels))
	copy(sorted, levels)
	sort.Float64s(sorted)

	tolerance := reference * 0.005
	result := []float64{sorted[0]}
	for _, l := range sorted[1:] {
		if l-result[len(result)-1] > tolerance {
			result = append(result, l)
		}
	}
	return result
}
