package technical

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLevels(t *testing.T) {
	// Price oscillates: troughs near 90, peaks near 110, current at 100
	n := 50
	highs := make([]float64, n)
	lows := make([]float64, n)
	for i := 0; i < n; i++ {
		switch i % 10 {
		case 5:
			highs[i] = 110 + float64(i)*0.05 // local peaks
			lows[i] = 100
		case 0:
			highs[i] = 100
			lows[i] = 90 - float64(i)*0.05 // local troughs
		default:
			highs[i] = 102
			lows[i] = 98
		}
	}

	levels := FindLevels(highs, lows, 100.0, 5)

	require.NotEmpty(t, levels.Support)
	require.NotEmpty(t, levels.Resistance)

	// All supports below current price, nearest (largest) first
	assert.True(t, sort.IsSorted(sort.Reverse(sort.Float64Slice(levels.Support))))
	for _, s := range levels.Support {
		assert.Less(t, s, 100.0)
	}

	// All resistances above current price, nearest (smallest) first
	assert.True(t, sort.Float64sAreSorted(levels.Resistance))
	for _, r := range levels.Resistance {
		assert.Greater(t, r, 100.0)
	}

	assert.LessOrEqual(t, len(levels.Support), 5)
	assert.LessOrEqual(t, len(levels.Resistance), 5)
}

func TestFindLevels_ShortSeries(t *testing.T) {
	levels := FindLevels([]float64{1, 2}, []float64{1, 2}, 1.5, 5)
	assert.Empty(t, levels.Support)
	assert.Empty(t, levels.Resistance)
}

func TestDedupeLevels(t *testing.T) {
	// 100.0 and 100.2 are within 0.5% of reference 100 and merge
	levels := dedupeLevels([]float64{100.0, 100.2, 105.0}, 100.0)
	assert.Len(t, levels, 2)
}
