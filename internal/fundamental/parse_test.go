package fundamental

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptional(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *float64
	}{
		{"plain number", "12.5", ptr(12.5)},
		{"negative", "-3.2", ptr(-3.2)},
		{"percent suffix", "18.5%", ptr(18.5)},
		{"thousands separator", "1,234.5", ptr(1234.5)},
		{"surrounding whitespace", "  7.1  ", ptr(7.1)},
		{"empty string", "", nil},
		{"dash sentinel", "-", nil},
		{"None sentinel", "None", nil},
		{"null sentinel", "null", nil},
		{"n/a sentinel", "N/A", nil},
		{"garbage", "abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOptional(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestPercentFromFraction(t *testing.T) {
	assert.Nil(t, PercentFromFraction(nil))

	got := PercentFromFraction(ptr(0.185))
	require.NotNil(t, got)
	assert.InDelta(t, 18.5, *got, 1e-9)

	got = PercentFromFraction(ptr(-0.07))
	require.NotNil(t, got)
	assert.InDelta(t, -7.0, *got, 1e-9)

	// Already a percentage, passes through
	got = PercentFromFraction(ptr(18.5))
	require.NotNil(t, got)
	assert.InDelta(t, 18.5, *got, 1e-9)
}

func TestAverageNonNil(t *testing.T) {
	assert.Nil(t, AverageNonNil())
	assert.Nil(t, AverageNonNil(nil, nil))

	got := AverageNonNil(ptr(10), nil, ptr(20))
	require.NotNil(t, got)
	assert.InDelta(t, 15.0, *got, 1e-9)
}
