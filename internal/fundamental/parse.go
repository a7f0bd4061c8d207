package fundamental

import (
	"strconv"
	"strings"
)

// sentinels that upstream providers use for "no data"
var nullSentinels = map[string]bool{
	"":     true,
	"-":    true,
	"none": true,
	"null": true,
	"n/a":  true,
	"na":   true,
}

// ParseOptional normalizes a raw provider field to an optional float.
// Unparsable or sentinel values ("None", "-", empty) become nil, never
// an error: partial data is the normal case, not a failure.
func ParseOptional(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if nullSentinels[strings.ToLower(trimmed)] {
		return nil
	}

	// Tolerate percent suffixes and thousands separators
	trimmed = strings.TrimSuffix(trimmed, "%")
	trimmed = strings.ReplaceAll(trimmed, ",", "")

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}

	return &value
}

// PercentFromFraction converts a fractional field (0.185) to a percent
// (18.5). Values already above 1 in magnitude are assumed to be
// percentages and pass through unchanged.
func PercentFromFraction(v *float64) *float64 {
	if v == nil {
		return nil
	}
	value := *v
	if value > -1.0 && value < 1.0 {
		value *= 100.0
	}
	return &value
}

// AverageNonNil averages the non-nil values; returns nil when all are
// missing
func AverageNonNil(values ...*float64) *float64 {
	var sum float64
	var count int
	for _, v := range values {
		if v == nil {
			continue
		}
		sum += *v
		count++
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}

func ptr(v float64) *float64 {
	return &v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
