package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreHeadlines(t *testing.T) {
	positive := []string{
		"Shares surge after record earnings beat",
		"Analysts upgrade on strong growth outlook",
	}
	assert.InDelta(t, 100.0, scoreHeadlines(positive), 1e-9)

	negative := []string{
		"Stock plunges on earnings miss",
		"Regulator opens probe into accounting",
	}
	assert.InDelta(t, 0.0, scoreHeadlines(negative), 1e-9)

	mixed := []string{
		"Shares gain despite lawsuit", // one positive, one negative
	}
	assert.InDelta(t, 50.0, scoreHeadlines(mixed), 1e-9)

	// No lexicon hits stay neutral
	assert.InDelta(t, 50.0, scoreHeadlines([]string{"Company announces quarterly report date"}), 1e-9)
	assert.InDelta(t, 50.0, scoreHeadlines(nil), 1e-9)
}

func TestScoreHeadlinesPunctuation(t *testing.T) {
	assert.Greater(t, scoreHeadlines([]string{"Record quarter: profits soar!"}), 50.0)
}

func TestLabelForScore(t *testing.T) {
	assert.Equal(t, "positive", labelForScore(75))
	assert.Equal(t, "neutral", labelForScore(50))
	assert.Equal(t, "negative", labelForScore(20))
	assert.Equal(t, "positive", labelForScore(60))
	assert.Equal(t, "negative", labelForScore(40))
}
