package news

import "strings"

// Headline sentiment lexicon. Deliberately small: financial headlines
// reuse a narrow vocabulary and stemmed single words keep matching
// cheap.
var positiveWords = map[string]bool{
	"surge": true, "surges": true, "soar": true, "soars": true,
	"rally": true, "rallies": true, "gain": true, "gains": true,
	"jump": true, "jumps": true, "beat": true, "beats": true,
	"record": true, "upgrade": true, "upgraded": true, "bullish": true,
	"growth": true, "strong": true, "outperform": true, "profit": true,
	"profits": true, "rise": true, "rises": true, "boost": true,
	"breakthrough": true, "wins": true, "expands": true, "raises": true,
}

var negativeWords = map[string]bool{
	"plunge": true, "plunges": true, "crash": true, "crashes": true,
	"fall": true, "falls": true, "drop": true, "drops": true,
	"slump": true, "slumps": true, "miss": true, "misses": true,
	"downgrade": true, "downgraded": true, "bearish": true, "loss": true,
	"losses": true, "weak": true, "underperform": true, "lawsuit": true,
	"probe": true, "recall": true, "layoffs": true, "cuts": true,
	"warning": true, "decline": true, "declines": true, "sinks": true,
}

// scoreHeadlines maps headline word counts onto a 0-100 sentiment
// score, 50 neutral. Headlines with no lexicon hits do not move the
// score.
func scoreHeadlines(headlines []string) float64 {
	var positive, negative int

	for _, h := range headlines {
		for _, word := range strings.Fields(strings.ToLower(h)) {
			word = strings.Trim(word, ".,!?:;'\"()")
			if positiveWords[word] {
				positive++
			}
			if negativeWords[word] {
				negative++
			}
		}
	}

	total := positive + negative
	if total == 0 {
		return 50.0
	}

	score := 50.0 + 50.0*float64(positive-negative)/float64(total)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func labelForScore(score float64) string {
	switch {
	case score >= 60:
		return "positive"
	case score <= 40:
		return "negative"
	default:
		return "neutral"
	}
}
