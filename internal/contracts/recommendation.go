package contracts

import "time"

// Action is the 5-tier recommendation ladder
type Action string

const (
	ActionStrongBuy  Action = "strong_buy"  // confidence >= 80
	ActionBuy        Action = "buy"         // >= 65
	ActionHold       Action = "hold"        // >= 45
	ActionSell       Action = "sell"        // >= 30
	ActionStrongSell Action = "strong_sell" // < 30
)

// ActionForConfidence maps a 0-100 confidence to the action ladder
func ActionForConfidence(confidence float64) Action {
	switch {
	case confidence >= 80:
		return ActionStrongBuy
	case confidence >= 65:
		return ActionBuy
	case confidence >= 45:
		return ActionHold
	case confidence >= 30:
		return ActionSell
	default:
		return ActionStrongSell
	}
}

// IsBuy reports whether the action is buy or strong_buy
func (a Action) IsBuy() bool {
	return a == ActionBuy || a == ActionStrongBuy
}

// SentimentSummary is the normalized output of the sentiment provider
type SentimentSummary struct {
	Label        string  `json:"label"` // positive, negative, neutral
	Score        float64 `json:"score"` // 0-100, 50 is neutral
	ArticleCount int     `json:"article_count"`
}

// NeutralSentiment is the fallback when no sentiment data is available
func NeutralSentiment() SentimentSummary {
	return SentimentSummary{Label: "neutral", Score: 50.0, ArticleCount: 0}
}

// ScoreOutcome is a typed partial result for one sub-analysis. Measured
// distinguishes a computed score from a substituted neutral default so
// callers can tell "measured as 50" from "defaulted to 50".
type ScoreOutcome struct {
	Score    float64 `json:"score"` // 0-100
	Measured bool    `json:"measured"`
	Reason   string  `json:"reason,omitempty"` // why the default was substituted
}

// MeasuredScore wraps a computed score
func MeasuredScore(score float64) ScoreOutcome {
	return ScoreOutcome{Score: score, Measured: true}
}

// DefaultScore wraps the neutral fallback with the failure reason
func DefaultScore(reason string) ScoreOutcome {
	return ScoreOutcome{Score: 50.0, Measured: false, Reason: reason}
}

// SubScores holds the three blended sub-analysis outcomes
type SubScores struct {
	Technical   ScoreOutcome `json:"technical"`
	Fundamental ScoreOutcome `json:"fundamental"`
	Sentiment   ScoreOutcome `json:"sentiment"`
}

// RecommendationRecord is one recommendation for a (symbol, horizon)
// pair. Constructed fresh per analysis, never mutated afterwards.
type RecommendationRecord struct {
	Symbol       string    `json:"symbol"`
	TimeHorizon  Horizon   `json:"time_horizon"`
	CurrentPrice float64   `json:"current_price"`
	Scores       SubScores `json:"scores"`
	Confidence   float64   `json:"confidence"` // weighted composite, 0-100
	Action       Action    `json:"action"`
	TargetPrice  float64   `json:"target_price"`
	StopLoss     float64   `json:"stop_loss"`
	EntryPoint   float64   `json:"entry_point"`
	Reasons      []string  `json:"reasons"`
	Risks        []string  `json:"risks"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// EnrichedRecommendation augments a record with engine detail for the
// best-pick and deep-analysis surfaces
type EnrichedRecommendation struct {
	RecommendationRecord

	Technical   *TechnicalSnapshot   `json:"technical,omitempty"`
	Fundamental *FundamentalSnapshot `json:"fundamental,omitempty"`
	Quality     *QualityAnalysis     `json:"quality,omitempty"`
	Sentiment   SentimentSummary     `json:"sentiment"`

	Highlights          []string `json:"highlights,omitempty"`
	Strategy            string   `json:"strategy,omitempty"`
	MarketContext       string   `json:"market_context,omitempty"`
	Catalysts           []string `json:"catalysts,omitempty"`
	CompetitivePosition string   `json:"competitive_position,omitempty"`
}

// BatchResult is the output of a batch ranking run
type BatchResult struct {
	Horizon         Horizon                `json:"horizon"`
	Recommendations []RecommendationRecord `json:"recommendations"`
	Attempted       int                    `json:"attempted"`
	Succeeded       int                    `json:"succeeded"`
	GeneratedAt     time.Time              `json:"generated_at"`
}
