package contracts

// QualityGrade buckets the composite quality score
type QualityGrade string

const (
	GradeExcellent QualityGrade = "Excellent" // score >= 85
	GradeGood      QualityGrade = "Good"      // score >= 70
	GradeAverage   QualityGrade = "Average"   // score >= 50
	GradePoor      QualityGrade = "Poor"      // score < 50
)

// GradeForScore maps a 0-100 quality score to its grade
func GradeForScore(score float64) QualityGrade {
	switch {
	case score >= 85:
		return GradeExcellent
	case score >= 70:
		return GradeGood
	case score >= 50:
		return GradeAverage
	default:
		return GradePoor
	}
}

// QualityDimensions holds the five dimension scores, each 0-100
type QualityDimensions struct {
	Growth    float64 `json:"growth"`
	Value     float64 `json:"value"`
	Quality   float64 `json:"quality"`
	Momentum  float64 `json:"momentum"`
	Stability float64 `json:"stability"`
}

// Dimension weights for the quality composite:
// growth, value, quality, momentum, stability.
const (
	WeightDimGrowth    = 0.25
	WeightDimValue     = 0.20
	WeightDimQuality   = 0.30
	WeightDimMomentum  = 0.15
	WeightDimStability = 0.10
)

// Composite blends the five dimensions into a single 0-100 score
func (d *QualityDimensions) Composite() float64 {
	return d.Growth*WeightDimGrowth +
		d.Value*WeightDimValue +
		d.Quality*WeightDimQuality +
		d.Momentum*WeightDimMomentum +
		d.Stability*WeightDimStability
}

// Verdict classifies the sector-relative valuation ratio
type Verdict string

const (
	VerdictSeverelyOvervalued Verdict = "Severely Overvalued" // ratio >= 1.5
	VerdictOvervalued         Verdict = "Overvalued"          // ratio >= 1.2
	VerdictFairlyValued       Verdict = "Fairly Valued"       // 0.8 - 1.2
	VerdictUndervalued        Verdict = "Undervalued"         // ratio <= 0.8
	VerdictDeeplyUndervalued  Verdict = "Deeply Undervalued"  // ratio <= 0.6
)

// ConfidenceLevel labels how firm an assessment is
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "High"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceLow    ConfidenceLevel = "Low"
)

// ValuationEvaluation is the verdict on company-vs-sector valuation
type ValuationEvaluation struct {
	Verdict        Verdict         `json:"verdict"`
	Confidence     ConfidenceLevel `json:"confidence"`
	ValuationRatio float64         `json:"valuation_ratio"` // company / sector benchmark
}

// TrendDirection classifies a financial time series direction
type TrendDirection string

const (
	TrendImproving TrendDirection = "Improving"
	TrendStable    TrendDirection = "Stable"
	TrendDeclining TrendDirection = "Declining"
	TrendUnknown   TrendDirection = "Unknown"
)

// TrendStrength labels the magnitude of a detected trend
type TrendStrength string

const (
	TrendStrengthHigh   TrendStrength = "High"
	TrendStrengthMedium TrendStrength = "Medium"
	TrendStrengthLow    TrendStrength = "Low"
)

// MetricTrend is the regression-based trend for one financial metric
type MetricTrend struct {
	Direction TrendDirection `json:"direction"`
	Strength  TrendStrength  `json:"strength"`

	// RelativeSlope is the OLS slope normalized by the series mean
	RelativeSlope float64 `json:"relative_slope"`
}

// RankingTier buckets a sector percentile into a named tier
type RankingTier string

const (
	TierTop          RankingTier = "Top Tier"      // percentile >= 80
	TierAboveAverage RankingTier = "Above Average" // >= 60
	TierAverage      RankingTier = "Average"       // >= 40
	TierBelowAverage RankingTier = "Below Average" // >= 20
	TierBottom       RankingTier = "Bottom Tier"   // < 20
)

// TierForPercentile maps a 0-100 percentile to its ranking tier
func TierForPercentile(p float64) RankingTier {
	switch {
	case p >= 80:
		return TierTop
	case p >= 60:
		return TierAboveAverage
	case p >= 40:
		return TierAverage
	case p >= 20:
		return TierBelowAverage
	default:
		return TierBottom
	}
}

// SectorComparison ranks a company's metrics within its sector
type SectorComparison struct {
	Percentiles    map[string]float64 `json:"percentiles"`
	OverallPct     float64            `json:"overall_percentile"`
	OverallRanking RankingTier        `json:"overall_ranking"`
}

// RiskAssessment is the rule-based risk readout
type RiskAssessment struct {
	OverallRisk RiskLevel `json:"overall_risk"`
	Factors     []string  `json:"factors"`
}

// QualityAnalysis is the full output of the quality & trend engine
type QualityAnalysis struct {
	Symbol            string                 `json:"symbol"`
	QualityDimensions QualityDimensions      `json:"quality_dimensions"`
	QualityScore      float64                `json:"quality_score"` // 0-100
	QualityGrade      QualityGrade           `json:"quality_grade"`
	Evaluation        ValuationEvaluation    `json:"evaluation"`
	FinancialTrends   map[string]MetricTrend `json:"financial_trends"` // revenue/profit/roe/overall
	SectorComparison  SectorComparison       `json:"sector_comparison"`
	Risk              RiskAssessment         `json:"risk"`
}
