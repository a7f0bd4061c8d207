package contracts

// CompanyFinancials is the normalized per-company input to the
// fundamental and quality engines. Every metric is optional: providers
// deliver partial data and sentinel values ("None", "-", "") are
// normalized to nil at the provider boundary, never here.
//
// Ratio fields are plain multiples (PE 25.0), margin/return/growth
// fields are percentages (ROE 18.5 means 18.5%).
type CompanyFinancials struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`

	// Valuation ratios
	PERatio    *float64 `json:"pe_ratio"`
	ForwardPE  *float64 `json:"forward_pe"`
	PBRatio    *float64 `json:"pb_ratio"`
	PSRatio    *float64 `json:"ps_ratio"`
	PEGRatio   *float64 `json:"peg_ratio"`
	EVToEBITDA *float64 `json:"ev_to_ebitda"`

	// Per-share
	EPS          *float64 `json:"eps"`
	BookValue    *float64 `json:"book_value"`
	RevenuePerSh *float64 `json:"revenue_per_share"`

	// Margins and returns (percent)
	GrossMargin     *float64 `json:"gross_margin"`
	OperatingMargin *float64 `json:"operating_margin"`
	ProfitMargin    *float64 `json:"profit_margin"`
	ROE             *float64 `json:"roe"`
	ROA             *float64 `json:"roa"`

	// Liquidity
	CurrentRatio *float64 `json:"current_ratio"`
	QuickRatio   *float64 `json:"quick_ratio"`
	CashRatio    *float64 `json:"cash_ratio"`

	// Leverage
	DebtToEquity     *float64 `json:"debt_to_equity"`
	DebtRatio        *float64 `json:"debt_ratio"`
	InterestCoverage *float64 `json:"interest_coverage"`

	// Efficiency
	AssetTurnover       *float64 `json:"asset_turnover"`
	InventoryTurnover   *float64 `json:"inventory_turnover"`
	ReceivablesTurnover *float64 `json:"receivables_turnover"`

	// Dividends (percent)
	DividendYield *float64 `json:"dividend_yield"`
	PayoutRatio   *float64 `json:"payout_ratio"`

	// Growth (percent)
	RevenueGrowth1Y  *float64 `json:"revenue_growth_1y"`
	RevenueGrowth3Y  *float64 `json:"revenue_growth_3y"`
	RevenueGrowth5Y  *float64 `json:"revenue_growth_5y"`
	EarningsGrowth1Y *float64 `json:"earnings_growth_1y"`
	EarningsGrowth3Y *float64 `json:"earnings_growth_3y"`
	EarningsGrowth5Y *float64 `json:"earnings_growth_5y"`
	BookValueGrowth  *float64 `json:"book_value_growth"`
	DividendGrowth   *float64 `json:"dividend_growth"`

	// Balance sheet / income items for the Altman Z-Score (absolute values)
	WorkingCapital   *float64 `json:"working_capital"`
	RetainedEarnings *float64 `json:"retained_earnings"`
	EBIT             *float64 `json:"ebit"`
	TotalAssets      *float64 `json:"total_assets"`
	TotalLiabilities *float64 `json:"total_liabilities"`
	Revenue          *float64 `json:"revenue"`
	MarketCap        *float64 `json:"market_cap"`

	// Multi-year history, oldest first, for trend/stability analysis
	RevenueHistory []float64 `json:"revenue_history"`
	ProfitHistory  []float64 `json:"profit_history"`
	ROEHistory     []float64 `json:"roe_history"`
}

// StrengthRating classifies overall financial health
type StrengthRating string

const (
	StrengthExcellent StrengthRating = "excellent"
	StrengthStrong    StrengthRating = "strong"
	StrengthModerate  StrengthRating = "moderate"
	StrengthWeak      StrengthRating = "weak"
	StrengthPoor      StrengthRating = "poor"
)

// RiskLevel classifies financial or bankruptcy risk
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// FinancialHealth aggregates liquidity, solvency and efficiency scores
type FinancialHealth struct {
	LiquidityScore  float64        `json:"liquidity_score"`
	SolvencyScore   float64        `json:"solvency_score"`
	EfficiencyScore float64        `json:"efficiency_score"`
	OverallScore    float64        `json:"overall_score"` // 0-100
	StrengthRating  StrengthRating `json:"strength_rating"`
	RiskLevel       RiskLevel      `json:"risk_level"`
	AltmanZScore    *float64       `json:"altman_z_score"`
	BankruptcyRisk  RiskLevel      `json:"bankruptcy_risk"`
}

// Assessment buckets a peer comparison result
type Assessment string

const (
	AssessExcellent    Assessment = "excellent"
	AssessGood         Assessment = "good"
	AssessAverage      Assessment = "average"
	AssessBelowAverage Assessment = "below_average"
	AssessPoor         Assessment = "poor"
)

// PeerMetric compares one company metric against its sector benchmark
type PeerMetric struct {
	Company    float64    `json:"company"`
	SectorAvg  float64    `json:"sector_avg"`
	Percentile float64    `json:"percentile"` // 0-100
	Assessment Assessment `json:"assessment"`
}

// FactorScores holds the four sub-scores and their weighted composite.
// Sub-scores are nil when the inputs required to compute them were
// absent; the composite renormalizes over whatever is present.
type FactorScores struct {
	Value     *float64 `json:"value"`
	Growth    *float64 `json:"growth"`
	Quality   *float64 `json:"quality"`
	Momentum  *float64 `json:"momentum"`
	Composite float64  `json:"composite"`
}

// FundamentalSnapshot is the full output of the fundamental ratio engine
type FundamentalSnapshot struct {
	Symbol          string                `json:"symbol"`
	Sector          string                `json:"sector"`
	Ratios          map[string]*float64   `json:"ratios"`
	Growth          map[string]*float64   `json:"growth"`
	FinancialHealth FinancialHealth       `json:"financial_health"`
	PeerComparison  map[string]PeerMetric `json:"peer_comparison"`
	Scores          FactorScores          `json:"scores"`

	// Derived recommendation for a pure-fundamental view
	Action     Action  `json:"action"`
	Confidence float64 `json:"confidence"`
}

// Composite sub-score weights: value, growth, quality, momentum.
// Missing sub-scores are excluded and the remainder renormalized.
const (
	WeightValueScore    = 0.25
	WeightGrowthScore   = 0.25
	WeightQualityScore  = 0.30
	WeightMomentumScore = 0.20
)

// CompositeScore blends the present sub-scores with the fixed factor
// weights, renormalizing when some are missing. Returns 50 when no
// sub-score is available.
func (f *FactorScores) CompositeScore() float64 {
	type weighted struct {
		score  *float64
		weight float64
	}

	parts := []weighted{
		{f.Value, WeightValueScore},
		{f.Growth, WeightGrowthScore},
		{f.Quality, WeightQualityScore},
		{f.Momentum, WeightMomentumScore},
	}

	var sum, weightSum float64
	for _, p := range parts {
		if p.score == nil {
			continue
		}
		sum += *p.score * p.weight
		weightSum += p.weight
	}

	if weightSum == 0 {
		return 50.0
	}

	return sum / weightSum
}
