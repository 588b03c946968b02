package domain

import "github.com/shopspring/decimal"

// PeriodResult summarizes one work period's contribution to the pension
// balance. Write-once; attached to the projection for display.
type PeriodResult struct {
	Country          string          `json:"country"`
	CountryName      string          `json:"countryName"`
	StartAge         int             `json:"startAge"`
	EndAge           int             `json:"endAge"`
	Years            decimal.Decimal `json:"years"` // clipped span actually applied
	NetAnnualReturn  decimal.Decimal `json:"netAnnualReturn"`
	MonthlyDeposit   decimal.Decimal `json:"monthlyDeposit"` // after deposit fee
	TotalContributed decimal.Decimal `json:"totalContributed"`
	Growth           decimal.Decimal `json:"growth"`
	EndingBalance    decimal.Decimal `json:"endingBalance"`
}

// PersonProjection holds one household member's projected balances.
type PersonProjection struct {
	TotalPensionSavings    decimal.Decimal `json:"totalPensionSavings"`
	TrainingFundValue      decimal.Decimal `json:"trainingFundValue"`
	PersonalPortfolioValue decimal.Decimal `json:"personalPortfolioValue"`
	CryptoValue            decimal.Decimal `json:"cryptoValue"`
	RealEstateValue        decimal.Decimal `json:"realEstateValue"`
	MonthlyRentalIncome    decimal.Decimal `json:"monthlyRentalIncome"`
	PeriodResults          []PeriodResult  `json:"periodResults"`
}

// TotalSavings sums the five balance categories.
func (pp *PersonProjection) TotalSavings() decimal.Decimal {
	return pp.TotalPensionSavings.
		Add(pp.TrainingFundValue).
		Add(pp.PersonalPortfolioValue).
		Add(pp.CryptoValue).
		Add(pp.RealEstateValue)
}

// ProjectionResult is the engine's output for one calculation call.
// Partner is nil unless couple planning is enabled and partner work
// periods were supplied. Combination of the two sides is done by the
// income step, never by mutating either side.
type ProjectionResult struct {
	PersonProjection

	Partner *PersonProjection `json:"partnerResults,omitempty"`

	// Income model output across the household.
	MonthlyIncome        decimal.Decimal `json:"monthlyIncome"`
	CombinedTotalSavings decimal.Decimal `json:"combinedTotalSavings"`

	CurrentAge    int `json:"currentAge"`
	RetirementAge int `json:"retirementAge"`
	YearsToGo     int `json:"yearsToRetirement"`
}

// ScoreStatus is the tier label a benchmark produced.
type ScoreStatus string

const (
	StatusCritical  ScoreStatus = "critical"
	StatusPoor      ScoreStatus = "poor"
	StatusFair      ScoreStatus = "fair"
	StatusGood      ScoreStatus = "good"
	StatusExcellent ScoreStatus = "excellent"
	StatusUnknown   ScoreStatus = "unknown"
)

// ScoreResult is one health factor's outcome: a clamped 0-100 score plus
// the raw quantities that produced it.
type ScoreResult struct {
	Score   float64            `json:"score"`
	Status  ScoreStatus        `json:"status"`
	Details map[string]float64 `json:"details,omitempty"`
}

// Recommendation is one ordered improvement suggestion derived from a
// weak factor.
type Recommendation struct {
	Priority int    `json:"priority"` // 1 is most urgent
	Factor   string `json:"factor"`
	Action   string `json:"action"`
}

// HealthReport is the aggregate financial health score with its factor
// breakdown and the ordered recommendation list.
type HealthReport struct {
	Score           float64                `json:"score"` // 0-100, rounded
	Status          ScoreStatus            `json:"status"`
	Factors         map[string]ScoreResult `json:"factors"`
	Recommendations []Recommendation       `json:"recommendations"`
}
