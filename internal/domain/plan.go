package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RiskTolerance categorizes how aggressively a household invests.
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

// ParseRiskTolerance maps a free-form string onto a known tolerance.
// Unknown values fall back to moderate so an unrecognized wizard choice
// never changes a return figure.
func ParseRiskTolerance(s string) RiskTolerance {
	switch RiskTolerance(s) {
	case RiskConservative, RiskModerate, RiskAggressive:
		return RiskTolerance(s)
	default:
		return RiskModerate
	}
}

// WorkPeriod is a contiguous age span of employment under one country's
// pension rules. Periods never overlap the engine's running balance
// incorrectly because the aggregator sorts them by StartAge and clips
// each to the [currentAge, retirementAge] window before applying it.
type WorkPeriod struct {
	Country             string          `yaml:"country" json:"country"`
	StartAge            int             `yaml:"start_age" json:"startAge"`
	EndAge              int             `yaml:"end_age" json:"endAge"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthlyContribution"`
	Salary              decimal.Decimal `yaml:"salary" json:"salary"`
	PensionReturn       decimal.Decimal `yaml:"pension_return" json:"pensionReturn"`             // annual percent
	PensionDepositFee   decimal.Decimal `yaml:"pension_deposit_fee" json:"pensionDepositFee"`    // percent of each deposit
	PensionAnnualFee    decimal.Decimal `yaml:"pension_annual_fee" json:"pensionAnnualFee"`      // percent of balance per year
	MonthlyTrainingFund decimal.Decimal `yaml:"monthly_training_fund" json:"monthlyTrainingFund"`
}

// SortWorkPeriods returns the periods ordered ascending by StartAge
// without touching the caller's slice. Sequential compounding makes the
// processing order part of the result, so the aggregator always sorts
// first and the terminal balance is independent of input order.
func SortWorkPeriods(periods []WorkPeriod) []WorkPeriod {
	sorted := make([]WorkPeriod, len(periods))
	copy(sorted, periods)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartAge < sorted[j].StartAge
	})
	return sorted
}

// AllocationEntry is one slice of a portfolio allocation. Allocation is
// a percentage of the whole; HistoricalReturn is the fallback annual
// return percent used when the historical-returns table has no entry for
// the asset name.
type AllocationEntry struct {
	Name             string          `yaml:"name" json:"name"`
	Allocation       decimal.Decimal `yaml:"allocation" json:"allocation"`
	HistoricalReturn decimal.Decimal `yaml:"historical_return" json:"historicalReturn"`
}

// HistoricalReturns maps an asset name to its long-run annual return
// percent. Supplied by the caller; entries override the per-allocation
// fallback return.
type HistoricalReturns map[string]decimal.Decimal

// PlanInput bundles everything one calculation consumes: the raw record
// plus the structured lists the wizard derives from it.
type PlanInput struct {
	Record                 InputRecord       `yaml:"record" json:"record"`
	WorkPeriods            []WorkPeriod      `yaml:"work_periods" json:"workPeriods"`
	PartnerWorkPeriods     []WorkPeriod      `yaml:"partner_work_periods" json:"partnerWorkPeriods"`
	PensionAllocation      []AllocationEntry `yaml:"pension_allocation" json:"pensionAllocation"`
	TrainingFundAllocation []AllocationEntry `yaml:"training_fund_allocation" json:"trainingFundAllocation"`
	HistoricalReturns      HistoricalReturns `yaml:"historical_returns" json:"historicalReturns"`
}
