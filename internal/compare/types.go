package compare

import (
	"github.com/shopspring/decimal"

	"github.com/planwise/retirement-planner/internal/domain"
)

// ComparisonResult is one scenario's projection with the metrics used
// for side-by-side display.
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Description  string                   `json:"description,omitempty"`
	Projection   *domain.ProjectionResult `json:"projection,omitempty"`

	TotalSavings  decimal.Decimal `json:"totalSavings"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
	PensionShare  decimal.Decimal `json:"pensionShare"` // percent of total savings

	// Deltas against the base scenario; zero on the base itself.
	SavingsDiffFromBase decimal.Decimal `json:"savingsDiffFromBase"`
	SavingsPctFromBase  decimal.Decimal `json:"savingsPctFromBase"`
	IncomeDiffFromBase  decimal.Decimal `json:"incomeDiffFromBase"`
}

// ComparisonSet is the full output of one compare run.
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
}

// metricsFor extracts display metrics from a projection.
func metricsFor(name, description string, proj *domain.ProjectionResult) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:  name,
		Description:   description,
		Projection:    proj,
		TotalSavings:  proj.CombinedTotalSavings,
		MonthlyIncome: proj.MonthlyIncome,
	}
	if proj.CombinedTotalSavings.GreaterThan(decimal.Zero) {
		pension := proj.TotalPensionSavings
		if proj.Partner != nil {
			pension = pension.Add(proj.Partner.TotalPensionSavings)
		}
		result.PensionShare = pension.Div(proj.CombinedTotalSavings).Mul(decimal.NewFromInt(100))
	}
	return result
}

// withDeltas fills in the comparison columns against the base result.
func withDeltas(result, base ComparisonResult) ComparisonResult {
	result.SavingsDiffFromBase = result.TotalSavings.Sub(base.TotalSavings)
	result.IncomeDiffFromBase = result.MonthlyIncome.Sub(base.MonthlyIncome)
	if base.TotalSavings.GreaterThan(decimal.Zero) {
		result.SavingsPctFromBase = result.SavingsDiffFromBase.Div(base.TotalSavings).Mul(decimal.NewFromInt(100))
	}
	return result
}
