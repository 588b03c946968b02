package compare

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/planwise/retirement-planner/internal/calculation"
	"github.com/planwise/retirement-planner/internal/domain"
)

// CompareEngine runs a base plan against built-in what-if templates.
type CompareEngine struct {
	CalcEngine *calculation.CalculationEngine
	Registry   *TemplateRegistry
}

// NewCompareEngine creates a comparison engine over a calculation engine.
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine: calcEngine,
		Registry:   BuiltInTemplates(),
	}
}

// Compare projects the base plan and each named template variant.
func (ce *CompareEngine) Compare(ctx context.Context, plan *domain.PlanInput, templateNames []string) (*ComparisonSet, error) {
	baseProjection, err := ce.CalcEngine.RunProjection(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base plan: %w", err)
	}
	baseResult := metricsFor("base", "Plan as entered", baseProjection)

	alternatives := make([]ComparisonResult, 0, len(templateNames))
	for _, name := range templateNames {
		template, ok := ce.Registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}

		altProjection, err := ce.CalcEngine.RunProjection(ctx, template.Apply(plan))
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", name, err)
		}

		alt := metricsFor(name, template.Description, altProjection)
		alternatives = append(alternatives, withDeltas(alt, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   "base",
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

// GenerateRecommendations distills the comparison into a short list of
// plain-language takeaways.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recs := []string{}
	if compSet.BaseResult == nil {
		return recs
	}

	var bestSavings *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if bestSavings == nil || alt.TotalSavings.GreaterThan(bestSavings.TotalSavings) {
			bestSavings = alt
		}
	}

	if bestSavings != nil && bestSavings.SavingsDiffFromBase.GreaterThan(decimal.Zero) {
		recs = append(recs, fmt.Sprintf("%s adds %s to total savings (%s%% over the base plan)",
			bestSavings.ScenarioName,
			bestSavings.SavingsDiffFromBase.StringFixed(0),
			bestSavings.SavingsPctFromBase.StringFixed(1)))
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.ScenarioName == "market_stress" && alt.SavingsDiffFromBase.LessThan(decimal.Zero) {
			recs = append(recs, fmt.Sprintf("a two-point return shock costs %s of total savings; keep contribution rates resilient to it",
				alt.SavingsDiffFromBase.Abs().StringFixed(0)))
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "no alternative improved on the base plan; current parameters look solid")
	}
	return recs
}
