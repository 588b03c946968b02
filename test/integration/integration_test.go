package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise/retirement-planner/internal/breakeven"
	"github.com/planwise/retirement-planner/internal/calculation"
	"github.com/planwise/retirement-planner/internal/compare"
	"github.com/planwise/retirement-planner/internal/config"
	"github.com/planwise/retirement-planner/internal/domain"
	"github.com/planwise/retirement-planner/internal/output"
	"github.com/planwise/retirement-planner/internal/score"
)

const examplePlan = "../testdata/example_plan.yaml"

// TestEndToEnd exercises the full pipeline from plan file to report.
func TestEndToEnd(t *testing.T) {
	t.Run("plan_loading", func(t *testing.T) {
		parser := config.NewInputParser()
		plan, err := parser.LoadPlanFromFile(examplePlan)
		require.NoError(t, err, "Should load plan successfully")
		require.NotNil(t, plan, "Plan should not be nil")

		assert.NotEmpty(t, plan.Record, "Should have a record")
		assert.Len(t, plan.WorkPeriods, 2, "Should have two work periods")
		assert.Len(t, plan.PensionAllocation, 2, "Should have a pension allocation")
	})

	t.Run("projection", func(t *testing.T) {
		plan := loadExamplePlan(t)
		engine := newEngine(t)

		result, err := engine.RunProjection(context.Background(), plan)
		require.NoError(t, err, "Should run projection successfully")
		require.NotNil(t, result, "Result should not be nil")

		assert.Equal(t, 35, result.CurrentAge)
		assert.Equal(t, 67, result.RetirementAge)
		assert.Equal(t, 32, result.YearsToGo)

		assert.True(t, result.TotalPensionSavings.GreaterThan(decimal.NewFromInt(120000)),
			"Pension should grow beyond the starting balance: %s", result.TotalPensionSavings.StringFixed(0))
		assert.True(t, result.MonthlyIncome.GreaterThan(decimal.Zero),
			"Monthly income should be positive")
		assert.True(t, result.CombinedTotalSavings.Equal(result.TotalSavings()),
			"Single-person household total should equal the primary total")
		assert.Nil(t, result.Partner, "Partner should be nil when couple planning is off")
		assert.Len(t, result.PeriodResults, 2, "Both work periods overlap the horizon")
	})

	t.Run("scoring", func(t *testing.T) {
		plan := loadExamplePlan(t)
		rules := loadRules(t)

		report := score.NewHealthScorer(rules).Score(plan.Record)
		assert.GreaterOrEqual(t, report.Score, 0.0)
		assert.LessOrEqual(t, report.Score, 100.0)
		assert.Len(t, report.Factors, 8, "Every factor should be scored")
		assert.NotEqual(t, domain.StatusUnknown, report.Status)
	})

	t.Run("report_formats", func(t *testing.T) {
		plan := loadExamplePlan(t)
		engine := newEngine(t)
		rules := loadRules(t)

		projection, err := engine.RunProjection(context.Background(), plan)
		require.NoError(t, err)
		health := score.NewHealthScorer(rules).Score(plan.Record)

		report := &output.Report{GeneratedAt: time.Now(), Projection: projection, Health: &health}
		for _, name := range []string{"console", "json", "csv"} {
			formatter := output.GetFormatterByName(name)
			require.NotNil(t, formatter, "Formatter %s should exist", name)
			data, err := formatter.Format(report)
			assert.NoError(t, err, "Formatter %s should succeed", name)
			assert.NotEmpty(t, data, "Formatter %s should produce output", name)
		}
	})

	t.Run("comparison", func(t *testing.T) {
		plan := loadExamplePlan(t)
		engine := newEngine(t)

		compSet, err := compare.NewCompareEngine(engine).Compare(context.Background(),
			plan, []string{"conservative", "aggressive", "postpone_2yr"})
		require.NoError(t, err)
		require.NotNil(t, compSet.BaseResult)
		require.Len(t, compSet.AlternativeResults, 3)

		assert.True(t, compSet.BaseResult.SavingsDiffFromBase.IsZero(), "Base scenario diff should be zero")
		for _, r := range compSet.AlternativeResults {
			assert.False(t, r.TotalSavings.IsZero(), "Scenario %s should produce savings", r.ScenarioName)
		}
		assert.NotEmpty(t, compSet.Recommendations)
	})

	t.Run("breakeven", func(t *testing.T) {
		plan := loadExamplePlan(t)
		engine := newEngine(t)

		result, err := breakeven.NewDefaultSolver(engine).Solve(context.Background(), plan,
			breakeven.Constraints{TargetMonthlyIncome: decimal.NewFromInt(12000)})
		require.NoError(t, err)
		assert.True(t, result.RequiredMonthlyContribution.GreaterThanOrEqual(decimal.Zero))
		if result.Converged {
			diff := result.AchievedMonthlyIncome.Sub(result.TargetMonthlyIncome).Abs()
			assert.True(t, diff.LessThanOrEqual(decimal.NewFromInt(10)),
				"Converged income should be within tolerance of the target: %s", diff.StringFixed(2))
		}
	})
}

// TestErrorHandling tests error conditions at the boundaries.
func TestErrorHandling(t *testing.T) {
	t.Run("missing_plan_file", func(t *testing.T) {
		_, err := config.NewInputParser().LoadPlanFromFile("nonexistent.yaml")
		assert.Error(t, err, "Should fail for missing plan file")
	})

	t.Run("zero_horizon", func(t *testing.T) {
		plan := loadExamplePlan(t)
		plan.Record["retirementAge"] = 35

		_, err := newEngine(t).RunProjection(context.Background(), plan)
		assert.ErrorIs(t, err, calculation.ErrNoHorizon)
	})
}

// TestDeterminism verifies repeated runs produce identical figures.
func TestDeterminism(t *testing.T) {
	plan := loadExamplePlan(t)
	engine := newEngine(t)

	first, err := engine.RunProjection(context.Background(), plan)
	require.NoError(t, err)
	second, err := engine.RunProjection(context.Background(), plan)
	require.NoError(t, err)

	assert.True(t, first.TotalSavings().Equal(second.TotalSavings()),
		"Totals should match exactly: %s vs %s",
		first.TotalSavings().StringFixed(2), second.TotalSavings().StringFixed(2))
	assert.True(t, first.MonthlyIncome.Equal(second.MonthlyIncome),
		"Income should match exactly")
}

func loadExamplePlan(t *testing.T) *domain.PlanInput {
	t.Helper()
	plan, err := config.NewInputParser().LoadPlanFromFile(examplePlan)
	require.NoError(t, err)
	return plan
}

func loadRules(t *testing.T) *domain.EngineRules {
	t.Helper()
	rules, err := config.DefaultRules()
	require.NoError(t, err)
	return rules
}

func newEngine(t *testing.T) *calculation.CalculationEngine {
	t.Helper()
	return calculation.NewCalculationEngine(loadRules(t))
}
