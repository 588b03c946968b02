package breakeven

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise/retirement-planner/internal/calculation"
	"github.com/planwise/retirement-planner/internal/config"
	"github.com/planwise/retirement-planner/internal/domain"
)

func solverPlan() *domain.PlanInput {
	return &domain.PlanInput{
		Record: domain.InputRecord{
			"currentAge":    35,
			"retirementAge": 65,
			"riskTolerance": "moderate",
		},
		WorkPeriods: []domain.WorkPeriod{{
			Country:             "israel",
			StartAge:            30,
			EndAge:              65,
			MonthlyContribution: decimal.NewFromInt(1000),
			PensionReturn:       decimal.NewFromInt(6),
		}},
	}
}

func newTestSolver(t *testing.T) *Solver {
	t.Helper()
	rules, err := config.DefaultRules()
	require.NoError(t, err)
	return NewDefaultSolver(calculation.NewCalculationEngine(rules))
}

func TestConstraintsValidate(t *testing.T) {
	t.Run("requires_positive_target", func(t *testing.T) {
		err := Constraints{}.Validate()
		require.Error(t, err)
		var beErr *BreakEvenError
		assert.ErrorAs(t, err, &beErr)
		assert.Equal(t, "validate", beErr.Operation)
	})

	t.Run("rejects_inverted_bounds", func(t *testing.T) {
		low := decimal.NewFromInt(5000)
		high := decimal.NewFromInt(1000)
		err := Constraints{
			TargetMonthlyIncome: decimal.NewFromInt(8000),
			MinContribution:     &low,
			MaxContribution:     &high,
		}.Validate()
		assert.Error(t, err)
	})

	t.Run("accepts_valid", func(t *testing.T) {
		assert.NoError(t, Constraints{TargetMonthlyIncome: decimal.NewFromInt(8000)}.Validate())
	})
}

func TestSolve(t *testing.T) {
	solver := newTestSolver(t)

	t.Run("converges_on_reachable_target", func(t *testing.T) {
		result, err := solver.Solve(context.Background(), solverPlan(),
			Constraints{TargetMonthlyIncome: decimal.NewFromInt(8000)})
		require.NoError(t, err)
		require.True(t, result.Converged, "An 8,000 target should be reachable within the default bounds")

		miss := result.AchievedMonthlyIncome.Sub(result.TargetMonthlyIncome).Abs()
		assert.True(t, miss.LessThanOrEqual(solver.Options.Tolerance),
			"Achieved income should be within tolerance, missed by %s", miss.StringFixed(2))
		assert.Positive(t, result.Iterations)
	})

	t.Run("unreachable_target_reports_no_convergence", func(t *testing.T) {
		ceiling := decimal.NewFromInt(100)
		result, err := solver.Solve(context.Background(), solverPlan(), Constraints{
			TargetMonthlyIncome: decimal.NewFromInt(1000000),
			MaxContribution:     &ceiling,
		})
		require.NoError(t, err)
		assert.False(t, result.Converged)
		assert.True(t, result.RequiredMonthlyContribution.Equal(ceiling),
			"An unreachable target should report the upper bound")
	})

	t.Run("cancelled_context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := solver.Solve(ctx, solverPlan(),
			Constraints{TargetMonthlyIncome: decimal.NewFromInt(8000)})
		assert.Error(t, err)
	})

	t.Run("does_not_mutate_plan", func(t *testing.T) {
		plan := solverPlan()
		_, err := solver.Solve(context.Background(), plan,
			Constraints{TargetMonthlyIncome: decimal.NewFromInt(8000)})
		require.NoError(t, err)
		assert.True(t, plan.WorkPeriods[0].MonthlyContribution.Equal(decimal.NewFromInt(1000)),
			"The solver must probe copies, not the caller's plan")
	})

	t.Run("invalid_plan_surfaces_breakeven_error", func(t *testing.T) {
		plan := solverPlan()
		plan.Record["retirementAge"] = 30

		_, err := solver.Solve(context.Background(), plan,
			Constraints{TargetMonthlyIncome: decimal.NewFromInt(8000)})
		require.Error(t, err)
		var beErr *BreakEvenError
		assert.ErrorAs(t, err, &beErr)
		assert.ErrorIs(t, err, calculation.ErrNoHorizon)
	})
}
