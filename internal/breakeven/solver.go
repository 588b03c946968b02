// Package breakeven answers "what would I have to save each month to
// retire on a given income" by binary-searching the pension
// contribution across repeated projections.
package breakeven

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/planwise/retirement-planner/internal/calculation"
	"github.com/planwise/retirement-planner/internal/domain"
)

var decimalTwo = decimal.NewFromInt(2)

// Solver searches for the contribution meeting a target income.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a solver with the given options.
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{CalcEngine: calcEngine, Options: options}
}

// NewDefaultSolver creates a solver with default options.
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve binary-searches the monthly pension contribution applied to
// every work period until the projected retirement income is within
// tolerance of the target. Income grows monotonically with the
// contribution, which is what makes bisection valid here.
func (s *Solver) Solve(ctx context.Context, plan *domain.PlanInput, constraints Constraints) (*Result, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	low := decimal.Zero
	high := decimal.NewFromInt(100000)
	if constraints.MinContribution != nil {
		low = *constraints.MinContribution
	}
	if constraints.MaxContribution != nil {
		high = *constraints.MaxContribution
	}

	// The upper bound must actually reach the target, otherwise the
	// search would converge onto the bound and report false success.
	highIncome, err := s.incomeAt(ctx, plan, high)
	if err != nil {
		return nil, err
	}
	if highIncome.LessThan(constraints.TargetMonthlyIncome) {
		return &Result{
			RequiredMonthlyContribution: high,
			AchievedMonthlyIncome:       highIncome,
			TargetMonthlyIncome:         constraints.TargetMonthlyIncome,
			Converged:                   false,
		}, nil
	}

	var mid, income decimal.Decimal
	iterations := 0
	for iterations < s.Options.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid = low.Add(high).Div(decimalTwo)
		income, err = s.incomeAt(ctx, plan, mid)
		if err != nil {
			return nil, err
		}

		miss := income.Sub(constraints.TargetMonthlyIncome)
		if miss.Abs().LessThanOrEqual(s.Options.Tolerance) {
			return &Result{
				RequiredMonthlyContribution: mid,
				AchievedMonthlyIncome:       income,
				TargetMonthlyIncome:         constraints.TargetMonthlyIncome,
				Iterations:                  iterations,
				Converged:                   true,
			}, nil
		}
		if miss.GreaterThan(decimal.Zero) {
			high = mid
		} else {
			low = mid
		}
	}

	return &Result{
		RequiredMonthlyContribution: mid,
		AchievedMonthlyIncome:       income,
		TargetMonthlyIncome:         constraints.TargetMonthlyIncome,
		Iterations:                  iterations,
		Converged:                   false,
	}, nil
}

// incomeAt projects the plan with every work period's contribution set
// to the candidate value and returns the resulting monthly income.
func (s *Solver) incomeAt(ctx context.Context, plan *domain.PlanInput, contribution decimal.Decimal) (decimal.Decimal, error) {
	variant := *plan
	variant.WorkPeriods = make([]domain.WorkPeriod, len(plan.WorkPeriods))
	copy(variant.WorkPeriods, plan.WorkPeriods)
	for i := range variant.WorkPeriods {
		variant.WorkPeriods[i].MonthlyContribution = contribution
	}

	projection, err := s.CalcEngine.RunProjection(ctx, &variant)
	if err != nil {
		return decimal.Zero, &BreakEvenError{
			Operation: "solve",
			Message:   "projection failed",
			Cause:     err,
		}
	}
	return projection.MonthlyIncome, nil
}
