package breakeven

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Constraints bound the contribution search.
type Constraints struct {
	// MinContribution / MaxContribution bracket the monthly pension
	// contribution the solver may propose.
	MinContribution *decimal.Decimal `json:"min_contribution,omitempty"`
	MaxContribution *decimal.Decimal `json:"max_contribution,omitempty"`

	// TargetMonthlyIncome is the retirement income to hit.
	TargetMonthlyIncome decimal.Decimal `json:"target_monthly_income"`
}

// Validate rejects unusable constraint sets.
func (c Constraints) Validate() error {
	if c.TargetMonthlyIncome.LessThanOrEqual(decimal.Zero) {
		return &BreakEvenError{Operation: "validate", Message: "target monthly income must be positive"}
	}
	if c.MinContribution != nil && c.MaxContribution != nil && c.MinContribution.GreaterThan(*c.MaxContribution) {
		return &BreakEvenError{Operation: "validate", Message: "min contribution exceeds max contribution"}
	}
	return nil
}

// SolverOptions tune the binary search.
type SolverOptions struct {
	MaxIterations int
	Tolerance     decimal.Decimal // acceptable income miss, in currency per month
}

// DefaultSolverOptions returns sensible solver defaults.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 60,
		Tolerance:     decimal.NewFromInt(10),
	}
}

// Result is the solver's answer.
type Result struct {
	RequiredMonthlyContribution decimal.Decimal `json:"requiredMonthlyContribution"`
	AchievedMonthlyIncome       decimal.Decimal `json:"achievedMonthlyIncome"`
	TargetMonthlyIncome         decimal.Decimal `json:"targetMonthlyIncome"`
	Iterations                  int             `json:"iterations"`
	Converged                   bool            `json:"converged"`
}

// BreakEvenError carries the failing operation alongside the message.
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("breakeven %s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("breakeven %s: %s", e.Operation, e.Message)
}

func (e *BreakEvenError) Unwrap() error { return e.Cause }
