package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/planwise/retirement-planner/internal/domain"
)

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalTwelve  = decimal.NewFromInt(12)
	decimalHundred = decimal.NewFromInt(100)
)

// AdjustedReturn applies the configured risk-tolerance multiplier to a
// base annual return percent. Unknown tolerances resolve to the moderate
// (neutral) multiplier, so a garbled wizard value never moves a number.
func (ce *CalculationEngine) AdjustedReturn(baseReturnPercent decimal.Decimal, risk domain.RiskTolerance) decimal.Decimal {
	mult := ce.Rules.RiskAdjustments.Multiplier(risk)
	if mult.IsZero() {
		return baseReturnPercent
	}
	return baseReturnPercent.Mul(mult)
}

// WeightedReturn blends an allocation list into one annual return
// percent: sum of allocation_i/100 * return_i, where return_i comes from
// the historical-returns table when the asset name is known there and
// from the entry's own HistoricalReturn otherwise.
//
// Allocations are trusted to sum to ~100; when they drift more than one
// point the list is normalized by its own total and a warning is logged.
// The horizon is accepted for interface symmetry with callers that blend
// horizon-dependent return tables; it does not change the weighting.
func (ce *CalculationEngine) WeightedReturn(entries []domain.AllocationEntry, yearsHorizon int, table domain.HistoricalReturns) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Allocation)
	}

	scale := decimalHundred
	if total.Sub(decimalHundred).Abs().GreaterThan(decimalOne) && total.GreaterThan(decimal.Zero) {
		ce.Logger.Warnf("allocation percentages sum to %s, normalizing", total.StringFixed(2))
		scale = total
	}

	weighted := decimal.Zero
	for _, e := range entries {
		ret := e.HistoricalReturn
		if table != nil {
			if hist, ok := table[e.Name]; ok {
				ret = hist
			}
		}
		weighted = weighted.Add(e.Allocation.Div(scale).Mul(ret))
	}
	return weighted
}
