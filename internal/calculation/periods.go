package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/planwise/retirement-planner/internal/domain"
)

// accumulatePension walks the work periods in ascending StartAge order,
// compounding the running pension balance through each period's net
// return. Only the part of a period inside [currentAge, retirementAge]
// contributes; periods entirely outside the window produce no
// PeriodResult. A period naming an unknown country is skipped with a
// warning rather than failing the whole projection.
func (ce *CalculationEngine) accumulatePension(
	startBalance decimal.Decimal,
	periods []domain.WorkPeriod,
	currentAge, retirementAge int,
	risk domain.RiskTolerance,
	fallbackReturn decimal.Decimal,
) (decimal.Decimal, []domain.PeriodResult) {

	balance := startBalance
	results := make([]domain.PeriodResult, 0, len(periods))

	for _, period := range domain.SortWorkPeriods(periods) {
		start := period.StartAge
		if currentAge > start {
			start = currentAge
		}
		end := period.EndAge
		if retirementAge < end {
			end = retirementAge
		}
		years := end - start
		if years <= 0 {
			continue
		}

		rules, ok := ce.Rules.Country(period.Country)
		if !ok {
			ce.Logger.Warnf("work period %d-%d references unknown country %q, skipping", period.StartAge, period.EndAge, period.Country)
			continue
		}

		annualReturn := period.PensionReturn
		if annualReturn.IsZero() {
			annualReturn = fallbackReturn
		}
		netAnnual := ce.AdjustedReturn(annualReturn, risk).Sub(period.PensionAnnualFee)

		deposit := period.MonthlyContribution
		if period.PensionDepositFee.GreaterThan(decimal.Zero) {
			deposit = deposit.Mul(decimalOne.Sub(period.PensionDepositFee.Div(decimalHundred)))
		}

		grown := compoundGrowth(balance, deposit, netAnnual, years)
		contributed := deposit.Mul(decimal.NewFromInt(int64(years) * 12))

		results = append(results, domain.PeriodResult{
			Country:          period.Country,
			CountryName:      rules.Name,
			StartAge:         period.StartAge,
			EndAge:           period.EndAge,
			Years:            decimal.NewFromInt(int64(years)),
			NetAnnualReturn:  netAnnual,
			MonthlyDeposit:   deposit,
			TotalContributed: contributed,
			Growth:           grown.Sub(balance).Sub(contributed),
			EndingBalance:    grown,
		})
		balance = grown
	}

	return balance, results
}
