package calculation

import (
	"github.com/shopspring/decimal"
)

// nearZeroRate is the cutoff below which the annuity closed form is
// replaced by the flat-sum branch. The closed form divides by the
// monthly rate and is undefined at zero.
var nearZeroRate = decimal.New(1, -9)

// compoundGrowth applies the two-term growth model over a horizon in
// years at the given annual return percent. The existing balance
// compounds annually while the contribution stream uses the monthly
// annuity closed form:
//
//	existing      = balance * (1 + annual/100)^years
//	contributions = deposit * ((1+r)^months - 1) / r   with r = annual/100/12
//
// The r==0 degenerate case reduces to deposit * months.
func compoundGrowth(balance, monthlyDeposit, annualReturnPercent decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return balance
	}
	months := decimal.NewFromInt(int64(years) * 12)
	monthlyRate := monthlyRateOf(annualReturnPercent)

	if monthlyRate.Abs().LessThan(nearZeroRate) {
		return balance.Add(monthlyDeposit.Mul(months))
	}

	annualFactor := decimalOne.Add(annualReturnPercent.Div(decimalHundred)).Pow(decimal.NewFromInt(int64(years)))
	existing := balance.Mul(annualFactor)

	monthlyFactor := decimalOne.Add(monthlyRate).Pow(months)
	contributions := monthlyDeposit.Mul(monthlyFactor.Sub(decimalOne)).Div(monthlyRate)
	return existing.Add(contributions)
}

// monthlyRateOf converts an annual return percent to a monthly fraction.
func monthlyRateOf(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(decimalHundred).Div(decimalTwelve)
}

// growCategory compounds one savings category for a whole horizon in
// years using an annual return percent. This is the shape shared by the
// training fund, portfolio, crypto and real estate calculators; pension
// goes through the work-period aggregator instead because its rate and
// fees change per period.
func growCategory(balance, monthlyDeposit, annualReturnPercent decimal.Decimal, years int) decimal.Decimal {
	return compoundGrowth(balance, monthlyDeposit, annualReturnPercent, years)
}

// taxedBalance applies a flat percent haircut to an existing balance.
// Used for the personal portfolio, whose accumulated gains are assumed
// taxable up front; fresh contributions are not taxed here (withdrawal
// taxation belongs to the income model).
func taxedBalance(gross, taxRatePercent decimal.Decimal) decimal.Decimal {
	if taxRatePercent.LessThanOrEqual(decimal.Zero) {
		return gross
	}
	keep := decimalOne.Sub(taxRatePercent.Div(decimalHundred))
	if keep.LessThan(decimal.Zero) {
		keep = decimal.Zero
	}
	return gross.Mul(keep)
}

// rentalIncome derives the monthly rent a real-estate balance produces
// at the given annual yield percent. Pure derivation, no compounding.
func rentalIncome(realEstateValue, annualYieldPercent decimal.Decimal) decimal.Decimal {
	return realEstateValue.Mul(annualYieldPercent.Div(decimalHundred)).Div(decimalTwelve)
}
