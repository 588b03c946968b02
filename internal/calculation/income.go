package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/planwise/retirement-planner/internal/domain"
)

// IncomeModel converts accumulated balances into a monthly retirement
// income figure. It is a collaborator of the projection, injected so a
// caller can swap in a jurisdiction-specific annuity model.
type IncomeModel interface {
	MonthlyIncome(primary *domain.PersonProjection, partner *domain.PersonProjection, rules *domain.EngineRules) decimal.Decimal
}

// WithdrawalIncomeModel is the default: a fixed annual withdrawal rate
// over the household's liquid savings, plus rental income. Real estate
// principal is excluded from the withdrawal base because it already
// pays out through rent.
type WithdrawalIncomeModel struct{}

func (WithdrawalIncomeModel) MonthlyIncome(primary, partner *domain.PersonProjection, rules *domain.EngineRules) decimal.Decimal {
	rate := rules.WithdrawalRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(4)
	}

	liquid := liquidSavings(primary)
	rent := primary.MonthlyRentalIncome
	if partner != nil {
		liquid = liquid.Add(liquidSavings(partner))
		rent = rent.Add(partner.MonthlyRentalIncome)
	}

	return liquid.Mul(rate.Div(decimalHundred)).Div(decimalTwelve).Add(rent)
}

func liquidSavings(pp *domain.PersonProjection) decimal.Decimal {
	return pp.TotalPensionSavings.
		Add(pp.TrainingFundValue).
		Add(pp.PersonalPortfolioValue).
		Add(pp.CryptoValue)
}
