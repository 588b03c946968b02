package score

import (
	"github.com/shopspring/decimal"

	"github.com/planwise/retirement-planner/internal/domain"
	"github.com/planwise/retirement-planner/internal/resolve"
)

// household resolves a chain across both partners.
func household(rec domain.InputRecord, chain resolve.Chain) decimal.Decimal {
	return resolve.Value(rec, chain, resolve.Options{CombinePartners: true, AllowZero: true})
}

// totalHouseholdSavings sums every savings category across the couple.
func totalHouseholdSavings(rec domain.InputRecord) decimal.Decimal {
	total := decimal.Zero
	for _, chain := range []resolve.Chain{
		resolve.PensionSavings,
		resolve.TrainingFund,
		resolve.Portfolio,
		resolve.Crypto,
		resolve.RealEstate,
	} {
		total = total.Add(household(rec, chain))
	}
	return total
}

// SavingsRateScore rates monthly savings as a percent of monthly income.
func (hs *HealthScorer) SavingsRateScore(rec domain.InputRecord) domain.ScoreResult {
	income := household(rec, resolve.MonthlySalary)
	contribution := household(rec, resolve.MonthlyContrib)

	if income.LessThanOrEqual(decimal.Zero) {
		return neutral(map[string]float64{"monthlyIncome": 0})
	}

	ratePct := contribution.Div(income).Mul(decimal.NewFromInt(100)).InexactFloat64()
	s, status := tierScore(ratePct, hs.Rules.Benchmarks.SavingsRatePercent)
	return domain.ScoreResult{
		Score:  clamp(s),
		Status: status,
		Details: map[string]float64{
			"savingsRatePercent":  ratePct,
			"monthlyIncome":       income.InexactFloat64(),
			"monthlyContribution": contribution.InexactFloat64(),
		},
	}
}

// TimeHorizonScore rates how many working years remain, with a job
// stability adjustment of at most ten points either way.
func (hs *HealthScorer) TimeHorizonScore(rec domain.InputRecord) domain.ScoreResult {
	currentAge := resolve.Int(rec, resolve.CurrentAge, resolve.Options{})
	retirementAge := resolve.Int(rec, resolve.RetirementAge, resolve.Options{})
	years := retirementAge - currentAge
	if currentAge <= 0 || years < 0 {
		return neutral(map[string]float64{"yearsToRetirement": 0})
	}

	s, status := tierScore(float64(years), hs.Rules.Benchmarks.YearsToRetirement)

	adjustment := 0.0
	switch rec.String("jobStability", "") {
	case "stable":
		adjustment = 10
	case "unstable":
		adjustment = -10
	}

	return domain.ScoreResult{
		Score:  clamp(s + adjustment),
		Status: status,
		Details: map[string]float64{
			"yearsToRetirement":      float64(years),
			"jobStabilityAdjustment": adjustment,
		},
	}
}

// CurrentSavingsScore rates accumulated savings as a multiple of annual
// income, the usual age-adjusted adequacy check.
func (hs *HealthScorer) CurrentSavingsScore(rec domain.InputRecord) domain.ScoreResult {
	annualIncome := household(rec, resolve.MonthlySalary).Mul(decimal.NewFromInt(12))
	if annualIncome.LessThanOrEqual(decimal.Zero) {
		return neutral(map[string]float64{"annualIncome": 0})
	}

	total := totalHouseholdSavings(rec)
	multiple := total.Div(annualIncome).InexactFloat64()
	s, status := tierScore(multiple, hs.Rules.Benchmarks.SavingsToIncome)
	return domain.ScoreResult{
		Score:  clamp(s),
		Status: status,
		Details: map[string]float64{
			"savingsToIncomeMultiple": multiple,
			"totalSavings":            total.InexactFloat64(),
		},
	}
}

// GoalProgressScore rates savings against the stated retirement goal.
func (hs *HealthScorer) GoalProgressScore(rec domain.InputRecord) domain.ScoreResult {
	goal := household(rec, resolve.RetirementGoal)
	if goal.LessThanOrEqual(decimal.Zero) {
		return neutral(map[string]float64{"retirementGoal": 0})
	}

	progressPct := totalHouseholdSavings(rec).Div(goal).Mul(decimal.NewFromInt(100)).InexactFloat64()
	s, status := tierScore(progressPct, hs.Rules.Benchmarks.GoalProgress)
	return domain.ScoreResult{
		Score:  clamp(s),
		Status: status,
		Details: map[string]float64{
			"goalProgressPercent": progressPct,
			"retirementGoal":      goal.InexactFloat64(),
		},
	}
}

// DiversificationScore counts the asset classes actually funded, with an
// international-diversification bonus capped at five points.
func (hs *HealthScorer) DiversificationScore(rec domain.InputRecord) domain.ScoreResult {
	classes := 0
	for _, chain := range []resolve.Chain{
		resolve.PensionSavings,
		resolve.TrainingFund,
		resolve.Portfolio,
		resolve.Crypto,
		resolve.RealEstate,
	} {
		if household(rec, chain).GreaterThan(decimal.Zero) {
			classes++
		}
	}

	s, status := tierScore(float64(classes), hs.Rules.Benchmarks.AssetClasses)

	bonus := 0.0
	if rec.Bool("internationalDiversification") {
		bonus = 5
	}

	return domain.ScoreResult{
		Score:  clamp(s + bonus),
		Status: status,
		Details: map[string]float64{
			"assetClasses":       float64(classes),
			"internationalBonus": bonus,
		},
	}
}

// TaxEfficiencyScore rates the tax-advantaged share of total savings.
// Pension and training fund count as tax-advantaged vehicles.
func (hs *HealthScorer) TaxEfficiencyScore(rec domain.InputRecord) domain.ScoreResult {
	total := totalHouseholdSavings(rec)
	if total.LessThanOrEqual(decimal.Zero) {
		return neutral(map[string]float64{"totalSavings": 0})
	}

	advantaged := household(rec, resolve.PensionSavings).Add(household(rec, resolve.TrainingFund))
	sharePct := advantaged.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
	s, status := tierScore(sharePct, hs.Rules.Benchmarks.TaxAdvantaged)
	return domain.ScoreResult{
		Score:  clamp(s),
		Status: status,
		Details: map[string]float64{
			"taxAdvantagedPercent": sharePct,
			"taxAdvantagedAmount":  advantaged.InexactFloat64(),
		},
	}
}

// EmergencyFundScore rates how many months of expenses the emergency
// fund covers.
func (hs *HealthScorer) EmergencyFundScore(rec domain.InputRecord) domain.ScoreResult {
	expenses := household(rec, resolve.MonthlyExpenses)
	if expenses.LessThanOrEqual(decimal.Zero) {
		return neutral(map[string]float64{"monthlyExpenses": 0})
	}

	fund := household(rec, resolve.EmergencyFund)
	months := fund.Div(expenses).InexactFloat64()
	s, status := tierScore(months, hs.Rules.Benchmarks.EmergencyMonths)
	return domain.ScoreResult{
		Score:  clamp(s),
		Status: status,
		Details: map[string]float64{
			"monthsCovered": months,
			"emergencyFund": fund.InexactFloat64(),
		},
	}
}

// DebtManagementScore rates the debt-to-annual-income ratio. A household
// with no debt at all scores a full 100 regardless of income; the
// high-interest-debt penalty is capped at thirty points.
func (hs *HealthScorer) DebtManagementScore(rec domain.InputRecord) domain.ScoreResult {
	debt, found := resolve.Resolve(rec, resolve.TotalDebt, resolve.Options{CombinePartners: true, AllowZero: true})
	if !found || debt.LessThanOrEqual(decimal.Zero) {
		return domain.ScoreResult{
			Score:  100,
			Status: domain.StatusExcellent,
			Details: map[string]float64{
				"totalDebt":           0,
				"hasHighInterestDebt": 0,
			},
		}
	}

	annualIncome := household(rec, resolve.MonthlySalary).Mul(decimal.NewFromInt(12))
	if annualIncome.LessThanOrEqual(decimal.Zero) {
		// Debt with no income to service it.
		return domain.ScoreResult{
			Score:  0,
			Status: domain.StatusCritical,
			Details: map[string]float64{
				"totalDebt":    debt.InexactFloat64(),
				"annualIncome": 0,
			},
		}
	}

	ratio := debt.Div(annualIncome).InexactFloat64()
	s, status := tierScore(ratio, hs.Rules.Benchmarks.DebtToIncome)

	highInterest := household(rec, resolve.HighInterestDebt)
	penalty := 0.0
	hasHighInterest := 0.0
	if highInterest.GreaterThan(decimal.Zero) {
		hasHighInterest = 1
		penalty = highInterest.Div(debt).InexactFloat64() * 30
		if penalty > 30 {
			penalty = 30
		}
	}

	return domain.ScoreResult{
		Score:  clamp(s - penalty),
		Status: status,
		Details: map[string]float64{
			"debtToIncomeRatio":   ratio,
			"totalDebt":           debt.InexactFloat64(),
			"highInterestPenalty": penalty,
			"hasHighInterestDebt": hasHighInterest,
		},
	}
}
