// Package resolve turns the loosely-typed InputRecord into canonical
// numeric values. Years of UI churn left most concepts with several
// field names; each concept gets one ordered alias chain here instead of
// ad-hoc probing scattered through the calculators.
package resolve

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/planwise/retirement-planner/internal/domain"
)

// Options controls how a chain resolves.
type Options struct {
	// Default is returned when no alias yields a usable value.
	Default decimal.Decimal
	// AllowZero lets an explicit zero win. Without it a zero value is
	// treated the same as an absent field and probing continues, which
	// matters for concepts where zero means "not filled in yet".
	AllowZero bool
	// CombinePartners sums partner1/partner2 prefixed variants with the
	// single-person field, the convention used throughout the scorer.
	CombinePartners bool
}

// Chain is one concept's ordered alias list. First usable match wins.
type Chain struct {
	Concept string
	Aliases []string
}

// Canonical alias chains. Order is priority order and is part of the
// engine's observable behavior; append new aliases at the end.
var (
	CurrentAge       = Chain{"current age", []string{"currentAge", "age"}}
	RetirementAge    = Chain{"retirement age", []string{"retirementAge", "targetRetirementAge"}}
	MonthlySalary    = Chain{"monthly salary", []string{"currentMonthlySalary", "monthlySalary", "salary", "currentSalary"}}
	PensionSavings   = Chain{"pension savings", []string{"currentSavings", "pensionSavings", "currentPensionSavings"}}
	TrainingFund     = Chain{"training fund", []string{"currentTrainingFund", "trainingFundSavings", "trainingFund"}}
	Portfolio        = Chain{"personal portfolio", []string{"currentPersonalPortfolio", "personalPortfolio", "portfolioSavings"}}
	Crypto           = Chain{"crypto holdings", []string{"currentCrypto", "cryptoValue", "cryptoSavings"}}
	RealEstate       = Chain{"real estate", []string{"currentRealEstate", "realEstateValue"}}
	RealEstateYield  = Chain{"rental yield", []string{"rentalYield", "realEstateRentalYield"}}
	MonthlyExpenses  = Chain{"monthly expenses", []string{"currentMonthlyExpenses", "monthlyExpenses", "expenses"}}
	MonthlyContrib   = Chain{"monthly contribution", []string{"monthlyContribution", "monthlySavings", "monthlyDeposit"}}
	EmergencyFund    = Chain{"emergency fund", []string{"emergencyFund", "emergencyFundAmount", "currentEmergencyFund"}}
	TotalDebt        = Chain{"total debt", []string{"totalDebt", "currentDebt", "debtBalance"}}
	HighInterestDebt = Chain{"high interest debt", []string{"highInterestDebt", "expensiveDebt"}}
	RetirementGoal   = Chain{"retirement goal", []string{"retirementGoal", "targetRetirementSavings", "savingsGoal"}}
	PortfolioTaxRate = Chain{"portfolio tax rate", []string{"portfolioTaxRate", "capitalGainsTaxRate"}}
	PensionReturn    = Chain{"pension return", []string{"pensionReturn", "expectedPensionReturn", "expectedReturn"}}
	TrainingReturn   = Chain{"training fund return", []string{"trainingFundReturn", "expectedTrainingFundReturn"}}
	PortfolioReturn  = Chain{"portfolio return", []string{"personalPortfolioReturn", "portfolioReturn", "expectedPortfolioReturn"}}
	CryptoReturn     = Chain{"crypto return", []string{"cryptoReturn", "expectedCryptoReturn"}}
	RealEstateReturn = Chain{"real estate return", []string{"realEstateReturn", "expectedRealEstateReturn"}}
	MonthlyPortfolioDeposit = Chain{"monthly portfolio deposit", []string{"personalPortfolioMonthly", "monthlyPortfolioContribution"}}
	MonthlyCryptoDeposit    = Chain{"monthly crypto deposit", []string{"cryptoMonthly", "monthlyCryptoContribution"}}
)

// Value resolves one chain against the record per the options. It never
// fails: malformed or absent values fall through to opts.Default.
func Value(rec domain.InputRecord, chain Chain, opts Options) decimal.Decimal {
	v, ok := Resolve(rec, chain, opts)
	if !ok {
		return opts.Default
	}
	return v
}

// Resolve is Value plus a found flag, keeping "absent" distinguishable
// from "explicitly zero" for callers where that matters (zero debt vs
// unknown debt).
func Resolve(rec domain.InputRecord, chain Chain, opts Options) (decimal.Decimal, bool) {
	if rec == nil {
		return opts.Default, false
	}
	for _, name := range chain.Aliases {
		if opts.CombinePartners {
			if v, ok := combined(rec, name, opts.AllowZero); ok {
				return v, true
			}
			continue
		}
		if v, ok := lookup(rec, name, opts.AllowZero); ok {
			return v, true
		}
	}
	return opts.Default, false
}

// combined sums the single-person field and both partner-prefixed
// variants. It resolves as soon as any component is present.
func combined(rec domain.InputRecord, name string, allowZero bool) (decimal.Decimal, bool) {
	total := decimal.Zero
	found := false
	for _, variant := range []string{name, partnerField(1, name), partnerField(2, name)} {
		if v, ok := lookup(rec, variant, true); ok {
			total = total.Add(v)
			found = true
		}
	}
	if !found {
		return decimal.Zero, false
	}
	if total.IsZero() && !allowZero {
		return decimal.Zero, false
	}
	return total, true
}

func lookup(rec domain.InputRecord, name string, allowZero bool) (decimal.Decimal, bool) {
	raw, ok := rec[name]
	if !ok || raw == nil {
		return decimal.Zero, false
	}
	v, ok := coerce(raw)
	if !ok {
		return decimal.Zero, false
	}
	if v.IsZero() && !allowZero {
		return decimal.Zero, false
	}
	return v, true
}

// partnerField builds partner1Foo / partner2Foo from foo.
func partnerField(n int, name string) string {
	if name == "" {
		return name
	}
	return "partner" + strconv.Itoa(n) + strings.ToUpper(name[:1]) + name[1:]
}

// coerce converts the dynamic value types a JSON or YAML record can
// carry. NaN and infinities are rejected so they never propagate.
func coerce(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	case float32:
		return coerce(float64(v))
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case uint64:
		if v > math.MaxInt64 {
			return decimal.Zero, false
		}
		return decimal.NewFromInt(int64(v)), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// PartnerChain rewrites a chain so every alias targets the partner's
// copy of the field (currentAge -> partnerCurrentAge). Used by the
// projection when couple planning re-runs the pipeline for the second
// household member.
func PartnerChain(c Chain) Chain {
	aliases := make([]string, len(c.Aliases))
	for i, name := range c.Aliases {
		aliases[i] = "partner" + strings.ToUpper(name[:1]) + name[1:]
	}
	return Chain{Concept: "partner " + c.Concept, Aliases: aliases}
}

// Int resolves a chain to a whole number, truncating any fraction.
func Int(rec domain.InputRecord, chain Chain, opts Options) int {
	return int(Value(rec, chain, opts).IntPart())
}
