package domain

import "github.com/shopspring/decimal"

// CountryRules is the per-jurisdiction metadata a work period references.
// A period naming a country with no rules entry is skipped with a warning.
type CountryRules struct {
	Name                 string          `yaml:"name" json:"name"`
	Flag                 string          `yaml:"flag,omitempty" json:"flag,omitempty"`
	PensionRate          decimal.Decimal `yaml:"pension_rate" json:"pensionRate"`                     // combined employee+employer percent of salary
	TrainingFundRate     decimal.Decimal `yaml:"training_fund_rate" json:"trainingFundRate"`          // percent of salary, zero where the vehicle does not exist
	CapitalGainsTaxRate  decimal.Decimal `yaml:"capital_gains_tax_rate" json:"capitalGainsTaxRate"`   // percent applied to taxable portfolio balances
	StatutoryRetirement  int             `yaml:"statutory_retirement_age" json:"statutoryRetirementAge"`
}

// BenchmarkTiers holds the five ordered thresholds a raw ratio is scored
// against. For most factors a larger ratio is better; DebtManagement
// inverts that via the HigherIsWorse flag on its benchmark.
type BenchmarkTiers struct {
	Critical      decimal.Decimal `yaml:"critical" json:"critical"`
	Poor          decimal.Decimal `yaml:"poor" json:"poor"`
	Fair          decimal.Decimal `yaml:"fair" json:"fair"`
	Good          decimal.Decimal `yaml:"good" json:"good"`
	Excellent     decimal.Decimal `yaml:"excellent" json:"excellent"`
	HigherIsWorse bool            `yaml:"higher_is_worse,omitempty" json:"higherIsWorse,omitempty"`
}

// ScoreWeights is the fixed blend applied to the health sub-scores.
// Weights are fractions that should sum to 1; the scorer normalizes by
// the actual sum so a partial table still yields a 0-100 aggregate.
type ScoreWeights struct {
	SavingsRate     decimal.Decimal `yaml:"savings_rate" json:"savingsRate"`
	TimeHorizon     decimal.Decimal `yaml:"time_horizon" json:"timeHorizon"`
	CurrentSavings  decimal.Decimal `yaml:"current_savings" json:"currentSavings"`
	GoalProgress    decimal.Decimal `yaml:"goal_progress" json:"goalProgress"`
	Diversification decimal.Decimal `yaml:"diversification" json:"diversification"`
	TaxEfficiency   decimal.Decimal `yaml:"tax_efficiency" json:"taxEfficiency"`
	EmergencyFund   decimal.Decimal `yaml:"emergency_fund" json:"emergencyFund"`
	DebtManagement  decimal.Decimal `yaml:"debt_management" json:"debtManagement"`
}

// Benchmarks collects the tier tables for every health factor.
type Benchmarks struct {
	SavingsRatePercent BenchmarkTiers `yaml:"savings_rate_percent" json:"savingsRatePercent"`
	YearsToRetirement  BenchmarkTiers `yaml:"years_to_retirement" json:"yearsToRetirement"`
	SavingsToIncome    BenchmarkTiers `yaml:"savings_to_income" json:"savingsToIncome"`
	GoalProgress       BenchmarkTiers `yaml:"goal_progress" json:"goalProgress"`
	AssetClasses       BenchmarkTiers `yaml:"asset_classes" json:"assetClasses"`
	TaxAdvantaged      BenchmarkTiers `yaml:"tax_advantaged" json:"taxAdvantaged"`
	EmergencyMonths    BenchmarkTiers `yaml:"emergency_months" json:"emergencyMonths"`
	DebtToIncome       BenchmarkTiers `yaml:"debt_to_income" json:"debtToIncome"`
}

// RiskAdjustments maps a risk tolerance to the multiplier applied to a
// base return. Moderate is the neutral 1.0 by construction.
type RiskAdjustments struct {
	Conservative decimal.Decimal `yaml:"conservative" json:"conservative"`
	Moderate     decimal.Decimal `yaml:"moderate" json:"moderate"`
	Aggressive   decimal.Decimal `yaml:"aggressive" json:"aggressive"`
}

// Multiplier returns the adjustment factor for a tolerance, defaulting
// to the moderate factor for anything unrecognized.
func (ra RiskAdjustments) Multiplier(rt RiskTolerance) decimal.Decimal {
	switch rt {
	case RiskConservative:
		return ra.Conservative
	case RiskAggressive:
		return ra.Aggressive
	default:
		return ra.Moderate
	}
}

// EngineRules is the full injected configuration: country metadata,
// benchmark thresholds, risk multipliers and default returns. The engine
// holds it read-only for its lifetime; nothing here is package state.
type EngineRules struct {
	Countries         map[string]CountryRules `yaml:"countries" json:"countries"`
	Benchmarks        Benchmarks              `yaml:"benchmarks" json:"benchmarks"`
	Weights           ScoreWeights            `yaml:"weights" json:"weights"`
	RiskAdjustments   RiskAdjustments         `yaml:"risk_adjustments" json:"riskAdjustments"`
	HistoricalReturns HistoricalReturns       `yaml:"historical_returns" json:"historicalReturns"`

	// Engine-wide defaults used when the input record is silent.
	DefaultPensionReturn   decimal.Decimal `yaml:"default_pension_return" json:"defaultPensionReturn"`
	DefaultPortfolioReturn decimal.Decimal `yaml:"default_portfolio_return" json:"defaultPortfolioReturn"`
	DefaultCryptoReturn    decimal.Decimal `yaml:"default_crypto_return" json:"defaultCryptoReturn"`
	DefaultRealEstateReturn decimal.Decimal `yaml:"default_real_estate_return" json:"defaultRealEstateReturn"`
	DefaultRentalYield     decimal.Decimal `yaml:"default_rental_yield" json:"defaultRentalYield"`
	WithdrawalRate         decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawalRate"` // annual percent for the income model
}

// Country looks up rules by code, reporting whether the code is known.
func (er *EngineRules) Country(code string) (CountryRules, bool) {
	rules, ok := er.Countries[code]
	return rules, ok
}
