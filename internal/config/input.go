package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/planwise/retirement-planner/internal/domain"
)

//go:embed default-rules.yaml
var defaultRulesYAML []byte

// InputParser handles parsing of plan and rules files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// DefaultRules returns the built-in engine rules. The embedded file is
// part of the binary, so failure to parse it is a programming error.
func DefaultRules() (*domain.EngineRules, error) {
	var rules domain.EngineRules
	if err := yaml.Unmarshal(defaultRulesYAML, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse embedded default rules: %w", err)
	}
	return &rules, nil
}

// LoadRulesFromFile loads engine rules from a YAML file and validates
// them.
func (ip *InputParser) LoadRulesFromFile(filename string) (*domain.EngineRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rules domain.EngineRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return &rules, nil
}

// LoadPlanFromFile loads a household plan (record + work periods +
// allocations) from a YAML or JSON file.
func (ip *InputParser) LoadPlanFromFile(filename string) (*domain.PlanInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var plan domain.PlanInput
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return &plan, nil
}

// ValidatePlan rejects structurally broken plans. Numeric garbage inside
// the record is the engine's business (it defaults, never fails); this
// only catches shapes the engine cannot interpret at all.
func (ip *InputParser) ValidatePlan(plan *domain.PlanInput) error {
	if plan.Record == nil {
		return fmt.Errorf("record is required")
	}
	for i, p := range plan.WorkPeriods {
		if err := validatePeriod(i, p); err != nil {
			return err
		}
	}
	for i, p := range plan.PartnerWorkPeriods {
		if err := validatePeriod(i, p); err != nil {
			return fmt.Errorf("partner %w", err)
		}
	}
	for _, a := range plan.PensionAllocation {
		if a.Allocation.LessThan(decimal.Zero) {
			return fmt.Errorf("pension allocation %q has a negative percentage", a.Name)
		}
	}
	for _, a := range plan.TrainingFundAllocation {
		if a.Allocation.LessThan(decimal.Zero) {
			return fmt.Errorf("training fund allocation %q has a negative percentage", a.Name)
		}
	}
	return nil
}

func validatePeriod(index int, p domain.WorkPeriod) error {
	if p.StartAge >= p.EndAge {
		return fmt.Errorf("work period %d: start age %d must be before end age %d", index, p.StartAge, p.EndAge)
	}
	if p.Country == "" {
		return fmt.Errorf("work period %d: country is required", index)
	}
	if p.MonthlyContribution.LessThan(decimal.Zero) {
		return fmt.Errorf("work period %d: monthly contribution cannot be negative", index)
	}
	return nil
}

// ValidateRules checks the injected configuration for the mistakes that
// would silently distort every score: unordered tiers, zero weights,
// empty country table.
func (ip *InputParser) ValidateRules(rules *domain.EngineRules) error {
	if len(rules.Countries) == 0 {
		return fmt.Errorf("at least one country is required")
	}
	for code, c := range rules.Countries {
		if c.Name == "" {
			return fmt.Errorf("country %q: name is required", code)
		}
	}

	tierTables := map[string]domain.BenchmarkTiers{
		"savings_rate_percent": rules.Benchmarks.SavingsRatePercent,
		"years_to_retirement":  rules.Benchmarks.YearsToRetirement,
		"savings_to_income":    rules.Benchmarks.SavingsToIncome,
		"goal_progress":        rules.Benchmarks.GoalProgress,
		"asset_classes":        rules.Benchmarks.AssetClasses,
		"tax_advantaged":       rules.Benchmarks.TaxAdvantaged,
		"emergency_months":     rules.Benchmarks.EmergencyMonths,
		"debt_to_income":       rules.Benchmarks.DebtToIncome,
	}
	for name, tiers := range tierTables {
		if err := validateTiers(name, tiers); err != nil {
			return err
		}
	}

	weightSum := rules.Weights.SavingsRate.
		Add(rules.Weights.TimeHorizon).
		Add(rules.Weights.CurrentSavings).
		Add(rules.Weights.GoalProgress).
		Add(rules.Weights.Diversification).
		Add(rules.Weights.TaxEfficiency).
		Add(rules.Weights.EmergencyFund).
		Add(rules.Weights.DebtManagement)
	if weightSum.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("score weights must sum to a positive value")
	}

	if rules.RiskAdjustments.Moderate.IsZero() {
		return fmt.Errorf("risk adjustment for moderate tolerance is required")
	}

	return nil
}

// validateTiers enforces strict ordering from critical through
// excellent in the direction the table declares.
func validateTiers(name string, t domain.BenchmarkTiers) error {
	ordered := []decimal.Decimal{t.Critical, t.Poor, t.Fair, t.Good, t.Excellent}
	for i := 1; i < len(ordered); i++ {
		ascending := ordered[i].GreaterThan(ordered[i-1])
		if t.HigherIsWorse {
			ascending = ordered[i].LessThan(ordered[i-1])
		}
		if !ascending {
			return fmt.Errorf("benchmark %s: tier thresholds must be strictly ordered", name)
		}
	}
	return nil
}
