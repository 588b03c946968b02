package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise/retirement-planner/internal/domain"
)

func TestDefaultRules(t *testing.T) {
	rules, err := DefaultRules()
	require.NoError(t, err, "Embedded rules must always parse")

	assert.Contains(t, rules.Countries, "israel")
	assert.Contains(t, rules.Countries, "usa")
	assert.Contains(t, rules.Countries, "uk")
	assert.Contains(t, rules.Countries, "germany")
	assert.Contains(t, rules.Countries, "france")

	israel := rules.Countries["israel"]
	assert.Equal(t, "Israel", israel.Name)
	assert.True(t, israel.TrainingFundRate.GreaterThan(decimal.Zero), "Israel has a training fund vehicle")
	assert.Equal(t, 67, israel.StatutoryRetirement)

	assert.True(t, rules.RiskAdjustments.Moderate.Equal(decimal.NewFromInt(1)))
	assert.True(t, rules.Benchmarks.DebtToIncome.HigherIsWorse)
	assert.True(t, rules.WithdrawalRate.Equal(decimal.NewFromInt(4)))

	require.NoError(t, NewInputParser().ValidateRules(rules), "Embedded rules must validate")
}

func TestLoadPlanFromFile(t *testing.T) {
	parser := NewInputParser()

	t.Run("valid_plan", func(t *testing.T) {
		path := writeTemp(t, `
record:
  currentAge: 35
  retirementAge: 67
  currentSavings: 100000
work_periods:
  - country: israel
    start_age: 30
    end_age: 67
    monthly_contribution: 2000
`)
		plan, err := parser.LoadPlanFromFile(path)
		require.NoError(t, err)
		require.Len(t, plan.WorkPeriods, 1)
		assert.Equal(t, "israel", plan.WorkPeriods[0].Country)
		assert.True(t, plan.WorkPeriods[0].MonthlyContribution.Equal(decimal.NewFromInt(2000)))
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := parser.LoadPlanFromFile("does-not-exist.yaml")
		assert.Error(t, err)
	})

	t.Run("malformed_yaml", func(t *testing.T) {
		path := writeTemp(t, "record: [not a map")
		_, err := parser.LoadPlanFromFile(path)
		assert.Error(t, err)
	})
}

func TestValidatePlan(t *testing.T) {
	parser := NewInputParser()

	valid := func() *domain.PlanInput {
		return &domain.PlanInput{
			Record: domain.InputRecord{"currentAge": 35},
			WorkPeriods: []domain.WorkPeriod{{
				Country:             "israel",
				StartAge:            30,
				EndAge:              67,
				MonthlyContribution: decimal.NewFromInt(2000),
			}},
		}
	}

	t.Run("accepts_valid", func(t *testing.T) {
		assert.NoError(t, parser.ValidatePlan(valid()))
	})

	t.Run("requires_record", func(t *testing.T) {
		plan := valid()
		plan.Record = nil
		assert.ErrorContains(t, parser.ValidatePlan(plan), "record is required")
	})

	t.Run("rejects_inverted_period", func(t *testing.T) {
		plan := valid()
		plan.WorkPeriods[0].StartAge = 67
		plan.WorkPeriods[0].EndAge = 30
		assert.ErrorContains(t, parser.ValidatePlan(plan), "start age")
	})

	t.Run("rejects_missing_country", func(t *testing.T) {
		plan := valid()
		plan.WorkPeriods[0].Country = ""
		assert.ErrorContains(t, parser.ValidatePlan(plan), "country is required")
	})

	t.Run("rejects_negative_contribution", func(t *testing.T) {
		plan := valid()
		plan.WorkPeriods[0].MonthlyContribution = decimal.NewFromInt(-100)
		assert.ErrorContains(t, parser.ValidatePlan(plan), "cannot be negative")
	})

	t.Run("rejects_negative_allocation", func(t *testing.T) {
		plan := valid()
		plan.PensionAllocation = []domain.AllocationEntry{{Name: "stocks", Allocation: decimal.NewFromInt(-10)}}
		assert.ErrorContains(t, parser.ValidatePlan(plan), "negative percentage")
	})

	t.Run("flags_partner_periods", func(t *testing.T) {
		plan := valid()
		plan.PartnerWorkPeriods = []domain.WorkPeriod{{Country: "", StartAge: 30, EndAge: 60}}
		assert.ErrorContains(t, parser.ValidatePlan(plan), "partner")
	})
}

func TestValidateRules(t *testing.T) {
	parser := NewInputParser()

	base := func(t *testing.T) *domain.EngineRules {
		t.Helper()
		rules, err := DefaultRules()
		require.NoError(t, err)
		return rules
	}

	t.Run("rejects_empty_countries", func(t *testing.T) {
		rules := base(t)
		rules.Countries = nil
		assert.ErrorContains(t, parser.ValidateRules(rules), "at least one country")
	})

	t.Run("rejects_unnamed_country", func(t *testing.T) {
		rules := base(t)
		rules.Countries["nowhere"] = domain.CountryRules{}
		assert.ErrorContains(t, parser.ValidateRules(rules), "name is required")
	})

	t.Run("rejects_unordered_tiers", func(t *testing.T) {
		rules := base(t)
		rules.Benchmarks.EmergencyMonths.Good = decimal.NewFromInt(2) // below Fair
		assert.ErrorContains(t, parser.ValidateRules(rules), "strictly ordered")
	})

	t.Run("rejects_unordered_inverted_tiers", func(t *testing.T) {
		rules := base(t)
		rules.Benchmarks.DebtToIncome.Good = decimal.NewFromInt(4) // above Critical
		assert.ErrorContains(t, parser.ValidateRules(rules), "strictly ordered")
	})

	t.Run("rejects_zero_weights", func(t *testing.T) {
		rules := base(t)
		rules.Weights = domain.ScoreWeights{}
		assert.ErrorContains(t, parser.ValidateRules(rules), "positive")
	})

	t.Run("requires_moderate_multiplier", func(t *testing.T) {
		rules := base(t)
		rules.RiskAdjustments.Moderate = decimal.Zero
		assert.ErrorContains(t, parser.ValidateRules(rules), "moderate")
	})
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
