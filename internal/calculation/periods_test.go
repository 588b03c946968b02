package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise/retirement-planner/internal/domain"
)

func TestAccumulatePension(t *testing.T) {
	engine := NewCalculationEngine(testRules())
	fallback := decimal.NewFromInt(7)

	t.Run("single_period", func(t *testing.T) {
		periods := []domain.WorkPeriod{{
			Country:             "israel",
			StartAge:            30,
			EndAge:              40,
			MonthlyContribution: decimal.NewFromInt(1000),
			PensionReturn:       decimal.NewFromInt(6),
		}}
		balance, results := engine.accumulatePension(decimal.NewFromInt(100000), periods, 30, 67, domain.RiskModerate, fallback)

		require.Len(t, results, 1)
		assert.Equal(t, "Israel", results[0].CountryName)
		assert.True(t, results[0].Years.Equal(decimal.NewFromInt(10)))
		assert.True(t, results[0].TotalContributed.Equal(decimal.NewFromInt(120000)))
		assert.InDelta(t, 342964.12, balance.InexactFloat64(), 1.0)
		assert.True(t, results[0].EndingBalance.Equal(balance))
	})

	t.Run("order_independent", func(t *testing.T) {
		early := domain.WorkPeriod{Country: "israel", StartAge: 30, EndAge: 35, MonthlyContribution: decimal.NewFromInt(2000), PensionReturn: decimal.NewFromInt(7)}
		late := domain.WorkPeriod{Country: "uk", StartAge: 35, EndAge: 45, MonthlyContribution: decimal.NewFromInt(1500), PensionReturn: decimal.NewFromInt(5)}

		forward, _ := engine.accumulatePension(decimal.NewFromInt(50000), []domain.WorkPeriod{early, late}, 30, 67, domain.RiskModerate, fallback)
		reversed, _ := engine.accumulatePension(decimal.NewFromInt(50000), []domain.WorkPeriod{late, early}, 30, 67, domain.RiskModerate, fallback)

		assert.True(t, forward.Equal(reversed),
			"Input order must not change the terminal balance: %s vs %s", forward.StringFixed(2), reversed.StringFixed(2))
	})

	t.Run("clips_to_projection_window", func(t *testing.T) {
		periods := []domain.WorkPeriod{{
			Country:             "israel",
			StartAge:            25,
			EndAge:              70,
			MonthlyContribution: decimal.NewFromInt(1000),
			PensionReturn:       decimal.NewFromInt(6),
		}}
		_, results := engine.accumulatePension(decimal.Zero, periods, 35, 67, domain.RiskModerate, fallback)

		require.Len(t, results, 1)
		assert.True(t, results[0].Years.Equal(decimal.NewFromInt(32)), "Only the 35-67 window should count, got %s years", results[0].Years)
	})

	t.Run("period_outside_window_skipped", func(t *testing.T) {
		periods := []domain.WorkPeriod{{
			Country:             "israel",
			StartAge:            20,
			EndAge:              30,
			MonthlyContribution: decimal.NewFromInt(1000),
		}}
		balance, results := engine.accumulatePension(decimal.NewFromInt(5000), periods, 35, 67, domain.RiskModerate, fallback)

		assert.Empty(t, results)
		assert.True(t, balance.Equal(decimal.NewFromInt(5000)), "A fully-past period should not touch the balance")
	})

	t.Run("unknown_country_skipped_not_fatal", func(t *testing.T) {
		periods := []domain.WorkPeriod{
			{Country: "atlantis", StartAge: 30, EndAge: 40, MonthlyContribution: decimal.NewFromInt(1000), PensionReturn: decimal.NewFromInt(6)},
			{Country: "israel", StartAge: 40, EndAge: 50, MonthlyContribution: decimal.NewFromInt(1000), PensionReturn: decimal.NewFromInt(6)},
		}
		_, results := engine.accumulatePension(decimal.Zero, periods, 30, 67, domain.RiskModerate, fallback)

		require.Len(t, results, 1)
		assert.Equal(t, "israel", results[0].Country)
	})

	t.Run("deposit_fee_reduces_contribution", func(t *testing.T) {
		periods := []domain.WorkPeriod{{
			Country:             "israel",
			StartAge:            30,
			EndAge:              40,
			MonthlyContribution: decimal.NewFromInt(1000),
			PensionReturn:       decimal.NewFromInt(6),
			PensionDepositFee:   decimal.NewFromInt(2),
		}}
		_, results := engine.accumulatePension(decimal.Zero, periods, 30, 67, domain.RiskModerate, fallback)

		require.Len(t, results, 1)
		assert.True(t, results[0].MonthlyDeposit.Equal(decimal.NewFromInt(980)),
			"2%% deposit fee on 1,000 should leave 980, got %s", results[0].MonthlyDeposit)
	})

	t.Run("annual_fee_reduces_net_return", func(t *testing.T) {
		periods := []domain.WorkPeriod{{
			Country:             "israel",
			StartAge:            30,
			EndAge:              40,
			MonthlyContribution: decimal.NewFromInt(1000),
			PensionReturn:       decimal.NewFromInt(6),
			PensionAnnualFee:    decimal.NewFromFloat(0.5),
		}}
		_, results := engine.accumulatePension(decimal.Zero, periods, 30, 67, domain.RiskModerate, fallback)

		require.Len(t, results, 1)
		assert.True(t, results[0].NetAnnualReturn.Equal(decimal.NewFromFloat(5.5)),
			"Annual fee should come off the return, got %s", results[0].NetAnnualReturn)
	})

	t.Run("zero_return_uses_fallback", func(t *testing.T) {
		periods := []domain.WorkPeriod{{
			Country:             "israel",
			StartAge:            30,
			EndAge:              40,
			MonthlyContribution: decimal.NewFromInt(1000),
		}}
		_, results := engine.accumulatePension(decimal.Zero, periods, 30, 67, domain.RiskModerate, fallback)

		require.Len(t, results, 1)
		assert.True(t, results[0].NetAnnualReturn.Equal(fallback))
	})

	t.Run("higher_contribution_never_lowers_balance", func(t *testing.T) {
		base := []domain.WorkPeriod{{Country: "israel", StartAge: 30, EndAge: 40, MonthlyContribution: decimal.NewFromInt(1000), PensionReturn: decimal.NewFromInt(6)}}
		more := []domain.WorkPeriod{{Country: "israel", StartAge: 30, EndAge: 40, MonthlyContribution: decimal.NewFromInt(1500), PensionReturn: decimal.NewFromInt(6)}}

		low, _ := engine.accumulatePension(decimal.Zero, base, 30, 67, domain.RiskModerate, fallback)
		high, _ := engine.accumulatePension(decimal.Zero, more, 30, 67, domain.RiskModerate, fallback)

		assert.True(t, high.GreaterThan(low))
	})
}
