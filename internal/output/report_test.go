package output

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise/retirement-planner/internal/domain"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"12345", "12,345"},
		{"1234567", "1,234,567"},
		{"1234567.89", "1,234,568"},
		{"-1234567", "-1,234,567"},
		{"-999", "-999"},
	}
	for _, tt := range tests {
		got := FormatCurrency(decimal.RequireFromString(tt.in))
		assert.Equal(t, tt.want, got, "input %s", tt.in)
	}
}

func TestGetFormatterByName(t *testing.T) {
	assert.Equal(t, "console", GetFormatterByName("console").Name())
	assert.Equal(t, "console", GetFormatterByName("").Name(), "Empty name defaults to console")
	assert.Equal(t, "json", GetFormatterByName("json").Name())
	assert.Equal(t, "csv", GetFormatterByName("csv").Name())
	assert.Nil(t, GetFormatterByName("html"))
}

func sampleReport() *Report {
	return &Report{
		GeneratedAt: time.Now(),
		Projection: &domain.ProjectionResult{
			PersonProjection: domain.PersonProjection{
				TotalPensionSavings:    decimal.NewFromInt(800000),
				TrainingFundValue:      decimal.NewFromInt(200000),
				PersonalPortfolioValue: decimal.NewFromInt(150000),
				CryptoValue:            decimal.NewFromInt(20000),
				RealEstateValue:        decimal.NewFromInt(500000),
				MonthlyRentalIncome:    decimal.NewFromInt(1600),
				PeriodResults: []domain.PeriodResult{{
					Country:          "israel",
					CountryName:      "Israel",
					StartAge:         30,
					EndAge:           65,
					Years:            decimal.NewFromInt(30),
					TotalContributed: decimal.NewFromInt(360000),
					Growth:           decimal.NewFromInt(340000),
					EndingBalance:    decimal.NewFromInt(800000),
				}},
			},
			MonthlyIncome:        decimal.NewFromInt(5500),
			CombinedTotalSavings: decimal.NewFromInt(1670000),
			CurrentAge:           35,
			RetirementAge:        65,
			YearsToGo:            30,
		},
		Health: &domain.HealthReport{
			Score:  72,
			Status: domain.StatusFair,
			Factors: map[string]domain.ScoreResult{
				"savingsRate":   {Score: 75, Status: domain.StatusGood},
				"emergencyFund": {Score: 40, Status: domain.StatusPoor},
			},
			Recommendations: []domain.Recommendation{
				{Priority: 1, Factor: "emergencyFund", Action: "Build the emergency fund"},
			},
		},
	}
}

func TestConsoleFormatter(t *testing.T) {
	data, err := (&ConsoleFormatter{}).Format(sampleReport())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "RETIREMENT PLAN REPORT")
	assert.Contains(t, out, "1,670,000")
	assert.Contains(t, out, "Israel")
	assert.Contains(t, out, "FINANCIAL HEALTH")
	assert.Contains(t, out, "Build the emergency fund")
}

func TestJSONFormatter(t *testing.T) {
	data, err := (&JSONFormatter{}).Format(sampleReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "projection")
	assert.Contains(t, decoded, "health")
}

func TestCSVFormatter(t *testing.T) {
	data, err := (&CSVFormatter{}).Format(sampleReport())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "metric,value")
	assert.Contains(t, out, "total_pension_savings,800000.00")
	assert.Contains(t, out, "health_score,72")
	assert.Contains(t, out, "factor_emergencyFund,40")
}

func TestFormatterHandlesEmptyReport(t *testing.T) {
	empty := &Report{GeneratedAt: time.Now()}
	for _, name := range []string{"console", "json", "csv"} {
		data, err := GetFormatterByName(name).Format(empty)
		assert.NoError(t, err, "formatter %s", name)
		assert.NotNil(t, data)
	}
}
