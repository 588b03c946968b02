package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV.
type CSVFormatter struct{}

// Format generates CSV output for comparison results.
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Total Savings",
		"Monthly Income",
		"Pension Share %",
		"Savings Diff from Base",
		"Savings % Change",
		"Income Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, rowType string) []string {
	if result == nil {
		return nil
	}
	return []string{
		result.ScenarioName,
		rowType,
		result.TotalSavings.StringFixed(2),
		result.MonthlyIncome.StringFixed(2),
		result.PensionShare.StringFixed(2),
		result.SavingsDiffFromBase.StringFixed(2),
		result.SavingsPctFromBase.StringFixed(2),
		result.IncomeDiffFromBase.StringFixed(2),
	}
}
