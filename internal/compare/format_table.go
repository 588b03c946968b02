package compare

import (
	"fmt"
	"strings"
)

// TableFormatter formats comparison results as a console table.
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios.
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("RETIREMENT PLAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	nameWidth := 22
	numWidth := 16

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Total Savings",
		numWidth, "Monthly Income",
		numWidth, "Pension Share"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth))
		}
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s (%s):\n", alt.ScenarioName, alt.Description))
			sb.WriteString(fmt.Sprintf("  Savings delta: %s (%s%%)\n",
				alt.SavingsDiffFromBase.StringFixed(0), alt.SavingsPctFromBase.StringFixed(1)))
			sb.WriteString(fmt.Sprintf("  Income delta:  %s/month\n", alt.IncomeDiffFromBase.StringFixed(0)))
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nTAKEAWAYS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int) string {
	if result == nil {
		return ""
	}
	return fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, result.ScenarioName,
		numWidth, result.TotalSavings.StringFixed(0),
		numWidth, result.MonthlyIncome.StringFixed(0),
		numWidth, result.PensionShare.StringFixed(1)+"%")
}
