package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/planwise/retirement-planner/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(28)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	statusStyles = map[domain.ScoreStatus]lipgloss.Style{
		domain.StatusExcellent: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		domain.StatusGood:      lipgloss.NewStyle().Foreground(lipgloss.Color("76")),
		domain.StatusFair:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		domain.StatusPoor:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		domain.StatusCritical:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		domain.StatusUnknown:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)

// ConsoleFormatter renders a styled terminal report.
type ConsoleFormatter struct{}

func (cf *ConsoleFormatter) Name() string { return "console" }

func (cf *ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("RETIREMENT PLAN REPORT"))
	sb.WriteString("\n")

	if report.Projection != nil {
		cf.writeProjection(&sb, report.Projection)
	}
	if report.Health != nil {
		cf.writeHealth(&sb, report.Health)
	}

	return []byte(sb.String()), nil
}

func (cf *ConsoleFormatter) writeProjection(sb *strings.Builder, proj *domain.ProjectionResult) {
	sb.WriteString(sectionStyle.Render("PROJECTED BALANCES AT RETIREMENT"))
	sb.WriteString(fmt.Sprintf("  (age %d, %d years out)\n", proj.RetirementAge, proj.YearsToGo))

	writeMetric(sb, "Pension", FormatCurrency(proj.TotalPensionSavings))
	writeMetric(sb, "Training fund", FormatCurrency(proj.TrainingFundValue))
	writeMetric(sb, "Personal portfolio", FormatCurrency(proj.PersonalPortfolioValue))
	writeMetric(sb, "Crypto", FormatCurrency(proj.CryptoValue))
	writeMetric(sb, "Real estate", FormatCurrency(proj.RealEstateValue))
	writeMetric(sb, "Monthly rental income", FormatCurrency(proj.MonthlyRentalIncome))

	if proj.Partner != nil {
		sb.WriteString("\n")
		sb.WriteString(sectionStyle.Render("PARTNER"))
		sb.WriteString("\n")
		writeMetric(sb, "Pension", FormatCurrency(proj.Partner.TotalPensionSavings))
		writeMetric(sb, "Training fund", FormatCurrency(proj.Partner.TrainingFundValue))
		writeMetric(sb, "Personal portfolio", FormatCurrency(proj.Partner.PersonalPortfolioValue))
		writeMetric(sb, "Crypto", FormatCurrency(proj.Partner.CryptoValue))
		writeMetric(sb, "Real estate", FormatCurrency(proj.Partner.RealEstateValue))
	}

	sb.WriteString("\n")
	writeMetric(sb, "Household total", FormatCurrency(proj.CombinedTotalSavings))
	writeMetric(sb, "Monthly retirement income", FormatCurrency(proj.MonthlyIncome))

	if len(proj.PeriodResults) > 0 {
		sb.WriteString("\n")
		sb.WriteString(sectionStyle.Render("WORK PERIODS"))
		sb.WriteString("\n")
		for _, pr := range proj.PeriodResults {
			sb.WriteString(fmt.Sprintf("  %s %s, ages %d-%d (%s years applied): deposits %s, growth %s, ending %s\n",
				pr.CountryName, pr.Country,
				pr.StartAge, pr.EndAge, pr.Years.StringFixed(0),
				FormatCurrency(pr.TotalContributed),
				FormatCurrency(pr.Growth),
				FormatCurrency(pr.EndingBalance)))
		}
	}
}

func (cf *ConsoleFormatter) writeHealth(sb *strings.Builder, health *domain.HealthReport) {
	sb.WriteString("\n")
	sb.WriteString(sectionStyle.Render("FINANCIAL HEALTH"))
	sb.WriteString("\n")

	status := statusStyles[health.Status]
	sb.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Overall score"),
		status.Render(fmt.Sprintf("%.0f / 100 (%s)", health.Score, health.Status))))

	names := make([]string, 0, len(health.Factors))
	for name := range health.Factors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		factor := health.Factors[name]
		fs := statusStyles[factor.Status]
		sb.WriteString(fmt.Sprintf("%s %s\n",
			labelStyle.Render("  "+name),
			fs.Render(fmt.Sprintf("%.0f (%s)", factor.Score, factor.Status))))
	}

	if len(health.Recommendations) > 0 {
		sb.WriteString("\n")
		sb.WriteString(sectionStyle.Render("RECOMMENDATIONS"))
		sb.WriteString("\n")
		for _, rec := range health.Recommendations {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", rec.Priority, rec.Action))
		}
	}
}

func writeMetric(sb *strings.Builder, label, value string) {
	sb.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(label), valueStyle.Render(value)))
}
