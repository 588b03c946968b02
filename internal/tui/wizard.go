// Package tui is a step-based terminal wizard that collects a plan
// interactively, mirrors it into an InputRecord and shows the projection
// and health score on the final screen.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/planwise/retirement-planner/internal/calculation"
	"github.com/planwise/retirement-planner/internal/domain"
	"github.com/planwise/retirement-planner/internal/output"
	"github.com/planwise/retirement-planner/internal/score"
)

var (
	wizardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	promptStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	hintStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	doneStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

// step is one wizard question. Numeric steps validate as numbers;
// choice steps accept one of the listed options (first is the default).
type step struct {
	field   string
	prompt  string
	hint    string
	choices []string
	numeric bool
}

var wizardSteps = []step{
	{field: "country", prompt: "Country", choices: []string{"israel", "usa", "uk", "germany", "france"}},
	{field: "currentAge", prompt: "Current age", numeric: true},
	{field: "retirementAge", prompt: "Planned retirement age", numeric: true},
	{field: "currentMonthlySalary", prompt: "Monthly salary", numeric: true},
	{field: "currentMonthlyExpenses", prompt: "Monthly expenses", numeric: true},
	{field: "currentSavings", prompt: "Current pension savings", numeric: true},
	{field: "currentTrainingFund", prompt: "Training fund balance", hint: "0 if none", numeric: true},
	{field: "currentPersonalPortfolio", prompt: "Personal portfolio value", numeric: true},
	{field: "currentCrypto", prompt: "Crypto holdings", numeric: true},
	{field: "currentRealEstate", prompt: "Real estate value", numeric: true},
	{field: "monthlyContribution", prompt: "Monthly pension contribution", numeric: true},
	{field: "emergencyFund", prompt: "Emergency fund", numeric: true},
	{field: "totalDebt", prompt: "Total debt", numeric: true},
	{field: "retirementGoal", prompt: "Retirement savings goal", hint: "0 to skip", numeric: true},
	{field: "riskTolerance", prompt: "Risk tolerance", choices: []string{"moderate", "conservative", "aggressive"}},
}

// Model is the wizard's bubbletea model.
type Model struct {
	engine *calculation.CalculationEngine
	scorer *score.HealthScorer

	input   textinput.Model
	stepIdx int
	record  domain.InputRecord
	errMsg  string

	finished bool
	report   string
	err      error
}

// NewModel creates the wizard over a configured engine and scorer.
func NewModel(engine *calculation.CalculationEngine, scorer *score.HealthScorer) Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 24

	return Model{
		engine: engine,
		scorer: scorer,
		input:  ti,
		record: domain.InputRecord{},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.finished {
				return m, tea.Quit
			}
			return m.accept()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// accept validates the current answer, stores it and advances.
func (m Model) accept() (tea.Model, tea.Cmd) {
	current := wizardSteps[m.stepIdx]
	raw := strings.TrimSpace(m.input.Value())

	if len(current.choices) > 0 {
		if raw == "" {
			raw = current.choices[0]
		}
		if !contains(current.choices, raw) {
			m.errMsg = fmt.Sprintf("choose one of: %s", strings.Join(current.choices, ", "))
			return m, nil
		}
		m.record[current.field] = raw
	} else if current.numeric {
		if raw == "" {
			raw = "0"
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			m.errMsg = "enter a non-negative number"
			return m, nil
		}
		m.record[current.field] = value
	} else {
		m.record[current.field] = raw
	}

	m.errMsg = ""
	m.input.SetValue("")
	m.stepIdx++
	if m.stepIdx >= len(wizardSteps) {
		m.finish()
	}
	return m, nil
}

// finish assembles the plan, runs the engine and renders the report.
func (m *Model) finish() {
	m.finished = true

	plan := &domain.PlanInput{
		Record:      m.record,
		WorkPeriods: []domain.WorkPeriod{m.workPeriodFromRecord()},
	}

	projection, err := m.engine.RunProjection(context.Background(), plan)
	if err != nil {
		m.err = err
		return
	}
	health := m.scorer.Score(m.record)

	formatter := output.GetFormatterByName("console")
	data, err := formatter.Format(&output.Report{Projection: projection, Health: &health})
	if err != nil {
		m.err = err
		return
	}
	m.report = string(data)
}

// workPeriodFromRecord derives a single work period spanning the whole
// horizon from the answers collected.
func (m *Model) workPeriodFromRecord() domain.WorkPeriod {
	num := func(field string) float64 {
		if v, ok := m.record[field].(float64); ok {
			return v
		}
		return 0
	}

	return domain.WorkPeriod{
		Country:             m.record.String("country", "israel"),
		StartAge:            int(num("currentAge")),
		EndAge:              int(num("retirementAge")),
		MonthlyContribution: decimal.NewFromFloat(num("monthlyContribution")),
		Salary:              decimal.NewFromFloat(num("currentMonthlySalary")),
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.finished {
		if m.err != nil {
			return errorStyle.Render("calculation failed: "+m.err.Error()) + "\n\npress enter to exit\n"
		}
		return m.report + "\n" + doneStyle.Render("press enter to exit") + "\n"
	}

	current := wizardSteps[m.stepIdx]
	var sb strings.Builder
	sb.WriteString(wizardTitleStyle.Render("PLANWISE WIZARD"))
	sb.WriteString(fmt.Sprintf("  step %d of %d\n\n", m.stepIdx+1, len(wizardSteps)))
	sb.WriteString(promptStyle.Render(current.prompt))
	if len(current.choices) > 0 {
		sb.WriteString(hintStyle.Render(fmt.Sprintf("  [%s]", strings.Join(current.choices, "/"))))
	} else if current.hint != "" {
		sb.WriteString(hintStyle.Render("  (" + current.hint + ")"))
	}
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	if m.errMsg != "" {
		sb.WriteString(errorStyle.Render(m.errMsg))
		sb.WriteString("\n")
	}
	sb.WriteString(hintStyle.Render("\nenter to accept, esc to quit\n"))
	return sb.String()
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
