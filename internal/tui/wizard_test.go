package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise/retirement-planner/internal/calculation"
	"github.com/planwise/retirement-planner/internal/config"
	"github.com/planwise/retirement-planner/internal/score"
)

func newWizard(t *testing.T) Model {
	t.Helper()
	rules, err := config.DefaultRules()
	require.NoError(t, err)
	return NewModel(calculation.NewCalculationEngine(rules), score.NewHealthScorer(rules))
}

func answer(m Model, value string) Model {
	m.input.SetValue(value)
	next, _ := m.accept()
	return next.(Model)
}

func TestWizardFlow(t *testing.T) {
	answers := []string{
		"israel", // country
		"35",     // current age
		"67",     // retirement age
		"14000",  // salary
		"9000",   // expenses
		"120000", // pension savings
		"60000",  // training fund
		"80000",  // portfolio
		"5000",   // crypto
		"0",      // real estate
		"2500",   // contribution
		"45000",  // emergency fund
		"0",      // debt
		"0",      // goal
		"",       // risk tolerance, default choice
	}
	require.Len(t, answers, len(wizardSteps))

	m := newWizard(t)
	for _, a := range answers {
		m = answer(m, a)
	}

	assert.True(t, m.finished)
	require.NoError(t, m.err)
	assert.NotEmpty(t, m.report)
	assert.Contains(t, m.report, "RETIREMENT PLAN REPORT")
	assert.Equal(t, "moderate", m.record["riskTolerance"], "Empty choice input takes the first option")
}

func TestWizardValidation(t *testing.T) {
	t.Run("rejects_bad_choice", func(t *testing.T) {
		m := answer(newWizard(t), "narnia")
		assert.Equal(t, 0, m.stepIdx, "A bad choice should not advance")
		assert.NotEmpty(t, m.errMsg)
	})

	t.Run("rejects_negative_number", func(t *testing.T) {
		m := answer(newWizard(t), "israel")
		m = answer(m, "-5")
		assert.Equal(t, 1, m.stepIdx)
		assert.NotEmpty(t, m.errMsg)
	})

	t.Run("rejects_non_numeric", func(t *testing.T) {
		m := answer(newWizard(t), "israel")
		m = answer(m, "young")
		assert.Equal(t, 1, m.stepIdx)
		assert.NotEmpty(t, m.errMsg)
	})

	t.Run("empty_numeric_defaults_to_zero", func(t *testing.T) {
		m := answer(newWizard(t), "israel")
		m = answer(m, "")
		assert.Equal(t, 2, m.stepIdx)
		assert.Equal(t, 0.0, m.record["currentAge"])
	})
}

func TestWizardKeys(t *testing.T) {
	t.Run("escape_quits", func(t *testing.T) {
		m := newWizard(t)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})

	t.Run("view_renders_prompt", func(t *testing.T) {
		m := newWizard(t)
		view := m.View()
		assert.Contains(t, view, "PLANWISE WIZARD")
		assert.Contains(t, view, "Country")
	})
}
