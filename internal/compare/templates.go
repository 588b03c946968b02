package compare

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/planwise/retirement-planner/internal/domain"
)

// Template is one built-in what-if transformation of a plan. Apply works
// on a deep-enough copy that the base plan is never mutated.
type Template struct {
	Name        string
	Description string
	Apply       func(plan *domain.PlanInput) *domain.PlanInput
}

// TemplateRegistry holds the built-in what-if templates by name.
type TemplateRegistry struct {
	templates map[string]Template
}

// Get looks up a template by name.
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[name]
	return t, ok
}

// Names returns the registered template names sorted alphabetically.
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltInTemplates registers the standard what-if set.
func BuiltInTemplates() *TemplateRegistry {
	templates := []Template{
		{
			Name:        "conservative",
			Description: "Re-run the projection with a conservative risk tolerance",
			Apply:       setRecordField("riskTolerance", string(domain.RiskConservative)),
		},
		{
			Name:        "moderate",
			Description: "Re-run the projection with a moderate risk tolerance",
			Apply:       setRecordField("riskTolerance", string(domain.RiskModerate)),
		},
		{
			Name:        "aggressive",
			Description: "Re-run the projection with an aggressive risk tolerance",
			Apply:       setRecordField("riskTolerance", string(domain.RiskAggressive)),
		},
		{
			Name:        "postpone_2yr",
			Description: "Postpone retirement by two years",
			Apply:       shiftRetirementAge(2),
		},
		{
			Name:        "postpone_5yr",
			Description: "Postpone retirement by five years",
			Apply:       shiftRetirementAge(5),
		},
		{
			Name:        "boost_contributions",
			Description: "Raise every monthly contribution by ten percent",
			Apply:       scaleContributions(decimal.NewFromFloat(1.10)),
		},
		{
			Name:        "market_stress",
			Description: "Shave two points off every work period's pension return",
			Apply:       stressPensionReturns(decimal.NewFromInt(2)),
		},
	}

	registry := &TemplateRegistry{templates: make(map[string]Template, len(templates))}
	for _, t := range templates {
		registry.templates[t.Name] = t
	}
	return registry
}

func clonePlan(plan *domain.PlanInput) *domain.PlanInput {
	out := *plan
	out.Record = plan.Record.Clone()
	out.WorkPeriods = append([]domain.WorkPeriod(nil), plan.WorkPeriods...)
	out.PartnerWorkPeriods = append([]domain.WorkPeriod(nil), plan.PartnerWorkPeriods...)
	return &out
}

func setRecordField(key string, value any) func(*domain.PlanInput) *domain.PlanInput {
	return func(plan *domain.PlanInput) *domain.PlanInput {
		out := clonePlan(plan)
		out.Record[key] = value
		return out
	}
}

func shiftRetirementAge(years int) func(*domain.PlanInput) *domain.PlanInput {
	return func(plan *domain.PlanInput) *domain.PlanInput {
		out := clonePlan(plan)
		for _, key := range []string{"retirementAge", "targetRetirementAge"} {
			if age, ok := out.Record[key]; ok {
				if n, ok := age.(int); ok {
					out.Record[key] = n + years
				}
				if f, ok := age.(float64); ok {
					out.Record[key] = f + float64(years)
				}
			}
		}
		if _, ok := out.Record["retirementAge"]; !ok {
			out.Record["retirementAge"] = 67 + years
		}
		return out
	}
}

func scaleContributions(factor decimal.Decimal) func(*domain.PlanInput) *domain.PlanInput {
	return func(plan *domain.PlanInput) *domain.PlanInput {
		out := clonePlan(plan)
		for i := range out.WorkPeriods {
			out.WorkPeriods[i].MonthlyContribution = out.WorkPeriods[i].MonthlyContribution.Mul(factor)
			out.WorkPeriods[i].MonthlyTrainingFund = out.WorkPeriods[i].MonthlyTrainingFund.Mul(factor)
		}
		for i := range out.PartnerWorkPeriods {
			out.PartnerWorkPeriods[i].MonthlyContribution = out.PartnerWorkPeriods[i].MonthlyContribution.Mul(factor)
			out.PartnerWorkPeriods[i].MonthlyTrainingFund = out.PartnerWorkPeriods[i].MonthlyTrainingFund.Mul(factor)
		}
		return out
	}
}

func stressPensionReturns(points decimal.Decimal) func(*domain.PlanInput) *domain.PlanInput {
	return func(plan *domain.PlanInput) *domain.PlanInput {
		out := clonePlan(plan)
		for i := range out.WorkPeriods {
			out.WorkPeriods[i].PensionReturn = out.WorkPeriods[i].PensionReturn.Sub(points)
		}
		for i := range out.PartnerWorkPeriods {
			out.PartnerWorkPeriods[i].PensionReturn = out.PartnerWorkPeriods[i].PensionReturn.Sub(points)
		}
		return out
	}
}
