package score

import (
	"sort"

	"github.com/planwise/retirement-planner/internal/domain"
)

// Factors scoring below this produce a recommendation.
const recommendBelow = 75.0

var factorActions = map[string]string{
	FactorSavingsRate:     "Increase monthly contributions; even 2-3% of salary compounds meaningfully over the remaining horizon",
	FactorTimeHorizon:     "Consider postponing retirement or raising contributions to offset the short accumulation window",
	FactorCurrentSavings:  "Accumulated savings are low for this income level; review fixed expenses to free up contribution room",
	FactorGoalProgress:    "Current savings trail the stated retirement goal; revisit the goal or raise the savings rate",
	FactorDiversification: "Spread savings across more asset classes instead of concentrating in one vehicle",
	FactorTaxEfficiency:   "Shift more savings into tax-advantaged vehicles (pension, training fund) before taxable accounts",
	FactorEmergencyFund:   "Build the emergency fund toward six months of expenses before investing further",
	FactorDebtManagement:  "Pay down high-interest debt first; it outpaces any expected portfolio return",
}

// recommendations orders the weak factors worst-first and attaches the
// per-factor action text. Priority 1 is the most urgent.
func (hs *HealthScorer) recommendations(factors map[string]domain.ScoreResult) []domain.Recommendation {
	type weak struct {
		name  string
		score float64
	}
	weaks := make([]weak, 0, len(factors))
	for name, res := range factors {
		if res.Score < recommendBelow {
			weaks = append(weaks, weak{name, res.Score})
		}
	}
	sort.Slice(weaks, func(i, j int) bool {
		if weaks[i].score != weaks[j].score {
			return weaks[i].score < weaks[j].score
		}
		return weaks[i].name < weaks[j].name
	})

	recs := make([]domain.Recommendation, 0, len(weaks))
	for i, w := range weaks {
		recs = append(recs, domain.Recommendation{
			Priority: i + 1,
			Factor:   w.name,
			Action:   factorActions[w.name],
		})
	}
	return recs
}
