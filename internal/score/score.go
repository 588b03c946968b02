// Package score computes the multi-factor financial health score. Each
// factor resolves its raw quantities straight from the input record (not
// from projection output), maps a ratio onto a five-tier benchmark table
// with linear interpolation between tier boundaries, applies its capped
// bonuses or penalties, and clamps to [0, 100]. The aggregate is a fixed
// weighted blend of the factors.
package score

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/planwise/retirement-planner/internal/calculation"
	"github.com/planwise/retirement-planner/internal/domain"
)

// HealthScorer evaluates a household's financial health against the
// injected benchmark tables. Stateless per call, safe for concurrent use.
type HealthScorer struct {
	Rules  *domain.EngineRules
	Logger calculation.Logger
}

// NewHealthScorer creates a scorer over the injected rules.
func NewHealthScorer(rules *domain.EngineRules) *HealthScorer {
	return &HealthScorer{Rules: rules, Logger: calculation.NopLogger{}}
}

// SetLogger sets the scorer's logger; nil restores the no-op logger.
func (hs *HealthScorer) SetLogger(l calculation.Logger) {
	if l == nil {
		hs.Logger = calculation.NopLogger{}
		return
	}
	hs.Logger = l
}

// Factor names, used as map keys in the report and in recommendations.
const (
	FactorSavingsRate     = "savingsRate"
	FactorTimeHorizon     = "timeHorizon"
	FactorCurrentSavings  = "currentSavings"
	FactorGoalProgress    = "goalProgress"
	FactorDiversification = "diversification"
	FactorTaxEfficiency   = "taxEfficiency"
	FactorEmergencyFund   = "emergencyFund"
	FactorDebtManagement  = "debtManagement"
)

// Score computes every factor and blends them into the aggregate report.
func (hs *HealthScorer) Score(rec domain.InputRecord) domain.HealthReport {
	factors := map[string]domain.ScoreResult{
		FactorSavingsRate:     hs.SavingsRateScore(rec),
		FactorTimeHorizon:     hs.TimeHorizonScore(rec),
		FactorCurrentSavings:  hs.CurrentSavingsScore(rec),
		FactorGoalProgress:    hs.GoalProgressScore(rec),
		FactorDiversification: hs.DiversificationScore(rec),
		FactorTaxEfficiency:   hs.TaxEfficiencyScore(rec),
		FactorEmergencyFund:   hs.EmergencyFundScore(rec),
		FactorDebtManagement:  hs.DebtManagementScore(rec),
	}

	weights := map[string]decimal.Decimal{
		FactorSavingsRate:     hs.Rules.Weights.SavingsRate,
		FactorTimeHorizon:     hs.Rules.Weights.TimeHorizon,
		FactorCurrentSavings:  hs.Rules.Weights.CurrentSavings,
		FactorGoalProgress:    hs.Rules.Weights.GoalProgress,
		FactorDiversification: hs.Rules.Weights.Diversification,
		FactorTaxEfficiency:   hs.Rules.Weights.TaxEfficiency,
		FactorEmergencyFund:   hs.Rules.Weights.EmergencyFund,
		FactorDebtManagement:  hs.Rules.Weights.DebtManagement,
	}

	weightedSum := 0.0
	weightTotal := 0.0
	for name, res := range factors {
		wf := weights[name].InexactFloat64()
		if wf <= 0 {
			continue
		}
		weightedSum += res.Score * wf
		weightTotal += wf
	}

	aggregate := 0.0
	if weightTotal > 0 {
		aggregate = weightedSum / weightTotal
	}
	aggregate = clamp(math.Round(aggregate))

	return domain.HealthReport{
		Score:           aggregate,
		Status:          statusForScore(aggregate),
		Factors:         factors,
		Recommendations: hs.recommendations(factors),
	}
}

// clamp bounds a score to [0, 100].
func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// statusForScore labels an already-clamped score.
func statusForScore(score float64) domain.ScoreStatus {
	switch {
	case score >= 90:
		return domain.StatusExcellent
	case score >= 75:
		return domain.StatusGood
	case score >= 50:
		return domain.StatusFair
	case score >= 25:
		return domain.StatusPoor
	default:
		return domain.StatusCritical
	}
}

// tierScore maps a raw ratio onto the five-tier table. The score
// interpolates linearly between tier boundaries (fair..good spans
// 50..75, and so on) rather than stepping.
func tierScore(value float64, tiers domain.BenchmarkTiers) (float64, domain.ScoreStatus) {
	critical := tiers.Critical.InexactFloat64()
	poor := tiers.Poor.InexactFloat64()
	fair := tiers.Fair.InexactFloat64()
	good := tiers.Good.InexactFloat64()
	excellent := tiers.Excellent.InexactFloat64()

	if tiers.HigherIsWorse {
		// Thresholds ascend from best to worst value.
		switch {
		case value <= excellent:
			return 100, domain.StatusExcellent
		case value <= good:
			return lerp(value, excellent, good, 100, 75), domain.StatusGood
		case value <= fair:
			return lerp(value, good, fair, 75, 50), domain.StatusFair
		case value <= poor:
			return lerp(value, fair, poor, 50, 25), domain.StatusPoor
		case value <= critical:
			return lerp(value, poor, critical, 25, 0), domain.StatusCritical
		default:
			return 0, domain.StatusCritical
		}
	}

	switch {
	case value >= excellent:
		return 100, domain.StatusExcellent
	case value >= good:
		return lerp(value, good, excellent, 75, 100), domain.StatusGood
	case value >= fair:
		return lerp(value, fair, good, 50, 75), domain.StatusFair
	case value >= poor:
		return lerp(value, poor, fair, 25, 50), domain.StatusPoor
	case value >= critical:
		return lerp(value, critical, poor, 0, 25), domain.StatusCritical
	default:
		return 0, domain.StatusCritical
	}
}

// lerp interpolates value from [lo, hi] onto [scoreLo, scoreHi].
func lerp(value, lo, hi, scoreLo, scoreHi float64) float64 {
	if hi == lo {
		return scoreLo
	}
	t := (value - lo) / (hi - lo)
	return scoreLo + t*(scoreHi-scoreLo)
}

// neutral is the defaulted result when a denominator is zero or a
// required quantity is unknown; scoring proceeds without dividing.
func neutral(details map[string]float64) domain.ScoreResult {
	return domain.ScoreResult{Score: 50, Status: domain.StatusUnknown, Details: details}
}
