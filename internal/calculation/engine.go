package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/planwise/retirement-planner/internal/domain"
	"github.com/planwise/retirement-planner/internal/resolve"
)

// Sentinel errors for the engine's degraded paths. The engine never
// panics on bad input; these let callers branch on what degraded.
var (
	// ErrNoHorizon is returned when retirement age is not after the
	// current age, the one early-exit guard.
	ErrNoHorizon = errors.New("retirement age must be greater than current age")

	// ErrIncomeModelMissing accompanies a partial result whose balances
	// are valid but whose income figures could not be computed.
	ErrIncomeModelMissing = errors.New("income model not configured")
)

// InputAdjuster is the dynamic-return-adjustment hook: it may rewrite
// return fields on a copy of the record before calculation begins.
type InputAdjuster func(domain.InputRecord) domain.InputRecord

// CalculationEngine orchestrates all retirement projections. It is
// stateless per call: one invocation consumes one PlanInput and returns
// one result, so engines may be shared across goroutines freely.
type CalculationEngine struct {
	Rules        *domain.EngineRules
	Income       IncomeModel
	Logger       Logger
	AdjustInputs InputAdjuster
	Debug        bool
}

// NewCalculationEngine creates an engine over the injected rules with
// the default withdrawal income model and a no-op logger.
func NewCalculationEngine(rules *domain.EngineRules) *CalculationEngine {
	return &CalculationEngine{
		Rules:  rules,
		Income: WithdrawalIncomeModel{},
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is
// provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// RunProjection computes the full household projection for one plan.
//
// Balances are always computed when the horizon is valid. When no income
// model is configured the balance-only result is returned together with
// ErrIncomeModelMissing so the caller still gets a best-effort result.
func (ce *CalculationEngine) RunProjection(ctx context.Context, plan *domain.PlanInput) (*domain.ProjectionResult, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan input is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := plan.Record
	if ce.AdjustInputs != nil {
		rec = ce.AdjustInputs(rec.Clone())
	}

	currentAge := resolve.Int(rec, resolve.CurrentAge, resolve.Options{Default: decimal.Zero})
	retirementAge := resolve.Int(rec, resolve.RetirementAge, resolve.Options{Default: decimal.Zero})
	if retirementAge <= currentAge {
		return nil, ErrNoHorizon
	}

	risk := domain.ParseRiskTolerance(rec.String("riskTolerance", string(domain.RiskModerate)))

	primary := ce.projectPerson(rec, personInputs{
		currentAge:             currentAge,
		retirementAge:          retirementAge,
		risk:                   risk,
		periods:                plan.WorkPeriods,
		pensionAllocation:      plan.PensionAllocation,
		trainingFundAllocation: plan.TrainingFundAllocation,
		historicalReturns:      plan.HistoricalReturns,
	})

	result := &domain.ProjectionResult{
		PersonProjection: primary,
		CurrentAge:       currentAge,
		RetirementAge:    retirementAge,
		YearsToGo:        retirementAge - currentAge,
	}

	if rec.Bool("partnerPlanningEnabled") && len(plan.PartnerWorkPeriods) > 0 {
		partner := ce.projectPartner(rec, plan)
		result.Partner = partner
	}

	result.CombinedTotalSavings = result.TotalSavings()
	if result.Partner != nil {
		result.CombinedTotalSavings = result.CombinedTotalSavings.Add(result.Partner.TotalSavings())
	}

	if ce.Income == nil {
		return result, ErrIncomeModelMissing
	}
	result.MonthlyIncome = ce.Income.MonthlyIncome(&result.PersonProjection, result.Partner, ce.Rules)

	return result, nil
}

// projectPartner re-runs the person pipeline against the partner's
// fields. A partner with an invalid horizon degrades to no partner
// result instead of failing the primary projection.
func (ce *CalculationEngine) projectPartner(rec domain.InputRecord, plan *domain.PlanInput) *domain.PersonProjection {
	currentAge := resolve.Int(rec, resolve.PartnerChain(resolve.CurrentAge), resolve.Options{Default: decimal.Zero})
	retirementAge := resolve.Int(rec, resolve.PartnerChain(resolve.RetirementAge), resolve.Options{Default: decimal.Zero})
	if retirementAge <= currentAge {
		ce.Logger.Warnf("partner horizon invalid (current %d, retirement %d), skipping partner projection", currentAge, retirementAge)
		return nil
	}

	risk := domain.ParseRiskTolerance(rec.String("partnerRiskTolerance",
		rec.String("riskTolerance", string(domain.RiskModerate))))

	partner := ce.projectPerson(rec, personInputs{
		partner:                true,
		currentAge:             currentAge,
		retirementAge:          retirementAge,
		risk:                   risk,
		periods:                plan.PartnerWorkPeriods,
		pensionAllocation:      plan.PensionAllocation,
		trainingFundAllocation: plan.TrainingFundAllocation,
		historicalReturns:      plan.HistoricalReturns,
	})
	return &partner
}

// personInputs parameterizes the pipeline over a household member so the
// partner run is the same code path with partner-prefixed fields, not a
// duplicated state machine.
type personInputs struct {
	partner                bool
	currentAge             int
	retirementAge          int
	risk                   domain.RiskTolerance
	periods                []domain.WorkPeriod
	pensionAllocation      []domain.AllocationEntry
	trainingFundAllocation []domain.AllocationEntry
	historicalReturns      domain.HistoricalReturns
}

func (pi personInputs) chain(c resolve.Chain) resolve.Chain {
	if pi.partner {
		return resolve.PartnerChain(c)
	}
	return c
}

func (ce *CalculationEngine) projectPerson(rec domain.InputRecord, pi personInputs) domain.PersonProjection {
	years := pi.retirementAge - pi.currentAge
	value := func(c resolve.Chain, def decimal.Decimal) decimal.Decimal {
		return resolve.Value(rec, pi.chain(c), resolve.Options{Default: def})
	}

	// Pension through the period aggregator. The fallback return covers
	// periods that carry no rate of their own: allocation-weighted when
	// an allocation exists, else the record's figure, else the default.
	pensionReturn := ce.WeightedReturn(pi.pensionAllocation, years, pi.historicalReturns)
	if pensionReturn.IsZero() {
		pensionReturn = value(resolve.PensionReturn, ce.Rules.DefaultPensionReturn)
	}
	pensionBalance, periodResults := ce.accumulatePension(
		value(resolve.PensionSavings, decimal.Zero),
		pi.periods, pi.currentAge, pi.retirementAge, pi.risk, pensionReturn,
	)

	// Training fund: two-term growth over the whole horizon. The deposit
	// comes from the record when present, else the latest overlapping
	// work period's training-fund figure.
	trainingReturn := ce.WeightedReturn(pi.trainingFundAllocation, years, pi.historicalReturns)
	if trainingReturn.IsZero() {
		trainingReturn = value(resolve.TrainingReturn, ce.Rules.DefaultPensionReturn)
	}
	trainingDeposit := resolve.Value(rec, pi.chain(resolve.Chain{
		Concept: "monthly training fund deposit",
		Aliases: []string{"monthlyTrainingFundContribution", "trainingFundMonthly"},
	}), resolve.Options{Default: ce.trainingDepositFromPeriods(pi)})
	trainingFund := growCategory(
		value(resolve.TrainingFund, decimal.Zero),
		trainingDeposit,
		ce.AdjustedReturn(trainingReturn, pi.risk),
		years,
	)

	// Personal portfolio: existing balance takes the capital-gains
	// haircut before growth, contributions do not.
	taxRate := value(resolve.PortfolioTaxRate, ce.defaultTaxRate(rec))
	portfolio := growCategory(
		taxedBalance(value(resolve.Portfolio, decimal.Zero), taxRate),
		value(resolve.MonthlyPortfolioDeposit, decimal.Zero),
		ce.AdjustedReturn(value(resolve.PortfolioReturn, ce.Rules.DefaultPortfolioReturn), pi.risk),
		years,
	)

	crypto := growCategory(
		value(resolve.Crypto, decimal.Zero),
		value(resolve.MonthlyCryptoDeposit, decimal.Zero),
		ce.AdjustedReturn(value(resolve.CryptoReturn, ce.Rules.DefaultCryptoReturn), pi.risk),
		years,
	)

	realEstate := growCategory(
		value(resolve.RealEstate, decimal.Zero),
		decimal.Zero,
		ce.AdjustedReturn(value(resolve.RealEstateReturn, ce.Rules.DefaultRealEstateReturn), pi.risk),
		years,
	)
	rent := rentalIncome(realEstate, value(resolve.RealEstateYield, ce.Rules.DefaultRentalYield))

	return domain.PersonProjection{
		TotalPensionSavings:    pensionBalance,
		TrainingFundValue:      trainingFund,
		PersonalPortfolioValue: portfolio,
		CryptoValue:            crypto,
		RealEstateValue:        realEstate,
		MonthlyRentalIncome:    rent,
		PeriodResults:          periodResults,
	}
}

// trainingDepositFromPeriods picks the training-fund deposit of the
// latest work period overlapping the projection window.
func (ce *CalculationEngine) trainingDepositFromPeriods(pi personInputs) decimal.Decimal {
	deposit := decimal.Zero
	for _, p := range domain.SortWorkPeriods(pi.periods) {
		if p.EndAge <= pi.currentAge || p.StartAge >= pi.retirementAge {
			continue
		}
		if !p.MonthlyTrainingFund.IsZero() {
			deposit = p.MonthlyTrainingFund
		}
	}
	return deposit
}

// defaultTaxRate picks the capital-gains rate of the record's country
// when known, zero otherwise.
func (ce *CalculationEngine) defaultTaxRate(rec domain.InputRecord) decimal.Decimal {
	if rules, ok := ce.Rules.Country(rec.String("country", "")); ok {
		return rules.CapitalGainsTaxRate
	}
	return decimal.Zero
}
