package calculation

import (
	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectionEngine runs the monthly investment projection. It holds no state
// between runs other than its logger, so one engine may serve concurrent callers.
type ProjectionEngine struct {
	Logger Logger
}

// NewProjectionEngine creates an engine that logs nothing
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// SetLogger replaces the engine logger. A nil logger restores the no-op default.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	pe.Logger = l
}

// Project runs plan through a fresh engine with no logging
func Project(plan domain.PlanConfiguration) *domain.SimulationResult {
	return NewProjectionEngine().Project(plan)
}

// ledger is the state carried from month to month within a single run
type ledger struct {
	corpus          decimal.Decimal
	totalInvested   decimal.Decimal
	contribution    decimal.Decimal
	fixedWithdrawal decimal.Decimal
	cpi             decimal.Decimal

	totalWithdrawals decimal.Decimal
	totalTax         decimal.Decimal
	totalExpenses    decimal.Decimal
}

// yearTerms holds everything resolved once per year before the month loop
type yearTerms struct {
	year        int
	annualRate  decimal.Decimal
	monthlyRate decimal.Decimal
}

// Project simulates plan month by month and aggregates the ledger. The input
// is normalized first, so Project always returns a well-formed result.
func (pe *ProjectionEngine) Project(config domain.PlanConfiguration) *domain.SimulationResult {
	plan := Normalize(config)
	years := plan.InvestmentPeriodYears

	st := &ledger{
		corpus:        plan.InitialInvestment,
		totalInvested: plan.InitialInvestment,
		contribution:  plan.MonthlyContribution,
		cpi:           baseCPI,
	}
	if plan.Withdrawal.Type == domain.WithdrawalFixed {
		st.fixedWithdrawal = plan.Withdrawal.Amount
	}

	var variableRates []domain.VariableReturnEntry
	if plan.VariableReturns.Enabled && len(plan.VariableReturns.Entries) > 0 {
		variableRates = plan.SortedVariableReturns()
	}
	lumpMonths := lumpsumMonthSet(plan.Lumpsum)
	inflationFactor := growthFactor(plan.Inflation.AnnualRatePercent)
	indexWithdrawal := plan.Withdrawal.Type == domain.WithdrawalFixed && plan.Withdrawal.InflationAdjusted

	pe.Logger.Debugf("projecting %d years: initial=%s monthly=%s base rate=%s%%",
		years, plan.InitialInvestment.StringFixed(2), plan.MonthlyContribution.StringFixed(2), plan.BaseAnnualReturnPercent.String())

	records := make([]domain.MonthlyRecord, 0, years*12)
	var firstDepletion *domain.PeriodRef

	for year := 1; year <= years; year++ {
		if year > 1 {
			st.cpi = st.cpi.Mul(inflationFactor)
			if indexWithdrawal {
				st.fixedWithdrawal = roundMoney(st.fixedWithdrawal.Mul(inflationFactor))
			}
			st.contribution = ApplyStepUp(st.contribution, plan.StepUp)
		}

		terms := yearTerms{year: year, annualRate: plan.BaseAnnualReturnPercent}
		if variableRates != nil {
			terms.annualRate = lookupRate(year, variableRates)
		}
		terms.monthlyRate = MonthlyRate(terms.annualRate)

		pe.Logger.Debugf("year %d: contribution=%s rate=%s%% cpi=%s",
			year, st.contribution.StringFixed(2), terms.annualRate.String(), st.cpi.StringFixed(4))

		for month := 1; month <= 12; month++ {
			rec := st.advance(terms, month, plan, lumpMonths[month])
			if rec.Depleted && firstDepletion == nil {
				firstDepletion = &domain.PeriodRef{Year: year, Month: month}
				pe.Logger.Warnf("corpus depleted in year %d month %d: requested withdrawal %s, delivered %s",
					year, month, rec.RequestedWithdrawal.StringFixed(2), rec.WithdrawalThisMonth.StringFixed(2))
			}
			records = append(records, rec)
		}
	}

	result := &domain.SimulationResult{
		Records: records,
		Metrics: aggregate(plan, st, records, firstDepletion),
	}
	pe.Logger.Debugf("projection complete: %d records, final corpus %s",
		len(records), result.Metrics.FinalCorpus.StringFixed(2))
	return result
}

// advance applies one month in fixed order: contribute, lump sum, grow,
// expense, withdraw with tax, clamp. It returns the emitted record.
func (st *ledger) advance(terms yearTerms, month int, plan domain.PlanConfiguration, lumpsumDue bool) domain.MonthlyRecord {
	rec := domain.MonthlyRecord{
		Year:              terms.year,
		Month:             month,
		AnnualRatePercent: terms.annualRate,
	}

	st.corpus = st.corpus.Add(st.contribution)
	st.totalInvested = st.totalInvested.Add(st.contribution)
	rec.ContributionThisMonth = st.contribution

	if lumpsumDue {
		st.corpus = st.corpus.Add(plan.Lumpsum.Amount)
		st.totalInvested = st.totalInvested.Add(plan.Lumpsum.Amount)
		rec.LumpsumThisMonth = plan.Lumpsum.Amount
	}

	growth := roundMoney(st.corpus.Mul(terms.monthlyRate))
	st.corpus = st.corpus.Add(growth)
	rec.MonthlyGrowth = growth

	outflow := false

	if plan.ExpenseRatio.Enabled {
		expense := roundMoney(st.corpus.Mul(MonthlyRate(plan.ExpenseRatio.AnnualRatePercent)))
		expense = decimal.Min(expense, nonNegative(st.corpus))
		st.corpus = st.corpus.Sub(expense)
		st.totalExpenses = st.totalExpenses.Add(expense)
		rec.ExpenseDeductedThisMonth = expense
		outflow = outflow || expense.IsPositive()
	}

	if IsWithdrawalMonth(terms.year, month, plan.Withdrawal) {
		available := nonNegative(st.corpus)
		requested := ResolveWithdrawalBasis(available, terms.year, st.fixedWithdrawal, plan)
		gross := decimal.Min(requested, available)
		tax := decimal.Zero
		if plan.Tax.Enabled && gross.IsPositive() {
			gainFraction := nonNegative(available.Sub(st.totalInvested)).Div(available)
			tax = percentOf(gross.Mul(gainFraction), plan.Tax.RatePercent)
			tax = decimal.Min(tax, gross, available.Sub(gross))
		}

		st.corpus = st.corpus.Sub(gross).Sub(tax)
		st.totalWithdrawals = st.totalWithdrawals.Add(gross)
		st.totalTax = st.totalTax.Add(tax)

		rec.RequestedWithdrawal = requested
		rec.WithdrawalThisMonth = gross
		rec.TaxPaidThisMonth = tax
		rec.Depleted = requested.GreaterThan(gross)
		outflow = outflow || gross.IsPositive()
	}

	st.corpus = nonNegative(st.corpus)
	if outflow && st.corpus.IsZero() {
		rec.Depleted = true
	}

	rec.TotalInvestment = st.totalInvested
	rec.Corpus = st.corpus
	rec.Returns = st.corpus.Sub(st.totalInvested)
	rec.CurrentCPI = st.cpi
	rec.InflationAdjustedCorpus = deflate(st.corpus, st.cpi)
	rec.PurchasingPowerChange = purchasingPowerChange(st.cpi)
	return rec
}

// deflate converts a nominal amount into base-year money using cpi
func deflate(amount, cpi decimal.Decimal) decimal.Decimal {
	return roundMoney(amount.Mul(hundred).Div(cpi))
}

// purchasingPowerChange is the percent change in the value of one unit of money since base
func purchasingPowerChange(cpi decimal.Decimal) decimal.Decimal {
	return roundMoney(hundred.Mul(hundred).Div(cpi).Sub(hundred))
}
