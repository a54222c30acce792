package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcroyoaun/compamx/internal/domain"
)

// Calculation phases, in pipeline order.
const (
	PhaseNormalize = "normalize"
	PhaseTaxes     = "taxes"
	PhaseBenefits  = "benefits"
	PhaseAggregate = "aggregate"
)

// PhaseError wraps a failure with the pipeline phase it happened in.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// PackageCalculator runs one package through the full pipeline:
// normalize the quoted pay to monthly MXN, withhold regime taxes,
// process elected benefits, then aggregate annual totals. All tax
// tables come from the fiscal-year snapshot bound at construction.
type PackageCalculator struct {
	fy       *domain.FiscalYear
	isr      *ISRCalculator
	subsidy  *SubsidyCalculator
	imss     *IMSSCalculator
	resico   *RESICOCalculator
	benefits *BenefitProcessor
}

// NewPackageCalculator creates a calculator bound to a fiscal year.
func NewPackageCalculator(fy *domain.FiscalYear) *PackageCalculator {
	isr := NewISRCalculator(fy)
	return &PackageCalculator{
		fy:       fy,
		isr:      isr,
		subsidy:  NewSubsidyCalculator(fy),
		imss:     NewIMSSCalculator(fy),
		resico:   NewRESICOCalculator(fy),
		benefits: NewBenefitProcessor(fy, isr),
	}
}

// Calculate computes the full breakdown for one package.
func (c *PackageCalculator) Calculate(pkg *domain.PackageInput) (*domain.SalaryCalculation, error) {
	if err := c.checkCombination(pkg); err != nil {
		return nil, err
	}

	monthly, daily, err := Normalize(pkg, c.fy)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseNormalize, Err: err}
	}

	switch pkg.Regime {
	case domain.RegimePayroll:
		return c.calculatePayroll(pkg, monthly, daily)
	case domain.RegimeSimplified:
		return c.calculateSimplified(pkg, monthly, daily)
	default:
		return nil, &PhaseError{Phase: PhaseNormalize,
			Err: domain.NewInputError("regime", "unknown regime")}
	}
}

// checkCombination rejects elections that are structurally impossible
// under the package's regime, before any arithmetic runs.
func (c *PackageCalculator) checkCombination(pkg *domain.PackageInput) error {
	switch pkg.Regime {
	case domain.RegimeSimplified:
		if pkg.HasPayrollOnlyBenefits() {
			return domain.NewCombinationError("regime",
				"statutory benefits are not available under the simplified regime")
		}
	case domain.RegimePayroll:
		if pkg.UnpaidRestDays > 0 {
			return domain.NewCombinationError("unpaid_rest_days",
				"payroll workers are paid for rest days")
		}
	}
	if pkg.UnpaidRestDays < 0 {
		return domain.NewInputError("unpaid_rest_days", "cannot be negative")
	}
	return nil
}

func (c *PackageCalculator) calculatePayroll(pkg *domain.PackageInput, monthly, daily decimal.Decimal) (*domain.SalaryCalculation, error) {
	calc := &domain.SalaryCalculation{
		GrossSalary:        monthly,
		HasInfonavitCredit: pkg.HasInfonavitCredit,
	}

	// Taxes on the base salary.
	isr := c.isr.Withhold(monthly)
	calc.SubsidyCredit = c.subsidy.Credit(monthly, isr)
	calc.ISRTax = isr

	calc.SBC = c.imss.SBC(daily)
	calc.IMSSWorker = c.imss.WorkerContribution(calc.SBC)
	calc.IMSSEmployerMonthly = c.imss.EmployerContribution(calc.SBC)
	calc.IMSSEmployerAnnual = calc.IMSSEmployerMonthly.Mul(twelve).Round(2)
	if pkg.HasInfonavitCredit {
		calc.InfonavitEmployerMonthly = c.imss.InfonavitEmployer(calc.SBC)
		calc.InfonavitEmployerAnnual = calc.InfonavitEmployerMonthly.Mul(twelve).Round(2)
	}

	if err := c.processBenefits(pkg, calc, monthly, daily); err != nil {
		return nil, &PhaseError{Phase: PhaseBenefits, Err: err}
	}

	c.aggregatePayroll(calc)
	return calc, nil
}

func (c *PackageCalculator) processBenefits(pkg *domain.PackageInput, calc *domain.SalaryCalculation, monthly, daily decimal.Decimal) error {
	var err error
	if pkg.Aguinaldo != nil {
		if calc.Aguinaldo, err = c.benefits.Aguinaldo(pkg.Aguinaldo, daily, monthly); err != nil {
			return err
		}
	}
	if pkg.VacationPremium != nil {
		if calc.VacationPremium, err = c.benefits.VacationPremium(pkg.VacationPremium, daily, monthly); err != nil {
			return err
		}
	}
	if pkg.PantryVouchers != nil {
		if calc.PantryVouchers, err = c.benefits.PantryVouchers(pkg.PantryVouchers, monthly); err != nil {
			return err
		}
	}
	if pkg.SavingsFund != nil {
		if calc.SavingsFundMonthly, err = c.benefits.SavingsFundMonthly(pkg.SavingsFund, monthly); err != nil {
			return err
		}
		calc.SavingsFundPayout = c.benefits.SavingsFundPayout(calc.SavingsFundMonthly)
	}

	rate := pkg.EffectiveExchangeRate(c.fy)
	annualBase := monthly.Mul(twelve)
	for _, b := range pkg.OtherBenefits {
		result, err := c.benefits.Other(b, rate, monthly, annualBase)
		if err != nil {
			return err
		}
		calc.OtherBenefits = append(calc.OtherBenefits, result)
		if result.Cadence == domain.CadenceMonthly {
			calc.OtherBenefitsMonthlyNet = calc.OtherBenefitsMonthlyNet.Add(result.Net)
		}
	}

	if pkg.Equity != nil {
		if calc.Equity, err = ProjectEquity(pkg.Equity, rate); err != nil {
			return err
		}
	}
	return nil
}

// aggregatePayroll folds monthly and annual pieces into yearly totals.
// Net salary is the monthly take-home: gross minus subsidized ISR,
// IMSS and the savings-fund deduction, plus monthly benefit nets.
// Employer-side costs stay out of both gross and net. Equity stays out
// of every total: it is projected separately as a range.
func (c *PackageCalculator) aggregatePayroll(calc *domain.SalaryCalculation) {
	netISR := calc.ISRTax.Sub(calc.SubsidyCredit)
	calc.NetSalary = calc.GrossSalary.
		Sub(netISR).
		Sub(calc.IMSSWorker).
		Sub(calc.SavingsFundMonthly).
		Add(calc.PantryVouchers.Net).
		Add(calc.OtherBenefitsMonthlyNet)

	calc.YearlyGrossBase = calc.GrossSalary.Mul(twelve)
	employerMatch := calc.SavingsFundMonthly.Mul(twelve)

	gross := calc.YearlyGrossBase.
		Add(calc.Aguinaldo.Gross).
		Add(calc.VacationPremium.Gross).
		Add(calc.PantryVouchers.Gross.Mul(twelve)).
		Add(employerMatch)
	net := calc.NetSalary.Mul(twelve).
		Add(calc.Aguinaldo.Net).
		Add(calc.VacationPremium.Net).
		Add(calc.SavingsFundPayout)
	for _, b := range calc.OtherBenefits {
		if b.Cadence == domain.CadenceAnnual {
			gross = gross.Add(b.Amount)
			net = net.Add(b.Net)
		} else {
			gross = gross.Add(b.Amount.Mul(twelve))
		}
	}

	calc.YearlyGross = gross.Round(2)
	calc.YearlyNet = net.Round(2)
	calc.MonthlyAdjusted = calc.YearlyNet.Div(twelve).Round(2)
}

func (c *PackageCalculator) calculateSimplified(pkg *domain.PackageInput, monthly, daily decimal.Decimal) (*domain.SalaryCalculation, error) {
	calc := &domain.SalaryCalculation{
		GrossSalary:    monthly,
		UnpaidRestDays: pkg.UnpaidRestDays,
	}

	tax, err := c.resico.Tax(monthly)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseTaxes, Err: err}
	}
	calc.ISRTax = tax

	rate := pkg.EffectiveExchangeRate(c.fy)
	annualBase := monthly.Mul(twelve)
	for _, b := range pkg.OtherBenefits {
		result, err := c.simplifiedBenefit(b, rate, monthly, annualBase)
		if err != nil {
			return nil, &PhaseError{Phase: PhaseBenefits, Err: err}
		}
		calc.OtherBenefits = append(calc.OtherBenefits, result)
		if result.Cadence == domain.CadenceMonthly {
			calc.OtherBenefitsMonthlyNet = calc.OtherBenefitsMonthlyNet.Add(result.Net)
		}
	}
	if pkg.Equity != nil {
		if calc.Equity, err = ProjectEquity(pkg.Equity, rate); err != nil {
			return nil, &PhaseError{Phase: PhaseBenefits, Err: err}
		}
	}

	calc.NetSalary = calc.GrossSalary.Sub(calc.ISRTax).Add(calc.OtherBenefitsMonthlyNet)
	calc.UnpaidRestDayLoss = RestDayLoss(daily, pkg.UnpaidRestDays)

	calc.YearlyGrossBase = calc.GrossSalary.Mul(twelve)
	gross := calc.YearlyGrossBase.Sub(calc.UnpaidRestDayLoss)
	net := calc.NetSalary.Mul(twelve).Sub(calc.UnpaidRestDayLoss)
	for _, b := range calc.OtherBenefits {
		if b.Cadence == domain.CadenceAnnual {
			gross = gross.Add(b.Amount)
			net = net.Add(b.Net)
		} else {
			gross = gross.Add(b.Amount.Mul(twelve))
		}
	}

	calc.YearlyGross = gross.Round(2)
	calc.YearlyNet = net.Round(2)
	calc.MonthlyAdjusted = calc.YearlyNet.Div(twelve).Round(2)
	return calc, nil
}

// simplifiedBenefit taxes a custom benefit at the flat rate the base
// monthly income falls under, since the regime has no marginal tariff.
// Differencing whole-income taxes would charge the benefit for a rate
// step the salary itself crosses.
func (c *PackageCalculator) simplifiedBenefit(b domain.OtherBenefit, rate, monthly, annualBase decimal.Decimal) (domain.OtherBenefitResult, error) {
	if b.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.OtherBenefitResult{}, domain.NewInputError("other_benefits.amount", "must be positive: "+b.Name)
	}

	cadence := b.Cadence
	var amount decimal.Decimal
	if b.IsPercentage {
		amount = annualBase.Mul(b.Amount).Div(hundred)
		cadence = domain.CadenceAnnual
	} else {
		amount = b.Amount
		if b.Currency == domain.CurrencyUSD {
			amount = amount.Mul(rate)
		}
		switch cadence {
		case domain.CadenceMonthly, domain.CadenceAnnual:
		default:
			return domain.OtherBenefitResult{}, domain.NewInputError("other_benefits.cadence", "must be monthly or annual: "+b.Name)
		}
	}
	amount = amount.Round(2)

	var isr decimal.Decimal
	if !b.TaxFree {
		flatRate, err := c.resico.Rate(monthly)
		if err != nil {
			return domain.OtherBenefitResult{}, err
		}
		isr = amount.Mul(flatRate).Round(2)
	}
	return domain.OtherBenefitResult{
		Name:    b.Name,
		Amount:  amount,
		TaxFree: b.TaxFree,
		Cadence: cadence,
		ISR:     isr,
		Net:     amount.Sub(isr),
	}, nil
}
