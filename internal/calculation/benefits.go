package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcroyoaun/compamx/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// BenefitProcessor computes each elected benefit's gross, withheld ISR
// and net under the statutory exemption rules. Exempt portions never
// enter a taxable base; taxable excesses are withheld in the context of
// the regular monthly salary so they tax at the rate the full income
// reaches.
type BenefitProcessor struct {
	fy  *domain.FiscalYear
	isr *ISRCalculator
}

// NewBenefitProcessor creates a processor for the fiscal year.
func NewBenefitProcessor(fy *domain.FiscalYear, isr *ISRCalculator) *BenefitProcessor {
	return &BenefitProcessor{fy: fy, isr: isr}
}

// Aguinaldo computes the year-end bonus: daily gross times elected days,
// with the first AguinaldoExemptUMA daily-UMA multiples exempt and the
// excess taxed by the annual-supplement method.
func (p *BenefitProcessor) Aguinaldo(e *domain.AguinaldoElection, dailyGross, monthlyBase decimal.Decimal) (domain.BenefitResult, error) {
	days := e.Days
	if days == 0 {
		days = p.fy.MinAguinaldoDays
	}
	if days < p.fy.MinAguinaldoDays {
		return domain.BenefitResult{}, domain.NewInputError("aguinaldo.days",
			fmt.Sprintf("cannot be below the statutory minimum of %d", p.fy.MinAguinaldoDays))
	}

	gross := dailyGross.Mul(decimal.NewFromInt(int64(days))).Round(2)
	exempt := p.fy.AguinaldoExemptUMA.Mul(p.fy.UMADaily)
	taxable := decimal.Max(decimal.Zero, gross.Sub(exempt))
	isr := p.isr.WithholdAnnualSupplement(monthlyBase, taxable)
	return domain.BenefitResult{Gross: gross, ISR: isr, Net: gross.Sub(isr)}, nil
}

// VacationPremium computes the prima vacacional: the elected percentage
// of the pay for the elected vacation days, with a 15-UMA exemption and
// the excess taxed by the annual-supplement method.
func (p *BenefitProcessor) VacationPremium(e *domain.VacationPremiumElection, dailyGross, monthlyBase decimal.Decimal) (domain.BenefitResult, error) {
	if e.VacationDays <= 0 {
		return domain.BenefitResult{}, domain.NewInputError("vacation_premium.vacation_days", "must be positive")
	}
	if e.Percent.LessThanOrEqual(decimal.Zero) {
		return domain.BenefitResult{}, domain.NewInputError("vacation_premium.percent", "must be positive")
	}

	vacationPay := dailyGross.Mul(decimal.NewFromInt(int64(e.VacationDays)))
	gross := vacationPay.Mul(e.Percent).Div(hundred).Round(2)
	exempt := p.fy.VacationPremiumExemptUMA.Mul(p.fy.UMADaily)
	taxable := decimal.Max(decimal.Zero, gross.Sub(exempt))
	isr := p.isr.WithholdAnnualSupplement(monthlyBase, taxable)
	return domain.BenefitResult{Gross: gross, ISR: isr, Net: gross.Sub(isr)}, nil
}

// PantryVouchers computes the monthly grocery-voucher benefit. Amounts
// up to one monthly UMA are exempt; the excess joins the monthly
// taxable base instead of being silently clamped.
func (p *BenefitProcessor) PantryVouchers(e *domain.PantryVoucherElection, monthlyBase decimal.Decimal) (domain.BenefitResult, error) {
	if e.MonthlyAmount.LessThanOrEqual(decimal.Zero) {
		return domain.BenefitResult{}, domain.NewInputError("pantry_vouchers.monthly_amount", "must be positive")
	}

	gross := e.MonthlyAmount.Round(2)
	cap := p.fy.PantryVoucherUMACap.Mul(p.fy.UMAMonthly)
	taxable := decimal.Max(decimal.Zero, gross.Sub(cap))
	isr := p.isr.WithholdMarginal(monthlyBase, taxable).Round(2)
	return domain.BenefitResult{Gross: gross, ISR: isr, Net: gross.Sub(isr)}, nil
}

// SavingsFundMonthly returns the worker's monthly savings-fund
// deduction: the elected percentage of monthly gross, capped at both
// the statutory percentage ceiling and the UMA-indexed annual ceiling
// spread across twelve months.
func (p *BenefitProcessor) SavingsFundMonthly(e *domain.SavingsFundElection, monthlyGross decimal.Decimal) (decimal.Decimal, error) {
	if e.Percent.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.NewInputError("savings_fund.percent", "must be positive")
	}

	percent := decimal.Min(e.Percent, p.fy.SavingsFundMaxPercent)
	contribution := monthlyGross.Mul(percent).Div(hundred)
	umaCap := p.fy.UMAAnnual.Mul(p.fy.SavingsFundUMACapFactor).Div(twelve)
	return decimal.Min(contribution, umaCap).Round(2), nil
}

// SavingsFundPayout returns the tax-free year-end payout: the worker's
// accumulated deductions matched peso-for-peso by the employer.
func (p *BenefitProcessor) SavingsFundPayout(monthlyContribution decimal.Decimal) decimal.Decimal {
	return monthlyContribution.Mul(twelve).Mul(two).Round(2)
}

// Other computes one custom benefit line item. USD amounts convert at
// the package's effective rate; percentage items resolve against annual
// base salary and always pay out annually.
func (p *BenefitProcessor) Other(b domain.OtherBenefit, rate, monthlyBase, annualGrossBase decimal.Decimal) (domain.OtherBenefitResult, error) {
	if b.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.OtherBenefitResult{}, domain.NewInputError("other_benefits.amount", "must be positive: "+b.Name)
	}

	cadence := b.Cadence
	var amount decimal.Decimal
	if b.IsPercentage {
		amount = annualGrossBase.Mul(b.Amount).Div(hundred)
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
		if cadence == domain.CadenceMonthly {
			isr = p.isr.WithholdMarginal(monthlyBase, amount).Round(2)
		} else {
			isr = p.isr.WithholdAnnualSupplement(monthlyBase, amount)
		}
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
