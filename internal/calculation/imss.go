package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/jcroyoaun/compamx/internal/domain"
)

// IMSSCalculator computes social-security contributions per concept on
// the UMA-capped daily contribution base (SBC).
type IMSSCalculator struct {
	fy *domain.FiscalYear
}

// NewIMSSCalculator creates a calculator bound to a fiscal year.
func NewIMSSCalculator(fy *domain.FiscalYear) *IMSSCalculator {
	return &IMSSCalculator{fy: fy}
}

// SBC integrates the daily gross with the statutory factor covering
// mandatory fringe accruals, then caps it at the yearly UMA ceiling.
func (c *IMSSCalculator) SBC(dailyGross decimal.Decimal) decimal.Decimal {
	sbc := dailyGross.Mul(c.fy.SBCIntegrationFactor)
	return decimal.Min(sbc, c.fy.SBCCap()).Round(2)
}

// WorkerContribution returns the worker's total monthly IMSS deduction
// for the given daily SBC.
func (c *IMSSCalculator) WorkerContribution(sbc decimal.Decimal) decimal.Decimal {
	return c.contribution(sbc, func(concept domain.IMSSConcept) decimal.Decimal {
		return concept.WorkerRate
	})
}

// EmployerContribution returns the employer's total monthly IMSS cost
// for the given daily SBC. It never reduces the worker's net.
func (c *IMSSCalculator) EmployerContribution(sbc decimal.Decimal) decimal.Decimal {
	return c.contribution(sbc, func(concept domain.IMSSConcept) decimal.Decimal {
		return concept.EmployerRate
	})
}

// InfonavitEmployer returns the employer's monthly housing-fund
// contribution on the monthly SBC. Applies only when the worker routes
// it through an active credit.
func (c *IMSSCalculator) InfonavitEmployer(sbc decimal.Decimal) decimal.Decimal {
	monthlyBase := sbc.Mul(daysPerMonth)
	return monthlyBase.Mul(c.fy.InfonavitEmployerRate).Round(2)
}

func (c *IMSSCalculator) contribution(sbc decimal.Decimal, rate func(domain.IMSSConcept) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, concept := range c.fy.IMSSConcepts {
		base := sbc
		if concept.BaseCapUMA.IsPositive() {
			base = decimal.Min(base, concept.BaseCapUMA.Mul(c.fy.UMADaily))
		}
		monthlyBase := base.Mul(daysPerMonth)
		total = total.Add(monthlyBase.Mul(rate(concept)))
	}
	return total.Round(2)
}
