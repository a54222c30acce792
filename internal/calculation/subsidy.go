package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/jcroyoaun/compamx/internal/domain"
)

// SubsidyCalculator resolves the employment subsidy credit against the
// decree's table of monthly-income rows.
type SubsidyCalculator struct {
	Brackets []domain.SubsidyBracket
}

// NewSubsidyCalculator creates a calculator over the fiscal year's
// subsidy table. An empty table simply yields no credit.
func NewSubsidyCalculator(fy *domain.FiscalYear) *SubsidyCalculator {
	return &SubsidyCalculator{Brackets: fy.SubsidyBrackets}
}

// Credit returns the monthly subsidy for the given taxable base, capped
// at the ISR so that withholding never goes negative. Rows match on the
// half-open interval [lower, upper).
func (c *SubsidyCalculator) Credit(base, isr decimal.Decimal) decimal.Decimal {
	for _, b := range c.Brackets {
		if base.GreaterThanOrEqual(b.LowerLimit) && base.LessThan(b.UpperLimit) {
			return decimal.Min(b.Credit, isr)
		}
	}
	return decimal.Zero
}
