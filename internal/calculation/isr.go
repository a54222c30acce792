package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/jcroyoaun/compamx/internal/domain"
)

var daysPerYear = decimal.NewFromInt(365)

// ISRCalculator withholds income tax against a monthly tariff table.
type ISRCalculator struct {
	Brackets []domain.ISRBracket
}

// NewISRCalculator creates a calculator over the fiscal year's tariff.
func NewISRCalculator(fy *domain.FiscalYear) *ISRCalculator {
	return &ISRCalculator{Brackets: fy.ISRBrackets}
}

// Withhold returns the monthly ISR for the given taxable base: the
// bracket's fixed quota plus the marginal rate applied to the excess
// over the bracket's lower limit.
func (c *ISRCalculator) Withhold(base decimal.Decimal) decimal.Decimal {
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	b := c.bracketFor(base)
	excess := base.Sub(b.LowerLimit)
	return b.FixedQuota.Add(excess.Mul(b.MarginalRate)).Round(2)
}

// WithholdMarginal returns the additional monthly ISR caused by adding
// extra taxable income on top of an existing monthly base. Taxing the
// extra in the context of the base keeps recurring benefits in the
// bracket the full salary reaches.
func (c *ISRCalculator) WithholdMarginal(base, extra decimal.Decimal) decimal.Decimal {
	if extra.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return c.Withhold(base.Add(extra)).Sub(c.Withhold(base))
}

// WithholdAnnualSupplement taxes a one-time annual amount (aguinaldo,
// vacation premium) using the effective-rate method of LISR Art. 174:
// spread the amount over a 30.4-day month, measure the marginal rate it
// provokes on top of the regular monthly base, and apply that rate to
// the whole amount.
func (c *ISRCalculator) WithholdAnnualSupplement(monthlyBase, annual decimal.Decimal) decimal.Decimal {
	if annual.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	monthlyShare := annual.Div(daysPerYear).Mul(daysPerMonth)
	if monthlyShare.IsZero() {
		return decimal.Zero
	}
	marginal := c.Withhold(monthlyBase.Add(monthlyShare)).Sub(c.Withhold(monthlyBase))
	rate := marginal.Div(monthlyShare)
	return annual.Mul(rate).Round(2)
}

// bracketFor picks the row with the greatest lower limit not exceeding
// the base. Published tariffs quantize limits to cents, leaving 0.01
// seams between rows; an unrounded base inside a seam belongs to the
// row below it, never to a later one.
func (c *ISRCalculator) bracketFor(base decimal.Decimal) domain.ISRBracket {
	match := c.Brackets[0]
	for _, b := range c.Brackets[1:] {
		if b.LowerLimit.GreaterThan(base) {
			break
		}
		match = b
	}
	return match
}
