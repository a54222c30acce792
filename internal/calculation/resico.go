package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/jcroyoaun/compamx/internal/domain"
)

// RESICOCalculator computes the simplified-regime flat tax. The
// matching rate applies to the whole monthly income, there is no fixed
// quota, no subsidy and no social-security withholding.
type RESICOCalculator struct {
	Brackets []domain.RESICOBracket
}

// NewRESICOCalculator creates a calculator over the fiscal year's
// flat-rate table.
func NewRESICOCalculator(fy *domain.FiscalYear) *RESICOCalculator {
	return &RESICOCalculator{Brackets: fy.RESICOBrackets}
}

// Rate returns the flat rate the given monthly income falls under.
// Income above the regime's ceiling is rejected: such a worker cannot
// legally stay in the regime, so a figure would be fiction.
func (c *RESICOCalculator) Rate(monthlyIncome decimal.Decimal) (decimal.Decimal, error) {
	if monthlyIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}
	for _, b := range c.Brackets {
		if monthlyIncome.LessThanOrEqual(b.UpperLimit) {
			return b.Rate, nil
		}
	}
	return decimal.Zero, domain.NewInputError("gross_salary",
		"monthly income exceeds the simplified-regime ceiling")
}

// Tax returns the monthly flat tax for the given income.
func (c *RESICOCalculator) Tax(monthlyIncome decimal.Decimal) (decimal.Decimal, error) {
	rate, err := c.Rate(monthlyIncome)
	if err != nil {
		return decimal.Zero, err
	}
	return monthlyIncome.Mul(rate).Round(2), nil
}

// RestDayLoss returns the annual income lost to elected unpaid rest
// days at the given daily gross.
func RestDayLoss(dailyGross decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return dailyGross.Mul(decimal.NewFromInt(int64(days))).Round(2)
}
