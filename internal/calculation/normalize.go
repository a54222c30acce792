package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/jcroyoaun/compamx/internal/domain"
)

// Calendar factors used to project quoted pay onto a calendar month.
var (
	weeksPerMonth = decimal.NewFromInt(52).Div(decimal.NewFromInt(12))
	daysPerMonth  = decimal.NewFromFloat(30.4)
	two           = decimal.NewFromInt(2)
)

// Normalize converts a package's quoted salary into a monthly gross in
// MXN and the corresponding daily gross. Everything downstream of this
// works in monthly MXN.
func Normalize(pkg *domain.PackageInput, fy *domain.FiscalYear) (monthly, daily decimal.Decimal, err error) {
	if pkg.GrossSalary.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, domain.NewInputError("gross_salary", "must be positive")
	}

	amount := pkg.GrossSalary
	switch pkg.Currency {
	case domain.CurrencyMXN:
	case domain.CurrencyUSD:
		rate := pkg.EffectiveExchangeRate(fy)
		if rate.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, decimal.Zero, domain.NewInputError("exchange_rate", "must be positive")
		}
		amount = amount.Mul(rate)
	default:
		return decimal.Zero, decimal.Zero, domain.NewInputError("currency", "must be MXN or USD")
	}

	switch pkg.PayFrequency {
	case domain.FrequencyHourly:
		if pkg.HoursPerWeek == nil || pkg.HoursPerWeek.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, decimal.Zero, domain.NewInputError("hours_per_week", "required and positive for hourly pay")
		}
		monthly = amount.Mul(*pkg.HoursPerWeek).Mul(weeksPerMonth)
	case domain.FrequencyDaily:
		monthly = amount.Mul(daysPerMonth)
	case domain.FrequencyWeekly:
		monthly = amount.Mul(weeksPerMonth)
	case domain.FrequencyBiweekly:
		monthly = amount.Mul(two)
	case domain.FrequencyMonthly:
		monthly = amount
	default:
		return decimal.Zero, decimal.Zero, domain.NewInputError("pay_frequency", "unknown frequency")
	}

	monthly = monthly.Round(2)
	daily = monthly.Div(daysPerMonth).Round(2)
	return monthly, daily, nil
}
