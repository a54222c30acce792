package domain

import (
	"github.com/shopspring/decimal"
)

// Regime identifies the employment tax regime a package is offered under.
type Regime string

const (
	// RegimePayroll is the standard employer-withheld regime (sueldos y
	// salarios): IMSS enrollment, subsidy eligibility, statutory fringe
	// benefits.
	RegimePayroll Regime = "payroll"

	// RegimeSimplified is the flat-rate RESICO regime: no IMSS, no
	// subsidy, no statutory benefits, exposure to unpaid rest days.
	RegimeSimplified Regime = "simplified-flat-tax"
)

// PayFrequency is the cadence the offered salary figure is quoted in.
type PayFrequency string

const (
	FrequencyHourly   PayFrequency = "hourly"
	FrequencyDaily    PayFrequency = "daily"
	FrequencyWeekly   PayFrequency = "weekly"
	FrequencyBiweekly PayFrequency = "biweekly"
	FrequencyMonthly  PayFrequency = "monthly"
)

// Currency is the currency the offered salary figure is quoted in.
type Currency string

const (
	CurrencyMXN Currency = "MXN"
	CurrencyUSD Currency = "USD"
)

// BenefitCadence says whether a custom benefit amount is paid monthly or
// once per year.
type BenefitCadence string

const (
	CadenceMonthly BenefitCadence = "monthly"
	CadenceAnnual  BenefitCadence = "annual"
)

// AguinaldoElection enables the year-end bonus. Days of zero means the
// statutory minimum for the fiscal year.
type AguinaldoElection struct {
	Days int `yaml:"days" json:"days"`
}

// VacationPremiumElection enables the vacation premium (prima
// vacacional): Percent of the salary for VacationDays of vacation.
type VacationPremiumElection struct {
	VacationDays int             `yaml:"vacation_days" json:"vacationDays"`
	Percent      decimal.Decimal `yaml:"percent" json:"percent"`
}

// PantryVoucherElection enables monthly grocery vouchers (vales de
// despensa) at the given amount.
type PantryVoucherElection struct {
	MonthlyAmount decimal.Decimal `yaml:"monthly_amount" json:"monthlyAmount"`
}

// SavingsFundElection enables the savings fund (fondo de ahorro) at the
// given percentage of monthly gross salary.
type SavingsFundElection struct {
	Percent decimal.Decimal `yaml:"percent" json:"percent"`
}

// RefresherRange is an annual equity refresher expressed as a range, not
// a point estimate; its value is inherently uncertain.
type RefresherRange struct {
	MinUSD decimal.Decimal `yaml:"min_usd" json:"minUSD"`
	MaxUSD decimal.Decimal `yaml:"max_usd" json:"maxUSD"`
}

// EquityGrant is an equity election: an initial grant in USD plus an
// optional annual refresher range.
type EquityGrant struct {
	InitialGrantUSD decimal.Decimal `yaml:"initial_grant_usd" json:"initialGrantUSD"`
	Refresher       *RefresherRange `yaml:"refresher,omitempty" json:"refresher,omitempty"`
}

// OtherBenefit is an arbitrary custom benefit line item. When
// IsPercentage is set the amount is a percentage of annual gross salary
// and the cadence is annual regardless of the Cadence field.
type OtherBenefit struct {
	Name         string          `yaml:"name" json:"name"`
	Amount       decimal.Decimal `yaml:"amount" json:"amount"`
	Currency     Currency        `yaml:"currency" json:"currency"`
	Cadence      BenefitCadence  `yaml:"cadence" json:"cadence"`
	TaxFree      bool            `yaml:"tax_free" json:"taxFree"`
	IsPercentage bool            `yaml:"is_percentage" json:"isPercentage"`
}

// PackageInput is one compensation package as submitted for comparison.
// Benefit elections are tagged variants: a nil election means disabled
// and contributes zero to every total.
type PackageInput struct {
	Name         string           `yaml:"name" json:"name"`
	Regime       Regime           `yaml:"regime" json:"regime"`
	Currency     Currency         `yaml:"currency" json:"currency"`
	ExchangeRate *decimal.Decimal `yaml:"exchange_rate,omitempty" json:"exchangeRate,omitempty"`
	PayFrequency PayFrequency     `yaml:"pay_frequency" json:"payFrequency"`
	HoursPerWeek *decimal.Decimal `yaml:"hours_per_week,omitempty" json:"hoursPerWeek,omitempty"`
	GrossSalary  decimal.Decimal  `yaml:"gross_salary" json:"grossSalary"`

	Aguinaldo          *AguinaldoElection       `yaml:"aguinaldo,omitempty" json:"aguinaldo,omitempty"`
	VacationPremium    *VacationPremiumElection `yaml:"vacation_premium,omitempty" json:"vacationPremium,omitempty"`
	PantryVouchers     *PantryVoucherElection   `yaml:"pantry_vouchers,omitempty" json:"pantryVouchers,omitempty"`
	SavingsFund        *SavingsFundElection     `yaml:"savings_fund,omitempty" json:"savingsFund,omitempty"`
	HasInfonavitCredit bool                     `yaml:"has_infonavit_credit" json:"hasInfonavitCredit"`

	// UnpaidRestDays is meaningful only under the simplified regime:
	// elected days off per year the worker is not paid for.
	UnpaidRestDays int `yaml:"unpaid_rest_days" json:"unpaidRestDays"`

	OtherBenefits []OtherBenefit `yaml:"other_benefits,omitempty" json:"otherBenefits,omitempty"`
	Equity        *EquityGrant   `yaml:"equity,omitempty" json:"equity,omitempty"`
}

// EffectiveExchangeRate returns the package's override rate when set,
// otherwise the fiscal year's default.
func (p *PackageInput) EffectiveExchangeRate(fy *FiscalYear) decimal.Decimal {
	if p.ExchangeRate != nil {
		return *p.ExchangeRate
	}
	return fy.USDMXNRate
}

// HasPayrollOnlyBenefits reports whether any benefit restricted to the
// payroll regime is enabled.
func (p *PackageInput) HasPayrollOnlyBenefits() bool {
	return p.Aguinaldo != nil || p.VacationPremium != nil || p.PantryVouchers != nil ||
		p.SavingsFund != nil || p.HasInfonavitCredit
}
