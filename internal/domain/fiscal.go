package domain

import (
	"github.com/shopspring/decimal"
)

var centGap = decimal.NewFromFloat(0.01)

// ISRBracket is one row of the monthly ISR withholding tariff.
// Tax for a base inside the row is FixedQuota plus MarginalRate applied
// to the excess over LowerLimit.
type ISRBracket struct {
	LowerLimit   decimal.Decimal `yaml:"lower_limit" json:"lowerLimit"`
	UpperLimit   decimal.Decimal `yaml:"upper_limit" json:"upperLimit"`
	FixedQuota   decimal.Decimal `yaml:"fixed_quota" json:"fixedQuota"`
	MarginalRate decimal.Decimal `yaml:"marginal_rate" json:"marginalRate"`
}

// SubsidyBracket is one row of the employment subsidy table. The credit
// applies to monthly taxable bases in [LowerLimit, UpperLimit).
type SubsidyBracket struct {
	LowerLimit decimal.Decimal `yaml:"lower_limit" json:"lowerLimit"`
	UpperLimit decimal.Decimal `yaml:"upper_limit" json:"upperLimit"`
	Credit     decimal.Decimal `yaml:"credit" json:"credit"`
}

// RESICOBracket is one row of the simplified-regime flat-rate table.
// The rate applies to the entire monthly income, not just the excess.
type RESICOBracket struct {
	UpperLimit decimal.Decimal `yaml:"upper_limit" json:"upperLimit"`
	Rate       decimal.Decimal `yaml:"rate" json:"rate"`
}

// IMSSConcept is a single social-security contribution concept with its
// worker and employer rates, applied to the UMA-capped daily base.
type IMSSConcept struct {
	Name            string          `yaml:"name" json:"name"`
	WorkerRate      decimal.Decimal `yaml:"worker_rate" json:"workerRate"`
	EmployerRate    decimal.Decimal `yaml:"employer_rate" json:"employerRate"`
	BaseCapUMA      decimal.Decimal `yaml:"base_cap_uma" json:"baseCapUMA"`
}

// FiscalYear is the immutable snapshot of all tax-table data for one
// fiscal year. It is constructed once (from a YAML file or Postgres),
// validated, and read-only for the lifetime of every request.
type FiscalYear struct {
	Year int `yaml:"year" json:"year"`

	// Reference unit (UMA) values published by INEGI.
	UMADaily   decimal.Decimal `yaml:"uma_daily" json:"umaDaily"`
	UMAMonthly decimal.Decimal `yaml:"uma_monthly" json:"umaMonthly"`
	UMAAnnual  decimal.Decimal `yaml:"uma_annual" json:"umaAnnual"`

	MinimumWageDaily decimal.Decimal `yaml:"minimum_wage_daily" json:"minimumWageDaily"`
	USDMXNRate       decimal.Decimal `yaml:"usd_mxn_rate" json:"usdMXNRate"`

	ISRBrackets     []ISRBracket     `yaml:"isr_brackets" json:"isrBrackets"`
	SubsidyBrackets []SubsidyBracket `yaml:"subsidy_brackets" json:"subsidyBrackets"`
	RESICOBrackets  []RESICOBracket  `yaml:"resico_brackets" json:"resicoBrackets"`
	IMSSConcepts    []IMSSConcept    `yaml:"imss_concepts" json:"imssConcepts"`

	// Contribution-base (SBC) parameters.
	SBCCapUMA            decimal.Decimal `yaml:"sbc_cap_uma" json:"sbcCapUMA"`
	SBCIntegrationFactor decimal.Decimal `yaml:"sbc_integration_factor" json:"sbcIntegrationFactor"`

	// Statutory benefit exemptions and caps (LISR Art. 93 and related).
	AguinaldoExemptUMA       decimal.Decimal `yaml:"aguinaldo_exempt_uma" json:"aguinaldoExemptUMA"`
	VacationPremiumExemptUMA decimal.Decimal `yaml:"vacation_premium_exempt_uma" json:"vacationPremiumExemptUMA"`
	PantryVoucherUMACap      decimal.Decimal `yaml:"pantry_voucher_uma_cap" json:"pantryVoucherUMACap"`
	SavingsFundUMACapFactor  decimal.Decimal `yaml:"savings_fund_uma_cap_factor" json:"savingsFundUMACapFactor"`
	SavingsFundMaxPercent    decimal.Decimal `yaml:"savings_fund_max_percent" json:"savingsFundMaxPercent"`
	MinAguinaldoDays         int             `yaml:"min_aguinaldo_days" json:"minAguinaldoDays"`
	InfonavitEmployerRate    decimal.Decimal `yaml:"infonavit_employer_rate" json:"infonavitEmployerRate"`
}

// Validate checks the snapshot for internal consistency. Any fault is a
// ConfigError: the engine must refuse to compute rather than produce a
// misleading figure from a broken table.
func (fy *FiscalYear) Validate() error {
	if fy.Year <= 0 {
		return NewConfigError("fiscal_year", "year must be positive")
	}
	if fy.UMADaily.LessThanOrEqual(decimal.Zero) || fy.UMAMonthly.LessThanOrEqual(decimal.Zero) || fy.UMAAnnual.LessThanOrEqual(decimal.Zero) {
		return NewConfigError("fiscal_year", "UMA values must be positive")
	}
	if fy.MinimumWageDaily.LessThanOrEqual(decimal.Zero) {
		return NewConfigError("fiscal_year", "minimum wage must be positive")
	}
	if fy.USDMXNRate.LessThanOrEqual(decimal.Zero) {
		return NewConfigError("fiscal_year", "USD/MXN rate must be positive")
	}
	if err := fy.validateISRBrackets(); err != nil {
		return err
	}
	if err := fy.validateSubsidyBrackets(); err != nil {
		return err
	}
	if err := fy.validateRESICOBrackets(); err != nil {
		return err
	}
	if len(fy.IMSSConcepts) == 0 {
		return NewConfigError("imss_concepts", "at least one contribution concept is required")
	}
	for _, c := range fy.IMSSConcepts {
		if c.WorkerRate.IsNegative() || c.EmployerRate.IsNegative() {
			return NewConfigError("imss_concepts", "contribution rates cannot be negative: "+c.Name)
		}
	}
	if fy.SBCCapUMA.LessThanOrEqual(decimal.Zero) {
		return NewConfigError("fiscal_year", "SBC cap in UMA multiples must be positive")
	}
	if fy.SBCIntegrationFactor.LessThan(decimal.NewFromInt(1)) {
		return NewConfigError("fiscal_year", "SBC integration factor cannot be below 1")
	}
	return nil
}

// validateISRBrackets requires an ascending, non-overlapping tariff
// covering 0 upward, and verifies the tax function is monotonically
// non-decreasing across bracket joins (no cliffs).
func (fy *FiscalYear) validateISRBrackets() error {
	if len(fy.ISRBrackets) == 0 {
		return NewConfigError("isr_brackets", "tariff table is missing")
	}
	first := fy.ISRBrackets[0]
	if !first.LowerLimit.IsZero() {
		return NewConfigError("isr_brackets", "tariff must cover bases from zero")
	}
	for i, b := range fy.ISRBrackets {
		if b.MarginalRate.IsNegative() || b.FixedQuota.IsNegative() {
			return NewConfigError("isr_brackets", "rates and quotas cannot be negative")
		}
		if b.UpperLimit.LessThanOrEqual(b.LowerLimit) {
			return NewConfigError("isr_brackets", "bracket upper limit must exceed lower limit")
		}
		if i == 0 {
			continue
		}
		prev := fy.ISRBrackets[i-1]
		if b.LowerLimit.LessThan(prev.UpperLimit) {
			return NewConfigError("isr_brackets", "brackets overlap or are out of order")
		}
		// Published tariffs quantize limits to cents, so consecutive rows
		// sit exactly one cent apart. Anything wider leaves bases no row
		// accounts for.
		if b.LowerLimit.Sub(prev.UpperLimit).GreaterThan(centGap) {
			return NewConfigError("isr_brackets", "tariff leaves a gap between rows")
		}
		// Tax at this bracket's floor must be at least the tax reached at
		// the top of the previous bracket, otherwise a marginally higher
		// gross would withhold less.
		prevTop := prev.FixedQuota.Add(prev.MarginalRate.Mul(b.LowerLimit.Sub(prev.LowerLimit)))
		if b.FixedQuota.LessThan(prevTop.Round(2)) {
			return NewConfigError("isr_brackets", "tariff is not monotonically non-decreasing")
		}
	}
	return nil
}

func (fy *FiscalYear) validateSubsidyBrackets() error {
	for i, b := range fy.SubsidyBrackets {
		if b.Credit.IsNegative() {
			return NewConfigError("subsidy_brackets", "credit cannot be negative")
		}
		if b.UpperLimit.LessThanOrEqual(b.LowerLimit) {
			return NewConfigError("subsidy_brackets", "row upper limit must exceed lower limit")
		}
		if i > 0 && b.LowerLimit.LessThan(fy.SubsidyBrackets[i-1].UpperLimit) {
			return NewConfigError("subsidy_brackets", "rows overlap or are out of order")
		}
	}
	return nil
}

func (fy *FiscalYear) validateRESICOBrackets() error {
	if len(fy.RESICOBrackets) == 0 {
		return NewConfigError("resico_brackets", "flat-rate table is missing")
	}
	for i, b := range fy.RESICOBrackets {
		if b.Rate.IsNegative() {
			return NewConfigError("resico_brackets", "rate cannot be negative")
		}
		if b.UpperLimit.LessThanOrEqual(decimal.Zero) {
			return NewConfigError("resico_brackets", "upper limit must be positive")
		}
		if i > 0 && b.UpperLimit.LessThanOrEqual(fy.RESICOBrackets[i-1].UpperLimit) {
			return NewConfigError("resico_brackets", "upper limits must be strictly ascending")
		}
	}
	return nil
}

// SBCCap returns the daily contribution-base ceiling for this year.
func (fy *FiscalYear) SBCCap() decimal.Decimal {
	return fy.SBCCapUMA.Mul(fy.UMADaily)
}
