package domain

import (
	"github.com/shopspring/decimal"
)

// BenefitResult is the gross/ISR/net triple every benefit calculator
// produces. Net is always Gross minus ISR.
type BenefitResult struct {
	Gross decimal.Decimal `json:"gross"`
	ISR   decimal.Decimal `json:"isr"`
	Net   decimal.Decimal `json:"net"`
}

// OtherBenefitResult is the computed breakdown of a custom benefit line
// item, with the amount already converted to MXN.
type OtherBenefitResult struct {
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	TaxFree bool            `json:"taxFree"`
	Cadence BenefitCadence  `json:"cadence"`
	ISR     decimal.Decimal `json:"isr"`
	Net     decimal.Decimal `json:"net"`
}

// YearlyVest is one year of an equity vesting schedule. Refresher-driven
// figures carry a low and high bound because refreshers are elected as a
// range.
type YearlyVest struct {
	Year            int             `json:"year"`
	InitialGrantUSD decimal.Decimal `json:"initialGrantUSD"`
	RefresherMinUSD decimal.Decimal `json:"refresherMinUSD"`
	RefresherMaxUSD decimal.Decimal `json:"refresherMaxUSD"`
	TotalMinUSD     decimal.Decimal `json:"totalMinUSD"`
	TotalMaxUSD     decimal.Decimal `json:"totalMaxUSD"`
	TotalMinMXN     decimal.Decimal `json:"totalMinMXN"`
	TotalMaxMXN     decimal.Decimal `json:"totalMaxMXN"`
}

// EquityProjection reports equity as supplemental compensation. It is
// informational: nothing here is salary-taxed by the engine.
type EquityProjection struct {
	InitialGrantUSD decimal.Decimal `json:"initialGrantUSD"`
	RefresherMinUSD decimal.Decimal `json:"refresherMinUSD"`
	RefresherMaxUSD decimal.Decimal `json:"refresherMaxUSD"`
	VestingYears    int             `json:"vestingYears"`
	Schedule        []YearlyVest    `json:"schedule"`
}

// SalaryCalculation is the full breakdown computed for one package. All
// money figures are MXN.
type SalaryCalculation struct {
	// Monthly figures.
	GrossSalary             decimal.Decimal `json:"grossSalary"`
	ISRTax                  decimal.Decimal `json:"isrTax"`
	SubsidyCredit           decimal.Decimal `json:"subsidyCredit"`
	IMSSWorker              decimal.Decimal `json:"imssWorker"`
	SavingsFundMonthly      decimal.Decimal `json:"savingsFundMonthly"`
	OtherBenefitsMonthlyNet decimal.Decimal `json:"otherBenefitsMonthlyNet"`
	NetSalary               decimal.Decimal `json:"netSalary"`

	// SBC is the capped daily contribution base (zero under RESICO).
	SBC decimal.Decimal `json:"sbc"`

	// Benefit breakdowns. Zero-valued when the benefit is disabled.
	Aguinaldo         BenefitResult        `json:"aguinaldo"`
	VacationPremium   BenefitResult        `json:"vacationPremium"`
	PantryVouchers    BenefitResult        `json:"pantryVouchers"`
	SavingsFundPayout decimal.Decimal      `json:"savingsFundPayout"`
	OtherBenefits     []OtherBenefitResult `json:"otherBenefits,omitempty"`
	Equity            *EquityProjection    `json:"equity,omitempty"`

	// Employer-side estimates: non-liquid, reported for annual totals
	// only, never subtracted from employee net.
	IMSSEmployerMonthly      decimal.Decimal `json:"imssEmployerMonthly"`
	IMSSEmployerAnnual       decimal.Decimal `json:"imssEmployerAnnual"`
	InfonavitEmployerMonthly decimal.Decimal `json:"infonavitEmployerMonthly"`
	InfonavitEmployerAnnual  decimal.Decimal `json:"infonavitEmployerAnnual"`
	HasInfonavitCredit       bool            `json:"hasInfonavitCredit"`

	// Simplified-regime fields.
	UnpaidRestDays    int             `json:"unpaidRestDays"`
	UnpaidRestDayLoss decimal.Decimal `json:"unpaidRestDayLoss"`

	// Annual totals.
	YearlyGrossBase decimal.Decimal `json:"yearlyGrossBase"`
	YearlyGross     decimal.Decimal `json:"yearlyGross"`
	YearlyNet       decimal.Decimal `json:"yearlyNet"`

	// MonthlyAdjusted is YearlyNet divided by twelve: the recommended
	// comparison metric, smoothing annual-only benefits.
	MonthlyAdjusted decimal.Decimal `json:"monthlyAdjusted"`
}
