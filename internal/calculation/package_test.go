package calculation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcroyoaun/compamx/internal/domain"
)

func fullPayrollPackage() *domain.PackageInput {
	return &domain.PackageInput{
		Name:               "Staff Engineer",
		Regime:             domain.RegimePayroll,
		Currency:           domain.CurrencyMXN,
		PayFrequency:       domain.FrequencyMonthly,
		GrossSalary:        dec("20000"),
		Aguinaldo:          &domain.AguinaldoElection{Days: 15},
		VacationPremium:    &domain.VacationPremiumElection{VacationDays: 12, Percent: dec("25")},
		PantryVouchers:     &domain.PantryVoucherElection{MonthlyAmount: dec("2000")},
		SavingsFund:        &domain.SavingsFundElection{Percent: dec("13")},
		HasInfonavitCredit: true,
	}
}

func TestCalculatePayroll(t *testing.T) {
	calc := NewPackageCalculator(testFiscalYear())

	got, err := calc.Calculate(fullPayrollPackage())
	require.NoError(t, err)

	assert.Equal(t, "20000.00", got.GrossSalary.StringFixed(2))
	assert.Equal(t, "2604.00", got.ISRTax.StringFixed(2))
	assert.True(t, got.SubsidyCredit.IsZero())
	assert.Equal(t, "690.32", got.SBC.StringFixed(2))
	assert.Equal(t, "498.41", got.IMSSWorker.StringFixed(2))
	assert.Equal(t, "2600.00", got.SavingsFundMonthly.StringFixed(2))
	assert.Equal(t, "62400.00", got.SavingsFundPayout.StringFixed(2))
	assert.True(t, got.PantryVouchers.ISR.IsZero(), "2,000 is under the voucher cap")
	assert.True(t, got.IMSSEmployerMonthly.IsPositive())
	assert.True(t, got.InfonavitEmployerMonthly.IsPositive())

	// Net salary is the monthly take-home identity.
	wantNet := got.GrossSalary.
		Sub(got.ISRTax.Sub(got.SubsidyCredit)).
		Sub(got.IMSSWorker).
		Sub(got.SavingsFundMonthly).
		Add(got.PantryVouchers.Net).
		Add(got.OtherBenefitsMonthlyNet)
	assert.True(t, got.NetSalary.Equal(wantNet))

	// Yearly net folds the annual pieces on top of twelve take-homes.
	wantYearly := got.NetSalary.Mul(decimal.NewFromInt(12)).
		Add(got.Aguinaldo.Net).
		Add(got.VacationPremium.Net).
		Add(got.SavingsFundPayout).Round(2)
	assert.True(t, got.YearlyNet.Equal(wantYearly))
	assert.True(t, got.MonthlyAdjusted.Equal(got.YearlyNet.Div(decimal.NewFromInt(12)).Round(2)))
	assert.True(t, got.MonthlyAdjusted.GreaterThan(got.NetSalary),
		"annual benefits must pull the adjusted figure above plain monthly net")
	assert.True(t, got.NetSalary.LessThan(got.GrossSalary))

	// Employer costs are reported but never folded into gross or net.
	assert.Equal(t, "240000.00", got.YearlyGrossBase.StringFixed(2))
	assert.True(t, got.YearlyGross.GreaterThan(got.YearlyGrossBase))
}

func TestCalculatePayrollWithSubsidy(t *testing.T) {
	calc := NewPackageCalculator(testFiscalYear())

	got, err := calc.Calculate(&domain.PackageInput{
		Name: "Junior", Regime: domain.RegimePayroll, Currency: domain.CurrencyMXN,
		PayFrequency: domain.FrequencyMonthly, GrossSalary: dec("9000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "662.10", got.ISRTax.StringFixed(2))
	assert.Equal(t, "474.94", got.SubsidyCredit.StringFixed(2))
	assert.True(t, got.NetSalary.GreaterThan(got.GrossSalary.Sub(got.ISRTax).Sub(got.IMSSWorker)))
}

func TestCalculateSimplified(t *testing.T) {
	calc := NewPackageCalculator(testFiscalYear())

	got, err := calc.Calculate(&domain.PackageInput{
		Name: "Contractor", Regime: domain.RegimeSimplified, Currency: domain.CurrencyMXN,
		PayFrequency: domain.FrequencyMonthly, GrossSalary: dec("30000"),
		UnpaidRestDays: 30,
	})
	require.NoError(t, err)

	// 30,000 lands in the 1.1% row; the rate applies to the whole income.
	assert.Equal(t, "330.00", got.ISRTax.StringFixed(2))
	assert.True(t, got.SubsidyCredit.IsZero())
	assert.True(t, got.IMSSWorker.IsZero())
	assert.True(t, got.SBC.IsZero())

	// 30 unpaid days at 986.84 daily.
	assert.Equal(t, "29605.20", got.UnpaidRestDayLoss.StringFixed(2))
	assert.Equal(t, "326434.80", got.YearlyNet.StringFixed(2))
	assert.Equal(t, "27202.90", got.MonthlyAdjusted.StringFixed(2))
}

func TestCalculateSimplifiedBenefitFlatRate(t *testing.T) {
	calc := NewPackageCalculator(testFiscalYear())

	got, err := calc.Calculate(&domain.PackageInput{
		Name: "Contractor", Regime: domain.RegimeSimplified, Currency: domain.CurrencyMXN,
		PayFrequency: domain.FrequencyMonthly, GrossSalary: dec("24999"),
		OtherBenefits: []domain.OtherBenefit{
			{Name: "bonus", Amount: dec("24"), Currency: domain.CurrencyMXN, Cadence: domain.CadenceAnnual},
		},
	})
	require.NoError(t, err)

	// The salary sits a peso under the 1.1% step; the benefit is taxed
	// at the salary's own 1% rate, not at the step it nudges past.
	require.Len(t, got.OtherBenefits, 1)
	assert.Equal(t, "0.24", got.OtherBenefits[0].ISR.StringFixed(2))
	assert.Equal(t, "23.76", got.OtherBenefits[0].Net.StringFixed(2))
	assert.True(t, got.OtherBenefits[0].Net.IsPositive())
}

func TestCalculateSimplifiedAboveCeiling(t *testing.T) {
	calc := NewPackageCalculator(testFiscalYear())

	_, err := calc.Calculate(&domain.PackageInput{
		Name: "Over the top", Regime: domain.RegimeSimplified, Currency: domain.CurrencyMXN,
		PayFrequency: domain.FrequencyMonthly, GrossSalary: dec("300000"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var phaseErr *PhaseError
	require.True(t, errors.As(err, &phaseErr))
	assert.Equal(t, PhaseTaxes, phaseErr.Phase)
}

func TestUnsupportedCombinations(t *testing.T) {
	calc := NewPackageCalculator(testFiscalYear())

	t.Run("statutory benefits under the simplified regime", func(t *testing.T) {
		_, err := calc.Calculate(&domain.PackageInput{
			Name: "Bad", Regime: domain.RegimeSimplified, Currency: domain.CurrencyMXN,
			PayFrequency: domain.FrequencyMonthly, GrossSalary: dec("30000"),
			Aguinaldo: &domain.AguinaldoElection{Days: 15},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnsupportedCombination))
	})

	t.Run("unpaid rest days under payroll", func(t *testing.T) {
		_, err := calc.Calculate(&domain.PackageInput{
			Name: "Bad", Regime: domain.RegimePayroll, Currency: domain.CurrencyMXN,
			PayFrequency: domain.FrequencyMonthly, GrossSalary: dec("20000"),
			UnpaidRestDays: 5,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnsupportedCombination))
	})
}

func TestCalculatePhaseErrors(t *testing.T) {
	calc := NewPackageCalculator(testFiscalYear())

	t.Run("normalize failures carry the phase", func(t *testing.T) {
		_, err := calc.Calculate(&domain.PackageInput{
			Name: "Hourly", Regime: domain.RegimePayroll, Currency: domain.CurrencyMXN,
			PayFrequency: domain.FrequencyHourly, GrossSalary: dec("100"),
		})
		var phaseErr *PhaseError
		require.True(t, errors.As(err, &phaseErr))
		assert.Equal(t, PhaseNormalize, phaseErr.Phase)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("benefit failures carry the phase", func(t *testing.T) {
		pkg := fullPayrollPackage()
		pkg.Aguinaldo = &domain.AguinaldoElection{Days: 5}
		_, err := calc.Calculate(pkg)
		var phaseErr *PhaseError
		require.True(t, errors.As(err, &phaseErr))
		assert.Equal(t, PhaseBenefits, phaseErr.Phase)
	})
}

func TestCalculateWithEquityAndOtherBenefits(t *testing.T) {
	calc := NewPackageCalculator(testFiscalYear())

	pkg := &domain.PackageInput{
		Name: "Offer", Regime: domain.RegimePayroll, Currency: domain.CurrencyUSD,
		PayFrequency: domain.FrequencyMonthly, GrossSalary: dec("2000"),
		OtherBenefits: []domain.OtherBenefit{
			{Name: "gym", Amount: dec("800"), Currency: domain.CurrencyMXN, Cadence: domain.CadenceMonthly, TaxFree: true},
			{Name: "bonus", Amount: dec("10"), IsPercentage: true},
		},
		Equity: &domain.EquityGrant{
			InitialGrantUSD: dec("40000"),
			Refresher:       &domain.RefresherRange{MinUSD: dec("8000"), MaxUSD: dec("16000")},
		},
	}

	got, err := calc.Calculate(pkg)
	require.NoError(t, err)
	assert.Equal(t, "40000.00", got.GrossSalary.StringFixed(2))
	require.Len(t, got.OtherBenefits, 2)
	assert.Equal(t, "800.00", got.OtherBenefitsMonthlyNet.StringFixed(2))
	assert.Equal(t, "48000.00", got.OtherBenefits[1].Amount.StringFixed(2))

	require.NotNil(t, got.Equity)
	assert.Len(t, got.Equity.Schedule, 4)
	// Equity is projected, never folded into yearly totals.
	expectedGross := got.YearlyGrossBase.
		Add(dec("800").Mul(decimal.NewFromInt(12))).
		Add(got.OtherBenefits[1].Amount)
	assert.True(t, got.YearlyGross.Equal(expectedGross.Round(2)),
		"yearly gross %s, expected %s", got.YearlyGross, expectedGross)
}
