package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcroyoaun/compamx/internal/domain"
)

const sampleRequest = `
packages:
  - name: Acme
    regime: payroll
    currency: MXN
    pay_frequency: monthly
    gross_salary: 20000
    aguinaldo:
      days: 15
    vacation_premium:
      vacation_days: 12
      percent: 25
    pantry_vouchers:
      monthly_amount: 2000
    savings_fund:
      percent: 13
    has_infonavit_credit: true
  - name: Globex
    regime: simplified-flat-tax
    currency: USD
    exchange_rate: 19.50
    pay_frequency: monthly
    gross_salary: 1500
    unpaid_rest_days: 24
    equity:
      initial_grant_usd: 40000
      refresher:
        min_usd: 8000
        max_usd: 16000
`

func TestLoadFromReader(t *testing.T) {
	parser := NewInputParser()

	req, err := parser.LoadFromReader(strings.NewReader(sampleRequest))
	require.NoError(t, err)
	require.Len(t, req.Packages, 2)

	acme := req.Packages[0]
	assert.Equal(t, domain.RegimePayroll, acme.Regime)
	assert.Equal(t, "20000", acme.GrossSalary.String())
	require.NotNil(t, acme.Aguinaldo)
	assert.Equal(t, 15, acme.Aguinaldo.Days)
	assert.True(t, acme.HasInfonavitCredit)

	globex := req.Packages[1]
	assert.Equal(t, domain.RegimeSimplified, globex.Regime)
	assert.Equal(t, domain.CurrencyUSD, globex.Currency)
	require.NotNil(t, globex.ExchangeRate)
	assert.Equal(t, "19.5", globex.ExchangeRate.String())
	assert.Equal(t, 24, globex.UnpaidRestDays)
	require.NotNil(t, globex.Equity)
	require.NotNil(t, globex.Equity.Refresher)
	assert.Equal(t, "16000", globex.Equity.Refresher.MaxUSD.String())
}

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()

	path := filepath.Join(t.TempDir(), "offers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRequest), 0o644))

	req, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Len(t, req.Packages, 2)

	_, err = parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRequestRejections(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name     string
		yaml     string
		sentinel error
	}{
		{
			name:     "no packages",
			yaml:     "packages: []",
			sentinel: domain.ErrInvalidInput,
		},
		{
			name: "unknown regime",
			yaml: `
packages:
  - name: Bad
    regime: freelancer
    currency: MXN
    pay_frequency: monthly
    gross_salary: 20000
`,
			sentinel: domain.ErrInvalidInput,
		},
		{
			name: "hourly without hours",
			yaml: `
packages:
  - name: Bad
    regime: payroll
    currency: MXN
    pay_frequency: hourly
    gross_salary: 100
`,
			sentinel: domain.ErrInvalidInput,
		},
		{
			name: "statutory benefits under simplified regime",
			yaml: `
packages:
  - name: Bad
    regime: simplified-flat-tax
    currency: MXN
    pay_frequency: monthly
    gross_salary: 30000
    savings_fund:
      percent: 10
`,
			sentinel: domain.ErrUnsupportedCombination,
		},
		{
			name: "unpaid rest days under payroll",
			yaml: `
packages:
  - name: Bad
    regime: payroll
    currency: MXN
    pay_frequency: monthly
    gross_salary: 20000
    unpaid_rest_days: 4
`,
			sentinel: domain.ErrUnsupportedCombination,
		},
		{
			name: "duplicate names",
			yaml: `
packages:
  - name: Twin
    regime: payroll
    currency: MXN
    pay_frequency: monthly
    gross_salary: 20000
  - name: Twin
    regime: payroll
    currency: MXN
    pay_frequency: monthly
    gross_salary: 25000
`,
			sentinel: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.LoadFromReader(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromReader(strings.NewReader("packages: [not: {valid"))
	assert.Error(t, err)
}
