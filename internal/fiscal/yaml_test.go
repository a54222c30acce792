package fiscal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcroyoaun/compamx/internal/domain"
)

const sampleFiscalYAML = `
year: 2025
uma_daily: 113.14
uma_monthly: 3439.46
uma_annual: 41273.52
minimum_wage_daily: 278.80
usd_mxn_rate: 20.00
isr_brackets:
  - {lower_limit: 0.00, upper_limit: 746.04, fixed_quota: 0.00, marginal_rate: 0.0192}
  - {lower_limit: 746.05, upper_limit: 999999999.00, fixed_quota: 14.32, marginal_rate: 0.0640}
subsidy_brackets:
  - {lower_limit: 0.01, upper_limit: 10171.00, credit: 474.94}
resico_brackets:
  - {upper_limit: 25000.00, rate: 0.0100}
  - {upper_limit: 50000.00, rate: 0.0110}
imss_concepts:
  - {name: "Invalidez y vida", worker_rate: 0.00625, employer_rate: 0.0175, base_cap_uma: 25}
sbc_cap_uma: 25
sbc_integration_factor: 1.0493
aguinaldo_exempt_uma: 30
vacation_premium_exempt_uma: 15
pantry_voucher_uma_cap: 1.0
savings_fund_uma_cap_factor: 1.3
savings_fund_max_percent: 13
min_aguinaldo_days: 15
infonavit_employer_rate: 0.05
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fiscal2025.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFiscalYAML), 0o644))

	fy, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2025, fy.Year)
	assert.Equal(t, "113.14", fy.UMADaily.String())
	assert.Len(t, fy.ISRBrackets, 2)
	assert.Len(t, fy.IMSSConcepts, 1)
	assert.Equal(t, 15, fy.MinAguinaldoDays)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFileRejectsInvalidTables(t *testing.T) {
	// Drop the tariff so validation trips.
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("year: 2025\numa_daily: 113.14\numa_monthly: 3439.46\numa_annual: 41273.52\nminimum_wage_daily: 278.80\nusd_mxn_rate: 20.00\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfig))
}
