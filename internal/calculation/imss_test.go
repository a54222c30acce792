package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSBCIntegrationAndCap(t *testing.T) {
	imss := NewIMSSCalculator(testFiscalYear())

	t.Run("integrates the daily gross", func(t *testing.T) {
		got := imss.SBC(dec("657.89"))
		assert.Equal(t, "690.32", got.StringFixed(2))
	})

	t.Run("caps at 25 UMA", func(t *testing.T) {
		got := imss.SBC(dec("5000"))
		assert.Equal(t, "2828.50", got.StringFixed(2))
	})
}

func TestWorkerContribution(t *testing.T) {
	imss := NewIMSSCalculator(testFiscalYear())

	// Worker rates sum to 2.375%; on a 690.32 daily SBC the monthly base
	// is 20,985.728.
	got := imss.WorkerContribution(dec("690.32"))
	assert.Equal(t, "498.41", got.StringFixed(2))
}

func TestEmployerContribution(t *testing.T) {
	imss := NewIMSSCalculator(testFiscalYear())

	worker := imss.WorkerContribution(dec("690.32"))
	employer := imss.EmployerContribution(dec("690.32"))
	assert.True(t, employer.GreaterThan(worker),
		"employer share %s should exceed worker share %s", employer, worker)
}

func TestInfonavitEmployer(t *testing.T) {
	imss := NewIMSSCalculator(testFiscalYear())

	// 5% of the monthly SBC: 690.32 * 30.4 * 0.05.
	got := imss.InfonavitEmployer(dec("690.32"))
	assert.Equal(t, "1049.29", got.StringFixed(2))
}
