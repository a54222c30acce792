package compare

import (
	"github.com/shopspring/decimal"

	"github.com/jcroyoaun/compamx/internal/domain"
)

// PackageResult pairs a package's name with its full breakdown. Results
// keep the submission order of their inputs.
type PackageResult struct {
	Name        string                    `json:"name"`
	Calculation *domain.SalaryCalculation `json:"calculation"`
}

// FiscalMeta records the snapshot values a comparison was computed
// against, so a rendered report is reproducible.
type FiscalMeta struct {
	Year       int             `json:"year"`
	UMAMonthly decimal.Decimal `json:"umaMonthly"`
	USDMXNRate decimal.Decimal `json:"usdMXNRate"`
}

// ComparisonSet is the outcome of comparing a batch of packages: every
// breakdown in input order plus the winner by monthly adjusted net.
type ComparisonSet struct {
	Results   []PackageResult `json:"results"`
	BestIndex int             `json:"bestIndex"`
	Meta      FiscalMeta      `json:"meta"`
}

// Best returns the winning result.
func (s *ComparisonSet) Best() PackageResult {
	return s.Results[s.BestIndex]
}
