package compare

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jcroyoaun/compamx/internal/calculation"
	"github.com/jcroyoaun/compamx/internal/domain"
)

// Engine compares compensation packages against one fiscal-year
// snapshot. Packages are independent, so they are computed in parallel;
// results always come back in submission order.
type Engine struct {
	fy     *domain.FiscalYear
	logger *zap.Logger
}

// NewEngine creates an engine bound to a fiscal year.
func NewEngine(fy *domain.FiscalYear, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{fy: fy, logger: logger}
}

// Compare computes every package and selects the best by monthly
// adjusted net. A failure in any package fails the whole comparison:
// a report with holes in it would invite a bad decision. Ties go to
// the earliest package in the submission.
func (e *Engine) Compare(ctx context.Context, pkgs []domain.PackageInput) (*ComparisonSet, error) {
	if len(pkgs) == 0 {
		return nil, domain.NewInputError("packages", "at least one package is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	calc := calculation.NewPackageCalculator(e.fy)
	results := make([]*domain.SalaryCalculation, len(pkgs))
	errs := make([]error, len(pkgs))

	var wg sync.WaitGroup
	for i := range pkgs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = calc.Calculate(&pkgs[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			e.logger.Warn("package calculation failed",
				zap.String("package", pkgs[i].Name),
				zap.Error(err))
			return nil, fmt.Errorf("package %q: %w", pkgs[i].Name, err)
		}
	}

	set := &ComparisonSet{
		Results: make([]PackageResult, len(pkgs)),
		Meta: FiscalMeta{
			Year:       e.fy.Year,
			UMAMonthly: e.fy.UMAMonthly,
			USDMXNRate: e.fy.USDMXNRate,
		},
	}
	for i, pkg := range pkgs {
		set.Results[i] = PackageResult{Name: pkg.Name, Calculation: results[i]}
		if results[i].MonthlyAdjusted.GreaterThan(results[set.BestIndex].MonthlyAdjusted) {
			set.BestIndex = i
		}
	}

	e.logger.Info("comparison complete",
		zap.Int("packages", len(pkgs)),
		zap.String("best", set.Best().Name))
	return set, nil
}
