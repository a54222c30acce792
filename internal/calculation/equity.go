package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/jcroyoaun/compamx/internal/domain"
)

const vestingYears = 4

var four = decimal.NewFromInt(vestingYears)

// ProjectEquity builds the vesting schedule for an equity grant. The
// initial grant vests in four equal annual tranches. Each anniversary
// adds a refresher that itself vests over four years, so refresher
// income stacks: nothing in year one, one tranche in year two, two in
// year three and so on. Refreshers are uncertain, so the projection
// carries the elected low and high bounds side by side instead of
// collapsing them into an average.
func ProjectEquity(e *domain.EquityGrant, usdmxn decimal.Decimal) (*domain.EquityProjection, error) {
	if e.InitialGrantUSD.LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewInputError("equity.initial_grant_usd", "must be positive")
	}

	refMin, refMax := decimal.Zero, decimal.Zero
	if e.Refresher != nil {
		refMin, refMax = e.Refresher.MinUSD, e.Refresher.MaxUSD
		if refMin.IsNegative() || refMax.LessThan(refMin) {
			return nil, domain.NewInputError("equity.refresher", "range must satisfy 0 <= min <= max")
		}
	}

	initialTranche := e.InitialGrantUSD.Div(four)
	schedule := make([]domain.YearlyVest, 0, vestingYears)
	for year := 1; year <= vestingYears; year++ {
		tranches := decimal.NewFromInt(int64(year - 1))
		minVest := refMin.Div(four).Mul(tranches)
		maxVest := refMax.Div(four).Mul(tranches)

		totalMin := initialTranche.Add(minVest).Round(2)
		totalMax := initialTranche.Add(maxVest).Round(2)
		schedule = append(schedule, domain.YearlyVest{
			Year:            year,
			InitialGrantUSD: initialTranche.Round(2),
			RefresherMinUSD: minVest.Round(2),
			RefresherMaxUSD: maxVest.Round(2),
			TotalMinUSD:     totalMin,
			TotalMaxUSD:     totalMax,
			TotalMinMXN:     totalMin.Mul(usdmxn).Round(2),
			TotalMaxMXN:     totalMax.Mul(usdmxn).Round(2),
		})
	}

	return &domain.EquityProjection{
		InitialGrantUSD: e.InitialGrantUSD,
		RefresherMinUSD: refMin,
		RefresherMaxUSD: refMax,
		VestingYears:    vestingYears,
		Schedule:        schedule,
	}, nil
}
