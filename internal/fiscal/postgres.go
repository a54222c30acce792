package fiscal

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jcroyoaun/compamx/internal/domain"
)

// PostgresSource loads fiscal-year snapshots from Postgres and persists
// values fetched by the refresher, so a fleet of instances shares one
// authoritative copy of the tables.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to the given database URL and pings it.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresSource{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresSource) Close() {
	s.pool.Close()
}

// ActiveFiscalYear loads the active snapshot and all of its tables.
func (s *PostgresSource) ActiveFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	const query = `
		SELECT id, year, uma_daily, uma_monthly, uma_annual, minimum_wage_daily,
		       COALESCE(usd_mxn_rate, 20.00),
		       sbc_cap_uma, sbc_integration_factor,
		       aguinaldo_exempt_uma, vacation_premium_exempt_uma,
		       pantry_voucher_uma_cap, savings_fund_uma_cap_factor,
		       savings_fund_max_percent, min_aguinaldo_days, infonavit_employer_rate
		FROM fiscal_years
		WHERE is_active = true
		LIMIT 1`

	var id int
	fy := &domain.FiscalYear{}
	err := s.pool.QueryRow(ctx, query).Scan(
		&id, &fy.Year, &fy.UMADaily, &fy.UMAMonthly, &fy.UMAAnnual, &fy.MinimumWageDaily,
		&fy.USDMXNRate,
		&fy.SBCCapUMA, &fy.SBCIntegrationFactor,
		&fy.AguinaldoExemptUMA, &fy.VacationPremiumExemptUMA,
		&fy.PantryVoucherUMACap, &fy.SavingsFundUMACapFactor,
		&fy.SavingsFundMaxPercent, &fy.MinAguinaldoDays, &fy.InfonavitEmployerRate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewConfigError("fiscal_years", "no active fiscal year")
		}
		return nil, fmt.Errorf("failed to load fiscal year: %w", err)
	}

	if fy.ISRBrackets, err = s.isrBrackets(ctx, id); err != nil {
		return nil, err
	}
	if fy.SubsidyBrackets, err = s.subsidyBrackets(ctx, id); err != nil {
		return nil, err
	}
	if fy.RESICOBrackets, err = s.resicoBrackets(ctx, id); err != nil {
		return nil, err
	}
	if fy.IMSSConcepts, err = s.imssConcepts(ctx, id); err != nil {
		return nil, err
	}

	if err := fy.Validate(); err != nil {
		return nil, err
	}
	return fy, nil
}

func (s *PostgresSource) isrBrackets(ctx context.Context, fiscalYearID int) ([]domain.ISRBracket, error) {
	const query = `
		SELECT lower_limit, upper_limit, fixed_quota, marginal_rate
		FROM isr_brackets
		WHERE fiscal_year_id = $1
		ORDER BY lower_limit`

	rows, err := s.pool.Query(ctx, query, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ISR brackets: %w", err)
	}
	defer rows.Close()

	var brackets []domain.ISRBracket
	for rows.Next() {
		var b domain.ISRBracket
		if err := rows.Scan(&b.LowerLimit, &b.UpperLimit, &b.FixedQuota, &b.MarginalRate); err != nil {
			return nil, fmt.Errorf("failed to scan ISR bracket: %w", err)
		}
		brackets = append(brackets, b)
	}
	return brackets, rows.Err()
}

func (s *PostgresSource) subsidyBrackets(ctx context.Context, fiscalYearID int) ([]domain.SubsidyBracket, error) {
	const query = `
		SELECT lower_limit, upper_limit, credit
		FROM subsidy_brackets
		WHERE fiscal_year_id = $1
		ORDER BY lower_limit`

	rows, err := s.pool.Query(ctx, query, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subsidy brackets: %w", err)
	}
	defer rows.Close()

	var brackets []domain.SubsidyBracket
	for rows.Next() {
		var b domain.SubsidyBracket
		if err := rows.Scan(&b.LowerLimit, &b.UpperLimit, &b.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan subsidy bracket: %w", err)
		}
		brackets = append(brackets, b)
	}
	return brackets, rows.Err()
}

func (s *PostgresSource) resicoBrackets(ctx context.Context, fiscalYearID int) ([]domain.RESICOBracket, error) {
	const query = `
		SELECT upper_limit, rate
		FROM resico_brackets
		WHERE fiscal_year_id = $1
		ORDER BY upper_limit`

	rows, err := s.pool.Query(ctx, query, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to load RESICO brackets: %w", err)
	}
	defer rows.Close()

	var brackets []domain.RESICOBracket
	for rows.Next() {
		var b domain.RESICOBracket
		if err := rows.Scan(&b.UpperLimit, &b.Rate); err != nil {
			return nil, fmt.Errorf("failed to scan RESICO bracket: %w", err)
		}
		brackets = append(brackets, b)
	}
	return brackets, rows.Err()
}

func (s *PostgresSource) imssConcepts(ctx context.Context, fiscalYearID int) ([]domain.IMSSConcept, error) {
	const query = `
		SELECT concept_name, worker_rate, employer_rate, base_cap_uma
		FROM imss_concepts
		WHERE fiscal_year_id = $1
		ORDER BY concept_name`

	rows, err := s.pool.Query(ctx, query, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to load IMSS concepts: %w", err)
	}
	defer rows.Close()

	var concepts []domain.IMSSConcept
	for rows.Next() {
		var c domain.IMSSConcept
		if err := rows.Scan(&c.Name, &c.WorkerRate, &c.EmployerRate, &c.BaseCapUMA); err != nil {
			return nil, fmt.Errorf("failed to scan IMSS concept: %w", err)
		}
		concepts = append(concepts, c)
	}
	return concepts, rows.Err()
}

// SaveExchangeRate persists a freshly fetched USD/MXN rate on the
// active fiscal year.
func (s *PostgresSource) SaveExchangeRate(ctx context.Context, rate decimal.Decimal) error {
	const query = `
		UPDATE fiscal_years
		SET usd_mxn_rate = $1, rate_updated_at = NOW()
		WHERE is_active = true`

	tag, err := s.pool.Exec(ctx, query, rate)
	if err != nil {
		return fmt.Errorf("failed to save exchange rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewConfigError("fiscal_years", "no active fiscal year to update")
	}
	return nil
}

// SaveUMA persists freshly fetched UMA values on the active fiscal year.
func (s *PostgresSource) SaveUMA(ctx context.Context, daily, monthly, annual decimal.Decimal) error {
	const query = `
		UPDATE fiscal_years
		SET uma_daily = $1, uma_monthly = $2, uma_annual = $3, uma_updated_at = NOW()
		WHERE is_active = true`

	tag, err := s.pool.Exec(ctx, query, daily, monthly, annual)
	if err != nil {
		return fmt.Errorf("failed to save UMA values: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewConfigError("fiscal_years", "no active fiscal year to update")
	}
	return nil
}
