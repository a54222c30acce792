package fiscal

import (
	"sync/atomic"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jcroyoaun/compamx/internal/domain"
)

// Store holds the active fiscal-year snapshot. Readers always see a
// complete, validated snapshot: refreshes build a new FiscalYear and
// swap the pointer atomically, so an in-flight comparison keeps the
// tables it started with.
type Store struct {
	active atomic.Pointer[domain.FiscalYear]
	logger *zap.Logger
}

// NewStore creates an empty store.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// Load validates a snapshot and makes it the active one.
func (s *Store) Load(fy *domain.FiscalYear) error {
	if err := fy.Validate(); err != nil {
		return err
	}
	s.active.Store(fy)
	s.logger.Info("fiscal year snapshot loaded", zap.Int("year", fy.Year))
	return nil
}

// Active returns the current snapshot.
func (s *Store) Active() (*domain.FiscalYear, error) {
	fy := s.active.Load()
	if fy == nil {
		return nil, domain.NewConfigError("fiscal_year", "no fiscal year loaded")
	}
	return fy, nil
}

// SetExchangeRate swaps in a copy of the active snapshot with a fresh
// USD/MXN rate.
func (s *Store) SetExchangeRate(rate decimal.Decimal) error {
	fy, err := s.Active()
	if err != nil {
		return err
	}
	next := *fy
	next.USDMXNRate = rate
	return s.Load(&next)
}

// SetUMA swaps in a copy of the active snapshot with fresh UMA values.
func (s *Store) SetUMA(daily, monthly, annual decimal.Decimal) error {
	fy, err := s.Active()
	if err != nil {
		return err
	}
	next := *fy
	next.UMADaily = daily
	next.UMAMonthly = monthly
	next.UMAAnnual = annual
	return s.Load(&next)
}
