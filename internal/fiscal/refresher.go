package fiscal

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Default schedules, in the fiscal timezone: Banxico publishes the FIX
// rate every business day around midday; the UMA changes once a year,
// so a weekly check is plenty.
const (
	DefaultBanxicoSchedule = "0 14 * * MON-FRI"
	DefaultINEGISchedule   = "0 9 * * MON"
	DefaultTimezone        = "America/Mexico_City"
)

// RefresherConfig controls the refresh cadence.
type RefresherConfig struct {
	BanxicoSchedule string
	INEGISchedule   string
	Timezone        string
}

func (c *RefresherConfig) withDefaults() RefresherConfig {
	out := *c
	if out.BanxicoSchedule == "" {
		out.BanxicoSchedule = DefaultBanxicoSchedule
	}
	if out.INEGISchedule == "" {
		out.INEGISchedule = DefaultINEGISchedule
	}
	if out.Timezone == "" {
		out.Timezone = DefaultTimezone
	}
	return out
}

// Refresher keeps the store's exchange rate and UMA values current by
// polling the official sources on a cron schedule. When a Postgres
// source is attached, fetched values are persisted too so restarts and
// sibling instances pick them up.
type Refresher struct {
	store   *Store
	source  *PostgresSource
	banxico *BanxicoClient
	inegi   *INEGIClient
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewRefresher wires a refresher. source may be nil for file-backed
// deployments.
func NewRefresher(store *Store, source *PostgresSource, banxico *BanxicoClient, inegi *INEGIClient, cfg RefresherConfig, logger *zap.Logger) (*Refresher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", cfg.Timezone, err)
	}

	r := &Refresher{
		store:   store,
		source:  source,
		banxico: banxico,
		inegi:   inegi,
		cron:    cron.New(cron.WithLocation(loc)),
		logger:  logger,
	}

	if _, err := r.cron.AddFunc(cfg.BanxicoSchedule, func() {
		if err := r.RefreshExchangeRate(context.Background()); err != nil {
			r.logger.Error("scheduled exchange rate refresh failed", zap.Error(err))
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid banxico schedule %q: %w", cfg.BanxicoSchedule, err)
	}

	if _, err := r.cron.AddFunc(cfg.INEGISchedule, func() {
		if err := r.RefreshUMA(context.Background()); err != nil {
			r.logger.Error("scheduled uma refresh failed", zap.Error(err))
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid inegi schedule %q: %w", cfg.INEGISchedule, err)
	}

	return r, nil
}

// Start begins scheduled refreshes.
func (r *Refresher) Start() {
	r.cron.Start()
	r.logger.Info("fiscal refresher started")
}

// Stop halts the schedule and waits for running jobs to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("fiscal refresher stopped")
}

// RunOnce refreshes both values immediately. Each failure is reported
// but does not stop the other refresh.
func (r *Refresher) RunOnce(ctx context.Context) error {
	var firstErr error
	if err := r.RefreshExchangeRate(ctx); err != nil {
		r.logger.Error("exchange rate refresh failed", zap.Error(err))
		firstErr = err
	}
	if err := r.RefreshUMA(ctx); err != nil {
		r.logger.Error("uma refresh failed", zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// RefreshExchangeRate fetches the USD/MXN rate and swaps it into the
// active snapshot.
func (r *Refresher) RefreshExchangeRate(ctx context.Context) error {
	rate, err := r.banxico.ExchangeRate(ctx)
	if err != nil {
		return err
	}
	if err := r.store.SetExchangeRate(rate); err != nil {
		return err
	}
	if r.source != nil {
		if err := r.source.SaveExchangeRate(ctx, rate); err != nil {
			return err
		}
	}
	return nil
}

// RefreshUMA fetches the UMA values and swaps them into the active
// snapshot.
func (r *Refresher) RefreshUMA(ctx context.Context) error {
	values, err := r.inegi.UMA(ctx)
	if err != nil {
		return err
	}
	if err := r.store.SetUMA(values.Daily, values.Monthly, values.Annual); err != nil {
		return err
	}
	if r.source != nil {
		if err := r.source.SaveUMA(ctx, values.Daily, values.Monthly, values.Annual); err != nil {
			return err
		}
	}
	return nil
}
