package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/metrics"
	payrollService "github.com/cmlabs-hris/launa-backend-go/internal/service/payroll"
)

// Purger drops expired entries from an in-process cache.
type Purger interface {
	Purge() int
}

type PayrollJobs struct {
	shiftRepo  payroll.ShiftRepository
	calculator *payrollService.Calculator
	transactor database.Transactor
	cache      Purger
}

// NewPayrollJobs wires the maintenance jobs. cache may be nil when the
// cache is external and expires keys itself.
func NewPayrollJobs(
	shiftRepo payroll.ShiftRepository,
	calculator *payrollService.Calculator,
	transactor database.Transactor,
	cache Purger,
) *PayrollJobs {
	return &PayrollJobs{
		shiftRepo:  shiftRepo,
		calculator: calculator,
		transactor: transactor,
		cache:      cache,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, reconcileInterval time.Duration) {
	scheduler.AddJob("reconcile_shift_derived_fields", reconcileInterval, j.ReconcileDerivedFields)
	if j.cache != nil {
		scheduler.AddJob("purge_expired_cache_entries", 10*time.Minute, j.PurgeExpiredCache)
	}
}

// ReconcileDerivedFields re-derives every stored shift and rewrites the rows
// whose wage, bonus, total or pay period no longer match their inputs.
func (j *PayrollJobs) ReconcileDerivedFields(ctx context.Context) error {
	shifts, err := j.shiftRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list shifts: %w", err)
	}

	var drifted []payroll.Shift
	for _, s := range shifts {
		if j.calculator.Drifted(s) {
			drifted = append(drifted, j.calculator.Derive(s))
		}
	}

	if len(drifted) == 0 {
		slog.Info("Cron: no drifted shifts", "checked", len(shifts))
		return nil
	}

	fixed := 0
	err = j.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, s := range drifted {
			if err := j.shiftRepo.Update(ctx, s); err != nil {
				return fmt.Errorf("failed to rewrite shift %s: %w", s.ID, err)
			}
			fixed++
		}
		return nil
	})
	metrics.AddReconciled(fixed)
	if err != nil {
		return err
	}

	slog.Info("Cron: reconciled drifted shifts", "checked", len(shifts), "fixed", fixed)
	return nil
}

func (j *PayrollJobs) PurgeExpiredCache(ctx context.Context) error {
	if n := j.cache.Purge(); n > 0 {
		slog.Debug("Cron: purged expired cache entries", "count", n)
	}
	return nil
}
