package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

// FlagReconciler re-derives stored shift holiday flags over a date range.
type FlagReconciler interface {
	ReconcileHolidayFlags(ctx context.Context, start, end time.Time) (int, error)
}

type HolidayJobs struct {
	reconciler FlagReconciler
	interval   time.Duration
	windowDays int
	now        func() time.Time
}

func NewHolidayJobs(reconciler FlagReconciler, interval time.Duration, windowDays int) *HolidayJobs {
	return &HolidayJobs{
		reconciler: reconciler,
		interval:   interval,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// RegisterJobs adds the reconciliation job unless the interval is zero.
func (j *HolidayJobs) RegisterJobs(scheduler *Scheduler) {
	if j.interval <= 0 {
		slog.Info("Cron: holiday flag sync disabled")
		return
	}
	scheduler.AddJob("sync_holiday_flags", j.interval, j.SyncHolidayFlags)
}

// Window is the range reconciled on each run: windowDays back from today
// through windowDays ahead.
func (j *HolidayJobs) Window() (start, end time.Time) {
	n := j.now()
	today := worktime.Day(n.Year(), n.Month(), n.Day())
	return today.AddDate(0, 0, -j.windowDays), today.AddDate(0, 0, j.windowDays)
}

func (j *HolidayJobs) SyncHolidayFlags(ctx context.Context) error {
	start, end := j.Window()
	changed, err := j.reconciler.ReconcileHolidayFlags(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to reconcile holiday flags: %w", err)
	}
	if changed > 0 {
		slog.Info("Cron: holiday flags reconciled",
			"start", worktime.FormatDate(start),
			"end", worktime.FormatDate(end),
			"changed", changed,
		)
	}
	return nil
}
