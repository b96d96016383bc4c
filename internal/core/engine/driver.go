package engine

import (
	"context"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	"github.com/reissuelens/reissuelens/internal/core"
	"github.com/reissuelens/reissuelens/internal/metrics"
)

// TargetChecker resolves one wantlist target to a terminal result.
type TargetChecker interface {
	Check(ctx context.Context, target core.LookupTarget) *core.LookupResult
}

// Driver iterates the wantlist strictly in input order, one lookup at a
// time. The shared window assumes single-threaded access, so targets must
// not be resolved concurrently.
type Driver struct {
	Checker       TargetChecker
	Window        *Window
	MaxRequests   int
	ProgressEvery int
	Logger        *logging.Logger
	Clock         func() time.Time
}

// Run resolves every target and aggregates the results. Output order
// matches input order; per-target failures are counted, never fatal.
func (d *Driver) Run(ctx context.Context, targets []core.LookupTarget) *core.RunSummary {
	if ctx == nil {
		ctx = context.Background()
	}

	summary := &core.RunSummary{
		Results:   make([]*core.LookupResult, 0, len(targets)),
		Matched:   make([]*core.LookupResult, 0),
		StartedAt: d.now(),
	}

	for i, target := range targets {
		result := d.Checker.Check(ctx, target)
		summary.Results = append(summary.Results, result)
		if result.Matched {
			summary.Matched = append(summary.Matched, result)
		}
		if result.Failed {
			summary.Failures++
		}
		metrics.RecordLookup(result.Matched, result.Failed)

		d.reportProgress(i+1, len(targets), summary.StartedAt)
	}

	summary.FinishedAt = d.now()
	return summary
}

// reportProgress is observational only; no control flow depends on it.
func (d *Driver) reportProgress(processed, total int, startedAt time.Time) {
	if d.Logger == nil || d.ProgressEvery <= 0 {
		return
	}
	if processed%d.ProgressEvery != 0 && processed != total {
		return
	}

	fields := []zap.Field{
		zap.Int("processed", processed),
		zap.Int("total", total),
		zap.Duration("elapsed", d.now().Sub(startedAt)),
	}
	if d.Window != nil {
		fields = append(fields,
			zap.Int("window_occupancy", d.Window.InWindow()),
			zap.Int("budget_remaining", d.Window.Remaining(d.MaxRequests)),
		)
	}
	d.Logger.Info("Scan progress", fields...)
}

func (d *Driver) now() time.Time {
	if d != nil && d.Clock != nil {
		return d.Clock()
	}
	return time.Now().UTC()
}
