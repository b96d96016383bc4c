package engine

import (
	"context"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reissuelens/reissuelens/internal/core"
	"github.com/reissuelens/reissuelens/internal/core/discogs"
	"github.com/reissuelens/reissuelens/internal/metrics"
)

const lookupSource = "discogs"

// Source exposes the catalog's two read operations.
type Source interface {
	Release(ctx context.Context, id int) (*discogs.Release, error)
	MasterVersions(ctx context.Context, masterID int) (*discogs.VersionsPage, error)
}

// Lookup resolves one target through the release -> master -> versions
// chain, gating every call on the shared rate window and retrying
// rate-limit rejections with bounded exponential backoff.
type Lookup struct {
	Source         Source
	Window         *Window
	MaxRequests    int
	MaxRetries     int
	BaseDelay      time.Duration
	ThresholdYear  int
	ReleaseURLBase string
	ToolVersion    string
	Logger         *logging.Logger
	Clock          func() time.Time
	Sleep          func(ctx context.Context, d time.Duration) error
}

// Check resolves one target. Failures are contained: every outcome,
// including exhausted retries and non-retryable errors, is a terminal
// LookupResult — never an aborted batch.
func (l *Lookup) Check(ctx context.Context, target core.LookupTarget) *core.LookupResult {
	if ctx == nil {
		ctx = context.Background()
	}

	requestedAt := l.now()
	attempts := 0

	release, err := fetchWithRetry(ctx, l, &attempts, func(ctx context.Context) (*discogs.Release, int, error) {
		rel, err := l.Source.Release(ctx, target.ReleaseID)
		if err != nil {
			return nil, NoObservedRemaining, err
		}
		return rel, rel.RateRemaining, nil
	})
	if err != nil {
		return l.failedResult(target, requestedAt, attempts, err)
	}

	if release.MasterID <= 0 {
		// A release without a master work has no alternate editions to
		// inspect. Normal outcome, not an error.
		return l.result(target, requestedAt, attempts, 0, nil, "no master release")
	}

	page, err := fetchWithRetry(ctx, l, &attempts, func(ctx context.Context) (*discogs.VersionsPage, int, error) {
		versions, err := l.Source.MasterVersions(ctx, release.MasterID)
		if err != nil {
			return nil, NoObservedRemaining, err
		}
		return versions, versions.RateRemaining, nil
	})
	if err != nil {
		return l.failedResult(target, requestedAt, attempts, err)
	}

	candidates := Classify(page.Versions, l.ThresholdYear, l.ReleaseURLBase)
	return l.result(target, requestedAt, attempts, release.MasterID, candidates, "")
}

// fetchWithRetry runs one gate/call/record/backoff protocol step. Each
// attempt waits on the shared window first; on success the request is
// recorded and, when the response carried an authoritative remaining count,
// the window is consulted again to pace the next call pre-emptively.
// Rate-limit rejections back off baseDelay * 2^attempt up to maxRetries;
// any other error propagates immediately.
func fetchWithRetry[T any](ctx context.Context, l *Lookup, attempts *int, fetch func(ctx context.Context) (T, int, error)) (T, error) {
	var zero T

	for attempt := 0; ; attempt++ {
		*attempts++

		waited, err := l.Window.WaitIfNeeded(ctx, l.MaxRequests, NoObservedRemaining)
		if err != nil {
			return zero, err
		}
		if waited > 0 {
			metrics.RecordRateWait("local_estimate", waited)
		}

		value, observed, err := fetch(ctx)
		if err == nil {
			l.Window.Record()
			if observed >= 0 {
				waited, err := l.Window.WaitIfNeeded(ctx, l.MaxRequests, observed)
				if err != nil {
					return zero, err
				}
				if waited > 0 {
					metrics.RecordRateWait("service_reported", waited)
				}
			}
			return value, nil
		}

		if !discogs.IsRateLimited(err) || attempt >= l.MaxRetries {
			return zero, err
		}

		delay := l.BaseDelay << attempt
		metrics.RecordRetry(lookupSource)
		if l.Logger != nil {
			l.Logger.Debug("Rate limited, backing off",
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", l.MaxRetries),
				zap.Duration("delay", delay),
			)
		}
		if err := l.sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
}

func (l *Lookup) result(target core.LookupTarget, requestedAt time.Time, attempts, masterID int, candidates []core.VersionCandidate, message string) *core.LookupResult {
	return &core.LookupResult{
		ReleaseID:        target.ReleaseID,
		Artist:           target.Artist,
		Title:            target.Title,
		Matched:          len(candidates) > 0,
		MatchingVersions: candidates,
		MasterID:         masterID,
		Message:          message,
		Provenance: core.Provenance{
			LookupID:    uuid.New().String(),
			RequestedAt: requestedAt,
			ResolvedAt:  l.now(),
			Source:      lookupSource,
			Attempts:    attempts,
			ToolVersion: l.ToolVersion,
		},
	}
}

func (l *Lookup) failedResult(target core.LookupTarget, requestedAt time.Time, attempts int, err error) *core.LookupResult {
	if l.Logger != nil {
		l.Logger.Warn("Lookup failed",
			zap.Int("release_id", target.ReleaseID),
			zap.String("artist", target.Artist),
			zap.Error(err),
		)
	}

	result := l.result(target, requestedAt, attempts, 0, nil, err.Error())
	result.Failed = true
	return result
}

func (l *Lookup) now() time.Time {
	if l != nil && l.Clock != nil {
		return l.Clock()
	}
	return time.Now().UTC()
}

func (l *Lookup) sleep(ctx context.Context, d time.Duration) error {
	if l != nil && l.Sleep != nil {
		return l.Sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
