package engine

import (
	"context"
	"time"
)

// NoObservedRemaining marks a WaitIfNeeded call with no authoritative
// remaining-count from the service.
const NoObservedRemaining = -1

// Window is a sliding-window request tracker. It reconstructs the remaining
// request budget from local timestamp history when the service does not
// report one, and trusts the service's reported count when it does.
//
// One Window instance is owned by the scan wiring for the lifetime of a run.
// Access is single-threaded; a concurrent redesign would need to serialize
// the purge-then-read sequence.
type Window struct {
	Duration      time.Duration
	LowWater      int
	Buffer        time.Duration
	FallbackDelay time.Duration
	Clock         func() time.Time
	Sleep         func(ctx context.Context, d time.Duration) error

	stamps []time.Time
}

// Record appends the current time to the window.
func (w *Window) Record() {
	w.stamps = append(w.stamps, w.now())
}

// InWindow purges entries older than the window duration and returns the
// count of retained entries.
func (w *Window) InWindow() int {
	w.purge()
	return len(w.stamps)
}

// Remaining returns how many more requests may be issued before breaching
// maxRequests within the window. Never negative.
func (w *Window) Remaining(maxRequests int) int {
	remaining := maxRequests - w.InWindow()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// WaitIfNeeded suspends until issuing another request is safe. When
// observed >= 0 it is taken as the service's authoritative remaining count;
// otherwise the locally computed remaining is used. Returns the duration
// waited. A cancelled context interrupts the wait without touching the
// timestamp sequence.
func (w *Window) WaitIfNeeded(ctx context.Context, maxRequests int, observed int) (time.Duration, error) {
	remaining := observed
	if remaining < 0 {
		remaining = w.Remaining(maxRequests)
	}
	if remaining > w.LowWater {
		return 0, nil
	}

	delay := w.FallbackDelay
	if len(w.stamps) > 0 {
		// Wait until the oldest retained request exits the window,
		// plus the safety buffer.
		oldest := w.stamps[0]
		delay = oldest.Add(w.Duration).Sub(w.now()) + w.Buffer
		if delay < w.Buffer {
			delay = w.Buffer
		}
	}
	if delay <= 0 {
		return 0, nil
	}

	if err := w.sleep(ctx, delay); err != nil {
		return 0, err
	}
	w.purge()
	return delay, nil
}

func (w *Window) purge() {
	cutoff := w.now().Add(-w.Duration)
	idx := 0
	for idx < len(w.stamps) && !w.stamps[idx].After(cutoff) {
		idx++
	}
	if idx > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[idx:]...)
	}
}

func (w *Window) now() time.Time {
	if w != nil && w.Clock != nil {
		return w.Clock()
	}
	return time.Now().UTC()
}

func (w *Window) sleep(ctx context.Context, d time.Duration) error {
	if w != nil && w.Sleep != nil {
		return w.Sleep(ctx, d)
	}
	if ctx == nil {
		ctx = context.Background()
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
