package metrics

import (
	"time"

	"github.com/reissuelens/reissuelens/internal/observability"
)

// Application-level metrics following Prometheus conventions
var (
	LookupsTotal  = "app_lookups_total"
	RetriesTotal  = "app_lookup_retries_total"
	RateWaitTotal = "app_rate_waits_total"
	RateWaitMs    = "app_rate_wait_duration_ms"
)

// RecordLookup records one resolved wantlist lookup with its outcome.
func RecordLookup(matched, failed bool) {
	status := "unmatched"
	switch {
	case failed:
		status = "failure"
	case matched:
		status = "matched"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			LookupsTotal,
			1,
			map[string]string{"status": status},
		)
	}
}

// RecordRetry records one rate-limit backoff retry.
func RecordRetry(source string) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			RetriesTotal,
			1,
			map[string]string{"source": source},
		)
	}
}

// RecordRateWait records a deliberate pacing wait against the shared window.
func RecordRateWait(reason string, delay time.Duration) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			RateWaitTotal,
			1,
			map[string]string{"reason": reason},
		)

		_ = observability.TelemetrySystem.Histogram(
			RateWaitMs,
			delay,
			map[string]string{"reason": reason},
		)
	}
}
