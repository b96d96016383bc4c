package observability

import (
	"github.com/fulmenhq/gofulmen/telemetry"
)

// TelemetrySystem is the global telemetry system. CLI runs construct it
// disabled so counters are cheap no-ops unless an exporter is attached.
var TelemetrySystem *telemetry.System

// InitTelemetry initializes the telemetry system. Pass enabled=false for
// CLI runs without an exporter.
func InitTelemetry(enabled bool) error {
	config := &telemetry.Config{Enabled: enabled}

	sys, err := telemetry.NewSystem(config)
	if err != nil {
		return err
	}

	telemetry.SetGlobalSystem(sys)
	TelemetrySystem = sys
	return nil
}
