package env

import "fmt"

// BatteryDrain decreases the battery by a fixed amount per tick.
// The level never goes below zero.
type BatteryDrain struct {
	// PerTickPct is the battery percentage consumed by one tick
	PerTickPct float64
	// WarnBelowPct emits a warning once the level drops under this threshold
	WarnBelowPct float64
}

// Apply drains the battery and floors it at zero. A warning is returned
// while the level sits below the configured threshold.
func (b BatteryDrain) Apply(t Telemetry) (Telemetry, string) {
	t.BatteryPct -= b.PerTickPct
	if t.BatteryPct < 0 {
		t.BatteryPct = 0
	}

	if b.WarnBelowPct > 0 && t.BatteryPct < b.WarnBelowPct {
		return t, fmt.Sprintf("battery: %.1f%% below %.0f%% threshold", t.BatteryPct, b.WarnBelowPct)
	}
	return t, ""
}

// DefaultBatteryDrain returns a drain matching one percent every two ticks
// with a low-battery warning at 20 percent.
func DefaultBatteryDrain() BatteryDrain {
	return BatteryDrain{PerTickPct: 0.5, WarnBelowPct: 20}
}
