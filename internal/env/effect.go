// Package env shapes the simulated telemetry once per tick.
package env

// Telemetry is the slice of simulation state the effects are allowed to touch.
type Telemetry struct {
	Lat        float64
	Lon        float64
	BatteryPct float64
	SignalPct  float64
}

// Effect is an interface for applying a per-tick effect to the telemetry.
// Each implementation can adjust one reading based on the position or the
// readings produced by earlier effects.
type Effect interface {
	// Apply takes the telemetry after the movement step and returns the
	// shaped telemetry and an optional warning message.
	Apply(t Telemetry) (Telemetry, string)
}

// Chain is a composite effect that applies multiple effects in sequence.
type Chain struct {
	Effects []Effect
}

// Apply applies all effects in the chain, in order. The output of one effect
// becomes the input to the next; the last non-empty warning is returned.
func (c Chain) Apply(t Telemetry) (Telemetry, string) {
	var warning string
	for _, effect := range c.Effects {
		shaped, w := effect.Apply(t)
		if w != "" {
			warning = w
		}
		t = shaped
	}
	return t, warning
}

// NoOp is an effect that does nothing.
var NoOp Effect = noOpEffect{}

type noOpEffect struct{}

func (noOpEffect) Apply(t Telemetry) (Telemetry, string) {
	return t, ""
}
