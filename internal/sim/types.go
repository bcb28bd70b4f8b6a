package sim

import (
	"time"

	"drone-telemetry/internal/geo"
)

// Phase tells whether the drone is still flying the plan or done with it.
type Phase string

const (
	PhaseEnRoute Phase = "en_route"
	PhaseArrived Phase = "arrived"
)

// TelemetryState is one published view of the simulated drone.
type TelemetryState struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	HeadingDeg      float64      `json:"headingDeg"`
	HeadingCardinal geo.Cardinal `json:"headingCardinal"`

	BatteryPct float64 `json:"batteryPct"`
	SignalPct  float64 `json:"signalPct"`
	SpeedMps   float64 `json:"speedMps"`

	Phase       Phase     `json:"phase"`
	TargetIndex int       `json:"targetIndex"`
	Ticking     bool      `json:"ticking"`
	TS          time.Time `json:"ts"`
	Warning     string    `json:"warning,omitempty"`
}
