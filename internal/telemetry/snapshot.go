// Package telemetry builds the exportable dashboard snapshot.
package telemetry

import (
	"math"
	"strconv"
	"time"

	"drone-telemetry/internal/flightplan"
	"drone-telemetry/internal/geo"
	"drone-telemetry/internal/sim"
)

// Snapshot is the copy-to-clipboard export handed to the presentation layer.
// Coordinates are fixed six-decimal strings so the rendering side never has
// to worry about float formatting.
type Snapshot struct {
	Timestamp  string      `json:"timestamp"`
	Position   Position    `json:"position"`
	Telemetry  Readings    `json:"telemetry"`
	FlightPlan PlanSummary `json:"flightPlan"`
}

type Position struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type Readings struct {
	BatteryPct int          `json:"batteryPct"`
	SignalPct  int          `json:"signalPct"`
	SpeedMps   int          `json:"speedMps"`
	Heading    geo.Cardinal `json:"heading"`
}

type PlanSummary struct {
	Waypoints       int     `json:"waypoints"`
	TotalDistanceKm float64 `json:"totalDistanceKm"`
}

// Build renders the current state and plan into the fixed-precision export.
func Build(st sim.TelemetryState, plan *flightplan.Plan) Snapshot {
	return Snapshot{
		Timestamp: st.TS.UTC().Format(time.RFC3339),
		Position: Position{
			Latitude:  strconv.FormatFloat(st.Lat, 'f', 6, 64),
			Longitude: strconv.FormatFloat(st.Lon, 'f', 6, 64),
		},
		Telemetry: Readings{
			BatteryPct: int(math.Round(st.BatteryPct)),
			SignalPct:  int(math.Round(st.SignalPct)),
			SpeedMps:   int(math.Round(st.SpeedMps)),
			Heading:    st.HeadingCardinal,
		},
		FlightPlan: PlanSummary{
			Waypoints:       plan.Len(),
			TotalDistanceKm: math.Round(plan.TotalDistanceM()/10) / 100,
		},
	}
}
