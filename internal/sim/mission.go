package sim

import (
	"drone-telemetry/internal/env"
	"drone-telemetry/internal/flightplan"
	"drone-telemetry/internal/geo"
	"drone-telemetry/internal/geometry/vector"
)

// mission holds the actor-owned simulation state: current position and
// readings, the next target waypoint index, and the recorded track.
type mission struct {
	plan    *flightplan.Plan
	effects env.Effect
	stepDeg float64
	tolDeg  float64

	lat, lon   float64
	headingDeg float64
	heading    geo.Cardinal
	batteryPct float64
	signalPct  float64
	speedMps   float64
	targetIdx  int
	phase      Phase
	warning    string

	// track records every visited position, starting with the first waypoint.
	// Append-only; frozen once the final waypoint is reached.
	track []flightplan.Waypoint
}

func newMission(plan *flightplan.Plan, effects env.Effect, stepDeg, tolDeg float64) *mission {
	start := plan.Start()
	return &mission{
		plan:       plan,
		effects:    effects,
		stepDeg:    stepDeg,
		tolDeg:     tolDeg,
		lat:        start.Lat,
		lon:        start.Lon,
		heading:    geo.North,
		batteryPct: 100,
		signalPct:  100,
		targetIdx:  1,
		phase:      PhaseEnRoute,
		track:      []flightplan.Waypoint{start},
	}
}

// step advances the drone by one tick of dt seconds.
//
// Movement is a flat-earth approximation: the delta toward the target is taken
// directly in degree space and the step size is a fixed degree amount. That is
// only valid because plans span a few hundred meters; reported distances and
// bearings still use the spherical formulas in the geo package. The mismatch
// is deliberate, do not reconcile the two.
func (m *mission) step(dt float64) {
	if m.phase == PhaseArrived {
		return
	}

	target := m.plan.At(m.targetIdx)
	delta := vector.Vec2{X: target.Lon - m.lon, Y: target.Lat - m.lat}
	prevLat, prevLon := m.lat, m.lon

	if delta.Norm() < m.tolDeg {
		// Close enough: snap onto the waypoint and aim at the next one.
		m.lat, m.lon = target.Lat, target.Lon
		m.track = append(m.track, target)
		m.targetIdx++
		if m.targetIdx >= m.plan.Len() {
			m.phase = PhaseArrived
		}
	} else {
		dir := delta.Normalize()
		m.lon += dir.X * m.stepDeg
		m.lat += dir.Y * m.stepDeg
		m.track = append(m.track, flightplan.Waypoint{Lat: m.lat, Lon: m.lon})
	}

	moved := geo.Distance(prevLat, prevLon, m.lat, m.lon)
	if moved > 0 {
		m.headingDeg = geo.Bearing(prevLat, prevLon, m.lat, m.lon)
		m.heading = geo.CardinalFromBearing(m.headingDeg)
	}
	if dt > 0 {
		m.speedMps = moved / dt
	}

	shaped, warning := m.effects.Apply(env.Telemetry{
		Lat:        m.lat,
		Lon:        m.lon,
		BatteryPct: m.batteryPct,
		SignalPct:  m.signalPct,
	})
	m.batteryPct = shaped.BatteryPct
	m.signalPct = shaped.SignalPct
	m.warning = warning

	if m.phase == PhaseArrived {
		m.speedMps = 0
	}
}

func (m *mission) snapshotTrack() []flightplan.Waypoint {
	out := make([]flightplan.Waypoint, len(m.track))
	copy(out, m.track)
	return out
}
