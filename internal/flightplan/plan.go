// Package flightplan models the predicted flight path and the geometry
// derived from it.
package flightplan

import (
	"errors"

	"drone-telemetry/internal/geo"
)

// Waypoint is a fixed target coordinate on the predicted flight path.
type Waypoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Segment is the derived geometry of one consecutive waypoint pair.
type Segment struct {
	DistanceM float64  `json:"distanceM"`
	Midpoint  Waypoint `json:"midpoint"`
}

// ErrTooFewWaypoints is returned when a plan has fewer than two waypoints.
var ErrTooFewWaypoints = errors.New("flightplan: at least two waypoints required")

// Plan is an immutable ordered waypoint sequence plus per-segment geometry
// computed once from it. Rebuilding from the same waypoints yields the same
// plan; nothing here is mutated after New returns.
type Plan struct {
	waypoints []Waypoint
	segments  []Segment
	totalM    float64
}

// New precomputes the haversine distance and the arithmetic lat/lon midpoint
// for every consecutive waypoint pair. The midpoint is a plain average, not a
// geodesic midpoint; the paths modelled here span a few hundred meters.
func New(waypoints []Waypoint) (*Plan, error) {
	if len(waypoints) < 2 {
		return nil, ErrTooFewWaypoints
	}

	wps := make([]Waypoint, len(waypoints))
	copy(wps, waypoints)

	segments := make([]Segment, 0, len(wps)-1)
	total := 0.0
	for i := 0; i < len(wps)-1; i++ {
		a, b := wps[i], wps[i+1]
		d := geo.Distance(a.Lat, a.Lon, b.Lat, b.Lon)
		segments = append(segments, Segment{
			DistanceM: d,
			Midpoint: Waypoint{
				Lat: (a.Lat + b.Lat) / 2,
				Lon: (a.Lon + b.Lon) / 2,
			},
		})
		total += d
	}

	return &Plan{waypoints: wps, segments: segments, totalM: total}, nil
}

// Len returns the number of waypoints.
func (p *Plan) Len() int { return len(p.waypoints) }

// At returns the waypoint at index i.
func (p *Plan) At(i int) Waypoint { return p.waypoints[i] }

// Start returns the first waypoint.
func (p *Plan) Start() Waypoint { return p.waypoints[0] }

// End returns the last waypoint.
func (p *Plan) End() Waypoint { return p.waypoints[len(p.waypoints)-1] }

// Waypoints returns a copy of the waypoint sequence.
func (p *Plan) Waypoints() []Waypoint {
	out := make([]Waypoint, len(p.waypoints))
	copy(out, p.waypoints)
	return out
}

// Segments returns a copy of the derived segments.
func (p *Plan) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// TotalDistanceM returns the sum of all segment distances in meters.
func (p *Plan) TotalDistanceM() float64 { return p.totalM }

// DefaultWaypoints returns the fixed four-point demo path.
func DefaultWaypoints() []Waypoint {
	return []Waypoint{
		{Lat: 12.8238, Lon: 80.0421},
		{Lat: 12.8260, Lon: 80.0450},
		{Lat: 12.8295, Lon: 80.0445},
		{Lat: 12.8310, Lon: 80.0480},
	}
}

// Default returns the plan built from DefaultWaypoints.
func Default() *Plan {
	p, err := New(DefaultWaypoints())
	if err != nil {
		panic(err) // unreachable: the default path has four waypoints
	}
	return p
}
