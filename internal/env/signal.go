package env

import "drone-telemetry/internal/geo"

// SignalFade models the control-link quality as a function of the haversine
// distance from the launch point. Quality starts at 100 percent and decays
// linearly, never dropping below the configured floor.
type SignalFade struct {
	// OriginLat and OriginLon locate the ground station (the launch point)
	OriginLat float64
	OriginLon float64
	// PctPerKm is the attenuation slope in percent per kilometer
	PctPerKm float64
	// FloorPct is the minimum reported quality
	FloorPct float64
}

// Apply recomputes the signal reading from the current position.
func (s SignalFade) Apply(t Telemetry) (Telemetry, string) {
	d := geo.Distance(s.OriginLat, s.OriginLon, t.Lat, t.Lon)
	pct := 100 - s.PctPerKm*d/1000
	if pct < s.FloorPct {
		pct = s.FloorPct
	}
	t.SignalPct = pct
	return t, ""
}

// DefaultSignalFade returns a fade anchored at the given launch point with a
// slope sized so the demo path stays comfortably above the floor.
func DefaultSignalFade(originLat, originLon float64) SignalFade {
	return SignalFade{
		OriginLat: originLat,
		OriginLon: originLon,
		PctPerKm:  12,
		FloorPct:  35,
	}
}
