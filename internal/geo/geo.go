// Package geo contains pure geographic computation helpers.
package geo

import "math"

// earthRadiusM is the mean Earth radius used for all great-circle math.
const earthRadiusM = 6371000.0

// Distance returns the great-circle (haversine) distance in meters between
// two points given in decimal degrees. The result is always >= 0.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	rLat1 := radians(lat1)
	rLat2 := radians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// Bearing returns the initial bearing in degrees from point 1 toward point 2,
// normalized to [0, 360).
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dLon := radians(lon2 - lon1)

	y := math.Sin(dLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLon)

	return math.Mod(math.Atan2(y, x)*180/math.Pi+360, 360)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
