package geo

import "math"

// Cardinal is one of the eight compass labels.
type Cardinal string

const (
	North     Cardinal = "N"
	NorthEast Cardinal = "NE"
	East      Cardinal = "E"
	SouthEast Cardinal = "SE"
	South     Cardinal = "S"
	SouthWest Cardinal = "SW"
	West      Cardinal = "W"
	NorthWest Cardinal = "NW"
)

var cardinals = [8]Cardinal{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// CardinalFromBearing maps a bearing in degrees to the nearest of the eight
// 45 degree compass sectors.
func CardinalFromBearing(deg float64) Cardinal {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return cardinals[int((deg+22.5)/45.0)%8]
}
