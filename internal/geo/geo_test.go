package geo

import (
	"math"
	"testing"
)

func TestDistanceZeroAndSymmetry(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{12.8238, 80.0421},
		{-33.8688, 151.2093},
		{89.9, -179.9},
	}

	for _, p := range points {
		if d := Distance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Distance(%v, %v) to itself = %v, want 0", p[0], p[1], d)
		}
	}

	for i, a := range points {
		for _, b := range points[i+1:] {
			ab := Distance(a[0], a[1], b[0], b[1])
			ba := Distance(b[0], b[1], a[0], a[1])
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("Distance not symmetric: %v vs %v", ab, ba)
			}
			if ab < 0 {
				t.Errorf("Distance negative: %v", ab)
			}
		}
	}
}

func TestDistanceGolden(t *testing.T) {
	// First leg of the demo flight plan.
	got := Distance(12.8238, 80.0421, 12.8260, 80.0450)
	want := 398.376
	if math.Abs(got-want) > 1.0 {
		t.Errorf("Distance = %.3f m, want %.3f m (+-1 m)", got, want)
	}
}

func TestBearingRange(t *testing.T) {
	lats := []float64{-80, -12.5, 0, 12.8238, 45, 80}
	lons := []float64{-170, -80.0421, 0, 80.0421, 179}

	for _, lat1 := range lats {
		for _, lon1 := range lons {
			for _, lat2 := range lats {
				for _, lon2 := range lons {
					b := Bearing(lat1, lon1, lat2, lon2)
					if b < 0 || b >= 360 {
						t.Fatalf("Bearing(%v,%v -> %v,%v) = %v, want [0,360)",
							lat1, lon1, lat2, lon2, b)
					}
				}
			}
		}
	}
}

func TestBearingCompassPoints(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"due north", 0, 0, 1, 0, 0},
		{"due east", 0, 0, 0, 1, 90},
		{"due south", 1, 0, 0, 0, 180},
		{"due west", 0, 1, 0, 0, 270},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Bearing(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Bearing = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCardinalFromBearing(t *testing.T) {
	tests := []struct {
		deg  float64
		want Cardinal
	}{
		{0, North},
		{90, East},
		{180, South},
		{270, West},
		{45, NorthEast},
		{135, SouthEast},
		{225, SouthWest},
		{315, NorthWest},
		{22.4, North},
		{22.6, NorthEast},
		{359.9, North},
		{-45, NorthWest},
		{405, NorthEast},
	}
	for _, tc := range tests {
		if got := CardinalFromBearing(tc.deg); got != tc.want {
			t.Errorf("CardinalFromBearing(%v) = %v, want %v", tc.deg, got, tc.want)
		}
	}
}
