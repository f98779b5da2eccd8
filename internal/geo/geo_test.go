package geo

import (
	"math"
	"testing"
)

func TestDistanceNM(t *testing.T) {
	cyyz := Coordinate{Lat: 43.6777, Lon: -79.6248}
	kmia := Coordinate{Lat: 25.7932, Lon: -80.2906}

	d := DistanceNM(cyyz, kmia)
	// Toronto to Miami is roughly 1075 NM.
	if d < 1050 || d > 1100 {
		t.Errorf("CYYZ-KMIA distance: expected ~1075 NM, got %f", d)
	}

	if rev := DistanceNM(kmia, cyyz); math.Abs(rev-d) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", d, rev)
	}

	if z := DistanceNM(cyyz, cyyz); z != 0 {
		t.Errorf("zero distance: expected 0, got %f", z)
	}
}

func TestHeading(t *testing.T) {
	origin := Coordinate{Lat: 45, Lon: -75}

	north := Coordinate{Lat: 46, Lon: -75}
	if h := Heading(origin, north); math.Abs(h) > 0.1 && math.Abs(h-360) > 0.1 {
		t.Errorf("due north: expected ~0, got %f", h)
	}

	east := Coordinate{Lat: 45, Lon: -74}
	h := Heading(origin, east)
	// Slightly above 90 at this latitude because of convergence.
	if h < 89 || h > 91 {
		t.Errorf("due east: expected ~90, got %f", h)
	}
}

func TestNormalizeHeading(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{-10, 350},
		{725, 5},
	}
	for _, c := range cases {
		if got := NormalizeHeading(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NormalizeHeading(%f): expected %f, got %f", c.in, c.want, got)
		}
	}
}

func TestHeadingDifference(t *testing.T) {
	cases := []struct{ from, to, want float64 }{
		{10, 20, 10},
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
		{90, 270, 180},
	}
	for _, c := range cases {
		if got := HeadingDifference(c.from, c.to); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("HeadingDifference(%f, %f): expected %f, got %f", c.from, c.to, c.want, got)
		}
	}
}

func TestRunwayUnitVector(t *testing.T) {
	a := Coordinate{Lat: 43.66358, Lon: -79.64537}
	b := Coordinate{Lat: 43.68737, Lon: -79.61390}

	v := RunwayUnitVector(a, b)
	if v.IsZero() {
		t.Fatal("real runway yielded a zero unit vector")
	}

	// One full length down the vector lands on the opposite threshold.
	lengthNM := DistanceNM(a, b)
	end := Coordinate{
		Lat: a.Lat + v.DLat*lengthNM,
		Lon: a.Lon + v.DLon*lengthNM,
	}
	if math.Abs(end.Lat-b.Lat) > 1e-9 || math.Abs(end.Lon-b.Lon) > 1e-9 {
		t.Errorf("vector endpoint: expected %v, got %v", b, end)
	}
}

func TestRunwayUnitVectorDegenerate(t *testing.T) {
	a := Coordinate{Lat: 43.66358, Lon: -79.64537}

	if v := RunwayUnitVector(a, a); !v.IsZero() {
		t.Errorf("coincident thresholds: expected zero vector, got %v", v)
	}

	// Just under the directional threshold.
	b := Coordinate{Lat: a.Lat + 1e-8, Lon: a.Lon}
	if v := RunwayUnitVector(a, b); !v.IsZero() {
		t.Errorf("sub-minimum runway: expected zero vector, got %v", v)
	}
}

func TestPositionOnRunway(t *testing.T) {
	threshold := Coordinate{Lat: 43.66358, Lon: -79.64537}
	opposite := Coordinate{Lat: 43.68737, Lon: -79.61390}
	v := RunwayUnitVector(threshold, opposite)

	// Zero distance is the threshold exactly.
	if p := PositionOnRunway(threshold, v, 0); p != threshold {
		t.Errorf("zero roll: expected %v, got %v", threshold, p)
	}

	// Halfway down the roll sits between the thresholds.
	halfFt := NMToFeet(DistanceNM(threshold, opposite)) / 2
	mid := PositionOnRunway(threshold, v, halfFt)
	if mid.Lat <= threshold.Lat || mid.Lat >= opposite.Lat {
		t.Errorf("midpoint latitude %f outside [%f, %f]", mid.Lat, threshold.Lat, opposite.Lat)
	}
}

func TestInterpolateGreatCircle(t *testing.T) {
	a := Coordinate{Lat: 43.6777, Lon: -79.6248}
	b := Coordinate{Lat: 25.7932, Lon: -80.2906}

	if p := InterpolateGreatCircle(a, b, 0); p != a {
		t.Errorf("fraction 0: expected %v, got %v", a, p)
	}
	if p := InterpolateGreatCircle(a, b, 1); p != b {
		t.Errorf("fraction 1: expected %v, got %v", b, p)
	}
	if p := InterpolateGreatCircle(a, b, -0.5); p != a {
		t.Errorf("negative fraction: expected %v, got %v", a, p)
	}
	if p := InterpolateGreatCircle(a, b, 1.5); p != b {
		t.Errorf("fraction > 1: expected %v, got %v", b, p)
	}

	// The midpoint splits the distance evenly.
	mid := InterpolateGreatCircle(a, b, 0.5)
	d1 := DistanceNM(a, mid)
	d2 := DistanceNM(mid, b)
	if math.Abs(d1-d2) > 0.01 {
		t.Errorf("midpoint split: %f vs %f NM", d1, d2)
	}

	// Near-coincident endpoints return the start.
	if p := InterpolateGreatCircle(a, a, 0.5); p != a {
		t.Errorf("coincident endpoints: expected %v, got %v", a, p)
	}
}

func TestDestinationPoint(t *testing.T) {
	origin := Coordinate{Lat: 45, Lon: -75}

	dest := DestinationPoint(origin, 90, 60)
	if d := DistanceNM(origin, dest); math.Abs(d-60) > 0.01 {
		t.Errorf("destination distance: expected 60 NM, got %f", d)
	}
	if h := Heading(origin, dest); math.Abs(h-90) > 0.5 {
		t.Errorf("destination bearing: expected ~90, got %f", h)
	}
}

func TestStandardRateBankAngle(t *testing.T) {
	cases := []struct{ speed, want float64 }{
		{50, 15},  // 12 clamps up
		{100, 17}, // 100/10 + 7
		{150, 22},
		{450, 30}, // 52 clamps down
	}
	for _, c := range cases {
		if got := StandardRateBankAngle(c.speed); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("bank at %f kt: expected %f, got %f", c.speed, c.want, got)
		}
	}
}

func TestFeetNMConversion(t *testing.T) {
	if got := NMToFeet(1); math.Abs(got-FeetPerNM) > 1e-9 {
		t.Errorf("NMToFeet(1): expected %f, got %f", FeetPerNM, got)
	}
	if got := FeetToNM(NMToFeet(2.5)); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("round trip: expected 2.5, got %f", got)
	}
}
