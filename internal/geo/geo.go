package geo

import (
	"math"
)

// Constants for aviation calculations
const (
	// EarthRadiusNM is the mean Earth radius in nautical miles.
	EarthRadiusNM = 3440.065

	FeetPerNM = 6076.12

	// MinRunwayLengthNM is the shortest centerline treated as directional.
	// Anything shorter yields a zero unit vector instead of dividing by a
	// near-zero length.
	MinRunwayLengthNM = 0.001
)

// Coordinate is a position on the Earth in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// UnitVector is a per-nautical-mile (dLat, dLon) step in degrees along a
// runway centerline.
type UnitVector struct {
	DLat float64 `json:"dlat"`
	DLon float64 `json:"dlon"`
}

// IsZero reports whether the vector is degenerate.
func (v UnitVector) IsZero() bool {
	return v.DLat == 0 && v.DLon == 0
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// FeetToNM converts feet to nautical miles.
func FeetToNM(feet float64) float64 { return feet / FeetPerNM }

// NMToFeet converts nautical miles to feet.
func NMToFeet(nm float64) float64 { return nm * FeetPerNM }

// DistanceNM returns the great-circle distance between two points in
// nautical miles (haversine).
func DistanceNM(a, b Coordinate) float64 {
	lat1 := degToRad(a.Lat)
	lat2 := degToRad(b.Lat)
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusNM * c
}

// Heading returns the initial great-circle bearing from a to b in degrees,
// normalized to [0, 360).
func Heading(a, b Coordinate) float64 {
	lat1 := degToRad(a.Lat)
	lat2 := degToRad(b.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	bearing := radToDeg(math.Atan2(y, x))

	return NormalizeHeading(bearing)
}

// NormalizeHeading wraps a heading into [0, 360).
func NormalizeHeading(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// HeadingDifference returns the signed shortest rotation from one heading to
// another, in (-180, 180].
func HeadingDifference(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// RunwayUnitVector returns the per-NM (dLat, dLon) step along the centerline
// from thresholdA toward thresholdB. A degenerate runway (shorter than
// MinRunwayLengthNM) yields a zero vector.
func RunwayUnitVector(thresholdA, thresholdB Coordinate) UnitVector {
	lengthNM := DistanceNM(thresholdA, thresholdB)
	if lengthNM < MinRunwayLengthNM {
		return UnitVector{}
	}
	return UnitVector{
		DLat: (thresholdB.Lat - thresholdA.Lat) / lengthNM,
		DLon: (thresholdB.Lon - thresholdA.Lon) / lengthNM,
	}
}

// PositionOnRunway returns the point distanceFt down the centerline from the
// threshold. Ground-phase positions must come from this function only, never
// from route interpolation, so takeoff and landing rolls stay on the runway.
func PositionOnRunway(threshold Coordinate, v UnitVector, distanceFt float64) Coordinate {
	nm := FeetToNM(distanceFt)
	return Coordinate{
		Lat: threshold.Lat + v.DLat*nm,
		Lon: threshold.Lon + v.DLon*nm,
	}
}

// InterpolateGreatCircle returns the point at the given fraction along the
// great circle from a to b. The fraction is clamped to [0, 1]; fraction 0
// returns a exactly and fraction 1 returns b exactly. Near-coincident
// endpoints return a.
func InterpolateGreatCircle(a, b Coordinate, fraction float64) Coordinate {
	if fraction <= 0 {
		return a
	}
	if fraction >= 1 {
		return b
	}

	lat1 := degToRad(a.Lat)
	lon1 := degToRad(a.Lon)
	lat2 := degToRad(b.Lat)
	lon2 := degToRad(b.Lon)

	// Angular separation
	d := DistanceNM(a, b) / EarthRadiusNM
	if d < 1e-9 || math.Sin(d) == 0 {
		return a
	}

	fa := math.Sin((1-fraction)*d) / math.Sin(d)
	fb := math.Sin(fraction*d) / math.Sin(d)

	x := fa*math.Cos(lat1)*math.Cos(lon1) + fb*math.Cos(lat2)*math.Cos(lon2)
	y := fa*math.Cos(lat1)*math.Sin(lon1) + fb*math.Cos(lat2)*math.Sin(lon2)
	z := fa*math.Sin(lat1) + fb*math.Sin(lat2)

	return Coordinate{
		Lat: radToDeg(math.Atan2(z, math.Sqrt(x*x+y*y))),
		Lon: radToDeg(math.Atan2(y, x)),
	}
}

// DestinationPoint returns the point reached by travelling distanceNM from
// origin along the given initial bearing.
func DestinationPoint(origin Coordinate, bearingDeg, distanceNM float64) Coordinate {
	lat1 := degToRad(origin.Lat)
	lon1 := degToRad(origin.Lon)
	brg := degToRad(bearingDeg)
	d := distanceNM / EarthRadiusNM

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) +
		math.Cos(lat1)*math.Sin(d)*math.Cos(brg))
	lon2 := lon1 + math.Atan2(
		math.Sin(brg)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))

	return Coordinate{Lat: radToDeg(lat2), Lon: radToDeg(lon2)}
}

// StandardRateBankAngle returns the rule-of-thumb bank angle for a 3 deg/sec
// standard-rate turn at the given speed, clamped to [15, 30] degrees.
func StandardRateBankAngle(speedKts float64) float64 {
	bank := speedKts/10 + 7
	if bank < 15 {
		return 15
	}
	if bank > 30 {
		return 30
	}
	return bank
}
