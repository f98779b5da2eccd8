package geo

import (
	"math"
)

// CrosswindComponent returns the crosswind component in knots for a wind
// blowing from windDirDeg at windSpeedKts across a runway or course on
// refHeadingDeg. The result is always non-negative.
func CrosswindComponent(refHeadingDeg, windDirDeg, windSpeedKts float64) float64 {
	diff := math.Abs(refHeadingDeg - windDirDeg)
	if diff > 180 {
		diff = 360 - diff
	}
	return math.Abs(windSpeedKts * math.Sin(degToRad(diff)))
}

// HeadwindComponent returns the along-track wind component in knots relative
// to refHeadingDeg. Positive means headwind, negative means tailwind.
func HeadwindComponent(refHeadingDeg, windDirDeg, windSpeedKts float64) float64 {
	diff := math.Abs(refHeadingDeg - windDirDeg)
	if diff > 180 {
		diff = 360 - diff
	}
	return windSpeedKts * math.Cos(degToRad(diff))
}

// WindCorrectionAngle returns the signed heading offset in degrees that
// holds the desired course against the given wind. Zero when either the true
// airspeed or the wind speed is not positive, or when the wind is too strong
// for the airspeed (degenerate wind triangle).
func WindCorrectionAngle(courseDeg, windDirDeg, windSpeedKts, tasKts float64) float64 {
	if tasKts <= 0 || windSpeedKts <= 0 {
		return 0
	}
	ratio := windSpeedKts / tasKts * math.Sin(degToRad(windDirDeg-courseDeg))
	if ratio > 1 || ratio < -1 {
		return 0
	}
	return radToDeg(math.Asin(ratio))
}

// GroundSpeed returns the ground speed in knots for an aircraft holding the
// given course at tasKts through the given wind:
// sqrt(TAS^2 - crosswind^2) minus the headwind component, clamped to zero.
// Zero TAS or a crosswind exceeding TAS yields zero rather than NaN.
func GroundSpeed(courseDeg, windDirDeg, windSpeedKts, tasKts float64) float64 {
	if tasKts <= 0 {
		return 0
	}
	xw := CrosswindComponent(courseDeg, windDirDeg, windSpeedKts)
	hw := HeadwindComponent(courseDeg, windDirDeg, windSpeedKts)

	along := tasKts*tasKts - xw*xw
	if along < 0 {
		along = 0
	}
	gs := math.Sqrt(along) - hw
	if gs < 0 {
		return 0
	}
	return gs
}
