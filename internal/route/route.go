package route

import (
	"fmt"

	"github.com/s3lm4n/flight-planner/internal/geo"
)

// WaypointType classifies a generated waypoint.
type WaypointType string

const (
	TypeDeparture    WaypointType = "departure"
	TypeTopOfClimb   WaypointType = "toc"
	TypeEnroute      WaypointType = "enroute"
	TypeTopOfDescent WaypointType = "tod"
	TypeApproachFix  WaypointType = "approach"
	TypeFinalFix     WaypointType = "final"
	TypeArrival      WaypointType = "arrival"
)

// Waypoint is one fix of a generated route with its target altitude.
type Waypoint struct {
	ID         string         `json:"id"`
	Position   geo.Coordinate `json:"position"`
	AltitudeFt float64        `json:"altitude_ft"`
	Type       WaypointType   `json:"type"`
}

// Leg is the segment from one waypoint to the next.
type Leg struct {
	DistanceNM float64 `json:"distance_nm"`
	CourseDeg  float64 `json:"course_deg"`
}

// Route is an ordered waypoint list with per-leg geometry and cumulative
// distance. Once generated it is never modified.
type Route struct {
	Waypoints    []Waypoint `json:"waypoints"`
	Legs         []Leg      `json:"legs"`
	CumulativeNM []float64  `json:"cumulative_nm"`
}

// build computes legs and cumulative distances for the given waypoints.
func build(waypoints []Waypoint) (*Route, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("route needs at least 2 waypoints, got %d", len(waypoints))
	}

	legs := make([]Leg, len(waypoints)-1)
	cumulative := make([]float64, len(waypoints))
	for i := 0; i < len(waypoints)-1; i++ {
		a := waypoints[i].Position
		b := waypoints[i+1].Position
		legs[i] = Leg{
			DistanceNM: geo.DistanceNM(a, b),
			CourseDeg:  geo.Heading(a, b),
		}
		cumulative[i+1] = cumulative[i] + legs[i].DistanceNM
	}

	return &Route{
		Waypoints:    waypoints,
		Legs:         legs,
		CumulativeNM: cumulative,
	}, nil
}

// TotalNM returns the full route length.
func (r *Route) TotalNM() float64 {
	return r.CumulativeNM[len(r.CumulativeNM)-1]
}

// SegmentAt locates the leg containing the given cumulative distance and
// the fraction travelled along it. The distance is clamped to the route.
func (r *Route) SegmentAt(distanceNM float64) (leg int, fraction float64) {
	if distanceNM <= 0 {
		return 0, 0
	}
	total := r.TotalNM()
	if distanceNM >= total {
		return len(r.Legs) - 1, 1
	}

	for i := range r.Legs {
		if distanceNM < r.CumulativeNM[i+1] {
			if r.Legs[i].DistanceNM <= 0 {
				return i, 0
			}
			return i, (distanceNM - r.CumulativeNM[i]) / r.Legs[i].DistanceNM
		}
	}
	return len(r.Legs) - 1, 1
}

// PositionAt returns the great-circle position at the given cumulative
// distance.
func (r *Route) PositionAt(distanceNM float64) geo.Coordinate {
	leg, fraction := r.SegmentAt(distanceNM)
	return geo.InterpolateGreatCircle(
		r.Waypoints[leg].Position, r.Waypoints[leg+1].Position, fraction)
}

// AltitudeAt returns the target altitude at the given cumulative distance,
// linearly interpolated between the bounding waypoints.
func (r *Route) AltitudeAt(distanceNM float64) float64 {
	leg, fraction := r.SegmentAt(distanceNM)
	a := r.Waypoints[leg].AltitudeFt
	b := r.Waypoints[leg+1].AltitudeFt
	return a + (b-a)*fraction
}

// AltitudeSlopeFtPerNM returns the altitude gradient of the leg containing
// the given distance, in feet per NM. Zero for degenerate legs.
func (r *Route) AltitudeSlopeFtPerNM(distanceNM float64) float64 {
	leg, _ := r.SegmentAt(distanceNM)
	if r.Legs[leg].DistanceNM <= 0 {
		return 0
	}
	return (r.Waypoints[leg+1].AltitudeFt - r.Waypoints[leg].AltitudeFt) / r.Legs[leg].DistanceNM
}
