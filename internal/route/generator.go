package route

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/s3lm4n/flight-planner/internal/geo"
)

// GeneratorParams control route generation. Climb/descent distances default
// to the same allowances the fuel model uses so the profile and the plan
// agree.
type GeneratorParams struct {
	Start       geo.Coordinate
	StartAltFt  float64
	End         geo.Coordinate
	EndAltFt    float64
	CruiseAltFt float64

	ClimbDistanceNM   float64
	DescentDistanceNM float64

	// EnrouteSpacingNM is the spacing of filler fixes in cruise. Zero means
	// the 100 NM default.
	EnrouteSpacingNM float64
}

const (
	defaultEnrouteSpacingNM = 100
	approachFixNM           = 10 // before the arrival threshold
	finalFixNM              = 5
	minFixSeparationNM      = 0.5
)

// DefaultCruiseAltitudeFt picks a heuristic cruise altitude for the leg
// length.
func DefaultCruiseAltitudeFt(distanceNM float64) float64 {
	switch {
	case distanceNM < 150:
		return 15000
	case distanceNM < 400:
		return 28000
	default:
		return 35000
	}
}

// Generate samples a great-circle route between the start and end points,
// placing top-of-climb, enroute, top-of-descent, approach and final fixes
// with target altitudes. The last waypoint is exactly the end point.
func Generate(p GeneratorParams) (*Route, error) {
	total := geo.DistanceNM(p.Start, p.End)
	if total <= 0 {
		return nil, fmt.Errorf("degenerate route: start and end coincide")
	}

	if p.CruiseAltFt <= 0 {
		p.CruiseAltFt = DefaultCruiseAltitudeFt(total)
	}
	if p.EnrouteSpacingNM <= 0 {
		p.EnrouteSpacingNM = defaultEnrouteSpacingNM
	}

	// Compress the profile on short legs so the fixes stay ordered.
	climbD := p.ClimbDistanceNM
	if climbD <= 0 || climbD > 0.4*total {
		climbD = 0.4 * total
	}
	descentD := p.DescentDistanceNM
	if descentD <= 0 || descentD > 0.4*total {
		descentD = 0.4 * total
	}
	approachD := float64(approachFixNM)
	if approachD > descentD/2 {
		approachD = descentD / 2
	}
	finalD := float64(finalFixNM)
	if finalD > approachD/2 {
		finalD = approachD / 2
	}

	type fix struct {
		distNM float64
		altFt  float64
		typ    WaypointType
	}

	fixes := []fix{
		{0, p.StartAltFt, TypeDeparture},
		{climbD, p.CruiseAltFt, TypeTopOfClimb},
	}
	for d := climbD + p.EnrouteSpacingNM; d < total-descentD-minFixSeparationNM; d += p.EnrouteSpacingNM {
		fixes = append(fixes, fix{d, p.CruiseAltFt, TypeEnroute})
	}
	fixes = append(fixes,
		fix{total - descentD, p.CruiseAltFt, TypeTopOfDescent},
		fix{total - approachD, p.EndAltFt + 3000, TypeApproachFix},
		fix{total - finalD, p.EndAltFt + 1500, TypeFinalFix},
		fix{total, p.EndAltFt, TypeArrival},
	)

	waypoints := make([]Waypoint, 0, len(fixes))
	lastD := -minFixSeparationNM
	for i, f := range fixes {
		// Drop fixes that collapsed onto their neighbor, but never the
		// endpoints.
		if i != 0 && i != len(fixes)-1 && f.distNM-lastD < minFixSeparationNM {
			continue
		}
		pos := geo.InterpolateGreatCircle(p.Start, p.End, f.distNM/total)
		if i == len(fixes)-1 {
			pos = p.End
		}
		waypoints = append(waypoints, Waypoint{
			ID:         uuid.NewString(),
			Position:   pos,
			AltitudeFt: f.altFt,
			Type:       f.typ,
		})
		lastD = f.distNM
	}

	return build(waypoints)
}

// FromWaypoints builds a route from an externally generated waypoint list.
func FromWaypoints(waypoints []Waypoint) (*Route, error) {
	return build(waypoints)
}
