package sim

import (
	"fmt"

	"github.com/s3lm4n/flight-planner/internal/aircraft"
	"github.com/s3lm4n/flight-planner/internal/airport"
	"github.com/s3lm4n/flight-planner/internal/geo"
	"github.com/s3lm4n/flight-planner/internal/route"
	"github.com/s3lm4n/flight-planner/internal/wx"
)

// PlanInput is what the snapshot builder needs at the planning-to-simulation
// transition: the selected runway ends, the aircraft and the route profile
// knobs. Weather may be nil.
type PlanInput struct {
	DepartureRunway airport.RunwayEnd
	ArrivalRunway   airport.RunwayEnd
	Aircraft        aircraft.PerformanceProfile

	CruiseAltFt       float64 // 0 picks a distance-based default
	ClimbDistanceNM   float64
	DescentDistanceNM float64

	DepartureWeather *wx.Report
}

// BuildSnapshot generates the route and freezes the snapshot for one leg.
// The route starts at the liftoff point (takeoff roll down the departure
// centerline) and ends exactly at the arrival threshold, so the ground and
// route regimes join without a position jump.
func BuildSnapshot(in PlanInput) (*Snapshot, error) {
	if in.Aircraft.TakeoffDistanceFt <= 0 {
		return nil, fmt.Errorf("aircraft %s has non-positive takeoff roll", in.Aircraft.TypeCode)
	}

	liftoff := geo.PositionOnRunway(
		in.DepartureRunway.Threshold,
		in.DepartureRunway.UnitVector(),
		in.Aircraft.TakeoffDistanceFt,
	)

	rt, err := route.Generate(route.GeneratorParams{
		Start:             liftoff,
		StartAltFt:        in.DepartureRunway.ElevationFt,
		End:               in.ArrivalRunway.Threshold,
		EndAltFt:          in.ArrivalRunway.ElevationFt,
		CruiseAltFt:       in.CruiseAltFt,
		ClimbDistanceNM:   in.ClimbDistanceNM,
		DescentDistanceNM: in.DescentDistanceNM,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate route: %w", err)
	}

	var wind wx.Wind
	if in.DepartureWeather != nil {
		wind = in.DepartureWeather.Wind
	}

	return NewSnapshot(in.DepartureRunway, in.ArrivalRunway, in.Aircraft, rt, wind)
}
