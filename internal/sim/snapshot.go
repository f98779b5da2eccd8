package sim

import (
	"fmt"

	"github.com/s3lm4n/flight-planner/internal/aircraft"
	"github.com/s3lm4n/flight-planner/internal/airport"
	"github.com/s3lm4n/flight-planner/internal/geo"
	"github.com/s3lm4n/flight-planner/internal/route"
	"github.com/s3lm4n/flight-planner/internal/wx"
)

// RunwayGeometry is the frozen geometry of one selected runway end.
type RunwayGeometry struct {
	Designator     string         `json:"designator"`
	HeadingTrueDeg float64        `json:"heading_true_deg"`
	Threshold      geo.Coordinate `json:"threshold"`
	ElevationFt    float64        `json:"elevation_ft"`
	LengthFt       float64        `json:"length_ft"`

	// Unit is the precomputed per-NM centerline step from the threshold.
	Unit geo.UnitVector `json:"unit"`
}

// Performance is the reduced aircraft subset the engine needs per tick.
type Performance struct {
	V1Kts         float64 `json:"v1_kts"`
	VRKts         float64 `json:"vr_kts"`
	V2Kts         float64 `json:"v2_kts"`
	VrefKts       float64 `json:"vref_kts"`
	CruiseTASKts  float64 `json:"cruise_tas_kts"`
	TakeoffRollFt float64 `json:"takeoff_roll_ft"`
}

// phaseBoundary marks where a phase begins on the combined distance track
// (ground roll in NM, then route distance).
type phaseBoundary struct {
	phase   FlightPhase
	startNM float64
}

// Snapshot is everything the phase engine reads during a run: runway
// geometry, reduced performance, the frozen route, one frozen wind vector
// and the monotonic phase/distance table. Nothing in it is mutated after
// construction, so any number of consumers may read it concurrently.
type Snapshot struct {
	Departure RunwayGeometry `json:"departure"`
	Arrival   RunwayGeometry `json:"arrival"`
	Perf      Performance    `json:"performance"`
	Route     *route.Route   `json:"route"`

	// Wind is the single enroute wind used for correction angles and ground
	// speed. The zero value means calm.
	Wind wx.Wind `json:"wind"`

	groundRollNM float64
	totalNM      float64
	phaseTable   []phaseBoundary
}

// Ground-roll phase boundaries as fractions of the takeoff roll, plus the
// route-regime offsets near the arrival threshold. Heuristic timing
// constants, kept stable for behavioral compatibility.
const (
	lineupRollFt        = 50
	v1RollFraction      = 0.55
	rotateRollFraction  = 0.70
	liftoffRollFraction = 0.85

	initialClimbNM = 5.0
	landingStartNM = 1.0 // before the arrival threshold
	taxiInStartNM  = 0.2
)

// NewSnapshot validates the inputs and builds the immutable snapshot,
// including the phase/distance table. It fails only when the route has
// fewer than 2 waypoints or a required performance field is non-positive.
func NewSnapshot(dep, arr airport.RunwayEnd, perf aircraft.PerformanceProfile, rt *route.Route, wind wx.Wind) (*Snapshot, error) {
	if rt == nil || len(rt.Waypoints) < 2 {
		n := 0
		if rt != nil {
			n = len(rt.Waypoints)
		}
		return nil, fmt.Errorf("snapshot requires a route with at least 2 waypoints, got %d", n)
	}
	if perf.TakeoffDistanceFt <= 0 {
		return nil, fmt.Errorf("snapshot requires a positive takeoff roll, got %.0f ft", perf.TakeoffDistanceFt)
	}
	if perf.CruiseTASKts <= 0 {
		return nil, fmt.Errorf("snapshot requires a positive cruise TAS, got %.0f kt", perf.CruiseTASKts)
	}
	if perf.V2Kts <= 0 || perf.VrefKts <= 0 {
		return nil, fmt.Errorf("snapshot requires positive V2 and Vref")
	}

	s := &Snapshot{
		Departure: runwayGeometry(dep),
		Arrival:   runwayGeometry(arr),
		Perf: Performance{
			V1Kts:         perf.V1Kts,
			VRKts:         perf.VRKts,
			V2Kts:         perf.V2Kts,
			VrefKts:       perf.VrefKts,
			CruiseTASKts:  perf.CruiseTASKts,
			TakeoffRollFt: perf.TakeoffDistanceFt,
		},
		Route: rt,
		Wind:  wind,
	}

	s.groundRollNM = geo.FeetToNM(s.Perf.TakeoffRollFt)
	s.totalNM = s.groundRollNM + rt.TotalNM()
	s.phaseTable = buildPhaseTable(s)

	return s, nil
}

func runwayGeometry(end airport.RunwayEnd) RunwayGeometry {
	return RunwayGeometry{
		Designator:     end.Designator,
		HeadingTrueDeg: end.HeadingTrueDeg,
		Threshold:      end.Threshold,
		ElevationFt:    end.ElevationFt,
		LengthFt:       end.LengthFt(),
		Unit:           end.UnitVector(),
	}
}

// TotalNM returns the combined track length: takeoff roll plus route.
func (s *Snapshot) TotalNM() float64 { return s.totalNM }

// GroundRollNM returns the takeoff roll expressed in NM.
func (s *Snapshot) GroundRollNM() float64 { return s.groundRollNM }

// routeWaypointDistance returns the cumulative route distance of the first
// waypoint with the given type, or the fallback when absent.
func routeWaypointDistance(rt *route.Route, typ route.WaypointType, fallback float64) float64 {
	for i, wp := range rt.Waypoints {
		if wp.Type == typ {
			return rt.CumulativeNM[i]
		}
	}
	return fallback
}

// buildPhaseTable lays the 13 phases monotonically along the combined
// distance track. Ground boundaries come from roll fractions, route
// boundaries from the per-waypoint cumulative distances.
func buildPhaseTable(s *Snapshot) []phaseBoundary {
	roll := s.groundRollNM
	rt := s.Route
	routeTotal := rt.TotalNM()

	tocNM := routeWaypointDistance(rt, route.TypeTopOfClimb, 0.4*routeTotal)
	todNM := routeWaypointDistance(rt, route.TypeTopOfDescent, 0.6*routeTotal)
	approachNM := routeWaypointDistance(rt, route.TypeApproachFix, routeTotal-approachFallbackNM(routeTotal))
	finalNM := routeWaypointDistance(rt, route.TypeFinalFix, routeTotal-finalFallbackNM(routeTotal))

	boundaries := []phaseBoundary{
		{PhaseLineup, 0},
		{PhaseTakeoffRoll, geo.FeetToNM(lineupRollFt)},
		{PhaseV1, v1RollFraction * roll},
		{PhaseRotate, rotateRollFraction * roll},
		{PhaseLiftoff, liftoffRollFraction * roll},
		{PhaseInitialClimb, roll},
		{PhaseClimb, roll + minF(initialClimbNM, tocNM/2)},
		{PhaseCruise, roll + tocNM},
		{PhaseDescent, roll + todNM},
		{PhaseApproach, roll + approachNM},
		{PhaseFinal, roll + finalNM},
		{PhaseLanding, roll + routeTotal - landingStartNM},
		{PhaseTaxiIn, roll + routeTotal - taxiInStartNM},
	}

	// Short routes can fold boundaries past each other; clamp each start to
	// keep the table monotonic.
	for i := 1; i < len(boundaries); i++ {
		if boundaries[i].startNM < boundaries[i-1].startNM {
			boundaries[i].startNM = boundaries[i-1].startNM
		}
	}
	return boundaries
}

func approachFallbackNM(routeTotal float64) float64 { return minF(10, 0.1*routeTotal) }
func finalFallbackNM(routeTotal float64) float64    { return minF(5, 0.05*routeTotal) }

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// phaseAt resolves the phase for a combined track distance.
func (s *Snapshot) phaseAt(distanceNM float64) FlightPhase {
	if distanceNM >= s.totalNM {
		return PhaseComplete
	}
	phase := PhaseLineup
	for _, b := range s.phaseTable {
		if distanceNM >= b.startNM {
			phase = b.phase
		} else {
			break
		}
	}
	return phase
}
