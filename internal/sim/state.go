package sim

import (
	"math"

	"github.com/s3lm4n/flight-planner/internal/geo"
	"github.com/s3lm4n/flight-planner/internal/route"
)

// State is the mutable per-run state of the phase engine. GroundRollFt is
// meaningful only during ground phases and RouteDistanceNM only afterwards;
// the two never apply at once.
type State struct {
	Phase            FlightPhase    `json:"phase"`
	GroundRollFt     float64        `json:"ground_roll_ft"`
	RouteDistanceNM  float64        `json:"route_distance_nm"`
	Position         geo.Coordinate `json:"position"`
	HeadingDeg       float64        `json:"heading_deg"`
	PitchDeg         float64        `json:"pitch_deg"`
	BankDeg          float64        `json:"bank_deg"`
	IASKts           float64        `json:"ias_kts"`
	GroundSpeedKts   float64        `json:"ground_speed_kts"`
	AltitudeFt       float64        `json:"altitude_ft"`
	VerticalSpeedFpm float64        `json:"vertical_speed_fpm"`
	Progress         float64        `json:"progress"`
	ElapsedSec       float64        `json:"elapsed_sec"`
	Playing          bool           `json:"playing"`
	SpeedMultiplier  float64        `json:"speed_multiplier"`
}

// Output is the frozen per-tick view handed to passive consumers. It is a
// value copy; holders cannot reach back into engine state.
type Output struct {
	Phase            string         `json:"phase"`
	Position         geo.Coordinate `json:"position"`
	HeadingDeg       float64        `json:"heading_deg"`
	PitchDeg         float64        `json:"pitch_deg"`
	BankDeg          float64        `json:"bank_deg"`
	AltitudeFt       float64        `json:"altitude_ft"`
	GroundSpeedKts   float64        `json:"ground_speed_kts"`
	VerticalSpeedFpm float64        `json:"vertical_speed_fpm"`
	Progress         float64        `json:"progress"`
	ElapsedSec       float64        `json:"elapsed_sec"`
	IsPlaying        bool           `json:"is_playing"`
}

const taxiSpeedKts = 15

// Per-phase pitch targets, degrees. Heuristic presentation values.
var phasePitch = map[FlightPhase]float64{
	PhaseInitialClimb: 12,
	PhaseClimb:        8,
	PhaseCruise:       2,
	PhaseDescent:      -2,
	PhaseApproach:     -3,
	PhaseFinal:        -3,
	PhaseLanding:      2,
}

// phaseTAS returns the heuristic true airspeed flown in a route-regime
// phase.
func phaseTAS(p FlightPhase, perf Performance) float64 {
	switch p {
	case PhaseInitialClimb:
		return perf.V2Kts + 15
	case PhaseClimb:
		return (perf.V2Kts + perf.CruiseTASKts) / 2
	case PhaseCruise:
		return perf.CruiseTASKts
	case PhaseDescent:
		return (perf.VrefKts + perf.CruiseTASKts) / 2
	case PhaseApproach:
		return perf.VrefKts + 30
	case PhaseFinal:
		return perf.VrefKts
	case PhaseLanding:
		return perf.VrefKts / 2
	case PhaseTaxiIn:
		return taxiSpeedKts
	default:
		return 0
	}
}

// derive recomputes every kinematic quantity from a combined track distance.
// It is a pure function of the snapshot and the distance, which is what
// makes seek idempotent and equivalent to natural playback.
func derive(s *Snapshot, distanceNM float64) State {
	if distanceNM < 0 {
		distanceNM = 0
	}
	if distanceNM > s.totalNM {
		distanceNM = s.totalNM
	}

	st := State{
		Phase:    s.phaseAt(distanceNM),
		Progress: 0,
	}
	if s.totalNM > 0 {
		st.Progress = distanceNM / s.totalNM
	}

	if st.Phase.IsGround() {
		deriveGround(s, distanceNM, &st)
	} else {
		deriveRoute(s, distanceNM, &st)
	}
	return st
}

// deriveGround positions the aircraft on the departure runway centerline.
// Heading stays locked to the runway; only pitch changes, ramping through
// rotation and liftoff.
func deriveGround(s *Snapshot, distanceNM float64, st *State) {
	rollFt := geo.NMToFeet(distanceNM)
	totalRollFt := s.Perf.TakeoffRollFt
	if rollFt > totalRollFt {
		rollFt = totalRollFt
	}

	st.GroundRollFt = rollFt
	st.Position = geo.PositionOnRunway(s.Departure.Threshold, s.Departure.Unit, rollFt)
	st.HeadingDeg = s.Departure.HeadingTrueDeg
	st.AltitudeFt = s.Departure.ElevationFt
	st.VerticalSpeedFpm = 0
	st.BankDeg = 0

	// Acceleration ramp: reaches V2 at the liftoff end of the roll.
	frac := 0.0
	if totalRollFt > 0 {
		frac = rollFt / totalRollFt
	}
	st.IASKts = s.Perf.V2Kts * sqrtClamped(frac)

	st.PitchDeg = groundPitch(st.Phase, rollFt, totalRollFt)

	// The roll starts from rest; the taxi-speed floor keeps playback
	// advancing from the first tick.
	gs := groundSpeedFor(s, st.HeadingDeg, st.IASKts)
	if gs < taxiSpeedKts {
		gs = taxiSpeedKts
	}
	st.GroundSpeedKts = gs
}

// groundPitch ramps the nose up through ROTATE and LIFTOFF, bounded at the
// liftoff attitude.
func groundPitch(phase FlightPhase, rollFt, totalRollFt float64) float64 {
	const rotatePitch = 8.0
	const liftoffPitch = 12.0

	switch phase {
	case PhaseRotate:
		span := (liftoffRollFraction - rotateRollFraction) * totalRollFt
		if span <= 0 {
			return rotatePitch
		}
		f := (rollFt - rotateRollFraction*totalRollFt) / span
		return rotatePitch * clamp01(f)
	case PhaseLiftoff:
		span := (1 - liftoffRollFraction) * totalRollFt
		if span <= 0 {
			return liftoffPitch
		}
		f := (rollFt - liftoffRollFraction*totalRollFt) / span
		return rotatePitch + (liftoffPitch-rotatePitch)*clamp01(f)
	default:
		return 0
	}
}

// deriveRoute positions the aircraft along the frozen waypoint list, keyed
// by cumulative route distance.
func deriveRoute(s *Snapshot, distanceNM float64, st *State) {
	routeD := distanceNM - s.groundRollNM
	rt := s.Route
	if routeD < 0 {
		routeD = 0
	}
	// Pin the end of the track to the exact route length so the completed
	// position is the arrival threshold, not a rounding neighbor of it.
	if routeD > rt.TotalNM() || distanceNM >= s.totalNM {
		routeD = rt.TotalNM()
	}

	st.RouteDistanceNM = routeD
	st.Position = rt.PositionAt(routeD)
	st.AltitudeFt = rt.AltitudeAt(routeD)
	st.PitchDeg = phasePitch[st.Phase]

	leg, _ := rt.SegmentAt(routeD)
	next := rt.Waypoints[leg+1].Position

	// Course toward the next waypoint; at the very end fall back to the
	// final leg course.
	course := rt.Legs[leg].CourseDeg
	if geo.DistanceNM(st.Position, next) > 1e-6 {
		course = geo.Heading(st.Position, next)
	}

	st.IASKts = phaseTAS(st.Phase, s.Perf)

	wca := 0.0
	if !s.Wind.Variable && s.Wind.SpeedKts > 0 && st.IASKts > 0 {
		wca = geo.WindCorrectionAngle(course, s.Wind.DirectionDeg, s.Wind.SpeedKts, st.IASKts)
	}
	st.HeadingDeg = geo.NormalizeHeading(course + wca)

	if st.Phase == PhaseTaxiIn {
		// Taxi is surface movement; the wind triangle does not apply.
		st.GroundSpeedKts = taxiSpeedKts
	} else {
		st.GroundSpeedKts = groundSpeedFor(s, course, st.IASKts)
	}

	// Vertical speed from the leg's altitude gradient and current ground
	// speed, so it is a function of distance alone.
	st.VerticalSpeedFpm = rt.AltitudeSlopeFtPerNM(routeD) * st.GroundSpeedKts / 60

	st.BankDeg = upcomingTurnBank(rt, leg, routeD, st.GroundSpeedKts)
}

// upcomingTurnBank banks into a course change when within 2 NM of the next
// waypoint and the turn there exceeds 3 degrees. The sign follows the turn
// direction; the magnitude is the standard-rate bank for the current speed.
func upcomingTurnBank(rt *route.Route, leg int, routeD, gsKts float64) float64 {
	const anticipationNM = 2.0
	const minTurnDeg = 3.0

	if leg+1 >= len(rt.Legs) {
		return 0
	}
	distToNext := rt.CumulativeNM[leg+1] - routeD
	if distToNext > anticipationNM {
		return 0
	}
	turn := geo.HeadingDifference(rt.Legs[leg].CourseDeg, rt.Legs[leg+1].CourseDeg)
	if math.Abs(turn) < minTurnDeg {
		return 0
	}
	bank := geo.StandardRateBankAngle(gsKts)
	if turn < 0 {
		return -bank
	}
	return bank
}

func groundSpeedFor(s *Snapshot, courseDeg, tasKts float64) float64 {
	if s.Wind.Variable || s.Wind.SpeedKts <= 0 {
		if tasKts < 0 {
			return 0
		}
		return tasKts
	}
	return geo.GroundSpeed(courseDeg, s.Wind.DirectionDeg, s.Wind.SpeedKts, tasKts)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// sqrtClamped gives the constant-acceleration speed profile down the roll.
func sqrtClamped(f float64) float64 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 1
	}
	return math.Sqrt(f)
}
