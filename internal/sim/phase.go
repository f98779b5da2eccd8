package sim

// FlightPhase is one stage of the simulated flight. Phases only progress
// forward during playback; only an explicit seek can move backwards.
type FlightPhase int

const (
	PhaseLineup FlightPhase = iota
	PhaseTakeoffRoll
	PhaseV1
	PhaseRotate
	PhaseLiftoff
	PhaseInitialClimb
	PhaseClimb
	PhaseCruise
	PhaseDescent
	PhaseApproach
	PhaseFinal
	PhaseLanding
	PhaseTaxiIn
	PhaseComplete
)

// PhaseOrder is the canonical phase sequence of a full run.
var PhaseOrder = []FlightPhase{
	PhaseLineup,
	PhaseTakeoffRoll,
	PhaseV1,
	PhaseRotate,
	PhaseLiftoff,
	PhaseInitialClimb,
	PhaseClimb,
	PhaseCruise,
	PhaseDescent,
	PhaseApproach,
	PhaseFinal,
	PhaseLanding,
	PhaseTaxiIn,
	PhaseComplete,
}

var phaseNames = map[FlightPhase]string{
	PhaseLineup:       "LINEUP",
	PhaseTakeoffRoll:  "TAKEOFF_ROLL",
	PhaseV1:           "V1",
	PhaseRotate:       "ROTATE",
	PhaseLiftoff:      "LIFTOFF",
	PhaseInitialClimb: "INITIAL_CLIMB",
	PhaseClimb:        "CLIMB",
	PhaseCruise:       "CRUISE",
	PhaseDescent:      "DESCENT",
	PhaseApproach:     "APPROACH",
	PhaseFinal:        "FINAL",
	PhaseLanding:      "LANDING",
	PhaseTaxiIn:       "TAXI_IN",
	PhaseComplete:     "COMPLETE",
}

func (p FlightPhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText lets phases serialize by name.
func (p FlightPhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// IsGround reports whether the phase belongs to the runway-anchored ground
// regime. Positions in ground phases derive only from the runway centerline,
// never from route interpolation.
func (p FlightPhase) IsGround() bool {
	return p <= PhaseLiftoff
}
