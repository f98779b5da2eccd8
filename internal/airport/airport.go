package airport

import (
	"fmt"
	"sort"

	"github.com/s3lm4n/flight-planner/internal/geo"
)

// RunwayEnd is one landing/takeoff direction of a runway, anchored at its
// own threshold and pointing at the reciprocal threshold.
type RunwayEnd struct {
	Designator        string         `json:"designator"` // e.g. "05", "23", "06L"
	HeadingTrueDeg    float64        `json:"heading_true_deg"`
	Threshold         geo.Coordinate `json:"threshold"`
	OppositeThreshold geo.Coordinate `json:"opposite_threshold"`
	ElevationFt       float64        `json:"elevation_ft"`
	TORAFt            float64        `json:"tora_ft"` // takeoff run available
	TODAFt            float64        `json:"toda_ft"` // takeoff distance available
	ASDAFt            float64        `json:"asda_ft"` // accelerate-stop distance available
	LDAFt             float64        `json:"lda_ft"`  // landing distance available
	Surface           string         `json:"surface"` // e.g. "ASP", "CON", "GRS"
}

// UnitVector returns the per-NM centerline step from the threshold toward
// the reciprocal threshold.
func (r RunwayEnd) UnitVector() geo.UnitVector {
	return geo.RunwayUnitVector(r.Threshold, r.OppositeThreshold)
}

// LengthFt returns the paved centerline length between the two thresholds.
func (r RunwayEnd) LengthFt() float64 {
	return geo.NMToFeet(geo.DistanceNM(r.Threshold, r.OppositeThreshold))
}

// Airport is one airport with its runway ends.
type Airport struct {
	ICAO        string         `json:"icao"`
	Name        string         `json:"name"`
	Position    geo.Coordinate `json:"position"`
	ElevationFt float64        `json:"elevation_ft"`
	RunwayEnds  []RunwayEnd    `json:"runway_ends"`
}

// RunwayEnd returns the runway end with the given designator.
func (a Airport) RunwayEnd(designator string) (RunwayEnd, error) {
	for _, end := range a.RunwayEnds {
		if end.Designator == designator {
			return end, nil
		}
	}
	return RunwayEnd{}, fmt.Errorf("airport %s has no runway end %q", a.ICAO, designator)
}

// ReciprocalEnd returns the opposite end of the runway the given end belongs
// to, matched by threshold geometry.
func (a Airport) ReciprocalEnd(end RunwayEnd) (RunwayEnd, error) {
	for _, other := range a.RunwayEnds {
		if other.Designator == end.Designator {
			continue
		}
		if other.Threshold == end.OppositeThreshold {
			return other, nil
		}
	}
	return RunwayEnd{}, fmt.Errorf("airport %s has no reciprocal for runway end %q", a.ICAO, end.Designator)
}

// Registry is an in-memory airport lookup keyed by ICAO code.
type Registry struct {
	airports map[string]Airport
}

// NewRegistry creates a registry holding the given airports.
func NewRegistry(airports []Airport) *Registry {
	m := make(map[string]Airport, len(airports))
	for _, a := range airports {
		m[a.ICAO] = a
	}
	return &Registry{airports: m}
}

// Get returns the airport with the given ICAO code.
func (r *Registry) Get(icao string) (Airport, error) {
	a, ok := r.airports[icao]
	if !ok {
		return Airport{}, fmt.Errorf("unknown airport: %s", icao)
	}
	return a, nil
}

// Codes returns all known ICAO codes, sorted.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.airports))
	for code := range r.airports {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
