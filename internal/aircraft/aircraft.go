package aircraft

import (
	"fmt"
	"sort"
)

// PerformanceProfile is the canonical per-type performance record consumed
// by the dispatch evaluator and the simulation engine. Values are typical
// airline planning figures, not certified performance data.
type PerformanceProfile struct {
	TypeCode string `json:"type_code"` // ICAO type designator, e.g. "B738"
	Name     string `json:"name"`

	// Weights, kg
	OEWKg          float64 `json:"oew_kg"`
	MTOWKg         float64 `json:"mtow_kg"`
	MLWKg          float64 `json:"mlw_kg"`
	MZFWKg         float64 `json:"mzfw_kg"`
	FuelCapacityKg float64 `json:"fuel_capacity_kg"`

	// Speeds, knots
	V1Kts        float64 `json:"v1_kts"`
	VRKts        float64 `json:"vr_kts"`
	V2Kts        float64 `json:"v2_kts"`
	VrefKts      float64 `json:"vref_kts"`
	CruiseTASKts float64 `json:"cruise_tas_kts"`

	// Phase fuel flows, kg/h
	TaxiFlowKgH    float64 `json:"taxi_flow_kgh"`
	ClimbFlowKgH   float64 `json:"climb_flow_kgh"`
	CruiseFlowKgH  float64 `json:"cruise_flow_kgh"`
	DescentFlowKgH float64 `json:"descent_flow_kgh"`
	HoldingFlowKgH float64 `json:"holding_flow_kgh"`

	// Field performance, ft
	TakeoffDistanceFt float64 `json:"takeoff_distance_ft"`
	LandingDistanceFt float64 `json:"landing_distance_ft"`

	MaxRangeNM float64 `json:"max_range_nm"`

	// Wind limits, knots
	MaxCrosswindKts float64 `json:"max_crosswind_kts"`
	MaxTailwindKts  float64 `json:"max_tailwind_kts"`

	// CAT-I approach minima
	MinVisibilityM float64 `json:"min_visibility_m"`
	MinCeilingFt   float64 `json:"min_ceiling_ft"`
}

// Validate reports the first structurally impossible field, if any.
func (p PerformanceProfile) Validate() error {
	switch {
	case p.TypeCode == "":
		return fmt.Errorf("performance profile missing type code")
	case p.OEWKg <= 0 || p.MTOWKg <= p.OEWKg:
		return fmt.Errorf("%s: OEW/MTOW out of order (%.0f / %.0f)", p.TypeCode, p.OEWKg, p.MTOWKg)
	case p.CruiseTASKts <= 0:
		return fmt.Errorf("%s: non-positive cruise TAS", p.TypeCode)
	case p.TakeoffDistanceFt <= 0 || p.LandingDistanceFt <= 0:
		return fmt.Errorf("%s: non-positive field performance", p.TypeCode)
	case p.FuelCapacityKg <= 0:
		return fmt.Errorf("%s: non-positive fuel capacity", p.TypeCode)
	}
	return nil
}

// Registry is an in-memory performance lookup keyed by ICAO type code.
type Registry struct {
	profiles map[string]PerformanceProfile
}

// NewRegistry creates a registry holding the given profiles.
func NewRegistry(profiles []PerformanceProfile) (*Registry, error) {
	m := make(map[string]PerformanceProfile, len(profiles))
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		m[p.TypeCode] = p
	}
	return &Registry{profiles: m}, nil
}

// Get returns the profile for the given ICAO type code.
func (r *Registry) Get(typeCode string) (PerformanceProfile, error) {
	p, ok := r.profiles[typeCode]
	if !ok {
		return PerformanceProfile{}, fmt.Errorf("unknown aircraft type: %s", typeCode)
	}
	return p, nil
}

// Codes returns all known type codes, sorted.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.profiles))
	for code := range r.profiles {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
