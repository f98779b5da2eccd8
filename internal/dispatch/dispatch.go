// Package dispatch decides whether a planned flight leg is operationally
// feasible. Evaluation is a pure function: identical input always produces
// an identical result, so a GO/NO-GO decision can be reproduced exactly.
package dispatch

import (
	"github.com/s3lm4n/flight-planner/internal/aircraft"
	"github.com/s3lm4n/flight-planner/internal/airport"
	"github.com/s3lm4n/flight-planner/internal/wx"
)

// Input is everything the evaluator needs for one flight leg.
type Input struct {
	Flight          string                      `json:"flight"`
	Aircraft        aircraft.PerformanceProfile `json:"aircraft"`
	PayloadKg       float64                     `json:"payload_kg"`
	RouteDistanceNM float64                     `json:"route_distance_nm"`
	DepartureRunway airport.RunwayEnd           `json:"departure_runway"`
	ArrivalRunway   airport.RunwayEnd           `json:"arrival_runway"`

	// Nil reports mean no METAR is available and degrade to "assume VMC".
	DepartureWeather *wx.Report `json:"departure_weather,omitempty"`
	ArrivalWeather   *wx.Report `json:"arrival_weather,omitempty"`
}

// FuelPlan is the phase-segmented fuel buildup for one leg.
type FuelPlan struct {
	TaxiKg         float64 `json:"taxi_kg"`
	TripKg         float64 `json:"trip_kg"`
	ContingencyKg  float64 `json:"contingency_kg"`
	AlternateKg    float64 `json:"alternate_kg"`
	FinalReserveKg float64 `json:"final_reserve_kg"`

	// BlockFuelKg is the component sum rounded up to the nearest 100 kg.
	// The round-up is deliberate operational practice, not noise.
	BlockFuelKg float64 `json:"block_fuel_kg"`
}

// WeightSummary is the weight buildup for one leg. Landing weight excludes
// only the fuel actually burned before landing (taxi + trip), not the whole
// block.
type WeightSummary struct {
	OEWKg     float64 `json:"oew_kg"`
	PayloadKg float64 `json:"payload_kg"`
	ZFWKg     float64 `json:"zfw_kg"`
	TOWKg     float64 `json:"tow_kg"`
	LWKg      float64 `json:"lw_kg"`
}

// CheckResult is the outcome of one dispatch rule.
type CheckResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// Check names, also the keys of Result.Checks.
const (
	CheckRange            = "range"
	CheckFuel             = "fuel"
	CheckWeights          = "weights"
	CheckDepartureRunway  = "departureRunway"
	CheckArrivalRunway    = "arrivalRunway"
	CheckDepartureWeather = "departureWeather"
	CheckArrivalWeather   = "arrivalWeather"
	CheckCrosswind        = "crosswind"
)

// checkOrder fixes the order reasons are reported in.
var checkOrder = []string{
	CheckRange,
	CheckFuel,
	CheckWeights,
	CheckDepartureRunway,
	CheckArrivalRunway,
	CheckDepartureWeather,
	CheckArrivalWeather,
	CheckCrosswind,
}

// Result is the full dispatch decision.
type Result struct {
	Feasible bool                   `json:"feasible"`
	Reasons  []string               `json:"reasons"`
	Warnings []string               `json:"warnings"`
	Checks   map[string]CheckResult `json:"checks"`
	Fuel     FuelPlan               `json:"fuel"`
	Weights  WeightSummary          `json:"weights"`
}
