package sqlite

import (
	"time"
)

// DispatchRecord is one stored dispatch decision.
type DispatchRecord struct {
	ID              int64     `json:"id"`
	Flight          string    `json:"flight"`
	AircraftType    string    `json:"aircraft_type"`
	RouteDistanceNM float64   `json:"route_distance_nm"`
	Feasible        bool      `json:"feasible"`
	BlockFuelKg     float64   `json:"block_fuel_kg"`
	TOWKg           float64   `json:"tow_kg"`
	ReasonsJSON     string    `json:"reasons_json"`
	WarningsJSON    string    `json:"warnings_json"`
	CreatedAt       time.Time `json:"created_at"`
}
