package api

import (
	"errors"
	"fmt"

	"github.com/s3lm4n/flight-planner/internal/aircraft"
	"github.com/s3lm4n/flight-planner/internal/airport"
	"github.com/s3lm4n/flight-planner/internal/dispatch"
	"github.com/s3lm4n/flight-planner/internal/geo"
	"github.com/s3lm4n/flight-planner/internal/wx"
)

var errInvalidLimit = errors.New("limit must be a positive integer")

// RunwaySelection names one runway end at one airport.
type RunwaySelection struct {
	Airport string `json:"airport"` // ICAO code
	Runway  string `json:"runway"`  // runway end designator
}

// DispatchRequest is the evaluate/simulate request body.
type DispatchRequest struct {
	Flight       string          `json:"flight"`
	AircraftType string          `json:"aircraft_type"`
	PayloadKg    float64         `json:"payload_kg"`
	Departure    RunwaySelection `json:"departure"`
	Arrival      RunwaySelection `json:"arrival"`

	// RouteDistanceNM overrides the great-circle threshold-to-threshold
	// distance when positive.
	RouteDistanceNM float64 `json:"route_distance_nm,omitempty"`

	// CruiseAltFt only matters when creating a simulation; zero picks a
	// distance-based default.
	CruiseAltFt float64 `json:"cruise_alt_ft,omitempty"`

	DepartureWeather *wx.Report `json:"departure_weather,omitempty"`
	ArrivalWeather   *wx.Report `json:"arrival_weather,omitempty"`
}

// ControlRequest is the simulation controls request body.
type ControlRequest struct {
	Action string  `json:"action"` // play, pause, stop, reset, seek, speed
	Value  float64 `json:"value,omitempty"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// resolveInput turns a request into a dispatch input using the registries.
func resolveInput(req DispatchRequest, aircraftReg *aircraft.Registry, airportReg *airport.Registry) (dispatch.Input, error) {
	perf, err := aircraftReg.Get(req.AircraftType)
	if err != nil {
		return dispatch.Input{}, err
	}

	depAirport, err := airportReg.Get(req.Departure.Airport)
	if err != nil {
		return dispatch.Input{}, err
	}
	depRunway, err := depAirport.RunwayEnd(req.Departure.Runway)
	if err != nil {
		return dispatch.Input{}, err
	}

	arrAirport, err := airportReg.Get(req.Arrival.Airport)
	if err != nil {
		return dispatch.Input{}, err
	}
	arrRunway, err := arrAirport.RunwayEnd(req.Arrival.Runway)
	if err != nil {
		return dispatch.Input{}, err
	}

	distance := req.RouteDistanceNM
	if distance <= 0 {
		distance = geo.DistanceNM(depRunway.Threshold, arrRunway.Threshold)
	}
	if distance <= 0 {
		return dispatch.Input{}, fmt.Errorf("degenerate route: thresholds coincide")
	}

	return dispatch.Input{
		Flight:           req.Flight,
		Aircraft:         perf,
		PayloadKg:        req.PayloadKg,
		RouteDistanceNM:  distance,
		DepartureRunway:  depRunway,
		ArrivalRunway:    arrRunway,
		DepartureWeather: req.DepartureWeather,
		ArrivalWeather:   req.ArrivalWeather,
	}, nil
}
