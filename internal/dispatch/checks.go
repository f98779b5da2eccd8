package dispatch

import (
	"fmt"

	"github.com/s3lm4n/flight-planner/internal/airport"
	"github.com/s3lm4n/flight-planner/internal/config"
	"github.com/s3lm4n/flight-planner/internal/geo"
	"github.com/s3lm4n/flight-planner/internal/wx"
)

// Each check is a pure predicate over the input and computed summary. A
// failed check blocks dispatch; marginal-but-passing conditions surface as
// warnings from the evaluator, not here.

func checkRange(in Input, policy config.DispatchPolicy) CheckResult {
	usable := policy.RangeFactor * in.Aircraft.MaxRangeNM
	if in.RouteDistanceNM > usable {
		return CheckResult{
			Name:   CheckRange,
			Passed: false,
			Message: fmt.Sprintf("route %.0f NM exceeds usable range %.0f NM (%.0f%% of %.0f NM)",
				in.RouteDistanceNM, usable, policy.RangeFactor*100, in.Aircraft.MaxRangeNM),
		}
	}
	return CheckResult{
		Name:    CheckRange,
		Passed:  true,
		Message: fmt.Sprintf("route %.0f NM within usable range %.0f NM", in.RouteDistanceNM, usable),
	}
}

func checkFuel(in Input, fuel FuelPlan) CheckResult {
	if fuel.BlockFuelKg > in.Aircraft.FuelCapacityKg {
		return CheckResult{
			Name:   CheckFuel,
			Passed: false,
			Message: fmt.Sprintf("block fuel %.0f kg exceeds tank capacity %.0f kg",
				fuel.BlockFuelKg, in.Aircraft.FuelCapacityKg),
		}
	}
	return CheckResult{
		Name:    CheckFuel,
		Passed:  true,
		Message: fmt.Sprintf("block fuel %.0f kg within capacity %.0f kg", fuel.BlockFuelKg, in.Aircraft.FuelCapacityKg),
	}
}

func checkWeights(in Input, weights WeightSummary) CheckResult {
	perf := in.Aircraft
	switch {
	case weights.ZFWKg > perf.MZFWKg:
		return CheckResult{
			Name:    CheckWeights,
			Passed:  false,
			Message: fmt.Sprintf("ZFW %.0f kg exceeds MZFW %.0f kg", weights.ZFWKg, perf.MZFWKg),
		}
	case weights.TOWKg > perf.MTOWKg:
		return CheckResult{
			Name:    CheckWeights,
			Passed:  false,
			Message: fmt.Sprintf("TOW %.0f kg exceeds MTOW %.0f kg", weights.TOWKg, perf.MTOWKg),
		}
	case weights.LWKg > perf.MLWKg:
		return CheckResult{
			Name:    CheckWeights,
			Passed:  false,
			Message: fmt.Sprintf("landing weight %.0f kg exceeds MLW %.0f kg", weights.LWKg, perf.MLWKg),
		}
	}
	return CheckResult{
		Name:   CheckWeights,
		Passed: true,
		Message: fmt.Sprintf("TOW %.0f / LW %.0f / ZFW %.0f kg within limits",
			weights.TOWKg, weights.LWKg, weights.ZFWKg),
	}
}

func surfacePaved(surface string, policy config.DispatchPolicy) bool {
	for _, s := range policy.PavedSurfaces {
		if s == surface {
			return true
		}
	}
	return false
}

func checkRunway(name string, runway airport.RunwayEnd, availableFt, nominalFt float64, policy config.DispatchPolicy) CheckResult {
	requiredFt := nominalFt * policy.RunwayLengthFactor

	if availableFt < requiredFt {
		return CheckResult{
			Name:   name,
			Passed: false,
			Message: fmt.Sprintf("runway %s: %.0f ft available, %.0f ft required (%.0f ft short)",
				runway.Designator, availableFt, requiredFt, requiredFt-availableFt),
		}
	}
	if !surfacePaved(runway.Surface, policy) {
		return CheckResult{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("runway %s: surface %q is not paved", runway.Designator, runway.Surface),
		}
	}
	return CheckResult{
		Name:   name,
		Passed: true,
		Message: fmt.Sprintf("runway %s: %.0f ft available, %.0f ft required",
			runway.Designator, availableFt, requiredFt),
	}
}

func checkDepartureRunway(in Input, policy config.DispatchPolicy) CheckResult {
	return checkRunway(CheckDepartureRunway, in.DepartureRunway,
		in.DepartureRunway.TORAFt, in.Aircraft.TakeoffDistanceFt, policy)
}

func checkArrivalRunway(in Input, policy config.DispatchPolicy) CheckResult {
	return checkRunway(CheckArrivalRunway, in.ArrivalRunway,
		in.ArrivalRunway.LDAFt, in.Aircraft.LandingDistanceFt, policy)
}

func checkDepartureWeather(in Input, policy config.DispatchPolicy) CheckResult {
	report := in.DepartureWeather
	if report == nil {
		return CheckResult{
			Name:    CheckDepartureWeather,
			Passed:  true,
			Message: "no departure METAR, assume VMC",
		}
	}

	visM := report.Visibility.Meters()
	if visM < policy.DepartureMinVisM {
		return CheckResult{
			Name:   CheckDepartureWeather,
			Passed: false,
			Message: fmt.Sprintf("departure visibility %.0f m below %.0f m takeoff minimum",
				visM, policy.DepartureMinVisM),
		}
	}
	return CheckResult{
		Name:    CheckDepartureWeather,
		Passed:  true,
		Message: fmt.Sprintf("departure visibility %.0f m", visM),
	}
}

func checkArrivalWeather(in Input) CheckResult {
	report := in.ArrivalWeather
	if report == nil {
		return CheckResult{
			Name:    CheckArrivalWeather,
			Passed:  true,
			Message: "no arrival METAR, assume VMC",
		}
	}

	visM := report.Visibility.Meters()
	if visM < in.Aircraft.MinVisibilityM {
		return CheckResult{
			Name:   CheckArrivalWeather,
			Passed: false,
			Message: fmt.Sprintf("arrival visibility %.0f m below CAT-I minimum %.0f m",
				visM, in.Aircraft.MinVisibilityM),
		}
	}

	if ceiling, ok := report.Ceiling(); ok && ceiling < in.Aircraft.MinCeilingFt {
		return CheckResult{
			Name:   CheckArrivalWeather,
			Passed: false,
			Message: fmt.Sprintf("arrival ceiling %.0f ft below CAT-I minimum %.0f ft",
				ceiling, in.Aircraft.MinCeilingFt),
		}
	}
	return CheckResult{
		Name:    CheckArrivalWeather,
		Passed:  true,
		Message: fmt.Sprintf("arrival weather above CAT-I minima (visibility %.0f m)", visM),
	}
}

// runwayCrosswind returns the crosswind component for one runway end under
// one report. A variable wind direction has no resolvable component.
func runwayCrosswind(runway airport.RunwayEnd, report *wx.Report) float64 {
	if report == nil || report.Wind.Variable {
		return 0
	}
	return geo.CrosswindComponent(runway.HeadingTrueDeg,
		report.Wind.DirectionDeg, report.Wind.EffectiveSpeedKts())
}

// runwayTailwind returns the tailwind component (>= 0) for one runway end.
func runwayTailwind(runway airport.RunwayEnd, report *wx.Report) float64 {
	if report == nil || report.Wind.Variable {
		return 0
	}
	hw := geo.HeadwindComponent(runway.HeadingTrueDeg,
		report.Wind.DirectionDeg, report.Wind.EffectiveSpeedKts())
	if hw >= 0 {
		return 0
	}
	return -hw
}

func checkCrosswind(in Input) CheckResult {
	depXW := runwayCrosswind(in.DepartureRunway, in.DepartureWeather)
	arrXW := runwayCrosswind(in.ArrivalRunway, in.ArrivalWeather)
	maxXW := depXW
	if arrXW > maxXW {
		maxXW = arrXW
	}

	if maxXW > in.Aircraft.MaxCrosswindKts {
		return CheckResult{
			Name:   CheckCrosswind,
			Passed: false,
			Message: fmt.Sprintf("crosswind %.0f kt exceeds aircraft limit %.0f kt",
				maxXW, in.Aircraft.MaxCrosswindKts),
		}
	}

	depTW := runwayTailwind(in.DepartureRunway, in.DepartureWeather)
	arrTW := runwayTailwind(in.ArrivalRunway, in.ArrivalWeather)
	maxTW := depTW
	if arrTW > maxTW {
		maxTW = arrTW
	}
	if maxTW > in.Aircraft.MaxTailwindKts {
		return CheckResult{
			Name:   CheckCrosswind,
			Passed: false,
			Message: fmt.Sprintf("tailwind %.0f kt exceeds aircraft limit %.0f kt",
				maxTW, in.Aircraft.MaxTailwindKts),
		}
	}

	return CheckResult{
		Name:    CheckCrosswind,
		Passed:  true,
		Message: fmt.Sprintf("max crosswind %.0f kt within limit %.0f kt", maxXW, in.Aircraft.MaxCrosswindKts),
	}
}
