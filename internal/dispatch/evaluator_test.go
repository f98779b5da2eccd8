package dispatch

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/s3lm4n/flight-planner/internal/aircraft"
	"github.com/s3lm4n/flight-planner/internal/airport"
	"github.com/s3lm4n/flight-planner/internal/config"
	"github.com/s3lm4n/flight-planner/internal/wx"
)

func b738(t *testing.T) aircraft.PerformanceProfile {
	t.Helper()
	perf, err := aircraft.BuiltIn().Get("B738")
	if err != nil {
		t.Fatalf("B738 not in registry: %v", err)
	}
	return perf
}

func runwayEnd(t *testing.T, icao, designator string) airport.RunwayEnd {
	t.Helper()
	a, err := airport.BuiltIn().Get(icao)
	if err != nil {
		t.Fatalf("airport %s: %v", icao, err)
	}
	end, err := a.RunwayEnd(designator)
	if err != nil {
		t.Fatalf("runway %s %s: %v", icao, designator, err)
	}
	return end
}

func mediumHaulInput(t *testing.T) Input {
	t.Helper()
	return Input{
		Flight:          "FP101",
		Aircraft:        b738(t),
		PayloadKg:       15000,
		RouteDistanceNM: 1000,
		DepartureRunway: runwayEnd(t, "CYYZ", "05"),
		ArrivalRunway:   runwayEnd(t, "KMIA", "09"),
	}
}

func TestEvaluateFeasibleMediumHaul(t *testing.T) {
	in := mediumHaulInput(t)
	result := Evaluate(in, config.DefaultDispatchPolicy())

	if !result.Feasible {
		t.Fatalf("expected feasible, got reasons %v", result.Reasons)
	}
	if len(result.Reasons) != 0 {
		t.Errorf("feasible result carries reasons: %v", result.Reasons)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("comfortable margins should not warn: %v", result.Warnings)
	}
	for name, check := range result.Checks {
		if !check.Passed {
			t.Errorf("check %s failed: %s", name, check.Message)
		}
	}
}

func TestEvaluateFuelPlan(t *testing.T) {
	in := mediumHaulInput(t)
	policy := config.DefaultDispatchPolicy()
	result := Evaluate(in, policy)
	fuel := result.Fuel

	// Taxi is duration times flow.
	wantTaxi := policy.TaxiOutHours * in.Aircraft.TaxiFlowKgH
	if math.Abs(fuel.TaxiKg-wantTaxi) > 0.01 {
		t.Errorf("taxi fuel: expected %f, got %f", wantTaxi, fuel.TaxiKg)
	}

	// Contingency is the policy fraction of trip.
	wantCont := policy.ContingencyFrac * fuel.TripKg
	if math.Abs(fuel.ContingencyKg-wantCont) > 0.01 {
		t.Errorf("contingency: expected %f, got %f", wantCont, fuel.ContingencyKg)
	}

	// Block is the component sum rounded up to the rounding quantum.
	sum := fuel.TaxiKg + fuel.TripKg + fuel.ContingencyKg + fuel.AlternateKg + fuel.FinalReserveKg
	if fuel.BlockFuelKg < sum {
		t.Errorf("block %f below component sum %f", fuel.BlockFuelKg, sum)
	}
	if fuel.BlockFuelKg-sum >= policy.BlockFuelRoundKg {
		t.Errorf("block %f over-rounded above sum %f", fuel.BlockFuelKg, sum)
	}
	if mod := math.Mod(fuel.BlockFuelKg, policy.BlockFuelRoundKg); mod > 1e-9 {
		t.Errorf("block %f not a multiple of %f", fuel.BlockFuelKg, policy.BlockFuelRoundKg)
	}
}

func TestEvaluateWeights(t *testing.T) {
	in := mediumHaulInput(t)
	result := Evaluate(in, config.DefaultDispatchPolicy())
	w := result.Weights

	if math.Abs(w.ZFWKg-(in.Aircraft.OEWKg+in.PayloadKg)) > 0.01 {
		t.Errorf("ZFW: expected %f, got %f", in.Aircraft.OEWKg+in.PayloadKg, w.ZFWKg)
	}
	if math.Abs(w.TOWKg-(w.ZFWKg+result.Fuel.BlockFuelKg)) > 0.01 {
		t.Errorf("TOW: expected ZFW+block %f, got %f", w.ZFWKg+result.Fuel.BlockFuelKg, w.TOWKg)
	}
	// Landing weight sheds only the fuel burned before landing.
	wantLW := w.TOWKg - result.Fuel.TaxiKg - result.Fuel.TripKg
	if math.Abs(w.LWKg-wantLW) > 0.01 {
		t.Errorf("LW: expected %f, got %f", wantLW, w.LWKg)
	}
}

func TestEvaluateShortLegNoCruise(t *testing.T) {
	in := mediumHaulInput(t)
	in.RouteDistanceNM = 150 // inside climb + descent allowances

	result := Evaluate(in, config.DefaultDispatchPolicy())
	perf := in.Aircraft
	policy := config.DefaultDispatchPolicy()

	// Trip collapses to climb + descent only.
	wantTrip := policy.ClimbHours*perf.ClimbFlowKgH + policy.DescentHours*perf.DescentFlowKgH
	if math.Abs(result.Fuel.TripKg-wantTrip) > 0.01 {
		t.Errorf("short-leg trip: expected %f, got %f", wantTrip, result.Fuel.TripKg)
	}
}

func TestEvaluateRangeExceeded(t *testing.T) {
	in := mediumHaulInput(t)
	in.RouteDistanceNM = 3000 // beyond 92% of the B738's 2935 NM

	result := Evaluate(in, config.DefaultDispatchPolicy())
	if result.Feasible {
		t.Fatal("expected infeasible")
	}
	if len(result.Reasons) != 1 {
		t.Fatalf("expected exactly the range reason, got %v", result.Reasons)
	}
	if !strings.Contains(result.Reasons[0], "exceeds usable range") {
		t.Errorf("unexpected reason: %s", result.Reasons[0])
	}
	if result.Checks[CheckRange].Passed {
		t.Error("range check marked passed")
	}
}

func TestEvaluateShortRunway(t *testing.T) {
	in := mediumHaulInput(t)
	in.DepartureRunway = airport.RunwayEnd{
		Designator: "12",
		TORAFt:     7000, // below 7800 * 1.15 = 8970
		LDAFt:      7000,
		Surface:    "ASP",
	}

	result := Evaluate(in, config.DefaultDispatchPolicy())
	if result.Feasible {
		t.Fatal("expected infeasible")
	}

	check := result.Checks[CheckDepartureRunway]
	if check.Passed {
		t.Fatal("departure runway check marked passed")
	}
	// The shortfall is itemized: 8970 required minus 7000 available.
	if !strings.Contains(check.Message, "1970 ft short") {
		t.Errorf("expected shortfall in message, got %q", check.Message)
	}
}

func TestEvaluateUnpavedRunway(t *testing.T) {
	in := mediumHaulInput(t)
	in.ArrivalRunway.Surface = "GRS"

	result := Evaluate(in, config.DefaultDispatchPolicy())
	if result.Feasible {
		t.Fatal("expected infeasible")
	}
	if !strings.Contains(result.Checks[CheckArrivalRunway].Message, "not paved") {
		t.Errorf("unexpected message: %s", result.Checks[CheckArrivalRunway].Message)
	}
}

func TestEvaluateMissingWeatherAssumesVMC(t *testing.T) {
	in := mediumHaulInput(t)
	in.DepartureWeather = nil
	in.ArrivalWeather = nil

	result := Evaluate(in, config.DefaultDispatchPolicy())
	if !result.Checks[CheckDepartureWeather].Passed {
		t.Error("missing departure METAR should pass")
	}
	if !result.Checks[CheckArrivalWeather].Passed {
		t.Error("missing arrival METAR should pass")
	}
	if !strings.Contains(result.Checks[CheckDepartureWeather].Message, "assume VMC") {
		t.Errorf("unexpected message: %s", result.Checks[CheckDepartureWeather].Message)
	}
}

func TestEvaluateDepartureVisibility(t *testing.T) {
	in := mediumHaulInput(t)
	in.DepartureWeather = &wx.Report{
		Visibility: wx.Visibility{Value: 200, Unit: wx.VisibilityMeters},
	}

	result := Evaluate(in, config.DefaultDispatchPolicy())
	if result.Checks[CheckDepartureWeather].Passed {
		t.Error("200 m visibility should block departure")
	}
}

func TestEvaluateArrivalMinima(t *testing.T) {
	in := mediumHaulInput(t)

	// Visibility below the CAT-I floor.
	in.ArrivalWeather = &wx.Report{
		Visibility: wx.Visibility{Value: 400, Unit: wx.VisibilityMeters},
	}
	result := Evaluate(in, config.DefaultDispatchPolicy())
	if result.Checks[CheckArrivalWeather].Passed {
		t.Error("400 m arrival visibility should fail CAT-I minima")
	}

	// Good visibility but a ceiling below minimums.
	in.ArrivalWeather = &wx.Report{
		Visibility: wx.Visibility{Value: 5000, Unit: wx.VisibilityMeters},
		Clouds: []wx.CloudLayer{
			{Coverage: wx.CoverageScattered, BaseFt: 100},
			{Coverage: wx.CoverageOvercast, BaseFt: 150},
		},
	}
	result = Evaluate(in, config.DefaultDispatchPolicy())
	if result.Checks[CheckArrivalWeather].Passed {
		t.Error("150 ft overcast should fail CAT-I minima")
	}

	// Scattered layers alone never form a ceiling.
	in.ArrivalWeather = &wx.Report{
		Visibility: wx.Visibility{Value: 5000, Unit: wx.VisibilityMeters},
		Clouds:     []wx.CloudLayer{{Coverage: wx.CoverageScattered, BaseFt: 100}},
	}
	result = Evaluate(in, config.DefaultDispatchPolicy())
	if !result.Checks[CheckArrivalWeather].Passed {
		t.Errorf("scattered layer blocked dispatch: %s", result.Checks[CheckArrivalWeather].Message)
	}
}

func TestEvaluateCrosswind(t *testing.T) {
	in := mediumHaulInput(t)

	// KMIA 09 with wind from due north at 20 kt: full 20 kt crosswind,
	// within the B738's 33 kt limit.
	in.ArrivalWeather = &wx.Report{
		Wind:       wx.Wind{DirectionDeg: 0, SpeedKts: 20},
		Visibility: wx.Visibility{Value: 9999, Unit: wx.VisibilityMeters},
	}
	result := Evaluate(in, config.DefaultDispatchPolicy())
	if !result.Checks[CheckCrosswind].Passed {
		t.Errorf("20 kt crosswind blocked: %s", result.Checks[CheckCrosswind].Message)
	}

	// 40 kt exceeds the limit.
	in.ArrivalWeather.Wind.SpeedKts = 40
	result = Evaluate(in, config.DefaultDispatchPolicy())
	if result.Checks[CheckCrosswind].Passed {
		t.Error("40 kt crosswind should block")
	}

	// Gusts count toward the limit even when the steady wind is fine.
	gust := 40.0
	in.ArrivalWeather.Wind = wx.Wind{DirectionDeg: 0, SpeedKts: 20, GustKts: &gust}
	result = Evaluate(in, config.DefaultDispatchPolicy())
	if result.Checks[CheckCrosswind].Passed {
		t.Error("40 kt gust should block")
	}

	// Variable wind has no resolvable component.
	in.ArrivalWeather.Wind = wx.Wind{SpeedKts: 40, Variable: true}
	result = Evaluate(in, config.DefaultDispatchPolicy())
	if !result.Checks[CheckCrosswind].Passed {
		t.Errorf("variable wind blocked: %s", result.Checks[CheckCrosswind].Message)
	}
}

func TestEvaluateTailwind(t *testing.T) {
	in := mediumHaulInput(t)

	// KMIA 09 with wind from 270 at 15 kt: 15 kt tailwind, over the
	// B738's 10 kt limit.
	in.ArrivalWeather = &wx.Report{
		Wind:       wx.Wind{DirectionDeg: 270, SpeedKts: 15},
		Visibility: wx.Visibility{Value: 9999, Unit: wx.VisibilityMeters},
	}
	result := Evaluate(in, config.DefaultDispatchPolicy())
	if result.Checks[CheckCrosswind].Passed {
		t.Error("15 kt tailwind should block")
	}
	if !strings.Contains(result.Checks[CheckCrosswind].Message, "tailwind") {
		t.Errorf("unexpected message: %s", result.Checks[CheckCrosswind].Message)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	in := mediumHaulInput(t)
	in.RouteDistanceNM = 3000
	in.ArrivalWeather = &wx.Report{
		Wind:       wx.Wind{DirectionDeg: 0, SpeedKts: 40},
		Visibility: wx.Visibility{Value: 400, Unit: wx.VisibilityMeters},
	}
	policy := config.DefaultDispatchPolicy()

	first := Evaluate(in, policy)
	second := Evaluate(in, policy)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input produced different results")
	}
	if len(first.Reasons) < 3 {
		t.Fatalf("expected multiple reasons, got %v", first.Reasons)
	}
}

func TestEvaluateWarningsDoNotBlock(t *testing.T) {
	in := mediumHaulInput(t)
	in.RouteDistanceNM = 2650 // passes 2700 NM usable range with a thin margin

	result := Evaluate(in, config.DefaultDispatchPolicy())
	if !result.Feasible {
		t.Fatalf("marginal range should still pass, got %v", result.Reasons)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "range margin") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected range margin warning, got %v", result.Warnings)
	}
}

func TestEvaluateFailedCheckDoesNotWarn(t *testing.T) {
	in := mediumHaulInput(t)
	in.RouteDistanceNM = 3000

	result := Evaluate(in, config.DefaultDispatchPolicy())
	for _, w := range result.Warnings {
		if strings.Contains(w, "range margin") {
			t.Errorf("failed range check also warned: %s", w)
		}
	}
}

func TestEvaluateOverweight(t *testing.T) {
	in := mediumHaulInput(t)
	in.PayloadKg = 25000 // ZFW 66413 exceeds MZFW 62731

	result := Evaluate(in, config.DefaultDispatchPolicy())
	if result.Feasible {
		t.Fatal("expected infeasible")
	}
	if !strings.Contains(result.Checks[CheckWeights].Message, "MZFW") {
		t.Errorf("unexpected message: %s", result.Checks[CheckWeights].Message)
	}
}
