package dispatch

import (
	"math"

	"github.com/s3lm4n/flight-planner/internal/aircraft"
	"github.com/s3lm4n/flight-planner/internal/config"
)

// planFuel builds the phase-segmented fuel plan for the given route
// distance. Climb and descent burn over fixed distance allowances and fixed
// durations; whatever distance remains is burned at cruise flow over
// cruise-speed-derived time. Short legs where climb + descent cover the
// whole route simply have no cruise segment.
func planFuel(perf aircraft.PerformanceProfile, routeDistanceNM float64, policy config.DispatchPolicy) FuelPlan {
	taxi := policy.TaxiOutHours * perf.TaxiFlowKgH

	climb := policy.ClimbHours * perf.ClimbFlowKgH
	descent := policy.DescentHours * perf.DescentFlowKgH

	cruiseDistanceNM := routeDistanceNM - policy.ClimbDistanceNM - policy.DescentDistanceNM
	cruise := 0.0
	if cruiseDistanceNM > 0 && perf.CruiseTASKts > 0 {
		cruiseHours := cruiseDistanceNM / perf.CruiseTASKts
		cruise = cruiseHours * perf.CruiseFlowKgH
	}

	trip := climb + cruise + descent
	contingency := policy.ContingencyFrac * trip
	alternate := policy.AlternateHours * perf.CruiseFlowKgH
	finalReserve := policy.FinalReserveHours * perf.HoldingFlowKgH

	total := taxi + trip + contingency + alternate + finalReserve

	round := policy.BlockFuelRoundKg
	if round <= 0 {
		round = 1
	}
	block := math.Ceil(total/round) * round

	return FuelPlan{
		TaxiKg:         taxi,
		TripKg:         trip,
		ContingencyKg:  contingency,
		AlternateKg:    alternate,
		FinalReserveKg: finalReserve,
		BlockFuelKg:    block,
	}
}

// buildWeights derives the weight summary from the fuel plan.
func buildWeights(perf aircraft.PerformanceProfile, payloadKg float64, fuel FuelPlan) WeightSummary {
	zfw := perf.OEWKg + payloadKg
	tow := zfw + fuel.BlockFuelKg
	lw := tow - fuel.TaxiKg - fuel.TripKg

	return WeightSummary{
		OEWKg:     perf.OEWKg,
		PayloadKg: payloadKg,
		ZFWKg:     zfw,
		TOWKg:     tow,
		LWKg:      lw,
	}
}
