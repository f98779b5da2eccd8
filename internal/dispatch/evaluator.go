package dispatch

import (
	"fmt"

	"github.com/s3lm4n/flight-planner/internal/config"
)

// Evaluate runs every dispatch rule over the input and folds the outcomes
// into a single GO/NO-GO decision. It is referentially transparent and never
// fails: every rule violation becomes a blocking reason, every marginal
// condition a warning, and Feasible is true exactly when there are no
// reasons. Warnings never affect feasibility.
func Evaluate(in Input, policy config.DispatchPolicy) Result {
	fuel := planFuel(in.Aircraft, in.RouteDistanceNM, policy)
	weights := buildWeights(in.Aircraft, in.PayloadKg, fuel)

	checks := map[string]CheckResult{
		CheckRange:            checkRange(in, policy),
		CheckFuel:             checkFuel(in, fuel),
		CheckWeights:          checkWeights(in, weights),
		CheckDepartureRunway:  checkDepartureRunway(in, policy),
		CheckArrivalRunway:    checkArrivalRunway(in, policy),
		CheckDepartureWeather: checkDepartureWeather(in, policy),
		CheckArrivalWeather:   checkArrivalWeather(in),
		CheckCrosswind:        checkCrosswind(in),
	}

	// Reasons follow the fixed check order so identical input yields an
	// identical result, reasons included.
	reasons := []string{}
	for _, name := range checkOrder {
		if c := checks[name]; !c.Passed {
			reasons = append(reasons, c.Message)
		}
	}

	warnings := marginalWarnings(in, policy, fuel, weights, checks)

	return Result{
		Feasible: len(reasons) == 0,
		Reasons:  reasons,
		Warnings: warnings,
		Checks:   checks,
		Fuel:     fuel,
		Weights:  weights,
	}
}

// marginalWarnings flags passing-but-tight margins. A failed check never
// also warns; the blocking reason already covers it.
func marginalWarnings(in Input, policy config.DispatchPolicy, fuel FuelPlan, weights WeightSummary, checks map[string]CheckResult) []string {
	warnings := []string{}

	if checks[CheckRange].Passed {
		margin := policy.RangeFactor*in.Aircraft.MaxRangeNM - in.RouteDistanceNM
		if margin < policy.WarnRangeMarginNM {
			warnings = append(warnings,
				fmt.Sprintf("range margin only %.0f NM", margin))
		}
	}

	if checks[CheckFuel].Passed {
		margin := in.Aircraft.FuelCapacityKg - fuel.BlockFuelKg
		if margin < policy.WarnFuelMarginKg {
			warnings = append(warnings,
				fmt.Sprintf("fuel margin only %.0f kg", margin))
		}
	}

	if checks[CheckWeights].Passed {
		margin := in.Aircraft.MTOWKg - weights.TOWKg
		if margin < policy.WarnTOWMarginKg {
			warnings = append(warnings,
				fmt.Sprintf("TOW margin only %.0f kg", margin))
		}
	}

	return warnings
}
