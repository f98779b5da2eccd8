package aircraft

// BuiltIn returns the registry seeded with the bundled fleet. The figures
// are typical planning values for each type.
func BuiltIn() *Registry {
	r, err := NewRegistry([]PerformanceProfile{b738(), a320(), b77w()})
	if err != nil {
		// The bundled profiles are fixed; a validation failure here is a
		// programming error.
		panic(err)
	}
	return r
}

func b738() PerformanceProfile {
	return PerformanceProfile{
		TypeCode: "B738",
		Name:     "Boeing 737-800",

		OEWKg:          41413,
		MTOWKg:         79015,
		MLWKg:          66360,
		MZFWKg:         62731,
		FuelCapacityKg: 20730,

		V1Kts:        145,
		VRKts:        148,
		V2Kts:        153,
		VrefKts:      140,
		CruiseTASKts: 450,

		TaxiFlowKgH:    600,
		ClimbFlowKgH:   2800,
		CruiseFlowKgH:  2300,
		DescentFlowKgH: 1800,
		HoldingFlowKgH: 2200,

		TakeoffDistanceFt: 7800,
		LandingDistanceFt: 5500,

		MaxRangeNM: 2935,

		MaxCrosswindKts: 33,
		MaxTailwindKts:  10,

		MinVisibilityM: 550,
		MinCeilingFt:   200,
	}
}

func a320() PerformanceProfile {
	return PerformanceProfile{
		TypeCode: "A320",
		Name:     "Airbus A320-200",

		OEWKg:          42600,
		MTOWKg:         78000,
		MLWKg:          66000,
		MZFWKg:         62500,
		FuelCapacityKg: 19046,

		V1Kts:        138,
		VRKts:        142,
		V2Kts:        148,
		VrefKts:      136,
		CruiseTASKts: 447,

		TaxiFlowKgH:    550,
		ClimbFlowKgH:   2600,
		CruiseFlowKgH:  2200,
		DescentFlowKgH: 1700,
		HoldingFlowKgH: 2100,

		TakeoffDistanceFt: 7200,
		LandingDistanceFt: 5200,

		MaxRangeNM: 3300,

		MaxCrosswindKts: 38,
		MaxTailwindKts:  10,

		MinVisibilityM: 550,
		MinCeilingFt:   200,
	}
}

func b77w() PerformanceProfile {
	return PerformanceProfile{
		TypeCode: "B77W",
		Name:     "Boeing 777-300ER",

		OEWKg:          167829,
		MTOWKg:         351533,
		MLWKg:          251290,
		MZFWKg:         237683,
		FuelCapacityKg: 145538,

		V1Kts:        155,
		VRKts:        165,
		V2Kts:        175,
		VrefKts:      150,
		CruiseTASKts: 490,

		TaxiFlowKgH:    1200,
		ClimbFlowKgH:   8000,
		CruiseFlowKgH:  6800,
		DescentFlowKgH: 5200,
		HoldingFlowKgH: 6500,

		TakeoffDistanceFt: 9500,
		LandingDistanceFt: 6500,

		MaxRangeNM: 7370,

		MaxCrosswindKts: 38,
		MaxTailwindKts:  15,

		MinVisibilityM: 550,
		MinCeilingFt:   200,
	}
}
