package airport

import (
	"github.com/s3lm4n/flight-planner/internal/geo"
)

// BuiltIn returns the registry seeded with the bundled airport set. Real
// deployments replace this with imported data; the bundled set keeps the
// planner usable out of the box.
func BuiltIn() *Registry {
	return NewRegistry([]Airport{cyyz(), kmia(), cyvr()})
}

func cyyz() Airport {
	thr05 := geo.Coordinate{Lat: 43.66358, Lon: -79.64537}
	thr23 := geo.Coordinate{Lat: 43.68737, Lon: -79.61390}

	return Airport{
		ICAO:        "CYYZ",
		Name:        "Toronto Pearson International",
		Position:    geo.Coordinate{Lat: 43.6777, Lon: -79.6248},
		ElevationFt: 569,
		RunwayEnds: []RunwayEnd{
			{
				Designator:        "05",
				HeadingTrueDeg:    44,
				Threshold:         thr05,
				OppositeThreshold: thr23,
				ElevationFt:       569,
				TORAFt:            11120,
				TODAFt:            11120,
				ASDAFt:            11120,
				LDAFt:             10700,
				Surface:           "ASP",
			},
			{
				Designator:        "23",
				HeadingTrueDeg:    224,
				Threshold:         thr23,
				OppositeThreshold: thr05,
				ElevationFt:       569,
				TORAFt:            11120,
				TODAFt:            11120,
				ASDAFt:            11120,
				LDAFt:             10700,
				Surface:           "ASP",
			},
		},
	}
}

func kmia() Airport {
	thr09 := geo.Coordinate{Lat: 25.79217, Lon: -80.30508}
	thr27 := geo.Coordinate{Lat: 25.79217, Lon: -80.26846}

	return Airport{
		ICAO:        "KMIA",
		Name:        "Miami International",
		Position:    geo.Coordinate{Lat: 25.7932, Lon: -80.2906},
		ElevationFt: 9,
		RunwayEnds: []RunwayEnd{
			{
				Designator:        "09",
				HeadingTrueDeg:    90,
				Threshold:         thr09,
				OppositeThreshold: thr27,
				ElevationFt:       9,
				TORAFt:            13016,
				TODAFt:            13016,
				ASDAFt:            13016,
				LDAFt:             12500,
				Surface:           "ASP",
			},
			{
				Designator:        "27",
				HeadingTrueDeg:    270,
				Threshold:         thr27,
				OppositeThreshold: thr09,
				ElevationFt:       9,
				TORAFt:            13016,
				TODAFt:            13016,
				ASDAFt:            13016,
				LDAFt:             12500,
				Surface:           "ASP",
			},
		},
	}
}

func cyvr() Airport {
	thr09 := geo.Coordinate{Lat: 49.19678, Lon: -123.20162}
	thr27 := geo.Coordinate{Lat: 49.19678, Lon: -123.15914}

	return Airport{
		ICAO:        "CYVR",
		Name:        "Vancouver International",
		Position:    geo.Coordinate{Lat: 49.1947, Lon: -123.1792},
		ElevationFt: 14,
		RunwayEnds: []RunwayEnd{
			{
				Designator:        "09",
				HeadingTrueDeg:    90,
				Threshold:         thr09,
				OppositeThreshold: thr27,
				ElevationFt:       14,
				TORAFt:            9940,
				TODAFt:            9940,
				ASDAFt:            9940,
				LDAFt:             9400,
				Surface:           "CON",
			},
			{
				Designator:        "27",
				HeadingTrueDeg:    270,
				Threshold:         thr27,
				OppositeThreshold: thr09,
				ElevationFt:       14,
				TORAFt:            9940,
				TODAFt:            9940,
				ASDAFt:            9940,
				LDAFt:             9400,
				Surface:           "CON",
			},
		},
	}
}
