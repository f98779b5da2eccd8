// Package wx models already-decoded aviation weather reports. Fetching and
// decoding raw METAR text is a collaborator concern; this package only
// defines the structure the dispatch evaluator consumes. A nil *Report means
// no report is available and is treated as visual conditions.
package wx

const MetersPerStatuteMile = 1609.344

// Wind is the surface wind group of a report. Direction is the true
// direction the wind blows from; Variable marks a "VRB" report, in which
// case DirectionDeg is meaningless.
type Wind struct {
	DirectionDeg float64  `json:"direction"`
	SpeedKts     float64  `json:"speed_kts"`
	GustKts      *float64 `json:"gust_kts,omitempty"`
	Variable     bool     `json:"variable,omitempty"`
}

// EffectiveSpeedKts returns the gust speed when reported, else the steady
// speed. Limits are checked against the worst case.
func (w Wind) EffectiveSpeedKts() float64 {
	if w.GustKts != nil && *w.GustKts > w.SpeedKts {
		return *w.GustKts
	}
	return w.SpeedKts
}

// VisibilityUnit is the unit of a visibility value.
type VisibilityUnit string

const (
	VisibilityMeters       VisibilityUnit = "m"
	VisibilityStatuteMiles VisibilityUnit = "SM"
)

// Visibility is the prevailing visibility of a report.
type Visibility struct {
	Value float64        `json:"value"`
	Unit  VisibilityUnit `json:"unit"`
}

// Meters returns the visibility in metres regardless of the reported unit.
func (v Visibility) Meters() float64 {
	if v.Unit == VisibilityStatuteMiles {
		return v.Value * MetersPerStatuteMile
	}
	return v.Value
}

// CloudCoverage is a cloud-layer coverage group.
type CloudCoverage string

const (
	CoverageFew       CloudCoverage = "FEW"
	CoverageScattered CloudCoverage = "SCT"
	CoverageBroken    CloudCoverage = "BKN"
	CoverageOvercast  CloudCoverage = "OVC"
)

// CloudLayer is a single reported cloud layer.
type CloudLayer struct {
	Coverage CloudCoverage `json:"coverage"`
	BaseFt   float64       `json:"base_ft"`
}

// Report is a decoded weather report for one station.
type Report struct {
	Wind       Wind         `json:"wind"`
	Visibility Visibility   `json:"visibility"`
	Clouds     []CloudLayer `json:"clouds,omitempty"`
}

// Ceiling returns the lowest broken or overcast layer base in feet, and
// whether such a layer exists. Few/scattered layers do not constitute a
// ceiling.
func (r *Report) Ceiling() (float64, bool) {
	found := false
	lowest := 0.0
	for _, layer := range r.Clouds {
		if layer.Coverage != CoverageBroken && layer.Coverage != CoverageOvercast {
			continue
		}
		if !found || layer.BaseFt < lowest {
			lowest = layer.BaseFt
			found = true
		}
	}
	return lowest, found
}
