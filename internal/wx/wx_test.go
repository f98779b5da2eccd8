package wx

import (
	"math"
	"testing"
)

func TestEffectiveSpeed(t *testing.T) {
	w := Wind{DirectionDeg: 270, SpeedKts: 12}
	if got := w.EffectiveSpeedKts(); got != 12 {
		t.Errorf("steady wind: expected 12, got %f", got)
	}

	gust := 25.0
	w.GustKts = &gust
	if got := w.EffectiveSpeedKts(); got != 25 {
		t.Errorf("gusting wind: expected 25, got %f", got)
	}

	// A stale gust below the steady speed never lowers the effective speed.
	low := 8.0
	w.GustKts = &low
	if got := w.EffectiveSpeedKts(); got != 12 {
		t.Errorf("sub-steady gust: expected 12, got %f", got)
	}
}

func TestVisibilityMeters(t *testing.T) {
	v := Visibility{Value: 800, Unit: VisibilityMeters}
	if got := v.Meters(); got != 800 {
		t.Errorf("metres: expected 800, got %f", got)
	}

	v = Visibility{Value: 3, Unit: VisibilityStatuteMiles}
	if got := v.Meters(); math.Abs(got-3*MetersPerStatuteMile) > 1e-9 {
		t.Errorf("statute miles: expected %f, got %f", 3*MetersPerStatuteMile, got)
	}
}

func TestCeiling(t *testing.T) {
	r := &Report{Clouds: []CloudLayer{
		{Coverage: CoverageFew, BaseFt: 800},
		{Coverage: CoverageScattered, BaseFt: 1200},
	}}
	if _, ok := r.Ceiling(); ok {
		t.Error("few/scattered layers should not form a ceiling")
	}

	r.Clouds = append(r.Clouds,
		CloudLayer{Coverage: CoverageOvercast, BaseFt: 3000},
		CloudLayer{Coverage: CoverageBroken, BaseFt: 1500},
	)
	ceiling, ok := r.Ceiling()
	if !ok {
		t.Fatal("broken layer should form a ceiling")
	}
	if ceiling != 1500 {
		t.Errorf("ceiling: expected the lowest BKN/OVC base 1500, got %f", ceiling)
	}
}
