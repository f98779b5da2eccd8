package geo

import (
	"math"
	"testing"
)

func TestCrosswindComponent(t *testing.T) {
	// Runway 09 (090), wind from due north at 20 kt: all crosswind.
	xw := CrosswindComponent(90, 0, 20)
	if math.Abs(xw-20) > 0.01 {
		t.Errorf("perpendicular wind: expected 20, got %f", xw)
	}

	// Direct headwind has no crosswind component.
	if xw := CrosswindComponent(90, 90, 20); math.Abs(xw) > 0.01 {
		t.Errorf("aligned wind: expected 0, got %f", xw)
	}

	// 45 degrees off: 20 * sin(45).
	xw = CrosswindComponent(90, 45, 20)
	if math.Abs(xw-20*math.Sin(math.Pi/4)) > 0.01 {
		t.Errorf("45 deg wind: expected %f, got %f", 20*math.Sin(math.Pi/4), xw)
	}

	// Result is non-negative either side of the centerline.
	left := CrosswindComponent(90, 45, 20)
	right := CrosswindComponent(90, 135, 20)
	if math.Abs(left-right) > 0.01 {
		t.Errorf("crosswind not symmetric: %f vs %f", left, right)
	}
	if left < 0 || right < 0 {
		t.Errorf("crosswind went negative: %f / %f", left, right)
	}
}

func TestHeadwindComponent(t *testing.T) {
	// Direct headwind.
	if hw := HeadwindComponent(90, 90, 20); math.Abs(hw-20) > 0.01 {
		t.Errorf("direct headwind: expected 20, got %f", hw)
	}

	// Direct tailwind comes back negative.
	if hw := HeadwindComponent(90, 270, 20); math.Abs(hw+20) > 0.01 {
		t.Errorf("direct tailwind: expected -20, got %f", hw)
	}

	// Pure crosswind has no along-track component.
	if hw := HeadwindComponent(90, 0, 20); math.Abs(hw) > 0.01 {
		t.Errorf("perpendicular wind: expected 0, got %f", hw)
	}

	// Wrap-around: runway 01, wind from 350 is near-aligned.
	hw := HeadwindComponent(10, 350, 20)
	if hw < 18 {
		t.Errorf("wrap-around headwind: expected near 20, got %f", hw)
	}
}

func TestWindCorrectionAngle(t *testing.T) {
	// Wind from the right of course pushes the correction to the right.
	wca := WindCorrectionAngle(360, 90, 30, 450)
	if wca <= 0 {
		t.Errorf("right crosswind: expected positive WCA, got %f", wca)
	}

	// Mirror wind mirrors the angle.
	mirror := WindCorrectionAngle(360, 270, 30, 450)
	if math.Abs(wca+mirror) > 0.01 {
		t.Errorf("WCA not antisymmetric: %f vs %f", wca, mirror)
	}

	// No wind or no airspeed: no correction.
	if wca := WindCorrectionAngle(360, 90, 0, 450); wca != 0 {
		t.Errorf("calm wind: expected 0, got %f", wca)
	}
	if wca := WindCorrectionAngle(360, 90, 30, 0); wca != 0 {
		t.Errorf("zero TAS: expected 0, got %f", wca)
	}

	// Wind stronger than the airspeed degenerates to zero.
	if wca := WindCorrectionAngle(360, 90, 200, 100); wca != 0 {
		t.Errorf("degenerate triangle: expected 0, got %f", wca)
	}
}

func TestGroundSpeed(t *testing.T) {
	// Calm wind: ground speed equals TAS.
	if gs := GroundSpeed(90, 0, 0, 450); math.Abs(gs-450) > 0.01 {
		t.Errorf("calm: expected 450, got %f", gs)
	}

	// Direct headwind subtracts fully.
	if gs := GroundSpeed(90, 90, 50, 450); math.Abs(gs-400) > 0.01 {
		t.Errorf("headwind: expected 400, got %f", gs)
	}

	// Direct tailwind adds fully.
	if gs := GroundSpeed(90, 270, 50, 450); math.Abs(gs-500) > 0.01 {
		t.Errorf("tailwind: expected 500, got %f", gs)
	}

	// Pure crosswind costs a little ground speed.
	gs := GroundSpeed(90, 0, 50, 450)
	want := math.Sqrt(450*450 - 50*50)
	if math.Abs(gs-want) > 0.01 {
		t.Errorf("crosswind: expected %f, got %f", want, gs)
	}

	// Never negative.
	if gs := GroundSpeed(90, 90, 500, 100); gs != 0 {
		t.Errorf("overwhelming headwind: expected 0, got %f", gs)
	}
	if gs := GroundSpeed(90, 0, 50, 0); gs != 0 {
		t.Errorf("zero TAS: expected 0, got %f", gs)
	}
}
