package load

import (
	"math"
	"testing"
)

// TestStressScore_ThresholdHour verifies the anchoring property: one hour
// at exactly threshold heart rate scores 100 (within 1) for any valid
// heart-rate reserve.
func TestStressScore_ThresholdHour(t *testing.T) {
	cases := []struct {
		name        string
		thresholdHR float64
		maxHR       float64
		restHR      float64
	}{
		{"typical runner", 165, 185, 55},
		{"high max", 175, 200, 48},
		{"low reserve", 150, 170, 60},
	}
	for _, tc := range cases {
		got := StressScore(60, tc.thresholdHR, tc.thresholdHR, tc.maxHR, tc.restHR)
		if math.Abs(got-100) > 1 {
			t.Errorf("%s: StressScore(60min at threshold) = %.2f, want 100±1", tc.name, got)
		}
	}
}

// TestStressScore_DurationLinearity verifies the score is linear in
// duration at fixed intensity (doubling duration doubles the score within 5%).
func TestStressScore_DurationLinearity(t *testing.T) {
	base := StressScore(45, 155, 165, 185, 55)
	double := StressScore(90, 155, 165, 185, 55)
	if base <= 0 {
		t.Fatalf("base score = %.2f, want > 0", base)
	}
	ratio := double / base
	if math.Abs(ratio-2) > 0.1 {
		t.Errorf("score(90)/score(45) = %.3f, want 2 within 5%%", ratio)
	}
}

// TestStressScore_SuperLinearAboveThreshold verifies that effort above
// threshold counts more than proportionally: 10% above threshold scores
// more than 10% above the threshold-hour score.
func TestStressScore_SuperLinearAboveThreshold(t *testing.T) {
	at := StressScore(60, 165, 165, 185, 55)
	above := StressScore(60, 176, 165, 185, 55) // 10% above threshold in HRR terms
	if above <= at*1.1 {
		t.Errorf("above-threshold score %.2f not super-linear vs threshold score %.2f", above, at)
	}
}

// TestStressScore_DegenerateReserve verifies that a non-positive heart-rate
// reserve returns 0 rather than NaN or a panic.
func TestStressScore_DegenerateReserve(t *testing.T) {
	cases := []struct {
		name   string
		maxHR  float64
		restHR float64
	}{
		{"equal", 150, 150},
		{"inverted", 140, 160},
		{"zeros", 0, 0},
	}
	for _, tc := range cases {
		if got := StressScore(60, 140, 150, tc.maxHR, tc.restHR); got != 0 {
			t.Errorf("%s: StressScore = %.2f, want 0", tc.name, got)
		}
	}
}

// TestTRIMP_GenderCoefficients verifies the female coefficient produces a
// lower impulse than the male coefficient for the same effort.
func TestTRIMP_GenderCoefficients(t *testing.T) {
	male := TRIMP(60, 150, 185, 55, GenderMale)
	female := TRIMP(60, 150, 185, 55, GenderFemale)
	if male <= 0 || female <= 0 {
		t.Fatalf("TRIMP returned non-positive: male=%.2f female=%.2f", male, female)
	}
	if female >= male {
		t.Errorf("female TRIMP %.2f >= male TRIMP %.2f", female, male)
	}
}

// TestTRIMP_ClampsFraction verifies HR above max clamps the reserve
// fraction to 1 instead of extrapolating.
func TestTRIMP_ClampsFraction(t *testing.T) {
	atMax := TRIMP(60, 185, 185, 55, GenderMale)
	aboveMax := TRIMP(60, 200, 185, 55, GenderMale)
	if aboveMax != atMax {
		t.Errorf("TRIMP above max = %.2f, want clamped to %.2f", aboveMax, atMax)
	}
}

// TestRelativeEffort verifies basic scaling and the degenerate-reserve
// zero return.
func TestRelativeEffort(t *testing.T) {
	if got := RelativeEffort(60, 120, 185, 55); got <= 0 {
		t.Errorf("RelativeEffort = %.2f, want > 0", got)
	}
	if got := RelativeEffort(60, 120, 100, 100); got != 0 {
		t.Errorf("RelativeEffort with zero reserve = %.2f, want 0", got)
	}
	half := RelativeEffort(30, 120, 185, 55)
	full := RelativeEffort(60, 120, 185, 55)
	if math.Abs(full-2*half) > 1e-9 {
		t.Errorf("RelativeEffort not linear in duration: %.4f vs 2x%.4f", full, half)
	}
}
