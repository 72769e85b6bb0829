// Package load converts a single workout's heart-rate and duration data
// into scalar training-load values. All functions are pure; physiologically
// degenerate inputs (heart-rate reserve <= 0) return 0, which callers must
// read as "could not compute", not "zero training stress".
package load

import "math"

// Gender selects the Banister TRIMP exponential coefficient.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// trimpCoefficient returns the Banister exponential coefficient b.
func trimpCoefficient(g Gender) float64 {
	if g == GenderFemale {
		return 1.67
	}
	return 1.92
}

// StressScore computes a threshold-anchored heart-rate stress score.
// Average HR is normalized into a heart-rate-reserve fraction and compared
// against the threshold fraction; effort above threshold counts
// super-linearly. The scale is fixed so that exactly one hour at threshold
// heart rate scores 100, and the score is linear in duration at fixed
// intensity.
func StressScore(durationMin, avgHR, thresholdHR, maxHR, restHR float64) float64 {
	reserve := maxHR - restHR
	if reserve <= 0 || durationMin <= 0 {
		return 0
	}

	thresholdFrac := (thresholdHR - restHR) / reserve
	if thresholdFrac <= 0 {
		return 0
	}

	hrFrac := (avgHR - restHR) / reserve
	if hrFrac < 0 {
		hrFrac = 0
	}
	if hrFrac > 1 {
		hrFrac = 1
	}

	// Intensity relative to threshold; squaring makes the
	// excess-over-threshold portion count super-linearly.
	intensity := hrFrac / thresholdFrac
	return (durationMin / 60.0) * intensity * intensity * 100.0
}

// TRIMP computes the Banister training impulse:
// duration (min) x HR-reserve fraction x 0.64 x e^(b x fraction),
// with b = 1.92 for men and 1.67 for women. Used when no threshold heart
// rate is configured.
func TRIMP(durationMin, avgHR, maxHR, restHR float64, gender Gender) float64 {
	reserve := maxHR - restHR
	if reserve <= 0 || durationMin <= 0 {
		return 0
	}

	hrFrac := (avgHR - restHR) / reserve
	if hrFrac < 0 {
		hrFrac = 0
	}
	if hrFrac > 1 {
		hrFrac = 1
	}

	b := trimpCoefficient(gender)
	return durationMin * hrFrac * 0.64 * math.Exp(b*hrFrac)
}

// RelativeEffort computes a duration-scaled heart-rate-reserve measure with
// no threshold anchor, for comparability across athletes whose threshold is
// unknown.
func RelativeEffort(durationMin, avgHR, maxHR, restHR float64) float64 {
	reserve := maxHR - restHR
	if reserve <= 0 || durationMin <= 0 {
		return 0
	}

	hrFrac := (avgHR - restHR) / reserve
	if hrFrac < 0 {
		hrFrac = 0
	}
	if hrFrac > 1 {
		hrFrac = 1
	}

	return durationMin * hrFrac
}
