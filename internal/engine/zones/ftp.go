package zones

import "math"

// EstimateFTPFrom20Min estimates functional threshold power as 95% of the
// best sustained ~20-minute power.
func EstimateFTPFrom20Min(best20MinWatts float64) float64 {
	if best20MinWatts <= 0 {
		return 0
	}
	return best20MinWatts * 0.95
}

// EstimateFTPFrom1Min estimates functional threshold power as 75% of the
// best sustained ~1-minute maximal power.
func EstimateFTPFrom1Min(best1MinWatts float64) float64 {
	if best1MinWatts <= 0 {
		return 0
	}
	return best1MinWatts * 0.75
}

// FTPEstimatesAgree reports whether two independent FTP estimates are
// within tolerance (fraction, e.g. 0.05) of each other. Disagreement means
// neither estimate should be trusted on its own; this is a cross-check for
// callers, nothing in the zone math enforces it.
func FTPEstimatesAgree(a, b, tolerance float64) bool {
	if a <= 0 || b <= 0 {
		return false
	}
	larger := math.Max(a, b)
	return math.Abs(a-b)/larger <= tolerance
}
