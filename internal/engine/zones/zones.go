// Package zones derives heart-rate and power training zones from athlete
// parameters and classifies raw samples into them.
package zones

import "fmt"

// Zone is one intensity band. High == 0 means the zone is unbounded above
// (the top zone); every other zone is the half-open interval [Low, High).
type Zone struct {
	Number int     `json:"number"`
	Name   string  `json:"name"`
	Low    float64 `json:"low"`
	High   float64 `json:"high,omitempty"`
}

// ZoneSet is an ordered, contiguous, non-overlapping list of zones.
type ZoneSet struct {
	Kind  string `json:"kind"` // "heart_rate" or "power"
	Zones []Zone `json:"zones"`
}

var hrZoneNames = [5]string{"Recovery", "Aerobic", "Tempo", "Threshold", "VO2 Max"}

var powerZoneNames = [7]string{
	"Active Recovery", "Endurance", "Tempo", "Threshold",
	"VO2 Max", "Anaerobic", "Neuromuscular",
}

// hrZones builds a 5-zone set from precomputed boundary values. bounds has
// 5 entries: the low edge of each zone. The top zone is unbounded.
func hrZones(bounds [5]float64) ZoneSet {
	zs := ZoneSet{Kind: "heart_rate"}
	for i, low := range bounds {
		z := Zone{Number: i + 1, Name: hrZoneNames[i], Low: low}
		if i < 4 {
			z.High = bounds[i+1]
		}
		zs.Zones = append(zs.Zones, z)
	}
	return zs
}

// zeroZones returns an all-zero set for degenerate athlete parameters.
// Classify on such a set always returns 0, so downstream time-in-zone
// distributions stay empty instead of fabricating intensity data.
func zeroZones(kind string, names []string) ZoneSet {
	zs := ZoneSet{Kind: kind}
	for i, name := range names {
		zs.Zones = append(zs.Zones, Zone{Number: i + 1, Name: name})
	}
	return zs
}

// HRZonesKarvonen derives five heart-rate zones as percentages of
// heart-rate reserve (Karvonen): 50/60/70/80/90% of reserve above resting.
func HRZonesKarvonen(maxHR, restHR float64) ZoneSet {
	reserve := maxHR - restHR
	if reserve <= 0 {
		return zeroZones("heart_rate", hrZoneNames[:])
	}
	pct := [5]float64{0.50, 0.60, 0.70, 0.80, 0.90}
	var bounds [5]float64
	for i, p := range pct {
		bounds[i] = restHR + reserve*p
	}
	return hrZones(bounds)
}

// HRZonesFriel derives five heart-rate zones as percentages of lactate
// threshold heart rate (Friel): 85/89/94/99/102% of LTHR.
func HRZonesFriel(thresholdHR float64) ZoneSet {
	if thresholdHR <= 0 {
		return zeroZones("heart_rate", hrZoneNames[:])
	}
	pct := [5]float64{0.85, 0.89, 0.94, 0.99, 1.02}
	var bounds [5]float64
	for i, p := range pct {
		bounds[i] = thresholdHR * p
	}
	return hrZones(bounds)
}

// HRZonesMaxPct derives five heart-rate zones as flat percentages of
// maximum heart rate (50/60/70/80/90%), the fallback when neither resting
// nor threshold heart rate is known.
func HRZonesMaxPct(maxHR float64) ZoneSet {
	if maxHR <= 0 {
		return zeroZones("heart_rate", hrZoneNames[:])
	}
	pct := [5]float64{0.50, 0.60, 0.70, 0.80, 0.90}
	var bounds [5]float64
	for i, p := range pct {
		bounds[i] = maxHR * p
	}
	return hrZones(bounds)
}

// PowerZones derives seven power zones as percentages of functional
// threshold power (Coggan): 0/55/75/90/105/120/150% of FTP.
func PowerZones(ftp float64) ZoneSet {
	if ftp <= 0 {
		return zeroZones("power", powerZoneNames[:])
	}
	pct := [7]float64{0, 0.55, 0.75, 0.90, 1.05, 1.20, 1.50}
	zs := ZoneSet{Kind: "power"}
	for i, p := range pct {
		z := Zone{Number: i + 1, Name: powerZoneNames[i], Low: ftp * p}
		if i < 6 {
			z.High = ftp * pct[i+1]
		}
		zs.Zones = append(zs.Zones, z)
	}
	return zs
}

// Classify maps a raw sample to its zone number, scanning from the lowest
// zone up and returning the first match. Samples below zone 1 (or invalid
// non-positive samples) classify to 0, meaning "below zone".
func (zs ZoneSet) Classify(sample float64) int {
	if sample <= 0 || zs.isZero() {
		return 0
	}
	for _, z := range zs.Zones {
		if sample < z.Low {
			break
		}
		if z.High == 0 || sample < z.High {
			return z.Number
		}
	}
	return 0
}

// isZero reports whether the set came from degenerate athlete parameters
// (every boundary zero).
func (zs ZoneSet) isZero() bool {
	for _, z := range zs.Zones {
		if z.Low != 0 || z.High != 0 {
			return false
		}
	}
	return true
}

// TimeInZones returns the fraction of valid samples that fall in each zone.
// Index 0 counts below-zone samples; index k counts zone k. Samples that
// are zero or negative are dropped as sensor noise. With no valid samples
// the distribution is all zeros.
func (zs ZoneSet) TimeInZones(samples []float64) []float64 {
	dist := make([]float64, len(zs.Zones)+1)
	var valid int
	for _, s := range samples {
		if s <= 0 {
			continue
		}
		valid++
		dist[zs.Classify(s)]++
	}
	if valid < 1 {
		return dist
	}
	for i := range dist {
		dist[i] /= float64(valid)
	}
	return dist
}

// Validate checks the internal zone-set invariants: ascending contiguous
// boundaries with only the final zone unbounded. A failure indicates a
// caller contract violation, not bad athlete data.
func (zs ZoneSet) Validate() error {
	for i, z := range zs.Zones {
		if z.Number != i+1 {
			return fmt.Errorf("zone %d: number %d out of sequence", i, z.Number)
		}
		last := i == len(zs.Zones)-1
		if last {
			if z.High != 0 {
				return fmt.Errorf("zone %d: top zone must be unbounded", z.Number)
			}
			continue
		}
		if z.High < z.Low {
			return fmt.Errorf("zone %d: high %.1f below low %.1f", z.Number, z.High, z.Low)
		}
		if next := zs.Zones[i+1]; next.Low != z.High {
			return fmt.Errorf("zone %d: gap between high %.1f and next low %.1f", z.Number, z.High, next.Low)
		}
	}
	return nil
}
