// Package fitness models longitudinal training state as two exponentially
// weighted moving averages over a daily load series: a 42-day chronic
// ("fitness") curve and a 7-day acute ("fatigue") curve, plus the derived
// balance (TSB), acute:chronic ratio (ACWR), and injury-risk zone.
package fitness

import (
	"fmt"
	"math"
	"time"
)

// Nominal time constants in days.
const (
	ChronicTimeConstant = 42
	AcuteTimeConstant   = 7
)

// chronicEpsilon guards the ACWR division; a chronic load this small means
// the athlete has effectively no training history yet.
const chronicEpsilon = 1e-6

// RiskZone classifies the acute:chronic ratio into injury-risk bands.
type RiskZone string

const (
	RiskUndertrained RiskZone = "undertrained" // ratio < 0.8
	RiskOptimal      RiskZone = "optimal"      // 0.8 <= ratio <= 1.3
	RiskCaution      RiskZone = "caution"      // 1.3 < ratio <= 1.5
	RiskDanger       RiskZone = "danger"       // ratio > 1.5
)

// DailyLoad is one day's scalar training load. Exactly one entry per
// calendar day is expected; days without training carry a zero load so the
// decay curves stay physiologically meaningful.
type DailyLoad struct {
	Date time.Time `json:"date"`
	Load float64   `json:"load"`
}

// Snapshot is the fitness state at the end of one day. Each snapshot
// depends only on the previous snapshot and that day's load.
type Snapshot struct {
	Date     time.Time `json:"date"`
	Load     float64   `json:"load"`
	Chronic  float64   `json:"chronic_load"` // CTL
	Acute    float64   `json:"acute_load"`   // ATL
	Balance  float64   `json:"balance"`      // TSB = chronic - acute
	Ratio    float64   `json:"ratio"`        // ACWR = acute / chronic
	RiskZone RiskZone  `json:"risk_zone"`
}

// Alpha converts a time constant in days to the per-day EWMA smoothing
// factor, 1 - e^(-1/tc). This is the continuous-time decay form: feeding a
// constant load converges to it after roughly three time constants.
func Alpha(timeConstantDays float64) float64 {
	return 1 - math.Exp(-1/timeConstantDays)
}

// ClassifyRisk maps an acute:chronic ratio to its risk zone. Band edges
// per the product's published thresholds: 1.30 is still optimal, 1.50 is
// still caution.
func ClassifyRisk(ratio float64) RiskZone {
	switch {
	case ratio < 0.8:
		return RiskUndertrained
	case ratio <= 1.3:
		return RiskOptimal
	case ratio <= 1.5:
		return RiskCaution
	default:
		return RiskDanger
	}
}

// ComputeSeries runs the EWMA recurrence over a chronologically ordered
// daily load series, seeded with starting chronic/acute values (0,0 for a
// cold start, or yesterday's state for a warm start). The input must hold
// one entry per day in ascending date order; out-of-order input is a
// caller contract violation and returns an error.
func ComputeSeries(loads []DailyLoad, seedChronic, seedAcute float64) ([]Snapshot, error) {
	alphaChronic := Alpha(ChronicTimeConstant)
	alphaAcute := Alpha(AcuteTimeConstant)

	chronic := seedChronic
	acute := seedAcute

	snapshots := make([]Snapshot, 0, len(loads))
	for i, dl := range loads {
		if i > 0 && !loads[i-1].Date.Before(dl.Date) {
			return nil, fmt.Errorf("load series not chronological: %s then %s",
				loads[i-1].Date.Format("2006-01-02"), dl.Date.Format("2006-01-02"))
		}

		chronic += (dl.Load - chronic) * alphaChronic
		acute += (dl.Load - acute) * alphaAcute

		snapshots = append(snapshots, makeSnapshot(dl.Date, dl.Load, chronic, acute))
	}
	return snapshots, nil
}

// Next advances the state by a single day. prev is the previous day's
// snapshot (zero value for a cold start).
func Next(prev Snapshot, date time.Time, dayLoad float64) Snapshot {
	chronic := prev.Chronic + (dayLoad-prev.Chronic)*Alpha(ChronicTimeConstant)
	acute := prev.Acute + (dayLoad-prev.Acute)*Alpha(AcuteTimeConstant)
	return makeSnapshot(date, dayLoad, chronic, acute)
}

func makeSnapshot(date time.Time, dayLoad, chronic, acute float64) Snapshot {
	ratio := 1.0
	if chronic > chronicEpsilon {
		ratio = acute / chronic
	}
	return Snapshot{
		Date:     date,
		Load:     dayLoad,
		Chronic:  chronic,
		Acute:    acute,
		Balance:  chronic - acute,
		Ratio:    ratio,
		RiskZone: ClassifyRisk(ratio),
	}
}
