// Package models holds the row types shared between storage, the HTTP
// layer, and the engine orchestration.
package models

import (
	"time"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/load"
)

// AthleteProfile is the single athlete's physiological parameters,
// maintained by an external profile flow and read by every engine call.
type AthleteProfile struct {
	MaxHR       float64     `json:"max_hr"`
	RestingHR   float64     `json:"resting_hr"`
	ThresholdHR float64     `json:"threshold_hr"`
	FTPWatts    float64     `json:"ftp_watts"`
	Gender      load.Gender `json:"gender"`
	RaceDate    *time.Time  `json:"race_date,omitempty"`
}

// HasThreshold reports whether a lactate threshold heart rate is
// configured, which decides between the stress-score and impulse load
// variants.
func (p AthleteProfile) HasThreshold() bool { return p.ThresholdHR > 0 }

// WellnessDay is one day's wellness signals as ingested from the athlete's
// watch. Nil fields mean the device supplied no data for that signal; the
// readiness scorer excludes them rather than defaulting.
type WellnessDay struct {
	Date time.Time `json:"date"`

	HRVLastNight *float64 `json:"hrv_last_night,omitempty"`
	HRVBaseline  *float64 `json:"hrv_baseline,omitempty"`
	HRVStatus    string   `json:"hrv_status,omitempty"`

	SleepHours      *float64 `json:"sleep_hours,omitempty"`
	DeepSleepPct    *float64 `json:"deep_sleep_pct,omitempty"`
	SleepScore      *float64 `json:"sleep_score,omitempty"`
	SleepEfficiency *float64 `json:"sleep_efficiency,omitempty"`

	AvgStress     *float64 `json:"avg_stress,omitempty"`
	HighStressMin *float64 `json:"high_stress_min,omitempty"`
	LowStressMin  *float64 `json:"low_stress_min,omitempty"`

	Steps *int `json:"steps,omitempty"`
}

// Workout is one recorded activity as ingested, before load
// quantification.
type Workout struct {
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	DurationMin float64   `json:"duration_min"`
	AvgHR       float64   `json:"avg_hr"`
	MaxHR       float64   `json:"max_hr,omitempty"`
	DistanceKm  float64   `json:"distance_km,omitempty"`
	AvgWatts    float64   `json:"avg_watts,omitempty"`
}
