// Package recommend maps readiness, injury-risk ratio, balance, and recent
// training pattern to a daily workout recommendation through an explicit
// ordered rule table: rules are evaluated top to bottom, first match wins.
package recommend

import (
	"fmt"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/fitness"
)

// WorkoutType is ordered by intensity: the integer value of each constant
// is its intensity level, which lets callers assert risk gating (a danger
// ratio must never yield anything above rest).
type WorkoutType int

const (
	WorkoutRest WorkoutType = iota
	WorkoutRecovery
	WorkoutEasy
	WorkoutLong
	WorkoutTempo
	WorkoutIntervals
)

var workoutNames = map[WorkoutType]string{
	WorkoutRest:      "rest",
	WorkoutRecovery:  "recovery",
	WorkoutEasy:      "easy",
	WorkoutLong:      "long",
	WorkoutTempo:     "tempo",
	WorkoutIntervals: "intervals",
}

func (w WorkoutType) String() string { return workoutNames[w] }

// IntensityLevel returns the ordinal intensity, 0 (rest) through 5
// (race-pace intervals).
func (w WorkoutType) IntensityLevel() int { return int(w) }

// Input is the state the rule cascade evaluates. Values come from the
// readiness scorer and fitness model for the current day.
type Input struct {
	Readiness     float64
	Ratio         float64 // ACWR
	Balance       float64 // TSB
	DaysSinceHard int     // days since the last hard session; 0 = today
	DaysSinceLong int     // days since the last long session
}

// Recommendation is the engine's answer for one day.
type Recommendation struct {
	Type         WorkoutType   `json:"-"`
	TypeName     string        `json:"type"`
	Intensity    int           `json:"intensity_level"`
	DurationMin  int           `json:"duration_min"`
	Description  string        `json:"description"`
	TargetZone   int           `json:"target_zone"`
	Reason       string        `json:"reason"`
	Alternatives []string      `json:"alternatives,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
}

// rule is one prioritized entry in the cascade.
type rule struct {
	name    string
	matches func(Input) bool
	build   func(Input) Recommendation
}

// Readiness thresholds for the cascade.
const (
	readinessFloor   = 25 // below: rest, no exceptions from readiness rules
	readinessLowBand = 40 // below: active recovery only
	readinessHigh    = 75 // at/above: quality work permitted
	readinessLongRun = 60 // minimum to schedule a long session
	longRunDueDays   = 10 // days without a long session before one is due
)

// rules is evaluated in order; the ordering is part of the product
// contract (low-readiness rest outranks everything, then risk gating, then
// pattern rules, then permissive rules).
var rules = []rule{
	{
		name:    "very_low_readiness_rest",
		matches: func(in Input) bool { return in.Readiness < readinessFloor },
		build: func(in Input) Recommendation {
			r := build(WorkoutRest, 0, 0, fmt.Sprintf("Readiness %.0f is very low; training today would dig the hole deeper.", in.Readiness))
			r.Warnings = append(r.Warnings, "Very low readiness. Prioritize sleep and nutrition today.")
			return r
		},
	},
	{
		// A danger-band ratio always rests, so this rule steps aside for
		// it; the danger rule's reason text is the one the athlete should
		// see in that case.
		name: "low_readiness_recovery",
		matches: func(in Input) bool {
			return in.Readiness < readinessLowBand && fitness.ClassifyRisk(in.Ratio) != fitness.RiskDanger
		},
		build: func(in Input) Recommendation {
			r := build(WorkoutRecovery, 30, 1, fmt.Sprintf("Readiness %.0f is low; keep today to gentle movement.", in.Readiness))
			r.Alternatives = []string{WorkoutRest.String()}
			return r
		},
	},
	{
		name:    "danger_ratio_rest",
		matches: func(in Input) bool { return fitness.ClassifyRisk(in.Ratio) == fitness.RiskDanger },
		build: func(in Input) Recommendation {
			r := build(WorkoutRest, 0, 0, fmt.Sprintf("Acute:chronic ratio %.2f is in the danger band; injury risk is elevated regardless of how you feel.", in.Ratio))
			r.Warnings = append(r.Warnings, "Training load has spiked well above your chronic base.")
			return r
		},
	},
	{
		name:    "caution_ratio_easy",
		matches: func(in Input) bool { return fitness.ClassifyRisk(in.Ratio) == fitness.RiskCaution },
		build: func(in Input) Recommendation {
			return build(WorkoutEasy, 40, 2, fmt.Sprintf("Acute:chronic ratio %.2f is creeping up; holding intensity down lets the chronic base catch up.", in.Ratio))
		},
	},
	{
		name:    "hard_easy_alternation",
		matches: func(in Input) bool { return in.DaysSinceHard == 0 },
		build: func(in Input) Recommendation {
			r := build(WorkoutRecovery, 30, 1, "Yesterday's session was hard; alternate hard and easy days.")
			r.Alternatives = []string{WorkoutEasy.String(), WorkoutRest.String()}
			return r
		},
	},
	{
		name: "undertrained_push",
		matches: func(in Input) bool {
			return fitness.ClassifyRisk(in.Ratio) == fitness.RiskUndertrained && in.Readiness >= readinessHigh
		},
		build: func(in Input) Recommendation {
			r := build(WorkoutIntervals, 50, 5, "You are undertrained relative to your base and readiness is high; you can absorb more load.")
			r.Alternatives = []string{WorkoutTempo.String()}
			return r
		},
	},
	{
		name: "quality_session",
		matches: func(in Input) bool {
			return in.Readiness >= readinessHigh && in.Balance > -10
		},
		build: func(in Input) Recommendation {
			r := build(WorkoutTempo, 55, 4, fmt.Sprintf("Readiness %.0f with a manageable balance; a quality session fits.", in.Readiness))
			r.Alternatives = []string{WorkoutIntervals.String()}
			return r
		},
	},
	{
		name: "long_run_due",
		matches: func(in Input) bool {
			return in.DaysSinceLong >= longRunDueDays && in.Readiness >= readinessLongRun
		},
		build: func(in Input) Recommendation {
			return build(WorkoutLong, 90, 2, fmt.Sprintf("No long session in %d days and readiness supports one.", in.DaysSinceLong))
		},
	},
}

// descriptions and target zones per workout type.
var workoutPlans = map[WorkoutType]struct {
	description string
}{
	WorkoutRest:      {"Full rest day. Light stretching or a short walk at most."},
	WorkoutRecovery:  {"Very easy spin or jog, conversational throughout."},
	WorkoutEasy:      {"Steady aerobic work, comfortable pace."},
	WorkoutLong:      {"Long steady session at aerobic pace; fuel early."},
	WorkoutTempo:     {"Sustained comfortably-hard effort around threshold."},
	WorkoutIntervals: {"Short race-pace repeats with full recoveries."},
}

func build(t WorkoutType, durationMin, targetZone int, reason string) Recommendation {
	return Recommendation{
		Type:        t,
		TypeName:    t.String(),
		Intensity:   t.IntensityLevel(),
		DurationMin: durationMin,
		Description: workoutPlans[t].description,
		TargetZone:  targetZone,
		Reason:      reason,
	}
}

// Recommend runs the cascade and returns the first matching rule's
// recommendation, falling back to an easy session when nothing fires.
func Recommend(in Input) Recommendation {
	for _, r := range rules {
		if r.matches(in) {
			return r.build(in)
		}
	}
	return build(WorkoutEasy, 45, 2, "Nothing flags today; bank some easy aerobic volume.")
}
