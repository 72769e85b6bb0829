package adapt

import (
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/fitness"
)

// Prediction bounds: completion probability never promises certainty and
// never writes the athlete off.
const (
	baseCompletionProbability = 0.85
	minCompletionProbability  = 0.30
	maxCompletionProbability  = 0.98
)

// Prediction is the outlook for a single upcoming planned workout.
type Prediction struct {
	CompletionProbability float64 `json:"completion_probability"`
	ExpectedOutcome       string  `json:"expected_outcome"`
	FatigueLevel          float64 `json:"fatigue_level"` // 0 fresh .. 1 exhausted
	InjuryRisk            string  `json:"injury_risk"`
	OvertrainingRisk      string  `json:"overtraining_risk"`
}

// PredictOutcome estimates how a planned workout is likely to go given the
// current fitness snapshot, recent compliance (percent), and days since
// the last full rest day. Fatigue comes from the balance: a TSB of -50 or
// worse is full fatigue.
func PredictOutcome(snap fitness.Snapshot, compliancePct float64, daysSinceRest int) Prediction {
	fatigue := -snap.Balance / 50
	if fatigue < 0 {
		fatigue = 0
	}
	if fatigue > 1 {
		fatigue = 1
	}

	p := baseCompletionProbability
	p -= fatigue * 0.25

	switch {
	case compliancePct >= 90:
		p += 0.05
	case compliancePct < 60:
		p -= 0.10
	}

	switch {
	case daysSinceRest >= 7:
		p -= 0.05
	case daysSinceRest <= 1:
		p += 0.03
	}

	if p < minCompletionProbability {
		p = minCompletionProbability
	}
	if p > maxCompletionProbability {
		p = maxCompletionProbability
	}

	return Prediction{
		CompletionProbability: p,
		ExpectedOutcome:       outcomeLabel(p),
		FatigueLevel:          fatigue,
		InjuryRisk:            injuryRisk(snap.RiskZone),
		OvertrainingRisk:      overtrainingRisk(snap),
	}
}

func outcomeLabel(p float64) string {
	switch {
	case p >= 0.85:
		return "likely_strong"
	case p >= 0.65:
		return "likely_normal"
	default:
		return "likely_struggle"
	}
}

func injuryRisk(zone fitness.RiskZone) string {
	switch zone {
	case fitness.RiskDanger:
		return "high"
	case fitness.RiskCaution:
		return "moderate"
	default:
		return "low"
	}
}

// overtrainingRisk considers both the ratio band and a deeply negative
// balance; either alone is moderate, both together high.
func overtrainingRisk(snap fitness.Snapshot) string {
	ratioHot := snap.RiskZone == fitness.RiskDanger
	deepFatigue := snap.Balance < -25

	switch {
	case ratioHot && deepFatigue:
		return "high"
	case ratioHot || deepFatigue:
		return "moderate"
	default:
		return "low"
	}
}
