// Package readiness combines optional wellness signals into a single 0-100
// daily readiness score. Each sub-score is independently optional: a factor
// whose source data is missing is excluded from the weighted aggregate
// entirely rather than defaulted, so "no data" never drags the score down.
package readiness

import (
	"fmt"
	"sort"
	"time"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/fitness"
)

// Zone buckets the overall score for display and recommendation gating.
type Zone string

const (
	ZoneGreen  Zone = "green"  // score >= 67
	ZoneYellow Zone = "yellow" // 34-66
	ZoneRed    Zone = "red"    // < 34
)

// Factor names as they appear in results.
const (
	FactorHRV          = "hrv"
	FactorSleep        = "sleep"
	FactorStress       = "stress"
	FactorTrainingLoad = "training_load"
	FactorRecoveryDays = "recovery_days"
)

// factorWeights are the nominal aggregate weights; they are renormalized
// over whichever factors are actually present for a given day.
var factorWeights = map[string]float64{
	FactorHRV:          0.30,
	FactorSleep:        0.25,
	FactorTrainingLoad: 0.20,
	FactorStress:       0.15,
	FactorRecoveryDays: 0.10,
}

// Inputs carries one day's wellness and training-state signals. Pointer
// fields are absent when the source device supplied no data.
type Inputs struct {
	HRVLastNight *float64 // ms
	HRVBaseline  *float64 // ms, rolling weekly average
	HRVStatus    string   // optional device trend tag: "balanced", "unbalanced", "low"

	SleepHours      *float64
	DeepSleepPct    *float64 // 0-100
	SleepScore      *float64 // externally computed 0-100, preferred when present
	SleepEfficiency *float64 // 0-100

	AvgStress     *float64 // 0-100, lower is calmer
	HighStressMin *float64 // minutes of elevated stress
	LowStressMin  *float64 // minutes of low stress

	Balance *float64 // TSB from the fitness model
	Ratio   *float64 // ACWR from the fitness model

	DaysSinceHard int // days since the last hard effort; 0 = trained hard today
}

// Factor is one contributing sub-score with the weight it carried in the
// aggregate.
type Factor struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// Result is a complete readiness assessment for one day.
type Result struct {
	Date        time.Time `json:"date"`
	Score       float64   `json:"score"`
	Zone        Zone      `json:"zone"`
	Factors     []Factor  `json:"factors"`
	Explanation string    `json:"explanation"`
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Score computes the composite readiness for one day. It always returns a
// result: with no wellness data at all, only the recovery-days factor
// contributes, which is deliberately conservative.
func Score(date time.Time, in Inputs) Result {
	var factors []Factor
	add := func(name string, score float64) {
		factors = append(factors, Factor{Name: name, Score: clamp(score), Weight: factorWeights[name]})
	}

	if s, ok := hrvScore(in); ok {
		add(FactorHRV, s)
	}
	if s, ok := sleepScore(in); ok {
		add(FactorSleep, s)
	}
	if s, ok := stressScore(in); ok {
		add(FactorStress, s)
	}
	if s, ok := trainingLoadScore(in); ok {
		add(FactorTrainingLoad, s)
	}
	// Recovery days is always computable; DaysSinceHard defaults to 0,
	// which scores lowest, keeping a data-free day cautious.
	add(FactorRecoveryDays, recoveryDaysScore(in.DaysSinceHard))

	var weighted, totalWeight float64
	for _, f := range factors {
		weighted += f.Score * f.Weight
		totalWeight += f.Weight
	}
	overall := clamp(weighted / totalWeight)

	return Result{
		Date:        date,
		Score:       overall,
		Zone:        classifyZone(overall),
		Factors:     factors,
		Explanation: explain(overall, factors),
	}
}

func classifyZone(score float64) Zone {
	switch {
	case score >= 67:
		return ZoneGreen
	case score >= 34:
		return ZoneYellow
	default:
		return ZoneRed
	}
}

// hrvScore maps last night's HRV against the rolling baseline through
// ratio*80+20, then applies the device's qualitative trend tag as a ±10
// nudge when supplied.
func hrvScore(in Inputs) (float64, bool) {
	if in.HRVLastNight == nil || in.HRVBaseline == nil || *in.HRVBaseline <= 0 {
		return 0, false
	}
	ratio := *in.HRVLastNight / *in.HRVBaseline
	score := clamp(ratio*80 + 20)

	switch in.HRVStatus {
	case "balanced":
		score += 10
	case "unbalanced", "low":
		score -= 10
	}
	return clamp(score), true
}

// sleepScore prefers an externally computed sleep score when the device
// supplies one; otherwise it derives one from duration and deep-sleep
// share against the 8h/20% nominal targets. Sleep efficiency layers a
// small bonus or penalty on either path.
func sleepScore(in Inputs) (float64, bool) {
	var score float64
	switch {
	case in.SleepScore != nil:
		score = clamp(*in.SleepScore)
	case in.SleepHours != nil:
		durationPart := clamp(*in.SleepHours / 8.0 * 100)
		if in.DeepSleepPct != nil {
			deepPart := clamp(*in.DeepSleepPct / 20.0 * 100)
			score = durationPart*0.7 + deepPart*0.3
		} else {
			score = durationPart
		}
	default:
		return 0, false
	}

	if in.SleepEfficiency != nil {
		switch {
		case *in.SleepEfficiency >= 90:
			score += 5
		case *in.SleepEfficiency < 75:
			score -= 5
		}
	}
	return clamp(score), true
}

// stressScore is the inverse of average stress level, with an extra
// penalty when time under high stress outweighs time under low stress.
func stressScore(in Inputs) (float64, bool) {
	if in.AvgStress == nil {
		return 0, false
	}
	score := 100 - clamp(*in.AvgStress)

	if in.HighStressMin != nil && in.LowStressMin != nil && *in.LowStressMin > 0 {
		if *in.HighStressMin / *in.LowStressMin > 1.0 {
			score -= 15
		}
	}
	return clamp(score), true
}

// trainingLoadScore rewards a fresh-to-neutral balance and an optimal
// acute:chronic ratio. When both signals are present the two parts are
// averaged; with only one, it stands alone.
func trainingLoadScore(in Inputs) (float64, bool) {
	var parts []float64

	if in.Balance != nil {
		tsb := *in.Balance
		switch {
		case tsb >= 10:
			parts = append(parts, 95)
		case tsb >= 0:
			parts = append(parts, 85)
		case tsb >= -10:
			parts = append(parts, 70)
		case tsb >= -25:
			parts = append(parts, 50)
		default:
			parts = append(parts, 25)
		}
	}

	if in.Ratio != nil {
		switch fitness.ClassifyRisk(*in.Ratio) {
		case fitness.RiskOptimal:
			parts = append(parts, 90)
		case fitness.RiskUndertrained:
			parts = append(parts, 70)
		case fitness.RiskCaution:
			parts = append(parts, 45)
		default:
			parts = append(parts, 15)
		}
	}

	if len(parts) == 0 {
		return 0, false
	}
	var sum float64
	for _, p := range parts {
		sum += p
	}
	return sum / float64(len(parts)), true
}

// recoveryDaysScore is a step function of days since the last hard effort.
func recoveryDaysScore(days int) float64 {
	switch {
	case days <= 0:
		return 30
	case days == 1:
		return 60
	case days == 2:
		return 85
	default:
		return 95
	}
}

// explain builds a short human-readable summary naming the strongest and
// weakest contributing factors.
func explain(overall float64, factors []Factor) string {
	if len(factors) == 1 {
		return fmt.Sprintf("Readiness %.0f from %s only; log wellness data for a fuller picture.",
			overall, factors[0].Name)
	}
	sorted := make([]Factor, len(factors))
	copy(sorted, factors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	best, worst := sorted[0], sorted[len(sorted)-1]
	return fmt.Sprintf("Readiness %.0f: %s is strongest (%.0f), %s is holding you back (%.0f).",
		overall, best.Name, best.Score, worst.Name, worst.Score)
}
