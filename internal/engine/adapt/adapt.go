package adapt

import (
	"fmt"
	"sync"
	"time"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/fitness"
	"github.com/google/uuid"
)

// Trigger identifies which condition fired an adaptation.
type Trigger string

const (
	TriggerOverreaching       Trigger = "overreaching"
	TriggerRecoveryNeeded     Trigger = "recovery_needed"
	TriggerUndertraining      Trigger = "undertraining"
	TriggerRaceTaper          Trigger = "race_taper"
	TriggerPerformanceDecline Trigger = "performance_decline"
)

// AdaptationType names the plan change a recommendation asks for.
type AdaptationType string

const (
	AdaptReduceVolume   AdaptationType = "reduce_volume"
	AdaptRecoveryDay    AdaptationType = "recovery_day"
	AdaptIncreaseVolume AdaptationType = "increase_volume"
	AdaptTaper          AdaptationType = "taper"
	AdaptAdvisory       AdaptationType = "advisory"
)

// Recommendation is one plan adjustment. The volume and intensity
// multipliers apply to a workout's planned load/duration; Applied flips
// true exactly once when the plan layer consumes it.
type Recommendation struct {
	ID                  uuid.UUID      `json:"id"`
	Trigger             Trigger        `json:"trigger"`
	Type                AdaptationType `json:"type"`
	TargetDate          time.Time      `json:"target_date"`
	VolumeMultiplier    float64        `json:"volume_multiplier"`
	IntensityMultiplier float64        `json:"intensity_multiplier"`
	Reason              string         `json:"reason"`
	Confidence          float64        `json:"confidence"` // 0-1
	Applied             bool           `json:"applied"`
	AppliedAt           *time.Time     `json:"applied_at,omitempty"`
}

// Engine owns the completion history and the recommendations it has
// issued. Like the history, it is safe for concurrent use by callers that
// share one engine per athlete.
type Engine struct {
	History *History

	mu     sync.Mutex
	issued []Recommendation
}

// NewEngine creates an engine over an existing (possibly empty) history.
func NewEngine(history *History) *Engine {
	if history == nil {
		history = NewHistory(nil)
	}
	return &Engine{History: history}
}

// State is the input to recommendation generation: the current fitness
// snapshot plus optional race date.
type State struct {
	Snapshot fitness.Snapshot
	RaceDate *time.Time
}

// Generate evaluates every trigger independently against the current state
// and returns all that fire; triggers are not mutually exclusive. Each
// returned recommendation is also retained for later Apply calls.
func (e *Engine) Generate(asOf time.Time, st State) []Recommendation {
	var recs []Recommendation

	snap := st.Snapshot
	if snap.RiskZone == fitness.RiskDanger {
		recs = append(recs, Recommendation{
			Trigger:             TriggerOverreaching,
			Type:                AdaptReduceVolume,
			TargetDate:          asOf.AddDate(0, 0, 1),
			VolumeMultiplier:    0.6,
			IntensityMultiplier: 0.7,
			Reason:              fmt.Sprintf("Acute:chronic ratio %.2f signals overreaching; cut volume until the ratio settles.", snap.Ratio),
			Confidence:          0.9,
		})
	}

	if snap.Balance < -25 {
		recs = append(recs, Recommendation{
			Trigger:             TriggerRecoveryNeeded,
			Type:                AdaptRecoveryDay,
			TargetDate:          asOf.AddDate(0, 0, 1),
			VolumeMultiplier:    0.5,
			IntensityMultiplier: 0.6,
			Reason:              fmt.Sprintf("Balance %.0f shows accumulated fatigue; insert a recovery day.", snap.Balance),
			Confidence:          0.8,
		})
	}

	compliance := e.History.ComplianceRate(asOf, DefaultWindow)
	if compliance >= 90 && snap.RiskZone == fitness.RiskUndertrained {
		recs = append(recs, Recommendation{
			Trigger:             TriggerUndertraining,
			Type:                AdaptIncreaseVolume,
			TargetDate:          asOf.AddDate(0, 0, 1),
			VolumeMultiplier:    1.1,
			IntensityMultiplier: 1.05,
			Reason:              "Completing everything planned while the ratio stays undertrained; the plan is too light.",
			Confidence:          0.7,
		})
	}

	if st.RaceDate != nil {
		daysToRace := int(st.RaceDate.Sub(asOf).Hours() / 24)
		switch {
		case daysToRace >= 1 && daysToRace <= 7:
			recs = append(recs, Recommendation{
				Trigger:             TriggerRaceTaper,
				Type:                AdaptTaper,
				TargetDate:          asOf.AddDate(0, 0, 1),
				VolumeMultiplier:    0.5,
				IntensityMultiplier: 0.9,
				Reason:              fmt.Sprintf("Race in %d days: sharp taper, keep a touch of intensity.", daysToRace),
				Confidence:          0.95,
			})
		case daysToRace >= 8 && daysToRace <= 14:
			recs = append(recs, Recommendation{
				Trigger:             TriggerRaceTaper,
				Type:                AdaptTaper,
				TargetDate:          asOf.AddDate(0, 0, 1),
				VolumeMultiplier:    0.75,
				IntensityMultiplier: 0.95,
				Reason:              fmt.Sprintf("Race in %d days: begin a moderate taper.", daysToRace),
				Confidence:          0.85,
			})
		}
	}

	if trend := e.History.Trend(asOf, DefaultLongWindow, TrendLoad); trend.Classification == TrendDeclining {
		// Advisory only: the plan layer surfaces it but never
		// auto-applies a change from a trend read alone.
		recs = append(recs, Recommendation{
			Trigger:             TriggerPerformanceDecline,
			Type:                AdaptAdvisory,
			TargetDate:          asOf,
			VolumeMultiplier:    1.0,
			IntensityMultiplier: 1.0,
			Reason:              fmt.Sprintf("Completed load is trending down %.1f%% per session; review whether the plan still fits.", -trend.PctPerSession),
			Confidence:          0.6,
		})
	}

	for i := range recs {
		recs[i].ID = uuid.New()
	}

	e.mu.Lock()
	e.issued = append(e.issued, recs...)
	e.mu.Unlock()

	return recs
}

// Apply marks a recommendation consumed. A recommendation can be applied
// exactly once; a second Apply is an error.
func (e *Engine) Apply(id uuid.UUID, at time.Time) (*Recommendation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.issued {
		if e.issued[i].ID != id {
			continue
		}
		if e.issued[i].Applied {
			return nil, fmt.Errorf("recommendation %s already applied", id)
		}
		e.issued[i].Applied = true
		t := at
		e.issued[i].AppliedAt = &t
		rec := e.issued[i]
		return &rec, nil
	}
	return nil, fmt.Errorf("recommendation %s not found", id)
}

// Issued returns a copy of every recommendation the engine has generated.
func (e *Engine) Issued() []Recommendation {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Recommendation, len(e.issued))
	copy(out, e.issued)
	return out
}
