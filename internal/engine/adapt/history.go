// Package adapt tracks planned-vs-actual workout completion and turns the
// record into compliance statistics, performance trends, outcome
// predictions, and concrete plan-adjustment recommendations.
package adapt

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Completion is one planned session and, once the athlete logs it, the
// actual result. Records are never deleted; a logged result is immutable
// history.
type Completion struct {
	WorkoutID   uuid.UUID  `json:"workout_id"`
	PlannedDate time.Time  `json:"planned_date"`
	PlannedType string     `json:"planned_type"`
	PlannedMin  float64    `json:"planned_duration_min"`
	PlannedLoad float64    `json:"planned_load"`

	CompletedDate *time.Time `json:"completed_date,omitempty"`
	ActualMin     *float64   `json:"actual_duration_min,omitempty"`
	ActualLoad    *float64   `json:"actual_load,omitempty"`
	AvgHR         *float64   `json:"avg_heart_rate,omitempty"`
	DistanceKm    *float64   `json:"distance_km,omitempty"`
	RPE           *int       `json:"rpe,omitempty"` // 1-10 subjective effort
	Feeling       string     `json:"feeling,omitempty"`
}

// Completed reports whether the athlete has logged a result.
func (c Completion) Completed() bool { return c.CompletedDate != nil }

// Result carries the fields an athlete logs against a planned session.
type Result struct {
	CompletedDate time.Time
	ActualMin     *float64
	ActualLoad    *float64
	AvgHR         *float64
	DistanceKm    *float64
	RPE           *int
	Feeling       string
}

// History is the append-only completion log for one athlete. All access
// goes through its methods; the mutex is the only synchronization the
// engine needs. Callers serialize across processes at the persistence
// layer.
type History struct {
	mu      sync.Mutex
	records []Completion
}

// NewHistory creates a history seeded with existing records, e.g. loaded
// from storage at startup.
func NewHistory(records []Completion) *History {
	h := &History{}
	h.records = append(h.records, records...)
	return h
}

// Plan appends a newly scheduled session and returns its ID.
func (h *History) Plan(plannedDate time.Time, workoutType string, durationMin, load float64) uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New()
	h.records = append(h.records, Completion{
		WorkoutID:   id,
		PlannedDate: plannedDate,
		PlannedType: workoutType,
		PlannedMin:  durationMin,
		PlannedLoad: load,
	})
	return id
}

// LogResult records the actual outcome for a planned session. Logging
// twice is a caller error: history is immutable once written.
func (h *History) LogResult(workoutID uuid.UUID, res Result) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.records {
		if h.records[i].WorkoutID != workoutID {
			continue
		}
		if h.records[i].Completed() {
			return fmt.Errorf("workout %s already has a logged result", workoutID)
		}
		c := &h.records[i]
		d := res.CompletedDate
		c.CompletedDate = &d
		c.ActualMin = res.ActualMin
		c.ActualLoad = res.ActualLoad
		c.AvgHR = res.AvgHR
		c.DistanceKm = res.DistanceKm
		c.RPE = res.RPE
		c.Feeling = res.Feeling
		return nil
	}
	return fmt.Errorf("workout %s not found", workoutID)
}

// Window returns a copy of the records whose planned date falls within the
// lookback window ending at asOf (inclusive of asOf's day).
func (h *History) Window(asOf time.Time, lookbackDays int) []Completion {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := asOf.AddDate(0, 0, -lookbackDays)
	var out []Completion
	for _, c := range h.records {
		if c.PlannedDate.After(cutoff) && !c.PlannedDate.After(asOf) {
			out = append(out, c)
		}
	}
	return out
}

// All returns a copy of every record.
func (h *History) All() []Completion {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Completion, len(h.records))
	copy(out, h.records)
	return out
}
