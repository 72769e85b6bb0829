// Package coach wires storage to the engine: it loads the athlete's
// profile, wellness, load series, and completion history, runs the
// modeling packages, and hands back their value objects. Both the HTTP
// handlers and the MCP tools sit on top of this one seam.
package coach

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/adapt"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/fitness"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/load"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/readiness"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/recommend"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/zones"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/models"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/storage"
)

// fitnessHistoryDays is how far back the load series reaches when
// computing today's state; at three chronic time constants the seed's
// influence is negligible.
const fitnessHistoryDays = 126

// hardLoadThreshold is the daily load at or above which a day counts as a
// hard effort for alternation and recovery-days purposes.
const hardLoadThreshold = 80

// longSessionMin is the duration from which a completed session counts as
// a long one.
const longSessionMin = 80

// Coach is the orchestration service.
type Coach struct {
	db  *storage.DB
	log *slog.Logger
}

// New creates a Coach over the given database.
func New(db *storage.DB, log *slog.Logger) *Coach {
	return &Coach{db: db, log: log}
}

// IngestWorkout quantifies one workout's load with the best available
// variant (stress score when a threshold is configured, TRIMP otherwise)
// and accumulates it onto the day. It returns the computed load; 0 means
// the workout's heart-rate data was unusable.
func (c *Coach) IngestWorkout(ctx context.Context, w *models.Workout) (float64, error) {
	profile, err := c.db.GetProfile(ctx)
	if err != nil {
		return 0, err
	}

	var value float64
	if profile.HasThreshold() {
		value = load.StressScore(w.DurationMin, w.AvgHR, profile.ThresholdHR, profile.MaxHR, profile.RestingHR)
	} else {
		value = load.TRIMP(w.DurationMin, w.AvgHR, profile.MaxHR, profile.RestingHR, profile.Gender)
	}
	if value == 0 {
		c.log.Warn("workout load not computable", "date", w.Date.Format("2006-01-02"), "avg_hr", w.AvgHR)
		return 0, nil
	}

	if err := c.db.AddToDailyLoad(ctx, day(w.Date), value); err != nil {
		return 0, err
	}
	return value, nil
}

// FitnessSeries computes the snapshot series for the window ending at
// asOf, zero-filling days with no stored load so the decay curves see one
// entry per calendar day.
func (c *Coach) FitnessSeries(ctx context.Context, asOf time.Time, days int) ([]fitness.Snapshot, error) {
	end := day(asOf)
	start := end.AddDate(0, 0, -(days - 1))

	stored, err := c.db.QueryDailyLoads(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]float64, len(stored))
	for _, dl := range stored {
		byDay[dl.Date.Format("2006-01-02")] = dl.Load
	}

	series := make([]fitness.DailyLoad, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		series = append(series, fitness.DailyLoad{Date: d, Load: byDay[d.Format("2006-01-02")]})
	}

	snaps, err := fitness.ComputeSeries(series, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("computing fitness series: %w", err)
	}
	return snaps, nil
}

// CurrentFitness returns today's snapshot.
func (c *Coach) CurrentFitness(ctx context.Context, asOf time.Time) (fitness.Snapshot, error) {
	snaps, err := c.FitnessSeries(ctx, asOf, fitnessHistoryDays)
	if err != nil {
		return fitness.Snapshot{}, err
	}
	return snaps[len(snaps)-1], nil
}

// Readiness scores today from stored wellness plus the fitness state.
func (c *Coach) Readiness(ctx context.Context, asOf time.Time) (readiness.Result, error) {
	snap, err := c.CurrentFitness(ctx, asOf)
	if err != nil {
		return readiness.Result{}, err
	}

	in := readiness.Inputs{
		Balance:       &snap.Balance,
		Ratio:         &snap.Ratio,
		DaysSinceHard: c.daysSinceHard(ctx, asOf),
	}

	w, err := c.db.GetWellness(ctx, day(asOf))
	if err != nil {
		return readiness.Result{}, err
	}
	if w != nil {
		applyWellness(&in, w)

		// A device that reports last-night HRV without its own baseline
		// gets one from the stored week.
		if in.HRVLastNight != nil && in.HRVBaseline == nil {
			if baseline, ok, err := c.db.HRVWeeklyBaseline(ctx, day(asOf)); err == nil && ok {
				in.HRVBaseline = &baseline
			}
		}
	}

	return readiness.Score(day(asOf), in), nil
}

// GreenStreak is the current and best run of consecutive green readiness
// days.
type GreenStreak struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// ReadinessStreak rescores every day of the fitness window from its
// snapshot and stored wellness, then folds the series into the green-day
// streaks.
func (c *Coach) ReadinessStreak(ctx context.Context, asOf time.Time) (GreenStreak, error) {
	snaps, err := c.FitnessSeries(ctx, asOf, fitnessHistoryDays)
	if err != nil {
		return GreenStreak{}, err
	}

	start := day(asOf).AddDate(0, 0, -(fitnessHistoryDays - 1))
	wellness, err := c.db.QueryWellnessRange(ctx, start, day(asOf))
	if err != nil {
		return GreenStreak{}, err
	}
	byDay := make(map[string]*models.WellnessDay, len(wellness))
	for i := range wellness {
		byDay[day(wellness[i].Date).Format("2006-01-02")] = &wellness[i]
	}

	current, best := readiness.GreenDayStreak(readinessSeries(snaps, byDay))
	return GreenStreak{Current: current, Best: best}, nil
}

// readinessSeries scores each historical day. Days since the last hard
// effort come from the load series itself rather than a per-day query.
func readinessSeries(snaps []fitness.Snapshot, wellnessByDay map[string]*models.WellnessDay) []readiness.Result {
	results := make([]readiness.Result, 0, len(snaps))
	lastHard := -1
	for i := range snaps {
		snap := snaps[i]
		if snap.Load >= hardLoadThreshold {
			lastHard = i
		}
		daysSinceHard := 99
		if lastHard >= 0 {
			daysSinceHard = i - lastHard
		}

		in := readiness.Inputs{
			Balance:       &snap.Balance,
			Ratio:         &snap.Ratio,
			DaysSinceHard: daysSinceHard,
		}
		if w := wellnessByDay[snap.Date.Format("2006-01-02")]; w != nil {
			applyWellness(&in, w)
		}
		results = append(results, readiness.Score(snap.Date, in))
	}
	return results
}

// applyWellness copies one day's stored wellness signals into readiness
// inputs, preserving absence.
func applyWellness(in *readiness.Inputs, w *models.WellnessDay) {
	in.HRVLastNight = w.HRVLastNight
	in.HRVBaseline = w.HRVBaseline
	in.HRVStatus = w.HRVStatus
	in.SleepHours = w.SleepHours
	in.DeepSleepPct = w.DeepSleepPct
	in.SleepScore = w.SleepScore
	in.SleepEfficiency = w.SleepEfficiency
	in.AvgStress = w.AvgStress
	in.HighStressMin = w.HighStressMin
	in.LowStressMin = w.LowStressMin
}

// Recommendation runs the rule cascade for today.
func (c *Coach) Recommendation(ctx context.Context, asOf time.Time) (recommend.Recommendation, error) {
	snap, err := c.CurrentFitness(ctx, asOf)
	if err != nil {
		return recommend.Recommendation{}, err
	}
	ready, err := c.Readiness(ctx, asOf)
	if err != nil {
		return recommend.Recommendation{}, err
	}

	in := recommend.Input{
		Readiness:     ready.Score,
		Ratio:         snap.Ratio,
		Balance:       snap.Balance,
		DaysSinceHard: c.daysSinceHard(ctx, asOf),
		DaysSinceLong: c.daysSinceLong(ctx, asOf),
	}
	return recommend.Recommend(in), nil
}

// Zones derives the athlete's heart-rate and power zone sets, preferring
// the Karvonen derivation and falling back per available parameters.
func (c *Coach) Zones(ctx context.Context) (hr zones.ZoneSet, power zones.ZoneSet, err error) {
	profile, err := c.db.GetProfile(ctx)
	if err != nil {
		return zones.ZoneSet{}, zones.ZoneSet{}, err
	}

	switch {
	case profile.RestingHR > 0 && profile.MaxHR > profile.RestingHR:
		hr = zones.HRZonesKarvonen(profile.MaxHR, profile.RestingHR)
	case profile.HasThreshold():
		hr = zones.HRZonesFriel(profile.ThresholdHR)
	default:
		hr = zones.HRZonesMaxPct(profile.MaxHR)
	}
	power = zones.PowerZones(profile.FTPWatts)
	return hr, power, nil
}

// History loads the completion records of the trailing lookback window
// into an adapt.History.
func (c *Coach) History(ctx context.Context, asOf time.Time, lookbackDays int) (*adapt.History, error) {
	if lookbackDays <= 0 {
		lookbackDays = adapt.DefaultLongWindow
	}
	records, err := c.db.QueryCompletions(ctx, day(asOf).AddDate(0, 0, -lookbackDays), day(asOf))
	if err != nil {
		return nil, err
	}
	return adapt.NewHistory(records), nil
}

// Adaptations generates, persists, and returns today's adaptation
// recommendations.
func (c *Coach) Adaptations(ctx context.Context, asOf time.Time) ([]adapt.Recommendation, error) {
	snap, err := c.CurrentFitness(ctx, asOf)
	if err != nil {
		return nil, err
	}
	history, err := c.History(ctx, asOf, adapt.DefaultLongWindow)
	if err != nil {
		return nil, err
	}
	profile, err := c.db.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	engine := adapt.NewEngine(history)
	recs := engine.Generate(day(asOf), adapt.State{Snapshot: snap, RaceDate: profile.RaceDate})
	if len(recs) > 0 {
		if err := c.db.InsertAdaptations(ctx, recs); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

// Prediction estimates the outcome of the next planned workout.
func (c *Coach) Prediction(ctx context.Context, asOf time.Time) (adapt.Prediction, error) {
	snap, err := c.CurrentFitness(ctx, asOf)
	if err != nil {
		return adapt.Prediction{}, err
	}
	history, err := c.History(ctx, asOf, adapt.DefaultLongWindow)
	if err != nil {
		return adapt.Prediction{}, err
	}

	compliance := history.ComplianceRate(day(asOf), adapt.DefaultWindow)
	return adapt.PredictOutcome(snap, compliance, history.DaysSinceRest(day(asOf))), nil
}

// daysSinceHard counts days since the last stored daily load at or above
// the hard threshold. No hard day on record reads as a long time ago.
func (c *Coach) daysSinceHard(ctx context.Context, asOf time.Time) int {
	last, ok, err := c.db.LastHardEffortDay(ctx, hardLoadThreshold)
	if err != nil {
		c.log.Warn("last hard effort lookup failed", "error", err)
		return 99
	}
	if !ok {
		return 99
	}
	return int(day(asOf).Sub(day(last)).Hours() / 24)
}

// daysSinceLong counts days since the last completed session at or above
// the long-session duration.
func (c *Coach) daysSinceLong(ctx context.Context, asOf time.Time) int {
	history, err := c.History(ctx, asOf, adapt.DefaultLongWindow)
	if err != nil {
		c.log.Warn("history lookup failed", "error", err)
		return 99
	}

	best := 99
	for _, rec := range history.All() {
		if !rec.Completed() || rec.ActualMin == nil || *rec.ActualMin < longSessionMin {
			continue
		}
		d := int(day(asOf).Sub(day(*rec.CompletedDate)).Hours() / 24)
		if d < best {
			best = d
		}
	}
	return best
}

// day truncates a timestamp to its UTC calendar day.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
