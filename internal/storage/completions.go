package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/adapt"
	"github.com/google/uuid"
)

// InsertPlannedWorkout stores a newly scheduled session.
func (db *DB) InsertPlannedWorkout(ctx context.Context, c *adapt.Completion) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_completions (
			workout_id, planned_date, planned_type, planned_duration_min, planned_load
		) VALUES ($1, $2, $3, $4, $5)`,
		c.WorkoutID, c.PlannedDate, c.PlannedType, c.PlannedMin, c.PlannedLoad)
	if err != nil {
		return fmt.Errorf("inserting planned workout: %w", err)
	}
	return nil
}

// UpdateWorkoutResult persists the logged actual result for a planned
// session. The guard against completed_date being already set mirrors the
// engine's log-once rule.
func (db *DB) UpdateWorkoutResult(ctx context.Context, id uuid.UUID, res adapt.Result) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE workout_completions SET
			completed_date = $2,
			actual_duration_min = $3,
			actual_load = $4,
			avg_heart_rate = $5,
			distance_km = $6,
			rpe = $7,
			feeling = $8
		 WHERE workout_id = $1 AND completed_date IS NULL`,
		id, res.CompletedDate, res.ActualMin, res.ActualLoad, res.AvgHR,
		res.DistanceKm, res.RPE, nullableString(res.Feeling))
	if err != nil {
		return fmt.Errorf("updating workout result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workout %s not found or already logged", id)
	}
	return nil
}

// QueryCompletions returns completion records with a planned date in
// [start, end], oldest first, shaped for seeding an adapt.History.
func (db *DB) QueryCompletions(ctx context.Context, start, end time.Time) ([]adapt.Completion, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT workout_id, planned_date, planned_type, planned_duration_min, planned_load,
			completed_date, actual_duration_min, actual_load, avg_heart_rate,
			distance_km, rpe, feeling
		 FROM workout_completions
		 WHERE planned_date >= $1 AND planned_date <= $2
		 ORDER BY planned_date ASC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying completions: %w", err)
	}
	defer rows.Close()

	var out []adapt.Completion
	for rows.Next() {
		var c adapt.Completion
		var feeling *string
		if err := rows.Scan(&c.WorkoutID, &c.PlannedDate, &c.PlannedType, &c.PlannedMin, &c.PlannedLoad,
			&c.CompletedDate, &c.ActualMin, &c.ActualLoad, &c.AvgHR,
			&c.DistanceKm, &c.RPE, &feeling); err != nil {
			return nil, fmt.Errorf("scanning completion: %w", err)
		}
		if feeling != nil {
			c.Feeling = *feeling
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
