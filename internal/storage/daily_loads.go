package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/fitness"
)

// UpsertDailyLoad stores one day's scalar load. Recomputation replaces the
// existing value for that date, never merges.
func (db *DB) UpsertDailyLoad(ctx context.Context, date time.Time, loadValue float64) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO daily_loads (day, load)
		 VALUES ($1, $2)
		 ON CONFLICT (day) DO UPDATE SET load = EXCLUDED.load`,
		date, loadValue)
	if err != nil {
		return fmt.Errorf("upserting daily load: %w", err)
	}
	return nil
}

// AddToDailyLoad accumulates a workout's load onto its day, for days with
// multiple sessions.
func (db *DB) AddToDailyLoad(ctx context.Context, date time.Time, loadValue float64) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO daily_loads (day, load)
		 VALUES ($1, $2)
		 ON CONFLICT (day) DO UPDATE SET load = daily_loads.load + EXCLUDED.load`,
		date, loadValue)
	if err != nil {
		return fmt.Errorf("accumulating daily load: %w", err)
	}
	return nil
}

// QueryDailyLoads returns the stored loads in [start, end] in ascending
// date order. Days with no row are simply absent; the coach layer
// zero-fills before running the fitness model.
func (db *DB) QueryDailyLoads(ctx context.Context, start, end time.Time) ([]fitness.DailyLoad, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT day, load FROM daily_loads
		 WHERE day >= $1 AND day <= $2
		 ORDER BY day ASC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying daily loads: %w", err)
	}
	defer rows.Close()

	var loads []fitness.DailyLoad
	for rows.Next() {
		var dl fitness.DailyLoad
		if err := rows.Scan(&dl.Date, &dl.Load); err != nil {
			return nil, fmt.Errorf("scanning daily load: %w", err)
		}
		loads = append(loads, dl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return loads, nil
}

// LastHardEffortDay returns the most recent day whose load is at or above
// the threshold, for the hard-easy alternation and recovery-days factors.
// ok is false when no such day exists.
func (db *DB) LastHardEffortDay(ctx context.Context, hardLoadThreshold float64) (time.Time, bool, error) {
	var day *time.Time
	err := db.Pool.QueryRow(ctx,
		`SELECT MAX(day) FROM daily_loads WHERE load >= $1`,
		hardLoadThreshold,
	).Scan(&day)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("querying last hard effort: %w", err)
	}
	if day == nil {
		return time.Time{}, false, nil
	}
	return *day, true, nil
}
