package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/models"
	"github.com/jackc/pgx/v5"
)

// UpsertWellness stores one day's wellness signals, replacing any existing
// row for that date.
func (db *DB) UpsertWellness(ctx context.Context, w *models.WellnessDay) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO daily_wellness (
			day, hrv_last_night, hrv_baseline, hrv_status,
			sleep_hours, deep_sleep_pct, sleep_score, sleep_efficiency,
			avg_stress, high_stress_min, low_stress_min, steps
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (day) DO UPDATE SET
			hrv_last_night = EXCLUDED.hrv_last_night,
			hrv_baseline = EXCLUDED.hrv_baseline,
			hrv_status = EXCLUDED.hrv_status,
			sleep_hours = EXCLUDED.sleep_hours,
			deep_sleep_pct = EXCLUDED.deep_sleep_pct,
			sleep_score = EXCLUDED.sleep_score,
			sleep_efficiency = EXCLUDED.sleep_efficiency,
			avg_stress = EXCLUDED.avg_stress,
			high_stress_min = EXCLUDED.high_stress_min,
			low_stress_min = EXCLUDED.low_stress_min,
			steps = EXCLUDED.steps`,
		w.Date, w.HRVLastNight, w.HRVBaseline, nullableString(w.HRVStatus),
		w.SleepHours, w.DeepSleepPct, w.SleepScore, w.SleepEfficiency,
		w.AvgStress, w.HighStressMin, w.LowStressMin, w.Steps)
	if err != nil {
		return fmt.Errorf("upserting wellness: %w", err)
	}
	return nil
}

// GetWellness returns the wellness row for one day, or nil when the
// athlete's device uploaded nothing for it.
func (db *DB) GetWellness(ctx context.Context, day time.Time) (*models.WellnessDay, error) {
	var w models.WellnessDay
	var status *string
	err := db.Pool.QueryRow(ctx,
		`SELECT day, hrv_last_night, hrv_baseline, hrv_status,
			sleep_hours, deep_sleep_pct, sleep_score, sleep_efficiency,
			avg_stress, high_stress_min, low_stress_min, steps
		 FROM daily_wellness WHERE day = $1`,
		day,
	).Scan(&w.Date, &w.HRVLastNight, &w.HRVBaseline, &status,
		&w.SleepHours, &w.DeepSleepPct, &w.SleepScore, &w.SleepEfficiency,
		&w.AvgStress, &w.HighStressMin, &w.LowStressMin, &w.Steps)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying wellness: %w", err)
	}
	if status != nil {
		w.HRVStatus = *status
	}
	return &w, nil
}

// QueryWellnessRange returns all wellness rows in [start, end], ordered by
// day. Days with no upload are simply absent.
func (db *DB) QueryWellnessRange(ctx context.Context, start, end time.Time) ([]models.WellnessDay, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT day, hrv_last_night, hrv_baseline, hrv_status,
			sleep_hours, deep_sleep_pct, sleep_score, sleep_efficiency,
			avg_stress, high_stress_min, low_stress_min, steps
		 FROM daily_wellness WHERE day >= $1 AND day <= $2 ORDER BY day`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying wellness range: %w", err)
	}
	defer rows.Close()

	var days []models.WellnessDay
	for rows.Next() {
		var w models.WellnessDay
		var status *string
		if err := rows.Scan(&w.Date, &w.HRVLastNight, &w.HRVBaseline, &status,
			&w.SleepHours, &w.DeepSleepPct, &w.SleepScore, &w.SleepEfficiency,
			&w.AvgStress, &w.HighStressMin, &w.LowStressMin, &w.Steps); err != nil {
			return nil, fmt.Errorf("scanning wellness row: %w", err)
		}
		if status != nil {
			w.HRVStatus = *status
		}
		days = append(days, w)
	}
	return days, rows.Err()
}

// HRVWeeklyBaseline computes the rolling average of last-night HRV over
// the seven days before (not including) the given day. ok is false when no
// HRV rows exist in the window.
func (db *DB) HRVWeeklyBaseline(ctx context.Context, day time.Time) (float64, bool, error) {
	var avg *float64
	err := db.Pool.QueryRow(ctx,
		`SELECT AVG(hrv_last_night) FROM daily_wellness
		 WHERE day >= $1 AND day < $2 AND hrv_last_night IS NOT NULL`,
		day.AddDate(0, 0, -7), day,
	).Scan(&avg)
	if err != nil {
		return 0, false, fmt.Errorf("querying HRV baseline: %w", err)
	}
	if avg == nil {
		return 0, false, nil
	}
	return *avg, true, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
