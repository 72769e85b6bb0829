package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/load"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/models"
	"github.com/jackc/pgx/v5"
)

// ErrNoProfile is returned before the athlete has configured their
// physiological parameters.
var ErrNoProfile = errors.New("athlete profile not configured")

// GetProfile returns the athlete's physiological parameters.
func (db *DB) GetProfile(ctx context.Context) (*models.AthleteProfile, error) {
	var p models.AthleteProfile
	var gender string
	err := db.Pool.QueryRow(ctx,
		`SELECT max_hr, resting_hr, threshold_hr, ftp_watts, gender, race_date
		 FROM athlete_profile WHERE id = 1`,
	).Scan(&p.MaxHR, &p.RestingHR, &p.ThresholdHR, &p.FTPWatts, &gender, &p.RaceDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	p.Gender = load.Gender(gender)
	return &p, nil
}

// UpsertProfile stores the athlete's parameters, replacing any existing
// row.
func (db *DB) UpsertProfile(ctx context.Context, p *models.AthleteProfile) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO athlete_profile (id, max_hr, resting_hr, threshold_hr, ftp_watts, gender, race_date)
		 VALUES (1, $1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
			max_hr = EXCLUDED.max_hr,
			resting_hr = EXCLUDED.resting_hr,
			threshold_hr = EXCLUDED.threshold_hr,
			ftp_watts = EXCLUDED.ftp_watts,
			gender = EXCLUDED.gender,
			race_date = EXCLUDED.race_date`,
		p.MaxHR, p.RestingHR, p.ThresholdHR, p.FTPWatts, string(p.Gender), p.RaceDate)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}
