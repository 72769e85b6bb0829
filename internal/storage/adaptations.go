package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/adapt"
	"github.com/google/uuid"
)

// InsertAdaptations persists a batch of freshly generated adaptation
// recommendations.
func (db *DB) InsertAdaptations(ctx context.Context, recs []adapt.Recommendation) error {
	for _, r := range recs {
		_, err := db.Pool.Exec(ctx,
			`INSERT INTO adaptation_recommendations (
				id, trigger, adaptation_type, target_date,
				volume_multiplier, intensity_multiplier, reason, confidence,
				applied, applied_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			r.ID, string(r.Trigger), string(r.Type), r.TargetDate,
			r.VolumeMultiplier, r.IntensityMultiplier, r.Reason, r.Confidence,
			r.Applied, r.AppliedAt)
		if err != nil {
			return fmt.Errorf("inserting adaptation %s: %w", r.ID, err)
		}
	}
	return nil
}

// MarkAdaptationApplied flips the applied flag exactly once; a second call
// for the same ID affects no rows and errors.
func (db *DB) MarkAdaptationApplied(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE adaptation_recommendations
		 SET applied = TRUE, applied_at = $2
		 WHERE id = $1 AND applied = FALSE`,
		id, at)
	if err != nil {
		return fmt.Errorf("marking adaptation applied: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("adaptation %s not found or already applied", id)
	}
	return nil
}

// QueryAdaptations returns recommendations targeting dates in [start,
// end], newest first. unappliedOnly filters to those still pending.
func (db *DB) QueryAdaptations(ctx context.Context, start, end time.Time, unappliedOnly bool) ([]adapt.Recommendation, error) {
	q := `SELECT id, trigger, adaptation_type, target_date,
			volume_multiplier, intensity_multiplier, reason, confidence,
			applied, applied_at
		 FROM adaptation_recommendations
		 WHERE target_date >= $1 AND target_date <= $2`
	if unappliedOnly {
		q += ` AND applied = FALSE`
	}
	q += ` ORDER BY target_date DESC`

	rows, err := db.Pool.Query(ctx, q, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying adaptations: %w", err)
	}
	defer rows.Close()

	var out []adapt.Recommendation
	for rows.Next() {
		var r adapt.Recommendation
		var trigger, atype string
		if err := rows.Scan(&r.ID, &trigger, &atype, &r.TargetDate,
			&r.VolumeMultiplier, &r.IntensityMultiplier, &r.Reason, &r.Confidence,
			&r.Applied, &r.AppliedAt); err != nil {
			return nil, fmt.Errorf("scanning adaptation: %w", err)
		}
		r.Trigger = adapt.Trigger(trigger)
		r.Type = adapt.AdaptationType(atype)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
