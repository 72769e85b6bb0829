package mcp

import (
	"context"
	"time"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/coach"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/adapt"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/fitness"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/readiness"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/recommend"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/zones"
)

// CoachSource abstracts the orchestration layer for MCP tools and
// resources.
type CoachSource interface {
	Readiness(ctx context.Context, asOf time.Time) (readiness.Result, error)
	ReadinessStreak(ctx context.Context, asOf time.Time) (coach.GreenStreak, error)
	FitnessSeries(ctx context.Context, asOf time.Time, days int) ([]fitness.Snapshot, error)
	CurrentFitness(ctx context.Context, asOf time.Time) (fitness.Snapshot, error)
	Recommendation(ctx context.Context, asOf time.Time) (recommend.Recommendation, error)
	Zones(ctx context.Context) (zones.ZoneSet, zones.ZoneSet, error)
	Prediction(ctx context.Context, asOf time.Time) (adapt.Prediction, error)
	History(ctx context.Context, asOf time.Time, lookbackDays int) (*adapt.History, error)
}

// Compile-time check: *coach.Coach satisfies CoachSource.
var _ CoachSource = (*coach.Coach)(nil)
