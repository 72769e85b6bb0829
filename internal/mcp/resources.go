package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/adapt"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) dailyBriefing(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	now := time.Now().UTC()

	readiness, err := h.coach.Readiness(ctx, now)
	if err != nil {
		return nil, err
	}

	streak, err := h.coach.ReadinessStreak(ctx, now)
	if err != nil {
		return nil, err
	}

	// A briefing with a zero-value section would read as real data to an
	// LLM consumer, so any failed lookup fails the whole resource.
	snapshot, err := h.coach.CurrentFitness(ctx, now)
	if err != nil {
		return nil, err
	}

	rec, err := h.coach.Recommendation(ctx, now)
	if err != nil {
		return nil, err
	}

	briefing := map[string]any{
		"date":             now.Format("2006-01-02"),
		"readiness":        readiness,
		"green_day_streak": streak,
		"fitness":          snapshot,
		"recommendation":   rec,
	}

	data, err := json.Marshal(briefing)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) zoneTargets(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	hr, power, err := h.coach.Zones(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(map[string]any{
		"heart_rate": hr,
		"power":      power,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) pendingAdaptations(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	now := time.Now().UTC()

	recs, err := h.db.QueryAdaptations(ctx, now.AddDate(0, 0, -adapt.DefaultLongWindow), now.AddDate(0, 0, 7), true)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(recs)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
