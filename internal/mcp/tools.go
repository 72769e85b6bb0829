package mcp

import (
	"context"
	"time"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/adapt"
	"github.com/mark3labs/mcp-go/mcp"
)

// asOfDate parses an optional date argument, defaulting to now.
func asOfDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	return parseFlexTime(s)
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// defaultDateRange returns start/end defaulting to the last 42 days.
func defaultDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now().UTC()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -42)
	}

	return start, end, nil
}

// --- Tool definitions ---

var toolGetReadiness = mcp.NewTool("get_readiness",
	mcp.WithDescription("Compute the athlete's readiness score (0-100) with per-factor contributions, the green/yellow/red light, and the current and best green-day streaks."),
	mcp.WithString("date", mcp.Description("Date to evaluate (YYYY-MM-DD). Defaults to today.")),
)

var toolGetFitnessTrend = mcp.NewTool("get_fitness_trend",
	mcp.WithDescription("Daily fitness snapshots: chronic load (fitness), acute load (fatigue), training balance, and acute:chronic ratio with risk zone."),
	mcp.WithString("date", mcp.Description("Last day of the series (YYYY-MM-DD). Defaults to today.")),
	mcp.WithNumber("days", mcp.Description("Number of days to return. Defaults to 42.")),
)

var toolGetRecommendation = mcp.NewTool("get_recommendation",
	mcp.WithDescription("Today's workout recommendation: type, intensity, duration range, and the reason it was chosen."),
	mcp.WithString("date", mcp.Description("Date to evaluate (YYYY-MM-DD). Defaults to today.")),
)

var toolGetZones = mcp.NewTool("get_zones",
	mcp.WithDescription("Heart rate and power training zone boundaries derived from the athlete profile."),
)

var toolGetPrediction = mcp.NewTool("get_prediction",
	mcp.WithDescription("Predicted completion quality for the next workout, with injury and overtraining risk levels."),
	mcp.WithString("date", mcp.Description("Date to evaluate (YYYY-MM-DD). Defaults to today.")),
)

var toolGetCompliance = mcp.NewTool("get_compliance",
	mcp.WithDescription("Plan compliance over a rolling window: completion rate, load compliance, and load/RPE trends."),
	mcp.WithString("date", mcp.Description("End of the window (YYYY-MM-DD). Defaults to today.")),
	mcp.WithNumber("window", mcp.Description("Window length in days. Defaults to 14.")),
)

var toolGetDailyLoads = mcp.NewTool("get_daily_loads",
	mcp.WithDescription("Raw daily training load values over a date range."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to 42 days ago.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetAdaptations = mcp.NewTool("get_adaptations",
	mcp.WithDescription("Plan adaptation recommendations (volume/intensity multipliers with triggers). Optionally only those not yet applied."),
	mcp.WithBoolean("pending_only", mcp.Description("When true, return only unapplied recommendations. Defaults to false.")),
)

// --- Tool handlers ---

func (h *handlers) getReadiness(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	asOf, err := asOfDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	res, err := h.coach.Readiness(ctx, asOf)
	if err != nil {
		h.log.Error("mcp get_readiness", "error", err)
		return mcp.NewToolResultError("readiness failed: " + err.Error()), nil
	}
	streak, err := h.coach.ReadinessStreak(ctx, asOf)
	if err != nil {
		h.log.Error("mcp get_readiness streak", "error", err)
		return mcp.NewToolResultError("readiness streak failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"readiness":        res,
		"green_day_streak": streak,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getFitnessTrend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	asOf, err := asOfDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	days := req.GetInt("days", 42)
	if days <= 0 {
		days = 42
	}

	snaps, err := h.coach.FitnessSeries(ctx, asOf, days)
	if err != nil {
		h.log.Error("mcp get_fitness_trend", "error", err)
		return mcp.NewToolResultError("fitness series failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(snaps)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecommendation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	asOf, err := asOfDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	rec, err := h.coach.Recommendation(ctx, asOf)
	if err != nil {
		h.log.Error("mcp get_recommendation", "error", err)
		return mcp.NewToolResultError("recommendation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rec)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getZones(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hr, power, err := h.coach.Zones(ctx)
	if err != nil {
		h.log.Error("mcp get_zones", "error", err)
		return mcp.NewToolResultError("zones failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"heart_rate": hr,
		"power":      power,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPrediction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	asOf, err := asOfDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	pred, err := h.coach.Prediction(ctx, asOf)
	if err != nil {
		h.log.Error("mcp get_prediction", "error", err)
		return mcp.NewToolResultError("prediction failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(pred)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCompliance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	asOf, err := asOfDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	window := req.GetInt("window", adapt.DefaultWindow)
	if window <= 0 {
		window = adapt.DefaultWindow
	}

	history, err := h.coach.History(ctx, asOf, window)
	if err != nil {
		h.log.Error("mcp get_compliance", "error", err)
		return mcp.NewToolResultError("history failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"window_days":     window,
		"compliance_pct":  history.ComplianceRate(asOf, window),
		"load_compliance": history.LoadCompliance(asOf, window),
		"load_trend":      history.Trend(asOf, window, adapt.TrendLoad),
		"rpe_trend":       history.Trend(asOf, window, adapt.TrendRPE),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDailyLoads(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultDateRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	loads, err := h.db.QueryDailyLoads(ctx, start, end)
	if err != nil {
		h.log.Error("mcp get_daily_loads", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(loads)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getAdaptations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pendingOnly := req.GetBool("pending_only", false)
	now := time.Now().UTC()

	recs, err := h.db.QueryAdaptations(ctx, now.AddDate(0, 0, -adapt.DefaultLongWindow), now.AddDate(0, 0, 7), pendingOnly)
	if err != nil {
		h.log.Error("mcp get_adaptations", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(recs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
