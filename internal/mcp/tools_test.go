package mcp

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/coach"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/adapt"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/fitness"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/readiness"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/recommend"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/engine/zones"
	"github.com/mark3labs/mcp-go/mcp"
)

// fakeCoach satisfies CoachSource with canned values so handlers can be
// exercised without a database.
type fakeCoach struct {
	streak     coach.GreenStreak
	fitnessErr error

	historyDays int
}

func (f *fakeCoach) Readiness(ctx context.Context, asOf time.Time) (readiness.Result, error) {
	return readiness.Result{Date: asOf, Score: 72, Zone: readiness.ZoneGreen}, nil
}

func (f *fakeCoach) ReadinessStreak(ctx context.Context, asOf time.Time) (coach.GreenStreak, error) {
	return f.streak, nil
}

func (f *fakeCoach) FitnessSeries(ctx context.Context, asOf time.Time, days int) ([]fitness.Snapshot, error) {
	return nil, nil
}

func (f *fakeCoach) CurrentFitness(ctx context.Context, asOf time.Time) (fitness.Snapshot, error) {
	if f.fitnessErr != nil {
		return fitness.Snapshot{}, f.fitnessErr
	}
	return fitness.Snapshot{Date: asOf, Ratio: 1.0}, nil
}

func (f *fakeCoach) Recommendation(ctx context.Context, asOf time.Time) (recommend.Recommendation, error) {
	return recommend.Recommendation{}, nil
}

func (f *fakeCoach) Zones(ctx context.Context) (zones.ZoneSet, zones.ZoneSet, error) {
	return zones.ZoneSet{}, zones.ZoneSet{}, nil
}

func (f *fakeCoach) Prediction(ctx context.Context, asOf time.Time) (adapt.Prediction, error) {
	return adapt.Prediction{}, nil
}

func (f *fakeCoach) History(ctx context.Context, asOf time.Time, lookbackDays int) (*adapt.History, error) {
	f.historyDays = lookbackDays
	return adapt.NewHistory(nil), nil
}

func testHandlers(f *fakeCoach) *handlers {
	return &handlers{coach: f, log: slog.New(slog.DiscardHandler)}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool returned error result: %+v", res.Content)
	}
	if len(res.Content) == 0 {
		t.Fatal("tool returned no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

// TestGetReadinessIncludesStreak verifies the readiness tool carries the
// green-day streak alongside the day's score.
func TestGetReadinessIncludesStreak(t *testing.T) {
	h := testHandlers(&fakeCoach{streak: coach.GreenStreak{Current: 3, Best: 9}})

	res, err := h.getReadiness(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := resultText(t, res)
	if !strings.Contains(text, `"green_day_streak"`) {
		t.Errorf("payload missing green_day_streak: %s", text)
	}
	if !strings.Contains(text, `"best":9`) || !strings.Contains(text, `"current":3`) {
		t.Errorf("payload missing streak values: %s", text)
	}
	if !strings.Contains(text, `"readiness"`) {
		t.Errorf("payload missing readiness section: %s", text)
	}
}

// TestGetComplianceWindowPassthrough verifies the requested window reaches
// the history lookup instead of being silently truncated to a default.
func TestGetComplianceWindowPassthrough(t *testing.T) {
	f := &fakeCoach{}
	h := testHandlers(f)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"window": 60}
	if _, err := h.getCompliance(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.historyDays != 60 {
		t.Errorf("history window = %d, want 60", f.historyDays)
	}

	if _, err := h.getCompliance(context.Background(), mcp.CallToolRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.historyDays != adapt.DefaultWindow {
		t.Errorf("default history window = %d, want %d", f.historyDays, adapt.DefaultWindow)
	}
}

// TestDailyBriefingFailsClosed verifies a failed fitness lookup fails the
// whole briefing rather than embedding a zero-value snapshot that would
// read as real data.
func TestDailyBriefingFailsClosed(t *testing.T) {
	h := testHandlers(&fakeCoach{fitnessErr: errors.New("pool exhausted")})

	if _, err := h.dailyBriefing(context.Background(), mcp.ReadResourceRequest{}); err == nil {
		t.Error("expected briefing to fail when fitness lookup fails")
	}
}

// TestDailyBriefingIncludesStreak verifies the briefing document carries
// the green-day streak section.
func TestDailyBriefingIncludesStreak(t *testing.T) {
	h := testHandlers(&fakeCoach{streak: coach.GreenStreak{Current: 2, Best: 5}})

	contents, err := h.dailyBriefing(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("content type %T, want TextResourceContents", contents[0])
	}
	if !strings.Contains(text.Text, `"green_day_streak"`) || !strings.Contains(text.Text, `"best":5`) {
		t.Errorf("briefing missing streak: %s", text.Text)
	}
}
