package mcp

import (
	"testing"
	"time"
)

// TestAsOfDateDefault verifies an empty date argument resolves to now rather
// than the zero time.
func TestAsOfDateDefault(t *testing.T) {
	got, err := asOfDate("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(got) > time.Minute {
		t.Errorf("asOfDate(\"\") = %v, want approximately now", got)
	}
}

// TestAsOfDateExplicit verifies plain and RFC3339 date parsing.
func TestAsOfDateExplicit(t *testing.T) {
	got, err := asOfDate("2026-03-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2026 || got.Month() != 3 || got.Day() != 10 {
		t.Errorf("asOfDate = %v, want 2026-03-10", got)
	}

	got, err = asOfDate("2026-03-10T06:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 6 || got.Minute() != 30 {
		t.Errorf("asOfDate = %v, want 06:30", got)
	}

	if _, err := asOfDate("not-a-date"); err == nil {
		t.Error("expected error for invalid date")
	}
}

// TestDefaultDateRange verifies the 42-day default window and explicit bounds.
func TestDefaultDateRange(t *testing.T) {
	start, end, err := defaultDateRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	days := end.Sub(start).Hours() / 24
	if days < 41.9 || days > 42.1 {
		t.Errorf("default range = %.1f days, want 42", days)
	}

	start, end, err = defaultDateRange("2026-01-01", "2026-02-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Day() != 1 || start.Month() != 1 {
		t.Errorf("start = %v, want 2026-01-01", start)
	}
	if end.Month() != 2 {
		t.Errorf("end = %v, want 2026-02-01", end)
	}

	if _, _, err := defaultDateRange("junk", ""); err == nil {
		t.Error("expected error for invalid start date")
	}
}
