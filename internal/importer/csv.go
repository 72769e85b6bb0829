package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/models"
)

// Garmin Connect CSV exports vary their column order between releases, so
// rows are addressed by header name rather than position.

type headerIndex map[string]int

func indexHeader(record []string) headerIndex {
	idx := make(headerIndex, len(record))
	for i, name := range record {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

func (h headerIndex) str(record []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (h headerIndex) float(record []string, name string) (float64, bool) {
	s := h.str(record, name)
	if s == "" || s == "--" {
		return 0, false
	}
	// Garmin writes thousands separators in distance columns.
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (h headerIndex) floatPtr(record []string, name string) *float64 {
	if v, ok := h.float(record, name); ok {
		return &v
	}
	return nil
}

// parseDuration accepts "hh:mm:ss", "mm:ss", or plain minutes.
func parseDuration(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "--" {
		return 0, fmt.Errorf("empty duration")
	}
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 1:
		return strconv.ParseFloat(parts[0], 64)
	case 2:
		m, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, err
		}
		sec, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, err
		}
		return m + sec/60, nil
	case 3:
		hr, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, err
		}
		m, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, err
		}
		sec, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return 0, err
		}
		return hr*60 + m + sec/60, nil
	}
	return 0, fmt.Errorf("unrecognized duration %q", s)
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseActivities reads a Garmin activity export into workout records.
// Rows missing a date or duration are skipped and counted, not fatal.
func parseActivities(r io.Reader) ([]models.Workout, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("reading header: %w", err)
	}
	idx := indexHeader(header)

	var workouts []models.Workout
	skipped := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("reading row: %w", err)
		}

		date, err := parseDate(idx.str(record, "date"))
		if err != nil {
			skipped++
			continue
		}
		dur, err := parseDuration(idx.str(record, "time"))
		if err != nil || dur <= 0 {
			skipped++
			continue
		}

		w := models.Workout{
			Date:        date,
			Type:        idx.str(record, "activity type"),
			DurationMin: dur,
		}
		if v, ok := idx.float(record, "avg hr"); ok {
			w.AvgHR = v
		}
		if v, ok := idx.float(record, "max hr"); ok {
			w.MaxHR = v
		}
		if v, ok := idx.float(record, "distance"); ok {
			w.DistanceKm = v
		}
		if v, ok := idx.float(record, "avg power"); ok {
			w.AvgWatts = v
		}
		workouts = append(workouts, w)
	}
	return workouts, skipped, nil
}

// parseWellness reads a daily wellness export into wellness records. Absent
// cells stay nil so downstream scoring can exclude them.
func parseWellness(r io.Reader) ([]models.WellnessDay, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("reading header: %w", err)
	}
	idx := indexHeader(header)

	var days []models.WellnessDay
	skipped := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("reading row: %w", err)
		}

		date, err := parseDate(idx.str(record, "date"))
		if err != nil {
			skipped++
			continue
		}

		d := models.WellnessDay{
			Date:            date,
			HRVLastNight:    idx.floatPtr(record, "hrv"),
			HRVStatus:       strings.ToLower(idx.str(record, "hrv status")),
			SleepHours:      idx.floatPtr(record, "sleep hours"),
			DeepSleepPct:    idx.floatPtr(record, "deep sleep pct"),
			SleepScore:      idx.floatPtr(record, "sleep score"),
			SleepEfficiency: idx.floatPtr(record, "sleep efficiency"),
			AvgStress:       idx.floatPtr(record, "avg stress"),
			HighStressMin:   idx.floatPtr(record, "high stress min"),
			LowStressMin:    idx.floatPtr(record, "low stress min"),
		}
		if v, ok := idx.float(record, "steps"); ok {
			steps := int(v)
			d.Steps = &steps
		}
		days = append(days, d)
	}
	return days, skipped, nil
}
