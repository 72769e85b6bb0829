package adapt

import (
	"sort"
	"time"
)

// TrendMetric selects which per-session value the trend regression runs
// over.
type TrendMetric string

const (
	TrendLoad       TrendMetric = "load"
	TrendDuration   TrendMetric = "duration"
	TrendCompliance TrendMetric = "compliance"
	TrendRPE        TrendMetric = "rpe"
)

// Trend classifications.
const (
	TrendImproving    = "improving"
	TrendDeclining    = "declining"
	TrendStable       = "stable"
	TrendInsufficient = "insufficient_data"
)

// minTrendPoints is the fewest completed sessions a trend can be read
// from; below this the classification is insufficient_data, never a
// fabricated direction.
const minTrendPoints = 3

// TrendResult is a linear-regression read of one metric over the window's
// completed sessions.
type TrendResult struct {
	Metric         TrendMetric `json:"metric"`
	Slope          float64     `json:"slope"`
	PctPerSession  float64     `json:"pct_per_session"`
	Classification string      `json:"classification"`
	DataPoints     int         `json:"data_points"`
}

// metricValue extracts the chosen metric from a completed session; ok is
// false when the session lacks the field.
func metricValue(c Completion, metric TrendMetric) (float64, bool) {
	switch metric {
	case TrendLoad:
		if c.ActualLoad != nil {
			return *c.ActualLoad, true
		}
	case TrendDuration:
		if c.ActualMin != nil {
			return *c.ActualMin, true
		}
	case TrendCompliance:
		if c.ActualLoad != nil && c.PlannedLoad > 0 {
			return *c.ActualLoad / c.PlannedLoad * 100, true
		}
	case TrendRPE:
		if c.RPE != nil {
			return float64(*c.RPE), true
		}
	}
	return 0, false
}

// Trend fits a least-squares line through the chosen metric over the
// window's completed sessions in chronological order, normalizes the slope
// by the series mean to a percent-per-session rate, and classifies it:
// above +1% improving, below -1% declining, otherwise stable.
func (h *History) Trend(asOf time.Time, lookbackDays int, metric TrendMetric) TrendResult {
	window := h.Window(asOf, lookbackDays)
	sort.Slice(window, func(i, j int) bool {
		return window[i].PlannedDate.Before(window[j].PlannedDate)
	})

	var values []float64
	for _, c := range window {
		if !c.Completed() {
			continue
		}
		if v, ok := metricValue(c, metric); ok {
			values = append(values, v)
		}
	}

	result := TrendResult{Metric: metric, DataPoints: len(values)}
	if len(values) < minTrendPoints {
		result.Classification = TrendInsufficient
		return result
	}

	slope := regressionSlope(values)
	result.Slope = slope

	mean := meanOf(values)
	if mean != 0 {
		result.PctPerSession = slope / mean * 100
	}

	switch {
	case result.PctPerSession > 1:
		result.Classification = TrendImproving
	case result.PctPerSession < -1:
		result.Classification = TrendDeclining
	default:
		result.Classification = TrendStable
	}
	return result
}

// regressionSlope is the ordinary least-squares slope of values against
// their indices 0..n-1.
func regressionSlope(values []float64) float64 {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
