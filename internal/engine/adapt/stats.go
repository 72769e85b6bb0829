package adapt

import "time"

// Default lookback windows in days.
const (
	DefaultWindow     = 14
	DefaultLongWindow = 28
)

// loadComplianceCap bounds a single session's load compliance so one
// blown-up workout cannot drag the mean around.
const loadComplianceCap = 150

// ComplianceRate returns the percentage of planned sessions in the window
// that were completed. An empty window returns 100: absence of data is not
// penalized.
func (h *History) ComplianceRate(asOf time.Time, lookbackDays int) float64 {
	window := h.Window(asOf, lookbackDays)
	if len(window) == 0 {
		return 100
	}
	var done int
	for _, c := range window {
		if c.Completed() {
			done++
		}
	}
	return float64(done) / float64(len(window)) * 100
}

// LoadCompliance returns the mean of per-session actual/planned load
// percentages over completed sessions in the window, with each session
// clamped to 150%. Sessions without both loads are skipped; no usable
// sessions returns 100.
func (h *History) LoadCompliance(asOf time.Time, lookbackDays int) float64 {
	window := h.Window(asOf, lookbackDays)

	var sum float64
	var n int
	for _, c := range window {
		if !c.Completed() || c.ActualLoad == nil || c.PlannedLoad <= 0 {
			continue
		}
		pct := *c.ActualLoad / c.PlannedLoad * 100
		if pct > loadComplianceCap {
			pct = loadComplianceCap
		}
		sum += pct
		n++
	}
	if n == 0 {
		return 100
	}
	return sum / float64(n)
}

// DaysSinceRest returns the number of consecutive days up to asOf with a
// completed session, i.e. days since the athlete last took a full day off.
func (h *History) DaysSinceRest(asOf time.Time) int {
	all := h.All()
	trained := make(map[string]bool)
	for _, c := range all {
		if c.Completed() {
			trained[c.CompletedDate.Format("2006-01-02")] = true
		}
	}

	days := 0
	for d := asOf; trained[d.Format("2006-01-02")]; d = d.AddDate(0, 0, -1) {
		days++
	}
	return days
}
