package readiness

// GreenDayStreak returns the current and best run of consecutive green
// days over a chronologically ordered result series. A single linear scan
// is sufficient; the streak resets on any non-green day.
func GreenDayStreak(results []Result) (current, best int) {
	run := 0
	for _, r := range results {
		if r.Zone == ZoneGreen {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return run, best
}
