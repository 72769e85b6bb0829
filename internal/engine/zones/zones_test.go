package zones

import (
	"math"
	"testing"
)

// TestHRZonesKarvonen verifies reserve-percentage boundaries for a typical
// athlete and that the set passes its own invariants.
func TestHRZonesKarvonen(t *testing.T) {
	zs := HRZonesKarvonen(185, 55) // reserve 130
	if err := zs.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(zs.Zones) != 5 {
		t.Fatalf("got %d zones, want 5", len(zs.Zones))
	}
	wantLows := []float64{120, 133, 146, 159, 172}
	for i, want := range wantLows {
		if got := zs.Zones[i].Low; math.Abs(got-want) > 0.01 {
			t.Errorf("zone %d low = %.1f, want %.1f", i+1, got, want)
		}
	}
	if zs.Zones[4].High != 0 {
		t.Errorf("top zone high = %.1f, want unbounded (0)", zs.Zones[4].High)
	}
}

// TestHRZonesFriel verifies threshold-percentage boundaries.
func TestHRZonesFriel(t *testing.T) {
	zs := HRZonesFriel(165)
	if err := zs.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got, want := zs.Zones[0].Low, 165*0.85; math.Abs(got-want) > 0.01 {
		t.Errorf("zone 1 low = %.2f, want %.2f", got, want)
	}
	if got, want := zs.Zones[3].Low, 165*0.99; math.Abs(got-want) > 0.01 {
		t.Errorf("zone 4 low = %.2f, want %.2f", got, want)
	}
}

// TestPowerZones verifies the 7-zone FTP percentage boundaries.
func TestPowerZones(t *testing.T) {
	zs := PowerZones(250)
	if err := zs.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(zs.Zones) != 7 {
		t.Fatalf("got %d zones, want 7", len(zs.Zones))
	}
	if got := zs.Zones[0].Low; got != 0 {
		t.Errorf("zone 1 low = %.1f, want 0", got)
	}
	if got, want := zs.Zones[6].Low, 375.0; math.Abs(got-want) > 0.01 {
		t.Errorf("zone 7 low = %.1f, want %.1f", got, want)
	}
}

// TestDegenerateParameters verifies that zero or negative inputs produce
// all-zero zones and that classification on those sets returns 0 instead
// of fabricating a zone.
func TestDegenerateParameters(t *testing.T) {
	sets := []ZoneSet{
		HRZonesKarvonen(150, 160), // inverted reserve
		HRZonesFriel(0),
		HRZonesMaxPct(-10),
		PowerZones(0),
	}
	for i, zs := range sets {
		for _, z := range zs.Zones {
			if z.Low != 0 || z.High != 0 {
				t.Errorf("set %d zone %d: non-zero bounds %.1f/%.1f", i, z.Number, z.Low, z.High)
			}
		}
		if got := zs.Classify(150); got != 0 {
			t.Errorf("set %d: Classify(150) = %d, want 0", i, got)
		}
	}
}

// TestClassify_BoundariesAndMonotonicity verifies that each zone's low
// bound classifies into that zone and that below-zone samples return 0.
func TestClassify_BoundariesAndMonotonicity(t *testing.T) {
	zs := HRZonesKarvonen(185, 55)
	for _, z := range zs.Zones {
		if got := zs.Classify(z.Low); got != z.Number {
			t.Errorf("Classify(zone %d low %.1f) = %d, want %d", z.Number, z.Low, got, z.Number)
		}
	}
	if got := zs.Classify(zs.Zones[0].Low - 1); got != 0 {
		t.Errorf("Classify(below zone 1) = %d, want 0", got)
	}
	if got := zs.Classify(-5); got != 0 {
		t.Errorf("Classify(negative) = %d, want 0", got)
	}
	if got := zs.Classify(250); got != 5 {
		t.Errorf("Classify(above max) = %d, want 5 (unbounded top)", got)
	}
}

// TestTimeInZones verifies the distribution sums to 1 over valid samples
// and ignores zero/negative sensor noise.
func TestTimeInZones(t *testing.T) {
	zs := HRZonesKarvonen(185, 55)
	samples := []float64{125, 125, 140, 150, 165, 180, 0, -3}
	dist := zs.TimeInZones(samples)
	if len(dist) != 6 {
		t.Fatalf("distribution length = %d, want 6", len(dist))
	}
	var sum float64
	for _, f := range dist {
		sum += f
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("distribution sums to %.4f, want 1", sum)
	}
	// Two samples of six valid land in zone 1 ([120,133)).
	if got, want := dist[1], 2.0/6.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("zone 1 fraction = %.4f, want %.4f", got, want)
	}
}

// TestTimeInZones_NoValidSamples verifies the all-zero distribution rather
// than a division by zero.
func TestTimeInZones_NoValidSamples(t *testing.T) {
	zs := HRZonesKarvonen(185, 55)
	for _, samples := range [][]float64{nil, {}, {0, 0, -1}} {
		dist := zs.TimeInZones(samples)
		for i, f := range dist {
			if f != 0 {
				t.Errorf("bucket %d = %.4f, want 0", i, f)
			}
		}
	}
}

// TestFTPEstimates verifies the two heuristics and the agreement
// cross-check: a well-paced 20-minute test and a 1-minute burst from the
// same athlete should land within 5% when the numbers are consistent.
func TestFTPEstimates(t *testing.T) {
	if got := EstimateFTPFrom20Min(300); math.Abs(got-285) > 0.01 {
		t.Errorf("20-min estimate = %.1f, want 285", got)
	}
	if got := EstimateFTPFrom1Min(380); math.Abs(got-285) > 0.01 {
		t.Errorf("1-min estimate = %.1f, want 285", got)
	}
	if !FTPEstimatesAgree(285, 285, 0.05) {
		t.Error("identical estimates should agree")
	}
	if !FTPEstimatesAgree(285, 295, 0.05) {
		t.Error("estimates within 5%% should agree")
	}
	if FTPEstimatesAgree(285, 350, 0.05) {
		t.Error("estimates 20%% apart should not agree")
	}
	if FTPEstimatesAgree(0, 285, 0.05) {
		t.Error("zero estimate should never agree")
	}
}
