package recommend

import (
	"strings"
	"testing"
)

// healthy is a baseline input that triggers no gating rule.
func healthy() Input {
	return Input{
		Readiness:     60,
		Ratio:         1.0,
		Balance:       5,
		DaysSinceHard: 2,
		DaysSinceLong: 3,
	}
}

// TestRecommend_VeryLowReadinessRests verifies rule 1: readiness below the
// floor forces rest with a warning, whatever the rest of the state says.
func TestRecommend_VeryLowReadinessRests(t *testing.T) {
	in := healthy()
	in.Readiness = 20
	in.Ratio = 0.7 // undertrained would otherwise permit pushing

	rec := Recommend(in)
	if rec.Type != WorkoutRest {
		t.Fatalf("got %s, want rest", rec.TypeName)
	}
	if len(rec.Warnings) == 0 {
		t.Error("very low readiness should carry a warning")
	}
}

// TestRecommend_LowBandRecovery verifies rule 2: readiness 25-40 yields an
// active recovery session.
func TestRecommend_LowBandRecovery(t *testing.T) {
	in := healthy()
	in.Readiness = 32

	rec := Recommend(in)
	if rec.Type != WorkoutRecovery {
		t.Fatalf("got %s, want recovery", rec.TypeName)
	}
	if rec.Intensity != 1 {
		t.Errorf("intensity = %d, want 1", rec.Intensity)
	}
}

// TestRecommend_DangerRatioAlwaysRests verifies the risk-gating property:
// a danger-band ratio returns the minimum intensity (rest) for any
// readiness score.
func TestRecommend_DangerRatioAlwaysRests(t *testing.T) {
	for _, readiness := range []float64{10, 30, 50, 75, 95} {
		in := healthy()
		in.Readiness = readiness
		in.Ratio = 1.6

		rec := Recommend(in)
		if rec.Intensity != 0 {
			t.Errorf("readiness %.0f with danger ratio: intensity = %d, want 0", readiness, rec.Intensity)
		}
		if rec.Type != WorkoutRest {
			t.Errorf("readiness %.0f with danger ratio: got %s, want rest", readiness, rec.TypeName)
		}
	}
}

// TestRecommend_DangerReasonMentionsRisk verifies the danger rule's reason
// references injury risk rather than readiness.
func TestRecommend_DangerReasonMentionsRisk(t *testing.T) {
	in := healthy()
	in.Readiness = 80
	in.Ratio = 1.7

	rec := Recommend(in)
	if !strings.Contains(rec.Reason, "danger") && !strings.Contains(strings.ToLower(rec.Reason), "injury") {
		t.Errorf("reason %q should reference the risk band", rec.Reason)
	}
}

// TestRecommend_CautionRatioForcesEasy verifies rule 4 caps intensity at
// easy even with high readiness.
func TestRecommend_CautionRatioForcesEasy(t *testing.T) {
	in := healthy()
	in.Readiness = 90
	in.Ratio = 1.4

	rec := Recommend(in)
	if rec.Type != WorkoutEasy {
		t.Fatalf("got %s, want easy", rec.TypeName)
	}
	if rec.Intensity > WorkoutEasy.IntensityLevel() {
		t.Errorf("intensity %d exceeds the easy cap", rec.Intensity)
	}
}

// TestRecommend_HardEasyAlternation verifies rule 5: a hard session today
// (zero days since) forces recovery tomorrow's recommendation.
func TestRecommend_HardEasyAlternation(t *testing.T) {
	in := healthy()
	in.Readiness = 85
	in.DaysSinceHard = 0

	rec := Recommend(in)
	if rec.Type != WorkoutRecovery {
		t.Fatalf("got %s, want recovery after a hard day", rec.TypeName)
	}
}

// TestRecommend_UndertrainedPush verifies rule 6: an undertrained ratio
// with high readiness is explicit permission to push.
func TestRecommend_UndertrainedPush(t *testing.T) {
	in := healthy()
	in.Readiness = 80
	in.Ratio = 0.7

	rec := Recommend(in)
	if rec.Type != WorkoutIntervals {
		t.Fatalf("got %s, want intervals", rec.TypeName)
	}
	if !strings.Contains(rec.Reason, "absorb more load") {
		t.Errorf("reason %q should explain the undertrained push", rec.Reason)
	}
}

// TestRecommend_QualitySession verifies rule 7: high readiness with an
// acceptable balance permits quality work.
func TestRecommend_QualitySession(t *testing.T) {
	in := healthy()
	in.Readiness = 80

	rec := Recommend(in)
	if rec.Type != WorkoutTempo {
		t.Fatalf("got %s, want tempo", rec.TypeName)
	}
}

// TestRecommend_LongRunDue verifies rule 8: a long gap since the last long
// session with decent readiness schedules one.
func TestRecommend_LongRunDue(t *testing.T) {
	in := healthy()
	in.Readiness = 65
	in.DaysSinceLong = 12

	rec := Recommend(in)
	if rec.Type != WorkoutLong {
		t.Fatalf("got %s, want long", rec.TypeName)
	}
}

// TestRecommend_Default verifies the fallback easy session when no rule
// fires.
func TestRecommend_Default(t *testing.T) {
	rec := Recommend(healthy())
	if rec.Type != WorkoutEasy {
		t.Fatalf("got %s, want easy default", rec.TypeName)
	}
	if rec.Reason == "" {
		t.Error("default recommendation should still carry a reason")
	}
}

// TestWorkoutType_IntensityOrdering pins the intensity ordinal for each
// workout type, which downstream gating assertions depend on.
func TestWorkoutType_IntensityOrdering(t *testing.T) {
	ordered := []WorkoutType{WorkoutRest, WorkoutRecovery, WorkoutEasy, WorkoutLong, WorkoutTempo, WorkoutIntervals}
	for i, w := range ordered {
		if w.IntensityLevel() != i {
			t.Errorf("%s intensity = %d, want %d", w, w.IntensityLevel(), i)
		}
	}
}
