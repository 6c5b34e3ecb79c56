package usecase

import "testing"

func floatPtr(v float64) *float64 { return &v }

func TestPercentile_StrictlyBelowShare(t *testing.T) {
	t.Parallel()

	population := []float64{10, 20, 30, 40}

	got := Percentile(floatPtr(30), population)
	if got == nil || *got != 50 {
		t.Fatalf("expected 50, got=%v", got)
	}

	got = Percentile(floatPtr(45), population)
	if got == nil || *got != 100 {
		t.Fatalf("expected 100, got=%v", got)
	}

	got = Percentile(floatPtr(5), population)
	if got == nil || *got != 0 {
		t.Fatalf("expected 0, got=%v", got)
	}
}

func TestPercentile_TiesExcluded(t *testing.T) {
	t.Parallel()

	// All four entries equal: nothing is strictly below any of them.
	population := []float64{7, 7, 7, 7}
	got := Percentile(floatPtr(7), population)
	if got == nil || *got != 0 {
		t.Fatalf("expected tied values to rank 0, got=%v", got)
	}
}

func TestPercentile_MissingInputs(t *testing.T) {
	t.Parallel()

	if got := Percentile(nil, []float64{1, 2, 3}); got != nil {
		t.Fatalf("expected nil for missing value, got=%v", got)
	}
	if got := Percentile(floatPtr(1), nil); got != nil {
		t.Fatalf("expected nil for empty population, got=%v", got)
	}
}

func TestInvertedPercentile_LowerIsBetter(t *testing.T) {
	t.Parallel()

	population := []float64{2.0, 2.5, 3.0, 3.5}

	got := InvertedPercentile(floatPtr(2.0), population)
	if got == nil || *got != 100 {
		t.Fatalf("expected best GAA to rank 100, got=%v", got)
	}

	got = InvertedPercentile(floatPtr(4.0), population)
	if got == nil || *got != 0 {
		t.Fatalf("expected worst GAA to rank 0, got=%v", got)
	}

	if got := InvertedPercentile(nil, population); got != nil {
		t.Fatalf("expected nil for missing value, got=%v", got)
	}
}
