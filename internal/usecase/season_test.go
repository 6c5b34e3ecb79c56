package usecase

import (
	"testing"
	"time"
)

func TestSeasonID_RolloverAtStartMonth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"october starts new season", time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), "20252026"},
		{"december still new season", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "20252026"},
		{"january belongs to prior season", time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), "20252026"},
		{"september belongs to prior season", time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC), "20252026"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := SeasonID(tc.now, time.October); got != tc.want {
				t.Fatalf("SeasonID(%s)=%s, want=%s", tc.now, got, tc.want)
			}
		})
	}
}

func TestSeasonID_ConfigurableStartMonth(t *testing.T) {
	t.Parallel()

	september := time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC)
	if got := SeasonID(september, time.September); got != "20252026" {
		t.Fatalf("expected September rollover with custom start month, got=%s", got)
	}

	// Out-of-range start month falls back to the default October rollover.
	if got := SeasonID(september, time.Month(0)); got != "20242025" {
		t.Fatalf("expected default rollover for invalid start month, got=%s", got)
	}
}
