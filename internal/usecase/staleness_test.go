package usecase

import (
	"testing"
	"time"
)

func TestPartitionByAge_ExhaustiveAndDisjoint(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := map[int64]time.Time{
		1: now.Add(-1 * time.Hour),  // fresh
		2: now.Add(-7 * time.Hour),  // stale
		3: now.Add(-6 * time.Hour),  // exactly at the boundary: stale
		5: now.Add(-59 * time.Minute),
	}
	ids := []int64{1, 2, 3, 4, 5} // 4 has no timestamp

	fresh, stale := PartitionByAge(ids, updatedAt, 6*time.Hour, now)

	if len(fresh)+len(stale) != len(ids) {
		t.Fatalf("partition not exhaustive: fresh=%v stale=%v", fresh, stale)
	}

	wantFresh := []int64{1, 5}
	wantStale := []int64{2, 3, 4}
	if len(fresh) != len(wantFresh) {
		t.Fatalf("expected fresh=%v, got=%v", wantFresh, fresh)
	}
	for i, id := range wantFresh {
		if fresh[i] != id {
			t.Fatalf("expected fresh=%v, got=%v", wantFresh, fresh)
		}
	}
	if len(stale) != len(wantStale) {
		t.Fatalf("expected stale=%v, got=%v", wantStale, stale)
	}
	for i, id := range wantStale {
		if stale[i] != id {
			t.Fatalf("expected stale=%v, got=%v", wantStale, stale)
		}
	}
}

func TestPartitionByAge_EmptyInput(t *testing.T) {
	t.Parallel()

	fresh, stale := PartitionByAge(nil, nil, 6*time.Hour, time.Now())
	if len(fresh) != 0 || len(stale) != 0 {
		t.Fatalf("expected empty partitions, got fresh=%v stale=%v", fresh, stale)
	}
}
