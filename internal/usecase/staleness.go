package usecase

import "time"

// DefaultFreshness is how long an edge snapshot stays fresh before the next
// refresh re-fetches it.
const DefaultFreshness = 6 * time.Hour

// PartitionByAge splits ids into fresh and stale groups against maxAge. Ids
// without a recorded timestamp are stale. Every input id lands in exactly one
// of the two groups, preserving input order.
func PartitionByAge(ids []int64, updatedAt map[int64]time.Time, maxAge time.Duration, now time.Time) (fresh, stale []int64) {
	fresh = make([]int64, 0, len(ids))
	stale = make([]int64, 0, len(ids))

	for _, id := range ids {
		at, ok := updatedAt[id]
		if !ok || now.Sub(at) >= maxAge {
			stale = append(stale, id)
			continue
		}
		fresh = append(fresh, id)
	}

	return fresh, stale
}
