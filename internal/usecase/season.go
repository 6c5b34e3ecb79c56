package usecase

import (
	"fmt"
	"time"
)

// DefaultSeasonStartMonth is when the league rolls over to a new season id.
const DefaultSeasonStartMonth = time.October

// SeasonID derives the eight-digit season identifier ("20252026") from a
// point in time. From startMonth onward the season starts in the current
// calendar year; before it the season started the year prior.
func SeasonID(now time.Time, startMonth time.Month) string {
	if startMonth < time.January || startMonth > time.December {
		startMonth = DefaultSeasonStartMonth
	}

	year := now.Year()
	if now.Month() >= startMonth {
		return fmt.Sprintf("%d%d", year, year+1)
	}
	return fmt.Sprintf("%d%d", year-1, year)
}
