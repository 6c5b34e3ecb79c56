package teamstats

import "time"

// Aggregate is one team's tracking aggregate over its qualifying skaters.
// Averages are nil, not zero, when no skater on the roster qualified.
type Aggregate struct {
	Team            string
	Name            string
	Division        string
	Conference      string
	Season          string
	AvgSkatingSpeed *float64
	AvgShotSpeed    *float64
	BurstsPerGame   *float64
	TotalHits       *int
	TotalBlocks     *int
	SkaterCount     int

	// Standings and special-teams columns are best-effort enrichment and
	// stay nil when the league feeds were unavailable during the refresh.
	Wins           *int
	Losses         *int
	OTLosses       *int
	Points         *int
	GoalDiff       *int
	PowerPlayPct   *float64
	PenaltyKillPct *float64

	// Percentile rank within the league. Teams with an undefined metric
	// are excluded from that metric's population, not counted as zero.
	PointsPctl      *int
	GoalDiffPctl    *int
	PowerPlayPctl   *int
	PenaltyKillPctl *int
	SpeedPctl       *int
	ShotSpeedPctl   *int
	BurstsPctl      *int
	HitsPctl        *int
	BlocksPctl      *int

	UpdatedAt time.Time
}

type Filter struct {
	Division   string
	Conference string
}
