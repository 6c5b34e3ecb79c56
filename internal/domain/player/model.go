package player

import (
	"fmt"
	"time"
)

// Player is a skater identity row keyed by the upstream league player id.
type Player struct {
	ID           int64
	Name         string
	Team         string
	Position     string
	JerseyNumber *int
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Team == "" {
		return fmt.Errorf("player team is required")
	}
	return nil
}

// SeasonStats is the traditional box-score snapshot for one skater season.
// Rate fields derived from TOI are nil when the denominator is zero upstream.
type SeasonStats struct {
	PlayerID       int64
	Season         string
	GamesPlayed    int
	Goals          int
	Assists        int
	Points         int
	PlusMinus      int
	AvgTOIMinutes  float64
	FaceoffWinPct  *float64
	ShotsPer60     *float64
	PointsPer60    *float64
	Hits           int
	BlockedShots   int
	HitsPctl       *int
	BlocksPctl     *int
	PointsPctl     *int
	// TOIPctl is ranked within the skater's role group (forwards and
	// defensemen separately) because raw ice time means different things
	// for the two roles.
	TOIPctl   *int
	UpdatedAt time.Time
}

// EdgeStats is the tracking-derived snapshot for one skater. Secondary
// sub-feeds can be absent upstream, so dependent fields stay nil.
type EdgeStats struct {
	PlayerID          int64
	Season            string
	MaxSkatingSpeed   *float64
	AvgSkatingSpeed   *float64
	SpeedBursts20Plus *int
	SpeedBursts22Plus *int
	MaxSpeedPctl      *int
	BurstsPctl        *int
	Bursts22Pctl      *int
	MaxShotSpeed      *float64
	AvgShotSpeed      *float64
	MaxShotSpeedPctl  *int
	OffZonePct        *float64
	DefZonePct        *float64
	NeuZonePct        *float64
	ZoneStartsOffPct  *float64
	ZoneStartsPctl    *int
	MilesPerGame      *float64
	DistancePctl      *int
	ShotsPer60Pctl    *int
	UpdatedAt         time.Time
}

// Profile joins the identity row with whichever snapshots exist for it.
type Profile struct {
	Player
	Stats *SeasonStats
	Edge  *EdgeStats
}

// Filter narrows listing queries. An empty team list matches everything.
type Filter struct {
	Teams []string
}
