package goalie

import (
	"fmt"
	"time"
)

// Goalie is a goaltender identity row keyed by the upstream league player id.
type Goalie struct {
	ID           int64
	Name         string
	Team         string
	JerseyNumber *int
}

func (g Goalie) Validate() error {
	if g.ID <= 0 {
		return fmt.Errorf("goalie id must be greater than zero")
	}
	if g.Name == "" {
		return fmt.Errorf("goalie name is required")
	}
	if g.Team == "" {
		return fmt.Errorf("goalie team is required")
	}
	return nil
}

// SeasonStats merges the summary and advanced goalie feeds into one snapshot.
// GAAPctl is stored already inverted so that lower goals-against ranks higher.
type SeasonStats struct {
	GoalieID          int64
	Season            string
	GamesPlayed       int
	Wins              int
	Losses            int
	OTLosses          int
	Shutouts          int
	GoalsAgainstAvg   *float64
	SavePct           *float64
	HighDangerSavePct *float64
	GAAPctl           *int
	SavePctPctl       *int
	HighDangerPctl    *int
	UpdatedAt         time.Time
}

// Profile joins the identity row with its stats snapshot when one exists.
type Profile struct {
	Goalie
	Stats *SeasonStats
}

// Filter narrows listing queries. An empty team list matches everything.
type Filter struct {
	Teams []string
}
