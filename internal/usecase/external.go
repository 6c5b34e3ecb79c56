package usecase

import "context"

// ExternalSkaterStat is one skater row after merging the upstream summary and
// realtime feeds. Rate fields stay nil when upstream omitted the denominators.
type ExternalSkaterStat struct {
	PlayerID      int64
	Name          string
	Team          string
	Position      string
	Season        string
	GamesPlayed   int
	Goals         int
	Assists       int
	Points        int
	PlusMinus     int
	AvgTOIMinutes float64
	FaceoffWinPct *float64
	ShotsPer60    *float64
	PointsPer60   *float64
	Hits          int
	BlockedShots  int
}

// ExternalGoalieStat is one goaltender row after merging the summary and
// advanced goalie feeds.
type ExternalGoalieStat struct {
	GoalieID          int64
	Name              string
	Team              string
	Season            string
	GamesPlayed       int
	Wins              int
	Losses            int
	OTLosses          int
	Shutouts          int
	GoalsAgainstAvg   *float64
	SavePct           *float64
	HighDangerSavePct *float64
}

// ExternalEdgeDetail is the tracking snapshot assembled from the primary edge
// detail call plus its optional speed-burst and zone-time sub-calls. Fields
// backed by an absent sub-call are nil; an absent primary call means no
// snapshot at all and the fetch fails instead.
type ExternalEdgeDetail struct {
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
}

// ExternalStanding is one team's league standings row.
type ExternalStanding struct {
	Team     string
	Wins     int
	Losses   int
	OTLosses int
	Points   int
	GoalDiff int
}

// ExternalTeamSpecialTeams carries per-team special-teams rates, expressed as
// percentages in the 0-100 range.
type ExternalTeamSpecialTeams struct {
	Team           string
	PowerPlayPct   *float64
	PenaltyKillPct *float64
}

// NHLProvider is the upstream surface the refresh pipeline consumes. The
// concrete client lives in external/nhl.
type NHLProvider interface {
	FetchSkaterStats(ctx context.Context, season string) ([]ExternalSkaterStat, error)
	FetchGoalieStats(ctx context.Context, season string) ([]ExternalGoalieStat, error)
	FetchEdgeDetail(ctx context.Context, playerID int64) (ExternalEdgeDetail, error)
	FetchTeamRoster(ctx context.Context, team, season string) (map[int64]int, error)
	FetchStandings(ctx context.Context) ([]ExternalStanding, error)
	FetchTeamSummary(ctx context.Context, season string) ([]ExternalTeamSpecialTeams, error)
}
