package postgres

import (
	"time"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/player"
)

type playerInsertModel struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Team         string `db:"team"`
	Position     string `db:"position"`
	JerseyNumber *int   `db:"jersey_number"`
}

type playerStatsInsertModel struct {
	PlayerID       int64     `db:"player_id"`
	Season         string    `db:"season"`
	GamesPlayed    int       `db:"games_played"`
	Goals          int       `db:"goals"`
	Assists        int       `db:"assists"`
	Points         int       `db:"points"`
	PlusMinus      int       `db:"plus_minus"`
	AvgTOIMinutes  float64   `db:"avg_toi_minutes"`
	FaceoffWinPct  *float64  `db:"faceoff_win_pct"`
	ShotsPer60     *float64  `db:"shots_per_60"`
	PointsPer60    *float64  `db:"points_per_60"`
	Hits           int       `db:"hits"`
	BlockedShots   int       `db:"blocked_shots"`
	HitsPctl       *int      `db:"hits_pctl"`
	BlocksPctl     *int      `db:"blocks_pctl"`
	PointsPctl     *int      `db:"points_pctl"`
	TOIPctl        *int      `db:"toi_pctl"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type playerEdgeInsertModel struct {
	PlayerID          int64     `db:"player_id"`
	Season            string    `db:"season"`
	MaxSkatingSpeed   *float64  `db:"max_skating_speed"`
	AvgSkatingSpeed   *float64  `db:"avg_skating_speed"`
	SpeedBursts20Plus *int      `db:"speed_bursts_20_plus"`
	SpeedBursts22Plus *int      `db:"speed_bursts_22_plus"`
	MaxSpeedPctl      *int      `db:"max_speed_pctl"`
	BurstsPctl        *int      `db:"bursts_pctl"`
	Bursts22Pctl      *int      `db:"bursts_22_pctl"`
	MaxShotSpeed      *float64  `db:"max_shot_speed"`
	AvgShotSpeed      *float64  `db:"avg_shot_speed"`
	MaxShotSpeedPctl  *int      `db:"max_shot_speed_pctl"`
	OffZonePct        *float64  `db:"off_zone_pct"`
	DefZonePct        *float64  `db:"def_zone_pct"`
	NeuZonePct        *float64  `db:"neu_zone_pct"`
	ZoneStartsOffPct  *float64  `db:"zone_starts_off_pct"`
	ZoneStartsPctl    *int      `db:"zone_starts_pctl"`
	MilesPerGame      *float64  `db:"miles_per_game"`
	DistancePctl      *int      `db:"distance_pctl"`
	ShotsPer60Pctl    *int      `db:"shots_per_60_pctl"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// playerProfileRow is the flattened LEFT JOIN of players with the season and
// edge tables. Joined columns are pointers so a missing side scans cleanly.
type playerProfileRow struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Team         string `db:"team"`
	Position     string `db:"position"`
	JerseyNumber *int   `db:"jersey_number"`

	StatsPlayerID  *int64     `db:"stats_player_id"`
	StatsSeason    *string    `db:"stats_season"`
	GamesPlayed    *int       `db:"games_played"`
	Goals          *int       `db:"goals"`
	Assists        *int       `db:"assists"`
	Points         *int       `db:"points"`
	PlusMinus      *int       `db:"plus_minus"`
	AvgTOIMinutes  *float64   `db:"avg_toi_minutes"`
	FaceoffWinPct  *float64   `db:"faceoff_win_pct"`
	ShotsPer60     *float64   `db:"shots_per_60"`
	PointsPer60    *float64   `db:"points_per_60"`
	Hits           *int       `db:"hits"`
	BlockedShots   *int       `db:"blocked_shots"`
	HitsPctl       *int       `db:"hits_pctl"`
	BlocksPctl     *int       `db:"blocks_pctl"`
	PointsPctl     *int       `db:"points_pctl"`
	TOIPctl        *int       `db:"toi_pctl"`
	StatsUpdatedAt *time.Time `db:"stats_updated_at"`

	EdgePlayerID      *int64     `db:"edge_player_id"`
	EdgeSeason        *string    `db:"edge_season"`
	MaxSkatingSpeed   *float64   `db:"max_skating_speed"`
	AvgSkatingSpeed   *float64   `db:"avg_skating_speed"`
	SpeedBursts20Plus *int       `db:"speed_bursts_20_plus"`
	SpeedBursts22Plus *int       `db:"speed_bursts_22_plus"`
	MaxSpeedPctl      *int       `db:"max_speed_pctl"`
	BurstsPctl        *int       `db:"bursts_pctl"`
	Bursts22Pctl      *int       `db:"bursts_22_pctl"`
	MaxShotSpeed      *float64   `db:"max_shot_speed"`
	AvgShotSpeed      *float64   `db:"avg_shot_speed"`
	MaxShotSpeedPctl  *int       `db:"max_shot_speed_pctl"`
	OffZonePct        *float64   `db:"off_zone_pct"`
	DefZonePct        *float64   `db:"def_zone_pct"`
	NeuZonePct        *float64   `db:"neu_zone_pct"`
	ZoneStartsOffPct  *float64   `db:"zone_starts_off_pct"`
	ZoneStartsPctl    *int       `db:"zone_starts_pctl"`
	MilesPerGame      *float64   `db:"miles_per_game"`
	DistancePctl      *int       `db:"distance_pctl"`
	ShotsPer60Pctl    *int       `db:"shots_per_60_pctl"`
	EdgeUpdatedAt     *time.Time `db:"edge_updated_at"`
}

func (row playerProfileRow) toProfile() player.Profile {
	profile := player.Profile{
		Player: player.Player{
			ID:           row.ID,
			Name:         row.Name,
			Team:         row.Team,
			Position:     row.Position,
			JerseyNumber: row.JerseyNumber,
		},
	}

	if row.StatsPlayerID != nil {
		profile.Stats = &player.SeasonStats{
			PlayerID:       *row.StatsPlayerID,
			Season:         derefString(row.StatsSeason),
			GamesPlayed:    derefInt(row.GamesPlayed),
			Goals:          derefInt(row.Goals),
			Assists:        derefInt(row.Assists),
			Points:         derefInt(row.Points),
			PlusMinus:      derefInt(row.PlusMinus),
			AvgTOIMinutes:  derefFloat(row.AvgTOIMinutes),
			FaceoffWinPct:  row.FaceoffWinPct,
			ShotsPer60:     row.ShotsPer60,
			PointsPer60:    row.PointsPer60,
			Hits:           derefInt(row.Hits),
			BlockedShots:   derefInt(row.BlockedShots),
			HitsPctl:       row.HitsPctl,
			BlocksPctl:     row.BlocksPctl,
			PointsPctl:     row.PointsPctl,
			TOIPctl:        row.TOIPctl,
			UpdatedAt:      derefTime(row.StatsUpdatedAt),
		}
	}

	if row.EdgePlayerID != nil {
		profile.Edge = &player.EdgeStats{
			PlayerID:          *row.EdgePlayerID,
			Season:            derefString(row.EdgeSeason),
			MaxSkatingSpeed:   row.MaxSkatingSpeed,
			AvgSkatingSpeed:   row.AvgSkatingSpeed,
			SpeedBursts20Plus: row.SpeedBursts20Plus,
			SpeedBursts22Plus: row.SpeedBursts22Plus,
			MaxSpeedPctl:      row.MaxSpeedPctl,
			BurstsPctl:        row.BurstsPctl,
			Bursts22Pctl:      row.Bursts22Pctl,
			MaxShotSpeed:      row.MaxShotSpeed,
			AvgShotSpeed:      row.AvgShotSpeed,
			MaxShotSpeedPctl:  row.MaxShotSpeedPctl,
			OffZonePct:        row.OffZonePct,
			DefZonePct:        row.DefZonePct,
			NeuZonePct:        row.NeuZonePct,
			ZoneStartsOffPct:  row.ZoneStartsOffPct,
			ZoneStartsPctl:    row.ZoneStartsPctl,
			MilesPerGame:      row.MilesPerGame,
			DistancePctl:      row.DistancePctl,
			ShotsPer60Pctl:    row.ShotsPer60Pctl,
			UpdatedAt:         derefTime(row.EdgeUpdatedAt),
		}
	}

	return profile
}
