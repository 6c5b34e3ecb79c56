package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/player"
	qb "github.com/sean-m-sweeney/nhl-edge-report/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

var playerProfileColumns = []string{
	"p.id",
	"p.name",
	"p.team",
	"p.position",
	"p.jersey_number",
	"s.player_id AS stats_player_id",
	"s.season AS stats_season",
	"s.games_played",
	"s.goals",
	"s.assists",
	"s.points",
	"s.plus_minus",
	"s.avg_toi_minutes",
	"s.faceoff_win_pct",
	"s.shots_per_60",
	"s.points_per_60",
	"s.hits",
	"s.blocked_shots",
	"s.hits_pctl",
	"s.blocks_pctl",
	"s.points_pctl",
	"s.toi_pctl",
	"s.updated_at AS stats_updated_at",
	"e.player_id AS edge_player_id",
	"e.season AS edge_season",
	"e.max_skating_speed",
	"e.avg_skating_speed",
	"e.speed_bursts_20_plus",
	"e.speed_bursts_22_plus",
	"e.max_speed_pctl",
	"e.bursts_pctl",
	"e.bursts_22_pctl",
	"e.max_shot_speed",
	"e.avg_shot_speed",
	"e.max_shot_speed_pctl",
	"e.off_zone_pct",
	"e.def_zone_pct",
	"e.neu_zone_pct",
	"e.zone_starts_off_pct",
	"e.zone_starts_pctl",
	"e.miles_per_game",
	"e.distance_pctl",
	"e.shots_per_60_pctl",
	"e.updated_at AS edge_updated_at",
}

const playerProfileFrom = "players p" +
	" LEFT JOIN player_stats s ON s.player_id = p.id" +
	" LEFT JOIN player_edge_stats e ON e.player_id = p.id"

func (r *PlayerRepository) UpsertPlayers(ctx context.Context, players []player.Player) error {
	if len(players) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert players: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range players {
		model := playerInsertModel{
			ID:           p.ID,
			Name:         p.Name,
			Team:         p.Team,
			Position:     p.Position,
			JerseyNumber: p.JerseyNumber,
		}
		query, args, err := qb.InsertModel("players", model, `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    team = EXCLUDED.team,
    position = EXCLUDED.position,
    jersey_number = EXCLUDED.jersey_number,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert player query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert player id=%d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert players tx: %w", err)
	}
	return nil
}

// ReplaceSeasonStats swaps the whole skater stats table for the new snapshot.
// Every refresh re-fetches all qualified skaters, so only the latest rows are
// worth keeping.
func (r *PlayerRepository) ReplaceSeasonStats(ctx context.Context, stats []player.SeasonStats) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace player stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("player_stats").ToSQL()
	if err != nil {
		return fmt.Errorf("build clear player stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear player stats: %w", err)
	}

	for _, row := range stats {
		model := playerStatsInsertModel{
			PlayerID:       row.PlayerID,
			Season:         row.Season,
			GamesPlayed:    row.GamesPlayed,
			Goals:          row.Goals,
			Assists:        row.Assists,
			Points:         row.Points,
			PlusMinus:      row.PlusMinus,
			AvgTOIMinutes:  row.AvgTOIMinutes,
			FaceoffWinPct:  row.FaceoffWinPct,
			ShotsPer60:     row.ShotsPer60,
			PointsPer60:    row.PointsPer60,
			Hits:           row.Hits,
			BlockedShots:   row.BlockedShots,
			HitsPctl:       row.HitsPctl,
			BlocksPctl:     row.BlocksPctl,
			PointsPctl:     row.PointsPctl,
			TOIPctl:        row.TOIPctl,
			UpdatedAt:      row.UpdatedAt,
		}
		query, args, err := qb.InsertModel("player_stats", model, "")
		if err != nil {
			return fmt.Errorf("build insert player stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert player stats player_id=%d: %w", row.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace player stats tx: %w", err)
	}
	return nil
}

// ReplaceEdgeStats replaces rows only for the players in the batch. Players
// whose snapshots were still fresh keep their existing rows.
func (r *PlayerRepository) ReplaceEdgeStats(ctx context.Context, stats []player.EdgeStats) error {
	if len(stats) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace edge stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	ids := make([]any, 0, len(stats))
	for _, row := range stats {
		ids = append(ids, row.PlayerID)
	}
	clearQuery, clearArgs, err := qb.DeleteFrom("player_edge_stats").
		Where(qb.In("player_id", ids)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear edge stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear edge stats: %w", err)
	}

	for _, row := range stats {
		model := playerEdgeInsertModel{
			PlayerID:          row.PlayerID,
			Season:            row.Season,
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
			UpdatedAt:         row.UpdatedAt,
		}
		query, args, err := qb.InsertModel("player_edge_stats", model, "")
		if err != nil {
			return fmt.Errorf("build insert edge stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert edge stats player_id=%d: %w", row.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace edge stats tx: %w", err)
	}
	return nil
}

func (r *PlayerRepository) ListProfiles(ctx context.Context, filter player.Filter) ([]player.Profile, error) {
	builder := qb.Select(playerProfileColumns...).From(playerProfileFrom)
	if len(filter.Teams) > 0 {
		builder = builder.Where(qb.In("p.team", stringSliceToAny(filter.Teams)))
	}
	query, args, err := builder.
		OrderBy("s.points DESC NULLS LAST", "p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player profiles query: %w", err)
	}

	var rows []playerProfileRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player profiles: %w", err)
	}

	out := make([]player.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toProfile())
	}
	return out, nil
}

func (r *PlayerRepository) GetProfile(ctx context.Context, playerID int64) (player.Profile, bool, error) {
	query, args, err := qb.Select(playerProfileColumns...).From(playerProfileFrom).
		Where(qb.Eq("p.id", playerID)).
		ToSQL()
	if err != nil {
		return player.Profile{}, false, fmt.Errorf("build get player profile query: %w", err)
	}

	var row playerProfileRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Profile{}, false, nil
		}
		return player.Profile{}, false, fmt.Errorf("get player profile id=%d: %w", playerID, err)
	}
	return row.toProfile(), true, nil
}

func (r *PlayerRepository) EdgeUpdatedAt(ctx context.Context) (map[int64]time.Time, error) {
	query, args, err := qb.Select("player_id", "updated_at").From("player_edge_stats").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build edge timestamps query: %w", err)
	}

	var rows []struct {
		PlayerID  int64     `db:"player_id"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select edge timestamps: %w", err)
	}

	out := make(map[int64]time.Time, len(rows))
	for _, row := range rows {
		out[row.PlayerID] = row.UpdatedAt
	}
	return out, nil
}

func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(1) AS total").From("players").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count players query: %w", err)
	}

	var row struct {
		Total int `db:"total"`
	}
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return row.Total, nil
}

func (r *PlayerRepository) Clear(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx clear players: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"player_edge_stats", "player_stats", "players"} {
		query, args, err := qb.DeleteFrom(table).ToSQL()
		if err != nil {
			return fmt.Errorf("build clear %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear players tx: %w", err)
	}
	return nil
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
