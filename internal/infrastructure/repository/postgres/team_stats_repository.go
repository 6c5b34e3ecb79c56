package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/teamstats"
	qb "github.com/sean-m-sweeney/nhl-edge-report/internal/platform/querybuilder"
)

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

var teamStatsColumns = []string{
	"team",
	"name",
	"division",
	"conference",
	"season",
	"avg_skating_speed",
	"avg_shot_speed",
	"bursts_per_game",
	"total_hits",
	"total_blocks",
	"skater_count",
	"wins",
	"losses",
	"ot_losses",
	"points",
	"goal_diff",
	"power_play_pct",
	"penalty_kill_pct",
	"points_pctl",
	"goal_diff_pctl",
	"power_play_pctl",
	"penalty_kill_pctl",
	"speed_pctl",
	"shot_speed_pctl",
	"bursts_pctl",
	"hits_pctl",
	"blocks_pctl",
	"updated_at",
}

// ReplaceAll swaps the entire aggregates table for the new snapshot. A refresh
// recomputes every franchise row, so partial updates are never needed.
func (r *TeamStatsRepository) ReplaceAll(ctx context.Context, rows []teamstats.Aggregate) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace team stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("team_edge_stats").ToSQL()
	if err != nil {
		return fmt.Errorf("build clear team stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear team stats: %w", err)
	}

	for _, row := range rows {
		model := teamStatsInsertModel{
			Team:            row.Team,
			Name:            row.Name,
			Division:        row.Division,
			Conference:      row.Conference,
			Season:          row.Season,
			AvgSkatingSpeed: row.AvgSkatingSpeed,
			AvgShotSpeed:    row.AvgShotSpeed,
			BurstsPerGame:   row.BurstsPerGame,
			TotalHits:       row.TotalHits,
			TotalBlocks:     row.TotalBlocks,
			SkaterCount:     row.SkaterCount,
			Wins:            row.Wins,
			Losses:          row.Losses,
			OTLosses:        row.OTLosses,
			Points:          row.Points,
			GoalDiff:        row.GoalDiff,
			PowerPlayPct:    row.PowerPlayPct,
			PenaltyKillPct:  row.PenaltyKillPct,
			PointsPctl:      row.PointsPctl,
			GoalDiffPctl:    row.GoalDiffPctl,
			PowerPlayPctl:   row.PowerPlayPctl,
			PenaltyKillPctl: row.PenaltyKillPctl,
			SpeedPctl:       row.SpeedPctl,
			ShotSpeedPctl:   row.ShotSpeedPctl,
			BurstsPctl:      row.BurstsPctl,
			HitsPctl:        row.HitsPctl,
			BlocksPctl:      row.BlocksPctl,
			UpdatedAt:       row.UpdatedAt,
		}
		query, args, err := qb.InsertModel("team_edge_stats", model, "")
		if err != nil {
			return fmt.Errorf("build insert team stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert team stats team=%s: %w", row.Team, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace team stats tx: %w", err)
	}
	return nil
}

func (r *TeamStatsRepository) List(ctx context.Context, filter teamstats.Filter) ([]teamstats.Aggregate, error) {
	builder := qb.Select(teamStatsColumns...).From("team_edge_stats")
	conditions := make([]qb.Condition, 0, 1)
	if filter.Division != "" {
		conditions = append(conditions, qb.Eq("division", filter.Division))
	}
	if filter.Conference != "" {
		conditions = append(conditions, qb.Eq("conference", filter.Conference))
	}
	if len(conditions) > 0 {
		builder = builder.Where(conditions...)
	}
	query, args, err := builder.
		OrderBy("points DESC NULLS LAST", "team").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team stats query: %w", err)
	}

	var rows []teamStatsRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team stats: %w", err)
	}

	out := make([]teamstats.Aggregate, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamstats.Aggregate{
			Team:            row.Team,
			Name:            row.Name,
			Division:        row.Division,
			Conference:      row.Conference,
			Season:          row.Season,
			AvgSkatingSpeed: row.AvgSkatingSpeed,
			AvgShotSpeed:    row.AvgShotSpeed,
			BurstsPerGame:   row.BurstsPerGame,
			TotalHits:       row.TotalHits,
			TotalBlocks:     row.TotalBlocks,
			SkaterCount:     row.SkaterCount,
			Wins:            row.Wins,
			Losses:          row.Losses,
			OTLosses:        row.OTLosses,
			Points:          row.Points,
			GoalDiff:        row.GoalDiff,
			PowerPlayPct:    row.PowerPlayPct,
			PenaltyKillPct:  row.PenaltyKillPct,
			PointsPctl:      row.PointsPctl,
			GoalDiffPctl:    row.GoalDiffPctl,
			PowerPlayPctl:   row.PowerPlayPctl,
			PenaltyKillPctl: row.PenaltyKillPctl,
			SpeedPctl:       row.SpeedPctl,
			ShotSpeedPctl:   row.ShotSpeedPctl,
			BurstsPctl:      row.BurstsPctl,
			HitsPctl:        row.HitsPctl,
			BlocksPctl:      row.BlocksPctl,
			UpdatedAt:       row.UpdatedAt,
		})
	}
	return out, nil
}

func (r *TeamStatsRepository) Clear(ctx context.Context) error {
	query, args, err := qb.DeleteFrom("team_edge_stats").ToSQL()
	if err != nil {
		return fmt.Errorf("build clear team stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear team stats: %w", err)
	}
	return nil
}

type teamStatsInsertModel struct {
	Team            string    `db:"team"`
	Name            string    `db:"name"`
	Division        string    `db:"division"`
	Conference      string    `db:"conference"`
	Season          string    `db:"season"`
	AvgSkatingSpeed *float64  `db:"avg_skating_speed"`
	AvgShotSpeed    *float64  `db:"avg_shot_speed"`
	BurstsPerGame   *float64  `db:"bursts_per_game"`
	TotalHits       *int      `db:"total_hits"`
	TotalBlocks     *int      `db:"total_blocks"`
	SkaterCount     int       `db:"skater_count"`
	Wins            *int      `db:"wins"`
	Losses          *int      `db:"losses"`
	OTLosses        *int      `db:"ot_losses"`
	Points          *int      `db:"points"`
	GoalDiff        *int      `db:"goal_diff"`
	PowerPlayPct    *float64  `db:"power_play_pct"`
	PenaltyKillPct  *float64  `db:"penalty_kill_pct"`
	PointsPctl      *int      `db:"points_pctl"`
	GoalDiffPctl    *int      `db:"goal_diff_pctl"`
	PowerPlayPctl   *int      `db:"power_play_pctl"`
	PenaltyKillPctl *int      `db:"penalty_kill_pctl"`
	SpeedPctl       *int      `db:"speed_pctl"`
	ShotSpeedPctl   *int      `db:"shot_speed_pctl"`
	BurstsPctl      *int      `db:"bursts_pctl"`
	HitsPctl        *int      `db:"hits_pctl"`
	BlocksPctl      *int      `db:"blocks_pctl"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type teamStatsRow struct {
	Team            string    `db:"team"`
	Name            string    `db:"name"`
	Division        string    `db:"division"`
	Conference      string    `db:"conference"`
	Season          string    `db:"season"`
	AvgSkatingSpeed *float64  `db:"avg_skating_speed"`
	AvgShotSpeed    *float64  `db:"avg_shot_speed"`
	BurstsPerGame   *float64  `db:"bursts_per_game"`
	TotalHits       *int      `db:"total_hits"`
	TotalBlocks     *int      `db:"total_blocks"`
	SkaterCount     int       `db:"skater_count"`
	Wins            *int      `db:"wins"`
	Losses          *int      `db:"losses"`
	OTLosses        *int      `db:"ot_losses"`
	Points          *int      `db:"points"`
	GoalDiff        *int      `db:"goal_diff"`
	PowerPlayPct    *float64  `db:"power_play_pct"`
	PenaltyKillPct  *float64  `db:"penalty_kill_pct"`
	PointsPctl      *int      `db:"points_pctl"`
	GoalDiffPctl    *int      `db:"goal_diff_pctl"`
	PowerPlayPctl   *int      `db:"power_play_pctl"`
	PenaltyKillPctl *int      `db:"penalty_kill_pctl"`
	SpeedPctl       *int      `db:"speed_pctl"`
	ShotSpeedPctl   *int      `db:"shot_speed_pctl"`
	BurstsPctl      *int      `db:"bursts_pctl"`
	HitsPctl        *int      `db:"hits_pctl"`
	BlocksPctl      *int      `db:"blocks_pctl"`
	UpdatedAt       time.Time `db:"updated_at"`
}
