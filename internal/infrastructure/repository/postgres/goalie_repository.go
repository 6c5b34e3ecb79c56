package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/goalie"
	qb "github.com/sean-m-sweeney/nhl-edge-report/internal/platform/querybuilder"
)

type GoalieRepository struct {
	db *sqlx.DB
}

func NewGoalieRepository(db *sqlx.DB) *GoalieRepository {
	return &GoalieRepository{db: db}
}

var goalieProfileColumns = []string{
	"g.id",
	"g.name",
	"g.team",
	"g.jersey_number",
	"s.goalie_id AS stats_goalie_id",
	"s.season AS stats_season",
	"s.games_played",
	"s.wins",
	"s.losses",
	"s.ot_losses",
	"s.shutouts",
	"s.goals_against_avg",
	"s.save_pct",
	"s.high_danger_save_pct",
	"s.gaa_pctl",
	"s.save_pct_pctl",
	"s.high_danger_pctl",
	"s.updated_at AS stats_updated_at",
}

const goalieProfileFrom = "goalies g LEFT JOIN goalie_stats s ON s.goalie_id = g.id"

func (r *GoalieRepository) UpsertGoalies(ctx context.Context, goalies []goalie.Goalie) error {
	if len(goalies) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert goalies: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, g := range goalies {
		model := goalieInsertModel{
			ID:           g.ID,
			Name:         g.Name,
			Team:         g.Team,
			JerseyNumber: g.JerseyNumber,
		}
		query, args, err := qb.InsertModel("goalies", model, `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    team = EXCLUDED.team,
    jersey_number = EXCLUDED.jersey_number,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert goalie query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert goalie id=%d: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert goalies tx: %w", err)
	}
	return nil
}

func (r *GoalieRepository) ReplaceSeasonStats(ctx context.Context, stats []goalie.SeasonStats) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace goalie stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("goalie_stats").ToSQL()
	if err != nil {
		return fmt.Errorf("build clear goalie stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear goalie stats: %w", err)
	}

	for _, row := range stats {
		model := goalieStatsInsertModel{
			GoalieID:          row.GoalieID,
			Season:            row.Season,
			GamesPlayed:       row.GamesPlayed,
			Wins:              row.Wins,
			Losses:            row.Losses,
			OTLosses:          row.OTLosses,
			Shutouts:          row.Shutouts,
			GoalsAgainstAvg:   row.GoalsAgainstAvg,
			SavePct:           row.SavePct,
			HighDangerSavePct: row.HighDangerSavePct,
			GAAPctl:           row.GAAPctl,
			SavePctPctl:       row.SavePctPctl,
			HighDangerPctl:    row.HighDangerPctl,
			UpdatedAt:         row.UpdatedAt,
		}
		query, args, err := qb.InsertModel("goalie_stats", model, "")
		if err != nil {
			return fmt.Errorf("build insert goalie stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert goalie stats goalie_id=%d: %w", row.GoalieID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace goalie stats tx: %w", err)
	}
	return nil
}

func (r *GoalieRepository) ListProfiles(ctx context.Context, filter goalie.Filter) ([]goalie.Profile, error) {
	builder := qb.Select(goalieProfileColumns...).From(goalieProfileFrom)
	if len(filter.Teams) > 0 {
		builder = builder.Where(qb.In("g.team", stringSliceToAny(filter.Teams)))
	}
	query, args, err := builder.
		OrderBy("s.wins DESC NULLS LAST", "g.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list goalie profiles query: %w", err)
	}

	var rows []goalieProfileRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list goalie profiles: %w", err)
	}

	out := make([]goalie.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toProfile())
	}
	return out, nil
}

func (r *GoalieRepository) GetProfile(ctx context.Context, goalieID int64) (goalie.Profile, bool, error) {
	query, args, err := qb.Select(goalieProfileColumns...).From(goalieProfileFrom).
		Where(qb.Eq("g.id", goalieID)).
		ToSQL()
	if err != nil {
		return goalie.Profile{}, false, fmt.Errorf("build get goalie profile query: %w", err)
	}

	var row goalieProfileRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return goalie.Profile{}, false, nil
		}
		return goalie.Profile{}, false, fmt.Errorf("get goalie profile id=%d: %w", goalieID, err)
	}
	return row.toProfile(), true, nil
}

func (r *GoalieRepository) Clear(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx clear goalies: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"goalie_stats", "goalies"} {
		query, args, err := qb.DeleteFrom(table).ToSQL()
		if err != nil {
			return fmt.Errorf("build clear %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear goalies tx: %w", err)
	}
	return nil
}

type goalieInsertModel struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Team         string `db:"team"`
	JerseyNumber *int   `db:"jersey_number"`
}

type goalieStatsInsertModel struct {
	GoalieID          int64     `db:"goalie_id"`
	Season            string    `db:"season"`
	GamesPlayed       int       `db:"games_played"`
	Wins              int       `db:"wins"`
	Losses            int       `db:"losses"`
	OTLosses          int       `db:"ot_losses"`
	Shutouts          int       `db:"shutouts"`
	GoalsAgainstAvg   *float64  `db:"goals_against_avg"`
	SavePct           *float64  `db:"save_pct"`
	HighDangerSavePct *float64  `db:"high_danger_save_pct"`
	GAAPctl           *int      `db:"gaa_pctl"`
	SavePctPctl       *int      `db:"save_pct_pctl"`
	HighDangerPctl    *int      `db:"high_danger_pctl"`
	UpdatedAt         time.Time `db:"updated_at"`
}

type goalieProfileRow struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Team         string `db:"team"`
	JerseyNumber *int   `db:"jersey_number"`

	StatsGoalieID     *int64     `db:"stats_goalie_id"`
	StatsSeason       *string    `db:"stats_season"`
	GamesPlayed       *int       `db:"games_played"`
	Wins              *int       `db:"wins"`
	Losses            *int       `db:"losses"`
	OTLosses          *int       `db:"ot_losses"`
	Shutouts          *int       `db:"shutouts"`
	GoalsAgainstAvg   *float64   `db:"goals_against_avg"`
	SavePct           *float64   `db:"save_pct"`
	HighDangerSavePct *float64   `db:"high_danger_save_pct"`
	GAAPctl           *int       `db:"gaa_pctl"`
	SavePctPctl       *int       `db:"save_pct_pctl"`
	HighDangerPctl    *int       `db:"high_danger_pctl"`
	StatsUpdatedAt    *time.Time `db:"stats_updated_at"`
}

func (row goalieProfileRow) toProfile() goalie.Profile {
	profile := goalie.Profile{
		Goalie: goalie.Goalie{
			ID:           row.ID,
			Name:         row.Name,
			Team:         row.Team,
			JerseyNumber: row.JerseyNumber,
		},
	}

	if row.StatsGoalieID != nil {
		profile.Stats = &goalie.SeasonStats{
			GoalieID:          *row.StatsGoalieID,
			Season:            derefString(row.StatsSeason),
			GamesPlayed:       derefInt(row.GamesPlayed),
			Wins:              derefInt(row.Wins),
			Losses:            derefInt(row.Losses),
			OTLosses:          derefInt(row.OTLosses),
			Shutouts:          derefInt(row.Shutouts),
			GoalsAgainstAvg:   row.GoalsAgainstAvg,
			SavePct:           row.SavePct,
			HighDangerSavePct: row.HighDangerSavePct,
			GAAPctl:           row.GAAPctl,
			SavePctPctl:       row.SavePctPctl,
			HighDangerPctl:    row.HighDangerPctl,
			UpdatedAt:         derefTime(row.StatsUpdatedAt),
		}
	}

	return profile
}
