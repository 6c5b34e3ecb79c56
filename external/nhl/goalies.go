package nhl

import (
	"context"
	"fmt"
	"sort"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/usecase"
)

type goalieSummaryEnvelope struct {
	Data []goalieSummaryRow `json:"data"`
}

type goalieSummaryRow struct {
	PlayerID            int64    `json:"playerId"`
	GoalieFullName      string   `json:"goalieFullName"`
	TeamAbbrevs         string   `json:"teamAbbrevs"`
	GamesPlayed         int      `json:"gamesPlayed"`
	Wins                int      `json:"wins"`
	Losses              int      `json:"losses"`
	OTLosses            int      `json:"otLosses"`
	Shutouts            int      `json:"shutouts"`
	GoalsAgainstAverage *float64 `json:"goalsAgainstAverage"`
	SavePct             *float64 `json:"savePct"`
}

type goalieAdvancedEnvelope struct {
	Data []goalieAdvancedRow `json:"data"`
}

type goalieAdvancedRow struct {
	PlayerID          int64    `json:"playerId"`
	HighDangerSavePct *float64 `json:"highDangerSavePct"`
}

// FetchGoalieStats merges the goalie summary table with the advanced table.
// An advanced row missing for a goalie leaves only the high-danger field nil.
func (c *Client) FetchGoalieStats(ctx context.Context, season string) ([]usecase.ExternalGoalieStat, error) {
	summaries, err := fetchStatsPages[goalieSummaryRow](ctx, c, "/goalie/summary", season, func(env *goalieSummaryEnvelope) []goalieSummaryRow {
		return env.Data
	})
	if err != nil {
		return nil, fmt.Errorf("fetch goalie summary season=%s: %w", season, err)
	}

	advanced, err := fetchStatsPages[goalieAdvancedRow](ctx, c, "/goalie/advanced", season, func(env *goalieAdvancedEnvelope) []goalieAdvancedRow {
		return env.Data
	})
	if err != nil {
		return nil, fmt.Errorf("fetch goalie advanced season=%s: %w", season, err)
	}

	advancedByID := make(map[int64]goalieAdvancedRow, len(advanced))
	for _, row := range advanced {
		advancedByID[row.PlayerID] = row
	}

	out := make([]usecase.ExternalGoalieStat, 0, len(summaries))
	for _, row := range summaries {
		if row.PlayerID <= 0 {
			continue
		}
		stat := usecase.ExternalGoalieStat{
			GoalieID:        row.PlayerID,
			Name:            row.GoalieFullName,
			Team:            currentTeamAbbrev(row.TeamAbbrevs),
			Season:          season,
			GamesPlayed:     row.GamesPlayed,
			Wins:            row.Wins,
			Losses:          row.Losses,
			OTLosses:        row.OTLosses,
			Shutouts:        row.Shutouts,
			GoalsAgainstAvg: roundPtr2(row.GoalsAgainstAverage),
			SavePct:         row.SavePct,
		}
		if adv, ok := advancedByID[row.PlayerID]; ok {
			stat.HighDangerSavePct = adv.HighDangerSavePct
		}
		out = append(out, stat)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].GoalieID < out[j].GoalieID })
	return out, nil
}

func roundPtr2(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round2(*v)
	return &r
}
