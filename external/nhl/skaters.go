package nhl

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/usecase"
)

type skaterSummaryEnvelope struct {
	Data []skaterSummaryRow `json:"data"`
}

type skaterSummaryRow struct {
	PlayerID         int64    `json:"playerId"`
	SkaterFullName   string   `json:"skaterFullName"`
	TeamAbbrevs      string   `json:"teamAbbrevs"`
	PositionCode     string   `json:"positionCode"`
	GamesPlayed      int      `json:"gamesPlayed"`
	Goals            int      `json:"goals"`
	Assists          int      `json:"assists"`
	Points           int      `json:"points"`
	PlusMinus        int      `json:"plusMinus"`
	TimeOnIcePerGame float64  `json:"timeOnIcePerGame"`
	FaceoffWinPct    *float64 `json:"faceoffWinPct"`
	Shots            int      `json:"shots"`
}

type skaterRealtimeEnvelope struct {
	Data []skaterRealtimeRow `json:"data"`
}

type skaterRealtimeRow struct {
	PlayerID     int64 `json:"playerId"`
	Hits         int   `json:"hits"`
	BlockedShots int   `json:"blockedShots"`
}

// FetchSkaterStats pulls the season summary and realtime tables and merges
// them by player id. Players with a traded-team list keep only the most
// recent team abbreviation.
func (c *Client) FetchSkaterStats(ctx context.Context, season string) ([]usecase.ExternalSkaterStat, error) {
	summaries, err := fetchStatsPages[skaterSummaryRow](ctx, c, "/skater/summary", season, func(env *skaterSummaryEnvelope) []skaterSummaryRow {
		return env.Data
	})
	if err != nil {
		return nil, fmt.Errorf("fetch skater summary season=%s: %w", season, err)
	}

	realtime, err := fetchStatsPages[skaterRealtimeRow](ctx, c, "/skater/realtime", season, func(env *skaterRealtimeEnvelope) []skaterRealtimeRow {
		return env.Data
	})
	if err != nil {
		return nil, fmt.Errorf("fetch skater realtime season=%s: %w", season, err)
	}

	realtimeByID := make(map[int64]skaterRealtimeRow, len(realtime))
	for _, row := range realtime {
		realtimeByID[row.PlayerID] = row
	}

	out := make([]usecase.ExternalSkaterStat, 0, len(summaries))
	for _, row := range summaries {
		if row.PlayerID <= 0 {
			continue
		}
		stat := usecase.ExternalSkaterStat{
			PlayerID:      row.PlayerID,
			Name:          row.SkaterFullName,
			Team:          currentTeamAbbrev(row.TeamAbbrevs),
			Position:      row.PositionCode,
			Season:        season,
			GamesPlayed:   row.GamesPlayed,
			Goals:         row.Goals,
			Assists:       row.Assists,
			Points:        row.Points,
			PlusMinus:     row.PlusMinus,
			AvgTOIMinutes: round2(row.TimeOnIcePerGame / 60),
			FaceoffWinPct: row.FaceoffWinPct,
		}
		if rt, ok := realtimeByID[row.PlayerID]; ok {
			stat.Hits = rt.Hits
			stat.BlockedShots = rt.BlockedShots
		}
		stat.ShotsPer60 = per60(float64(row.Shots), stat.AvgTOIMinutes, row.GamesPlayed)
		stat.PointsPer60 = per60(float64(row.Points), stat.AvgTOIMinutes, row.GamesPlayed)
		out = append(out, stat)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

// fetchStatsPages walks a stats API table page by page until an empty batch.
// The page count is capped so a misbehaving upstream cannot loop us forever.
func fetchStatsPages[R any, E any](ctx context.Context, c *Client, path, season string, rows func(*E) []R) ([]R, error) {
	out := make([]R, 0, statsPageSize*2)
	for page := 0; page < statsMaxPages; page++ {
		query := map[string]string{
			"isAggregate": "false",
			"isGame":      "false",
			"limit":       strconv.Itoa(statsPageSize),
			"start":       strconv.Itoa(page * statsPageSize),
			"cayenneExp":  fmt.Sprintf("seasonId=%s and gameTypeId=%d", season, regularSeasonGameType),
		}

		var envelope E
		if err := c.doStatsJSON(ctx, path, query, &envelope); err != nil {
			return nil, err
		}

		batch := rows(&envelope)
		if len(batch) == 0 {
			break
		}
		out = append(out, batch...)
		if len(batch) < statsPageSize {
			break
		}
	}
	return out, nil
}

// currentTeamAbbrev keeps the last entry of a comma-separated team list,
// which the stats API orders oldest first for traded players.
func currentTeamAbbrev(teams string) string {
	if idx := strings.LastIndex(teams, ","); idx >= 0 {
		teams = teams[idx+1:]
	}
	return strings.TrimSpace(teams)
}

func per60(total, avgTOIMinutes float64, gamesPlayed int) *float64 {
	toi := avgTOIMinutes * float64(gamesPlayed)
	if toi <= 0 {
		return nil
	}
	v := round2(total * 60 / toi)
	return &v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
