package nhl

import (
	"context"
	"fmt"
	"strings"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/reference"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/usecase"
)

type teamSummaryEnvelope struct {
	Data []teamSummaryRow `json:"data"`
}

type teamSummaryRow struct {
	TeamFullName   string   `json:"teamFullName"`
	PowerPlayPct   *float64 `json:"powerPlayPct"`
	PenaltyKillPct *float64 `json:"penaltyKillPct"`
}

// FetchTeamSummary returns per-team special-teams rates for the season. The
// stats API keys this table by full franchise name, so rows are mapped back
// to abbreviations through the league reference table; names that do not
// resolve are dropped.
func (c *Client) FetchTeamSummary(ctx context.Context, season string) ([]usecase.ExternalTeamSpecialTeams, error) {
	query := map[string]string{
		"cayenneExp": fmt.Sprintf("seasonId=%s and gameTypeId=%d", season, regularSeasonGameType),
	}

	var envelope teamSummaryEnvelope
	if err := c.doStatsJSON(ctx, "/team/summary", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch team summary season=%s: %w", season, err)
	}

	abbrevByName := make(map[string]string, 32)
	for _, team := range reference.Teams() {
		abbrevByName[strings.ToLower(team.Name)] = team.Abbrev
	}

	out := make([]usecase.ExternalTeamSpecialTeams, 0, len(envelope.Data))
	for _, row := range envelope.Data {
		abbrev, ok := abbrevByName[strings.ToLower(strings.TrimSpace(row.TeamFullName))]
		if !ok {
			c.logger.WarnContext(ctx, "team summary row does not match a known franchise", "team", row.TeamFullName)
			continue
		}
		out = append(out, usecase.ExternalTeamSpecialTeams{
			Team:           abbrev,
			PowerPlayPct:   shareToPct(row.PowerPlayPct),
			PenaltyKillPct: shareToPct(row.PenaltyKillPct),
		})
	}
	return out, nil
}
