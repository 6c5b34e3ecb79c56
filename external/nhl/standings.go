package nhl

import (
	"context"
	"fmt"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/usecase"
)

type standingsEnvelope struct {
	Standings []standingRow `json:"standings"`
}

type standingRow struct {
	TeamAbbrev       localizedName `json:"teamAbbrev"`
	Wins             int           `json:"wins"`
	Losses           int           `json:"losses"`
	OTLosses         int           `json:"otLosses"`
	Points           int           `json:"points"`
	GoalDifferential int           `json:"goalDifferential"`
}

type localizedName struct {
	Default string `json:"default"`
}

// FetchStandings returns the current league standings from the web host.
func (c *Client) FetchStandings(ctx context.Context) ([]usecase.ExternalStanding, error) {
	var envelope standingsEnvelope
	if err := c.doWebJSON(ctx, "/standings/now", nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch standings: %w", err)
	}

	out := make([]usecase.ExternalStanding, 0, len(envelope.Standings))
	for _, row := range envelope.Standings {
		if row.TeamAbbrev.Default == "" {
			continue
		}
		out = append(out, usecase.ExternalStanding{
			Team:     row.TeamAbbrev.Default,
			Wins:     row.Wins,
			Losses:   row.Losses,
			OTLosses: row.OTLosses,
			Points:   row.Points,
			GoalDiff: row.GoalDifferential,
		})
	}
	return out, nil
}
