package nhl

import (
	"context"
	"fmt"
)

type rosterEnvelope struct {
	Forwards   []rosterPlayer `json:"forwards"`
	Defensemen []rosterPlayer `json:"defensemen"`
	Goalies    []rosterPlayer `json:"goalies"`
}

type rosterPlayer struct {
	ID            int64 `json:"id"`
	SweaterNumber *int  `json:"sweaterNumber"`
}

// FetchTeamRoster returns the jersey numbers for one team's season roster,
// keyed by player id. Players without an assigned sweater number are omitted.
func (c *Client) FetchTeamRoster(ctx context.Context, team, season string) (map[int64]int, error) {
	if team == "" {
		return nil, fmt.Errorf("team abbreviation is required")
	}

	var envelope rosterEnvelope
	if err := c.doWebJSON(ctx, fmt.Sprintf("/roster/%s/%s", team, season), nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch roster team=%s season=%s: %w", team, season, err)
	}

	out := make(map[int64]int, len(envelope.Forwards)+len(envelope.Defensemen)+len(envelope.Goalies))
	for _, group := range [][]rosterPlayer{envelope.Forwards, envelope.Defensemen, envelope.Goalies} {
		for _, p := range group {
			if p.ID <= 0 || p.SweaterNumber == nil {
				continue
			}
			out[p.ID] = *p.SweaterNumber
		}
	}
	return out, nil
}
