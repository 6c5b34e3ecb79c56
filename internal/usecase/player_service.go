package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/player"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/reference"
)

// PlayerQuery narrows a listing to one team, division, or conference.
// At most one of the fields may be set.
type PlayerQuery struct {
	Team       string
	Division   string
	Conference string
}

type PlayerService struct {
	repo player.Repository
}

func NewPlayerService(repo player.Repository) *PlayerService {
	return &PlayerService{repo: repo}
}

func (s *PlayerService) List(ctx context.Context, query PlayerQuery) ([]player.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	if s.repo == nil {
		return nil, fmt.Errorf("%w: player repository is not configured", ErrDependencyUnavailable)
	}

	filter, err := resolveTeamScope(query.Team, query.Division, query.Conference)
	if err != nil {
		return nil, err
	}

	profiles, err := s.repo.ListProfiles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list player profiles: %w", err)
	}
	return profiles, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID int64) (player.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	if s.repo == nil {
		return player.Profile{}, fmt.Errorf("%w: player repository is not configured", ErrDependencyUnavailable)
	}
	if playerID <= 0 {
		return player.Profile{}, fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}

	profile, found, err := s.repo.GetProfile(ctx, playerID)
	if err != nil {
		return player.Profile{}, fmt.Errorf("get player profile id=%d: %w", playerID, err)
	}
	if !found {
		return player.Profile{}, fmt.Errorf("%w: player id=%d", ErrNotFound, playerID)
	}
	return profile, nil
}

// resolveTeamScope turns a team, division, or conference selector into the
// list of team abbreviations the repositories filter on. Division and
// conference names are matched case-insensitively against the compiled-in
// league table.
func resolveTeamScope(team, division, conference string) (player.Filter, error) {
	set := 0
	for _, v := range []string{team, division, conference} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return player.Filter{}, fmt.Errorf("%w: team, division and conference filters are mutually exclusive", ErrInvalidInput)
	}

	switch {
	case team != "":
		abbrev := strings.ToUpper(strings.TrimSpace(team))
		if !reference.Known(abbrev) {
			return player.Filter{}, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, team)
		}
		return player.Filter{Teams: []string{abbrev}}, nil
	case division != "":
		teams := teamsWhere(func(t reference.Team) string { return t.Division }, division)
		if len(teams) == 0 {
			return player.Filter{}, fmt.Errorf("%w: unknown division %q", ErrInvalidInput, division)
		}
		return player.Filter{Teams: teams}, nil
	case conference != "":
		teams := teamsWhere(func(t reference.Team) string { return t.Conference }, conference)
		if len(teams) == 0 {
			return player.Filter{}, fmt.Errorf("%w: unknown conference %q", ErrInvalidInput, conference)
		}
		return player.Filter{Teams: teams}, nil
	default:
		return player.Filter{}, nil
	}
}

func teamsWhere(key func(reference.Team) string, want string) []string {
	out := make([]string, 0, 16)
	for _, team := range reference.Teams() {
		if strings.EqualFold(key(team), strings.TrimSpace(want)) {
			out = append(out, team.Abbrev)
		}
	}
	return out
}
