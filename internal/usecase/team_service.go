package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/meta"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/player"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/reference"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/teamstats"
)

// HealthStatus reports how much data the store currently holds and when the
// last successful refresh finished.
type HealthStatus struct {
	PlayerCount int
	LastUpdated *time.Time
	Stale       bool
}

type TeamService struct {
	teamStats teamstats.Repository
	players   player.Repository
	meta      meta.Repository
	freshness time.Duration
	now       func() time.Time
}

func NewTeamService(teamStats teamstats.Repository, players player.Repository, metaRepo meta.Repository, freshness time.Duration) *TeamService {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &TeamService{
		teamStats: teamStats,
		players:   players,
		meta:      metaRepo,
		freshness: freshness,
		now:       time.Now,
	}
}

// Teams lists the full league from the compiled-in reference table.
func (s *TeamService) Teams(ctx context.Context) []reference.Team {
	_, span := startUsecaseSpan(ctx, "usecase.TeamService.Teams")
	defer span.End()

	return reference.Teams()
}

// Divisions groups the league by division name.
func (s *TeamService) Divisions(ctx context.Context) map[string][]reference.Team {
	_, span := startUsecaseSpan(ctx, "usecase.TeamService.Divisions")
	defer span.End()

	return reference.Divisions()
}

func (s *TeamService) TeamStats(ctx context.Context, division, conference string) ([]teamstats.Aggregate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.TeamStats")
	defer span.End()

	if s.teamStats == nil {
		return nil, fmt.Errorf("%w: team stats repository is not configured", ErrDependencyUnavailable)
	}
	if division != "" && conference != "" {
		return nil, fmt.Errorf("%w: division and conference filters are mutually exclusive", ErrInvalidInput)
	}
	if division != "" {
		canonical, ok := canonicalDivision(division)
		if !ok {
			return nil, fmt.Errorf("%w: unknown division %q", ErrInvalidInput, division)
		}
		division = canonical
	}
	if conference != "" {
		canonical, ok := canonicalConference(conference)
		if !ok {
			return nil, fmt.Errorf("%w: unknown conference %q", ErrInvalidInput, conference)
		}
		conference = canonical
	}

	rows, err := s.teamStats.List(ctx, teamstats.Filter{Division: division, Conference: conference})
	if err != nil {
		return nil, fmt.Errorf("list team aggregates: %w", err)
	}
	return rows, nil
}

func (s *TeamService) Health(ctx context.Context) (HealthStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Health")
	defer span.End()

	if s.players == nil || s.meta == nil {
		return HealthStatus{}, fmt.Errorf("%w: health dependencies are not configured", ErrDependencyUnavailable)
	}

	count, err := s.players.Count(ctx)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("count players: %w", err)
	}

	status := HealthStatus{PlayerCount: count, Stale: true}
	at, found, err := s.meta.LastUpdated(ctx)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("read last updated: %w", err)
	}
	if found {
		status.LastUpdated = &at
		status.Stale = s.now().Sub(at) >= s.freshness
	}
	return status, nil
}

func canonicalDivision(name string) (string, bool) {
	for _, d := range []string{reference.DivisionAtlantic, reference.DivisionMetropolitan, reference.DivisionCentral, reference.DivisionPacific} {
		if strings.EqualFold(strings.TrimSpace(name), d) {
			return d, true
		}
	}
	return "", false
}

func canonicalConference(name string) (string, bool) {
	for _, c := range []string{reference.ConferenceEastern, reference.ConferenceWestern} {
		if strings.EqualFold(strings.TrimSpace(name), c) {
			return c, true
		}
	}
	return "", false
}
