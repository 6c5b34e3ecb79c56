package usecase

import (
	"context"
	"fmt"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/goalie"
)

type GoalieService struct {
	repo goalie.Repository
}

func NewGoalieService(repo goalie.Repository) *GoalieService {
	return &GoalieService{repo: repo}
}

func (s *GoalieService) List(ctx context.Context, query PlayerQuery) ([]goalie.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GoalieService.List")
	defer span.End()

	if s.repo == nil {
		return nil, fmt.Errorf("%w: goalie repository is not configured", ErrDependencyUnavailable)
	}

	scope, err := resolveTeamScope(query.Team, query.Division, query.Conference)
	if err != nil {
		return nil, err
	}

	profiles, err := s.repo.ListProfiles(ctx, goalie.Filter{Teams: scope.Teams})
	if err != nil {
		return nil, fmt.Errorf("list goalie profiles: %w", err)
	}
	return profiles, nil
}

func (s *GoalieService) Get(ctx context.Context, goalieID int64) (goalie.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GoalieService.Get")
	defer span.End()

	if s.repo == nil {
		return goalie.Profile{}, fmt.Errorf("%w: goalie repository is not configured", ErrDependencyUnavailable)
	}
	if goalieID <= 0 {
		return goalie.Profile{}, fmt.Errorf("%w: goalie id must be positive", ErrInvalidInput)
	}

	profile, found, err := s.repo.GetProfile(ctx, goalieID)
	if err != nil {
		return goalie.Profile{}, fmt.Errorf("get goalie profile id=%d: %w", goalieID, err)
	}
	if !found {
		return goalie.Profile{}, fmt.Errorf("%w: goalie id=%d", ErrNotFound, goalieID)
	}
	return profile, nil
}
