package goalie

import "context"

// Repository describes goaltender persistence needs from use cases.
type Repository interface {
	UpsertGoalies(ctx context.Context, items []Goalie) error
	ReplaceSeasonStats(ctx context.Context, items []SeasonStats) error
	ListProfiles(ctx context.Context, filter Filter) ([]Profile, error)
	GetProfile(ctx context.Context, goalieID int64) (Profile, bool, error)
	Clear(ctx context.Context) error
}
