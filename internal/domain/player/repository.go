package player

import (
	"context"
	"time"
)

// Repository describes skater persistence needs from use cases. Snapshot
// replacement keeps exactly one latest row per player and snapshot kind.
type Repository interface {
	UpsertPlayers(ctx context.Context, items []Player) error
	ReplaceSeasonStats(ctx context.Context, items []SeasonStats) error
	ReplaceEdgeStats(ctx context.Context, items []EdgeStats) error
	ListProfiles(ctx context.Context, filter Filter) ([]Profile, error)
	GetProfile(ctx context.Context, playerID int64) (Profile, bool, error)
	EdgeUpdatedAt(ctx context.Context) (map[int64]time.Time, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}
