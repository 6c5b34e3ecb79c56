package teamstats

import "context"

// Repository stores the most recent league-wide aggregate snapshot.
type Repository interface {
	ReplaceAll(ctx context.Context, items []Aggregate) error
	List(ctx context.Context, filter Filter) ([]Aggregate, error)
	Clear(ctx context.Context) error
}
