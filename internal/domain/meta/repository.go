package meta

import (
	"context"
	"time"
)

// Repository stores pipeline bookkeeping values such as the completion
// timestamp of the last successful refresh.
type Repository interface {
	SetLastUpdated(ctx context.Context, at time.Time) error
	LastUpdated(ctx context.Context) (time.Time, bool, error)
}
