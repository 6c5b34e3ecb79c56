package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	qb "github.com/sean-m-sweeney/nhl-edge-report/internal/platform/querybuilder"
)

// MetaRepository stores refresh bookkeeping in a single-row table.
type MetaRepository struct {
	db *sqlx.DB
}

func NewMetaRepository(db *sqlx.DB) *MetaRepository {
	return &MetaRepository{db: db}
}

func (r *MetaRepository) SetLastUpdated(ctx context.Context, at time.Time) error {
	query, args, err := qb.InsertInto("refresh_metadata").
		Columns("id", "last_updated").
		Values(1, at).
		Suffix("ON CONFLICT (id) DO UPDATE SET last_updated = EXCLUDED.last_updated").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set last updated query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set last updated: %w", err)
	}
	return nil
}

func (r *MetaRepository) LastUpdated(ctx context.Context) (time.Time, bool, error) {
	query, args, err := qb.Select("last_updated").From("refresh_metadata").
		Where(qb.Eq("id", 1)).
		ToSQL()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build get last updated query: %w", err)
	}

	var row struct {
		LastUpdated time.Time `db:"last_updated"`
	}
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("get last updated: %w", err)
	}
	return row.LastUpdated, true, nil
}
