package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/platform/logging"
)

// EdgeFetcher fetches one player's edge snapshot.
type EdgeFetcher func(ctx context.Context, playerID int64) (ExternalEdgeDetail, error)

type FetchBatcherConfig struct {
	// Workers is the batch width: at most this many fetches run at once.
	// Width 1 degenerates to sequential fetching.
	Workers int
	// Pause is the fixed delay between consecutive batches.
	Pause  time.Duration
	Logger *logging.Logger
}

// FetchBatcher fans edge fetches out over a bounded worker pool. One player's
// failure or panic never disturbs the rest of the batch.
type FetchBatcher struct {
	workers int
	pause   time.Duration
	logger  *logging.Logger
}

func NewFetchBatcher(cfg FetchBatcherConfig) *FetchBatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	pause := cfg.Pause
	if pause < 0 {
		pause = 0
	}

	return &FetchBatcher{
		workers: workers,
		pause:   pause,
		logger:  logger,
	}
}

type BatchStats struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type edgeFetchResult struct {
	playerID int64
	detail   ExternalEdgeDetail
	err      error
}

// FetchEdgeDetails fetches snapshots for ids in batches of the configured
// width, pausing between batches. The returned map holds successes only;
// failures are counted, logged, and dropped.
func (b *FetchBatcher) FetchEdgeDetails(ctx context.Context, ids []int64, fetch EdgeFetcher) (map[int64]ExternalEdgeDetail, BatchStats, error) {
	stats := BatchStats{Attempted: len(ids)}
	out := make(map[int64]ExternalEdgeDetail, len(ids))
	if len(ids) == 0 {
		return out, stats, nil
	}
	if fetch == nil {
		return nil, BatchStats{}, fmt.Errorf("edge fetcher is required")
	}

	pool, err := ants.NewPool(b.workers)
	if err != nil {
		return nil, BatchStats{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan edgeFetchResult, len(ids))

	var succeeded atomic.Int32
	var failed atomic.Int32

	for start := 0; start < len(ids); start += b.workers {
		if err := ctx.Err(); err != nil {
			return nil, BatchStats{}, err
		}

		end := start + b.workers
		if end > len(ids) {
			end = len(ids)
		}

		var workers sync.WaitGroup
		for _, playerID := range ids[start:end] {
			playerID := playerID
			workers.Add(1)
			if err := pool.Submit(func() {
				defer workers.Done()
				results <- b.fetchOne(ctx, playerID, fetch)
			}); err != nil {
				workers.Done()
				return nil, BatchStats{}, fmt.Errorf("submit fetch to worker pool: %w", err)
			}
		}
		workers.Wait()

		for range ids[start:end] {
			row := <-results
			if row.err != nil {
				failed.Add(1)
				b.logger.WarnContext(ctx, "edge fetch failed, skipping player",
					"player_id", row.playerID,
					"error", row.err,
				)
				continue
			}
			succeeded.Add(1)
			out[row.playerID] = row.detail
		}

		b.logger.InfoContext(ctx, "edge fetch progress",
			"done", end,
			"total", len(ids),
			"succeeded", succeeded.Load(),
			"failed", failed.Load(),
		)

		if end < len(ids) && b.pause > 0 {
			timer := time.NewTimer(b.pause)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, BatchStats{}, ctx.Err()
			case <-timer.C:
			}
		}
	}

	stats.Succeeded = int(succeeded.Load())
	stats.Failed = int(failed.Load())
	return out, stats, nil
}

func (b *FetchBatcher) fetchOne(ctx context.Context, playerID int64, fetch EdgeFetcher) (row edgeFetchResult) {
	row.playerID = playerID
	defer func() {
		if rec := recover(); rec != nil {
			row.err = fmt.Errorf("edge fetch panicked: %v", rec)
		}
	}()

	row.detail, row.err = fetch(ctx, playerID)
	return row
}
