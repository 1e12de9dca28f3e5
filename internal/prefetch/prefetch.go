// Package prefetch warms dependent data in small rate-limited batches so the
// first interaction with any item stays low-latency without issuing every
// request simultaneously.
package prefetch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBatchSize = 2
	defaultInterval  = 500 * time.Millisecond
)

// Warmer fans fetches out in fixed-size batches with a pause between them.
type Warmer struct {
	batchSize int
	interval  time.Duration
	logger    *zap.Logger
}

func New(batchSize int, interval time.Duration, logger *zap.Logger) *Warmer {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Warmer{
		batchSize: batchSize,
		interval:  interval,
		logger:    logger,
	}
}

// Warm fetches every id in batches. Before each batch it checks the context
// and the stillCurrent predicate so a stale warm-up (the active program
// changed underneath it) stops instead of wasting requests. Fetch errors are
// logged and skipped; warming is opportunistic.
func (w *Warmer) Warm(ctx context.Context, ids []string, stillCurrent func() bool, fetch func(ctx context.Context, id string) error) {
	if len(ids) == 0 || fetch == nil {
		return
	}
	if stillCurrent == nil {
		stillCurrent = func() bool { return true }
	}

	for start := 0; start < len(ids); start += w.batchSize {
		if ctx.Err() != nil || !stillCurrent() {
			w.logger.Debug("prefetch aborted", zap.Int("remaining", len(ids)-start))
			return
		}

		end := start + w.batchSize
		if end > len(ids) {
			end = len(ids)
		}

		var wg sync.WaitGroup
		for _, id := range ids[start:end] {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				if err := fetch(ctx, id); err != nil {
					w.logger.Debug("prefetch item failed", zap.String("id", id), zap.Error(err))
				}
			}(id)
		}
		wg.Wait()

		if end < len(ids) {
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.interval):
			}
		}
	}
}
