package report

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/solana"
	"solana-pool-search/internal/storage"
)

// Aggregator computes window reports from a swap store.
type Aggregator struct {
	swaps storage.SwapStore
}

// NewAggregator creates a new Aggregator.
func NewAggregator(swaps storage.SwapStore) *Aggregator {
	return &Aggregator{swaps: swaps}
}

// Report computes the trading-activity summary for one pool over the
// trailing window ending at now (Unix milliseconds). Both window edges
// are inclusive. A pool with no trades yields a zero-valued report.
func (a *Aggregator) Report(ctx context.Context, pool solana.PublicKey, window domain.Window, now int64) (*domain.WindowReport, error) {
	start := now - window.Duration.Milliseconds()

	swaps, err := a.swaps.GetByPoolTimeRange(ctx, pool, start, now)
	if err != nil {
		return nil, fmt.Errorf("load swaps for %s window: %w", window.Label, err)
	}

	var carry *domain.SwapEvent
	if !hasTrade(swaps) {
		carry, err = a.swaps.GetLastBefore(ctx, pool, start)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("load carry-forward swap: %w", err)
		}
	}

	return computeReport(swaps, carry, start), nil
}

// MultiReport computes reports for every canonical window concurrently,
// keyed by window label. All windows share the same now so their edges
// line up.
func (a *Aggregator) MultiReport(ctx context.Context, pool solana.PublicKey, now int64) (map[string]*domain.WindowReport, error) {
	reports := make([]*domain.WindowReport, len(domain.Windows))

	g, ctx := errgroup.WithContext(ctx)
	for i, w := range domain.Windows {
		g.Go(func() error {
			r, err := a.Report(ctx, pool, w, now)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*domain.WindowReport, len(domain.Windows))
	for i, w := range domain.Windows {
		out[w.Label] = reports[i]
	}
	return out, nil
}

func hasTrade(swaps []*domain.SwapEvent) bool {
	for _, s := range swaps {
		if s.Type.IsTrade() {
			return true
		}
	}
	return false
}
