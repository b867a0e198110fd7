package search

import (
	"context"
	"errors"
	"fmt"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/solana"
	"solana-pool-search/internal/storage"
)

// LatestSwapResolver derives the current price/reserve snapshot of a pool
// from its most recent swap.
type LatestSwapResolver struct {
	swaps storage.SwapStore
}

// NewLatestSwapResolver creates a new LatestSwapResolver.
func NewLatestSwapResolver(swaps storage.SwapStore) *LatestSwapResolver {
	return &LatestSwapResolver{swaps: swaps}
}

// Resolve returns the most recent swap for the pool, or nil when the pool
// has no recorded trades. A pre-trade pool is a valid state, not an error.
func (r *LatestSwapResolver) Resolve(ctx context.Context, pool solana.PublicKey) (*domain.SwapEvent, error) {
	latest, err := r.swaps.GetLatestByPool(ctx, pool)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve latest swap: %w", err)
	}
	return latest, nil
}
