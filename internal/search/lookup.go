package search

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/observability"
	"solana-pool-search/internal/quote"
	"solana-pool-search/internal/solana"
	"solana-pool-search/internal/storage"
)

// Result ordering follows probe evaluation order: mint hits, then pool
// hits, then text hits.

// defaultTextLimit caps free-text matches per request.
const defaultTextLimit = 20

// Hit is one entity-lookup match before price/report enrichment.
// Token is always set; Pool and Quote are set together for pool bundles.
type Hit struct {
	Token *domain.Token
	Pool  *domain.Pool
	Quote *quote.Token
}

// Lookup probes the token and pool address spaces and the token text index.
type Lookup struct {
	tokens storage.TokenStore
	pools  storage.PoolStore
	quotes *quote.Registry
	logger *log.Logger
}

// NewLookup creates a new Lookup.
func NewLookup(tokens storage.TokenStore, pools storage.PoolStore, quotes *quote.Registry, logger *log.Logger) *Lookup {
	return &Lookup{tokens: tokens, pools: pools, quotes: quotes, logger: logger}
}

// ByAddress probes both address spaces. A mint and a pool can share an
// address shape, so both probes always run; zero, one, or both may hit.
// A pool with a missing token reference is logged and dropped without
// affecting sibling hits.
func (l *Lookup) ByAddress(ctx context.Context, addr solana.PublicKey) ([]Hit, error) {
	var mintHits, poolHits []Hit

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hits, err := l.mintProbe(ctx, addr)
		if err != nil {
			return err
		}
		mintHits = hits
		return nil
	})
	g.Go(func() error {
		hits, err := l.poolProbe(ctx, addr)
		if err != nil {
			return err
		}
		poolHits = hits
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return append(mintHits, poolHits...), nil
}

// ByText matches token name and symbol case-insensitively, deduplicated
// by mint. Text search yields token-only hits and never inspects pools.
func (l *Lookup) ByText(ctx context.Context, text string) ([]Hit, error) {
	tokens, err := l.tokens.SearchByText(ctx, text, defaultTextLimit)
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}

	hits := make([]Hit, 0, len(tokens))
	for _, t := range tokens {
		hits = append(hits, Hit{Token: t})
	}
	return hits, nil
}

// mintProbe looks up a token by mint address. When the token has pools
// with it on the base side, each pool becomes a full bundle; otherwise
// the hit is token-only.
func (l *Lookup) mintProbe(ctx context.Context, addr solana.PublicKey) ([]Hit, error) {
	token, err := l.tokens.GetByMint(ctx, addr)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mint probe: %w", err)
	}

	pools, err := l.pools.GetByBaseMint(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("pools by base mint: %w", err)
	}
	if len(pools) == 0 {
		return []Hit{{Token: token}}, nil
	}

	hits := make([]Hit, 0, len(pools))
	for _, p := range pools {
		q, err := l.resolveQuote(ctx, p.TokenQuote)
		if err != nil {
			if errors.Is(err, ErrIntegrityGap) {
				l.logger.Printf("[search] dropping pool %s: %v", p.Address, err)
				observability.RecordDroppedResult()
				continue
			}
			return nil, err
		}
		hits = append(hits, Hit{Token: token, Pool: p, Quote: q})
	}
	return hits, nil
}

// poolProbe looks up a pool by its own address and resolves both token
// references.
func (l *Lookup) poolProbe(ctx context.Context, addr solana.PublicKey) ([]Hit, error) {
	pool, err := l.pools.GetByAddress(ctx, addr)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pool probe: %w", err)
	}

	token, err := l.tokens.GetByMint(ctx, pool.TokenBase)
	if errors.Is(err, storage.ErrNotFound) {
		l.logger.Printf("[search] dropping pool %s: base token %s missing", pool.Address, pool.TokenBase)
		observability.RecordDroppedResult()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve base token: %w", err)
	}

	q, err := l.resolveQuote(ctx, pool.TokenQuote)
	if err != nil {
		if errors.Is(err, ErrIntegrityGap) {
			l.logger.Printf("[search] dropping pool %s: %v", pool.Address, err)
			observability.RecordDroppedResult()
			return nil, nil
		}
		return nil, err
	}

	return []Hit{{Token: token, Pool: pool, Quote: q}}, nil
}

// resolveQuote resolves quote-side metadata. Registered quote mints are
// served from the registry; anything else falls back to the token store.
func (l *Lookup) resolveQuote(ctx context.Context, mint solana.PublicKey) (*quote.Token, error) {
	if q, ok := l.quotes.Lookup(mint); ok {
		return &q, nil
	}

	token, err := l.tokens.GetByMint(ctx, mint)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("quote token %s: %w", mint, ErrIntegrityGap)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve quote token: %w", err)
	}

	q := &quote.Token{
		Address:  token.Mint,
		Name:     token.Name,
		Symbol:   token.Symbol,
		Decimals: uint8(token.Decimals),
	}
	if token.Image != nil {
		q.Logo = *token.Image
	}
	return q, nil
}
