package storage

import (
	"context"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/solana"
)

// TokenStore provides access to tokens storage.
type TokenStore interface {
	// Insert adds a new token. Returns ErrDuplicateKey if the mint exists.
	Insert(ctx context.Context, t *domain.Token) error

	// GetByMint retrieves a token by mint address. Returns ErrNotFound if not exists.
	GetByMint(ctx context.Context, mint solana.PublicKey) (*domain.Token, error)

	// SearchByText retrieves tokens whose name or symbol contains the given
	// text, case-insensitive, deduplicated by mint, capped at limit.
	SearchByText(ctx context.Context, text string, limit int) ([]*domain.Token, error)
}

// PoolStore provides access to pools storage.
type PoolStore interface {
	// Insert adds a new pool. Returns ErrDuplicateKey if the address exists.
	Insert(ctx context.Context, p *domain.Pool) error

	// GetByAddress retrieves a pool by its address. Returns ErrNotFound if not exists.
	GetByAddress(ctx context.Context, address solana.PublicKey) (*domain.Pool, error)

	// GetByBaseMint retrieves all pools whose base token is the given mint,
	// in creation slot order.
	GetByBaseMint(ctx context.Context, mint solana.PublicKey) ([]*domain.Pool, error)
}

// SwapStore provides access to the append-only swaps log.
type SwapStore interface {
	// Insert adds a new swap event. Returns ErrDuplicateKey if (hash, pool, slot) exists.
	Insert(ctx context.Context, e *domain.SwapEvent) error

	// InsertBulk adds multiple swap events atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, events []*domain.SwapEvent) error

	// GetLatestByPool retrieves the most recent swap for a pool, ordered by
	// (timestamp DESC, slot DESC, id DESC). Returns ErrNotFound when the pool
	// has no recorded swaps.
	GetLatestByPool(ctx context.Context, pool solana.PublicKey) (*domain.SwapEvent, error)

	// GetByPoolTimeRange retrieves swaps for a pool within [start, end]
	// (inclusive both ends), ordered by (timestamp ASC, slot ASC, id ASC).
	GetByPoolTimeRange(ctx context.Context, pool solana.PublicKey, start, end int64) ([]*domain.SwapEvent, error)

	// GetLastBefore retrieves the most recent swap strictly before ts.
	// Returns ErrNotFound when none exists.
	GetLastBefore(ctx context.Context, pool solana.PublicKey, ts int64) (*domain.SwapEvent, error)

	// GetRecentByPool retrieves swaps for a pool within [start, end], newest
	// first, capped at limit.
	GetRecentByPool(ctx context.Context, pool solana.PublicKey, start, end int64, limit int) ([]*domain.SwapEvent, error)
}

// CandleStore provides access to 1-second OHLC candle storage.
type CandleStore interface {
	// InsertBulk adds multiple candles. Fails entire batch on duplicate (pool, bucket_ts).
	InsertBulk(ctx context.Context, candles []*domain.Candle) error

	// GetByPoolTimeRange retrieves raw 1-second candles for a pool within
	// [start, end] (inclusive), ordered by bucket_ts ASC.
	GetByPoolTimeRange(ctx context.Context, pool solana.PublicKey, start, end int64) ([]*domain.Candle, error)

	// GetOHLCV aggregates candles into intervalMs-wide buckets within
	// [start, end], ordered by bucket_ts ASC.
	GetOHLCV(ctx context.Context, pool solana.PublicKey, intervalMs, start, end int64) ([]*domain.Candle, error)
}
