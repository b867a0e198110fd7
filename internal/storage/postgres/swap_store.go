package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/solana"
	"solana-pool-search/internal/storage"
)

// SwapStore implements storage.SwapStore using PostgreSQL.
type SwapStore struct {
	pool *Pool
}

// NewSwapStore creates a new SwapStore.
func NewSwapStore(pool *Pool) *SwapStore {
	return &SwapStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SwapStore = (*SwapStore)(nil)

const swapColumns = `
	id, pool_address, creator, swap_type, hash,
	base_amount, quote_amount, base_reserve, quote_reserve,
	price_sol, slot, timestamp
`

const swapInsert = `
	INSERT INTO swaps (
		pool_address, creator, swap_type, hash,
		base_amount, quote_amount, base_reserve, quote_reserve,
		price_sol, slot, timestamp
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

// Insert adds a new swap event. Returns ErrDuplicateKey if (hash, pool, slot) exists.
func (s *SwapStore) Insert(ctx context.Context, e *domain.SwapEvent) error {
	if e == nil {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, swapInsert, swapArgs(e)...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert swap: %w", err)
	}
	return nil
}

// InsertBulk adds multiple swap events atomically. Fails entire batch on any duplicate.
func (s *SwapStore) InsertBulk(ctx context.Context, events []*domain.SwapEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range events {
		if e == nil {
			return storage.ErrInvalidInput
		}
		if _, err := tx.Exec(ctx, swapInsert, swapArgs(e)...); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert swap in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetLatestByPool retrieves the most recent swap for a pool.
// Ties on timestamp break on slot, then insertion order.
func (s *SwapStore) GetLatestByPool(ctx context.Context, pool solana.PublicKey) (*domain.SwapEvent, error) {
	query := `
		SELECT ` + swapColumns + `
		FROM swaps
		WHERE pool_address = $1
		ORDER BY timestamp DESC, slot DESC, id DESC
		LIMIT 1
	`

	row := s.pool.QueryRow(ctx, query, pool.Bytes())
	e, err := scanSwap(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get latest swap: %w", err)
	}
	return e, nil
}

// GetByPoolTimeRange retrieves swaps within [start, end] (inclusive both ends),
// ordered by (timestamp ASC, slot ASC, id ASC).
func (s *SwapStore) GetByPoolTimeRange(ctx context.Context, pool solana.PublicKey, start, end int64) ([]*domain.SwapEvent, error) {
	query := `
		SELECT ` + swapColumns + `
		FROM swaps
		WHERE pool_address = $1 AND timestamp >= $2 AND timestamp <= $3
		ORDER BY timestamp ASC, slot ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, pool.Bytes(), start, end)
	if err != nil {
		return nil, fmt.Errorf("get swaps by time range: %w", err)
	}
	defer rows.Close()

	return scanSwaps(rows)
}

// GetLastBefore retrieves the most recent swap strictly before ts.
func (s *SwapStore) GetLastBefore(ctx context.Context, pool solana.PublicKey, ts int64) (*domain.SwapEvent, error) {
	query := `
		SELECT ` + swapColumns + `
		FROM swaps
		WHERE pool_address = $1 AND timestamp < $2
		ORDER BY timestamp DESC, slot DESC, id DESC
		LIMIT 1
	`

	row := s.pool.QueryRow(ctx, query, pool.Bytes(), ts)
	e, err := scanSwap(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get last swap before: %w", err)
	}
	return e, nil
}

// GetRecentByPool retrieves swaps within [start, end], newest first, capped at limit.
func (s *SwapStore) GetRecentByPool(ctx context.Context, pool solana.PublicKey, start, end int64, limit int) ([]*domain.SwapEvent, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + swapColumns + `
		FROM swaps
		WHERE pool_address = $1 AND timestamp >= $2 AND timestamp <= $3
		ORDER BY timestamp DESC, slot DESC, id DESC
		LIMIT $4
	`

	rows, err := s.pool.Query(ctx, query, pool.Bytes(), start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent swaps: %w", err)
	}
	defer rows.Close()

	return scanSwaps(rows)
}

// swapArgs binds a SwapEvent to the insert statement parameters.
func swapArgs(e *domain.SwapEvent) []any {
	return []any{
		e.Pool.Bytes(),
		e.Creator.Bytes(),
		string(e.Type),
		e.Hash.Bytes(),
		e.BaseAmount,
		e.QuoteAmount,
		e.BaseReserve,
		e.QuoteReserve,
		e.PriceSol,
		e.Slot,
		e.Timestamp,
	}
}

// scanSwap scans one swaps row.
func scanSwap(row rowScanner) (*domain.SwapEvent, error) {
	var (
		e                   domain.SwapEvent
		pool, creator, hash []byte
		swapType            string
	)

	err := row.Scan(
		&e.ID,
		&pool,
		&creator,
		&swapType,
		&hash,
		&e.BaseAmount,
		&e.QuoteAmount,
		&e.BaseReserve,
		&e.QuoteReserve,
		&e.PriceSol,
		&e.Slot,
		&e.Timestamp,
	)
	if err != nil {
		return nil, err
	}

	e.Type = domain.ParseSwapType(swapType)

	if e.Pool, err = solana.PublicKeyFromBytes(pool); err != nil {
		return nil, fmt.Errorf("decode pool address: %w", err)
	}
	if e.Creator, err = solana.PublicKeyFromBytes(creator); err != nil {
		return nil, fmt.Errorf("decode creator: %w", err)
	}
	if e.Hash, err = solana.SignatureFromBytes(hash); err != nil {
		return nil, fmt.Errorf("decode swap hash: %w", err)
	}

	return &e, nil
}

// scanSwaps scans multiple rows into a slice of SwapEvent.
func scanSwaps(rows pgx.Rows) ([]*domain.SwapEvent, error) {
	var events []*domain.SwapEvent

	for rows.Next() {
		e, err := scanSwap(rows)
		if err != nil {
			return nil, fmt.Errorf("scan swap row: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate swap rows: %w", err)
	}

	return events, nil
}
