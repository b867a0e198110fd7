package postgres

import (
	"context"
	"fmt"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/solana"
	"solana-pool-search/internal/storage"
)

// PoolStore implements storage.PoolStore using PostgreSQL.
type PoolStore struct {
	pool *Pool
}

// NewPoolStore creates a new PoolStore.
func NewPoolStore(pool *Pool) *PoolStore {
	return &PoolStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PoolStore = (*PoolStore)(nil)

const poolColumns = `
	pool_address, factory, pre_factory, reversed,
	token_base_address, token_quote_address,
	pool_base_address, pool_quote_address,
	curve_percentage, initial_token_base_reserve, initial_token_quote_reserve,
	slot, creator, hash, metadata, created_at
`

// Insert adds a new pool. Returns ErrDuplicateKey if the address exists.
func (s *PoolStore) Insert(ctx context.Context, p *domain.Pool) error {
	if p == nil {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO pools (
			pool_address, factory, pre_factory, reversed,
			token_base_address, token_quote_address,
			pool_base_address, pool_quote_address,
			curve_percentage, initial_token_base_reserve, initial_token_quote_reserve,
			slot, creator, hash, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := s.pool.Exec(ctx, query,
		p.Address.Bytes(),
		p.Factory,
		p.PreFactory,
		p.Reversed,
		p.TokenBase.Bytes(),
		p.TokenQuote.Bytes(),
		p.PoolBaseAccount.Bytes(),
		p.PoolQuoteAccount.Bytes(),
		p.CurvePercentage,
		p.InitialBaseRes,
		p.InitialQuoteRes,
		p.Slot,
		p.Creator.Bytes(),
		p.Hash.Bytes(),
		p.Metadata,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert pool: %w", err)
	}
	return nil
}

// GetByAddress retrieves a pool by its address. Returns ErrNotFound if not exists.
func (s *PoolStore) GetByAddress(ctx context.Context, address solana.PublicKey) (*domain.Pool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools WHERE pool_address = $1`

	row := s.pool.QueryRow(ctx, query, address.Bytes())
	p, err := scanPool(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get pool by address: %w", err)
	}
	return p, nil
}

// GetByBaseMint retrieves all pools with the given base mint, in creation slot order.
func (s *PoolStore) GetByBaseMint(ctx context.Context, mint solana.PublicKey) ([]*domain.Pool, error) {
	query := `
		SELECT ` + poolColumns + `
		FROM pools
		WHERE token_base_address = $1
		ORDER BY slot ASC, pool_address ASC
	`

	rows, err := s.pool.Query(ctx, query, mint.Bytes())
	if err != nil {
		return nil, fmt.Errorf("get pools by base mint: %w", err)
	}
	defer rows.Close()

	var pools []*domain.Pool
	for rows.Next() {
		p, err := scanPool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pool row: %w", err)
		}
		pools = append(pools, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pool rows: %w", err)
	}

	return pools, nil
}

// scanPool scans one pools row.
func scanPool(row rowScanner) (*domain.Pool, error) {
	var (
		p                            domain.Pool
		address, baseMint, quoteMint []byte
		baseAcct, quoteAcct          []byte
		creator, hash                []byte
	)

	err := row.Scan(
		&address,
		&p.Factory,
		&p.PreFactory,
		&p.Reversed,
		&baseMint,
		&quoteMint,
		&baseAcct,
		&quoteAcct,
		&p.CurvePercentage,
		&p.InitialBaseRes,
		&p.InitialQuoteRes,
		&p.Slot,
		&creator,
		&hash,
		&p.Metadata,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if p.Address, err = solana.PublicKeyFromBytes(address); err != nil {
		return nil, fmt.Errorf("decode pool address: %w", err)
	}
	if p.TokenBase, err = solana.PublicKeyFromBytes(baseMint); err != nil {
		return nil, fmt.Errorf("decode base mint: %w", err)
	}
	if p.TokenQuote, err = solana.PublicKeyFromBytes(quoteMint); err != nil {
		return nil, fmt.Errorf("decode quote mint: %w", err)
	}
	if p.PoolBaseAccount, err = solana.PublicKeyFromBytes(baseAcct); err != nil {
		return nil, fmt.Errorf("decode base account: %w", err)
	}
	if p.PoolQuoteAccount, err = solana.PublicKeyFromBytes(quoteAcct); err != nil {
		return nil, fmt.Errorf("decode quote account: %w", err)
	}
	if p.Creator, err = solana.PublicKeyFromBytes(creator); err != nil {
		return nil, fmt.Errorf("decode creator: %w", err)
	}
	if p.Hash, err = solana.SignatureFromBytes(hash); err != nil {
		return nil, fmt.Errorf("decode pool hash: %w", err)
	}

	return &p, nil
}
