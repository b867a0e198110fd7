package postgres

import (
	"context"
	"fmt"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/solana"
	"solana-pool-search/internal/storage"
)

// TokenStore implements storage.TokenStore using PostgreSQL.
type TokenStore struct {
	pool *Pool
}

// NewTokenStore creates a new TokenStore.
func NewTokenStore(pool *Pool) *TokenStore {
	return &TokenStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TokenStore = (*TokenStore)(nil)

const tokenColumns = `
	mint_address, name, symbol, decimals, uri,
	image, twitter, telegram, website,
	mint_authority, freeze_authority,
	supply, slot, hash, program_id, created_at
`

// Insert adds a new token. Returns ErrDuplicateKey if the mint exists.
func (s *TokenStore) Insert(ctx context.Context, t *domain.Token) error {
	if t == nil {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO tokens (
			mint_address, name, symbol, decimals, uri,
			image, twitter, telegram, website,
			mint_authority, freeze_authority,
			supply, slot, hash, program_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := s.pool.Exec(ctx, query,
		t.Mint.Bytes(),
		t.Name,
		t.Symbol,
		t.Decimals,
		t.URI,
		t.Image,
		t.Twitter,
		t.Telegram,
		t.Website,
		optionalKeyBytes(t.MintAuthority),
		optionalKeyBytes(t.FreezeAuthority),
		t.Supply,
		t.Slot,
		t.Hash.Bytes(),
		t.ProgramID.Bytes(),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

// GetByMint retrieves a token by mint address. Returns ErrNotFound if not exists.
func (s *TokenStore) GetByMint(ctx context.Context, mint solana.PublicKey) (*domain.Token, error) {
	query := `SELECT ` + tokenColumns + ` FROM tokens WHERE mint_address = $1`

	row := s.pool.QueryRow(ctx, query, mint.Bytes())
	t, err := scanToken(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get token by mint: %w", err)
	}
	return t, nil
}

// SearchByText retrieves tokens whose name or symbol contains text,
// case-insensitive, capped at limit.
func (s *TokenStore) SearchByText(ctx context.Context, text string, limit int) ([]*domain.Token, error) {
	if text == "" {
		return nil, storage.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT ` + tokenColumns + `
		FROM tokens
		WHERE name ILIKE '%' || $1 || '%' OR symbol ILIKE '%' || $1 || '%'
		ORDER BY created_at ASC, mint_address ASC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, escapeLike(text), limit)
	if err != nil {
		return nil, fmt.Errorf("search tokens: %w", err)
	}
	defer rows.Close()

	var tokens []*domain.Token
	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, fmt.Errorf("scan token row: %w", err)
		}
		tokens = append(tokens, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token rows: %w", err)
	}

	return tokens, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanToken scans one tokens row.
func scanToken(row rowScanner) (*domain.Token, error) {
	var (
		t                     domain.Token
		mint, hash, programID []byte
		mintAuth, freezeAuth  []byte
	)

	err := row.Scan(
		&mint,
		&t.Name,
		&t.Symbol,
		&t.Decimals,
		&t.URI,
		&t.Image,
		&t.Twitter,
		&t.Telegram,
		&t.Website,
		&mintAuth,
		&freezeAuth,
		&t.Supply,
		&t.Slot,
		&hash,
		&programID,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if t.Mint, err = solana.PublicKeyFromBytes(mint); err != nil {
		return nil, fmt.Errorf("decode mint address: %w", err)
	}
	if t.Hash, err = solana.SignatureFromBytes(hash); err != nil {
		return nil, fmt.Errorf("decode token hash: %w", err)
	}
	if t.ProgramID, err = solana.PublicKeyFromBytes(programID); err != nil {
		return nil, fmt.Errorf("decode program id: %w", err)
	}
	if t.MintAuthority, err = optionalKeyFromBytes(mintAuth); err != nil {
		return nil, fmt.Errorf("decode mint authority: %w", err)
	}
	if t.FreezeAuthority, err = optionalKeyFromBytes(freezeAuth); err != nil {
		return nil, fmt.Errorf("decode freeze authority: %w", err)
	}

	return &t, nil
}

// optionalKeyBytes maps a nullable key to its BYTEA binding.
func optionalKeyBytes(pk *solana.PublicKey) []byte {
	if pk == nil {
		return nil
	}
	return pk.Bytes()
}

// optionalKeyFromBytes maps a nullable BYTEA column back to a key.
func optionalKeyFromBytes(b []byte) (*solana.PublicKey, error) {
	if b == nil {
		return nil, nil
	}
	pk, err := solana.PublicKeyFromBytes(b)
	if err != nil {
		return nil, err
	}
	return &pk, nil
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
