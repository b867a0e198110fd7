// Package memory provides in-memory store implementations used by unit
// tests and the --use-memory server mode.
package memory

import (
	"context"
	"strings"
	"sync"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/solana"
	"solana-pool-search/internal/storage"
)

// TokenStore is an in-memory implementation of storage.TokenStore.
type TokenStore struct {
	mu     sync.RWMutex
	data   []*domain.Token
	byMint map[solana.PublicKey]*domain.Token
}

// NewTokenStore creates a new in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{
		byMint: make(map[solana.PublicKey]*domain.Token),
	}
}

// Compile-time interface check.
var _ storage.TokenStore = (*TokenStore)(nil)

// Insert adds a new token. Returns ErrDuplicateKey if the mint exists.
func (s *TokenStore) Insert(_ context.Context, t *domain.Token) error {
	if t == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byMint[t.Mint]; ok {
		return storage.ErrDuplicateKey
	}

	// Store a copy
	cp := *t
	s.data = append(s.data, &cp)
	s.byMint[t.Mint] = &cp

	return nil
}

// GetByMint retrieves a token by mint address. Returns ErrNotFound if not exists.
func (s *TokenStore) GetByMint(_ context.Context, mint solana.PublicKey) (*domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byMint[mint]
	if !ok {
		return nil, storage.ErrNotFound
	}

	cp := *t
	return &cp, nil
}

// SearchByText retrieves tokens whose name or symbol contains text,
// case-insensitive, in insertion order, capped at limit.
func (s *TokenStore) SearchByText(_ context.Context, text string, limit int) ([]*domain.Token, error) {
	if text == "" {
		return nil, storage.ErrInvalidInput
	}

	needle := strings.ToLower(text)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Token
	for _, t := range s.data {
		if limit > 0 && len(result) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(t.Name), needle) ||
			strings.Contains(strings.ToLower(t.Symbol), needle) {
			cp := *t
			result = append(result, &cp)
		}
	}

	return result, nil
}
