package memory

import (
	"context"
	"sort"
	"sync"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/solana"
	"solana-pool-search/internal/storage"
)

// PoolStore is an in-memory implementation of storage.PoolStore.
type PoolStore struct {
	mu        sync.RWMutex
	byAddress map[solana.PublicKey]*domain.Pool
}

// NewPoolStore creates a new in-memory pool store.
func NewPoolStore() *PoolStore {
	return &PoolStore{
		byAddress: make(map[solana.PublicKey]*domain.Pool),
	}
}

// Compile-time interface check.
var _ storage.PoolStore = (*PoolStore)(nil)

// Insert adds a new pool. Returns ErrDuplicateKey if the address exists.
func (s *PoolStore) Insert(_ context.Context, p *domain.Pool) error {
	if p == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byAddress[p.Address]; ok {
		return storage.ErrDuplicateKey
	}

	cp := *p
	s.byAddress[p.Address] = &cp

	return nil
}

// GetByAddress retrieves a pool by its address. Returns ErrNotFound if not exists.
func (s *PoolStore) GetByAddress(_ context.Context, address solana.PublicKey) (*domain.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byAddress[address]
	if !ok {
		return nil, storage.ErrNotFound
	}

	cp := *p
	return &cp, nil
}

// GetByBaseMint retrieves all pools with the given base mint, in creation
// slot order.
func (s *PoolStore) GetByBaseMint(_ context.Context, mint solana.PublicKey) ([]*domain.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Pool
	for _, p := range s.byAddress {
		if p.TokenBase == mint {
			cp := *p
			result = append(result, &cp)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Slot != result[j].Slot {
			return result[i].Slot < result[j].Slot
		}
		return result[i].Address.String() < result[j].Address.String()
	})

	return result, nil
}
