package memory

import (
	"context"
	"sort"
	"sync"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/solana"
	"solana-pool-search/internal/storage"
)

// swapKey is the composite key for swap deduplication.
type swapKey struct {
	Hash solana.Signature
	Pool solana.PublicKey
	Slot int64
}

// SwapStore is an in-memory implementation of storage.SwapStore.
type SwapStore struct {
	mu     sync.RWMutex
	data   []*domain.SwapEvent
	keys   map[swapKey]bool
	nextID int64
}

// NewSwapStore creates a new in-memory swap store.
func NewSwapStore() *SwapStore {
	return &SwapStore{
		keys:   make(map[swapKey]bool),
		nextID: 1,
	}
}

// Compile-time interface check.
var _ storage.SwapStore = (*SwapStore)(nil)

// Insert adds a new swap event. Returns ErrDuplicateKey if (hash, pool, slot) exists.
func (s *SwapStore) Insert(_ context.Context, e *domain.SwapEvent) error {
	if e == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertLocked(e)
}

// InsertBulk adds multiple swap events atomically. Fails entire batch on any duplicate.
func (s *SwapStore) InsertBulk(_ context.Context, events []*domain.SwapEvent) error {
	if len(events) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Check for duplicates (both existing and intra-batch)
	batchKeys := make(map[swapKey]bool)
	for _, e := range events {
		if e == nil {
			return storage.ErrInvalidInput
		}
		key := swapKey{Hash: e.Hash, Pool: e.Pool, Slot: e.Slot}
		if s.keys[key] || batchKeys[key] {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = true
	}

	for _, e := range events {
		if err := s.insertLocked(e); err != nil {
			return err
		}
	}

	return nil
}

// insertLocked stores a copy with an assigned insertion-order ID.
// Caller must hold the write lock.
func (s *SwapStore) insertLocked(e *domain.SwapEvent) error {
	key := swapKey{Hash: e.Hash, Pool: e.Pool, Slot: e.Slot}
	if s.keys[key] {
		return storage.ErrDuplicateKey
	}

	cp := *e
	cp.ID = s.nextID
	s.nextID++

	s.data = append(s.data, &cp)
	s.keys[key] = true

	return nil
}

// GetLatestByPool retrieves the most recent swap for a pool by
// (timestamp DESC, slot DESC, id DESC). Returns ErrNotFound when none.
func (s *SwapStore) GetLatestByPool(_ context.Context, pool solana.PublicKey) (*domain.SwapEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.SwapEvent
	for _, e := range s.data {
		if e.Pool != pool {
			continue
		}
		if latest == nil || swapLess(latest, e) {
			latest = e
		}
	}

	if latest == nil {
		return nil, storage.ErrNotFound
	}

	cp := *latest
	return &cp, nil
}

// GetByPoolTimeRange retrieves swaps for a pool within [start, end]
// (inclusive both ends), ordered by (timestamp ASC, slot ASC, id ASC).
func (s *SwapStore) GetByPoolTimeRange(_ context.Context, pool solana.PublicKey, start, end int64) ([]*domain.SwapEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.SwapEvent
	for _, e := range s.data {
		if e.Pool == pool && e.Timestamp >= start && e.Timestamp <= end {
			cp := *e
			result = append(result, &cp)
		}
	}

	sortSwaps(result)

	return result, nil
}

// GetLastBefore retrieves the most recent swap strictly before ts.
func (s *SwapStore) GetLastBefore(_ context.Context, pool solana.PublicKey, ts int64) (*domain.SwapEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.SwapEvent
	for _, e := range s.data {
		if e.Pool != pool || e.Timestamp >= ts {
			continue
		}
		if latest == nil || swapLess(latest, e) {
			latest = e
		}
	}

	if latest == nil {
		return nil, storage.ErrNotFound
	}

	cp := *latest
	return &cp, nil
}

// GetRecentByPool retrieves swaps within [start, end], newest first, capped at limit.
func (s *SwapStore) GetRecentByPool(_ context.Context, pool solana.PublicKey, start, end int64, limit int) ([]*domain.SwapEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.SwapEvent
	for _, e := range s.data {
		if e.Pool == pool && e.Timestamp >= start && e.Timestamp <= end {
			cp := *e
			result = append(result, &cp)
		}
	}

	sortSwaps(result)

	// Reverse to newest-first
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

// swapLess reports whether a orders before b by (timestamp, slot, id).
func swapLess(a, b *domain.SwapEvent) bool {
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	if a.Slot != b.Slot {
		return a.Slot < b.Slot
	}
	return a.ID < b.ID
}

// sortSwaps sorts events by (timestamp ASC, slot ASC, id ASC).
func sortSwaps(events []*domain.SwapEvent) {
	sort.Slice(events, func(i, j int) bool {
		return swapLess(events[i], events[j])
	})
}
