package memory

import (
	"context"
	"sort"
	"sync"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/solana"
	"solana-pool-search/internal/storage"
)

// candleKey is the composite key for candle deduplication.
type candleKey struct {
	Pool     solana.PublicKey
	BucketTs int64
}

// CandleStore is an in-memory implementation of storage.CandleStore.
type CandleStore struct {
	mu   sync.RWMutex
	data []*domain.Candle
	keys map[candleKey]bool
}

// NewCandleStore creates a new in-memory candle store.
func NewCandleStore() *CandleStore {
	return &CandleStore{
		keys: make(map[candleKey]bool),
	}
}

// Compile-time interface check.
var _ storage.CandleStore = (*CandleStore)(nil)

// InsertBulk adds multiple candles. Fails entire batch on duplicate (pool, bucket_ts).
func (s *CandleStore) InsertBulk(_ context.Context, candles []*domain.Candle) error {
	if len(candles) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[candleKey]bool)
	for _, c := range candles {
		if c == nil {
			return storage.ErrInvalidInput
		}
		key := candleKey{Pool: c.Pool, BucketTs: c.BucketTs}
		if s.keys[key] || batchKeys[key] {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = true
	}

	for _, c := range candles {
		cp := *c
		s.data = append(s.data, &cp)
		s.keys[candleKey{Pool: c.Pool, BucketTs: c.BucketTs}] = true
	}

	return nil
}

// GetByPoolTimeRange retrieves raw candles within [start, end], bucket_ts ASC.
func (s *CandleStore) GetByPoolTimeRange(_ context.Context, pool solana.PublicKey, start, end int64) ([]*domain.Candle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Candle
	for _, c := range s.data {
		if c.Pool == pool && c.BucketTs >= start && c.BucketTs <= end {
			cp := *c
			result = append(result, &cp)
		}
	}

	sortCandles(result)

	return result, nil
}

// GetOHLCV aggregates raw candles into intervalMs-wide buckets within [start, end].
func (s *CandleStore) GetOHLCV(ctx context.Context, pool solana.PublicKey, intervalMs, start, end int64) ([]*domain.Candle, error) {
	if intervalMs <= 0 {
		return nil, storage.ErrInvalidInput
	}

	raw, err := s.GetByPoolTimeRange(ctx, pool, start, end)
	if err != nil {
		return nil, err
	}

	buckets := make(map[int64]*domain.Candle)
	for _, c := range raw {
		bucket := c.BucketTs - (c.BucketTs % intervalMs)
		agg, ok := buckets[bucket]
		if !ok {
			cp := *c
			cp.BucketTs = bucket
			buckets[bucket] = &cp
			continue
		}

		// Raw candles arrive bucket_ts ASC, so open stays and close follows.
		agg.Close = c.Close
		if c.High > agg.High {
			agg.High = c.High
		}
		if c.Low < agg.Low {
			agg.Low = c.Low
		}
		agg.VolumeBase += c.VolumeBase
		agg.VolumeQuote += c.VolumeQuote
		agg.Trades += c.Trades
	}

	result := make([]*domain.Candle, 0, len(buckets))
	for _, c := range buckets {
		result = append(result, c)
	}

	sortCandles(result)

	return result, nil
}

// sortCandles sorts candles by bucket_ts ASC.
func sortCandles(candles []*domain.Candle) {
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].BucketTs < candles[j].BucketTs
	})
}
