package clickhouse

import (
	"context"
	"fmt"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/solana"
	"solana-pool-search/internal/storage"
)

// CandleStore implements storage.CandleStore using ClickHouse.
type CandleStore struct {
	conn *Conn
}

// NewCandleStore creates a new CandleStore.
func NewCandleStore(conn *Conn) *CandleStore {
	return &CandleStore{conn: conn}
}

// Compile-time interface check.
var _ storage.CandleStore = (*CandleStore)(nil)

// InsertBulk adds multiple candles. Fails entire batch on duplicate (pool, bucket_ts).
func (s *CandleStore) InsertBulk(ctx context.Context, candles []*domain.Candle) error {
	if len(candles) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		pool     solana.PublicKey
		bucketTs int64
	}
	seen := make(map[key]struct{})
	for _, c := range candles {
		k := key{c.Pool, c.BucketTs}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, c := range candles {
		exists, err := s.exists(ctx, c.Pool, c.BucketTs)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO candles (
			pool_address, bucket_ts, open, high, low, close,
			volume_base, volume_quote, trades
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, c := range candles {
		err = batch.Append(
			string(c.Pool.Bytes()), uint64(c.BucketTs),
			c.Open, c.High, c.Low, c.Close,
			c.VolumeBase, c.VolumeQuote, uint64(c.Trades),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByPoolTimeRange retrieves raw 1-second candles within [start, end] (inclusive).
func (s *CandleStore) GetByPoolTimeRange(ctx context.Context, pool solana.PublicKey, start, end int64) ([]*domain.Candle, error) {
	query := `
		SELECT pool_address, bucket_ts, open, high, low, close,
		       volume_base, volume_quote, trades
		FROM candles
		WHERE pool_address = ? AND bucket_ts >= ? AND bucket_ts <= ?
		ORDER BY bucket_ts ASC
	`

	rows, err := s.conn.Query(ctx, query, string(pool.Bytes()), uint64(start), uint64(end))
	if err != nil {
		return nil, fmt.Errorf("query by time range: %w", err)
	}
	defer rows.Close()

	return scanCandles(rows)
}

// GetOHLCV aggregates 1-second candles into intervalMs-wide buckets within
// [start, end], ordered by bucket ASC. Open and close follow bucket_ts order
// within each bucket.
func (s *CandleStore) GetOHLCV(ctx context.Context, pool solana.PublicKey, intervalMs, start, end int64) ([]*domain.Candle, error) {
	if intervalMs <= 0 {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT
			pool_address,
			intDiv(bucket_ts, ?) * ? AS bucket,
			argMin(open, bucket_ts) AS open,
			max(high) AS high,
			min(low) AS low,
			argMax(close, bucket_ts) AS close,
			sum(volume_base) AS volume_base,
			sum(volume_quote) AS volume_quote,
			sum(trades) AS trades
		FROM candles
		WHERE pool_address = ? AND bucket_ts >= ? AND bucket_ts <= ?
		GROUP BY pool_address, bucket
		ORDER BY bucket ASC
	`

	rows, err := s.conn.Query(ctx, query,
		uint64(intervalMs), uint64(intervalMs),
		string(pool.Bytes()), uint64(start), uint64(end),
	)
	if err != nil {
		return nil, fmt.Errorf("query ohlcv: %w", err)
	}
	defer rows.Close()

	return scanCandles(rows)
}

// exists checks if a candle with the given key exists.
func (s *CandleStore) exists(ctx context.Context, pool solana.PublicKey, bucketTs int64) (bool, error) {
	query := `
		SELECT count(*) FROM candles
		WHERE pool_address = ? AND bucket_ts = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, string(pool.Bytes()), uint64(bucketTs)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Rows interface for scanning
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanCandles scans multiple rows into a slice.
func scanCandles(rows chRows) ([]*domain.Candle, error) {
	var candles []*domain.Candle

	for rows.Next() {
		var c domain.Candle
		var pool string
		var bucketTs, trades uint64

		err := rows.Scan(
			&pool, &bucketTs, &c.Open, &c.High, &c.Low, &c.Close,
			&c.VolumeBase, &c.VolumeQuote, &trades,
		)
		if err != nil {
			return nil, fmt.Errorf("scan candle row: %w", err)
		}

		pk, err := solana.PublicKeyFromBytes([]byte(pool))
		if err != nil {
			return nil, fmt.Errorf("decode pool address: %w", err)
		}
		c.Pool = pk
		c.BucketTs = int64(bucketTs)
		c.Trades = int64(trades)
		candles = append(candles, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candle rows: %w", err)
	}

	return candles, nil
}
