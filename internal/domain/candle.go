package domain

import "solana-pool-search/internal/solana"

// Candle is a fixed-granularity OHLC aggregate bucket for one pool.
// The raw substrate is 1-second buckets; coarser series are aggregated
// on read. Corresponds to the candles table in ClickHouse.
type Candle struct {
	Pool        solana.PublicKey // pool address
	BucketTs    int64            // bucket start, Unix milliseconds
	Open        float64
	High        float64
	Low         float64
	Close       float64
	VolumeBase  float64 // base token volume in the bucket
	VolumeQuote float64 // quote token volume in the bucket
	Trades      int64   // trade count in the bucket
}
