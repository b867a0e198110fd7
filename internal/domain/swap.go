package domain

import "solana-pool-search/internal/solana"

// SwapType classifies a pool event.
type SwapType string

// Swap type values as stored in the swaps table.
const (
	SwapTypeBuy     SwapType = "BUY"
	SwapTypeSell    SwapType = "SELL"
	SwapTypeAdd     SwapType = "ADD"    // liquidity add
	SwapTypeRemove  SwapType = "REMOVE" // liquidity remove
	SwapTypeUnknown SwapType = "UNKNOWN"
)

// ParseSwapType maps a stored string to a SwapType, defaulting to UNKNOWN.
func ParseSwapType(s string) SwapType {
	switch SwapType(s) {
	case SwapTypeBuy, SwapTypeSell, SwapTypeAdd, SwapTypeRemove:
		return SwapType(s)
	default:
		return SwapTypeUnknown
	}
}

// IsTrade reports whether the event is a trade (buy or sell) rather than
// a liquidity change.
func (t SwapType) IsTrade() bool {
	return t == SwapTypeBuy || t == SwapTypeSell
}

// SwapEvent is one event against a pool in the append-only swaps log.
// Ordered by (Timestamp, Slot, ID); never mutated within the query horizon.
type SwapEvent struct {
	ID           int64            // BIGSERIAL, insertion order tie-break
	Pool         solana.PublicKey // pool address
	Creator      solana.PublicKey // trader wallet
	Type         SwapType
	Hash         solana.Signature // transaction signature
	BaseAmount   float64          // base token amount moved
	QuoteAmount  float64          // quote token amount moved
	BaseReserve  float64          // base reserve after the event
	QuoteReserve float64          // quote reserve after the event
	PriceSol     float64          // resulting base price in the reference asset
	Slot         int64            // Solana slot number
	Timestamp    int64            // Unix timestamp in milliseconds
}
