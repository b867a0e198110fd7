// Package domain defines the core market-data entities: tokens, pools,
// swaps, candles and window reports. Storage and transport layers map
// these types to their own representations.
package domain

import "solana-pool-search/internal/solana"

// Token represents an indexed fungible token.
// Corresponds to the tokens table in PostgreSQL.
type Token struct {
	Mint            solana.PublicKey  // mint address, unique identity
	Name            string            // descriptive name
	Symbol          string            // ticker symbol
	Decimals        int               // SMALLINT in storage
	URI             string            // off-chain metadata URI
	Image           *string           // image URL (nullable)
	Twitter         *string           // social links (nullable)
	Telegram        *string
	Website         *string
	MintAuthority   *solana.PublicKey // nullable, revoked mints have none
	FreezeAuthority *solana.PublicKey // nullable
	Supply          float64           // total supply in base units
	Slot            int64             // creation slot
	Hash            solana.Signature  // creating transaction signature
	ProgramID       solana.PublicKey  // owning token program
	CreatedAt       int64             // record creation timestamp (ms)
}
