package domain

import "solana-pool-search/internal/solana"

// Pool represents an indexed liquidity pool pairing a base and a quote token.
// Corresponds to the pools table in PostgreSQL.
// Invariant: TokenBase and TokenQuote reference distinct tokens; the quote is
// conventionally a reference asset (wrapped SOL or USDC).
type Pool struct {
	Address          solana.PublicKey // pool address, unique identity
	Factory          string           // originating DEX program
	PreFactory       *string          // pre-migration program (nullable)
	Reversed         bool             // base/quote order relative to underlying accounts
	TokenBase        solana.PublicKey // base token mint
	TokenQuote       solana.PublicKey // quote token mint
	PoolBaseAccount  solana.PublicKey // on-chain base reserve account
	PoolQuoteAccount solana.PublicKey // on-chain quote reserve account
	CurvePercentage  *float64         // bonding-curve progress (nullable)
	InitialBaseRes   float64          // base reserve at creation
	InitialQuoteRes  float64          // quote reserve at creation
	Slot             int64            // creation slot
	Creator          solana.PublicKey // pool creator
	Hash             solana.Signature // creating transaction signature
	Metadata         []byte           // free-form JSONB payload (nullable)
	CreatedAt        int64            // record creation timestamp (ms)
}
