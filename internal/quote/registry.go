// Package quote holds the registry of recognized quote-side tokens.
// Pools are priced against one of these; a pool whose quote mint is not
// registered cannot be assembled into a search result.
package quote

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"solana-pool-search/internal/solana"
)

// Token describes a quote-side token with its display metadata.
type Token struct {
	Address  solana.PublicKey
	Name     string
	Symbol   string
	Decimals uint8
	Logo     string
}

// Well-known quote mints.
const (
	WrappedSOLAddress = "So11111111111111111111111111111111111111112"
	USDCAddress       = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

// Registry maps quote mint addresses to their metadata. It is built once
// at startup and read-only afterwards, so no locking is needed.
type Registry struct {
	tokens map[solana.PublicKey]Token
}

// NewRegistry returns a registry seeded with the default quote tokens
// (wrapped SOL and USDC).
func NewRegistry() *Registry {
	r := &Registry{tokens: make(map[solana.PublicKey]Token)}

	sol := mustKey(WrappedSOLAddress)
	usdc := mustKey(USDCAddress)

	r.tokens[sol] = Token{
		Address:  sol,
		Name:     "Solana",
		Symbol:   "SOL",
		Decimals: 9,
		Logo:     "https://assets.coingecko.com/coins/images/4128/large/solana.png?1640133422",
	}
	r.tokens[usdc] = Token{
		Address:  usdc,
		Name:     "USDC",
		Symbol:   "USDC",
		Decimals: 6,
		Logo:     "https://assets.coingecko.com/coins/images/6319/large/USD_Coin_icon.png?1547042194",
	}

	return r
}

// Lookup returns the quote token for the given mint.
func (r *Registry) Lookup(mint solana.PublicKey) (Token, bool) {
	t, ok := r.tokens[mint]
	return t, ok
}

// All returns every registered quote token.
func (r *Registry) All() []Token {
	out := make([]Token, 0, len(r.tokens))
	for _, t := range r.tokens {
		out = append(out, t)
	}
	return out
}

// tokenEntry is the YAML shape of one registry override entry.
type tokenEntry struct {
	Address  string `yaml:"address"`
	Name     string `yaml:"name"`
	Symbol   string `yaml:"symbol"`
	Decimals uint8  `yaml:"decimals"`
	Logo     string `yaml:"logo"`
}

type registryFile struct {
	QuoteTokens []tokenEntry `yaml:"quote_tokens"`
}

// LoadFile merges quote tokens from a YAML file into the registry.
// Entries with an address already present replace the default metadata.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read quote registry file: %w", err)
	}
	return r.load(data)
}

func (r *Registry) load(data []byte) error {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse quote registry yaml: %w", err)
	}

	for i, entry := range file.QuoteTokens {
		addr, err := solana.DecodePublicKey(entry.Address)
		if err != nil {
			return fmt.Errorf("quote registry entry %d: %w", i, err)
		}
		if entry.Symbol == "" {
			return fmt.Errorf("quote registry entry %d: missing symbol", i)
		}
		r.tokens[addr] = Token{
			Address:  addr,
			Name:     entry.Name,
			Symbol:   entry.Symbol,
			Decimals: entry.Decimals,
			Logo:     entry.Logo,
		}
	}

	return nil
}

func mustKey(s string) solana.PublicKey {
	pk, err := solana.DecodePublicKey(s)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in quote mint %q: %v", s, err))
	}
	return pk
}
