// Package search implements query resolution: classifying a raw query,
// probing the token and pool address spaces, and assembling result
// bundles with latest-price and window-report data.
package search

import (
	"strings"

	"solana-pool-search/internal/solana"
)

// QueryKind discriminates the classification outcome.
type QueryKind int

const (
	// KindEmpty short-circuits to an empty result set without touching storage.
	KindEmpty QueryKind = iota
	// KindAddress carries a decoded 32-byte public key.
	KindAddress
	// KindText carries a trimmed free-text query.
	KindText
)

// Query is the classified form of a raw search string.
type Query struct {
	Kind    QueryKind
	Address solana.PublicKey // set when Kind == KindAddress
	Text    string           // trimmed text, set when Kind == KindText
	Raw     string           // original input, kept for logging
}

// Classify decides whether a search string is an address or free text.
// Addresses and names occupy disjoint syntactic spaces (strict base58,
// fixed decoded width), so the classification is exact.
func Classify(raw string) Query {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Query{Kind: KindEmpty, Raw: raw}
	}

	if pk, err := solana.DecodePublicKey(trimmed); err == nil {
		return Query{Kind: KindAddress, Address: pk, Raw: raw}
	}

	return Query{Kind: KindText, Text: trimmed, Raw: raw}
}
