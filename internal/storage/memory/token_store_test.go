package memory

import (
	"context"
	"errors"
	"testing"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/solana"
	"solana-pool-search/internal/storage"
)

func pk(b byte) solana.PublicKey {
	var out solana.PublicKey
	out[0] = b
	return out
}

func TestTokenStore_InsertAndGet(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	token := &domain.Token{
		Mint:     pk(1),
		Name:     "Solana",
		Symbol:   "SOL",
		Decimals: 9,
		Supply:   1_000_000,
		Slot:     100,
	}

	if err := store.Insert(ctx, token); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByMint(ctx, pk(1))
	if err != nil {
		t.Fatalf("GetByMint failed: %v", err)
	}
	if got.Symbol != "SOL" {
		t.Errorf("Symbol mismatch: got %s, want SOL", got.Symbol)
	}
}

func TestTokenStore_GetMissing(t *testing.T) {
	store := NewTokenStore()

	_, err := store.GetByMint(context.Background(), pk(9))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTokenStore_DuplicateKey(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	token := &domain.Token{Mint: pk(1), Name: "A", Symbol: "A"}

	if err := store.Insert(ctx, token); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.Insert(ctx, token)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestTokenStore_SearchByText(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	tokens := []*domain.Token{
		{Mint: pk(1), Name: "Solana", Symbol: "WSOL"},
		{Mint: pk(2), Name: "Bonk", Symbol: "BONK"},
		{Mint: pk(3), Name: "Marisol", Symbol: "MARI"},
	}
	for _, tok := range tokens {
		if err := store.Insert(ctx, tok); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	// Case-insensitive substring match on either name or symbol.
	result, err := store.SearchByText(ctx, "sol", 10)
	if err != nil {
		t.Fatalf("SearchByText failed: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(result))
	}
	if result[0].Name != "Solana" || result[1].Name != "Marisol" {
		t.Errorf("unexpected matches: %s, %s", result[0].Name, result[1].Name)
	}
}

func TestTokenStore_SearchByText_Limit(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	for i := byte(1); i <= 5; i++ {
		tok := &domain.Token{Mint: pk(i), Name: "Token", Symbol: "TOK"}
		if err := store.Insert(ctx, tok); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	result, err := store.SearchByText(ctx, "tok", 3)
	if err != nil {
		t.Fatalf("SearchByText failed: %v", err)
	}
	if len(result) != 3 {
		t.Errorf("Expected limit of 3, got %d", len(result))
	}
}
