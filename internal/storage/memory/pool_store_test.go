package memory

import (
	"context"
	"errors"
	"testing"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/storage"
)

func TestPoolStore_InsertAndGet(t *testing.T) {
	store := NewPoolStore()
	ctx := context.Background()

	pool := &domain.Pool{
		Address:    pk(10),
		Factory:    "pumpfun",
		TokenBase:  pk(1),
		TokenQuote: pk(2),
		Slot:       100,
	}

	if err := store.Insert(ctx, pool); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByAddress(ctx, pk(10))
	if err != nil {
		t.Fatalf("GetByAddress failed: %v", err)
	}
	if got.Factory != "pumpfun" {
		t.Errorf("Factory mismatch: got %s", got.Factory)
	}
}

func TestPoolStore_GetMissing(t *testing.T) {
	store := NewPoolStore()

	_, err := store.GetByAddress(context.Background(), pk(10))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPoolStore_DuplicateKey(t *testing.T) {
	store := NewPoolStore()
	ctx := context.Background()

	pool := &domain.Pool{Address: pk(10), TokenBase: pk(1), TokenQuote: pk(2)}

	if err := store.Insert(ctx, pool); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.Insert(ctx, pool)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestPoolStore_GetByBaseMint(t *testing.T) {
	store := NewPoolStore()
	ctx := context.Background()

	pools := []*domain.Pool{
		{Address: pk(10), TokenBase: pk(1), TokenQuote: pk(2), Slot: 300},
		{Address: pk(11), TokenBase: pk(1), TokenQuote: pk(3), Slot: 100},
		{Address: pk(12), TokenBase: pk(9), TokenQuote: pk(2), Slot: 200},
	}
	for _, p := range pools {
		if err := store.Insert(ctx, p); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	result, err := store.GetByBaseMint(ctx, pk(1))
	if err != nil {
		t.Fatalf("GetByBaseMint failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("Expected 2 pools, got %d", len(result))
	}
	// Creation slot order.
	if result[0].Slot != 100 || result[1].Slot != 300 {
		t.Errorf("expected slot ordering 100,300; got %d,%d", result[0].Slot, result[1].Slot)
	}
}
