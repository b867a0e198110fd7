package cache

import (
	"context"
	"errors"
	"testing"

	"solana-pool-search/internal/api/types"
)

func TestCache_DisabledIsNoOp(t *testing.T) {
	c := New(Config{Enabled: false})
	ctx := context.Background()

	if _, err := c.GetSearch(ctx, "bonk"); !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
	if err := c.SetSearch(ctx, "bonk", []types.SearchResult{}); !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("close disabled cache: %v", err)
	}
}

func TestCache_NilReceiverIsSafe(t *testing.T) {
	var c *Cache

	if _, err := c.GetSearch(context.Background(), "x"); !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("close nil cache: %v", err)
	}
}
