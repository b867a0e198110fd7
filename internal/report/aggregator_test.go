package report

import (
	"context"
	"testing"
	"time"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/storage/memory"
)

func TestAggregator_WindowEdges(t *testing.T) {
	store := memory.NewSwapStore()
	ctx := context.Background()
	pool := trader(0x10)

	now := int64(24 * time.Hour / time.Millisecond)
	windowStart := now - domain.Window1h.Duration.Milliseconds()

	// One swap exactly on each edge of the 1h window, one just outside.
	insert := func(hash byte, ts int64, price float64) {
		t.Helper()
		s := swap(hash, domain.SwapTypeBuy, ts, price, 1)
		s.Pool = pool
		s.Hash = [64]byte{hash}
		if err := store.Insert(ctx, s); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	insert(1, windowStart-1, 0.5)
	insert(2, windowStart, 1.0)
	insert(3, now, 2.0)

	agg := NewAggregator(store)
	r, err := agg.Report(ctx, pool, domain.Window1h, now)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	// Both edges inclusive: the edge swaps are in, the one before is not.
	if r.BuyCount != 2 {
		t.Errorf("buy count mismatch: got %d, want 2", r.BuyCount)
	}
	if r.OpenPrice != 1.0 || r.ClosePrice != 2.0 {
		t.Errorf("price mismatch: open=%f close=%f", r.OpenPrice, r.ClosePrice)
	}
}

func TestAggregator_TwoSwapScenario(t *testing.T) {
	store := memory.NewSwapStore()
	ctx := context.Background()
	pool := trader(0x10)

	now := int64(48 * time.Hour / time.Millisecond)
	twoHoursAgo := now - (2 * time.Hour).Milliseconds()

	older := swap(1, domain.SwapTypeBuy, twoHoursAgo, 1.0, 10)
	older.Pool = pool
	older.Hash = [64]byte{1}
	newer := swap(2, domain.SwapTypeBuy, now, 1.1, 10)
	newer.Pool = pool
	newer.Hash = [64]byte{2}
	for _, s := range []*domain.SwapEvent{older, newer} {
		if err := store.Insert(ctx, s); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	agg := NewAggregator(store)

	// 1h window holds only the newer swap: flat price.
	r1h, err := agg.Report(ctx, pool, domain.Window1h, now)
	if err != nil {
		t.Fatalf("Report 1h failed: %v", err)
	}
	if r1h.OpenPrice != 1.1 || r1h.ClosePrice != 1.1 {
		t.Errorf("1h price mismatch: open=%f close=%f", r1h.OpenPrice, r1h.ClosePrice)
	}
	if r1h.PriceChangePercent != 0 {
		t.Errorf("1h change mismatch: got %f, want 0", r1h.PriceChangePercent)
	}

	// 6h window holds both: 10 percent up.
	r6h, err := agg.Report(ctx, pool, domain.Window6h, now)
	if err != nil {
		t.Fatalf("Report 6h failed: %v", err)
	}
	if r6h.OpenPrice != 1.0 || r6h.ClosePrice != 1.1 {
		t.Errorf("6h price mismatch: open=%f close=%f", r6h.OpenPrice, r6h.ClosePrice)
	}
	if r6h.PriceChangePercent < 9.99 || r6h.PriceChangePercent > 10.01 {
		t.Errorf("6h change mismatch: got %f, want ~10", r6h.PriceChangePercent)
	}
}

func TestAggregator_CarryForwardFromBeforeWindow(t *testing.T) {
	store := memory.NewSwapStore()
	ctx := context.Background()
	pool := trader(0x10)

	now := int64(48 * time.Hour / time.Millisecond)
	old := swap(1, domain.SwapTypeSell, now-(10*time.Hour).Milliseconds(), 3.5, 10)
	old.Pool = pool
	old.Hash = [64]byte{1}
	if err := store.Insert(ctx, old); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	agg := NewAggregator(store)
	r, err := agg.Report(ctx, pool, domain.Window5m, now)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if r.BuyCount != 0 || r.SellCount != 0 {
		t.Errorf("expected empty window, got %+v", r)
	}
	if r.OpenPrice != 3.5 || r.ClosePrice != 3.5 {
		t.Errorf("expected carried price 3.5, got open=%f close=%f", r.OpenPrice, r.ClosePrice)
	}
}

func TestAggregator_EmptyPool(t *testing.T) {
	store := memory.NewSwapStore()
	agg := NewAggregator(store)

	r, err := agg.Report(context.Background(), trader(0x10), domain.Window24h, int64(48*time.Hour/time.Millisecond))
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if r.OpenPrice != 0 || r.ClosePrice != 0 || r.TraderCount != 0 {
		t.Errorf("expected zero report, got %+v", r)
	}
}

func TestAggregator_MultiReport(t *testing.T) {
	store := memory.NewSwapStore()
	ctx := context.Background()
	pool := trader(0x10)

	now := int64(48 * time.Hour / time.Millisecond)
	s := swap(1, domain.SwapTypeBuy, now-1000, 2.0, 10)
	s.Pool = pool
	s.Hash = [64]byte{1}
	if err := store.Insert(ctx, s); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	agg := NewAggregator(store)
	reports, err := agg.MultiReport(ctx, pool, now)
	if err != nil {
		t.Fatalf("MultiReport failed: %v", err)
	}

	if len(reports) != len(domain.Windows) {
		t.Fatalf("expected %d reports, got %d", len(domain.Windows), len(reports))
	}
	for _, w := range domain.Windows {
		r, ok := reports[w.Label]
		if !ok {
			t.Fatalf("missing report for window %s", w.Label)
		}
		if r.BuyCount != 1 {
			t.Errorf("window %s buy count mismatch: got %d, want 1", w.Label, r.BuyCount)
		}
		if r.BucketStart != now-w.Duration.Milliseconds() {
			t.Errorf("window %s bucket start mismatch", w.Label)
		}
	}
}
