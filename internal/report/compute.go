// Package report derives trading-activity summaries for a pool over
// trailing time windows from the raw swap log.
package report

import (
	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/solana"
)

// computeReport builds a window report from the in-window swaps (ascending
// order) and the last swap strictly before the window, if any. Only trade
// swaps (buys and sells) contribute; liquidity events are skipped.
func computeReport(swaps []*domain.SwapEvent, carry *domain.SwapEvent, windowStart int64) *domain.WindowReport {
	r := &domain.WindowReport{BucketStart: windowStart}

	buyers := make(map[solana.PublicKey]struct{})
	sellers := make(map[solana.PublicKey]struct{})
	traders := make(map[solana.PublicKey]struct{})

	var first, last *domain.SwapEvent
	for _, s := range swaps {
		if !s.Type.IsTrade() {
			continue
		}
		if first == nil {
			first = s
		}
		last = s

		traders[s.Creator] = struct{}{}
		switch s.Type {
		case domain.SwapTypeBuy:
			r.BuyVolume += s.QuoteAmount
			r.BuyCount++
			buyers[s.Creator] = struct{}{}
		case domain.SwapTypeSell:
			r.SellVolume += s.QuoteAmount
			r.SellCount++
			sellers[s.Creator] = struct{}{}
		}
	}

	r.BuyerCount = int64(len(buyers))
	r.SellerCount = int64(len(sellers))
	r.TraderCount = int64(len(traders))

	if first == nil {
		// No trades in the window: carry the last known price forward.
		if carry != nil {
			r.OpenPrice = carry.PriceSol
			r.ClosePrice = carry.PriceSol
		}
		return r
	}

	r.OpenPrice = first.PriceSol
	r.ClosePrice = last.PriceSol
	if r.OpenPrice != 0 {
		r.PriceChangePercent = (r.ClosePrice - r.OpenPrice) / r.OpenPrice * 100
	}

	return r
}
