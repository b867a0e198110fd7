package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/observability"
	"solana-pool-search/internal/quote"
	"solana-pool-search/internal/report"
)

// Result is one assembled search result. Exactly one of the two shapes is
// populated: token-only (Pool and everything below it nil) or pool-bundle.
type Result struct {
	Token *domain.Token
	Quote *quote.Token
	Pool  *domain.Pool

	// Latest-swap-derived snapshot. PriceSol is nil and reserves fall
	// back to the pool's initial reserves when no trade exists yet.
	PriceSol     *float64
	BaseReserve  float64
	QuoteReserve float64

	// Report24h duplicates Reports["24h"] for single-report consumers.
	Report24h *domain.WindowReport
	Reports   map[string]*domain.WindowReport
}

// Assembler joins lookup hits with their latest-swap and window-report
// sub-lookups. It is the only place those are merged for one result.
type Assembler struct {
	resolver *LatestSwapResolver
	reports  *report.Aggregator
}

// NewAssembler creates a new Assembler.
func NewAssembler(resolver *LatestSwapResolver, reports *report.Aggregator) *Assembler {
	return &Assembler{resolver: resolver, reports: reports}
}

// Assemble enriches one hit. The latest-swap resolution and the four
// window computations have no data dependency and run concurrently.
func (a *Assembler) Assemble(ctx context.Context, hit Hit, now int64) (*Result, error) {
	if hit.Pool == nil {
		return &Result{Token: hit.Token}, nil
	}

	res := &Result{
		Token: hit.Token,
		Quote: hit.Quote,
		Pool:  hit.Pool,
	}

	var (
		latest  *domain.SwapEvent
		reports map[string]*domain.WindowReport
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		latest, err = a.resolver.Resolve(ctx, hit.Pool.Address)
		return err
	})
	g.Go(func() error {
		var err error
		reports, err = a.reports.MultiReport(ctx, hit.Pool.Address, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if latest != nil {
		price := latest.PriceSol
		res.PriceSol = &price
		res.BaseReserve = latest.BaseReserve
		res.QuoteReserve = latest.QuoteReserve
	} else {
		// Pre-trade pool: null price, reserves from creation snapshot.
		res.BaseReserve = hit.Pool.InitialBaseRes
		res.QuoteReserve = hit.Pool.InitialQuoteRes
		observability.RecordDegradedResult()
	}

	res.Reports = reports
	res.Report24h = reports[domain.Window24h.Label]

	return res, nil
}
