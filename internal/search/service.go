package search

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"solana-pool-search/internal/observability"
)

// Service resolves a raw query string into assembled search results.
type Service struct {
	lookup    *Lookup
	assembler *Assembler
	logger    *log.Logger
}

// NewService creates a new search Service.
func NewService(lookup *Lookup, assembler *Assembler, logger *log.Logger) *Service {
	return &Service{lookup: lookup, assembler: assembler, logger: logger}
}

// Search classifies the query, probes storage and assembles one result
// per hit, preserving probe evaluation order. An empty query returns an
// empty list without any storage lookup.
func (s *Service) Search(ctx context.Context, raw string) ([]*Result, error) {
	started := time.Now()
	q := Classify(raw)

	var hits []Hit
	var err error

	switch q.Kind {
	case KindEmpty:
		observability.RecordSearch("empty", time.Since(started).Seconds(), 0)
		return []*Result{}, nil
	case KindAddress:
		if !q.Address.OnCurve() {
			// Program-derived addresses (pools, vaults) are off-curve;
			// wallet and mint keys are on-curve. Tracked for visibility only.
			observability.RecordOffCurveAddress()
		}
		hits, err = s.lookup.ByAddress(ctx, q.Address)
	case KindText:
		hits, err = s.lookup.ByText(ctx, q.Text)
	}
	if err != nil {
		return nil, err
	}

	// "now" is captured once so all windows of all results share the
	// same reference instant.
	now := started.UnixMilli()

	results := make([]*Result, len(hits))
	g, ctx := errgroup.WithContext(ctx)
	for i, hit := range hits {
		g.Go(func() error {
			r, err := s.assembler.Assemble(ctx, hit, now)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	observability.RecordSearch(kindLabel(q.Kind), time.Since(started).Seconds(), len(results))
	return results, nil
}

func kindLabel(k QueryKind) string {
	switch k {
	case KindAddress:
		return "address"
	case KindText:
		return "text"
	default:
		return "empty"
	}
}
