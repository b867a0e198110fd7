// Package types defines the JSON response shapes of the HTTP API and
// their mapping from domain values.
package types

import (
	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/quote"
	"solana-pool-search/internal/search"
)

// SearchResult is one element of the search response. Every field is
// independently nullable; token-only results carry base_token_data alone.
type SearchResult struct {
	BaseTokenData   *TokenData       `json:"base_token_data"`
	QuoteTokenData  *QuoteTokenData  `json:"quote_token_data"`
	PoolData        *PoolData        `json:"pool_data"`
	PoolReport      *PoolReport      `json:"pool_report"`
	MultiPoolReport *MultiPoolReport `json:"multi_pool_report"`
}

// TokenData mirrors the stored token record with base58 addresses.
type TokenData struct {
	MintAddress     string  `json:"mint_address"`
	Name            string  `json:"name"`
	Symbol          string  `json:"symbol"`
	Decimals        uint8   `json:"decimals"`
	URI             string  `json:"uri"`
	Image           *string `json:"image"`
	Twitter         *string `json:"twitter"`
	Telegram        *string `json:"telegram"`
	Website         *string `json:"website"`
	MintAuthority   *string `json:"mint_authority"`
	FreezeAuthority *string `json:"freeze_authority"`
	Supply          float64 `json:"supply"`
	Slot            int64   `json:"slot"`
	ProgramID       string  `json:"program_id"`
	CreatedAt       int64   `json:"created_at"`
}

// QuoteTokenData is the quote-side display metadata.
type QuoteTokenData struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	Logo     string `json:"logo"`
}

// PoolData carries the pool record augmented with the latest-swap-derived
// price and reserves. PriceSol is null for a pre-trade pool.
type PoolData struct {
	PoolAddress     string   `json:"pool_address"`
	Factory         string   `json:"factory"`
	PreFactory      *string  `json:"pre_factory"`
	Reversed        bool     `json:"reversed"`
	CurvePercentage *float64 `json:"curve_percentage"`
	PriceSol        *float64 `json:"price_sol"`
	BaseReserve     float64  `json:"base_reserve"`
	QuoteReserve    float64  `json:"quote_reserve"`
	Slot            int64    `json:"slot"`
	CreatedAt       int64    `json:"created_at"`
}

// PoolReport is one trading-activity window summary.
type PoolReport struct {
	BucketStart        int64   `json:"bucket_start"`
	BuyVolume          float64 `json:"buy_volume"`
	SellVolume         float64 `json:"sell_volume"`
	BuyCount           int64   `json:"buy_count"`
	SellCount          int64   `json:"sell_count"`
	UniqueBuyers       int64   `json:"unique_buyers"`
	UniqueSellers      int64   `json:"unique_sellers"`
	UniqueTraders      int64   `json:"unique_traders"`
	OpenPrice          float64 `json:"open_price"`
	ClosePrice         float64 `json:"close_price"`
	PriceChangePercent float64 `json:"price_change_percent"`
}

// MultiPoolReport bundles all four canonical windows.
type MultiPoolReport struct {
	Report5m  *PoolReport `json:"report_5m"`
	Report1h  *PoolReport `json:"report_1h"`
	Report6h  *PoolReport `json:"report_6h"`
	Report24h *PoolReport `json:"report_24h"`
}

// Transaction is the last-transaction response shape.
type Transaction struct {
	PoolAddress  string          `json:"pool_address"`
	Creator      string          `json:"creator"`
	SwapType     domain.SwapType `json:"swap_type"`
	Hash         string          `json:"hash"`
	BaseAmount   float64         `json:"base_amount"`
	QuoteAmount  float64         `json:"quote_amount"`
	BaseReserve  float64         `json:"base_reserve"`
	QuoteReserve float64         `json:"quote_reserve"`
	PriceSol     float64         `json:"price_sol"`
	Slot         int64           `json:"slot"`
	Timestamp    int64           `json:"timestamp"`
}

// Candle is one OHLCV bucket.
type Candle struct {
	BucketTs    int64   `json:"bucket_ts"`
	Open        float64 `json:"open"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Close       float64 `json:"close"`
	VolumeBase  float64 `json:"volume_base"`
	VolumeQuote float64 `json:"volume_quote"`
	Trades      int64   `json:"trades"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FromResult maps an assembled search result onto the wire shape.
func FromResult(r *search.Result) SearchResult {
	out := SearchResult{BaseTokenData: fromToken(r.Token)}

	if r.Pool == nil {
		return out
	}

	out.QuoteTokenData = fromQuote(r.Quote)
	out.PoolData = &PoolData{
		PoolAddress:     r.Pool.Address.String(),
		Factory:         r.Pool.Factory,
		PreFactory:      r.Pool.PreFactory,
		Reversed:        r.Pool.Reversed,
		CurvePercentage: r.Pool.CurvePercentage,
		PriceSol:        r.PriceSol,
		BaseReserve:     r.BaseReserve,
		QuoteReserve:    r.QuoteReserve,
		Slot:            r.Pool.Slot,
		CreatedAt:       r.Pool.CreatedAt,
	}
	out.PoolReport = FromReport(r.Report24h)
	out.MultiPoolReport = &MultiPoolReport{
		Report5m:  FromReport(r.Reports[domain.Window5m.Label]),
		Report1h:  FromReport(r.Reports[domain.Window1h.Label]),
		Report6h:  FromReport(r.Reports[domain.Window6h.Label]),
		Report24h: FromReport(r.Reports[domain.Window24h.Label]),
	}

	return out
}

// FromResults maps a result list, always yielding a non-nil slice so the
// response encodes as [] rather than null.
func FromResults(results []*search.Result) []SearchResult {
	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, FromResult(r))
	}
	return out
}

// FromReport maps a window report; nil passes through.
func FromReport(r *domain.WindowReport) *PoolReport {
	if r == nil {
		return nil
	}
	return &PoolReport{
		BucketStart:        r.BucketStart,
		BuyVolume:          r.BuyVolume,
		SellVolume:         r.SellVolume,
		BuyCount:           r.BuyCount,
		SellCount:          r.SellCount,
		UniqueBuyers:       r.BuyerCount,
		UniqueSellers:      r.SellerCount,
		UniqueTraders:      r.TraderCount,
		OpenPrice:          r.OpenPrice,
		ClosePrice:         r.ClosePrice,
		PriceChangePercent: r.PriceChangePercent,
	}
}

// FromSwap maps a swap event onto the transaction shape.
func FromSwap(s *domain.SwapEvent) Transaction {
	return Transaction{
		PoolAddress:  s.Pool.String(),
		Creator:      s.Creator.String(),
		SwapType:     s.Type,
		Hash:         s.Hash.String(),
		BaseAmount:   s.BaseAmount,
		QuoteAmount:  s.QuoteAmount,
		BaseReserve:  s.BaseReserve,
		QuoteReserve: s.QuoteReserve,
		PriceSol:     s.PriceSol,
		Slot:         s.Slot,
		Timestamp:    s.Timestamp,
	}
}

// FromCandle maps a candle bucket.
func FromCandle(c *domain.Candle) Candle {
	return Candle{
		BucketTs:    c.BucketTs,
		Open:        c.Open,
		High:        c.High,
		Low:         c.Low,
		Close:       c.Close,
		VolumeBase:  c.VolumeBase,
		VolumeQuote: c.VolumeQuote,
		Trades:      c.Trades,
	}
}

func fromToken(t *domain.Token) *TokenData {
	if t == nil {
		return nil
	}
	td := &TokenData{
		MintAddress: t.Mint.String(),
		Name:        t.Name,
		Symbol:      t.Symbol,
		Decimals:    uint8(t.Decimals),
		URI:         t.URI,
		Image:       t.Image,
		Twitter:     t.Twitter,
		Telegram:    t.Telegram,
		Website:     t.Website,
		Supply:      t.Supply,
		Slot:        t.Slot,
		ProgramID:   t.ProgramID.String(),
		CreatedAt:   t.CreatedAt,
	}
	if t.MintAuthority != nil {
		s := t.MintAuthority.String()
		td.MintAuthority = &s
	}
	if t.FreezeAuthority != nil {
		s := t.FreezeAuthority.String()
		td.FreezeAuthority = &s
	}
	return td
}

func fromQuote(q *quote.Token) *QuoteTokenData {
	if q == nil {
		return nil
	}
	return &QuoteTokenData{
		Address:  q.Address.String(),
		Name:     q.Name,
		Symbol:   q.Symbol,
		Decimals: q.Decimals,
		Logo:     q.Logo,
	}
}
