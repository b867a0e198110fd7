package domain

import "time"

// Window is a named trailing time range for trading-activity aggregation.
type Window struct {
	Label    string
	Duration time.Duration
}

// Canonical report windows. Label doubles as the JSON key suffix in
// multi-window responses.
var (
	Window5m  = Window{Label: "5m", Duration: 5 * time.Minute}
	Window1h  = Window{Label: "1h", Duration: time.Hour}
	Window6h  = Window{Label: "6h", Duration: 6 * time.Hour}
	Window24h = Window{Label: "24h", Duration: 24 * time.Hour}
)

// Windows lists all canonical windows in ascending duration order.
var Windows = []Window{Window5m, Window1h, Window6h, Window24h}

// WindowReport is a derived, non-persistent trading-activity summary for
// one (pool, window) pair. A pool with no trades in the window yields a
// zero-valued report with carried-forward prices, not an error.
type WindowReport struct {
	BucketStart int64 // window start (now - duration), Unix milliseconds

	BuyVolume  float64 // quote volume of buys
	SellVolume float64 // quote volume of sells
	BuyCount   int64
	SellCount  int64

	BuyerCount  int64 // distinct buying wallets
	SellerCount int64 // distinct selling wallets
	TraderCount int64 // distinct wallets across both sides (set union)

	OpenPrice  float64 // price at window start, carried forward when no in-window trade
	ClosePrice float64 // price at "now"

	// (close-open)/open*100; zero when the window has no trades or open is zero.
	PriceChangePercent float64
}
