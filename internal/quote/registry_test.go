package quote

import (
	"testing"

	"solana-pool-search/internal/solana"
)

func TestNewRegistry_Defaults(t *testing.T) {
	r := NewRegistry()

	sol := mustKey(WrappedSOLAddress)
	got, ok := r.Lookup(sol)
	if !ok {
		t.Fatal("expected wrapped SOL to be registered")
	}
	if got.Symbol != "SOL" || got.Decimals != 9 {
		t.Errorf("unexpected SOL metadata: %+v", got)
	}

	usdc := mustKey(USDCAddress)
	got, ok = r.Lookup(usdc)
	if !ok {
		t.Fatal("expected USDC to be registered")
	}
	if got.Symbol != "USDC" || got.Decimals != 6 {
		t.Errorf("unexpected USDC metadata: %+v", got)
	}

	if len(r.All()) != 2 {
		t.Errorf("expected 2 default tokens, got %d", len(r.All()))
	}
}

func TestRegistry_Lookup_Unknown(t *testing.T) {
	r := NewRegistry()

	var unknown solana.PublicKey
	unknown[0] = 0x42
	if _, ok := r.Lookup(unknown); ok {
		t.Error("expected lookup miss for unregistered mint")
	}
}

func TestRegistry_Load(t *testing.T) {
	r := NewRegistry()

	data := []byte(`
quote_tokens:
  - address: Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB
    name: USDT
    symbol: USDT
    decimals: 6
  - address: So11111111111111111111111111111111111111112
    name: Wrapped SOL
    symbol: wSOL
    decimals: 9
`)
	if err := r.load(data); err != nil {
		t.Fatalf("load: %v", err)
	}

	usdt := mustKey("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB")
	got, ok := r.Lookup(usdt)
	if !ok {
		t.Fatal("expected USDT to be registered after load")
	}
	if got.Symbol != "USDT" {
		t.Errorf("expected symbol USDT, got %q", got.Symbol)
	}

	// Overrides replace the default metadata.
	got, _ = r.Lookup(mustKey(WrappedSOLAddress))
	if got.Symbol != "wSOL" {
		t.Errorf("expected override symbol wSOL, got %q", got.Symbol)
	}
}

func TestRegistry_Load_Invalid(t *testing.T) {
	r := NewRegistry()

	if err := r.load([]byte("quote_tokens:\n  - address: not-base58!\n    symbol: X\n")); err == nil {
		t.Error("expected error for invalid address")
	}
	if err := r.load([]byte("quote_tokens: [")); err == nil {
		t.Error("expected error for malformed yaml")
	}
	if err := r.load([]byte("quote_tokens:\n  - address: So11111111111111111111111111111111111111112\n")); err == nil {
		t.Error("expected error for missing symbol")
	}
}
