package search

import (
	"strings"
	"testing"

	"solana-pool-search/internal/quote"
	"solana-pool-search/internal/solana"
)

func TestClassify_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		q := Classify(raw)
		if q.Kind != KindEmpty {
			t.Errorf("Classify(%q): got kind %d, want KindEmpty", raw, q.Kind)
		}
	}
}

func TestClassify_Address(t *testing.T) {
	q := Classify(quote.WrappedSOLAddress)
	if q.Kind != KindAddress {
		t.Fatalf("expected KindAddress, got %d", q.Kind)
	}
	if q.Address.String() != quote.WrappedSOLAddress {
		t.Errorf("address round-trip mismatch: %s", q.Address)
	}
}

func TestClassify_AddressWithWhitespace(t *testing.T) {
	q := Classify("  " + quote.WrappedSOLAddress + "\n")
	if q.Kind != KindAddress {
		t.Errorf("expected KindAddress after trimming, got %d", q.Kind)
	}
}

func TestClassify_Text(t *testing.T) {
	cases := []string{
		"bonk",
		"SOL",                  // valid base58 chars but too short
		"0OIl",                 // characters outside the base58 alphabet
		strings.Repeat("z", 50), // decodes longer than 32 bytes
	}
	for _, raw := range cases {
		q := Classify(raw)
		if q.Kind != KindText {
			t.Errorf("Classify(%q): got kind %d, want KindText", raw, q.Kind)
		}
		if q.Text != strings.TrimSpace(raw) {
			t.Errorf("Classify(%q): text not trimmed: %q", raw, q.Text)
		}
	}
}

func TestClassify_SignatureWidthIsText(t *testing.T) {
	// A base58 string decoding to 64 bytes is not an address.
	var sig solana.Signature
	sig[0] = 0x01
	q := Classify(sig.String())
	if q.Kind != KindText {
		t.Errorf("expected KindText for 64-byte payload, got %d", q.Kind)
	}
}
