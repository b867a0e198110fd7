// Package solana provides base58 codecs for Solana public keys and
// transaction signatures. Pure functions, no I/O.
package solana

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// PublicKeySize is the byte width of a Solana public key.
const PublicKeySize = 32

// SignatureSize is the byte width of a Solana transaction signature.
const SignatureSize = 64

// ErrInvalidEncoding is returned when a string is not a valid base58
// encoding of a value with the expected width.
var ErrInvalidEncoding = errors.New("invalid base58 encoding")

// PublicKey is a 32-byte Solana account address.
type PublicKey [PublicKeySize]byte

// DecodePublicKey decodes a base58 string into a PublicKey.
// Returns ErrInvalidEncoding for non-base58 input or wrong decoded length.
func DecodePublicKey(s string) (PublicKey, error) {
	var pk PublicKey

	raw, err := base58.Decode(s)
	if err != nil {
		return pk, fmt.Errorf("%w: %s", ErrInvalidEncoding, err)
	}
	if len(raw) != PublicKeySize {
		return pk, fmt.Errorf("%w: decoded length %d, want %d", ErrInvalidEncoding, len(raw), PublicKeySize)
	}

	copy(pk[:], raw)
	return pk, nil
}

// PublicKeyFromBytes converts a raw byte slice into a PublicKey.
// Returns ErrInvalidEncoding if the slice is not exactly 32 bytes.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeySize {
		return pk, fmt.Errorf("%w: byte length %d, want %d", ErrInvalidEncoding, len(b), PublicKeySize)
	}
	copy(pk[:], b)
	return pk, nil
}

// String returns the base58 encoding of the key.
func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

// Bytes returns the raw 32 bytes of the key.
func (pk PublicKey) Bytes() []byte {
	out := make([]byte, PublicKeySize)
	copy(out, pk[:])
	return out
}

// IsZero reports whether the key is all zeroes.
func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

// OnCurve reports whether the key is a valid ed25519 curve point.
// Wallet addresses are on-curve; program derived addresses are not.
func (pk PublicKey) OnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(pk[:])
	return err == nil
}

// Signature is a 64-byte Solana transaction signature.
type Signature [SignatureSize]byte

// DecodeSignature decodes a base58 string into a Signature.
func DecodeSignature(s string) (Signature, error) {
	var sig Signature

	raw, err := base58.Decode(s)
	if err != nil {
		return sig, fmt.Errorf("%w: %s", ErrInvalidEncoding, err)
	}
	if len(raw) != SignatureSize {
		return sig, fmt.Errorf("%w: decoded length %d, want %d", ErrInvalidEncoding, len(raw), SignatureSize)
	}

	copy(sig[:], raw)
	return sig, nil
}

// SignatureFromBytes converts a raw byte slice into a Signature.
func SignatureFromBytes(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureSize {
		return sig, fmt.Errorf("%w: byte length %d, want %d", ErrInvalidEncoding, len(b), SignatureSize)
	}
	copy(sig[:], b)
	return sig, nil
}

// String returns the base58 encoding of the signature.
func (sig Signature) String() string {
	return base58.Encode(sig[:])
}

// Bytes returns the raw 64 bytes of the signature.
func (sig Signature) Bytes() []byte {
	out := make([]byte, SignatureSize)
	copy(out, sig[:])
	return out
}
