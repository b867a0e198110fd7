package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/solana"
	"solana-pool-search/internal/storage/migrations"
)

// setupTestDB creates a PostgreSQL container, applies the embedded
// migrations and returns a cleanup function that must be called after
// tests complete.
func setupTestDB(t *testing.T) (*Pool, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := pgcontainer.Run(ctx, "postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("test"),
		pgcontainer.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	require.NoError(t, migrations.RunPostgresMigrations(ctx, pool), "apply migrations")

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// Fixture helpers shared by store tests.

func testKey(b byte) solana.PublicKey {
	var pk solana.PublicKey
	pk[0] = b
	return pk
}

func testSig(b byte) solana.Signature {
	var sig solana.Signature
	sig[0] = b
	return sig
}

func testToken(mint byte, name, symbol string) *domain.Token {
	return &domain.Token{
		Mint:      testKey(mint),
		Name:      name,
		Symbol:    symbol,
		Decimals:  9,
		Supply:    1_000_000,
		Slot:      100,
		Hash:      testSig(mint),
		ProgramID: testKey(0xFF),
	}
}

func testPool(addr, base, quote byte) *domain.Pool {
	return &domain.Pool{
		Address:          testKey(addr),
		Factory:          "pumpfun",
		TokenBase:        testKey(base),
		TokenQuote:       testKey(quote),
		PoolBaseAccount:  testKey(addr + 1),
		PoolQuoteAccount: testKey(addr + 2),
		InitialBaseRes:   1000,
		InitialQuoteRes:  30,
		Slot:             100,
		Creator:          testKey(0xEE),
		Hash:             testSig(addr),
	}
}

func testSwap(pool, hash byte, ts, slot int64, price float64, typ domain.SwapType) *domain.SwapEvent {
	return &domain.SwapEvent{
		Pool:         testKey(pool),
		Creator:      testKey(0xDD),
		Type:         typ,
		Hash:         testSig(hash),
		BaseAmount:   10,
		QuoteAmount:  10 * price,
		BaseReserve:  1000,
		QuoteReserve: 1000 * price,
		PriceSol:     price,
		Slot:         slot,
		Timestamp:    ts,
	}
}
