// Package main runs the pool search HTTP service: free-form queries over
// indexed tokens and pools, per-pool trade history, windowed reports,
// OHLCV candles and a websocket event stream.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"solana-pool-search/internal/api"
	"solana-pool-search/internal/api/cache"
	"solana-pool-search/internal/quote"
	"solana-pool-search/internal/report"
	"solana-pool-search/internal/search"
	"solana-pool-search/internal/storage"
	chstore "solana-pool-search/internal/storage/clickhouse"
	"solana-pool-search/internal/storage/memory"
	"solana-pool-search/internal/storage/migrations"
	pgstore "solana-pool-search/internal/storage/postgres"
	"solana-pool-search/internal/stream"
)

const shutdownTimeout = 10 * time.Second

// appStores holds the storage implementations behind the service.
type appStores struct {
	tokens  storage.TokenStore
	pools   storage.PoolStore
	swaps   storage.SwapStore
	candles storage.CandleStore

	// pgPool is nil in memory mode; the websocket relay needs it.
	pgPool *pgstore.Pool
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	listenAddr := flag.String("listen-addr", envOr("LISTEN_ADDR", ":8080"), "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (optional, candles disabled without it)")
	redisAddr := flag.String("redis-addr", os.Getenv("REDIS_ADDR"), "Redis address for the search cache (optional)")
	redisPassword := flag.String("redis-password", os.Getenv("REDIS_PASSWORD"), "Redis password")
	redisDB := flag.Int("redis-db", envInt("REDIS_DB", 0), "Redis database number")
	cacheTTL := flag.Duration("cache-ttl", envDuration("CACHE_TTL", 3*time.Second), "Search cache entry TTL")
	quoteFile := flag.String("quote-registry", os.Getenv("QUOTE_REGISTRY"), "YAML file with additional quote tokens (optional)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	migrate := flag.Bool("migrate", false, "Run schema migrations on startup")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	// Validate required flags
	if !*useMemory && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create stores
	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory, *migrate)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	// Quote token registry: SOL and USDC built-in, extras from file
	quotes := quote.NewRegistry()
	if *quoteFile != "" {
		if err := quotes.LoadFile(*quoteFile); err != nil {
			logger.Fatalf("Failed to load quote registry: %v", err)
		}
		logger.Printf("Quote registry loaded from %s (%d tokens)", *quoteFile, len(quotes.All()))
	}

	// Search + report pipeline
	aggregator := report.NewAggregator(stores.swaps)
	lookup := search.NewLookup(stores.tokens, stores.pools, quotes, log.New(os.Stdout, "[search] ", log.LstdFlags))
	assembler := search.NewAssembler(search.NewLatestSwapResolver(stores.swaps), aggregator)
	searcher := search.NewService(lookup, assembler, log.New(os.Stdout, "[search] ", log.LstdFlags))

	// Search cache (optional)
	searchCache := cache.New(cache.Config{
		Enabled:  *redisAddr != "",
		Addr:     *redisAddr,
		Password: *redisPassword,
		DB:       *redisDB,
		TTL:      *cacheTTL,
	})
	defer searchCache.Close()
	if *redisAddr != "" {
		logger.Printf("Search cache enabled (redis %s, ttl %v)", *redisAddr, *cacheTTL)
	}

	// Websocket hub + LISTEN/NOTIFY relay (relay needs a live postgres pool)
	hub := stream.NewHub(log.New(os.Stdout, "[stream] ", log.LstdFlags))
	defer hub.Close()

	relayErr := make(chan error, 1)
	if stores.pgPool != nil {
		relay := stream.NewRelay(hub, stores.pgPool, log.New(os.Stdout, "[stream] ", log.LstdFlags))
		go func() {
			if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				relayErr <- fmt.Errorf("event relay: %w", err)
			}
		}()
	}

	server := api.NewServer(searcher, aggregator, stores.swaps, stores.candles, searchCache, hub, logger)

	httpSrv := &http.Server{
		Addr:         *listenAddr,
		Handler:      server.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Printf("Listening on %s", *listenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
	case err := <-serveErr:
		logger.Fatalf("HTTP server error: %v", err)
	case err := <-relayErr:
		logger.Fatalf("Relay error: %v", err)
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("HTTP shutdown error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates the storage layer and returns a cleanup func.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory, migrate bool) (*appStores, func(), error) {
	if useMemory {
		stores := &appStores{
			tokens:  memory.NewTokenStore(),
			pools:   memory.NewPoolStore(),
			swaps:   memory.NewSwapStore(),
			candles: memory.NewCandleStore(),
		}
		return stores, func() {}, nil
	}

	// PostgreSQL
	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if migrate {
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
	}

	stores := &appStores{
		tokens: pgstore.NewTokenStore(pool),
		pools:  pgstore.NewPoolStore(pool),
		swaps:  pgstore.NewSwapStore(pool),
		pgPool: pool,
	}

	// ClickHouse (optional, candles only)
	if clickhouseDSN != "" {
		chConn, err := chstore.NewConn(ctx, clickhouseDSN)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
		}
		if migrate {
			if err := migrations.RunClickhouseMigrations(ctx, chConn); err != nil {
				chConn.Close()
				pool.Close()
				return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
			}
		}
		stores.candles = chstore.NewCandleStore(chConn)

		cleanup := func() {
			chConn.Close()
			pool.Close()
		}
		return stores, cleanup, nil
	}

	return stores, pool.Close, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
