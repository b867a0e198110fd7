// Package api exposes the search service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"solana-pool-search/internal/api/cache"
	"solana-pool-search/internal/api/types"
	"solana-pool-search/internal/domain"
	"solana-pool-search/internal/observability"
	"solana-pool-search/internal/report"
	"solana-pool-search/internal/search"
	"solana-pool-search/internal/solana"
	"solana-pool-search/internal/storage"
)

const (
	defaultTradesLimit = 20
	maxTradesLimit     = 200
	tradesLookback     = 7 * 24 * time.Hour
	defaultCandleSpan  = time.Hour
)

// Server bundles dependencies for the HTTP API.
type Server struct {
	router   *chi.Mux
	searcher *search.Service
	reports  *report.Aggregator
	swaps    storage.SwapStore
	candles  storage.CandleStore
	cache    *cache.Cache
	logger   *log.Logger
	started  time.Time
}

// NewServer constructs a Server with registered routes. The candle store,
// cache and websocket hub may be nil; their routes degrade accordingly.
func NewServer(
	searcher *search.Service,
	reports *report.Aggregator,
	swaps storage.SwapStore,
	candles storage.CandleStore,
	cacheClient *cache.Cache,
	hub http.Handler,
	logger *log.Logger,
) *Server {
	if logger == nil {
		logger = log.New(os.Stdout, "[api] ", log.LstdFlags)
	}

	s := &Server{
		router:   chi.NewRouter(),
		searcher: searcher,
		reports:  reports,
		swaps:    swaps,
		candles:  candles,
		cache:    cacheClient,
		logger:   logger,
		started:  time.Now(),
	}

	s.router.Get("/healthz", s.healthzHandler)
	s.router.Method(http.MethodGet, "/metrics", observability.Handler())
	if hub != nil {
		s.router.Handle("/ws", hub)
	}

	s.router.Get("/pools", s.searchHandler)
	s.router.Route("/pools/{address}", func(r chi.Router) {
		r.Get("/last-transaction", s.lastTransactionHandler)
		r.Get("/report", s.reportHandler)
		r.Get("/trades", s.tradesHandler)
		r.Get("/candles", s.candlesHandler)
	})

	return s
}

// Handler exposes the underlying router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthzHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Millisecond).String(),
	})
}

// searchHandler resolves GET /pools?search=<query>. A missing parameter
// is a client error; an empty one is a valid empty search.
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if !params.Has("search") {
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "missing search parameter"})
		return
	}
	query := params.Get("search")

	if cached, err := s.cache.GetSearch(r.Context(), query); err == nil {
		writeJSON(w, http.StatusOK, cached)
		return
	} else if !errors.Is(err, cache.ErrMiss) && !errors.Is(err, cache.ErrDisabled) {
		// The cache accelerates, it does not gate.
		s.logger.Printf("cache get failed: %v", err)
	}

	results, err := s.searcher.Search(r.Context(), query)
	if err != nil {
		s.logger.Printf("search %q failed: %v", query, err)
		writeJSON(w, http.StatusInternalServerError, types.ErrorResponse{Error: "internal error"})
		return
	}

	resp := types.FromResults(results)
	writeJSON(w, http.StatusOK, resp)

	if len(resp) > 0 {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := s.cache.SetSearch(ctx, query, resp); err != nil && !errors.Is(err, cache.ErrDisabled) {
				s.logger.Printf("cache set failed: %v", err)
			}
		}()
	}
}

func (s *Server) lastTransactionHandler(w http.ResponseWriter, r *http.Request) {
	pool, ok := s.poolAddress(w, r)
	if !ok {
		return
	}

	latest, err := s.swaps.GetLatestByPool(r.Context(), pool)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, types.ErrorResponse{Error: "no transactions for pool"})
		return
	}
	if err != nil {
		s.logger.Printf("last transaction for %s failed: %v", pool, err)
		writeJSON(w, http.StatusInternalServerError, types.ErrorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, types.FromSwap(latest))
}

// reportHandler serves a single window report, selected by ?type=<label>.
func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	pool, ok := s.poolAddress(w, r)
	if !ok {
		return
	}

	window, ok := windowByLabel(r.URL.Query().Get("type"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "invalid report type"})
		return
	}

	rep, err := s.reports.Report(r.Context(), pool, window, time.Now().UnixMilli())
	if err != nil {
		s.logger.Printf("report for %s failed: %v", pool, err)
		writeJSON(w, http.StatusInternalServerError, types.ErrorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, types.FromReport(rep))
}

func (s *Server) tradesHandler(w http.ResponseWriter, r *http.Request) {
	pool, ok := s.poolAddress(w, r)
	if !ok {
		return
	}

	limit := defaultTradesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxTradesLimit {
			writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	now := time.Now().UnixMilli()
	swaps, err := s.swaps.GetRecentByPool(r.Context(), pool, now-tradesLookback.Milliseconds(), now, limit)
	if err != nil {
		s.logger.Printf("trades for %s failed: %v", pool, err)
		writeJSON(w, http.StatusInternalServerError, types.ErrorResponse{Error: "internal error"})
		return
	}

	out := make([]types.Transaction, 0, len(swaps))
	for _, sw := range swaps {
		out = append(out, types.FromSwap(sw))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) candlesHandler(w http.ResponseWriter, r *http.Request) {
	if s.candles == nil {
		writeJSON(w, http.StatusServiceUnavailable, types.ErrorResponse{Error: "candles unavailable"})
		return
	}

	pool, ok := s.poolAddress(w, r)
	if !ok {
		return
	}

	interval, ok := intervalByLabel(r.URL.Query().Get("interval"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "invalid interval"})
		return
	}

	now := time.Now().UnixMilli()
	start, end := now-defaultCandleSpan.Milliseconds(), now
	var err error
	if raw := r.URL.Query().Get("start"); raw != "" {
		if start, err = strconv.ParseInt(raw, 10, 64); err != nil {
			writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "invalid start"})
			return
		}
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		if end, err = strconv.ParseInt(raw, 10, 64); err != nil {
			writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "invalid end"})
			return
		}
	}

	candles, err := s.candles.GetOHLCV(r.Context(), pool, interval.Milliseconds(), start, end)
	if err != nil {
		s.logger.Printf("candles for %s failed: %v", pool, err)
		writeJSON(w, http.StatusInternalServerError, types.ErrorResponse{Error: "internal error"})
		return
	}

	out := make([]types.Candle, 0, len(candles))
	for _, c := range candles {
		out = append(out, types.FromCandle(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// poolAddress decodes the {address} path parameter, writing a 400 on
// malformed input.
func (s *Server) poolAddress(w http.ResponseWriter, r *http.Request) (solana.PublicKey, bool) {
	raw := chi.URLParam(r, "address")
	pk, err := solana.DecodePublicKey(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "invalid pool address"})
		return solana.PublicKey{}, false
	}
	return pk, true
}

func windowByLabel(label string) (domain.Window, bool) {
	for _, w := range domain.Windows {
		if w.Label == label {
			return w, true
		}
	}
	return domain.Window{}, false
}

func intervalByLabel(label string) (time.Duration, bool) {
	switch label {
	case "", "1s":
		return time.Second, true
	case "1m":
		return time.Minute, true
	case "5m":
		return 5 * time.Minute, true
	case "15m":
		return 15 * time.Minute, true
	case "1h":
		return time.Hour, true
	case "4h":
		return 4 * time.Hour, true
	case "1d":
		return 24 * time.Hour, true
	default:
		return 0, false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}
