// internal/httpserver/server.go
//
// HTTP server wiring for the claw code solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/strategies".
//   - Stateless solving: POST /solve recomputes everything from caller-held history.
//   - Sessions: server-held history with guess/undo/reset/strategy/breakdown/top.
//   - Practice mode (random or daily secret): mounted under /practice.
//   - Records of finished sessions and the evaluation harness.
//
// Notes:
//   - Handlers never cache solver output; every response is recomputed.
//   - Persisting records is best effort; a failing DB never fails a guess.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/clawsolver/internal/bench"
	"github.com/robalobadob/clawsolver/internal/claw"
	"github.com/robalobadob/clawsolver/internal/records"
	"github.com/robalobadob/clawsolver/internal/session"
	"github.com/robalobadob/clawsolver/internal/store"
)

// Server bundles router, in-memory session store, and the records store.
type Server struct {
	r        *chi.Mux
	store    store.Store
	records  *records.Store // nil disables persistence
	strategy claw.Strategy  // default for new sessions
	salt     string         // daily secret salt
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, rec *records.Store) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		records: rec,
		salt:    getEnv("DAILY_SALT", "local_dev_salt"),
	}
	if def, ok := claw.ParseStrategy(os.Getenv("DEFAULT_STRATEGY")); ok {
		s.strategy = def
	} else {
		log.Warn().Str("strategy", os.Getenv("DEFAULT_STRATEGY")).Msg("unknown DEFAULT_STRATEGY, using minimax")
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped zerolog logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"claw-solver","endpoints":["/health","/strategies","POST /solve","/sessions/*","/practice/*","/records/*","/bench"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/strategies", func(w http.ResponseWriter, r *http.Request) {
		out := make([]claw.Info, 0, len(claw.Strategies()))
		for _, st := range claw.Strategies() {
			out = append(out, st.Info())
		}
		_ = json.NewEncoder(w).Encode(out)
	})

	s.r.Post("/solve", s.handleSolve)
	s.mountSessions()
	s.mountPractice()
	s.mountRecords()
	s.r.Get("/bench", s.handleBench)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Router exposes the internal router; main wraps it in an http.Server.
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one debug line per request with the chi request ID.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	lvl := zerolog.DebugLevel
	if status >= http.StatusInternalServerError {
		lvl = zerolog.ErrorLevel
	}
	hlog.FromRequest(r).WithLevel(lvl).
		Str("reqId", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("took", d).
		Msg("request")
})

// ------------------------------- SOLVE -------------------------------------

// solveReq carries the caller's full history; nothing is stored server side.
type solveReq struct {
	Guesses  []claw.Guess  `json:"guesses"`
	Strategy claw.Strategy `json:"strategy"`
	Probe    string        `json:"probe"` // optional: include a breakdown for this probe
	Top      int           `json:"top"`   // optional: include the n best probes
}

type solveRes struct {
	session.Snapshot
	Breakdown *breakdownRes `json:"breakdown,omitempty"`
	Top       []claw.Scored `json:"top,omitempty"`
}

// handleSolve filters the universe by the posted history and recommends a probe.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeErr(w, err)
		return
	}
	for _, g := range req.Guesses {
		if !g.Valid() {
			http.Error(w, `{"error":"invalid_guess"}`, http.StatusBadRequest)
			return
		}
	}

	res := solveRes{Snapshot: session.Describe(req.Guesses, req.Strategy)}
	if req.Probe != "" {
		probe, ok := claw.Parse(req.Probe)
		if !ok {
			http.Error(w, `{"error":"invalid_probe"}`, http.StatusBadRequest)
			return
		}
		b := newBreakdown(probe, claw.Remaining(req.Guesses))
		res.Breakdown = &b
	}
	if req.Top > 0 {
		res.Top = claw.Ranked(claw.Remaining(req.Guesses), req.Strategy, req.Top)
	}
	_ = json.NewEncoder(w).Encode(res)
}

// breakdownRes describes how a probe would split the remaining set.
type breakdownRes struct {
	Probe     claw.Combination      `json:"probe"`
	Sizes     [5]int                `json:"sizes"`   // index = shakes
	Buckets   [5][]claw.Combination `json:"buckets"` // index = shakes
	WorstCase int                   `json:"worstCase"`
	Expected  int                   `json:"expected"`
	Live      bool                  `json:"live"`
}

func newBreakdown(probe claw.Combination, remaining []claw.Combination) breakdownRes {
	b := claw.Breakdown(probe, remaining)
	res := breakdownRes{
		Probe:     probe,
		Sizes:     b.Sizes(),
		WorstCase: claw.WorstCaseScore(probe, remaining),
		Expected:  claw.ExpectedValueScore(probe, remaining),
		Live:      claw.Contains(remaining, probe),
	}
	for i, bucket := range b {
		if bucket == nil {
			bucket = []claw.Combination{}
		}
		res.Buckets[i] = bucket
	}
	return res
}

// ------------------------------- BENCH -------------------------------------

// handleBench plays every secret with the requested strategies (all by default).
func (s *Server) handleBench(w http.ResponseWriter, r *http.Request) {
	var strategies []claw.Strategy
	for _, name := range r.URL.Query()["strategy"] {
		st, ok := claw.ParseStrategy(name)
		if !ok {
			http.Error(w, `{"error":"unknown_strategy"}`, http.StatusBadRequest)
			return
		}
		strategies = append(strategies, st)
	}
	reports, err := bench.Evaluate(r.Context(), strategies...)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("bench")
		http.Error(w, `{"error":"bench_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(reports)
}

// ------------------------------- errors ------------------------------------

// writeDecodeErr distinguishes malformed JSON from a well-formed body carrying
// an unparsable combination or strategy.
func writeDecodeErr(w http.ResponseWriter, err error) {
	var unknown *claw.UnknownStrategyError
	switch {
	case errors.Is(err, claw.ErrInvalidCombination):
		http.Error(w, `{"error":"invalid_combination"}`, http.StatusBadRequest)
	case errors.As(err, &unknown):
		http.Error(w, `{"error":"unknown_strategy"}`, http.StatusBadRequest)
	default:
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
	}
}

// writeSessionErr maps session errors to status codes.
func writeSessionErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrUnknownSession):
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
	case errors.Is(err, session.ErrInvalidGuess):
		http.Error(w, `{"error":"invalid_guess"}`, http.StatusBadRequest)
	case errors.Is(err, session.ErrEmptyHistory):
		http.Error(w, `{"error":"empty_history"}`, http.StatusConflict)
	case errors.Is(err, session.ErrFinished):
		http.Error(w, `{"error":"already_solved"}`, http.StatusConflict)
	case errors.Is(err, session.ErrPracticeOnly), errors.Is(err, session.ErrNotPractice):
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
	default:
		log.Error().Err(err).Msg("session")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
	}
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// queryInt reads a positive integer query parameter, falling back to def.
func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
