// internal/httpserver/routes_records.go
//
// Read-only views over finished sessions:
//   - GET /records/recent   → ?limit=20
//   - GET /records/summary  → per-strategy averages of solved sessions
//   - GET /records/daily    → ?date=YYYY-MM-DD (default today), fewest guesses first

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/clawsolver/internal/daily"
)

// mountRecords registers /records routes. Without a records store they 503.
func (s *Server) mountRecords() {
	s.r.Route("/records", func(r chi.Router) {
		r.Use(s.requireRecords)
		r.Get("/recent", s.handleRecent)
		r.Get("/summary", s.handleSummary)
		r.Get("/daily", s.handleDailyBoard)
	})
}

func (s *Server) requireRecords(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.records == nil {
			http.Error(w, `{"error":"records_disabled"}`, http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	out, err := s.records.Recent(r.Context(), queryInt(r, "limit", 20))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("recent records")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	out, err := s.records.Summary(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("records summary")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleDailyBoard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		http.Error(w, `{"error":"bad_date"}`, http.StatusBadRequest)
		return
	}
	out, err := s.records.DailyBoard(r.Context(), date, queryInt(r, "limit", 20))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("daily board")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"date": date, "rows": out})
}
