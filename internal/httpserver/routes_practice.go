// internal/httpserver/routes_practice.go
//
// Practice mode: the server plays the claw machine.
//   - POST /practice        → session with a random secret
//   - POST /practice/daily  → session with today's secret (same for everyone)
//
// Guesses go through POST /sessions/{id}/guess; the server computes shakes.
// The daily secret is derived from date + salt, so restarts do not change it.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/clawsolver/internal/claw"
	"github.com/robalobadob/clawsolver/internal/daily"
	"github.com/robalobadob/clawsolver/internal/session"
)

// mountPractice registers all /practice routes.
func (s *Server) mountPractice() {
	s.r.Route("/practice", func(r chi.Router) {
		r.Post("/", s.handlePractice)
		r.Post("/daily", s.handleDaily)
	})
}

func (s *Server) handlePractice(w http.ResponseWriter, r *http.Request) {
	st, ok := s.decodeNew(w, r)
	if !ok {
		return
	}
	s.startPractice(w, r, st, session.RandomSecret(), "")
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	st, ok := s.decodeNew(w, r)
	if !ok {
		return
	}
	secret, date := daily.Secret(time.Now(), s.salt)
	s.startPractice(w, r, st, secret, date)
}

func (s *Server) startPractice(w http.ResponseWriter, r *http.Request, st claw.Strategy, secret claw.Combination, date string) {
	sess, err := session.NewPractice(st, secret)
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	sess.Daily = date
	if err := s.store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save practice session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	hlog.FromRequest(r).Info().Str("session", sess.ID).Str("daily", date).Msg("practice started")
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}
