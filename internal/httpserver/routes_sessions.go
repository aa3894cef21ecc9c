// internal/httpserver/routes_sessions.go
//
// Session endpoints. The server keeps the guess history; every response is
// the recomputed snapshot of that history.
//   - POST   /sessions                 → new session {strategy}
//   - GET    /sessions/{id}            → snapshot
//   - DELETE /sessions/{id}            → drop the session
//   - POST   /sessions/{id}/guess      → {combination, shakes} (practice: shakes ignored)
//   - POST   /sessions/{id}/undo       → remove last guess
//   - POST   /sessions/{id}/reset      → clear history
//   - PUT    /sessions/{id}/strategy   → {strategy}
//   - GET    /sessions/{id}/breakdown  → ?probe=1223
//   - GET    /sessions/{id}/top        → ?n=5
//   - POST   /sessions/{id}/reveal     → practice secret (ends the session)

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/clawsolver/internal/claw"
	"github.com/robalobadob/clawsolver/internal/records"
	"github.com/robalobadob/clawsolver/internal/session"
)

// mountSessions registers all /sessions routes.
func (s *Server) mountSessions() {
	s.r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/guess", s.handleGuess)
			r.Post("/undo", s.handleUndo)
			r.Post("/reset", s.handleReset)
			r.Put("/strategy", s.handleStrategy)
			r.Get("/breakdown", s.handleBreakdown)
			r.Get("/top", s.handleTop)
			r.Post("/reveal", s.handleReveal)
		})
	})
}

// newSessionReq is shared by /sessions and /practice.
type newSessionReq struct {
	Strategy *claw.Strategy `json:"strategy"`
}

// decodeNew reads an optional body; an empty body selects the default strategy.
func (s *Server) decodeNew(w http.ResponseWriter, r *http.Request) (claw.Strategy, bool) {
	var req newSessionReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDecodeErr(w, err)
			return 0, false
		}
	}
	if req.Strategy == nil {
		return s.strategy, true
	}
	return *req.Strategy, true
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	st, ok := s.decodeNew(w, r)
	if !ok {
		return
	}
	sess := session.New(st)
	if err := s.store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	hlog.FromRequest(r).Info().Str("session", sess.ID).Str("strategy", st.String()).Msg("session started")
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	var snap session.Snapshot
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(sess *session.Session) error {
		snap = sess.Snapshot()
		return nil
	})
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeSessionErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// guessReq is the body of POST /sessions/{id}/guess.
type guessReq struct {
	Combination claw.Combination `json:"combination"`
	Shakes      *int             `json:"shakes"`
}

type guessRes struct {
	Guess   claw.Guess       `json:"guess"`
	Session session.Snapshot `json:"session"`
}

// handleGuess appends a guess. Practice sessions score it against their secret;
// otherwise shakes are required in the body.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeErr(w, err)
		return
	}
	var (
		res    guessRes
		result *records.Result
	)
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(sess *session.Session) error {
		var err error
		if sess.Practice {
			res.Guess, res.Session, err = sess.Play(req.Combination)
		} else {
			if req.Shakes == nil {
				return session.ErrInvalidGuess
			}
			res.Guess = claw.Guess{Combination: req.Combination, Shakes: *req.Shakes}
			res.Session, err = sess.Submit(res.Guess)
		}
		if err != nil {
			return err
		}
		result = finished(sess, res.Session)
		return nil
	})
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	s.record(r, result)
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	var res guessRes
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(sess *session.Session) error {
		g, err := sess.Undo()
		if err != nil {
			return err
		}
		res.Guess, res.Session = g, sess.Snapshot()
		return nil
	})
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var snap session.Snapshot
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(sess *session.Session) error {
		sess.Reset()
		snap = sess.Snapshot()
		return nil
	})
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleStrategy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Strategy claw.Strategy `json:"strategy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeErr(w, err)
		return
	}
	var snap session.Snapshot
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(sess *session.Session) error {
		sess.SetStrategy(req.Strategy)
		snap = sess.Snapshot()
		return nil
	})
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	probe, ok := claw.Parse(r.URL.Query().Get("probe"))
	if !ok {
		http.Error(w, `{"error":"invalid_probe"}`, http.StatusBadRequest)
		return
	}
	var res breakdownRes
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(sess *session.Session) error {
		res = newBreakdown(probe, sess.Remaining())
		return nil
	})
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	n := queryInt(r, "n", 5)
	out := []claw.Scored{}
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(sess *session.Session) error {
		if top := claw.Ranked(sess.Remaining(), sess.Strategy, n); top != nil {
			out = top
		}
		return nil
	})
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleReveal shows a practice secret and ends the session.
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	var (
		secret claw.Combination
		result *records.Result
	)
	id := chi.URLParam(r, "id")
	err := s.store.Update(r.Context(), id, func(sess *session.Session) error {
		var err error
		if secret, err = sess.Secret(); err != nil {
			return err
		}
		if !sess.Recorded {
			result = &records.Result{
				SessionID: sess.ID,
				Strategy:  sess.Strategy.String(),
				Guesses:   len(sess.Guesses),
				Outcome:   records.OutcomeRevealed,
				Practice:  true,
				Daily:     sess.Daily,
				Answer:    claw.Compact(secret),
			}
			sess.Recorded = true
		}
		return nil
	})
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	s.record(r, result)
	_ = s.store.Delete(r.Context(), id)
	_ = json.NewEncoder(w).Encode(map[string]any{"secret": secret})
}

// finished returns the record to write when a session has just left the
// searching state, marking it so it is written once.
func finished(sess *session.Session, snap session.Snapshot) *records.Result {
	if snap.State == session.StateSearching || sess.Recorded {
		return nil
	}
	sess.Recorded = true
	res := &records.Result{
		SessionID: sess.ID,
		Strategy:  sess.Strategy.String(),
		Guesses:   len(sess.Guesses),
		Outcome:   records.OutcomeSolved,
		Practice:  sess.Practice,
		Daily:     sess.Daily,
	}
	if snap.State == session.StateContradiction {
		res.Outcome = records.OutcomeContradiction
	} else if snap.Suggestion != nil {
		res.Answer = claw.Compact(*snap.Suggestion)
	}
	return res
}

// record persists a finished session; failures are logged, never returned.
func (s *Server) record(r *http.Request, res *records.Result) {
	if res == nil || s.records == nil {
		return
	}
	if err := s.records.Insert(r.Context(), *res); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("session", res.SessionID).Msg("record solve")
		return
	}
	hlog.FromRequest(r).Info().Str("session", res.SessionID).Str("outcome", string(res.Outcome)).
		Int("guesses", res.Guesses).Msg("session finished")
}
