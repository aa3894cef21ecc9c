// internal/session/engine.go
//
// Session engine for the claw code solver.
// Responsibilities:
//   - Create sessions, optionally with a hidden secret (practice mode).
//   - Validate and append guesses; in practice mode score them against the secret.
//   - Undo/reset the history the way the front end does.
//   - Recompute the remaining set and the next suggestion from scratch on every query.
//
// Notes:
//   - Nothing here is cached: Remaining() filters the full universe each call.
//   - randomID() is a compact hex identifier for correlating server state.

package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/robalobadob/clawsolver/internal/claw"
)

var (
	ErrInvalidGuess   = errors.New("invalid guess")
	ErrEmptyHistory   = errors.New("no guesses to undo")
	ErrFinished       = errors.New("session already solved")
	ErrPracticeOnly   = errors.New("only practice sessions have a secret")
	ErrNotPractice    = errors.New("shakes are computed by the server in practice mode")
	ErrInvalidSecret  = errors.New("invalid secret")
	ErrUnknownSession = errors.New("session not found")
)

// New starts a session where the caller reports shakes from a real machine.
func New(strategy claw.Strategy) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        randomID(),
		Strategy:  strategy,
		Guesses:   []claw.Guess{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewPractice starts a session against a known secret; guesses are scored
// by the server instead of being reported by the caller.
func NewPractice(strategy claw.Strategy, secret claw.Combination) (*Session, error) {
	if !secret.Valid() {
		return nil, ErrInvalidSecret
	}
	s := New(strategy)
	s.Practice = true
	s.secret = secret
	return s, nil
}

// RandomSecret picks a uniformly random combination.
func RandomSecret() claw.Combination {
	var b [1]byte
	all := claw.All()
	for {
		_, _ = rand.Read(b[:])
		// reject the tail so the modulus stays uniform
		if int(b[0]) < 256-256%claw.Universe {
			return all[int(b[0])%claw.Universe]
		}
	}
}

// Submit appends a guess reported by the caller.
//
// Validation rules:
//   - Session must not already hold a 4-shake guess.
//   - Combination columns must be 1..3 and shakes 0..4.
//   - Practice sessions reject caller-reported shakes (use Play).
func (s *Session) Submit(g claw.Guess) (Snapshot, error) {
	if s.Practice {
		return s.Snapshot(), ErrNotPractice
	}
	return s.add(g)
}

// Play scores a probe against the practice secret and appends the result.
func (s *Session) Play(probe claw.Combination) (claw.Guess, Snapshot, error) {
	if !s.Practice {
		return claw.Guess{}, s.Snapshot(), ErrPracticeOnly
	}
	g := claw.Guess{Combination: probe, Shakes: claw.Matches(probe, s.secret)}
	snap, err := s.add(g)
	if err != nil {
		return claw.Guess{}, snap, err
	}
	return g, snap, nil
}

func (s *Session) add(g claw.Guess) (Snapshot, error) {
	if s.hit() {
		return s.Snapshot(), ErrFinished
	}
	if !g.Valid() {
		return s.Snapshot(), ErrInvalidGuess
	}
	s.Guesses = append(s.Guesses, g)
	s.touch()
	return s.Snapshot(), nil
}

// Undo drops the most recent guess.
func (s *Session) Undo() (claw.Guess, error) {
	if len(s.Guesses) == 0 {
		return claw.Guess{}, ErrEmptyHistory
	}
	last := s.Guesses[len(s.Guesses)-1]
	s.Guesses = s.Guesses[:len(s.Guesses)-1]
	s.Recorded = false
	s.touch()
	return last, nil
}

// Reset clears the history but keeps the strategy and any secret.
func (s *Session) Reset() {
	s.Guesses = []claw.Guess{}
	s.Recorded = false
	s.touch()
}

// SetStrategy changes how suggestions are made; the history is untouched.
func (s *Session) SetStrategy(st claw.Strategy) {
	s.Strategy = st
	s.touch()
}

// Secret reveals the practice secret.
func (s *Session) Secret() (claw.Combination, error) {
	if !s.Practice {
		return claw.Combination{}, ErrPracticeOnly
	}
	return s.secret, nil
}

// Remaining recomputes the candidates consistent with the full history.
func (s *Session) Remaining() []claw.Combination {
	return claw.Remaining(s.Guesses)
}

// State derives the session status from the remaining set.
func (s *Session) State() State {
	return stateOf(s.Remaining(), s.hit())
}

// Snapshot recomputes everything a renderer needs.
func (s *Session) Snapshot() Snapshot {
	remaining := s.Remaining()
	snap := Snapshot{
		ID:       s.ID,
		Strategy: s.Strategy.Info(),
		Guesses:  append([]claw.Guess{}, s.Guesses...),
		State:    stateOf(remaining, s.hit()),
		Count:    len(remaining),
		Practice: s.Practice,
		Daily:    s.Daily,
	}
	if len(remaining) <= ListLimit {
		snap.Remaining = remaining
	}
	if snap.State == StateSearching {
		if next, ok := claw.BestGuess(remaining, s.Strategy); ok {
			snap.Suggestion = &next
		}
	} else if len(remaining) == 1 {
		only := remaining[0]
		snap.Suggestion = &only
	}
	return snap
}

// Describe builds the same view as Snapshot for caller-held history,
// without creating a session.
func Describe(guesses []claw.Guess, strategy claw.Strategy) Snapshot {
	s := &Session{Strategy: strategy, Guesses: guesses}
	return s.Snapshot()
}

func stateOf(remaining []claw.Combination, hit bool) State {
	switch {
	case len(remaining) == 0:
		return StateContradiction
	case len(remaining) == 1 || hit:
		return StateSolved
	}
	return StateSearching
}

// hit reports whether any guess matched on all controls.
func (s *Session) hit() bool {
	for _, g := range s.Guesses {
		if g.Shakes == claw.MaxShakes {
			return true
		}
	}
	return false
}

func (s *Session) touch() { s.UpdatedAt = time.Now().UTC() }

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
