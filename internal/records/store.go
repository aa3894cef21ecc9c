// internal/records/store.go
//
// SQLite persistence for finished solves.
// Only the outcome of a session is stored (strategy, guess count, result);
// the guess history itself stays in memory with the live session.
//
// Table: solves (see assets/sql), one row per session, upserted so that a
// session that is undone and re-solved keeps a single row.

package records

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Outcome is how a session ended.
type Outcome string

const (
	OutcomeSolved        Outcome = "solved"
	OutcomeContradiction Outcome = "contradiction"
	OutcomeRevealed      Outcome = "revealed"
)

// Result is a single finished session.
type Result struct {
	SessionID string    `json:"sessionId"`
	Strategy  string    `json:"strategy"`
	Guesses   int       `json:"guesses"`
	Outcome   Outcome   `json:"outcome"`
	Practice  bool      `json:"practice"`
	Daily     string    `json:"daily,omitempty"`
	Answer    string    `json:"answer,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// StrategySummary aggregates solved sessions for one strategy.
type StrategySummary struct {
	Strategy string  `json:"strategy"`
	Solves   int     `json:"solves"`
	Average  float64 `json:"average"`
	Best     int     `json:"best"`
	Worst    int     `json:"worst"`
}

// BoardRow is one line of a daily leaderboard.
type BoardRow struct {
	SessionID string `json:"sessionId"`
	Strategy  string `json:"strategy"`
	Guesses   int    `json:"guesses"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert records r, replacing any earlier row for the same session.
func (s *Store) Insert(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO solves (session_id, strategy, guesses, outcome, practice, daily, answer)
        VALUES (?, ?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''))
        ON CONFLICT(session_id) DO UPDATE SET
            strategy=excluded.strategy,
            guesses=excluded.guesses,
            outcome=excluded.outcome,
            answer=excluded.answer`,
		r.SessionID, r.Strategy, r.Guesses, string(r.Outcome), boolInt(r.Practice), r.Daily, r.Answer,
	)
	if err != nil {
		return fmt.Errorf("insert solve %s: %w", r.SessionID, err)
	}
	return nil
}

// Recent returns the newest results first. Default limit is 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT session_id, strategy, guesses, outcome, practice,
               COALESCE(daily, ''), COALESCE(answer, ''), created_at
        FROM solves
        ORDER BY created_at DESC, id DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var (
			r        Result
			practice int
			outcome  string
			created  string
		)
		if err := rows.Scan(&r.SessionID, &r.Strategy, &r.Guesses, &outcome, &practice,
			&r.Daily, &r.Answer, &created); err != nil {
			return nil, err
		}
		r.Outcome = Outcome(outcome)
		r.Practice = practice != 0
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Summary aggregates solved sessions per strategy, ordered by name.
func (s *Store) Summary(ctx context.Context) ([]StrategySummary, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT strategy, COUNT(1), AVG(guesses), MIN(guesses), MAX(guesses)
        FROM solves
        WHERE outcome = ?
        GROUP BY strategy
        ORDER BY strategy ASC`, string(OutcomeSolved),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []StrategySummary{}
	for rows.Next() {
		var r StrategySummary
		if err := rows.Scan(&r.Strategy, &r.Solves, &r.Average, &r.Best, &r.Worst); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DailyBoard lists solved daily puzzles for date, fewest guesses first.
func (s *Store) DailyBoard(ctx context.Context, date string, limit int) ([]BoardRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT session_id, strategy, guesses
        FROM solves
        WHERE daily = ? AND outcome = ?
        ORDER BY guesses ASC, created_at ASC
        LIMIT ?`, date, string(OutcomeSolved), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []BoardRow{}
	for rows.Next() {
		var r BoardRow
		if err := rows.Scan(&r.SessionID, &r.Strategy, &r.Guesses); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
