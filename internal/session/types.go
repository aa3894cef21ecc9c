// internal/session/types.go
//
// Type definitions for a solving session.
// Defines:
//   - State: where the session stands (searching/solved/contradiction).
//   - Session: guess history and settings for one solve.
//   - Snapshot: the derived view handed to renderers.

package session

import (
	"time"

	"github.com/robalobadob/clawsolver/internal/claw"
)

// State is the coarse status derived from the remaining set.
type State string

const (
	StateSearching     State = "searching"     // two or more candidates remain
	StateSolved        State = "solved"        // exactly one candidate, or a 4-shake guess
	StateContradiction State = "contradiction" // no candidate fits the evidence
)

// ListLimit is the largest remaining set a Snapshot lists in full.
const ListLimit = 20

// Session holds the history of a single solve. It is not safe for
// concurrent use; callers serialize access through the store.
type Session struct {
	ID        string        // Unique session identifier (random hex string).
	Strategy  claw.Strategy // Strategy used for suggestions.
	Guesses   []claw.Guess  // Evidence so far, oldest first.
	Practice  bool          // True if the server holds the secret.
	Daily     string        // Date key when the secret is the daily puzzle.
	CreatedAt time.Time
	UpdatedAt time.Time
	Recorded  bool // True once the outcome has been written to records.

	secret claw.Combination
}

// Snapshot is a read-only view of a session after recomputing the remaining set.
type Snapshot struct {
	ID         string             `json:"id,omitempty"`
	Strategy   claw.Info          `json:"strategy"`
	Guesses    []claw.Guess       `json:"guesses"`
	State      State              `json:"state"`
	Count      int                `json:"count"`
	Remaining  []claw.Combination `json:"remaining,omitempty"`
	Suggestion *claw.Combination  `json:"suggestion,omitempty"`
	Practice   bool               `json:"practice"`
	Daily      string             `json:"daily,omitempty"`
}
