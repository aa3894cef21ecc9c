// internal/claw/combination.go
//
// Core value types for the claw machine code:
//   - Column: the position one control is set to (1, 2 or 3).
//   - Combination: four controls, position-sensitive.
//   - Guess: a submitted combination plus the observed shake count.
//
// Combinations are arrays, so they are copied by value and compare with ==.

package claw

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

const (
	// Controls is the number of controls on the machine.
	Controls = 4
	// Positions is the number of settings each control can take.
	Positions = 3
	// MaxShakes is the feedback for an exact match.
	MaxShakes = Controls
	// Universe is the number of distinct combinations (3^4).
	Universe = 81
)

// Column is the setting of a single control, valid in 1..Positions.
type Column uint8

// Valid reports whether c is an allowed setting.
func (c Column) Valid() bool { return c >= 1 && c <= Positions }

// Combination is a full setting of all controls; index 0 is the leftmost control.
type Combination [Controls]Column

// Valid reports whether every column is in range.
func (c Combination) Valid() bool {
	for _, col := range c {
		if !col.Valid() {
			return false
		}
	}
	return true
}

// Equal reports whether both combinations hold the same column at every position.
func (c Combination) Equal(o Combination) bool { return c == o }

// String renders the combination as hyphen separated digits, e.g. "1-1-3-2".
func (c Combination) String() string { return Format(c) }

// Guess is one unit of evidence: what was tried and how many controls matched.
type Guess struct {
	Combination Combination `json:"combination"`
	Shakes      int         `json:"shakes"`
}

// Valid reports whether the guess could have come from the machine.
func (g Guess) Valid() bool {
	return g.Combination.Valid() && g.Shakes >= 0 && g.Shakes <= MaxShakes
}

// ErrInvalidCombination is returned when decoding text that Parse rejects.
var ErrInvalidCombination = errors.New("invalid combination")

var (
	universeOnce sync.Once
	universe     []Combination
)

// All returns every combination in canonical order: lexicographic over
// positions, (1,1,1,1) first and (3,3,3,3) last. The returned slice is a
// fresh copy and may be modified by the caller.
func All() []Combination {
	universeOnce.Do(func() {
		universe = make([]Combination, 0, Universe)
		for a := Column(1); a <= Positions; a++ {
			for b := Column(1); b <= Positions; b++ {
				for c := Column(1); c <= Positions; c++ {
					for d := Column(1); d <= Positions; d++ {
						universe = append(universe, Combination{a, b, c, d})
					}
				}
			}
		}
	})
	out := make([]Combination, len(universe))
	copy(out, universe)
	return out
}

// Matches counts the positions where a and b hold the same column.
// This is the shake count the machine reports when b is the secret.
func Matches(a, b Combination) int {
	n := 0
	for i := range a {
		if a[i] == b[i] {
			n++
		}
	}
	return n
}

// Parse reads a code in either the compact form ("1132") or the display
// form produced by Format ("1-1-3-2"). Anything else, including the empty
// string, a 0 or 4+ digit, or a non-digit, yields false.
func Parse(s string) (Combination, bool) {
	switch len(s) {
	case Controls:
		return parseDigits(s, 1)
	case 2*Controls - 1:
		for i := 1; i < len(s); i += 2 {
			if s[i] != '-' {
				return Combination{}, false
			}
		}
		return parseDigits(s, 2)
	}
	return Combination{}, false
}

func parseDigits(s string, stride int) (Combination, bool) {
	var c Combination
	for i := 0; i < Controls; i++ {
		d := s[i*stride]
		if d < '1' || d > '0'+Positions {
			return Combination{}, false
		}
		c[i] = Column(d - '0')
	}
	return c, true
}

// Format joins the digits with hyphens: (1,1,3,2) becomes "1-1-3-2".
func Format(c Combination) string {
	var sb strings.Builder
	sb.Grow(2*Controls - 1)
	for i, col := range c {
		if i > 0 {
			sb.WriteByte('-')
		}
		sb.WriteByte('0' + byte(col))
	}
	return sb.String()
}

// Compact renders the combination without separators, the form Parse accepts.
func Compact(c Combination) string {
	var b [Controls]byte
	for i, col := range c {
		b[i] = '0' + byte(col)
	}
	return string(b[:])
}

// MarshalText encodes the combination in compact form.
func (c Combination) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCombination, [Controls]Column(c))
	}
	return []byte(Compact(c)), nil
}

// UnmarshalText accepts anything Parse accepts.
func (c *Combination) UnmarshalText(b []byte) error {
	v, ok := Parse(string(b))
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidCombination, b)
	}
	*c = v
	return nil
}
