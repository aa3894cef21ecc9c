package claw

import (
	"strconv"
	"strings"
)

// Strategy selects how the next probe is chosen. The zero value is Minimax.
type Strategy int

const (
	// Minimax minimizes the worst-case remaining count over the full universe.
	Minimax Strategy = iota
	// RemainingOnly applies minimax scoring to probes drawn from the remaining set.
	RemainingOnly
	// Expected minimizes the sum of squared bucket sizes over the full universe.
	Expected
)

// Info is the display metadata attached to a strategy.
type Info struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var strategyInfo = [...]Info{
	Minimax: {
		Name:        "minimax",
		Label:       "Minimax",
		Description: "Minimizes the worst-case remaining possibilities",
	},
	RemainingOnly: {
		Name:        "remaining",
		Label:       "Remaining only",
		Description: "Minimax restricted to codes that could still be the answer",
	},
	Expected: {
		Name:        "expected",
		Label:       "Expected value",
		Description: "Minimizes the average remaining possibilities",
	},
}

// Strategies lists every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{Minimax, RemainingOnly, Expected}
}

// Valid reports whether s is one of the declared strategies.
func (s Strategy) Valid() bool { return s >= Minimax && s <= Expected }

// Info returns the metadata for s; invalid strategies report as minimax.
func (s Strategy) Info() Info {
	if !s.Valid() {
		return strategyInfo[Minimax]
	}
	return strategyInfo[s]
}

func (s Strategy) String() string { return s.Info().Name }

// ParseStrategy maps a name such as "expected" to its Strategy.
// The empty string selects Minimax.
func ParseStrategy(name string) (Strategy, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Minimax, true
	}
	for _, s := range Strategies() {
		if strategyInfo[s].Name == name {
			return s, true
		}
	}
	return Minimax, false
}

// MarshalText encodes the strategy by name.
func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a strategy name; unknown names are an error.
func (s *Strategy) UnmarshalText(b []byte) error {
	v, ok := ParseStrategy(string(b))
	if !ok {
		return &UnknownStrategyError{Name: string(b)}
	}
	*s = v
	return nil
}

// UnknownStrategyError reports a strategy name outside the fixed set.
type UnknownStrategyError struct{ Name string }

func (e *UnknownStrategyError) Error() string { return "unknown strategy " + strconv.Quote(e.Name) }

// pool returns the probes a strategy searches over.
func (s Strategy) pool(remaining []Combination) []Combination {
	if s == RemainingOnly {
		return remaining
	}
	return All()
}

// score applies the strategy's scoring function. RemainingOnly shares
// minimax scoring; only its pool differs.
func (s Strategy) score(probe Combination, remaining []Combination) int {
	if s == Expected {
		return ExpectedValueScore(probe, remaining)
	}
	return WorstCaseScore(probe, remaining)
}
