package claw

import "github.com/samber/lo"

// Consistent reports whether c could be the secret given every guess.
func Consistent(c Combination, guesses []Guess) bool {
	for _, g := range guesses {
		if Matches(c, g.Combination) != g.Shakes {
			return false
		}
	}
	return true
}

// Filter keeps the candidates consistent with all guesses, preserving order.
// An empty result means the evidence contradicts itself; it is not an error.
func Filter(candidates []Combination, guesses []Guess) []Combination {
	return lo.Filter(candidates, func(c Combination, _ int) bool {
		return Consistent(c, guesses)
	})
}

// Remaining recomputes the candidate set from the full universe.
func Remaining(guesses []Guess) []Combination {
	return Filter(All(), guesses)
}

// Contains reports whether c is a member of set.
func Contains(set []Combination, c Combination) bool {
	return lo.Contains(set, c)
}
