// internal/claw/select.go
//
// Next-probe selection.
//
// Selection walks the strategy's probe pool in canonical order and keeps the
// lowest score. On a tie a probe that is still in the remaining set (and so
// could win outright) replaces one that is not; otherwise the first probe
// seen stays. The result is fully deterministic.

package claw

import "sort"

// Scored is a probe together with its score under some strategy.
type Scored struct {
	Combination Combination `json:"combination"`
	Score       int         `json:"score"`
	Live        bool        `json:"live"`
}

// Index returns the position of a valid combination in All().
func Index(c Combination) int {
	i := 0
	for _, col := range c {
		i = i*Positions + int(col-1)
	}
	return i
}

type liveSet [Universe]bool

func newLiveSet(remaining []Combination) *liveSet {
	var l liveSet
	for _, c := range remaining {
		if c.Valid() {
			l[Index(c)] = true
		}
	}
	return &l
}

func (l *liveSet) has(c Combination) bool { return l[Index(c)] }

// probes returns the strategy's pool in canonical order.
func probes(s Strategy, live *liveSet) []Combination {
	all := All()
	if s != RemainingOnly {
		return all
	}
	out := all[:0]
	for _, c := range all {
		if live.has(c) {
			out = append(out, c)
		}
	}
	return out
}

// BestGuess recommends the next probe for the given remaining set.
// It returns false when remaining is empty (the evidence is contradictory)
// and the sole member when exactly one combination remains.
func BestGuess(remaining []Combination, s Strategy) (Combination, bool) {
	switch len(remaining) {
	case 0:
		return Combination{}, false
	case 1:
		return remaining[0], true
	}

	live := newLiveSet(remaining)
	var (
		best     Combination
		bestLive bool
		found    bool
		bestSc   int
	)
	for _, probe := range probes(s, live) {
		sc := s.score(probe, remaining)
		isLive := live.has(probe)
		if !found || sc < bestSc || (sc == bestSc && isLive && !bestLive) {
			best, bestSc, bestLive, found = probe, sc, isLive, true
		}
	}
	return best, found
}

// Ranked scores every probe in the strategy's pool and returns the n best,
// ordered the way BestGuess breaks ties. n <= 0 returns the whole pool.
// An empty remaining set yields nil.
func Ranked(remaining []Combination, s Strategy, n int) []Scored {
	if len(remaining) == 0 {
		return nil
	}
	live := newLiveSet(remaining)
	pool := probes(s, live)
	out := make([]Scored, 0, len(pool))
	for _, probe := range pool {
		out = append(out, Scored{
			Combination: probe,
			Score:       s.score(probe, remaining),
			Live:        live.has(probe),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		return out[i].Live && !out[j].Live
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
