// internal/bench/bench.go
//
// Evaluation harness: plays the solver against every possible secret and
// reports how many probes each strategy needs.
//
// A game feeds the solver's own suggestion back as the next probe and
// scores it with the match oracle, stopping on a 4-shake answer.

package bench

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/clawsolver/internal/claw"
)

// MaxTurns bounds a single game; no strategy needs more than 9 on 81 codes.
const MaxTurns = 10

// Play solves for secret with strategy and returns the probes in order.
// The bool is false only if MaxTurns ran out or the solver gave up.
func Play(secret claw.Combination, strategy claw.Strategy) ([]claw.Guess, bool) {
	var history []claw.Guess
	for turn := 0; turn < MaxTurns; turn++ {
		probe, ok := claw.BestGuess(claw.Remaining(history), strategy)
		if !ok {
			return history, false
		}
		g := claw.Guess{Combination: probe, Shakes: claw.Matches(probe, secret)}
		history = append(history, g)
		if g.Shakes == claw.MaxShakes {
			return history, true
		}
	}
	return history, false
}

// Report summarizes one strategy over every secret.
type Report struct {
	Strategy  claw.Info   `json:"strategy"`
	Games     int         `json:"games"`
	Failures  int         `json:"failures"`
	Average   float64     `json:"average"`
	Worst     int         `json:"worst"`
	Histogram map[int]int `json:"histogram"` // guesses needed -> games
	Hardest   []string    `json:"hardest"`   // secrets that took Worst guesses
	Elapsed   string      `json:"elapsed"`
}

// Evaluate runs every strategy over the full universe, one goroutine per
// strategy. The reports come back in the order the strategies were given.
func Evaluate(ctx context.Context, strategies ...claw.Strategy) ([]Report, error) {
	if len(strategies) == 0 {
		strategies = claw.Strategies()
	}
	reports := make([]Report, len(strategies))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range strategies {
		i, s := i, s
		g.Go(func() error {
			r, err := evaluate(ctx, s)
			if err != nil {
				return fmt.Errorf("evaluate %s: %w", s, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func evaluate(ctx context.Context, s claw.Strategy) (Report, error) {
	t0 := time.Now()
	secrets := claw.All()
	lengths := make(map[claw.Combination]int, len(secrets))
	failures := 0
	for _, secret := range secrets {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		path, ok := Play(secret, s)
		if !ok {
			failures++
			log.Warn().Str("strategy", s.String()).Str("secret", secret.String()).Msg("game not solved")
			continue
		}
		lengths[secret] = len(path)
	}

	counts := lo.Values(lengths)
	worst := lo.Max(counts)
	hist := lo.CountValues(counts)
	hardest := lo.FilterMap(secrets, func(c claw.Combination, _ int) (string, bool) {
		n, ok := lengths[c]
		return c.String(), ok && n == worst
	})
	sort.Strings(hardest)

	r := Report{
		Strategy:  s.Info(),
		Games:     len(secrets),
		Failures:  failures,
		Worst:     worst,
		Histogram: hist,
		Hardest:   hardest,
		Elapsed:   time.Since(t0).String(),
	}
	if len(counts) > 0 {
		r.Average = float64(lo.Sum(counts)) / float64(len(counts))
	}
	log.Debug().Str("strategy", s.String()).Float64("average", r.Average).Int("worst", worst).Msg("evaluated")
	return r, nil
}
