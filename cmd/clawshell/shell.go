package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/robalobadob/clawsolver/assets"
	"github.com/robalobadob/clawsolver/internal/bench"
	"github.com/robalobadob/clawsolver/internal/claw"
	"github.com/robalobadob/clawsolver/internal/session"
)

var errExit = errors.New("exit")

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "guess <code> <shakes> - record a probe, e.g. guess 1132 2\n")
	io.WriteString(w, "undo - drop the last guess\n")
	io.WriteString(w, "reset - clear all guesses\n")
	io.WriteString(w, "strategy [minimax|remaining|expected] - show or set the strategy\n")
	io.WriteString(w, "show - remaining codes and the suggested next probe\n")
	io.WriteString(w, "breakdown <code> - how a probe would split the remaining codes\n")
	io.WriteString(w, "top [n] - the n best probes; n defaults to 5\n")
	io.WriteString(w, "demo - load the sample history\n")
	io.WriteString(w, "bench - play every secret with every strategy\n")
	io.WriteString(w, "exit - quit\n")
}

// controller runs shell commands against a single local session.
type controller struct {
	sess *session.Session
}

func newController(st claw.Strategy) *controller {
	return &controller{sess: session.New(st)}
}

// execute runs one input line and writes its output to w.
func (c *controller) execute(ctx context.Context, line string, w io.Writer) error {
	args, err := shellquote.Split(line)
	if err != nil {
		return fmt.Errorf("could not parse %q: %w", line, err)
	}
	if len(args) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "exit", "bye", "quit":
		return errExit
	case "help":
		usage(w)
	case "guess", "g":
		if len(args) != 2 {
			return errors.New("usage: guess <code> <shakes>")
		}
		return c.guess(args[0], args[1], w)
	case "undo":
		g, err := c.sess.Undo()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "removed %s (%d)\n", g.Combination, g.Shakes)
		c.show(w)
	case "reset":
		c.sess.Reset()
		c.show(w)
	case "strategy":
		if len(args) == 0 {
			for _, s := range claw.Strategies() {
				mark := " "
				if s == c.sess.Strategy {
					mark = "*"
				}
				fmt.Fprintf(w, "%s %-10s %s\n", mark, s.Info().Name, s.Info().Description)
			}
			return nil
		}
		s, ok := claw.ParseStrategy(args[0])
		if !ok {
			return fmt.Errorf("unknown strategy %q", args[0])
		}
		c.sess.SetStrategy(s)
		c.show(w)
	case "show", "s":
		c.show(w)
	case "breakdown", "b":
		if len(args) != 1 {
			return errors.New("usage: breakdown <code>")
		}
		probe, ok := claw.Parse(args[0])
		if !ok {
			return fmt.Errorf("invalid code %q", args[0])
		}
		c.breakdown(probe, w)
	case "top":
		n := 5
		if len(args) > 0 {
			if n, err = strconv.Atoi(args[0]); err != nil || n <= 0 {
				return fmt.Errorf("bad count %q", args[0])
			}
		}
		for i, sc := range claw.Ranked(c.sess.Remaining(), c.sess.Strategy, n) {
			live := ""
			if sc.Live {
				live = " (could win)"
			}
			fmt.Fprintf(w, "%2d. %s score %d%s\n", i+1, sc.Combination, sc.Score, live)
		}
	case "demo":
		return c.demo(w)
	case "bench":
		reports, err := bench.Evaluate(ctx)
		if err != nil {
			return err
		}
		for _, r := range reports {
			fmt.Fprintf(w, "%-10s average %.3f worst %d hardest %s\n",
				r.Strategy.Name, r.Average, r.Worst, strings.Join(r.Hardest, " "))
		}
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func (c *controller) guess(code, shakes string, w io.Writer) error {
	combo, ok := claw.Parse(code)
	if !ok {
		return fmt.Errorf("invalid code %q: use four digits 1-3", code)
	}
	n, err := strconv.Atoi(shakes)
	if err != nil {
		return fmt.Errorf("invalid shakes %q", shakes)
	}
	if _, err := c.sess.Submit(claw.Guess{Combination: combo, Shakes: n}); err != nil {
		return err
	}
	c.show(w)
	return nil
}

func (c *controller) demo(w io.Writer) error {
	lines, err := assets.DemoHistory()
	if err != nil {
		return err
	}
	c.sess.Reset()
	for _, l := range lines {
		f := strings.Fields(l)
		if len(f) != 2 {
			return fmt.Errorf("bad demo line %q", l)
		}
		if err := c.guess(f[0], f[1], io.Discard); err != nil {
			return err
		}
	}
	c.show(w)
	return nil
}

func (c *controller) show(w io.Writer) {
	snap := c.sess.Snapshot()
	for i, g := range snap.Guesses {
		unit := "shakes"
		if g.Shakes == 1 {
			unit = "shake"
		}
		fmt.Fprintf(w, "#%d %s  %d %s\n", i+1, g.Combination, g.Shakes, unit)
	}
	switch snap.State {
	case session.StateContradiction:
		io.WriteString(w, "no code fits these guesses; undo or reset\n")
		return
	case session.StateSolved:
		fmt.Fprintf(w, "%s - this must be the code!\n", snap.Suggestion)
		return
	}
	fmt.Fprintf(w, "%d possibilities remain\n", snap.Count)
	if snap.Remaining != nil {
		parts := make([]string, len(snap.Remaining))
		for i, r := range snap.Remaining {
			parts[i] = r.String()
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  "))
	}
	if snap.Suggestion != nil {
		fmt.Fprintf(w, "suggested next guess: %s (%s)\n", snap.Suggestion, snap.Strategy.Label)
	}
}

func (c *controller) breakdown(probe claw.Combination, w io.Writer) {
	remaining := c.sess.Remaining()
	b := claw.Breakdown(probe, remaining)
	for shakes, bucket := range b {
		fmt.Fprintf(w, "%d shakes: %d\n", shakes, len(bucket))
	}
	fmt.Fprintf(w, "worst case %d, expected score %d\n",
		claw.WorstCaseScore(probe, remaining), claw.ExpectedValueScore(probe, remaining))
}
