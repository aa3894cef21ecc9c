// Command clawshell is an interactive solver: enter each probe and the
// number of shakes the machine gave, and it suggests what to try next.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/clawsolver/internal/claw"
)

var (
	strategyFlag = flag.String("strategy", "minimax", "minimax, remaining or expected")
	historyFlag  = flag.String("history", filepath.Join(os.TempDir(), "clawshell.history"), "readline history file")
	verboseFlag  = flag.Bool("v", false, "debug logging")
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verboseFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	st, ok := claw.ParseStrategy(*strategyFlag)
	if !ok {
		log.Fatal().Str("strategy", *strategyFlag).Msg("unknown strategy")
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36mclaw>\033[0m ",
		HistoryFile:     *historyFlag,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("readline")
	}
	defer l.Close()

	c := newController(st)
	usage(l.Stderr())
	c.show(l.Stdout())

	ctx := context.Background()
	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				break
			}
			continue
		} else if errors.Is(err, io.EOF) {
			break
		}
		err = c.execute(ctx, strings.TrimSpace(line), l.Stdout())
		if errors.Is(err, errExit) {
			break
		}
		if err != nil {
			log.Error().Err(err).Msg("")
		}
	}
}
