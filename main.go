package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/clawsolver/internal/httpserver"
	"github.com/robalobadob/clawsolver/internal/records"
	"github.com/robalobadob/clawsolver/internal/store"
)

const gracefulShutdownTimeout = 20 * time.Second

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if getEnv("LOG_FORMAT", "json") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	var rec *records.Store
	if dsn := getEnv("DB_PATH", "./data/claw.db"); dsn != "off" {
		db, err := openDB(dsn)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", dsn).Msg("failed to open database")
		}
		defer db.Close()
		if err := migrate(db); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
		rec = records.NewStore(db)
	} else {
		log.Warn().Msg("DB_PATH=off, finished sessions will not be recorded")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, rec)
	port := getEnv("PORT", "5175")
	hs := &http.Server{Addr: ":" + port, Handler: srv.Router()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go pruneSessions(ctx, mem, envDuration("SESSION_TTL", 6*time.Hour))

	go func() {
		<-ctx.Done()
		log.Info().Msg("got quit signal...")
		sctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()
		if err := hs.Shutdown(sctx); err != nil {
			log.Error().Err(err).Msg("http server shutdown")
		}
	}()

	log.Info().Str("port", port).Msg("starting claw solver")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// pruneSessions drops idle sessions every ttl/4 until ctx ends.
func pruneSessions(ctx context.Context, st store.Store, ttl time.Duration) {
	t := time.NewTicker(ttl / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := st.Prune(ctx, now.Add(-ttl))
			if err != nil {
				log.Warn().Err(err).Msg("prune sessions")
				continue
			}
			if n > 0 {
				log.Info().Int("pruned", n).Msg("idle sessions removed")
			}
		}
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envDuration parses a Go duration ("90m") or a bare number of minutes.
func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Minute
	}
	log.Warn().Str(k, v).Msg("bad duration, using default")
	return def
}
