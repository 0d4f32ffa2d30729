package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/assets"
	"github.com/robalobadob/mastermind/internal/database"
	"github.com/robalobadob/mastermind/internal/httpserver"
	"github.com/robalobadob/mastermind/internal/palette"
	"github.com/robalobadob/mastermind/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPath := getEnv("DB_PATH", "./data/app.db")
	db, err := database.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", dbPath, err)
	}
	defer db.Close()
	if err := database.Migrate(db, assets.Migrations()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	mem := store.NewMemoryStore()
	ttl := envDuration("SESSION_TTL", 2*time.Hour)
	go pruneLoop(ctx, mem, ttl)

	srv := httpserver.New(mem, db, palette.Default())
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Dur("sessionTTL", ttl).Msg("starting mastermind server")
	return srv.Start(ctx, ":"+port)
}

// pruneLoop drops sessions idle longer than ttl until ctx is done.
func pruneLoop(ctx context.Context, st store.Store, ttl time.Duration) {
	every := max(ttl/4, time.Minute)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := st.Prune(ctx, ttl); n > 0 {
				log.Info().Int("pruned", n).Int("live", st.Len()).Msg("idle sessions pruned")
			}
		}
	}
}
