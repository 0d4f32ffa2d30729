// Package cmd holds the mastermind command surface: the HTTP server (the
// default), the terminal game and the alphabet listing.
package cmd

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/palette"
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:          "mastermind",
		Short:        "Mastermind code-breaking game",
		Long:         "mastermind serves the game as a JSON API (the default) or plays it in the terminal.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			setupLogging(cmd.Name() == "play")
			return palette.Init()
		},
		RunE: serve.RunE,
	}
	root.AddCommand(serve, newPlayCmd(), newAlphabetsCmd())
	return root
}

// setupLogging applies LOG_LEVEL; the terminal game logs human-readable lines
// to stderr so they stay out of the board.
func setupLogging(console bool) {
	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
