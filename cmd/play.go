package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/console"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/palette"
)

type playFlags struct {
	alphabet string
	length   int
	attempts int
	mode     string
	seed     uint64
}

func newPlayCmd() *cobra.Command {
	var f playFlags
	c := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Example: `  mastermind play
  mastermind play --alphabet colors --mode setter
  mastermind play --seed 42 --attempts 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			alpha, ok := palette.Default().Lookup(f.alphabet)
			if !ok {
				return fmt.Errorf("unknown alphabet %q (have %v)", f.alphabet, palette.Default().Names())
			}
			var src game.Source
			if cmd.Flags().Changed("seed") {
				src = rand.New(rand.NewPCG(f.seed, f.seed))
			}
			_, err := console.Run(cmd.Context(), console.Options{
				In:          cmd.InOrStdin(),
				Out:         cmd.OutOrStdout(),
				Alphabet:    alpha,
				Length:      f.length,
				MaxAttempts: f.attempts,
				Mode:        game.Mode(f.mode),
				Rand:        src,
			})
			return err
		},
	}
	fl := c.Flags()
	fl.StringVar(&f.alphabet, "alphabet", palette.Numeric, "symbol set: numeric or colors")
	fl.IntVar(&f.length, "length", game.DefaultLength, "code length")
	fl.IntVar(&f.attempts, "attempts", game.DefaultMaxAttempts, "attempt budget")
	fl.StringVar(&f.mode, "mode", string(game.ModeSolver), "solver (random secret) or setter (hot seat)")
	fl.Uint64Var(&f.seed, "seed", 0, "seed for a reproducible secret")
	return c
}
