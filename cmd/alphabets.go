package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/palette"
)

func newAlphabetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alphabets",
		Short: "List the configured alphabets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, d := range palette.Default().Describe() {
				if _, err := fmt.Fprintf(out, "%s (%s)\n", d.Name, d.Kind); err != nil {
					return err
				}
				for _, s := range d.Symbols {
					line := "  " + string(s)
					if hex, ok := d.Swatches[string(s)]; ok {
						line += " " + hex
					}
					if _, err := fmt.Fprintln(out, line); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}
