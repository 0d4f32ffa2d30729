package main

import (
	"os"

	"github.com/robalobadob/mastermind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
