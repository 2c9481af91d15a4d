package main

import (
	"os"

	"github.com/salescope-dev/salescope/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
