// Ferret manages the desktop colour scheme, either from installed palettes
// or synthesized from the current wallpaper.
package main

import (
	"os"

	"github.com/jmylchreest/ferret/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
