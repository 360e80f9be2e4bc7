// desktools - small desktop automation tools
//
// desktools builds an X11 colour swatch table, prints screenshot crop
// commands, and drives a page-by-page screen capture loop.
package main

import (
	"os"

	"github.com/daisuke/desktools/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
