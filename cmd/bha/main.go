// Command bha is the build hotspot analyzer's command-line front end: it
// reads trace files produced by an external parser, runs the analysis
// engine, and exports a report. The CLI itself is glue — every decision
// it makes is a thin translation into internal/analyzers,
// internal/suggestions and internal/export calls.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		printFatal(err)
		os.Exit(1)
	}
}

// printFatal prints err to stderr, colored red, falling back to plain
// text when NO_COLOR/non-TTY (fatih/color already handles that
// detection via color.NoColor).
func printFatal(err error) {
	red := color.New(color.FgRed)
	_, _ = red.Fprintf(os.Stderr, "✗ %s\n", fmt.Sprint(err))
}
