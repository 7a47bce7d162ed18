package main

import (
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yenhunghuang/bha/internal/gitinfo"
)

var reportOpen bool
var reportOutput string
var reportHistory string

var reportCmd = &cobra.Command{
	Use:   "report <trace-files...>",
	Short: "Generate the HTML dashboard report (alias for export --format html --include-suggestions)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ef := exportFlags{
			format:             "html",
			output:             reportOutput,
			includeSuggestions: true,
			pretty:             true,
		}
		if err := runExport(cmd, args, ef); err != nil {
			return err
		}
		if reportHistory != "" {
			printTrend(cmd, reportHistory)
		}
		if reportOpen {
			if err := openInBrowser(reportOutput); err != nil {
				log.WithFields(map[string]interface{}{"err": err}).Warn("could not open report in browser")
			}
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "bha-report.html", "output HTML file")
	reportCmd.Flags().BoolVar(&reportOpen, "open", false, "open the report in the default browser")
	reportCmd.Flags().StringVar(&reportHistory, "history", "", "build-history CSV (commit_hash,duration_ns per line) to print a trend summary from")
}

// printTrend reads the build-history CSV and prints the latest few
// commits' build-time deltas, giving the report a trend section without
// the engine itself ever invoking git (spec.md §1 keeps that external).
func printTrend(cmd *cobra.Command, path string) {
	records, err := gitinfo.ReadHistoryFile(path)
	if err != nil {
		log.WithFields(map[string]interface{}{"err": err, "path": path}).Warn("could not read build history")
		return
	}
	if len(records) == 0 {
		return
	}

	start := 0
	if len(records) > 10 {
		start = len(records) - 10
	}
	cmd.Println("\nBuild time trend (last", len(records)-start, "commits):")
	for _, r := range records[start:] {
		sign := "+"
		if r.DeltaFromPrev < 0 {
			sign = ""
		}
		cmd.Printf("  %s  %s  %s%s\n", r.CommitHash, r.BuildTime, sign, r.DeltaFromPrev)
	}
}

// openInBrowser shells out to the platform's "open" equivalent. This is
// pure CLI convenience with no corpus precedent; kept on stdlib os/exec
// rather than a third-party "open browser" package since none of the
// retrieved repos use one.
func openInBrowser(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
