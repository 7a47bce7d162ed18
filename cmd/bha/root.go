package main

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/yenhunghuang/bha/pkg/logger"
)

// globalFlags mirrors kraklabs-cie's GlobalFlags struct: one bundle of
// flags every subcommand reads, set up once in PersistentPreRunE.
type globalFlags struct {
	verbose     bool
	quiet       bool
	noColor     bool
	configPath  string
	metricsAddr string
}

var flags globalFlags

var log *logger.Logger

var rootCmd = &cobra.Command{
	Use:   "bha",
	Short: "Build hotspot analyzer",
	Long: `bha analyzes compiler-emitted build traces to diagnose why a
C/C++ project compiles slowly and recommends concrete source-level
optimizations: precompiled-header candidacy, forward-declaration
opportunities, redundant includes, template instantiation hotspots and
unity-build feasibility.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		color.NoColor = flags.noColor

		level := logger.InfoLevel
		switch {
		case flags.quiet:
			level = logger.ErrorLevel
		case flags.verbose:
			level = logger.DebugLevel
		}
		log = logger.NewWithLevel(level)

		if flags.metricsAddr != "" {
			go serveMetrics(flags.metricsAddr)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "verbose (debug-level) logging")
	rootCmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress progress and info logging")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "heuristics tuning YAML overlay (optional)")
	rootCmd.PersistentFlags().StringVar(&flags.metricsAddr, "metrics-addr", "", "expose Prometheus metrics on this address (e.g. :9090); empty disables")

	rootCmd.AddCommand(exportCmd, reportCmd, versionCmd)
}

// serveMetrics starts the optional Prometheus /metrics endpoint,
// matching kraklabs-cie cmd/cie/index.go's opt-in metrics listener.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	log.WithFields(map[string]interface{}{"addr": addr}).Info("metrics listener starting")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithFields(map[string]interface{}{"err": err}).Warn("metrics listener stopped")
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("bha %s (built %s)\n", buildVersion, buildDate)
	},
}

// Set via -ldflags at release build time; "dev"/"unknown" otherwise,
// matching the teacher's cmd/main.go convention.
var (
	buildVersion = "dev"
	buildDate    = "unknown"
)
