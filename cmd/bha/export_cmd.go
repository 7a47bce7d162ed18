package main

import (
	"context"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yenhunghuang/bha/internal/analyzers"
	"github.com/yenhunghuang/bha/internal/bhaerr"
	"github.com/yenhunghuang/bha/internal/export"
	"github.com/yenhunghuang/bha/internal/heuristics"
	"github.com/yenhunghuang/bha/internal/suggestions"
	"github.com/yenhunghuang/bha/internal/trace"
)

// exportFlags holds the export subcommand's own flags, separate from
// globalFlags since report_cmd.go reuses this struct with different
// defaults rather than reparsing cobra flags.
type exportFlags struct {
	format             string
	output             string
	includeSuggestions bool
	pretty             bool
	compress           bool
	darkMode           bool
	title              string
	maxFiles           int
	maxSuggestions     int
}

var exFlags exportFlags

var exportCmd = &cobra.Command{
	Use:   "export <trace-files...>",
	Short: "Analyze trace files and export a report",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, args, exFlags)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exFlags.format, "format", "", "output format: json|html|csv|md|sarif (default: inferred from -o extension)")
	exportCmd.Flags().StringVarP(&exFlags.output, "output", "o", "", "output file (required)")
	exportCmd.Flags().BoolVar(&exFlags.includeSuggestions, "include-suggestions", true, "include ranked optimization suggestions")
	exportCmd.Flags().BoolVar(&exFlags.pretty, "pretty", true, "pretty-print JSON output")
	exportCmd.Flags().BoolVar(&exFlags.compress, "compress", false, "gzip-compress the output file")
	exportCmd.Flags().BoolVar(&exFlags.darkMode, "dark-mode", false, "render the HTML dashboard in dark mode")
	exportCmd.Flags().StringVar(&exFlags.title, "title", "", "report title (HTML)")
	exportCmd.Flags().IntVar(&exFlags.maxFiles, "max-files", 0, "cap the number of files reported (0 = unlimited)")
	exportCmd.Flags().IntVar(&exFlags.maxSuggestions, "max-suggestions", 0, "cap the number of suggestions reported (0 = unlimited)")
	_ = exportCmd.MarkFlagRequired("output")
}

func runExport(cmd *cobra.Command, traceArgs []string, ef exportFlags) error {
	ctx := context.Background()

	if ef.output == "" {
		return bhaerr.NewInvalidArgument("-o/--output is required")
	}

	exporter, err := resolveExporter(ef)
	if err != nil {
		return err
	}

	files, err := discoverTraceFiles(traceArgs)
	if err != nil {
		return err
	}
	log.WithFields(map[string]interface{}{"count": len(files)}).Info("discovered trace files")

	bt, err := aggregateTraces(files)
	if err != nil {
		return err
	}

	cfg, err := heuristics.Load(flags.configPath)
	if err != nil {
		return bhaerr.Newf(bhaerr.ConfigError, "load heuristics config: %v", err)
	}

	opts := trace.DefaultAnalysisOptions()
	opts.Verbose = flags.verbose

	result, skipped := analyzers.RunFullAnalysis(ctx, bt, opts, cfg, analyzers.DefaultAnalyzers())
	for _, s := range skipped {
		log.WithAnalyzer(s.Name).WithFields(map[string]interface{}{"err": s.Err}).Warn("analyzer skipped")
	}

	var sugg []suggestions.Suggestion
	if ef.includeSuggestions {
		sOpts := suggestions.DefaultSuggesterOptions()
		if ef.maxSuggestions > 0 {
			sOpts.MaxSuggestions = ef.maxSuggestions
		}
		engineResult := suggestions.Run(ctx, suggestions.DefaultGenerators(), result, cfg, sOpts)
		sugg = engineResult.Suggestions
		if flags.verbose {
			for _, s := range engineResult.Stats {
				log.WithGenerator(s.Generator).WithFields(map[string]interface{}{
					"analyzed": s.ItemsAnalyzed,
					"skipped":  s.ItemsSkipped,
				}).Debug("generator ran")
			}
		}
	}

	expOpts := buildExportOptions(ef)

	progressCfg := newProgressConfig()
	cb, finish := progressCfg.newExportProgress("exporting")
	defer finish()

	if err := export.ExportToFile(ctx, exporter, ef.output, result, sugg, expOpts, cb); err != nil {
		log.WithExport(exporter.Format().String()).WithFields(map[string]interface{}{"err": err, "output": ef.output}).Warn("export failed")
		return err
	}
	log.WithExport(exporter.Format().String()).WithFields(map[string]interface{}{"output": ef.output}).Info("export complete")

	successf(cmd, "wrote %s report to %s", exporter.Format(), ef.output)
	return nil
}

func resolveExporter(ef exportFlags) (export.Exporter, error) {
	factory := export.NewFactory()
	if ef.format != "" {
		return factory.NewFromString(ef.format)
	}
	return factory.NewFromExtension(filepath.Ext(ef.output))
}

func buildExportOptions(ef exportFlags) export.ExportOptions {
	opts := export.DefaultExportOptions()
	opts.PrettyPrint = ef.pretty
	opts.Compress = ef.compress
	opts.IncludeSuggestions = ef.includeSuggestions
	opts.MaxFiles = ef.maxFiles
	opts.MaxSuggestions = ef.maxSuggestions
	opts.HTMLDarkMode = ef.darkMode
	if ef.title != "" {
		opts.HTMLTitle = ef.title
	}
	return opts
}

// successf prints a green success message, matching kraklabs-cie's
// internal/ui.Successf convention, adapted to cobra's own writer so
// output respects --quiet.
func successf(cmd *cobra.Command, format string, args ...interface{}) {
	if flags.quiet {
		return
	}
	green := color.New(color.FgGreen)
	_, _ = green.Fprintf(cmd.OutOrStdout(), "✓ "+format+"\n", args...)
}
