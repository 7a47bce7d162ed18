// Package export implements the format-agnostic serialization pipeline
// described in spec.md §4.5: a polymorphic Exporter dispatches on
// ExportFormat (JSON/HTML/CSV/Markdown/SARIF) and writes an
// AnalysisResult plus a ranked Suggestion list to a file, stream or
// in-memory string, behind one shared ExportOptions bundle.
package export

import (
	"context"
	"io"

	"github.com/yenhunghuang/bha/internal/analyzers"
	"github.com/yenhunghuang/bha/internal/suggestions"
)

// Format names one of the closed set of output formats the engine can
// produce.
type Format int

const (
	JSON Format = iota
	HTML
	CSV
	Markdown
	SARIF
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case HTML:
		return "html"
	case CSV:
		return "csv"
	case Markdown:
		return "md"
	case SARIF:
		return "sarif"
	default:
		return "unknown"
	}
}

// ParseFormat maps a CLI --format string or a file extension to a
// Format, matching spec.md §6's export subcommand contract ("creates the
// exporter by --format or by output file extension").
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "json":
		return JSON, true
	case "html", "htm":
		return HTML, true
	case "csv":
		return CSV, true
	case "md", "markdown":
		return Markdown, true
	case "sarif":
		return SARIF, true
	default:
		return JSON, false
	}
}

// ProgressCallback receives (current, total, stage) progress reports. The
// built-in exporters call it at stage boundaries only; they do not report
// progress per file or per suggestion within a stage.
type ProgressCallback func(current, total uint64, stage string)

// noopProgress is used whenever a caller passes a nil callback, so
// exporter bodies never need a nil check.
func noopProgress(uint64, uint64, string) {}

// ExportOptions configures what an exporter includes and how it is
// formatted. Defaults mirror spec.md §4.5 and
// original_source/headers/bha/exporters/exporter.hpp.
type ExportOptions struct {
	PrettyPrint        bool
	IncludeMetadata    bool
	Compress           bool
	IncludeFileDetails bool
	IncludeDependencies bool
	IncludeTemplates   bool
	IncludeSymbols     bool
	IncludeSuggestions bool
	IncludeTiming      bool
	MinCompileTimeMs   float64
	MinConfidence      float64
	MaxFiles           int // 0 = unlimited
	MaxSuggestions     int
	HTMLInteractive    bool
	HTMLOffline        bool
	HTMLDarkMode       bool
	HTMLTitle          string
	JSONSchemaVersion  string
	JSONStreaming      bool
}

// DefaultExportOptions returns the reference defaults: every include_*
// flag on, pretty-printing on, no filters, schema version "1.0.0".
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		PrettyPrint:         true,
		IncludeMetadata:     true,
		IncludeFileDetails:  true,
		IncludeDependencies: true,
		IncludeTemplates:    true,
		IncludeSymbols:      true,
		IncludeSuggestions:  true,
		IncludeTiming:       true,
		JSONSchemaVersion:   "1.0.0",
		HTMLTitle:           "Build Hotspot Analysis",
		HTMLInteractive:     true,
	}
}

// Metadata describes one exporter implementation: its name, version and
// supported formats. Supplemented from original_source/headers/bha/exporters/exporter.hpp's
// ExportMetadata.
type Metadata struct {
	Name            string
	Version         string
	SupportedFormats []Format
}

// Exporter is the polymorphic writer capability spec.md §4.5 describes:
// export_to_file / export_to_stream / export_to_string.
type Exporter interface {
	Format() Format
	Metadata() Metadata
	ExportToString(ctx context.Context, result analyzers.AnalysisResult, sugg []suggestions.Suggestion, opts ExportOptions, progress ProgressCallback) (string, error)
	ExportToStream(ctx context.Context, w io.Writer, result analyzers.AnalysisResult, sugg []suggestions.Suggestion, opts ExportOptions, progress ProgressCallback) error
}

// filteredFiles applies opts.MinCompileTimeMs and opts.MaxFiles to the
// ranked file list, matching the filter semantics export_to_* shares
// across every format.
func filteredFiles(result analyzers.AnalysisResult, opts ExportOptions) []analyzers.FileRank {
	out := make([]analyzers.FileRank, 0, len(result.Files.Files))
	for _, f := range result.Files.Files {
		if msOf(f.CompileTime) < opts.MinCompileTimeMs {
			continue
		}
		out = append(out, f)
	}
	if opts.MaxFiles > 0 && len(out) > opts.MaxFiles {
		out = out[:opts.MaxFiles]
	}
	return out
}

// filteredSuggestions applies opts.MinConfidence and opts.MaxSuggestions
// to the suggestion list. The engine (internal/suggestions) already
// applies its own filter/sort/truncate pipeline; this is the exporter's
// independent, format-layer filter per spec.md §4.5's ExportOptions
// (min_confidence, max_suggestions fields on the exporter side).
func filteredSuggestions(sugg []suggestions.Suggestion, opts ExportOptions) []suggestions.Suggestion {
	if !opts.IncludeSuggestions {
		return nil
	}
	out := make([]suggestions.Suggestion, 0, len(sugg))
	for _, s := range sugg {
		if s.Impact.Confidence < opts.MinConfidence {
			continue
		}
		out = append(out, s)
	}
	if opts.MaxSuggestions > 0 && len(out) > opts.MaxSuggestions {
		out = out[:opts.MaxSuggestions]
	}
	return out
}

func callProgress(cb ProgressCallback, current, total uint64, stage string) {
	if cb == nil {
		return
	}
	cb(current, total, stage)
}
