package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yenhunghuang/bha/internal/analyzers"
	"github.com/yenhunghuang/bha/internal/suggestions"
)

// MarkdownExporter renders a human-readable report: a title, a summary
// table, a Top-Files table, per-suggestion sections and a dependency
// stats list, exactly as spec.md §4.5 describes.
type MarkdownExporter struct{}

// NewMarkdownExporter constructs a MarkdownExporter.
func NewMarkdownExporter() *MarkdownExporter { return &MarkdownExporter{} }

// Format implements Exporter.
func (MarkdownExporter) Format() Format { return Markdown }

// Metadata implements Exporter.
func (MarkdownExporter) Metadata() Metadata {
	return Metadata{Name: "markdown", Version: bhaVersion, SupportedFormats: []Format{Markdown}}
}

// ExportToString implements Exporter.
func (e MarkdownExporter) ExportToString(ctx context.Context, result analyzers.AnalysisResult, sugg []suggestions.Suggestion, opts ExportOptions, progress ProgressCallback) (string, error) {
	var buf bytes.Buffer
	if err := e.ExportToStream(ctx, &buf, result, sugg, opts, progress); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExportToStream implements Exporter.
func (MarkdownExporter) ExportToStream(_ context.Context, w io.Writer, result analyzers.AnalysisResult, sugg []suggestions.Suggestion, opts ExportOptions, progress ProgressCallback) error {
	if progress == nil {
		progress = noopProgress
	}

	fmt.Fprintln(w, "# Build Hotspot Analysis Report")
	fmt.Fprintln(w)

	progress(0, 4, "summary")
	fmt.Fprintln(w, "## Summary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Metric | Value |")
	fmt.Fprintln(w, "|---|---|")
	fmt.Fprintf(w, "| Total files | %d |\n", result.Files.TotalFiles)
	fmt.Fprintf(w, "| Total compile time (ms) | %.1f |\n", msOf(result.Performance.TotalBuildTime))
	fmt.Fprintf(w, "| Parallelism efficiency | %.2f |\n", result.Performance.Efficiency)
	fmt.Fprintf(w, "| Suggestions | %d |\n", len(filteredSuggestions(sugg, opts)))
	fmt.Fprintln(w)

	progress(1, 4, "top_files")
	files := filteredFiles(result, opts)
	if len(files) > 0 {
		fmt.Fprintln(w, "## Top Files")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Rank | File | Compile Time (ms) | % of Build |")
		fmt.Fprintln(w, "|---|---|---|---|")
		for _, f := range files {
			fmt.Fprintf(w, "| %d | %s | %.1f | %.1f%% |\n", f.Rank, f.Path, msOf(f.CompileTime), f.TimePercent)
		}
		fmt.Fprintln(w)
	}

	progress(2, 4, "suggestions")
	if opts.IncludeSuggestions {
		writeMarkdownSuggestions(w, filteredSuggestions(sugg, opts))
	}

	progress(3, 4, "dependencies")
	if opts.IncludeDependencies && !result.Dependencies.IsEmpty() {
		fmt.Fprintln(w, "## Dependency Stats")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "- Total includes: %d\n", result.Dependencies.TotalIncludes)
		fmt.Fprintf(w, "- Unique headers: %d\n", result.Dependencies.UniqueHeaders)
		fmt.Fprintf(w, "- Max include depth: %d\n", result.Dependencies.MaxIncludeDepth)
		fmt.Fprintf(w, "- Total include time (ms): %.1f\n", msOf(result.Dependencies.TotalIncludeTime))
		fmt.Fprintln(w)
	}

	progress(4, 4, "done")
	return nil
}

func writeMarkdownSuggestions(w io.Writer, sugg []suggestions.Suggestion) {
	if len(sugg) == 0 {
		return
	}
	fmt.Fprintln(w, "## Suggestions")
	fmt.Fprintln(w)
	for i, s := range sugg {
		fmt.Fprintf(w, "### %s\n\n", s.Title)
		fmt.Fprintf(w, "- **Priority**: %s\n", strings.ToUpper(s.Priority.String()))
		fmt.Fprintf(w, "- **Confidence**: %.0f%%\n", s.Impact.Confidence*100)
		fmt.Fprintf(w, "- **Estimated savings**: %.1f ms\n", msOf(s.Impact.EstimatedTimeSavings))
		if len(s.Targets) > 0 {
			t := s.Targets[0]
			if t.Line > 0 {
				fmt.Fprintf(w, "- **Location**: %s:%d\n", t.Path, t.Line)
			} else {
				fmt.Fprintf(w, "- **Location**: %s\n", t.Path)
			}
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Description)
		fmt.Fprintln(w)
		if s.Example != nil {
			fmt.Fprintln(w, "```cpp")
			fmt.Fprintln(w, "// before")
			fmt.Fprintln(w, s.Example.Before)
			fmt.Fprintln(w, "// after")
			fmt.Fprintln(w, s.Example.After)
			fmt.Fprintln(w, "```")
			fmt.Fprintln(w)
		}
		if i < len(sugg)-1 {
			fmt.Fprintln(w, "---")
			fmt.Fprintln(w)
		}
	}
}
