package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yenhunghuang/bha/internal/analyzers"
	"github.com/yenhunghuang/bha/internal/suggestions"
)

// CSVExporter writes two RFC-4180-escaped sections separated by a blank
// line, each introduced by a "# <Name>" comment line, per spec.md §4.5.
type CSVExporter struct{}

// NewCSVExporter constructs a CSVExporter.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

// Format implements Exporter.
func (CSVExporter) Format() Format { return CSV }

// Metadata implements Exporter.
func (CSVExporter) Metadata() Metadata {
	return Metadata{Name: "csv", Version: bhaVersion, SupportedFormats: []Format{CSV}}
}

// ExportToString implements Exporter.
func (e CSVExporter) ExportToString(ctx context.Context, result analyzers.AnalysisResult, sugg []suggestions.Suggestion, opts ExportOptions, progress ProgressCallback) (string, error) {
	var buf bytes.Buffer
	if err := e.ExportToStream(ctx, &buf, result, sugg, opts, progress); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExportToStream implements Exporter.
func (CSVExporter) ExportToStream(_ context.Context, w io.Writer, result analyzers.AnalysisResult, sugg []suggestions.Suggestion, opts ExportOptions, progress ProgressCallback) error {
	if progress == nil {
		progress = noopProgress
	}

	progress(0, 2, "files")
	fmt.Fprintln(w, "# Files")
	writeCSVRow(w, []string{"path", "total_time_ms", "frontend_time_ms", "backend_time_ms", "lines_of_code", "include_count"})
	for _, f := range filteredFiles(result, opts) {
		writeCSVRow(w, []string{
			f.Path,
			formatFloat(msOf(f.CompileTime)),
			formatFloat(msOf(f.FrontendTime)),
			formatFloat(msOf(f.BackendTime)),
			strconv.Itoa(f.LinesOfCode),
			strconv.Itoa(f.IncludeCount),
		})
	}

	fmt.Fprintln(w)

	progress(1, 2, "suggestions")
	fmt.Fprintln(w, "# Suggestions")
	writeCSVRow(w, []string{"type", "priority", "confidence", "estimated_savings_ms", "target_file", "target_line", "title"})
	if opts.IncludeSuggestions {
		for _, s := range filteredSuggestions(sugg, opts) {
			target, line := "", ""
			if len(s.Targets) > 0 {
				target = s.Targets[0].Path
				line = strconv.Itoa(s.Targets[0].Line)
			}
			writeCSVRow(w, []string{
				s.Type.String(),
				s.Priority.String(),
				formatFloat(s.Impact.Confidence),
				formatFloat(msOf(s.Impact.EstimatedTimeSavings)),
				target,
				line,
				s.Title,
			})
		}
	}

	progress(2, 2, "done")
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// writeCSVRow writes one RFC-4180 row: fields containing a comma, quote,
// CR or LF are quoted, with interior quotes doubled, per spec.md §4.5.
func writeCSVRow(w io.Writer, fields []string) {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = csvEscape(f)
	}
	fmt.Fprintln(w, strings.Join(quoted, ","))
}

func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
