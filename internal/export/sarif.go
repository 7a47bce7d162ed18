package export

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/yenhunghuang/bha/internal/analyzers"
	"github.com/yenhunghuang/bha/internal/bhaerr"
	"github.com/yenhunghuang/bha/internal/suggestions"
)

// SARIFExporter produces a SARIF 2.1.0 log with one result per
// suggestion. SARIF is named in spec.md §1's prose and carried in
// original_source's ExportFormat enum even though no SarifExporter class
// was stubbed in the reference header; this is a first-class
// implementation of it.
type SARIFExporter struct{}

// NewSARIFExporter constructs a SARIFExporter.
func NewSARIFExporter() *SARIFExporter { return &SARIFExporter{} }

// Format implements Exporter.
func (SARIFExporter) Format() Format { return SARIF }

// Metadata implements Exporter.
func (SARIFExporter) Metadata() Metadata {
	return Metadata{Name: "sarif", Version: bhaVersion, SupportedFormats: []Format{SARIF}}
}

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID  string         `json:"ruleId"`
	Level   string         `json:"level"`
	Message sarifMessage   `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// sarifLevel maps a Suggestion priority to a SARIF result level.
func sarifLevel(p suggestions.Priority) string {
	switch p {
	case suggestions.Critical, suggestions.High:
		return "error"
	case suggestions.Medium:
		return "warning"
	default:
		return "note"
	}
}

// ExportToString implements Exporter.
func (e SARIFExporter) ExportToString(ctx context.Context, result analyzers.AnalysisResult, sugg []suggestions.Suggestion, opts ExportOptions, progress ProgressCallback) (string, error) {
	var buf bytes.Buffer
	if err := e.ExportToStream(ctx, &buf, result, sugg, opts, progress); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExportToStream implements Exporter.
func (SARIFExporter) ExportToStream(_ context.Context, w io.Writer, _ analyzers.AnalysisResult, sugg []suggestions.Suggestion, opts ExportOptions, progress ProgressCallback) error {
	if progress == nil {
		progress = noopProgress
	}

	progress(0, 2, "build_results")
	filtered := filteredSuggestions(sugg, opts)
	results := make([]sarifResult, 0, len(filtered))
	for _, s := range filtered {
		res := sarifResult{
			RuleID:  s.Type.String(),
			Level:   sarifLevel(s.Priority),
			Message: sarifMessage{Text: s.Description},
		}
		if len(s.Targets) > 0 {
			t := s.Targets[0]
			loc := sarifLocation{PhysicalLocation: sarifPhysicalLocation{ArtifactLocation: sarifArtifactLocation{URI: t.Path}}}
			if t.Line > 0 {
				loc.PhysicalLocation.Region = &sarifRegion{StartLine: t.Line}
			}
			res.Locations = []sarifLocation{loc}
		}
		results = append(results, res)
	}

	log := sarifLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool:    sarifTool{Driver: sarifDriver{Name: "bha", Version: bhaVersion}},
			Results: results,
		}},
	}

	progress(1, 2, "marshal")
	enc := json.NewEncoder(w)
	if opts.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(log); err != nil {
		return bhaerr.Newf(bhaerr.IoError, "encode sarif export: %v", err)
	}

	progress(2, 2, "done")
	return nil
}
