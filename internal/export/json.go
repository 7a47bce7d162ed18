package export

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/yenhunghuang/bha/internal/analyzers"
	"github.com/yenhunghuang/bha/internal/bhaerr"
	"github.com/yenhunghuang/bha/internal/suggestions"
)

// JSONExporter serializes the analysis into the stable, versioned
// document layout spec.md §4.5 fixes as "the bit-exact contract for
// downstream consumers." Time fields are milliseconds as 64-bit
// doubles, derived from integer microseconds (spec.md §9).
type JSONExporter struct{}

// NewJSONExporter constructs a JSONExporter.
func NewJSONExporter() *JSONExporter { return &JSONExporter{} }

// Format implements Exporter.
func (JSONExporter) Format() Format { return JSON }

// Metadata implements Exporter.
func (JSONExporter) Metadata() Metadata {
	return Metadata{Name: "json", Version: bhaVersion, SupportedFormats: []Format{JSON}}
}

// ExportToString implements Exporter.
func (e JSONExporter) ExportToString(ctx context.Context, result analyzers.AnalysisResult, sugg []suggestions.Suggestion, opts ExportOptions, progress ProgressCallback) (string, error) {
	var buf bytes.Buffer
	if err := e.ExportToStream(ctx, &buf, result, sugg, opts, progress); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExportToStream implements Exporter.
func (JSONExporter) ExportToStream(_ context.Context, w io.Writer, result analyzers.AnalysisResult, sugg []suggestions.Suggestion, opts ExportOptions, progress ProgressCallback) error {
	if progress == nil {
		progress = noopProgress
	}
	if opts.JSONSchemaVersion == "" {
		opts.JSONSchemaVersion = "1.0.0"
	}

	progress(0, 5, "build_document")
	doc := buildDocument(result, sugg, opts, 0, time.Now().UTC())

	progress(1, 5, "validate_schema")
	if err := ValidateDocumentJSON(doc); err != nil {
		return bhaerr.Newf(bhaerr.InternalError, "exported document failed schema validation: %v", err)
	}

	progress(2, 5, "marshal")
	enc := json.NewEncoder(w)
	if opts.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return bhaerr.Newf(bhaerr.IoError, "encode json export: %v", err)
	}

	progress(5, 5, "done")
	return nil
}

// DocumentSchema describes the stable top-level JSON layout via
// google/jsonschema-go, the same schema-description library
// standardbeagle-lci uses to describe its MCP tool payloads. This makes
// spec.md §8 property 13 ("JSON schema stability") an executable check
// rather than only a written invariant.
func DocumentSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Required: []string{
			"$schema", "schema_version", "bha_version", "generated_at",
			"summary", "files",
		},
		Properties: map[string]*jsonschema.Schema{
			"$schema":        {Type: "string"},
			"schema_version": {Type: "string"},
			"bha_version":    {Type: "string"},
			"generated_at":   {Type: "string"},
			"summary": {
				Type:     "object",
				Required: []string{"total_files", "total_compile_time_ms", "analysis_duration_ms", "suggestions_count"},
				Properties: map[string]*jsonschema.Schema{
					"total_files":           {Type: "integer"},
					"total_compile_time_ms": {Type: "number"},
					"analysis_duration_ms":  {Type: "number"},
					"suggestions_count":     {Type: "integer"},
				},
			},
			"files": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type:     "object",
					Required: []string{"path", "total_time_ms"},
					Properties: map[string]*jsonschema.Schema{
						"path":          {Type: "string"},
						"total_time_ms": {Type: "number"},
						"frontend_time_ms": {Type: "number"},
						"backend_time_ms":  {Type: "number"},
						"lines_of_code":    {Type: "integer"},
						"include_count":    {Type: "integer"},
					},
				},
			},
			"dependencies": {Type: "object"},
			"templates":    {Type: "object"},
			"symbols":      {Type: "object"},
			"suggestions":  {Type: "array"},
		},
	}
}

// ValidateDocumentJSON round-trips doc through JSON and validates it
// against DocumentSchema, operationalizing spec.md §8 property 13.
func ValidateDocumentJSON(doc document) error {
	schema := DocumentSchema()
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return err
	}
	return resolved.Validate(instance)
}
