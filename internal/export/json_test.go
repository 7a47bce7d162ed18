package export

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yenhunghuang/bha/internal/analyzers"
	"github.com/yenhunghuang/bha/internal/suggestions"
)

func sampleResult() analyzers.AnalysisResult {
	return analyzers.AnalysisResult{
		Files: analyzers.FileAnalysisResult{
			TotalFiles: 2,
			Files: []analyzers.FileRank{
				{Path: "a.cpp", CompileTime: 500 * time.Millisecond, TimePercent: 60, Rank: 1, LinesOfCode: 100, IncludeCount: 5},
				{Path: "b.cpp", CompileTime: 300 * time.Millisecond, TimePercent: 40, Rank: 2, LinesOfCode: 80, IncludeCount: 3},
			},
		},
		Performance: analyzers.PerformanceAnalysisResult{TotalBuildTime: 800 * time.Millisecond},
		Dependencies: analyzers.DependencyAnalysisResult{
			Headers: []analyzers.HeaderInfo{
				{Path: "common.h", InclusionCount: 5, IncludingFiles: []string{"a.cpp", "b.cpp"}, TotalParseTime: 200 * time.Millisecond, ImpactScore: 12.5},
			},
			TotalIncludes: 5,
			UniqueHeaders: 1,
		},
	}
}

func sampleSuggestions() []suggestions.Suggestion {
	return []suggestions.Suggestion{
		{
			Type:     suggestions.PCHCandidateSuggestion,
			Priority: suggestions.High,
			Title:    "Precompile common.h",
			Targets:  []suggestions.FileTarget{{Path: "common.h"}},
			Impact:   suggestions.Impact{EstimatedTimeSavings: 150 * time.Millisecond, Confidence: 0.9},
			Safe:     true,
		},
	}
}

func TestJSONExporterRoundTrip(t *testing.T) {
	exporter := NewJSONExporter()
	opts := DefaultExportOptions()

	out, err := exporter.ExportToString(context.Background(), sampleResult(), sampleSuggestions(), opts, nil)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	assert.Equal(t, "1.0.0", parsed["schema_version"])
	files := parsed["files"].([]any)
	assert.Len(t, files, 2, "both files survive with no min_compile_time filter")

	sugg := parsed["suggestions"].([]any)
	assert.Len(t, sugg, 1)
}

func TestJSONExporterMinCompileTimeFilter(t *testing.T) {
	exporter := NewJSONExporter()
	opts := DefaultExportOptions()
	opts.MinCompileTimeMs = 400 // drops b.cpp (300ms)

	out, err := exporter.ExportToString(context.Background(), sampleResult(), nil, opts, nil)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	files := parsed["files"].([]any)
	require.Len(t, files, 1)
	assert.Equal(t, "a.cpp", files[0].(map[string]any)["path"])
}

func TestJSONExporterValidatesAgainstSchema(t *testing.T) {
	doc := buildDocument(sampleResult(), sampleSuggestions(), DefaultExportOptions(), 5*time.Millisecond, time.Now().UTC())
	assert.NoError(t, ValidateDocumentJSON(doc))
}

func TestJSONExporterNoSuggestionsWhenExcluded(t *testing.T) {
	exporter := NewJSONExporter()
	opts := DefaultExportOptions()
	opts.IncludeSuggestions = false

	out, err := exporter.ExportToString(context.Background(), sampleResult(), sampleSuggestions(), opts, nil)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	_, hasSuggestions := parsed["suggestions"]
	assert.False(t, hasSuggestions, "suggestions key is omitted entirely when IncludeSuggestions is false")
}
