package export

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownExporterContainsExpectedSections(t *testing.T) {
	exporter := NewMarkdownExporter()
	out, err := exporter.ExportToString(context.Background(), sampleResult(), sampleSuggestions(), DefaultExportOptions(), nil)
	require.NoError(t, err)

	assert.Contains(t, out, "# Build Hotspot Analysis Report")
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "## Top Files")
	assert.Contains(t, out, "## Suggestions")
	assert.Contains(t, out, "Precompile common.h")
	assert.Contains(t, out, "## Dependency Stats")
}

func TestMarkdownExporterOmitsSuggestionsWhenExcluded(t *testing.T) {
	exporter := NewMarkdownExporter()
	opts := DefaultExportOptions()
	opts.IncludeSuggestions = false

	out, err := exporter.ExportToString(context.Background(), sampleResult(), sampleSuggestions(), opts, nil)
	require.NoError(t, err)
	assert.False(t, strings.Contains(out, "## Suggestions"))
}
