package export

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterTwoSections(t *testing.T) {
	exporter := NewCSVExporter()
	out, err := exporter.ExportToString(context.Background(), sampleResult(), sampleSuggestions(), DefaultExportOptions(), nil)
	require.NoError(t, err)

	sections := strings.Split(out, "\n\n")
	require.Len(t, sections, 2, "CSV output has exactly two blank-line-separated sections")
	assert.True(t, strings.HasPrefix(sections[0], "# Files"))
	assert.True(t, strings.HasPrefix(sections[1], "# Suggestions"))
}

func TestCSVEscaping(t *testing.T) {
	assert.Equal(t, `plain`, csvEscape("plain"))
	assert.Equal(t, `"a,b"`, csvEscape("a,b"))
	assert.Equal(t, `"say ""hi"""`, csvEscape(`say "hi"`))
	assert.Equal(t, "\"line1\nline2\"", csvEscape("line1\nline2"))
}
