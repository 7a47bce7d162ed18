package export

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSARIFExporterProducesOneResultPerSuggestion(t *testing.T) {
	exporter := NewSARIFExporter()
	out, err := exporter.ExportToString(context.Background(), sampleResult(), sampleSuggestions(), DefaultExportOptions(), nil)
	require.NoError(t, err)

	var log sarifLog
	require.NoError(t, json.Unmarshal([]byte(out), &log))

	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	require.Len(t, log.Runs[0].Results, 1)
	assert.Equal(t, "PCH_CANDIDATE", log.Runs[0].Results[0].RuleID)
	assert.Equal(t, "error", log.Runs[0].Results[0].Level)
}
