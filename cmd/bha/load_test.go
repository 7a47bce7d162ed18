package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTraceJSON = `{
	"ID": "build-1",
	"Units": [
		{"SourceFile": "a.cpp", "Metrics": {"Path": "a.cpp", "TotalTime": 1000000000}},
		{"SourceFile": "b.cpp", "Metrics": {"Path": "b.cpp", "TotalTime": 2000000000}}
	]
}`

func writeTraceFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sampleTraceJSON), 0o644))
	return path
}

func TestDiscoverTraceFilesRecursesDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeTraceFile(t, dir, "one.json")
	writeTraceFile(t, sub, "two.json")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("x"), 0o644))

	files, err := discoverTraceFiles([]string{dir})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDiscoverTraceFilesMissingPathIsNotFound(t *testing.T) {
	_, err := discoverTraceFiles([]string{"/no/such/path.json"})
	assert.Error(t, err)
}

func TestAggregateTracesConcatenatesUnits(t *testing.T) {
	dir := t.TempDir()
	a := writeTraceFile(t, dir, "a.json")
	b := writeTraceFile(t, dir, "b.json")

	bt, err := aggregateTraces([]string{a, b})
	require.NoError(t, err)
	assert.Len(t, bt.Units, 4)
	assert.Equal(t, "build-1", bt.ID)
}
