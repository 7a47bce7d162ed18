package analyzers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yenhunghuang/bha/internal/heuristics"
	"github.com/yenhunghuang/bha/internal/trace"
)

func TestDependencyAnalyzerRanksByImpactScore(t *testing.T) {
	bt := trace.BuildTrace{
		Units: []trace.CompilationUnit{
			{
				SourceFile: "a.cpp",
				Includes: []trace.IncludeInfo{
					{Header: "common.h", ParseTime: 10 * time.Millisecond, Depth: 1},
					{Header: "rare.h", ParseTime: 100 * time.Millisecond, Depth: 2},
				},
			},
			{
				SourceFile: "b.cpp",
				Includes: []trace.IncludeInfo{
					{Header: "common.h", ParseTime: 10 * time.Millisecond, Depth: 1},
				},
			},
		},
	}

	res, err := DependencyAnalyzer{}.Analyze(context.Background(), bt, trace.DefaultAnalysisOptions(), heuristics.Defaults())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Dependencies.TotalIncludes)
	assert.Equal(t, 2, res.Dependencies.UniqueHeaders)
	assert.Equal(t, 2, res.Dependencies.MaxIncludeDepth)
	require.NotNil(t, res.Dependencies.Graph)

	require.Len(t, res.Dependencies.Headers, 2)
	common := findHeader(t, res.Dependencies.Headers, "common.h")
	assert.Equal(t, 2, common.InclusionCount)
	assert.ElementsMatch(t, []string{"a.cpp", "b.cpp"}, common.IncludingFiles)
}

func findHeader(t *testing.T, headers []HeaderInfo, path string) HeaderInfo {
	t.Helper()
	for _, h := range headers {
		if h.Path == path {
			return h
		}
	}
	t.Fatalf("header %s not found", path)
	return HeaderInfo{}
}

func TestDependencyAnalyzerSkippedWhenDisabled(t *testing.T) {
	opts := trace.DefaultAnalysisOptions()
	opts.AnalyzeIncludes = false
	bt := trace.BuildTrace{Units: []trace.CompilationUnit{
		{SourceFile: "a.cpp", Includes: []trace.IncludeInfo{{Header: "a.h"}}},
	}}

	res, err := DependencyAnalyzer{}.Analyze(context.Background(), bt, opts, heuristics.Defaults())
	require.NoError(t, err)
	assert.True(t, res.Dependencies.IsEmpty())
}
