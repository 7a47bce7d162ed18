package analyzers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yenhunghuang/bha/internal/heuristics"
	"github.com/yenhunghuang/bha/internal/trace"
)

type stubAnalyzer struct {
	name string
	res  AnalysisResult
	err  error
}

func (s stubAnalyzer) Name() string { return s.name }
func (s stubAnalyzer) Analyze(context.Context, trace.BuildTrace, trace.AnalysisOptions, heuristics.Config) (AnalysisResult, error) {
	return s.res, s.err
}

func TestRunFullAnalysisMergesInRegistrationOrderAndSkipsFailures(t *testing.T) {
	first := stubAnalyzer{name: "first", res: AnalysisResult{Files: FileAnalysisResult{TotalFiles: 3}}}
	failing := stubAnalyzer{name: "failing", err: errors.New("boom")}
	second := stubAnalyzer{name: "second", res: AnalysisResult{Performance: PerformanceAnalysisResult{TotalBuildTime: time.Second}}}

	merged, skipped := RunFullAnalysis(context.Background(), trace.BuildTrace{}, trace.DefaultAnalysisOptions(), heuristics.Defaults(), []Analyzer{first, failing, second})

	assert.Equal(t, 3, merged.Files.TotalFiles)
	assert.Equal(t, time.Second, merged.Performance.TotalBuildTime)
	assert.Len(t, skipped, 1)
	assert.Equal(t, "failing", skipped[0].Name)
}

func TestMergeDependenciesCombinesHeaderStats(t *testing.T) {
	base := AnalysisResult{Dependencies: DependencyAnalysisResult{
		Headers: []HeaderInfo{{Path: "a.h", TotalParseTime: time.Millisecond, InclusionCount: 1, IncludingFiles: []string{"x.cpp"}}},
	}}
	next := AnalysisResult{Dependencies: DependencyAnalysisResult{
		Headers: []HeaderInfo{{Path: "a.h", TotalParseTime: time.Millisecond, InclusionCount: 1, IncludingFiles: []string{"y.cpp"}}},
	}}

	merged := Merge(base, next)
	assert.Len(t, merged.Dependencies.Headers, 1)
	assert.Equal(t, 2*time.Millisecond, merged.Dependencies.Headers[0].TotalParseTime)
	assert.ElementsMatch(t, []string{"x.cpp", "y.cpp"}, merged.Dependencies.Headers[0].IncludingFiles)
}
