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

func TestTemplateAnalyzerAggregatesBySignature(t *testing.T) {
	bt := trace.BuildTrace{
		TotalTime: 1 * time.Second,
		Units: []trace.CompilationUnit{
			{
				SourceFile: "a.cpp",
				Templates: []trace.TemplateInstantiation{
					{Name: "Vector", FullSignature: "Vector<int>", Time: 50 * time.Millisecond, Count: 2},
				},
			},
			{
				SourceFile: "b.cpp",
				Templates: []trace.TemplateInstantiation{
					{Name: "Vector", FullSignature: "Vector<int>", Time: 30 * time.Millisecond, Count: 1},
					{Name: "Map", FullSignature: "Map<int,int>", Time: 20 * time.Millisecond, Count: 1},
				},
			},
		},
	}

	res, err := TemplateAnalyzer{}.Analyze(context.Background(), bt, trace.DefaultAnalysisOptions(), heuristics.Defaults())
	require.NoError(t, err)

	require.Len(t, res.Templates.Templates, 2)
	assert.Equal(t, "Vector<int>", res.Templates.Templates[0].FullSignature)
	assert.Equal(t, 80*time.Millisecond, res.Templates.Templates[0].TotalTime)
	assert.Equal(t, 3, res.Templates.Templates[0].InstantiationCount)
	assert.Equal(t, 4, res.Templates.TotalInstantiations)
	assert.Equal(t, 100*time.Millisecond, res.Templates.TotalTemplateTime)
	assert.InDelta(t, 10.0, res.Templates.TemplateTimePercent, 0.01)
}

func TestTemplateAnalyzerSkippedWhenDisabled(t *testing.T) {
	opts := trace.DefaultAnalysisOptions()
	opts.AnalyzeTemplates = false
	bt := trace.BuildTrace{Units: []trace.CompilationUnit{
		{SourceFile: "a.cpp", Templates: []trace.TemplateInstantiation{{FullSignature: "X<int>", Count: 1}}},
	}}

	res, err := TemplateAnalyzer{}.Analyze(context.Background(), bt, opts, heuristics.Defaults())
	require.NoError(t, err)
	assert.True(t, res.Templates.IsEmpty())
}
