package heuristics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsMatchReference(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 10, cfg.Analysis.MaxFilesToReport)
	assert.Equal(t, 30, cfg.Analysis.MaxTemplatesToReport)
	assert.Equal(t, 10, cfg.Analysis.MaxHeadersToReport)
	assert.Equal(t, 5, cfg.Analysis.MaxHeaderChainDepth)
	assert.Equal(t, 10*time.Millisecond, cfg.Analysis.MinFileTime)
	assert.Equal(t, 70, cfg.Analysis.MaxNameLength)

	assert.Equal(t, 10, cfg.PCH.MinIncludeCount)
	assert.Equal(t, 500*time.Millisecond, cfg.PCH.MinAggregateTime)
	assert.Equal(t, 50, cfg.PCH.Priority.CriticalIncludes)
	assert.Equal(t, 20, cfg.PCH.Priority.HighIncludes)
	assert.InDelta(t, 0.05, cfg.PCH.Priority.CriticalTimeRatio, 1e-9)
	assert.InDelta(t, 0.02, cfg.PCH.Priority.HighTimeRatio, 1e-9)

	assert.Equal(t, 5, cfg.Templates.MinInstantiationCount)
	assert.Equal(t, 100*time.Millisecond, cfg.Templates.MinTotalTime)
	assert.InDelta(t, 10.0, cfg.Templates.HighPriorityPercent, 1e-9)
	assert.Equal(t, 10, cfg.Templates.RecursiveDepthWarning)

	assert.Equal(t, 500*time.Millisecond, cfg.CodeGen.LongCodegenThreshold)
	assert.Equal(t, 100*time.Millisecond, cfg.CodeGen.InlineWarningThreshold)

	assert.Equal(t, 100*time.Millisecond, cfg.Headers.MinParseTime)
	assert.Equal(t, 5, cfg.Headers.MinIncludersForSplit)
	assert.Equal(t, 2000*time.Millisecond, cfg.Headers.Time.Critical)
	assert.Equal(t, 1000*time.Millisecond, cfg.Headers.Time.High)
	assert.Equal(t, 500*time.Millisecond, cfg.Headers.Time.Medium)
	assert.Equal(t, 100*time.Millisecond, cfg.Headers.Time.Low)

	assert.Equal(t, 50, cfg.UnityBuild.FilesPerUnit)
	assert.Equal(t, 10, cfg.UnityBuild.MinFilesThreshold)
	assert.InDelta(t, 0.45, cfg.UnityBuild.HeaderParsingRatio, 1e-9)

	assert.Equal(t, 50*time.Millisecond, cfg.ForwardDecl.MinParseTime)
	assert.Equal(t, 3, cfg.ForwardDecl.MinUsageSites)
}

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/heuristics.yaml")
	assert.Error(t, err)
}
