package analyzers

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/yenhunghuang/bha/internal/heuristics"
	"github.com/yenhunghuang/bha/internal/trace"
)

// FileAnalyzer ranks compilation units by compile time and derives the
// build's basic timing statistics. Ported from
// original_source/sources/bha/analyzers/file_analyzer.cpp.
type FileAnalyzer struct{}

// Name identifies this pass in logs and the suggestion engine.
func (FileAnalyzer) Name() string { return "file" }

type keptUnit struct {
	path         string
	time         time.Duration
	frontendTime time.Duration
	backendTime  time.Duration
	linesOfCode  int
	includeCount int
}

// Analyze implements Analyzer.
func (FileAnalyzer) Analyze(_ context.Context, bt trace.BuildTrace, opts trace.AnalysisOptions, _ heuristics.Config) (AnalysisResult, error) {
	var keptUnits []keptUnit
	for _, u := range bt.Units {
		if u.Metrics.TotalTime < opts.MinDurationThreshold {
			continue
		}
		keptUnits = append(keptUnits, keptUnit{
			path:         trace.UnitKey(u),
			time:         u.Metrics.TotalTime,
			frontendTime: u.Metrics.FrontendTime,
			backendTime:  u.Metrics.BackendTime,
			linesOfCode:  u.Metrics.PreprocessedLines,
			includeCount: len(u.Includes),
		})
	}

	result := FileAnalysisResult{
		TotalBuildTime: bt.TotalTime,
		TotalFiles:     len(bt.Units),
	}
	if len(keptUnits) == 0 {
		return AnalysisResult{Files: result}, nil
	}

	total := bt.EffectiveTotalTime()

	ranked := append([]keptUnit{}, keptUnits...)
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].time > ranked[j].time })

	// Files carries every kept unit, uncapped: spec.md §8's exporter
	// round-trip invariant requires the full ranked list here. The
	// separately-capped top-ten view lives on PerformanceAnalysisResult,
	// computed independently by PerformanceAnalyzer.
	result.Files = make([]FileRank, 0, len(ranked))
	for i, u := range ranked {
		percent := 0.0
		if total > 0 {
			percent = 100 * float64(u.time) / float64(total)
		}
		result.Files = append(result.Files, FileRank{
			Path:         u.path,
			CompileTime:  u.time,
			FrontendTime: u.frontendTime,
			BackendTime:  u.backendTime,
			TimePercent:  percent,
			Rank:         i + 1,
			LinesOfCode:  u.linesOfCode,
			IncludeCount: u.includeCount,
		})
	}

	ascending := append([]keptUnit{}, keptUnits...)
	sort.Slice(ascending, func(i, j int) bool { return ascending[i].time < ascending[j].time })

	var sum time.Duration
	for _, u := range ascending {
		sum += u.time
	}
	result.SequentialTime = sum
	result.AverageTime = sum / time.Duration(len(ascending))
	result.MedianTime = percentileDuration(ascending, 50)
	result.P90Time = percentileDuration(ascending, 90)
	result.P99Time = percentileDuration(ascending, 99)

	return AnalysisResult{Files: result}, nil
}

func percentileDuration(ascending []keptUnit, p float64) time.Duration {
	n := len(ascending)
	if n == 0 {
		return 0
	}
	idx := int(math.Floor(p / 100.0 * float64(n-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return ascending[idx].time
}
