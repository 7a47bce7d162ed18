package analyzers

import (
	"context"
	"sort"
	"time"

	"github.com/yenhunghuang/bha/internal/heuristics"
	"github.com/yenhunghuang/bha/internal/trace"
)

// slowestFilesCap is the literal cap on PerformanceAnalysisResult's
// SlowestFiles, per the original's fixed top-ten view — distinct from
// (and not governed by) heuristics.AnalysisConfig.MaxFilesToReport.
const slowestFilesCap = 10

// PerformanceAnalyzer derives parallel build efficiency and aggregate
// memory pressure. No reference C++ implementation exists for this pass
// (original_source carries only the PerformanceAnalysisResult struct in
// analyzer.hpp) so this is built directly from spec.md's prose: wall-clock
// efficiency is the ratio of sequential (sum of per-unit) time to actual
// wall time, and memory stats aggregate every unit's MemoryMetrics.
type PerformanceAnalyzer struct{}

// Name identifies this pass.
func (PerformanceAnalyzer) Name() string { return "performance" }

// Analyze implements Analyzer.
func (PerformanceAnalyzer) Analyze(_ context.Context, bt trace.BuildTrace, _ trace.AnalysisOptions, _ heuristics.Config) (AnalysisResult, error) {
	wallTime := bt.EffectiveTotalTime()
	if wallTime == 0 {
		return AnalysisResult{}, nil
	}

	var sequential int64
	var totalMemory, peakMemory int64
	type unitTime struct {
		path string
		time time.Duration
	}
	var ranked []unitTime
	for _, u := range bt.Units {
		sequential += int64(u.Metrics.TotalTime)
		totalMemory += u.Metrics.Memory.Peak
		if u.Metrics.Memory.Peak > peakMemory {
			peakMemory = u.Metrics.Memory.Peak
		}
		ranked = append(ranked, unitTime{path: trace.UnitKey(u), time: u.Metrics.TotalTime})
	}

	sort.Slice(ranked, func(i, j int) bool { return ranked[i].time > ranked[j].time })
	if len(ranked) > slowestFilesCap {
		ranked = ranked[:slowestFilesCap]
	}
	slowestFiles := make([]FileRank, 0, len(ranked))
	for i, u := range ranked {
		percent := 0.0
		if wallTime > 0 {
			percent = 100 * float64(u.time) / float64(wallTime)
		}
		slowestFiles = append(slowestFiles, FileRank{
			Path:        u.path,
			CompileTime: u.time,
			TimePercent: percent,
			Rank:        i + 1,
		})
	}

	efficiency := 0.0
	if wallTime > 0 {
		efficiency = float64(sequential) / float64(wallTime)
	}

	averageMemory := int64(0)
	if n := len(bt.Units); n > 0 {
		averageMemory = totalMemory / int64(n)
	}

	result := PerformanceAnalysisResult{
		TotalBuildTime: wallTime,
		SequentialTime: time.Duration(sequential),
		Efficiency:     efficiency,
		PeakMemory:     peakMemory,
		TotalMemory:    totalMemory,
		AverageMemory:  averageMemory,
		SlowestFiles:   slowestFiles,
	}
	return AnalysisResult{Performance: result}, nil
}
