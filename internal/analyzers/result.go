// Package analyzers implements the six independent analysis passes
// described in spec.md §4.3 (file, dependency, template, symbol, PCH and
// performance) and the best-effort merge that combines their partial
// results into one AnalysisResult.
package analyzers

import (
	"time"

	"github.com/yenhunghuang/bha/internal/graph"
)

// FileRank is one compilation unit's place in the slowest-files ranking.
type FileRank struct {
	Path          string
	CompileTime   time.Duration
	FrontendTime  time.Duration
	BackendTime   time.Duration
	TimePercent   float64
	Rank          int
	LinesOfCode   int
	IncludeCount  int
}

// FileAnalysisResult summarizes per-translation-unit compile times. Files
// holds every kept unit, ranked 1..N by compile time descending —
// uncapped, per spec.md §8's exporter round-trip invariant.
type FileAnalysisResult struct {
	TotalBuildTime time.Duration
	TotalFiles     int
	Files          []FileRank
	AverageTime    time.Duration
	MedianTime     time.Duration
	P90Time        time.Duration
	P99Time        time.Duration
	SequentialTime time.Duration
}

// IsEmpty reports whether no files were analyzed.
func (r FileAnalysisResult) IsEmpty() bool { return r.TotalFiles == 0 }

// HeaderInfo is one header's aggregate parse-time footprint across every
// translation unit that includes it.
type HeaderInfo struct {
	Path             string
	TotalParseTime   time.Duration
	InclusionCount   int
	IncludingFiles   []string
	ImpactScore      float64
}

// DependencyAnalysisResult summarizes the #include graph.
type DependencyAnalysisResult struct {
	Headers          []HeaderInfo
	TotalIncludes    int
	UniqueHeaders    int
	MaxIncludeDepth  int
	TotalIncludeTime time.Duration
	Graph            *graph.Graph
}

// IsEmpty reports whether no headers were observed.
func (r DependencyAnalysisResult) IsEmpty() bool { return len(r.Headers) == 0 }

// TemplateInfo is one template signature's aggregate instantiation cost.
type TemplateInfo struct {
	Name               string
	FullSignature      string
	TotalTime          time.Duration
	InstantiationCount int
	TimePercent        float64
}

// TemplateAnalysisResult summarizes template instantiation cost.
type TemplateAnalysisResult struct {
	Templates           []TemplateInfo
	TotalInstantiations int
	TotalTemplateTime    time.Duration
	TemplateTimePercent float64
}

// IsEmpty reports whether no templates were observed.
func (r TemplateAnalysisResult) IsEmpty() bool { return len(r.Templates) == 0 }

// SymbolInfo is one defined symbol's classification, linkage and usage.
type SymbolInfo struct {
	Name            string
	Kind            string
	Linkage         string
	DefinitionFiles []string
	UsageCount      int
	IsODRViolation  bool
	BloatScore      float64
}

// SymbolAnalysisResult summarizes defined-symbol usage and ODR risk.
type SymbolAnalysisResult struct {
	Symbols       []SymbolInfo
	UnusedSymbols int
}

// IsEmpty reports whether no symbols were observed.
func (r SymbolAnalysisResult) IsEmpty() bool { return len(r.Symbols) == 0 }

// PCHCandidate is one header ranked by its precompiled-header suitability.
type PCHCandidate struct {
	Header           string
	IncludingFiles   []string
	TotalParseTime   time.Duration
	AvgParseTime     time.Duration
	InclusionCount   int
	IsStable         bool
	PCHScore         float64
	EstimatedSavings time.Duration
}

// PCHAnalysisResult ranks headers by precompiled-header suitability.
type PCHAnalysisResult struct {
	Candidates       []PCHCandidate
	PotentialSavings time.Duration
}

// IsEmpty reports whether no PCH candidates were found.
func (r PCHAnalysisResult) IsEmpty() bool { return len(r.Candidates) == 0 }

// PerformanceAnalysisResult summarizes wall-clock parallelism efficiency
// and memory pressure across the build. SlowestFiles is capped to a
// literal ten entries regardless of heuristics configuration, distinct
// from FileAnalysisResult.Files which carries the full ranked list.
type PerformanceAnalysisResult struct {
	TotalBuildTime time.Duration
	SequentialTime time.Duration
	Efficiency     float64
	PeakMemory     int64
	TotalMemory    int64
	AverageMemory  int64
	SlowestFiles   []FileRank
}

// IsEmpty reports whether the performance pass produced no signal.
func (r PerformanceAnalysisResult) IsEmpty() bool { return r.TotalBuildTime == 0 }

// AnalysisResult is the composite result every analyzer contributes a
// slice of. The zero value represents "nothing analyzed yet" and is the
// merge identity.
type AnalysisResult struct {
	Files        FileAnalysisResult
	Dependencies DependencyAnalysisResult
	Templates    TemplateAnalysisResult
	Symbols      SymbolAnalysisResult
	PCH          PCHAnalysisResult
	Performance  PerformanceAnalysisResult
}

// Merge folds next into base following spec.md §4.3's fixed,
// order-dependent rule: each field's replace-vs-ignore decision depends
// only on whether next's corresponding section carries data, never on
// which analyzer produced it. Dependencies is special-cased: its header
// list is merged (by path, summing stats) rather than replaced outright,
// since more than one analyzer pass can observe overlapping headers.
func Merge(base, next AnalysisResult) AnalysisResult {
	out := base

	if !next.Files.IsEmpty() {
		out.Files = next.Files
	}
	if next.Performance.TotalBuildTime != 0 {
		out.Performance = next.Performance
	}
	if !next.Dependencies.IsEmpty() {
		out.Dependencies = mergeDependencies(out.Dependencies, next.Dependencies)
	}
	if !next.Templates.IsEmpty() {
		out.Templates = next.Templates
	}
	if !next.Symbols.IsEmpty() {
		out.Symbols = next.Symbols
	}
	if !next.PCH.IsEmpty() {
		out.PCH = next.PCH
	}

	return out
}

func mergeDependencies(base, next DependencyAnalysisResult) DependencyAnalysisResult {
	if len(base.Headers) == 0 {
		return next
	}

	byPath := make(map[string]int, len(base.Headers))
	out := append([]HeaderInfo{}, base.Headers...)
	for i, h := range out {
		byPath[h.Path] = i
	}

	for _, h := range next.Headers {
		if i, ok := byPath[h.Path]; ok {
			existing := out[i]
			existing.TotalParseTime += h.TotalParseTime
			existing.InclusionCount += h.InclusionCount
			existing.IncludingFiles = mergeUnique(existing.IncludingFiles, h.IncludingFiles)
			existing.ImpactScore = h.ImpactScore
			out[i] = existing
		} else {
			byPath[h.Path] = len(out)
			out = append(out, h)
		}
	}

	merged := next
	merged.Headers = out
	if base.TotalIncludeTime > merged.TotalIncludeTime {
		merged.TotalIncludeTime = base.TotalIncludeTime
	}
	if base.MaxIncludeDepth > merged.MaxIncludeDepth {
		merged.MaxIncludeDepth = base.MaxIncludeDepth
	}
	if base.Graph != nil && merged.Graph == nil {
		merged.Graph = base.Graph
	}
	return merged
}

func mergeUnique(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	out := append([]string{}, a...)
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
