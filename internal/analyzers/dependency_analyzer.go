package analyzers

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/yenhunghuang/bha/internal/graph"
	"github.com/yenhunghuang/bha/internal/heuristics"
	"github.com/yenhunghuang/bha/internal/trace"
)

// DependencyAnalyzer builds the include graph and ranks headers by
// impact score. Ported from
// original_source/sources/bha/analyzers/dependency_analyzer.cpp.
type DependencyAnalyzer struct{}

// Name identifies this pass.
func (DependencyAnalyzer) Name() string { return "dependency" }

type headerAccum struct {
	totalParseTimeNs int64
	inclusionCount   int
	includingFiles   map[string]bool
	order            []string // preserves first-seen includer order
}

// Analyze implements Analyzer.
func (DependencyAnalyzer) Analyze(_ context.Context, bt trace.BuildTrace, opts trace.AnalysisOptions, _ heuristics.Config) (AnalysisResult, error) {
	if !opts.AnalyzeIncludes {
		return AnalysisResult{}, nil
	}
	headerMap := make(map[string]*headerAccum)
	totalIncludes := 0
	maxDepth := 0
	var totalIncludeTimeNs int64

	builder := graph.NewBuilder()
	g := builder.BuildFromTrace(bt)

	for _, u := range bt.Units {
		sourceKey := trace.UnitKey(u)
		for _, inc := range u.Includes {
			totalIncludes++
			headerKey := trace.NormalizePath(inc.Header)

			acc, ok := headerMap[headerKey]
			if !ok {
				acc = &headerAccum{includingFiles: make(map[string]bool)}
				headerMap[headerKey] = acc
			}
			acc.totalParseTimeNs += inc.ParseTime.Nanoseconds()
			acc.inclusionCount++
			if !acc.includingFiles[sourceKey] {
				acc.includingFiles[sourceKey] = true
				acc.order = append(acc.order, sourceKey)
			}

			totalIncludeTimeNs += inc.ParseTime.Nanoseconds()
			if inc.Depth > maxDepth {
				maxDepth = inc.Depth
			}
		}
	}

	headers := make([]HeaderInfo, 0, len(headerMap))
	for path, acc := range headerMap {
		impact := float64(acc.totalParseTimeNs) * math.Sqrt(float64(acc.inclusionCount))
		headers = append(headers, HeaderInfo{
			Path:           path,
			TotalParseTime: time.Duration(acc.totalParseTimeNs),
			InclusionCount: acc.inclusionCount,
			IncludingFiles: append([]string{}, acc.order...),
			ImpactScore:    impact,
		})
	}
	sort.Slice(headers, func(i, j int) bool {
		if headers[i].ImpactScore != headers[j].ImpactScore {
			return headers[i].ImpactScore > headers[j].ImpactScore
		}
		return headers[i].Path < headers[j].Path
	})

	result := DependencyAnalysisResult{
		Headers:          headers,
		TotalIncludes:    totalIncludes,
		UniqueHeaders:    len(headerMap),
		MaxIncludeDepth:  maxDepth,
		TotalIncludeTime: time.Duration(totalIncludeTimeNs),
		Graph:            g,
	}
	return AnalysisResult{Dependencies: result}, nil
}
