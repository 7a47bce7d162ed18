package analyzers

import (
	"context"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yenhunghuang/bha/internal/heuristics"
	"github.com/yenhunghuang/bha/internal/trace"
)

// PCHAnalyzer ranks headers by precompiled-header suitability. Ported
// from original_source/sources/bha/analyzers/pch_analyzer.cpp.
type PCHAnalyzer struct{}

// Name identifies this pass.
func (PCHAnalyzer) Name() string { return "pch" }

// stlHeaderNames is the reference's system-header allowlist: standard
// library header names recognized regardless of their include path.
var stlHeaderNames = map[string]bool{
	"algorithm": true, "any": true, "array": true, "atomic": true,
	"bitset": true, "chrono": true, "codecvt": true, "complex": true,
	"condition_variable": true, "deque": true, "exception": true,
	"filesystem": true, "forward_list": true, "fstream": true,
	"functional": true, "future": true, "initializer_list": true,
	"iomanip": true, "ios": true, "iosfwd": true, "iostream": true,
	"istream": true, "iterator": true, "limits": true, "list": true,
	"locale": true, "map": true, "memory": true, "memory_resource": true,
	"mutex": true, "new": true, "numeric": true, "optional": true,
	"ostream": true, "queue": true, "random": true, "ratio": true,
	"regex": true, "scoped_allocator": true, "set": true,
	"shared_mutex": true, "sstream": true, "stack": true,
	"stdexcept": true, "streambuf": true, "string": true,
	"string_view": true, "strstream": true, "system_error": true,
	"thread": true, "tuple": true, "type_traits": true, "typeindex": true,
	"typeinfo": true, "unordered_map": true, "unordered_set": true,
	"utility": true, "valarray": true, "variant": true, "vector": true,
	"cassert": true, "cctype": true, "cerrno": true, "cfenv": true,
	"cfloat": true, "cinttypes": true, "climits": true, "clocale": true,
	"cmath": true, "csetjmp": true, "csignal": true, "cstdarg": true,
	"cstddef": true, "cstdint": true, "cstdio": true, "cstdlib": true,
	"cstring": true, "ctime": true, "cuchar": true, "cwchar": true,
	"cwctype": true,
}

var stableHeaderMarkers = []string{
	"_fwd", "fwd_", "forward", "_types", "types_", "_defs", "config",
	"version", "platform", "stdafx", "pch", "precompile",
}

func isSystemHeader(path string) bool {
	if strings.Contains(path, "/usr/include") || strings.Contains(path, "/usr/local/include") ||
		strings.HasPrefix(path, "/opt/") || strings.HasPrefix(path, "C:\\Program Files") ||
		strings.HasPrefix(path, "<") {
		return true
	}
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stlHeaderNames[base] || stlHeaderNames[stem]
}

func isStableHeader(path string) bool {
	if isSystemHeader(path) {
		return true
	}
	lower := strings.ToLower(filepath.Base(path))
	for _, marker := range stableHeaderMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// calculatePCHScore scores a header's precompiled-header suitability,
// matching calculate_pch_score's log-weighted formula exactly.
func calculatePCHScore(totalMs, avgMs float64, includingFiles, inclusionCount int, isStable bool) float64 {
	timeImpact := 0.0
	if totalMs > 0 {
		timeImpact = math.Log(totalMs + 1)
	}
	coverage := 0.0
	if includingFiles > 0 {
		coverage = math.Log(float64(includingFiles) + 1)
	}
	efficiency := 0.0
	if avgMs > 0 {
		efficiency = math.Log(avgMs + 1)
	}
	repetition := 1.0
	if inclusionCount > includingFiles {
		repetition = 1 + math.Log(float64(inclusionCount)/float64(includingFiles))
	}
	raw := (timeImpact*0.5 + coverage*0.25 + efficiency*0.25) * repetition
	if isStable {
		return raw * 1.5
	}
	return raw
}

// Analyze implements Analyzer.
func (PCHAnalyzer) Analyze(_ context.Context, bt trace.BuildTrace, opts trace.AnalysisOptions, cfg heuristics.Config) (AnalysisResult, error) {
	headerMap := make(map[string]*headerAccum)
	var order []string

	for _, u := range bt.Units {
		sourceKey := trace.UnitKey(u)
		for _, inc := range u.Includes {
			headerKey := trace.NormalizePath(inc.Header)
			acc, ok := headerMap[headerKey]
			if !ok {
				acc = &headerAccum{includingFiles: make(map[string]bool)}
				headerMap[headerKey] = acc
				order = append(order, headerKey)
			}
			acc.totalParseTimeNs += inc.ParseTime.Nanoseconds()
			acc.inclusionCount++
			if !acc.includingFiles[sourceKey] {
				acc.includingFiles[sourceKey] = true
				acc.order = append(acc.order, sourceKey)
			}
		}
	}

	minTotal := opts.MinDurationThreshold
	if cfg.PCH.MinAggregateTime > minTotal {
		minTotal = cfg.PCH.MinAggregateTime
	}

	var candidates []PCHCandidate
	var potential time.Duration

	for _, path := range order {
		acc := headerMap[path]
		includers := len(acc.includingFiles)
		totalParse := time.Duration(acc.totalParseTimeNs)

		if includers < 3 || totalParse < minTotal {
			continue
		}

		avgParse := totalParse / time.Duration(acc.inclusionCount)
		totalMs := trace.DurationToMillis(totalParse)
		avgMs := trace.DurationToMillis(avgParse)
		stable := isStableHeader(path)

		score := calculatePCHScore(totalMs, avgMs, includers, acc.inclusionCount, stable)

		var savings time.Duration
		if acc.inclusionCount > 1 {
			savings = avgParse * time.Duration(acc.inclusionCount-1)
		}
		potential += savings

		candidates = append(candidates, PCHCandidate{
			Header:           path,
			IncludingFiles:   append([]string{}, acc.order...),
			TotalParseTime:   totalParse,
			AvgParseTime:     avgParse,
			InclusionCount:   acc.inclusionCount,
			IsStable:         stable,
			PCHScore:         score,
			EstimatedSavings: savings,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].PCHScore != candidates[j].PCHScore {
			return candidates[i].PCHScore > candidates[j].PCHScore
		}
		return candidates[i].Header < candidates[j].Header
	})

	if len(candidates) == 0 {
		return AnalysisResult{}, nil
	}

	result := PCHAnalysisResult{Candidates: candidates, PotentialSavings: potential}
	return AnalysisResult{PCH: result}, nil
}
