package suggestions

import (
	"context"
	"sort"
	"time"

	"github.com/yenhunghuang/bha/internal/analyzers"
	"github.com/yenhunghuang/bha/internal/heuristics"
	"github.com/yenhunghuang/bha/internal/metrics"
)

// EngineResult bundles the filtered, sorted suggestions with the
// per-generator stats spec.md §4.4 requires the engine to surface.
type EngineResult struct {
	Suggestions []Suggestion
	Stats       []GenerationStats
}

// Run invokes every registered generator, then applies the filter, sort
// and truncate pipeline spec.md §4.4 fixes:
//  1. drop suggestions less urgent than MinPriority, below MinConfidence,
//     unsafe when SafeOnly is set, or outside EnabledTypes;
//  2. sort by priority ascending, then estimated savings descending;
//  3. truncate to MaxSuggestions.
//
// A generator is never fatal: like analyzers, a panic-free empty return
// is treated as "nothing to contribute", matching the engine's
// best-effort aggregation contract.
func Run(ctx context.Context, generators []Generator, result analyzers.AnalysisResult, cfg heuristics.Config, opts SuggesterOptions) EngineResult {
	var all []Suggestion
	stats := make([]GenerationStats, 0, len(generators))

	for _, g := range generators {
		start := time.Now()
		items, s := g.Generate(ctx, result, cfg)
		if s.GenerationTime == 0 {
			s.GenerationTime = time.Since(start)
		}
		stats = append(stats, s)
		metrics.RecordGeneratorRun(g.Type().String(), len(items), s.GenerationTime.Seconds())
		all = append(all, items...)
	}

	filtered := filter(all, opts)
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Priority != filtered[j].Priority {
			return filtered[i].Priority < filtered[j].Priority
		}
		return filtered[i].Impact.EstimatedTimeSavings > filtered[j].Impact.EstimatedTimeSavings
	})

	if opts.MaxSuggestions > 0 && len(filtered) > opts.MaxSuggestions {
		filtered = filtered[:opts.MaxSuggestions]
	}

	return EngineResult{Suggestions: filtered, Stats: stats}
}

func filter(in []Suggestion, opts SuggesterOptions) []Suggestion {
	out := make([]Suggestion, 0, len(in))
	for _, s := range in {
		// Lower Priority values are more urgent (Critical=0..Low=3); a
		// suggestion "less specific than min_priority" has a larger value.
		if s.Priority > opts.MinPriority {
			continue
		}
		if s.Impact.Confidence < opts.MinConfidence {
			continue
		}
		if !s.Safe && opts.SafeOnly {
			continue
		}
		if opts.EnabledTypes != nil && !opts.EnabledTypes[s.Type] {
			continue
		}
		out = append(out, s)
	}
	return out
}
