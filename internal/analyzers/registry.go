package analyzers

import (
	"context"
	"runtime"
	"time"

	"github.com/yenhunghuang/bha/internal/heuristics"
	"github.com/yenhunghuang/bha/internal/metrics"
	"github.com/yenhunghuang/bha/internal/trace"
	"golang.org/x/sync/errgroup"
)

// Analyzer is one independent analysis pass over a BuildTrace.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, bt trace.BuildTrace, opts trace.AnalysisOptions, cfg heuristics.Config) (AnalysisResult, error)
}

// DefaultAnalyzers returns the six passes in the merge order spec.md
// §4.3 fixes: file, dependency, template, symbol, PCH, performance.
func DefaultAnalyzers() []Analyzer {
	return []Analyzer{
		FileAnalyzer{},
		DependencyAnalyzer{},
		TemplateAnalyzer{},
		SymbolAnalyzer{},
		PCHAnalyzer{},
		PerformanceAnalyzer{},
	}
}

// SkippedAnalyzer records one analyzer that failed and was dropped from
// the merge, per spec.md §7's best-effort aggregation contract.
type SkippedAnalyzer struct {
	Name string
	Err  error
}

// RunFullAnalysis runs every analyzer concurrently (bounded by
// opts.MaxThreads, or GOMAXPROCS when zero), then merges their partial
// results sequentially in registration order — never completion order —
// so the merge stays deterministic regardless of which analyzer finishes
// first. An analyzer that returns an error is skipped, not fatal,
// matching the reference's best-effort aggregation.
func RunFullAnalysis(ctx context.Context, bt trace.BuildTrace, opts trace.AnalysisOptions, cfg heuristics.Config, registered []Analyzer) (AnalysisResult, []SkippedAnalyzer) {
	results := make([]AnalysisResult, len(registered))
	errs := make([]error, len(registered))

	limit := opts.MaxThreads
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, a := range registered {
		i, a := i, a
		g.Go(func() error {
			start := time.Now()
			res, err := a.Analyze(gctx, bt, opts, cfg)
			metrics.RecordAnalyzerRun(a.Name(), err != nil, time.Since(start).Seconds())
			results[i] = res
			errs[i] = err
			return nil // never abort the group; failures are recorded, not fatal
		})
	}
	_ = g.Wait()

	var merged AnalysisResult
	var skipped []SkippedAnalyzer
	for i, a := range registered {
		if errs[i] != nil {
			skipped = append(skipped, SkippedAnalyzer{Name: a.Name(), Err: errs[i]})
			continue
		}
		merged = Merge(merged, results[i])
	}

	return merged, skipped
}
