package suggestions

import (
	"context"
	"fmt"
	"time"

	"github.com/yenhunghuang/bha/internal/analyzers"
	"github.com/yenhunghuang/bha/internal/graph"
	"github.com/yenhunghuang/bha/internal/heuristics"
	"github.com/yenhunghuang/bha/internal/trace"
)

// PCHGenerator recommends precompiling headers PCHAnalyzer ranked highly.
type PCHGenerator struct{}

func (PCHGenerator) Type() SuggestionType { return PCHCandidateSuggestion }

func (PCHGenerator) Generate(_ context.Context, result analyzers.AnalysisResult, cfg heuristics.Config) ([]Suggestion, GenerationStats) {
	start := time.Now()
	var out []Suggestion
	analyzed, skipped := 0, 0

	for _, c := range result.PCH.Candidates {
		analyzed++
		if len(c.IncludingFiles) < cfg.PCH.MinIncludeCount && c.TotalParseTime < cfg.PCH.MinAggregateTime {
			skipped++
			continue
		}

		ratio := 0.0
		if result.Performance.TotalBuildTime > 0 {
			ratio = float64(c.TotalParseTime) / float64(result.Performance.TotalBuildTime)
		}

		priority := Medium
		switch {
		case len(c.IncludingFiles) >= cfg.PCH.Priority.CriticalIncludes || ratio >= cfg.PCH.Priority.CriticalTimeRatio:
			priority = Critical
		case len(c.IncludingFiles) >= cfg.PCH.Priority.HighIncludes || ratio >= cfg.PCH.Priority.HighTimeRatio:
			priority = High
		}

		confidence := 0.6
		if c.IsStable {
			confidence = 0.9
		}

		out = append(out, Suggestion{
			ID:          NewID(PCHCandidateSuggestion, c.Header),
			Type:        PCHCandidateSuggestion,
			Priority:    priority,
			Title:       fmt.Sprintf("Precompile %s", c.Header),
			Description: fmt.Sprintf("%s is included by %d translation units and costs %v in aggregate parse time; add it to a precompiled header.", c.Header, len(c.IncludingFiles), c.TotalParseTime),
			Targets:     []FileTarget{{Path: c.Header}},
			Impact: Impact{
				EstimatedTimeSavings: c.EstimatedSavings,
				FilesAffected:        len(c.IncludingFiles),
				Confidence:           confidence,
			},
			Safe: true,
		})
	}

	return out, GenerationStats{Generator: PCHCandidateSuggestion.String(), ItemsAnalyzed: analyzed, ItemsSkipped: skipped, GenerationTime: time.Since(start)}
}

// ForwardDeclarationGenerator recommends replacing heavy, widely-included
// headers with forward declarations where only a pointer/reference is
// needed.
type ForwardDeclarationGenerator struct{}

func (ForwardDeclarationGenerator) Type() SuggestionType { return ForwardDeclarationSuggestion }

func (ForwardDeclarationGenerator) Generate(_ context.Context, result analyzers.AnalysisResult, cfg heuristics.Config) ([]Suggestion, GenerationStats) {
	start := time.Now()
	var out []Suggestion
	analyzed, skipped := 0, 0

	for _, h := range result.Dependencies.Headers {
		analyzed++
		if h.InclusionCount == 0 {
			skipped++
			continue
		}
		avg := h.TotalParseTime / time.Duration(h.InclusionCount)
		if avg < cfg.ForwardDecl.MinParseTime || len(h.IncludingFiles) < cfg.ForwardDecl.MinUsageSites {
			skipped++
			continue
		}

		out = append(out, Suggestion{
			ID:          NewID(ForwardDeclarationSuggestion, h.Path),
			Type:        ForwardDeclarationSuggestion,
			Priority:    Medium,
			Title:       fmt.Sprintf("Forward-declare types from %s", h.Path),
			Description: fmt.Sprintf("%s is included by %d files at an average parse cost of %v; check whether a forward declaration suffices where only pointers/references are used.", h.Path, len(h.IncludingFiles), avg),
			Targets:     []FileTarget{{Path: h.Path}},
			Impact: Impact{
				EstimatedTimeSavings: avg * time.Duration(len(h.IncludingFiles)-1),
				FilesAffected:        len(h.IncludingFiles),
				Confidence:           0.5,
			},
			Example: &CodeExample{
				Before: fmt.Sprintf("#include %q", h.Path),
				After:  "class Widget; // forward declaration",
			},
			Safe: false,
		})
	}

	return out, GenerationStats{Generator: ForwardDeclarationSuggestion.String(), ItemsAnalyzed: analyzed, ItemsSkipped: skipped, GenerationTime: time.Since(start)}
}

// HeaderSplitGenerator recommends splitting large, widely-depended-on
// headers into smaller units.
type HeaderSplitGenerator struct{}

func (HeaderSplitGenerator) Type() SuggestionType { return HeaderSplitSuggestion }

func (HeaderSplitGenerator) Generate(_ context.Context, result analyzers.AnalysisResult, cfg heuristics.Config) ([]Suggestion, GenerationStats) {
	start := time.Now()
	var out []Suggestion
	analyzed, skipped := 0, 0

	for _, h := range result.Dependencies.Headers {
		analyzed++
		if h.TotalParseTime < cfg.Headers.MinParseTime || len(h.IncludingFiles) < cfg.Headers.MinIncludersForSplit {
			skipped++
			continue
		}

		priority := classifyHeaderTimePriority(h.TotalParseTime, cfg.Headers.Time)

		out = append(out, Suggestion{
			ID:          NewID(HeaderSplitSuggestion, h.Path),
			Type:        HeaderSplitSuggestion,
			Priority:    priority,
			Title:       fmt.Sprintf("Split %s into focused headers", h.Path),
			Description: fmt.Sprintf("%s is included by %d files and costs %v to parse; splitting it lets includers pull only what they need.", h.Path, len(h.IncludingFiles), h.TotalParseTime),
			Targets:     []FileTarget{{Path: h.Path}},
			Impact: Impact{
				EstimatedTimeSavings: h.TotalParseTime / 2,
				FilesAffected:        len(h.IncludingFiles),
				Confidence:           0.4,
			},
			Safe: false,
		})
	}

	return out, GenerationStats{Generator: HeaderSplitSuggestion.String(), ItemsAnalyzed: analyzed, ItemsSkipped: skipped, GenerationTime: time.Since(start)}
}

func classifyHeaderTimePriority(d time.Duration, t heuristics.HeaderTimeThresholds) Priority {
	switch {
	case d >= t.Critical:
		return Critical
	case d >= t.High:
		return High
	case d >= t.Medium:
		return Medium
	default:
		return Low
	}
}

// IncludeRemovalGenerator flags headers a translation unit includes more
// than once, a direct signal of redundant #include directives.
type IncludeRemovalGenerator struct{}

func (IncludeRemovalGenerator) Type() SuggestionType { return IncludeRemovalSuggestion }

func (IncludeRemovalGenerator) Generate(_ context.Context, result analyzers.AnalysisResult, _ heuristics.Config) ([]Suggestion, GenerationStats) {
	start := time.Now()
	var out []Suggestion
	analyzed, skipped := 0, 0

	for _, h := range result.Dependencies.Headers {
		analyzed++
		redundant := h.InclusionCount - len(h.IncludingFiles)
		if redundant <= 0 {
			skipped++
			continue
		}

		avg := h.TotalParseTime / time.Duration(h.InclusionCount)
		out = append(out, Suggestion{
			ID:          NewID(IncludeRemovalSuggestion, h.Path),
			Type:        IncludeRemovalSuggestion,
			Priority:    Low,
			Title:       fmt.Sprintf("Remove duplicate #include of %s", h.Path),
			Description: fmt.Sprintf("%s is included %d more times than there are distinct including files; a missing include guard or duplicate directive is likely.", h.Path, redundant),
			Targets:     []FileTarget{{Path: h.Path}},
			Impact: Impact{
				EstimatedTimeSavings: avg * time.Duration(redundant),
				FilesAffected:        redundant,
				Confidence:           0.7,
			},
			Safe: true,
		})
	}

	return out, GenerationStats{Generator: IncludeRemovalSuggestion.String(), ItemsAnalyzed: analyzed, ItemsSkipped: skipped, GenerationTime: time.Since(start)}
}

// MoveToCppGenerator flags inline symbols defined in exactly one
// translation unit and barely reused, which gain nothing from header
// placement.
type MoveToCppGenerator struct{}

func (MoveToCppGenerator) Type() SuggestionType { return MoveToCppSuggestion }

func (MoveToCppGenerator) Generate(_ context.Context, result analyzers.AnalysisResult, _ heuristics.Config) ([]Suggestion, GenerationStats) {
	start := time.Now()
	var out []Suggestion
	analyzed, skipped := 0, 0

	for _, s := range result.Symbols.Symbols {
		analyzed++
		if s.Linkage != "inline" || len(s.DefinitionFiles) != 1 || s.UsageCount > 1 {
			skipped++
			continue
		}

		out = append(out, Suggestion{
			ID:          NewID(MoveToCppSuggestion, s.Name),
			Type:        MoveToCppSuggestion,
			Priority:    Low,
			Title:       fmt.Sprintf("Move %s out of the header", s.Name),
			Description: fmt.Sprintf("%s is declared inline but only used from its own definition file; moving it to a .cpp file removes its cost from every other includer.", s.Name),
			Targets:     []FileTarget{{Path: s.DefinitionFiles[0]}},
			Impact:      Impact{FilesAffected: 1, Confidence: 0.5},
			Safe:        false,
		})
	}

	return out, GenerationStats{Generator: MoveToCppSuggestion.String(), ItemsAnalyzed: analyzed, ItemsSkipped: skipped, GenerationTime: time.Since(start)}
}

// ExplicitTemplateGenerator recommends explicit template instantiation
// for hot signatures, trading one extra instantiation for avoiding N
// redundant ones.
type ExplicitTemplateGenerator struct{}

func (ExplicitTemplateGenerator) Type() SuggestionType {
	return ExplicitTemplateInstantiationSuggestion
}

func (ExplicitTemplateGenerator) Generate(_ context.Context, result analyzers.AnalysisResult, cfg heuristics.Config) ([]Suggestion, GenerationStats) {
	start := time.Now()
	var out []Suggestion
	analyzed, skipped := 0, 0

	for _, tmpl := range result.Templates.Templates {
		analyzed++
		if tmpl.InstantiationCount < cfg.Templates.MinInstantiationCount || tmpl.TotalTime < cfg.Templates.MinTotalTime {
			skipped++
			continue
		}

		priority := Medium
		if tmpl.TimePercent >= cfg.Templates.HighPriorityPercent {
			priority = High
		}

		out = append(out, Suggestion{
			ID:          NewID(ExplicitTemplateInstantiationSuggestion, tmpl.FullSignature),
			Type:        ExplicitTemplateInstantiationSuggestion,
			Priority:    priority,
			Title:       fmt.Sprintf("Explicitly instantiate %s", tmpl.FullSignature),
			Description: fmt.Sprintf("%s is instantiated %d times across the build at a cost of %v; an explicit instantiation in one translation unit avoids the redundant codegen.", tmpl.FullSignature, tmpl.InstantiationCount, tmpl.TotalTime),
			Targets:     []FileTarget{{Path: tmpl.FullSignature}},
			Impact: Impact{
				EstimatedTimeSavings: tmpl.TotalTime * time.Duration(tmpl.InstantiationCount-1) / time.Duration(tmpl.InstantiationCount),
				FilesAffected:        tmpl.InstantiationCount,
				Confidence:           0.6,
			},
			Safe: false,
		})
	}

	return out, GenerationStats{Generator: ExplicitTemplateInstantiationSuggestion.String(), ItemsAnalyzed: analyzed, ItemsSkipped: skipped, GenerationTime: time.Since(start)}
}

// UnityBuildGenerator evaluates whether grouping translation units into
// jumbo/unity files would meaningfully cut header-parsing overhead.
type UnityBuildGenerator struct{}

func (UnityBuildGenerator) Type() SuggestionType { return UnityBuildSuggestion }

func (UnityBuildGenerator) Generate(_ context.Context, result analyzers.AnalysisResult, cfg heuristics.Config) ([]Suggestion, GenerationStats) {
	start := time.Now()
	analyzed := 1

	if result.Files.TotalFiles < cfg.UnityBuild.MinFilesThreshold || result.Performance.TotalBuildTime == 0 {
		return nil, GenerationStats{Generator: UnityBuildSuggestion.String(), ItemsAnalyzed: analyzed, ItemsSkipped: 1, GenerationTime: time.Since(start)}
	}

	ratio := 0.0
	if result.Performance.TotalBuildTime > 0 {
		ratio = float64(result.Dependencies.TotalIncludeTime) / float64(result.Performance.TotalBuildTime)
	}
	if ratio < cfg.UnityBuild.HeaderParsingRatio {
		return nil, GenerationStats{Generator: UnityBuildSuggestion.String(), ItemsAnalyzed: analyzed, ItemsSkipped: 1, GenerationTime: time.Since(start)}
	}

	units := (result.Files.TotalFiles + cfg.UnityBuild.FilesPerUnit - 1) / cfg.UnityBuild.FilesPerUnit
	out := []Suggestion{{
		ID:          NewID(UnityBuildSuggestion, "build"),
		Type:        UnityBuildSuggestion,
		Priority:    High,
		Title:       "Group translation units into unity builds",
		Description: fmt.Sprintf("Header parsing accounts for %.0f%% of build time across %d files; grouping them into %d unity files of %d sources each would amortize that cost.", ratio*100, result.Files.TotalFiles, units, cfg.UnityBuild.FilesPerUnit),
		Impact: Impact{
			EstimatedTimeSavings: time.Duration(float64(result.Dependencies.TotalIncludeTime) * 0.5),
			FilesAffected:        result.Files.TotalFiles,
			Confidence:           0.5,
		},
		Safe: false,
	}}

	return out, GenerationStats{Generator: UnityBuildSuggestion.String(), ItemsAnalyzed: analyzed, ItemsSkipped: 0, GenerationTime: time.Since(start)}
}

// ModuleMigrationGenerator recommends migrating the heaviest, most
// stable headers to C++20 modules, where parse cost is paid once per
// module rather than once per includer.
type ModuleMigrationGenerator struct{}

func (ModuleMigrationGenerator) Type() SuggestionType { return ModuleMigrationSuggestion }

func (ModuleMigrationGenerator) Generate(_ context.Context, result analyzers.AnalysisResult, _ heuristics.Config) ([]Suggestion, GenerationStats) {
	start := time.Now()
	var out []Suggestion
	analyzed, skipped := 0, 0

	for _, c := range result.PCH.Candidates {
		analyzed++
		if !c.IsStable || c.PCHScore < 1.0 {
			skipped++
			continue
		}

		out = append(out, Suggestion{
			ID:          NewID(ModuleMigrationSuggestion, c.Header),
			Type:        ModuleMigrationSuggestion,
			Priority:    Low,
			Title:       fmt.Sprintf("Migrate %s to a module", c.Header),
			Description: fmt.Sprintf("%s is stable and heavily included (%d includers); a module interface unit would let the compiler parse it once instead of per translation unit.", c.Header, len(c.IncludingFiles)),
			Targets:     []FileTarget{{Path: c.Header}},
			Impact: Impact{
				EstimatedTimeSavings: c.EstimatedSavings,
				FilesAffected:        len(c.IncludingFiles),
				Confidence:           0.3,
			},
			Safe: false,
		})
	}

	return out, GenerationStats{Generator: ModuleMigrationSuggestion.String(), ItemsAnalyzed: analyzed, ItemsSkipped: skipped, GenerationTime: time.Since(start)}
}

// InlineReductionGenerator flags inline/template symbols whose
// per-translation-unit codegen cost is large enough to outweigh the
// inlining benefit.
type InlineReductionGenerator struct{}

func (InlineReductionGenerator) Type() SuggestionType { return InlineReductionSuggestion }

func (InlineReductionGenerator) Generate(_ context.Context, result analyzers.AnalysisResult, cfg heuristics.Config) ([]Suggestion, GenerationStats) {
	start := time.Now()
	var out []Suggestion
	analyzed, skipped := 0, 0

	threshold := trace.DurationToMillis(cfg.CodeGen.InlineWarningThreshold)

	for _, s := range result.Symbols.Symbols {
		analyzed++
		if s.Linkage != "inline" && s.Linkage != "template" {
			skipped++
			continue
		}
		if s.BloatScore < threshold {
			skipped++
			continue
		}

		out = append(out, Suggestion{
			ID:          NewID(InlineReductionSuggestion, s.Name),
			Type:        InlineReductionSuggestion,
			Priority:    Medium,
			Title:       fmt.Sprintf("Reduce inlining of %s", s.Name),
			Description: fmt.Sprintf("%s carries an estimated code-bloat score of %.1f across %d definition sites; consider an out-of-line definition.", s.Name, s.BloatScore, len(s.DefinitionFiles)),
			Targets:     []FileTarget{{Path: s.Name}},
			Impact:      Impact{FilesAffected: len(s.DefinitionFiles), Confidence: 0.4},
			Safe:        false,
		})
	}

	return out, GenerationStats{Generator: InlineReductionSuggestion.String(), ItemsAnalyzed: analyzed, ItemsSkipped: skipped, GenerationTime: time.Since(start)}
}

// CompilationFirewallGenerator recommends hiding a widely-included
// header's implementation details behind an opaque pointer to shrink the
// set of files that must recompile when it changes.
type CompilationFirewallGenerator struct{}

func (CompilationFirewallGenerator) Type() SuggestionType { return CompilationFirewallSuggestion }

func (CompilationFirewallGenerator) Generate(_ context.Context, result analyzers.AnalysisResult, cfg heuristics.Config) ([]Suggestion, GenerationStats) {
	start := time.Now()
	var out []Suggestion
	analyzed, skipped := 0, 0

	if result.Dependencies.Graph == nil {
		return nil, GenerationStats{Generator: CompilationFirewallSuggestion.String()}
	}
	fanin := graph.CalculateFanin(result.Dependencies.Graph)

	for _, h := range result.Dependencies.Headers {
		analyzed++
		if fanin[h.Path] < cfg.Headers.MinIncludersForSplit || h.TotalParseTime < cfg.Headers.MinParseTime {
			skipped++
			continue
		}

		out = append(out, Suggestion{
			ID:          NewID(CompilationFirewallSuggestion, h.Path),
			Type:        CompilationFirewallSuggestion,
			Priority:    Medium,
			Title:       fmt.Sprintf("Put a compilation firewall in front of %s", h.Path),
			Description: fmt.Sprintf("%s has %d direct includers; isolating its implementation behind an opaque handle would decouple them from its internal changes.", h.Path, fanin[h.Path]),
			Targets:     []FileTarget{{Path: h.Path}},
			Impact:      Impact{FilesAffected: fanin[h.Path], Confidence: 0.4},
			Safe:        false,
		})
	}

	return out, GenerationStats{Generator: CompilationFirewallSuggestion.String(), ItemsAnalyzed: analyzed, ItemsSkipped: skipped, GenerationTime: time.Since(start)}
}

// DependencyInversionGenerator flags strongly connected components in
// the include graph: genuine cyclic header dependencies that usually
// signal a missing abstraction.
type DependencyInversionGenerator struct{}

func (DependencyInversionGenerator) Type() SuggestionType { return DependencyInversionSuggestion }

func (DependencyInversionGenerator) Generate(_ context.Context, result analyzers.AnalysisResult, _ heuristics.Config) ([]Suggestion, GenerationStats) {
	start := time.Now()
	if result.Dependencies.Graph == nil {
		return nil, GenerationStats{Generator: DependencyInversionSuggestion.String()}
	}

	sccs := graph.StronglyConnectedComponents(result.Dependencies.Graph)
	var out []Suggestion
	for _, scc := range sccs {
		primary := scc[0]
		out = append(out, Suggestion{
			ID:          NewID(DependencyInversionSuggestion, primary),
			Type:        DependencyInversionSuggestion,
			Priority:    High,
			Title:       fmt.Sprintf("Break the circular dependency around %s", primary),
			Description: fmt.Sprintf("%d headers form a cyclic include chain; introducing an abstract interface for one of them would break the cycle.", len(scc)),
			Targets:     targetsFor(scc),
			Impact:      Impact{FilesAffected: len(scc), Confidence: 0.8},
			Safe:        false,
		})
	}

	return out, GenerationStats{Generator: DependencyInversionSuggestion.String(), ItemsAnalyzed: len(sccs), GenerationTime: time.Since(start)}
}

func targetsFor(paths []string) []FileTarget {
	out := make([]FileTarget, 0, len(paths))
	for _, p := range paths {
		out = append(out, FileTarget{Path: p})
	}
	return out
}

// SymbolVisibilityGenerator flags externally-linked symbols defined in
// more than one translation unit — a likely One Definition Rule
// violation fixable by narrowing visibility.
type SymbolVisibilityGenerator struct{}

func (SymbolVisibilityGenerator) Type() SuggestionType { return SymbolVisibilitySuggestion }

func (SymbolVisibilityGenerator) Generate(_ context.Context, result analyzers.AnalysisResult, _ heuristics.Config) ([]Suggestion, GenerationStats) {
	start := time.Now()
	var out []Suggestion
	analyzed, skipped := 0, 0

	for _, s := range result.Symbols.Symbols {
		analyzed++
		if !s.IsODRViolation || s.Linkage != "external" {
			skipped++
			continue
		}

		out = append(out, Suggestion{
			ID:          NewID(SymbolVisibilitySuggestion, s.Name),
			Type:        SymbolVisibilitySuggestion,
			Priority:    Critical,
			Title:       fmt.Sprintf("Narrow the visibility of %s", s.Name),
			Description: fmt.Sprintf("%s has external linkage and %d definition sites; mark it static or move it into an anonymous namespace, or share one definition.", s.Name, len(s.DefinitionFiles)),
			Targets:     targetsFor(s.DefinitionFiles),
			Impact:      Impact{FilesAffected: len(s.DefinitionFiles), Confidence: 0.7},
			Safe:        false,
		})
	}

	return out, GenerationStats{Generator: SymbolVisibilitySuggestion.String(), ItemsAnalyzed: analyzed, ItemsSkipped: skipped, GenerationTime: time.Since(start)}
}

// PIMPLPatternGenerator recommends the pointer-to-implementation idiom
// for headers that are heavily included but not stable enough to be
// good precompiled-header or module candidates.
type PIMPLPatternGenerator struct{}

func (PIMPLPatternGenerator) Type() SuggestionType { return PIMPLPatternSuggestion }

func (PIMPLPatternGenerator) Generate(_ context.Context, result analyzers.AnalysisResult, cfg heuristics.Config) ([]Suggestion, GenerationStats) {
	start := time.Now()
	var out []Suggestion
	analyzed, skipped := 0, 0

	for _, c := range result.PCH.Candidates {
		analyzed++
		if c.IsStable || len(c.IncludingFiles) < cfg.Headers.MinIncludersForSplit {
			skipped++
			continue
		}

		out = append(out, Suggestion{
			ID:          NewID(PIMPLPatternSuggestion, c.Header),
			Type:        PIMPLPatternSuggestion,
			Priority:    Medium,
			Title:       fmt.Sprintf("Hide %s's internals behind a pImpl", c.Header),
			Description: fmt.Sprintf("%s changes frequently and is included by %d files; a pImpl wrapper would insulate them from its churn.", c.Header, len(c.IncludingFiles)),
			Targets:     []FileTarget{{Path: c.Header}},
			Impact:      Impact{FilesAffected: len(c.IncludingFiles), Confidence: 0.3},
			Safe:        false,
		})
	}

	return out, GenerationStats{Generator: PIMPLPatternSuggestion.String(), ItemsAnalyzed: analyzed, ItemsSkipped: skipped, GenerationTime: time.Since(start)}
}
