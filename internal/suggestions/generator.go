package suggestions

import (
	"context"

	"github.com/yenhunghuang/bha/internal/analyzers"
	"github.com/yenhunghuang/bha/internal/heuristics"
)

// Generator produces Suggestion values from one section of an
// AnalysisResult. Each generator owns exactly one SuggestionType.
type Generator interface {
	Type() SuggestionType
	Generate(ctx context.Context, result analyzers.AnalysisResult, cfg heuristics.Config) ([]Suggestion, GenerationStats)
}

// DefaultGenerators returns every built-in generator, in the order
// spec.md §4.4 lists them.
func DefaultGenerators() []Generator {
	return []Generator{
		PCHGenerator{},
		ForwardDeclarationGenerator{},
		HeaderSplitGenerator{},
		IncludeRemovalGenerator{},
		MoveToCppGenerator{},
		ExplicitTemplateGenerator{},
		UnityBuildGenerator{},
		ModuleMigrationGenerator{},
		InlineReductionGenerator{},
		CompilationFirewallGenerator{},
		DependencyInversionGenerator{},
		SymbolVisibilityGenerator{},
		PIMPLPatternGenerator{},
	}
}
