// Package suggestions implements the tunable suggestion engine described
// in spec.md §4.4: a set of independent generators, each contributing
// Suggestion values from one AnalysisResult section, merged through a
// shared filter/sort/truncate pipeline.
package suggestions

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// SuggestionType names the category of optimization a Suggestion
// recommends.
type SuggestionType int

const (
	PCHCandidateSuggestion SuggestionType = iota
	ForwardDeclarationSuggestion
	HeaderSplitSuggestion
	IncludeRemovalSuggestion
	MoveToCppSuggestion
	ExplicitTemplateInstantiationSuggestion
	UnityBuildSuggestion
	ModuleMigrationSuggestion
	InlineReductionSuggestion
	CompilationFirewallSuggestion
	DependencyInversionSuggestion
	SymbolVisibilitySuggestion
	PIMPLPatternSuggestion
)

func (t SuggestionType) String() string {
	switch t {
	case PCHCandidateSuggestion:
		return "PCH_CANDIDATE"
	case ForwardDeclarationSuggestion:
		return "FORWARD_DECLARATION"
	case HeaderSplitSuggestion:
		return "HEADER_SPLIT"
	case IncludeRemovalSuggestion:
		return "INCLUDE_REMOVAL"
	case MoveToCppSuggestion:
		return "MOVE_TO_CPP"
	case ExplicitTemplateInstantiationSuggestion:
		return "EXPLICIT_TEMPLATE_INSTANTIATION"
	case UnityBuildSuggestion:
		return "UNITY_BUILD"
	case ModuleMigrationSuggestion:
		return "MODULE_MIGRATION"
	case InlineReductionSuggestion:
		return "INLINE_REDUCTION"
	case CompilationFirewallSuggestion:
		return "COMPILATION_FIREWALL"
	case DependencyInversionSuggestion:
		return "DEPENDENCY_INVERSION"
	case SymbolVisibilitySuggestion:
		return "SYMBOL_VISIBILITY"
	case PIMPLPatternSuggestion:
		return "PIMPL_PATTERN"
	default:
		return "UNKNOWN"
	}
}

// Priority ranks a suggestion's urgency. Lower values sort first.
type Priority int

const (
	Critical Priority = iota
	High
	Medium
	Low
)

func (p Priority) String() string {
	switch p {
	case Critical:
		return "critical"
	case High:
		return "high"
	case Medium:
		return "medium"
	default:
		return "low"
	}
}

// FileTarget names one file (and, optionally, a line) a suggestion
// applies to.
type FileTarget struct {
	Path string
	Line int
}

// Impact estimates what applying a suggestion would save.
type Impact struct {
	EstimatedTimeSavings time.Duration
	FilesAffected        int
	Confidence           float64 // 0.0-1.0
}

// CodeExample shows a minimal before/after snippet, when a generator can
// produce one mechanically (e.g. an #include to forward declaration).
type CodeExample struct {
	Before string
	After  string
}

// Suggestion is one actionable recommendation produced by a Generator.
type Suggestion struct {
	ID          string
	Type        SuggestionType
	Priority    Priority
	Title       string
	Description string
	Targets     []FileTarget
	Impact      Impact
	Example     *CodeExample
	Safe        bool // false if applying this suggestion risks behavior changes
}

// NewID derives a stable suggestion identifier from its type and primary
// target, following the xxhash fast-hash pattern used elsewhere in the
// corpus for cheap, stable identity keys.
func NewID(t SuggestionType, primaryTarget string) string {
	sum := xxhash.Sum64String(fmt.Sprintf("%s:%s", t, primaryTarget))
	return fmt.Sprintf("%s-%016x", t, sum)
}

// SuggesterOptions configures the filter/sort/truncate pipeline.
type SuggesterOptions struct {
	MaxSuggestions int
	MinPriority    Priority // suggestions worse than this are dropped
	MinConfidence  float64
	SafeOnly       bool
	EnabledTypes   map[SuggestionType]bool // nil means all types enabled
}

// DefaultSuggesterOptions returns the reference defaults, matching
// original_source's SuggesterOptions: max_suggestions=100,
// min_priority=Low (everything passes the priority gate),
// min_confidence=0.5, include_unsafe=false (SafeOnly=true).
func DefaultSuggesterOptions() SuggesterOptions {
	return SuggesterOptions{
		MaxSuggestions: 100,
		MinPriority:    Low,
		MinConfidence:  0.5,
		SafeOnly:       true,
		EnabledTypes:   nil,
	}
}

// GenerationStats counts one generator's contribution, surfaced in the
// engine's summary output.
type GenerationStats struct {
	Generator      string
	ItemsAnalyzed  int
	ItemsSkipped   int
	GenerationTime time.Duration
}
