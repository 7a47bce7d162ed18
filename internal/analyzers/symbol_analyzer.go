package analyzers

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yenhunghuang/bha/internal/heuristics"
	"github.com/yenhunghuang/bha/internal/trace"
)

// SymbolAnalyzer classifies defined symbols, infers linkage, flags
// likely One Definition Rule violations and estimates per-symbol code
// bloat. Ported from
// original_source/sources/bha/analyzers/symbol_analyzer.cpp.
type SymbolAnalyzer struct{}

// Name identifies this pass.
func (SymbolAnalyzer) Name() string { return "symbol" }

// Linkage is the inferred linkage classification of a defined symbol.
type Linkage int

const (
	LinkageExternal Linkage = iota
	LinkageInternal
	LinkageInline
	LinkageTemplate
)

func (l Linkage) String() string {
	switch l {
	case LinkageInternal:
		return "internal"
	case LinkageInline:
		return "inline"
	case LinkageTemplate:
		return "template"
	default:
		return "external"
	}
}

// classifySymbolType infers a coarse syntactic kind from a symbol's
// textual signature, mirroring classify_symbol_type in the reference.
func classifySymbolType(signature string) string {
	hasAngle := strings.Contains(signature, "<") && strings.Contains(signature, ">")
	hasParen := strings.Contains(signature, "(")

	if hasAngle {
		if hasParen {
			return "template_function"
		}
		return "template_class"
	}

	switch {
	case strings.HasPrefix(signature, "class "),
		strings.HasPrefix(signature, "struct "),
		strings.HasPrefix(signature, "enum "),
		strings.HasPrefix(signature, "union "):
		return "type"
	}

	if strings.Contains(signature, "::") {
		if hasParen {
			lower := strings.ToLower(signature)
			switch {
			case strings.Contains(lower, "operator"):
				return "operator"
			case strings.Contains(signature, "::~"):
				return "destructor"
			case isConstructor(signature):
				return "constructor"
			default:
				return "method"
			}
		}
		return "member"
	}

	if hasParen {
		return "function"
	}
	if isMacroOrConstant(signature) {
		return "macro_or_constant"
	}
	return "variable"
}

func isConstructor(signature string) bool {
	idx := strings.LastIndex(signature, "::")
	if idx < 0 {
		return false
	}
	className := lastSegment(signature[:idx])
	rest := signature[idx+2:]
	parenIdx := strings.Index(rest, "(")
	if parenIdx < 0 {
		return false
	}
	methodName := rest[:parenIdx]
	return className != "" && className == methodName
}

func lastSegment(s string) string {
	idx := strings.LastIndex(s, "::")
	if idx < 0 {
		return s
	}
	return s[idx+2:]
}

func isMacroOrConstant(s string) bool {
	if len(s) <= 2 {
		return false
	}
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// inferLinkage classifies a symbol's linkage from its signature and kind.
func inferLinkage(signature, kind string) Linkage {
	if kind == "template_function" || kind == "template_class" {
		return LinkageTemplate
	}
	if strings.Contains(signature, "inline ") || strings.Contains(signature, "constexpr ") {
		return LinkageInline
	}
	if strings.HasPrefix(signature, "static ") || strings.Contains(signature, "(anonymous namespace)") {
		return LinkageInternal
	}
	if strings.HasPrefix(signature, "_") && !strings.Contains(signature, "::") {
		return LinkageInternal
	}
	return LinkageExternal
}

// detectODRViolation flags likely One Definition Rule violations.
func detectODRViolation(linkage Linkage, definitionDirs []string) bool {
	switch linkage {
	case LinkageInternal:
		return false
	case LinkageExternal:
		return len(definitionDirs) > 1
	case LinkageInline, LinkageTemplate:
		return len(uniqueStrings(definitionDirs)) > 3
	default:
		return false
	}
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// calculateBloatScore estimates the code-size cost of a symbol that gets
// re-emitted per translation unit (inline/template linkage only).
func calculateBloatScore(linkage Linkage, kind string, count int, timeMs float64) float64 {
	if linkage != LinkageInline && linkage != LinkageTemplate {
		return 0
	}
	multiplier := 1.0
	switch kind {
	case "template_class":
		multiplier = 2.0
	case "template_function":
		multiplier = 1.5
	}
	return float64(count) * (1 + timeMs/100) * multiplier
}

type symbolAccum struct {
	kind            string
	linkage         Linkage
	definitionDirs  []string
	definitionFiles map[string]bool
	users           map[string]bool
	instCount       int
	instTimeMs      float64
}

// Analyze implements Analyzer. Runs the three-pass algorithm from the
// reference: collect definitions (crediting the defining unit as a user
// only for template instantiations), credit includers of a definition as
// additional users, then compute ODR/bloat flags.
func (SymbolAnalyzer) Analyze(_ context.Context, bt trace.BuildTrace, opts trace.AnalysisOptions, _ heuristics.Config) (AnalysisResult, error) {
	if !opts.AnalyzeSymbols {
		return AnalysisResult{}, nil
	}

	accum := make(map[string]*symbolAccum)
	var order []string

	includesOf := make(map[string][]string) // source -> headers it includes directly

	get := func(name string) *symbolAccum {
		acc, ok := accum[name]
		if !ok {
			acc = &symbolAccum{definitionFiles: make(map[string]bool), users: make(map[string]bool)}
			accum[name] = acc
			order = append(order, name)
		}
		return acc
	}

	// Pass 1: collect symbol definitions. Template instantiations credit
	// their defining unit as a user; plain symbol definitions do not —
	// usage for those comes only from Pass 2's includer credit.
	for _, u := range bt.Units {
		sourceKey := trace.UnitKey(u)
		for _, inc := range u.Includes {
			includesOf[sourceKey] = append(includesOf[sourceKey], trace.NormalizePath(inc.Header))
		}

		for _, sym := range u.SymbolsDefined {
			acc := get(sym)
			dir := filepath.ToSlash(filepath.Dir(sourceKey))
			if !acc.definitionFiles[sourceKey] {
				acc.definitionFiles[sourceKey] = true
				acc.definitionDirs = append(acc.definitionDirs, dir)
			}
			acc.kind = classifySymbolType(sym)
			acc.linkage = inferLinkage(sym, acc.kind)
		}

		for _, tmpl := range u.Templates {
			acc := get(tmpl.FullSignature)
			dir := filepath.ToSlash(filepath.Dir(sourceKey))
			if !acc.definitionFiles[sourceKey] {
				acc.definitionFiles[sourceKey] = true
				acc.definitionDirs = append(acc.definitionDirs, dir)
			}
			acc.users[sourceKey] = true
			acc.kind = classifySymbolType(tmpl.FullSignature)
			if acc.kind != "template_function" && acc.kind != "template_class" {
				acc.kind = "template_function"
			}
			acc.linkage = LinkageTemplate
			acc.instCount += tmpl.Count
			acc.instTimeMs += trace.DurationToMillis(tmpl.Time)
		}
	}

	// Pass 2: credit any unit that includes a file defining a symbol.
	for _, u := range bt.Units {
		sourceKey := trace.UnitKey(u)
		included := make(map[string]bool)
		for _, h := range includesOf[sourceKey] {
			included[h] = true
		}
		for _, name := range order {
			acc := accum[name]
			for def := range acc.definitionFiles {
				if included[def] {
					acc.users[sourceKey] = true
				}
			}
		}
	}

	// Pass 3: compute ODR/bloat flags and finalize usage counts.
	symbols := make([]SymbolInfo, 0, len(order))
	unused := 0
	for _, name := range order {
		acc := accum[name]
		defs := make([]string, 0, len(acc.definitionFiles))
		for f := range acc.definitionFiles {
			defs = append(defs, f)
		}
		sort.Strings(defs)

		usage := len(acc.users)
		if usage == 0 {
			unused++
		}

		bloat := calculateBloatScore(acc.linkage, acc.kind, acc.instCount, acc.instTimeMs)

		symbols = append(symbols, SymbolInfo{
			Name:            name,
			Kind:            acc.kind,
			Linkage:         acc.linkage.String(),
			DefinitionFiles: defs,
			UsageCount:      usage,
			IsODRViolation:  detectODRViolation(acc.linkage, acc.definitionDirs),
			BloatScore:      bloat,
		})
	}

	sort.Slice(symbols, func(i, j int) bool {
		if symbols[i].UsageCount != symbols[j].UsageCount {
			return symbols[i].UsageCount > symbols[j].UsageCount
		}
		return symbols[i].Name < symbols[j].Name
	})

	if len(symbols) == 0 {
		return AnalysisResult{}, nil
	}

	result := SymbolAnalysisResult{Symbols: symbols, UnusedSymbols: unused}
	return AnalysisResult{Symbols: result}, nil
}
