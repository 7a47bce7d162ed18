// Package trace defines the immutable value types that describe a single
// build: per-translation-unit metrics, include trees, template
// instantiations and symbol tables, aggregated into a BuildTrace.
//
// Values in this package are produced fully formed by an external parser
// (out of scope here) and are treated as immutable by every downstream
// analyzer.
package trace

import (
	"path/filepath"
	"time"
)

// NormalizePath returns the lexically-normalized, slash-separated form of
// a path. Node identity in the dependency graph and aggregation keys in
// the analyzers are always computed on this form.
func NormalizePath(p string) string {
	if p == "" {
		return p
	}
	return filepath.ToSlash(filepath.Clean(p))
}

// CompilerType identifies the compiler family that produced a trace.
type CompilerType int

const (
	CompilerUnknown CompilerType = iota
	CompilerClang
	CompilerGCC
	CompilerMSVC
)

func (c CompilerType) String() string {
	switch c {
	case CompilerClang:
		return "clang"
	case CompilerGCC:
		return "gcc"
	case CompilerMSVC:
		return "msvc"
	default:
		return "unknown"
	}
}

// BuildSystemType identifies the build system that invoked the compiler.
type BuildSystemType int

const (
	BuildSystemUnknown BuildSystemType = iota
	BuildSystemCMake
	BuildSystemMake
	BuildSystemNinja
	BuildSystemMSBuild
	BuildSystemBazel
)

func (b BuildSystemType) String() string {
	switch b {
	case BuildSystemCMake:
		return "cmake"
	case BuildSystemMake:
		return "make"
	case BuildSystemNinja:
		return "ninja"
	case BuildSystemMSBuild:
		return "msbuild"
	case BuildSystemBazel:
		return "bazel"
	default:
		return "unknown"
	}
}

// SourceLocation identifies a point in a source file.
type SourceLocation struct {
	Path   string
	Line   int
	Column int
}

// HasLocation reports whether the location carries a usable file/line pair.
func (s SourceLocation) HasLocation() bool {
	return s.Path != "" && s.Line > 0
}

// TimeBreakdown splits a unit's compile time into compiler phases. Any
// field may be zero when the upstream parser did not report it.
type TimeBreakdown struct {
	Preprocessing        time.Duration
	Parsing              time.Duration
	SemanticAnalysis     time.Duration
	TemplateInstantiation time.Duration
	CodeGeneration       time.Duration
	Optimization         time.Duration
}

// Total sums the six phase durations.
func (t TimeBreakdown) Total() time.Duration {
	return t.Preprocessing + t.Parsing + t.SemanticAnalysis +
		t.TemplateInstantiation + t.CodeGeneration + t.Optimization
}

// MemoryMetrics captures memory usage in bytes, broken down by compiler
// phase where available.
type MemoryMetrics struct {
	Peak           int64
	FrontendPeak   int64
	BackendPeak    int64
	MaxStack       int64
	ParsingMemory  int64
	SemanticMemory int64
	CodegenMemory  int64
	GGCMemory      int64
}

// HasData reports whether any memory field carries a nonzero value.
func (m MemoryMetrics) HasData() bool {
	return m.Peak > 0 || m.FrontendPeak > 0 || m.BackendPeak > 0 ||
		m.MaxStack > 0 || m.ParsingMemory > 0 || m.SemanticMemory > 0 ||
		m.CodegenMemory > 0 || m.GGCMemory > 0
}

// Add returns the field-wise sum of two MemoryMetrics.
func (m MemoryMetrics) Add(o MemoryMetrics) MemoryMetrics {
	return MemoryMetrics{
		Peak:           m.Peak + o.Peak,
		FrontendPeak:   m.FrontendPeak + o.FrontendPeak,
		BackendPeak:    m.BackendPeak + o.BackendPeak,
		MaxStack:       m.MaxStack + o.MaxStack,
		ParsingMemory:  m.ParsingMemory + o.ParsingMemory,
		SemanticMemory: m.SemanticMemory + o.SemanticMemory,
		CodegenMemory:  m.CodegenMemory + o.CodegenMemory,
		GGCMemory:      m.GGCMemory + o.GGCMemory,
	}
}

// Max returns the field-wise maximum of two MemoryMetrics.
func (m MemoryMetrics) Max(o MemoryMetrics) MemoryMetrics {
	max := func(a, b int64) int64 {
		if a > b {
			return a
		}
		return b
	}
	return MemoryMetrics{
		Peak:           max(m.Peak, o.Peak),
		FrontendPeak:   max(m.FrontendPeak, o.FrontendPeak),
		BackendPeak:    max(m.BackendPeak, o.BackendPeak),
		MaxStack:       max(m.MaxStack, o.MaxStack),
		ParsingMemory:  max(m.ParsingMemory, o.ParsingMemory),
		SemanticMemory: max(m.SemanticMemory, o.SemanticMemory),
		CodegenMemory:  max(m.CodegenMemory, o.CodegenMemory),
		GGCMemory:      max(m.GGCMemory, o.GGCMemory),
	}
}

// FileMetrics holds per-unit compile metrics.
type FileMetrics struct {
	Path                string
	TotalTime           time.Duration
	FrontendTime        time.Duration
	BackendTime         time.Duration
	Breakdown           TimeBreakdown
	Memory              MemoryMetrics
	PreprocessedLines   int
	ExpansionRatio      float64
	DirectIncludes      int
	TransitiveIncludes  int
	MaxIncludeDepth     int
}

// IncludeInfo records a single #include occurrence. The same header
// appearing N times in a translation unit produces N IncludeInfo records;
// repetition is semantically meaningful for PCH and impact scoring.
type IncludeInfo struct {
	Header         string
	ParseTime      time.Duration
	Depth          int
	IncludingFiles []string
	SymbolsUsed    []string
}

// TemplateInstantiation records a template instantiation event.
// FullSignature is the aggregation key used across translation units.
type TemplateInstantiation struct {
	Name          string
	FullSignature string
	TypeArguments []string
	Time          time.Duration
	Location      SourceLocation
	Count         int
}

// CompilationUnit is a single invocation of the compiler on one source
// file, fully formed by the external parser and immutable thereafter.
type CompilationUnit struct {
	SourceFile      string
	Metrics         FileMetrics
	Includes        []IncludeInfo
	Templates       []TemplateInstantiation
	SymbolsDefined  []string
	CommandLine     []string
}

// BuildTrace aggregates one or more compilation units into a single build
// observation.
type BuildTrace struct {
	ID              string
	Timestamp       time.Time
	TotalTime       time.Duration
	Compiler        CompilerType
	CompilerVersion string
	BuildSystem     BuildSystemType
	Configuration   string
	Platform        string
	Git             *GitInfo
	Units           []CompilationUnit
}

// FileCount returns the number of compilation units in the trace.
func (b BuildTrace) FileCount() int {
	return len(b.Units)
}

// EffectiveTotalTime returns b.TotalTime when nonzero, otherwise the sum
// of every unit's total compile time (spec.md §3's synthesis rule).
func (b BuildTrace) EffectiveTotalTime() time.Duration {
	if b.TotalTime > 0 {
		return b.TotalTime
	}
	var sum time.Duration
	for _, u := range b.Units {
		sum += u.Metrics.TotalTime
	}
	return sum
}

// UnitKey returns the aggregation identity for a compilation unit. Per
// spec.md §3 and §9 Open Question 2, this is path-identity: the
// normalized source file path, ignoring command_line differences across
// multi-configuration builds.
func UnitKey(u CompilationUnit) string {
	return NormalizePath(u.SourceFile)
}

// DurationToMillis converts a duration to a float64 millisecond value for
// export, matching spec.md §9's "derived from integer microseconds to
// minimize drift" rule: the conversion goes through microseconds rather
// than truncating nanoseconds directly to a float.
func DurationToMillis(d time.Duration) float64 {
	micros := d.Microseconds()
	return float64(micros) / 1000.0
}
