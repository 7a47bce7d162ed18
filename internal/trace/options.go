package trace

import "time"

// AnalysisOptions tunes the analyzer pipeline. Defaults match
// original_source/headers/bha/types.hpp exactly.
type AnalysisOptions struct {
	// MaxThreads bounds analyzer-internal parallelism; 0 means
	// implementation-chosen (runtime.GOMAXPROCS).
	MaxThreads int

	// MinDurationThreshold drops units/headers cheaper than this from
	// FileAnalyzer and PCHAnalyzer output.
	MinDurationThreshold time.Duration

	AnalyzeTemplates bool
	AnalyzeIncludes  bool
	AnalyzeSymbols   bool
	Verbose          bool
}

// DefaultAnalysisOptions returns the reference defaults.
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		MaxThreads:            0,
		MinDurationThreshold:  10 * time.Millisecond,
		AnalyzeTemplates:      true,
		AnalyzeIncludes:       true,
		AnalyzeSymbols:        true,
		Verbose:               false,
	}
}
