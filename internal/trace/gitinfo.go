package trace

import "time"

// GitInfo is the optional git context attached to a BuildTrace. Analyzers
// never require it; it is populated by an external collaborator that
// shells out to git (out of scope for this engine).
type GitInfo struct {
	CommitHash string
	Branch     string
	Author     string
	Email      string
	CommitTime time.Time
	Message    string
	IsDirty    bool
}

// CommitImpact associates a commit with the aggregate build-time delta it
// introduced, for the build-history trend surfaced by the "report"
// subcommand (spec.md §6, "Persisted state").
type CommitImpact struct {
	CommitHash    string
	BuildTime     time.Duration
	DeltaFromPrev time.Duration
	Timestamp     time.Time
}

// AuthorStats aggregates build-time contribution by commit author, used
// by the optional git-history supplement.
type AuthorStats struct {
	Author        string
	CommitCount   int
	TotalBuildDelta time.Duration
}

// LineBlame attributes a single line to the commit that last touched it.
type LineBlame struct {
	Line       int
	CommitHash string
	Author     string
}

// FileBlame is the per-file aggregate of LineBlame records, used to
// correlate a hotspot header with the commit/author history that shaped
// it.
type FileBlame struct {
	Path  string
	Lines []LineBlame
}
