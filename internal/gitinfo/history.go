// Package gitinfo defines the build-history persistence schema spec.md
// §6 reserves for an external collaborator: "Build history tracking
// (commit -> build_time) is persisted by an external collaborator as a
// CSV-style <commit_hash>,<duration_ns> newline record per commit; the
// engine defines only the schema." This package gives that schema a
// concrete reader/writer pair so the "report" subcommand's trend section
// and this module's own tests have something to exercise; the engine
// itself never shells out to git (that subprocess invocation stays the
// out-of-scope external collaborator named alongside the trace parser in
// spec.md §1).
package gitinfo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yenhunghuang/bha/internal/bhaerr"
	"github.com/yenhunghuang/bha/internal/trace"
)

// ReadHistory parses the commit,duration_ns newline record format from
// r, one trace.CommitImpact per line, in file order. Blank lines are
// skipped. A malformed line surfaces a ParseError naming the line
// number.
func ReadHistory(r io.Reader) ([]trace.CommitImpact, error) {
	scanner := bufio.NewScanner(r)
	var out []trace.CommitImpact
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			return nil, bhaerr.Newf(bhaerr.ParseError, "build history line %d: expected <commit_hash>,<duration_ns>", lineNo)
		}
		ns, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return nil, bhaerr.Newf(bhaerr.ParseError, "build history line %d: invalid duration %q", lineNo, parts[1])
		}
		out = append(out, trace.CommitImpact{
			CommitHash: strings.TrimSpace(parts[0]),
			BuildTime:  time.Duration(ns),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, bhaerr.Newf(bhaerr.IoError, "read build history: %v", err)
	}

	applyDeltas(out)
	return out, nil
}

// applyDeltas fills DeltaFromPrev as each record's BuildTime minus its
// predecessor's, matching the CSV's implicit chronological ordering
// (each line appended as a commit lands).
func applyDeltas(records []trace.CommitImpact) {
	for i := 1; i < len(records); i++ {
		records[i].DeltaFromPrev = records[i].BuildTime - records[i-1].BuildTime
	}
}

// ReadHistoryFile opens path and parses it with ReadHistory, surfacing a
// NotFound error if the file does not exist.
func ReadHistoryFile(path string) ([]trace.CommitImpact, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bhaerr.Newf(bhaerr.NotFound, "build history file %s not found", path)
		}
		return nil, bhaerr.Newf(bhaerr.IoError, "open build history file %s: %v", path, err)
	}
	defer f.Close()
	return ReadHistory(f)
}

// AppendRecord appends one <commit_hash>,<duration_ns> line to the file
// at path, creating it if necessary. This is the write side of the
// schema spec.md §6 reserves for the external collaborator.
func AppendRecord(path string, commitHash string, buildTime time.Duration) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return bhaerr.Newf(bhaerr.IoError, "open build history file %s for append: %v", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s,%d\n", commitHash, buildTime.Nanoseconds()); err != nil {
		return bhaerr.Newf(bhaerr.IoError, "write build history record: %v", err)
	}
	return nil
}

// SummarizeByAuthor aggregates a history slice into per-author stats.
// The history slice alone carries no author; callers pass a parallel
// authors slice (same length, index-aligned) sourced from
// trace.GitInfo records collected alongside each build.
func SummarizeByAuthor(records []trace.CommitImpact, authors []string) []trace.AuthorStats {
	if len(records) != len(authors) {
		return nil
	}
	byAuthor := make(map[string]*trace.AuthorStats)
	var order []string
	for i, author := range authors {
		stats, ok := byAuthor[author]
		if !ok {
			stats = &trace.AuthorStats{Author: author}
			byAuthor[author] = stats
			order = append(order, author)
		}
		stats.CommitCount++
		stats.TotalBuildDelta += records[i].DeltaFromPrev
	}
	sort.Strings(order)
	out := make([]trace.AuthorStats, 0, len(order))
	for _, a := range order {
		out = append(out, *byAuthor[a])
	}
	return out
}
