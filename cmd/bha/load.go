package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/yenhunghuang/bha/internal/bhaerr"
	"github.com/yenhunghuang/bha/internal/trace"
)

// discoverTraceFiles expands paths (files or directories) into a sorted,
// deduplicated list of .json trace files, recursing into directories, as
// spec.md §6's export subcommand contract requires.
func discoverTraceFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, bhaerr.Newf(bhaerr.NotFound, "trace path %s not found", p)
			}
			return nil, bhaerr.Newf(bhaerr.IoError, "stat %s: %v", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.Walk(p, func(walked string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() && filepath.Ext(walked) == ".json" {
				add(walked)
			}
			return nil
		})
		if err != nil {
			return nil, bhaerr.Newf(bhaerr.IoError, "walk %s: %v", p, err)
		}
	}

	sort.Strings(out)
	if len(out) == 0 {
		return nil, bhaerr.NewInvalidArgument("no .json trace files found in the given paths")
	}
	return out, nil
}

// loadTraceFile decodes one already-parsed BuildTrace value from a JSON
// file. bha's own parsing step stops here: the trace *parser* for a
// specific compiler frontend is the external collaborator named in
// spec.md §1; this CLI only consumes its JSON-serialized output.
func loadTraceFile(path string) (trace.BuildTrace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return trace.BuildTrace{}, bhaerr.Newf(bhaerr.IoError, "read trace file %s: %v", path, err)
	}
	var bt trace.BuildTrace
	if err := json.Unmarshal(data, &bt); err != nil {
		return trace.BuildTrace{}, bhaerr.Newf(bhaerr.ParseError, "parse trace file %s: %v", path, err)
	}
	return bt, nil
}

// aggregateTraces concatenates every unit from every trace file into one
// BuildTrace, per spec.md §6's "builds one aggregated BuildTrace whose
// units are the concatenation". Metadata (compiler, build system,
// configuration) is taken from the first trace; TotalTime is left at
// zero so EffectiveTotalTime falls back to summing unit times.
func aggregateTraces(paths []string) (trace.BuildTrace, error) {
	var out trace.BuildTrace
	for i, p := range paths {
		bt, err := loadTraceFile(p)
		if err != nil {
			return trace.BuildTrace{}, err
		}
		if i == 0 {
			out.ID = bt.ID
			out.Timestamp = bt.Timestamp
			out.Compiler = bt.Compiler
			out.CompilerVersion = bt.CompilerVersion
			out.BuildSystem = bt.BuildSystem
			out.Configuration = bt.Configuration
			out.Platform = bt.Platform
			out.Git = bt.Git
		}
		out.Units = append(out.Units, bt.Units...)
	}
	return out, nil
}
