package export

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/yenhunghuang/bha/internal/analyzers"
	"github.com/yenhunghuang/bha/internal/bhaerr"
	"github.com/yenhunghuang/bha/internal/metrics"
	"github.com/yenhunghuang/bha/internal/suggestions"
)

// ExportToFile writes exporter's output to path, optionally gzip
// compressing the stream when opts.Compress is set. This is the only
// I/O the export pipeline performs, per spec.md §5's "the engine itself
// performs no I/O except in the exporter."
func ExportToFile(ctx context.Context, exporter Exporter, path string, result analyzers.AnalysisResult, sugg []suggestions.Suggestion, opts ExportOptions, progress ProgressCallback) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && filepath.Dir(path) != "." {
		return bhaerr.Newf(bhaerr.IoError, "create output directory for %s: %v", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return bhaerr.Newf(bhaerr.IoError, "open %s for writing: %v", path, err)
	}
	defer f.Close()

	start := time.Now()
	defer func() {
		if err == nil {
			metrics.RecordExport(exporter.Format().String(), time.Since(start).Seconds())
		}
	}()

	if !opts.Compress {
		return exporter.ExportToStream(ctx, f, result, sugg, opts, progress)
	}

	gw := gzip.NewWriter(f)
	if err := exporter.ExportToStream(ctx, gw, result, sugg, opts, progress); err != nil {
		gw.Close()
		return err
	}
	if err := gw.Close(); err != nil {
		return bhaerr.Newf(bhaerr.IoError, "flush gzip stream for %s: %v", path, err)
	}
	return nil
}
