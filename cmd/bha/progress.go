package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/yenhunghuang/bha/internal/export"
)

// progressConfig determines whether and how export progress is
// rendered, matching kraklabs-cie's cmd/cie/progress.go ProgressConfig.
type progressConfig struct {
	enabled bool
	writer  io.Writer
}

func newProgressConfig() progressConfig {
	return progressConfig{
		enabled: !flags.quiet && isatty.IsTerminal(os.Stderr.Fd()),
		writer:  os.Stderr,
	}
}

// newExportProgress adapts a progressbar.ProgressBar into the engine's
// export.ProgressCallback, redrawing the bar's total whenever a new
// stage reports a different one.
func (c progressConfig) newExportProgress(description string) (export.ProgressCallback, func()) {
	if !c.enabled {
		return nil, func() {}
	}

	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(c.writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(!flags.noColor),
		progressbar.OptionThrottle(65_000_000), // ns: matches kraklabs-cie's 65ms throttle
	)

	var lastTotal int64
	cb := func(current, total uint64, stage string) {
		if int64(total) != lastTotal {
			lastTotal = int64(total)
			bar.ChangeMax64(lastTotal)
		}
		bar.Describe(description + ": " + stage)
		_ = bar.Set64(int64(current))
	}
	return cb, func() { _ = bar.Finish() }
}
