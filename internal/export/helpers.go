package export

import (
	"time"

	"github.com/yenhunghuang/bha/internal/trace"
)

// msOf converts a duration to milliseconds using the same
// microsecond-precision path spec.md §9 requires everywhere else a
// Duration crosses the export boundary.
func msOf(d time.Duration) float64 {
	return trace.DurationToMillis(d)
}
