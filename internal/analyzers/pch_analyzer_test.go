package analyzers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yenhunghuang/bha/internal/heuristics"
	"github.com/yenhunghuang/bha/internal/trace"
)

func TestIsSystemAndStableHeader(t *testing.T) {
	assert.True(t, isSystemHeader("/usr/include/vector"))
	assert.True(t, isSystemHeader("vector"))
	assert.False(t, isSystemHeader("widget.h"))

	assert.True(t, isStableHeader("widget_fwd.h"))
	assert.True(t, isStableHeader("config.h"))
	assert.False(t, isStableHeader("widget.h"))
}

func TestPCHAnalyzerRequiresThreeIncludersAndAggregateTime(t *testing.T) {
	var units []trace.CompilationUnit
	for i, name := range []string{"a.cpp", "b.cpp", "c.cpp", "d.cpp"} {
		includes := []trace.IncludeInfo{{Header: "heavy.h", ParseTime: 200 * time.Millisecond}}
		if i == 0 {
			includes = append(includes, trace.IncludeInfo{Header: "rare.h", ParseTime: 600 * time.Millisecond})
		}
		units = append(units, trace.CompilationUnit{SourceFile: name, Includes: includes})
	}

	res, err := PCHAnalyzer{}.Analyze(context.Background(), trace.BuildTrace{Units: units}, trace.DefaultAnalysisOptions(), heuristics.Defaults())
	require.NoError(t, err)

	require.Len(t, res.PCH.Candidates, 1, "rare.h has only one includer and must not qualify")
	assert.Equal(t, "heavy.h", res.PCH.Candidates[0].Header)
	assert.Equal(t, 4, res.PCH.Candidates[0].InclusionCount)
	assert.Greater(t, res.PCH.Candidates[0].PCHScore, 0.0)
	assert.Greater(t, res.PCH.PotentialSavings, time.Duration(0))
}
