package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAnalyzerRunIncrementsCounters(t *testing.T) {
	RecordAnalyzerRun("pch", false, 0.01)
	RecordAnalyzerRun("pch", true, 0.02)

	m.init()
	if got := testutil.ToFloat64(m.analyzerRuns.WithLabelValues("pch")); got < 2 {
		t.Fatalf("expected at least 2 runs recorded, got %v", got)
	}
	if got := testutil.ToFloat64(m.analyzerSkips.WithLabelValues("pch")); got < 1 {
		t.Fatalf("expected at least 1 skip recorded, got %v", got)
	}
}

func TestRecordGeneratorRunAndExport(t *testing.T) {
	RecordGeneratorRun("PCH_CANDIDATE", 3, 0.001)
	RecordExport("json", 0.005)

	m.init()
	if got := testutil.ToFloat64(m.suggestionsEmitted.WithLabelValues("PCH_CANDIDATE")); got < 3 {
		t.Fatalf("expected at least 3 suggestions emitted, got %v", got)
	}
	if got := testutil.ToFloat64(m.exportsTotal.WithLabelValues("json")); got < 1 {
		t.Fatalf("expected at least 1 export recorded, got %v", got)
	}
}
