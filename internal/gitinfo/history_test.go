package gitinfo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yenhunghuang/bha/internal/trace"
)

func TestReadHistoryParsesRecordsAndDeltas(t *testing.T) {
	r := strings.NewReader("abc123,1000000000\n\ndef456,1500000000\n")
	records, err := ReadHistory(r)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "abc123", records[0].CommitHash)
	assert.Equal(t, time.Second, records[0].BuildTime)
	assert.Equal(t, time.Duration(0), records[0].DeltaFromPrev)

	assert.Equal(t, "def456", records[1].CommitHash)
	assert.Equal(t, 500*time.Millisecond, records[1].DeltaFromPrev)
}

func TestReadHistoryRejectsMalformedLine(t *testing.T) {
	_, err := ReadHistory(strings.NewReader("not-a-valid-line"))
	assert.Error(t, err)
}

func TestAppendRecordRoundTrips(t *testing.T) {
	path := t.TempDir() + "/history.csv"
	require.NoError(t, AppendRecord(path, "commit1", 2*time.Second))
	require.NoError(t, AppendRecord(path, "commit2", 3*time.Second))

	records, err := ReadHistoryFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "commit1", records[0].CommitHash)
	assert.Equal(t, time.Second, records[1].DeltaFromPrev)
}

func TestSummarizeByAuthor(t *testing.T) {
	impacts := []trace.CommitImpact{
		{CommitHash: "c1", DeltaFromPrev: 0},
		{CommitHash: "c2", DeltaFromPrev: 200 * time.Millisecond},
		{CommitHash: "c3", DeltaFromPrev: -100 * time.Millisecond},
	}
	authors := []string{"alice", "bob", "alice"}

	stats := SummarizeByAuthor(impacts, authors)
	require.Len(t, stats, 2)

	byName := make(map[string]trace.AuthorStats, len(stats))
	for _, s := range stats {
		byName[s.Author] = s
	}
	assert.Equal(t, 2, byName["alice"].CommitCount)
	assert.Equal(t, -100*time.Millisecond, byName["alice"].TotalBuildDelta)
	assert.Equal(t, 1, byName["bob"].CommitCount)
}

func TestSummarizeByAuthorMismatchedLengthsReturnsNil(t *testing.T) {
	assert.Nil(t, SummarizeByAuthor([]trace.CommitImpact{{}}, nil))
}
