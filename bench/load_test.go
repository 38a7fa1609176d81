package bench

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const summaryJSON = `[
  {"participant_count": 10, "user_cycles": 9500, "total_cycles": 16384,
   "session_segments": 4, "proving_time_ms": 4500, "total_time_ms": 5000,
   "receipt_size_bytes": 2048, "journal_size_bytes": 4096, "timestamp": "t2"},
  {"participant_count": 1, "user_cycles": 1000, "total_cycles": 1024,
   "session_segments": 1, "proving_time_ms": 500, "total_time_ms": 600,
   "receipt_size_bytes": 2048, "journal_size_bytes": 512, "timestamp": "t1"}
]`

func runJSON(n int, ts string) string {
	return `{"participant_count": ` + strconv.Itoa(n) + `, "user_cycles": 100,
	"total_cycles": 128, "session_segments": 1, "proving_time_ms": 10,
	"total_time_ms": 20, "receipt_size_bytes": 1, "journal_size_bytes": 1,
	"timestamp": "` + ts + `"}`
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
	require.NoError(t, err)
}

func TestLoadSummary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SummaryFile, summaryJSON)
	// Ignored while the summary file exists.
	writeFile(t, dir, "benchmark_N5.json", runJSON(5, "t5"))

	src, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, SourceSummary, src.Kind)

	records, err := src.Load()
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Load order is preserved.
	assert.Equal(t, int64(10), records[0].ParticipantCount)
	assert.Equal(t, int64(9500), records[0].UserCycles)
	assert.Equal(t, "t2", records[0].Timestamp)
	assert.Equal(t, int64(1), records[1].ParticipantCount)
	assert.Equal(t, int64(512), records[1].JournalSizeBytes)
}

func TestLoadRunFilesSortedByName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "benchmark_N20.json", runJSON(20, "b"))
	writeFile(t, dir, "benchmark_N1.json", runJSON(1, "a"))
	writeFile(t, dir, "benchmark_N5.json", runJSON(5, "c"))
	writeFile(t, dir, "other.json", `not even json`)
	writeFile(t, dir, "benchmark_X1.json", `not even json`)

	src, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, SourceRunFiles, src.Kind)
	require.Len(t, src.Paths, 3)

	records, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Lexical filename order: N1, N20, N5.
	assert.Equal(t, int64(1), records[0].ParticipantCount)
	assert.Equal(t, int64(20), records[1].ParticipantCount)
	assert.Equal(t, int64(5), records[2].ParticipantCount)
}

func TestLoadEmptyDir(t *testing.T) {
	records, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadEmptySummary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SummaryFile, `[]`)

	records, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadNotADir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file", "x")

	_, err := Load(filepath.Join(dir, "file"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotDir)
}

func TestLoadDirWithGlobCharacters(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run[1]*?")
	require.NoError(t, os.Mkdir(dir, 0o755))
	writeFile(t, dir, "benchmark_N1.json", runJSON(1, "a"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "benchmark_N9.json"), 0o755))

	src, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "benchmark_N1.json")}, src.Paths)

	records, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].Timestamp)
}

func TestLoadTrailingWhitespace(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SummaryFile, summaryJSON+"\n\n  \t\n")

	records, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"summary garbage", SummaryFile, `[{"participant_count": 1,`},
		{"summary trailing data", SummaryFile, `[] []`},
		{"summary object", SummaryFile, runJSON(1, "t")},
		{"run file garbage", "benchmark_N1.json", `{`},
		{"run file trailing delimiter", "benchmark_N1.json", runJSON(1, "t") + "}}]"},
		{"run file trailing value", "benchmark_N1.json", runJSON(1, "t") + ` 7`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.content)

			_, err := Load(dir)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Contains(t, err.Error(), tt.file)
		})
	}
}

func TestLoadOneBadRunFileFailsAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "benchmark_N1.json", runJSON(1, "a"))
	writeFile(t, dir, "benchmark_N2.json", `{"participant_count": `)

	records, err := Load(dir)
	require.ErrorIs(t, err, ErrMalformed)
	assert.Nil(t, records)
}

func TestLoadInvalidRecord(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing timestamp",
			content: `{"participant_count": 1, "user_cycles": 1, "total_cycles": 1, "session_segments": 1, "proving_time_ms": 1, "total_time_ms": 1, "receipt_size_bytes": 1, "journal_size_bytes": 1}`,
		},
		{
			name:    "missing user cycles",
			content: `{"participant_count": 1, "total_cycles": 1, "session_segments": 1, "proving_time_ms": 1, "total_time_ms": 1, "receipt_size_bytes": 1, "journal_size_bytes": 1, "timestamp": "t"}`,
		},
		{
			name:    "zero participants",
			content: `{"participant_count": 0, "user_cycles": 1, "total_cycles": 1, "session_segments": 1, "proving_time_ms": 1, "total_time_ms": 1, "receipt_size_bytes": 1, "journal_size_bytes": 1, "timestamp": "t"}`,
		},
		{
			name:    "negative segments",
			content: `{"participant_count": 1, "user_cycles": 1, "total_cycles": 1, "session_segments": -1, "proving_time_ms": 1, "total_time_ms": 1, "receipt_size_bytes": 1, "journal_size_bytes": 1, "timestamp": "t"}`,
		},
		{
			name:    "total below user cycles",
			content: `{"participant_count": 1, "user_cycles": 5, "total_cycles": 4, "session_segments": 1, "proving_time_ms": 1, "total_time_ms": 1, "receipt_size_bytes": 1, "journal_size_bytes": 1, "timestamp": "t"}`,
		},
		{
			name:    "total below proving time",
			content: `{"participant_count": 1, "user_cycles": 1, "total_cycles": 1, "session_segments": 1, "proving_time_ms": 9, "total_time_ms": 1, "receipt_size_bytes": 1, "journal_size_bytes": 1, "timestamp": "t"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "benchmark_N1.json", tt.content)

			_, err := Load(dir)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestLoadZeroValuesArePresent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "benchmark_N1.json", `{"participant_count": 1,
	"user_cycles": 0, "total_cycles": 0, "session_segments": 0,
	"proving_time_ms": 0, "total_time_ms": 0, "receipt_size_bytes": 0,
	"journal_size_bytes": 0, "timestamp": ""}`)

	records, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Zero(t, records[0].UserCycles)
}
