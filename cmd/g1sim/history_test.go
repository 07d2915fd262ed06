package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordHistory runs smallWorkload twice into one history directory.
func recordHistory(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "history")
	path := writeWorkload(t, smallWorkload)

	quiet = true
	for range 2 {
		_, err := captureOutput(t, func() error {
			return runRun(context.Background(), []string{path}, runOptions{every: 0, historyDir: dir})
		})
		require.NoError(t, err)
	}
	quiet = false
	return dir
}

func TestHistoryCommand(t *testing.T) {
	resetFlags(t)
	dir := recordHistory(t)

	out, err := captureOutput(t, func() error { return runHistory(dir, false) })
	require.NoError(t, err)

	assert.Contains(t, out, "young seq 1")
	assert.Contains(t, out, "History "+dir)
	assert.Contains(t, out, "Cycles:")
	assert.Contains(t, out, "mixed 0, full 0")
}

func TestHistoryCommand_SummaryJSON(t *testing.T) {
	resetFlags(t)
	dir := recordHistory(t)
	jsonOut = true

	out, err := captureOutput(t, func() error { return runHistory(dir, true) })
	require.NoError(t, err)

	var summary struct {
		Entries int `json:"entries"`
		Young   int `json:"young"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Positive(t, summary.Entries)
	assert.Zero(t, summary.Entries%2, "both runs record the same cycles")
	assert.Equal(t, summary.Entries, summary.Young)
}

func TestHistoryCommand_EntriesJSON(t *testing.T) {
	resetFlags(t)
	dir := recordHistory(t)
	jsonOut = true

	out, err := captureOutput(t, func() error { return runHistory(dir, false) })
	require.NoError(t, err)

	var doc struct {
		Entries []struct {
			Index uint64 `json:"index"`
			Event struct {
				Seq uint64 `json:"seq"`
			} `json:"event"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.NotEmpty(t, doc.Entries)

	// Indexes run on across runs; each run's sequence restarts.
	half := len(doc.Entries) / 2
	assert.Equal(t, uint64(half+1), doc.Entries[half].Index)
	assert.Equal(t, uint64(1), doc.Entries[half].Event.Seq)
}

func TestHistoryCommand_MissingDir(t *testing.T) {
	resetFlags(t)
	err := runHistory(filepath.Join(t.TempDir(), "nope"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open history")
}
