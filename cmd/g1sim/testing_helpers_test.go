package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	out := <-done
	return string(out), fnErr
}

// resetFlags restores the global flags after a test changes them.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		verbose, quiet, jsonOut, debug, logJSON = false, false, false, false, false
	})
}

// writeWorkload writes a small workload file and returns its path.
func writeWorkload(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workload.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

// smallWorkload allocates about twice the capacity of a 16-region heap.
// Nothing is ever reachable, so every young collection empties Eden and the
// run never fails.
const smallWorkload = `{
	"format": "1.0.0",
	"name": "small",
	"statusEvery": 50,
	"heap": {"regionCount": 16, "regionCapacityBytes": 4096, "promotionAgeThreshold": 2},
	"oracle": {"kind": "never"},
	"allocations": {"count": 200, "minSize": 64, "maxSize": 1024, "largeEvery": 0, "seed": 3}
}`

// tinyWorkload keeps everything reachable on a 2-region heap and runs out
// of memory.
const tinyWorkload = `{
	"name": "tiny",
	"heap": {"regionCount": 2, "regionCapacityBytes": 1000},
	"oracle": {"kind": "always"},
	"allocations": {"count": 50, "minSize": 100, "maxSize": 200, "largeEvery": 0}
}`
