package workload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/g1sim/heap/gc"
	"github.com/joshuapare/g1sim/heap/oracle"
)

func TestDefault(t *testing.T) {
	w := Default()
	require.NoError(t, w.Validate())
	assert.Equal(t, gc.DefaultConfig(), w.Heap)
	assert.Equal(t, 50, w.Allocations.Count)
	assert.Equal(t, OracleRandom, w.Oracle.Kind)
	assert.InDelta(t, 0.9, w.Oracle.ReachableProbability, 1e-9)
}

func TestParse_Empty(t *testing.T) {
	w, err := Parse([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), w)
}

func TestParse_Overrides(t *testing.T) {
	w, err := Parse([]byte(`{
		"format": "1.2.0",
		"name": "small",
		"statusEvery": 5,
		"escalate": false,
		"heap": {"regionCount": 64, "regionCapacityBytes": 4096, "promotionAgeThreshold": 2, "mixedRegionCap": 5},
		"oracle": {"kind": "never"},
		"allocations": {"count": 200, "minSize": 16, "maxSize": 512, "largeEvery": 0, "seed": 42}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "small", w.Name)
	assert.Equal(t, "1.2.0", w.Format)
	assert.Equal(t, 5, w.StatusEvery)
	assert.False(t, w.Escalate)
	assert.Equal(t, 64, w.Heap.RegionCount)
	assert.Equal(t, int64(4096), w.Heap.RegionCapacityBytes)
	assert.Equal(t, 2, w.Heap.PromotionAgeThreshold)
	assert.Equal(t, 5, w.Heap.MixedRegionCap)
	// Untouched fields keep their defaults.
	assert.InDelta(t, 0.45, w.Heap.MixedTriggerOldFraction, 1e-9)
	assert.Equal(t, OracleNever, w.Oracle.Kind)
	assert.Equal(t, 200, w.Allocations.Count)
	assert.Equal(t, uint64(42), w.Allocations.Seed)
	assert.Equal(t, 0, w.Allocations.LargeEvery)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"invalid json", `{"heap": `, ErrInvalidJSON},
		{"major version", `{"format": "2.0.0"}`, ErrUnsupportedFormat},
		{"not semver", `{"format": "latest"}`, ErrUnsupportedFormat},
		{"unknown oracle", `{"oracle": {"kind": "psychic"}}`, ErrUnknownOracle},
		{"bad heap", `{"heap": {"regionCount": 0}}`, gc.ErrInvalidConfig},
		{"empty size range", `{"allocations": {"minSize": 100, "maxSize": 100}}`, ErrInvalidWorkload},
		{"negative count", `{"allocations": {"count": -1}}`, ErrInvalidWorkload},
		{"empty large range", `{"allocations": {"largeMin": 10, "largeMax": 5}}`, ErrInvalidWorkload},
		{"negative status", `{"statusEvery": -2}`, ErrInvalidWorkload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"format": "1.0.0", "name": "from-file"}`), 0o644))

	w, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", w.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewOracle(t *testing.T) {
	w := Default()

	w.Oracle.Kind = OracleAlways
	o, err := w.NewOracle()
	require.NoError(t, err)
	assert.IsType(t, oracle.Func(nil), o)

	w.Oracle.Kind = OracleRandom
	o, err = w.NewOracle()
	require.NoError(t, err)
	assert.IsType(t, &oracle.Random{}, o)
}
