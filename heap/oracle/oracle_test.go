package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/g1sim/heap/object"
)

func objs(ids ...object.ID) []*object.Object {
	out := make([]*object.Object, len(ids))
	for i, id := range ids {
		out[i] = object.New(id, 64)
	}
	return out
}

func TestVerdicts_MissingIsReachable(t *testing.T) {
	v := Verdicts{1: false, 2: true}
	assert.False(t, v.Reachable(1))
	assert.True(t, v.Reachable(2))
	assert.True(t, v.Reachable(3))
}

func TestAlways(t *testing.T) {
	set := objs(1, 2, 3)

	for _, want := range []bool{true, false} {
		v := Always(want).Evaluate(set)
		require.Len(t, v, 3)
		for _, obj := range set {
			require.Equal(t, want, v[obj.ID])
		}
	}
}

func TestFixed(t *testing.T) {
	f := NewFixed().Set(2, false)
	v := f.Evaluate(objs(1, 2, 3))
	assert.Equal(t, Verdicts{1: true, 2: false, 3: true}, v)

	f.Default = false
	v = f.Evaluate(objs(1, 2))
	assert.Equal(t, Verdicts{1: false, 2: false}, v)
}

func TestRootTracer(t *testing.T) {
	// 1 (root) -> 2 -> 3
	//          -> 4
	// 5 -> 6 -> 5 (unrooted cycle)
	// 7 -> 99 (dangling)
	set := objs(1, 2, 3, 4, 5, 6, 7)
	set[0].Refs = []object.ID{2, 4}
	set[1].Refs = []object.ID{3}
	set[4].Refs = []object.ID{6}
	set[5].Refs = []object.ID{5}
	set[6].Refs = []object.ID{99}

	tr := NewRootTracer(1, 7)
	v := tr.Evaluate(set)
	assert.Equal(t, Verdicts{1: true, 2: true, 3: true, 4: true, 5: false, 6: false, 7: true}, v)
	assert.NotContains(t, v, object.ID(99))

	tr.RemoveRoot(1)
	tr.AddRoot(6)
	v = tr.Evaluate(set)
	assert.Equal(t, Verdicts{1: false, 2: false, 3: false, 4: false, 5: true, 6: true, 7: true}, v)
	assert.Equal(t, []object.ID{6, 7}, tr.Roots())
}

func TestRootTracer_RootNotLive(t *testing.T) {
	tr := NewRootTracer(42)
	v := tr.Evaluate(objs(1))
	assert.Equal(t, Verdicts{1: false}, v)
}

func TestRandom_DeterministicForSeed(t *testing.T) {
	set := objs(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)

	a := NewRandom(DefaultReachableProbability, 42)
	b := NewRandom(DefaultReachableProbability, 42)
	for range 5 {
		require.Equal(t, a.Evaluate(set), b.Evaluate(set))
	}
}

func TestRandom_Extremes(t *testing.T) {
	set := objs(1, 2, 3, 4)

	v := NewRandom(1.5, 1).Evaluate(set)
	for _, obj := range set {
		assert.True(t, v[obj.ID])
	}

	v = NewRandom(-1, 1).Evaluate(set)
	for _, obj := range set {
		assert.False(t, v[obj.ID])
	}
}
