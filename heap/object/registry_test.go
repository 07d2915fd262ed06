package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_NextIDMonotonic(t *testing.T) {
	r := NewRegistry()
	a := r.NextID()
	b := r.NextID()
	c := r.NextID()

	require.Equal(t, ID(1), a)
	require.Less(t, a, b)
	require.Less(t, b, c)
}

func TestRegistry_InsertRemove(t *testing.T) {
	r := NewRegistry()
	obj := New(r.NextID(), 128)

	require.NoError(t, r.Insert(obj))
	require.ErrorIs(t, r.Insert(obj), ErrDuplicate)
	require.True(t, r.Contains(obj.ID))
	require.Same(t, obj, r.Get(obj.ID))
	require.Equal(t, 1, r.Len())

	require.NoError(t, r.Remove(obj.ID))
	require.ErrorIs(t, r.Remove(obj.ID), ErrUnknown)
	require.Nil(t, r.Get(obj.ID))
	require.Zero(t, r.Len())
}

// TestRegistry_IDsNotReused verifies that removing the newest object does not
// hand its ID out again.
func TestRegistry_IDsNotReused(t *testing.T) {
	r := NewRegistry()
	first := New(r.NextID(), 8)
	require.NoError(t, r.Insert(first))
	require.NoError(t, r.Remove(first.ID))

	assert.NotEqual(t, first.ID, r.NextID())
}

func TestRegistry_AllOrdered(t *testing.T) {
	r := NewRegistry()
	for _, id := range []ID{7, 3, 11, 1} {
		require.NoError(t, r.Insert(New(id, 16)))
	}

	var ids []ID
	r.ForEach(func(o *Object) { ids = append(ids, o.ID) })
	assert.Equal(t, []ID{1, 3, 7, 11}, ids)

	// Explicit inserts push the counter past the highest ID.
	assert.Equal(t, ID(12), r.NextID())
}

func TestObject_Refs(t *testing.T) {
	obj := New(1, 64)
	obj.AddRef(2)
	obj.AddRef(3)
	obj.AddRef(2)
	require.Equal(t, []ID{2, 3}, obj.Refs)

	require.True(t, obj.RemoveRef(2))
	require.False(t, obj.RemoveRef(2))
	require.Equal(t, []ID{3}, obj.Refs)
}

func TestObject_NewDefaults(t *testing.T) {
	obj := New(5, 1024)
	assert.Equal(t, NoRegion, obj.Region)
	assert.Equal(t, 1, obj.Span)
	assert.Zero(t, obj.Age)
	assert.True(t, obj.Reachable)
	assert.Contains(t, obj.String(), "Obj[5]")
}
