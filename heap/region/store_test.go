package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/g1sim/heap/object"
)

func newTestStore(t *testing.T, count int, capacity int64) *Store {
	t.Helper()
	s, err := NewStore(count, capacity)
	require.NoError(t, err)
	return s
}

func TestNewStore_Invalid(t *testing.T) {
	_, err := NewStore(0, 1024)
	require.ErrorIs(t, err, ErrBadCount)

	_, err = NewStore(4, 0)
	require.ErrorIs(t, err, ErrBadCount)
}

func TestNewStore_AllFree(t *testing.T) {
	s := newTestStore(t, 8, 1000)

	require.Equal(t, 8, s.Len())
	require.Equal(t, int64(1000), s.Capacity())
	require.Equal(t, 8, s.CountRole(Free))
	for i, r := range s.Regions() {
		require.Equal(t, i, r.Index())
		require.True(t, r.Empty())
	}
	require.Nil(t, s.At(-1))
	require.Nil(t, s.At(8))
}

func TestRegion_PlaceAndRemove(t *testing.T) {
	s := newTestStore(t, 1, 1000)
	r := s.At(0)
	r.SetRole(Eden)

	a := object.New(1, 400)
	b := object.New(2, 400)
	require.NoError(t, r.Place(a))
	require.NoError(t, r.Place(b))
	require.Equal(t, 0, a.Region)
	require.Equal(t, int64(800), r.Used())
	require.InDelta(t, 0.8, r.Fill(), 1e-9)
	require.Equal(t, []object.ID{1, 2}, r.IDs())

	// Third one would exceed capacity.
	err := r.Place(object.New(3, 400))
	require.ErrorIs(t, err, ErrRegionFull)
	require.Equal(t, 2, r.Len())

	got, err := r.Remove(1)
	require.NoError(t, err)
	require.Same(t, a, got)
	require.Equal(t, object.NoRegion, a.Region)
	require.Equal(t, int64(400), r.Used())

	_, err = r.Remove(1)
	require.ErrorIs(t, err, ErrNotResident)
}

func TestRegion_OversizedFootprintCapped(t *testing.T) {
	s := newTestStore(t, 2, 1000)
	head := s.At(0)
	head.SetRole(Oversized)

	big := object.New(1, 1500)
	require.NoError(t, head.Place(big))
	require.Equal(t, int64(1000), head.Used())

	cont := s.At(1)
	cont.SetRole(Oversized)
	require.NoError(t, cont.Reserve(500))
	require.Equal(t, int64(500), cont.Used())
	require.ErrorIs(t, cont.Reserve(501), ErrRegionFull)
}

func TestFindUsable(t *testing.T) {
	s := newTestStore(t, 4, 1000)
	s.At(1).SetRole(Eden)
	s.At(2).SetRole(Eden)
	require.NoError(t, s.At(1).Place(object.New(1, 900)))

	tests := []struct {
		name    string
		role    Role
		ceiling float64
		need    int64
		want    int
		found   bool
	}{
		{name: "skips region at ceiling", role: Eden, ceiling: 0.9, need: 10, want: 2, found: true},
		{name: "higher ceiling but no headroom", role: Eden, ceiling: 1.0, need: 200, want: 2, found: true},
		{name: "higher ceiling with headroom", role: Eden, ceiling: 1.0, need: 100, want: 1, found: true},
		{name: "role absent", role: Old, ceiling: 0.8, need: 1, found: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := s.FindUsable(tt.role, tt.ceiling, tt.need)
			require.Equal(t, tt.found, ok)
			if ok {
				require.Equal(t, tt.want, r.Index())
			}
		})
	}
}

func TestFindUsable_SkipsCollectionSet(t *testing.T) {
	s := newTestStore(t, 2, 1000)
	s.At(0).SetRole(Survivor)
	s.At(1).SetRole(Survivor)
	s.At(0).MarkCollectionSet(true)

	r, ok := s.FindUsable(Survivor, 0.8, 1)
	require.True(t, ok)
	require.Equal(t, 1, r.Index())
}

func TestClaimFree(t *testing.T) {
	s := newTestStore(t, 2, 1000)

	r, ok := s.ClaimFree(Eden)
	require.True(t, ok)
	require.Equal(t, 0, r.Index())
	require.Equal(t, Eden, r.Role())

	r, ok = s.ClaimFree(Old)
	require.True(t, ok)
	require.Equal(t, 1, r.Index())

	_, ok = s.ClaimFree(Eden)
	require.False(t, ok)
}

func TestFindContiguousFree(t *testing.T) {
	s := newTestStore(t, 6, 1000)
	// Layout: F E F F E F
	s.At(1).SetRole(Eden)
	s.At(4).SetRole(Eden)

	run := s.FindContiguousFree(2)
	require.Len(t, run, 2)
	assert.Equal(t, 2, run[0].Index())
	assert.Equal(t, 3, run[1].Index())

	run = s.FindContiguousFree(1)
	require.Len(t, run, 1)
	assert.Equal(t, 0, run[0].Index())

	// No run of three exists anywhere; nothing is retagged.
	require.Nil(t, s.FindContiguousFree(3))
	require.Equal(t, 4, s.CountRole(Free))

	require.Nil(t, s.FindContiguousFree(0))
	require.Nil(t, s.FindContiguousFree(7))
}

func TestRelease(t *testing.T) {
	s := newTestStore(t, 1, 1000)
	r := s.At(0)
	r.SetRole(Old)
	r.MarkCollectionSet(true)
	obj := object.New(1, 100)
	require.NoError(t, r.Place(obj))

	objs := s.Release(r)
	require.Len(t, objs, 1)
	require.Equal(t, object.NoRegion, obj.Region)
	require.Equal(t, Free, r.Role())
	require.Zero(t, r.Used())
	require.False(t, r.InCollectionSet())
}

func TestUsage(t *testing.T) {
	s := newTestStore(t, 4, 1000)
	s.At(0).SetRole(Eden)
	s.At(1).SetRole(Old)
	require.NoError(t, s.At(0).Place(object.New(1, 300)))
	require.NoError(t, s.At(1).Place(object.New(2, 200)))

	u := s.Usage()
	assert.Equal(t, RoleUsage{Regions: 2}, u[Free])
	assert.Equal(t, RoleUsage{Regions: 1, UsedBytes: 300}, u[Eden])
	assert.Equal(t, RoleUsage{Regions: 1, UsedBytes: 200}, u[Old])
	assert.Equal(t, RoleUsage{}, u[Oversized])

	assert.Len(t, s.ByRole(Eden, Old), 2)
	assert.Equal(t, "OLD", Old.String())
	assert.True(t, Survivor.Young())
	assert.False(t, Old.Young())
}
