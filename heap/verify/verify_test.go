package verify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/g1sim/heap/object"
	"github.com/joshuapare/g1sim/heap/region"
)

// newHeap returns a 4-region store with one Eden object and one oversized
// object spanning regions 2-3, plus the matching registry.
func newHeap(t *testing.T) (*region.Store, *object.Registry) {
	t.Helper()
	store, err := region.NewStore(4, 1000)
	require.NoError(t, err)
	reg := object.NewRegistry()

	eden := store.At(0)
	eden.SetRole(region.Eden)
	small := object.New(reg.NextID(), 300)
	require.NoError(t, eden.Place(small))
	require.NoError(t, reg.Insert(small))

	big := object.New(reg.NextID(), 1500)
	big.Span = 2
	store.At(2).SetRole(region.Oversized)
	store.At(3).SetRole(region.Oversized)
	require.NoError(t, store.At(2).Place(big))
	require.NoError(t, store.At(3).Reserve(500))
	require.NoError(t, reg.Insert(big))

	return store, reg
}

func requireKind(t *testing.T, err error, kind string) {
	t.Helper()
	require.Error(t, err)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %T", err)
	require.Equal(t, kind, ve.Type)
}

func TestAllInvariants_Valid(t *testing.T) {
	store, reg := newHeap(t)
	require.NoError(t, AllInvariants(store, reg, 15))
}

func TestOwnership_WrongRegionField(t *testing.T) {
	store, reg := newHeap(t)
	reg.Get(1).Region = 1

	err := Ownership(store, reg)
	requireKind(t, err, "Ownership")
	require.Contains(t, err.Error(), "names region 1")
}

func TestOwnership_NotResident(t *testing.T) {
	store, reg := newHeap(t)
	orphan := object.New(reg.NextID(), 10)
	require.NoError(t, reg.Insert(orphan))

	err := Ownership(store, reg)
	requireKind(t, err, "Ownership")
	require.Contains(t, err.Error(), "not resident")
}

func TestOwnership_ResidentNotLive(t *testing.T) {
	store, reg := newHeap(t)
	require.NoError(t, reg.Remove(1))

	requireKind(t, Ownership(store, reg), "Ownership")
}

func TestFreeRegions_NonEmptyFree(t *testing.T) {
	store, _ := newHeap(t)
	store.At(0).SetRole(region.Free)

	err := FreeRegions(store)
	requireKind(t, err, "FreeRegions")
	require.Contains(t, err.Error(), "at region 0")
}

func TestYoungAges(t *testing.T) {
	store, reg := newHeap(t)
	reg.Get(1).Age = 15

	requireKind(t, YoungAges(store, 15), "YoungAges")
	require.NoError(t, YoungAges(store, 16))
}

func TestOversizedRuns_BrokenContinuation(t *testing.T) {
	store, _ := newHeap(t)
	store.At(3).SetRole(region.Old)

	requireKind(t, OversizedRuns(store), "OversizedRuns")
}

func TestOversizedRuns_Orphan(t *testing.T) {
	store, _ := newHeap(t)
	store.At(1).SetRole(region.Oversized)

	err := OversizedRuns(store)
	requireKind(t, err, "OversizedRuns")
	require.Contains(t, err.Error(), "orphaned")
}

func TestOversizedRuns_WrongSpan(t *testing.T) {
	store, reg := newHeap(t)
	reg.Get(2).Span = 1

	requireKind(t, OversizedRuns(store), "OversizedRuns")
}

func TestValidationError_NoRegion(t *testing.T) {
	err := &ValidationError{Type: "X", Message: "y", Region: -1}
	require.Equal(t, "X: y", err.Error())
}
