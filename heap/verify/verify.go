// Package verify checks the structural invariants of a simulated region heap.
// These helpers are used in tests and by the CLI after a run.
package verify

import (
	"fmt"

	"github.com/joshuapare/g1sim/heap/object"
	"github.com/joshuapare/g1sim/heap/region"
)

// ValidationError describes one violated invariant.
type ValidationError struct {
	Type    string
	Message string
	Region  int // -1 when not tied to one region
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	if e.Region >= 0 {
		return fmt.Sprintf("%s at region %d: %s", e.Type, e.Region, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates every invariant in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(store *region.Store, reg *object.Registry, promotionAge int) error {
	if err := Capacity(store); err != nil {
		return err
	}
	if err := FreeRegions(store); err != nil {
		return err
	}
	if err := Ownership(store, reg); err != nil {
		return err
	}
	if err := YoungAges(store, promotionAge); err != nil {
		return err
	}
	return OversizedRuns(store)
}

// Capacity checks that no region holds more than its capacity, counting both
// the used-bytes field and the footprint of resident objects.
func Capacity(store *region.Store) error {
	for _, r := range store.Regions() {
		if r.Used() > r.Capacity() {
			return &ValidationError{
				Type:    "Capacity",
				Message: fmt.Sprintf("used %d exceeds capacity %d", r.Used(), r.Capacity()),
				Region:  r.Index(),
			}
		}
		var sum int64
		for _, obj := range r.Objects() {
			sum += min(obj.Size, r.Capacity())
		}
		if sum > r.Capacity() {
			return &ValidationError{
				Type:    "Capacity",
				Message: fmt.Sprintf("resident bytes %d exceed capacity %d", sum, r.Capacity()),
				Region:  r.Index(),
			}
		}
	}
	return nil
}

// FreeRegions checks that Free regions hold nothing.
func FreeRegions(store *region.Store) error {
	for _, r := range store.Regions() {
		if r.Role() != region.Free {
			continue
		}
		if !r.Empty() || r.Used() != 0 {
			return &ValidationError{
				Type:    "FreeRegions",
				Message: fmt.Sprintf("free region holds %d objects, %d bytes", r.Len(), r.Used()),
				Region:  r.Index(),
			}
		}
	}
	return nil
}

// Ownership checks that every resident object is live and points back at its
// region, and that every live object is listed by exactly one region.
func Ownership(store *region.Store, reg *object.Registry) error {
	seen := make(map[object.ID]int, reg.Len())
	for _, r := range store.Regions() {
		for _, obj := range r.Objects() {
			if prev, dup := seen[obj.ID]; dup {
				return &ValidationError{
					Type:    "Ownership",
					Message: fmt.Sprintf("object %d also listed in region %d", obj.ID, prev),
					Region:  r.Index(),
				}
			}
			seen[obj.ID] = r.Index()

			if reg.Get(obj.ID) != obj {
				return &ValidationError{
					Type:    "Ownership",
					Message: fmt.Sprintf("resident object %d is not live", obj.ID),
					Region:  r.Index(),
				}
			}
			if obj.Region != r.Index() {
				return &ValidationError{
					Type:    "Ownership",
					Message: fmt.Sprintf("object %d names region %d", obj.ID, obj.Region),
					Region:  r.Index(),
				}
			}
		}
	}

	for _, obj := range reg.All() {
		if _, ok := seen[obj.ID]; !ok {
			return &ValidationError{
				Type:    "Ownership",
				Message: fmt.Sprintf("live object %d is not resident anywhere", obj.ID),
				Region:  -1,
				Details: map[string]interface{}{"claimed_region": obj.Region},
			}
		}
	}
	return nil
}

// YoungAges checks that no Eden or Survivor region holds an object whose age
// has reached the promotion threshold. It holds after every Young or Mixed
// cycle; a Full cycle does not move objects and may leave it violated only if
// a Young cycle never ran.
func YoungAges(store *region.Store, promotionAge int) error {
	for _, r := range store.Regions() {
		if !r.Role().Young() {
			continue
		}
		for _, obj := range r.Objects() {
			if obj.Age >= promotionAge {
				return &ValidationError{
					Type:    "YoungAges",
					Message: fmt.Sprintf("object %d has age %d, threshold %d", obj.ID, obj.Age, promotionAge),
					Region:  r.Index(),
				}
			}
		}
	}
	return nil
}

// OversizedRuns checks that every oversized object owns a contiguous run of
// Span Oversized regions whose continuation regions hold no records, and that
// every empty Oversized region belongs to such a run.
func OversizedRuns(store *region.Store) error {
	covered := make(map[int]bool)
	for _, r := range store.Regions() {
		if r.Role() != region.Oversized || r.Empty() {
			continue
		}
		if r.Len() != 1 {
			return &ValidationError{
				Type:    "OversizedRuns",
				Message: fmt.Sprintf("head region holds %d objects", r.Len()),
				Region:  r.Index(),
			}
		}
		obj := r.Objects()[0]
		want := int((obj.Size + store.Capacity() - 1) / store.Capacity())
		if obj.Span != want {
			return &ValidationError{
				Type:    "OversizedRuns",
				Message: fmt.Sprintf("object %d spans %d regions, size needs %d", obj.ID, obj.Span, want),
				Region:  r.Index(),
			}
		}
		for i := r.Index() + 1; i < r.Index()+obj.Span; i++ {
			cont := store.At(i)
			if cont == nil || cont.Role() != region.Oversized || !cont.Empty() {
				return &ValidationError{
					Type:    "OversizedRuns",
					Message: fmt.Sprintf("continuation region %d of object %d is not an empty oversized region", i, obj.ID),
					Region:  r.Index(),
				}
			}
			covered[i] = true
		}
	}

	for _, r := range store.Regions() {
		if r.Role() == region.Oversized && r.Empty() && !covered[r.Index()] {
			return &ValidationError{
				Type:    "OversizedRuns",
				Message: "orphaned continuation region",
				Region:  r.Index(),
			}
		}
	}
	return nil
}
