package region

import (
	"fmt"

	"github.com/joshuapare/g1sim/heap/object"
)

// Role is the tag a region carries.
type Role uint8

const (
	Free Role = iota
	Eden
	Survivor
	Old
	Oversized
)

// Roles lists every role in reporting order.
var Roles = []Role{Free, Eden, Survivor, Old, Oversized}

func (r Role) String() string {
	switch r {
	case Free:
		return "FREE"
	case Eden:
		return "EDEN"
	case Survivor:
		return "SURVIVOR"
	case Old:
		return "OLD"
	case Oversized:
		return "OVERSIZED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the role name, so roles work as JSON map keys.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Young reports whether the role belongs to the young generation.
func (r Role) Young() bool { return r == Eden || r == Survivor }

// Region is one fixed-capacity partition of the heap.
type Region struct {
	index    int
	role     Role
	capacity int64
	used     int64
	objects  []*object.Object

	// inCSet marks a region that belongs to the running cycle's collection
	// set. Searches skip it so evacuation never targets a region being swept.
	inCSet bool
}

func newRegion(index int, capacity int64) *Region {
	return &Region{index: index, role: Free, capacity: capacity}
}

// Index returns the stable index of the region.
func (r *Region) Index() int { return r.index }

// Role returns the current role.
func (r *Region) Role() Role { return r.role }

// SetRole retags the region.
func (r *Region) SetRole(role Role) { r.role = role }

// Capacity returns the fixed byte capacity.
func (r *Region) Capacity() int64 { return r.capacity }

// Used returns the bytes occupied by resident objects.
func (r *Region) Used() int64 { return r.used }

// Headroom returns the bytes still available.
func (r *Region) Headroom() int64 { return r.capacity - r.used }

// Fill returns the used/capacity ratio.
func (r *Region) Fill() float64 { return float64(r.used) / float64(r.capacity) }

// Len returns the number of resident objects.
func (r *Region) Len() int { return len(r.objects) }

// Empty reports whether the region holds no objects.
func (r *Region) Empty() bool { return len(r.objects) == 0 }

// Objects returns the resident objects in placement order. The slice must
// not be modified.
func (r *Region) Objects() []*object.Object { return r.objects }

// IDs returns the identities of the resident objects in placement order.
func (r *Region) IDs() []object.ID {
	ids := make([]object.ID, len(r.objects))
	for i, obj := range r.objects {
		ids[i] = obj.ID
	}
	return ids
}

// InCollectionSet reports whether the region is part of the running cycle.
func (r *Region) InCollectionSet() bool { return r.inCSet }

// MarkCollectionSet sets or clears the collection-set mark.
func (r *Region) MarkCollectionSet(on bool) { r.inCSet = on }

// Place appends obj to the region and records the region as its owner.
// The object's footprint in this region is min(size, capacity); oversized
// objects account for the rest in their continuation regions.
func (r *Region) Place(obj *object.Object) error {
	n := min(obj.Size, r.capacity)
	if r.used+n > r.capacity {
		return fmt.Errorf("%w: region %d has %d bytes, need %d", ErrRegionFull, r.index, r.Headroom(), n)
	}
	r.objects = append(r.objects, obj)
	r.used += n
	obj.Region = r.index
	return nil
}

// Reserve accounts n bytes of an oversized object's footprint to a
// continuation region, which holds no object record of its own.
func (r *Region) Reserve(n int64) error {
	if r.used+n > r.capacity {
		return fmt.Errorf("%w: region %d has %d bytes, need %d", ErrRegionFull, r.index, r.Headroom(), n)
	}
	r.used += n
	return nil
}

// Remove drops the object with the given ID from the resident list.
func (r *Region) Remove(id object.ID) (*object.Object, error) {
	for i, obj := range r.objects {
		if obj.ID != id {
			continue
		}
		r.objects = append(r.objects[:i], r.objects[i+1:]...)
		r.used -= min(obj.Size, r.capacity)
		obj.Region = object.NoRegion
		return obj, nil
	}
	return nil, ErrNotResident
}

// Detach removes and returns every resident object, leaving the role as is.
func (r *Region) Detach() []*object.Object {
	objs := r.objects
	r.objects = nil
	r.used = 0
	for _, obj := range objs {
		obj.Region = object.NoRegion
	}
	return objs
}

func (r *Region) String() string {
	return fmt.Sprintf("Region[%d] %s usage:%.1f%% objects:%d",
		r.index, r.role, r.Fill()*100, len(r.objects))
}
