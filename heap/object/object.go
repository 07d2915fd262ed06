// Package object holds the simulated objects of a region-based heap and the
// registry that owns every live one.
package object

import "fmt"

// ID is the identity of a simulated object. IDs are assigned monotonically by
// a Registry and never reused.
type ID uint64

// NoRegion is the owning-region value of an object that is not placed.
const NoRegion = -1

// Object is a simulated heap object.
type Object struct {
	ID        ID
	Size      int64 // Size in bytes
	Age       int   // Young collections survived
	Reachable bool  // Verdict of the most recent oracle evaluation
	Region    int   // Index of the owning region, NoRegion when unplaced
	Span      int   // Regions occupied; 1 unless oversized
	Refs      []ID  // Outgoing references
}

// New returns an unplaced object of the given size.
func New(id ID, size int64) *Object {
	return &Object{
		ID:        id,
		Size:      size,
		Reachable: true,
		Region:    NoRegion,
		Span:      1,
	}
}

// AddRef records an outgoing reference. Duplicate references are ignored.
func (o *Object) AddRef(to ID) {
	for _, r := range o.Refs {
		if r == to {
			return
		}
	}
	o.Refs = append(o.Refs, to)
}

// RemoveRef drops an outgoing reference and reports whether it existed.
func (o *Object) RemoveRef(to ID) bool {
	for i, r := range o.Refs {
		if r == to {
			o.Refs = append(o.Refs[:i], o.Refs[i+1:]...)
			return true
		}
	}
	return false
}

func (o *Object) String() string {
	return fmt.Sprintf("Obj[%d] size:%dKB age:%d region:%d refs:%v",
		o.ID, o.Size/1024, o.Age, o.Region, o.Refs)
}
