package oracle

import (
	"slices"

	"github.com/joshuapare/g1sim/heap/object"
)

// RootTracer marks everything reachable from an explicit root set by
// following outgoing references breadth-first. References to objects that
// are not in the evaluated set are ignored.
type RootTracer struct {
	roots map[object.ID]struct{}
}

// NewRootTracer returns a tracer with the given roots.
func NewRootTracer(roots ...object.ID) *RootTracer {
	t := &RootTracer{roots: make(map[object.ID]struct{}, len(roots))}
	for _, id := range roots {
		t.roots[id] = struct{}{}
	}
	return t
}

// AddRoot adds id to the root set.
func (t *RootTracer) AddRoot(id object.ID) { t.roots[id] = struct{}{} }

// RemoveRoot drops id from the root set.
func (t *RootTracer) RemoveRoot(id object.ID) { delete(t.roots, id) }

// Roots returns the root set in ascending order.
func (t *RootTracer) Roots() []object.ID {
	out := make([]object.ID, 0, len(t.roots))
	for id := range t.roots {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Evaluate implements Oracle.
func (t *RootTracer) Evaluate(objs []*object.Object) Verdicts {
	byID := make(map[object.ID]*object.Object, len(objs))
	v := make(Verdicts, len(objs))
	for _, obj := range objs {
		byID[obj.ID] = obj
		v[obj.ID] = false
	}

	var queue []object.ID
	for _, id := range t.Roots() {
		if _, ok := byID[id]; ok {
			v[id] = true
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		for _, ref := range byID[id].Refs {
			if _, ok := byID[ref]; !ok || v[ref] {
				continue
			}
			v[ref] = true
			queue = append(queue, ref)
		}
	}

	return v
}
