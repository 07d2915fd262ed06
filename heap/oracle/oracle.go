// Package oracle decides which simulated objects are reachable.
//
// # Overview
//
// The collector never traces on its own. At the start of every cycle it hands
// the live objects to an Oracle and acts on the returned verdicts. Objects the
// oracle does not mention are treated as reachable, so an incomplete oracle
// can only retain garbage, never free a live object.
//
// # Implementations
//
//   - Always: every object gets the same verdict
//   - Fixed: explicit per-object assignment with a default
//   - RootTracer: breadth-first traversal from a root set over each object's
//     outgoing references
//   - Random: seeded per-object coin flip, deterministic for a given seed
package oracle

import "github.com/joshuapare/g1sim/heap/object"

// Verdicts maps an object ID to its reachability.
type Verdicts map[object.ID]bool

// Reachable returns the verdict for id. Missing entries are reachable.
func (v Verdicts) Reachable(id object.ID) bool {
	r, ok := v[id]
	return !ok || r
}

// Oracle evaluates the reachability of a set of objects.
type Oracle interface {
	Evaluate(objs []*object.Object) Verdicts
}

// Func adapts a plain function to the Oracle interface.
type Func func(objs []*object.Object) Verdicts

// Evaluate calls f.
func (f Func) Evaluate(objs []*object.Object) Verdicts { return f(objs) }

// Always returns an oracle that gives every object the same verdict.
func Always(reachable bool) Oracle {
	return Func(func(objs []*object.Object) Verdicts {
		v := make(Verdicts, len(objs))
		for _, obj := range objs {
			v[obj.ID] = reachable
		}
		return v
	})
}

// Fixed is an explicit per-object assignment. IDs not in Verdicts get Default.
type Fixed struct {
	Verdicts Verdicts
	Default  bool
}

// NewFixed returns an assignment that defaults to reachable.
func NewFixed() *Fixed {
	return &Fixed{Verdicts: make(Verdicts), Default: true}
}

// Set records the verdict for id.
func (f *Fixed) Set(id object.ID, reachable bool) *Fixed {
	f.Verdicts[id] = reachable
	return f
}

// Evaluate implements Oracle.
func (f *Fixed) Evaluate(objs []*object.Object) Verdicts {
	v := make(Verdicts, len(objs))
	for _, obj := range objs {
		r, ok := f.Verdicts[obj.ID]
		if !ok {
			r = f.Default
		}
		v[obj.ID] = r
	}
	return v
}
