package object

import (
	"cmp"
	"errors"
	"slices"
)

var (
	// ErrDuplicate indicates an insert of an ID that is already registered.
	ErrDuplicate = errors.New("object: duplicate id")

	// ErrUnknown indicates a lookup or removal of an ID that is not registered.
	ErrUnknown = errors.New("object: unknown id")
)

// Registry is the live-object table keyed by identity.
//
// IDs start at 1 so the zero ID never names a live object.
type Registry struct {
	objects map[ID]*Object
	nextID  ID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		objects: make(map[ID]*Object),
		nextID:  1,
	}
}

// NextID reserves and returns the next identity.
func (r *Registry) NextID() ID {
	id := r.nextID
	r.nextID++
	return id
}

// Insert registers a live object.
func (r *Registry) Insert(obj *Object) error {
	if _, ok := r.objects[obj.ID]; ok {
		return ErrDuplicate
	}
	r.objects[obj.ID] = obj
	if obj.ID >= r.nextID {
		r.nextID = obj.ID + 1
	}
	return nil
}

// Remove unregisters an object.
func (r *Registry) Remove(id ID) error {
	if _, ok := r.objects[id]; !ok {
		return ErrUnknown
	}
	delete(r.objects, id)
	return nil
}

// Get returns the object with the given ID, or nil.
func (r *Registry) Get(id ID) *Object {
	return r.objects[id]
}

// Contains reports whether id is live.
func (r *Registry) Contains(id ID) bool {
	_, ok := r.objects[id]
	return ok
}

// Len returns the number of live objects.
func (r *Registry) Len() int { return len(r.objects) }

// All returns every live object ordered by ascending ID.
func (r *Registry) All() []*Object {
	out := make([]*Object, 0, len(r.objects))
	for _, obj := range r.objects {
		out = append(out, obj)
	}
	slices.SortFunc(out, func(a, b *Object) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// ForEach calls fn for every live object in ascending ID order.
func (r *Registry) ForEach(fn func(*Object)) {
	for _, obj := range r.All() {
		fn(obj)
	}
}
