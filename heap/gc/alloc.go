package gc

import (
	"errors"
	"fmt"

	"github.com/joshuapare/g1sim/heap/object"
	"github.com/joshuapare/g1sim/heap/region"
)

// Allocate places a new object of size bytes and returns its ID.
//
// Objects above the oversized limit take a contiguous run of Free regions and
// fail without touching any region if no run exists. Other objects go to an
// Eden region below the Eden ceiling, then to a newly claimed Eden region;
// if the heap has no Free region left, one Young cycle runs and the placement
// is retried exactly once.
func (c *Collector) Allocate(size int64) (object.ID, error) {
	if size <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if size > c.cfg.oversizedLimit() {
		return c.allocateOversized(size)
	}

	if obj, ok := c.allocateNormal(size); ok {
		return obj.ID, nil
	}

	c.log.Debug("eden exhausted", "size", size)
	c.CollectYoung()

	if obj, ok := c.allocateNormal(size); ok {
		return obj.ID, nil
	}
	c.log.Warn("allocation failed after young collection", "size", size)
	return 0, fmt.Errorf("%w: %d bytes after young collection", ErrAllocationFailure, size)
}

// AllocateOrEscalate is Allocate with the Full-cycle escalation path: on
// ErrAllocationFailure it runs a Full cycle and retries once. A second
// failure is reported as ErrHeapExhausted.
func (c *Collector) AllocateOrEscalate(size int64) (object.ID, error) {
	id, err := c.Allocate(size)
	if !errors.Is(err, ErrAllocationFailure) {
		return id, err
	}

	c.log.Warn("escalating to full collection", "size", size)
	c.CollectFull()

	id, err = c.Allocate(size)
	if errors.Is(err, ErrAllocationFailure) {
		return 0, fmt.Errorf("%w: %d bytes after full collection", ErrHeapExhausted, size)
	}
	return id, err
}

func (c *Collector) allocateNormal(size int64) (*object.Object, bool) {
	r, ok := c.store.FindUsable(region.Eden, c.cfg.EdenFillCeiling, size)
	if !ok {
		r, ok = c.store.ClaimFree(region.Eden)
	}
	if !ok {
		return nil, false
	}

	obj := object.New(c.objects.NextID(), size)
	c.commit(r, obj)
	return obj, true
}

func (c *Collector) allocateOversized(size int64) (object.ID, error) {
	need := c.cfg.regionsFor(size)
	if need > int64(c.store.Len()) {
		c.log.Warn("oversized object exceeds heap", "size", size, "regions", need)
		return 0, fmt.Errorf("%w: %d bytes need %d regions, heap has %d", ErrAllocationFailure, size, need, c.store.Len())
	}
	span := int(need)
	run := c.store.FindContiguousFree(span)
	if len(run) == 0 || len(run) < span {
		c.log.Warn("no contiguous free run", "size", size, "regions", span)
		return 0, fmt.Errorf("%w: no run of %d free regions for %d bytes", ErrAllocationFailure, span, size)
	}

	// The run is confirmed; only now are regions retagged.
	for _, r := range run {
		r.SetRole(region.Oversized)
	}

	obj := object.New(c.objects.NextID(), size)
	obj.Span = span
	c.commit(run[0], obj)

	remaining := size - min(size, c.cfg.RegionCapacityBytes)
	for _, r := range run[1:] {
		n := min(remaining, c.cfg.RegionCapacityBytes)
		if err := r.Reserve(n); err != nil {
			panic(fmt.Sprintf("gc: free region %d rejected continuation: %v", r.Index(), err))
		}
		remaining -= n
	}

	c.log.Debug("oversized allocation", "id", obj.ID, "size", size, "regions", span, "first", run[0].Index())
	return obj.ID, nil
}

// commit places a new object and registers it. The region was chosen with
// enough headroom, so a failure here is a broken invariant.
func (c *Collector) commit(r *region.Region, obj *object.Object) {
	if err := r.Place(obj); err != nil {
		panic(fmt.Sprintf("gc: chosen region rejected object %d: %v", obj.ID, err))
	}
	if err := c.objects.Insert(obj); err != nil {
		panic(fmt.Sprintf("gc: registry rejected object %d: %v", obj.ID, err))
	}
}
