package gc

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/joshuapare/g1sim/heap/object"
	"github.com/joshuapare/g1sim/heap/region"
)

// noCeiling accepts any region that still has headroom.
var noCeiling = math.Inf(1)

// CollectYoung runs a Young cycle over every Eden and Survivor region. If
// afterwards the Old-region fraction exceeds MixedTriggerOldFraction, a Mixed
// cycle follows immediately.
func (c *Collector) CollectYoung() CycleEvent {
	defer c.setState(Idle)

	ev := c.runCycle(KindYoung, func(ev *CycleEvent) {
		c.evaluate()
		c.evacuate(c.store.ByRole(region.Eden, region.Survivor), true, ev)
	})

	if c.mixedDue() {
		// Young survivors were aged by the cycle that just ran.
		c.collectMixed(false)
	}
	return ev
}

// CollectMixed runs a Mixed cycle over every Young region plus the Old
// regions chosen by RankOldRegions.
func (c *Collector) CollectMixed() CycleEvent {
	return c.collectMixed(true)
}

func (c *Collector) collectMixed(ageYoung bool) CycleEvent {
	defer c.setState(Idle)

	return c.runCycle(KindMixed, func(ev *CycleEvent) {
		c.evaluate()
		cset := c.store.ByRole(region.Eden, region.Survivor)
		cset = append(cset, c.RankOldRegions()...)
		slices.SortFunc(cset, func(a, b *region.Region) int { return cmp.Compare(a.Index(), b.Index()) })
		c.evacuate(cset, ageYoung, ev)
	})
}

// CollectFull runs a Full cycle: every object in every non-Free region is
// evaluated, unreachable objects are purged in place and only regions left
// with no objects revert to Free. Survivors are never moved.
func (c *Collector) CollectFull() CycleEvent {
	defer c.setState(Idle)

	ev := c.runCycle(KindFull, func(ev *CycleEvent) {
		c.evaluate()
		for _, r := range c.store.Regions() {
			c.sweepInPlace(r, ev)
		}
	})
	c.log.Warn("full collection", "seq", ev.Seq, "regions_freed", ev.RegionsFreed, "pause", ev.Pause)
	return ev
}

// runCycle wraps one cycle body with state, timing and reporting.
func (c *Collector) runCycle(kind Kind, body func(ev *CycleEvent)) CycleEvent {
	c.setState(kind.state())
	c.seq++

	ev := CycleEvent{Seq: c.seq, Kind: kind, Start: time.Now()}
	freeBefore := c.store.CountRole(region.Free)
	start := c.clock()

	body(&ev)

	ev.Pause = c.clock() - start
	ev.RegionsFreed = c.store.CountRole(region.Free) - freeBefore
	ev.LiveObjects = c.objects.Len()

	c.cycles[kind]++
	c.totalPause += ev.Pause

	c.log.Debug("gc cycle",
		"kind", kind.String(),
		"seq", ev.Seq,
		"pause", ev.Pause,
		"reclaimed", ev.Reclaimed,
		"survivors", ev.Survivors,
		"promoted", ev.Promoted,
		"regions_freed", ev.RegionsFreed,
		"live", ev.LiveObjects,
	)
	if c.rec != nil {
		c.rec.RecordCycle(ev)
	}
	return ev
}

// evaluate asks the oracle about every live object and stores the verdicts.
func (c *Collector) evaluate() {
	objs := c.objects.All()
	verdicts := c.oracle.Evaluate(objs)
	for _, obj := range objs {
		obj.Reachable = verdicts.Reachable(obj.ID)
	}
}

func (c *Collector) mixedDue() bool {
	old := float64(c.store.CountRole(region.Old))
	return old/float64(c.store.Len()) > c.cfg.MixedTriggerOldFraction
}

// evacuate sweeps a collection set. Every region in the set is marked first
// so no survivor is moved into a region that is still waiting to be swept.
// Regions are then released one at a time and their survivors re-homed
// before the next region is touched, so the released region is always
// available to take back its own survivors. When ageYoung is false, Young
// survivors keep their age and stay in Survivor regions.
func (c *Collector) evacuate(cset []*region.Region, ageYoung bool, ev *CycleEvent) {
	for _, r := range cset {
		r.MarkCollectionSet(true)
	}

	for _, r := range cset {
		young := r.Role().Young()
		from := r.Index()

		var promote, survive []*object.Object
		for _, obj := range c.store.Release(r) {
			switch {
			case !obj.Reachable:
				c.reclaim(obj, ev)
			case !young:
				promote = append(promote, obj)
				ev.Retained++
			default:
				if ageYoung {
					obj.Age++
				}
				if obj.Age >= c.cfg.PromotionAgeThreshold {
					promote = append(promote, obj)
					ev.Promoted++
				} else {
					survive = append(survive, obj)
					ev.Survivors++
				}
			}
		}

		for _, obj := range promote {
			c.rehome(obj, from, c.oldTargets())
		}
		for _, obj := range survive {
			c.rehome(obj, from, c.survivorTargets())
		}
	}
}

// sweepInPlace purges the unreachable residents of one region for a Full
// cycle. An oversized object takes its continuation regions with it; a
// continuation region is never released on its own.
func (c *Collector) sweepInPlace(r *region.Region, ev *CycleEvent) {
	if r.Role() == region.Free {
		return
	}
	if r.Role() == region.Oversized && r.Empty() {
		return
	}

	for _, obj := range slices.Clone(r.Objects()) {
		if obj.Reachable {
			ev.Retained++
			continue
		}
		if r.Role() == region.Oversized {
			c.releaseRun(r.Index(), obj.Span)
		} else if _, err := r.Remove(obj.ID); err != nil {
			panic(fmt.Sprintf("gc: object %d listed in region %d: %v", obj.ID, r.Index(), err))
		}
		c.reclaim(obj, ev)
	}

	if r.Role() != region.Oversized && r.Empty() {
		c.store.Release(r)
	}
}

func (c *Collector) releaseRun(first, span int) {
	for i := first; i < first+span; i++ {
		if r := c.store.At(i); r != nil {
			c.store.Release(r)
		}
	}
}

func (c *Collector) reclaim(obj *object.Object, ev *CycleEvent) {
	if err := c.objects.Remove(obj.ID); err != nil {
		panic(fmt.Sprintf("gc: swept object %d not registered: %v", obj.ID, err))
	}
	ev.Reclaimed++
	ev.ReclaimedBytes += obj.Size
}

// target is one step of a placement fallback chain.
type target struct {
	role    region.Role
	ceiling float64 // 0 means claim a Free region
}

func (c *Collector) oldTargets() []target {
	return []target{
		{region.Old, c.cfg.OldFillCeiling},
		{region.Old, 0},
		{region.Old, noCeiling},
	}
}

// survivorTargets ends in Old: when survivor space runs out, objects are
// promoted early rather than dropped. Age is left unchanged.
func (c *Collector) survivorTargets() []target {
	return []target{
		{region.Survivor, c.cfg.SurvivorFillCeiling},
		{region.Survivor, 0},
		{region.Survivor, noCeiling},
		{region.Old, noCeiling},
	}
}

func (c *Collector) rehome(obj *object.Object, from int, chain []target) {
	for _, t := range chain {
		var (
			r  *region.Region
			ok bool
		)
		if t.ceiling == 0 {
			r, ok = c.store.ClaimFree(t.role)
		} else {
			r, ok = c.store.FindUsable(t.role, t.ceiling, obj.Size)
		}
		if !ok {
			continue
		}
		if err := r.Place(obj); err != nil {
			panic(fmt.Sprintf("gc: re-home of object %d rejected by region %d: %v", obj.ID, r.Index(), err))
		}
		return
	}
	// The region the object came from was released before re-homing and can
	// always hold it, so reaching this point means the table is corrupt.
	panic(fmt.Sprintf("gc: no region can take object %d (%d bytes) from region %d", obj.ID, obj.Size, from))
}
