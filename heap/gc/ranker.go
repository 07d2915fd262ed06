package gc

import (
	"cmp"
	"slices"

	"github.com/joshuapare/g1sim/heap/region"
)

// GarbageRatio returns the share of a region's residents that the most recent
// oracle evaluation found unreachable. An empty region has ratio 0.
func GarbageRatio(r *region.Region) float64 {
	if r.Empty() {
		return 0
	}
	garbage := 0
	for _, obj := range r.Objects() {
		if !obj.Reachable {
			garbage++
		}
	}
	return float64(garbage) / float64(r.Len())
}

// RankOldRegions returns at most limit Old regions of store ordered by
// descending garbage ratio, ties broken by ascending index.
func RankOldRegions(store *region.Store, limit int) []*region.Region {
	type ranked struct {
		r     *region.Region
		ratio float64
	}

	var candidates []ranked
	for _, r := range store.ByRole(region.Old) {
		candidates = append(candidates, ranked{r: r, ratio: GarbageRatio(r)})
	}
	slices.SortFunc(candidates, func(a, b ranked) int {
		if c := cmp.Compare(b.ratio, a.ratio); c != 0 {
			return c
		}
		return cmp.Compare(a.r.Index(), b.r.Index())
	})

	n := min(len(candidates), max(limit, 0))
	out := make([]*region.Region, n)
	for i := range n {
		out[i] = candidates[i].r
	}
	return out
}

// RankOldRegions applies the garbage-first ranking with MixedRegionCap as the
// limit, using the verdicts of the most recent cycle.
func (c *Collector) RankOldRegions() []*region.Region {
	return RankOldRegions(c.store, c.cfg.MixedRegionCap)
}
