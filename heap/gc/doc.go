// Package gc implements a region-based, incremental, garbage-first collector
// over a simulated heap.
//
// # Overview
//
// A Collector owns a region.Store and an object.Registry and is their only
// writer. New objects are placed by Allocate; collections run synchronously
// and stop the world for their whole duration.
//
// # Allocation
//
// Objects larger than RegionCapacityBytes*OversizedThresholdFraction take a
// contiguous run of ceil(size/capacity) Free regions, all tagged Oversized,
// with the object record in the first. A failed search leaves every region
// untouched. Other objects go to an Eden region below EdenFillCeiling, then to
// a newly claimed Eden region; with no Free region left a Young cycle runs and
// the placement is retried once before ErrAllocationFailure.
//
// AllocateOrEscalate adds the last resort: a Full cycle and one more retry,
// then ErrHeapExhausted.
//
// # Cycles
//
//	Young  Eden + Survivor regions; survivors age, reaching
//	       PromotionAgeThreshold promotes to Old
//	Mixed  Young regions + at most MixedRegionCap Old regions ranked by
//	       garbage ratio; chained after a Young cycle when the Old-region
//	       fraction exceeds MixedTriggerOldFraction
//	Full   every non-Free region, purged in place without relocation; only
//	       regions left empty revert to Free
//
// Young and Mixed cycles release each collected region and re-home its
// survivors into Survivor or Old regions, searching with the role's fill
// ceiling before claiming Free regions.
//
// # Reachability
//
// Liveness comes from an oracle.Oracle queried once at the start of each
// cycle. The collector never traces on its own.
//
// # Observation
//
// Snapshot reports per-role usage and cycle totals. An optional Recorder
// receives a CycleEvent after every cycle, and an optional slog.Logger gets
// one Debug line per cycle plus warnings on escalation.
package gc
