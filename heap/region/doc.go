// Package region provides the fixed-size region table of a simulated
// region-based heap.
//
// # Overview
//
// A Store owns an array of N regions, fixed at construction. Every region has
// the same byte capacity and carries a role:
//
//	Free       unused, available to be claimed
//	Eden       young generation, new allocations
//	Survivor   young generation, objects that survived at least one cycle
//	Old        promoted objects
//	Oversized  large objects spanning one or more contiguous regions
//
// The store exposes search primitives only. Placement policy (which role to
// search, which ceiling to use, when to collect) belongs to package gc.
//
// # Search Primitives
//
//   - FindUsable(role, ceiling, need): first region of role below the fill
//     ceiling with room for need bytes
//   - ClaimFree(role): first Free region, retagged
//   - FindContiguousFree(count): first run of count Free regions; never
//     retags, so a failed search leaves the table untouched
//
// There is no compaction. Fragmentation persists until a collection empties
// regions naturally.
//
// # Thread Safety
//
// Stores are not thread-safe. The owning collector is the single writer.
package region
