package main

import (
	"time"

	"github.com/joshuapare/g1sim/heap/gc"
	"github.com/joshuapare/g1sim/heap/region"
	"github.com/joshuapare/g1sim/internal/workload"
)

const mib = 1 << 20

// printHeapStatus prints the per-role region table, cycle counters and live
// object count of one snapshot.
func printHeapStatus(title string, snap gc.Snapshot) {
	printInfo("\n%s:\n", title)
	for _, role := range region.Roles {
		u := snap.Regions[role]
		if u.Regions == 0 {
			continue
		}
		printInfo("  %-10s %6d regions  %10.1f MiB used\n", role, u.Regions, float64(u.UsedBytes)/mib)
	}
	printInfo("  GC cycles: young %d, mixed %d, full %d, total pause %v\n",
		snap.YoungCycles, snap.MixedCycles, snap.FullCycles, snap.TotalPause.Round(time.Microsecond))
	printInfo("  Live objects: %d\n", snap.LiveObjects)
}

func printCycle(ev gc.CycleEvent) {
	printVerbose("  #%d %-5s pause %-10v reclaimed %d (%d bytes), survivors %d, promoted %d, regions freed %d\n",
		ev.Seq, ev.Kind, ev.Pause.Round(time.Microsecond), ev.Reclaimed, ev.ReclaimedBytes,
		ev.Survivors, ev.Promoted, ev.RegionsFreed)
}

func printSummary(res *workload.Result) {
	printInfo("\nWorkload %q:\n", res.Name)
	printInfo("  Iterations: %d\n", res.Iterations)
	printInfo("  Allocated:  %d objects, %d bytes (%d large)\n", res.Allocated, res.AllocatedBytes, res.Large)
	if res.Failures > 0 {
		printInfo("  Failed allocations: %d\n", res.Failures)
	}
	if res.Exhausted {
		printInfo("  Heap exhausted: a full collection could not make room\n")
	}
}
