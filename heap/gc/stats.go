package gc

import (
	"time"

	"github.com/joshuapare/g1sim/heap/region"
)

// Kind identifies a collection scope.
type Kind uint8

const (
	KindYoung Kind = iota
	KindMixed
	KindFull
)

func (k Kind) String() string {
	switch k {
	case KindYoung:
		return "young"
	case KindMixed:
		return "mixed"
	case KindFull:
		return "full"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON output.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// State is the scheduler state. Cycle states are transient.
type State uint8

const (
	Idle State = iota
	YoungCycle
	MixedCycle
	FullCycle
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case YoungCycle:
		return "young-cycle"
	case MixedCycle:
		return "mixed-cycle"
	case FullCycle:
		return "full-cycle"
	default:
		return "unknown"
	}
}

func (k Kind) state() State {
	switch k {
	case KindYoung:
		return YoungCycle
	case KindMixed:
		return MixedCycle
	default:
		return FullCycle
	}
}

// CycleEvent describes one completed collection cycle.
type CycleEvent struct {
	Seq   uint64        `json:"seq"` // 1-based, across all kinds
	Kind  Kind          `json:"kind"`
	Start time.Time     `json:"start"`
	Pause time.Duration `json:"pause_ns"`

	Reclaimed      int   `json:"reclaimed"`       // Objects removed
	ReclaimedBytes int64 `json:"reclaimed_bytes"` // Bytes of removed objects
	Survivors      int   `json:"survivors"`       // Young objects kept young
	Promoted       int   `json:"promoted"`        // Young objects moved to Old
	Retained       int   `json:"retained"`        // Old or Full-cycle survivors
	RegionsFreed   int   `json:"regions_freed"`   // Net change in Free regions
	LiveObjects    int   `json:"live_objects"`    // Live objects after the cycle
}

// Recorder observes completed cycles. It must not call back into the
// collector.
type Recorder interface {
	RecordCycle(ev CycleEvent)
}

// Snapshot is a read-only report of the heap.
type Snapshot struct {
	Regions     map[region.Role]region.RoleUsage `json:"regions"`
	LiveObjects int                              `json:"live_objects"`
	YoungCycles int                              `json:"young_cycles"`
	MixedCycles int                              `json:"mixed_cycles"`
	FullCycles  int                              `json:"full_cycles"`
	TotalPause  time.Duration                    `json:"total_pause_ns"`
}

// Cycles returns the total number of completed cycles.
func (s Snapshot) Cycles() int { return s.YoungCycles + s.MixedCycles + s.FullCycles }
