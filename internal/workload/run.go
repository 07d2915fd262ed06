package workload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/joshuapare/g1sim/heap/gc"
	"github.com/joshuapare/g1sim/heap/verify"
)

// Status is one heap status report taken during a run.
type Status struct {
	Iteration int // 0-based; equals Count for the final report
	Final     bool
	Snapshot  gc.Snapshot
}

// Options tunes a run. A nil *Options is valid.
type Options struct {
	Logger   *slog.Logger
	Recorder gc.Recorder          // receives every cycle event in addition to Result.Events
	Status   func(Status)         // called every StatusEvery iterations and once at the end
	Clock    func() time.Duration // pause clock handed to the collector
	Verify   bool                 // check heap invariants after every iteration
}

// Result summarizes a run.
type Result struct {
	Name           string          `json:"name"`
	Iterations     int             `json:"iterations"`
	Allocated      int             `json:"allocated"`
	AllocatedBytes int64           `json:"allocated_bytes"`
	Large          int             `json:"large"`
	Failures       int             `json:"failures"`
	Exhausted      bool            `json:"exhausted"`
	Events         []gc.CycleEvent `json:"events"`
	Snapshot       gc.Snapshot     `json:"snapshot"`
}

// teeRecorder keeps every event and forwards it.
type teeRecorder struct {
	events []gc.CycleEvent
	next   gc.Recorder
}

func (t *teeRecorder) RecordCycle(ev gc.CycleEvent) {
	t.events = append(t.events, ev)
	if t.next != nil {
		t.next.RecordCycle(ev)
	}
}

// Driver steps a workload one iteration at a time against its own
// collector. Run uses it for whole runs; interactive callers step it.
type Driver struct {
	w      Workload
	c      *gc.Collector
	rng    *rand.Rand
	tee    *teeRecorder
	log    *slog.Logger
	verify bool
	res    Result
}

// NewDriver validates w and builds a fresh collector for it.
func NewDriver(w Workload, opts *Options) (*Driver, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	o, err := w.NewOracle()
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	tee := &teeRecorder{next: opts.Recorder}
	c, err := gc.New(w.Heap, o, &gc.Options{Logger: log, Recorder: tee, Clock: opts.Clock})
	if err != nil {
		return nil, err
	}

	seed := w.Allocations.Seed
	return &Driver{
		w:      w,
		c:      c,
		rng:    rand.New(rand.NewPCG(seed, seed^0x517cc1b727220a95)),
		tee:    tee,
		log:    log,
		verify: opts.Verify,
		res:    Result{Name: w.Name},
	}, nil
}

// Collector returns the driven collector. Callers may run extra cycles on it.
func (d *Driver) Collector() *gc.Collector { return d.c }

// Workload returns the workload being driven.
func (d *Driver) Workload() Workload { return d.w }

// Done reports whether every iteration has run or the heap is exhausted.
func (d *Driver) Done() bool {
	return d.res.Exhausted || d.res.Iterations >= d.w.Allocations.Count
}

// Step runs the next iteration. It is a no-op once Done.
func (d *Driver) Step() error {
	if d.Done() {
		return nil
	}
	a := d.w.Allocations
	i := d.res.Iterations
	d.res.Iterations++

	sizes := []int64{between(d.rng, a.MinSize, a.MaxSize)}
	if a.LargeEvery > 0 && i%a.LargeEvery == 0 {
		sizes = append(sizes, between(d.rng, a.LargeMin, a.LargeMax))
	}

	for j, size := range sizes {
		err := allocate(d.c, d.w.Escalate, size)
		switch {
		case err == nil:
			d.res.Allocated++
			d.res.AllocatedBytes += size
			if j > 0 {
				d.res.Large++
			}
		case errors.Is(err, gc.ErrHeapExhausted):
			d.log.Error("heap exhausted", "iteration", i, "size", size)
			d.res.Exhausted = true
		case errors.Is(err, gc.ErrAllocationFailure):
			d.log.Warn("allocation failed", "iteration", i, "size", size)
			d.res.Failures++
		default:
			return err
		}
		if d.res.Exhausted {
			break
		}
	}

	if d.verify {
		if err := verify.AllInvariants(d.c.Store(), d.c.Registry(), d.w.Heap.PromotionAgeThreshold); err != nil {
			return fmt.Errorf("iteration %d: %w", i, err)
		}
	}
	return nil
}

// Result returns the totals so far with the current snapshot.
func (d *Driver) Result() *Result {
	res := d.res
	res.Events = slices.Clone(d.tee.events)
	res.Snapshot = d.c.Snapshot()
	return &res
}

// Run drives w to completion against a fresh collector. Ordinary allocation
// failures are counted and the run continues; ErrHeapExhausted ends the run
// early with Exhausted set. Cancelling ctx stops the run between iterations.
func Run(ctx context.Context, w Workload, opts *Options) (*Result, error) {
	d, err := NewDriver(w, opts)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &Options{}
	}

	d.log.Info("workload started", "name", w.Name, "iterations", w.Allocations.Count, "regions", w.Heap.RegionCount)

	for !d.Done() {
		if err := ctx.Err(); err != nil {
			return d.Result(), err
		}
		i := d.res.Iterations
		if err := d.Step(); err != nil {
			return d.Result(), err
		}
		if opts.Status != nil && !d.res.Exhausted && w.StatusEvery > 0 && i%w.StatusEvery == 0 {
			opts.Status(Status{Iteration: i, Snapshot: d.c.Snapshot()})
		}
	}

	res := d.Result()
	if opts.Status != nil {
		opts.Status(Status{Iteration: res.Iterations, Final: true, Snapshot: res.Snapshot})
	}
	d.log.Info("workload finished",
		"name", w.Name,
		"allocated", res.Allocated,
		"failures", res.Failures,
		"cycles", res.Snapshot.Cycles(),
		"exhausted", res.Exhausted,
	)
	return res, nil
}

func allocate(c *gc.Collector, escalate bool, size int64) error {
	var err error
	if escalate {
		_, err = c.AllocateOrEscalate(size)
	} else {
		_, err = c.Allocate(size)
	}
	return err
}

// between returns a size in [lo, hi).
func between(rng *rand.Rand, lo, hi int64) int64 {
	return lo + rng.Int64N(hi-lo)
}
