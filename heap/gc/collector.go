package gc

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/joshuapare/g1sim/heap/object"
	"github.com/joshuapare/g1sim/heap/oracle"
	"github.com/joshuapare/g1sim/heap/region"
)

// Options configures optional collaborators. A nil *Options is valid.
type Options struct {
	Logger   *slog.Logger         // Cycle and escalation logging; nil discards
	Recorder Recorder             // Receives one event per completed cycle
	Clock    func() time.Duration // Monotonic clock for pause times; nil uses the system clock
}

// Collector owns the region table and the object registry of one simulated
// heap. It is not safe for concurrent use.
type Collector struct {
	cfg     Config
	store   *region.Store
	objects *object.Registry
	oracle  oracle.Oracle

	log   *slog.Logger
	rec   Recorder
	clock func() time.Duration

	state      State
	seq        uint64
	cycles     [3]int // indexed by Kind
	totalPause time.Duration
}

// New builds a collector. Configuration errors and a missing oracle are
// reported here and never later.
func New(cfg Config, o oracle.Oracle, opts *Options) (*Collector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNilOracle
	}
	if opts == nil {
		opts = &Options{}
	}

	store, err := region.NewStore(cfg.RegionCount, cfg.RegionCapacityBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	c := &Collector{
		cfg:     cfg,
		store:   store,
		objects: object.NewRegistry(),
		oracle:  o,
		log:     opts.Logger,
		rec:     opts.Recorder,
		clock:   opts.Clock,
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.clock == nil {
		c.clock = monotonicNow
	}
	return c, nil
}

// Config returns the configuration the collector was built with.
func (c *Collector) Config() Config { return c.cfg }

// Store exposes the region table for inspection.
func (c *Collector) Store() *region.Store { return c.store }

// Registry exposes the live-object table for inspection.
func (c *Collector) Registry() *object.Registry { return c.objects }

// State returns the scheduler state.
func (c *Collector) State() State { return c.state }

// Object returns the live object with the given ID, or nil.
func (c *Collector) Object(id object.ID) *object.Object { return c.objects.Get(id) }

// Link records a reference from one live object to another.
func (c *Collector) Link(from, to object.ID) error {
	src := c.objects.Get(from)
	if src == nil {
		return fmt.Errorf("%w: %d", ErrUnknownObject, from)
	}
	if !c.objects.Contains(to) {
		return fmt.Errorf("%w: %d", ErrUnknownObject, to)
	}
	src.AddRef(to)
	return nil
}

// Unlink drops a reference. Dropping a reference that does not exist is not
// an error.
func (c *Collector) Unlink(from, to object.ID) error {
	src := c.objects.Get(from)
	if src == nil {
		return fmt.Errorf("%w: %d", ErrUnknownObject, from)
	}
	src.RemoveRef(to)
	return nil
}

// Snapshot reports per-role region usage, live objects and cycle totals.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Regions:     c.store.Usage(),
		LiveObjects: c.objects.Len(),
		YoungCycles: c.cycles[KindYoung],
		MixedCycles: c.cycles[KindMixed],
		FullCycles:  c.cycles[KindFull],
		TotalPause:  c.totalPause,
	}
}

func (c *Collector) setState(s State) {
	if s == c.state {
		return
	}
	c.log.Debug("gc state", "from", c.state.String(), "to", s.String())
	c.state = s
}
