package gc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/g1sim/heap/object"
	"github.com/joshuapare/g1sim/heap/oracle"
	"github.com/joshuapare/g1sim/heap/region"
	"github.com/joshuapare/g1sim/heap/verify"
)

// testConfig returns the defaults scaled down to count regions of capacity bytes.
func testConfig(count int, capacity int64) Config {
	cfg := DefaultConfig()
	cfg.RegionCount = count
	cfg.RegionCapacityBytes = capacity
	return cfg
}

// eventLog is a Recorder that keeps every event.
type eventLog struct {
	events []CycleEvent
}

func (l *eventLog) RecordCycle(ev CycleEvent) { l.events = append(l.events, ev) }

func (l *eventLog) kinds() []Kind {
	out := make([]Kind, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Kind
	}
	return out
}

func newTestCollector(t *testing.T, cfg Config, o oracle.Oracle) (*Collector, *eventLog) {
	t.Helper()
	log := &eventLog{}
	c, err := New(cfg, o, &Options{Recorder: log})
	require.NoError(t, err)
	return c, log
}

func requireInvariants(t *testing.T, c *Collector) {
	t.Helper()
	require.NoError(t, verify.AllInvariants(c.Store(), c.Registry(), c.Config().PromotionAgeThreshold))
}

func mustAlloc(t *testing.T, c *Collector, size int64) object.ID {
	t.Helper()
	id, err := c.Allocate(size)
	require.NoError(t, err)
	return id
}

// roles returns the role of every region in index order.
func roles(c *Collector) []region.Role {
	out := make([]region.Role, c.Store().Len())
	for i, r := range c.Store().Regions() {
		out[i] = r.Role()
	}
	return out
}

// usedBytes returns the used bytes of every region in index order.
func usedBytes(c *Collector) []int64 {
	out := make([]int64, c.Store().Len())
	for i, r := range c.Store().Regions() {
		out[i] = r.Used()
	}
	return out
}

// stepClock returns a clock that advances by step on every read.
func stepClock(step time.Duration) func() time.Duration {
	var now time.Duration
	return func() time.Duration {
		now += step
		return now
	}
}
