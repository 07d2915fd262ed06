// Package gclog persists collection cycle events in a pebble store so a
// run's history can be listed after the process exits.
package gclog

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/joshuapare/g1sim/heap/gc"
)

const keyPrefix = "cycle/"

// recordSize is the encoded length of one event:
// [seq:8][kind:1][start:8][pause:8][reclaimed:8][reclaimedBytes:8]
// [survivors:8][promoted:8][retained:8][regionsFreed:8][live:8]
const recordSize = 1 + 10*8

// ErrBadRecord is returned when a stored value cannot be decoded.
var ErrBadRecord = errors.New("gclog: invalid cycle record")

// Entry is one stored event with its position in the log.
type Entry struct {
	Index uint64        `json:"index"`
	Event gc.CycleEvent `json:"event"`
}

// Log is an append-only cycle history. It implements gc.Recorder; because
// RecordCycle cannot return an error, the first write failure is kept and
// reported by Err.
type Log struct {
	db   *pebble.DB
	next uint64
	err  error
}

// Open opens or creates the log in dir. Appends continue after the last
// stored entry, so several runs can share one directory.
func Open(dir string) (*Log, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("gclog: open %s: %w", dir, err)
	}

	l := &Log{db: db, next: 1}
	last, err := l.lastIndex()
	if err != nil {
		db.Close()
		return nil, err
	}
	l.next = last + 1
	return l, nil
}

// Close closes the underlying store.
func (l *Log) Close() error {
	return l.db.Close()
}

// RecordCycle implements gc.Recorder.
func (l *Log) RecordCycle(ev gc.CycleEvent) {
	if l.err != nil {
		return
	}
	if err := l.Append(ev); err != nil {
		l.err = err
	}
}

// Err returns the first error hit by RecordCycle.
func (l *Log) Err() error { return l.err }

// Append writes one event durably.
func (l *Log) Append(ev gc.CycleEvent) error {
	if err := l.db.Set(keyFor(l.next), encodeEvent(ev), pebble.Sync); err != nil {
		return fmt.Errorf("gclog: append: %w", err)
	}
	l.next++
	return nil
}

// Scan calls fn for every entry in append order. Iteration stops at the
// first error fn returns.
func (l *Log) Scan(fn func(Entry) error) error {
	iter, err := l.newIter()
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		idx, err := parseKey(iter.Key())
		if err != nil {
			return err
		}
		ev, err := decodeEvent(iter.Value())
		if err != nil {
			return fmt.Errorf("entry %d: %w", idx, err)
		}
		if err := fn(Entry{Index: idx, Event: ev}); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Entries returns every stored entry in append order.
func (l *Log) Entries() ([]Entry, error) {
	var out []Entry
	err := l.Scan(func(e Entry) error {
		out = append(out, e)
		return nil
	})
	return out, err
}

// Summary aggregates a log.
type Summary struct {
	Entries     int           `json:"entries"`
	Young       int           `json:"young"`
	Mixed       int           `json:"mixed"`
	Full        int           `json:"full"`
	Reclaimed   int           `json:"reclaimed"`
	TotalPause  time.Duration `json:"total_pause_ns"`
	LongestStop time.Duration `json:"longest_pause_ns"`
}

// Summarize folds every entry into a Summary.
func (l *Log) Summarize() (Summary, error) {
	var s Summary
	err := l.Scan(func(e Entry) error {
		s.Entries++
		switch e.Event.Kind {
		case gc.KindYoung:
			s.Young++
		case gc.KindMixed:
			s.Mixed++
		case gc.KindFull:
			s.Full++
		}
		s.Reclaimed += e.Event.Reclaimed
		s.TotalPause += e.Event.Pause
		s.LongestStop = max(s.LongestStop, e.Event.Pause)
		return nil
	})
	return s, err
}

func (l *Log) newIter() (*pebble.Iterator, error) {
	return l.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(keyPrefix),
		UpperBound: []byte("cycle/~"),
	})
}

func (l *Log) lastIndex() (uint64, error) {
	iter, err := l.newIter()
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	if !iter.Last() {
		return 0, iter.Error()
	}
	return parseKey(iter.Key())
}

func encodeEvent(ev gc.CycleEvent) []byte {
	buf := make([]byte, recordSize)
	binary.BigEndian.PutUint64(buf[0:8], ev.Seq)
	buf[8] = byte(ev.Kind)
	off := 9
	for _, v := range []int64{
		ev.Start.UnixNano(),
		int64(ev.Pause),
		int64(ev.Reclaimed),
		ev.ReclaimedBytes,
		int64(ev.Survivors),
		int64(ev.Promoted),
		int64(ev.Retained),
		int64(ev.RegionsFreed),
		int64(ev.LiveObjects),
	} {
		binary.BigEndian.PutUint64(buf[off:off+8], uint64(v))
		off += 8
	}
	return buf
}

func decodeEvent(b []byte) (gc.CycleEvent, error) {
	if len(b) != recordSize {
		return gc.CycleEvent{}, fmt.Errorf("%w: length %d", ErrBadRecord, len(b))
	}
	kind := gc.Kind(b[8])
	if kind > gc.KindFull {
		return gc.CycleEvent{}, fmt.Errorf("%w: kind %d", ErrBadRecord, b[8])
	}

	field := func(i int) int64 {
		off := 9 + i*8
		return int64(binary.BigEndian.Uint64(b[off : off+8]))
	}
	return gc.CycleEvent{
		Seq:            binary.BigEndian.Uint64(b[0:8]),
		Kind:           kind,
		Start:          time.Unix(0, field(0)),
		Pause:          time.Duration(field(1)),
		Reclaimed:      int(field(2)),
		ReclaimedBytes: field(3),
		Survivors:      int(field(4)),
		Promoted:       int(field(5)),
		Retained:       int(field(6)),
		RegionsFreed:   int(field(7)),
		LiveObjects:    int(field(8)),
	}, nil
}

func keyFor(idx uint64) []byte {
	return []byte(fmt.Sprintf(keyPrefix+"%020d", idx))
}

func parseKey(b []byte) (uint64, error) {
	var idx uint64
	if _, err := fmt.Sscanf(string(bytes.TrimPrefix(b, []byte(keyPrefix))), "%d", &idx); err != nil {
		return 0, fmt.Errorf("gclog: bad key %q: %w", b, err)
	}
	return idx, nil
}
