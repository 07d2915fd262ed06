// Package workload describes a simulated application: heap geometry, the
// reachability oracle and the allocation pattern. Workloads are read from
// JSON files and driven against a gc.Collector by Run.
package workload

import (
	"bytes"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/gjson"

	"github.com/joshuapare/g1sim/heap/gc"
	"github.com/joshuapare/g1sim/heap/oracle"
)

// FormatConstraint is the range of workload file versions this package reads.
const FormatConstraint = "^1"

// CurrentFormat is assumed when a file carries no format field.
const CurrentFormat = "1.0.0"

// Oracle kinds accepted in the "oracle.kind" field.
const (
	OracleRandom = "random"
	OracleAlways = "always"
	OracleNever  = "never"
)

// OracleConfig selects the reachability oracle.
type OracleConfig struct {
	Kind                 string
	ReachableProbability float64
	Seed                 uint64
}

// Allocations is the allocation pattern. Every iteration allocates one
// object in [MinSize, MaxSize); every LargeEvery-th iteration, starting
// with the first, also allocates one in [LargeMin, LargeMax).
type Allocations struct {
	Count      int
	MinSize    int64
	MaxSize    int64
	LargeEvery int
	LargeMin   int64
	LargeMax   int64
	Seed       uint64
}

// Workload is one parsed workload file.
type Workload struct {
	Name        string
	Format      string
	Heap        gc.Config
	Oracle      OracleConfig
	Allocations Allocations

	// StatusEvery reports heap status every N iterations; 0 disables the
	// periodic report.
	StatusEvery int

	// Escalate uses AllocateOrEscalate instead of Allocate.
	Escalate bool
}

// Default returns the demonstration workload: 50 allocations of 1-50 KiB with
// a 600 KiB-1 MiB object every 10th iteration on the default heap, 90% of
// objects reachable at each evaluation.
func Default() Workload {
	return Workload{
		Name:   "demo",
		Format: CurrentFormat,
		Heap:   gc.DefaultConfig(),
		Oracle: OracleConfig{
			Kind:                 OracleRandom,
			ReachableProbability: oracle.DefaultReachableProbability,
			Seed:                 1,
		},
		Allocations: Allocations{
			Count:      50,
			MinSize:    1 << 10,
			MaxSize:    50 << 10,
			LargeEvery: 10,
			LargeMin:   600 << 10,
			LargeMax:   1 << 20,
			Seed:       1,
		},
		StatusEvery: 10,
		Escalate:    true,
	}
}

// Load reads and parses a workload file.
func Load(path string) (Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Workload{}, fmt.Errorf("read workload: %w", err)
	}
	return Parse(data)
}

// Parse reads a workload from JSON. Fields absent from the document keep
// their Default values; an empty document yields Default.
func Parse(data []byte) (Workload, error) {
	w := Default()

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return w, nil
	}
	if !gjson.ValidBytes(data) {
		return w, fmt.Errorf("%w: %q", ErrInvalidJSON, truncate(data, 64))
	}

	doc := gjson.ParseBytes(data)
	if v := doc.Get("format"); v.Exists() {
		w.Format = v.String()
	}
	if err := checkFormat(w.Format); err != nil {
		return w, err
	}

	setString(doc, "name", &w.Name)
	setInt(doc, "statusEvery", &w.StatusEvery)
	if v := doc.Get("escalate"); v.Exists() {
		w.Escalate = v.Bool()
	}

	heap := doc.Get("heap")
	setInt64(heap, "regionCapacityBytes", &w.Heap.RegionCapacityBytes)
	setInt(heap, "regionCount", &w.Heap.RegionCount)
	setFloat(heap, "oversizedThresholdFraction", &w.Heap.OversizedThresholdFraction)
	setFloat(heap, "edenFillCeiling", &w.Heap.EdenFillCeiling)
	setFloat(heap, "survivorFillCeiling", &w.Heap.SurvivorFillCeiling)
	setFloat(heap, "oldFillCeiling", &w.Heap.OldFillCeiling)
	setInt(heap, "promotionAgeThreshold", &w.Heap.PromotionAgeThreshold)
	setFloat(heap, "mixedTriggerOldFraction", &w.Heap.MixedTriggerOldFraction)
	setInt(heap, "mixedRegionCap", &w.Heap.MixedRegionCap)

	o := doc.Get("oracle")
	setString(o, "kind", &w.Oracle.Kind)
	setFloat(o, "reachableProbability", &w.Oracle.ReachableProbability)
	setUint64(o, "seed", &w.Oracle.Seed)

	a := doc.Get("allocations")
	setInt(a, "count", &w.Allocations.Count)
	setInt64(a, "minSize", &w.Allocations.MinSize)
	setInt64(a, "maxSize", &w.Allocations.MaxSize)
	setInt(a, "largeEvery", &w.Allocations.LargeEvery)
	setInt64(a, "largeMin", &w.Allocations.LargeMin)
	setInt64(a, "largeMax", &w.Allocations.LargeMax)
	setUint64(a, "seed", &w.Allocations.Seed)

	return w, w.Validate()
}

// Validate checks the heap configuration, the oracle kind and the
// allocation ranges.
func (w Workload) Validate() error {
	if err := w.Heap.Validate(); err != nil {
		return err
	}
	if _, err := w.NewOracle(); err != nil {
		return err
	}

	a := w.Allocations
	switch {
	case a.Count < 0:
		return fmt.Errorf("%w: count %d is negative", ErrInvalidWorkload, a.Count)
	case a.MinSize <= 0 || a.MaxSize <= a.MinSize:
		return fmt.Errorf("%w: size range [%d, %d) is empty", ErrInvalidWorkload, a.MinSize, a.MaxSize)
	case a.LargeEvery < 0:
		return fmt.Errorf("%w: largeEvery %d is negative", ErrInvalidWorkload, a.LargeEvery)
	case a.LargeEvery > 0 && (a.LargeMin <= 0 || a.LargeMax <= a.LargeMin):
		return fmt.Errorf("%w: large size range [%d, %d) is empty", ErrInvalidWorkload, a.LargeMin, a.LargeMax)
	case w.StatusEvery < 0:
		return fmt.Errorf("%w: statusEvery %d is negative", ErrInvalidWorkload, w.StatusEvery)
	}
	return nil
}

// NewOracle builds a fresh oracle for one run.
func (w Workload) NewOracle() (oracle.Oracle, error) {
	switch w.Oracle.Kind {
	case OracleRandom:
		return oracle.NewRandom(w.Oracle.ReachableProbability, w.Oracle.Seed), nil
	case OracleAlways:
		return oracle.Always(true), nil
	case OracleNever:
		return oracle.Always(false), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOracle, w.Oracle.Kind)
	}
}

func checkFormat(format string) error {
	v, err := semver.NewVersion(format)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedFormat, format, err)
	}
	c, err := semver.NewConstraint(FormatConstraint)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedFormat, v, FormatConstraint)
	}
	return nil
}

func setString(r gjson.Result, path string, dst *string) {
	if v := r.Get(path); v.Exists() {
		*dst = v.String()
	}
}

func setInt(r gjson.Result, path string, dst *int) {
	if v := r.Get(path); v.Exists() {
		*dst = int(v.Int())
	}
}

func setInt64(r gjson.Result, path string, dst *int64) {
	if v := r.Get(path); v.Exists() {
		*dst = v.Int()
	}
}

func setUint64(r gjson.Result, path string, dst *uint64) {
	if v := r.Get(path); v.Exists() {
		*dst = v.Uint()
	}
}

func setFloat(r gjson.Result, path string, dst *float64) {
	if v := r.Get(path); v.Exists() {
		*dst = v.Float()
	}
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
