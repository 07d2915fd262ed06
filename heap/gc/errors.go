package gc

import "errors"

var (
	// ErrAllocationFailure indicates that an object could not be placed even
	// after one triggered collection. The caller may run a Full cycle and retry.
	ErrAllocationFailure = errors.New("gc: allocation failed")

	// ErrHeapExhausted indicates that a Full cycle could not make room either.
	// The heap configuration cannot satisfy the workload.
	ErrHeapExhausted = errors.New("gc: heap exhausted")

	// ErrInvalidConfig indicates a malformed Config.
	ErrInvalidConfig = errors.New("gc: invalid config")

	// ErrNilOracle indicates a collector built without a reachability oracle.
	ErrNilOracle = errors.New("gc: nil oracle")

	// ErrInvalidSize indicates a non-positive allocation size.
	ErrInvalidSize = errors.New("gc: size must be positive")

	// ErrUnknownObject indicates a reference to an object that is not live.
	ErrUnknownObject = errors.New("gc: unknown object")
)
