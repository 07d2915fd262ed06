package workload

import "errors"

var (
	// ErrInvalidJSON is returned when a workload file is not valid JSON.
	ErrInvalidJSON = errors.New("workload: invalid json")

	// ErrUnsupportedFormat is returned when the format version does not
	// satisfy FormatConstraint.
	ErrUnsupportedFormat = errors.New("workload: unsupported format")

	// ErrInvalidWorkload is returned for out-of-range allocation settings.
	ErrInvalidWorkload = errors.New("workload: invalid workload")

	// ErrUnknownOracle is returned for an oracle kind other than random,
	// always or never.
	ErrUnknownOracle = errors.New("workload: unknown oracle kind")
)
