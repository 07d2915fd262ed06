package region

import "errors"

var (
	// ErrRegionFull indicates that placing an object would exceed the region capacity.
	ErrRegionFull = errors.New("region: not enough headroom")

	// ErrNotResident indicates that an object is not listed in the region.
	ErrNotResident = errors.New("region: object not resident")

	// ErrBadCount indicates a region count or capacity that is not positive.
	ErrBadCount = errors.New("region: count and capacity must be positive")
)
