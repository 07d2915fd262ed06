//go:build !(linux || darwin || freebsd)

package gc

import "time"

var clockBase = time.Now()

// monotonicNow uses the runtime's monotonic reading carried by time.Time.
func monotonicNow() time.Duration {
	return time.Since(clockBase)
}
