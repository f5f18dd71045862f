//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !windows

package bench

import (
	"errors"
	"fmt"
)

// newProcessClock reports that this platform has no process CPU clock.
// The wall clock remains available everywhere.
func newProcessClock() (Clock, error) {
	return nil, fmt.Errorf("process clock: %w", errors.ErrUnsupported)
}
