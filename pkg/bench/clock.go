package bench

import (
	"fmt"
	"time"
)

// Clock is a monotonic time source. Now returns the time elapsed since an
// arbitrary but fixed origin, so a sample is the difference of two readings.
// Implementations must never go backwards.
type Clock interface {
	Now() time.Duration
}

// wallClock measures elapsed real time against a fixed origin. time.Since
// uses the runtime's monotonic reading, so system clock adjustments cannot
// skew the samples.
type wallClock struct {
	origin time.Time
}

func (c wallClock) Now() time.Duration {
	return time.Since(c.origin)
}

// newClock builds the time source for the given kind. The process clock is
// platform-specific and reports an error on platforms without one.
func newClock(kind ClockKind) (Clock, error) {
	switch kind {
	case ClockWall:
		return wallClock{origin: time.Now()}, nil
	case ClockProcess:
		return newProcessClock()
	default:
		return nil, fmt.Errorf("%w: unknown clock kind %d", ErrInvalidOptions, int(kind))
	}
}
