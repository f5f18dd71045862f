package bench

import (
	"fmt"
	"time"
)

// ClockKind selects the time source used to bracket each invocation.
type ClockKind int

const (
	// ClockProcess measures CPU time consumed by the current process.
	// Time the process spends sleeping or blocked does not count.
	ClockProcess ClockKind = iota
	// ClockWall measures elapsed real time using the monotonic clock,
	// immune to system clock adjustments.
	ClockWall
)

// String returns the lowercase name of the clock kind, e.g. "process".
func (k ClockKind) String() string {
	switch k {
	case ClockProcess:
		return "process"
	case ClockWall:
		return "wall"
	default:
		return fmt.Sprintf("ClockKind(%d)", int(k))
	}
}

// Options is the immutable configuration of a Measure call.
//
// The zero value is not valid (it fails Validate). Start from DefaultOptions
// and override the fields of interest:
//
//	opts := bench.DefaultOptions()
//	opts.MaxRuns = 50
//	samples, err := bench.Measure(fn, opts)
type Options struct {
	// Warmup controls whether the target is invoked WarmupRuns times before
	// measurement begins. Warmup invocations are neither timed nor recorded
	// and have no effect on the stopping decision. They exist to let caches
	// and lazy initialization stabilize.
	Warmup bool

	// WarmupRuns is the number of warmup invocations. Consulted only when
	// Warmup is true, in which case it must be positive.
	WarmupRuns int

	// AllowedDeviation is the maximum tolerated relative half-width of the
	// confidence interval around the running mean. Sampling stops once the
	// margin of error is within AllowedDeviation of the mean. Must be a
	// fraction in (0, 1).
	AllowedDeviation float64

	// ConfidenceLevel is the statistical confidence required of the stopping
	// decision. Higher confidence widens the margin of error and therefore
	// demands more samples. Must be a fraction in (0, 1).
	ConfidenceLevel float64

	// MinRuns is the minimum number of measured invocations before the
	// stopping rule may end the run. Guards against stopping on early noise.
	// Must be at least 1.
	MinRuns int

	// MaxRuns unconditionally stops measurement once this many invocations
	// have been recorded, whether or not the sample has converged. Guards
	// against runaway loops on targets whose cost never stabilizes.
	// Must be at least MinRuns.
	MaxRuns int

	// MaxTime is a budget on the total measured time. If the recorded
	// samples ever sum to more than MaxTime, Measure aborts with
	// ErrBudgetExceeded and discards the partial sequence. Zero disables
	// the budget. Must not be negative.
	MaxTime time.Duration

	// Clock selects the time source used to measure each invocation.
	Clock ClockKind

	// Source, when non-nil, overrides Clock with a caller-supplied time
	// source. Useful for deterministic tests.
	Source Clock
}

// DefaultOptions returns the recommended starting configuration: one warmup
// run, 10% allowed deviation at 95% confidence, between 3 and 1000 measured
// runs, a ten-minute measurement budget, and the process CPU clock.
func DefaultOptions() Options {
	return Options{
		Warmup:           true,
		WarmupRuns:       1,
		AllowedDeviation: 0.1,
		ConfidenceLevel:  0.95,
		MinRuns:          3,
		MaxRuns:          1000,
		MaxTime:          10 * time.Minute,
		Clock:            ClockProcess,
	}
}

// Validate checks the options for internal consistency. All reported errors
// wrap ErrInvalidOptions, so callers can test with errors.Is.
func (o Options) Validate() error {
	if o.Warmup && o.WarmupRuns < 1 {
		return fmt.Errorf("%w: warmup runs must be positive, got %d", ErrInvalidOptions, o.WarmupRuns)
	}
	if o.AllowedDeviation <= 0 || o.AllowedDeviation >= 1 {
		return fmt.Errorf("%w: allowed deviation must be in (0, 1), got %v", ErrInvalidOptions, o.AllowedDeviation)
	}
	if o.ConfidenceLevel <= 0 || o.ConfidenceLevel >= 1 {
		return fmt.Errorf("%w: confidence level must be in (0, 1), got %v", ErrInvalidOptions, o.ConfidenceLevel)
	}
	if o.MinRuns < 1 {
		return fmt.Errorf("%w: min runs must be at least 1, got %d", ErrInvalidOptions, o.MinRuns)
	}
	if o.MaxRuns < o.MinRuns {
		return fmt.Errorf("%w: max runs (%d) must not be less than min runs (%d)", ErrInvalidOptions, o.MaxRuns, o.MinRuns)
	}
	if o.MaxTime < 0 {
		return fmt.Errorf("%w: max time must not be negative, got %v", ErrInvalidOptions, o.MaxTime)
	}
	if o.Clock != ClockProcess && o.Clock != ClockWall {
		return fmt.Errorf("%w: unknown clock kind %d", ErrInvalidOptions, int(o.Clock))
	}
	return nil
}
