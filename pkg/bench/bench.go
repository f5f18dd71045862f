// Package bench measures the execution cost of a callable by invoking it
// repeatedly and adaptively deciding when enough samples have been collected
// to trust the resulting statistics.
//
// The package has two halves, used in sequence. Measure produces an ordered
// sequence of per-invocation durations, applying a confidence-interval based
// stopping rule so that cheap, stable targets finish in a handful of runs
// while noisy ones keep sampling up to a configured ceiling. Describe reduces
// such a sequence to descriptive statistics.
//
// Measurement is strictly sequential and single-threaded: invocations never
// overlap, because overlapping work corrupts the timings. The cost of the
// timing bracket itself is not subtracted out, which is why this package is
// not suitable for sub-microsecond microbenchmarks.
package bench

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aclements/go-moremath/stats"
)

var (
	// ErrInvalidOptions marks a configuration problem. It is detected before
	// the target is invoked at all.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrBudgetExceeded is returned when the recorded samples sum to more
	// than Options.MaxTime before the run converges. The partial sequence is
	// discarded.
	ErrBudgetExceeded = errors.New("measurement budget exceeded")
)

// TargetFunc is the callable under measurement. Callers bind arguments by
// capturing them in the closure. A non-nil error aborts the measurement
// immediately; the sampler never retries and never swallows it.
type TargetFunc func() error

// Measure invokes fn repeatedly under the given options and returns the
// per-invocation durations in invocation order.
//
// The length L of the returned sequence always satisfies
// MinRuns <= L <= MaxRuns. After each measured run, once at least two samples
// and MinRuns runs exist, the stopping rule is evaluated: sampling ends when
// the half-width of the ConfidenceLevel confidence interval around the
// running mean is within AllowedDeviation of that mean. A target whose mean
// cost is near zero never satisfies the relative criterion and simply runs
// to MaxRuns.
//
// A failing invocation, during warmup or measurement, aborts the whole run:
// the target's error is returned wrapped with the run that produced it, and
// no partial sequence is returned.
func Measure(fn TargetFunc, opts Options) (Samples, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	clock := opts.Source
	if clock == nil {
		var err error
		if clock, err = newClock(opts.Clock); err != nil {
			return nil, err
		}
	}

	// Warmup invocations are neither timed nor recorded. They exist to let
	// caches and lazy initialization stabilize before measurement begins.
	if opts.Warmup {
		for i := 0; i < opts.WarmupRuns; i++ {
			if err := fn(); err != nil {
				return nil, fmt.Errorf("target failed on warmup run %d: %w", i+1, err)
			}
		}
	}

	// The z-value depends only on the confidence level, so it is computed
	// once: the (1+c)/2 quantile of the standard normal distribution.
	z := stats.StdNormal.InvCDF((1 + opts.ConfidenceLevel) / 2)

	samples := make(Samples, 0, opts.MinRuns)
	xs := make([]float64, 0, opts.MinRuns)
	var total time.Duration

	for {
		start := clock.Now()
		err := fn()
		end := clock.Now()
		if err != nil {
			return nil, fmt.Errorf("target failed on measured run %d: %w", len(samples)+1, err)
		}

		// Coarse process clocks may report identical readings around a very
		// cheap invocation; a sample is never negative.
		sample := end - start
		if sample < 0 {
			sample = 0
		}
		samples = append(samples, sample)
		xs = append(xs, float64(sample))
		total += sample

		if opts.MaxTime > 0 && total > opts.MaxTime {
			return nil, fmt.Errorf("%w: measured %v over %d runs, budget is %v",
				ErrBudgetExceeded, total, len(samples), opts.MaxTime)
		}
		if len(samples) == opts.MaxRuns {
			break
		}
		if len(samples) >= opts.MinRuns && len(samples) >= 2 && converged(xs, z, opts.AllowedDeviation) {
			break
		}
	}

	return samples, nil
}

// converged evaluates the stopping rule over the samples collected so far,
// given in float64 nanoseconds.
//
// The margin of error is the half-width of the confidence interval around
// the running mean, z*s/sqrt(n), with s the sample standard deviation. The
// rule compares margin <= deviation*mean rather than dividing by the mean,
// which keeps a near-zero mean from blowing up the criterion: such targets
// keep sampling until MaxRuns. A sample with zero spread converges as soon
// as the rule is first evaluated.
func converged(xs []float64, z, allowedDeviation float64) bool {
	sample := stats.Sample{Xs: xs}
	margin := z * sample.StdDev() / math.Sqrt(float64(len(xs)))
	return margin <= allowedDeviation*sample.Mean()
}
