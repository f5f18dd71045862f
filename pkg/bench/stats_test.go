package bench_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivanshkc/abench/pkg/bench"
)

// TestDescribe verifies the descriptive statistics on hand-checked inputs.
func TestDescribe(t *testing.T) {
	// testCase defines the structure for our table-driven tests.
	type testCase struct {
		name     string
		samples  bench.Samples
		expected bench.Report
	}

	testCases := []testCase{
		{
			// Mean 2ms and stdev exactly 1ms, checked by hand.
			name:    "Three Distinct Samples",
			samples: bench.Samples{1 * time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond},
			expected: bench.Report{
				Count: 3,
				Min:   1 * time.Millisecond,
				Max:   3 * time.Millisecond,
				Mean:  2 * time.Millisecond,
				Stdev: 1 * time.Millisecond,
				Total: 6 * time.Millisecond,
			},
		},
		{
			// A single sample has no spread to estimate; stdev is 0 by
			// definition.
			name:    "Single Sample",
			samples: bench.Samples{42 * time.Microsecond},
			expected: bench.Report{
				Count: 1,
				Min:   42 * time.Microsecond,
				Max:   42 * time.Microsecond,
				Mean:  42 * time.Microsecond,
				Stdev: 0,
				Total: 42 * time.Microsecond,
			},
		},
		{
			name: "Identical Samples",
			samples: bench.Samples{
				5 * time.Millisecond, 5 * time.Millisecond,
				5 * time.Millisecond, 5 * time.Millisecond,
			},
			expected: bench.Report{
				Count: 4,
				Min:   5 * time.Millisecond,
				Max:   5 * time.Millisecond,
				Mean:  5 * time.Millisecond,
				Stdev: 0,
				Total: 20 * time.Millisecond,
			},
		},
		{
			// The mean 7/3ns rounds to the nearest nanosecond; the total
			// stays an exact sum.
			name:    "Nanosecond Scale Rounding",
			samples: bench.Samples{1, 2, 4},
			expected: bench.Report{
				Count: 3,
				Min:   1,
				Max:   4,
				Mean:  2,
				Stdev: 2, // stdev(1, 2, 4) = sqrt(7/3) = 1.53, rounded up.
				Total: 7,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			report, err := bench.Describe(tc.samples)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, report)
		})
	}
}

// TestDescribe_Empty verifies that an empty sequence is rejected explicitly
// instead of producing a silently wrong report.
func TestDescribe_Empty(t *testing.T) {
	t.Run("Nil Sequence", func(t *testing.T) {
		report, err := bench.Describe(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, bench.ErrNoSamples)
		assert.Equal(t, bench.Report{}, report)
	})

	t.Run("Empty Sequence", func(t *testing.T) {
		report, err := bench.Describe(bench.Samples{})
		require.Error(t, err)
		assert.ErrorIs(t, err, bench.ErrNoSamples)
		assert.Equal(t, bench.Report{}, report)
	})
}

// TestDescribe_Pure verifies that Describe is a pure function: the same
// input yields an identical report every time, and the input is unchanged.
func TestDescribe_Pure(t *testing.T) {
	samples := bench.Samples{3 * time.Millisecond, 1 * time.Millisecond, 2 * time.Millisecond}
	original := bench.Samples{3 * time.Millisecond, 1 * time.Millisecond, 2 * time.Millisecond}

	first, err := bench.Describe(samples)
	require.NoError(t, err)
	second, err := bench.Describe(samples)
	require.NoError(t, err)

	assert.Equal(t, first, second, "Describe must be idempotent")
	assert.Equal(t, original, samples, "Describe must not mutate its input")
}

// TestDescribe_Invariants verifies the ordering invariants on a sequence
// fresh out of the sampler.
func TestDescribe_Invariants(t *testing.T) {
	opts := bench.DefaultOptions()
	opts.Warmup = false
	opts.MinRuns, opts.MaxRuns = 5, 5
	opts.Source = newSampleClock(
		8*time.Millisecond, 11*time.Millisecond, 9*time.Millisecond,
		12*time.Millisecond, 10*time.Millisecond,
	)

	samples, err := bench.Measure(noopTarget, opts)
	require.NoError(t, err)

	report, err := bench.Describe(samples)
	require.NoError(t, err)

	assert.Equal(t, len(samples), report.Count)
	assert.LessOrEqual(t, report.Min, report.Mean, "Min must not exceed the mean")
	assert.LessOrEqual(t, report.Mean, report.Max, "Mean must not exceed the max")

	var total time.Duration
	for _, sample := range samples {
		total += sample
	}
	assert.Equal(t, total, report.Total, "Total must be the exact sum")
}

// TestSamples_Seconds verifies the float-seconds view of a sequence.
func TestSamples_Seconds(t *testing.T) {
	samples := bench.Samples{1500 * time.Millisecond, 250 * time.Microsecond, 0}

	seconds := samples.Seconds()

	require.Len(t, seconds, 3)
	assert.InDelta(t, 1.5, seconds[0], 1e-12)
	assert.InDelta(t, 0.00025, seconds[1], 1e-12)
	assert.Zero(t, seconds[2])
}

// TestReport_MarshalJSON verifies the flat float-seconds JSON shape.
func TestReport_MarshalJSON(t *testing.T) {
	report := bench.Report{
		Count: 3,
		Min:   10 * time.Millisecond,
		Max:   30 * time.Millisecond,
		Mean:  20 * time.Millisecond,
		Stdev: 10 * time.Millisecond,
		Total: 60 * time.Millisecond,
	}

	raw, err := json.Marshal(report)
	require.NoError(t, err)

	expected := `{"count":3,"min":0.01,"max":0.03,"mean":0.02,"stdev":0.01,"total":0.06}`
	assert.JSONEq(t, expected, string(raw))
}
