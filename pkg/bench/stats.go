package bench

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aclements/go-moremath/stats"
)

// ErrNoSamples is returned by Describe for an empty sequence, for which the
// statistics are undefined.
var ErrNoSamples = errors.New("no samples")

// Samples is an ordered sequence of per-invocation durations. The order is
// the invocation order, which preserves the real chronology of cache and
// warmup effects even though the statistics themselves ignore it.
type Samples []time.Duration

// Seconds returns the sequence as float seconds, in the same order. This is
// the natural shape for exporting raw samples to external analysis tooling.
func (s Samples) Seconds() []float64 {
	out := make([]float64, len(s))
	for i, d := range s {
		out[i] = d.Seconds()
	}
	return out
}

// nanoseconds returns the sequence as float nanoseconds for statistics.
func (s Samples) nanoseconds() []float64 {
	out := make([]float64, len(s))
	for i, d := range s {
		out[i] = float64(d)
	}
	return out
}

// Report holds the descriptive statistics of a measured sequence.
type Report struct {
	Count int
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
	Stdev time.Duration
	Total time.Duration
}

// Describe computes descriptive statistics over the given sequence. It is a
// pure function: the same input always yields the same report.
//
// Count, Min, Max and Total come from exact integer arithmetic, so Total is
// the precise sum of the sequence rather than a float approximation. Mean
// and Stdev are computed over float64 nanoseconds with a numerically stable
// accumulation and rounded to the nearest nanosecond. Stdev is the sample
// (n-1) standard deviation; for a single-element sequence it is 0 by
// definition.
//
// Describing an empty sequence returns an error wrapping ErrNoSamples.
func Describe(samples Samples) (Report, error) {
	if len(samples) == 0 {
		return Report{}, fmt.Errorf("cannot describe an empty sequence: %w", ErrNoSamples)
	}

	report := Report{
		Count: len(samples),
		Min:   samples[0],
		Max:   samples[0],
	}
	for _, d := range samples {
		if d < report.Min {
			report.Min = d
		}
		if d > report.Max {
			report.Max = d
		}
		report.Total += d
	}

	sample := stats.Sample{Xs: samples.nanoseconds()}
	report.Mean = time.Duration(math.Round(sample.Mean()))
	if report.Count > 1 {
		report.Stdev = time.Duration(math.Round(sample.StdDev()))
	}
	return report, nil
}

// MarshalJSON renders the report as a flat object of float seconds, suitable
// for tabular or dataframe consumption:
//
//	{"count":12,"min":0.0098,"max":0.0121,"mean":0.0104,"stdev":0.0007,"total":0.1248}
func (r Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Count int     `json:"count"`
		Min   float64 `json:"min"`
		Max   float64 `json:"max"`
		Mean  float64 `json:"mean"`
		Stdev float64 `json:"stdev"`
		Total float64 `json:"total"`
	}{
		Count: r.Count,
		Min:   r.Min.Seconds(),
		Max:   r.Max.Seconds(),
		Mean:  r.Mean.Seconds(),
		Stdev: r.Stdev.Seconds(),
		Total: r.Total.Seconds(),
	})
}
