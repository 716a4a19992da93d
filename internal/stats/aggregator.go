// Package stats computes summary statistics over a scenario's
// per-iteration duration samples.
package stats

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/influxdata/tdigest"
)

// ErrNoSamples is returned by Aggregate for an empty sample set.
// Callers check emptiness first and mark the scenario failed instead of
// aggregating; the error exists so the contract is enforced, not relied on.
var ErrNoSamples = errors.New("stats: no samples to aggregate")

// Aggregates holds summary statistics for one scenario's duration samples.
type Aggregates struct {
	Min    time.Duration `json:"min"`
	Max    time.Duration `json:"max"`
	Mean   time.Duration `json:"mean"`
	Median time.Duration `json:"median"`
	StdDev time.Duration `json:"stddev"`

	// Tail percentiles, interpolated from a t-digest of the samples.
	// With 20 iterations these are coarse; they firm up as -n grows.
	P95 time.Duration `json:"p95"`
	P99 time.Duration `json:"p99"`
}

// Aggregate computes summary statistics over a non-empty, ordered
// sequence of positive durations. The input is not modified.
//
// Median convention: samples are sorted ascending and the element at
// index (n-1)/2 is taken — the exact middle for odd n, the lower of the
// two middle elements for even n. So Aggregate({1,2,3,4}) has median 2.
//
// StdDev is the population standard deviation,
// sqrt(mean(squared deviations)).
func Aggregate(durations []time.Duration) (Aggregates, error) {
	n := len(durations)
	if n == 0 {
		return Aggregates{}, ErrNoSamples
	}

	sorted := make([]time.Duration, n)
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	td := tdigest.NewWithCompression(100)
	for _, d := range sorted {
		sum += d
		td.Add(float64(d), 1)
	}
	mean := float64(sum) / float64(n)

	var sqSum float64
	for _, d := range sorted {
		dev := float64(d) - mean
		sqSum += dev * dev
	}
	stddev := math.Sqrt(sqSum / float64(n))

	return Aggregates{
		Min:    sorted[0],
		Max:    sorted[n-1],
		Mean:   time.Duration(mean),
		Median: sorted[(n-1)/2],
		StdDev: time.Duration(stddev),
		P95:    time.Duration(td.Quantile(0.95)),
		P99:    time.Duration(td.Quantile(0.99)),
	}, nil
}
