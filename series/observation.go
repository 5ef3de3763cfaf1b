// Package series implements the auto-parameterizing time-series
// encoder: FrameParamSolver (C4), which derives minimal sufficient
// codec parameters from a batch of observations, and TimeSeriesCodec
// (C5), which fuses those parameters and the observations into a
// self-describing Frame and reverses the transformation on decode.
package series

import "sort"

// Observation is a single (timestamp, value) sample. T is
// seconds-since-epoch; V is the real-valued measurement.
type Observation struct {
	T int64
	V float64
}

// sortStable returns a copy of obs stably sorted by T, input order
// preserved among equal timestamps.
func sortStable(obs []Observation) []Observation {
	out := make([]Observation, len(obs))
	copy(out, obs)

	sort.SliceStable(out, func(i, j int) bool { return out[i].T < out[j].T })

	return out
}
