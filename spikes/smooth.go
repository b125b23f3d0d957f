// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spikes has the spike-train analysis functions: Gaussian-kernel
smoothed firing-rate estimation, shared evaluation grids, and per-group
mean +/- 2 SEM statistics across smoothed rate curves.
*/
package spikes

import "math"

// SmoothedFiringRate convolves a Gaussian kernel of standard deviation
// sigmaSecs (seconds) centered at each spike time, summed at each point
// of evalPoints, yielding an instantaneous firing-rate estimate in Hz.
// No boundary correction is applied: callers should gather spikes over a
// window inflated by 4 * sigmaSecs beyond the displayed range and crop,
// to reduce edge bias from truncated kernel mass. With no spikes the
// returned curve is all zeros.
func SmoothedFiringRate(spikeTimes, evalPoints []float64, sigmaSecs float64) []float64 {
	rate := make([]float64, len(evalPoints))
	if len(spikeTimes) == 0 {
		return rate
	}
	norm := 1.0 / (sigmaSecs * math.Sqrt(2*math.Pi))
	for _, st := range spikeTimes {
		for j, t := range evalPoints {
			d := (t - st) / sigmaSecs
			rate[j] += norm * math.Exp(-0.5*d*d)
		}
	}
	return rate
}

// EvalGrid returns n evenly spaced evaluation points spanning the min and
// max spike time across all rows of data, nil if there are no spikes or
// n <= 0. All rows share this grid so their curves can be aggregated.
func EvalGrid(data [][]float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	mn, mx := math.Inf(1), math.Inf(-1)
	for _, row := range data {
		for _, t := range row {
			if t < mn {
				mn = t
			}
			if t > mx {
				mx = t
			}
		}
	}
	if mn > mx {
		return nil
	}
	if n == 1 {
		return []float64{mn}
	}
	tt := make([]float64, n)
	step := (mx - mn) / float64(n-1)
	for i := range tt {
		tt[i] = mn + float64(i)*step
	}
	return tt
}
