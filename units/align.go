// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package units

import (
	"fmt"
	"math"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/minmax"
)

// AlignByTimeIntervals returns, for each interval row in rows (in that
// sequence), the spike times of the given unit within
// [start - before, stop + after], shifted so the start anchor is at 0.
// start and stop are the per-row values of the named interval columns;
// passing the same label for both gives the symmetric window
// [anchor - before, anchor + after]. Rows with no spikes in the window
// yield empty slices -- ragged output is expected. rows nil means all
// interval rows in table order.
func (un *Units) AlignByTimeIntervals(index int, intervals *etable.Table, startLabel, stopLabel string, before, after float64, rows []int) ([][]float64, error) {
	if intervals == nil {
		return nil, fmt.Errorf("units: intervals table is required")
	}
	starts, err := intervals.ColByNameTry(startLabel)
	if err != nil {
		return nil, err
	}
	stops := starts
	if stopLabel != startLabel {
		stops, err = intervals.ColByNameTry(stopLabel)
		if err != nil {
			return nil, err
		}
	}
	if rows == nil {
		rows = make([]int, intervals.Rows)
		for i := range rows {
			rows[i] = i
		}
	}
	out := make([][]float64, len(rows))
	for ri, r := range rows {
		if r < 0 || r >= intervals.Rows {
			return nil, fmt.Errorf("units: interval row %d out of range: %d rows", r, intervals.Rows)
		}
		anchor := starts.FloatVal1D(r)
		stop := stops.FloatVal1D(r)
		spks, err := un.SpikesInWindow(index, minmax.F64{Min: anchor - before, Max: stop + after})
		if err != nil {
			return nil, err
		}
		for i := range spks {
			spks[i] -= anchor
		}
		out[ri] = spks
	}
	return out, nil
}

// UnobservedIntervals returns, for each unit row in rows, the gaps of
// non-observation within the given time window: the complement of that
// unit's observed intervals, clipped to win. Units without
// observed-interval annotations yield empty gap lists, so the absence of
// the metadata degrades to "everything observed".
func (un *Units) UnobservedIntervals(win minmax.F64, rows []int) [][]minmax.F64 {
	out := make([][]minmax.F64, len(rows))
	if un.ObsIntervals == nil {
		return out
	}
	for ri, r := range rows {
		if r < 0 || r >= len(un.ObsIntervals) || un.ObsIntervals[r] == nil {
			continue
		}
		out[ri] = complementIntervals(un.ObsIntervals[r], win)
	}
	return out
}

// complementIntervals returns the sub-ranges of win not covered by the
// given sorted, non-overlapping intervals.
func complementIntervals(obs []minmax.F64, win minmax.F64) []minmax.F64 {
	var gaps []minmax.F64
	cur := win.Min
	for _, iv := range obs {
		if iv.Max <= cur {
			continue
		}
		if iv.Min >= win.Max {
			break
		}
		if iv.Min > cur {
			gaps = append(gaps, minmax.F64{Min: cur, Max: math.Min(iv.Min, win.Max)})
		}
		if iv.Max > cur {
			cur = iv.Max
		}
		if cur >= win.Max {
			break
		}
	}
	if cur < win.Max {
		gaps = append(gaps, minmax.F64{Min: cur, Max: win.Max})
	}
	return gaps
}
