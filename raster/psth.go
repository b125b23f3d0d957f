// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"fmt"

	"github.com/Armin12/nwb-jupyter-widgets/nwbtable"
	"github.com/Armin12/nwb-jupyter-widgets/spikes"
	"github.com/Armin12/nwb-jupyter-widgets/units"
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
)

// PSTHData is the computed content of a trial-aligned PSTH for one unit.
type PSTHData struct {

	// unit the data is aligned for
	Unit int

	// display window before / after the anchor, seconds
	Before, After float64

	// selected trial row per display row, in display order
	Order []int

	// index into Labels per display row -- nil when not grouping
	GroupInds []int

	// distinct group labels in display order
	Labels []string

	// aligned spike times per display row, anchor at 0, within [-Before, After]
	Raster [][]float64

	// shared smoothed-rate evaluation grid, cropped to [-Before, After] -- nil when there are no spikes
	Times []float64

	// per-group smoothed-rate statistics over Times
	Groups []spikes.GroupStats
}

// TrialsPSTH computes the PSTH pipeline for one unit: selects trials,
// resolves group / order columns from the trials table, sorts, aligns
// spike times to the per-trial anchor for both the display window and a
// window inflated by 4 * sigma, smooths the inflated data on a shared
// grid, crops back to the display window, and aggregates per group.
// No spikes anywhere near the selected trials is an empty result
// (nil Times), not an error.
func TrialsPSTH(un *units.Units, trials *etable.Table, pp *PSTHParams) (*PSTHData, error) {
	if trials == nil {
		return nil, fmt.Errorf("raster: trials table is required")
	}
	sel := pp.TrialsSelect
	if sel == nil {
		sel = make([]int, trials.Rows)
		for i := range sel {
			sel[i] = i
		}
	}
	var groupVals, orderVals etensor.Tensor
	if pp.GroupBy != "" {
		col, err := trials.ColByNameTry(pp.GroupBy)
		if err != nil {
			return nil, err
		}
		groupVals = subsetTensor(col, sel)
	}
	if pp.OrderBy != "" {
		col, err := trials.ColByNameTry(pp.OrderBy)
		if err != nil {
			return nil, err
		}
		orderVals = subsetTensor(col, sel)
	}

	var order, groupInds []int
	var labels []string
	var err error
	if groupVals == nil && orderVals == nil {
		order = make([]int, len(sel))
		for i := range order {
			order[i] = i
		}
	} else {
		order, groupInds, labels, err = nwbtable.GroupAndSort(groupVals, orderVals, nil, 0)
		if err != nil {
			return nil, err
		}
	}
	rows := make([]int, len(order)) // order indexes sel; map back to trial rows
	for i, o := range order {
		rows[i] = sel[o]
	}

	pd := &PSTHData{Unit: pp.Unit, Before: pp.Before, After: pp.After, Order: rows, GroupInds: groupInds, Labels: labels}
	pd.Raster, err = un.AlignByTimeIntervals(pp.Unit, trials, pp.StartLabel, pp.StartLabel, pp.Before, pp.After, rows)
	if err != nil {
		return nil, err
	}
	// smoother uses a larger window than is viewed, to avoid edge bias
	pad := 4 * pp.SigmaSecs
	expanded, err := un.AlignByTimeIntervals(pp.Unit, trials, pp.StartLabel, pp.StartLabel, pp.Before+pad, pp.After+pad, rows)
	if err != nil {
		return nil, err
	}
	tt := spikes.EvalGrid(expanded, pp.NPts)
	if tt == nil {
		return pd, nil
	}
	curves := make([][]float64, len(expanded))
	for i, row := range expanded {
		curves[i] = spikes.SmoothedFiringRate(row, tt, pp.SigmaSecs)
	}
	gs, err := spikes.PSTHGroupStats(curves, groupInds, labels, pp.Colors)
	if err != nil {
		return nil, err
	}
	lo, hi := cropRange(tt, -pp.Before, pp.After)
	pd.Times = append([]float64{}, tt[lo:hi]...)
	for gi := range gs {
		gs[gi].Mean = gs[gi].Mean[lo:hi]
		gs[gi].Lower = gs[gi].Lower[lo:hi]
		gs[gi].Upper = gs[gi].Upper[lo:hi]
	}
	pd.Groups = gs
	return pd, nil
}

// SelectTrials returns the rows of the trials table whose column value
// renders equal to val -- used to restrict a PSTH to one stimulus type.
// Returns nil when the column does not exist.
func SelectTrials(trials *etable.Table, colNm, val string) []int {
	if trials == nil || trials.ColIdx(colNm) < 0 {
		return nil
	}
	ix := etable.NewIdxView(trials)
	ix.Filter(func(et *etable.Table, row int) bool {
		return et.CellString(colNm, row) == val
	})
	sel := make([]int, len(ix.Idxs))
	copy(sel, ix.Idxs)
	return sel
}

// subsetTensor returns a fresh scalar tensor holding the given rows of a
// column, preserving string typing and null flags.
func subsetTensor(col etensor.Tensor, rows []int) etensor.Tensor {
	if col.DataType() == etensor.STRING {
		out := etensor.NewString([]int{len(rows)}, nil, nil)
		for i, r := range rows {
			out.SetString1D(i, col.StringVal1D(r))
		}
		return out
	}
	out := etensor.NewFloat64([]int{len(rows)}, nil, nil)
	for i, r := range rows {
		out.SetFloat1D(i, col.FloatVal1D(r))
		if col.IsNull1D(r) {
			out.SetNull1D(i, true)
		}
	}
	return out
}

// cropRange returns the index range [lo, hi) of sorted grid tt falling
// within [min, max].
func cropRange(tt []float64, min, max float64) (lo, hi int) {
	hi = len(tt)
	for lo < hi && tt[lo] < min {
		lo++
	}
	for hi > lo && tt[hi-1] > max {
		hi--
	}
	return lo, hi
}
