// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"fmt"

	"github.com/Armin12/nwb-jupyter-widgets/nwbtable"
	"github.com/Armin12/nwb-jupyter-widgets/units"
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/etable/v2/minmax"
)

// RasterData is the computed content of a session raster: one row per
// displayed unit, in display order.
type RasterData struct {

	// display time window
	TimeWindow minmax.F64

	// original unit index per display row
	Order []int

	// index into Labels per display row -- nil when not grouping
	GroupInds []int

	// distinct group labels in display order
	Labels []string

	// color per label, from the configured cycle
	Colors []string

	// spike times per display row within TimeWindow (absolute, unshifted)
	Spikes [][]float64

	// unobserved-interval gaps per display row -- nil when not requested, empty rows when unannotated
	Unobserved [][]minmax.F64

	// display row offset (start of the units window)
	Offset int
}

// SessionRaster computes a session raster over all units: resolves the
// group / order columns (units metadata first, then the electrode table
// via channel lookup), runs group-and-sort with the units window and
// per-group limit, and extracts each displayed unit's spikes within the
// time window. An empty result (no units, no spikes) is not an error.
func SessionRaster(un *units.Units, rp *RasterParams) (*RasterData, error) {
	nu := un.NumUnits()
	tw := rp.TimeWindow
	if tw.Min == 0 && tw.Max == 0 {
		tw.Set(un.MinSpikeTime(), un.MaxSpikeTime())
	}
	w0, w1 := rp.UnitsStart, rp.UnitsEnd
	if w1 <= 0 || w1 > nu {
		w1 = nu
	}
	if w0 < 0 || w0 > w1 {
		return nil, fmt.Errorf("raster: invalid units window [%d, %d)", rp.UnitsStart, rp.UnitsEnd)
	}
	groupVals, err := resolveColumn(un, rp.Electrodes, rp.GroupBy)
	if err != nil {
		return nil, err
	}
	orderVals, err := resolveColumn(un, rp.Electrodes, rp.OrderBy)
	if err != nil {
		return nil, err
	}

	var order, groupInds []int
	var labels []string
	if groupVals == nil && orderVals == nil {
		order = make([]int, w1-w0)
		for i := range order {
			order[i] = w0 + i
		}
	} else {
		order, groupInds, labels, err = nwbtable.GroupAndSort(groupVals, orderVals, []int{w0, w1}, rp.Limit)
		if err != nil {
			return nil, err
		}
	}

	rd := &RasterData{TimeWindow: tw, Order: order, GroupInds: groupInds, Labels: labels, Offset: w0}
	if len(rp.Colors) > 0 {
		for i := range labels {
			rd.Colors = append(rd.Colors, rp.Colors[i%len(rp.Colors)])
		}
	}
	rd.Spikes = make([][]float64, len(order))
	for i, u := range order {
		spks, err := un.SpikesInWindow(u, tw)
		if err != nil {
			return nil, err
		}
		rd.Spikes[i] = spks
	}
	if rp.ShowObsIntervals {
		rd.Unobserved = un.UnobservedIntervals(tw, order)
	}
	return rd, nil
}

// resolveColumn finds the named per-unit column: in the units metadata
// table if present, otherwise joined from the electrode table. Empty name
// resolves to nil with no error.
func resolveColumn(un *units.Units, electrodes *etable.Table, colNm string) (etensor.Tensor, error) {
	if colNm == "" {
		return nil, nil
	}
	if un.Meta != nil {
		if ci := un.Meta.ColIdx(colNm); ci >= 0 {
			return un.Meta.Cols[ci], nil
		}
	}
	if electrodes != nil && electrodes.ColIdx(colNm) >= 0 {
		return ElectrodeColumn(un, electrodes, colNm)
	}
	return nil, fmt.Errorf("raster: column %q not found in units or electrodes", colNm)
}

// ElectrodeColumn joins a per-unit value column out of the electrode
// metadata table: each unit's PeakChannelID is looked up in the electrode
// Id column (first match; no match falls back to row 0) and the named
// column's value at that electrode row is taken. The result is a fresh
// tensor of one value per unit.
func ElectrodeColumn(un *units.Units, electrodes *etable.Table, colNm string) (etensor.Tensor, error) {
	if electrodes == nil {
		return nil, fmt.Errorf("raster: electrodes table is required")
	}
	col, err := electrodes.ColByNameTry(colNm)
	if err != nil {
		return nil, err
	}
	ids, err := electrodes.ColByNameTry("Id")
	if err != nil {
		return nil, err
	}
	if un.Meta == nil {
		return nil, fmt.Errorf("raster: units have no metadata table")
	}
	chans, err := un.Meta.ColByNameTry("PeakChannelID")
	if err != nil {
		return nil, err
	}
	n := un.NumUnits()
	var out etensor.Tensor
	if col.DataType() == etensor.STRING {
		out = etensor.NewString([]int{n}, nil, nil)
	} else {
		out = etensor.NewFloat64([]int{n}, nil, nil)
	}
	for i := 0; i < n; i++ {
		ch := chans.FloatVal1D(i)
		ri := 0
		for j := 0; j < electrodes.Rows; j++ {
			if ids.FloatVal1D(j) == ch {
				ri = j
				break
			}
		}
		if out.DataType() == etensor.STRING {
			out.SetString1D(i, col.StringVal1D(ri))
		} else {
			out.SetFloat1D(i, col.FloatVal1D(ri))
		}
	}
	return out, nil
}
