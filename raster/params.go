// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/minmax"
)

// DefaultColors is the default group color cycle.
var DefaultColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// RasterParams are the control-state parameters for a session raster.
// A fresh SessionRaster call is made on every control change.
type RasterParams struct {

	// display time window in seconds -- zero means the full min..max spike time range
	TimeWindow minmax.F64

	// start of the contiguous window of display rows
	UnitsStart int

	// end (exclusive) of the display row window -- 0 means all units
	UnitsEnd int

	// units (or electrodes) column to group rows by -- empty for none
	GroupBy string

	// units (or electrodes) column to order rows by -- empty for none
	OrderBy string

	// cap on rows per group, applied after sorting -- <= 0 means unlimited
	Limit int

	// compute per-row unobserved-interval gaps for shading
	ShowObsIntervals bool

	// electrode metadata table for resolving GroupBy / OrderBy columns not present in the units table -- optional
	Electrodes *etable.Table

	// explicit color cycle assigned to groups in label order
	Colors []string
}

func (rp *RasterParams) Defaults() {
	rp.Limit = 50
	rp.ShowObsIntervals = true
	rp.Colors = DefaultColors
}

// PSTHParams are the control-state parameters for a trial-aligned PSTH.
type PSTHParams struct {

	// index of the unit to align
	Unit int

	// trials column giving the per-trial anchor event time
	StartLabel string

	// seconds before the anchor to display
	Before float64

	// seconds after the anchor to display
	After float64

	// trials column to order rows by -- empty for none
	OrderBy string

	// trials column to group / color rows by -- empty for none
	GroupBy string

	// selected trial rows -- nil means all trials
	TrialsSelect []int

	// Gaussian smoothing kernel standard deviation in seconds
	SigmaSecs float64

	// number of points in the smoothed-rate evaluation grid
	NPts int

	// explicit color cycle assigned to groups in label order
	Colors []string
}

func (pp *PSTHParams) Defaults() {
	pp.StartLabel = "StartTime"
	pp.Before = 0.5
	pp.After = 2
	pp.SigmaSecs = 0.05
	pp.NPts = 1000
	pp.Colors = DefaultColors
}
