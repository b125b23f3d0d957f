// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikes

import (
	"fmt"

	"github.com/emer/etable/v2/agg"
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
)

// GroupStats holds the smoothed-rate statistics for one display group:
// the mean across the group's curves and a +/- 2 SEM confidence band,
// all over the shared evaluation grid.
type GroupStats struct {

	// group label
	Label string

	// display color assigned to this group from the color cycle
	Color string

	// mean rate across the group's curves
	Mean []float64

	// Mean - 2 * SEM -- NaN when the group has a single curve
	Lower []float64

	// Mean + 2 * SEM -- NaN when the group has a single curve
	Upper []float64
}

// PSTHGroupStats computes per-group mean and +/- 2 SEM band across the
// given smoothed rate curves, which must all be over the same evaluation
// grid. groupInds assigns each curve an index into labels; nil groupInds
// means a single unlabeled group. colors is the explicit color cycle,
// assigned to groups in label order, wrapping; it may be empty.
func PSTHGroupStats(curves [][]float64, groupInds []int, labels, colors []string) ([]GroupStats, error) {
	if len(curves) == 0 {
		return nil, nil
	}
	if groupInds == nil {
		groupInds = make([]int, len(curves))
		labels = []string{""}
	}
	if len(groupInds) != len(curves) {
		return nil, fmt.Errorf("spikes: %d group indexes for %d curves", len(groupInds), len(curves))
	}
	npt := len(curves[0])
	sch := etable.Schema{
		{Name: "Group", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Rate", Type: etensor.FLOAT64, CellShape: []int{npt}, DimNames: []string{"Time"}},
	}
	st := &etable.Table{}
	st.SetFromSchema(sch, len(curves))
	for i, c := range curves {
		if len(c) != npt {
			return nil, fmt.Errorf("spikes: curve %d has %d points, want %d", i, len(c), npt)
		}
		st.SetCellFloat("Group", i, float64(groupInds[i]))
		for j, v := range c {
			st.SetCellTensorFloat1D("Rate", i, j, v)
		}
	}
	gs := make([]GroupStats, len(labels))
	for gi := range labels {
		gv := float64(gi)
		ix := etable.NewIdxView(st)
		ix.Filter(func(et *etable.Table, row int) bool {
			return et.CellFloat("Group", row) == gv
		})
		mean := agg.Mean(ix, "Rate")
		sem := agg.Sem(ix, "Rate")
		g := GroupStats{Label: labels[gi]}
		if len(colors) > 0 {
			g.Color = colors[gi%len(colors)]
		}
		g.Mean = mean
		g.Lower = make([]float64, len(mean))
		g.Upper = make([]float64, len(mean))
		for j := range mean {
			g.Lower[j] = mean[j] - 2*sem[j]
			g.Upper[j] = mean[j] + 2*sem[j]
		}
		gs[gi] = g
	}
	return gs, nil
}
