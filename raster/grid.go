// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"fmt"
	"sort"

	"github.com/Armin12/nwb-jupyter-widgets/nwbtable"
	"github.com/Armin12/nwb-jupyter-widgets/units"
	"github.com/emer/etable/v2/etable"
)

// GridData is a grid of aligned spike sets for one unit, one cell per
// combination of a row categorical value and a column categorical value
// of the trials table.
type GridData struct {

	// distinct values of the rows column, sorted -- a single "" when no rows column
	RowVals []string

	// distinct values of the cols column, sorted -- a single "" when no cols column
	ColVals []string

	// Cells[i][j] is the aligned spike data for RowVals[i] x ColVals[j]:
	// one entry per matching trial -- nil when no trials match
	Cells [][][][]float64

	// display window before / after the anchor, seconds
	Before, After float64
}

// RasterGrid computes a grid of trial-aligned spike sets for the given
// unit, partitioning trials by the distinct values of the rowsLabel and
// colsLabel columns (either may be empty for a single row / column).
// alignBy names the anchor-time column.
func RasterGrid(un *units.Units, trials *etable.Table, index int, rowsLabel, colsLabel, alignBy string, before, after float64) (*GridData, error) {
	if trials == nil {
		return nil, fmt.Errorf("raster: trials table is required")
	}
	rowVals, err := gridVals(trials, rowsLabel)
	if err != nil {
		return nil, err
	}
	colVals, err := gridVals(trials, colsLabel)
	if err != nil {
		return nil, err
	}
	gd := &GridData{RowVals: rowVals, ColVals: colVals, Before: before, After: after}
	gd.Cells = make([][][][]float64, len(rowVals))
	for i, rv := range rowVals {
		gd.Cells[i] = make([][][]float64, len(colVals))
		for j, cv := range colVals {
			var rows []int
			for r := 0; r < trials.Rows; r++ {
				if rowsLabel != "" && trials.CellString(rowsLabel, r) != rv {
					continue
				}
				if colsLabel != "" && trials.CellString(colsLabel, r) != cv {
					continue
				}
				rows = append(rows, r)
			}
			if len(rows) == 0 {
				continue
			}
			data, err := un.AlignByTimeIntervals(index, trials, alignBy, alignBy, before, after, rows)
			if err != nil {
				return nil, err
			}
			gd.Cells[i][j] = data
		}
	}
	return gd, nil
}

// gridVals returns the sorted distinct values of the named column, or a
// single empty value for an empty label.
func gridVals(trials *etable.Table, label string) ([]string, error) {
	if label == "" {
		return []string{""}, nil
	}
	col, err := trials.ColByNameTry(label)
	if err != nil {
		return nil, err
	}
	vals := nwbtable.UniqueVals(col)
	sort.Strings(vals)
	return vals, nil
}
