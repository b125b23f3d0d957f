// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nwbtable

import (
	"fmt"
	"math"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
)

// GroupAndSort computes the display row order for a set of rows given
// optional parallel group and order key columns.
//
// order is the sequence of original row indexes in display order: rows are
// sorted lexicographically by (group value, order value), ties broken by
// ascending original index, so the result is deterministic for identical
// inputs. Rows with a missing group value (float NaN or a null-flagged
// entry) are excluded when grouping is requested; when only ordering is
// requested all rows participate.
//
// limit > 0 caps the number of rows retained per distinct group value,
// keeping the first limit rows of each group in sorted order. window, if
// non-nil, is a [start, end) slice over the limited, sorted sequence,
// selecting a contiguous display page; it is applied after the limit.
//
// groupInds assigns each retained row an index into labels, the distinct
// group values (string renderings) in first-appearance order after
// sorting. Both are nil when no grouping is requested.
//
// With both key columns nil, order is the identity sequence over window
// (nil when window is also nil), and groupInds and labels are nil.
func GroupAndSort(groupVals, orderVals etensor.Tensor, window []int, limit int) (order, groupInds []int, labels []string, err error) {
	if window != nil {
		if len(window) != 2 || window[0] < 0 || window[1] < window[0] {
			return nil, nil, nil, fmt.Errorf("nwbtable: invalid window %v", window)
		}
	}
	if groupVals == nil && orderVals == nil {
		if window == nil {
			return nil, nil, nil, nil
		}
		order = make([]int, window[1]-window[0])
		for i := range order {
			order[i] = window[0] + i
		}
		return order, nil, nil, nil
	}
	n := -1
	if groupVals != nil {
		n = groupVals.Len()
	}
	if orderVals != nil {
		if n >= 0 && orderVals.Len() != n {
			return nil, nil, nil, fmt.Errorf("nwbtable: group values length %d != order values length %d", n, orderVals.Len())
		}
		n = orderVals.Len()
	}

	st := &etable.Table{}
	st.SetFromSchema(sortSchema(groupVals, orderVals), 0)
	for i := 0; i < n; i++ {
		if groupVals != nil && missingVal(groupVals, i) {
			continue
		}
		row := st.Rows
		st.SetNumRows(row + 1)
		if groupVals != nil {
			setSortCell(st, "Group", row, groupVals, i)
		}
		if orderVals != nil {
			setSortCell(st, "Order", row, orderVals, i)
		}
		st.SetCellFloat("Idx", row, float64(i))
	}

	ix := etable.NewIdxView(st)
	var keys []string
	if groupVals != nil {
		keys = append(keys, "Group")
	}
	if orderVals != nil {
		keys = append(keys, "Order")
	}
	keys = append(keys, "Idx") // deterministic tie-break on original index
	if err := ix.SortColNames(keys, etable.Ascending); err != nil {
		return nil, nil, nil, err
	}

	kept := ix.Idxs
	if limit > 0 && groupVals != nil {
		var lim []int
		cnt := map[string]int{}
		for _, r := range kept {
			lbl := st.CellString("Group", r)
			if cnt[lbl] >= limit {
				continue
			}
			cnt[lbl]++
			lim = append(lim, r)
		}
		kept = lim
	}
	if window != nil { // window slices the limited, sorted sequence
		w0, w1 := window[0], window[1]
		if w0 > len(kept) {
			w0 = len(kept)
		}
		if w1 > len(kept) {
			w1 = len(kept)
		}
		kept = kept[w0:w1]
	}

	lblIdx := map[string]int{}
	for _, r := range kept {
		order = append(order, int(st.CellFloat("Idx", r)))
		if groupVals == nil {
			continue
		}
		lbl := st.CellString("Group", r)
		gi, ok := lblIdx[lbl]
		if !ok {
			gi = len(labels)
			labels = append(labels, lbl)
			lblIdx[lbl] = gi
		}
		groupInds = append(groupInds, gi)
	}
	return order, groupInds, labels, nil
}

// sortSchema builds the scratch sort-table schema, typing the Group and
// Order columns after their source tensors so string keys sort as strings
// and numeric keys sort numerically.
func sortSchema(groupVals, orderVals etensor.Tensor) etable.Schema {
	var sch etable.Schema
	if groupVals != nil {
		sch = append(sch, etable.Column{Name: "Group", Type: sortColType(groupVals), CellShape: nil, DimNames: nil})
	}
	if orderVals != nil {
		sch = append(sch, etable.Column{Name: "Order", Type: sortColType(orderVals), CellShape: nil, DimNames: nil})
	}
	sch = append(sch, etable.Column{Name: "Idx", Type: etensor.INT64, CellShape: nil, DimNames: nil})
	return sch
}

func sortColType(tsr etensor.Tensor) etensor.Type {
	if tsr.DataType() == etensor.STRING {
		return etensor.STRING
	}
	return etensor.FLOAT64
}

func setSortCell(st *etable.Table, colNm string, row int, tsr etensor.Tensor, i int) {
	if tsr.DataType() == etensor.STRING {
		st.SetCellString(colNm, row, tsr.StringVal1D(i))
	} else {
		st.SetCellFloat(colNm, row, tsr.FloatVal1D(i))
	}
}

// missingVal is the single missing-value rule for group keys: an etensor
// null flag, or a NaN in a float column.
func missingVal(tsr etensor.Tensor, i int) bool {
	if tsr.IsNull1D(i) {
		return true
	}
	if tsr.DataType() == etensor.STRING {
		return false
	}
	return math.IsNaN(tsr.FloatVal1D(i))
}
