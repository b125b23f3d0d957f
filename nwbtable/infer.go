// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nwbtable

import (
	"math"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
)

// IdentityCol is the name of the row-identity column, which is never a
// grouping or ordering candidate.
const IdentityCol = "Id"

// UniqueVals returns the distinct values of the given scalar column tensor,
// as their string renderings, in order of first appearance.
// Floating-point NaNs and null-flagged entries are skipped, so a column of
// all-missing values has no distinct values.
func UniqueVals(tsr etensor.Tensor) []string {
	var us []string
	seen := map[string]bool{}
	isStr := tsr.DataType() == etensor.STRING
	for i := 0; i < tsr.Len(); i++ {
		if tsr.IsNull1D(i) {
			continue
		}
		if !isStr && math.IsNaN(tsr.FloatVal1D(i)) {
			continue
		}
		s := tsr.StringVal1D(i)
		if seen[s] {
			continue
		}
		seen[s] = true
		us = append(us, s)
	}
	return us
}

// InferCategoricalColumns returns the columns of the given table that are
// usable for grouping rows: scalar (non-nested) cells, not the identity
// column, and a distinct-value count that is neither 1 nor the row count.
// Names are returned in table-declared column order, along with a map from
// name to the full column tensor. An empty table yields empty results.
func InferCategoricalColumns(dt *etable.Table) ([]string, map[string]etensor.Tensor) {
	cols := map[string]etensor.Tensor{}
	var names []string
	if dt == nil || dt.Rows == 0 {
		return names, cols
	}
	for ci, nm := range dt.ColNames {
		col := dt.Cols[ci]
		if nm == IdentityCol || col.NumDims() > 1 {
			continue
		}
		nu := len(UniqueVals(col))
		if nu <= 1 || nu == dt.Rows {
			continue
		}
		names = append(names, nm)
		cols[nm] = col
	}
	return names, cols
}

// OrderableColumns returns the names of columns usable for ordering rows:
// scalar (non-nested) cells, not the identity column, and more than one
// distinct value. Unlike categorical columns, an all-unique column is a
// valid ordering key.
func OrderableColumns(dt *etable.Table) []string {
	var names []string
	if dt == nil || dt.Rows == 0 {
		return names
	}
	for ci, nm := range dt.ColNames {
		col := dt.Cols[ci]
		if nm == IdentityCol || col.NumDims() > 1 {
			continue
		}
		if len(UniqueVals(col)) > 1 {
			names = append(names, nm)
		}
	}
	return names
}
