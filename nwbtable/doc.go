// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package nwbtable provides dynamic-table utilities over etable.Table
columns: inference of which named columns are usable for grouping
(low-cardinality, scalar, non-unique) or for ordering, and the
group-and-sort engine that turns group / order column values into a
display row order, per-row group indexes, and an ordered group label
sequence, with optional display windowing and per-group row limits.
*/
package nwbtable
