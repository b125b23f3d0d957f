// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package raster assembles the computation pipelines behind the raster and
PSTH views: the session raster over all units, the trial-aligned PSTH for
one unit, and the categorical raster grid. Each pipeline resolves group /
order columns, runs the group-and-sort engine, aligns and windows spike
times, and (for the PSTH) smooths and aggregates firing rates per group.

The results are plain data plus plot-ready etable.Tables; eplot
configuration functions are provided for rendering them. All recomputation
is synchronous and per-invocation -- nothing is cached between calls, and
caller-owned tables are never mutated.
*/
package raster
