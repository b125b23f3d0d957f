// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package nwbwidgets is the overall repository for the compute side of the
NWB raster / PSTH visualization widgets, implemented in the Go language
(golang) on top of the emergent etable data-table stack.

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* nwbtable: dynamic-table utilities -- inferring which named columns are
usable for grouping or ordering, and the group-and-sort engine that turns
group / order column values into a display row order, per-row group
indexes, and group labels.

* units: the unit (spike source) collection -- windowed spike-time access,
alignment of spike times to trial intervals, and observed-interval gap
computation.

* spikes: analysis -- Gaussian-kernel smoothed firing-rate estimation and
per-group mean +/- 2 SEM statistics over a shared evaluation grid.

* raster: the pipelines that assemble the above into session rasters,
trial-aligned PSTHs and raster grids, along with plot-ready etable.Table
construction and eplot configuration.

* examples: these compile into runnable programs. examples/psthplot runs
the full PSTH pipeline over a synthetic session and plots the results.
*/
package nwbwidgets
