// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package units holds the unit (spike source) collection: per-unit spike
timestamp sequences with optional scalar metadata and observed-interval
annotations, read-only from the caller's perspective. It provides
windowed spike-time access, alignment of spike times to trial interval
anchors, and computation of unobserved (gap) intervals for shading.

Trial and electrode tables are passed in explicitly wherever they are
needed -- there is no parent-container traversal.
*/
package units

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/minmax"
)

// Units is a collection of recorded spike sources, one row per unit.
// All fields are owned by the caller and never mutated here; accessors
// return fresh slices.
type Units struct {

	// per-unit scalar / categorical metadata columns (e.g., PeakChannelID), one row per unit -- may be nil
	Meta *etable.Table

	// spike timestamps per unit, in seconds, sorted ascending -- ragged lengths
	SpikeTimes [][]float64

	// observed recording intervals per unit, sorted and non-overlapping -- nil when not annotated
	ObsIntervals [][]minmax.F64
}

// NumUnits returns the number of units (rows).
func (un *Units) NumUnits() int {
	return len(un.SpikeTimes)
}

// SpikesInWindow returns a fresh slice of the spike times of the given
// unit falling within the given time window, inclusive on both ends.
func (un *Units) SpikesInWindow(index int, win minmax.F64) ([]float64, error) {
	if index < 0 || index >= len(un.SpikeTimes) {
		return nil, fmt.Errorf("units: index %d out of range: %d units", index, len(un.SpikeTimes))
	}
	st := un.SpikeTimes[index]
	lo := sort.SearchFloat64s(st, win.Min)
	hi := sort.Search(len(st), func(i int) bool { return st[i] > win.Max })
	out := make([]float64, hi-lo)
	copy(out, st[lo:hi])
	return out, nil
}

// MinSpikeTime returns the earliest spike time across all units, 0 if
// there are no spikes at all.
func (un *Units) MinSpikeTime() float64 {
	mn := math.Inf(1)
	for _, st := range un.SpikeTimes {
		if len(st) > 0 && st[0] < mn {
			mn = st[0]
		}
	}
	if math.IsInf(mn, 1) {
		return 0
	}
	return mn
}

// MaxSpikeTime returns the latest spike time across all units, 0 if
// there are no spikes at all.
func (un *Units) MaxSpikeTime() float64 {
	mx := math.Inf(-1)
	for _, st := range un.SpikeTimes {
		if len(st) > 0 && st[len(st)-1] > mx {
			mx = st[len(st)-1]
		}
	}
	if math.IsInf(mx, -1) {
		return 0
	}
	return mx
}

// SizeReport returns a human-readable report of the memory held by the
// spike-time and observed-interval data.
func (un *Units) SizeReport() string {
	var b strings.Builder
	nspk := 0
	for _, st := range un.SpikeTimes {
		nspk += len(st)
	}
	nobs := 0
	for _, oi := range un.ObsIntervals {
		nobs += len(oi)
	}
	smem := uint64(nspk) * 8
	omem := uint64(nobs) * 16
	fmt.Fprintf(&b, "Units: %d\t Spikes: %d\t SpkMem: %v\t ObsIntervals: %d\t ObsMem: %v\n",
		un.NumUnits(), nspk, (datasize.ByteSize)(smem).HumanReadable(), nobs, (datasize.ByteSize)(omem).HumanReadable())
	return b.String()
}
