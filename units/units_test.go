// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package units

import (
	"math"
	"strings"
	"testing"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/etable/v2/minmax"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-9

func trialsTable(starts []float64) *etable.Table {
	dt := &etable.Table{}
	sch := etable.Schema{
		{Name: "StartTime", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "StopTime", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, len(starts))
	for i, s := range starts {
		dt.SetCellFloat("StartTime", i, s)
		dt.SetCellFloat("StopTime", i, s+1)
	}
	return dt
}

func TestAlignByTimeIntervals(t *testing.T) {
	un := &Units{SpikeTimes: [][]float64{{0.5, 1.2, 5.1, 5.3, 9.9}}}
	trials := trialsTable([]float64{1, 5, 10})

	data, err := un.AlignByTimeIntervals(0, trials, "StartTime", "StartTime", 0.5, 0.5, []int{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	want := [][]float64{{-0.5, 0.2}, {0.1, 0.3}, {-0.1}}
	if len(data) != len(want) {
		t.Fatalf("rows: %d, want %d", len(data), len(want))
	}
	for ri := range want {
		if len(data[ri]) != len(want[ri]) {
			t.Errorf("row %d: %v, want %v", ri, data[ri], want[ri])
			continue
		}
		for si := range want[ri] {
			if math.Abs(data[ri][si]-want[ri][si]) > difTol {
				t.Errorf("row %d spike %d: %v, want %v", ri, si, data[ri][si], want[ri][si])
			}
			if data[ri][si] < -0.5-difTol || data[ri][si] > 0.5+difTol {
				t.Errorf("row %d spike %d: %v outside [-before, after]", ri, si, data[ri][si])
			}
		}
	}
}

func TestAlignRowOrderAndErrors(t *testing.T) {
	un := &Units{SpikeTimes: [][]float64{{0.9, 5.2}}}
	trials := trialsTable([]float64{1, 5})

	data, err := un.AlignByTimeIntervals(0, trials, "StartTime", "StartTime", 0.5, 0.5, []int{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 2 || len(data[0]) != 1 || len(data[1]) != 1 {
		t.Fatalf("data: %v", data)
	}
	if math.Abs(data[0][0]-0.2) > difTol || math.Abs(data[1][0]+0.1) > difTol {
		t.Errorf("row order not honored: %v", data)
	}

	if _, err := un.AlignByTimeIntervals(0, nil, "StartTime", "StartTime", 0.5, 0.5, nil); err == nil {
		t.Errorf("nil intervals should error")
	}
	if _, err := un.AlignByTimeIntervals(0, trials, "NoSuchCol", "NoSuchCol", 0.5, 0.5, nil); err == nil {
		t.Errorf("missing column should error")
	}
	if _, err := un.AlignByTimeIntervals(0, trials, "StartTime", "StartTime", 0.5, 0.5, []int{5}); err == nil {
		t.Errorf("out-of-range row should error")
	}
}

func TestSpikesInWindow(t *testing.T) {
	un := &Units{SpikeTimes: [][]float64{{1, 2, 3, 4, 5}}}
	spks, err := un.SpikesInWindow(0, minmax.F64{Min: 2, Max: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(spks) != 3 || spks[0] != 2 || spks[2] != 4 {
		t.Errorf("window [2, 4] inclusive: %v, want [2 3 4]", spks)
	}
	spks[0] = -99 // must be a copy
	if un.SpikeTimes[0][1] != 2 {
		t.Errorf("SpikesInWindow aliases caller data")
	}
	if _, err := un.SpikesInWindow(3, minmax.F64{Min: 0, Max: 1}); err == nil {
		t.Errorf("out-of-range unit should error")
	}
}

func TestMinMaxSpikeTime(t *testing.T) {
	un := &Units{SpikeTimes: [][]float64{{2, 8}, {}, {0.5, 3}}}
	if mn := un.MinSpikeTime(); mn != 0.5 {
		t.Errorf("min spike time: %v, want 0.5", mn)
	}
	if mx := un.MaxSpikeTime(); mx != 8 {
		t.Errorf("max spike time: %v, want 8", mx)
	}
	empty := &Units{SpikeTimes: [][]float64{{}}}
	if empty.MinSpikeTime() != 0 || empty.MaxSpikeTime() != 0 {
		t.Errorf("no spikes should give 0 min / max")
	}
}

func TestUnobservedIntervals(t *testing.T) {
	un := &Units{
		SpikeTimes: [][]float64{{1}, {1}},
		ObsIntervals: [][]minmax.F64{
			{{Min: 0, Max: 2}, {Min: 3, Max: 5}},
			nil,
		},
	}
	win := minmax.F64{Min: 0, Max: 5}
	gaps := un.UnobservedIntervals(win, []int{0, 1})
	if len(gaps) != 2 {
		t.Fatalf("rows: %d, want 2", len(gaps))
	}
	if len(gaps[0]) != 1 || gaps[0][0].Min != 2 || gaps[0][0].Max != 3 {
		t.Errorf("gaps row 0: %v, want [{2 3}]", gaps[0])
	}
	if len(gaps[1]) != 0 {
		t.Errorf("unannotated unit should have no gaps: %v", gaps[1])
	}

	// clipped to the window
	gaps = un.UnobservedIntervals(minmax.F64{Min: 2.5, Max: 6}, []int{0})
	if len(gaps[0]) != 2 {
		t.Fatalf("gaps: %v, want 2 intervals", gaps[0])
	}
	if gaps[0][0].Min != 2.5 || gaps[0][0].Max != 3 || gaps[0][1].Min != 5 || gaps[0][1].Max != 6 {
		t.Errorf("clipped gaps: %v", gaps[0])
	}

	none := &Units{SpikeTimes: [][]float64{{1}}}
	gaps = none.UnobservedIntervals(win, []int{0})
	if len(gaps) != 1 || len(gaps[0]) != 0 {
		t.Errorf("missing metadata should degrade to no gaps: %v", gaps)
	}
}

func TestSizeReport(t *testing.T) {
	un := &Units{SpikeTimes: [][]float64{{1, 2, 3}, {4}}}
	rep := un.SizeReport()
	if !strings.Contains(rep, "Units: 2") || !strings.Contains(rep, "Spikes: 4") {
		t.Errorf("size report: %q", rep)
	}
}
