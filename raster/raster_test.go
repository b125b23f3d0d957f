// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"reflect"
	"testing"

	"github.com/Armin12/nwb-jupyter-widgets/units"
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
)

func testUnits() *units.Units {
	meta := &etable.Table{}
	sch := etable.Schema{
		{Name: "Quality", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "PeakChannelID", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	meta.SetFromSchema(sch, 4)
	quality := []float64{1, 0, 1, 0}
	chans := []float64{11, 10, 11, 10}
	for i := 0; i < 4; i++ {
		meta.SetCellFloat("Quality", i, quality[i])
		meta.SetCellFloat("PeakChannelID", i, chans[i])
	}
	return &units.Units{
		Meta: meta,
		SpikeTimes: [][]float64{
			{0.1, 1.1, 2.1},
			{0.2, 1.2},
			{0.3, 2.3},
			{1.4},
		},
	}
}

func testElectrodes() *etable.Table {
	dt := &etable.Table{}
	sch := etable.Schema{
		{Name: "Id", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Location", Type: etensor.STRING, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, 2)
	dt.SetCellFloat("Id", 0, 10)
	dt.SetCellString("Location", 0, "CA1")
	dt.SetCellFloat("Id", 1, 11)
	dt.SetCellString("Location", 1, "V1")
	return dt
}

func TestSessionRasterIdentity(t *testing.T) {
	un := testUnits()
	rp := &RasterParams{}
	rp.Defaults()

	rd, err := SessionRaster(un, rp)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rd.Order, []int{0, 1, 2, 3}) {
		t.Errorf("order: %v, want identity", rd.Order)
	}
	if rd.GroupInds != nil || rd.Labels != nil {
		t.Errorf("ungrouped raster should have nil groupInds / labels")
	}
	if rd.TimeWindow.Min != 0.1 || rd.TimeWindow.Max != 2.3 {
		t.Errorf("default time window: %v, want [0.1, 2.3]", rd.TimeWindow)
	}
	if len(rd.Spikes) != 4 {
		t.Fatalf("spike rows: %d, want 4", len(rd.Spikes))
	}
	if len(rd.Spikes[0]) != 3 {
		t.Errorf("unit 0 spikes: %v", rd.Spikes[0])
	}
	if len(rd.Unobserved) != 4 {
		t.Errorf("unobserved rows: %d, want 4", len(rd.Unobserved))
	}
}

func TestSessionRasterGrouped(t *testing.T) {
	un := testUnits()
	rp := &RasterParams{}
	rp.Defaults()
	rp.GroupBy = "Quality"

	rd, err := SessionRaster(un, rp)
	if err != nil {
		t.Fatal(err)
	}
	// quality 0: units 1, 3; quality 1: units 0, 2
	if !reflect.DeepEqual(rd.Order, []int{1, 3, 0, 2}) {
		t.Errorf("order: %v, want [1 3 0 2]", rd.Order)
	}
	if !reflect.DeepEqual(rd.Labels, []string{"0", "1"}) {
		t.Errorf("labels: %v, want [0 1]", rd.Labels)
	}
	if !reflect.DeepEqual(rd.GroupInds, []int{0, 0, 1, 1}) {
		t.Errorf("groupInds: %v, want [0 0 1 1]", rd.GroupInds)
	}
	if len(rd.Colors) != 2 || rd.Colors[0] != DefaultColors[0] {
		t.Errorf("colors: %v", rd.Colors)
	}
}

func TestSessionRasterElectrodeGroup(t *testing.T) {
	un := testUnits()
	rp := &RasterParams{}
	rp.Defaults()
	rp.GroupBy = "Location"
	rp.Electrodes = testElectrodes()

	rd, err := SessionRaster(un, rp)
	if err != nil {
		t.Fatal(err)
	}
	// CA1 = channel 10 = units 1, 3; V1 = channel 11 = units 0, 2
	if !reflect.DeepEqual(rd.Order, []int{1, 3, 0, 2}) {
		t.Errorf("order: %v, want [1 3 0 2]", rd.Order)
	}
	if !reflect.DeepEqual(rd.Labels, []string{"CA1", "V1"}) {
		t.Errorf("labels: %v, want [CA1 V1]", rd.Labels)
	}
}

func TestSessionRasterWindowOffset(t *testing.T) {
	un := testUnits()
	rp := &RasterParams{}
	rp.Defaults()
	rp.UnitsStart = 1
	rp.UnitsEnd = 3

	rd, err := SessionRaster(un, rp)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rd.Order, []int{1, 2}) {
		t.Errorf("order: %v, want [1 2]", rd.Order)
	}
	if rd.Offset != 1 {
		t.Errorf("offset: %d, want 1", rd.Offset)
	}
}

func TestSessionRasterBadColumn(t *testing.T) {
	un := testUnits()
	rp := &RasterParams{}
	rp.Defaults()
	rp.GroupBy = "NoSuchCol"
	if _, err := SessionRaster(un, rp); err == nil {
		t.Errorf("unknown group column should error")
	}
}

func TestElectrodeColumn(t *testing.T) {
	un := testUnits()
	col, err := ElectrodeColumn(un, testElectrodes(), "Location")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"V1", "CA1", "V1", "CA1"}
	for i, w := range want {
		if col.StringVal1D(i) != w {
			t.Errorf("unit %d location: %v, want %v", i, col.StringVal1D(i), w)
		}
	}
	if _, err := ElectrodeColumn(un, testElectrodes(), "NoSuchCol"); err == nil {
		t.Errorf("missing column should error")
	}
}

func TestRasterDataTable(t *testing.T) {
	un := testUnits()
	rp := &RasterParams{}
	rp.Defaults()
	rp.GroupBy = "Quality"

	rd, err := SessionRaster(un, rp)
	if err != nil {
		t.Fatal(err)
	}
	dt := rd.Table()
	nspk := 0
	for _, s := range rd.Spikes {
		nspk += len(s)
	}
	if dt.Rows != nspk {
		t.Errorf("event rows: %d, want %d", dt.Rows, nspk)
	}
	if dt.ColIdx("Time") < 0 || dt.ColIdx("Row") < 0 || dt.ColIdx("Group") < 0 {
		t.Errorf("event table columns: %v", dt.ColNames)
	}
}
