// Copyright (c) 2024, The NWB Widgets Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"strings"

	"github.com/emer/etable/v2/eplot"
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/etable/v2/minmax"
)

// Table returns a plot-ready table of the session raster, one row per
// spike, with Time, Row, and Group columns, suited to a points plot with
// the Group column as legend.
func (rd *RasterData) Table() *etable.Table {
	dt := eventTable("SessionRaster")
	for i, spks := range rd.Spikes {
		lbl := ""
		if rd.GroupInds != nil {
			lbl = rd.Labels[rd.GroupInds[i]]
		}
		addEventRows(dt, spks, float64(rd.Offset+i), lbl)
	}
	return dt
}

// RasterTable returns a plot-ready table of the PSTH raster, one row per
// spike, with Time (anchor-relative), Row (trial display row), and Group
// columns.
func (pd *PSTHData) RasterTable() *etable.Table {
	dt := eventTable("PSTHRaster")
	for i, spks := range pd.Raster {
		lbl := ""
		if pd.GroupInds != nil {
			lbl = pd.Labels[pd.GroupInds[i]]
		}
		addEventRows(dt, spks, float64(i), lbl)
	}
	return dt
}

// RateTable returns the smoothed-rate table: a Time column plus, per
// group, "<label> Mean", "<label> Lower" and "<label> Upper" columns over
// the cropped evaluation grid. Empty when the PSTH had no spikes.
func (pd *PSTHData) RateTable() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "PSTHRate")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "Time", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	for _, g := range pd.Groups {
		nm := groupColName(g.Label)
		sch = append(sch, etable.Column{Name: nm + " Mean", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil})
		sch = append(sch, etable.Column{Name: nm + " Lower", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil})
		sch = append(sch, etable.Column{Name: nm + " Upper", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil})
	}
	dt.SetFromSchema(sch, len(pd.Times))
	for ti, t := range pd.Times {
		dt.SetCellFloat("Time", ti, t)
		for _, g := range pd.Groups {
			nm := groupColName(g.Label)
			dt.SetCellFloat(nm+" Mean", ti, g.Mean[ti])
			dt.SetCellFloat(nm+" Lower", ti, g.Lower[ti])
			dt.SetCellFloat(nm+" Upper", ti, g.Upper[ti])
		}
	}
	return dt
}

// ConfigRasterPlot configures a points plot of a raster event table,
// x = spike time, y = display row, colored by group.
func ConfigRasterPlot(plt *eplot.Plot2D, dt *etable.Table, title string, win minmax.F64) *eplot.Plot2D {
	plt.Params.Title = title
	plt.Params.XAxisCol = "Time"
	plt.Params.LegendCol = "Group"
	plt.Params.Lines = false
	plt.Params.Points = true
	plt.SetTable(dt)
	// order of params: on, fixMin, min, fixMax, max
	plt.SetColParams("Time", eplot.Off, eplot.FixMin, win.Min, eplot.FixMax, win.Max)
	plt.SetColParams("Row", eplot.On, eplot.FloatMin, 0, eplot.FloatMax, 0)
	return plt
}

// ConfigRatePlot configures a line plot of a smoothed-rate table, showing
// the per-group mean curves; the band columns are present but off by
// default.
func ConfigRatePlot(plt *eplot.Plot2D, dt *etable.Table, title string, before, after float64) *eplot.Plot2D {
	plt.Params.Title = title
	plt.Params.XAxisCol = "Time"
	plt.SetTable(dt)
	plt.SetColParams("Time", eplot.Off, eplot.FixMin, -before, eplot.FixMax, after)
	for _, cn := range dt.ColNames {
		if cn == "Time" {
			continue
		}
		on := eplot.Off
		if strings.HasSuffix(cn, " Mean") {
			on = eplot.On
		}
		plt.SetColParams(cn, on, eplot.FixMin, 0, eplot.FloatMax, 0)
	}
	return plt
}

func eventTable(name string) *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", name)
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "Time", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Row", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Group", Type: etensor.STRING, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, 0)
	return dt
}

func addEventRows(dt *etable.Table, times []float64, rowY float64, lbl string) {
	for _, t := range times {
		row := dt.Rows
		dt.SetNumRows(row + 1)
		dt.SetCellFloat("Time", row, t)
		dt.SetCellFloat("Row", row, rowY)
		dt.SetCellString("Group", row, lbl)
	}
}

// groupColName maps a group label to a plot column prefix; the unlabeled
// single group plots as "All".
func groupColName(lbl string) string {
	if lbl == "" {
		return "All"
	}
	return lbl
}
