/*
 * freeenergy.go, part of orcaprop.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package chemplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Series is a named set of energies, one per temperature.
type Series struct {
	Name   string
	Values []float64
}

func basicEnergyPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "T (K)"
	p.Y.Label.Text = "G (Hartree)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

// EnergyPlot plots each series against the temperatures and saves the plot to filename.
// The format is taken from the file extension (png, svg, pdf, etc).
func EnergyPlot(title, filename string, temps []float64, series ...Series) error {
	errid := "EnergyPlot"
	if len(temps) == 0 || len(series) == 0 {
		return fmt.Errorf("%s: nothing to plot", errid)
	}
	p := basicEnergyPlot(title)
	for key, s := range series {
		if len(s.Values) != len(temps) {
			return fmt.Errorf("%s: series %s has %d values for %d temperatures", errid, s.Name, len(s.Values), len(temps))
		}
		pts := make(plotter.XYs, len(temps))
		for i, T := range temps {
			pts[i].X = T
			pts[i].Y = s.Values[i]
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("%s: %w", errid, err)
		}
		c := seriesColor(key, len(series))
		line.Color = c
		points.Color = c
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(s.Name, line, points)
	}
	if err := p.Save(5*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

// FreeEnergyPlot plots the Gibbs free energies in gas and in the liquid against
// the temperature.
func FreeEnergyPlot(title, filename string, temps, ggas, gliquid []float64) error {
	return EnergyPlot(title, filename, temps, Series{"gas", ggas}, Series{"liquid", gliquid})
}
