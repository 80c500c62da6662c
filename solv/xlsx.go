/*
 * xlsx.go, part of orcaprop.
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

package solv

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Table is implemented by the results of the workflows, so they can be
// exported as spreadsheets.
type Table interface {
	Sheet() string
	Header() []string
	Rows() [][]any
}

// CosmoRSTable holds COSMO-RS results as a table.
type CosmoRSTable []CosmoRSResult

func (t CosmoRSTable) Sheet() string { return "COSMO-RS" }

func (t CosmoRSTable) Header() []string {
	return []string{"File", "Name", "G gas (Eh)", "E el (Eh)", "dG solv (Eh)", "Time (s)", "Error"}
}

func (t CosmoRSTable) Rows() [][]any {
	rows := make([][]any, 0, len(t))
	for _, r := range t {
		row := []any{r.File, r.Name, nil, nil, nil, r.Elapsed.Seconds(), errString(r.Err)}
		if r.Err == nil {
			if r.Vacuum {
				row[2], row[3] = r.GGas, r.EEl
			}
			row[4] = r.GSolv
		}
		rows = append(rows, row)
	}
	return rows
}

// LogPTable holds logP results as a table.
type LogPTable []LogPResult

func (t LogPTable) Sheet() string { return "logP" }

func (t LogPTable) Header() []string {
	return []string{"File", "Name", "LogP " + EstimatorCosmoRS, "LogP " + EstimatorSMD, "Time (s)", "Error"}
}

func (t LogPTable) Rows() [][]any {
	rows := make([][]any, 0, len(t))
	for _, r := range t {
		row := []any{r.File, r.Name, nil, nil, r.Elapsed.Seconds(), errString(r.Err)}
		if v, ok := r.LogP[EstimatorCosmoRS]; ok {
			row[2] = v
		}
		if v, ok := r.LogP[EstimatorSMD]; ok {
			row[3] = v
		}
		rows = append(rows, row)
	}
	return rows
}

// LiquidTable holds liquid free energy results as a table, with one row per
// job and temperature.
type LiquidTable []LiquidResult

func (t LiquidTable) Sheet() string { return "Liquid" }

func (t LiquidTable) Header() []string {
	return []string{"Job", "Name", "T (K)", "Mass (amu)", "V Bader (Bohr^3)", "V IDSCRF (Bohr^3)", "V free (A^3)",
		"G gas (Eh)", "TS trans gas (Eh)", "TS rot gas (Eh)", "TS trans liquid (Eh)", "G liquid (Eh)", "Error"}
}

func (t LiquidTable) Rows() [][]any {
	var rows [][]any
	for _, r := range t {
		if r.Err != nil {
			rows = append(rows, []any{r.Job, r.Name, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, errString(r.Err)})
			continue
		}
		for i, T := range r.Temperatures {
			rows = append(rows, []any{r.Job, r.Name, T, r.Mass, r.VMol, r.VCav, r.VFree,
				r.GGas[i], r.STGas[i], r.SRGas[i], r.STLiquid[i], r.GLiquid[i], ""})
		}
	}
	return rows
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func cellName(col, row int) string {
	name, _ := excelize.ColumnNumberToName(col + 1)
	return name + strconv.Itoa(row)
}

// WriteXLSX writes t as a spreadsheet to w.
func WriteXLSX(w io.Writer, t Table) error {
	errid := "WriteXLSX"
	f := excelize.NewFile()
	defer f.Close()
	sheet := t.Sheet()
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")
	for col, h := range t.Header() {
		if err := f.SetCellValue(sheet, cellName(col, 1), h); err != nil {
			return fmt.Errorf("%s: %w", errid, err)
		}
	}
	for i, row := range t.Rows() {
		for col, v := range row {
			if v == nil {
				continue
			}
			if err := f.SetCellValue(sheet, cellName(col, i+2), v); err != nil {
				return fmt.Errorf("%s: %w", errid, err)
			}
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}
