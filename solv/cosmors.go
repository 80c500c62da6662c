/*
 * cosmors.go, part of orcaprop.
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
	"context"
	"fmt"
	"time"

	"github.com/rmera/orcaprop/qm"
)

// CosmoRSOptions are the settings for the COSMO-RS workflow.
type CosmoRSOptions struct {
	Method      string `validate:"required_unless=NoVacuum true"` //method for the vacuum calculation
	Options     string //extra keywords for the vacuum calculation
	Solvent     string `validate:"required_without=SolventFile"`
	SolventFile string //solvent geometry, used instead of Solvent if given
	Charge      int
	Multi       int  `validate:"gte=1"`
	NoVacuum    bool //skip the vacuum calculation. A NOITER job is still run.
}

// DefaultCosmoRSOptions returns the defaults: water as solvent, neutral singlet.
func DefaultCosmoRSOptions() *CosmoRSOptions {
	return &CosmoRSOptions{Solvent: qm.DefSolvent, Multi: 1}
}

// Validate checks that o can be used.
func (o *CosmoRSOptions) Validate() error {
	return validateStruct("CosmoRSOptions", o)
}

// CosmoRSResult is the result of one COSMO-RS job. All energies are in Hartree.
// GGas and EEl are only set if the vacuum calculation was run.
type CosmoRSResult struct {
	File    string
	Name    string
	Vacuum  bool
	GGas    float64
	EEl     float64
	GSolv   float64
	Elapsed time.Duration
	Err     error
}

// CosmoRS obtains the free energy of solvation with COSMO-RS for the molecule in each of the
// XYZ files given. Unless o.NoVacuum is set, the gas-phase free energy and the electronic
// energy are also computed. The error returned is not nil only if the options are invalid or
// ctx was cancelled. Failures of individual jobs are reported in their results.
func (R *Runner) CosmoRS(ctx context.Context, files []string, o *CosmoRSOptions) ([]CosmoRSResult, error) {
	errid := "Runner/CosmoRS"
	if o == nil {
		o = DefaultCosmoRSOptions()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	solventFile, err := absPath(o.SolventFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	R.start = time.Now()
	results := make([]CosmoRSResult, 0, len(files))
	for _, f := range files {
		if cancelled(ctx) {
			return results, fmt.Errorf("%s: %w", errid, ctx.Err())
		}
		fmt.Fprintf(R.out, "Job = %s\n", f)
		j := newJob(f)
		res := CosmoRSResult{File: f, Vacuum: !o.NoVacuum}
		res.Err = R.cosmoRSJob(ctx, j, o, solventFile, &res)
		res.Name = j.name
		if res.Err != nil {
			R.fail(j, res.Err)
		}
		res.Elapsed = R.finish(j)
		fmt.Fprintln(R.out)
		results = append(results, res)
	}
	if cancelled(ctx) {
		return results, fmt.Errorf("%s: %w", errid, ctx.Err())
	}
	return results, nil
}

func (R *Runner) cosmoRSJob(ctx context.Context, j *job, o *CosmoRSOptions, solventFile string, res *CosmoRSResult) error {
	geo, err := j.readGeometry()
	if err != nil {
		return err
	}
	vac := &qm.Calc{Preset: qm.SinglePoint, Method: o.Method, Options: o.Options, Charge: o.Charge, Multi: o.Multi}
	if o.NoVacuum {
		vac = &qm.Calc{Preset: qm.NoIter, Charge: o.Charge, Multi: o.Multi}
	}
	vout, err := R.stage(ctx, j, "vacuum", geo, vac)
	if err != nil {
		return err
	}
	if !o.NoVacuum {
		if res.GGas, err = vout.GasFreeEnergy(); err != nil {
			return err
		}
		if res.EEl, err = vout.Energy(); err != nil {
			return err
		}
		fmt.Fprintf(R.out, "Free energy in gas     :  %f  Hartree\n", res.GGas)
		fmt.Fprintf(R.out, "Electronic energy      :  %f  Hartree\n", res.EEl)
	}
	crs := &qm.Calc{Preset: qm.CosmoRS, Solvent: o.Solvent, SolventFile: solventFile, Charge: o.Charge, Multi: o.Multi}
	cout, err := R.stage(ctx, j, "cosmo-rs", geo, crs)
	if err != nil {
		return err
	}
	if res.GSolv, err = qm.GSolv.Last(cout); err != nil {
		return err
	}
	fmt.Fprintf(R.out, "Free energy solvation  :  %f  Hartree\n", res.GSolv)
	return nil
}
