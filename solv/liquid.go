/*
 * liquid.go, part of orcaprop.
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
	"strings"
	"time"

	"github.com/rmera/orcaprop"
	"github.com/rmera/orcaprop/qm"
	"github.com/rmera/orcaprop/thermo"
)

// LiquidOptions are the settings for the liquid free energy workflow.
type LiquidOptions struct {
	Charge       int
	Multi        int       `validate:"gte=1"`
	Temperatures []float64 `validate:"min=1,dive,gt=0"`
}

// DefaultLiquidOptions returns the defaults: neutral singlet at 298 K.
func DefaultLiquidOptions() *LiquidOptions {
	return &LiquidOptions{Multi: 1, Temperatures: []float64{orcaprop.DefLiqTmp}}
}

// Validate checks that o can be used.
func (o *LiquidOptions) Validate() error {
	return validateStruct("LiquidOptions", o)
}

// LiquidResult is the result of one liquid free energy job. Volumes are in Bohr^3, except
// for VFree, in A^3, mass in AMU and energies in Hartree. The slices have one element per
// temperature.
type LiquidResult struct {
	Job          string
	Name         string
	Mass         float64
	VMol         float64 //molecular volume (Bader radii)
	VCav         float64 //cavity volume (IDSCRF radii)
	VFree        float64
	Temperatures []float64
	GGas         []float64
	STGas        []float64
	SRGas        []float64
	STLiquid     []float64
	GLiquid      []float64
	Elapsed      time.Duration
	Err          error
}

// LiquidFreeEnergy obtains the Gibbs free energy in the liquid phase, with the free-volume
// model, for each job. A job is a path without extension: <job>.xyz must contain the geometry
// and <job>.hess a Hessian computed by ORCA for it.
func (R *Runner) LiquidFreeEnergy(ctx context.Context, jobs []string, o *LiquidOptions) ([]LiquidResult, error) {
	errid := "Runner/LiquidFreeEnergy"
	if o == nil {
		o = DefaultLiquidOptions()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	R.start = time.Now()
	results := make([]LiquidResult, 0, len(jobs))
	for _, jname := range jobs {
		if cancelled(ctx) {
			return results, fmt.Errorf("%s: %w", errid, ctx.Err())
		}
		fmt.Fprintf(R.out, "Job = %s\n", jname)
		j := newJob(jname + ".xyz")
		res := LiquidResult{Job: jname, Temperatures: o.Temperatures}
		res.Err = R.liquidJob(ctx, j, jname+".hess", o, &res)
		res.Name = j.name
		if res.Err != nil {
			R.fail(j, res.Err)
		} else {
			R.printLiquid(&res)
		}
		res.Elapsed = R.finish(j)
		results = append(results, res)
	}
	if cancelled(ctx) {
		return results, fmt.Errorf("%s: %w", errid, ctx.Err())
	}
	return results, nil
}

func (R *Runner) liquidJob(ctx context.Context, j *job, hess string, o *LiquidOptions, res *LiquidResult) error {
	geo, err := j.readGeometry()
	if err != nil {
		return err
	}
	hess, err = absPath(hess)
	if err != nil {
		return err
	}
	tout, err := R.stage(ctx, j, "thermochem", geo, &qm.Calc{Preset: qm.Thermochem, HessFile: hess, Temperatures: o.Temperatures, Charge: o.Charge, Multi: o.Multi})
	if err != nil {
		return err
	}
	cout, err := R.stage(ctx, j, "volume-idscrf", geo, &qm.Calc{Preset: qm.CavityVolume, Charge: o.Charge, Multi: o.Multi})
	if err != nil {
		return err
	}
	mout, err := R.stage(ctx, j, "volume-bader", geo, &qm.Calc{Preset: qm.MolecularVolume, Charge: o.Charge, Multi: o.Multi})
	if err != nil {
		return err
	}
	if res.VCav, err = qm.CavityVol.First(cout); err != nil {
		return err
	}
	if res.VMol, err = qm.CavityVol.First(mout); err != nil {
		return err
	}
	if res.VFree, err = thermo.VFree(res.VMol, res.VCav); err != nil {
		return err
	}
	if res.Mass, err = qm.TotalMass.First(tout); err != nil {
		return err
	}
	if res.GGas, err = qm.GGas.All(tout); err != nil {
		return err
	}
	if res.STGas, err = qm.TransEntropy.All(tout); err != nil {
		return err
	}
	if res.SRGas, err = qm.RotEntropy.All(tout); err != nil {
		return err
	}
	n := len(o.Temperatures)
	if len(res.GGas) != n || len(res.STGas) != n || len(res.SRGas) != n {
		return fmt.Errorf("%w: %d temperatures, but %d free energies, %d translational and %d rotational entropies in output",
			thermo.ErrMismatch, n, len(res.GGas), len(res.STGas), len(res.SRGas))
	}
	if res.STLiquid, err = thermo.STLiquidSeries(res.VFree, o.Temperatures, res.Mass); err != nil {
		return err
	}
	res.GLiquid, err = thermo.GLiquidSeries(res.GGas, res.STGas, res.STLiquid)
	return err
}

func joinFloats(f []float64, sep string) string {
	s := make([]string, len(f))
	for i, v := range f {
		s[i] = orcaprop.FloatString(v)
	}
	return strings.Join(s, sep)
}

func fixedFloats(f []float64) string {
	var b strings.Builder
	for _, v := range f {
		fmt.Fprintf(&b, "%.8f\t", v)
	}
	return b.String()
}

func (R *Runner) printLiquid(res *LiquidResult) {
	line := func(label, value string) {
		fmt.Fprintf(R.out, "%-45s  = %s\n", label, value)
	}
	line("Molar mass, amu", orcaprop.FloatString(res.Mass))
	line("Volume Bader, Bohr^3", orcaprop.FloatString(res.VMol))
	line("Volume IDSCRF, Bohr^3", orcaprop.FloatString(res.VCav))
	line("Free Volume, Angstrom^3", fmt.Sprintf("%.8f", res.VFree))
	line("Temperature, Kelvin", joinFloats(res.Temperatures, "\t\t"))
	line("Total Gibbs in gas, Hartree", joinFloats(res.GGas, "\t"))
	line("Translational entropy in gas, Hartree", joinFloats(res.STGas, "\t"))
	line("Rotational entropy in gas, Hartree", joinFloats(res.SRGas, "\t"))
	line("Translational entropy in liquid, Hartree", fixedFloats(res.STLiquid))
	line("Total Gibbs energy in liquid, Hartree", fixedFloats(res.GLiquid))
}
