/*
 * logp.go, part of orcaprop.
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
	"os"
	"path/filepath"
	"time"

	"github.com/rmera/orcaprop"
	"github.com/rmera/orcaprop/qm"
	"github.com/rmera/orcaprop/thermo"
)

// The solvation models that can give logP values.
const (
	ModelCosmoRS = "cosmors"
	ModelSMD     = "smd"
)

// The names of the logP estimators, as printed in the results.
const (
	EstimatorCosmoRS = "COSMO-RS"
	EstimatorSMD     = "SMD"
)

// DefLogPResults is the file where logP results are appended.
const DefLogPResults = "logP_output_data.txt"

// LogPOptions are the settings for the logP workflow.
type LogPOptions struct {
	Model       string `validate:"oneof=cosmors smd"`
	NoOpt       bool   //use the input geometry in both solvents, without optimizations.
	Charge      int
	Multi       int    `validate:"gte=1"`
	ResultsFile string `validate:"required"` //relative to the runner's directory
}

// DefaultLogPOptions returns the defaults: the COSMO-RS model, with SMD optimizations, for
// neutral singlets.
func DefaultLogPOptions() *LogPOptions {
	return &LogPOptions{Model: ModelCosmoRS, Multi: 1, ResultsFile: DefLogPResults}
}

// Validate checks that o can be used. The SMD model needs the optimizations, so
// asking for it without them is an error.
func (o *LogPOptions) Validate() error {
	errid := "LogPOptions"
	if err := validateStruct(errid, o); err != nil {
		return err
	}
	if o.Model == ModelSMD && o.NoOpt {
		return fmt.Errorf("%s: %w: the %s model needs the geometry optimizations", errid, ErrInvalidOptions, ModelSMD)
	}
	return nil
}

// LogPResult is the result of one logP job. A value is given for each estimator used.
type LogPResult struct {
	File    string
	Name    string
	LogP    map[string]float64 //by estimator
	Elapsed time.Duration
	Err     error
}

// LogP obtains the water/octanol partition coefficient for the molecules in the XYZ
// files given. Unless o.NoOpt is set, the geometry is first optimized with SMD in water and
// in octanol, and the optimized geometries are saved next to each input, as <job>.H2O.xyz and
// <job>.OCTANOL.xyz. The energies of those optimizations give the SMD estimate. With the
// COSMO-RS model, free energies of solvation in water and 1-octanol are then obtained
// for the corresponding geometries. Each estimate is appended to the results file.
func (R *Runner) LogP(ctx context.Context, files []string, o *LogPOptions) ([]LogPResult, error) {
	errid := "Runner/LogP"
	if o == nil {
		o = DefaultLogPOptions()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	R.start = time.Now()
	results := make([]LogPResult, 0, len(files))
	for _, f := range files {
		if cancelled(ctx) {
			return results, fmt.Errorf("%s: %w", errid, ctx.Err())
		}
		fmt.Fprintf(R.out, "Job = %s\n", f)
		j := newJob(f)
		res := LogPResult{File: f, LogP: make(map[string]float64, 2)}
		res.Err = R.logPJob(ctx, j, o, &res)
		res.Name = j.name
		if res.Err != nil {
			R.fail(j, res.Err)
		}
		res.Elapsed = R.finish(j)
		results = append(results, res)
	}
	if cancelled(ctx) {
		return results, fmt.Errorf("%s: %w", errid, ctx.Err())
	}
	return results, nil
}

func (R *Runner) logPJob(ctx context.Context, j *job, o *LogPOptions, res *LogPResult) error {
	geo, err := j.readGeometry()
	if err != nil {
		return err
	}
	wgeo, ogeo := geo, geo
	var estimates []string
	if !o.NoOpt {
		var ewat, eoct float64
		wgeo, ewat, err = R.smdOpt(ctx, j, geo, "water", ".H2O.xyz", o)
		if err != nil {
			return err
		}
		ogeo, eoct, err = R.smdOpt(ctx, j, geo, "octanol", ".OCTANOL.xyz", o)
		if err != nil {
			return err
		}
		if res.LogP[EstimatorSMD], err = thermo.LogP(eoct, ewat, orcaprop.StdTemp); err != nil {
			return err
		}
		estimates = append(estimates, EstimatorSMD)
	}
	if o.Model == ModelCosmoRS {
		gwat, err := R.cosmoRSGSolv(ctx, j, wgeo, "water", o)
		if err != nil {
			return err
		}
		goct, err := R.cosmoRSGSolv(ctx, j, ogeo, "1-octanol", o)
		if err != nil {
			return err
		}
		if res.LogP[EstimatorCosmoRS], err = thermo.LogP(goct, gwat, orcaprop.StdTemp); err != nil {
			return err
		}
		estimates = append([]string{EstimatorCosmoRS}, estimates...)
	}
	for _, e := range estimates {
		fmt.Fprintf(R.out, "%-20s  = %s\n", "LogP ("+e+")", orcaprop.FloatString(res.LogP[e]))
	}
	return R.appendResults(o.ResultsFile, j.name, estimates, res.LogP)
}

// smdOpt optimizes geo in solvent with SMD, saves the optimized geometry next to the
// job file, with the given suffix, and returns it, along with its final energy.
func (R *Runner) smdOpt(ctx context.Context, j *job, geo *orcaprop.Geometry, solvent, suffix string, o *LogPOptions) (*orcaprop.Geometry, float64, error) {
	out, err := R.stage(ctx, j, "smd-"+solvent, geo, &qm.Calc{Preset: qm.SMDOpt, Solvent: solvent, Charge: o.Charge, Multi: o.Multi})
	if err != nil {
		return nil, 0, err
	}
	coords, err := out.OptimizedCoords()
	if err != nil {
		return nil, 0, err
	}
	opt, err := geo.WithCoords(coords)
	if err != nil {
		return nil, 0, err
	}
	opt.Name = j.name
	if err := orcaprop.XYZFileWrite(orcaprop.StripExt(j.file)+suffix, opt); err != nil {
		return nil, 0, err
	}
	e, err := out.Energy()
	return opt, e, err
}

func (R *Runner) cosmoRSGSolv(ctx context.Context, j *job, geo *orcaprop.Geometry, solvent string, o *LogPOptions) (float64, error) {
	out, err := R.stage(ctx, j, "cosmo-rs-"+solvent, geo, &qm.Calc{Preset: qm.CosmoRS, Solvent: solvent, Charge: o.Charge, Multi: o.Multi})
	if err != nil {
		return 0, err
	}
	return out.SolvationFreeEnergy()
}

// appendResults adds one line per estimate to the results file.
func (R *Runner) appendResults(name, job string, estimates []string, values map[string]float64) error {
	f, err := os.OpenFile(filepath.Join(R.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("can't open results file: %w", err)
	}
	defer f.Close()
	for _, e := range estimates {
		if _, err := fmt.Fprintf(f, "For job %s LogP = %s (%s)\n", job, orcaprop.FloatString(values[e]), e); err != nil {
			return fmt.Errorf("can't write results: %w", err)
		}
	}
	return f.Close()
}
