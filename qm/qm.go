/*
 * qm.go, part of orcaprop.
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

package qm

import (
	"context"
	"fmt"

	"github.com/rmera/orcaprop"
)

// Handle allows to set QM calculations. Only ORCA is supported for now, but
// the workflows are written against this interface.
type Handle interface {

	//Sets the name for the job, used for input
	//and output files. The extentions will depend on the program.
	SetName(name string)

	//BuildInput builds an input for the QM program based in the geometry
	//and Q. It has no side effects, the input is returned as text.
	BuildInput(geo orcaprop.Geometrer, Q *Calc) (string, error)

	//Run runs the QM program for the given input, waits for it to finish
	//and returns the whole output.
	Run(ctx context.Context, input string) (Output, error)
}

// Preset selects the kind of ORCA job that BuildInput produces.
type Preset int

const (
	SinglePoint     Preset = iota //vacuum single point (with frequencies, by default)
	NoIter                        //no SCF iterations, used when the vacuum step is skipped
	Opt                           //gas-phase geometry optimization
	CosmoRS                       //COSMO-RS solvation single point
	SMDOpt                        //optimization in SMD implicit solvent
	Thermochem                    //thermochemistry from a previously computed Hessian
	CavityVolume                  //cavity volume probe (IDSCRF radii)
	MolecularVolume               //molecular volume probe (Bader radii)
)

var presetNames = map[Preset]string{
	SinglePoint:     "SinglePoint",
	NoIter:          "NoIter",
	Opt:             "Opt",
	CosmoRS:         "CosmoRS",
	SMDOpt:          "SMDOpt",
	Thermochem:      "Thermochem",
	CavityVolume:    "CavityVolume",
	MolecularVolume: "MolecularVolume",
}

func (p Preset) String() string {
	if n, ok := presetNames[p]; ok {
		return n
	}
	return fmt.Sprintf("Preset(%d)", int(p))
}

// Calc contains the settings for one ORCA job.
type Calc struct {
	Preset       Preset
	Method       string //The "!" line. For presets that need it, it's the programmers responsibility to give something ORCA understands.
	Options      string //extra keywords, printed in a second "!" line.
	Solvent      string
	SolventFile  string //COSMO-RS solvent from a file. The extension is removed, as ORCA expects.
	Charge       int
	Multi        int
	HessFile     string    //Hessian for Thermochem jobs.
	Temperatures []float64 //Thermochem temperatures, in K
}

// SetDefaults sets the multiplicity to 1 and, for the presets that use them,
// the default method, options and solvent. Fields already set are not changed.
func (Q *Calc) SetDefaults() {
	if Q.Multi == 0 {
		Q.Multi = 1
	}
	switch Q.Preset {
	case SinglePoint:
		if Q.Options == "" {
			Q.Options = DefVacuumOptions
		}
	case SMDOpt:
		if Q.Method == "" {
			Q.Method = DefSMDMethod
		}
		if Q.Options == "" {
			Q.Options = DefSMDOptions
		}
		if Q.Solvent == "" {
			Q.Solvent = DefSolvent
		}
	case CosmoRS:
		if Q.Solvent == "" && Q.SolventFile == "" {
			Q.Solvent = DefSolvent
		}
	case Thermochem, CavityVolume, MolecularVolume:
		if Q.Solvent == "" {
			Q.Solvent = DefSolvent
		}
		if Q.Preset == Thermochem && len(Q.Temperatures) == 0 {
			Q.Temperatures = []float64{orcaprop.DefLiqTmp}
		}
	}
}

//Note that the default methods vary with each program, and even
//for a given program they are NOT considered part of the API, so they can always change.
const (
	DefVacuumOptions = "freq KDIIS DAMP SOSCF LSHIFT rijcosx"
	DefSMDMethod     = "B3LYP D4 rijcosx def2-SVPD"
	DefSMDOptions    = "KDIIS DAMP SOSCF LSHIFT"
	DefSolvent       = "water"
)

// RunConfig is the configuration for running ORCA. Nothing is taken from global state.
type RunConfig struct {
	Command    string //ORCA executable. ORCA wants the full path for parallel runs.
	ScratchDir string //each job gets its own directory under this one.
	Nice       int    //OS scheduling priority increment. 0 runs ORCA directly, without nice.
	NProcs     int    //the "%pal nprocs" value.
}
