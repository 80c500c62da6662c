/*
 * thermo.go, part of orcaprop.
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

package thermo

import (
	"errors"
	"fmt"
	"math"

	"github.com/rmera/orcaprop"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrDomain   = errors.New("value out of the domain of the formula")
	ErrMismatch = errors.New("series of different lengths")
)

func invalid(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// VFree returns the free volume, in A^3, of a molecule with molecular volume vmol
// and cavity volume vcav, both in Bohr^3. The cavity can't be smaller than the molecule.
func VFree(vmol, vcav float64) (float64, error) {
	errid := "VFree"
	if invalid(vmol) || invalid(vcav) || vmol < 0 || vcav < 0 {
		return 0, fmt.Errorf("%s: %w: volumes must be non-negative numbers, got vmol=%g vcav=%g", errid, ErrDomain, vmol, vcav)
	}
	if vcav < vmol {
		return 0, fmt.Errorf("%s: %w: cavity volume %g smaller than molecular volume %g", errid, ErrDomain, vcav, vmol)
	}
	return math.Pow((math.Pow(vcav, 1/3.)-math.Pow(vmol, 1/3.))*orcaprop.Bohr2A, 3), nil
}

// Lambda returns the thermal de Broglie wavelength, in m, for a molecule of
// mass m (AMU) at temperature T (K).
func Lambda(T, m float64) float64 {
	return orcaprop.HPlanck / math.Sqrt(2*math.Pi*m*orcaprop.AMU*orcaprop.KBoltzmann*T)
}

// STLiquid returns the translational entropy term, T*S, in Hartree, of a molecule of
// mass m (AMU) with a free volume vfree (A^3) in the liquid, at temperature T (K).
func STLiquid(vfree, T, m float64) (float64, error) {
	if invalid(vfree) || invalid(T) || invalid(m) || vfree <= 0 || T <= 0 || m <= 0 {
		return 0, fmt.Errorf("STLiquid: %w: free volume, temperature and mass must be positive, got %g, %g, %g", ErrDomain, vfree, T, m)
	}
	l := Lambda(T, m)
	return T * orcaprop.RGas * (2.5 + math.Log(vfree/math.Pow(l*orcaprop.M2Angs, 3))) / orcaprop.KJ2J / orcaprop.H2KJ, nil
}

// GLiquid returns the Gibbs free energy in the liquid from the one in the gas phase and
// the translational entropy terms in gas and liquid. All in Hartree.
func GLiquid(ggas, stgas, stliq float64) float64 {
	return ggas + stgas - stliq
}

// STLiquidSeries is STLiquid for several temperatures.
func STLiquidSeries(vfree float64, temps []float64, m float64) ([]float64, error) {
	ret := make([]float64, len(temps))
	for i, T := range temps {
		st, err := STLiquid(vfree, T, m)
		if err != nil {
			return nil, fmt.Errorf("STLiquidSeries: temperature %d: %w", i, err)
		}
		ret[i] = st
	}
	return ret, nil
}

// GLiquidSeries is GLiquid for several temperatures. All slices must have the same length.
func GLiquidSeries(ggas, stgas, stliq []float64) ([]float64, error) {
	if len(ggas) != len(stgas) || len(ggas) != len(stliq) {
		return nil, fmt.Errorf("GLiquidSeries: %w: %d gas free energies, %d gas entropy terms, %d liquid entropy terms",
			ErrMismatch, len(ggas), len(stgas), len(stliq))
	}
	ret := make([]float64, len(ggas))
	floats.AddTo(ret, ggas, stgas)
	floats.Sub(ret, stliq)
	return ret, nil
}

// LogP returns the octanol/water partition coefficient, log10(P), from the free energies
// (Hartree) in octanol and in water, at temperature T (K).
func LogP(goct, gwat, T float64) (float64, error) {
	if invalid(T) || T <= 0 {
		return 0, fmt.Errorf("LogP: %w: temperature must be positive, got %g", ErrDomain, T)
	}
	return -(goct - gwat) * orcaprop.H2KJ * orcaprop.KJ2J / (orcaprop.RGas * T * math.Log(10)), nil
}
