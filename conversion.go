/*
 * conversion.go, part of orcaprop.
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

package orcaprop

//This provides conversion factors and other physical constants.
//Some of them are built at run time from a mantissa and a power of ten, that is
//the way the values are given in the literature we follow, and it keeps the
//arithmetic identical to the one used to parametrize the free-volume model.

//Conversions
const (
	Bohr2A    = 0.52917721    //Bohr to Angstrom
	A2Bohr    = 1 / Bohr2A    //Angstrom to Bohr
	H2KJ      = 2625.49953026 //Hartree to kJ/mol
	KJ2H      = 1 / H2KJ
	H2Kcal    = 627.509 //Hartree to kcal/mol
	M2Angs    = 1e10    //meters to Angstrom
	KJ2J      = 1000.0
	RGas      = 8.314  //J/(mol K)
	StdTemp   = 298.15 //K
	DefLiqTmp = 298.0  //K, default temperature for liquid-phase free energies
)

//SI constants
var (
	KBoltzmann = 1.380649 * pow10(-23)   //J/K
	HPlanck    = 6.62607015 * pow10(-34) //J s
	AMU        = 1.66053873 * pow10(-27) //kg
)
