/*
 * doc.go, part of orcaprop.
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

//Package thermo contains the closed formulas used to turn values read from ORCA
//outputs into derived quantities: the free volume of a molecule in a liquid, the
//translational entropy term in the liquid, the Gibbs free energy in the liquid and
//the water/octanol partition coefficient.
//
//Energies are in Hartree, volumes read from ORCA in cubic Bohr, free volumes in cubic
//Angstrom, masses in AMU and temperatures in Kelvin. The order of the arithmetic follows
//the one used to parametrize the free-volume model, so results can be compared digit by
//digit with earlier calculations.
package thermo
