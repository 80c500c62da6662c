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

//Package solv runs the ORCA workflows that give solvation and liquid-phase properties:
//COSMO-RS free energies of solvation, water/octanol partition coefficients (logP) and
//Gibbs free energies in the liquid, from the free-volume model.
//
//Jobs are processed one after the other. For each job the inputs for every stage are
//built, ORCA is run, and the needed values are read from the outputs and combined.
//If anything goes wrong the raw outputs of all stages of the job are written to
//error.log, the failure is recorded in the job result, and the next job is processed.
package solv
