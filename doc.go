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

/*Package orcaprop is the main package of the orcaprop library and tools. It provides the
geometry type used to feed ORCA inputs, facilities for reading and writing XYZ files and
the physical constants used by the thermodynamic models.

	**orcaprop Capabilities**

    Reads/writes XYZ files. The coordinate lines are kept as text and passed
	verbatim to ORCA, so whatever ORCA accepts in a "* xyz" block is accepted here.

    Generates input for, runs and recovers results from ORCA (which must be obtained
	independently from its distributors), see the qm package.

    Computes free volumes, liquid-phase translational entropies, liquid Gibbs free
	energies and logP from quantities extracted from ORCA outputs, see the thermo package.

    Runs complete COSMO-RS, logP and liquid free energy workflows for lists of
	molecules, see the solv package.

    Converts ORCA optimization and relaxed scan outputs to XYZ trajectories, see the
	traj package.

The orcaprop command (cmd/orcaprop) exposes all the workflows from the command line.*/
package orcaprop
