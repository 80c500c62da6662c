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

//Package qm implements communication with the ORCA QM program.
//It builds ORCA inputs from a geometry and a Calc, runs ORCA in a
//scratch directory owned by each invocation, and recovers numbers
//from the output text. It also handles the bookkeeping ORCA "Compound"
//jobs need, and the extraction of trajectories from optimizations and
//relaxed scans.

package qm
