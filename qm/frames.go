/*
 * frames.go, part of orcaprop.
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
	"github.com/rmera/orcaprop/traj"
)

// OptFrames returns one frame per geometry printed in an optimization output, each
// with the single point energy printed at the same position. Extra geometries or
// energies, without a partner, are ignored.
func OptFrames(out Output) ([]traj.Frame, error) {
	coords := Coordinates.AllText(out)
	energies := EEl.AllText(out)
	n := min(len(coords), len(energies))
	if n == 0 {
		return nil, newError(ErrNotFound, "", "no geometries with energies in output", nil, "OptFrames")
	}
	frames := make([]traj.Frame, n)
	for i := range frames {
		frames[i] = traj.NewFrame(coords[i], energies[i])
	}
	return frames, nil
}

// ScanFrames returns one frame per converged point of a relaxed scan: the first
// geometry and energy after each "FINAL ENERGY EVALUATION AT THE STATIONARY POINT" header.
func ScanFrames(out Output) ([]traj.Frame, error) {
	errid := "ScanFrames"
	steps := StationaryEval.AllText(out)
	if len(steps) == 0 {
		return nil, newError(ErrNotFound, "", StationaryEval.Name, nil, errid)
	}
	frames := make([]traj.Frame, 0, len(steps))
	for _, s := range steps {
		coords, err := Coordinates.FirstText(Output(s))
		if err != nil {
			err.(*Error).Decorate(errid)
			return nil, err
		}
		energy, err := EEl.FirstText(Output(s))
		if err != nil {
			err.(*Error).Decorate(errid)
			return nil, err
		}
		frames = append(frames, traj.NewFrame(coords, energy))
	}
	return frames, nil
}
