/*
 * output.go, part of orcaprop.
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
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pattern is a named regular expression with one capture group, which
// locates a value in an ORCA output.
type Pattern struct {
	Name string
	re   *regexp.Regexp
}

// NewPattern compiles expr, which must have exactly one capture group. It panics
// otherwise, as patterns are meant to be package-level values.
func NewPattern(name, expr string) *Pattern {
	re := regexp.MustCompile(expr)
	if re.NumSubexp() != 1 {
		panic(fmt.Sprintf("qm: pattern %s must have one capture group, has %d", name, re.NumSubexp()))
	}
	return &Pattern{Name: name, re: re}
}

// The values orcaprop reads from ORCA outputs.
var (
	GSolv          = NewPattern("free energy of solvation", `Free energy of solvation \(dGsolv\)  : \s*(.*?)\sEh`)
	GGas           = NewPattern("final Gibbs free energy", `Final Gibbs free energy\s*...\s*(.*?)Eh\n`)
	EEl            = NewPattern("final single point energy", `FINAL SINGLE POINT ENERGY\s*(.*?)\n`)
	CavityVol      = NewPattern("cavity volume", `Cavity Volume\s*...\s*(.*?)\n`)
	TotalMass      = NewPattern("total mass", `Total Mass\s*...\s*(.*?)AMU\n`)
	TransEntropy   = NewPattern("translational entropy", `Translational entropy\s*...\s*(.*?)Eh\s*\d*\.\d*\s*kcal/mol\n`)
	RotEntropy     = NewPattern("rotational entropy", `Rotational entropy\s*...\s*(.*?)Eh\s*\d*\.\d*\s*kcal/mol\n`)
	Coordinates    = NewPattern("cartesian coordinates", `(?s)CARTESIAN COORDINATES \(ANGSTROEM\)\n---------------------------------\n(.*?)\n\n`)
	StationaryEval = NewPattern("stationary point evaluation", `(?s)                 \*\*\* FINAL ENERGY EVALUATION AT THE STATIONARY POINT \*\*\*(.*?)\*\*\* OPTIMIZATION RUN DONE \*\*\*`)
)

// AllText returns the captured text of every match, in order.
func (P *Pattern) AllText(out Output) []string {
	m := P.re.FindAllStringSubmatch(string(out), -1)
	ret := make([]string, 0, len(m))
	for _, v := range m {
		ret = append(ret, v[1])
	}
	return ret
}

// FirstText returns the captured text of the first match.
func (P *Pattern) FirstText(out Output) (string, error) {
	m := P.re.FindStringSubmatch(string(out))
	if m == nil {
		return "", P.notFound()
	}
	return m[1], nil
}

// LastText returns the captured text of the last match.
func (P *Pattern) LastText(out Output) (string, error) {
	all := P.AllText(out)
	if len(all) == 0 {
		return "", P.notFound()
	}
	return all[len(all)-1], nil
}

// First returns the value of the first match.
func (P *Pattern) First(out Output) (float64, error) {
	s, err := P.FirstText(out)
	if err != nil {
		return 0, err
	}
	return P.parse(s)
}

// Last returns the value of the last match.
func (P *Pattern) Last(out Output) (float64, error) {
	s, err := P.LastText(out)
	if err != nil {
		return 0, err
	}
	return P.parse(s)
}

// All returns the values of all matches. It is an error if
// there are none, or if any of them is not a number.
func (P *Pattern) All(out Output) ([]float64, error) {
	all := P.AllText(out)
	if len(all) == 0 {
		return nil, P.notFound()
	}
	ret := make([]float64, len(all))
	for i, s := range all {
		f, err := P.parse(s)
		if err != nil {
			return nil, err
		}
		ret[i] = f
	}
	return ret, nil
}

func (P *Pattern) parse(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, newError(ErrUnparsable, "", fmt.Sprintf("%s: %q", P.Name, s), err)
	}
	return f, nil
}

func (P *Pattern) notFound() error {
	return newError(ErrNotFound, "", P.Name, nil)
}

// Output is the whole text produced by one ORCA run.
type Output string

// Energy returns the last single point energy, in Hartree.
func (o Output) Energy() (float64, error) {
	return EEl.Last(o)
}

// GasFreeEnergy returns the last Gibbs free energy, in Hartree.
func (o Output) GasFreeEnergy() (float64, error) {
	return GGas.Last(o)
}

// SolvationFreeEnergy returns the first free energy of solvation, in Hartree.
func (o Output) SolvationFreeEnergy() (float64, error) {
	return GSolv.First(o)
}

// OptimizedCoords returns the last coordinate block, without the header.
// The lines are given as ORCA prints them.
func (o Output) OptimizedCoords() (string, error) {
	return Coordinates.LastText(o)
}

// NormalTermination returns true if ORCA says it terminated normally.
func (o Output) NormalTermination() bool {
	return strings.Contains(string(o), "**ORCA TERMINATED NORMALLY**")
}
