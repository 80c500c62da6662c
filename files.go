/*
 * files.go, part of orcaprop.
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

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// ErrMalformedXYZ is wrapped by every error produced while parsing an XYZ file.
var ErrMalformedXYZ = errors.New("malformed XYZ data")

// Geometry is a molecule as read from an XYZ file. The coordinate lines
// are not interpreted, they are passed verbatim to the QM program.
type Geometry struct {
	NAtoms int
	Name   string
	Coords []string
}

// Len returns the number of atoms.
func (G *Geometry) Len() int { return G.NAtoms }

// Label returns the name of the molecule.
func (G *Geometry) Label() string { return G.Name }

// Block returns the coordinate lines joined by newlines, without a trailing newline.
func (G *Geometry) Block() string {
	return strings.Join(G.Coords, "\n")
}

// XYZ returns the geometry in XYZ format, without a trailing newline.
func (G *Geometry) XYZ() string {
	return strconv.Itoa(G.NAtoms) + "\n" + G.Name + "\n" + G.Block()
}

// WithCoords returns a copy of G with the coordinate block replaced by block,
// which must contain one line per atom.
func (G *Geometry) WithCoords(block string) (*Geometry, error) {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	if len(lines) != G.NAtoms {
		return nil, &XYZError{message: fmt.Sprintf("new coordinate block has %d lines, expected %d", len(lines), G.NAtoms), filename: G.Name, deco: []string{"WithCoords"}}
	}
	return &Geometry{NAtoms: G.NAtoms, Name: G.Name, Coords: lines}, nil
}

// XYZFileRead reads an XYZ file. If the comment line is blank, the name of the file is used
// as the name of the geometry.
func XYZFileRead(filename string) (*Geometry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &XYZError{message: "unable to read file", filename: filename, deco: []string{"XYZFileRead"}, cause: err}
	}
	g, err := XYZRead(bytes.NewReader(data), filename)
	if err != nil {
		errDecorate(err, "XYZFileRead")
		return nil, err
	}
	return g, nil
}

// XYZRead reads an XYZ geometry from r. The first line is the atom count N, the second
// a free-text label (fallback is used if it is blank) and the next N lines the coordinates.
// Anything after those lines is ignored.
func XYZRead(r io.Reader, fallback string) (*Geometry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &XYZError{message: "unable to read data", filename: fallback, deco: []string{"XYZRead"}, cause: err}
	}
	data := strings.Split(string(raw), "\n")
	natoms, err := strconv.Atoi(strings.TrimSpace(data[0]))
	if err != nil || natoms < 0 {
		return nil, &XYZError{message: fmt.Sprintf("bad atom count %q", data[0]), filename: fallback, deco: []string{"XYZRead"}}
	}
	if len(data) < 2 {
		return nil, &XYZError{message: "missing comment line", filename: fallback, deco: []string{"XYZRead"}}
	}
	name := strings.TrimLeftFunc(data[1], unicode.IsSpace)
	if name == "" {
		name = fallback
	}
	if len(data)-2 < natoms {
		return nil, &XYZError{message: fmt.Sprintf("expected %d coordinate lines, found %d", natoms, len(data)-2), filename: fallback, deco: []string{"XYZRead"}}
	}
	coords := make([]string, natoms)
	copy(coords, data[2:2+natoms])
	for i, c := range coords {
		if strings.TrimSpace(c) == "" {
			return nil, &XYZError{message: fmt.Sprintf("expected %d coordinate lines, line %d is blank", natoms, i+3), filename: fallback, deco: []string{"XYZRead"}}
		}
	}
	return &Geometry{NAtoms: natoms, Name: name, Coords: coords}, nil
}

// XYZFileWrite writes the geometry G to filename, in XYZ format.
func XYZFileWrite(filename string, G *Geometry) error {
	if err := os.WriteFile(filename, []byte(G.XYZ()), 0644); err != nil {
		return &XYZError{message: "unable to write file", filename: filename, deco: []string{"XYZFileWrite"}, cause: err}
	}
	return nil
}

// XYZError is the error type for XYZ reading and writing. It implements Error.
type XYZError struct {
	message  string
	filename string
	deco     []string
	cause    error
}

func (err *XYZError) Error() string {
	if err.cause != nil {
		return fmt.Sprintf("xyz file %s error: %s: %v", filepath.Base(err.filename), err.message, err.cause)
	}
	return fmt.Sprintf("xyz file %s error: %s", filepath.Base(err.filename), err.message)
}

// Decorate adds new information to the error.
func (err *XYZError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file the error is associated to.
func (err *XYZError) FileName() string { return err.filename }

// Unwrap allows errors.Is(err, ErrMalformedXYZ) for parse errors, and returns the
// underlying I/O error otherwise.
func (err *XYZError) Unwrap() error {
	if err.cause != nil {
		return err.cause
	}
	return ErrMalformedXYZ
}

// errDecorate decorates err with the caller's name if err implements Error.
func errDecorate(err error, caller string) {
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
}
