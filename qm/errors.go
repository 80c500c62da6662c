/*
 * errors.go, part of orcaprop.
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
	"errors"
	"fmt"
	"strings"
)

//The reasons an ORCA job can fail, from our point of view. Use errors.Is to check them.
var (
	ErrNotFound   = errors.New("expected value not found in output")
	ErrUnparsable = errors.New("value found in output is not a number")
	ErrNotRunning = errors.New("program didn't run")
	ErrCantInput  = errors.New("can't build input")
	ErrFiles      = errors.New("problem handling job files")
)

const orca = "ORCA"

// Error is the error type for the qm package. It implements orcaprop.Error and
// orcaprop.CriticalError
type Error struct {
	cause      error //one of the Err* values above
	program    string
	inputname  string
	additional string
	deco       []string
	critical   bool
	wrapped    error //what caused the problem, if it was another error.
}

func newError(cause error, inputname, additional string, wrapped error, deco ...string) *Error {
	return &Error{cause: cause, program: orca, inputname: inputname, additional: additional, wrapped: wrapped, deco: deco, critical: true}
}

func (err *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", err.program)
	if err.inputname != "" {
		fmt.Fprintf(&b, " (%s)", err.inputname)
	}
	fmt.Fprintf(&b, ": %v", err.cause)
	if err.additional != "" {
		fmt.Fprintf(&b, ": %s", err.additional)
	}
	if err.wrapped != nil {
		fmt.Fprintf(&b, ": %v", err.wrapped)
	}
	return b.String()
}

// Decorate adds new information to the error.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Critical returns true if the job that produced the error can't go on.
func (err *Error) Critical() bool { return err.critical }

// InputName returns the name of the job that produced the error.
func (err *Error) InputName() string { return err.inputname }

// Unwrap returns both the reason for the error and, if any, the underlying error.
func (err *Error) Unwrap() []error {
	if err.wrapped == nil {
		return []error{err.cause}
	}
	return []error{err.cause, err.wrapped}
}
