/*
 * xyz.go, part of orcaprop.
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

package traj

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Frame is one structure of a trajectory. Coords are the coordinate lines, passed
// through unchanged, and Energy is the text of the energy, without surrounding spaces.
type Frame struct {
	Coords []string
	Energy string
}

// Len returns the number of atoms in the frame.
func (F Frame) Len() int {
	return len(F.Coords)
}

// String returns the frame in XYZ format, without the final newline.
func (F Frame) String() string {
	return fmt.Sprintf(" %d\n Energy = %s\n%s", len(F.Coords), F.Energy, strings.Join(F.Coords, "\n"))
}

// NewFrame builds a frame from a block of coordinate lines, as read from an output.
func NewFrame(block, energy string) Frame {
	return Frame{Coords: strings.Split(block, "\n"), Energy: strings.Trim(energy, " ")}
}

// Writer writes frames to a file, compressing them depending on the file extension.
type Writer struct {
	f         *os.File
	h         io.WriteCloser //the compressor, or a no-op closer over the buffer
	buf       *bufio.Writer
	filename  string
	writeable bool
	frames    int
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// NewWriter creates the file name and returns a Writer for it.
func NewWriter(name string) (*Writer, error) {
	W := new(Writer)
	W.filename = name
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.buf = bufio.NewWriter(W.f)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst":
		W.h, err = zstd.NewWriter(W.buf, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case ".gz":
		W.h = gzip.NewWriter(W.buf)
	default:
		W.h = nopCloser{W.buf}
	}
	if err != nil {
		W.f.Close()
		return nil, Error{"Can't set compression: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.writeable = true
	return W, nil
}

// WNext writes the next frame.
func (W *Writer) WNext(F Frame) error {
	if W == nil || !W.writeable {
		return Error{TrajUnIniWrite, "", []string{"WNext"}, true}
	}
	if len(F.Coords) == 0 {
		return Error{NilCoordinates, W.filename, []string{"WNext"}, true}
	}
	if _, err := io.WriteString(W.h, F.String()+"\n"); err != nil {
		return Error{WriteError + ": " + err.Error(), W.filename, []string{"WNext"}, true}
	}
	W.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (W *Writer) Frames() int {
	return W.frames
}

// Close flushes all data and closes the file. The Writer can't be used after this.
func (W *Writer) Close() error {
	if W == nil || !W.writeable {
		return nil
	}
	W.writeable = false
	err := W.h.Close()
	if err2 := W.buf.Flush(); err == nil {
		err = err2
	}
	if err2 := W.f.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return Error{WriteError + ": " + err.Error(), W.filename, []string{"Close"}, true}
	}
	return nil
}

// WriteFrames writes all the frames to the file name.
func WriteFrames(name string, frames []Frame) error {
	W, err := NewWriter(name)
	if err != nil {
		return err
	}
	for _, F := range frames {
		if err := W.WNext(F); err != nil {
			W.Close()
			return errDecorate(err, "WriteFrames")
		}
	}
	return W.Close()
}

// Error is the error type for the traj package.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("trajectory file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file associated to the error.
func (err Error) FileName() string { return err.filename }

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = append(e.deco, caller)
		return e
	}
	return err
}

const (
	TrajUnIniWrite = "Traj object uninitialized to write"
	UnableToOpen   = "Unable to open file"
	WriteError     = "Error writing frame"
	NilCoordinates = "Given nil coordinates"
)
