/*
 * solv.go, part of orcaprop.
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

package solv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/klauspost/compress/zstd"
	"github.com/rmera/orcaprop"
	"github.com/rmera/orcaprop/qm"
	"go.uber.org/zap"
)

const (
	ErrorLog  = "error.log"
	separator = "\n-----------------------------------------------\n"
)

// ErrInvalidOptions is returned when the options for a workflow make no sense.
var ErrInvalidOptions = errors.New("invalid options")

var validate = validator.New()

// validateStruct checks the validate tags of o, wrapping the problems in ErrInvalidOptions.
func validateStruct(errid string, o any) error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%s: %w: %w", errid, ErrInvalidOptions, err)
	}
	return nil
}

// Runner runs the workflows with a QM handle, writing progress and results to out.
// Files (error log, results, optimized geometries) go to the working directory
// set with SetDir, the current directory by default.
type Runner struct {
	handle      qm.Handle
	out         io.Writer
	log         *zap.Logger
	dir         string
	keepOutputs bool
	start       time.Time
}

// NewRunner returns a runner that uses h for the calculations. A nil logger discards all messages.
func NewRunner(h qm.Handle, out io.Writer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}
	return &Runner{handle: h, out: out, log: logger, dir: "."}
}

// SetDir sets the directory where error.log and results files are written.
func (R *Runner) SetDir(dir string) {
	R.dir = dir
}

// KeepOutputs sets whether the raw ORCA outputs of each job are kept, in a zstd-compressed
// file named after the job, with the extension .outputs.zst.
func (R *Runner) KeepOutputs(keep bool) {
	R.keepOutputs = keep
}

// job holds the outputs of the stages of one job, in the order they ran.
type job struct {
	file    string
	name    string
	stages  []string
	outputs []qm.Output
	start   time.Time
}

func newJob(file string) *job {
	return &job{file: file, name: filepath.Base(file), start: time.Now()}
}

// readGeometry reads the job's geometry, and takes the job name from its label.
func (j *job) readGeometry() (*orcaprop.Geometry, error) {
	geo, err := orcaprop.XYZFileRead(j.file)
	if err != nil {
		return nil, err
	}
	j.name = geo.Label()
	return geo, nil
}

// stage builds the input for Q and geo, runs it, and keeps the output.
func (R *Runner) stage(ctx context.Context, j *job, name string, geo orcaprop.Geometrer, Q *qm.Calc) (qm.Output, error) {
	deck, err := R.handle.BuildInput(geo, Q)
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	R.log.Info("running stage", zap.String("job", j.name), zap.String("stage", name), zap.Stringer("preset", Q.Preset))
	t := time.Now()
	out, err := R.handle.Run(ctx, deck)
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	R.log.Debug("stage done", zap.String("job", j.name), zap.String("stage", name), zap.Duration("elapsed", time.Since(t)),
		zap.Bool("normal termination", out.NormalTermination()))
	j.stages = append(j.stages, name)
	j.outputs = append(j.outputs, out)
	return out, nil
}

// fail records the failure of j: all its outputs go to error.log.
func (R *Runner) fail(j *job, err error) error {
	R.log.Error("job failed", zap.String("job", j.name), zap.String("file", j.file), zap.Error(err))
	var b strings.Builder
	for _, o := range j.outputs {
		b.WriteString(string(o))
		b.WriteString(separator)
	}
	name := filepath.Join(R.dir, ErrorLog)
	if werr := os.WriteFile(name, []byte(b.String()), 0o644); werr != nil {
		R.log.Error("can't write error log", zap.String("file", name), zap.Error(werr))
	}
	return err
}

// finish archives the outputs, if requested, and prints the timings.
func (R *Runner) finish(j *job) time.Duration {
	if R.keepOutputs && len(j.outputs) > 0 {
		name := filepath.Join(R.dir, orcaprop.StripExt(filepath.Base(j.file))+".outputs.zst")
		if err := writeArchive(name, j.stages, j.outputs); err != nil {
			R.log.Error("can't archive outputs", zap.String("job", j.name), zap.Error(err))
		}
	}
	elapsed := time.Since(j.start)
	fmt.Fprintf(R.out, "Job execution time  :  %.3f  sec.\n", elapsed.Seconds())
	fmt.Fprintf(R.out, "Total execution time:  %.3f  sec.\n", time.Since(R.start).Seconds())
	return elapsed
}

// writeArchive writes the outputs, each one after a line with the stage name,
// to a zstd-compressed file.
func writeArchive(name string, stages []string, outputs []qm.Output) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	for i, o := range outputs {
		if _, err := fmt.Fprintf(enc, "### stage %s\n%s%s", stages[i], o, separator); err != nil {
			enc.Close()
			return err
		}
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Close()
}

// absPath returns name as an absolute path. ORCA runs in a scratch directory, so
// files it reads must be given with their full path.
func absPath(name string) (string, error) {
	if name == "" || filepath.IsAbs(name) {
		return name, nil
	}
	return filepath.Abs(name)
}

// cancelled reports whether the loop over jobs should stop.
func cancelled(ctx context.Context) bool {
	return ctx.Err() != nil
}
