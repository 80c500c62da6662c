/*
 * orca.go, part of orcaprop.
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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rmera/orcaprop"
	"go.uber.org/zap"
)

// OrcaHandle builds ORCA inputs and runs them. Each call to Run uses its own
// scratch directory, so a handle can be used from several goroutines as long as
// its settings are not changed meanwhile.
type OrcaHandle struct {
	command   string
	inputname string
	nCPU      int
	nice      int
	scratch   string
	log       *zap.Logger
}

// DefaultRunConfig returns the configuration used when nothing else is given:
// $ORCA_PATH/orca, the system temporary directory, nice 10 and one process.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Command:    DefaultCommand(),
		ScratchDir: os.TempDir(),
		Nice:       10,
		NProcs:     1,
	}
}

// DefaultCommand returns ${ORCA_PATH}/orca, or ./orca if ORCA_PATH is not defined.
func DefaultCommand() string {
	command := os.ExpandEnv("${ORCA_PATH}/orca")
	if command == "/orca" { //if ORCA_PATH was not defined
		command = "./orca"
	}
	return command
}

// NewOrcaHandle returns a handle configured by cfg. Empty fields in cfg
// take the values from DefaultRunConfig, except for Nice, where 0 means
// "don't use nice". A nil logger discards all messages.
func NewOrcaHandle(cfg RunConfig, logger *zap.Logger) *OrcaHandle {
	O := new(OrcaHandle)
	O.SetDefaults()
	if cfg.Command != "" {
		O.SetCommand(cfg.Command)
	}
	if cfg.ScratchDir != "" {
		O.scratch = cfg.ScratchDir
	}
	if cfg.NProcs != 0 {
		O.nCPU = cfg.NProcs
	}
	O.nice = cfg.Nice
	if logger != nil {
		O.log = logger
	}
	return O
}

//OrcaHandle methods

// SetDefaults sets the handle to the values of DefaultRunConfig, with the name
// "active_job".
func (O *OrcaHandle) SetDefaults() {
	def := DefaultRunConfig()
	O.command = def.Command
	O.scratch = def.ScratchDir
	O.nice = def.Nice
	O.nCPU = def.NProcs
	O.inputname = "active_job"
	O.log = zap.NewNop()
}

// SetnCPU sets the number of processes for the %pal block.
func (O *OrcaHandle) SetnCPU(cpu int) {
	O.nCPU = cpu
}

// SetName sets the name of the job, which defines the input and output file names.
func (O *OrcaHandle) SetName(name string) {
	O.inputname = name
}

// Name returns the job name.
func (O *OrcaHandle) Name() string {
	return O.inputname
}

// SetCommand sets the ORCA executable. ORCA runs in a scratch directory,
// so relative paths are made absolute here. Bare names are looked up in the PATH.
func (O *OrcaHandle) SetCommand(name string) {
	if strings.ContainsRune(name, os.PathSeparator) && !filepath.IsAbs(name) {
		if abs, err := filepath.Abs(name); err == nil {
			name = abs
		}
	}
	O.command = name
}

// Command returns the ORCA executable in use.
func (O *OrcaHandle) Command() string {
	return O.command
}

// SetScratch sets the directory under which the job directories are created.
func (O *OrcaHandle) SetScratch(dir string) {
	O.scratch = dir
}

// SetNice sets the scheduling priority increment. 0 runs ORCA without nice.
func (O *OrcaHandle) SetNice(n int) {
	O.nice = n
}

// BuildInput returns the ORCA input for the geometry geo and the settings in Q.
// Q is not modified; the defaults are applied to a copy. The output depends only on
// geo, Q and the number of processes set in the handle.
func (O *OrcaHandle) BuildInput(geo orcaprop.Geometrer, Q *Calc) (string, error) {
	errid := "OrcaHandle/BuildInput"
	if geo == nil || Q == nil {
		return "", newError(ErrCantInput, O.inputname, "no geometry or calculation given", nil, errid)
	}
	if geo.Len() < 1 {
		return "", newError(ErrCantInput, O.inputname, "geometry has no atoms", nil, errid)
	}
	C := *Q
	C.SetDefaults()
	if C.Multi < 1 {
		return "", newError(ErrCantInput, O.inputname, fmt.Sprintf("invalid multiplicity %d", C.Multi), nil, errid)
	}
	pal := ""
	if C.Preset != NoIter && C.Preset != CavityVolume && C.Preset != MolecularVolume {
		if O.nCPU < 1 {
			return "", newError(ErrCantInput, O.inputname, fmt.Sprintf("invalid number of processes %d", O.nCPU), nil, errid)
		}
		pal = fmt.Sprintf("%%pal nprocs %d end\n", O.nCPU)
	}
	missing := func(what string) (string, error) {
		return "", newError(ErrCantInput, O.inputname, fmt.Sprintf("%s preset needs a %s", C.Preset, what), nil, errid)
	}
	var b strings.Builder
	switch C.Preset {
	case SinglePoint:
		if C.Method == "" {
			return missing("method")
		}
		b.WriteString(pal)
		fmt.Fprintf(&b, " ! %s\n", C.Method)
		keywords(&b, C.Options)
		b.WriteString("\n")
		coordBlock(&b, geo, &C)
	case NoIter:
		b.WriteString("! NOITER\n")
		coordBlock(&b, geo, &C)
	case Opt, SMDOpt:
		if C.Method == "" {
			return missing("method")
		}
		b.WriteString(pal)
		fmt.Fprintf(&b, "! opt %s\n", C.Method)
		keywords(&b, C.Options)
		b.WriteString("\n")
		if C.Preset == SMDOpt {
			if C.Solvent == "" {
				return missing("solvent")
			}
			fmt.Fprintf(&b, "%%cpcm\n\tsmd true\n\tSMDsolvent \"%s\"\nend\n", C.Solvent)
		}
		coordBlock(&b, geo, &C)
	case CosmoRS:
		b.WriteString(pal)
		b.WriteString("%cosmors\n")
		switch {
		case C.SolventFile != "":
			if !filepath.IsAbs(C.SolventFile) {
				return "", newError(ErrCantInput, O.inputname, "solvent file path must be absolute: "+C.SolventFile, nil, errid)
			}
			fmt.Fprintf(&b, "\tsolventfilename \"%s\"\n", orcaprop.StripExt(C.SolventFile))
		case C.Solvent != "":
			fmt.Fprintf(&b, "\tsolvent \"%s\"\n", C.Solvent)
		default:
			return missing("solvent")
		}
		b.WriteString("end\n")
		coordBlock(&b, geo, &C)
	case Thermochem:
		if C.HessFile == "" {
			return missing("Hessian file")
		}
		if !filepath.IsAbs(C.HessFile) {
			return "", newError(ErrCantInput, O.inputname, "Hessian file path must be absolute: "+C.HessFile, nil, errid)
		}
		temps := make([]string, 0, len(C.Temperatures))
		for _, t := range C.Temperatures {
			if t <= 0 {
				return "", newError(ErrCantInput, O.inputname, fmt.Sprintf("invalid temperature %v", t), nil, errid)
			}
			temps = append(temps, orcaprop.FloatString(t))
		}
		b.WriteString(pal)
		b.WriteString("! printthermochem\n\n")
		fmt.Fprintf(&b, "%%geom\n\tinhessname \"%s\"\nend\n\n", C.HessFile)
		fmt.Fprintf(&b, "%%freq\n\ttemp %s\n end\n\n", strings.Join(temps, ","))
		fmt.Fprintf(&b, "%%cpcm\n\tsmd true\n\tSMDsolvent \"%s\"\nend\n\n", C.Solvent)
		coordBlock(&b, geo, &C)
	case CavityVolume, MolecularVolume:
		radii := idscrfRadii
		if C.Preset == MolecularVolume {
			radii = baderRadii
		}
		coordBlock(&b, geo, &C)
		b.WriteString("\n\n! RHF SVP NOITER\n\n")
		fmt.Fprintf(&b, "%%cpcm\n\tsmd true\n\tSMDsolvent \"%s\"\n\tnum_leb 770\n", C.Solvent)
		for _, r := range radii {
			fmt.Fprintf(&b, "\tradius[%d] %s\n", r.Z, strconv.FormatFloat(r.R, 'f', -1, 64))
		}
		b.WriteString("end")
	default:
		return "", newError(ErrCantInput, O.inputname, "unknown preset "+C.Preset.String(), nil, errid)
	}
	return b.String(), nil
}

// writes the "!" line with extra keywords, if any.
func keywords(b *strings.Builder, options string) {
	if options != "" {
		fmt.Fprintf(b, "! %s\n", options)
	}
}

func coordBlock(b *strings.Builder, geo orcaprop.Geometrer, C *Calc) {
	fmt.Fprintf(b, "* xyz %d %d \n", C.Charge, C.Multi)
	b.WriteString(geo.Block())
	b.WriteString("\n*")
}

type radius struct {
	Z int
	R float64
}

// Radii in Angstrom for the cavity (IDSCRF) and molecular (Bader) volume probes.
var idscrfRadii = []radius{
	{8, 1.87}, {1, 1.77}, {6, 2.22}, {16, 2.48}, {7, 2.05}, {17, 2.39}, {9, 1.89}, {15, 2.52}, {35, 2.54},
}

var baderRadii = []radius{
	{8, 1.7}, {1, 1.52}, {6, 1.92}, {16, 2.14}, {7, 1.79}, {17, 2.08}, {9, 1.61}, {15, 2.23}, {35, 2.27},
}

// Run writes input to a new job directory under the scratch directory, runs ORCA
// there and waits for it to finish. The whole output is returned and the job directory
// is removed. The exit status of ORCA is not checked, only logged, as the output itself
// tells whether the calculation worked.
func (O *OrcaHandle) Run(ctx context.Context, input string) (Output, error) {
	errid := "OrcaHandle/Run"
	dir, err := O.jobDir()
	if err != nil {
		return "", newError(ErrNotRunning, O.inputname, "can't create job directory", err, errid)
	}
	defer O.cleanup(dir)
	inp := O.inputname + ".inp"
	if err := os.WriteFile(filepath.Join(dir, inp), []byte(input), 0o644); err != nil {
		return "", newError(ErrNotRunning, O.inputname, "can't write input", err, errid)
	}
	outname := filepath.Join(dir, O.inputname+".out")
	if err := O.execute(ctx, dir, inp, outname); err != nil {
		err.Decorate(errid)
		return "", err
	}
	data, err := os.ReadFile(outname)
	if err != nil {
		return "", newError(ErrNotRunning, O.inputname, "can't read output", err, errid)
	}
	return Output(data), nil
}

// jobDir creates a new, uniquely named, directory in the scratch directory.
func (O *OrcaHandle) jobDir() (string, error) {
	if err := os.MkdirAll(O.scratch, 0o755); err != nil {
		return "", err
	}
	dir := filepath.Join(O.scratch, "orcaprop-"+uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func (O *OrcaHandle) cleanup(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		O.log.Warn("can't remove job directory", zap.String("dir", dir), zap.Error(err))
	}
}

func (O *OrcaHandle) cmd(ctx context.Context, inp string) *exec.Cmd {
	if O.nice == 0 {
		return exec.CommandContext(ctx, O.command, inp)
	}
	return exec.CommandContext(ctx, "nice", "-n", strconv.Itoa(O.nice), O.command, inp)
}

// execute runs ORCA on the input inp, in dir, with the standard output sent
// to the file outname.
func (O *OrcaHandle) execute(ctx context.Context, dir, inp, outname string) *Error {
	out, err := os.Create(outname)
	if err != nil {
		return newError(ErrNotRunning, O.inputname, "can't create output file", err)
	}
	defer out.Close()
	var stderr bytes.Buffer
	command := O.cmd(ctx, inp)
	command.Dir = dir
	command.Stdout = out
	command.Stderr = &stderr
	command.WaitDelay = 5 * time.Second //children of a killed ORCA can keep stderr open
	O.log.Debug("running ORCA", zap.String("job", O.inputname), zap.String("dir", dir), zap.String("command", command.String()))
	if err := command.Start(); err != nil {
		return newError(ErrNotRunning, O.inputname, "can't start "+O.command, err)
	}
	err = command.Wait()
	if ctx.Err() != nil {
		return newError(ErrNotRunning, O.inputname, "interrupted", ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		O.log.Warn("ORCA exited with non-zero status", zap.String("job", O.inputname),
			zap.Int("status", exitErr.ExitCode()), zap.String("stderr", strings.TrimSpace(stderr.String())))
		return nil
	}
	if err != nil {
		return newError(ErrNotRunning, O.inputname, "", err)
	}
	return nil
}
