/*
 * compound.go, part of orcaprop.
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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rmera/orcaprop"
	"go.uber.org/zap"
)

var (
	palRe   = regexp.MustCompile(`%pal nprocs \d+ end`)
	aliasRe = regexp.MustCompile(`#Alias_Step(.*?)\n`)
	baseRe  = regexp.MustCompile(`%base(.*?)\n`)
)

// timeNow is replaced in tests.
var timeNow = time.Now

// SetPal returns deck with the number of processes set to n. The first one-line
// %pal block is replaced, if there is one. Otherwise a new one is added at the top.
func SetPal(deck string, n int) string {
	pal := fmt.Sprintf("%%pal nprocs %d end", n)
	loc := palRe.FindStringIndex(deck)
	if loc == nil {
		return pal + "\n" + deck
	}
	return deck[:loc[0]] + pal + deck[loc[1]:]
}

// CompoundAliases returns the step aliases of a %Compound input, in order.
// It returns nil if deck is not a compound job.
func CompoundAliases(deck string) []string {
	if !strings.Contains(deck, "%Compound") {
		return nil
	}
	m := aliasRe.FindAllStringSubmatch(deck, -1)
	ret := make([]string, 0, len(m))
	for _, v := range m {
		ret = append(ret, strings.TrimSpace(v[1]))
	}
	return ret
}

// BaseName returns the value of the %base directive, without quotes, and
// whether the directive was found.
func BaseName(deck string) (string, bool) {
	m := baseRe.FindStringSubmatch(deck)
	if m == nil {
		return "", false
	}
	return strings.Trim(m[1], "\" "), true
}

// RenameCompound renames the files that ORCA writes for each step of a
// compound job, so <prefix>_Compound_<i><rest> becomes <prefix><alias><rest>,
// where alias is aliases[i-1]. Temporary files (those with "tmp" in the name) are
// left alone. It returns the new names.
func RenameCompound(dir, prefix string, aliases []string) ([]string, error) {
	errid := "RenameCompound"
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: can't read directory %s: %w", errid, dir, err)
	}
	var renamed []string
	for i, alias := range aliases {
		step := prefix + "_Compound_" + strconv.Itoa(i+1)
		for _, e := range entries {
			name := e.Name()
			if !strings.HasPrefix(name, step) || strings.Contains(name, "tmp") {
				continue
			}
			rest := name[len(step):]
			if rest != "" && rest[0] >= '0' && rest[0] <= '9' { //step 1 shouldn't catch step 10
				continue
			}
			newname := prefix + alias + rest
			if err := os.Rename(filepath.Join(dir, name), filepath.Join(dir, newname)); err != nil {
				return renamed, fmt.Errorf("%s: can't rename %s: %w", errid, name, err)
			}
			renamed = append(renamed, newname)
		}
	}
	return renamed, nil
}

// RunInputFile runs an existing ORCA input file. The %pal block of the file is first
// set to the number of processes of the handle (the file is changed in place). The job
// runs in its own scratch directory, under the name active_<date> or the %base name,
// with the output written to destDir/<name>.out, where <name> is the input file name
// without extension. Compound steps are renamed after their aliases, and every
// non-temporary file produced is moved to destDir, named after the input file.
// It returns the names of the files moved.
func (O *OrcaHandle) RunInputFile(ctx context.Context, path, destDir string) ([]string, error) {
	errid := "OrcaHandle/RunInputFile"
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(ErrCantInput, path, "can't read input file", err, errid)
	}
	deck := SetPal(string(data), O.nCPU)
	if err := os.WriteFile(path, []byte(deck), 0o644); err != nil {
		return nil, newError(ErrCantInput, path, "can't update %pal block", err, errid)
	}
	name := orcaprop.StripExt(filepath.Base(path))
	J := *O
	J.inputname = name
	scratchname := "active_" + timeNow().Format("2006-01-02_15_04_05")
	if base, ok := BaseName(deck); ok && base != "" {
		scratchname = base
	}
	dir, err := J.jobDir()
	if err != nil {
		return nil, newError(ErrNotRunning, name, "can't create job directory", err, errid)
	}
	defer J.cleanup(dir)
	inp := scratchname + ".inp"
	if err := os.WriteFile(filepath.Join(dir, inp), []byte(deck), 0o644); err != nil {
		return nil, newError(ErrNotRunning, name, "can't write input", err, errid)
	}
	if err := J.execute(ctx, dir, inp, filepath.Join(destDir, name+".out")); err != nil {
		err.Decorate(errid)
		return nil, err
	}
	if aliases := CompoundAliases(deck); len(aliases) > 0 {
		renamed, err := RenameCompound(dir, scratchname, aliases)
		if err != nil {
			return nil, newError(ErrFiles, name, "", err, errid)
		}
		J.log.Debug("renamed compound steps", zap.String("job", name), zap.Strings("files", renamed))
	}
	if err := os.Remove(filepath.Join(dir, inp)); err != nil {
		return nil, newError(ErrFiles, name, "can't remove scratch input", err, errid)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, newError(ErrFiles, name, "can't read job directory", err, errid)
	}
	var moved []string
	for _, e := range entries {
		fname := e.Name()
		if e.IsDir() || !strings.HasPrefix(fname, scratchname) || strings.Contains(fname, "tmp") {
			continue
		}
		newname := name + fname[len(scratchname):]
		if err := moveFile(filepath.Join(dir, fname), filepath.Join(destDir, newname)); err != nil {
			return moved, newError(ErrFiles, name, "can't move "+fname, err, errid)
		}
		moved = append(moved, newname)
	}
	return moved, nil
}

// moveFile renames src to dst, copying and removing if they are not
// in the same device.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
