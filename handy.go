/*
 * handy.go, part of orcaprop.
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
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// pow10 returns 10^n computed at run time.
func pow10(n int) float64 {
	return math.Pow(10, float64(n))
}

// StripExt returns name without its extension (whatever comes after the last
// dot in the base name). A name without extension is returned unchanged.
func StripExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// FloatString formats f with the shortest representation that reads back
// to the same value, always with a decimal point (298 gives "298.0"). Very
// small or very large magnitudes use exponent notation.
func FloatString(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
