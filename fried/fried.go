/*
Copyright © 2026 the photoevap authors.
This file is part of photoevap.

photoevap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

photoevap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with photoevap.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package fried loads and resamples the FRIED grid of externally driven
// photoevaporative mass loss rates (Haworth et al. 2018). The grid is
// distributed as one text table per stellar mass, tabulating the log10 mass
// loss rate as a function of UV flux, disk outer radius and surface density;
// this package interpolates it to a target stellar mass and UV flux on
// caller-specified radius and surface density axes.
package fried

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ctessum/sparse"
)

// gridFile holds the tabulated content of one fixed-stellar-mass FRIED
// grid file.
type gridFile struct {
	Mstar float64   // stellar mass [Msun]
	UV    []float64 // tabulated UV fluxes, ascending [G0]
	Radii []float64 // tabulated disk outer radii, ascending [AU]
	Sigma []float64 // tabulated surface densities, ascending [g/cm²]

	// MassLoss holds one (radius, Sigma) grid of log10 mass loss rates
	// [Msun/yr] per tabulated UV flux.
	MassLoss []*sparse.DenseArray
}

// massRe matches the stellar mass token in FRIED file names,
// e.g. "0p3" in "FRIEDV2_0p3Msol_fPAH1p0_growth.dat".
var massRe = regexp.MustCompile(`(\d+)p(\d+)Msol`)

// massFromFilename extracts the stellar mass [Msun] encoded in a FRIED grid
// file name.
func massFromFilename(name string) (float64, error) {
	m := massRe.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return 0, fmt.Errorf("fried: file name %q does not contain a stellar mass token like '1p0Msol'", name)
	}
	v, err := strconv.ParseFloat(m[1]+"."+m[2], 64)
	if err != nil {
		return 0, fmt.Errorf("fried: parsing stellar mass from %q: %v", name, err)
	}
	return v, nil
}

// readGridFile reads one FRIED grid file. Each data row holds four columns:
// UV flux [G0], disk outer radius [AU], surface density [g/cm²] and log10
// mass loss rate [Msun/yr]. Comment lines starting with '#' and header rows
// whose first field is not a number are skipped. The rows must form a
// complete rectangular grid over the tabulated axis values.
func readGridFile(path string) (*gridFile, error) {
	mstar, err := massFromFilename(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fried: opening grid file: %v", err)
	}
	defer f.Close()

	type row struct {
		uv, r, sigma, rate float64
	}
	var rows []row
	uvSet := make(map[float64]struct{})
	rSet := make(map[float64]struct{})
	sigSet := make(map[float64]struct{})

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
			continue // header row
		}
		if len(fields) < 4 {
			return nil, fmt.Errorf("fried: %s:%d: expected 4 columns, got %d", path, line, len(fields))
		}
		var v [4]float64
		for i := 0; i < 4; i++ {
			if v[i], err = strconv.ParseFloat(fields[i], 64); err != nil {
				return nil, fmt.Errorf("fried: %s:%d: malformed value %q: %v", path, line, fields[i], err)
			}
		}
		if v[0] <= 0 || v[1] <= 0 || v[2] <= 0 {
			return nil, fmt.Errorf("fried: %s:%d: UV flux, radius and surface density must be positive", path, line)
		}
		rows = append(rows, row{v[0], v[1], v[2], v[3]})
		uvSet[v[0]] = struct{}{}
		rSet[v[1]] = struct{}{}
		sigSet[v[2]] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fried: reading grid file %s: %v", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("fried: grid file %s contains no data rows", path)
	}

	g := &gridFile{
		Mstar: mstar,
		UV:    sortedKeys(uvSet),
		Radii: sortedKeys(rSet),
		Sigma: sortedKeys(sigSet),
	}
	uvIdx := indexOf(g.UV)
	rIdx := indexOf(g.Radii)
	sigIdx := indexOf(g.Sigma)

	filled := sparse.ZerosDense(len(g.UV), len(g.Radii), len(g.Sigma))
	g.MassLoss = make([]*sparse.DenseArray, len(g.UV))
	for k := range g.MassLoss {
		g.MassLoss[k] = sparse.ZerosDense(len(g.Radii), len(g.Sigma))
	}
	for _, rw := range rows {
		k, i, j := uvIdx[rw.uv], rIdx[rw.r], sigIdx[rw.sigma]
		g.MassLoss[k].Set(rw.rate, i, j)
		filled.AddVal(1, k, i, j)
	}
	for i1d, n := range filled.Elements {
		if n != 1 {
			idx := filled.IndexNd(i1d)
			return nil, fmt.Errorf("fried: grid file %s has %d entries for UV=%g G0, r=%g AU, Sigma=%g g/cm²; the rows must form a complete rectangular grid",
				path, int(n), g.UV[idx[0]], g.Radii[idx[1]], g.Sigma[idx[2]])
		}
	}
	return g, nil
}

func sortedKeys(set map[float64]struct{}) []float64 {
	keys := make([]float64, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	return keys
}

func indexOf(axis []float64) map[float64]int {
	idx := make(map[float64]int, len(axis))
	for i, v := range axis {
		idx[v] = i
	}
	return idx
}

// ascending reports whether axis is strictly ascending.
func ascending(axis []float64) bool {
	for i := 1; i < len(axis); i++ {
		if axis[i] <= axis[i-1] {
			return false
		}
	}
	return true
}

// positive reports whether every value of axis is positive and finite.
func positive(axis []float64) bool {
	for _, v := range axis {
		if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
