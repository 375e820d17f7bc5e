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

package fried

import (
	"fmt"
	"log"
	"math"
	"path/filepath"
	"sort"

	"github.com/ctessum/sparse"
)

// Table is a mass loss rate table on fixed radius and surface density axes,
// resampled to a single stellar mass and UV flux. It is immutable after
// construction.
type Table struct {
	Radii    []float64          // disk outer radii, ascending [AU]
	Sigma    []float64          // surface densities, ascending [g/cm²]
	MassLoss *sparse.DenseArray // log10 mass loss rate [Msun/yr], shape (len(Radii), len(Sigma))
}

// Interpolator is a deterministic, side-effect-free point lookup into a
// Table. Lookups are bilinear in (log10 radius, log10 surface density);
// queries outside the tabulated range are clamped to the nearest table edge.
type Interpolator struct {
	table      *Table
	logR, logΣ []float64
}

// NewInterpolator creates an Interpolator for t.
func NewInterpolator(t *Table) (*Interpolator, error) {
	if len(t.Radii) < 2 || len(t.Sigma) < 2 {
		return nil, fmt.Errorf("fried: table axes need at least 2 values, got %d radii and %d surface densities",
			len(t.Radii), len(t.Sigma))
	}
	if !positive(t.Radii) || !ascending(t.Radii) {
		return nil, fmt.Errorf("fried: table radius axis must be positive and strictly ascending")
	}
	if !positive(t.Sigma) || !ascending(t.Sigma) {
		return nil, fmt.Errorf("fried: table surface density axis must be positive and strictly ascending")
	}
	if shape := t.MassLoss.GetShape(); len(shape) != 2 || shape[0] != len(t.Radii) || shape[1] != len(t.Sigma) {
		return nil, fmt.Errorf("fried: mass loss grid shape %v does not match axes (%d, %d)",
			t.MassLoss.GetShape(), len(t.Radii), len(t.Sigma))
	}
	itp := &Interpolator{
		table: t,
		logR:  make([]float64, len(t.Radii)),
		logΣ:  make([]float64, len(t.Sigma)),
	}
	for i, r := range t.Radii {
		itp.logR[i] = math.Log10(r)
	}
	for j, σ := range t.Sigma {
		itp.logΣ[j] = math.Log10(σ)
	}
	return itp, nil
}

// Rate returns the log10 mass loss rate [Msun/yr] at outer disk radius
// r [AU] and surface density σ [g/cm²]. Queries outside the tabulated range
// (including non-positive or non-finite inputs) are clamped to the nearest
// table edge, so the result is always finite.
func (itp *Interpolator) Rate(r, σ float64) float64 {
	lr := itp.logR[0]
	if r > 0 && !math.IsNaN(r) {
		lr = math.Log10(r)
	}
	lσ := itp.logΣ[0]
	if σ > 0 && !math.IsNaN(σ) {
		lσ = math.Log10(σ)
	}
	i, wi := segmentWeight(itp.logR, lr)
	j, wj := segmentWeight(itp.logΣ, lσ)
	wi, wj = clamp01(wi), clamp01(wj)

	m := itp.table.MassLoss
	v00 := m.Get(i, j)
	v01 := m.Get(i, j+1)
	v10 := m.Get(i+1, j)
	v11 := m.Get(i+1, j+1)
	return (1-wi)*((1-wj)*v00+wj*v01) + wi*((1-wj)*v10+wj*v11)
}

// segmentWeight locates x on a strictly ascending axis, returning the index
// of the enclosing segment's lower node and the linear weight of the upper
// node. The weight lies outside [0, 1] when x is outside the axis range
// (linear extrapolation); callers that clamp instead use clamp01.
func segmentWeight(axis []float64, x float64) (int, float64) {
	j := sort.SearchFloat64s(axis, x)
	if j < 1 {
		j = 1
	}
	if j > len(axis)-1 {
		j = len(axis) - 1
	}
	i := j - 1
	return i, (x - axis[i]) / (axis[i+1] - axis[i])
}

func clamp01(w float64) float64 {
	if !(w > 0) { // also catches NaN
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}

// ResampleGrid reads the FRIED grid files in dir named by filenames (each
// holding the table for one stellar mass) and resamples them onto the given
// radius [AU] and surface density [g/cm²] axes at the target stellar mass
// [Msun] and UV flux [G0]. It returns the resampled table together with an
// interpolator over it; both are constructed once and never re-read the
// files.
//
// The UV flux interpolation is linear in log10(flux) vs log10(rate), i.e.
// the mass loss rate follows a power law in the incident flux between
// tabulated fluxes. The stellar mass interpolation is linear in mass.
// Targets outside the tabulated span are extrapolated with a logged warning;
// a stellar mass below half the lowest or above twice the highest tabulated
// mass is a configuration error.
func ResampleGrid(dir string, filenames []string, MstarTarget, UVTarget float64, radii, sigma []float64) (*Table, *Interpolator, error) {
	if len(filenames) == 0 {
		return nil, nil, fmt.Errorf("fried: no grid files specified")
	}
	if UVTarget <= 0 || math.IsNaN(UVTarget) || math.IsInf(UVTarget, 0) {
		return nil, nil, fmt.Errorf("fried: target UV flux must be positive and finite, got %g G0", UVTarget)
	}
	if MstarTarget <= 0 || math.IsNaN(MstarTarget) {
		return nil, nil, fmt.Errorf("fried: target stellar mass must be positive, got %g Msun", MstarTarget)
	}
	if !positive(radii) || !ascending(radii) {
		return nil, nil, fmt.Errorf("fried: target radius axis must be positive and strictly ascending")
	}
	if !positive(sigma) || !ascending(sigma) {
		return nil, nil, fmt.Errorf("fried: target surface density axis must be positive and strictly ascending")
	}

	files := make([]*gridFile, len(filenames))
	for i, name := range filenames {
		g, err := readGridFile(filepath.Join(dir, name))
		if err != nil {
			return nil, nil, err
		}
		files[i] = g
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Mstar < files[j].Mstar })
	masses := make([]float64, len(files))
	for i, g := range files {
		masses[i] = g.Mstar
		if i > 0 && masses[i] == masses[i-1] {
			return nil, nil, fmt.Errorf("fried: two grid files tabulate the same stellar mass %g Msun", masses[i])
		}
	}
	if MstarTarget < 0.5*masses[0] || MstarTarget > 2*masses[len(masses)-1] {
		return nil, nil, fmt.Errorf("fried: target stellar mass %g Msun is too far outside the tabulated range [%g, %g] Msun",
			MstarTarget, masses[0], masses[len(masses)-1])
	}

	perMass := make([]*sparse.DenseArray, len(files))
	for fi, g := range files {
		slices := make([]*sparse.DenseArray, len(g.UV))
		for k := range g.UV {
			itp, err := NewInterpolator(&Table{Radii: g.Radii, Sigma: g.Sigma, MassLoss: g.MassLoss[k]})
			if err != nil {
				return nil, nil, fmt.Errorf("fried: grid file for %g Msun: %v", g.Mstar, err)
			}
			out := sparse.ZerosDense(len(radii), len(sigma))
			for i, r := range radii {
				for j, σ := range sigma {
					out.Set(itp.Rate(r, σ), i, j)
				}
			}
			slices[k] = out
		}
		perMass[fi] = interpUV(slices, g.UV, UVTarget, g.Mstar)
	}

	combined := interpMass(perMass, masses, MstarTarget)
	t := &Table{
		Radii:    append([]float64(nil), radii...),
		Sigma:    append([]float64(nil), sigma...),
		MassLoss: combined,
	}
	itp, err := NewInterpolator(t)
	if err != nil {
		return nil, nil, err
	}
	return t, itp, nil
}

// interpUV interpolates a stack of equally shaped mass loss grids, one per
// tabulated UV flux, to the target flux. The interpolation is linear in
// log10 flux; outside the tabulated range it extrapolates with a warning.
func interpUV(slices []*sparse.DenseArray, uv []float64, target, mstar float64) *sparse.DenseArray {
	if len(slices) == 1 {
		if target != uv[0] {
			log.Printf("fried: warning: grid for %g Msun tabulates only UV=%g G0; using it for target %g G0",
				mstar, uv[0], target)
		}
		return slices[0].Copy()
	}
	axis := make([]float64, len(uv))
	for i, v := range uv {
		axis[i] = math.Log10(v)
	}
	i, w := segmentWeight(axis, math.Log10(target))
	if w < 0 || w > 1 {
		log.Printf("fried: warning: target UV flux %g G0 is outside the tabulated range [%g, %g] G0 for %g Msun; extrapolating",
			target, uv[0], uv[len(uv)-1], mstar)
	}
	return blend(slices[i], slices[i+1], w)
}

// interpMass interpolates a stack of equally shaped mass loss grids, one per
// tabulated stellar mass, to the target mass, linear in mass.
func interpMass(slices []*sparse.DenseArray, masses []float64, target float64) *sparse.DenseArray {
	if len(slices) == 1 {
		if target != masses[0] {
			log.Printf("fried: warning: only one grid file supplied (%g Msun); using it for target stellar mass %g Msun",
				masses[0], target)
		}
		return slices[0].Copy()
	}
	i, w := segmentWeight(masses, target)
	if w < 0 || w > 1 {
		log.Printf("fried: warning: target stellar mass %g Msun is outside the tabulated range [%g, %g] Msun; extrapolating",
			target, masses[0], masses[len(masses)-1])
	}
	return blend(slices[i], slices[i+1], w)
}

// blend returns (1-w)·a + w·b elementwise.
func blend(a, b *sparse.DenseArray, w float64) *sparse.DenseArray {
	out := sparse.ZerosDense(a.GetShape()...)
	for idx, va := range a.Elements {
		out.Elements[idx] = (1-w)*va + w*b.Elements[idx]
	}
	return out
}
