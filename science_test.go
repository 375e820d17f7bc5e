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

package photoevap

import (
	"math"
	"testing"
)

func TestLimitInRadius(t *testing.T) {
	d, err := NewDisk(testDiskConfig())
	if err != nil {
		t.Fatal(err)
	}
	// A uniform surface density makes the enclosed mass proportional to
	// the enclosed area, so the 90% radius can be checked directly.
	for i := range d.SigmaGas {
		d.SigmaGas[i] = 1
	}
	s := &Simulation{Disk: d}
	if err := LimitInRadius()(s); err != nil {
		t.Fatal(err)
	}

	rIn, rOut := d.Rint[0], d.Rint[len(d.Rint)-1]
	rTarget := math.Sqrt(0.9*(rOut*rOut-rIn*rIn) + rIn*rIn)
	// RLimIn is the first cell center whose outer interface encloses the
	// target area, so it brackets rTarget to within one cell.
	k := 0
	for d.R[k] != d.RLimIn {
		k++
	}
	if d.Rint[k+1] < rTarget || (k > 0 && d.Rint[k] > rTarget) {
		t.Errorf("rLimIn=%g AU does not bracket the 90%% mass radius %g AU",
			d.RLimIn/AU, rTarget/AU)
	}

	// A disk with zero mass yields the innermost grid radius.
	for i := range d.SigmaGas {
		d.SigmaGas[i] = 0
	}
	if err := LimitInRadius()(s); err != nil {
		t.Fatal(err)
	}
	if d.RLimIn != d.R[0] {
		t.Errorf("empty disk: rLimIn=%g, want %g", d.RLimIn, d.R[0])
	}
}

func TestTruncationRadius(t *testing.T) {
	d, err := NewDisk(testDiskConfig())
	if err != nil {
		t.Fatal(err)
	}
	s := &Simulation{Disk: d}

	// Strip the gas outside cell k; the front must sit at R[k].
	const k = 40
	for i := range d.SigmaGas {
		if i > k {
			d.SigmaGas[i] = d.SigmaFloor
		} else {
			d.SigmaGas[i] = 1
		}
	}
	d.RLimIn = d.R[0]
	if err := TruncationRadius()(s); err != nil {
		t.Fatal(err)
	}
	if d.RTrunc != d.R[k] {
		t.Errorf("rTrunc=%g AU, want %g AU", d.RTrunc/AU, d.R[k]/AU)
	}

	// The front never falls below the inner mass-limit radius.
	d.RLimIn = d.R[50]
	if err := TruncationRadius()(s); err != nil {
		t.Fatal(err)
	}
	if d.RTrunc != d.RLimIn {
		t.Errorf("rTrunc=%g, want clamp to rLimIn=%g", d.RTrunc, d.RLimIn)
	}

	// A fully stripped disk clamps to rLimIn as well.
	for i := range d.SigmaGas {
		d.SigmaGas[i] = d.SigmaFloor
	}
	d.RLimIn = d.R[10]
	if err := TruncationRadius()(s); err != nil {
		t.Fatal(err)
	}
	if d.RTrunc != d.R[10] {
		t.Errorf("stripped disk: rTrunc=%g, want %g", d.RTrunc, d.R[10])
	}
}

func TestFRIEDMassLoss(t *testing.T) {
	d, err := NewDisk(testDiskConfig())
	if err != nil {
		t.Fatal(err)
	}
	s := &Simulation{Disk: d}
	itp := constInterp(t, -8)

	d.RTrunc = d.R[32]
	if err := FRIEDMassLoss(itp)(s); err != nil {
		t.Fatal(err)
	}
	want := math.Pow(10, -8) * MSun / Year
	for i, r := range d.R {
		if r < d.RTrunc {
			if d.MassLoss[i] != 0 {
				t.Fatalf("cell %d inside the front: mass loss %g, want 0", i, d.MassLoss[i])
			}
		} else if different(d.MassLoss[i], want, testTolerance) {
			t.Fatalf("cell %d: mass loss %g, want %g", i, d.MassLoss[i], want)
		}
	}

	// A gas surface density of exactly zero (or NaN) must still produce a
	// finite rate through the floor substitution.
	d.SigmaGas[len(d.R)-1] = 0
	d.SigmaGas[len(d.R)-2] = math.NaN()
	if err := FRIEDMassLoss(itp)(s); err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{len(d.R) - 1, len(d.R) - 2} {
		if math.IsNaN(d.MassLoss[i]) || math.IsInf(d.MassLoss[i], 0) {
			t.Errorf("cell %d: empty cell gave non-finite mass loss %g", i, d.MassLoss[i])
		}
	}
}

func TestSourceTerms(t *testing.T) {
	d, err := NewDisk(testDiskConfig())
	if err != nil {
		t.Fatal(err)
	}
	s := &Simulation{Disk: d}
	for i := range d.MassLoss {
		d.MassLoss[i] = 1e20
	}
	// Put one cell at the floor; it must lose no dust.
	const empty = 17
	d.SigmaGas[empty] = d.SigmaFloor

	if err := SourceTerms()(s); err != nil {
		t.Fatal(err)
	}
	for i := range d.R {
		if different(d.SGasEPE[i], -1e20/d.Area[i], testTolerance) {
			t.Fatalf("cell %d: gas source %g, want %g", i, d.SGasEPE[i], -1e20/d.Area[i])
		}
		if i == empty {
			if d.SDustEPE[i] != 0 {
				t.Errorf("cell at the floor: dust source %g, want 0", d.SDustEPE[i])
			}
			continue
		}
		want := d.SGasEPE[i] * d.SigmaDust[i] / d.SigmaGas[i]
		if different(d.SDustEPE[i], want, testTolerance) {
			t.Fatalf("cell %d: dust source %g, want %g", i, d.SDustEPE[i], want)
		}
	}
}

func TestApplyFloor(t *testing.T) {
	d, err := NewDisk(testDiskConfig())
	if err != nil {
		t.Fatal(err)
	}
	s := &Simulation{Disk: d}
	d.SigmaGas[3] = -1
	d.SigmaGas[4] = 0
	d.SigmaDust[3] = -1
	if err := ApplyFloor()(s); err != nil {
		t.Fatal(err)
	}
	if d.SigmaGas[3] != d.SigmaFloor || d.SigmaGas[4] != d.SigmaFloor {
		t.Errorf("gas not clamped to the floor: %g, %g", d.SigmaGas[3], d.SigmaGas[4])
	}
	if d.SigmaDust[3] != 0 {
		t.Errorf("dust not clamped to zero: %g", d.SigmaDust[3])
	}
}
