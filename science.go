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

	"github.com/Rossella4712/External-Photoevaporation-FRIEDv2-module-dustpy/fried"
)

// LimitInRadius returns a function that updates the inner mass-limit radius:
// the smallest cell-center radius whose enclosed gas mass reaches 90% of the
// total disk mass. A disk with zero or near-zero mass yields the innermost
// grid radius.
func LimitInRadius() DomainManipulator {
	return func(s *Simulation) error {
		d := s.Disk
		m := d.EnclosedGasMass()
		mTot := m[len(m)-1]
		if mTot <= 0 || math.IsNaN(mTot) {
			d.RLimIn = d.R[0]
			return nil
		}
		target := 0.9 * mTot
		for i, mi := range m {
			if mi >= target {
				d.RLimIn = d.R[i]
				return nil
			}
		}
		d.RLimIn = d.R[len(d.R)-1]
		return nil
	}
}

// TruncationRadius returns a function that updates the truncation radius of
// the evaporation front: the outermost cell center whose gas surface density
// still exceeds the floor value, clamped so that it never falls below the
// inner mass-limit radius nor exceeds the outer grid edge.
func TruncationRadius() DomainManipulator {
	return func(s *Simulation) error {
		d := s.Disk
		edge := d.R[0]
		for i := len(d.R) - 1; i >= 0; i-- {
			if d.SigmaGas[i] > d.SigmaFloor {
				edge = d.R[i]
				break
			}
		}
		if edge < d.RLimIn {
			edge = d.RLimIn
		}
		if outer := d.R[len(d.R)-1]; edge > outer {
			edge = outer
		}
		d.RTrunc = edge
		return nil
	}
}

// FRIEDMassLoss returns a function that updates the per-cell mass loss rate
// by interpolating the FRIED table at each cell outside the truncation
// radius. Cells inside the truncation radius get zero. Gas surface densities
// below the floor (including exactly zero) are replaced by the floor before
// the lookup; the interpolator clamps queries to its tabulated range, so the
// result is always finite.
func FRIEDMassLoss(itp *fried.Interpolator) DomainManipulator {
	return func(s *Simulation) error {
		d := s.Disk
		for i, r := range d.R {
			if r < d.RTrunc {
				d.MassLoss[i] = 0
				continue
			}
			σ := d.SigmaGas[i]
			if math.IsNaN(σ) || σ < d.SigmaFloor {
				σ = d.SigmaFloor
			}
			logRate := itp.Rate(r/AU, σ)
			d.MassLoss[i] = math.Pow(10, logRate) * MSun / Year
		}
		return nil
	}
}

// SourceTerms returns a function that translates the mass loss rate field
// into surface density source terms for the gas and dust populations. Gas is
// removed cell-locally at MassLoss/Area; dust is entrained in proportion to
// the local dust-to-gas ratio. Cells at or below the gas floor lose no dust.
func SourceTerms() DomainManipulator {
	return func(s *Simulation) error {
		d := s.Disk
		for i := range d.R {
			d.SGasEPE[i] = -d.MassLoss[i] / d.Area[i]
			if d.SigmaGas[i] > d.SigmaFloor {
				d.SDustEPE[i] = d.SGasEPE[i] * d.SigmaDust[i] / d.SigmaGas[i]
			} else {
				d.SDustEPE[i] = 0
			}
		}
		return nil
	}
}

// ApplyFloor returns a function that clamps the gas and dust surface
// densities to the floor value after integration. Explicit Euler steps can
// otherwise overshoot into negative densities near the eroding edge.
func ApplyFloor() DomainManipulator {
	return func(s *Simulation) error {
		d := s.Disk
		for i := range d.SigmaGas {
			if d.SigmaGas[i] < d.SigmaFloor {
				d.SigmaGas[i] = d.SigmaFloor
			}
			if d.SigmaDust[i] < 0 {
				d.SigmaDust[i] = 0
			}
		}
		return nil
	}
}
