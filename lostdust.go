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
	"gonum.org/v1/gonum/floats"
)

// DSigmaLostDust is the differentiator of the lost-dust surface density.
// Dust leaving the disk through the given sink term is gained by the
// lost-dust population at exactly the same rate, so the derivative is the
// negation of the sink.
func DSigmaLostDust(sink func(d *Disk) []float64) Differentiator {
	return func(s *Simulation, t float64, dy []float64) {
		for i, v := range sink(s.Disk) {
			dy[i] = -v
		}
	}
}

// LostDustMass returns a function that recomputes the total mass of lost
// dust as the area-weighted sum of the lost-dust surface density. It is the
// only writer of Disk.MLost.
func LostDustMass() DomainManipulator {
	return func(s *Simulation) error {
		s.Disk.MLost = floats.Dot(s.Disk.Area, s.Disk.SigmaLost)
		return nil
	}
}

// SetupLostDust registers tracking of the dust removed by external sources:
// an explicit first-order Euler instruction advancing the lost-dust surface
// density, and the total-mass updater at the end of the run list. If
// usingFRIED is true the tracker links against the FRIED photoevaporation
// dust source term, otherwise against the generic external dust sink.
func SetupLostDust(s *Simulation, usingFRIED bool) {
	sink := func(d *Disk) []float64 { return d.SDustExt }
	if usingFRIED {
		sink = func(d *Disk) []float64 { return d.SDustEPE }
	}
	if s.Integrator == nil {
		s.Integrator = new(Integrator)
	}
	s.Integrator.Instructions = append(s.Integrator.Instructions, Instruction{
		Scheme:      ExplicitEuler,
		Target:      func(s *Simulation) []float64 { return s.Disk.SigmaLost },
		Derivative:  DSigmaLostDust(sink),
		Description: "Lost dust: explicit 1st-order Euler method",
	})
	s.RunFuncs = append(s.RunFuncs, LostDustMass())
}
