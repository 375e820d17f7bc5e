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
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Differentiator computes the time derivative of a state field at time t,
// writing it into dy. len(dy) equals the length of the target field.
type Differentiator func(s *Simulation, t float64, dy []float64)

// Scheme advances a state field y by one time step of size Δt given its
// derivative dy.
type Scheme func(y, dy []float64, Δt float64)

// ExplicitEuler is the explicit first-order Euler integration scheme.
func ExplicitEuler(y, dy []float64, Δt float64) {
	floats.AddScaled(y, Δt, dy)
}

// Instruction tells the integrator to advance one state field with the given
// scheme and derivative. Target must return the field's backing slice, not a
// copy.
type Instruction struct {
	Scheme      Scheme
	Target      func(s *Simulation) []float64
	Derivative  Differentiator
	Description string
}

// Integrator advances time-integrated fields through its ordered
// instruction list.
type Integrator struct {
	Instructions []Instruction

	dy []float64 // derivative scratch space
}

// Advance returns a function that executes all integration instructions in
// order, advancing each target field by one time step.
func (ig *Integrator) Advance() DomainManipulator {
	return func(s *Simulation) error {
		for _, inst := range ig.Instructions {
			if inst.Scheme == nil || inst.Target == nil || inst.Derivative == nil {
				return fmt.Errorf("photoevap: incomplete integration instruction %q", inst.Description)
			}
			y := inst.Target(s)
			if cap(ig.dy) < len(y) {
				ig.dy = make([]float64, len(y))
			}
			dy := ig.dy[:len(y)]
			inst.Derivative(s, s.T, dy)
			inst.Scheme(y, dy, s.Dt)
		}
		return nil
	}
}
