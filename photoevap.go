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

// Package photoevap models the outside-in erosion of a protoplanetary disk
// by external photoevaporation, using mass loss rates interpolated from the
// FRIED grid (Haworth et al. 2018) following the implementation of
// Sellek et al. (2020).
package photoevap

import (
	"fmt"
	"io"
	"time"
)

// Version gives the version number.
const Version = "1.1.0"

// Simulation holds the current state of the model.
type Simulation struct {
	// InitFuncs are functions to be called in the given order
	// at the beginning of the simulation.
	InitFuncs []DomainManipulator

	// RunFuncs are functions to be called in the given order repeatedly
	// until "Done" is true. The ordering of the updaters within this list
	// is a correctness requirement: each updater may only read fields
	// written by updaters earlier in the list during the same step.
	RunFuncs []DomainManipulator

	// CleanupFuncs are functions to be run in the given order after the
	// simulation has finished.
	CleanupFuncs []DomainManipulator

	// Disk is the radial disk state operated on by the manipulators.
	Disk *Disk

	// Integrator advances the time-integrated fields each step.
	Integrator *Integrator

	Dt float64 // seconds
	T  float64 // simulation time since start [seconds]

	// Done specifies whether the simulation is finished.
	Done bool
}

// DomainManipulator is a class of functions that operate on the entire
// model domain.
type DomainManipulator func(s *Simulation) error

// Init initializes the simulation by running the InitFuncs.
func (s *Simulation) Init() error {
	if s.Integrator == nil {
		s.Integrator = new(Integrator)
	}
	for _, f := range s.InitFuncs {
		if err := f(s); err != nil {
			return err
		}
	}
	return nil
}

// Run carries out the simulation by running the RunFuncs in order until
// Done is true. Errors returned by any of the functions abort the run.
func (s *Simulation) Run() error {
	for !s.Done {
		for _, f := range s.RunFuncs {
			if err := f(s); err != nil {
				return err
			}
		}
	}
	return nil
}

// Cleanup runs the CleanupFuncs.
func (s *Simulation) Cleanup() error {
	for _, f := range s.CleanupFuncs {
		if err := f(s); err != nil {
			return err
		}
	}
	return nil
}

// SetTimestep returns a function that sets the simulation time step [s].
func SetTimestep(Δt float64) DomainManipulator {
	return func(s *Simulation) error {
		if Δt <= 0 {
			return fmt.Errorf("photoevap: time step must be positive, got %g", Δt)
		}
		s.Dt = Δt
		return nil
	}
}

// AdvanceClock returns a function that advances the simulation time by one
// time step. It should run after the integrator within each step.
func AdvanceClock() DomainManipulator {
	return func(s *Simulation) error {
		s.T += s.Dt
		return nil
	}
}

// StopAt returns a function that finishes the simulation once the
// simulation time reaches tEnd [s].
func StopAt(tEnd float64) DomainManipulator {
	return func(s *Simulation) error {
		if s.T >= tEnd {
			s.Done = true
		}
		return nil
	}
}

// Log writes simulation status messages to w.
func Log(w io.Writer) DomainManipulator {
	startTime := time.Now()
	timeStepTime := time.Now()

	iteration := 0

	return func(s *Simulation) error {
		iteration++
		fmt.Fprintf(w, "Iteration %-4d  walltime=%6.3gh  Δwalltime=%4.2gs  "+
			"timestep=%.3gyr  t=%.4gyr  rTrunc=%.4gAU  Mlost=%.4gMsun\n",
			iteration, time.Since(startTime).Hours(),
			time.Since(timeStepTime).Seconds(), s.Dt/Year, s.T/Year,
			s.Disk.RTrunc/AU, s.Disk.MLost/MSun)
		timeStepTime = time.Now()
		return nil
	}
}
