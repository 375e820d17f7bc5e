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

package photoevaputil

import (
	"fmt"
	"io"
	"math"
	"time"

	photoevap "github.com/Rossella4712/External-Photoevaporation-FRIEDv2-module-dustpy"
	"github.com/Rossella4712/External-Photoevaporation-FRIEDv2-module-dustpy/fried"
)

// ResampleRadii returns the radius axis [AU] onto which the FRIED grid is
// resampled: 5 AU plus 106 evenly spaced radii from 10 to 1000 AU.
func ResampleRadii() []float64 {
	return append([]float64{5}, linspace(10, 1000, 106)...)
}

// ResampleSigma returns the surface density axis [g/cm²] onto which the
// FRIED grid is resampled. It extends the tabulated range far below and
// above so that depleted and very massive disks clamp instead of failing.
func ResampleSigma() []float64 {
	σ := []float64{1e-8, 1e-7, 1e-6, 1e-5, 1e-4}
	σ = append(σ, logspace(-3, 3, 100)...)
	return append(σ, 5e3, 1e4)
}

// Run carries out a photoevaporation simulation with the given parameters,
// writing log messages to w and disk snapshots to outputFile.
//
// UVFlux is the external FUV field [G0]; friedDir and friedFilenames locate
// the FRIED grid data. If usingFRIED is false the lost-dust tracker links
// against the generic external dust sink instead of the FRIED source term.
func Run(w io.Writer, UVFlux float64, friedDir string, friedFilenames []string,
	usingFRIED bool, outputFile string,
	dc photoevap.DiskConfig, rp RunParams) error {

	startTime := time.Now()

	if rp.TFinal <= 0 || rp.Timestep <= 0 || rp.SnapshotInterval <= 0 {
		return fmt.Errorf("photoevap: run times must be positive, got "+
			"TFinal=%gs Timestep=%gs SnapshotInterval=%gs",
			rp.TFinal, rp.Timestep, rp.SnapshotInterval)
	}

	fmt.Fprintln(w, "Creating disk...")
	disk, err := photoevap.NewDisk(dc)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Resampling FRIED grid for M*=%g Msun, F=%g G0...\n",
		dc.StarMass/photoevap.MSun, UVFlux)
	_, itp, err := fried.ResampleGrid(friedDir, friedFilenames,
		dc.StarMass/photoevap.MSun, UVFlux, ResampleRadii(), ResampleSigma())
	if err != nil {
		return err
	}

	snapshots := photoevap.NewSnapshotter(outputFile, rp.SnapshotInterval)

	s := &photoevap.Simulation{
		Disk:       disk,
		Integrator: new(photoevap.Integrator),
		InitFuncs: []photoevap.DomainManipulator{
			photoevap.SetTimestep(rp.Timestep),
			snapshots.Record(), // capture the initial state
		},
		RunFuncs: []photoevap.DomainManipulator{
			photoevap.LimitInRadius(),
			photoevap.TruncationRadius(),
			photoevap.FRIEDMassLoss(itp),
			photoevap.SourceTerms(),
		},
		CleanupFuncs: []photoevap.DomainManipulator{
			snapshots.Write(),
		},
	}

	s.Integrator.Instructions = []photoevap.Instruction{
		{
			Scheme: photoevap.ExplicitEuler,
			Target: func(s *photoevap.Simulation) []float64 { return s.Disk.SigmaGas },
			Derivative: func(s *photoevap.Simulation, t float64, dy []float64) {
				copy(dy, s.Disk.SGasEPE)
			},
			Description: "Gas: explicit 1st-order Euler method",
		},
		{
			Scheme: photoevap.ExplicitEuler,
			Target: func(s *photoevap.Simulation) []float64 { return s.Disk.SigmaDust },
			Derivative: func(s *photoevap.Simulation, t float64, dy []float64) {
				copy(dy, s.Disk.SDustEPE)
			},
			Description: "Dust: explicit 1st-order Euler method",
		},
	}
	s.RunFuncs = append(s.RunFuncs,
		s.Integrator.Advance(),
		photoevap.ApplyFloor(),
	)
	photoevap.SetupLostDust(s, usingFRIED)
	s.RunFuncs = append(s.RunFuncs,
		photoevap.AdvanceClock(),
		photoevap.StopAt(rp.TFinal),
		photoevap.Log(w),
		snapshots.Record(),
	)

	if err := s.Init(); err != nil {
		return err
	}
	fmt.Fprintln(w, "Running simulation...")
	if err := s.Run(); err != nil {
		return err
	}
	if err := s.Cleanup(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Finished after %.3g hours: Mlost=%g Msun, output in %s\n",
		time.Since(startTime).Hours(), disk.MLost/photoevap.MSun, outputFile)
	return nil
}

// linspace returns n evenly spaced values from lo to hi inclusive.
func linspace(lo, hi float64, n int) []float64 {
	o := make([]float64, n)
	for i := range o {
		o[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return o
}

// logspace returns n logarithmically spaced values from 10^lo to 10^hi
// inclusive.
func logspace(lo, hi float64, n int) []float64 {
	o := linspace(lo, hi, n)
	for i, v := range o {
		o[i] = math.Pow(10, v)
	}
	return o
}
