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
	"os"

	"github.com/ctessum/cdf"
)

// Snapshotter collects periodic snapshots of the disk state during a run
// and writes them to a NetCDF file when the simulation finishes.
type Snapshotter struct {
	path     string
	interval float64 // seconds of simulation time between snapshots
	next     float64

	times     []float64
	sigmaGas  [][]float64
	sigmaDust [][]float64
	sigmaLost [][]float64
	massLoss  [][]float64
	rTrunc    []float64
	rLimIn    []float64
	mLost     []float64
}

// NewSnapshotter creates a Snapshotter writing to path, recording a snapshot
// every interval seconds of simulation time (and always at t=0).
func NewSnapshotter(path string, interval float64) *Snapshotter {
	return &Snapshotter{path: path, interval: interval}
}

// Record returns a function that stores a snapshot of the disk state
// whenever the simulation time has reached the next recording point.
func (sn *Snapshotter) Record() DomainManipulator {
	return func(s *Simulation) error {
		if s.T < sn.next {
			return nil
		}
		sn.next += sn.interval
		d := s.Disk
		sn.times = append(sn.times, s.T)
		sn.sigmaGas = append(sn.sigmaGas, append([]float64(nil), d.SigmaGas...))
		sn.sigmaDust = append(sn.sigmaDust, append([]float64(nil), d.SigmaDust...))
		sn.sigmaLost = append(sn.sigmaLost, append([]float64(nil), d.SigmaLost...))
		sn.massLoss = append(sn.massLoss, append([]float64(nil), d.MassLoss...))
		sn.rTrunc = append(sn.rTrunc, d.RTrunc)
		sn.rLimIn = append(sn.rLimIn, d.RLimIn)
		sn.mLost = append(sn.mLost, d.MLost)
		return nil
	}
}

// Write returns a function that writes the collected snapshots to the
// output file in NetCDF format. It should run as a cleanup function.
func (sn *Snapshotter) Write() DomainManipulator {
	return func(s *Simulation) error {
		nSnap := len(sn.times)
		if nSnap == 0 {
			return nil
		}
		nCell := len(s.Disk.R)

		h := cdf.NewHeader([]string{"snapshot", "cell"}, []int{nSnap, nCell})
		h.AddVariable("time", []string{"snapshot"}, []float64{0.})
		h.AddAttribute("time", "units", "s")
		h.AddVariable("r", []string{"cell"}, []float64{0.})
		h.AddAttribute("r", "units", "cm")
		h.AddAttribute("r", "description", "cell center radius")
		for _, v := range []struct{ name, units, desc string }{
			{"SigmaGas", "g cm-2", "gas surface density"},
			{"SigmaDust", "g cm-2", "dust surface density"},
			{"SigmaLost", "g cm-2", "surface density of dust lost through external photoevaporation"},
			{"MassLoss", "g s-1", "photoevaporative mass loss rate per cell"},
		} {
			h.AddVariable(v.name, []string{"snapshot", "cell"}, []float64{0.})
			h.AddAttribute(v.name, "units", v.units)
			h.AddAttribute(v.name, "description", v.desc)
		}
		for _, v := range []struct{ name, units, desc string }{
			{"rTrunc", "cm", "truncation radius of the evaporation front"},
			{"rLimIn", "cm", "radius enclosing 90% of the gas disk mass"},
			{"MLost", "g", "total mass of lost dust"},
		} {
			h.AddVariable(v.name, []string{"snapshot"}, []float64{0.})
			h.AddAttribute(v.name, "units", v.units)
			h.AddAttribute(v.name, "description", v.desc)
		}
		h.Define()
		for _, err := range h.Check() {
			return fmt.Errorf("photoevap: creating snapshot file header: %v", err)
		}

		ff, err := os.Create(sn.path)
		if err != nil {
			return fmt.Errorf("photoevap: creating snapshot file: %v", err)
		}
		defer ff.Close()
		f, err := cdf.Create(ff, h)
		if err != nil {
			return fmt.Errorf("photoevap: writing snapshot file header: %v", err)
		}

		write1d := func(v string, data []float64) error {
			w := f.Writer(v, []int{0}, []int{len(data)})
			if _, err := w.Write(data); err != nil {
				return fmt.Errorf("photoevap: writing snapshot variable %s: %v", v, err)
			}
			return nil
		}
		write2d := func(v string, data [][]float64) error {
			flat := make([]float64, 0, nSnap*nCell)
			for _, row := range data {
				flat = append(flat, row...)
			}
			w := f.Writer(v, []int{0, 0}, []int{nSnap, nCell})
			if _, err := w.Write(flat); err != nil {
				return fmt.Errorf("photoevap: writing snapshot variable %s: %v", v, err)
			}
			return nil
		}

		if err := write1d("time", sn.times); err != nil {
			return err
		}
		if err := write1d("r", s.Disk.R); err != nil {
			return err
		}
		for _, v := range []struct {
			name string
			data [][]float64
		}{
			{"SigmaGas", sn.sigmaGas},
			{"SigmaDust", sn.sigmaDust},
			{"SigmaLost", sn.sigmaLost},
			{"MassLoss", sn.massLoss},
		} {
			if err := write2d(v.name, v.data); err != nil {
				return err
			}
		}
		for _, v := range []struct {
			name string
			data []float64
		}{
			{"rTrunc", sn.rTrunc},
			{"rLimIn", sn.rLimIn},
			{"MLost", sn.mLost},
		} {
			if err := write1d(v.name, v.data); err != nil {
				return err
			}
		}
		return nil
	}
}
