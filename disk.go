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
	"math"

	"gonum.org/v1/gonum/floats"
)

// physical constants (cgs)
const (
	MSun = 1.98892e33     // g, solar mass
	AU   = 1.495978707e13 // cm, astronomical unit
	Year = 3.15576e7      // s, Julian year
)

// Disk holds the radial state of a protoplanetary disk on a fixed
// logarithmic grid. Each field is written by exactly one updater.
type Disk struct {
	R    []float64 // cell center radii [cm]
	Rint []float64 // cell interface radii [cm], len(R)+1
	Area []float64 // annulus area of each cell [cm²]

	SigmaGas  []float64 // gas surface density [g/cm²]
	SigmaDust []float64 // dust surface density [g/cm²]
	SigmaLost []float64 // surface density of dust lost to photoevaporation [g/cm²]

	SGasEPE  []float64 // gas surface density source term from external photoevaporation [g/cm²/s]
	SDustEPE []float64 // dust surface density source term from external photoevaporation [g/cm²/s]
	SDustExt []float64 // generic external dust sink, used when the FRIED source term is disabled [g/cm²/s]

	MassLoss []float64 // photoevaporative mass loss rate of each cell [g/s]

	RLimIn float64 // radius enclosing 90% of the gas disk mass [cm]
	RTrunc float64 // truncation radius of the evaporation front [cm]
	MLost  float64 // total mass of lost dust [g]

	StarMass   float64 // stellar mass [g]
	SigmaFloor float64 // floor value for the gas surface density [g/cm²]
}

// DiskConfig holds the parameters for creating a new disk.
type DiskConfig struct {
	NCells int     // number of radial cells
	RIn    float64 // inner grid edge [cm]
	ROut   float64 // outer grid edge [cm]

	StarMass  float64 // stellar mass [g]
	MDisk     float64 // initial gas disk mass [g]
	RC        float64 // characteristic radius of the initial profile [cm]
	DustToGas float64 // initial dust-to-gas mass ratio

	SigmaFloor float64 // gas surface density floor [g/cm²]
}

// NewDisk creates a disk on a logarithmic radial grid with a
// Lynden-Bell & Pringle (1974) self-similar initial surface density profile,
// normalized so that the total gas mass equals cfg.MDisk.
func NewDisk(cfg DiskConfig) (*Disk, error) {
	if cfg.NCells < 2 {
		return nil, fmt.Errorf("photoevap: disk needs at least 2 cells, got %d", cfg.NCells)
	}
	if cfg.RIn <= 0 || cfg.ROut <= cfg.RIn {
		return nil, fmt.Errorf("photoevap: invalid grid extent [%g, %g] cm", cfg.RIn, cfg.ROut)
	}
	if cfg.StarMass <= 0 || cfg.MDisk <= 0 || cfg.RC <= 0 {
		return nil, fmt.Errorf("photoevap: star mass, disk mass and characteristic radius must be positive")
	}
	if cfg.SigmaFloor <= 0 {
		return nil, fmt.Errorf("photoevap: surface density floor must be positive, got %g", cfg.SigmaFloor)
	}

	n := cfg.NCells
	d := &Disk{
		R:          make([]float64, n),
		Rint:       make([]float64, n+1),
		Area:       make([]float64, n),
		SigmaGas:   make([]float64, n),
		SigmaDust:  make([]float64, n),
		SigmaLost:  make([]float64, n),
		SGasEPE:    make([]float64, n),
		SDustEPE:   make([]float64, n),
		SDustExt:   make([]float64, n),
		MassLoss:   make([]float64, n),
		StarMass:   cfg.StarMass,
		SigmaFloor: cfg.SigmaFloor,
	}

	ratio := cfg.ROut / cfg.RIn
	for i := 0; i <= n; i++ {
		d.Rint[i] = cfg.RIn * math.Pow(ratio, float64(i)/float64(n))
	}
	for i := 0; i < n; i++ {
		d.R[i] = math.Sqrt(d.Rint[i] * d.Rint[i+1])
		d.Area[i] = math.Pi * (d.Rint[i+1]*d.Rint[i+1] - d.Rint[i]*d.Rint[i])
	}

	// Self-similar profile Σ ∝ (r/rc)^-1 exp(-r/rc), scaled to the
	// requested disk mass.
	for i, r := range d.R {
		x := r / cfg.RC
		d.SigmaGas[i] = math.Exp(-x) / x
	}
	mass := floats.Dot(d.SigmaGas, d.Area)
	floats.Scale(cfg.MDisk/mass, d.SigmaGas)
	for i := range d.SigmaGas {
		if d.SigmaGas[i] < cfg.SigmaFloor {
			d.SigmaGas[i] = cfg.SigmaFloor
		}
		d.SigmaDust[i] = cfg.DustToGas * d.SigmaGas[i]
	}

	// The derived radii start at the outer grid edge, as in an untouched disk.
	d.RLimIn = d.R[n-1]
	d.RTrunc = d.R[n-1]
	return d, nil
}

// GasMass returns the total gas mass of the disk [g].
func (d *Disk) GasMass() float64 {
	return floats.Dot(d.SigmaGas, d.Area)
}

// DustMass returns the total dust mass of the disk [g].
func (d *Disk) DustMass() float64 {
	return floats.Dot(d.SigmaDust, d.Area)
}

// EnclosedGasMass returns the cumulative gas mass inside each cell's outer
// interface [g].
func (d *Disk) EnclosedGasMass() []float64 {
	m := make([]float64, len(d.R))
	for i := range m {
		m[i] = d.SigmaGas[i] * d.Area[i]
	}
	return floats.CumSum(m, m)
}
