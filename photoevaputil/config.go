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
	"strings"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	photoevap "github.com/Rossella4712/External-Photoevaporation-FRIEDv2-module-dustpy"
)

// GetStringSlice returns a string-slice configuration variable. Slices can
// arrive as native lists from a configuration file or as a single
// comma-separated string from a command-line flag or environment variable.
func GetStringSlice(varName string, cfg *viper.Viper) []string {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case []string:
		return v
	case []interface{}:
		return cast.ToStringSlice(i)
	case string:
		s := strings.Trim(v, "[]")
		if s == "" {
			return nil
		}
		var o []string
		for _, f := range strings.Split(s, ",") {
			o = append(o, strings.TrimSpace(f))
		}
		return o
	default:
		panic(fmt.Errorf("invalid type for string slice variable %s: %#v", varName, i))
	}
}

// DiskConfig assembles the disk parameters from the configuration,
// converting the user-facing AU and solar mass units to cgs.
func DiskConfig(cfg *viper.Viper) photoevap.DiskConfig {
	return photoevap.DiskConfig{
		NCells:     cfg.GetInt("Disk.NCells"),
		RIn:        cfg.GetFloat64("Disk.RIn") * photoevap.AU,
		ROut:       cfg.GetFloat64("Disk.ROut") * photoevap.AU,
		StarMass:   cfg.GetFloat64("Disk.StarMass") * photoevap.MSun,
		MDisk:      cfg.GetFloat64("Disk.Mass") * photoevap.MSun,
		RC:         cfg.GetFloat64("Disk.Rc") * photoevap.AU,
		DustToGas:  cfg.GetFloat64("Disk.DustToGas"),
		SigmaFloor: cfg.GetFloat64("SigmaFloor"),
	}
}

// RunParams holds the time-loop parameters of a simulation run, in seconds.
type RunParams struct {
	TFinal           float64
	Timestep         float64
	SnapshotInterval float64
}

// RunConfig assembles the run parameters from the configuration, converting
// the user-facing years to seconds.
func RunConfig(cfg *viper.Viper) RunParams {
	return RunParams{
		TFinal:           cfg.GetFloat64("Run.TFinal") * photoevap.Year,
		Timestep:         cfg.GetFloat64("Run.Timestep") * photoevap.Year,
		SnapshotInterval: cfg.GetFloat64("Run.SnapshotInterval") * photoevap.Year,
	}
}
