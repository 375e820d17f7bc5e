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

// Package photoevaputil provides configuration and command-line handling
// for the photoevap disk model.
package photoevaputil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	photoevap "github.com/Rossella4712/External-Photoevaporation-FRIEDv2-module-dustpy"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to photoevap.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "UVFlux",
			usage: `
              UVFlux is the external FUV field irradiating the disk [G0].`,
			defaultVal: 1000.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "FriedDir",
			usage: `
              FriedDir is the directory holding the FRIED grid data files.`,
			defaultVal: "FRIEDV2",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "FriedFilenames",
			usage: `
              FriedFilenames lists the FRIED grid data files to read from
              FriedDir. Each file holds the grid for one stellar mass, which
              is encoded in the file name (e.g. '0p3Msol' is 0.3 solar
              masses).`,
			defaultVal: []string{
				"FRIEDV2_0p1Msol_fPAH1p0_growth.dat",
				"FRIEDV2_0p3Msol_fPAH1p0_growth.dat",
				"FRIEDV2_0p6Msol_fPAH1p0_growth.dat",
				"FRIEDV2_1p0Msol_fPAH1p0_growth.dat",
				"FRIEDV2_1p5Msol_fPAH1p0_growth.dat",
				"FRIEDV2_3p0Msol_fPAH1p0_growth.dat",
			},
			flagsets: []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "SigmaFloor",
			usage: `
              SigmaFloor is the floor value for the gas surface density
              [g/cm²]. Cells at or below the floor are considered empty.`,
			defaultVal: 1.0e-100,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "usingFRIED",
			usage: `
              usingFRIED specifies whether the FRIED photoevaporative dust
              source term drives the lost-dust tracker. If false, the tracker
              links against the generic external dust sink instead.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path of the NetCDF snapshot output file.`,
			shorthand:  "o",
			defaultVal: "photoevap_output.nc",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Disk.NCells",
			usage: `
              Disk.NCells is the number of radial grid cells.`,
			defaultVal: 100,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Disk.RIn",
			usage: `
              Disk.RIn is the inner edge of the radial grid [AU].`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Disk.ROut",
			usage: `
              Disk.ROut is the outer edge of the radial grid [AU].`,
			defaultVal: 1000.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Disk.StarMass",
			usage: `
              Disk.StarMass is the mass of the central star [Msun].`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Disk.Mass",
			usage: `
              Disk.Mass is the initial gas disk mass [Msun].`,
			defaultVal: 0.05,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Disk.Rc",
			usage: `
              Disk.Rc is the characteristic radius of the initial
              self-similar surface density profile [AU].`,
			defaultVal: 60.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Disk.DustToGas",
			usage: `
              Disk.DustToGas is the initial dust-to-gas mass ratio.`,
			defaultVal: 0.01,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Run.TFinal",
			usage: `
              Run.TFinal is the simulation end time [yr].`,
			defaultVal: 1.0e6,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Run.Timestep",
			usage: `
              Run.Timestep is the fixed integration time step [yr].`,
			defaultVal: 100.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Run.SnapshotInterval",
			usage: `
              Run.SnapshotInterval is the simulation time between two
              snapshots of the disk state [yr].`,
			defaultVal: 1.0e4,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("PHOTOEVAP")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("photoevap: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "photoevap",
	Short: "A model of externally photoevaporating protoplanetary disks.",
	Long: `photoevap models the outside-in erosion of a protoplanetary disk by
external photoevaporation, with mass loss rates interpolated from the FRIED
grid (Haworth et al. 2018).

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the format
'PHOTOEVAP_var' where 'var' is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration
information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of photoevap.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("photoevap v%s\n", photoevap.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd is a command that runs a photoevaporation simulation.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the model.",
	Long: `run evolves the disk under external photoevaporation from t=0 to
Run.TFinal, writing periodic snapshots of the disk state to OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(
			cmd.OutOrStdout(),
			Cfg.GetFloat64("UVFlux"),
			Cfg.GetString("FriedDir"),
			GetStringSlice("FriedFilenames", Cfg),
			Cfg.GetBool("usingFRIED"),
			Cfg.GetString("OutputFile"),
			DiskConfig(Cfg),
			RunConfig(Cfg),
		)
	},
	DisableAutoGenTag: true,
}
