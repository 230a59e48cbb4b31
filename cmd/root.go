/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/isofem/InputParameters"
)

var (
	cfgFile     string
	inputFile   string
	profileMode string
	stopProfile interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "isofem",
	Short: "Planar isoparametric element kernel",
	Long: `Validates the CST, LST, Q4 and Q9 isoparametric elements (shape functions,
quadrature, energy derivatives) and round trips VTK meshes.
Without a subcommand, runs "check" followed by "mesh".`,
	SilenceUsage:      true,
	PersistentPreRunE: startProfile,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if stopProfile != nil {
			stopProfile.Stop()
			stopProfile = nil
		}
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var ip *InputParameters.InputParameters
		if ip, err = loadInput(); err != nil {
			return
		}
		if _, err = runChecks(cmd.OutOrStdout(), ip); err != nil {
			return
		}
		return runMeshes(cmd.OutOrStdout(), ip.MeshFiles)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.isofem.yaml)")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "inputFile", "I", "", "YAML file for input parameters like:\n\t- Seed\n\t- Models\n\t- Elements")
	rootCmd.PersistentFlags().Uint64("seed", 0, "seed for the random element and point generators")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print progress and mesh summaries")
	rootCmd.PersistentFlags().StringVar(&profileMode, "profile", "", "write a profile: cpu or mem")
	if err := viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".isofem" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".isofem")
	}

	viper.SetEnvPrefix("isofem")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func startProfile(cmd *cobra.Command, args []string) error {
	switch profileMode {
	case "":
	case "cpu":
		stopProfile = profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	case "mem":
		stopProfile = profile.Start(profile.MemProfile, profile.ProfilePath("."))
	default:
		return fmt.Errorf("unknown profile mode %q, use cpu or mem", profileMode)
	}
	return nil
}

// loadInput starts from the defaults, overlays the input file and then the
// seed from the flag, environment or config file
func loadInput() (ip *InputParameters.InputParameters, err error) {
	ip = InputParameters.NewInputParameters()
	if inputFile != "" {
		if ip, err = InputParameters.ReadFile(inputFile); err != nil {
			return
		}
	}
	if viper.IsSet("seed") {
		ip.Seed = viper.GetUint64("seed")
	}
	if viper.GetBool("verbose") {
		ip.Print()
	}
	return
}
