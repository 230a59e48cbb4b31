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
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/isofem/FE2D"
	"github.com/notargets/isofem/InputParameters"
	"github.com/notargets/isofem/models"
	"github.com/notargets/isofem/utils"
	"github.com/notargets/isofem/validate"
)

// CheckCmd runs the model and element validation suites
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the shape functions, quadrature and energy derivatives of each element",
	Long: `Runs the model derivative check for each configured model, then for each
element type: dirac, sum to unity, eta derivative, quadrature, quadrature
exactness, isoparametric and energy derivative checks. A failing check is
reported and the remaining checks still run.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var ip *InputParameters.InputParameters
		if ip, err = loadInput(); err != nil {
			return
		}
		_, err = runChecks(cmd.OutOrStdout(), ip)
		return
	},
}

func init() {
	rootCmd.AddCommand(CheckCmd)
}

// harnessConfig applies the non zero trial overrides to the defaults
func harnessConfig(tr InputParameters.Trials) (cfg validate.Config) {
	cfg = validate.DefaultConfig()
	override := func(dst *int, val int) {
		if val != 0 {
			*dst = val
		}
	}
	override(&cfg.Points, tr.Points)
	override(&cfg.Elements, tr.Elements)
	override(&cfg.Fields, tr.Fields)
	override(&cfg.Retries, tr.Retries)
	override(&cfg.SamplePoints, tr.SamplePoints)
	if tr.GradientScale != 0 {
		cfg.GradientScale = tr.GradientScale
	}
	return
}

// runChecks prints one line per check and returns the number of failures.
// The error is only set when the input cannot be used.
func runChecks(w io.Writer, ip *InputParameters.InputParameters) (failures int, err error) {
	var (
		cfg          = harnessConfig(ip.Trials)
		rnd          = utils.NewRandom(ip.Seed)
		verbose      = viper.GetBool("verbose")
		ets          []utils.ElementType
		elementModel models.Model
	)
	if err = cfg.Validate(); err != nil {
		return
	}
	if ets, err = ip.ElementTypes(); err != nil {
		return
	}
	report := func(results []validate.Result) {
		for _, r := range results {
			fmt.Fprintln(w, r)
		}
		failures += validate.Failures(results)
	}
	for _, name := range ip.ModelNames() {
		var model models.Model
		if model, err = models.New(name, ip.Models[name]); err != nil {
			return
		}
		report(validate.Run(validate.ModelSuite(model, rnd, cfg)))
	}
	if elementModel, err = models.New(ip.ElementModel, ip.Models[ip.ElementModel]); err != nil {
		return
	}
	for _, et := range ets {
		if verbose {
			fmt.Fprintf(w, "checking %s with the %s model\n", et, elementModel.Name())
		}
		report(validate.Run(validate.Suite(FE2D.GetReference(et), elementModel, rnd, cfg)))
	}
	if verbose {
		fmt.Fprintf(w, "%d checks failed\n", failures)
	}
	return
}
