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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/isofem/InputParameters"
	"github.com/notargets/isofem/mesh"
)

// MeshCmd round trips VTK mesh files
var MeshCmd = &cobra.Command{
	Use:   "mesh [files...]",
	Short: "Read VTK or SU2 meshes and write them back as <base>_out.vtk",
	Long: `Reads each ASCII VTK unstructured grid (.vtk) or SU2 native mesh (.su2),
keeping the CST, LST, Q4 and Q9 cells, and writes it next to the input as
<base>_out.vtk. Without arguments the MeshFiles of the input parameters are used.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		files := args
		if len(files) == 0 {
			var ip *InputParameters.InputParameters
			if ip, err = loadInput(); err != nil {
				return
			}
			files = ip.MeshFiles
		}
		return runMeshes(cmd.OutOrStdout(), files)
	},
}

func init() {
	rootCmd.AddCommand(MeshCmd)
}

func outputName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + "_out.vtk"
}

// runMeshes stops at the first file that cannot be read or written
func runMeshes(w io.Writer, files []string) error {
	verbose := viper.GetBool("verbose")
	for _, fn := range files {
		msh, err := mesh.ReadMeshFile(fn, verbose)
		if err != nil {
			return err
		}
		out := outputName(fn)
		if err = msh.WriteVTK(out); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(w, "%s -> %s, %s\n", fn, out, msh.Summary())
		}
	}
	return nil
}
