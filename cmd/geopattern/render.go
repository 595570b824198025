// seehuhn.de/go/geopattern - deterministic pattern images
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"seehuhn.de/go/geopattern"
	"seehuhn.de/go/geopattern/pipeline"
	"seehuhn.de/go/geopattern/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write a pattern image to a file",
	Long: `Write a pattern image to a file.

The format is taken from the extension of the output file (.svg or .png)
unless --mode is given.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("id", "i", geopattern.DefaultIdentifier, "Identifier the pattern is derived from")
	renderCmd.Flags().StringP("output", "o", "", "Output file")
	renderCmd.Flags().String("mode", "", "Output format (svg, png)")
	renderCmd.Flags().Uint32P("size", "s", geopattern.DefaultSize, "Length of the shorter image side in pixels")
	renderCmd.Flags().String("backend", "native", "Render backend (native, markup)")
	addPatternFlags(renderCmd)
	renderCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	outputPath, _ := cmd.Flags().GetString("output")
	mode, _ := cmd.Flags().GetString("mode")
	size, _ := cmd.Flags().GetUint32("size")
	backendName, _ := cmd.Flags().GetString("backend")

	if mode == "" {
		mode = strings.TrimPrefix(strings.ToLower(filepath.Ext(outputPath)), ".")
	}
	d := geopattern.ParseDescriptor(id, strconv.FormatUint(uint64(size), 10), mode)
	if d.Mode == geopattern.ModeInvalid {
		return fmt.Errorf("cannot determine output format for %q, use --mode", outputPath)
	}

	render.Init()
	backend, err := render.Lookup(backendName)
	if err != nil {
		return err
	}
	gen := &pipeline.Generator{
		Rasterizer: &render.Rasterizer{Backend: backend},
		Options:    patternOptions(cmd),
	}
	res, err := gen.Run(d)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, res.Data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Printf("Pattern: %s (%s)\n", res.Pattern, d.Mode)
	fmt.Printf("Output:  %s (%d bytes)\n", outputPath, len(res.Data))
	return nil
}
