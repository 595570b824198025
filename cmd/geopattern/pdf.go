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

	"github.com/spf13/cobra"

	"seehuhn.de/go/geopattern"
	"seehuhn.de/go/geopattern/pattern"
	"seehuhn.de/go/geopattern/pdfexport"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Write a vector proof of a pattern as PDF",
	Args:  cobra.NoArgs,
	RunE:  runPDF,
}

func init() {
	pdfCmd.Flags().StringP("id", "i", geopattern.DefaultIdentifier, "Identifier the pattern is derived from")
	pdfCmd.Flags().StringP("output", "o", "", "Output PDF file")
	pdfCmd.Flags().Float64("scale", 1, "PDF points per pattern unit")
	addPatternFlags(pdfCmd)
	pdfCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(pdfCmd)
}

func runPDF(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	outputPath, _ := cmd.Flags().GetString("output")
	scale, _ := cmd.Flags().GetFloat64("scale")

	doc, err := pattern.NewWithOptions(id, patternOptions(cmd))
	if err != nil {
		return err
	}
	if err := pdfexport.Write(doc, outputPath, &pdfexport.Options{Scale: scale}); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}

	fmt.Printf("Pattern: %s (%gx%g)\n", doc.Pattern, doc.Width, doc.Height)
	fmt.Printf("Output:  %s\n", outputPath)
	return nil
}
