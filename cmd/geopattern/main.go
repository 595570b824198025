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

// Command geopattern serves and renders deterministic pattern images.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"seehuhn.de/go/geopattern"
	"seehuhn.de/go/geopattern/pattern"
)

var rootCmd = &cobra.Command{
	Use:   "geopattern",
	Short: "Generate geometric pattern images from identifiers",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		geopattern.SetLogger(slog.New(h))
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug messages")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// addPatternFlags registers the flags read by patternOptions.
func addPatternFlags(cmd *cobra.Command) {
	cmd.Flags().String("pattern", "", "Force a pattern generator instead of choosing by hash")
	cmd.Flags().String("base-color", "", "Base colour for the background, as #rrggbb or an SVG colour name")
}

func patternOptions(cmd *cobra.Command) *pattern.Options {
	name, _ := cmd.Flags().GetString("pattern")
	base, _ := cmd.Flags().GetString("base-color")
	if name == "" && base == "" {
		return nil
	}
	return &pattern.Options{Pattern: name, BaseColor: base}
}
