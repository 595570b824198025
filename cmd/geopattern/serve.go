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
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"seehuhn.de/go/geopattern/render"
	"seehuhn.de/go/geopattern/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve pattern images over HTTP",
	Long: `Serve pattern images over HTTP.

Routes:
  GET /{svg|png}/{identifier}
  GET /{svg|png}/{identifier}/{size}

The listen address defaults to $` + server.EnvAddr + `, or ` + server.DefaultAddr + ` if unset.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (host:port)")
	serveCmd.Flags().String("backend", "native", "Render backend (native, markup)")
	serveCmd.Flags().Int("max-size", render.DefaultMaxSize, "Largest accepted image size in pixels")
	serveCmd.Flags().Duration("read-timeout", 10*time.Second, "Maximum duration for reading a request")
	serveCmd.Flags().Duration("write-timeout", 30*time.Second, "Maximum duration for writing a response")
	addPatternFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	backend, _ := cmd.Flags().GetString("backend")
	maxSize, _ := cmd.Flags().GetInt("max-size")
	readTimeout, _ := cmd.Flags().GetDuration("read-timeout")
	writeTimeout, _ := cmd.Flags().GetDuration("write-timeout")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx, server.Config{
		Addr:         addr,
		Backend:      backend,
		MaxSize:      maxSize,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Options:      patternOptions(cmd),
	})
}
