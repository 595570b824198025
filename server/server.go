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

// Package server exposes pattern images over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"seehuhn.de/go/geopattern"
	"seehuhn.de/go/geopattern/pattern"
	"seehuhn.de/go/geopattern/pipeline"
	"seehuhn.de/go/geopattern/render"
)

// CacheControl is sent with every image.  Images never change for a
// given URL, so clients may keep them for 30 days.
const CacheControl = "public, max-age=2592000"

// DefaultAddr is used when neither Config.Addr nor the environment
// variable EnvAddr is set.
const DefaultAddr = "0.0.0.0:3000"

// EnvAddr names the environment variable holding the listen address.
const EnvAddr = "GEOPATTERN_ADDR"

const shutdownTimeout = 5 * time.Second

// AddrFromEnv returns the value of EnvAddr, or DefaultAddr if it is
// unset or empty.
func AddrFromEnv() string {
	if addr := os.Getenv(EnvAddr); addr != "" {
		return addr
	}
	return DefaultAddr
}

// NewHandler returns the HTTP handler for the routes
//
//	GET /{mode}/{identifier}
//	GET /{mode}/{identifier}/{size}
func NewHandler(gen *pipeline.Generator) http.Handler {
	h := &imageHandler{gen: gen}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{mode}/{identifier}", h.serve)
	mux.HandleFunc("GET /{mode}/{identifier}/{size}", h.serve)
	return logRequests(mux)
}

type imageHandler struct {
	gen *pipeline.Generator
}

func (h *imageHandler) serve(w http.ResponseWriter, r *http.Request) {
	d := geopattern.ParseDescriptor(
		r.PathValue("identifier"),
		r.PathValue("size"),
		r.PathValue("mode"))

	res, err := h.gen.Run(d)
	if errors.Is(err, geopattern.ErrInvalidMode) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	} else if err != nil {
		geopattern.Logger().Error("image generation failed",
			"descriptor", d.String(),
			"error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	hdr := w.Header()
	hdr.Set("Content-Type", res.ContentType)
	hdr.Set("Cache-Control", CacheControl)
	hdr.Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		geopattern.Logger().Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

// Config holds the server settings.
type Config struct {
	// Addr is the TCP listen address.  If empty, AddrFromEnv is used.
	Addr string

	// Backend names the render backend, see render.Names.
	Backend string

	// MaxSize limits the requested image size.  Zero selects
	// render.DefaultMaxSize.
	MaxSize int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Options are passed to the pattern producer.
	Options *pattern.Options

	// Ready, if set, is called with the listen address once the server
	// accepts connections.
	Ready func(net.Addr)
}

// Serve runs the HTTP server until ctx is cancelled, and then shuts it
// down gracefully.  Errors while starting up are returned immediately.
func Serve(ctx context.Context, cfg Config) error {
	render.Init()
	backend, err := render.Lookup(cfg.Backend)
	if err != nil {
		return err
	}

	gen := &pipeline.Generator{
		Rasterizer: &render.Rasterizer{Backend: backend, MaxSize: cfg.MaxSize},
		Options:    cfg.Options,
	}

	addr := cfg.Addr
	if addr == "" {
		addr = AddrFromEnv()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      NewHandler(gen),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	log := geopattern.Logger()
	log.Info("listening", "addr", ln.Addr().String(), "backend", backend.Name())
	if cfg.Ready != nil {
		cfg.Ready(ln.Addr())
	}

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
