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

// Package render converts pattern documents into pixel buffers.
//
// The output is scaled uniformly so that its shorter side matches the
// requested size.  Two backends are available: "native" draws the
// document with package raster, "markup" serialises it to SVG and draws
// the markup with oksvg and rasterx.
package render

import (
	"errors"
	"math"

	"seehuhn.de/go/geopattern"
	"seehuhn.de/go/geopattern/pattern"
	"seehuhn.de/go/geopattern/pixbuf"
)

// DPI is the density hint used when converting documents to pixels.
const DPI = 300

// DefaultMaxSize is the largest accepted target size when
// Rasterizer.MaxSize is zero.
const DefaultMaxSize = 4096

var (
	// ErrTooLarge indicates a target size above the configured maximum.
	ErrTooLarge = errors.New("requested size too large")

	// ErrDegenerateSize indicates a zero, negative or non-finite size.
	ErrDegenerateSize = errors.New("degenerate image size")

	// ErrNotInitialized is returned by Lookup before Init has been called.
	ErrNotInitialized = errors.New("render backends not initialized")

	// ErrUnknownBackend is returned by Lookup for unregistered names.
	ErrUnknownBackend = errors.New("unknown render backend")
)

// RenderError reports a failure to produce a pixel buffer.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return "render: " + e.Op + ": " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Backend draws a document into a new buffer of the given size, scaling
// document coordinates by zoom.
type Backend interface {
	Name() string
	Render(doc *pattern.Document, width, height int, zoom float64) (*pixbuf.Buffer, error)
}

// Zoom returns the scale factor which maps the shorter side of a
// document of the given intrinsic size to target pixels.  The intrinsic
// size is first rounded up to whole pixels.
func Zoom(width, height float64, target int) (float64, error) {
	if !valid(width) || !valid(height) {
		return 0, &RenderError{Op: "zoom", Err: ErrDegenerateSize}
	}
	if target <= 0 {
		return 0, &RenderError{Op: "zoom", Err: ErrDegenerateSize}
	}
	w, h := math.Ceil(width), math.Ceil(height)
	return float64(target) / min(w, h), nil
}

// OutputSize returns the pixel dimensions of a document of the given
// intrinsic size, scaled by zoom.
func OutputSize(width, height, zoom float64) (int, int) {
	return ceil(math.Ceil(width) * zoom), ceil(math.Ceil(height) * zoom)
}

// ceil rounds up, ignoring floating point noise such as in 50·2.56.
func ceil(x float64) int {
	return int(math.Ceil(x - 1e-9))
}

func valid(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}

// Rasterizer turns documents into buffers whose shorter side has the
// requested length.  The zero value uses the native backend and
// DefaultMaxSize.
type Rasterizer struct {
	Backend Backend
	MaxSize int
}

func (r *Rasterizer) backend() Backend {
	if r.Backend == nil {
		return nativeBackend{}
	}
	return r.Backend
}

func (r *Rasterizer) checkSize(target uint32) error {
	maxSize := r.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if target == 0 {
		return &RenderError{Op: "size", Err: ErrDegenerateSize}
	}
	if int64(target) > int64(maxSize) {
		return &RenderError{Op: "size", Err: ErrTooLarge}
	}
	return nil
}

// Rasterize draws doc so that the shorter side of the result is target
// pixels long.
func (r *Rasterizer) Rasterize(doc *pattern.Document, target uint32) (*pixbuf.Buffer, error) {
	if err := r.checkSize(target); err != nil {
		return nil, err
	}
	zoom, err := Zoom(doc.Width, doc.Height, int(target))
	if err != nil {
		return nil, err
	}
	w, h := OutputSize(doc.Width, doc.Height, zoom)
	if w <= 0 || h <= 0 {
		return nil, &RenderError{Op: "size", Err: ErrDegenerateSize}
	}

	b := r.backend()
	geopattern.Logger().Debug("rasterize",
		"backend", b.Name(),
		"pattern", doc.Pattern,
		"zoom", zoom,
		"width", w,
		"height", h)

	buf, err := b.Render(doc, w, h, zoom)
	if err != nil {
		var rErr *RenderError
		if !errors.As(err, &rErr) {
			err = &RenderError{Op: b.Name(), Err: err}
		}
		return nil, err
	}
	return buf, nil
}
