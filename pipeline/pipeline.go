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

// Package pipeline produces the bytes of a pattern image for a
// descriptor.
package pipeline

import (
	"bytes"
	"fmt"
	"image/png"

	"seehuhn.de/go/geopattern"
	"seehuhn.de/go/geopattern/luminance"
	"seehuhn.de/go/geopattern/pattern"
	"seehuhn.de/go/geopattern/render"
)

// Content types of the generated images.
const (
	ContentTypeSVG = "image/svg+xml"
	ContentTypePNG = "image/png"
)

// Result is an encoded image.
type Result struct {
	ContentType string
	Data        []byte
	Pattern     string
}

// Generator runs the stages needed for one image.  The zero value uses
// the native backend and the default normaliser.
type Generator struct {
	Rasterizer *render.Rasterizer
	Normalizer *luminance.Normalizer

	// Options are passed to the pattern producer.  nil selects the
	// defaults.
	Options *pattern.Options
}

// Run generates the image described by d.  Descriptors with
// ModeInvalid give geopattern.ErrInvalidMode.  Failures of later
// stages are wrapped with the name of the stage.
func (g *Generator) Run(d geopattern.Descriptor) (*Result, error) {
	if d.Mode == geopattern.ModeInvalid {
		return nil, geopattern.ErrInvalidMode
	}

	doc, err := pattern.NewWithOptions(d.Identifier, g.Options)
	if err != nil {
		return nil, fmt.Errorf("pattern: %w", err)
	}

	if d.Mode == geopattern.ModeVector {
		return &Result{
			ContentType: ContentTypeSVG,
			Data:        []byte(doc.SVG()),
			Pattern:     doc.Pattern,
		}, nil
	}

	rast := g.Rasterizer
	if rast == nil {
		rast = &render.Rasterizer{}
	}
	buf, err := rast.Rasterize(doc, d.Size)
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}

	norm := g.Normalizer
	if norm == nil {
		norm = luminance.New()
	}
	if _, err := norm.Normalize(buf); err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	out := &bytes.Buffer{}
	if err := png.Encode(out, buf.RGBA()); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return &Result{
		ContentType: ContentTypePNG,
		Data:        out.Bytes(),
		Pattern:     doc.Pattern,
	}, nil
}
