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

package render

import (
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/geopattern/pattern"
	"seehuhn.de/go/geopattern/pixbuf"
	"seehuhn.de/go/geopattern/raster"
)

// nativeBackend draws documents with the scanline rasteriser.
type nativeBackend struct{}

func (nativeBackend) Name() string { return "native" }

func (nativeBackend) Render(doc *pattern.Document, width, height int, zoom float64) (*pixbuf.Buffer, error) {
	buf := pixbuf.New(width, height)
	bg := doc.Background
	buf.Fill(color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 0xff})

	r := raster.NewRasteriser(rect.Rect{URx: float64(width), URy: float64(height)})
	for _, s := range doc.Shapes {
		if s.Fill != nil {
			setup(r, zoom)
			r.FillNonZero(s.Path, composite(buf, s.Fill))
		}
		if s.Stroke != nil && s.StrokeWidth > 0 {
			setup(r, zoom)
			r.Width = s.StrokeWidth
			r.Stroke(s.Path, composite(buf, s.Stroke))
		}
	}
	return buf, nil
}

// setup restores the default state and installs the page transformation.
// Curves are flattened more finely than at screen resolution.
func setup(r *raster.Rasteriser, zoom float64) {
	r.Reset(r.Clip)
	r.CTM = matrix.Matrix{zoom, 0, 0, zoom, 0, 0}
	r.Flatness = raster.DefaultFlatness * 96 / DPI
}

func composite(buf *pixbuf.Buffer, p *pattern.Paint) raster.EmitFunc {
	alpha := float32(p.Opacity)
	return func(y, xMin int, coverage []float32) {
		for i, c := range coverage {
			if c > 0 {
				buf.Blend(xMin+i, y, p.Color, c*alpha)
			}
		}
	}
}
