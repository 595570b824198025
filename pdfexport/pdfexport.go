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

// Package pdfexport writes pattern documents as single-page PDF files.
//
// PDF files are used as print proofs.  Shape opacities are blended with
// the background colour in advance, so that the output does not depend
// on transparency support in the viewer.
package pdfexport

import (
	"errors"
	stdcolor "image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/geopattern/pattern"
)

// ErrEmptyDocument is returned for documents without area.
var ErrEmptyDocument = errors.New("document has no area")

// Options control the page layout.
type Options struct {
	// Scale is the number of PDF points per document unit.  Zero means 1.
	Scale float64
}

// Write stores doc as a PDF file.  The page has the size of the
// document multiplied by opt.Scale.  A nil opt selects the defaults.
func Write(doc *pattern.Document, fname string, opt *Options) error {
	if !(doc.Width > 0 && doc.Height > 0) {
		return ErrEmptyDocument
	}
	scale := 1.0
	if opt != nil && opt.Scale > 0 {
		scale = opt.Scale
	}

	w, h := doc.Width*scale, doc.Height*scale
	page, err := document.CreateSinglePage(fname, &pdf.Rectangle{URx: w, URy: h}, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(rgb(doc.Background))
	page.Rectangle(0, 0, w, h)
	page.Fill()

	// PDF origin is bottom-left; documents use top-left.
	page.Transform(matrix.Matrix{scale, 0, 0, -scale, 0, h})

	page.SetLineCap(graphics.LineCapButt)
	page.SetLineJoin(graphics.LineJoinMiter)
	for _, s := range doc.Shapes {
		if s.Fill != nil {
			page.SetFillColor(rgb(flatten(s.Fill, doc.Background)))
			drawPath(page, s.Path)
			page.Fill()
		}
		if s.Stroke != nil && s.StrokeWidth > 0 {
			page.SetStrokeColor(rgb(flatten(s.Stroke, doc.Background)))
			page.SetLineWidth(s.StrokeWidth)
			drawPath(page, s.Path)
			page.Stroke()
		}
	}

	return page.Close()
}

func drawPath(page *document.Page, p *path.Data) {
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			page.ClosePath()
		}
	}
}

// flatten returns the colour seen when p is painted over bg.
func flatten(p *pattern.Paint, bg stdcolor.NRGBA) stdcolor.NRGBA {
	a := min(max(p.Opacity, 0), 1)
	mix := func(c, b uint8) uint8 {
		return uint8(float64(c)*a + float64(b)*(1-a) + 0.5)
	}
	return stdcolor.NRGBA{
		R: mix(p.Color.R, bg.R),
		G: mix(p.Color.G, bg.G),
		B: mix(p.Color.B, bg.B),
		A: 0xff,
	}
}

func rgb(c stdcolor.NRGBA) color.Color {
	return color.DeviceRGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}
