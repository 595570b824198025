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
	"bytes"
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"seehuhn.de/go/geopattern"
	"seehuhn.de/go/geopattern/pattern"
	"seehuhn.de/go/geopattern/pixbuf"
)

// markupBackend draws the SVG serialisation of a document.
type markupBackend struct{}

func (markupBackend) Name() string { return "markup" }

func (markupBackend) Render(doc *pattern.Document, width, height int, zoom float64) (*pixbuf.Buffer, error) {
	icon, err := parseMarkup([]byte(doc.SVG()))
	if err != nil {
		return nil, err
	}
	return drawIcon(icon, width, height), nil
}

func parseMarkup(svg []byte) (*oksvg.SvgIcon, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, &RenderError{Op: "parse", Err: err}
	}
	return icon, nil
}

// drawIcon stretches the view box of icon over a width × height canvas.
func drawIcon(icon *oksvg.SvgIcon, width, height int) *pixbuf.Buffer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	icon.SetTarget(0, 0, float64(width), float64(height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return pixbuf.FromRGBA(img)
}

// RasterizeMarkup draws SVG markup so that the shorter side of the
// result is target pixels long.  Markup which cannot be parsed, or
// which has an empty view box, gives a *RenderError.
func (r *Rasterizer) RasterizeMarkup(svg []byte, target uint32) (*pixbuf.Buffer, error) {
	if err := r.checkSize(target); err != nil {
		return nil, err
	}
	icon, err := parseMarkup(svg)
	if err != nil {
		return nil, err
	}

	zoom, err := Zoom(icon.ViewBox.W, icon.ViewBox.H, int(target))
	if err != nil {
		return nil, err
	}
	w, h := OutputSize(icon.ViewBox.W, icon.ViewBox.H, zoom)
	geopattern.Logger().Debug("rasterize markup",
		"zoom", zoom,
		"width", w,
		"height", h)
	return drawIcon(icon, w, h), nil
}
