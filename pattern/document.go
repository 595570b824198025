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

package pattern

import (
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Document is a resolution-independent pattern tile.
// Coordinates use the SVG convention: the origin is the top-left corner
// and y grows downwards.
type Document struct {
	// Width and Height give the intrinsic size of the tile.
	Width, Height float64

	// Background fills the whole tile before any shape is drawn.
	Background color.NRGBA

	// Shapes are painted in order.
	Shapes []Shape

	// Pattern is the name of the generator which produced the document.
	Pattern string
}

// Shape is a path together with the paints applied to it.
type Shape struct {
	Path *path.Data

	// Fill is nil if the shape is not filled.  Filling uses the
	// nonzero winding rule.
	Fill *Paint

	// Stroke is nil if the outline is not drawn.
	Stroke      *Paint
	StrokeWidth float64
}

// Paint is a colour with an opacity in [0, 1].
type Paint struct {
	Color   color.NRGBA
	Opacity float64
}

// Colours and opacities shared by all generators.
var (
	fillDark    = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	fillLight   = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	strokeColor = color.NRGBA{A: 0xff}
)

const (
	strokeOpacity = 0.02
	opacityMin    = 0.02
	opacityMax    = 0.15
)

// fillFor returns the light fill for even values and the dark fill for
// odd ones.
func fillFor(v int) color.NRGBA {
	if v%2 == 0 {
		return fillLight
	}
	return fillDark
}

func opacityFor(v int) float64 {
	return mapRange(float64(v), 0, 15, opacityMin, opacityMax)
}

// mapRange maps v linearly from [vMin, vMax] to [dMin, dMax].
func mapRange(v, vMin, vMax, dMin, dMax float64) float64 {
	return (v-vMin)*(dMax-dMin)/(vMax-vMin) + dMin
}

// tileStyle is the filled shape with faint outline used by several
// generators.
func tileStyle(v int) (fill, stroke *Paint) {
	return &Paint{Color: fillFor(v), Opacity: opacityFor(v)},
		&Paint{Color: strokeColor, Opacity: strokeOpacity}
}

// Transformations follow the layout of matrix.Matrix:
// (x, y) -> (m[0]x + m[2]y + m[4], m[1]x + m[3]y + m[5]).

func translate(dx, dy float64) matrix.Matrix {
	return matrix.Matrix{1, 0, 0, 1, dx, dy}
}

func scale(sx, sy float64) matrix.Matrix {
	return matrix.Matrix{sx, 0, 0, sy, 0, 0}
}

// rotateAbout rotates by deg degrees (clockwise on screen) around
// (cx, cy), like the SVG transform rotate(deg, cx, cy).
func rotateAbout(deg, cx, cy float64) matrix.Matrix {
	phi := deg * math.Pi / 180
	c, s := math.Cos(phi), math.Sin(phi)
	return matrix.Matrix{c, s, -s, c, cx - c*cx + s*cy, cy - s*cx - c*cy}
}

// then returns the transformation which applies a first and b second.
func then(a, b matrix.Matrix) matrix.Matrix {
	return matrix.Matrix{
		b[0]*a[0] + b[2]*a[1],
		b[1]*a[0] + b[3]*a[1],
		b[0]*a[2] + b[2]*a[3],
		b[1]*a[2] + b[3]*a[3],
		b[0]*a[4] + b[2]*a[5] + b[4],
		b[1]*a[4] + b[3]*a[5] + b[5],
	}
}

func apply(m matrix.Matrix, x, y float64) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*x + m[2]*y + m[4],
		Y: m[1]*x + m[3]*y + m[5],
	}
}

// pen appends transformed path segments to a path.Data.
type pen struct {
	m matrix.Matrix
	p *path.Data
}

func newPen(m matrix.Matrix) *pen {
	return &pen{m: m, p: &path.Data{}}
}

func (b *pen) moveTo(x, y float64) {
	b.p.Cmds = append(b.p.Cmds, path.CmdMoveTo)
	b.p.Coords = append(b.p.Coords, apply(b.m, x, y))
}

func (b *pen) lineTo(x, y float64) {
	b.p.Cmds = append(b.p.Cmds, path.CmdLineTo)
	b.p.Coords = append(b.p.Coords, apply(b.m, x, y))
}

func (b *pen) cubeTo(x1, y1, x2, y2, x3, y3 float64) {
	b.p.Cmds = append(b.p.Cmds, path.CmdCubeTo)
	b.p.Coords = append(b.p.Coords, apply(b.m, x1, y1), apply(b.m, x2, y2), apply(b.m, x3, y3))
}

func (b *pen) close() {
	b.p.Cmds = append(b.p.Cmds, path.CmdClose)
}

func (b *pen) rect(x, y, w, h float64) {
	b.moveTo(x, y)
	b.lineTo(x+w, y)
	b.lineTo(x+w, y+h)
	b.lineTo(x, y+h)
	b.close()
}

// circle adds a circle made of four cubic Bézier arcs.
func (b *pen) circle(cx, cy, r float64) {
	const k = 0.5522847498 // 4/3·(√2 - 1)
	kr := k * r
	b.moveTo(cx+r, cy)
	b.cubeTo(cx+r, cy+kr, cx+kr, cy+r, cx, cy+r)
	b.cubeTo(cx-kr, cy+r, cx-r, cy+kr, cx-r, cy)
	b.cubeTo(cx-r, cy-kr, cx-kr, cy-r, cx, cy-r)
	b.cubeTo(cx+kr, cy-r, cx+r, cy-kr, cx+r, cy)
	b.close()
}

// polygon adds a closed polygon through the points (x0, y0, x1, y1, ...).
func (b *pen) polygon(pts ...float64) {
	b.moveTo(pts[0], pts[1])
	for i := 2; i+1 < len(pts); i += 2 {
		b.lineTo(pts[i], pts[i+1])
	}
	b.close()
}
