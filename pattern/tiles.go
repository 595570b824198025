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
	"seehuhn.de/go/geom/matrix"
)

// Each generator sets the tile size and appends shapes.  Shapes near
// the tile border are repeated on the opposite side, so that the tiles
// join seamlessly.

func squares(d *Document, h digest) {
	size := mapRange(float64(h.val(0, 1)), 0, 15, 10, 60)
	d.Width = size * 6
	d.Height = size * 6

	i := 0
	for y := range 6 {
		for x := range 6 {
			fill, stroke := tileStyle(h.val(i, 1))
			b := newPen(matrix.Identity)
			b.rect(float64(x)*size, float64(y)*size, size, size)
			d.Shapes = append(d.Shapes, Shape{Path: b.p, Fill: fill, Stroke: stroke, StrokeWidth: 1})
			i++
		}
	}
}

func overlappingCircles(d *Document, h digest) {
	diameter := mapRange(float64(h.val(0, 1)), 0, 15, 25, 200)
	r := diameter / 2
	d.Width = r * 6
	d.Height = r * 6

	i := 0
	for y := range 6 {
		for x := range 6 {
			v := h.val(i, 1)
			fill := &Paint{Color: fillFor(v), Opacity: opacityFor(v)}

			b := newPen(matrix.Identity)
			cx, cy := float64(x)*r, float64(y)*r
			b.circle(cx, cy, r)
			if x == 0 {
				b.circle(6*r, cy, r)
			}
			if y == 0 {
				b.circle(cx, 6*r, r)
			}
			if x == 0 && y == 0 {
				b.circle(6*r, 6*r, r)
			}
			d.Shapes = append(d.Shapes, Shape{Path: b.p, Fill: fill})
			i++
		}
	}
}

func concentricCircles(d *Document, h digest) {
	ringSize := mapRange(float64(h.val(0, 1)), 0, 15, 10, 60)
	strokeWidth := ringSize / 5
	step := ringSize + strokeWidth
	d.Width = step * 6
	d.Height = step * 6

	i := 0
	for y := range 6 {
		for x := range 6 {
			cx := float64(x)*step + step/2
			cy := float64(y)*step + step/2

			v := h.val(i, 1)
			ring := newPen(matrix.Identity)
			ring.circle(cx, cy, ringSize/2)
			d.Shapes = append(d.Shapes, Shape{
				Path:        ring.p,
				Stroke:      &Paint{Color: fillFor(v), Opacity: opacityFor(v)},
				StrokeWidth: strokeWidth,
			})

			v = h.val(39-i, 1)
			dot := newPen(matrix.Identity)
			dot.circle(cx, cy, ringSize/4)
			d.Shapes = append(d.Shapes, Shape{
				Path: dot.p,
				Fill: &Paint{Color: fillFor(v), Opacity: opacityFor(v)},
			})
			i++
		}
	}
}

// plus draws a plus sign made of three by three squares of side s.
func (b *pen) plus(s float64) {
	b.rect(s, 0, s, 3*s)
	b.rect(0, s, 3*s, s)
}

func plusSigns(d *Document, h digest) {
	sq := mapRange(float64(h.val(0, 1)), 0, 15, 10, 25)
	plusSize := sq * 3
	d.Width = sq * 12
	d.Height = sq * 12

	i := 0
	for y := range 6 {
		for x := range 6 {
			fill, stroke := tileStyle(h.val(i, 1))
			dx := float64(y % 2)
			fx, fy := float64(x), float64(y)

			left := fx*plusSize - fx*sq + dx*sq - sq
			top := fy*plusSize - fy*sq - plusSize/2
			wrapLeft := 4*plusSize - fx*sq + dx*sq - sq
			wrapTop := 4*plusSize - fy*sq - plusSize/2

			offsets := [][2]float64{{left, top}}
			if x == 0 {
				offsets = append(offsets, [2]float64{wrapLeft, top})
			}
			if y == 0 {
				offsets = append(offsets, [2]float64{left, wrapTop})
			}
			if x == 0 && y == 0 {
				offsets = append(offsets, [2]float64{wrapLeft, wrapTop})
			}
			for _, o := range offsets {
				b := newPen(translate(o[0], o[1]))
				b.plus(sq)
				d.Shapes = append(d.Shapes, Shape{Path: b.p, Fill: fill, Stroke: stroke, StrokeWidth: 1})
			}
			i++
		}
	}
}

func xes(d *Document, h digest) {
	// A lower bound of 0 would allow an empty tile.
	sq := mapRange(float64(h.val(0, 1)), 0, 15, 10, 20)
	xSize := sq * 3 * 0.943
	d.Width = xSize * 3
	d.Height = xSize * 3

	rot := rotateAbout(45, xSize/2, xSize/2)
	i := 0
	for y := range 6 {
		for x := range 6 {
			v := h.val(i, 1)
			fill := &Paint{Color: fillFor(v), Opacity: opacityFor(v)}
			fx, fy := float64(x), float64(y)

			dy := fy*xSize - xSize*0.5
			if x%2 == 1 {
				dy += xSize / 4
			}
			offsets := [][2]float64{{fx*xSize/2 - xSize/2, dy - fy*xSize/2}}
			if x == 0 {
				offsets = append(offsets, [2]float64{6*xSize/2 - xSize/2, dy - fy*xSize/2})
			}
			if y == 0 {
				dy = 6*xSize - xSize/2
				if x%2 == 1 {
					dy += xSize / 4
				}
				offsets = append(offsets, [2]float64{fx*xSize/2 - xSize/2, dy - 6*xSize/2})
			}
			if y == 5 {
				offsets = append(offsets, [2]float64{fx*xSize/2 - xSize/2, dy - 11*xSize/2})
			}
			if x == 0 && y == 0 {
				offsets = append(offsets, [2]float64{6*xSize/2 - xSize/2, dy - 6*xSize/2})
			}
			for _, o := range offsets {
				b := newPen(then(rot, translate(o[0], o[1])))
				b.plus(sq)
				d.Shapes = append(d.Shapes, Shape{Path: b.p, Fill: fill})
			}
			i++
		}
	}
}

func octagons(d *Document, h digest) {
	s := mapRange(float64(h.val(0, 1)), 0, 15, 10, 60)
	c := s * 0.33
	d.Width = s * 6
	d.Height = s * 6

	i := 0
	for y := range 6 {
		for x := range 6 {
			fill, stroke := tileStyle(h.val(i, 1))
			b := newPen(translate(float64(x)*s, float64(y)*s))
			b.polygon(c, 0, s-c, 0, s, c, s, s-c, s-c, s, c, s, 0, s-c, 0, c)
			d.Shapes = append(d.Shapes, Shape{Path: b.p, Fill: fill, Stroke: stroke, StrokeWidth: 1})
			i++
		}
	}
}

func mosaicSquares(d *Document, h digest) {
	ts := mapRange(float64(h.val(0, 1)), 0, 15, 15, 50)
	d.Width = ts * 8
	d.Height = ts * 8

	i := 0
	for y := range 4 {
		for x := range 4 {
			px := float64(x) * ts * 2
			py := float64(y) * ts * 2
			if x%2 == y%2 {
				d.mosaicOuter(px, py, ts, h.val(i, 1))
			} else {
				d.mosaicInner(px, py, ts, h.val(i, 1), h.val(i+1, 1))
			}
			i++
		}
	}
}

// mosaicTriangle adds the right triangle (0,0), (s,s), (0,s), placed by
// a scale followed by a translation.
func (d *Document) mosaicTriangle(s, tx, ty, sx, sy float64, v int) {
	fill, stroke := tileStyle(v)
	b := newPen(then(scale(sx, sy), translate(tx, ty)))
	b.polygon(0, 0, s, s, 0, s)
	d.Shapes = append(d.Shapes, Shape{Path: b.p, Fill: fill, Stroke: stroke, StrokeWidth: 1})
}

func (d *Document) mosaicInner(x, y, ts float64, v1, v2 int) {
	d.mosaicTriangle(ts, x+ts, y, -1, 1, v1)
	d.mosaicTriangle(ts, x+ts, y+2*ts, 1, -1, v1)
	d.mosaicTriangle(ts, x+ts, y+2*ts, -1, -1, v2)
	d.mosaicTriangle(ts, x+ts, y, 1, 1, v2)
}

func (d *Document) mosaicOuter(x, y, ts float64, v int) {
	d.mosaicTriangle(ts, x, y+ts, 1, -1, v)
	d.mosaicTriangle(ts, x+2*ts, y+ts, -1, -1, v)
	d.mosaicTriangle(ts, x, y+ts, 1, 1, v)
	d.mosaicTriangle(ts, x+2*ts, y+ts, -1, 1, v)
}

func plaid(d *Document, h digest) {
	type stripe struct {
		pos, width float64
		v          int
	}

	var stripes []stripe
	total := 0.0
	for i := 0; i < 36; i += 2 {
		total += float64(h.val(i, 1) + 5)
		v := h.val(i+1, 1)
		w := float64(v + 5)
		stripes = append(stripes, stripe{pos: total, width: w, v: v})
		total += w
	}
	// The horizontal and vertical stripes use the same digits, so the
	// tile is square.
	d.Width = total
	d.Height = total

	for _, s := range stripes {
		b := newPen(matrix.Identity)
		b.rect(0, s.pos, total, s.width)
		d.Shapes = append(d.Shapes, Shape{Path: b.p, Fill: &Paint{Color: fillFor(s.v), Opacity: opacityFor(s.v)}})
	}
	for _, s := range stripes {
		b := newPen(matrix.Identity)
		b.rect(s.pos, 0, s.width, total)
		d.Shapes = append(d.Shapes, Shape{Path: b.p, Fill: &Paint{Color: fillFor(s.v), Opacity: opacityFor(s.v)}})
	}
}
