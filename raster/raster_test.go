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

package raster

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// thresholds force the two scan strategies: full 2D buffers for the
// first, the active edge list for the second.
var thresholds = []struct {
	name  string
	value int
}{
	{"buffers", 1 << 30},
	{"edges", 0},
}

type paintOp int

const (
	opNonZero paintOp = iota
	opEvenOdd
	opStroke
)

// rasterise paints p into a width × height coverage grid.
func rasterise(r *Rasteriser, op paintOp, p *path.Data, width, height int) []float32 {
	grid := make([]float32, width*height)
	emit := func(y, xMin int, coverage []float32) {
		if y < 0 || y >= height || xMin < 0 || xMin+len(coverage) > width {
			panic("coverage outside the clip rectangle")
		}
		copy(grid[y*width+xMin:], coverage)
	}
	switch op {
	case opNonZero:
		r.FillNonZero(p, emit)
	case opEvenOdd:
		r.FillEvenOdd(p, emit)
	case opStroke:
		r.Stroke(p, emit)
	}
	return grid
}

func sum(grid []float32) float64 {
	var total float64
	for _, c := range grid {
		total += float64(c)
	}
	return total
}

func rectPath(x0, y0, x1, y1 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		Close()
}

// circlePath appends a circle, counter-clockwise on screen if ccw is set.
func circlePath(p *path.Data, cx, cy, r float64, ccw bool) *path.Data {
	const k = 0.5522847498
	kr := k * r
	s := 1.0
	if ccw {
		s = -1
	}
	p.Cmds = append(p.Cmds,
		path.CmdMoveTo, path.CmdCubeTo, path.CmdCubeTo, path.CmdCubeTo, path.CmdCubeTo, path.CmdClose)
	p.Coords = append(p.Coords,
		vec.Vec2{X: cx + r, Y: cy},
		vec.Vec2{X: cx + r, Y: cy + s*kr}, vec.Vec2{X: cx + kr, Y: cy + s*r}, vec.Vec2{X: cx, Y: cy + s*r},
		vec.Vec2{X: cx - kr, Y: cy + s*r}, vec.Vec2{X: cx - r, Y: cy + s*kr}, vec.Vec2{X: cx - r, Y: cy},
		vec.Vec2{X: cx - r, Y: cy - s*kr}, vec.Vec2{X: cx - kr, Y: cy - s*r}, vec.Vec2{X: cx, Y: cy - s*r},
		vec.Vec2{X: cx + kr, Y: cy - s*r}, vec.Vec2{X: cx + r, Y: cy - s*kr}, vec.Vec2{X: cx + r, Y: cy},
	)
	return p
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	triangle := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	for _, th := range thresholds {
		t.Run(th.name, func(t *testing.T) {
			r := NewRasteriser(rect.Rect{URx: 10, URy: 1})
			r.smallPathThreshold = th.value
			coverage := rasterise(r, opNonZero, triangle, 10, 1)

			const epsilon = 1e-6
			for x := range 10 {
				want := float32(2*x+1) / 20
				if math.Abs(float64(coverage[x]-want)) > epsilon {
					t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, want, coverage[x])
				}
			}
		})
	}
}

func TestFractionalRectangle(t *testing.T) {
	p := rectPath(1.25, 0.5, 3.5, 2)
	want := []float32{
		0, 0.375, 0.5, 0.25,
		0, 0.75, 1, 0.5,
	}
	for _, th := range thresholds {
		t.Run(th.name, func(t *testing.T) {
			r := NewRasteriser(rect.Rect{URx: 4, URy: 2})
			r.smallPathThreshold = th.value
			got := rasterise(r, opNonZero, p, 4, 2)
			for i := range want {
				if math.Abs(float64(got[i]-want[i])) > 1e-6 {
					t.Errorf("pixel (%d,%d): got %.4f, want %.4f", i%4, i/4, got[i], want[i])
				}
			}
		})
	}
}

func TestFillRules(t *testing.T) {
	// two nested squares with the same orientation
	p := rectPath(0, 0, 10, 10)
	p.MoveTo(vec.Vec2{X: 3, Y: 3}).
		LineTo(vec.Vec2{X: 7, Y: 3}).
		LineTo(vec.Vec2{X: 7, Y: 7}).
		LineTo(vec.Vec2{X: 3, Y: 7}).
		Close()

	cases := []struct {
		op     paintOp
		centre float32
		area   float64
	}{
		{opNonZero, 1, 100},
		{opEvenOdd, 0, 84},
	}
	for _, c := range cases {
		for _, th := range thresholds {
			r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
			r.smallPathThreshold = th.value
			grid := rasterise(r, c.op, p, 10, 10)
			if got := grid[5*10+5]; math.Abs(float64(got-c.centre)) > 1e-5 {
				t.Errorf("op %d/%s: centre coverage %g, want %g", c.op, th.name, got, c.centre)
			}
			if got := sum(grid); math.Abs(got-c.area) > 1e-4 {
				t.Errorf("op %d/%s: area %g, want %g", c.op, th.name, got, c.area)
			}
		}
	}
}

func TestOpenSubpathIsClosed(t *testing.T) {
	closed := rectPath(1, 1, 6, 4)
	open := (&path.Data{}).
		MoveTo(vec.Vec2{X: 1, Y: 1}).
		LineTo(vec.Vec2{X: 6, Y: 1}).
		LineTo(vec.Vec2{X: 6, Y: 4}).
		LineTo(vec.Vec2{X: 1, Y: 4})

	r := NewRasteriser(rect.Rect{URx: 8, URy: 8})
	a := rasterise(r, opNonZero, closed, 8, 8)
	r.Reset(r.Clip)
	b := rasterise(r, opNonZero, open, 8, 8)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pixel %d: closed %g, open %g", i, a[i], b[i])
		}
	}
}

func TestCircleArea(t *testing.T) {
	const radius = 20
	for _, th := range thresholds {
		r := NewRasteriser(rect.Rect{URx: 50, URy: 50})
		r.smallPathThreshold = th.value
		r.Flatness = 0.01
		got := sum(rasterise(r, opNonZero, circlePath(&path.Data{}, 25, 25, radius, false), 50, 50))
		want := math.Pi * radius * radius
		if math.Abs(got-want)/want > 0.005 {
			t.Errorf("%s: area %g, want %g", th.name, got, want)
		}
	}
}

// TestRing checks that a circle with an oppositely oriented hole leaves
// the hole empty under both rules.
func TestRing(t *testing.T) {
	p := circlePath(&path.Data{}, 25, 25, 20, false)
	circlePath(p, 25, 25, 10, true)
	want := math.Pi * (20*20 - 10*10)
	for _, op := range []paintOp{opNonZero, opEvenOdd} {
		r := NewRasteriser(rect.Rect{URx: 50, URy: 50})
		r.Flatness = 0.01
		grid := rasterise(r, op, p, 50, 50)
		if math.Abs(float64(grid[25*50+25])) > 1e-5 {
			t.Errorf("op %d: hole painted", op)
		}
		if got := sum(grid); math.Abs(got-want)/want > 0.005 {
			t.Errorf("op %d: area %g, want %g", op, got, want)
		}
	}
}

func TestCTM(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 20, URy: 20})
	r.CTM = matrix.Matrix{2, 0, 0, 2, 1, 1}
	grid := rasterise(r, opNonZero, rectPath(0, 0, 3, 4), 20, 20)
	if got := sum(grid); math.Abs(got-48) > 1e-4 {
		t.Errorf("area %g, want 48", got)
	}
	if grid[0] != 0 || grid[1*20+1] != 1 || grid[8*20+6] != 1 || grid[9*20+7] != 0 {
		t.Error("rectangle not at the transformed position")
	}
}

func TestClip(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	grid := rasterise(r, opNonZero, rectPath(-5, -5, 5, 15), 10, 10)
	if got := sum(grid); math.Abs(got-50) > 1e-4 {
		t.Errorf("visible area %g, want 50", got)
	}

	// entirely outside
	called := false
	r.FillNonZero(rectPath(20, 20, 30, 30), func(int, int, []float32) { called = true })
	if called {
		t.Error("emit called for a path outside the clip rectangle")
	}
}

func TestStrokeArea(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 5, Y: 10}).
		LineTo(vec.Vec2{X: 15, Y: 10})
	dot := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 10, Y: 10})

	cases := []struct {
		name  string
		p     *path.Data
		width float64
		cap   graphics.LineCapStyle
		join  graphics.LineJoinStyle
		area  float64
		tol   float64
	}{
		{"butt", line, 2, graphics.LineCapButt, graphics.LineJoinMiter, 20, 1e-4},
		{"square", line, 2, graphics.LineCapSquare, graphics.LineJoinMiter, 24, 1e-4},
		{"round", line, 2, graphics.LineCapRound, graphics.LineJoinMiter, 20 + math.Pi, 0.05},
		{"box-miter", rectPath(5, 5, 15, 15), 2, graphics.LineCapButt, graphics.LineJoinMiter, 12*12 - 8*8, 1e-4},
		{"box-bevel", rectPath(5, 5, 15, 15), 2, graphics.LineCapButt, graphics.LineJoinBevel, 12*12 - 8*8 - 4*0.5, 1e-4},
		{"dot-round", dot, 4, graphics.LineCapRound, graphics.LineJoinMiter, 4 * math.Pi, 0.1},
		{"dot-butt", dot, 4, graphics.LineCapButt, graphics.LineJoinMiter, 0, 0},
	}
	for _, c := range cases {
		for _, th := range thresholds {
			t.Run(c.name+"-"+th.name, func(t *testing.T) {
				r := NewRasteriser(rect.Rect{URx: 20, URy: 20})
				r.smallPathThreshold = th.value
				r.Flatness = 0.001
				r.Width = c.width
				r.Cap = c.cap
				r.Join = c.join
				got := sum(rasterise(r, opStroke, c.p, 20, 20))
				if math.Abs(got-c.area) > c.tol {
					t.Errorf("area %g, want %g", got, c.area)
				}
			})
		}
	}
}

// TestStrategiesAgree compares the two scan strategies pixel by pixel.
func TestStrategiesAgree(t *testing.T) {
	star := (&path.Data{}).MoveTo(vec.Vec2{X: 20, Y: 2})
	for i := 1; i < 5; i++ {
		phi := float64(i) * 4 * math.Pi / 5
		star.LineTo(vec.Vec2{X: 20 + 18*math.Sin(phi), Y: 20 - 18*math.Cos(phi)})
	}
	star.Close()

	for _, op := range []paintOp{opNonZero, opEvenOdd, opStroke} {
		var grids [2][]float32
		for i, th := range thresholds {
			r := NewRasteriser(rect.Rect{URx: 40, URy: 40})
			r.smallPathThreshold = th.value
			r.Width = 1.5
			r.Join = graphics.LineJoinRound
			grids[i] = rasterise(r, op, star, 40, 40)
		}
		for i := range grids[0] {
			if d := math.Abs(float64(grids[0][i] - grids[1][i])); d > 1e-5 {
				t.Errorf("op %d: pixel (%d,%d) differs by %g", op, i%40, i/40, d)
				break
			}
		}
	}
}

func TestReuse(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 30, URy: 30})
	p := circlePath(&path.Data{}, 15, 15, 10, false)
	first := rasterise(r, opNonZero, p, 30, 30)

	r.Width = 3
	rasterise(r, opStroke, rectPath(2, 2, 28, 28), 30, 30)
	r.Reset(r.Clip)

	second := rasterise(r, opNonZero, p, 30, 30)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("pixel %d: %g before reuse, %g after", i, first[i], second[i])
		}
	}
}
