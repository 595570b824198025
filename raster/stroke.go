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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a flattened piece of a subpath, in user space.
type strokeSegment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent from A to B
	N    vec.Vec2 // unit normal, T rotated by +90°
}

// Stroke paints the outline of p using Width, Cap, Join and MiterLimit.
//
// Every subpath is turned into a closed polygon around the centre line;
// all polygons are then filled together with the nonzero rule, so that
// overlaps are painted only once.
func (r *Rasteriser) Stroke(p *path.Data, emit EmitFunc) {
	r.flattenForStroke(p)
	if len(r.segsOffsets) == 0 && len(r.degeneratePoints) == 0 {
		return
	}

	r.outline = r.outline[:0]
	r.outlineOffsets = r.outlineOffsets[:0]

	// A subpath without direction only shows up with round caps, as a dot.
	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.degeneratePoints {
			start := len(r.outline)
			r.addArc(pt, r.Width/2, vec.Vec2{X: 1}, 2*math.Pi, true)
			r.outlineOffsets = append(r.outlineOffsets, start)
		}
	}

	for i := range r.segsOffsets {
		start := len(r.outline)
		r.strokeSubpath(r.subpathSegments(i), r.subpathClosed[i])
		if len(r.outline)-start >= 3 {
			r.outlineOffsets = append(r.outlineOffsets, start)
		} else {
			r.outline = r.outline[:start]
		}
	}

	r.beginEdges()
	for i, start := range r.outlineOffsets {
		end := len(r.outline)
		if i+1 < len(r.outlineOffsets) {
			end = r.outlineOffsets[i+1]
		}
		poly := r.outline[start:end]
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}
	r.scan(fillNonZero, emit)
}

func (r *Rasteriser) subpathSegments(i int) []strokeSegment {
	end := len(r.segs)
	if i+1 < len(r.segsOffsets) {
		end = r.segsOffsets[i+1]
	}
	return r.segs[r.segsOffsets[i]:end]
}

// flattenForStroke splits p into flattened subpaths.  Subpaths which
// consist of a single point are collected in r.degeneratePoints.
func (r *Rasteriser) flattenForStroke(p *path.Data) {
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]
	r.subpathClosed = r.subpathClosed[:0]
	r.degeneratePoints = r.degeneratePoints[:0]

	var current, start vec.Vec2
	first := 0     // index of the first segment of the current subpath
	open := false  // inside a subpath
	drawn := false // the subpath has a drawing command

	finish := func(closed bool) {
		switch {
		case len(r.segs) > first:
			r.segsOffsets = append(r.segsOffsets, first)
			r.subpathClosed = append(r.subpathClosed, closed)
		case drawn || closed:
			r.degeneratePoints = append(r.degeneratePoints, start)
		}
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				finish(false)
			}
			current = p.Coords[k]
			start = current
			first = len(r.segs)
			open = true
			drawn = false
			k++

		case path.CmdLineTo:
			if open {
				drawn = true
				r.addStrokeSegment(current, p.Coords[k])
				current = p.Coords[k]
			}
			k++

		case path.CmdQuadTo:
			if open {
				drawn = true
				r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], r.addStrokeSegment)
				current = p.Coords[k+1]
			}
			k += 2

		case path.CmdCubeTo:
			if open {
				drawn = true
				r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addStrokeSegment)
				current = p.Coords[k+2]
			}
			k += 3

		case path.CmdClose:
			if open {
				if current != start {
					r.addStrokeSegment(current, start)
				}
				finish(true)
				current = start
				first = len(r.segs)
				open = false
				drawn = false
			}
		}
	}
	if open {
		finish(false)
	}
}

func (r *Rasteriser) addStrokeSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	l := d.Length()
	if l < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / l)
	r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// cross returns the z component of t1 × t2.
func cross(t1, t2 vec.Vec2) float64 {
	return t1.X*t2.Y - t1.Y*t2.X
}

// cornerForward handles the +N side of the corner at P, where the path
// turns from T1 (normal N1) to T2 (normal N2).  The result reports
// whether the offset point of the following segment has been replaced
// by an inner intersection and must be skipped.
func (r *Rasteriser) cornerForward(P, T1, T2, N1, N2 vec.Vec2, d float64) bool {
	s := cross(T1, T2)
	switch {
	case math.Abs(s) < collinearityThreshold:
		r.outline = append(r.outline, P.Add(N1.Mul(d)))
		return false
	case s > 0:
		return r.addInnerIntersectionOrOffsets(P, T1, T2, N1, N2, d, true)
	default:
		r.outline = append(r.outline, P.Add(N1.Mul(d)))
		r.addJoin(P, T1, T2, d, true)
		return false
	}
}

// strokeSubpath appends the outline polygon of one subpath: the +N side
// walked forwards, then the -N side walked backwards.  Joins are only
// added on the outer side of each corner.
func (r *Rasteriser) strokeSubpath(segs []strokeSegment, closed bool) {
	if len(segs) == 0 {
		return
	}
	d := r.Width / 2
	first := &segs[0]
	last := &segs[len(segs)-1]

	if closed {
		r.strokeClosed(segs, d)
		return
	}

	r.addCap(first.A, first.T.Mul(-1), d)

	skip := false
	for i := range segs {
		seg := &segs[i]
		if !skip {
			r.outline = append(r.outline, seg.A.Add(seg.N.Mul(d)))
		}
		skip = false
		if i == len(segs)-1 {
			r.outline = append(r.outline, seg.B.Add(seg.N.Mul(d)))
			break
		}
		next := &segs[i+1]
		skip = r.cornerForward(seg.B, seg.T, next.T, seg.N, next.N, d)
	}

	r.addCap(last.B, last.T, d)

	skip = false
	for i := len(segs) - 1; i >= 0; i-- {
		seg := &segs[i]
		if !skip {
			r.outline = append(r.outline, seg.B.Sub(seg.N.Mul(d)))
		}
		skip = false
		if i == 0 {
			r.outline = append(r.outline, seg.A.Sub(seg.N.Mul(d)))
			break
		}
		prev := &segs[i-1]
		skip = r.cornerBackward(seg.A, prev, seg, d)
	}
}

// cornerBackward handles the -N side of the corner between prev and seg
// while walking the subpath backwards.
func (r *Rasteriser) cornerBackward(P vec.Vec2, prev, seg *strokeSegment, d float64) bool {
	s := cross(prev.T, seg.T)
	switch {
	case math.Abs(s) < collinearityThreshold:
		r.outline = append(r.outline, seg.A.Sub(seg.N.Mul(d)))
		return false
	case s > 0:
		r.outline = append(r.outline, seg.A.Sub(seg.N.Mul(d)))
		r.addJoin(P, prev.T, seg.T, d, false)
		return false
	default:
		return r.addInnerIntersectionOrOffsets(P, prev.T, seg.T, prev.N, seg.N, d, false)
	}
}

// strokeClosed appends the outline of a closed subpath.  There are no
// caps; the corner between the last and first segment is treated like
// every other corner.
func (r *Rasteriser) strokeClosed(segs []strokeSegment, d float64) {
	first := &segs[0]
	last := &segs[len(segs)-1]
	sClose := cross(last.T, first.T)

	r.outline = append(r.outline, first.A.Add(first.N.Mul(d)))
	for i := range segs {
		seg := &segs[i]
		next := first
		s := sClose
		if i < len(segs)-1 {
			next = &segs[i+1]
			s = cross(seg.T, next.T)
		}
		switch {
		case math.Abs(s) < collinearityThreshold:
			r.outline = append(r.outline, seg.B.Add(seg.N.Mul(d)), next.A.Add(next.N.Mul(d)))
		case s > 0:
			r.addInnerIntersectionOrOffsets(seg.B, seg.T, next.T, seg.N, next.N, d, true)
		default:
			r.outline = append(r.outline, seg.B.Add(seg.N.Mul(d)))
			r.addJoin(seg.B, seg.T, next.T, d, true)
			r.outline = append(r.outline, next.A.Add(next.N.Mul(d)))
		}
	}

	switch {
	case math.Abs(sClose) < collinearityThreshold:
		r.outline = append(r.outline, first.A.Sub(first.N.Mul(d)), last.B.Sub(last.N.Mul(d)))
	case sClose > 0:
		r.outline = append(r.outline, first.A.Sub(first.N.Mul(d)))
		r.addJoin(first.A, last.T, first.T, d, false)
		r.outline = append(r.outline, last.B.Sub(last.N.Mul(d)))
	default:
		r.addInnerIntersectionOrOffsets(first.A, last.T, first.T, last.N, first.N, d, false)
	}

	for i := len(segs) - 1; i >= 0; i-- {
		seg := &segs[i]
		if i == 0 {
			r.outline = append(r.outline, seg.A.Sub(seg.N.Mul(d)))
			break
		}
		prev := &segs[i-1]
		s := cross(prev.T, seg.T)
		switch {
		case math.Abs(s) < collinearityThreshold:
			r.outline = append(r.outline, seg.A.Sub(seg.N.Mul(d)), prev.B.Sub(prev.N.Mul(d)))
		case s > 0:
			r.outline = append(r.outline, seg.A.Sub(seg.N.Mul(d)))
			r.addJoin(seg.A, prev.T, seg.T, d, false)
			r.outline = append(r.outline, prev.B.Sub(prev.N.Mul(d)))
		default:
			r.addInnerIntersectionOrOffsets(seg.A, prev.T, seg.T, prev.N, seg.N, d, false)
		}
	}
}

// addCap appends the cap at P.  T points away from the line.
func (r *Rasteriser) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.outline = append(r.outline, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		r.addArc(P, d, N, -math.Pi, true)
	}
}

// innerIntersection returns the point where the two inner offset lines
// of a corner meet.
func innerIntersection(P, T1, T2 vec.Vec2, d float64, plus bool) (vec.Vec2, bool) {
	c := T1.Dot(T2)
	if c > 1-1e-9 {
		return vec.Vec2{}, false
	}
	half := math.Sqrt((1 + c) / 2) // cos(θ/2)
	if half < 1e-9 {
		return vec.Vec2{}, false
	}

	dir := vec.Vec2{X: -T1.Y, Y: T1.X}.Add(vec.Vec2{X: -T2.Y, Y: T2.X})
	if !plus {
		dir = dir.Mul(-1)
	}
	l := dir.Length()
	if l < 1e-9 {
		return vec.Vec2{}, false
	}
	return P.Add(dir.Mul(d / (half * l))), true
}

// addInnerIntersectionOrOffsets appends the inner vertex of a corner.
// If the offset lines do not intersect cleanly, both offset points are
// used instead.  The result reports whether the intersection was used.
func (r *Rasteriser) addInnerIntersectionOrOffsets(P, T1, T2, N1, N2 vec.Vec2, d float64, plus bool) bool {
	if pt, ok := innerIntersection(P, T1, T2, d, plus); ok {
		r.outline = append(r.outline, pt)
		return true
	}
	if !plus {
		d = -d
	}
	r.outline = append(r.outline, P.Add(N1.Mul(d)), P.Add(N2.Mul(d)))
	return false
}

// addJoin appends the outer join geometry at P, where the tangent turns
// from T1 to T2.
func (r *Rasteriser) addJoin(P, T1, T2 vec.Vec2, d float64, plus bool) {
	c := T1.Dot(T2)
	s := cross(T1, T2)
	if math.Abs(s) < collinearityThreshold {
		return
	}
	if c < cuspCosineThreshold {
		r.addCap(P, T1, d)
		r.addCap(P, T2.Mul(-1), d)
		return
	}

	N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
	N2 := vec.Vec2{X: -T2.Y, Y: T2.X}

	switch r.Join {
	case graphics.LineJoinMiter:
		// The miter length relative to the line width is 1/cos(θ/2),
		// where θ is the angle between the tangents.
		half := math.Sqrt((1 + c) / 2)
		const eps = 1e-10
		if half > 0 && 1/half <= r.MiterLimit+eps {
			b := N1.Add(N2)
			if !plus {
				b = b.Mul(-1)
			}
			if l := b.Length(); l > zeroLengthThreshold {
				r.outline = append(r.outline, P.Add(b.Mul(d/(half*l))))
			}
		}
		// otherwise: bevel

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, c)))
		if plus {
			if s < 0 {
				angle = -angle
			}
			r.addArc(P, d, N1, angle, false)
		} else {
			if s > 0 {
				angle = -angle
			}
			r.addArc(P, d, N2.Mul(-1), angle, false)
		}
	}
}

// addArc appends vertices along a circular arc around center, starting
// in direction startDir and sweeping by sweep radians (positive is
// counter-clockwise).  The vertex count follows from Flatness.
func (r *Rasteriser) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length(),
	)

	rotate := func(angle float64) vec.Vec2 {
		cos, sin := math.Cos(angle), math.Sin(angle)
		return vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
	}

	if devRadius < r.Flatness {
		if includeStart {
			r.outline = append(r.outline, center.Add(startDir.Mul(radius)))
		}
		r.outline = append(r.outline, center.Add(rotate(sweep).Mul(radius)))
		return
	}

	// A chord spanning the angle θ deviates from the circle by
	// r(1 - cos(θ/2)); solve for the deviation to equal Flatness.
	step := 2 * math.Acos(1-r.Flatness/devRadius)
	if step <= 0 || math.IsNaN(step) {
		step = math.Pi / 4
	}
	n := max(int(math.Ceil(math.Abs(sweep)/step)), 1)

	dt := sweep / float64(n)
	i := 0
	if !includeStart {
		i = 1
	}
	for ; i <= n; i++ {
		r.outline = append(r.outline, center.Add(rotate(float64(i)*dt).Mul(radius)))
	}
}
