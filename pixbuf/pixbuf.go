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

// Package pixbuf implements an owned grid of 8-bit RGBA pixels.
package pixbuf

import (
	"image"
	"image/color"
)

// Channel offsets within one pixel.
const (
	R = 0
	G = 1
	B = 2
	A = 3
)

// Buffer is a width × height grid of RGBA pixels, stored row-major with
// four interleaved bytes per pixel.  The colour values are
// alpha-premultiplied, as in [image.RGBA].
//
// A Buffer has a single owner and is not safe for concurrent use.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8 // len(Pix) == 4*Width*Height
}

// New allocates a transparent buffer.  Negative sizes are treated as 0.
func New(width, height int) *Buffer {
	width = max(width, 0)
	height = max(height, 0)
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, 4*width*height),
	}
}

// FromRGBA wraps the pixels of img.  If img has padding between rows,
// the pixels are copied instead.
func FromRGBA(img *image.RGBA) *Buffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if img.Stride == 4*w && b.Min == (image.Point{}) {
		return &Buffer{Width: w, Height: h, Pix: img.Pix[:4*w*h]}
	}

	buf := New(w, h)
	for y := range h {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(buf.Pix[4*w*y:4*w*(y+1)], src[:4*w])
	}
	return buf
}

// Pixels returns the number of pixels in the buffer.
func (b *Buffer) Pixels() int {
	return len(b.Pix) / 4
}

// Channel returns channel c of pixel i, counting pixels row by row.
func (b *Buffer) Channel(i, c int) uint8 {
	return b.Pix[4*i+c]
}

// SetChannel sets channel c of pixel i.
func (b *Buffer) SetChannel(i, c int, v uint8) {
	b.Pix[4*i+c] = v
}

// At returns the pixel at (x, y).
func (b *Buffer) At(x, y int) color.RGBA {
	i := 4 * (y*b.Width + x)
	p := b.Pix[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c color.RGBA) {
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i+R] = c.R
		b.Pix[i+G] = c.G
		b.Pix[i+B] = c.B
		b.Pix[i+A] = c.A
	}
}

// Blend composites the colour c, scaled by alpha in [0, 1], over the
// pixel at (x, y) using the source-over operator.
func (b *Buffer) Blend(x, y int, c color.NRGBA, alpha float32) {
	a := alpha * float32(c.A) / 255
	if a <= 0 {
		return
	}
	a = min(a, 1)

	i := 4 * (y*b.Width + x)
	p := b.Pix[i : i+4 : i+4]
	keep := 1 - a
	p[R] = uint8(float32(c.R)*a + float32(p[R])*keep + 0.5)
	p[G] = uint8(float32(c.G)*a + float32(p[G])*keep + 0.5)
	p[B] = uint8(float32(c.B)*a + float32(p[B])*keep + 0.5)
	p[A] = uint8(255*a + float32(p[A])*keep + 0.5)
}

// RGBA returns an [image.RGBA] which shares the pixel storage of b.
func (b *Buffer) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: 4 * b.Width,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
