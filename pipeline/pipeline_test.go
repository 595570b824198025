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

package pipeline

import (
	"bytes"
	"errors"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"testing"

	"seehuhn.de/go/geopattern"
	"seehuhn.de/go/geopattern/luminance"
	"seehuhn.de/go/geopattern/pattern"
	"seehuhn.de/go/geopattern/pixbuf"
	"seehuhn.de/go/geopattern/render"
)

func TestInvalidMode(t *testing.T) {
	g := &Generator{}
	_, err := g.Run(geopattern.ParseDescriptor("abc", "64", "xyz"))
	if !errors.Is(err, geopattern.ErrInvalidMode) {
		t.Errorf("got %v, want ErrInvalidMode", err)
	}
}

func TestVector(t *testing.T) {
	g := &Generator{}
	res, err := g.Run(geopattern.ParseDescriptor("abc", "", "svg"))
	if err != nil {
		t.Fatal(err)
	}
	if res.ContentType != ContentTypeSVG {
		t.Errorf("content type %q", res.ContentType)
	}
	if string(res.Data) != pattern.New("abc").SVG() {
		t.Error("vector output differs from the pattern markup")
	}
	if !strings.HasPrefix(string(res.Data), "<svg") {
		t.Errorf("unexpected start %q", res.Data[:min(20, len(res.Data))])
	}
}

func TestRaster(t *testing.T) {
	for _, size := range []string{"64", "", "1"} {
		d := geopattern.ParseDescriptor("abc", size, "png")
		res, err := (&Generator{}).Run(d)
		if err != nil {
			t.Fatalf("size %q: %v", size, err)
		}
		if res.ContentType != ContentTypePNG {
			t.Errorf("content type %q", res.ContentType)
		}

		img, err := png.Decode(bytes.NewReader(res.Data))
		if err != nil {
			t.Fatal(err)
		}
		b := img.Bounds()
		if got := min(b.Dx(), b.Dy()); got != int(d.Size) {
			t.Errorf("size %q: shorter side %d, want %d", size, got, d.Size)
		}

		rgba := image.NewRGBA(b)
		draw.Draw(rgba, b, img, b.Min, draw.Src)
		mean, err := luminance.MeanLuminance(pixbuf.FromRGBA(rgba))
		if err != nil {
			t.Fatal(err)
		}
		if mean < luminance.DefaultThreshold {
			t.Errorf("size %q: mean luminance %g", size, mean)
		}
	}
}

func TestRasterDeterministic(t *testing.T) {
	d := geopattern.ParseDescriptor("hello", "32", "png")
	a, err := (&Generator{}).Run(d)
	if err != nil {
		t.Fatal(err)
	}
	b, err := (&Generator{}).Run(d)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Data, b.Data) {
		t.Error("PNG output differs between runs")
	}
}

func TestStageErrors(t *testing.T) {
	g := &Generator{}
	_, err := g.Run(geopattern.ParseDescriptor("abc", "0", "png"))
	var rErr *render.RenderError
	if !errors.As(err, &rErr) {
		t.Errorf("size 0: got %v, want *render.RenderError", err)
	}
	if err != nil && !strings.HasPrefix(err.Error(), "rasterize: ") {
		t.Errorf("size 0: error %q not attributed to the stage", err)
	}

	g = &Generator{Rasterizer: &render.Rasterizer{MaxSize: 100}}
	_, err = g.Run(geopattern.ParseDescriptor("abc", "101", "png"))
	if !errors.Is(err, render.ErrTooLarge) {
		t.Errorf("above maximum: got %v", err)
	}

	g = &Generator{Options: &pattern.Options{Pattern: "spirals"}}
	_, err = g.Run(geopattern.ParseDescriptor("abc", "", "svg"))
	if !errors.Is(err, pattern.ErrUnknownPattern) {
		t.Errorf("unknown pattern: got %v", err)
	}

	// An impossible threshold makes the normaliser give up.
	g = &Generator{Normalizer: &luminance.Normalizer{Threshold: 300, Gain: 1.1, MaxPasses: 64}}
	_, err = g.Run(geopattern.ParseDescriptor("abc", "16", "png"))
	var limErr *luminance.IterationLimitError
	if !errors.As(err, &limErr) {
		t.Errorf("normaliser: got %v, want *luminance.IterationLimitError", err)
	}
}
