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

// Package pattern derives a tiled vector pattern from an identifier.
//
// The identifier is hashed with SHA-1.  Digits of the hash select one of
// eight tile generators, shift the hue and saturation of the background
// colour, and control the size, colour and opacity of every shape.  The
// same identifier always yields the same [Document].
package pattern

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// DefaultBaseColor is the colour from which backgrounds are derived.
const DefaultBaseColor = "#933c3c"

var (
	// ErrUnknownPattern is returned for a generator name not in Names().
	ErrUnknownPattern = errors.New("unknown pattern")

	// ErrInvalidColor is returned for a base colour which is neither a
	// hex triplet nor an SVG colour name.
	ErrInvalidColor = errors.New("invalid colour")
)

// Options modify how a document is generated.
type Options struct {
	// BaseColor is "#rrggbb", "#rgb" or an SVG colour keyword such as
	// "teal".  The empty string selects DefaultBaseColor.
	BaseColor string

	// Pattern forces the named generator.  The empty string lets the
	// hash choose.
	Pattern string
}

type generator struct {
	name string
	draw func(d *Document, h digest)
}

// generators in the order used by the hash based selection.
var generators = []generator{
	{"plaid", plaid},
	{"concentric-circles", concentricCircles},
	{"mosaic-squares", mosaicSquares},
	{"xes", xes},
	{"octagons", octagons},
	{"overlapping-circles", overlappingCircles},
	{"plus-signs", plusSigns},
	{"squares", squares},
}

// Names returns the names of all generators.
func Names() []string {
	res := make([]string, len(generators))
	for i, g := range generators {
		res[i] = g.name
	}
	return res
}

// New returns the pattern for identifier, using the default options.
func New(identifier string) *Document {
	doc, err := NewWithOptions(identifier, nil)
	if err != nil {
		// the default options are always valid
		panic(err)
	}
	return doc
}

// NewWithPattern returns the pattern for identifier drawn by the named
// generator.
func NewWithPattern(identifier, name string) (*Document, error) {
	return NewWithOptions(identifier, &Options{Pattern: name})
}

// NewWithOptions returns the pattern for identifier.  A nil opt is the
// same as the zero Options.
func NewWithOptions(identifier string, opt *Options) (*Document, error) {
	if opt == nil {
		opt = &Options{}
	}

	base := opt.BaseColor
	if base == "" {
		base = DefaultBaseColor
	}
	baseRGB, err := ParseColor(base)
	if err != nil {
		return nil, err
	}

	h := newDigest(identifier)

	g := generators[h.val(20, 1)%len(generators)]
	if opt.Pattern != "" {
		found := false
		for _, cand := range generators {
			if cand.name == opt.Pattern {
				g = cand
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%q: %w", opt.Pattern, ErrUnknownPattern)
		}
	}

	doc := &Document{
		Background: background(baseRGB, h),
		Pattern:    g.name,
	}
	g.draw(doc, h)
	return doc, nil
}

// digest is the lower-case hex SHA-1 of an identifier.
type digest string

func newDigest(identifier string) digest {
	sum := sha1.Sum([]byte(identifier))
	return digest(hex.EncodeToString(sum[:]))
}

// val interprets n hex digits starting at position i as a number.
func (h digest) val(i, n int) int {
	v, err := strconv.ParseUint(string(h[i:i+n]), 16, 32)
	if err != nil {
		panic("malformed digest")
	}
	return int(v)
}

// background shifts the hue and saturation of base by amounts taken
// from the hash.
func background(base color.NRGBA, h digest) color.NRGBA {
	hueOffset := mapRange(float64(h.val(14, 3)), 0, 4095, 0, 359)
	satOffset := h.val(17, 1)

	hue, sat, light := rgbToHSL(base)
	hue = math.Mod(hue*360-hueOffset+360, 360) / 360
	if satOffset%2 == 0 {
		sat = math.Min(1, (sat*100+float64(satOffset))/100)
	} else {
		sat = math.Max(0, (sat*100-float64(satOffset))/100)
	}
	return hslToRGB(hue, sat, light)
}

// ParseColor parses "#rrggbb", "#rgb" or an SVG colour keyword.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if hexDigits, ok := strings.CutPrefix(s, "#"); ok {
		if len(hexDigits) == 3 {
			hexDigits = string([]byte{
				hexDigits[0], hexDigits[0],
				hexDigits[1], hexDigits[1],
				hexDigits[2], hexDigits[2],
			})
		}
		if len(hexDigits) == 6 {
			v, err := strconv.ParseUint(hexDigits, 16, 32)
			if err == nil {
				return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
			}
		}
		return color.NRGBA{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}

	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, nil
}

// rgbToHSL returns hue, saturation and lightness, all in [0, 1].
func rgbToHSL(c color.NRGBA) (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	hi := max(r, g, b)
	lo := min(r, g, b)
	l = (hi + lo) / 2
	if hi == lo {
		return 0, 0, l
	}

	d := hi - lo
	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}
	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, l
}

func hslToRGB(h, s, l float64) color.NRGBA {
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return color.NRGBA{R: v, G: v, B: v, A: 0xff}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return color.NRGBA{
		R: uint8(math.Round(hueToRGB(p, q, h+1.0/3) * 255)),
		G: uint8(math.Round(hueToRGB(p, q, h) * 255)),
		B: uint8(math.Round(hueToRGB(p, q, h-1.0/3) * 255)),
		A: 0xff,
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}
