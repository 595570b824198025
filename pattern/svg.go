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
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/path"
)

// WriteSVG writes the document as minified SVG markup.  The output only
// depends on the document, byte for byte.
func (d *Document) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)

	wd, ht := num(d.Width), num(d.Height)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		wd, ht, wd, ht)
	fmt.Fprintf(bw, `<rect x="0" y="0" width="%s" height="%s" fill="%s"/>`,
		wd, ht, hexColor(d.Background))

	for _, s := range d.Shapes {
		bw.WriteString(`<path d="`)
		writePathData(bw, s.Path)
		bw.WriteString(`"`)
		if s.Fill != nil {
			fmt.Fprintf(bw, ` fill="%s" fill-opacity="%s"`, hexColor(s.Fill.Color), num(s.Fill.Opacity))
		} else {
			bw.WriteString(` fill="none"`)
		}
		if s.Stroke != nil {
			fmt.Fprintf(bw, ` stroke="%s" stroke-opacity="%s" stroke-width="%s"`,
				hexColor(s.Stroke.Color), num(s.Stroke.Opacity), num(s.StrokeWidth))
		}
		bw.WriteString(`/>`)
	}

	bw.WriteString(`</svg>`)
	return bw.Flush()
}

// SVG returns the markup written by WriteSVG.
func (d *Document) SVG() string {
	b := &strings.Builder{}
	_ = d.WriteSVG(b) // strings.Builder does not fail
	return b.String()
}

func writePathData(w *bufio.Writer, p *path.Data) {
	k := 0
	for _, cmd := range p.Cmds {
		var n int
		switch cmd {
		case path.CmdMoveTo:
			w.WriteByte('M')
			n = 1
		case path.CmdLineTo:
			w.WriteByte('L')
			n = 1
		case path.CmdQuadTo:
			w.WriteByte('Q')
			n = 2
		case path.CmdCubeTo:
			w.WriteByte('C')
			n = 3
		case path.CmdClose:
			w.WriteByte('Z')
			continue
		}
		for j := range n {
			pt := p.Coords[k+j]
			if j > 0 {
				w.WriteByte(' ')
			}
			w.WriteString(num(pt.X))
			w.WriteByte(' ')
			w.WriteString(num(pt.Y))
		}
		k += n
	}
}

// num formats x with at most three decimals.
func num(x float64) string {
	x = math.Round(x*1000) / 1000
	if x == 0 {
		x = 0 // avoid "-0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
