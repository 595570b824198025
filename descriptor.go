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

package geopattern

import (
	"errors"
	"fmt"
	"strconv"
)

// Defaults used when a request leaves a field out.
const (
	DefaultIdentifier = "default"
	DefaultSize       = 128
)

// ErrInvalidMode is returned when an image is requested for a
// descriptor with mode ModeInvalid.
var ErrInvalidMode = errors.New("invalid output mode")

// Mode selects the output format of an image.
type Mode int

// The supported output modes.
const (
	ModeInvalid Mode = iota
	ModeVector       // SVG markup
	ModeRaster       // PNG bitmap
)

// ParseMode maps a mode name to a Mode.  Only the exact strings "svg"
// and "png" are recognised.
func ParseMode(s string) Mode {
	switch s {
	case "svg":
		return ModeVector
	case "png":
		return ModeRaster
	default:
		return ModeInvalid
	}
}

func (m Mode) String() string {
	switch m {
	case ModeVector:
		return "svg"
	case ModeRaster:
		return "png"
	default:
		return "invalid"
	}
}

// Descriptor describes one requested image.
type Descriptor struct {
	// Identifier is the string the pattern is derived from.
	Identifier string

	// Size is the requested length of the shorter image side, in pixels.
	// It is ignored for vector output.
	Size uint32

	Mode Mode
}

// ParseDescriptor builds a Descriptor from raw request fields.
//
// An empty identifier becomes "default".  A size which is empty or not
// a valid unsigned 32-bit decimal number becomes 128.  Unknown modes
// are represented as ModeInvalid.  ParseDescriptor never fails.
func ParseDescriptor(identifier, size, mode string) Descriptor {
	if identifier == "" {
		identifier = DefaultIdentifier
	}

	d := Descriptor{
		Identifier: identifier,
		Size:       DefaultSize,
		Mode:       ParseMode(mode),
	}
	if n, err := strconv.ParseUint(size, 10, 32); err == nil {
		d.Size = uint32(n)
	}
	return d
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s/%s/%d", d.Mode, d.Identifier, d.Size)
}
