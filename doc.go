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

// Package geopattern serves reproducible geometric pattern images.
//
// An identifier string is hashed into a tiled vector pattern (package
// pattern).  The pattern is delivered either as SVG markup, or it is
// rasterised at a requested size (package render), brightened until its
// mean luminance is acceptable (package luminance) and encoded as PNG.
// Package pipeline ties these steps together and package server exposes
// them over HTTP:
//
//	GET /{mode}/{identifier}
//	GET /{mode}/{identifier}/{size}
//
// where mode is "svg" or "png".
package geopattern
