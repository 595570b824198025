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

// Package luminance brightens dark images.
package luminance

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geopattern"
	"seehuhn.de/go/geopattern/pixbuf"
)

// Default parameters.
const (
	DefaultThreshold = 80
	DefaultGain      = 1.1
	DefaultMaxPasses = 64
)

// ErrDegenerateImage is returned for buffers without pixels.
var ErrDegenerateImage = errors.New("image has no pixels")

// IterationLimitError is returned when an image could not be brought up
// to the threshold.
type IterationLimitError struct {
	Passes int
	Mean   float64

	// Stalled is set if the last pass changed no channel value.
	Stalled bool
}

func (e *IterationLimitError) Error() string {
	if e.Stalled {
		return fmt.Sprintf("luminance stuck at %.2f after %d passes", e.Mean, e.Passes)
	}
	return fmt.Sprintf("luminance %.2f still below threshold after %d passes", e.Mean, e.Passes)
}

// MeanLuminance returns the average of 0.299·R + 0.587·G + 0.114·B over
// all pixels of buf.  Alpha is ignored.
func MeanLuminance(buf *pixbuf.Buffer) (float64, error) {
	n := buf.Pixels()
	if n == 0 {
		return 0, ErrDegenerateImage
	}

	var sum float64
	pix := buf.Pix
	for i := 0; i < len(pix); i += 4 {
		sum += 0.299*float64(pix[i+pixbuf.R]) +
			0.587*float64(pix[i+pixbuf.G]) +
			0.114*float64(pix[i+pixbuf.B])
	}
	return sum / float64(n), nil
}

// Normalizer raises the brightness of an image until its mean luminance
// reaches Threshold.
type Normalizer struct {
	Threshold float64
	Gain      float64
	MaxPasses int
}

// New returns a Normalizer with the default parameters.
func New() *Normalizer {
	return &Normalizer{
		Threshold: DefaultThreshold,
		Gain:      DefaultGain,
		MaxPasses: DefaultMaxPasses,
	}
}

// Normalize modifies buf in place.  While the mean luminance is below
// the threshold, every colour channel c with c·Gain <= 255 is replaced by
// floor(c·Gain); channels which would overflow are left alone, as is
// alpha.  An image already at or above the threshold is not touched.
//
// The number of brightening passes is returned.  If the threshold is
// not reached within MaxPasses passes, or a pass makes no progress, the
// result is an *IterationLimitError and buf holds the partial result.
func (n *Normalizer) Normalize(buf *pixbuf.Buffer) (int, error) {
	mean, err := MeanLuminance(buf)
	if err != nil {
		return 0, err
	}

	passes := 0
	for mean < n.Threshold {
		if passes >= n.MaxPasses {
			return passes, &IterationLimitError{Passes: passes, Mean: mean}
		}
		changed := n.brighten(buf.Pix)
		passes++
		if !changed {
			return passes, &IterationLimitError{Passes: passes, Mean: mean, Stalled: true}
		}
		mean, _ = MeanLuminance(buf)
	}

	if passes > 0 {
		geopattern.Logger().Debug("normalized luminance", "passes", passes, "mean", mean)
	}
	return passes, nil
}

// brighten applies one pass and reports whether any byte changed.
func (n *Normalizer) brighten(pix []uint8) bool {
	var lut [256]uint8
	for c := range lut {
		v := float64(c) * n.Gain
		if v <= 255 {
			lut[c] = uint8(v)
		} else {
			lut[c] = uint8(c)
		}
	}

	changed := false
	for i := 0; i < len(pix); i += 4 {
		for c := pixbuf.R; c <= pixbuf.B; c++ {
			old := pix[i+c]
			if v := lut[old]; v != old {
				pix[i+c] = v
				changed = true
			}
		}
	}
	return changed
}
