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

package render

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"seehuhn.de/go/geopattern"
)

var (
	initOnce sync.Once
	backends atomic.Pointer[map[string]Backend]
)

// Init registers the available backends.  It must be called before
// Lookup.  Calling Init more than once has no further effect.
func Init() {
	initOnce.Do(func() {
		m := map[string]Backend{}
		for _, b := range []Backend{nativeBackend{}, markupBackend{}} {
			m[b.Name()] = b
		}
		backends.Store(&m)
		geopattern.Logger().Info("render backends ready", "names", names(m))
	})
}

// Lookup returns the backend with the given name.  The empty name
// selects the native backend.
func Lookup(name string) (Backend, error) {
	m := backends.Load()
	if m == nil {
		return nil, ErrNotInitialized
	}
	if name == "" {
		name = "native"
	}
	b, ok := (*m)[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownBackend)
	}
	return b, nil
}

// Names lists the registered backends in alphabetical order.  Before
// Init it returns nil.
func Names() []string {
	m := backends.Load()
	if m == nil {
		return nil
	}
	return names(*m)
}

func names(m map[string]Backend) []string {
	res := make([]string, 0, len(m))
	for name := range m {
		res = append(res, name)
	}
	slices.Sort(res)
	return res
}
