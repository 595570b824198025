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

package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"seehuhn.de/go/geopattern/pattern"
	"seehuhn.de/go/geopattern/pipeline"
	"seehuhn.de/go/geopattern/render"
)

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func newTestServer(gen *pipeline.Generator) *httptest.Server {
	if gen == nil {
		gen = &pipeline.Generator{}
	}
	return httptest.NewServer(NewHandler(gen))
}

func TestPNG(t *testing.T) {
	srv := newTestServer(nil)
	defer srv.Close()

	resp, body := get(t, srv, "/png/abc/64")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type %q", ct)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != CacheControl {
		t.Errorf("Cache-Control %q", cc)
	}
	if cl := resp.Header.Get("Content-Length"); cl != strconv.Itoa(len(body)) {
		t.Errorf("Content-Length %q for %d bytes", cl, len(body))
	}

	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if min(b.Dx(), b.Dy()) != 64 {
		t.Errorf("image is %dx%d", b.Dx(), b.Dy())
	}
}

func TestDefaultSize(t *testing.T) {
	srv := newTestServer(nil)
	defer srv.Close()

	for _, path := range []string{"/png/abc", "/png/abc/big", "/png/abc/-3"} {
		resp, body := get(t, srv, path)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status %d", path, resp.StatusCode)
		}
		img, err := png.Decode(bytes.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); min(b.Dx(), b.Dy()) != 128 {
			t.Errorf("%s: image is %dx%d", path, b.Dx(), b.Dy())
		}
	}
}

func TestSVG(t *testing.T) {
	srv := newTestServer(nil)
	defer srv.Close()

	resp, first := get(t, srv, "/svg/abc")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type %q", ct)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != CacheControl {
		t.Errorf("Cache-Control %q", cc)
	}

	// the size is ignored for vector output
	_, second := get(t, srv, "/svg/abc/999")
	if !bytes.Equal(first, second) {
		t.Error("responses differ")
	}
	if string(first) != pattern.New("abc").SVG() {
		t.Error("response differs from the pattern markup")
	}
}

func TestInvalidMode(t *testing.T) {
	srv := newTestServer(nil)
	defer srv.Close()

	for _, path := range []string{"/xyz/abc", "/xyz/abc/64", "/PNG/abc"} {
		resp, body := get(t, srv, path)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: status %d", path, resp.StatusCode)
		}
		if strings.TrimSpace(string(body)) != "Not found" {
			t.Errorf("%s: body %q", path, body)
		}
		if resp.Header.Get("Cache-Control") != "" {
			t.Errorf("%s: error response is cacheable", path)
		}
	}
}

func TestInternalError(t *testing.T) {
	gen := &pipeline.Generator{Rasterizer: &render.Rasterizer{MaxSize: 256}}
	srv := newTestServer(gen)
	defer srv.Close()

	for _, path := range []string{"/png/abc/0", "/png/abc/257"} {
		resp, body := get(t, srv, path)
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("%s: status %d", path, resp.StatusCode)
		}
		if strings.Contains(string(body), "render") {
			t.Errorf("%s: internal details leaked: %q", path, body)
		}
	}
}

func TestMethod(t *testing.T) {
	srv := newTestServer(nil)
	defer srv.Close()

	resp, err := srv.Client().Post(srv.URL+"/svg/abc", "text/plain", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status %d", resp.StatusCode)
	}
}

func TestAddrFromEnv(t *testing.T) {
	t.Setenv(EnvAddr, "")
	if got := AddrFromEnv(); got != DefaultAddr {
		t.Errorf("unset: got %q", got)
	}
	t.Setenv(EnvAddr, "127.0.0.1:8080")
	if got := AddrFromEnv(); got != "127.0.0.1:8080" {
		t.Errorf("set: got %q", got)
	}
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan net.Addr, 1)
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, Config{
			Addr:  "127.0.0.1:0",
			Ready: func(a net.Addr) { ready <- a },
		})
	}()

	var addr net.Addr
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/svg/abc", addr))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("shutdown: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeUnknownBackend(t *testing.T) {
	err := Serve(context.Background(), Config{Addr: "127.0.0.1:0", Backend: "cairo"})
	if !errors.Is(err, render.ErrUnknownBackend) {
		t.Errorf("got %v, want ErrUnknownBackend", err)
	}
}
